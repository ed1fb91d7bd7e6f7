// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/cockroachdb/prefixsearch"
	"github.com/cockroachdb/prefixsearch/internal/bst"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain <target> <key>...",
	Short: "print the probes of a prefix-tracking search",
	Long: `
Sorts the given keys and prints every probe of a prefix-tracking binary search
for the target, then inserts the keys, in the given order, into an unbalanced
binary search tree and prints the probes of a descent of that tree.
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	return explain(cmd.OutOrStdout(), args[0], args[1:])
}

func explain(w io.Writer, target string, keys []string) error {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	fmt.Fprintf(w, "sorted: %s\n", strings.Join(sorted, " "))
	idx, found, steps := prefixsearch.Explain(sorted, target, prefixsearch.String)
	for _, s := range steps {
		fmt.Fprintf(w, "  %-12s %s\n", sorted[s.Probe], s)
	}
	if found {
		fmt.Fprintf(w, "found at %d\n", idx)
	} else {
		fmt.Fprintf(w, "not found, insertion point %d\n", idx)
	}

	t, err := bst.FromInsertionOrder(keys, prefixsearch.String)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "tree:\n%s", t)
	pos, steps := prefixsearch.ExplainTree[bst.Node, string](t, target, prefixsearch.String)
	n, _ := t.Root()
	for _, s := range steps {
		fmt.Fprintf(w, "  %-12s %s\n", t.Key(n), s)
		if s.Cmp < 0 {
			n, _ = t.Child(n, prefixsearch.Left)
		} else if s.Cmp > 0 {
			n, _ = t.Child(n, prefixsearch.Right)
		}
	}
	switch {
	case pos.Found:
		fmt.Fprintf(w, "found at depth %d\n", pos.Depth)
	case pos.Empty:
		fmt.Fprintf(w, "not found, empty tree\n")
	default:
		fmt.Fprintf(w, "not found, attach as %s child of %s\n", pos.Dir, t.Key(pos.Node))
	}
	return nil
}
