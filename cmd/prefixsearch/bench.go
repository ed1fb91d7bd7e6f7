// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/cockroachdb/prefixsearch/internal/base"
	"github.com/cockroachdb/prefixsearch/internal/bench"
	"github.com/cockroachdb/prefixsearch/internal/workload"
	"github.com/spf13/cobra"
)

var benchConfig struct {
	opts       bench.Options
	workload   string
	plot       bool
	plotHeight int
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "compare prefix-tracking and plain binary searches",
	Long: `
Generates a sorted key set and searches it for a mix of present and absent
targets, once with prefix tracking and once comparing every probed key from
the start. Both searches must agree; the command reports the comparison work
and latency of each.
`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	f := benchCmd.Flags()
	f.StringVar(&benchConfig.workload, "workload", string(workload.Similar),
		fmt.Sprintf("key generator (one of %v)", workload.Kinds))
	f.IntVar(&benchConfig.opts.Keys, "keys", 1<<14, "number of keys to generate")
	f.IntVar(&benchConfig.opts.Searches, "searches", 0, "number of searches per mode (0 means one per key)")
	f.IntVar(&benchConfig.opts.MaxLen, "max-len", 1<<10, "maximum generated key length")
	f.StringVar(&benchConfig.opts.Corpus, "corpus", "", "key corpus for the words workload")
	f.IntVarP(&benchConfig.opts.Concurrency, "concurrency", "c", 1, "number of concurrent workers")
	f.Uint64Var(&benchConfig.opts.Seed, "seed", 1, "random seed")
	f.IntVar(&benchConfig.opts.Crossover, "crossover", 0,
		"minimum key length at which byte comparisons resume from the tracked prefix (0 always tracks)")
	f.BoolVar(&benchConfig.plot, "plot", false, "plot skipped units by key length")
	f.IntVar(&benchConfig.plotHeight, "plot-height", 10, "height of the plot")
}

func runBench(cmd *cobra.Command, args []string) error {
	kind, err := workload.ParseKind(benchConfig.workload)
	if err != nil {
		return err
	}
	opts := benchConfig.opts
	opts.Workload = kind
	opts.Logger = base.NoopLogger{}
	if verbose {
		opts.Logger = base.DefaultLogger{}
	}
	r, err := bench.Run(context.Background(), &opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	r.WriteTable(out)
	if benchConfig.plot {
		fmt.Fprintln(out)
		fmt.Fprintln(out, r.Plot(benchConfig.plotHeight))
	}
	return nil
}
