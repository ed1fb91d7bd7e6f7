// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package bst implements an immutable, array-backed binary search tree used to
// exercise tree descents. Trees are built once, either balanced from a sorted
// slice or in plain insertion order, and never rebalanced.
package bst

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/prefixsearch"
	"github.com/cockroachdb/prefixsearch/internal/invariants"
)

// Node identifies a node of a Tree by its index.
type Node int32

const nilNode Node = -1

type node[K any] struct {
	key         K
	left, right Node
}

// Tree is an immutable binary search tree. It implements
// prefixsearch.Tree[Node, K].
type Tree[K any] struct {
	nodes []node[K]
	root  Node
}

var _ prefixsearch.Tree[Node, []byte] = (*Tree[[]byte])(nil)

// FromSorted builds a balanced tree from keys, which must be sorted and free
// of duplicates. The root is the middle key, chosen the same way a binary
// search over keys chooses its first probe.
func FromSorted[K any](keys []K) *Tree[K] {
	t := &Tree[K]{nodes: make([]node[K], 0, len(keys))}
	t.root = t.buildSorted(keys)
	return t
}

func (t *Tree[K]) buildSorted(keys []K) Node {
	if len(keys) == 0 {
		return nilNode
	}
	mid := len(keys) / 2
	n := t.alloc(keys[mid])
	left := t.buildSorted(keys[:mid])
	right := t.buildSorted(keys[mid+1:])
	t.nodes[n].left, t.nodes[n].right = left, right
	return n
}

// FromInsertionOrder builds a tree by inserting keys one by one in the given
// order, without any rebalancing. Inserting a key equal to an existing one
// returns an error.
func FromInsertionOrder[K any](keys []K, cmp prefixsearch.CompareFrom[K]) (*Tree[K], error) {
	t := &Tree[K]{nodes: make([]node[K], 0, len(keys)), root: nilNode}
	for _, k := range keys {
		pos := prefixsearch.SearchTree[Node, K](t, k, cmp)
		switch {
		case pos.Found:
			return nil, errors.Errorf("duplicate key %v", k)
		case pos.Empty:
			t.root = t.alloc(k)
		case pos.Dir == prefixsearch.Left:
			t.nodes[pos.Node].left = t.alloc(k)
		default:
			t.nodes[pos.Node].right = t.alloc(k)
		}
	}
	return t, nil
}

func (t *Tree[K]) alloc(key K) Node {
	t.nodes = append(t.nodes, node[K]{key: key, left: nilNode, right: nilNode})
	return Node(len(t.nodes) - 1)
}

// Len returns the number of nodes in the tree.
func (t *Tree[K]) Len() int {
	return len(t.nodes)
}

// Root implements prefixsearch.Tree.
func (t *Tree[K]) Root() (Node, bool) {
	return t.root, t.root != nilNode
}

// Key implements prefixsearch.Tree.
func (t *Tree[K]) Key(n Node) K {
	invariants.CheckBounds(n, Node(len(t.nodes)))
	return t.nodes[n].key
}

// Child implements prefixsearch.Tree.
func (t *Tree[K]) Child(n Node, d prefixsearch.Dir) (Node, bool) {
	c := t.nodes[n].right
	if d == prefixsearch.Left {
		c = t.nodes[n].left
	}
	return c, c != nilNode
}

// Height returns the number of nodes on the longest path from the root.
func (t *Tree[K]) Height() int {
	var height func(n Node) int
	height = func(n Node) int {
		if n == nilNode {
			return 0
		}
		return 1 + max(height(t.nodes[n].left), height(t.nodes[n].right))
	}
	return height(t.root)
}

// InOrder returns the keys of the tree in order.
func (t *Tree[K]) InOrder() []K {
	keys := make([]K, 0, len(t.nodes))
	var walk func(n Node)
	walk = func(n Node) {
		if n == nilNode {
			return
		}
		walk(t.nodes[n].left)
		keys = append(keys, t.nodes[n].key)
		walk(t.nodes[n].right)
	}
	walk(t.root)
	return keys
}

// String returns an indented rendering of the tree, one node per line, with
// each child prefixed by its side.
func (t *Tree[K]) String() string {
	var buf strings.Builder
	var walk func(n Node, depth int, label string)
	walk = func(n Node, depth int, label string) {
		if n == nilNode {
			return
		}
		fmt.Fprintf(&buf, "%s%s%v\n", strings.Repeat("  ", depth), label, t.nodes[n].key)
		walk(t.nodes[n].left, depth+1, "L: ")
		walk(t.nodes[n].right, depth+1, "R: ")
	}
	walk(t.root, 0, "")
	return buf.String()
}
