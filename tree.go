// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package prefixsearch

import "github.com/cockroachdb/prefixsearch/internal/invariants"

// Dir identifies a child of a binary tree node.
type Dir int8

const (
	// Left is the child holding keys less than the node's key.
	Left Dir = iota
	// Right is the child holding keys greater than the node's key.
	Right
)

func (d Dir) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Tree is a read-only view of a binary search tree with nodes of type N and
// keys of type K. Every key in the left subtree of a node is less than the
// node's key and every key in the right subtree is greater.
type Tree[N, K any] interface {
	// Root returns the root node, or false if the tree is empty.
	Root() (N, bool)
	// Key returns the key stored at n.
	Key(n N) K
	// Child returns the child of n in direction d, or false if there is none.
	Child(n N, d Dir) (N, bool)
}

// TreePos is the result of a tree search.
type TreePos[N any] struct {
	// Found is set if a node with a key equal to the target was found; Node is
	// that node.
	Found bool
	// Node is the found node. When the target is absent and the tree is not
	// empty, Node is the parent of the absent child where the target would be
	// attached, and Dir is the side of that child.
	Node N
	Dir  Dir
	// Empty is set when the tree has no nodes.
	Empty bool
	// Depth is the depth of Node.
	Depth int
}

// SearchTree descends t looking for target, tracking the prefix length the
// target shares with the tightest lower and upper bounds along the path the
// same way Search does for sorted sequences. It returns the node holding a key
// equal to target, or the position of the absent child where target belongs.
func SearchTree[N, K any](t Tree[N, K], target K, cmp CompareFrom[K]) TreePos[N] {
	return searchTree(t, target, cmp, nil)
}

// ExplainTree is like SearchTree but also returns every probe made along the
// way. Step.Probe is the depth of the probed node.
func ExplainTree[N, K any](t Tree[N, K], target K, cmp CompareFrom[K]) (TreePos[N], []Step) {
	var steps []Step
	pos := searchTree(t, target, cmp, &steps)
	return pos, steps
}

func searchTree[N, K any](t Tree[N, K], target K, cmp CompareFrom[K], steps *[]Step) TreePos[N] {
	n, ok := t.Root()
	if !ok {
		return TreePos[N]{Empty: true}
	}
	var lowerPrefix, upperPrefix int
	for depth := 0; ; depth++ {
		key := t.Key(n)
		start := min(lowerPrefix, upperPrefix)
		c, confirmed := cmp(target, key, start)
		if invariants.Enabled {
			checkProbe(start, confirmed)
		}
		if steps != nil {
			*steps = append(*steps, Step{Probe: depth, Start: start, Cmp: sign(c), Confirmed: confirmed})
		}
		var d Dir
		switch {
		case c < 0:
			d = Left
			upperPrefix = confirmed
		case c > 0:
			d = Right
			lowerPrefix = confirmed
		default:
			return TreePos[N]{Found: true, Node: n, Depth: depth}
		}
		child, ok := t.Child(n, d)
		if !ok {
			return TreePos[N]{Node: n, Dir: d, Depth: depth}
		}
		n = child
	}
}
