// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package rbtree provides an ordered map backed by a red-black tree whose
// lookups use prefix-tracking descents. Insertion, deletion and rebalancing
// are delegated to github.com/emirpasic/gods.
package rbtree

import (
	"github.com/cockroachdb/prefixsearch"
	"github.com/emirpasic/gods/trees/redblacktree"
)

// Node is a node of the underlying red-black tree.
type Node = *redblacktree.Node

// Map is an ordered map from K to V. It implements prefixsearch.Tree so that
// callers can run their own descents over it.
//
// A Map is not safe for concurrent mutation; concurrent lookups are safe while
// no mutation is in progress.
type Map[K, V any] struct {
	tree *redblacktree.Tree
	cmp  prefixsearch.CompareFrom[K]
}

var _ prefixsearch.Tree[Node, []byte] = (*Map[[]byte, int])(nil)

// New returns an empty map ordered by cmp.
func New[K, V any](cmp prefixsearch.CompareFrom[K]) *Map[K, V] {
	return &Map[K, V]{
		tree: redblacktree.NewWith(func(a, b interface{}) int {
			return cmp.Full(a.(K), b.(K))
		}),
		cmp: cmp,
	}
}

// Put inserts or replaces the value for key.
func (m *Map[K, V]) Put(key K, value V) {
	m.tree.Put(key, value)
}

// Delete removes key from the map, if present.
func (m *Map[K, V]) Delete(key K) {
	m.tree.Remove(key)
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return m.tree.Size()
}

// Get returns the value stored for key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	pos := m.Seek(key)
	if !pos.Found {
		var zero V
		return zero, false
	}
	return pos.Node.Value.(V), true
}

// Seek descends the tree looking for key; see prefixsearch.SearchTree.
func (m *Map[K, V]) Seek(key K) prefixsearch.TreePos[Node] {
	return prefixsearch.SearchTree[Node, K](m, key, m.cmp)
}

// Ceiling returns the smallest entry with a key greater than or equal to key.
func (m *Map[K, V]) Ceiling(key K) (K, V, bool) {
	pos := m.Seek(key)
	n := pos.Node
	if !pos.Found && !pos.Empty && pos.Dir == prefixsearch.Right {
		// The target sorts right after pos.Node: the ceiling is the closest
		// ancestor whose left subtree contains pos.Node.
		n = nextAncestor(n, func(p Node) Node { return p.Left })
	}
	return entry[K, V](n)
}

// Floor returns the largest entry with a key less than or equal to key.
func (m *Map[K, V]) Floor(key K) (K, V, bool) {
	pos := m.Seek(key)
	n := pos.Node
	if !pos.Found && !pos.Empty && pos.Dir == prefixsearch.Left {
		n = nextAncestor(n, func(p Node) Node { return p.Right })
	}
	return entry[K, V](n)
}

// nextAncestor walks up from n and returns the first ancestor p such that n's
// subtree is child(p), or nil.
func nextAncestor(n Node, child func(p Node) Node) Node {
	for n.Parent != nil && child(n.Parent) != n {
		n = n.Parent
	}
	return n.Parent
}

func entry[K, V any](n Node) (K, V, bool) {
	if n == nil {
		var k K
		var v V
		return k, v, false
	}
	return n.Key.(K), n.Value.(V), true
}

// Root implements prefixsearch.Tree.
func (m *Map[K, V]) Root() (Node, bool) {
	return m.tree.Root, m.tree.Root != nil
}

// Key implements prefixsearch.Tree.
func (m *Map[K, V]) Key(n Node) K {
	return n.Key.(K)
}

// Child implements prefixsearch.Tree.
func (m *Map[K, V]) Child(n Node, d prefixsearch.Dir) (Node, bool) {
	c := n.Right
	if d == prefixsearch.Left {
		c = n.Left
	}
	return c, c != nil
}
