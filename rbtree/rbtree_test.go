// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rbtree

import (
	"bytes"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/cockroachdb/prefixsearch"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	m := New[[]byte, int](prefixsearch.Bytes)
	_, _, ok := m.Ceiling([]byte("a"))
	require.False(t, ok)
	_, _, ok = m.Floor([]byte("a"))
	require.False(t, ok)

	for i, k := range []string{"apple", "application", "apply", "banana"} {
		m.Put([]byte(k), i)
	}
	require.Equal(t, 4, m.Len())

	v, ok := m.Get([]byte("apply"))
	require.True(t, ok)
	require.Equal(t, 2, v)
	_, ok = m.Get([]byte("applicant"))
	require.False(t, ok)

	k, v, ok := m.Ceiling([]byte("applicant"))
	require.True(t, ok)
	require.Equal(t, "application", string(k))
	require.Equal(t, 1, v)
	k, _, ok = m.Floor([]byte("applicant"))
	require.True(t, ok)
	require.Equal(t, "apple", string(k))

	m.Put([]byte("apply"), 20)
	v, _ = m.Get([]byte("apply"))
	require.Equal(t, 20, v)

	m.Delete([]byte("apply"))
	require.Equal(t, 3, m.Len())
	k, _, ok = m.Ceiling([]byte("apply"))
	require.True(t, ok)
	require.Equal(t, "banana", string(k))
}

// TestMapRandomized checks Get, Ceiling and Floor against a sorted slice.
func TestMapRandomized(t *testing.T) {
	seed := uint64(time.Now().UnixNano())
	t.Logf("seed: %d", seed)
	rng := rand.New(rand.NewPCG(0, seed))

	randKey := func() []byte {
		return fmt.Appendf(nil, "/table/%d/%03d", rng.IntN(3), rng.IntN(100))
	}
	m := New[[]byte, string](prefixsearch.Bytes)
	var sorted [][]byte
	for range 500 {
		k := randKey()
		if rng.IntN(4) == 0 {
			m.Delete(k)
			if i, found := slices.BinarySearchFunc(sorted, k, bytes.Compare); found {
				sorted = slices.Delete(sorted, i, i+1)
			}
		} else {
			m.Put(k, string(k))
			if i, found := slices.BinarySearchFunc(sorted, k, bytes.Compare); !found {
				sorted = slices.Insert(sorted, i, k)
			}
		}
		require.Equal(t, len(sorted), m.Len())

		target := randKey()
		i, found := slices.BinarySearchFunc(sorted, target, bytes.Compare)
		v, ok := m.Get(target)
		require.Equal(t, found, ok)
		if ok {
			require.Equal(t, string(target), v)
		}

		k, _, ok = m.Ceiling(target)
		require.Equal(t, i < len(sorted), ok, "ceiling of %s", target)
		if ok {
			require.Equal(t, sorted[i], k)
		}

		j := i - 1
		if found {
			j = i
		}
		k, _, ok = m.Floor(target)
		require.Equal(t, j >= 0, ok, "floor of %s", target)
		if ok {
			require.Equal(t, sorted[j], k)
		}
	}
}
