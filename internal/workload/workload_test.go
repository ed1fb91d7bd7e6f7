// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package workload

import (
	"bytes"
	"slices"
	"testing"

	"github.com/cockroachdb/prefixsearch"
	"github.com/stretchr/testify/require"
)

func requireSortedDistinct(t *testing.T, keys [][]byte) {
	t.Helper()
	for i := 1; i < len(keys); i++ {
		require.Negative(t, bytes.Compare(keys[i-1], keys[i]), "keys %d and %d", i-1, i)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		require.Equal(t, k, got)
	}
	_, err := ParseKind("zipf")
	require.Error(t, err)
}

func TestSimilarKeys(t *testing.T) {
	keys := SimilarKeys(NewRand(1), 500, 64)
	require.NotEmpty(t, keys)
	require.LessOrEqual(t, len(keys), 500)
	requireSortedDistinct(t, keys)
	var shared int
	for i, k := range keys {
		require.Less(t, len(k), 64)
		for _, b := range k {
			require.Contains(t, []byte{0, 0x7f, 0xff}, b)
		}
		if i > 0 {
			shared += prefixsearch.SharedPrefixLen(keys[i-1], k)
		}
	}
	// Neighbours share long prefixes.
	require.Greater(t, shared, len(keys))

	// Generation is deterministic.
	require.Equal(t, keys, SimilarKeys(NewRand(1), 500, 64))
}

func TestUUIDKeys(t *testing.T) {
	keys, err := UUIDKeys(NewRand(2), 100)
	require.NoError(t, err)
	require.Len(t, keys, 100)
	requireSortedDistinct(t, keys)
	for _, k := range keys {
		require.Len(t, k, 36)
	}
}

func TestWordKeys(t *testing.T) {
	keys, err := WordKeys("", 100)
	require.NoError(t, err)
	require.NotEmpty(t, keys)
	require.LessOrEqual(t, len(keys), 100)
	requireSortedDistinct(t, keys)

	_, err = WordKeys("no-such-corpus", 10)
	require.Error(t, err)

	_, err = ByteKeys(MVCC, Config{Keys: 10})
	require.Error(t, err)
}

func TestMVCCKeys(t *testing.T) {
	keys := MVCCKeys(NewRand(3), 200, 48)
	require.GreaterOrEqual(t, len(keys), 150)
	for i := 1; i < len(keys); i++ {
		require.Negative(t, MVCCCompare.Full(keys[i-1], keys[i]))
		if bytes.Equal(keys[i-1].First, keys[i].First) {
			// Newer versions first.
			require.Greater(t, keys[i-1].Second, keys[i].Second)
		}
	}
}

func TestTargets(t *testing.T) {
	rng := NewRand(4)
	keys := SimilarKeys(rng, 100, 32)
	targets := Targets(rng, keys, 1000, PerturbBytes)
	require.Len(t, targets, 1000)
	var present int
	for _, tgt := range targets {
		if _, found := slices.BinarySearchFunc(keys, tgt, bytes.Compare); found {
			present++
		}
	}
	require.Greater(t, present, 300)
	require.Less(t, present, 1000)

	require.Nil(t, Targets(rng, [][]byte(nil), 10, PerturbBytes))

	k := []byte("abc")
	p := PerturbBytes(rng, k)
	require.Equal(t, "abc", string(k))
	require.NotEqual(t, k, p)
	require.Len(t, PerturbBytes(rng, nil), 1)

	mk := prefixsearch.MakePair([]byte("a"), uint64(7))
	require.Greater(t, PerturbMVCC(rng, mk).Second, mk.Second)
}
