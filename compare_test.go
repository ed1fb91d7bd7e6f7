// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package prefixsearch

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBytes(t *testing.T) {
	for _, tc := range []struct {
		a, b      string
		known     int
		cmp       int
		confirmed int
	}{
		{"", "", 0, 0, 0},
		{"", "a", 0, -1, 0},
		{"a", "", 0, +1, 0},
		{"abc", "abd", 0, -1, 2},
		{"abc", "abd", 2, -1, 2},
		{"abd", "abc", 1, +1, 2},
		{"abc", "abc", 0, 0, 3},
		{"abc", "abc", 3, 0, 3},
		{"ab", "abc", 0, -1, 2},
		{"abc", "ab", 1, +1, 2},
		{"applicant", "application", 4, -1, 7},
		// Claims past the end of the shorter key are clamped.
		{"ab", "abc", 10, -1, 2},
		// Negative claims are treated as zero.
		{"abc", "abd", -5, -1, 2},
	} {
		t.Run(fmt.Sprintf("%s/%s/%d", tc.a, tc.b, tc.known), func(t *testing.T) {
			c, confirmed := Bytes([]byte(tc.a), []byte(tc.b), tc.known)
			require.Equal(t, tc.cmp, c)
			require.Equal(t, tc.confirmed, confirmed)

			c, confirmed = String(tc.a, tc.b, tc.known)
			require.Equal(t, tc.cmp, c)
			require.Equal(t, tc.confirmed, confirmed)
		})
	}
}

func TestBytesUntruthfulClaim(t *testing.T) {
	// The result of an untruthful claim is unspecified, but it must not
	// crash and must stay within the shorter key.
	_, confirmed := Bytes([]byte("xbc"), []byte("abc"), 2)
	require.LessOrEqual(t, confirmed, 3)
	_, confirmed = Bytes([]byte("a"), nil, 5)
	require.Equal(t, 0, confirmed)
}

func TestUntruthfulClaimLongerThanKeys(t *testing.T) {
	// Claims past the end of both keys must not index out of range.
	c, confirmed := Slice[int]()([]int{1, 2}, []int{1, 3}, 10)
	require.Equal(t, 0, c)
	require.Equal(t, 2, confirmed)
	_, confirmed = SliceFunc(cmp.Compare[int])(nil, []int{1}, math.MaxInt)
	require.Equal(t, 0, confirmed)

	type key = Pair[[]byte, []int]
	pairCmp := PairFrom[[]byte, []int](Bytes, Slice[int]())
	a := MakePair([]byte("ab"), []int{1})
	b := MakePair([]byte("ac"), []int{2})
	for _, claim := range []int{
		PairPrefix(0, 100),
		PairPrefix(1, 100),
		PairPrefix(0, math.MaxInt),
		math.MaxInt - 1,
	} {
		require.NotPanics(t, func() { pairCmp(a, b, claim) }, "claim %d", claim)
		require.NotPanics(t, func() { pairCmp(key{}, b, claim) }, "claim %d", claim)
	}
}

func TestBytesWithCrossover(t *testing.T) {
	cmp := BytesWithCrossover(4)
	// Short keys confirm nothing beyond the claim.
	c, confirmed := cmp([]byte("abc"), []byte("abd"), 1)
	require.Equal(t, -1, c)
	require.Equal(t, 1, confirmed)
	c, confirmed = cmp([]byte("abc"), []byte("abc"), 0)
	require.Equal(t, 0, c)
	require.Equal(t, FullPrefix, confirmed)
	// Long keys use the prefix-skipping comparison.
	c, confirmed = cmp([]byte("abcde"), []byte("abcdf"), 1)
	require.Equal(t, -1, c)
	require.Equal(t, 4, confirmed)
}

func TestFromCompare(t *testing.T) {
	cmp := Ordered[int]()
	c, confirmed := cmp(1, 2, 0)
	require.Equal(t, -1, c)
	require.Equal(t, 0, confirmed)
	c, confirmed = cmp(7, 7, 0)
	require.Equal(t, 0, c)
	require.Equal(t, FullPrefix, confirmed)

	r := Reverse(cmp)
	c, confirmed = r(1, 2, 0)
	require.Equal(t, +1, c)
	require.Equal(t, 0, confirmed)
	require.Equal(t, -1, Reverse(r).Full(1, 2))
}

func TestPtr(t *testing.T) {
	one, two := 1, 2
	cmp := Ptr(Ordered[int]())
	require.Equal(t, 0, cmp.Full(nil, nil))
	require.Equal(t, -1, cmp.Full(nil, &one))
	require.Equal(t, +1, cmp.Full(&one, nil))
	require.Equal(t, -1, cmp.Full(&one, &two))
	require.Equal(t, 0, cmp.Full(&two, &two))
}

func TestSlice(t *testing.T) {
	cmp := Slice[int]()
	c, confirmed := cmp([]int{1, 2, 3}, []int{1, 2, 4}, 1)
	require.Equal(t, -1, c)
	require.Equal(t, 2, confirmed)
	c, confirmed = cmp([]int{1, 2}, []int{1, 2, 4}, 0)
	require.Equal(t, -1, c)
	require.Equal(t, 2, confirmed)
	c, confirmed = cmp([]int{5, 6}, []int{5, 6}, 0)
	require.Equal(t, 0, c)
	require.Equal(t, 2, confirmed)
}

func TestPairFrom(t *testing.T) {
	type key = Pair[[]byte, uint64]
	cmp := PairFrom[[]byte, uint64](Bytes, Reverse(Ordered[uint64]()))
	mk := func(s string, v uint64) key { return MakePair([]byte(s), v) }

	c, confirmed := cmp(mk("abc", 5), mk("abd", 5), 0)
	require.Equal(t, -1, c)
	require.Equal(t, PairPrefix(0, 2), confirmed)

	// Equal first fields move on to the second field; newer versions sort
	// first.
	c, confirmed = cmp(mk("abc", 5), mk("abc", 3), 0)
	require.Equal(t, -1, c)
	require.Equal(t, PairPrefix(1, 0), confirmed)

	// A claim covering the first field skips it entirely.
	c, confirmed = cmp(mk("zzz", 5), mk("abc", 3), PairPrefix(1, 0))
	require.Equal(t, -1, c)
	require.Equal(t, PairPrefix(1, 0), confirmed)

	c, confirmed = cmp(mk("abc", 5), mk("abc", 5), PairPrefix(0, 3))
	require.Equal(t, 0, c)
	require.Equal(t, FullPrefix, confirmed)

	// Packed prefixes order like the flattened units.
	require.Less(t, PairPrefix(0, 1000), PairPrefix(1, 0))
	fields, inner := SplitPairPrefix(PairPrefix(1, 7))
	require.Equal(t, 1, fields)
	require.Equal(t, 7, inner)
}

func TestPairPrefixLimits(t *testing.T) {
	// The largest inner prefix survives the round trip.
	fields, inner := SplitPairPrefix(PairPrefix(1, pairInnerMask))
	require.Equal(t, 1, fields)
	require.Equal(t, pairInnerMask, inner)
	require.Less(t, PairPrefix(0, pairInnerMask), PairPrefix(1, 0))

	// Larger counters are clamped, never wrapped.
	fields, inner = SplitPairPrefix(PairPrefix(1, math.MaxInt))
	require.Equal(t, 1, fields)
	require.Equal(t, pairInnerMask, inner)
	p := PairPrefix(math.MaxInt, 3)
	require.Greater(t, p, 0)
	fields, inner = SplitPairPrefix(p)
	require.Equal(t, pairMaxFields, fields)
	require.Equal(t, 3, inner)

	// FullPrefix decodes as more fields than a pair has.
	fields, _ = SplitPairPrefix(FullPrefix)
	require.Greater(t, fields, 1)
}

func TestCheckComparer(t *testing.T) {
	seed := uint64(time.Now().UnixNano())
	t.Logf("seed: %d", seed)
	rng := rand.New(rand.NewPCG(0, seed))

	var byteKeys [][]byte
	for range 40 {
		k := make([]byte, rng.IntN(8))
		for j := range k {
			k[j] = "ab"[rng.IntN(2)]
		}
		byteKeys = append(byteKeys, k)
	}
	stringKeys := make([]string, len(byteKeys))
	for i := range byteKeys {
		stringKeys[i] = string(byteKeys[i])
	}

	t.Run("bytes", func(t *testing.T) {
		require.NoError(t, CheckComparer(BytesComparer, byteKeys))
	})
	t.Run("string", func(t *testing.T) {
		require.NoError(t, CheckComparer(StringComparer, stringKeys))
	})
	t.Run("reverse", func(t *testing.T) {
		require.NoError(t, CheckComparer(&Comparer[[]byte]{
			CompareFrom:  Reverse[[]byte](Bytes),
			CommonPrefix: SharedPrefixLen,
			Name:         "reverse",
		}, byteKeys))
	})
	t.Run("crossover", func(t *testing.T) {
		require.NoError(t, CheckComparer(&Comparer[[]byte]{
			CompareFrom:  BytesWithCrossover(3),
			Compare:      bytes.Compare,
			CommonPrefix: SharedPrefixLen,
			Name:         "crossover",
		}, byteKeys))
	})
	t.Run("ordered", func(t *testing.T) {
		keys := []int{-3, 0, 0, 1, 7, 100}
		require.NoError(t, CheckComparer(&Comparer[int]{CompareFrom: Ordered[int](), Name: "int"}, keys))
	})
	t.Run("ptr", func(t *testing.T) {
		one, two := 1, 2
		keys := []*int{nil, &one, &two}
		require.NoError(t, CheckComparer(&Comparer[*int]{CompareFrom: Ptr(Ordered[int]()), Name: "ptr"}, keys))
	})
	t.Run("slice", func(t *testing.T) {
		keys := [][]int{nil, {1}, {1, 2}, {1, 2, 3}, {1, 3}, {2}}
		require.NoError(t, CheckComparer(&Comparer[[]int]{
			CompareFrom: Slice[int](),
			Compare:     slices.Compare[[]int],
			CommonPrefix: func(a, b []int) int {
				n := min(len(a), len(b))
				for i := range n {
					if a[i] != b[i] {
						return i
					}
				}
				return n
			},
			Name: "slice",
		}, keys))
	})
	t.Run("pair", func(t *testing.T) {
		var keys []Pair[string, int]
		for _, s := range stringKeys[:10] {
			keys = append(keys, MakePair(s, rng.IntN(3)))
		}
		require.NoError(t, CheckComparer(&Comparer[Pair[string, int]]{
			CompareFrom: PairFrom[string, int](String, Ordered[int]()),
			Compare: func(a, b Pair[string, int]) int {
				if c := cmp.Compare(a.First, b.First); c != 0 {
					return c
				}
				return cmp.Compare(a.Second, b.Second)
			},
			Name: "pair",
		}, keys))
	})
}

func TestCheckComparerDetectsViolations(t *testing.T) {
	keys := [][]byte{[]byte("abc"), []byte("abd"), []byte("b")}

	overclaims := &Comparer[[]byte]{
		CompareFrom: func(a, b []byte, knownPrefix int) (int, int) {
			c, confirmed := Bytes(a, b, knownPrefix)
			return c, confirmed + 1
		},
		CommonPrefix: SharedPrefixLen,
		Name:         "overclaims",
	}
	require.Error(t, CheckComparer(overclaims, keys))

	inverted := &Comparer[[]byte]{
		CompareFrom: Reverse[[]byte](Bytes),
		Compare:     bytes.Compare,
		Name:        "inverted",
	}
	require.Error(t, CheckComparer(inverted, keys))

	require.Panics(t, func() { _ = CheckComparer(&Comparer[[]byte]{Name: "missing"}, keys) })
}
