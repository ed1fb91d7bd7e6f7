// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package prefixsearch

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/prefixsearch/internal/invariants"
)

// Search searches for target in keys, which must be sorted in increasing order
// according to cmp. It returns the index of a key equal to target and true, or
// the position where target would be inserted to keep keys sorted and false.
// The insertion point is the index of the first key greater than target, or
// len(keys).
//
// Search performs the same probes as a plain binary search but tracks the
// prefix length the target is known to share with the tightest lower and upper
// bounds seen so far. Each probe compares from the smaller of the two, which is
// a prefix every key between the bounds shares with the target.
//
// Search does not modify keys and keeps all of its state on the stack; it is
// safe to call concurrently as long as keys is not being modified.
func Search[K any](keys []K, target K, cmp CompareFrom[K]) (index int, found bool) {
	// Same loop as search, without the at closure or step recording.
	var lowerPrefix, upperPrefix int
	lo, hi := 0, len(keys)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		start := min(lowerPrefix, upperPrefix)
		c, confirmed := cmp(target, keys[mid], start)
		if invariants.Enabled {
			checkProbe(start, confirmed)
		}
		switch {
		case c < 0:
			hi = mid
			upperPrefix = confirmed
		case c > 0:
			lo = mid + 1
			lowerPrefix = confirmed
		default:
			return mid, true
		}
	}
	return lo, false
}

// SearchFunc is like Search, for a sorted collection of n keys where the key at
// index i is at(i).
func SearchFunc[K any](n int, at func(i int) K, target K, cmp CompareFrom[K]) (index int, found bool) {
	return search(n, at, target, cmp, nil)
}

// Step describes one probe of a search.
type Step struct {
	// Probe is the index of the probed key for a search over a sorted
	// sequence, or the depth of the probed node (the root is at depth 0) for a
	// tree descent.
	Probe int
	// Start is the prefix length the comparison was told to skip.
	Start int
	// Cmp is the ordering of the target relative to the probed key.
	Cmp int
	// Confirmed is the confirmed prefix length returned by the comparison.
	Confirmed int
}

// Explain is like Search but also returns every probe made along the way.
func Explain[K any](keys []K, target K, cmp CompareFrom[K]) (index int, found bool, steps []Step) {
	index, found = search(len(keys), func(i int) K { return keys[i] }, target, cmp, &steps)
	return index, found, steps
}

func search[K any](
	n int, at func(i int) K, target K, cmp CompareFrom[K], steps *[]Step,
) (int, bool) {
	var lowerPrefix, upperPrefix int
	lo, hi := 0, n
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		key := at(mid)
		start := min(lowerPrefix, upperPrefix)
		c, confirmed := cmp(target, key, start)
		if invariants.Enabled {
			checkProbe(start, confirmed)
		}
		if steps != nil {
			*steps = append(*steps, Step{Probe: mid, Start: start, Cmp: sign(c), Confirmed: confirmed})
		}
		switch {
		case c < 0:
			hi = mid
			upperPrefix = confirmed
		case c > 0:
			lo = mid + 1
			lowerPrefix = confirmed
		default:
			return mid, true
		}
	}
	return lo, false
}

// NaiveSearch is a plain binary search with the same probe sequence as Search,
// comparing every probed key from the start with compare. It is the baseline
// that Search must agree with.
func NaiveSearch[K any](keys []K, target K, compare func(a, b K) int) (index int, found bool) {
	lo, hi := 0, len(keys)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		switch c := compare(target, keys[mid]); {
		case c < 0:
			hi = mid
		case c > 0:
			lo = mid + 1
		default:
			return mid, true
		}
	}
	return lo, false
}

// checkProbe verifies the confirmed prefix length returned by a comparison.
// It is only called in invariant builds and must not call the comparator,
// which may be instrumented.
func checkProbe(start, confirmed int) {
	if confirmed < start {
		panic(errors.AssertionFailedf("confirmed prefix %d is shorter than the claimed prefix %d",
			confirmed, start))
	}
}
