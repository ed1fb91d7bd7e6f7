// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package prefixsearch

import (
	"cmp"
	"math"
)

// FullPrefix is the confirmed prefix length reported by comparisons that
// cannot resume from an offset when the two keys are equal. It stands for "the
// whole key", whatever the key's length in units is.
const FullPrefix = math.MaxInt

// CompareFrom returns -1, 0, or +1 depending on whether a is 'less than',
// 'equal to' or 'greater than' b, together with the number of leading units of
// a and b that are known to be equal after the comparison.
//
// The caller claims that the first knownPrefix units of a and b are equal. An
// implementation may trust the claim and start comparing at unit knownPrefix;
// it is never required to re-verify it. The claim must be truthful: passing a
// value larger than the real common prefix of a and b yields an unspecified
// (but never crashing) result.
//
// The returned confirmed length satisfies:
//
//	knownPrefix <= confirmed <= CommonPrefix(a, b)
//
// where CommonPrefix is the longest run of equal leading units. When a and b
// are equal, confirmed is either the length of the keys in units or
// FullPrefix. When one key is a prefix of the other, confirmed is the length
// of the shorter key.
//
// Implementations must be deterministic: identical inputs always produce
// identical outputs. Calling CompareFrom again with the confirmed length it
// just returned reproduces the same ordering and confirmed length.
type CompareFrom[K any] func(a, b K, knownPrefix int) (cmp int, confirmed int)

// FromCompare adapts a total order to the CompareFrom contract. The returned
// function ignores the claimed prefix, always performs a full comparison and
// never confirms anything beyond the claim: it returns knownPrefix when the
// keys are unequal and FullPrefix when they are equal.
//
// Any ordered type satisfies the contract this way, at no loss of correctness
// but without skipping any work.
func FromCompare[K any](compare func(a, b K) int) CompareFrom[K] {
	return func(a, b K, knownPrefix int) (int, int) {
		if c := compare(a, b); c != 0 {
			return c, knownPrefix
		}
		return 0, FullPrefix
	}
}

// Ordered returns the full-comparison CompareFrom for a type with a natural
// order. See FromCompare.
func Ordered[K cmp.Ordered]() CompareFrom[K] {
	return FromCompare(cmp.Compare[K])
}

// Reverse returns a CompareFrom that orders keys in the opposite direction of
// c. Prefix lengths are unaffected: units that are equal under one order are
// equal under the other.
func Reverse[K any](c CompareFrom[K]) CompareFrom[K] {
	return func(a, b K, knownPrefix int) (int, int) {
		r, confirmed := c(a, b, knownPrefix)
		return -r, confirmed
	}
}

// Ptr returns a CompareFrom over pointers to keys ordered by c. A nil pointer
// sorts before any non-nil pointer and two nil pointers are equal.
func Ptr[K any](c CompareFrom[K]) CompareFrom[*K] {
	return func(a, b *K, knownPrefix int) (int, int) {
		switch {
		case a == nil && b == nil:
			return 0, FullPrefix
		case a == nil:
			return -1, knownPrefix
		case b == nil:
			return +1, knownPrefix
		}
		return c(*a, *b, knownPrefix)
	}
}

// Full returns the plain three-way comparison underlying c, obtained by
// comparing from the start of the keys.
func (c CompareFrom[K]) Full(a, b K) int {
	r, _ := c(a, b, 0)
	return r
}
