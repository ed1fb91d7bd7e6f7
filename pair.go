// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package prefixsearch

import (
	"fmt"
	"math/bits"
)

// Pair is a composite key of two fields ordered lexicographically: first by
// First, then by Second.
type Pair[A, B any] struct {
	First  A
	Second B
}

// MakePair constructs a Pair.
func MakePair[A, B any](a A, b B) Pair[A, B] {
	return Pair[A, B]{First: a, Second: b}
}

func (p Pair[A, B]) String() string {
	return fmt.Sprintf("(%v, %v)", p.First, p.Second)
}

// Prefix lengths of pairs carry two counters: the number of leading fields
// known to be equal (in the high bits) and the prefix length confirmed inside
// the first field that is not known to be equal (in the low bits). Ordering
// packed values numerically is the same as ordering the flattened unit
// sequence First..., Second..., so the smaller of two packed prefixes is also
// the shorter flattened prefix. Each counter gets half of an int; on 32-bit
// platforms inner prefixes are limited to 1<<16-1 units.
const (
	pairFieldShift = bits.UintSize / 2
	pairInnerMask  = 1<<pairFieldShift - 1
	// The field count stays clear of the sign bit.
	pairMaxFields = 1<<(pairFieldShift-1) - 1
)

// PairPrefix returns the packed prefix length of a pair whose first fields
// leading fields are equal and whose next field shares inner units. Counters
// too large to be represented are clamped, which only claims less than what
// was confirmed.
func PairPrefix(fields, inner int) int {
	fields = min(fields, pairMaxFields)
	inner = min(inner, pairInnerMask)
	return fields<<pairFieldShift | inner
}

// SplitPairPrefix is the inverse of PairPrefix.
func SplitPairPrefix(prefix int) (fields, inner int) {
	return prefix >> pairFieldShift, prefix & pairInnerMask
}

// PairFrom returns a CompareFrom for pairs that compares First with ca and,
// when the first fields are equal, Second with cb. Each field comparator
// resumes from the prefix previously confirmed inside that field, so a long
// common First (for example the user key of an MVCC key) is not rescanned once
// the search has confirmed it against both bounds.
func PairFrom[A, B any](ca CompareFrom[A], cb CompareFrom[B]) CompareFrom[Pair[A, B]] {
	return func(a, b Pair[A, B], knownPrefix int) (int, int) {
		fields, inner := SplitPairPrefix(max(knownPrefix, 0))
		if fields == 0 {
			c, confirmed := ca(a.First, b.First, inner)
			if c != 0 {
				return c, PairPrefix(0, confirmed)
			}
			inner = 0
		}
		if fields <= 1 {
			c, confirmed := cb(a.Second, b.Second, inner)
			if c != 0 {
				return c, PairPrefix(1, confirmed)
			}
		}
		return 0, FullPrefix
	}
}
