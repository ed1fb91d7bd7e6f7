// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package prefixsearch

import (
	"bytes"
	"cmp"
	"unsafe"

	"github.com/cockroachdb/crlib/crbytes"
)

// SharedPrefixLen returns the largest i such that a[:i] equals b[:i].
func SharedPrefixLen(a, b []byte) int {
	return crbytes.CommonPrefix(a, b)
}

// Bytes implements CompareFrom for byte strings ordered like bytes.Compare.
// Units are bytes. The comparison starts at byte knownPrefix and extends the
// confirmed length with every further equal byte. When one key is a prefix of
// the other, the shorter key is less and the confirmed length is its length.
func Bytes(a, b []byte, knownPrefix int) (int, int) {
	n := min(len(a), len(b))
	// An untruthful claim past the end of either key must not index out of
	// range.
	i := min(max(knownPrefix, 0), n)
	i += crbytes.CommonPrefix(a[i:n], b[i:n])
	if i == n {
		return cmp.Compare(len(a), len(b)), i
	}
	if a[i] < b[i] {
		return -1, i
	}
	return +1, i
}

// String implements CompareFrom for strings with the byte-wise order of
// strings.Compare. Units are bytes.
func String(a, b string, knownPrefix int) (int, int) {
	return Bytes(unsafeBytes(a), unsafeBytes(b), knownPrefix)
}

func unsafeBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// BytesWithCrossover returns a CompareFrom for byte strings that uses the
// prefix-skipping comparison only when both keys are at least minLen bytes
// long, and a plain bytes.Compare (which confirms nothing) otherwise. For short
// keys the bookkeeping of prefix tracking costs more than it saves; the right
// value of minLen depends on the workload and is best found by benchmarking.
func BytesWithCrossover(minLen int) CompareFrom[[]byte] {
	return func(a, b []byte, knownPrefix int) (int, int) {
		if len(a) < minLen || len(b) < minLen {
			if c := bytes.Compare(a, b); c != 0 {
				return c, knownPrefix
			}
			return 0, FullPrefix
		}
		return Bytes(a, b, knownPrefix)
	}
}

// Slice returns a CompareFrom for slices of ordered elements, ordered
// lexicographically like slices.Compare. Units are elements.
func Slice[E cmp.Ordered]() CompareFrom[[]E] {
	return SliceFunc(cmp.Compare[E])
}

// SliceFunc returns a CompareFrom for slices ordered lexicographically using
// compare on the elements, like slices.CompareFunc. Units are elements.
func SliceFunc[E any](compare func(a, b E) int) CompareFrom[[]E] {
	return func(a, b []E, knownPrefix int) (int, int) {
		n := min(len(a), len(b))
		i := min(max(knownPrefix, 0), n)
		for ; i < n; i++ {
			if c := compare(a[i], b[i]); c != 0 {
				return c, i
			}
		}
		return cmp.Compare(len(a), len(b)), n
	}
}
