// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package prefixsearch

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// FormatKey returns a formatter for a key.
type FormatKey[K any] func(key K) fmt.Formatter

// Comparer bundles a CompareFrom with the plain comparison it must agree with
// and a few helpers used by tooling and tests.
type Comparer[K any] struct {
	// CompareFrom must always be specified.
	CompareFrom CompareFrom[K]

	// Compare is the full three-way comparison. It defaults to comparing from
	// the start of the keys with CompareFrom.
	Compare func(a, b K) int

	// CommonPrefix is optional. When set, it returns the true number of equal
	// leading units of two keys and CheckComparer uses it to validate the
	// confirmed lengths reported by CompareFrom.
	CommonPrefix func(a, b K) int

	// FormatKey defaults to formatting the key with %v.
	FormatKey FormatKey[K]

	// Name is the name of the comparer.
	Name string
}

// EnsureDefaults ensures that all non-optional fields are set.
//
// If any fields need to be set, returns a modified copy of c.
func (c *Comparer[K]) EnsureDefaults() *Comparer[K] {
	if c.CompareFrom == nil || c.Name == "" {
		panic("invalid Comparer: mandatory field not set")
	}
	if c.Compare != nil && c.FormatKey != nil {
		return c
	}
	n := &Comparer[K]{}
	*n = *c
	if n.Compare == nil {
		n.Compare = n.CompareFrom.Full
	}
	if n.FormatKey == nil {
		n.FormatKey = func(key K) fmt.Formatter { return formatAny[K]{key} }
	}
	return n
}

type formatAny[K any] struct {
	key K
}

// Format implements the fmt.Formatter interface.
func (f formatAny[K]) Format(s fmt.State, _ rune) {
	fmt.Fprintf(s, "%v", f.key)
}

// BytesComparer is the Comparer for byte strings in bytes.Compare order.
var BytesComparer = &Comparer[[]byte]{
	CompareFrom:  Bytes,
	Compare:      bytes.Compare,
	CommonPrefix: SharedPrefixLen,
	FormatKey:    func(key []byte) fmt.Formatter { return FormatBytes(key) },
	Name:         "prefixsearch.Bytes",
}

// StringComparer is the Comparer for strings in strings.Compare order.
var StringComparer = &Comparer[string]{
	CompareFrom: String,
	Compare:     strings.Compare,
	CommonPrefix: func(a, b string) int {
		return SharedPrefixLen(unsafeBytes(a), unsafeBytes(b))
	},
	FormatKey: func(key string) fmt.Formatter { return FormatBytes(key) },
	Name:      "prefixsearch.String",
}

// CheckComparer is a mini test suite that verifies a CompareFrom
// implementation against the plain comparison of the Comparer, for every
// ordered pair of the given keys. It checks that:
//
//   - the ordering agrees with Compare for every truthful prefix claim;
//   - the confirmed length is never below the claim and never above the
//     true common prefix (when CommonPrefix is known);
//   - comparing again from the confirmed length reproduces the result;
//   - swapping the keys reverses the ordering and confirms the same length.
func CheckComparer[K any](c *Comparer[K], keys []K) error {
	c = c.EnsureDefaults()
	for _, a := range keys {
		for _, b := range keys {
			if err := checkPair(c, a, b); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkPair[K any](c *Comparer[K], a, b K) error {
	want := sign(c.Compare(a, b))
	c0, p0 := c.CompareFrom(a, b, 0)
	if sign(c0) != want {
		return errors.Errorf("%s: CompareFrom(%s, %s, 0)=%d, expected %d",
			c.Name, c.FormatKey(a), c.FormatKey(b), c0, want)
	}
	if r, p := c.CompareFrom(b, a, 0); sign(r) != -want || p != p0 {
		return errors.Errorf("%s: CompareFrom(%s, %s, 0)=(%d, %d) is not the reverse of (%d, %d)",
			c.Name, c.FormatKey(b), c.FormatKey(a), r, p, c0, p0)
	}

	// The largest claim known to be truthful.
	limit := 0
	if c.CommonPrefix != nil {
		limit = c.CommonPrefix(a, b)
		if want == 0 {
			limit = max(limit, p0)
		}
	} else if p0 != FullPrefix || want == 0 {
		limit = p0
	}

	claims := []int{0, limit}
	if c.CommonPrefix != nil {
		// Every value up to the common prefix is a truthful claim. Without
		// CommonPrefix we only know the endpoints to be valid prefix lengths.
		claims = append(claims, limit/2)
	}
	for _, k := range claims {
		r, confirmed := c.CompareFrom(a, b, k)
		if sign(r) != want {
			return errors.Errorf("%s: CompareFrom(%s, %s, %d)=%d, expected %d",
				c.Name, c.FormatKey(a), c.FormatKey(b), k, r, want)
		}
		if confirmed < k {
			return errors.Errorf("%s: CompareFrom(%s, %s, %d) confirmed %d, less than the claim",
				c.Name, c.FormatKey(a), c.FormatKey(b), k, confirmed)
		}
		if c.CommonPrefix != nil && want != 0 && confirmed > limit {
			return errors.Errorf("%s: CompareFrom(%s, %s, %d) confirmed %d, more than the common prefix %d",
				c.Name, c.FormatKey(a), c.FormatKey(b), k, confirmed, limit)
		}
		r2, confirmed2 := c.CompareFrom(a, b, confirmed)
		if r2 != r || confirmed2 != confirmed {
			return errors.Errorf("%s: CompareFrom(%s, %s, %d)=(%d, %d), expected (%d, %d) when repeated",
				c.Name, c.FormatKey(a), c.FormatKey(b), confirmed, r2, confirmed2, r, confirmed)
		}
	}
	return nil
}

func sign(c int) int {
	switch {
	case c < 0:
		return -1
	case c > 0:
		return +1
	}
	return 0
}
