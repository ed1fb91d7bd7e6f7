// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package metrics provides instrumentation for prefix-aware comparisons.
package metrics

import (
	"github.com/cockroachdb/crlib/crhumanize"
	"github.com/cockroachdb/prefixsearch"
	"github.com/cockroachdb/prefixsearch/internal/invariants"
	"github.com/cockroachdb/redact"
	"github.com/prometheus/client_golang/prometheus"
)

// CompareStats counts the work done by the comparisons of one or more
// searches. Unit counts are in the units of the key type (bytes for byte
// strings, elements for slices); for composite keys with packed prefix lengths
// they are only meaningful as relative values.
type CompareStats struct {
	// Calls is the number of comparisons.
	Calls uint64
	// Equal is the number of comparisons that found equal keys.
	Equal uint64
	// SkippedUnits is the total of the prefix lengths the comparisons were told
	// to skip.
	SkippedUnits uint64
	// ConfirmedUnits is the total number of units confirmed equal beyond the
	// skipped prefix. Comparisons that cannot resume from an offset confirm
	// nothing.
	ConfirmedUnits uint64
}

// Accumulate increases the counts by the given amounts.
func (s *CompareStats) Accumulate(other CompareStats) {
	s.Calls += other.Calls
	s.Equal += other.Equal
	s.SkippedUnits += other.SkippedUnits
	s.ConfirmedUnits += other.ConfirmedUnits
}

// SkippedFraction returns the fraction of the units that were either skipped
// or confirmed which the comparisons did not have to look at.
func (s CompareStats) SkippedFraction() float64 {
	if total := s.SkippedUnits + s.ConfirmedUnits; total > 0 {
		return float64(s.SkippedUnits) / float64(total)
	}
	return 0
}

// IsZero returns true if no comparison was counted.
func (s CompareStats) IsZero() bool {
	return s == CompareStats{}
}

func (s CompareStats) String() string {
	return redact.StringWithoutMarkers(s)
}

// SafeFormat implements redact.SafeFormatter.
func (s CompareStats) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%s comparisons (%s equal), %s units skipped, %s units confirmed",
		crhumanize.Count(s.Calls, crhumanize.Compact),
		crhumanize.Count(s.Equal, crhumanize.Compact),
		crhumanize.Count(s.SkippedUnits, crhumanize.Compact),
		crhumanize.Count(s.ConfirmedUnits, crhumanize.Compact))
}

// Instrument wraps cmp so that every comparison is counted in stats and the
// number of newly confirmed units is observed in confirmedUnits. Either of
// stats and confirmedUnits may be nil.
//
// stats is updated without synchronization: concurrent searches must each use
// their own CompareStats and Accumulate them afterwards. Prometheus histograms
// are safe for concurrent use.
func Instrument[K any](
	cmp prefixsearch.CompareFrom[K], stats *CompareStats, confirmedUnits prometheus.Histogram,
) prefixsearch.CompareFrom[K] {
	return func(a, b K, knownPrefix int) (int, int) {
		c, confirmed := cmp(a, b, knownPrefix)
		var n uint64
		if confirmed != prefixsearch.FullPrefix {
			n = invariants.SafeSub(uint64(confirmed), uint64(knownPrefix))
		}
		if stats != nil {
			stats.Calls++
			if c == 0 {
				stats.Equal++
			}
			stats.SkippedUnits += uint64(knownPrefix)
			stats.ConfirmedUnits += n
		}
		if confirmedUnits != nil {
			confirmedUnits.Observe(float64(n))
		}
		return c, confirmed
	}
}
