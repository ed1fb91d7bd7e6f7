// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package bench compares prefix-tracking searches with plain binary searches
// over generated key sets.
package bench

import (
	"bytes"
	"context"
	"runtime"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/cockroachdb/crlib/crtime"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/prefixsearch"
	"github.com/cockroachdb/prefixsearch/internal/base"
	"github.com/cockroachdb/prefixsearch/internal/workload"
	"github.com/cockroachdb/prefixsearch/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

const (
	minLatency = time.Nanosecond
	maxLatency = 10 * time.Millisecond
)

// Options configures a benchmark run.
type Options struct {
	// Workload selects the key generator.
	Workload workload.Kind
	// Keys is the number of keys to generate.
	Keys int
	// Searches is the number of searches per mode.
	Searches int
	// MaxLen is the maximum generated key length.
	MaxLen int
	// Corpus is the key corpus for the words workload.
	Corpus string
	// Seed seeds key and target generation.
	Seed uint64
	// Concurrency is the number of workers searching the (shared, immutable)
	// key set at the same time.
	Concurrency int
	// Crossover is the minimum key length at which byte string comparisons
	// resume from the tracked prefix; shorter keys are compared in full. Zero
	// always tracks.
	Crossover int
	// LenBuckets is the number of key length buckets in the report's plot.
	LenBuckets int
	// Logger is used to report progress.
	Logger base.Logger
	// ConfirmedUnits, if set, observes the number of units confirmed by each
	// comparison of the tracked searches.
	ConfirmedUnits prometheus.Histogram
}

// EnsureDefaults ensures that the default values for all options are set if a
// valid value was not already specified. Returns the new options.
func (o *Options) EnsureDefaults() *Options {
	if o == nil {
		o = &Options{}
	}
	n := *o
	if n.Workload == "" {
		n.Workload = workload.Similar
	}
	if n.Keys <= 0 {
		n.Keys = 1 << 14
	}
	if n.Searches <= 0 {
		n.Searches = n.Keys
	}
	if n.MaxLen <= 0 {
		n.MaxLen = 1 << 10
	}
	if n.Concurrency <= 0 {
		n.Concurrency = runtime.GOMAXPROCS(0)
	}
	if n.LenBuckets <= 0 {
		n.LenBuckets = 32
	}
	if n.Logger == nil {
		n.Logger = base.DefaultLogger{}
	}
	return &n
}

// Mode names the two kinds of search being compared.
type Mode string

const (
	// Tracked searches use prefix tracking.
	Tracked Mode = "tracked"
	// Naive searches compare every probed key from the start.
	Naive Mode = "naive"
)

// ModeReport holds the results for one mode.
type ModeReport struct {
	Mode    Mode
	Stats   metrics.CompareStats
	Latency *hdrhistogram.Histogram
	Elapsed time.Duration
}

// Report holds the results of a run.
type Report struct {
	Workload  workload.Kind
	Keys      int
	Searches  int
	AvgKeyLen float64
	Modes     []ModeReport
	// SkippedByLen[i] is the average number of units skipped per comparison
	// by tracked searches for targets in the i-th key length bucket.
	SkippedByLen []float64
	// BucketWidth is the key length range covered by each bucket.
	BucketWidth int
}

// Mode returns the report of the given mode.
func (r *Report) Mode(m Mode) *ModeReport {
	for i := range r.Modes {
		if r.Modes[i].Mode == m {
			return &r.Modes[i]
		}
	}
	return nil
}

// Run generates a key set and a set of targets, searches for every target with
// and without prefix tracking, verifies that both agree, and reports the work
// done by each.
func Run(ctx context.Context, opts *Options) (*Report, error) {
	o := opts.EnsureDefaults()
	cfg := workload.Config{Keys: o.Keys, MaxLen: o.MaxLen, Seed: o.Seed, Corpus: o.Corpus}
	rng := workload.NewRand(o.Seed + 1)

	if o.Workload == workload.MVCC {
		keys := workload.MVCCKeys(workload.NewRand(o.Seed), o.Keys, o.MaxLen)
		targets := workload.Targets(rng, keys, o.Searches, workload.PerturbMVCC)
		o.Logger.Infof("generated %d %s keys", len(keys), o.Workload)
		return run(ctx, o, keys, targets, workload.MVCCCompare, workload.MVCCCompare.Full,
			func(k workload.MVCCKey) int { return len(k.First) })
	}

	keys, err := workload.ByteKeys(o.Workload, cfg)
	if err != nil {
		return nil, err
	}
	targets := workload.Targets(rng, keys, o.Searches, workload.PerturbBytes)
	o.Logger.Infof("generated %d %s keys", len(keys), o.Workload)
	tracked := prefixsearch.CompareFrom[[]byte](prefixsearch.Bytes)
	if o.Crossover > 0 {
		tracked = prefixsearch.BytesWithCrossover(o.Crossover)
	}
	return run(ctx, o, keys, targets, tracked, bytes.Compare, func(k []byte) int { return len(k) })
}

type result struct {
	index int
	found bool
}

func run[K any](
	ctx context.Context,
	o *Options,
	keys, targets []K,
	tracked prefixsearch.CompareFrom[K],
	full func(a, b K) int,
	keyLen func(K) int,
) (*Report, error) {
	r := &Report{
		Workload: o.Workload,
		Keys:     len(keys),
		Searches: len(targets),
	}
	maxLen := 1
	for _, k := range keys {
		r.AvgKeyLen += float64(keyLen(k))
		maxLen = max(maxLen, keyLen(k)+1)
	}
	if len(keys) > 0 {
		r.AvgKeyLen /= float64(len(keys))
	}
	r.BucketWidth = (maxLen + o.LenBuckets - 1) / o.LenBuckets

	// The naive results are the reference for the tracked searches.
	expected := make([]result, len(targets))
	naive, err := runMode(ctx, o, Naive, targets, func(w *worker, i int, t K) error {
		cmp := metrics.Instrument(prefixsearch.FromCompare(full), &w.stats, nil)
		idx, found := prefixsearch.Search(keys, t, cmp)
		expected[i] = result{idx, found}
		return nil
	})
	if err != nil {
		return nil, err
	}

	bucketStats := make([][]metrics.CompareStats, o.Concurrency)
	for i := range bucketStats {
		bucketStats[i] = make([]metrics.CompareStats, o.LenBuckets)
	}
	trackedReport, err := runMode(ctx, o, Tracked, targets, func(w *worker, i int, t K) error {
		var s metrics.CompareStats
		cmp := metrics.Instrument(tracked, &s, o.ConfirmedUnits)
		idx, found := prefixsearch.Search(keys, t, cmp)
		if got := (result{idx, found}); got != expected[i] {
			return errors.AssertionFailedf("search %d: tracked search returned %+v, naive search returned %+v",
				i, got, expected[i])
		}
		w.stats.Accumulate(s)
		b := min(keyLen(t)/r.BucketWidth, o.LenBuckets-1)
		bucketStats[w.id][b].Accumulate(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.Modes = []ModeReport{*trackedReport, *naive}

	r.SkippedByLen = make([]float64, o.LenBuckets)
	for b := range r.SkippedByLen {
		var s metrics.CompareStats
		for w := range bucketStats {
			s.Accumulate(bucketStats[w][b])
		}
		if s.Calls > 0 {
			r.SkippedByLen[b] = float64(s.SkippedUnits) / float64(s.Calls)
		}
	}
	return r, nil
}

type worker struct {
	id      int
	stats   metrics.CompareStats
	latency *hdrhistogram.Histogram
}

func newHistogram() *hdrhistogram.Histogram {
	return hdrhistogram.New(minLatency.Nanoseconds(), maxLatency.Nanoseconds(), 2)
}

func runMode[K any](
	ctx context.Context, o *Options, mode Mode, targets []K, search func(w *worker, i int, t K) error,
) (*ModeReport, error) {
	workers := make([]*worker, o.Concurrency)
	start := crtime.NowMono()
	g, ctx := errgroup.WithContext(ctx)
	for id := range workers {
		w := &worker{id: id, latency: newHistogram()}
		workers[id] = w
		g.Go(func() error {
			// Worker id handles targets id, id+Concurrency, ...
			for i := id; i < len(targets); i += o.Concurrency {
				if err := ctx.Err(); err != nil {
					return err
				}
				t0 := crtime.NowMono()
				if err := search(w, i, targets[i]); err != nil {
					return err
				}
				elapsed := min(max(t0.Elapsed(), minLatency), maxLatency)
				if err := w.latency.RecordValue(elapsed.Nanoseconds()); err != nil {
					return errors.Wrapf(err, "%s: recording latency", mode)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	m := &ModeReport{Mode: mode, Latency: newHistogram(), Elapsed: start.Elapsed()}
	for _, w := range workers {
		m.Stats.Accumulate(w.stats)
		m.Latency.Merge(w.latency)
	}
	o.Logger.Infof("%s: %d searches in %s: %s", mode, len(targets), m.Elapsed, m.Stats)
	return m, nil
}
