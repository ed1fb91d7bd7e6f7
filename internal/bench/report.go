// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package bench

import (
	"fmt"
	"io"
	"time"

	"github.com/cockroachdb/crlib/crhumanize"
	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
)

// WriteTable writes a table comparing the modes of the report.
func (r *Report) WriteTable(w io.Writer) {
	fmt.Fprintf(w, "workload %s: %d keys (avg %.1f bytes), %d searches\n",
		r.Workload, r.Keys, r.AvgKeyLen, r.Searches)
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"mode", "comparisons", "skipped", "confirmed", "skipped%", "p50", "p99", "mean", "elapsed"})
	tbl.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, m := range r.Modes {
		tbl.Append([]string{
			string(m.Mode),
			string(crhumanize.Count(m.Stats.Calls, crhumanize.Compact)),
			string(crhumanize.Count(m.Stats.SkippedUnits, crhumanize.Compact)),
			string(crhumanize.Count(m.Stats.ConfirmedUnits, crhumanize.Compact)),
			string(crhumanize.Float(100*m.Stats.SkippedFraction(), 1))+"%",
			time.Duration(m.Latency.ValueAtQuantile(50)).String(),
			time.Duration(m.Latency.ValueAtQuantile(99)).String(),
			time.Duration(m.Latency.Mean()).String(),
			m.Elapsed.Round(time.Microsecond).String(),
		})
	}
	tbl.Render()
}

// Plot returns an ASCII plot of the average number of units skipped per
// comparison, by target key length. Skipped units grow with the key length
// when neighbouring keys share long prefixes; that is where prefix tracking
// pays off.
func (r *Report) Plot(height int) string {
	if len(r.SkippedByLen) == 0 {
		return ""
	}
	return asciigraph.Plot(r.SkippedByLen,
		asciigraph.Height(height),
		asciigraph.Caption(fmt.Sprintf("units skipped per comparison, by key length (x%d bytes)", r.BucketWidth)))
}
