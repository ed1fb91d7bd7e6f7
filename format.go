// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package prefixsearch

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/cockroachdb/redact"
)

// FormatBytes formats a byte slice using hexadecimal escapes for non-ASCII
// data.
type FormatBytes []byte

const lowerhex = "0123456789abcdef"

// Format implements the fmt.Formatter interface.
func (p FormatBytes) Format(s fmt.State, c rune) {
	buf := make([]byte, 0, len(p))
	for _, b := range p {
		if b < utf8.RuneSelf && strconv.IsPrint(rune(b)) {
			buf = append(buf, b)
			continue
		}
		buf = append(buf, `\x`...)
		buf = append(buf, lowerhex[b>>4])
		buf = append(buf, lowerhex[b&0xF])
	}
	s.Write(buf)
}

// SafeFormat implements redact.SafeFormatter.
func (s Step) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("probe=%d start=%d cmp=%s confirmed=%s",
		s.Probe, s.Start, redact.SafeString(cmpString(s.Cmp)), redact.SafeString(prefixString(s.Confirmed)))
}

func (s Step) String() string {
	return redact.StringWithoutMarkers(s)
}

func cmpString(c int) string {
	switch {
	case c < 0:
		return "-1"
	case c > 0:
		return "+1"
	}
	return "0"
}

func prefixString(p int) string {
	if p == FullPrefix {
		return "full"
	}
	return strconv.Itoa(p)
}
