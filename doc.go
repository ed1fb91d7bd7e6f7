// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package prefixsearch implements binary searches that avoid re-comparing key
// prefixes already known to match.
//
// A plain binary search over keys that share long prefixes (file paths, URLs,
// composite database keys) compares those prefixes again at every probe. The
// searches in this package track how many leading units the target is known to
// share with the tightest lower and upper bounds seen so far. Every key between
// the two bounds shares at least the smaller of those prefixes with the target,
// so each probe resumes its comparison from there.
//
// The comparison contract is CompareFrom. Bytes, String, Slice and SliceFunc
// resume from the claimed prefix; FromCompare and Ordered adapt any total order
// at no loss of correctness; Reverse, Ptr and PairFrom compose comparators for
// derived and composite key types.
//
// Search and SearchFunc operate on sorted sequences and return a lower-bound
// insertion point. SearchTree descends any binary search tree exposed through
// the Tree interface. Explain and ExplainTree also return every probe, which is
// useful to see how much work prefix tracking saves.
package prefixsearch
