// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package workload generates sorted key sets with different amounts of prefix
// sharing, for tests and benchmarks of prefix-tracking searches.
package workload

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/prefixsearch"
	"github.com/cockroachdb/swiss"
	"github.com/google/uuid"
	"github.com/openacid/testkeys"
	"golang.org/x/exp/rand"
)

// Kind names a key generator.
type Kind string

const (
	// Similar keys are long byte strings made of a few long runs of repeated
	// bytes; neighbours share long prefixes.
	Similar Kind = "similar"
	// UUID keys are random textual UUIDs; neighbours share almost nothing.
	UUID Kind = "uuid"
	// Words keys come from a corpus of real-world keys.
	Words Kind = "words"
	// MVCC keys are (user key, version) pairs with long shared user key
	// prefixes and several versions per user key.
	MVCC Kind = "mvcc"
)

// Kinds lists all the generators.
var Kinds = []Kind{Similar, UUID, Words, MVCC}

// ParseKind parses the name of a generator.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", errors.Errorf("unknown workload %q (expected one of %v)", s, Kinds)
}

// Config configures a generator.
type Config struct {
	// Keys is the number of keys to generate. Generated sets may be smaller
	// after duplicates are removed.
	Keys int
	// MaxLen is the maximum key length in bytes, for generators that choose
	// lengths.
	MaxLen int
	// Seed seeds the random number generator.
	Seed uint64
	// Corpus is the name of the openacid/testkeys corpus used by Words. If
	// empty, the first corpus with at least Keys keys is used.
	Corpus string
}

// NewRand returns the random number generator used by the generators.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// ByteKeys generates a sorted, duplicate-free set of byte string keys.
func ByteKeys(kind Kind, cfg Config) ([][]byte, error) {
	rng := NewRand(cfg.Seed)
	switch kind {
	case Similar:
		return SimilarKeys(rng, cfg.Keys, cfg.MaxLen), nil
	case UUID:
		return UUIDKeys(rng, cfg.Keys)
	case Words:
		return WordKeys(cfg.Corpus, cfg.Keys)
	default:
		return nil, errors.Errorf("workload %q does not produce byte string keys", kind)
	}
}

// SimilarKeys generates up to n keys of length < maxLen. Each key starts as a
// run of zeroes; a random number of bytes is set to 0x7f, the key is rotated,
// a random number of bytes is set to 0xff and the key is rotated again. Keys
// produced this way consist of a handful of long runs, so sorted neighbours
// share long prefixes.
func SimilarKeys(rng *rand.Rand, n, maxLen int) [][]byte {
	keys := make([][]byte, 0, n)
	for range n {
		k := make([]byte, rng.Intn(max(maxLen, 1)))
		if len(k) != 0 {
			fill(k, rng.Intn(len(k)), 0x7f)
			rotateLeft(k, rng.Intn(len(k)))
			fill(k, rng.Intn(len(k)), 0xff)
			rotateLeft(k, rng.Intn(len(k)))
		}
		keys = append(keys, k)
	}
	return sortAndDedupe(keys)
}

func fill(k []byte, n int, b byte) {
	for i := range n {
		k[i] = b
	}
}

func rotateLeft(k []byte, n int) {
	slices.Reverse(k[:n])
	slices.Reverse(k[n:])
	slices.Reverse(k)
}

// UUIDKeys generates n random UUIDs in their 36-byte textual form.
func UUIDKeys(rng *rand.Rand, n int) ([][]byte, error) {
	keys := make([][]byte, 0, n)
	for range n {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return nil, errors.Wrap(err, "generating uuid")
		}
		keys = append(keys, []byte(id.String()))
	}
	return sortAndDedupe(keys), nil
}

// WordKeys returns up to n keys from the named openacid/testkeys corpus.
func WordKeys(corpus string, n int) ([][]byte, error) {
	if corpus == "" {
		for _, name := range testkeys.AssetNames() {
			if words := testkeys.Load(name); len(words) >= n {
				return wordsToKeys(words, n), nil
			}
		}
		return nil, errors.Errorf("no key corpus with at least %d keys", n)
	}
	if !slices.Contains(testkeys.AssetNames(), corpus) {
		return nil, errors.Errorf("unknown key corpus %q", corpus)
	}
	return wordsToKeys(testkeys.Load(corpus), n), nil
}

func wordsToKeys(words []string, n int) [][]byte {
	if n > 0 && len(words) > n {
		words = words[:n]
	}
	keys := make([][]byte, len(words))
	for i, w := range words {
		keys[i] = []byte(w)
	}
	return sortAndDedupe(keys)
}

// MVCCKey is a user key with a version. Versions of the same user key sort
// newest first.
type MVCCKey = prefixsearch.Pair[[]byte, uint64]

// MVCCCompare is the CompareFrom for MVCCKey.
var MVCCCompare = prefixsearch.PairFrom[[]byte, uint64](prefixsearch.Bytes, prefixsearch.Reverse(prefixsearch.Ordered[uint64]()))

// MVCCKeys generates about n MVCC keys: user keys share a table prefix and a
// long random-length run of a common byte, and each has between one and four
// versions.
func MVCCKeys(rng *rand.Rand, n, maxLen int) []MVCCKey {
	keys := make([]MVCCKey, 0, n)
	for len(keys) < n {
		userKey := fmt.Appendf(nil, "/Table/%d/1/", 50+rng.Intn(4))
		pad := rng.Intn(max(maxLen-len(userKey)-8, 1))
		userKey = append(userKey, bytes.Repeat([]byte{'x'}, pad)...)
		userKey = fmt.Appendf(userKey, "%08d", rng.Intn(1_000_000))
		versions := 1 + rng.Intn(4)
		for v := range versions {
			keys = append(keys, prefixsearch.MakePair(userKey, uint64(100*(v+1)+rng.Intn(100))))
		}
	}
	slices.SortFunc(keys, MVCCCompare.Full)
	return slices.CompactFunc(keys, func(a, b MVCCKey) bool {
		return MVCCCompare.Full(a, b) == 0
	})
}

func sortAndDedupe(keys [][]byte) [][]byte {
	var seen swiss.Map[string, struct{}]
	seen.Init(len(keys))
	out := keys[:0]
	for _, k := range keys {
		if _, ok := seen.Get(string(k)); ok {
			continue
		}
		seen.Put(string(k), struct{}{})
		out = append(out, k)
	}
	slices.SortFunc(out, bytes.Compare)
	return out
}

// Targets returns n search targets drawn from keys: about half are keys from
// the set and the rest are perturbed copies that are usually absent.
func Targets[K any](rng *rand.Rand, keys []K, n int, perturb func(rng *rand.Rand, k K) K) []K {
	if len(keys) == 0 {
		return nil
	}
	targets := make([]K, n)
	for i := range targets {
		k := keys[rng.Intn(len(keys))]
		if rng.Intn(2) == 0 {
			k = perturb(rng, k)
		}
		targets[i] = k
	}
	return targets
}

// PerturbBytes returns a copy of k with its last byte changed or, for an empty
// key, a single random byte.
func PerturbBytes(rng *rand.Rand, k []byte) []byte {
	if len(k) == 0 {
		return []byte{byte(rng.Intn(256))}
	}
	p := slices.Clone(k)
	p[len(p)-1] += byte(1 + rng.Intn(255))
	return p
}

// PerturbMVCC returns k with a different version.
func PerturbMVCC(rng *rand.Rand, k MVCCKey) MVCCKey {
	return prefixsearch.MakePair(k.First, k.Second+uint64(1+rng.Intn(50)))
}
