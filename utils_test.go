/*
 * Ptrie - Persistent Hash-Trie Maps
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package ptrie

import (
	"flag"
	"math/rand"
	"sort"
	"testing"
	"time"
)

var runes = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_")

var seed = flag.Int64("seed", 0, "seed for pseudo-random source")

func newRand(tb testing.TB) *rand.Rand {
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	// Benchmarks always log, so only log for tests which
	// will only log with -v flag or on error.
	if t, ok := tb.(*testing.T); ok {
		t.Logf("seed: %d\n", *seed)
	}

	return rand.New(rand.NewSource(*seed))
}

// randStr returns random UTF-8 string of given length.
func randStr(r *rand.Rand, length int) string {
	b := make([]rune, length)
	for i := 0; i < length; i++ {
		b[i] = runes[r.Intn(len(runes))]
	}
	return string(b)
}

// knuthHasher hashes uint64 keys with the 32-bit Knuth multiplicative
// hash. The digest occupies the low 32 bits of the 64-bit digest space,
// which keeps trie order equal to numeric digest order while exercising
// long shared prefixes.
type knuthHasher struct{}

var _ Hasher[uint64] = knuthHasher{}

func (knuthHasher) Hash(key uint64) Digest {
	return Digest(uint32(key * 2654435761))
}

func (knuthHasher) Equal(a, b uint64) bool {
	return a == b
}

func (knuthHasher) Less(a, b uint64) bool {
	return a < b
}

// constHasher sends every key to one digest, forcing all bindings into a
// single collision bucket.
type constHasher struct {
	digest Digest
}

var _ Hasher[uint64] = constHasher{}

func (h constHasher) Hash(key uint64) Digest {
	return h.digest
}

func (constHasher) Equal(a, b uint64) bool {
	return a == b
}

func (constHasher) Less(a, b uint64) bool {
	return a < b
}

// groupHasher maps keys onto a small set of digests so that collisions
// and ordinary trie structure occur together.
type groupHasher struct {
	groups uint64
}

var _ Hasher[uint64] = groupHasher{}

func (h groupHasher) Hash(key uint64) Digest {
	return Digest(key%h.groups) << 32
}

func (groupHasher) Equal(a, b uint64) bool {
	return a == b
}

func (groupHasher) Less(a, b uint64) bool {
	return a < b
}

func collectEntries[K any, V comparable](m PersistentMap[K, V]) []mapEntry[K, V] {
	var entries []mapEntry[K, V]
	for k, v := range m.All() {
		entries = append(entries, mapEntry[K, V]{key: k, value: v})
	}
	return entries
}

// expectedEntries returns model's non-default bindings sorted in the
// hash-lexicographic order the iterator must produce.
func expectedEntries(
	hasher Hasher[uint64],
	model map[uint64]uint64,
	defValue uint64,
) []mapEntry[uint64, uint64] {
	var entries []mapEntry[uint64, uint64]
	for k, v := range model {
		if v != defValue {
			entries = append(entries, mapEntry[uint64, uint64]{key: k, value: v})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		ha, hb := hasher.Hash(entries[i].key), hasher.Hash(entries[j].key)
		if ha != hb {
			return ha < hb
		}
		return hasher.Less(entries[i].key, entries[j].key)
	})
	return entries
}
