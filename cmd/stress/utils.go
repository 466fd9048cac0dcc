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

package main

import (
	"math/rand"

	"github.com/onflow/ptrie"
)

var runes = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_")

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func randStr(r *rand.Rand, length int) string {
	b := make([]rune, length)
	for i := 0; i < length; i++ {
		b[i] = runes[r.Intn(len(runes))]
	}
	return string(b)
}

// maskedHasher keeps only the top keepBits of the base digest, forcing
// keys into a small set of digests so collision buckets get exercised.
type maskedHasher struct {
	base     ptrie.Hasher[string]
	keepBits uint
}

var _ ptrie.Hasher[string] = maskedHasher{}

func (h maskedHasher) Hash(key string) ptrie.Digest {
	mask := ptrie.Digest(0)
	if h.keepBits > 0 {
		mask = ^ptrie.Digest(0) << (64 - h.keepBits)
	}
	return h.base.Hash(key) & mask
}

func (h maskedHasher) Equal(a, b string) bool {
	return h.base.Equal(a, b)
}

func (h maskedHasher) Less(a, b string) bool {
	return h.base.Less(a, b)
}
