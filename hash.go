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
	"bytes"
	"encoding/binary"

	"github.com/dchest/siphash"
	"github.com/fxamacker/circlehash"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
)

// Digest is a 64-bit key hash. Bits are addressed starting from the most
// significant bit, so the order of entries in the trie agrees with unsigned
// numeric comparison of digests.
type Digest uint64

const digestBits = 64

type bitSide int

const (
	sideLeft bitSide = iota
	sideRight
)

// bitAt returns bit pos of the digest, with bit 0 being the most
// significant.
func (d Digest) bitAt(pos int) bitSide {
	if d>>(digestBits-1-pos)&1 != 0 {
		return sideRight
	}
	return sideLeft
}

// Hasher supplies key hashing, equality, and ordering for a map family.
// The ordering is used for collision buckets and iterator tie-breaking,
// so it must be consistent with Equal.
//
// Digests need high variance in their high bits. Identity hashes on small
// integers put all variance in the low bits and degrade the trie into a
// long spine.
type Hasher[K any] interface {
	Hash(K) Digest
	Equal(a, b K) bool
	Less(a, b K) bool
}

// stringCircleHasher hashes string keys with seeded CircleHash64.
type stringCircleHasher struct {
	seed uint64
}

var _ Hasher[string] = stringCircleHasher{}

// NewStringHasher returns the default string hasher, backed by CircleHash64.
func NewStringHasher(seed uint64) Hasher[string] {
	return stringCircleHasher{seed: seed}
}

func (h stringCircleHasher) Hash(key string) Digest {
	return Digest(circlehash.HashString64(key, h.seed))
}

func (h stringCircleHasher) Equal(a, b string) bool {
	return a == b
}

func (h stringCircleHasher) Less(a, b string) bool {
	return a < b
}

// bytesCircleHasher hashes []byte keys with seeded CircleHash64.
type bytesCircleHasher struct {
	seed uint64
}

var _ Hasher[[]byte] = bytesCircleHasher{}

// NewBytesHasher returns the default []byte hasher, backed by CircleHash64.
func NewBytesHasher(seed uint64) Hasher[[]byte] {
	return bytesCircleHasher{seed: seed}
}

func (h bytesCircleHasher) Hash(key []byte) Digest {
	return Digest(circlehash.Hash64(key, h.seed))
}

func (h bytesCircleHasher) Equal(a, b []byte) bool {
	return bytes.Equal(a, b)
}

func (h bytesCircleHasher) Less(a, b []byte) bool {
	return bytes.Compare(a, b) < 0
}

// uint64CircleHasher hashes uint64 keys by running their big-endian
// encoding through seeded CircleHash64.
type uint64CircleHasher struct {
	seed uint64
}

var _ Hasher[uint64] = uint64CircleHasher{}

// NewUint64Hasher returns the default uint64 hasher, backed by CircleHash64.
func NewUint64Hasher(seed uint64) Hasher[uint64] {
	return uint64CircleHasher{seed: seed}
}

func (h uint64CircleHasher) Hash(key uint64) Digest {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], key)
	return Digest(circlehash.Hash64(b[:], h.seed))
}

func (h uint64CircleHasher) Equal(a, b uint64) bool {
	return a == b
}

func (h uint64CircleHasher) Less(a, b uint64) bool {
	return a < b
}

// stringXXH3Hasher hashes string keys with seeded XXH3.
type stringXXH3Hasher struct {
	seed uint64
}

var _ Hasher[string] = stringXXH3Hasher{}

// NewStringXXH3Hasher returns a string hasher backed by XXH3. It is a
// faster alternative to NewStringHasher for long keys.
func NewStringXXH3Hasher(seed uint64) Hasher[string] {
	return stringXXH3Hasher{seed: seed}
}

func (h stringXXH3Hasher) Hash(key string) Digest {
	return Digest(xxh3.HashStringSeed(key, h.seed))
}

func (h stringXXH3Hasher) Equal(a, b string) bool {
	return a == b
}

func (h stringXXH3Hasher) Less(a, b string) bool {
	return a < b
}

// stringSipHasher hashes string keys with SipHash-2-4 under a 128-bit key.
type stringSipHasher struct {
	k0 uint64
	k1 uint64
}

var _ Hasher[string] = stringSipHasher{}

// NewStringSipHasher returns a keyed string hasher backed by SipHash-2-4,
// for callers that need hash values to be unpredictable to an adversary
// choosing keys.
func NewStringSipHasher(k0 uint64, k1 uint64) Hasher[string] {
	return stringSipHasher{k0: k0, k1: k1}
}

func (h stringSipHasher) Hash(key string) Digest {
	return Digest(siphash.Hash(h.k0, h.k1, []byte(key)))
}

func (h stringSipHasher) Equal(a, b string) bool {
	return a == b
}

func (h stringSipHasher) Less(a, b string) bool {
	return a < b
}

// stringBlake3Hasher hashes string keys with BLAKE3, taking the first 8
// bytes of the 256-bit digest big-endian.
type stringBlake3Hasher struct{}

var _ Hasher[string] = stringBlake3Hasher{}

// NewStringBlake3Hasher returns a string hasher backed by BLAKE3, for
// callers that want cryptographic collision resistance over speed.
func NewStringBlake3Hasher() Hasher[string] {
	return stringBlake3Hasher{}
}

func (h stringBlake3Hasher) Hash(key string) Digest {
	sum := blake3.Sum256([]byte(key))
	return Digest(binary.BigEndian.Uint64(sum[:]))
}

func (h stringBlake3Hasher) Equal(a, b string) bool {
	return a == b
}

func (h stringBlake3Hasher) Less(a, b string) bool {
	return a < b
}
