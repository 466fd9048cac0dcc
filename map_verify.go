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

import "math/bits"

// VerifyMap checks the structural invariants of m's trie and returns an
// InvalidTrieError describing the first violation found, or nil.
func VerifyMap[K any, V comparable](m PersistentMap[K, V]) error {
	if m.root == nil {
		return nil
	}
	return verifyTree(m.root, 0, m.hasher)
}

func verifyTree[K any, V comparable](t *focusedTree[K, V], level int, hasher Hasher[K]) error {
	if t.length < 0 || t.length > digestBits {
		return NewInvalidTrieErrorf("node length %d out of range", t.length)
	}
	if len(t.path) != t.length {
		return NewInvalidTrieErrorf("node has %d path slots, length %d", len(t.path), t.length)
	}
	if got := hasher.Hash(t.key); got != t.digest {
		return NewInvalidTrieErrorf("focused key hashes to %#x, node digest is %#x", got, t.digest)
	}

	if t.more != nil {
		if t.more.len() < 2 {
			return NewInvalidTrieErrorf("collision bucket with %d entries", t.more.len())
		}
		if v, ok := t.more.get(hasher, t.key); !ok || v != t.value {
			return NewInvalidTrieErrorf("collision bucket does not contain the focused entry")
		}
		for i, e := range t.more.entries {
			if got := hasher.Hash(e.key); got != t.digest {
				return NewInvalidTrieErrorf("collision bucket key hashes to %#x, node digest is %#x", got, t.digest)
			}
			if i > 0 && !hasher.Less(t.more.entries[i-1].key, e.key) {
				return NewInvalidTrieErrorf("collision bucket keys out of order at index %d", i)
			}
		}
	}

	for i := level; i < t.length; i++ {
		sibling := t.path[i]
		if sibling == nil {
			continue
		}
		// The sibling shares digest bits 0..i-1 with the focused leaf and
		// differs at bit i.
		diff := uint64(sibling.digest ^ t.digest)
		if bits.LeadingZeros64(diff) != i {
			return NewInvalidTrieErrorf(
				"path slot %d holds digest %#x, expected first difference from %#x at bit %d",
				i, sibling.digest, t.digest, i,
			)
		}
		if err := verifyTree(sibling, i+1, hasher); err != nil {
			return err
		}
	}
	return nil
}
