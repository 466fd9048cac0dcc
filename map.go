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

// PersistentMap is a persistent map built on a hash trie: a binary tree
// addressed by the bits of key digests. The map is conceptually infinite,
// with every key initially bound to a default value; bindings are removed
// by writing the default value back, and iteration produces exactly the
// keys bound to something else.
//
// Updates are functional. Add returns a new map sharing all unchanged
// structure with its receiver, and maps obtained earlier stay valid. A
// handle is a small value that is cheap to copy; all node storage lives
// in the arena the map was created with.
//
// Complexity: copy and assignment O(1), Get and Add O(log n), iteration
// amortized O(1) per step, Zip and Equal O(n).
type PersistentMap[K any, V comparable] struct {
	root     *focusedTree[K, V]
	defValue V
	arena    *Arena[K, V]
	hasher   Hasher[K]
}

// NewPersistentMap returns an empty map bound to the given arena and
// hasher. Every key is bound to defValue.
func NewPersistentMap[K any, V comparable](
	arena *Arena[K, V],
	hasher Hasher[K],
	defValue V,
) PersistentMap[K, V] {
	return PersistentMap[K, V]{
		defValue: defValue,
		arena:    arena,
		hasher:   hasher,
	}
}

// DefaultValue returns the value unbound keys map to.
func (m PersistentMap[K, V]) DefaultValue() V {
	return m.defValue
}

// LastDepth returns the depth of the most recently added leaf. This is a
// cheap estimate for the size of the trie.
func (m PersistentMap[K, V]) LastDepth() int {
	if m.root != nil {
		return m.root.length
	}
	return 0
}

// Get returns the value bound to key, or the default value.
func (m PersistentMap[K, V]) Get(key K) V {
	digest := m.hasher.Hash(key)
	return m.focusedValue(m.findHash(digest), key)
}

// Add returns a map identical to m except that key is bound to value.
// If key is already bound to value, m itself is returned and nothing is
// allocated. Otherwise exactly one node is allocated, plus a collision
// bucket when another key shares the digest.
func (m PersistentMap[K, V]) Add(key K, value V) PersistentMap[K, V] {
	digest := m.hasher.Hash(key)
	var path [digestBits]*focusedTree[K, V]
	old, length := m.findHashWithPath(digest, &path)
	if m.focusedValue(old, key) == value {
		return m
	}

	var more *collisionBucket[K, V]
	if old != nil && !(old.more == nil && m.hasher.Equal(old.key, key)) {
		more = m.arena.newBucket()
		if old.more != nil {
			more.entries = m.arena.newEntries(len(old.more.entries))
			copy(more.entries, old.more.entries)
		} else {
			more.entries = m.arena.newEntries(1)
			more.entries[0] = mapEntry[K, V]{key: old.key, value: old.value}
		}
		more.set(m.arena, m.hasher, key, value)
	}

	tree := m.arena.newTree(length)
	tree.key = key
	tree.value = value
	tree.digest = digest
	tree.more = more
	copy(tree.path, path[:length])

	return PersistentMap[K, V]{
		root:     tree,
		defValue: m.defValue,
		arena:    m.arena,
		hasher:   m.hasher,
	}
}

// Set binds key to value in place by replacing m's root. Maps derived
// from m earlier are unaffected.
func (m *PersistentMap[K, V]) Set(key K, value V) {
	*m = m.Add(key, value)
}

// Equal reports whether both maps bind every key to equal values. Both
// maps must have been built with the same hasher.
func (m PersistentMap[K, V]) Equal(other PersistentMap[K, V]) bool {
	if m.root == other.root {
		return true
	}
	if m.defValue != other.defValue {
		return false
	}
	for it := NewDoubleIterator(m.Iterate(), other.Iterate()); !it.IsEnd(); it.Next() {
		_, va, vb := it.Entry()
		if va != vb {
			return false
		}
	}
	return true
}

// findHash returns the node whose focused leaf has the given digest, or
// nil if no key with that digest is bound.
func (m PersistentMap[K, V]) findHash(digest Digest) *focusedTree[K, V] {
	tree := m.root
	level := 0
	for tree != nil && digest != tree.digest {
		for (digest ^ tree.digest).bitAt(level) == sideLeft {
			level++
		}
		if level < tree.length {
			tree = tree.path[level]
		} else {
			tree = nil
		}
		level++
	}
	return tree
}

// findHashWithPath is findHash recording, for every level walked, the
// subtree a focused path rooted at digest leaves aside: the off-path
// sibling where the digests agree, and the whole current node at the
// first level where they differ. The recorded slots are exactly the path
// a new node focused on digest must carry. The returned length is the
// number of slots written and may exceed the found node's own length.
func (m PersistentMap[K, V]) findHashWithPath(
	digest Digest,
	path *[digestBits]*focusedTree[K, V],
) (*focusedTree[K, V], int) {
	tree := m.root
	level := 0
	for tree != nil && digest != tree.digest {
		treeLength := tree.length
		for (digest ^ tree.digest).bitAt(level) == sideLeft {
			if level < treeLength {
				path[level] = tree.path[level]
			} else {
				path[level] = nil
			}
			level++
		}
		path[level] = tree
		if level < treeLength {
			tree = tree.path[level]
		} else {
			tree = nil
		}
		level++
	}
	if tree != nil {
		for level < tree.length {
			path[level] = tree.path[level]
			level++
		}
	}
	return tree, level
}

// focusedValue loads the value bound to key from the leaf of tree's
// focused path, falling back to the default value.
func (m PersistentMap[K, V]) focusedValue(tree *focusedTree[K, V], key K) V {
	if tree == nil {
		return m.defValue
	}
	if tree.more != nil {
		if v, ok := tree.more.get(m.hasher, key); ok {
			return v
		}
		return m.defValue
	}
	if m.hasher.Equal(key, tree.key) {
		return tree.value
	}
	return m.defValue
}
