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

import "iter"

// Iterator walks a map in ascending order of (digest, key), which for
// MSB-first digest addressing is ascending unsigned digest order. It
// produces exactly the bindings whose value is not the default.
//
// An Iterator is a small by-value cursor. It allocates nothing and is
// cheap to copy; a copy keeps its own position. It stays valid as long as
// the map's arena is alive.
type Iterator[K any, V comparable] struct {
	level    int
	moreIdx  int
	current  *focusedTree[K, V]
	path     [digestBits]*focusedTree[K, V]
	defValue V
	hasher   Hasher[K]
}

// Iterate returns an iterator positioned at the map's first non-default
// binding, or at end if there is none.
func (m PersistentMap[K, V]) Iterate() Iterator[K, V] {
	it := Iterator[K, V]{
		defValue: m.defValue,
		hasher:   m.hasher,
	}
	if m.root == nil {
		return it
	}
	it.current = findLeftmost(m.root, &it.level, &it.path)
	for !it.IsEnd() {
		if _, v := it.entry(); v != it.defValue {
			break
		}
		it.advance()
	}
	return it
}

// IsEnd reports whether the iterator is past the last binding.
func (it *Iterator[K, V]) IsEnd() bool {
	return it.current == nil
}

// Entry returns the current key and value. The iterator must not be at
// end.
func (it *Iterator[K, V]) Entry() (K, V) {
	if it.IsEnd() {
		panic(NewIteratorError("Entry"))
	}
	return it.entry()
}

func (it *Iterator[K, V]) entry() (K, V) {
	if it.current.more != nil {
		e := it.current.more.entries[it.moreIdx]
		return e.key, e.value
	}
	return it.current.key, it.current.value
}

// Next advances to the next non-default binding. The iterator must not
// be at end.
func (it *Iterator[K, V]) Next() {
	if it.IsEnd() {
		panic(NewIteratorError("Next"))
	}
	it.advance()
}

func (it *Iterator[K, V]) advance() {
	for {
		if it.current.more != nil {
			it.moreIdx++
			if it.moreIdx < it.current.more.len() {
				if _, v := it.entry(); v != it.defValue {
					return
				}
				continue
			}
		}

		// Pop to the deepest level left of the spine that still has an
		// unvisited subtree on its right.
		if it.level == 0 {
			it.becomeEnd()
			return
		}
		it.level--
		for it.current.digest.bitAt(it.level) == sideRight || it.path[it.level] == nil {
			if it.level == 0 {
				it.becomeEnd()
				return
			}
			it.level--
		}

		firstRightAlternative := it.path[it.level]
		it.level++
		it.current = findLeftmost(firstRightAlternative, &it.level, &it.path)
		it.moreIdx = 0
		if _, v := it.entry(); v != it.defValue {
			return
		}
	}
}

func (it *Iterator[K, V]) becomeEnd() {
	it.current = nil
	it.level = 0
	it.moreIdx = 0
}

// EqualPosition reports whether both iterators stand on the same binding.
// All end iterators are equal.
func (it *Iterator[K, V]) EqualPosition(other *Iterator[K, V]) bool {
	if it.IsEnd() {
		return other.IsEnd()
	}
	if other.IsEnd() {
		return false
	}
	if it.current.digest != other.current.digest {
		return false
	}
	ka, _ := it.entry()
	kb, _ := other.entry()
	return it.hasher.Equal(ka, kb)
}

// Less orders iterators by (digest, key). An end iterator is greater
// than any non-end iterator.
func (it *Iterator[K, V]) Less(other *Iterator[K, V]) bool {
	if it.IsEnd() {
		return false
	}
	if other.IsEnd() {
		return true
	}
	if it.current.digest != other.current.digest {
		return it.current.digest < other.current.digest
	}
	ka, _ := it.entry()
	kb, _ := other.entry()
	return it.hasher.Less(ka, kb)
}

// All returns the map's non-default bindings in iteration order, for use
// with range.
func (m PersistentMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for it := m.Iterate(); !it.IsEnd(); it.advance() {
			k, v := it.entry()
			if !yield(k, v) {
				return
			}
		}
	}
}

// DoubleIterator traverses two maps in lockstep, producing a value pair
// for each key where at least one map binds something other than its
// default. The maps may have different defaults but must share a hasher.
type DoubleIterator[K any, V comparable] struct {
	first  Iterator[K, V]
	second Iterator[K, V]

	firstCurrent  bool
	secondCurrent bool
}

func NewDoubleIterator[K any, V comparable](first, second Iterator[K, V]) DoubleIterator[K, V] {
	it := DoubleIterator[K, V]{first: first, second: second}
	it.sync()
	return it
}

// Zip returns the lockstep traversal of m and other as a range-able
// sequence of (key, value in m, value in other).
func (m PersistentMap[K, V]) Zip(other PersistentMap[K, V]) iter.Seq[ZipEntry[K, V]] {
	return func(yield func(ZipEntry[K, V]) bool) {
		for it := NewDoubleIterator(m.Iterate(), other.Iterate()); !it.IsEnd(); it.Next() {
			k, va, vb := it.Entry()
			if !yield(ZipEntry[K, V]{Key: k, First: va, Second: vb}) {
				return
			}
		}
	}
}

// ZipEntry is one element of a lockstep traversal: the values bound to
// Key in the first and second map.
type ZipEntry[K any, V comparable] struct {
	Key    K
	First  V
	Second V
}

func (it *DoubleIterator[K, V]) sync() {
	switch {
	case it.first.EqualPosition(&it.second):
		it.firstCurrent = true
		it.secondCurrent = true
	case it.first.Less(&it.second):
		it.firstCurrent = true
		it.secondCurrent = false
	default:
		it.firstCurrent = false
		it.secondCurrent = true
	}
}

// IsEnd reports whether both component iterators are at end.
func (it *DoubleIterator[K, V]) IsEnd() bool {
	return it.first.IsEnd() && it.second.IsEnd()
}

// Entry returns the current key and the value each map binds it to, the
// respective default standing in for an absent binding.
func (it *DoubleIterator[K, V]) Entry() (key K, first V, second V) {
	if it.firstCurrent {
		k, va := it.first.Entry()
		vb := it.second.defValue
		if it.secondCurrent {
			_, vb = it.second.Entry()
		}
		return k, va, vb
	}
	k, vb := it.second.Entry()
	return k, it.first.defValue, vb
}

// Next advances past the current key in whichever maps hold it.
func (it *DoubleIterator[K, V]) Next() {
	if it.IsEnd() {
		panic(NewIteratorError("Next"))
	}
	if it.firstCurrent {
		it.first.advance()
	}
	if it.secondCurrent {
		it.second.advance()
	}
	it.sync()
}
