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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIterationOrder(t *testing.T) {
	r := newRand(t)

	const mapSize = 1000

	arena := NewArena[uint64, uint64]()
	m := NewPersistentMap(arena, knuthHasher{}, 0)

	model := make(map[uint64]uint64)
	for len(model) < mapSize {
		k := r.Uint64()
		v := r.Uint64() | 1
		m = m.Add(k, v)
		model[k] = v
	}

	entries := collectEntries(m)
	require.Equal(t, expectedEntries(knuthHasher{}, model, 0), entries)

	hasher := knuthHasher{}
	for i := 1; i < len(entries); i++ {
		ha, hb := hasher.Hash(entries[i-1].key), hasher.Hash(entries[i].key)
		if ha == hb {
			require.True(t, hasher.Less(entries[i-1].key, entries[i].key))
		} else {
			require.True(t, ha < hb)
		}
	}
}

func TestIterationSkipsDefaults(t *testing.T) {
	arena := NewArena[uint64, uint64]()
	m := NewPersistentMap(arena, knuthHasher{}, 0)

	for k := uint64(1); k <= 20; k++ {
		m = m.Add(k, k)
	}
	// Erase every even key, leaving default-valued nodes between the
	// remaining entries so that advance has to skip them.
	for k := uint64(2); k <= 20; k += 2 {
		m = m.Add(k, 0)
	}

	for k, v := range m.All() {
		require.Equal(t, uint64(1), k%2)
		require.Equal(t, k, v)
	}

	count := 0
	for range m.All() {
		count++
	}
	require.Equal(t, 10, count)
}

func TestIteratorCursorSemantics(t *testing.T) {
	arena := NewArena[uint64, uint64]()
	m := NewPersistentMap(arena, knuthHasher{}, 0).Add(1, 1).Add(2, 2)

	it := m.Iterate()
	require.False(t, it.IsEnd())

	// A copy keeps its own position.
	snapshot := it
	k1, _ := it.Entry()
	it.Next()
	k2, _ := it.Entry()
	require.NotEqual(t, k1, k2)
	sk, _ := snapshot.Entry()
	require.Equal(t, k1, sk)

	it.Next()
	require.True(t, it.IsEnd())
}

func TestIteratorComparison(t *testing.T) {
	arena := NewArena[uint64, uint64]()
	m := NewPersistentMap(arena, knuthHasher{}, 0).Add(1, 1).Add(2, 2)

	first := m.Iterate()
	second := m.Iterate()
	require.True(t, first.EqualPosition(&second))
	require.False(t, first.Less(&second))

	second.Next()
	require.False(t, first.EqualPosition(&second))
	require.True(t, first.Less(&second))
	require.False(t, second.Less(&first))

	// End is greater than any non-end iterator, and end iterators are
	// equal among themselves.
	second.Next()
	require.True(t, second.IsEnd())
	require.True(t, first.Less(&second))
	require.False(t, second.Less(&first))

	empty := NewPersistentMap(arena, knuthHasher{}, 0)
	end := empty.Iterate()
	require.True(t, end.EqualPosition(&second))
	require.False(t, end.Less(&second))
}

func TestIteratorEndPanics(t *testing.T) {
	arena := NewArena[uint64, uint64]()
	m := NewPersistentMap(arena, knuthHasher{}, 0)

	it := m.Iterate()
	require.True(t, it.IsEnd())
	require.Panics(t, func() { it.Entry() })
	require.Panics(t, func() { it.Next() })
}

func TestZipTwoMaps(t *testing.T) {
	arena := NewArena[uint64, uint64]()
	a := NewPersistentMap(arena, knuthHasher{}, 0).Add(1, 1).Add(2, 2)
	b := NewPersistentMap(arena, knuthHasher{}, 0).Add(2, 2).Add(3, 3)

	var got []ZipEntry[uint64, uint64]
	for e := range a.Zip(b) {
		got = append(got, e)
	}

	want := map[uint64]ZipEntry[uint64, uint64]{
		1: {Key: 1, First: 1, Second: 0},
		2: {Key: 2, First: 2, Second: 2},
		3: {Key: 3, First: 0, Second: 3},
	}
	require.Len(t, got, len(want))
	for _, e := range got {
		require.Equal(t, want[e.Key], e)
	}

	// Hash-lexicographic order across the union of keys.
	hasher := knuthHasher{}
	for i := 1; i < len(got); i++ {
		require.True(t, hasher.Hash(got[i-1].Key) < hasher.Hash(got[i].Key))
	}

	require.False(t, a.Equal(b))
	require.True(t, a.Equal(a))
}

func TestZipCompleteness(t *testing.T) {
	r := newRand(t)

	const keySpace = 256

	arena := NewArena[uint64, uint64]()

	// Different defaults on the two sides.
	a := NewPersistentMap(arena, knuthHasher{}, 0)
	b := NewPersistentMap(arena, knuthHasher{}, 99)

	modelA := make(map[uint64]uint64)
	modelB := make(map[uint64]uint64)
	for i := 0; i < 2000; i++ {
		k := r.Uint64() % keySpace
		va := r.Uint64() % 4
		vb := 99 - va
		switch r.Intn(3) {
		case 0:
			a = a.Add(k, va)
			modelA[k] = va
		case 1:
			b = b.Add(k, vb)
			modelB[k] = vb
		default:
			a = a.Add(k, va)
			b = b.Add(k, vb)
			modelA[k] = va
			modelB[k] = vb
		}
	}

	seen := make(map[uint64]bool)
	for e := range a.Zip(b) {
		require.False(t, seen[e.Key], "key %d yielded twice", e.Key)
		seen[e.Key] = true
		require.Equal(t, a.Get(e.Key), e.First)
		require.Equal(t, b.Get(e.Key), e.Second)
		require.True(t, e.First != 0 || e.Second != 99)
	}

	for k := uint64(0); k < keySpace; k++ {
		if a.Get(k) != 0 || b.Get(k) != 99 {
			require.True(t, seen[k], "key %d missing from zip", k)
		}
	}
}

func TestDoubleIterator(t *testing.T) {
	arena := NewArena[uint64, uint64]()
	a := NewPersistentMap(arena, knuthHasher{}, 0).Add(1, 1)
	b := NewPersistentMap(arena, knuthHasher{}, 0)

	it := NewDoubleIterator(a.Iterate(), b.Iterate())
	require.False(t, it.IsEnd())

	k, va, vb := it.Entry()
	require.Equal(t, uint64(1), k)
	require.Equal(t, uint64(1), va)
	require.Equal(t, uint64(0), vb)

	it.Next()
	require.True(t, it.IsEnd())
	require.Panics(t, func() { it.Next() })
}

func TestZipIdenticalMaps(t *testing.T) {
	arena := NewArena[uint64, uint64]()
	m := NewPersistentMap(arena, knuthHasher{}, 0).Add(1, 1).Add(2, 2).Add(3, 3)

	count := 0
	for e := range m.Zip(m) {
		require.Equal(t, e.First, e.Second)
		count++
	}
	require.Equal(t, 3, count)
}
