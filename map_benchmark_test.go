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

import "testing"

var benchmarkSizes = []struct {
	name string
	size int
}{
	{"100", 100},
	{"1000", 1000},
	{"10000", 10000},
}

func setupBenchmarkMap(b *testing.B, size int) (*Arena[uint64, uint64], PersistentMap[uint64, uint64]) {
	r := newRand(b)

	arena := NewArena[uint64, uint64]()
	m := NewPersistentMap(arena, knuthHasher{}, 0)
	for i := 0; i < size; i++ {
		m = m.Add(r.Uint64(), r.Uint64()|1)
	}
	return arena, m
}

func BenchmarkAdd(b *testing.B) {
	for _, bm := range benchmarkSizes {
		b.Run(bm.name, func(b *testing.B) {
			_, m := setupBenchmarkMap(b, bm.size)
			r := newRand(b)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = m.Add(r.Uint64(), 1)
			}
		})
	}
}

func BenchmarkGet(b *testing.B) {
	for _, bm := range benchmarkSizes {
		b.Run(bm.name, func(b *testing.B) {
			_, m := setupBenchmarkMap(b, bm.size)
			r := newRand(b)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = m.Get(r.Uint64())
			}
		})
	}
}

func BenchmarkIterate(b *testing.B) {
	for _, bm := range benchmarkSizes {
		b.Run(bm.name, func(b *testing.B) {
			_, m := setupBenchmarkMap(b, bm.size)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				for it := m.Iterate(); !it.IsEnd(); it.Next() {
				}
			}
		})
	}
}

func BenchmarkZip(b *testing.B) {
	for _, bm := range benchmarkSizes {
		b.Run(bm.name, func(b *testing.B) {
			_, m1 := setupBenchmarkMap(b, bm.size)
			m2 := m1.Add(12345, 99)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				for e := range m1.Zip(m2) {
					_ = e
				}
			}
		})
	}
}
