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

// MapStats reports the shape of one map's trie. Nodes shared with other
// maps on the same arena are counted once.
type MapStats struct {
	EntryCount  uint64
	NodeCount   uint64
	BucketCount uint64
	MaxDepth    int
	LastDepth   int
}

// GetMapStats traverses m's trie and returns its statistics.
func GetMapStats[K any, V comparable](m PersistentMap[K, V]) MapStats {
	stats := MapStats{LastDepth: m.LastDepth()}
	for range m.All() {
		stats.EntryCount++
	}
	if m.root == nil {
		return stats
	}
	visited := make(map[*focusedTree[K, V]]bool)
	statsTree(m.root, 0, visited, &stats)
	return stats
}

func statsTree[K any, V comparable](
	t *focusedTree[K, V],
	level int,
	visited map[*focusedTree[K, V]]bool,
	stats *MapStats,
) {
	if visited[t] {
		return
	}
	visited[t] = true
	stats.NodeCount++
	if t.more != nil {
		stats.BucketCount++
	}
	if t.length > stats.MaxDepth {
		stats.MaxDepth = t.length
	}
	for i := level; i < t.length; i++ {
		if sibling := t.path[i]; sibling != nil {
			statsTree(sibling, i+1, visited, stats)
		}
	}
}
