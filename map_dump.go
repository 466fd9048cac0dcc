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
	"fmt"
	"io"
	"strings"
)

// String renders the map's non-default bindings in iteration order.
func (m PersistentMap[K, V]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for k, v := range m.All() {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		fmt.Fprintf(&sb, "%v: %v", k, v)
	}
	sb.WriteByte('}')
	return sb.String()
}

// Print writes the String rendering to w.
func (m PersistentMap[K, V]) Print(w io.Writer) {
	_, _ = io.WriteString(w, m.String())
}

// DumpTrie returns one line per distinct node of m's trie, preorder by
// focused path, for debugging.
func DumpTrie[K any, V comparable](m PersistentMap[K, V]) []string {
	var lines []string
	if m.root == nil {
		return lines
	}
	dumped := make(map[*focusedTree[K, V]]bool)
	dumpTree(m.root, 0, dumped, &lines)
	return lines
}

func dumpTree[K any, V comparable](
	t *focusedTree[K, V],
	level int,
	dumped map[*focusedTree[K, V]]bool,
	lines *[]string,
) {
	line := fmt.Sprintf(
		"%slevel %d: digest %#016x length %d key %v value %v",
		strings.Repeat("  ", level), level, uint64(t.digest), t.length, t.key, t.value,
	)
	if t.more != nil {
		line += fmt.Sprintf(" collisions %d", t.more.len())
	}
	if dumped[t] {
		*lines = append(*lines, line+" (shared)")
		return
	}
	dumped[t] = true
	*lines = append(*lines, line)
	for i := level; i < t.length; i++ {
		if sibling := t.path[i]; sibling != nil {
			dumpTree(sibling, i+1, dumped, lines)
		}
	}
}
