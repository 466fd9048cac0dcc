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

// focusedTree is a hash trie with one focused path to a specific leaf.
// For the focused leaf it stores key, value and digest. In a conventional
// binary trie the spine down to that leaf is a chain of two-pointer nodes;
// here the spine is implicit and only the pointers leading away from it
// are stored, one slot per level, like the stack of a DFS traversal.
// The digest's bits say whether a slot lies to the left or the right of
// the spine.
//
// Because the spine has no explicit nodes, a focusedTree stands for every
// node on its path at once. Which one is meant follows from the depth at
// which the pointer was reached: a map root references depth 0, while a
// pointer found in path[i] references depth i+1 of the referent.
type focusedTree[K any, V comparable] struct {
	key   K
	value V

	digest Digest

	// length is the depth of the focused path, that is, the number of
	// slots in path.
	length int

	// more holds all bindings colliding at digest, including the focused
	// key itself. Nil unless a collision has occurred.
	more *collisionBucket[K, V]

	// path[i] is the subtree on the opposite side of digest's bit i.
	// A nil slot is an empty subtree. Slots are arena-owned and never
	// rewritten after the node is published.
	path []*focusedTree[K, V]
}

// child returns the node one level below t, on the given side. If the
// side matches the focused path, that child is t itself viewed one level
// deeper.
func (t *focusedTree[K, V]) child(level int, side bitSide) *focusedTree[K, V] {
	if t.digest.bitAt(level) == side {
		return t
	}
	if level < t.length {
		return t.path[level]
	}
	return nil
}

// findLeftmost descends from start at depth *level to the smallest leaf
// of its subtree, preferring left children. The sibling not taken at each
// level is recorded in path, and *level is advanced to the leaf's depth.
func findLeftmost[K any, V comparable](
	start *focusedTree[K, V],
	level *int,
	path *[digestBits]*focusedTree[K, V],
) *focusedTree[K, V] {
	current := start
	for *level < current.length {
		if child := current.child(*level, sideLeft); child != nil {
			path[*level] = current.child(*level, sideRight)
			current = child
			*level++
		} else if child := current.child(*level, sideRight); child != nil {
			path[*level] = current.child(*level, sideLeft)
			current = child
			*level++
		} else {
			panic(NewUnreachableError("focused tree node has no children before the end of its path"))
		}
	}
	return current
}
