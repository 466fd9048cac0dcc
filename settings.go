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

var (
	// Default trie nodes per arena chunk
	targetChunkSize = uint64(512)

	pathChunkSize   = targetChunkSize * 8
	entryChunkSize  = targetChunkSize / 2
	bucketChunkSize = targetChunkSize / 8
)

func SetChunkSize(size uint64) (uint64, uint64, uint64) {
	targetChunkSize = size
	pathChunkSize = targetChunkSize * 8
	entryChunkSize = targetChunkSize / 2
	bucketChunkSize = targetChunkSize / 8

	return pathChunkSize, entryChunkSize, bucketChunkSize
}
