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

package main

import (
	"fmt"
	"math/rand"
	"os"
	"sort"

	"github.com/onflow/ptrie"
)

const maxSnapshots = 8

// snapshot pairs a map handle with a copy of the reference model taken
// at the same moment, to check persistence of old maps under later
// updates.
type snapshot struct {
	m     ptrie.PersistentMap[string, uint64]
	model map[string]uint64
	ops   uint64
}

type session struct {
	r      *rand.Rand
	hasher ptrie.Hasher[string]
	arena  *ptrie.Arena[string, uint64]

	keys  []string
	m     ptrie.PersistentMap[string, uint64]
	model map[string]uint64

	snapshots []snapshot
	ops       uint64
}

func newSession(hasher ptrie.Hasher[string], keyCount uint64, r *rand.Rand) *session {
	keys := make([]string, keyCount)
	for i := range keys {
		keys[i] = randStr(r, 16)
	}

	arena := ptrie.NewArena[string, uint64]()
	return &session{
		r:      r,
		hasher: hasher,
		arena:  arena,
		keys:   keys,
		m:      ptrie.NewPersistentMap[string, uint64](arena, hasher, 0),
		model:  make(map[string]uint64),
	}
}

func (s *session) step() {
	key := s.keys[s.r.Intn(len(s.keys))]

	switch s.r.Intn(10) {
	case 0:
		// Erase by writing the default back.
		s.m.Set(key, 0)
		delete(s.model, key)

	case 1:
		// Point lookup against the model.
		want := s.model[key]
		if got := s.m.Get(key); got != want {
			s.fail("Get(%q) returned %d, want %d", key, got, want)
		}

	case 2:
		// Keep a snapshot around to check persistence later.
		model := make(map[string]uint64, len(s.model))
		for k, v := range s.model {
			model[k] = v
		}
		s.snapshots = append(s.snapshots, snapshot{m: s.m, model: model, ops: s.ops})
		if len(s.snapshots) > maxSnapshots {
			s.snapshots = s.snapshots[1:]
		}

	default:
		value := uint64(s.r.Intn(1000)) + 1
		s.m.Set(key, value)
		s.model[key] = value
	}

	s.ops++
}

func (s *session) crossCheck() {
	if err := ptrie.VerifyMap(s.m); err != nil {
		s.fail("VerifyMap: %s", err)
	}

	s.compareIteration(s.m, s.model)

	for _, snap := range s.snapshots {
		s.compareIteration(snap.m, snap.model)
	}

	// Zip the live map with the most recent snapshot and check both
	// columns against the models.
	if len(s.snapshots) > 0 {
		snap := s.snapshots[len(s.snapshots)-1]
		for e := range s.m.Zip(snap.m) {
			if e.First != s.model[e.Key] {
				s.fail("zip: live value for %q is %d, want %d", e.Key, e.First, s.model[e.Key])
			}
			if e.Second != snap.model[e.Key] {
				s.fail("zip: snapshot value for %q is %d, want %d", e.Key, e.Second, snap.model[e.Key])
			}
		}
	}
}

func (s *session) compareIteration(m ptrie.PersistentMap[string, uint64], model map[string]uint64) {
	type entry struct {
		key   string
		value uint64
	}

	want := make([]entry, 0, len(model))
	for k, v := range model {
		want = append(want, entry{key: k, value: v})
	}
	sort.Slice(want, func(i, j int) bool {
		ha, hb := s.hasher.Hash(want[i].key), s.hasher.Hash(want[j].key)
		if ha != hb {
			return ha < hb
		}
		return s.hasher.Less(want[i].key, want[j].key)
	})

	i := 0
	for k, v := range m.All() {
		if i >= len(want) {
			s.fail("iteration yielded extra entry %q: %d", k, v)
		}
		if k != want[i].key || v != want[i].value {
			s.fail("iteration entry %d is (%q, %d), want (%q, %d)", i, k, v, want[i].key, want[i].value)
		}
		i++
	}
	if i != len(want) {
		s.fail("iteration yielded %d entries, want %d", i, len(want))
	}
}

func (s *session) report() {
	stats := s.arena.Stats()
	fmt.Printf(
		"ops %d, live entries %d, depth %d, arena: %d nodes, %d path slots, %d buckets, %d chunks\n",
		s.ops, len(s.model), s.m.LastDepth(),
		stats.TreeCount, stats.PathSlotCount, stats.BucketCount, stats.ChunkCount,
	)
}

func (s *session) fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "\nFAIL: "+format+"\n", args...)
	for _, line := range ptrie.DumpTrie(s.m) {
		fmt.Fprintln(os.Stderr, line)
	}
	os.Exit(1)
}
