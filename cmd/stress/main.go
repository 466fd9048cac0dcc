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
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/onflow/ptrie"
)

func main() {

	var opCount uint64
	var keyCount uint64
	var seedHex string
	var interval uint64
	var collisionBits uint

	flag.Uint64Var(&opCount, "ops", 1_000_000, "number of operations (0 means run until interrupted)")
	flag.Uint64Var(&keyCount, "keys", 10_000, "size of the key space")
	flag.StringVar(&seedHex, "seed", "", "seed for prng in hex (default is Unix time)")
	flag.Uint64Var(&interval, "interval", 100_000, "operations between full cross-checks")
	flag.UintVar(&collisionBits, "collisionbits", 0, "keep only this many high digest bits to force collisions (0 disables)")

	flag.Parse()

	var seed int64
	if len(seedHex) != 0 {
		var err error
		seed, err = strconv.ParseInt(strings.ReplaceAll(seedHex, "0x", ""), 16, 64)
		if err != nil {
			panic("Failed to parse seed flag (hex string)")
		}
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fmt.Printf("seed: 0x%x\n", seed)

	r := newRand(seed)

	var hasher ptrie.Hasher[string] = ptrie.NewStringHasher(uint64(seed) | 1)
	if collisionBits > 0 {
		hasher = maskedHasher{base: hasher, keepBits: collisionBits}
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)

	s := newSession(hasher, keyCount, r)

	for opCount == 0 || s.ops < opCount {
		select {
		case <-sigc:
			fmt.Println("\ninterrupted")
			s.crossCheck()
			s.report()
			return
		default:
		}

		s.step()

		if s.ops%interval == 0 {
			s.crossCheck()
			s.report()
		}
	}

	s.crossCheck()
	s.report()
	fmt.Println("PASS")
}
