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

import "fmt"

type Error interface {
	// returns true if the error is fatal
	IsFatal() bool
	error
}

// UnreachableError is a fatal error raised when the trie reaches a state
// its structural invariants rule out. It always indicates a bug.
type UnreachableError struct {
	msg string
}

// NewUnreachableError constructs an UnreachableError
func NewUnreachableError(msg string) *UnreachableError {
	return &UnreachableError{msg: msg}
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("reached unreachable state: %s", e.msg)
}

// IsFatal returns true if the error is fatal
func (e *UnreachableError) IsFatal() bool {
	return true
}

// IteratorError is a fatal error raised on invalid iterator usage, such as
// dereferencing or advancing an iterator that is at its end.
type IteratorError struct {
	op string
}

// NewIteratorError constructs an IteratorError
func NewIteratorError(op string) *IteratorError {
	return &IteratorError{op: op}
}

func (e *IteratorError) Error() string {
	return fmt.Sprintf("%s on iterator at end", e.op)
}

// IsFatal returns true if the error is fatal
func (e *IteratorError) IsFatal() bool {
	return true
}

// InvalidTrieError is returned by VerifyMap when a structural invariant
// does not hold.
type InvalidTrieError struct {
	msg string
}

// NewInvalidTrieErrorf constructs an InvalidTrieError
func NewInvalidTrieErrorf(format string, args ...interface{}) *InvalidTrieError {
	return &InvalidTrieError{msg: fmt.Sprintf(format, args...)}
}

func (e *InvalidTrieError) Error() string {
	return fmt.Sprintf("invalid trie: %s", e.msg)
}

// IsFatal returns true if the error is fatal
func (e *InvalidTrieError) IsFatal() bool {
	return false
}
