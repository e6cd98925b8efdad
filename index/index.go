// Copyright 2024 The Docparse Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package index defines the pluggable position-counting strategy used by
// package scanner. An Index is an opaque, comparable value produced by an
// Indexer as the scanner consumes characters; Indexer is the capability
// parameter a caller supplies to choose what an Index looks like (a byte
// offset, a line/column pair, a UTF-16 offset, ...).
package index

// Indexer is a factory for a zero-valued index state of type T, together
// with the rule for advancing that state past one decoded character. T
// itself is the Index: there is no separate export step, because every
// built-in indexer's running state is already what callers want to read.
//
// Two scanners fed the same prefix of the same text through the same
// Indexer implementation produce equal T values; that is the monotonic,
// comparable "Index" invariant described in the package doc.
type Indexer[T any] interface {
	// New returns the zero state, corresponding to the start of input.
	New() T

	// Consume returns the state that follows state after ch has been read.
	// Consume must not retain or mutate ch beyond this call.
	Consume(state T, ch rune) T
}
