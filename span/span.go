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

// Package span defines Marker and Span, the position primitives shared by
// the scanner, the parsers, the locator, and the error types. Both are
// generic over the Index type produced by a particular index.Indexer, so a
// parse tree built with, say, index.LineColumn carries LineColumnState
// markers throughout.
package span

// Marker is a snapshot of cursor position: a byte offset plus whatever
// user-facing Index the active Indexer produces at that offset. Equality
// between two Markers is defined purely in terms of ByteOffset; the Index
// field is carried for display purposes only and is not considered in the
// comparisons this package performs.
type Marker[T any] struct {
	ByteOffset int
	Index      T
}

// Span is an ordered pair of Markers. For a well-formed Span,
// Start.ByteOffset <= End.ByteOffset. A Span whose Start equals its End is
// a point span.
type Span[T any] struct {
	Start Marker[T]
	End   Marker[T]
}

// IsPoint reports whether sp has zero width.
func (sp Span[T]) IsPoint() bool {
	return sp.Start.ByteOffset == sp.End.ByteOffset
}

// ContainsOffset reports whether the half-open byte range [Start, End)
// contains offset. A point span never contains anything under this test.
func (sp Span[T]) ContainsOffset(offset int) bool {
	return sp.Start.ByteOffset <= offset && offset < sp.End.ByteOffset
}

// ContainsOffsetInclusive is the closed variant of ContainsOffset: the end
// boundary itself counts as contained. This is what completion-style
// queries want, so that a cursor positioned just past a value still
// resolves to it.
func (sp Span[T]) ContainsOffsetInclusive(offset int) bool {
	return sp.Start.ByteOffset <= offset && offset <= sp.End.ByteOffset
}

// Point returns a zero-width Span at m.
func Point[T any](m Marker[T]) Span[T] {
	return Span[T]{Start: m, End: m}
}
