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

// Package locate implements the point-in-tree lookup (spec §4.6): given a
// parsed Object and a byte offset, walk down through whichever List item or
// Map entry contains it, recording the path taken, until the descent
// bottoms out at a compact scalar or a child whose span doesn't match.
//
// The query position is a plain byte offset rather than the tree's T index
// type: span.Span's containment tests already key off Marker.ByteOffset
// alone (span.Marker's doc comment: "Index field is carried for display
// purposes only and is not considered in the comparisons this package
// performs"), so a caller holding an LSP {line, character} converts it to
// a byte offset the same way the parser does, via the Indexer, before
// calling Find.
package locate

import "github.com/go-docparse/docparse/ast"

// StepKind distinguishes the two kinds of Path step.
type StepKind int

const (
	// ListIndex steps into the i'th item of an ExpandedList.
	ListIndex StepKind = iota
	// MapKey steps into the entry named Key of an ExpandedMap.
	MapKey
)

func (k StepKind) String() string {
	if k == MapKey {
		return "MapKey"
	}
	return "ListIndex"
}

// Step is one element of a Path: either an index into a List or a key
// into a Map.
type Step struct {
	Kind  StepKind
	Index int
	Key   string
}

// Path is the ordered sequence of steps from the tree root down to a
// located node. Walking Path from the root reproduces the located node
// (spec §8 invariant 2).
type Path []Step

// Result is what Find returns on a hit. When IsKey is true the offset
// landed on a map entry's key (Entry names it, Value is the zero value);
// otherwise it landed on Value, a list item or map-entry value, or the
// root itself.
type Result[T any] struct {
	Path  Path
	IsKey bool
	Entry ast.ExpandedMapEntry[T]
	Value ast.ExpandedValue[T]
}

// Find walks obj.Root looking for the innermost List item or Map key/value
// whose span contains offset, per spec §4.6. includeEnd selects closed vs.
// half-open containment at span boundaries, so a cursor positioned just
// past a value can still resolve to it for completion-style queries.
//
// A List or Map whose own span contains offset but none of whose children
// do (e.g. offset lands on the indentation or a separator between items)
// is not itself a match: Find returns false in that case rather than
// resolving to the container. Only a compact scalar, or a map key,
// terminates the descent successfully.
func Find[T any](obj *ast.Object[T], offset int, includeEnd bool) (Result[T], bool) {
	root := obj.Root
	if !valueContains(root, offset, includeEnd) {
		return Result[T]{}, false
	}
	return descend(root, nil, offset, includeEnd)
}

func descend[T any](v ast.ExpandedValue[T], path Path, offset int, includeEnd bool) (Result[T], bool) {
	switch v.Kind {
	case ast.ExpandedList:
		for i, item := range v.Items {
			if valueContains(item.Value, offset, includeEnd) {
				return descend(item.Value, append(path, Step{Kind: ListIndex, Index: i}), offset, includeEnd)
			}
		}
		return Result[T]{}, false

	case ast.ExpandedMap:
		for _, entry := range v.Entries {
			if keyContains(entry, offset, includeEnd) {
				return Result[T]{
					Path:  append(path, Step{Kind: MapKey, Key: entry.Key}),
					IsKey: true,
					Entry: entry,
				}, true
			}
			if valueContains(entry.Value, offset, includeEnd) {
				return descend(entry.Value, append(path, Step{Kind: MapKey, Key: entry.Key}), offset, includeEnd)
			}
		}
		return Result[T]{}, false

	default:
		// Compact scalar or reserved multiline string: the descent bottoms
		// out here regardless of whether offset lands precisely inside it,
		// since the caller already established the parent span matched.
		return Result[T]{Path: path, Value: v}, true
	}
}

func valueContains[T any](v ast.ExpandedValue[T], offset int, includeEnd bool) bool {
	if includeEnd {
		return v.Span.ContainsOffsetInclusive(offset)
	}
	return v.Span.ContainsOffset(offset)
}

func keyContains[T any](e ast.ExpandedMapEntry[T], offset int, includeEnd bool) bool {
	if includeEnd {
		return e.KeySpan.ContainsOffsetInclusive(offset)
	}
	return e.KeySpan.ContainsOffset(offset)
}
