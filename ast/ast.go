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

// Package ast defines the position-annotated value tree produced by a
// parse: the compact (single-line) value variants and the expanded
// (indentation-delimited) value variants built around them, plus the
// comment/gap Context attached to each expanded item and entry.
package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-docparse/docparse/span"
)

// CompactKind distinguishes the variants of CompactValue.
type CompactKind int

const (
	Null CompactKind = iota
	Bool
	Integer
	Float
	String
	List
	Map
)

func (k CompactKind) String() string {
	switch k {
	case Null:
		return "Null"
	case Bool:
		return "Bool"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case String:
		return "String"
	case List:
		return "List"
	case Map:
		return "Map"
	default:
		return "CompactKind(?)"
	}
}

// CompactValue is a single-line value: a scalar, or a flow list/map whose
// elements are themselves CompactValues.
type CompactValue[T any] struct {
	Span span.Span[T]
	Kind CompactKind

	Bool    bool
	Int     int64
	Float64 float64
	Str     string

	Items   []CompactValue[T]
	Entries []CompactMapEntry[T]
}

// CompactMapEntry is one `key : value` pair inside a flow map.
type CompactMapEntry[T any] struct {
	KeySpan span.Span[T]
	Key     string
	Value   CompactValue[T]
}

// ExpandedKind distinguishes the variants of ExpandedValue.
type ExpandedKind int

const (
	ExpandedCompact ExpandedKind = iota
	ExpandedList
	ExpandedMap
	ExpandedMultilineString
)

func (k ExpandedKind) String() string {
	switch k {
	case ExpandedCompact:
		return "Compact"
	case ExpandedList:
		return "List"
	case ExpandedMap:
		return "Map"
	case ExpandedMultilineString:
		return "MultilineString"
	default:
		return "ExpandedKind(?)"
	}
}

// MultilineStringLine is one physical line contributing to a reserved
// expanded multiline string value. See spec Open Question (c): the type
// exists so the result model matches the source this spec was drawn from,
// but no block-parser rule constructs one yet.
type MultilineStringLine[T any] struct {
	Span span.Span[T]
	Text string
}

// ExpandedValue is a value appearing in the expanded (indentation-driven)
// tree: either a compact value wrapped as-is, a List, a Map, or a
// reserved multiline string.
type ExpandedValue[T any] struct {
	Span span.Span[T]
	Kind ExpandedKind

	Compact CompactValue[T]
	Items   []ExpandedListItem[T]
	Entries []ExpandedMapEntry[T]

	MultilineLines []MultilineStringLine[T]
	MultilineText  string
}

// StandaloneComment is a `#`-led comment occupying its own line.
type StandaloneComment[T any] struct {
	Span span.Span[T]
	Text string
	// Indent is the comment's leading indent, in columns.
	Indent int
	// BlankLinesBefore is the number of blank lines between this comment
	// and whatever preceded it.
	BlankLinesBefore int
}

// Context carries everything attached to an item/entry besides its value:
// standalone comments preceding it, the blank-line gap since the last
// content, and its own content indent.
type Context[T any] struct {
	StandaloneComments []StandaloneComment[T]
	Gap                int
	Indent             int
}

// ExpandedListItem is one element of an ExpandedList.
type ExpandedListItem[T any] struct {
	Context Context[T]
	// InlineComment is the `# ...` comment trailing this item's content
	// on the same line, if any.
	InlineComment string
	Value         ExpandedValue[T]
}

// ExpandedMapEntry is one `key: value` pair of an ExpandedMap.
type ExpandedMapEntry[T any] struct {
	Context       Context[T]
	InlineComment string
	KeySpan       span.Span[T]
	Key           string
	Value         ExpandedValue[T]
}

// Object is the root of a successful parse: a single expanded value (spec
// invariant 5: a parsed tree is either a single root Object or absent).
type Object[T any] struct {
	Root ExpandedValue[T]
}

// String renders v as a compact debug form, not a reparseable source
// rendering (spec §1's Non-goals exclude round-trip serialization). Mirrors
// cue/ast's node String() helpers, which exist for the same debugging
// purpose rather than for formatting source.
func (v CompactValue[T]) String() string {
	switch v.Kind {
	case Null:
		return "null"
	case Bool:
		return strconv.FormatBool(v.Bool)
	case Integer:
		return strconv.FormatInt(v.Int, 10)
	case Float:
		return strconv.FormatFloat(v.Float64, 'g', -1, 64)
	case String:
		return strconv.Quote(v.Str)
	case List:
		parts := make([]string, len(v.Items))
		for i, item := range v.Items {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Map:
		parts := make([]string, len(v.Entries))
		for i, e := range v.Entries {
			parts[i] = fmt.Sprintf("%s: %s", e.Key, e.Value.String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "<invalid CompactValue>"
	}
}

// String renders v as a compact debug form, the expanded-tree counterpart of
// CompactValue.String.
func (v ExpandedValue[T]) String() string {
	switch v.Kind {
	case ExpandedCompact:
		return v.Compact.String()
	case ExpandedList:
		parts := make([]string, len(v.Items))
		for i, item := range v.Items {
			parts[i] = item.Value.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ExpandedMap:
		parts := make([]string, len(v.Entries))
		for i, e := range v.Entries {
			parts[i] = fmt.Sprintf("%s: %s", e.Key, e.Value.String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case ExpandedMultilineString:
		return strconv.Quote(v.MultilineText)
	default:
		return "<invalid ExpandedValue>"
	}
}

// String renders the whole tree rooted at o.
func (o Object[T]) String() string {
	return o.Root.String()
}
