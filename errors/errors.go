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

// Package errors defines the parser's error model: errors are data, not
// exceptions. A parse accumulates a List of Error values and continues
// wherever it can, rather than aborting on the first problem.
package errors

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/go-docparse/docparse/span"
)

// Kind identifies the taxonomy of errors a parse can report (spec §4.4.5,
// §7).
type Kind int

const (
	EmptyExpandedList Kind = iota
	ExtraneousChars
	InvalidIndent
	InvalidIndentSize
	MissingListClose
	MissingMapClose
	MissingMapSemicolon
	MissingCompactMapValue
	MissingExpandedMapValue
	InvalidScalarLiteral
)

func (k Kind) String() string {
	switch k {
	case EmptyExpandedList:
		return "EmptyExpandedList"
	case ExtraneousChars:
		return "ExtraneousChars"
	case InvalidIndent:
		return "InvalidIndent"
	case InvalidIndentSize:
		return "InvalidIndentSize"
	case MissingListClose:
		return "MissingListClose"
	case MissingMapClose:
		return "MissingMapClose"
	case MissingMapSemicolon:
		return "MissingMapSemicolon"
	case MissingCompactMapValue:
		return "MissingCompactMapValue"
	case MissingExpandedMapValue:
		return "MissingExpandedMapValue"
	case InvalidScalarLiteral:
		return "InvalidScalarLiteral"
	default:
		return "Kind(?)"
	}
}

// Message is a deferred, printf-style human message: the format string and
// its arguments are kept apart so that a caller can format them lazily, or
// not at all if it only cares about Kind.
type Message struct {
	format string
	args   []any
}

// NewMessagef builds a deferred message. The arguments are not formatted
// until Error is called; Msg returns them unformatted.
func NewMessagef(format string, args ...any) Message {
	return Message{format: format, args: args}
}

func (m Message) Msg() (string, []any) { return m.format, m.args }

func (m Message) Error() string { return fmt.Sprintf(m.format, m.args...) }

// Error is one parse diagnostic: a Kind, a Span locating it in the source,
// and a human-readable Message. Filename is set by the parser when the
// caller supplied one via parser.WithFilename; it is display-only and does
// not participate in Span containment or Sort.
type Error[T any] struct {
	Kind     Kind
	Span     span.Span[T]
	Filename string
	Message
}

// New creates an Error of the given kind at sp with a printf-style message.
func New[T any](kind Kind, sp span.Span[T], format string, args ...any) Error[T] {
	return Error[T]{Kind: kind, Span: sp, Message: NewMessagef(format, args...)}
}

// List is an accumulating, orderable collection of Errors. The zero List is
// empty and ready to use.
type List[T any] []Error[T]

// Add appends err to the list.
func (l *List[T]) Add(err Error[T]) {
	*l = append(*l, err)
}

// Err returns l as an error, or nil if l is empty.
func (l List[T]) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Error implements the error interface, describing the first error and how
// many more there are.
func (l List[T]) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
	}
}

// Position renders e's location as "filename: " when a filename was attached
// (via parser.WithFilename), or the empty string otherwise.
func (e Error[T]) Position() string {
	if e.Filename == "" {
		return ""
	}
	return e.Filename + ": "
}

// Sort orders a List by start byte offset, breaking ties by Kind.
func (l List[T]) Sort() {
	slices.SortFunc(l, func(a, b Error[T]) int {
		if c := cmp.Compare(a.Span.Start.ByteOffset, b.Span.Start.ByteOffset); c != 0 {
			return c
		}
		return cmp.Compare(a.Kind, b.Kind)
	})
}

// RemoveMultiples sorts l and drops errors that share both a start offset
// and a Kind with an error already kept, so that one structural mistake
// does not produce a flood of near-duplicate diagnostics.
func (l *List[T]) RemoveMultiples() {
	l.Sort()
	*l = slices.CompactFunc(*l, func(a, b Error[T]) bool {
		return a.Span.Start.ByteOffset == b.Span.Start.ByteOffset && a.Kind == b.Kind
	})
}

// Sanitize returns a sorted, de-duplicated copy of l.
func (l List[T]) Sanitize() List[T] {
	out := slices.Clone(l)
	cp := List[T](out)
	cp.RemoveMultiples()
	return cp
}

// Print writes one line per error in l to w, in the form
// "[filename: ]kind: message".
func Print[T any](w io.Writer, l List[T]) {
	for _, e := range l.Sanitize() {
		fmt.Fprintf(w, "%s%s: %s\n", e.Position(), e.Kind, e.Error())
	}
}
