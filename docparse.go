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

// Package docparse ties the scanner, compact expression parser, block
// parser, tree locator, and regular-value converter into the single
// external entry point described in spec §6: Parse(text) parses a whole
// document, ParseResult carries the tree plus diagnostics, and Locate finds
// the node under a given position.
package docparse

import (
	"io"

	"github.com/go-docparse/docparse/ast"
	"github.com/go-docparse/docparse/convert"
	"github.com/go-docparse/docparse/errors"
	"github.com/go-docparse/docparse/excerpt"
	"github.com/go-docparse/docparse/index"
	"github.com/go-docparse/docparse/locate"
	"github.com/go-docparse/docparse/parser"
	"github.com/go-docparse/docparse/span"
)

// ParseResult is the outcome of a Parse call: a (possibly nil) tree plus
// whatever diagnostics the parse accumulated along the way. A nil Object
// with a non-empty Errors means the input had no usable root value at all.
type ParseResult[T any] struct {
	Object *ast.Object[T]
	Errors errors.List[T]
}

// Option configures a Parse call. It is an alias of parser.Option so
// callers never need to import package parser directly.
type Option = parser.Option

// WithMaxErrors stops adding new diagnostics once the list reaches n.
func WithMaxErrors(n int) Option { return parser.WithMaxErrors(n) }

// WithFilename attaches name to every diagnostic a Parse call reports.
func WithFilename(name string) Option { return parser.WithFilename(name) }

// Parse parses text into a ParseResult, using indexer to produce the
// position type T carried by every Marker in the resulting tree.
func Parse[T any](text []byte, indexer index.Indexer[T], opts ...Option) ParseResult[T] {
	obj, errs := parser.Parse(text, indexer, opts...)
	return ParseResult[T]{Object: obj, Errors: errs}
}

// Locate finds the node at the given byte offset in r's tree. It is a thin
// wrapper around package locate so that most callers never need to import
// it directly.
func Locate[T any](r ParseResult[T], offset int, includeEnd bool) (locate.Result[T], bool) {
	if r.Object == nil {
		return locate.Result[T]{}, false
	}
	return locate.Find(r.Object, offset, includeEnd)
}

// ToRegular folds r's tree to a Regular value, discarding comments, gaps,
// and positions. Returns the zero Regular and false if r has no tree.
func ToRegular[T any](r ParseResult[T]) (convert.Regular, bool) {
	if r.Object == nil {
		return convert.Regular{}, false
	}
	return convert.FromExpanded(r.Object.Root), true
}

// FormatExcerpt writes a caret-underlined excerpt of sp's location in text
// to w. It is a thin wrapper around package excerpt.
func FormatExcerpt[T any](text []byte, sp span.Span[T], w io.Writer) error {
	return excerpt.Format(text, sp, w)
}
