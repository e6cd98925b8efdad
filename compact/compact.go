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

// Package compact parses compact-form (single-line) values: scalars, flow
// lists `[...]`, and flow maps `{...}`. It is invoked by the block parser
// for any single-line right-hand side.
package compact

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-docparse/docparse/ast"
	"github.com/go-docparse/docparse/errors"
	"github.com/go-docparse/docparse/scanner"
	"github.com/go-docparse/docparse/span"
)

// Parse attempts to read one compact value from s. It returns false
// without consuming anything of significance if the cursor is at EOF, a
// newline, a `#` comment, or a character in breakChars. Structural
// failures inside a flow collection push an error onto errs and abort only
// the current expression, not the whole parse: a missing `:` or value in a
// flow map still reports ok == true once the map closes, while a missing
// closing `]`/`}` reports ok == false together with the partial
// collection read so far.
func Parse[T any](s *scanner.Scanner[T], breakChars string, errs *errors.List[T]) (ast.CompactValue[T], bool) {
	skipSpaces(s)

	ch, ok := s.Peek()
	if !ok || ch == '\n' || ch == '#' || strings.ContainsRune(breakChars, ch) {
		return ast.CompactValue[T]{}, false
	}

	start := s.Marker()

	switch ch {
	case '[':
		return parseFlowList(s, start, errs)
	case '{':
		return parseFlowMap(s, start, errs)
	case 'i':
		if tryWord(s, "inf") {
			return mkFloat(start, s, math.Inf(1)), true
		}
	case 'n':
		if tryWord(s, "nan") {
			return mkFloat(start, s, math.NaN()), true
		}
		if s.PopConstant("null") {
			return mkNull(start, s), true
		}
	case 't':
		if s.PopConstant("true") {
			return mkBool(start, s, true), true
		}
	case 'f':
		if s.PopConstant("false") {
			return mkBool(start, s, false), true
		}
	case '+':
		if tryWord(s, "+inf") {
			return mkFloat(start, s, math.Inf(1)), true
		}
	case '-':
		if tryWord(s, "-inf") {
			return mkFloat(start, s, math.Inf(-1)), true
		}
	}

	switch {
	case ch == '+' || ch == '-' || ch == '.' || (ch >= '0' && ch <= '9'):
		return parseNumeric(s, start, breakChars, errs), true
	default:
		return parseUnquotedString(s, start, breakChars), true
	}
}

func skipSpaces[T any](s *scanner.Scanner[T]) {
	s.PopWhile(func(ch rune) bool { return ch == ' ' || ch == '\t' })
}

func isSpace(ch rune) bool { return ch == ' ' || ch == '\t' }

func isWordContinuation(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}

func atExprBoundary[T any](s *scanner.Scanner[T]) bool {
	ch, ok := s.Peek()
	return !ok || ch == '\n' || ch == '#'
}

// tryWord matches word at the cursor, requiring that it not be followed by
// a word-continuation character (so "infinity" is not parsed as the float
// sentinel "inf" followed by garbage). Used only for the float sentinels
// ("inf", "nan", "+inf", "-inf"): null/true/false match unconditionally via
// a bare PopConstant, per spec §4.3's tie-break table. On success it
// consumes word; on failure the cursor is untouched.
func tryWord[T any](s *scanner.Scanner[T], word string) bool {
	peek := s.PeekBytes(len(word) + utf8.UTFMax)
	if len(peek) < len(word) || string(peek[:len(word)]) != word {
		return false
	}
	if rest := peek[len(word):]; len(rest) > 0 {
		next, _ := utf8.DecodeRune(rest)
		if isWordContinuation(next) {
			return false
		}
	}
	return s.PopConstant(word)
}

func mkFloat[T any](start span.Marker[T], s *scanner.Scanner[T], f float64) ast.CompactValue[T] {
	return ast.CompactValue[T]{
		Span:    span.Span[T]{Start: start, End: s.Marker()},
		Kind:    ast.Float,
		Float64: f,
	}
}

func mkBool[T any](start span.Marker[T], s *scanner.Scanner[T], b bool) ast.CompactValue[T] {
	return ast.CompactValue[T]{
		Span: span.Span[T]{Start: start, End: s.Marker()},
		Kind: ast.Bool,
		Bool: b,
	}
}

func mkNull[T any](start span.Marker[T], s *scanner.Scanner[T]) ast.CompactValue[T] {
	return ast.CompactValue[T]{
		Span: span.Span[T]{Start: start, End: s.Marker()},
		Kind: ast.Null,
	}
}

func parseNumeric[T any](s *scanner.Scanner[T], start span.Marker[T], breakChars string, errs *errors.List[T]) ast.CompactValue[T] {
	raw := s.PopUntil(
		func(ch rune) bool { return !strings.ContainsRune(breakChars, ch) && ch != '\n' && ch != '#' },
		isSpace,
	)
	end := s.Marker()
	sp := span.Span[T]{Start: start, End: end}
	text := string(raw)

	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return ast.CompactValue[T]{Span: sp, Kind: ast.Integer, Int: i}
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return ast.CompactValue[T]{Span: sp, Kind: ast.Float, Float64: f}
	}

	errs.Add(errors.New[T](errors.InvalidScalarLiteral, sp, "invalid scalar literal %q", text))
	return ast.CompactValue[T]{Span: sp, Kind: ast.String, Str: text}
}

func parseUnquotedString[T any](s *scanner.Scanner[T], start span.Marker[T], breakChars string) ast.CompactValue[T] {
	raw := s.PopUntil(
		func(ch rune) bool { return !strings.ContainsRune(breakChars, ch) && ch != '\n' && ch != '#' },
		isSpace,
	)
	return ast.CompactValue[T]{
		Span: span.Span[T]{Start: start, End: s.Marker()},
		Kind: ast.String,
		Str:  string(raw),
	}
}

func parseFlowList[T any](s *scanner.Scanner[T], start span.Marker[T], errs *errors.List[T]) (ast.CompactValue[T], bool) {
	s.Advance() // consume '['
	var items []ast.CompactValue[T]

	for {
		skipSpaces(s)
		if ch, ok := s.Peek(); ok && ch == ']' {
			s.Advance()
			return ast.CompactValue[T]{Span: span.Span[T]{Start: start, End: s.Marker()}, Kind: ast.List, Items: items}, true
		}
		if s.AtEOF() || atExprBoundary(s) {
			m := s.Marker()
			errs.Add(errors.New[T](errors.MissingListClose, span.Point(m), "missing ']' to close list"))
			return ast.CompactValue[T]{Span: span.Span[T]{Start: start, End: m}, Kind: ast.List, Items: items}, false
		}

		if val, ok := Parse(s, ",]", errs); ok {
			items = append(items, val)
		}

		skipSpaces(s)
		if ch, ok := s.Peek(); ok && ch == ',' {
			s.Advance()
		}
	}
}

func parseFlowMap[T any](s *scanner.Scanner[T], start span.Marker[T], errs *errors.List[T]) (ast.CompactValue[T], bool) {
	s.Advance() // consume '{'
	var entries []ast.CompactMapEntry[T]

	for {
		skipSpaces(s)
		if ch, ok := s.Peek(); ok && ch == '}' {
			s.Advance()
			return ast.CompactValue[T]{Span: span.Span[T]{Start: start, End: s.Marker()}, Kind: ast.Map, Entries: entries}, true
		}
		if s.AtEOF() || atExprBoundary(s) {
			m := s.Marker()
			errs.Add(errors.New[T](errors.MissingMapClose, span.Point(m), "missing '}' to close map"))
			return ast.CompactValue[T]{Span: span.Span[T]{Start: start, End: m}, Kind: ast.Map, Entries: entries}, false
		}
		if ch, ok := s.Peek(); ok && ch == ',' {
			s.Advance()
			continue
		}

		keyStart := s.Marker()
		rawKey := s.PopUntil(
			func(ch rune) bool { return ch != ':' && ch != '}' && ch != '\n' && ch != '#' },
			isSpace,
		)
		keySpan := span.Span[T]{Start: keyStart, End: s.Marker()}
		key := string(rawKey)

		skipSpaces(s)
		if !s.PopChar(':') {
			errs.Add(errors.New[T](errors.MissingMapSemicolon, span.Point(s.Marker()), "missing ':' after map key %q", key))
			entries = append(entries, ast.CompactMapEntry[T]{KeySpan: keySpan, Key: key})
			continue
		}

		skipSpaces(s)
		val, ok := Parse(s, ",}", errs)
		if !ok {
			errs.Add(errors.New[T](errors.MissingCompactMapValue, span.Point(s.Marker()), "missing value for map key %q", key))
		}
		entries = append(entries, ast.CompactMapEntry[T]{KeySpan: keySpan, Key: key, Value: val})

		skipSpaces(s)
		if ch, ok := s.Peek(); ok && ch == ',' {
			s.Advance()
		}
	}
}
