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

package index

import "unicode/utf8"

// Empty is the unit Indexer: it tracks no position information at all,
// for callers who only need byte offsets (already tracked by the scanner
// itself, outside of any Indexer).
type Empty struct{}

func (Empty) New() struct{} { return struct{}{} }

func (Empty) Consume(state struct{}, ch rune) struct{} { return state }

// Byte counts characters as an unsigned byte-length run. The scanner
// already tracks the raw byte offset on its own cursor, so in practice a
// Byte index mirrors that cursor; it is provided so that Markers can carry
// a plain int Index without depending on the scanner's internals.
type Byte struct{}

func (Byte) New() int { return 0 }

func (Byte) Consume(state int, ch rune) int {
	return state + utf8.RuneLen(ch)
}

// Character counts decoded characters (runes), not bytes.
type Character struct{}

func (Character) New() int { return 0 }

func (Character) Consume(state int, ch rune) int { return state + 1 }

// LineColumn is a 0-based {line, column} pair, both counted in characters.
// A newline resets the column to 0 and advances the line; any other
// character advances the column by one.
type LineColumn struct{}

type LineColumnState struct {
	Line   int
	Column int
}

func (LineColumn) New() LineColumnState { return LineColumnState{} }

func (LineColumn) Consume(state LineColumnState, ch rune) LineColumnState {
	if ch == '\n' {
		return LineColumnState{Line: state.Line + 1, Column: 0}
	}
	return LineColumnState{Line: state.Line, Column: state.Column + 1}
}

// UTF16 counts UTF-16 code units: 1 for characters in the Basic
// Multilingual Plane, 2 for characters requiring a surrogate pair.
type UTF16 struct{}

func (UTF16) New() int { return 0 }

func (UTF16) Consume(state int, ch rune) int {
	return state + utf16Len(ch)
}

func utf16Len(ch rune) int {
	if ch > 0xFFFF {
		return 2
	}
	return 1
}

// LSPUTF16 is a 0-based {line, column} pair with the column counted in
// UTF-16 code units, matching the Language Server Protocol's position
// model. `\r`, `\n`, and `\r\n` are all treated as a single line break: a
// `\r` always advances the line, and a `\n` advances the line only when it
// was not immediately preceded by a `\r` (so that a `\r\n` pair counts as
// one break, not two). See spec Open Question (a): this follows the LSP
// specification's line-break rule literally.
type LSPUTF16 struct{}

type LSPUTF16State struct {
	Line   int
	Column int

	// sawCR records whether the immediately preceding character was '\r',
	// so a following '\n' can be folded into the same line break.
	sawCR bool
}

func (LSPUTF16) New() LSPUTF16State { return LSPUTF16State{} }

func (LSPUTF16) Consume(state LSPUTF16State, ch rune) LSPUTF16State {
	switch ch {
	case '\r':
		return LSPUTF16State{Line: state.Line + 1, Column: 0, sawCR: true}
	case '\n':
		if state.sawCR {
			return LSPUTF16State{Line: state.Line, Column: 0, sawCR: false}
		}
		return LSPUTF16State{Line: state.Line + 1, Column: 0, sawCR: false}
	default:
		return LSPUTF16State{Line: state.Line, Column: state.Column + utf16Len(ch), sawCR: false}
	}
}
