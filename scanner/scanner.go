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

// Package scanner implements a byte-oriented UTF-8 cursor over source
// text, parameterized by an index.Indexer so that callers can choose what
// position information a Marker carries.
package scanner

import (
	"unicode/utf8"

	"github.com/go-docparse/docparse/index"
	"github.com/go-docparse/docparse/span"
)

const eof = -1

// Scanner is a character-oriented cursor over a borrowed text buffer. The
// zero Scanner is not usable; construct one with New.
//
// Scanner defers all Indexer work to Marker: the raw byte cursor
// (offset/rdOffset/ch) is free to move, including the internal rewinds
// PopUntil performs, without touching indexer state. Only a call to
// Marker replays the buffered run of consumed text through the Indexer, as
// described in the package-level "Marker cost" guidance: take one marker
// at the start and one at the end of each produced node, not in between.
type Scanner[T any] struct {
	src []byte

	indexer index.Indexer[T]
	state   T
	// exportedOffset is the byte offset up to which state already
	// reflects consumed characters.
	exportedOffset int

	// offset is the byte offset of the character currently held in ch;
	// it equals len(src) at EOF.
	offset int
	// rdOffset is the byte offset just past ch.
	rdOffset int
	ch       rune
}

// New creates a Scanner over src using indexer to produce Marker.Index
// values.
func New[T any](src []byte, indexer index.Indexer[T]) *Scanner[T] {
	s := &Scanner[T]{
		src:     src,
		indexer: indexer,
		state:   indexer.New(),
	}
	s.decode()
	return s
}

// decode reads the character at s.offset (== s.rdOffset on entry) into
// s.ch, advancing s.rdOffset past it. It leaves s.offset unchanged; call
// sites that want to move the cursor forward do so explicitly.
func (s *Scanner[T]) decode() {
	if s.rdOffset >= len(s.src) {
		s.offset = len(s.src)
		s.ch = eof
		return
	}
	s.offset = s.rdOffset
	b := s.src[s.rdOffset]
	if b < utf8.RuneSelf {
		s.ch = rune(b)
		s.rdOffset++
		return
	}
	r, w := utf8.DecodeRune(s.src[s.rdOffset:])
	s.ch = r
	s.rdOffset += w
}

// Peek returns the character at the cursor without consuming it, and
// false at end of input.
func (s *Scanner[T]) Peek() (rune, bool) {
	if s.ch == eof {
		return 0, false
	}
	return s.ch, true
}

// Advance commits the currently peeked character, moving the cursor past
// it. It is a no-op at end of input.
func (s *Scanner[T]) Advance() {
	if s.ch == eof {
		return
	}
	s.offset = s.rdOffset
	s.decode()
}

// Pop returns the character at the cursor and advances past it, or
// returns false at end of input without moving the cursor.
func (s *Scanner[T]) Pop() (rune, bool) {
	ch, ok := s.Peek()
	if !ok {
		return 0, false
	}
	s.Advance()
	return ch, true
}

// AtEOF reports whether the cursor is at the end of input.
func (s *Scanner[T]) AtEOF() bool {
	return s.ch == eof
}

// Offset returns the current byte offset of the cursor.
func (s *Scanner[T]) Offset() int {
	return s.offset
}

// PopWhile consumes characters while pred holds and returns the consumed
// slice (a view into the original source text).
func (s *Scanner[T]) PopWhile(pred func(rune) bool) []byte {
	start := s.offset
	for {
		ch, ok := s.Peek()
		if !ok || !pred(ch) {
			break
		}
		s.Advance()
	}
	return s.src[start:s.offset]
}

// PopUntil consumes characters while whilePred holds, but rewinds the
// cursor to just after the last character that did not satisfy
// untilPred, so that a trailing run of until-characters (e.g. spaces) is
// left unconsumed. It returns the trimmed slice. This is the asymmetry
// that lets an unquoted scalar scan keep interior spaces while stripping
// trailing ones, without a second lexer pass.
func (s *Scanner[T]) PopUntil(whilePred, untilPred func(rune) bool) []byte {
	start := s.offset
	trimEnd := s.offset
	rewindOffset, rewindRdOffset, rewindCh := s.offset, s.rdOffset, s.ch

	for {
		ch, ok := s.Peek()
		if !ok || !whilePred(ch) {
			break
		}
		s.Advance()
		if !untilPred(ch) {
			trimEnd = s.offset
			rewindOffset, rewindRdOffset, rewindCh = s.offset, s.rdOffset, s.ch
		}
	}

	s.offset, s.rdOffset, s.ch = rewindOffset, rewindRdOffset, rewindCh
	return s.src[start:trimEnd]
}

// PopConstant attempts to match lit exactly at the cursor. On success the
// cursor advances past it and PopConstant returns true; on failure the
// cursor is left untouched.
func (s *Scanner[T]) PopConstant(lit string) bool {
	if len(s.src)-s.offset < len(lit) {
		return false
	}
	if string(s.src[s.offset:s.offset+len(lit)]) != lit {
		return false
	}
	for range lit {
		s.Advance()
	}
	return true
}

// PopChar consumes the cursor's character if it equals c, reporting
// whether it did.
func (s *Scanner[T]) PopChar(c rune) bool {
	ch, ok := s.Peek()
	if !ok || ch != c {
		return false
	}
	s.Advance()
	return true
}

// PeekBytes returns up to n bytes starting at the cursor without consuming
// them. It is used by lookahead checks (e.g. keyword/terminator matching)
// that must not disturb the cursor on a non-match.
func (s *Scanner[T]) PeekBytes(n int) []byte {
	end := s.offset + n
	if end > len(s.src) {
		end = len(s.src)
	}
	return s.src[s.offset:end]
}

// Remaining returns the number of unread bytes, for callers that want to
// PeekBytes the entire rest of the input (e.g. an unbounded identifier scan).
func (s *Scanner[T]) Remaining() int {
	return len(s.src) - s.offset
}

// Marker takes a position snapshot at the cursor's current byte offset,
// flushing any text consumed since the previous Marker call through the
// Indexer.
func (s *Scanner[T]) Marker() span.Marker[T] {
	if s.exportedOffset < s.offset {
		for _, ch := range string(s.src[s.exportedOffset:s.offset]) {
			s.state = s.indexer.Consume(s.state, ch)
		}
		s.exportedOffset = s.offset
	}
	return span.Marker[T]{ByteOffset: s.offset, Index: s.state}
}
