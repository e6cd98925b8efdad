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

package scanner_test

import (
	"testing"

	"github.com/go-docparse/docparse/index"
	"github.com/go-docparse/docparse/scanner"
)

func TestPopUntilTrimsTrailingSpacesOnly(t *testing.T) {
	s := scanner.New([]byte("ab  cd   \nrest"), index.Byte{})
	got := s.PopUntil(
		func(ch rune) bool { return ch != '\n' },
		func(ch rune) bool { return ch == ' ' },
	)
	if string(got) != "ab  cd" {
		t.Fatalf("got %q, want %q", got, "ab  cd")
	}
	ch, ok := s.Peek()
	if !ok || ch != ' ' {
		t.Fatalf("expected cursor rewound onto a trailing space, got %q ok=%v", ch, ok)
	}
}

func TestPopConstantLeavesCursorOnFailure(t *testing.T) {
	s := scanner.New([]byte("truthy"), index.Byte{})
	if s.PopConstant("true") {
		t.Fatal("expected PopConstant to fail on a partial/non-exact match")
	}
	if s.Offset() != 0 {
		t.Fatalf("expected cursor untouched on failure, offset = %d", s.Offset())
	}
	if !s.PopConstant("truthy") {
		t.Fatal("expected PopConstant to match the full literal")
	}
	if !s.AtEOF() {
		t.Fatal("expected EOF after consuming the whole input")
	}
}

func TestPeekBytesAndRemaining(t *testing.T) {
	s := scanner.New([]byte("hello"), index.Byte{})
	if got := string(s.PeekBytes(3)); got != "hel" {
		t.Fatalf("PeekBytes(3) = %q", got)
	}
	if got := s.Remaining(); got != 5 {
		t.Fatalf("Remaining() = %d, want 5", got)
	}
	s.Advance()
	s.Advance()
	if got := s.Remaining(); got != 3 {
		t.Fatalf("Remaining() after two Advance = %d, want 3", got)
	}
	if got := string(s.PeekBytes(100)); got != "llo" {
		t.Fatalf("PeekBytes clamped to remaining = %q", got)
	}
}

func TestMarkerReplaysIndexerLazily(t *testing.T) {
	s := scanner.New([]byte("abc"), index.Character{})
	s.Advance()
	s.Advance()
	m := s.Marker()
	if m.ByteOffset != 2 || m.Index != 2 {
		t.Fatalf("got %+v, want ByteOffset=2 Index=2", m)
	}
}

func TestAtEOF(t *testing.T) {
	s := scanner.New([]byte(""), index.Byte{})
	if !s.AtEOF() {
		t.Fatal("expected an empty scanner to start at EOF")
	}
	if _, ok := s.Pop(); ok {
		t.Fatal("expected Pop to fail at EOF")
	}
}
