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

package excerpt_test

import (
	"strings"
	"testing"

	"github.com/go-docparse/docparse/excerpt"
	"github.com/go-docparse/docparse/span"
)

func marker(offset int) span.Marker[int] {
	return span.Marker[int]{ByteOffset: offset, Index: offset}
}

func TestFormatSingleLineSpan(t *testing.T) {
	text := []byte("x: abc\n")
	sp := span.Span[int]{Start: marker(3), End: marker(6)}
	got := excerpt.FormatString(text, sp)
	if !strings.Contains(got, "1 | x: abc") {
		t.Fatalf("missing source line in output:\n%s", got)
	}
	if !strings.Contains(got, "  |    ^^^") {
		t.Fatalf("missing caret underline in output:\n%s", got)
	}
}

func TestFormatZeroWidthSpan(t *testing.T) {
	text := []byte("x:\n")
	sp := span.Point(marker(2))
	got := excerpt.FormatString(text, sp)
	if !strings.Contains(got, "~") {
		t.Fatalf("expected a tilde for a zero-width span, got:\n%s", got)
	}
}

func TestFormatSpanPastLineEnd(t *testing.T) {
	text := []byte("a: 1\nb: 2\n")
	sp := span.Span[int]{Start: marker(3), End: marker(9)}
	got := excerpt.FormatString(text, sp)
	if !strings.Contains(got, "-\n") {
		t.Fatalf("expected a trailing '-' marking continuation, got:\n%s", got)
	}
	if !strings.Contains(got, "2 | b: 2") {
		t.Fatalf("expected the second line in the excerpt, got:\n%s", got)
	}
}
