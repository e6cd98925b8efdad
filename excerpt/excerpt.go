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

// Package excerpt renders a human-readable source excerpt for a span:
// the 1-based line number(s), the line(s) it covers, and a caret
// underline beneath the highlighted columns (spec §4.5). Columns are
// counted in grapheme clusters, not bytes or runes, so combining marks
// and wide characters underline at the position a reader actually sees.
package excerpt

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/go-docparse/docparse/span"
)

// line describes one physical line of the source text: its 1-based
// number and its byte range, excluding the trailing line terminator.
type line struct {
	number     int
	start, end int // byte offsets into text; end excludes '\n'
}

func splitLines(text []byte) []line {
	var lines []line
	start := 0
	n := 1
	for i, b := range text {
		if b == '\n' {
			lines = append(lines, line{number: n, start: start, end: i})
			start = i + 1
			n++
		}
	}
	lines = append(lines, line{number: n, start: start, end: len(text)})
	return lines
}

func lineContaining(lines []line, offset int) int {
	for i, l := range lines {
		if offset <= l.end {
			return i
		}
	}
	return len(lines) - 1
}

// columns returns the number of grapheme clusters in s, for column
// alignment under a caret underline.
func columns(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Format writes a caret-underlined excerpt of sp's location in text to w:
// a right-aligned line-number gutter, the source line(s), and a caret
// underline beneath the highlighted columns. A zero-width span renders as
// a single '~'; a highlight whose end lies past a line's newline gets a
// trailing '-' on that line to show it continues beyond the visible
// columns.
func Format[T any](text []byte, sp span.Span[T], w io.Writer) error {
	lines := splitLines(text)
	startLine := lineContaining(lines, sp.Start.ByteOffset)
	endLine := lineContaining(lines, sp.End.ByteOffset)
	gutter := len(fmt.Sprintf("%d", lines[endLine].number))

	if sp.IsPoint() {
		return formatPoint(lines[startLine], text, sp.Start.ByteOffset, w, gutter)
	}

	for i := startLine; i <= endLine; i++ {
		l := lines[i]
		colStart := 0
		if i == startLine {
			colStart = columns(string(text[l.start:sp.Start.ByteOffset]))
		}
		lineEndOffset := sp.End.ByteOffset
		if i != endLine || lineEndOffset > l.end {
			lineEndOffset = l.end
		}
		colEnd := columns(string(text[l.start:lineEndOffset]))

		if _, err := fmt.Fprintf(w, "%*d | %s\n", gutter, l.number, text[l.start:l.end]); err != nil {
			return err
		}
		underline := strings.Repeat(" ", colStart) + strings.Repeat("^", colEnd-colStart)
		if sp.End.ByteOffset > l.end {
			underline += "-"
		}
		if _, err := fmt.Fprintf(w, "%s | %s\n", strings.Repeat(" ", gutter), underline); err != nil {
			return err
		}
	}
	return nil
}

func formatPoint(l line, text []byte, offset int, w io.Writer, gutter int) error {
	col := columns(string(text[l.start:offset]))
	if _, err := fmt.Fprintf(w, "%*d | %s\n", gutter, l.number, text[l.start:l.end]); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s | %s~\n", strings.Repeat(" ", gutter), strings.Repeat(" ", col))
	return err
}

// FormatString is a convenience wrapper returning the excerpt as a string.
func FormatString[T any](text []byte, sp span.Span[T]) string {
	var buf bytes.Buffer
	_ = Format(text, sp, &buf)
	return buf.String()
}
