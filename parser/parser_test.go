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

package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-docparse/docparse/convert"
	"github.com/go-docparse/docparse/errors"
	"github.com/go-docparse/docparse/index"
	"github.com/go-docparse/docparse/parser"
)

func rNull() convert.Regular { return convert.Regular{Kind: convert.Null} }
func rStr(s string) convert.Regular {
	return convert.Regular{Kind: convert.String, StringVal: s}
}
func rInt(i int64) convert.Regular { return convert.Regular{Kind: convert.Int, IntVal: i} }
func rBool(b bool) convert.Regular { return convert.Regular{Kind: convert.Bool, BoolVal: b} }
func rList(vs ...convert.Regular) convert.Regular {
	return convert.Regular{Kind: convert.List, List: vs}
}
func rMap(pairs ...any) convert.Regular {
	var entries []convert.Entry
	for i := 0; i+1 < len(pairs); i += 2 {
		entries = append(entries, convert.Entry{Key: pairs[i].(string), Value: pairs[i+1].(convert.Regular)})
	}
	return convert.Regular{Kind: convert.Map, Entries: entries}
}

func mustParse(t *testing.T, text string) (convert.Regular, errors.List[int]) {
	t.Helper()
	obj, errs := parser.Parse([]byte(text), index.Byte{})
	if obj == nil {
		return convert.Regular{}, errs
	}
	return convert.FromExpanded(obj.Root), errs
}

func TestParseListItems(t *testing.T) {
	got, errs := mustParse(t, "- a\n- b\n- c\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := rList(rStr("a"), rStr("b"), rStr("c"))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseListOfMaps(t *testing.T) {
	got, errs := mustParse(t, "- a: 3\n- b\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := rList(rMap("a", rInt(3)), rStr("b"))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNestedList(t *testing.T) {
	got, errs := mustParse(t, "-\n  - a\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := rList(rList(rStr("a")))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMapOfMap(t *testing.T) {
	got, errs := mustParse(t, "a:\n  b: c\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := rMap("a", rMap("b", rStr("c")))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHandleThenKeyNested(t *testing.T) {
	got, errs := mustParse(t, "- a:\n    - b: c\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := rList(rMap("a", rList(rMap("b", rStr("c")))))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInvalidScalarLiteral(t *testing.T) {
	got, errs := mustParse(t, "x: 3.4.5\n")
	if len(errs) != 1 || errs[0].Kind != errors.InvalidScalarLiteral {
		t.Fatalf("expected one InvalidScalarLiteral, got %v", errs)
	}
	want := rMap("x", rStr("3.4.5"))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDanglingHandleThenSiblingIsEmptyList(t *testing.T) {
	_, errs := mustParse(t, "-\n- a\n")
	found := false
	for _, e := range errs {
		if e.Kind == errors.EmptyExpandedList {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an EmptyExpandedList error, got %v", errs)
	}
}

func TestParseDanglingHandleAtEOF(t *testing.T) {
	_, errs := mustParse(t, "-\n")
	if len(errs) != 1 || errs[0].Kind != errors.EmptyExpandedList {
		t.Fatalf("expected one EmptyExpandedList, got %v", errs)
	}
}

func TestParseMissingExpandedMapValue(t *testing.T) {
	_, errs := mustParse(t, "x:\n")
	if len(errs) != 1 || errs[0].Kind != errors.MissingExpandedMapValue {
		t.Fatalf("expected one MissingExpandedMapValue, got %v", errs)
	}
}

func TestParseMissingMapClose(t *testing.T) {
	got, errs := mustParse(t, "x: { a: 3\n")
	if len(errs) != 1 || errs[0].Kind != errors.MissingMapClose {
		t.Fatalf("expected one MissingMapClose, got %v", errs)
	}
	want := rMap("x", rMap("a", rInt(3)))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseExtraneousChars(t *testing.T) {
	got, errs := mustParse(t, "x: [3, 4] garbage\n")
	found := false
	for _, e := range errs {
		if e.Kind == errors.ExtraneousChars {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an ExtraneousChars error, got %v", errs)
	}
	want := rMap("x", rList(rInt(3), rInt(4)))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMixedTabsAndSpaces(t *testing.T) {
	_, errs := mustParse(t, "-\n  - a\n\t- b\n")
	if len(errs) != 1 || errs[0].Kind != errors.InvalidIndentSize {
		t.Fatalf("expected one InvalidIndentSize, got %v", errs)
	}
}

func TestParseComment(t *testing.T) {
	got, errs := mustParse(t, "# header comment\nx: 1 # inline\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := rMap("x", rInt(1))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFlowCollections(t *testing.T) {
	got, errs := mustParse(t, "x: [1, 2, {a: true, b: null}]\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := rMap("x", rList(rInt(1), rInt(2), rMap("a", rBool(true), "b", rNull())))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseWithFilename(t *testing.T) {
	_, errs := parser.Parse([]byte("x: 3.4.5\n"), index.Byte{}, parser.WithFilename("doc.cfg"))
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	if errs[0].Filename != "doc.cfg" {
		t.Fatalf("expected Filename %q, got %q", "doc.cfg", errs[0].Filename)
	}
	if got, want := errs[0].Position(), "doc.cfg: "; got != want {
		t.Fatalf("Position() = %q, want %q", got, want)
	}
}

func TestParseWithFilenameOnCompactError(t *testing.T) {
	// MissingListClose is reported from package compact, not the block
	// parser's own addErr path; WithFilename must still reach it.
	_, errs := parser.Parse([]byte("x: [1, 2\n"), index.Byte{}, parser.WithFilename("doc.cfg"))
	if len(errs) == 0 {
		t.Fatal("expected at least one error")
	}
	for _, e := range errs {
		if e.Filename != "doc.cfg" {
			t.Fatalf("expected every error to carry Filename %q, got %+v", "doc.cfg", e)
		}
	}
}
