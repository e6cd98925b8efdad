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

package ast_test

import (
	"testing"

	"github.com/go-docparse/docparse/ast"
)

func TestCompactValueString(t *testing.T) {
	v := ast.CompactValue[int]{
		Kind: ast.List,
		Items: []ast.CompactValue[int]{
			{Kind: ast.Integer, Int: 1},
			{Kind: ast.String, Str: "a"},
			{Kind: ast.Null},
		},
	}
	if got, want := v.String(), `[1, "a", null]`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestExpandedValueString(t *testing.T) {
	v := ast.ExpandedValue[int]{
		Kind: ast.ExpandedMap,
		Entries: []ast.ExpandedMapEntry[int]{
			{Key: "a", Value: ast.ExpandedValue[int]{Kind: ast.ExpandedCompact, Compact: ast.CompactValue[int]{Kind: ast.Bool, Bool: true}}},
		},
	}
	if got, want := v.String(), `{a: true}`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
