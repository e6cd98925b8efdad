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

	"github.com/go-docparse/docparse/index"
	"github.com/go-docparse/docparse/parser"
)

// FuzzParse checks that Parse never panics over arbitrary byte input
// (spec §7: "no error aborts the whole parse").
func FuzzParse(f *testing.F) {
	f.Add([]byte("- a\n- b\n- c\n"))
	f.Add([]byte("a:\n  b: c\n"))
	f.Add([]byte("- a:\n    - b: c\n"))
	f.Add([]byte("-\n- a\n"))
	f.Add([]byte("x: [1, 2, {a: true, b: null}]\n"))
	f.Add([]byte("x: 3.4.5\n"))
	f.Add([]byte("\t- a\n  - b\n"))
	f.Add([]byte("# just a comment\n"))
	f.Add([]byte(""))
	f.Add([]byte("{unterminated\n"))
	f.Add([]byte("[1, 2\n"))
	f.Add([]byte("a: b: c\n"))
	f.Add([]byte(": : :\n"))
	f.Add([]byte("\x00\x01\xff"))
	f.Fuzz(func(t *testing.T, b []byte) {
		// A blank or comment-only input legitimately parses to neither a
		// root value nor an error, so the only property under test here is
		// that Parse returns at all instead of panicking.
		parser.Parse(b, index.Byte{})
	})
}
