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

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/shlex"
	"github.com/rogpeppe/go-internal/testscript"
)

// TestScript runs every testdata/script/*.txtar file as an end-to-end test
// of the docparse CLI, the way cue-lang-cue's TestScript drives cmd/cue.
func TestScript(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: filepath.Join("testdata", "script"),
	})
}

// TestX takes a single testscript file and runs its first "docparse"
// invocation in-process, for debugging a failing script by hand.
//
// Usage: comment out t.Skip() and set path to the file under investigation.
func TestX(t *testing.T) {
	t.Skip()
	const path = "testdata/script/parse_basic.txtar"

	a, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	for _, line := range bytes.Split(a, []byte("\n")) {
		cmd := string(bytes.TrimPrefix(bytes.TrimLeft(line, "! "), []byte("exec ")))
		if !bytes.HasPrefix([]byte(cmd), []byte("docparse ")) {
			continue
		}
		args, err := shlex.Split(cmd)
		if err != nil {
			t.Fatal(err)
		}
		os.Args = append([]string{"docparse"}, args[1:]...)
		os.Exit(Main())
	}
	t.Fatal("no docparse command found")
}

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"docparse": Main,
	}))
}
