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

// Package cmd implements the docparse command-line tool: parse, locate,
// and fmt subcommands over the docparse library.
package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var rootCmd = &cobra.Command{
	Use:          "docparse",
	Short:        "docparse",
	SilenceUsage: true,
	Long:         `A parser and tree-inspection tool for the docparse configuration language.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Main runs the docparse tool and returns the code for passing to os.Exit.
// It is exported, rather than folded into Execute, so that
// testscript.RunMain (see script_test.go) can register it directly as the
// "docparse" command of the script-test binary.
func Main() int {
	if err := Execute(); err != nil {
		return 1
	}
	return 0
}

func init() {
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(fmtCmd)
}

// readInput reads text from args[0] if given, otherwise from stdin,
// stripping a leading UTF-8/16 byte order mark if present (spec §6: "Byte
// Order Mark not recognised; callers strip it").
func readInput(args []string) ([]byte, error) {
	var r io.Reader = os.Stdin
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	t := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	return io.ReadAll(transform.NewReader(r, t))
}
