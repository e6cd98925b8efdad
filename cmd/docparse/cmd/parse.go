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
	"fmt"
	"os"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/go-docparse/docparse/convert"
	"github.com/go-docparse/docparse/excerpt"
	"github.com/go-docparse/docparse/index"
	"github.com/go-docparse/docparse/parser"
)

var debugTree bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "parse a document and print its value and diagnostics",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args)
		if err != nil {
			return err
		}

		var opts []parser.Option
		if len(args) > 0 {
			opts = append(opts, parser.WithFilename(args[0]))
		}
		obj, errs := parser.Parse(text, index.LineColumn{}, opts...)

		for _, e := range errs.Sanitize() {
			fmt.Fprintf(os.Stderr, "%s%s: %s\n", e.Position(), e.Kind, e.Error())
			_ = excerpt.Format(text, e.Span, os.Stderr)
		}

		if obj == nil {
			return fmt.Errorf("no value parsed")
		}

		if debugTree {
			repr.Println(obj)
		} else {
			reg := convert.FromExpanded(obj.Root)
			out, err := convert.ToJSON(reg)
			if err != nil {
				return err
			}
			fmt.Println(string(out))
		}

		if len(errs) != 0 {
			return errs
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().BoolVar(&debugTree, "debug", false, "print the raw parsed tree instead of the regular-value JSON")
}
