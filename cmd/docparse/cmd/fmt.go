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
	"os"

	"github.com/spf13/cobra"

	"github.com/go-docparse/docparse/excerpt"
	"github.com/go-docparse/docparse/span"
)

var (
	fmtStart int
	fmtEnd   int
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "render a caret-underlined excerpt of a byte range",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args)
		if err != nil {
			return err
		}
		sp := span.Span[int]{
			Start: span.Marker[int]{ByteOffset: fmtStart, Index: fmtStart},
			End:   span.Marker[int]{ByteOffset: fmtEnd, Index: fmtEnd},
		}
		return excerpt.Format(text, sp, os.Stdout)
	},
}

func init() {
	fmtCmd.Flags().IntVar(&fmtStart, "start", 0, "start byte offset")
	fmtCmd.Flags().IntVar(&fmtEnd, "end", 0, "end byte offset")
}
