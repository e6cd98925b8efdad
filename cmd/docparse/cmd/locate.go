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

	"github.com/spf13/cobra"

	"github.com/go-docparse/docparse/index"
	"github.com/go-docparse/docparse/locate"
	"github.com/go-docparse/docparse/parser"
)

var (
	locateOffset     int
	locateIncludeEnd bool
)

var locateCmd = &cobra.Command{
	Use:   "locate [file]",
	Short: "find the node at a byte offset and print the path to it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args)
		if err != nil {
			return err
		}

		obj, errs := parser.Parse(text, index.Byte{})
		if obj == nil {
			return fmt.Errorf("no value parsed: %s", errs.Error())
		}

		res, ok := locate.Find(obj, locateOffset, locateIncludeEnd)
		if !ok {
			fmt.Println("not found")
			return nil
		}

		if res.IsKey {
			fmt.Printf("key %q\n", res.Entry.Key)
		}
		for _, step := range res.Path {
			switch step.Kind {
			case locate.ListIndex:
				fmt.Printf("[%d]", step.Index)
			case locate.MapKey:
				fmt.Printf(".%s", step.Key)
			}
		}
		fmt.Println()
		return nil
	},
}

func init() {
	locateCmd.Flags().IntVar(&locateOffset, "offset", 0, "byte offset to locate")
	locateCmd.Flags().BoolVar(&locateIncludeEnd, "include-end", false, "use closed containment at span boundaries")
}
