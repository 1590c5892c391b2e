// Copyright 2021 Torben Schinke
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hedl-lang/hedl"
	"github.com/hedl-lang/hedl/validate"
)

var (
	lintCmd = &cobra.Command{
		Use:   "lint <file>",
		Short: "parse a HEDL document and run schema validation against it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = cmd.Help()
				return errors.New("expected exactly one file argument")
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			opts := hedl.DefaultParseOptions()
			opts.StrictRefs = strictRefs

			doc, err := hedl.Parse(data, opts)
			if err != nil {
				return err
			}

			diags, err := validate.Document(doc)
			if err != nil {
				return err
			}
			if len(diags) == 0 {
				fmt.Println("no schema violations found")
				return nil
			}
			for _, d := range diags {
				fmt.Println(d.Error())
			}
			return fmt.Errorf("%d schema violation(s) found", len(diags))
		},
	}
)

func init() {
	rootCmd.AddCommand(lintCmd)
}
