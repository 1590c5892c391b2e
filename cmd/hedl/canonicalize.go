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
	"os"

	"github.com/spf13/cobra"

	"github.com/hedl-lang/hedl"
	"github.com/hedl-lang/hedl/writer"
)

var (
	inlineSchemas bool
	noDitto       bool

	canonicalizeCmd = &cobra.Command{
		Use:   "canonicalize <file>",
		Short: "parse a HEDL document and print its canonical form",
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

			cfg := hedl.DefaultWriteConfig()
			if inlineSchemas {
				cfg.SchemaMode = writer.InlineSchemas
			}
			if noDitto {
				cfg.DittoEnabled = false
			}

			out, err := hedl.Canonicalize(doc, cfg)
			if err != nil {
				return err
			}

			_, err = os.Stdout.Write(out)
			return err
		},
	}
)

func init() {
	canonicalizeCmd.Flags().BoolVar(&inlineSchemas, "inline-schemas", false, "emit inline schemas instead of declared %STRUCT lines")
	canonicalizeCmd.Flags().BoolVar(&noDitto, "no-ditto", false, "disable ditto optimization in matrix rows")
	rootCmd.AddCommand(canonicalizeCmd)
}
