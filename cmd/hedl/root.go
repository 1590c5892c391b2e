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

// Package main is the hedl command-line tool: parse, canonicalize and
// lint HEDL documents from the shell.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

var (
	rootCmd = &cobra.Command{
		Use:          "hedl",
		Short:        "hedl",
		SilenceUsage: true,
		Long:         `Command-line tool for working with HEDL documents: parsing, canonicalizing and linting.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}

	log *logrus.Logger

	verbose    bool
	strictRefs bool
)

func init() {
	log = logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors: !term.IsTerminal(int(os.Stderr.Fd())),
	})

	configureFlags(rootCmd.PersistentFlags())
}

func configureFlags(fs *pflag.FlagSet) {
	fs.SortFlags = false
	fs.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	fs.BoolVar(&strictRefs, "strict-refs", true, "fail on unresolved or ambiguous references")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func main() {
	if err := Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
