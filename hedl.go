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

// Package hedl is the entry point of the HEDL core: parsing text into
// a Document, and canonicalizing a Document back to text. Everything
// else (lexical primitives, header, inference, body, registry,
// writer) is an internal collaborator wired together here.
package hedl

import (
	"github.com/hedl-lang/hedl/ast"
	"github.com/hedl-lang/hedl/body"
	"github.com/hedl-lang/hedl/header"
	"github.com/hedl-lang/hedl/limits"
	"github.com/hedl-lang/hedl/preprocess"
	"github.com/hedl-lang/hedl/registry"
	"github.com/hedl-lang/hedl/writer"
)

// Re-export the data model so consumers need only import this
// package for the common path.
type (
	Document    = ast.Document
	Item        = ast.Item
	Value       = ast.Value
	Node        = ast.Node
	MatrixList  = ast.MatrixList
	Reference   = ast.Reference
	Tensor      = ast.Tensor
)

// ParseOptions configures a single Parse call.
type ParseOptions struct {
	Limits     limits.Limits
	StrictRefs bool
}

// DefaultParseOptions returns the module's baseline parse options:
// default resource ceilings and strict reference resolution.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{Limits: limits.Default(), StrictRefs: true}
}

// WriteConfig re-exports the canonical writer's configuration.
type WriteConfig = writer.Config

// DefaultWriteConfig re-exports the writer's baseline configuration.
func DefaultWriteConfig() WriteConfig {
	return writer.DefaultConfig()
}

// Parse lexes, parses and resolves input into a Document.
func Parse(input []byte, opts ParseOptions) (*ast.Document, error) {
	lines, err := preprocess.Split(input, opts.Limits)
	if err != nil {
		return nil, err
	}

	doc := ast.NewDocument()
	bodyStart, err := header.Parse(lines, doc, opts.Limits)
	if err != nil {
		return nil, err
	}

	if err := body.Parse(lines, bodyStart, doc, opts.Limits); err != nil {
		return nil, err
	}

	reg := registry.Build(doc)
	if diags := registry.ResolveAll(doc, reg, opts.StrictRefs); len(diags) > 0 {
		return nil, diags[0]
	}

	return doc, nil
}

// Canonicalize serializes doc to its canonical byte-stable form.
func Canonicalize(doc *ast.Document, cfg WriteConfig) ([]byte, error) {
	return writer.Write(doc, cfg)
}
