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

// Package validate is the validate_document collaborator hook: it
// derives a JSON Schema from a Document's struct table and checks
// every row against it, on top of the shape checks the body parser
// already performs during a normal parse.
package validate

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/hedl-lang/hedl/ast"
	"github.com/hedl-lang/hedl/hedlerr"
)

// SchemaFor derives a JSON Schema describing one row of the given
// struct: an object with one required property per column.
// HEDL columns carry dynamically typed values, so the schema only
// pins down shape (every declared column present), not value type.
func SchemaFor(s ast.Struct) *jsonschema.Schema {
	props := make(map[string]*jsonschema.Schema, len(s.Columns))
	required := make([]string, 0, len(s.Columns))
	for _, col := range s.Columns {
		props[col] = &jsonschema.Schema{}
		required = append(required, col)
	}
	return &jsonschema.Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

// Document validates every matrix row in doc against its declared
// struct's schema, returning one diagnostic per failing row.
func Document(doc *ast.Document) ([]*hedlerr.Diagnostic, error) {
	resolved := make(map[string]*jsonschema.Resolved, len(doc.Structs))
	for name, s := range doc.Structs {
		r, err := SchemaFor(s).Resolve(nil)
		if err != nil {
			return nil, fmt.Errorf("resolve schema for %q: %w", name, err)
		}
		resolved[name] = r
	}

	var diags []*hedlerr.Diagnostic
	walkMapping(doc.Root, func(n *ast.Node) {
		r, ok := resolved[n.TypeName]
		if !ok {
			return
		}
		s, ok := doc.Structs[n.TypeName]
		if !ok {
			return
		}
		row := make(map[string]any, len(s.Columns))
		for i, col := range s.Columns {
			if i < len(n.Fields) {
				row[col] = nativeValue(n.Fields[i])
			}
		}
		if err := r.Validate(row); err != nil {
			diags = append(diags, hedlerr.Schema(0, "node %s:%s failed schema validation: %s", n.TypeName, n.ID, err.Error()))
		}
	})
	return diags, nil
}

func nativeValue(v ast.Value) any {
	switch val := v.(type) {
	case ast.Null:
		return nil
	case ast.Bool:
		return val.V
	case ast.Int:
		return val.V
	case ast.Float:
		return val.V
	case ast.String:
		return val.V
	case ast.Reference:
		if val.TypeName != nil {
			return "@" + *val.TypeName + ":" + val.ID
		}
		return "@" + val.ID
	default:
		return nil
	}
}

func walkMapping(m *ast.Mapping, visit func(*ast.Node)) {
	for _, key := range m.Keys() {
		item, _ := m.Get(key)
		switch v := item.(type) {
		case ast.ObjectItem:
			walkMapping(v.V, visit)
		case ast.ListItem:
			for _, n := range v.V.Rows {
				walkNode(n, visit)
			}
		}
	}
}

func walkNode(n *ast.Node, visit func(*ast.Node)) {
	visit(n)
	for _, children := range n.Children {
		for _, c := range children {
			walkNode(c, visit)
		}
	}
}
