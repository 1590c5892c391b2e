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

// Package registry builds the per-type ID index during parsing and,
// once the body is fully built, resolves every Reference value
// against it in a single post-pass.
package registry

import (
	"github.com/hedl-lang/hedl/ast"
	"github.com/hedl-lang/hedl/hedlerr"
)

// Registry indexes every (type, id) pair that appears as a matrix row
// id anywhere in a document.
type Registry struct {
	byType map[string]map[string]bool
}

// Build walks doc's entire body and indexes every node id.
func Build(doc *ast.Document) *Registry {
	r := &Registry{byType: make(map[string]map[string]bool)}
	r.walkMapping(doc.Root)
	return r
}

func (r *Registry) walkMapping(m *ast.Mapping) {
	for _, key := range m.Keys() {
		item, _ := m.Get(key)
		switch v := item.(type) {
		case ast.ObjectItem:
			r.walkMapping(v.V)
		case ast.ListItem:
			r.walkList(v.V)
		}
	}
}

func (r *Registry) walkList(l *ast.MatrixList) {
	for _, n := range l.Rows {
		r.add(n.TypeName, n.ID)
		for _, children := range n.Children {
			for _, c := range children {
				r.addNode(c)
			}
		}
	}
}

func (r *Registry) addNode(n *ast.Node) {
	r.add(n.TypeName, n.ID)
	for _, children := range n.Children {
		for _, c := range children {
			r.addNode(c)
		}
	}
}

func (r *Registry) add(typeName, id string) {
	ids, ok := r.byType[typeName]
	if !ok {
		ids = make(map[string]bool)
		r.byType[typeName] = ids
	}
	ids[id] = true
}

// Has reports whether (typeName, id) was indexed.
func (r *Registry) Has(typeName, id string) bool {
	ids, ok := r.byType[typeName]
	if !ok {
		return false
	}
	return ids[id]
}

// FindBare returns every type under which id is indexed.
func (r *Registry) FindBare(id string) []string {
	var types []string
	for t, ids := range r.byType {
		if ids[id] {
			types = append(types, t)
		}
	}
	return types
}

// ResolveAll walks every Value in doc and validates References against
// r. In strict mode, an unresolved qualified reference is an error and
// an ambiguous bare reference is an error; in lenient mode both are
// silently accepted.
func ResolveAll(doc *ast.Document, r *Registry, strict bool) []*hedlerr.Diagnostic {
	var diags []*hedlerr.Diagnostic
	walkValuesInMapping(doc.Root, func(v ast.Value) {
		if d := checkReference(v, r, strict); d != nil {
			diags = append(diags, d)
		}
	})
	return diags
}

func checkReference(v ast.Value, r *Registry, strict bool) *hedlerr.Diagnostic {
	ref, ok := v.(ast.Reference)
	if !ok {
		return nil
	}
	if ref.TypeName != nil {
		if r.Has(*ref.TypeName, ref.ID) || !strict {
			return nil
		}
		return hedlerr.Reference(0, "reference @%s:%s does not resolve to any node", *ref.TypeName, ref.ID)
	}
	types := r.FindBare(ref.ID)
	if !strict {
		return nil
	}
	switch len(types) {
	case 0:
		return hedlerr.Reference(0, "reference @%s does not resolve to any node", ref.ID)
	case 1:
		return nil
	default:
		return hedlerr.Reference(0, "reference @%s is ambiguous across types %v", ref.ID, types)
	}
}

func walkValuesInMapping(m *ast.Mapping, visit func(ast.Value)) {
	for _, key := range m.Keys() {
		item, _ := m.Get(key)
		switch v := item.(type) {
		case ast.ScalarItem:
			visit(v.V)
		case ast.ObjectItem:
			walkValuesInMapping(v.V, visit)
		case ast.ListItem:
			walkValuesInList(v.V, visit)
		}
	}
}

func walkValuesInList(l *ast.MatrixList, visit func(ast.Value)) {
	for _, n := range l.Rows {
		walkValuesInNode(n, visit)
	}
}

func walkValuesInNode(n *ast.Node, visit func(ast.Value)) {
	for _, v := range n.Fields {
		visit(v)
	}
	for _, children := range n.Children {
		for _, c := range children {
			walkValuesInNode(c, visit)
		}
	}
}
