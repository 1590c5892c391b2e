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

// Package writer serializes a Document back to canonical HEDL text: a
// byte-stable output such that parsing the result reproduces the same
// Document (modulo alias expansion, which the writer intentionally
// resolves away).
package writer

import (
	"bufio"
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hedl-lang/hedl/ast"
	"github.com/hedl-lang/hedl/expr"
	"github.com/hedl-lang/hedl/token"
)

// SchemaMode controls how struct declarations are emitted.
type SchemaMode int

const (
	// DeclaredSchemas emits a %STRUCT line for every type used in the
	// body, with a count hint derived from its row count.
	DeclaredSchemas SchemaMode = iota
	// InlineSchemas emits %STRUCT only when needed — a type reused
	// across more than one list declaration, or one that participates
	// in a NEST relationship and so has no declaration line of its own
	// to carry an inline schema. Otherwise the schema rides on the
	// list declaration itself.
	InlineSchemas
)

// QuoteStrategy controls when a string scalar is quoted.
type QuoteStrategy int

const (
	// QuoteWhenNeeded quotes a string only when its unquoted form
	// would re-infer to something other than String, or contains a
	// quoting/comment/whitespace hazard.
	QuoteWhenNeeded QuoteStrategy = iota
	// QuoteAlways quotes every string scalar.
	QuoteAlways
)

// Config configures one canonicalization pass.
type Config struct {
	SchemaMode    SchemaMode
	QuoteStrategy QuoteStrategy
	DittoEnabled  bool
}

// DefaultConfig returns the writer's baseline configuration.
func DefaultConfig() Config {
	return Config{SchemaMode: DeclaredSchemas, QuoteStrategy: QuoteWhenNeeded, DittoEnabled: true}
}

type writer struct {
	buf *bufio.Writer
	cfg Config

	// declaredStructs holds the types that got a %STRUCT line, computed
	// once in writeHeader. A type in this set never also carries an
	// inline schema on its list-declaration line.
	declaredStructs map[string]bool
}

// Write produces the canonical byte-stable encoding of doc.
func Write(doc *ast.Document, cfg Config) ([]byte, error) {
	var out bytes.Buffer
	w := &writer{buf: bufio.NewWriter(&out), cfg: cfg}

	if err := w.writeHeader(doc); err != nil {
		return nil, err
	}
	w.buf.WriteString("---\n")
	if err := w.writeMapping(doc.Root, 0); err != nil {
		return nil, err
	}
	if err := w.buf.Flush(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (w *writer) writeHeader(doc *ast.Document) error {
	fmt.Fprintf(w.buf, "%%VERSION: %d.%d\n", doc.VersionMajor, doc.VersionMinor)

	aliasKeys := make([]string, 0, len(doc.Aliases))
	for k := range doc.Aliases {
		aliasKeys = append(aliasKeys, k)
	}
	sort.Strings(aliasKeys)
	for _, k := range aliasKeys {
		fmt.Fprintf(w.buf, "%%ALIAS: %%%s: \"%s\"\n", k, token.EscapeQuoted(doc.Aliases[k]))
	}

	counts := countRowsByType(doc.Root)
	declared := w.structsToDeclare(doc)
	w.declaredStructs = declared
	typeNames := make([]string, 0, len(declared))
	for t := range declared {
		typeNames = append(typeNames, t)
	}
	sort.Strings(typeNames)
	for _, t := range typeNames {
		s := doc.Structs[t]
		n := counts[t]
		fmt.Fprintf(w.buf, "%%STRUCT: %s (%d): [%s]\n", t, n, strings.Join(s.Columns, ","))
	}

	parents := make([]string, 0, len(doc.Nest))
	for p := range doc.Nest {
		parents = append(parents, p)
	}
	sort.Strings(parents)
	for _, p := range parents {
		fmt.Fprintf(w.buf, "%%NEST: %s > %s\n", p, doc.Nest[p])
	}

	return nil
}

// structsToDeclare decides which types get a %STRUCT line. Under
// DeclaredSchemas every used type is declared. Under InlineSchemas a
// type's schema normally rides on its list-declaration line, but NEST
// parents and children have no such line to ride on (a NEST child's
// schema can only ever come from %STRUCT), and a type declared at more
// than one list site would otherwise repeat its schema inline — both
// cases still get a %STRUCT line.
func (w *writer) structsToDeclare(doc *ast.Document) map[string]bool {
	declared := make(map[string]bool)
	if w.cfg.SchemaMode == DeclaredSchemas {
		for t := range doc.Structs {
			declared[t] = true
		}
		return declared
	}
	for parent, child := range doc.Nest {
		declared[parent] = true
		declared[child] = true
	}
	sites := countListDeclarationSites(doc.Root)
	for t, n := range sites {
		if n > 1 {
			declared[t] = true
		}
	}
	return declared
}

// countListDeclarationSites counts, per type name, how many distinct
// "key: @Type" list declarations appear in the document.
func countListDeclarationSites(m *ast.Mapping) map[string]int {
	sites := make(map[string]int)
	var walk func(m *ast.Mapping)
	walk = func(m *ast.Mapping) {
		for _, k := range m.Keys() {
			item, _ := m.Get(k)
			switch v := item.(type) {
			case ast.ObjectItem:
				walk(v.V)
			case ast.ListItem:
				sites[v.V.TypeName]++
			}
		}
	}
	walk(m)
	return sites
}

func countRowsByType(m *ast.Mapping) map[string]int {
	counts := make(map[string]int)
	var walkList func(l *ast.MatrixList)
	var walkMapping func(m *ast.Mapping)
	walkNode := func(n *ast.Node) {}
	walkNode = func(n *ast.Node) {
		for _, children := range n.Children {
			for _, c := range children {
				counts[c.TypeName]++
				walkNode(c)
			}
		}
	}
	walkList = func(l *ast.MatrixList) {
		counts[l.TypeName] += len(l.Rows)
		for _, n := range l.Rows {
			walkNode(n)
		}
	}
	walkMapping = func(m *ast.Mapping) {
		for _, k := range m.Keys() {
			item, _ := m.Get(k)
			switch v := item.(type) {
			case ast.ObjectItem:
				walkMapping(v.V)
			case ast.ListItem:
				walkList(v.V)
			}
		}
	}
	walkMapping(m)
	return counts
}

func (w *writer) writeMapping(m *ast.Mapping, indent int) error {
	pad := strings.Repeat("  ", indent)
	for _, key := range m.Keys() {
		item, _ := m.Get(key)
		switch v := item.(type) {
		case ast.ScalarItem:
			fmt.Fprintf(w.buf, "%s%s: %s\n", pad, key, w.formatValue(v.V))
		case ast.ObjectItem:
			fmt.Fprintf(w.buf, "%s%s:\n", pad, key)
			if err := w.writeMapping(v.V, indent+1); err != nil {
				return err
			}
		case ast.ListItem:
			if err := w.writeList(key, v.V, indent); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *writer) writeList(key string, l *ast.MatrixList, indent int) error {
	pad := strings.Repeat("  ", indent)
	if w.cfg.SchemaMode == InlineSchemas && !w.declaredStructs[l.TypeName] {
		fmt.Fprintf(w.buf, "%s%s: @%s[%s]\n", pad, key, l.TypeName, strings.Join(l.Schema, ","))
	} else {
		fmt.Fprintf(w.buf, "%s%s: @%s\n", pad, key, l.TypeName)
	}
	var prev []ast.Value
	for i, n := range l.Rows {
		if err := w.writeRow(n, indent+1, prev); err != nil {
			return err
		}
		prev = n.Fields
		_ = i
	}
	return nil
}

func (w *writer) writeRow(n *ast.Node, indent int, prev []ast.Value) error {
	pad := strings.Repeat("  ", indent)
	cells := make([]string, len(n.Fields))
	for i, v := range n.Fields {
		if w.cfg.DittoEnabled && i > 0 && prev != nil && valuesEqual(v, prev[i]) {
			cells[i] = "^"
			continue
		}
		cells[i] = w.formatCell(v, i)
	}
	prefix := ""
	if n.ChildCount != nil {
		prefix = fmt.Sprintf("[%d]", *n.ChildCount)
	} else if len(n.Children) > 0 {
		total := 0
		for _, children := range n.Children {
			total += len(children)
		}
		prefix = fmt.Sprintf("[%d]", total)
	}
	sep := ""
	if prefix != "" {
		sep = " "
	}
	fmt.Fprintf(w.buf, "%s|%s%s%s\n", pad, prefix, sep, strings.Join(cells, ","))

	childTypes := make([]string, 0, len(n.Children))
	for t := range n.Children {
		childTypes = append(childTypes, t)
	}
	sort.Strings(childTypes)
	for _, t := range childTypes {
		var childPrev []ast.Value
		for _, c := range n.Children[t] {
			if err := w.writeRow(c, indent+1, childPrev); err != nil {
				return err
			}
			childPrev = c.Fields
		}
	}
	return nil
}

func valuesEqual(a, b ast.Value) bool {
	switch av := a.(type) {
	case ast.Null:
		_, ok := b.(ast.Null)
		return ok
	case ast.Bool:
		bv, ok := b.(ast.Bool)
		return ok && av.V == bv.V
	case ast.Int:
		bv, ok := b.(ast.Int)
		return ok && av.V == bv.V
	case ast.Float:
		bv, ok := b.(ast.Float)
		return ok && av.V == bv.V
	case ast.String:
		bv, ok := b.(ast.String)
		return ok && av.V == bv.V
	case ast.Reference:
		bv, ok := b.(ast.Reference)
		if !ok || av.ID != bv.ID {
			return false
		}
		if (av.TypeName == nil) != (bv.TypeName == nil) {
			return false
		}
		return av.TypeName == nil || *av.TypeName == *bv.TypeName
	default:
		return false
	}
}

func (w *writer) formatValue(v ast.Value) string {
	return w.formatCell(v, -1)
}

func (w *writer) formatCell(v ast.Value, col int) string {
	switch val := v.(type) {
	case ast.Null:
		return "~"
	case ast.Bool:
		if val.V {
			return "true"
		}
		return "false"
	case ast.Int:
		return strconv.FormatInt(val.V, 10)
	case ast.Float:
		return formatFloat(val.V)
	case ast.String:
		return w.formatString(val.V, col)
	case ast.Reference:
		if val.TypeName != nil {
			return "@" + *val.TypeName + ":" + val.ID
		}
		return "@" + val.ID
	case ast.Tensor:
		return formatTensor(val)
	case ast.Expression:
		return "$(" + formatExpr(val.V) + ")"
	default:
		return ""
	}
}

func (w *writer) formatString(s string, col int) string {
	inCell := col >= 0
	if !inCell && strings.Contains(s, "\n") {
		return "\"\"\"\n" + s + "\n\"\"\""
	}
	needsQuote := w.cfg.QuoteStrategy == QuoteAlways || stringNeedsQuoting(s) || col == 0 && s == "" ||
		inCell && strings.ContainsAny(s, "\n\r")
	if !needsQuote {
		return s
	}
	if inCell {
		return "\"" + token.EncodeBackslashEscapes(token.EscapeQuoted(s)) + "\""
	}
	return "\"" + token.EscapeQuoted(s) + "\""
}

func stringNeedsQuoting(s string) bool {
	if s == "" {
		return true
	}
	switch s {
	case "true", "false", "~", "^":
		return true
	}
	if strings.ContainsAny(s, "#\"|,") {
		return true
	}
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "@") || strings.HasPrefix(s, "$(") || strings.HasPrefix(s, "%") {
		return true
	}
	if s != strings.TrimSpace(s) {
		return true
	}
	if looksNumeric(s) {
		return true
	}
	return false
}

func looksNumeric(s string) bool {
	body := strings.TrimPrefix(s, "-")
	if body == "" {
		return false
	}
	if body[0] < '0' || body[0] > '9' {
		return false
	}
	for _, r := range body {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func formatTensor(t ast.Tensor) string {
	if t.Leaf {
		return formatFloat(t.Scalar)
	}
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = formatTensor(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatExpr(n expr.Node) string {
	switch v := n.(type) {
	case expr.Identifier:
		return v.Name
	case expr.IntLiteral:
		return strconv.FormatInt(v.Value, 10)
	case expr.FloatLiteral:
		return formatFloat(v.Value)
	case expr.StringLiteral:
		return "\"" + token.EscapeQuoted(v.Value) + "\""
	case expr.BoolLiteral:
		if v.Value {
			return "true"
		}
		return "false"
	case expr.Access:
		return formatExpr(v.Target) + "." + v.Field
	case expr.Call:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = formatExpr(a)
		}
		return formatExpr(v.Target) + "(" + strings.Join(args, ",") + ")"
	default:
		return ""
	}
}
