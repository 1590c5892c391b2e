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

// Package body implements the indentation-structured body parser: the
// frame-stack state machine that builds a Document's root mapping out
// of object, scalar and matrix-list lines.
package body

import (
	"errors"
	"strconv"
	"strings"

	"github.com/hedl-lang/hedl/ast"
	"github.com/hedl-lang/hedl/hedlerr"
	"github.com/hedl-lang/hedl/inference"
	"github.com/hedl-lang/hedl/limits"
	"github.com/hedl-lang/hedl/preprocess"
	"github.com/hedl-lang/hedl/token"
)

// errBlockStringOpen signals from acceptKeyLine up to Parse's main
// loop that the current line opened a block string (`key: """`). The
// loop, not acceptKeyLine, owns line iteration, so it is the one that
// consumes the raw lines up to the terminator.
var errBlockStringOpen = errors.New("block string opened")

// Parser holds the mutable state threaded through a single body parse.
type Parser struct {
	doc   *ast.Document
	lim   limits.Limits
	stack []*frame

	totalKeys  int
	nodeCount  int
	aliasCache map[string]ast.Value

	// registry tracks (type, id) uniqueness across the whole document.
	registry map[string]map[string]bool

	// pendingBlockKey/pendingBlockTarget record where a block string
	// opened by acceptKeyLine should land once Parse has accumulated
	// its content; valid only right after acceptLine returns
	// errBlockStringOpen.
	pendingBlockKey    string
	pendingBlockTarget *ast.Mapping
}

// Parse consumes lines[startIdx:] as the document body, attaching
// everything it builds into doc.Root.
func Parse(lines []preprocess.Line, startIdx int, doc *ast.Document, lim limits.Limits) error {
	p := &Parser{
		doc:        doc,
		lim:        lim,
		aliasCache: make(map[string]ast.Value),
		registry:   make(map[string]map[string]bool),
	}
	root := &frame{kind: frameRoot, declIndent: -1, mapping: doc.Root}
	p.stack = []*frame{root}

	body := lines[startIdx:]
	for i := 0; i < len(body); i++ {
		line := body[i]
		text := string(line.Text)
		if token.IsBlankLine(text) || token.IsCommentLine(text) {
			continue
		}
		stripped := token.StripComment(text)
		indent, err := token.CalculateIndent(stripped)
		if err != nil {
			return hedlerr.Syntax(line.Number, 0, "%s", err.Error())
		}
		if indent.Level > lim.MaxIndentDepth {
			return hedlerr.SecurityLimit(line.Number, "max_indent_depth", "indentation exceeds max_indent_depth")
		}
		content := strings.TrimLeft(stripped, " ")
		isRow := strings.HasPrefix(content, "|")

		if err := p.acceptLine(line.Number, indent.Level, isRow, content); err != nil {
			if !errors.Is(err, errBlockStringOpen) {
				return err
			}
			value, consumed, err := p.consumeBlockString(body, i+1, lim)
			if err != nil {
				return err
			}
			p.pendingBlockTarget.Set(p.pendingBlockKey, ast.ScalarItem{V: ast.String{V: value}})
			i += consumed
		}
	}

	if err := p.popTo(0); err != nil {
		return err
	}
	return p.checkTruncation(root)
}

// consumeBlockString accumulates raw lines starting at body[start]
// verbatim until a line whose trimmed content is exactly `"""`,
// returning the joined content and the number of lines consumed
// (including the terminator). Block string content is not subject to
// comment stripping, blank-line skipping or indentation validation —
// it is opaque to the rest of the grammar.
func (p *Parser) consumeBlockString(body []preprocess.Line, start int, lim limits.Limits) (string, int, error) {
	var b strings.Builder
	for i := start; i < len(body); i++ {
		text := string(body[i].Text)
		if token.IsBlockStringTerminator(text) {
			return b.String(), i - start + 1, nil
		}
		if i > start {
			b.WriteByte('\n')
		}
		b.WriteString(text)
		if int64(b.Len()) > lim.MaxBlockStringSize {
			return "", 0, hedlerr.SecurityLimit(body[i].Number, "max_block_string_size", "block string exceeds max_block_string_size")
		}
	}
	return "", 0, hedlerr.Syntax(body[len(body)-1].Number, 0, "unterminated block string: missing closing \"\"\"")
}

// acceptLine routes one logical line to the right frame, popping or
// pushing frames as its indent requires.
func (p *Parser) acceptLine(lineNo, indent int, isRow bool, content string) error {
	top := p.top()

	// NEST child-row detection happens before generic popping: a row
	// exactly one level deeper than the current list's rows opens (or
	// continues) a nested child list.
	if top.kind == frameList && isRow && indent == top.rowIndent+1 {
		return p.acceptChildRow(lineNo, content)
	}

	for len(p.stack) > 1 && indent < top.contentIndent() {
		if err := p.pop(); err != nil {
			return err
		}
		top = p.top()
		if top.kind == frameList && isRow && indent == top.rowIndent+1 {
			return p.acceptChildRow(lineNo, content)
		}
	}

	top = p.top()
	if indent != top.contentIndent() {
		return hedlerr.Syntax(lineNo, 0, "unexpected indentation")
	}

	if isRow {
		if top.kind != frameList {
			return hedlerr.Syntax(lineNo, 0, "matrix row outside of a list")
		}
		return p.acceptRow(lineNo, top, content, false)
	}

	if top.kind != frameObject && top.kind != frameRoot {
		return hedlerr.Syntax(lineNo, 0, "expected a matrix row")
	}
	return p.acceptKeyLine(lineNo, top, content)
}

func (p *Parser) acceptChildRow(lineNo int, content string) error {
	parentFrame := p.top()
	if parentFrame.lastRow == nil {
		return hedlerr.OrphanRow(lineNo, "child row has no parent row")
	}
	childType, ok := p.doc.Nest[parentFrame.list.TypeName]
	if !ok {
		return hedlerr.OrphanRow(lineNo, "no NEST rule declared for parent type %q", parentFrame.list.TypeName)
	}
	schema, ok := p.doc.Structs[childType]
	if !ok {
		return hedlerr.Semantic(lineNo, "NEST child type %q is not a declared struct", childType)
	}

	owner := parentFrame.lastRow
	if parentFrame.nestDepth+1 > p.lim.MaxNestDepth {
		return hedlerr.SecurityLimit(lineNo, "max_nest_depth", "NEST hierarchy exceeds max_nest_depth")
	}

	child := &frame{
		kind:       frameList,
		declIndent: parentFrame.rowIndent,
		rowIndent:  parentFrame.rowIndent + 1,
		nestDepth:  parentFrame.nestDepth + 1,
		list: &ast.MatrixList{
			TypeName: childType,
			Schema:   schema.Columns,
		},
	}
	child.attachTo = func(ast.Item) {
		li := child.list
		if owner.Children == nil {
			owner.Children = make(map[string][]*ast.Node)
		}
		owner.Children[li.TypeName] = li.Rows
	}
	p.stack = append(p.stack, child)

	return p.acceptRow(lineNo, child, content, true)
}

func (p *Parser) acceptKeyLine(lineNo int, top *frame, content string) error {
	idx := strings.IndexByte(content, ':')
	if idx < 0 {
		return hedlerr.Syntax(lineNo, 0, "expected 'key:' or 'key: value'")
	}
	keyPart := content[:idx]
	tail := content[idx+1:]

	countHint, key, err := parseKeyCountHint(keyPart, lineNo)
	if err != nil {
		return err
	}
	if !token.IsKeyToken(key) {
		return hedlerr.Syntax(lineNo, 0, "invalid key %q", key)
	}
	if err := p.checkKeyInsertion(lineNo, top.mapping, key); err != nil {
		return err
	}

	if tail == "" {
		p.pushObject(lineNo, top, key)
		return nil
	}
	if !strings.HasPrefix(tail, " ") {
		return hedlerr.Syntax(lineNo, 0, "expected ': ' after key %q", key)
	}
	tail = tail[1:]

	if strings.HasPrefix(tail, "@") {
		return p.pushList(lineNo, top, key, tail, countHint)
	}

	if token.IsBlockStringOpen(tail) {
		p.pendingBlockKey = key
		p.pendingBlockTarget = top.mapping
		return errBlockStringOpen
	}

	val, err := p.inferScalar(lineNo, tail, false, 0, false, nil)
	if err != nil {
		return err
	}
	top.mapping.Set(key, ast.ScalarItem{V: val})
	return nil
}

// parseKeyCountHint recognizes the deprecated "key(N):" count-hint
// form and strips it, returning the hint (nil if absent) and the bare
// key.
func parseKeyCountHint(keyPart string, lineNo int) (*int, string, error) {
	if !strings.HasSuffix(keyPart, ")") {
		return nil, keyPart, nil
	}
	open := strings.IndexByte(keyPart, '(')
	if open < 0 {
		return nil, keyPart, nil
	}
	key := keyPart[:open]
	numStr := keyPart[open+1 : len(keyPart)-1]
	n, err := strconv.Atoi(numStr)
	if err != nil {
		return nil, "", hedlerr.Syntax(lineNo, 0, "invalid count hint %q", numStr)
	}
	if n == 0 {
		return nil, "", hedlerr.Semantic(lineNo, "count hint must not be zero")
	}
	return &n, key, nil
}

func (p *Parser) pushObject(lineNo int, top *frame, key string) {
	m := ast.NewMapping()
	f := &frame{kind: frameObject, declIndent: top.contentIndent(), key: key, mapping: m}
	f.attachTo = func(ast.Item) { top.mapping.Set(key, ast.ObjectItem{V: m}) }
	p.stack = append(p.stack, f)
}

func (p *Parser) pushList(lineNo int, top *frame, key, tail string, countHint *int) error {
	rest := strings.TrimPrefix(tail, "@")
	typeName := rest
	var inlineSchema []string
	if idx := strings.IndexByte(rest, '['); idx >= 0 {
		typeName = rest[:idx]
		if !strings.HasSuffix(rest, "]") {
			return hedlerr.Syntax(lineNo, 0, "inline schema must be enclosed in []")
		}
		inner := rest[idx+1 : len(rest)-1]
		for _, c := range strings.Split(inner, ",") {
			c = strings.TrimSpace(c)
			if !token.IsKeyToken(c) {
				return hedlerr.Syntax(lineNo, 0, "invalid inline schema column %q", c)
			}
			inlineSchema = append(inlineSchema, c)
		}
	}
	if !token.IsTypeName(typeName) {
		return hedlerr.Syntax(lineNo, 0, "invalid list type name %q", typeName)
	}

	schema := inlineSchema
	if schema == nil {
		s, ok := p.doc.Structs[typeName]
		if !ok {
			return hedlerr.Semantic(lineNo, "type %q has no declared schema and no inline schema was given", typeName)
		}
		schema = s.Columns
	} else if _, ok := p.doc.Structs[typeName]; !ok {
		p.doc.Structs[typeName] = ast.Struct{TypeName: typeName, Columns: schema}
		p.doc.StructOrder = append(p.doc.StructOrder, typeName)
	}

	list := &ast.MatrixList{TypeName: typeName, Schema: schema, CountHint: countHint}
	f := &frame{
		kind:       frameList,
		declIndent: top.contentIndent(),
		key:        key,
		rowIndent:  top.contentIndent() + 1,
		list:       list,
	}
	f.attachTo = func(ast.Item) { top.mapping.Set(key, ast.ListItem{V: list}) }
	p.stack = append(p.stack, f)
	return nil
}

func (p *Parser) acceptRow(lineNo int, f *frame, content string, isNested bool) error {
	rest := strings.TrimPrefix(content, "|")
	var hint *int
	if strings.HasPrefix(rest, "[") {
		close := strings.IndexByte(rest, ']')
		if close < 0 {
			return hedlerr.Syntax(lineNo, 0, "row count hint missing closing ']'")
		}
		numStr := rest[1:close]
		n, err := strconv.Atoi(numStr)
		if err != nil {
			return hedlerr.Syntax(lineNo, 0, "invalid row count hint %q", numStr)
		}
		hint = &n
		rest = rest[close+1:]
		if !strings.HasPrefix(rest, " ") {
			return hedlerr.Syntax(lineNo, 0, "expected a space before row content")
		}
		rest = rest[1:]
	}

	fields, err := token.ParseCSVRow(rest)
	if err != nil {
		return hedlerr.Syntax(lineNo, 0, "%s", err.Error())
	}
	if len(fields) != len(f.list.Schema) {
		return hedlerr.Shape(lineNo, "row has %d fields but schema %q has %d columns", len(fields), f.list.TypeName, len(f.list.Schema))
	}

	values := make([]ast.Value, len(fields))
	for i, field := range fields {
		if field.Quoted {
			values[i] = ast.String{V: field.Value}
			continue
		}
		v, err := p.inferScalar(lineNo, field.Value, true, i, !f.sawFirstRow, f.prevValues)
		if err != nil {
			return err
		}
		values[i] = v
	}

	idStr, ok := values[0].(ast.String)
	if !ok {
		return hedlerr.Semantic(lineNo, "id column must be a string")
	}
	if err := p.registerNode(lineNo, f.list.TypeName, idStr.V); err != nil {
		return err
	}

	p.nodeCount++
	if p.nodeCount > p.lim.MaxNodes {
		return hedlerr.SecurityLimit(lineNo, "max_nodes", "document exceeds max_nodes")
	}

	node := &ast.Node{TypeName: f.list.TypeName, ID: idStr.V, Fields: values, ChildCount: hint}
	f.list.Rows = append(f.list.Rows, node)
	f.lastRow = node
	f.prevValues = values
	f.sawFirstRow = true
	return nil
}

func (p *Parser) registerNode(lineNo int, typeName, id string) error {
	ids, ok := p.registry[typeName]
	if !ok {
		ids = make(map[string]bool)
		p.registry[typeName] = ids
	}
	if ids[id] {
		return hedlerr.Semantic(lineNo, "duplicate id %q for type %q", id, typeName)
	}
	ids[id] = true
	return nil
}

func (p *Parser) inferScalar(lineNo int, tail string, inMatrix bool, col int, firstRow bool, prevValues []ast.Value) (ast.Value, error) {
	if payload, ok := token.SplitQuoted(tail); ok {
		return ast.String{V: token.UnescapeQuoted(payload)}, nil
	}
	ctx := inference.Context{Doc: p.doc, InMatrixCell: inMatrix, ColumnIndex: col, IsFirstRow: firstRow, AliasCache: p.aliasCache}
	if inMatrix && col < len(prevValues) {
		ctx.PrevValue = prevValues[col]
	}
	return inference.Infer(tail, ctx, lineNo)
}

func (p *Parser) checkKeyInsertion(lineNo int, m *ast.Mapping, key string) error {
	if m.Has(key) {
		return hedlerr.Semantic(lineNo, "duplicate key %q", key)
	}
	if m.Len()+1 > p.lim.MaxObjectKeys {
		return hedlerr.SecurityLimit(lineNo, "max_object_keys", "object exceeds max_object_keys")
	}
	p.totalKeys++
	if p.totalKeys > p.lim.MaxTotalKeys {
		return hedlerr.SecurityLimit(lineNo, "max_total_keys", "document exceeds max_total_keys")
	}
	return nil
}

func (p *Parser) top() *frame {
	return p.stack[len(p.stack)-1]
}

func (p *Parser) pop() error {
	f := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	if f.attachTo != nil {
		f.attachTo(nil)
	}
	return nil
}

func (p *Parser) popTo(targetIndent int) error {
	for len(p.stack) > 1 {
		if err := p.pop(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) checkTruncation(root *frame) error {
	return checkEmptyObjects(root.mapping)
}

func checkEmptyObjects(m *ast.Mapping) error {
	for _, k := range m.Keys() {
		item, _ := m.Get(k)
		if obj, ok := item.(ast.ObjectItem); ok {
			if obj.V.Len() == 0 {
				return hedlerr.Syntax(0, 0, "truncated document: object %q has no children", k)
			}
			if err := checkEmptyObjects(obj.V); err != nil {
				return err
			}
		}
	}
	return nil
}
