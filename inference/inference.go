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

// Package inference implements the value inference ladder: turning a
// single trimmed, unquoted token into one of the closed Value
// variants. It is a pure dispatch on the token's leading byte, with a
// fast path for the three most common literals.
package inference

import (
	"strconv"
	"strings"

	"github.com/hedl-lang/hedl/ast"
	"github.com/hedl-lang/hedl/expr"
	"github.com/hedl-lang/hedl/hedlerr"
	"github.com/hedl-lang/hedl/token"
)

// Context carries the state the ladder needs beyond the token itself:
// the document (for alias and struct lookups), whether this token is
// a matrix cell and at which column, and the previous row's value at
// that column for ditto expansion.
type Context struct {
	Doc *ast.Document

	InMatrixCell bool
	ColumnIndex  int
	IsFirstRow   bool
	PrevValue    ast.Value

	// AliasCache memoizes one-level alias expansion per parse.
	AliasCache map[string]ast.Value
}

var fastPath = map[string]ast.Value{
	"true":  ast.Bool{V: true},
	"false": ast.Bool{V: false},
	"~":     ast.Null{},
}

// Infer resolves tok (already trimmed) to a Value. tok must not be
// quoted; the caller resolves quoted strings itself (they always
// resolve to String after doubled-quote unescape, never re-entering
// the ladder).
func Infer(tok string, ctx Context, lineNo int) (ast.Value, error) {
	if v, ok := fastPath[tok]; ok {
		if _, isNull := v.(ast.Null); isNull && ctx.InMatrixCell && ctx.ColumnIndex == 0 {
			return nil, hedlerr.Semantic(lineNo, "null is not permitted in the id column")
		}
		return v, nil
	}

	switch {
	case tok == "^":
		if !ctx.InMatrixCell {
			return nil, hedlerr.Syntax(lineNo, 0, "ditto ('^') is only valid in a matrix cell")
		}
		if ctx.ColumnIndex == 0 {
			return nil, hedlerr.Semantic(lineNo, "ditto is not permitted in the id column")
		}
		if ctx.IsFirstRow {
			return nil, hedlerr.Semantic(lineNo, "ditto is not permitted in the first row of a list")
		}
		return ctx.PrevValue, nil

	case strings.HasPrefix(tok, "["):
		lit, err := token.ParseTensor(tok)
		if err != nil {
			return nil, hedlerr.Syntax(lineNo, 0, "%s", err.Error())
		}
		return tensorFromLiteral(lit, lineNo)

	case strings.HasPrefix(tok, "@"):
		ref, err := token.ParseReference(tok)
		if err != nil {
			return nil, hedlerr.Syntax(lineNo, 0, "%s", err.Error())
		}
		var typeName *string
		if ref.Qualified() {
			t := ref.TypeName
			typeName = &t
		}
		return ast.Reference{TypeName: typeName, ID: ref.ID}, nil

	case strings.HasPrefix(tok, "$("):
		content, _, err := expr.Extract(tok)
		if err != nil {
			return nil, hedlerr.Syntax(lineNo, 0, "%s", err.Error())
		}
		node, err := expr.Parse(content)
		if err != nil {
			return nil, hedlerr.Syntax(lineNo, 0, "invalid expression: %s", err.Error())
		}
		return ast.Expression{V: node}, nil

	case strings.HasPrefix(tok, "%"):
		return resolveAlias(tok, ctx, lineNo)
	}

	if v, ok := tryParseNumber(tok); ok {
		return v, nil
	}

	if ctx.InMatrixCell && ctx.ColumnIndex == 0 && !token.IsIDToken(tok) {
		return nil, hedlerr.Semantic(lineNo, "id column value %q is not a valid id token", tok)
	}

	return ast.String{V: tok}, nil
}

func resolveAlias(tok string, ctx Context, lineNo int) (ast.Value, error) {
	key := tok[1:]
	if v, ok := ctx.AliasCache[key]; ok {
		return v, nil
	}
	payload, ok := ctx.Doc.Aliases[key]
	if !ok {
		return nil, hedlerr.Alias(lineNo, "undefined alias %q", key)
	}
	// Aliases-within-aliases are disabled: re-infer the payload with a
	// context that treats a leading '%' as an ordinary string token.
	inner := Context{Doc: ctx.Doc, InMatrixCell: ctx.InMatrixCell, ColumnIndex: ctx.ColumnIndex}
	var v ast.Value
	var err error
	if strings.HasPrefix(payload, "%") {
		v = ast.String{V: payload}
	} else {
		v, err = Infer(payload, inner, lineNo)
		if err != nil {
			return nil, err
		}
	}
	if ctx.AliasCache != nil {
		ctx.AliasCache[key] = v
	}
	return v, nil
}

func tensorFromLiteral(lit token.TensorLiteral, lineNo int) (ast.Value, error) {
	t, err := buildTensor(lit, lineNo)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func buildTensor(lit token.TensorLiteral, lineNo int) (ast.Tensor, error) {
	if lit.Leaf {
		f, err := strconv.ParseFloat(lit.Scalar, 64)
		if err != nil {
			return ast.Tensor{}, hedlerr.Syntax(lineNo, 0, "tensor element %q is not numeric", lit.Scalar)
		}
		return ast.Tensor{Leaf: true, Scalar: f}, nil
	}
	elems := make([]ast.Tensor, 0, len(lit.Elements))
	for _, e := range lit.Elements {
		child, err := buildTensor(e, lineNo)
		if err != nil {
			return ast.Tensor{}, err
		}
		elems = append(elems, child)
	}
	return ast.Tensor{Elements: elems}, nil
}

// tryParseNumber parses s as Int or Float per the ladder's numeric
// rules: no scientific notation, no leading '+', no trailing '.', no
// hex, but leading zeros are tolerated ("007" is Int(7)).
func tryParseNumber(s string) (ast.Value, bool) {
	if s == "" {
		return nil, false
	}
	body := s
	if strings.HasPrefix(body, "-") {
		body = body[1:]
	}
	if body == "" {
		return nil, false
	}
	first := body[0]
	if first < '0' || first > '9' {
		return nil, false
	}
	if strings.ContainsAny(body, "eExX") {
		return nil, false
	}
	if strings.HasSuffix(body, ".") {
		return nil, false
	}

	if strings.Contains(body, ".") {
		parts := strings.SplitN(body, ".", 2)
		if strings.Count(body, ".") != 1 {
			return nil, false
		}
		if !allDigits(parts[0]) || !allDigits(parts[1]) || parts[1] == "" {
			return nil, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		return ast.Float{V: f}, true
	}

	if !allDigits(body) {
		return nil, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, false
	}
	return ast.Int{V: n}, true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
