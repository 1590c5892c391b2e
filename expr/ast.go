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

package expr

import (
	"strings"

	"github.com/hedl-lang/hedl/token"
)

// Node is the tagged union every expression AST node implements.
// Exactly one concrete type below satisfies it.
type Node interface {
	exprNode()
}

// Identifier is a bare name, e.g. "x" in "$(x.field)".
type Identifier struct {
	Name string
}

// IntLiteral is a decimal integer literal.
type IntLiteral struct {
	Value int64
}

// FloatLiteral is a decimal float literal.
type FloatLiteral struct {
	Value float64
}

// StringLiteral is a double-quoted string literal, unescaped.
type StringLiteral struct {
	Value string
}

// BoolLiteral is "true" or "false".
type BoolLiteral struct {
	Value bool
}

// Call represents Target(Args...).
type Call struct {
	Target Node
	Args   []Node
}

// Access represents Target.Field.
type Access struct {
	Target Node
	Field  string
}

func (Identifier) exprNode()    {}
func (IntLiteral) exprNode()    {}
func (FloatLiteral) exprNode()  {}
func (StringLiteral) exprNode() {}
func (BoolLiteral) exprNode()   {}
func (Call) exprNode()          {}
func (Access) exprNode()        {}

// Parse parses the interior of a "$(...)" expression literal (without
// the surrounding "$(" and ")") into an expression AST.
func Parse(content string) (Node, error) {
	g, err := exprParser.ParseString("", content)
	if err != nil {
		return nil, err
	}
	return convert(g)
}

func convert(g *grammarExpr) (Node, error) {
	node, err := convertAtom(g.Atom)
	if err != nil {
		return nil, err
	}
	for _, s := range g.Suffixes {
		switch {
		case s.Field != nil:
			node = Access{Target: node, Field: *s.Field}
		case s.Call != nil:
			var args []Node
			for _, a := range s.Call.Args {
				arg, err := convert(a)
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
			}
			node = Call{Target: node, Args: args}
		}
	}
	return node, nil
}

func convertAtom(a *grammarAtom) (Node, error) {
	switch {
	case a.Literal != nil:
		return convertLiteral(a.Literal), nil
	case a.Ident != nil:
		return Identifier{Name: *a.Ident}, nil
	case a.Paren != nil:
		return convert(a.Paren)
	}
	return nil, nil
}

func convertLiteral(l *grammarLiteral) Node {
	switch {
	case l.Float != nil:
		return FloatLiteral{Value: *l.Float}
	case l.Int != nil:
		return IntLiteral{Value: *l.Int}
	case l.Str != nil:
		inner := strings.TrimSuffix(strings.TrimPrefix(*l.Str, `"`), `"`)
		return StringLiteral{Value: token.UnescapeQuoted(inner)}
	case l.True:
		return BoolLiteral{Value: true}
	default:
		return BoolLiteral{Value: false}
	}
}
