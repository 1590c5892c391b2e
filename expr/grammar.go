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

// Package expr parses the content of a "$(...)" expression literal
// into an opaque AST. Expressions are never evaluated here or
// anywhere in this module; they are captured structurally so a
// consumer can interpret them later.
package expr

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var exprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `\b(true|false)\b`},
	{Name: "Float", Pattern: `\d+\.\d+`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "String", Pattern: `"([^"]|"")*"`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[(),.]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var exprParser = participle.MustBuild[grammarExpr](
	participle.Lexer(exprLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// grammarExpr is a left-factored expr: an atom followed by zero or
// more postfix suffixes (".field" or "(args)"), avoiding the
// left recursion participle cannot express directly.
type grammarExpr struct {
	Atom     *grammarAtom      `parser:"@@"`
	Suffixes []*grammarSuffix `parser:"@@*"`
}

type grammarSuffix struct {
	Field *string        `parser:"  \".\" @Ident"`
	Call  *grammarArgs   `parser:"| @@"`
}

// grammarArgs captures the opening paren itself so that an empty
// argument list "()" still yields a non-nil Call suffix.
type grammarArgs struct {
	Open string         `parser:"@\"(\""`
	Args []*grammarExpr `parser:"( @@ (\",\" @@)* )? \")\""`
}

type grammarAtom struct {
	Literal *grammarLiteral `parser:"  @@"`
	Ident   *string         `parser:"| @Ident"`
	Paren   *grammarExpr    `parser:"| \"(\" @@ \")\""`
}

type grammarLiteral struct {
	Float *float64 `parser:"  @Float"`
	Int   *int64   `parser:"| @Int"`
	Str   *string  `parser:"| @String"`
	True  bool     `parser:"| @\"true\""`
	False bool     `parser:"| @\"false\""`
}
