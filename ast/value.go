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

// Package ast holds the data model that every stage of the pipeline
// passes around: the closed Value sum type, Items, Nodes, MatrixLists
// and the Document they compose into. Nothing in this package parses
// or serializes; it only describes shape.
package ast

import "github.com/hedl-lang/hedl/expr"

// Value is the closed sum type every inferred token resolves to.
// Downstream code dispatches on this tag, never on re-inspecting the
// source text.
type Value interface {
	valueNode()
}

// Null is the "~" value.
type Null struct{}

// Bool wraps a boolean scalar.
type Bool struct{ V bool }

// Int wraps a 64-bit signed integer scalar.
type Int struct{ V int64 }

// Float wraps a 64-bit float scalar. NaN and infinities are tolerated
// on input; the writer normalizes to finite values on output.
type Float struct{ V float64 }

// String wraps a UTF-8 string scalar.
type String struct{ V string }

// Reference is a "@Type:id" or "@id" value. TypeName is nil for a
// bare reference.
type Reference struct {
	TypeName *string
	ID       string
}

// Tensor is a recursive, non-empty numeric array. A leaf node holds a
// scalar; a non-leaf node holds homogeneous child tensors.
type Tensor struct {
	Leaf     bool
	Scalar   float64
	Elements []Tensor
}

// Expression wraps a parsed "$(...)" expression AST. It is never
// evaluated by this module.
type Expression struct {
	V expr.Node
}

func (Null) valueNode()       {}
func (Bool) valueNode()       {}
func (Int) valueNode()        {}
func (Float) valueNode()      {}
func (String) valueNode()     {}
func (Reference) valueNode()  {}
func (Tensor) valueNode()     {}
func (Expression) valueNode() {}
