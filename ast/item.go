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

package ast

// Item is the tagged variant held at every key of a Mapping: a plain
// scalar, a nested object, or a matrix list.
type Item interface {
	itemNode()
}

// ScalarItem holds a single inferred Value.
type ScalarItem struct {
	V Value
}

// ObjectItem holds a nested mapping.
type ObjectItem struct {
	V *Mapping
}

// ListItem holds a matrix list.
type ListItem struct {
	V *MatrixList
}

func (ScalarItem) itemNode() {}
func (ObjectItem) itemNode() {}
func (ListItem) itemNode()   {}

// Node is one row of a MatrixList: one Value per schema column
// (column 0 is always the String id), plus any NEST children keyed
// by child type name.
type Node struct {
	TypeName   string
	ID         string
	Fields     []Value
	Children   map[string][]*Node
	ChildCount *int
}

// MatrixList is a declared-or-inline-schema list of Nodes.
type MatrixList struct {
	TypeName  string
	Schema    []string
	Rows      []*Node
	CountHint *int
}
