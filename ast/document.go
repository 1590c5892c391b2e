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

// Struct is a declared type's ordered column list. The first column
// is always the ID column.
type Struct struct {
	TypeName string
	Columns  []string
}

// Document is the fully parsed HEDL document: version, root mapping,
// and the three header tables that govern inference and resolution.
type Document struct {
	VersionMajor int
	VersionMinor int

	Root *Mapping

	// Aliases maps an alias key (without the leading '%') to its
	// quoted-string payload.
	Aliases map[string]string

	// Structs maps a declared type name to its ordered column list.
	// StructOrder records declaration order. The writer does not use
	// it; it emits %STRUCT lines sorted by type name.
	Structs     map[string]Struct
	StructOrder []string

	// Nest maps a parent type name to its single declared child type.
	Nest map[string]string
}

// NewDocument returns an empty Document with its tables initialized.
func NewDocument() *Document {
	return &Document{
		Root:    NewMapping(),
		Aliases: make(map[string]string),
		Structs: make(map[string]Struct),
		Nest:    make(map[string]string),
	}
}
