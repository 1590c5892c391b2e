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

// Package token holds the lexical primitives shared by every HEDL
// parsing stage: source positions and the small grammars (identifiers,
// comments, quoting, indentation, CSV rows) that sit below the header
// and body parsers.
package token

import "strconv"

// Pos is a one-based line/column position within a HEDL document.
type Pos struct {
	Line int
	Col  int
}

// String returns the "line:col" form.
func (p Pos) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
}
