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

package body

import "github.com/hedl-lang/hedl/ast"

type frameKind int

const (
	frameRoot frameKind = iota
	frameObject
	frameList
)

// frame is one entry of the body parser's frame stack. Root holds the
// top-level mapping, Object accumulates a nested mapping, List
// accumulates matrix rows (and, for NEST children, attaches into the
// owning row rather than a parent mapping).
type frame struct {
	kind frameKind

	// declIndent is the indent level of the line that opened this
	// frame (the "key:" or "key: @Type" line); -1 for root.
	declIndent int

	// key is the key this frame attaches under when popped.
	key string

	// attachTo is called when this frame is popped and attaches the
	// content the frame built to its owner. pop passes nil; each
	// closure captures its own list or mapping. nil for root.
	attachTo func(ast.Item)

	mapping *ast.Mapping // frameObject, frameRoot

	// List frame state.
	list         *ast.MatrixList
	rowIndent    int
	prevValues   []ast.Value
	sawFirstRow  bool
	lastRow      *ast.Node
	nestDepth    int
}

// contentIndent is the indent at which this frame's direct members
// (object keys, or matrix rows) must appear.
func (f *frame) contentIndent() int {
	if f.kind == frameList {
		return f.rowIndent
	}
	return f.declIndent + 1
}
