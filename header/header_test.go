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

package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedl-lang/hedl/ast"
	"github.com/hedl-lang/hedl/limits"
	"github.com/hedl-lang/hedl/preprocess"
)

func split(t *testing.T, src string) []preprocess.Line {
	t.Helper()
	lines, err := preprocess.Split([]byte(src), limits.Default())
	require.NoError(t, err)
	return lines
}

func TestParseMinimalHeader(t *testing.T) {
	lines := split(t, "%VERSION: 1.0\n---\nbody\n")
	doc := ast.NewDocument()
	bodyStart, err := Parse(lines, doc, limits.Default())
	require.NoError(t, err)
	assert.Equal(t, 2, bodyStart)
	assert.Equal(t, 1, doc.VersionMajor)
	assert.Equal(t, 0, doc.VersionMinor)
}

func TestParseStructAliasNest(t *testing.T) {
	src := "%VERSION: 1.0\n" +
		"%STRUCT: User: [id,name]\n" +
		"%STRUCT: Post: [id,title]\n" +
		"%ALIAS: %greeting: \"hi\"\n" +
		"%NEST: User > Post\n" +
		"---\n"
	lines := split(t, src)
	doc := ast.NewDocument()
	_, err := Parse(lines, doc, limits.Default())
	require.NoError(t, err)

	require.Contains(t, doc.Structs, "User")
	assert.Equal(t, []string{"id", "name"}, doc.Structs["User"].Columns)
	assert.Equal(t, "hi", doc.Aliases["greeting"])
	assert.Equal(t, "Post", doc.Nest["User"])
}

func TestParseStructWithCountHint(t *testing.T) {
	src := "%VERSION: 1.0\n%STRUCT: User (3): [id,name]\n---\n"
	doc := ast.NewDocument()
	_, err := Parse(split(t, src), doc, limits.Default())
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, doc.Structs["User"].Columns)
}

func TestVersionMustBeFirstDirective(t *testing.T) {
	src := "%STRUCT: User[id]\n%VERSION: 1.0\n---\n"
	doc := ast.NewDocument()
	_, err := Parse(split(t, src), doc, limits.Default())
	require.Error(t, err)
}

func TestVersionNewerMajorRejected(t *testing.T) {
	src := "%VERSION: 2.0\n---\n"
	doc := ast.NewDocument()
	_, err := Parse(split(t, src), doc, limits.Default())
	require.Error(t, err)
}

func TestVersionLeadingZeroRejected(t *testing.T) {
	src := "%VERSION: 01.0\n---\n"
	doc := ast.NewDocument()
	_, err := Parse(split(t, src), doc, limits.Default())
	require.Error(t, err)
}

func TestStructRedeclarationMustMatch(t *testing.T) {
	src := "%VERSION: 1.0\n%STRUCT: User: [id,name]\n%STRUCT: User: [id,name]\n---\n"
	doc := ast.NewDocument()
	_, err := Parse(split(t, src), doc, limits.Default())
	require.NoError(t, err)

	src2 := "%VERSION: 1.0\n%STRUCT: User: [id,name]\n%STRUCT: User: [id,other]\n---\n"
	doc2 := ast.NewDocument()
	_, err = Parse(split(t, src2), doc2, limits.Default())
	require.Error(t, err)
}

func TestNestRequiresDeclaredStructs(t *testing.T) {
	src := "%VERSION: 1.0\n%STRUCT: User: [id]\n%NEST: User > Post\n---\n"
	doc := ast.NewDocument()
	_, err := Parse(split(t, src), doc, limits.Default())
	require.Error(t, err)
}

func TestNestDuplicateParentRejected(t *testing.T) {
	src := "%VERSION: 1.0\n%STRUCT: User: [id]\n%STRUCT: A: [id]\n%STRUCT: B: [id]\n" +
		"%NEST: User > A\n%NEST: User > B\n---\n"
	doc := ast.NewDocument()
	_, err := Parse(split(t, src), doc, limits.Default())
	require.Error(t, err)
}

func TestMissingSeparatorIsAnError(t *testing.T) {
	src := "%VERSION: 1.0\n"
	doc := ast.NewDocument()
	_, err := Parse(split(t, src), doc, limits.Default())
	require.Error(t, err)
}

func TestIndentedSeparatorRejected(t *testing.T) {
	src := "%VERSION: 1.0\n  ---\n"
	doc := ast.NewDocument()
	_, err := Parse(split(t, src), doc, limits.Default())
	require.Error(t, err)
}

func TestUnknownDirectiveRejected(t *testing.T) {
	src := "%VERSION: 1.0\n%BOGUS: foo\n---\n"
	doc := ast.NewDocument()
	_, err := Parse(split(t, src), doc, limits.Default())
	require.Error(t, err)
}
