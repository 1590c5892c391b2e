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

package hedl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedl-lang/hedl/ast"
	"github.com/hedl-lang/hedl/hedlerr"
	"github.com/hedl-lang/hedl/limits"
)

// Property 1: round-trip for canonical input.
func TestRoundTripForCanonicalInput(t *testing.T) {
	src := "%VERSION: 1.0\n%STRUCT: User (2): [id,name,role]\n---\n" +
		"users: @User\n" +
		"  |u1,Alice,admin\n" +
		"  |u2,Bob,^\n"
	doc, err := Parse([]byte(src), DefaultParseOptions())
	require.NoError(t, err)

	out, err := Canonicalize(doc, DefaultWriteConfig())
	require.NoError(t, err)
	assert.Equal(t, src, string(out))

	doc2, err := Parse(out, DefaultParseOptions())
	require.NoError(t, err)
	assert.Equal(t, doc.VersionMajor, doc2.VersionMajor)
	assert.Equal(t, doc.Structs, doc2.Structs)
}

// Property 7: limit enforcement with the correct ceiling name.
func TestLimitEnforcementMaxNodes(t *testing.T) {
	lim := limits.Default()
	lim.MaxNodes = 1
	src := "%VERSION: 1.0\n%STRUCT: User: [id]\n---\n" +
		"users: @User\n" +
		"  |u1\n" +
		"  |u2\n"
	_, err := Parse([]byte(src), ParseOptions{Limits: lim, StrictRefs: true})
	require.Error(t, err)
	diag, ok := err.(*hedlerr.Diagnostic)
	require.True(t, ok)
	assert.Equal(t, hedlerr.KindSecurityLimit, diag.Kind)
	assert.Equal(t, "max_nodes", diag.Limit)
}

func TestLimitEnforcementMaxAliases(t *testing.T) {
	lim := limits.Default()
	lim.MaxAliases = 1
	src := "%VERSION: 1.0\n%ALIAS: %a: \"x\"\n%ALIAS: %b: \"y\"\n---\n"
	_, err := Parse([]byte(src), ParseOptions{Limits: lim, StrictRefs: true})
	require.Error(t, err)
	diag, ok := err.(*hedlerr.Diagnostic)
	require.True(t, ok)
	assert.Equal(t, "max_aliases", diag.Limit)
}

func TestLimitEnforcementMaxIndentDepth(t *testing.T) {
	lim := limits.Default()
	lim.MaxIndentDepth = 1
	src := "%VERSION: 1.0\n---\n" +
		"a:\n" +
		"  b:\n" +
		"    c: 1\n"
	_, err := Parse([]byte(src), ParseOptions{Limits: lim, StrictRefs: true})
	require.Error(t, err)
}

func TestLimitEnforcementMaxFileSize(t *testing.T) {
	lim := limits.Default()
	lim.MaxFileSize = 4
	_, err := Parse([]byte("%VERSION: 1.0\n"), ParseOptions{Limits: lim, StrictRefs: true})
	require.Error(t, err)
	diag, ok := err.(*hedlerr.Diagnostic)
	require.True(t, ok)
	assert.Equal(t, "max_file_size", diag.Limit)
}

// Property 4: reference integrity.
func TestReferenceIntegrityStrictVsLenient(t *testing.T) {
	src := "%VERSION: 1.0\n%STRUCT: User: [id,name]\n%STRUCT: Ref: [id,who]\n---\n" +
		"users: @User\n" +
		"  |u1,Alice\n" +
		"refs: @Ref\n" +
		"  |r1,@User:ghost\n"

	_, err := Parse([]byte(src), DefaultParseOptions())
	require.Error(t, err)

	lenient := DefaultParseOptions()
	lenient.StrictRefs = false
	doc, err := Parse([]byte(src), lenient)
	require.NoError(t, err)

	item, _ := doc.Root.Get("refs")
	list := item.(ast.ListItem).V
	ref, ok := list.Rows[0].Fields[1].(Reference)
	require.True(t, ok)
	assert.Equal(t, "ghost", ref.ID)
}

// Property 5: ditto semantics.
func TestDittoInColumnZeroIsError(t *testing.T) {
	src := "%VERSION: 1.0\n%STRUCT: User: [id,name]\n---\n" +
		"users: @User\n" +
		"  |u1,Alice\n" +
		"  |^,Bob\n"
	_, err := Parse([]byte(src), DefaultParseOptions())
	require.Error(t, err)
}

// Property 6: NEST orphan detection.
func TestNestOrphanDetection(t *testing.T) {
	src := "%VERSION: 1.0\n%STRUCT: Post: [id,title]\n---\n" +
		"posts: @Post\n" +
		"  |p1,Hello\n" +
		"    |c1,orphan\n"
	_, err := Parse([]byte(src), DefaultParseOptions())
	require.Error(t, err)
	diag, ok := err.(*hedlerr.Diagnostic)
	require.True(t, ok)
	assert.Equal(t, hedlerr.KindOrphanRow, diag.Kind)
}

func TestMalformedInputWithoutVersionIsRejected(t *testing.T) {
	_, err := Parse([]byte("---\nname: x\n"), DefaultParseOptions())
	require.Error(t, err)
}
