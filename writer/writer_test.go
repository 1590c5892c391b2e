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

package writer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hedl "github.com/hedl-lang/hedl"
	"github.com/hedl-lang/hedl/writer"
)

// Scenario E: canonicalization output shape, byte-for-byte.
func TestCanonicalizeScenarioE(t *testing.T) {
	src := "%VERSION: 1.0\n%STRUCT: User (2): [id,name,role]\n---\n" +
		"users: @User\n" +
		"  |u1,Alice,admin\n" +
		"  |u2,Bob,^\n"
	doc, err := hedl.Parse([]byte(src), hedl.DefaultParseOptions())
	require.NoError(t, err)

	out, err := hedl.Canonicalize(doc, hedl.DefaultWriteConfig())
	require.NoError(t, err)
	assert.Equal(t, src, string(out))
}

// Testable property: canonicalization is idempotent.
func TestCanonicalizeIsIdempotent(t *testing.T) {
	src := "%VERSION: 1.0\n%STRUCT: Post: [id,title]\n%STRUCT: Comment: [id,text]\n" +
		"%NEST: Post > Comment\n---\n" +
		"posts: @Post\n" +
		"  |[1] p1,Hello\n" +
		"    |c1,Hi\n"
	doc, err := hedl.Parse([]byte(src), hedl.DefaultParseOptions())
	require.NoError(t, err)

	first, err := hedl.Canonicalize(doc, hedl.DefaultWriteConfig())
	require.NoError(t, err)

	reparsed, err := hedl.Parse(first, hedl.DefaultParseOptions())
	require.NoError(t, err)

	second, err := hedl.Canonicalize(reparsed, hedl.DefaultWriteConfig())
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

// Testable property: parse -> canonicalize -> parse round-trips the
// document's observable shape.
func TestRoundTripPreservesValues(t *testing.T) {
	src := "%VERSION: 1.0\n---\n" +
		"name: Alice\n" +
		"active: true\n" +
		"score: 3.5\n" +
		"tags: [1, 2, 3]\n" +
		"notes: ~\n"
	doc, err := hedl.Parse([]byte(src), hedl.DefaultParseOptions())
	require.NoError(t, err)

	out, err := hedl.Canonicalize(doc, hedl.DefaultWriteConfig())
	require.NoError(t, err)

	doc2, err := hedl.Parse(out, hedl.DefaultParseOptions())
	require.NoError(t, err)

	name1, _ := doc.Root.Get("name")
	name2, _ := doc2.Root.Get("name")
	assert.Equal(t, name1, name2)
}

// InlineSchemas must still declare %STRUCT for NEST parent/child types,
// since a NEST child can never get a schema from its own list
// declaration line — it never has one.
func TestInlineSchemasStillDeclaresNestTypes(t *testing.T) {
	src := "%VERSION: 1.0\n%STRUCT: Post: [id,title]\n%STRUCT: Comment: [id,text]\n" +
		"%NEST: Post > Comment\n---\n" +
		"posts: @Post\n" +
		"  |[1] p1,Hello\n" +
		"    |c1,Hi\n"
	doc, err := hedl.Parse([]byte(src), hedl.DefaultParseOptions())
	require.NoError(t, err)

	cfg := hedl.DefaultWriteConfig()
	cfg.SchemaMode = writer.InlineSchemas
	out, err := hedl.Canonicalize(doc, cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "%STRUCT: Post")
	assert.Contains(t, string(out), "%STRUCT: Comment")

	reparsed, err := hedl.Parse(out, hedl.DefaultParseOptions())
	require.NoError(t, err)
	assert.Equal(t, doc.Nest, reparsed.Nest)
}

// A type used in more than one list-declaration site also keeps its
// %STRUCT line under InlineSchemas, rather than repeating an inline
// schema at every site.
func TestInlineSchemasDeclaresReusedType(t *testing.T) {
	src := "%VERSION: 1.0\n%STRUCT: User: [id,name]\n---\n" +
		"admins: @User\n" +
		"  |u1,Alice\n" +
		"members:\n" +
		"  active: @User\n" +
		"    |u2,Bob\n"
	doc, err := hedl.Parse([]byte(src), hedl.DefaultParseOptions())
	require.NoError(t, err)

	cfg := hedl.DefaultWriteConfig()
	cfg.SchemaMode = writer.InlineSchemas
	out, err := hedl.Canonicalize(doc, cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "%STRUCT: User")
	assert.NotContains(t, string(out), "@User[")
}

func TestInlineSchemasEmitsInlineForSingleUseType(t *testing.T) {
	src := "%VERSION: 1.0\n%STRUCT: User: [id,name]\n---\n" +
		"users: @User\n" +
		"  |u1,Alice\n"
	doc, err := hedl.Parse([]byte(src), hedl.DefaultParseOptions())
	require.NoError(t, err)

	cfg := hedl.DefaultWriteConfig()
	cfg.SchemaMode = writer.InlineSchemas
	out, err := hedl.Canonicalize(doc, cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "%STRUCT:")
	assert.Contains(t, string(out), "users: @User[id,name]")
}

func TestCanonicalizeQuotesStringThatWouldReinfer(t *testing.T) {
	src := "%VERSION: 1.0\n---\n" +
		"flag: \"true\"\n"
	doc, err := hedl.Parse([]byte(src), hedl.DefaultParseOptions())
	require.NoError(t, err)

	out, err := hedl.Canonicalize(doc, hedl.DefaultWriteConfig())
	require.NoError(t, err)
	assert.Contains(t, string(out), `flag: "true"`)
}
