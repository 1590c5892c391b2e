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

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hedl "github.com/hedl-lang/hedl"
	"github.com/hedl-lang/hedl/validate"
)

func TestDocumentValidatesWellFormedRows(t *testing.T) {
	src := "%VERSION: 1.0\n%STRUCT: User: [id,name,role]\n---\n" +
		"users: @User\n" +
		"  |u1,Alice,admin\n" +
		"  |u2,Bob,user\n"
	doc, err := hedl.Parse([]byte(src), hedl.DefaultParseOptions())
	require.NoError(t, err)

	diags, err := validate.Document(doc)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestSchemaForRequiresEveryColumn(t *testing.T) {
	src := "%VERSION: 1.0\n%STRUCT: User: [id,name]\n---\n" +
		"users: @User\n" +
		"  |u1,Alice\n"
	doc, err := hedl.Parse([]byte(src), hedl.DefaultParseOptions())
	require.NoError(t, err)

	schema := validate.SchemaFor(doc.Structs["User"])
	assert.ElementsMatch(t, []string{"id", "name"}, schema.Required)
}
