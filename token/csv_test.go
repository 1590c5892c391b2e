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

package token

import "testing"

func TestParseCSVRow(t *testing.T) {
	fields, err := ParseCSVRow(`u1,Alice,admin`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"u1", "Alice", "admin"}
	if len(fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(fields), len(want))
	}
	for i, f := range fields {
		if f.Value != want[i] || f.Quoted {
			t.Errorf("field %d = %+v, want %q unquoted", i, f, want[i])
		}
	}
}

func TestParseCSVRowQuoted(t *testing.T) {
	fields, err := ParseCSVRow(`"hello, ""world""",2`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields[0].Value != `hello, "world"` || !fields[0].Quoted {
		t.Errorf("field 0 = %+v", fields[0])
	}
	if fields[1].Value != "2" {
		t.Errorf("field 1 = %+v", fields[1])
	}
}

func TestParseCSVRowTrailingComma(t *testing.T) {
	if _, err := ParseCSVRow(`a,b,`); err == nil {
		t.Fatal("expected an error for a dangling trailing comma")
	}
}

func TestParseCSVRowExplicitEmptyLast(t *testing.T) {
	fields, err := ParseCSVRow(`a,b,""`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields[2].Value != "" || !fields[2].Quoted {
		t.Errorf("field 2 = %+v, want empty quoted field", fields[2])
	}
}
