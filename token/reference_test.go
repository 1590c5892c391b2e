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

func TestParseReferenceQualified(t *testing.T) {
	ref, err := ParseReference("@User:u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.TypeName != "User" || ref.ID != "u1" || !ref.Qualified() {
		t.Errorf("got %+v", ref)
	}
}

func TestParseReferenceBare(t *testing.T) {
	ref, err := ParseReference("@u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Qualified() || ref.ID != "u1" {
		t.Errorf("got %+v", ref)
	}
}

func TestParseReferenceInvalid(t *testing.T) {
	for _, in := range []string{"@", "@User:", "user:id", "@user:id "} {
		if _, err := ParseReference(in); err == nil {
			t.Errorf("ParseReference(%q) succeeded, want error", in)
		}
	}
}
