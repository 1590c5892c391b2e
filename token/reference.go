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

import (
	"fmt"
	"strings"
)

// Reference is the decomposed form of a "@Type:id" or "@id" literal.
type Reference struct {
	// TypeName is empty for a bare "@id" reference.
	TypeName string
	ID       string
}

// Qualified reports whether the reference names its target type.
func (r Reference) Qualified() bool {
	return r.TypeName != ""
}

// ParseReference parses a reference literal. s must start with '@'.
func ParseReference(s string) (Reference, error) {
	if !strings.HasPrefix(s, "@") {
		return Reference{}, fmt.Errorf("reference literal must start with '@'")
	}
	body := s[1:]
	if body == "" {
		return Reference{}, fmt.Errorf("empty reference literal")
	}
	if idx := strings.IndexByte(body, ':'); idx >= 0 {
		typeName := body[:idx]
		id := body[idx+1:]
		if !IsTypeName(typeName) {
			return Reference{}, fmt.Errorf("invalid reference type name %q", typeName)
		}
		if !IsIDToken(id) {
			return Reference{}, fmt.Errorf("invalid reference id %q", id)
		}
		return Reference{TypeName: typeName, ID: id}, nil
	}
	if !IsIDToken(body) {
		return Reference{}, fmt.Errorf("invalid reference id %q", body)
	}
	return Reference{ID: body}, nil
}

// LooksLikeReference reports whether a trimmed, unquoted token has the
// shape of a reference literal, without fully validating it.
func LooksLikeReference(s string) bool {
	return strings.HasPrefix(s, "@") && len(s) > 1
}
