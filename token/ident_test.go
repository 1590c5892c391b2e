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

func TestIsKeyToken(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"name", true},
		{"user_id", true},
		{"_private", true},
		{"", false},
		{"Name", false},
		{"1abc", false},
		{"has-dash", false},
	}
	for _, tt := range tests {
		if got := IsKeyToken(tt.in); got != tt.want {
			t.Errorf("IsKeyToken(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsTypeName(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"User", true},
		{"HTTPClient", true},
		{"", false},
		{"user", false},
		{"1User", false},
	}
	for _, tt := range tests {
		if got := IsTypeName(tt.in); got != tt.want {
			t.Errorf("IsTypeName(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsIDToken(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"u1", true},
		{"_u1", true},
		{"u-1", true},
		{"", false},
		{"1u", false},
		{"u 1", false},
	}
	for _, tt := range tests {
		if got := IsIDToken(tt.in); got != tt.want {
			t.Errorf("IsIDToken(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
