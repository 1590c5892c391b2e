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

import "strings"

// StripComment removes a trailing "# ..." comment from s, respecting
// quoted-string state so a '#' inside a double-quoted run is never
// treated as a comment marker. Doubled quotes ("") are the escape for
// a literal quote and do not toggle quote state.
func StripComment(s string) string {
	runes := []rune(s)
	inQuotes := false
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '"' {
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				i++
				continue
			}
			inQuotes = !inQuotes
			continue
		}
		if r == '#' && !inQuotes {
			return string(runes[:i])
		}
	}
	return s
}

// IsBlankLine reports whether line is empty or whitespace-only.
func IsBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IsCommentLine reports whether line, once indentation is stripped, is
// a whole-line comment.
func IsCommentLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " "), "#")
}
