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

// UnescapeQuoted decodes the doubled-quote escape ("" -> ") inside the
// payload of a double-quoted string (the caller has already stripped
// the surrounding quotes).
func UnescapeQuoted(payload string) string {
	return strings.ReplaceAll(payload, `""`, `"`)
}

// EscapeQuoted is the inverse of UnescapeQuoted: it doubles every
// quote so the result can be wrapped in quotes and read back.
func EscapeQuoted(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}

// SplitQuoted strips a leading and trailing '"' from s and returns the
// inner payload. ok is false if s is not minimally quoted.
func SplitQuoted(s string) (payload string, ok bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}
	return s[1 : len(s)-1], true
}

// IsBlockStringOpen reports whether tail (the trimmed text following
// "key:") opens a block string, i.e. is exactly `"""`.
func IsBlockStringOpen(tail string) bool {
	return strings.TrimSpace(tail) == `"""`
}

// IsBlockStringTerminator reports whether line, once trimmed, closes
// an open block string.
func IsBlockStringTerminator(line string) bool {
	return strings.TrimSpace(line) == `"""`
}

// DecodeBackslashEscapes decodes \n \t \r \\ sequences inside a
// matrix-cell CSV field. Any other backslash sequence is left as-is.
func DecodeBackslashEscapes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' || i+1 >= len(runes) {
			b.WriteRune(r)
			continue
		}
		switch runes[i+1] {
		case 'n':
			b.WriteByte('\n')
			i++
		case 't':
			b.WriteByte('\t')
			i++
		case 'r':
			b.WriteByte('\r')
			i++
		case '\\':
			b.WriteByte('\\')
			i++
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EncodeBackslashEscapes is the writer-side inverse of
// DecodeBackslashEscapes: it escapes control characters that would
// otherwise corrupt a quoted CSV cell.
func EncodeBackslashEscapes(s string) string {
	if !strings.ContainsAny(s, "\n\t\r\\") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
