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

// Package preprocess does the byte-level hygiene every parse starts
// with: a size ceiling check, BOM stripping, and a zero-copy split
// into numbered lines. Line slices borrow the input buffer for the
// life of the parse; nothing here allocates per line.
package preprocess

import (
	"bytes"

	"github.com/hedl-lang/hedl/hedlerr"
	"github.com/hedl-lang/hedl/limits"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Line is one borrowed, CR-stripped line of the input.
type Line struct {
	// Number is the 1-based line number.
	Number int
	// Text borrows a slice of the original input buffer.
	Text []byte
}

// Split validates input against lim and returns its numbered lines. A
// leading UTF-8 BOM is stripped before splitting. Each line's
// trailing '\r' (from a CRLF source) is stripped; the line content
// itself is never copied.
func Split(input []byte, lim limits.Limits) ([]Line, error) {
	if int64(len(input)) > lim.MaxFileSize {
		return nil, hedlerr.SecurityLimit(0, "max_file_size", "input exceeds max_file_size (%d bytes)", lim.MaxFileSize)
	}

	input = bytes.TrimPrefix(input, utf8BOM)

	var lines []Line
	lineNo := 0
	rest := input
	for len(rest) > 0 {
		lineNo++
		idx := bytes.IndexByte(rest, '\n')
		var text []byte
		if idx < 0 {
			text = rest
			rest = nil
		} else {
			text = rest[:idx]
			rest = rest[idx+1:]
		}
		text = bytes.TrimSuffix(text, []byte{'\r'})
		if len(text) > lim.MaxLineLength {
			return nil, hedlerr.SecurityLimit(lineNo, "max_line_length", "line exceeds max_line_length (%d bytes)", lim.MaxLineLength)
		}
		lines = append(lines, Line{Number: lineNo, Text: text})
	}
	return lines, nil
}
