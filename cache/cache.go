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

// Package cache is the incremental per-line parse cache used by an
// editor front-end: it remembers each line's hash and line-local
// parse result so a small edit only re-validates the lines it
// touched, not the whole document.
package cache

import (
	"hash/fnv"

	"github.com/hedl-lang/hedl/limits"
	"github.com/hedl-lang/hedl/token"
)

// Record is one line's cached parse state.
type Record struct {
	ContentHash uint64
	Content     string
	Indent      token.Indent
	LineErr     error
}

// Edit describes a text-editor change: lines [StartLine, EndLine)
// (0-based) are replaced by NewText (which may contain more or fewer
// lines than it replaces).
type Edit struct {
	StartLine int
	EndLine   int
	NewText   string
}

// Cache holds one Record per 0-based line number.
type Cache struct {
	lines   map[int]Record
	maxSize int
}

// New returns an empty cache that holds at most maxSize records.
func New(maxSize int) *Cache {
	return &Cache{lines: make(map[int]Record), maxSize: maxSize}
}

// HashLine computes the FNV-1a hash of a line's content.
func HashLine(content string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(content))
	return h.Sum64()
}

// Get returns the cached record for a line, if present.
func (c *Cache) Get(lineNo int) (Record, bool) {
	r, ok := c.lines[lineNo]
	return r, ok
}

// Put stores a line's record. Nothing is ever evicted: once the cache
// holds maxSize records, a record for a line number not already cached
// is not stored, while an already-cached line is still overwritten.
// Lookup is always by line number, and stale lines are removed by
// Drop and Reconcile.
func (c *Cache) Put(lineNo int, r Record) {
	if c.maxSize > 0 && len(c.lines) >= c.maxSize {
		if _, exists := c.lines[lineNo]; !exists {
			return
		}
	}
	c.lines[lineNo] = r
}

// Drop removes a line's record.
func (c *Cache) Drop(lineNo int) {
	delete(c.lines, lineNo)
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	return len(c.lines)
}

// Reconcile applies edits to the cache ahead of a re-parse: every line
// touched by an edit range is invalidated, lines beyond newLineCount
// are dropped, and every remaining line is checked against its fresh
// content — a hash-and-content match is left untouched, a mismatch is
// re-validated line-locally (length and indent legality only) and its
// record replaced.
func Reconcile(c *Cache, edits []Edit, freshLines []string, lim limits.Limits) {
	for _, e := range edits {
		for ln := e.StartLine; ln < e.EndLine; ln++ {
			c.Drop(ln)
		}
	}

	for ln := range c.lines {
		if ln >= len(freshLines) {
			c.Drop(ln)
		}
	}

	for ln, content := range freshLines {
		existing, ok := c.Get(ln)
		hash := HashLine(content)
		if ok && existing.ContentHash == hash && existing.Content == content {
			continue
		}
		c.Put(ln, revalidateLine(content, lim))
	}
}

func revalidateLine(content string, lim limits.Limits) Record {
	rec := Record{ContentHash: HashLine(content), Content: content}
	if len(content) > lim.MaxLineLength {
		rec.LineErr = errLineTooLong
		return rec
	}
	if token.IsBlankLine(content) || token.IsCommentLine(content) {
		return rec
	}
	indent, err := token.CalculateIndent(token.StripComment(content))
	if err != nil {
		rec.LineErr = err
		return rec
	}
	rec.Indent = indent
	return rec
}

var errLineTooLong = &lineTooLongError{}

type lineTooLongError struct{}

func (*lineTooLongError) Error() string { return "line exceeds max_line_length" }
