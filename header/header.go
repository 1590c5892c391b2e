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

// Package header reads the directive block that precedes the "---"
// separator: %VERSION, %STRUCT, %ALIAS and %NEST lines, populating a
// Document's header tables.
package header

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/hedl-lang/hedl/ast"
	"github.com/hedl-lang/hedl/hedlerr"
	"github.com/hedl-lang/hedl/limits"
	"github.com/hedl-lang/hedl/preprocess"
	"github.com/hedl-lang/hedl/token"
)

// MaxSupportedVersion is the newest wire-format version this core
// understands. A document declaring a newer major version is
// rejected; a newer minor version is accepted (forward-compatible
// additions within the same major line).
const MaxSupportedVersion = "v1.0"

// Parse consumes directive lines from lines, populating doc's header
// tables, and returns the index of the first body line (the line
// after the separator).
func Parse(lines []preprocess.Line, doc *ast.Document, lim limits.Limits) (int, error) {
	sawVersion := false
	aliasCount := 0

	for i, line := range lines {
		raw := string(line.Text)
		stripped := token.StripComment(raw)
		trimmedRight := strings.TrimRight(stripped, " \t")

		if strings.TrimLeft(trimmedRight, " \t") == "---" {
			if strings.HasPrefix(raw, " ") || strings.HasPrefix(raw, "\t") {
				return 0, hedlerr.Syntax(line.Number, 0, "separator line must not be indented")
			}
			if !sawVersion {
				return 0, hedlerr.Syntax(line.Number, 0, "missing %%VERSION directive before separator")
			}
			return i + 1, nil
		}

		if token.IsBlankLine(raw) || token.IsCommentLine(raw) {
			continue
		}

		switch {
		case strings.HasPrefix(trimmedRight, "%VERSION"):
			if sawVersion {
				return 0, hedlerr.Syntax(line.Number, 0, "%%VERSION must be the first directive")
			}
			if i != 0 {
				return 0, hedlerr.Syntax(line.Number, 0, "%%VERSION must be the first directive")
			}
			major, minor, err := parseVersion(trimmedRight, line.Number)
			if err != nil {
				return 0, err
			}
			declared := fmt.Sprintf("v%d.%d", major, minor)
			if semver.Compare(semver.Major(declared), semver.Major(MaxSupportedVersion)) > 0 {
				return 0, hedlerr.Semantic(line.Number, "document version %s is newer than the supported major version %s", declared, MaxSupportedVersion)
			}
			doc.VersionMajor = major
			doc.VersionMinor = minor
			sawVersion = true

		case strings.HasPrefix(trimmedRight, "%STRUCT"):
			if !sawVersion {
				return 0, hedlerr.Syntax(line.Number, 0, "%%VERSION must be the first directive")
			}
			s, err := parseStruct(trimmedRight, line.Number, lim)
			if err != nil {
				return 0, err
			}
			if existing, ok := doc.Structs[s.TypeName]; ok {
				if !sameColumns(existing.Columns, s.Columns) {
					return 0, hedlerr.Semantic(line.Number, "redeclaration of struct %q with differing columns", s.TypeName)
				}
				continue
			}
			doc.Structs[s.TypeName] = s
			doc.StructOrder = append(doc.StructOrder, s.TypeName)

		case strings.HasPrefix(trimmedRight, "%ALIAS"):
			if !sawVersion {
				return 0, hedlerr.Syntax(line.Number, 0, "%%VERSION must be the first directive")
			}
			aliasCount++
			if aliasCount > lim.MaxAliases {
				return 0, hedlerr.SecurityLimit(line.Number, "max_aliases", "too many aliases")
			}
			key, value, err := parseAlias(trimmedRight, line.Number)
			if err != nil {
				return 0, err
			}
			doc.Aliases[key] = value

		case strings.HasPrefix(trimmedRight, "%NEST"):
			if !sawVersion {
				return 0, hedlerr.Syntax(line.Number, 0, "%%VERSION must be the first directive")
			}
			parent, child, err := parseNest(trimmedRight, line.Number)
			if err != nil {
				return 0, err
			}
			if _, ok := doc.Structs[parent]; !ok {
				return 0, hedlerr.Semantic(line.Number, "%%NEST parent %q is not a declared struct", parent)
			}
			if _, ok := doc.Structs[child]; !ok {
				return 0, hedlerr.Semantic(line.Number, "%%NEST child %q is not a declared struct", child)
			}
			if existing, ok := doc.Nest[parent]; ok {
				return 0, hedlerr.Semantic(line.Number, "multiple NEST rules for parent %q (already nests %q)", parent, existing)
			}
			doc.Nest[parent] = child

		case strings.HasPrefix(trimmedRight, "%"):
			directive := strings.SplitN(trimmedRight, ":", 2)[0]
			return 0, hedlerr.Syntax(line.Number, 0, "unknown directive %q", directive)

		default:
			return 0, hedlerr.Syntax(line.Number, 0, "expected a directive or the '---' separator")
		}
	}

	return 0, hedlerr.Syntax(len(lines), 0, "unexpected end of input: missing '---' separator")
}

func requireColonSpace(s, prefix string, lineNo int) (string, error) {
	rest := strings.TrimPrefix(s, prefix)
	if !strings.HasPrefix(rest, ": ") {
		return "", hedlerr.Syntax(lineNo, 0, "directive %q must be followed by \": \"", prefix)
	}
	return strings.TrimSpace(rest[2:]), nil
}

func parseVersion(s string, lineNo int) (int, int, error) {
	tail, err := requireColonSpace(s, "%VERSION", lineNo)
	if err != nil {
		return 0, 0, err
	}
	parts := strings.SplitN(tail, ".", 2)
	if len(parts) != 2 {
		return 0, 0, hedlerr.Syntax(lineNo, 0, "version must have the form M.N")
	}
	major, err := parseVersionComponent(parts[0], lineNo, "major")
	if err != nil {
		return 0, 0, err
	}
	minor, err := parseVersionComponent(parts[1], lineNo, "minor")
	if err != nil {
		return 0, 0, err
	}
	return major, minor, nil
}

func parseVersionComponent(s string, lineNo int, which string) (int, error) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, hedlerr.Syntax(lineNo, 0, "invalid %s version component %q: leading zeros are not allowed", which, s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, hedlerr.Syntax(lineNo, 0, "invalid %s version component %q", which, s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, hedlerr.Syntax(lineNo, 0, "invalid %s version component %q", which, s)
	}
	return n, nil
}

func parseStruct(s string, lineNo int, lim limits.Limits) (ast.Struct, error) {
	tail, err := requireColonSpace(s, "%STRUCT", lineNo)
	if err != nil {
		return ast.Struct{}, err
	}

	typeName := tail
	countHint := ""
	if idx := strings.IndexByte(tail, '('); idx >= 0 {
		typeName = strings.TrimSpace(tail[:idx])
		close := strings.IndexByte(tail[idx:], ')')
		if close < 0 {
			return ast.Struct{}, hedlerr.Syntax(lineNo, 0, "%%STRUCT count hint missing closing ')'")
		}
		countHint = strings.TrimSpace(tail[idx+1 : idx+close])
		rest := tail[idx+close+1:]
		if !strings.HasPrefix(rest, ":") {
			return ast.Struct{}, hedlerr.Syntax(lineNo, 0, "unexpected content after %%STRUCT count hint")
		}
		tail = strings.TrimSpace(rest[1:])
	} else {
		colonIdx := strings.IndexByte(tail, ':')
		if colonIdx < 0 {
			return ast.Struct{}, hedlerr.Syntax(lineNo, 0, "%%STRUCT directive missing column list")
		}
		typeName = strings.TrimSpace(tail[:colonIdx])
		tail = strings.TrimSpace(tail[colonIdx+1:])
	}

	if countHint != "" {
		if len(countHint) > 1 && countHint[0] == '0' {
			return ast.Struct{}, hedlerr.Syntax(lineNo, 0, "%%STRUCT count hint %q has leading zeros", countHint)
		}
		for _, r := range countHint {
			if r < '0' || r > '9' {
				return ast.Struct{}, hedlerr.Syntax(lineNo, 0, "%%STRUCT count hint %q is not numeric", countHint)
			}
		}
	}

	if !token.IsTypeName(typeName) {
		return ast.Struct{}, hedlerr.Syntax(lineNo, 0, "invalid struct type name %q", typeName)
	}

	if !strings.HasPrefix(tail, "[") || !strings.HasSuffix(tail, "]") {
		return ast.Struct{}, hedlerr.Syntax(lineNo, 0, "%%STRUCT column list must be enclosed in []")
	}
	inner := tail[1 : len(tail)-1]
	var cols []string
	if strings.TrimSpace(inner) != "" {
		for _, c := range strings.Split(inner, ",") {
			c = strings.TrimSpace(c)
			if !token.IsKeyToken(c) {
				return ast.Struct{}, hedlerr.Syntax(lineNo, 0, "invalid column name %q", c)
			}
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		return ast.Struct{}, hedlerr.Semantic(lineNo, "struct %q must declare at least one column", typeName)
	}
	if len(cols) > lim.MaxColumns {
		return ast.Struct{}, hedlerr.SecurityLimit(lineNo, "max_columns", "struct %q exceeds max_columns", typeName)
	}
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if seen[c] {
			return ast.Struct{}, hedlerr.Semantic(lineNo, "duplicate column %q in struct %q", c, typeName)
		}
		seen[c] = true
	}

	return ast.Struct{TypeName: typeName, Columns: cols}, nil
}

func parseAlias(s string, lineNo int) (key, value string, err error) {
	tail, err := requireColonSpace(s, "%ALIAS", lineNo)
	if err != nil {
		return "", "", err
	}
	if !strings.HasPrefix(tail, "%") {
		return "", "", hedlerr.Syntax(lineNo, 0, "%%ALIAS key must start with '%%'")
	}
	tail = tail[1:]
	idx := strings.IndexByte(tail, ':')
	if idx < 0 {
		return "", "", hedlerr.Syntax(lineNo, 0, "%%ALIAS directive missing value")
	}
	key = strings.TrimSpace(tail[:idx])
	if !token.IsKeyToken(key) {
		return "", "", hedlerr.Syntax(lineNo, 0, "invalid alias key %q", key)
	}
	rest := strings.TrimSpace(tail[idx+1:])
	payload, ok := token.SplitQuoted(rest)
	if !ok {
		return "", "", hedlerr.Syntax(lineNo, 0, "%%ALIAS value must be a quoted string")
	}
	return key, token.UnescapeQuoted(payload), nil
}

func parseNest(s string, lineNo int) (parent, child string, err error) {
	tail, err := requireColonSpace(s, "%NEST", lineNo)
	if err != nil {
		return "", "", err
	}
	parts := strings.SplitN(tail, ">", 2)
	if len(parts) != 2 {
		return "", "", hedlerr.Syntax(lineNo, 0, "%%NEST directive must have the form 'Parent > Child'")
	}
	parent = strings.TrimSpace(parts[0])
	child = strings.TrimSpace(parts[1])
	if !token.IsTypeName(parent) || !token.IsTypeName(child) {
		return "", "", hedlerr.Syntax(lineNo, 0, "%%NEST requires two type names")
	}
	return parent, child, nil
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
