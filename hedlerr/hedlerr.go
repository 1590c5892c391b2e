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

// Package hedlerr defines the uniform diagnostic type every parsing
// and serialization stage reports through. One Kind per class of
// failure, one Diagnostic shape regardless of which stage raised it.
package hedlerr

import (
	"fmt"
	"strings"
)

// Kind classifies a Diagnostic.
type Kind string

const (
	KindSyntax         Kind = "syntax"
	KindSemantic       Kind = "semantic"
	KindSchema         Kind = "schema"
	KindShape          Kind = "shape"
	KindOrphanRow      Kind = "orphan_row"
	KindAlias          Kind = "alias"
	KindReference      Kind = "reference"
	KindSecurityLimit  Kind = "security_limit"
	KindIO             Kind = "io"
)

// Diagnostic is the single error shape produced anywhere in the
// module: a lexer, the header reader, the body parser, the reference
// resolver or the canonical writer all report through this type.
type Diagnostic struct {
	Kind    Kind
	Message string
	Line    int
	Col     int
	// Limit names the exceeded ceiling, set only for KindSecurityLimit.
	Limit string
	Cause error
}

func (d *Diagnostic) Error() string {
	var b strings.Builder
	if d.Line > 0 {
		fmt.Fprintf(&b, "%d:", d.Line)
		if d.Col > 0 {
			fmt.Fprintf(&b, "%d:", d.Col)
		}
		b.WriteByte(' ')
	}
	b.WriteString(d.Message)
	if d.Cause != nil {
		b.WriteString(": ")
		b.WriteString(d.Cause.Error())
	}
	return b.String()
}

func (d *Diagnostic) Unwrap() error {
	return d.Cause
}

// WithCause attaches a wrapped error and returns the receiver, mirroring
// the builder-style chaining used for positional errors elsewhere in
// the module.
func (d *Diagnostic) WithCause(err error) *Diagnostic {
	d.Cause = err
	return d
}

func Syntax(line, col int, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: KindSyntax, Line: line, Col: col, Message: fmt.Sprintf(format, args...)}
}

func Semantic(line int, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: KindSemantic, Line: line, Message: fmt.Sprintf(format, args...)}
}

func Schema(line int, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: KindSchema, Line: line, Message: fmt.Sprintf(format, args...)}
}

func Shape(line int, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: KindShape, Line: line, Message: fmt.Sprintf(format, args...)}
}

func OrphanRow(line int, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: KindOrphanRow, Line: line, Message: fmt.Sprintf(format, args...)}
}

func Alias(line int, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: KindAlias, Line: line, Message: fmt.Sprintf(format, args...)}
}

func Reference(line int, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: KindReference, Line: line, Message: fmt.Sprintf(format, args...)}
}

func SecurityLimit(line int, limit string, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: KindSecurityLimit, Line: line, Limit: limit, Message: fmt.Sprintf(format, args...)}
}

func IO(format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: KindIO, Message: fmt.Sprintf(format, args...)}
}
