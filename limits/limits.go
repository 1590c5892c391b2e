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

// Package limits holds the resource ceilings a parse run enforces.
// Every ceiling defends against a specific resource-exhaustion shape:
// huge files, pathological line lengths, deep nesting, node floods,
// alias floods, wide schemas, deep NEST hierarchies, giant block
// strings, and object-key floods (both per-object and aggregate,
// since many small objects can each stay under the per-object ceiling
// while still exhausting memory in aggregate).
package limits

// Limits bounds the resources a single parse may consume.
type Limits struct {
	MaxFileSize        int64
	MaxLineLength       int
	MaxIndentDepth      int
	MaxNodes            int
	MaxAliases          int
	MaxColumns          int
	MaxNestDepth        int
	MaxBlockStringSize  int64
	MaxObjectKeys       int
	MaxTotalKeys        int
}

// Default returns the module's baseline limits.
func Default() Limits {
	return Limits{
		MaxFileSize:        1 << 30,         // 1GB
		MaxLineLength:      1 << 20,         // 1MB
		MaxIndentDepth:     50,
		MaxNodes:           10_000_000,
		MaxAliases:         10_000,
		MaxColumns:         100,
		MaxNestDepth:       100,
		MaxBlockStringSize: 10 << 20,        // 10MB
		MaxObjectKeys:      10_000,
		MaxTotalKeys:       10_000_000,
	}
}
