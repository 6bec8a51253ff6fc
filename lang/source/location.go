// Copyright 2024 The Caprica-Go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package source holds the one location type threaded through every AST
// node, diagnostic, and PEX debug record in the compiler core.
package source

import "fmt"

// Location identifies a point in a .psc source file. The zero Location has
// no File and renders without a location prefix, matching logicalFatal's
// lack of a source position.
type Location struct {
	File   string
	Line   uint32
	Column uint32
}

// String renders "<file>(<line>,<column>)", or "" if File is empty.
func (l Location) String() string {
	if l.File == "" {
		return ""
	}
	return fmt.Sprintf("%s(%d,%d)", l.File, l.Line, l.Column)
}
