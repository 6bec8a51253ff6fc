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

// Package cliflags holds flag defaults, usage strings, and validation
// helpers common to the capriccomp command line tool, the way
// google/wuffs' cmd/commonflags does for its own cmd/* tools.
package cliflags

import "strings"

const (
	ImportDirsUsage = `comma-separated list of directories to search for imported scripts, ` +
		`in order; the directory containing the script being compiled is not searched unless listed`

	EnableDecompiledStructNameRefsDefault = false
	EnableDecompiledStructNameRefsUsage   = `whether to accept "Parent#Struct" as a struct type name, ` +
		`as produced by some decompilers`

	DisableWarningsUsage = `comma-separated list of warning numbers to disable, e.g. "4004,4005"`

	WarningsAsErrorsUsage = `comma-separated list of warning numbers to promote to errors`
)

// IsAlphaNumericIsh returns whether s contains only ASCII alpha-numerics and
// a limited set of punctuation (commas, hyphens, dots, underscores, colons,
// slashes and backslashes), but not e.g. spaces or semi-colons.
//
// The intent is that if s is alpha-numeric-ish, it should not need escaping
// when passed to other programs as command line arguments.
func IsAlphaNumericIsh(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ',' || c == '-' || c == '.' || c == '/' || c == '\\' || c == ':' ||
			('0' <= c && c <= '9') || ('A' <= c && c <= 'Z') || c == '_' || ('a' <= c && c <= 'z') {
			continue
		}
		return false
	}
	return true
}

// SplitList splits a comma-separated flag value into its trimmed,
// non-empty elements.
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
