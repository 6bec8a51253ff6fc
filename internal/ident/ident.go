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

// Package ident provides the single case-folding comparator used by every
// symbol table in the compiler core. Papyrus identifiers are ASCII, so
// folding is a plain byte-wise lowercase rather than a locale-aware one.
package ident

// Fold returns the canonical form of a Papyrus identifier used as a map key.
// Every symbol table in this module (loaded scripts, local scopes, struct
// members, properties, functions) must key off Fold(name), never name
// itself, so that lookups are case-insensitive end to end.
func Fold(name string) string {
	b := []byte(name)
	changed := false
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return name
	}
	return string(b)
}

// Equal reports whether a and b are the same Papyrus identifier, ignoring case.
func Equal(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
