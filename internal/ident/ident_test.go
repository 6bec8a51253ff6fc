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

package ident

import "testing"

func TestFold(t *testing.T) {
	testCases := []struct{ in, want string }{
		{"", ""},
		{"abc", "abc"},
		{"ABC", "abc"},
		{"AbC123", "abc123"},
		{"Health", "health"},
		{"::mangled_X_0", "::mangled_x_0"},
	}
	for _, tc := range testCases {
		if got := Fold(tc.in); got != tc.want {
			t.Errorf("Fold(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEqual(t *testing.T) {
	testCases := []struct {
		a, b string
		want bool
	}{
		{"Health", "health", true},
		{"HEALTH", "Health", true},
		{"Health", "Healths", false},
		{"", "", true},
		{"a", "A", true},
		{"a", "b", false},
	}
	for _, tc := range testCases {
		if got := Equal(tc.a, tc.b); got != tc.want {
			t.Errorf("Equal(%q, %q): got %t, want %t", tc.a, tc.b, got, tc.want)
		}
	}
}
