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

package pex

import "testing"

func TestGetStringDedups(t *testing.T) {
	f := &File{}
	a := f.GetString("Health")
	b := f.GetString("Health")
	c := f.GetString("Magicka")
	if a.Text() != "Health" || b.Text() != "Health" || c.Text() != "Magicka" {
		t.Fatalf("GetString: got %q, %q, %q, want %q, %q, %q", a.Text(), b.Text(), c.Text(), "Health", "Health", "Magicka")
	}
	if got, want := f.Strings(), []string{"Health", "Magicka"}; len(got) != len(want) {
		t.Fatalf("Strings(): got %v, want %v", got, want)
	}
}

func TestGetStringCaseSensitive(t *testing.T) {
	f := &File{}
	f.GetString("health")
	f.GetString("Health")
	if got, want := len(f.Strings()), 2; got != want {
		t.Errorf("Strings(): got %d entries, want %d (case must not fold)", got, want)
	}
}
