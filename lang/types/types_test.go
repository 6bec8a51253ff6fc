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

package types

import "testing"

type fakeObject struct{ name string }

func (o *fakeObject) ObjectName() string { return o.name }

type fakeStruct struct {
	name   string
	parent Object
}

func (s *fakeStruct) StructName() string    { return s.name }
func (s *fakeStruct) ParentObject() Object { return s.parent }

func TestString(t *testing.T) {
	quest := &fakeObject{name: "Quest"}
	point := &fakeStruct{name: "Point", parent: quest}

	testCases := []struct {
		name string
		t    Type
		want string
	}{
		{"none", NewNone(), "None"},
		{"bool", NewBool(), "Bool"},
		{"float", NewFloat(), "Float"},
		{"int", NewInt(), "Int"},
		{"string", NewString(), "String"},
		{"var", NewVar(), "Var"},
		{"array of int", NewArray(NewInt()), "Int[]"},
		{"array of array", NewArray(NewArray(NewString())), "String[][]"},
		{"unresolved", NewUnresolved("Foo"), "Foo"},
		{"resolved object", NewResolvedObject(quest), "quest"},
		{"resolved struct", NewResolvedStruct(point), "quest#point"},
	}
	for _, tc := range testCases {
		if got := tc.t.String(); got != tc.want {
			t.Errorf("%s: String(): got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestEqual(t *testing.T) {
	quest := &fakeObject{name: "Quest"}
	otherQuest := &fakeObject{name: "Quest"}
	point := &fakeStruct{name: "Point", parent: quest}

	testCases := []struct {
		name string
		a, b Type
		want bool
	}{
		{"none vs none", NewNone(), NewNone(), true},
		{"none vs int", NewNone(), NewInt(), false},
		{"int vs int", NewInt(), NewInt(), true},
		{"int vs float", NewInt(), NewFloat(), false},
		{"array same elem", NewArray(NewInt()), NewArray(NewInt()), true},
		{"array different elem", NewArray(NewInt()), NewArray(NewFloat()), false},
		{"unresolved case-insensitive", NewUnresolved("Foo"), NewUnresolved("FOO"), true},
		{"unresolved different name", NewUnresolved("Foo"), NewUnresolved("Bar"), false},
		{"resolved object same pointer", NewResolvedObject(quest), NewResolvedObject(quest), true},
		{"resolved object distinct pointer same name", NewResolvedObject(quest), NewResolvedObject(otherQuest), false},
		{"resolved struct same pointer", NewResolvedStruct(point), NewResolvedStruct(point), true},
	}

	for _, tc := range testCases {
		if got := tc.a.Equal(tc.b); got != tc.want {
			t.Errorf("%s: Equal(): got %t, want %t", tc.name, got, tc.want)
		}
	}
}

func TestIsResolved(t *testing.T) {
	if NewUnresolved("Foo").IsResolved() {
		t.Error("Unresolved type reported as resolved")
	}
	if !NewInt().IsResolved() {
		t.Error("Int reported as unresolved")
	}
	if NewArray(NewUnresolved("Foo")).IsResolved() {
		t.Error("array of unresolved reported as resolved")
	}
	if !NewArray(NewInt()).IsResolved() {
		t.Error("array of int reported as unresolved")
	}
}
