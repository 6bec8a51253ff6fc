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

// Package pex implements the output object model of the PEX emitter
//: the PexFile/PexObject/PexFunction/PexState
// model, its de-duplicated string pool, and the opcode stream a
// PexFunctionBuilder assembles. Serializing this model to the .pex binary
// container is an external collaborator's job; this package
// only has to produce a well-formed in-memory tree.
package pex

import "github.com/rethesda/Caprica/lang/source"

// String is an interned entry in a File's string table.
type String struct {
	file *File
	text string
}

func (s String) Text() string { return s.text }

// File is the root of the emitted PEX object model: one per compiled
// script.
type File struct {
	Objects []*Object

	DebugInfo *DebugInfo // nil when the emitter is not asked for debug info

	strings []string
	index   map[string]int
}

// GetString interns name into the file's string pool, returning the same
// String value for any two calls with the same (case-sensitive) text, per
// string-pool invariant.
func (f *File) GetString(name string) String {
	if f.index == nil {
		f.index = map[string]int{}
	}
	if i, ok := f.index[name]; ok {
		return String{file: f, text: f.strings[i]}
	}
	f.index[name] = len(f.strings)
	f.strings = append(f.strings, name)
	return String{file: f, text: name}
}

// Strings returns the file's de-duplicated string table in insertion order.
func (f *File) Strings() []string { return f.strings }

// UserFlags is the encoded bitset of user-flag names attached to a
// declaration.
type UserFlags uint64

// Object is one compiled Papyrus object (the PEX analogue of papyrus.Object).
type Object struct {
	Name            String
	DocString       String
	UserFlags       UserFlags
	ParentClassName String // empty when the object has no parent
	AutoStateName   String

	Structs        []*Struct
	Variables      []*Variable
	Properties     []*Property
	States         []*State
}

type Struct struct {
	Name    String
	Members []*StructMember
}

type StructMember struct {
	Name      String
	TypeName  String
	UserFlags UserFlags
	DocString String
}

type Variable struct {
	Name         String
	TypeName     String
	UserFlags    UserFlags
	DefaultValue Value // zero Value means "no initial value"
}

type Property struct {
	Name         String
	TypeName     String
	DocString    String
	UserFlags    UserFlags
	IsAuto       bool
	AutoVarName  String // only set when IsAuto
	ReadFunction  *Function
	WriteFunction *Function
}

type State struct {
	Name      String // "" is the root state
	Functions []*Function
}

// DebugFunctionType distinguishes a normal function from a property
// accessor for debug-info purposes; Function and Event both map to
// Normal.
type DebugFunctionType int

const (
	DebugFunctionNormal DebugFunctionType = iota
	DebugFunctionGetter
	DebugFunctionSetter
)

type Function struct {
	Name            String
	ReturnTypeName  String // empty string handle for no return type
	DocString       String
	UserFlags       UserFlags
	IsGlobal        bool
	IsNative        bool
	Parameters      []*FunctionParameter
	Locals          []*Local
	Body            []Instruction

	DebugInfo *DebugFunctionInfo
}

type FunctionParameter struct {
	Name     String
	TypeName String
}

// Local is a function-scoped temporary or named local, as allocated by a
// PexFunctionBuilder.
type Local struct {
	Name     String
	TypeName String
}

// DebugFunctionInfo is the per-function debug record emitted alongside a
// Function: the object/state it belongs to, its debug-visible name, its
// kind (normal, which covers both functions and events, or one of the two
// property-accessor kinds), and a
// line map from instruction index to source line.
type DebugFunctionInfo struct {
	ObjectName   String
	StateName    String // empty for property accessors
	FunctionName String
	FunctionType DebugFunctionType
	LineMap      []uint32 // LineMap[i] is the source line of Body[i]
}

// DebugInfo is the file-level debug section; when a File.DebugInfo is nil
// the emitter discards any per-function record it would have produced.
type DebugInfo struct {
	Functions []*DebugFunctionInfo
}

// Location re-exports source.Location for callers that only import pex.
type Location = source.Location
