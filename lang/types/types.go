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

// Package types implements the compiler core's type system (component
// C1): the closed set of Papyrus types, their equality, array nesting,
// resolved-vs-unresolved states, and canonical string rendering.
//
// The shape follows google/wuffs/lang/ast's TypeExpr (a small closed tag
// plus optional payload), adapted from wuffs's generic-decorator model to
// Papyrus's concrete kind set, and its exact rendering rules are carried
// verbatim from the original Caprica/papyrus/PapyrusType.cpp.
package types

import (
	"strings"

	"github.com/rethesda/Caprica/internal/ident"
)

// Kind tags the variant held by a Type value.
type Kind int

const (
	None Kind = iota
	Bool
	Float
	Int
	String
	Var
	Array
	Unresolved
	ResolvedObject
	ResolvedStruct
)

// Object is the minimal surface lang/types needs from a papyrus.Object,
// satisfied by *papyrus.Object. Kept as an interface here (rather than
// importing lang/papyrus directly) so that lang/papyrus can in turn depend
// on lang/types without an import cycle.
type Object interface {
	ObjectName() string
}

// Struct is the minimal surface lang/types needs from a papyrus.Struct.
type Struct interface {
	StructName() string
	ParentObject() Object
}

// Type is a Papyrus type: a tagged value, copied by value everywhere (it
// is small and its resolved forms are non-owning pointers into the
// loaded-scripts registry).
type Type struct {
	kind            Kind
	name            string // Unresolved
	elem            *Type  // Array
	resolvedObject  Object
	resolvedStruct  Struct
}

// Kind reports the tag of t.
func (t Type) Kind() Kind { return t.kind }

func NewNone() Type   { return Type{kind: None} }
func NewBool() Type   { return Type{kind: Bool} }
func NewFloat() Type  { return Type{kind: Float} }
func NewInt() Type    { return Type{kind: Int} }
func NewString() Type { return Type{kind: String} }
func NewVar() Type    { return Type{kind: Var} }

func NewArray(elem Type) Type { return Type{kind: Array, elem: &elem} }

// NewUnresolved constructs the Unresolved(name) placeholder a parser
// produces for any type name it cannot itself resolve.
func NewUnresolved(name string) Type { return Type{kind: Unresolved, name: name} }

func NewResolvedObject(o Object) Type { return Type{kind: ResolvedObject, resolvedObject: o} }
func NewResolvedStruct(s Struct) Type { return Type{kind: ResolvedStruct, resolvedStruct: s} }

// IsResolved reports whether t is anything other than Unresolved or an
// Array whose element is not (recursively) resolved.
func (t Type) IsResolved() bool {
	switch t.kind {
	case Unresolved:
		return false
	case Array:
		return t.elem != nil && t.elem.IsResolved()
	default:
		return true
	}
}

// Name returns the raw name of an Unresolved type.
func (t Type) Name() string { return t.name }

// ElementType returns the element type of an Array; only valid when
// Kind() == Array.
func (t Type) ElementType() Type {
	if t.elem == nil {
		return Type{}
	}
	return *t.elem
}

// ResolvedObject returns the target of a ResolvedObject type.
func (t Type) ResolvedObject() Object { return t.resolvedObject }

// ResolvedStruct returns the target of a ResolvedStruct type.
func (t Type) ResolvedStruct() Struct { return t.resolvedStruct }

// Equal implements PapyrusType equality: structural for
// primitives, nominal (pointer identity of the resolved target) for
// resolved forms, case-insensitive by name for Unresolved. When either
// side is None, both sides must be None.
func (t Type) Equal(o Type) bool {
	if t.kind == None || o.kind == None {
		return t.kind == None && o.kind == None
	}
	if t.kind != o.kind {
		return false
	}
	switch t.kind {
	case Bool, Float, Int, String, Var:
		return true
	case Array:
		return t.ElementType().Equal(o.ElementType())
	case Unresolved:
		return ident.Equal(t.name, o.name)
	case ResolvedObject:
		return t.resolvedObject == o.resolvedObject
	case ResolvedStruct:
		return t.resolvedStruct == o.resolvedStruct
	}
	return false
}

// String renders the canonical form of the type: primitives by
// title-cased name; arrays append "[]"; a resolved object renders its
// lowercased object name; a resolved struct renders as
// "<parentObject>#<struct>", lowercased.
func (t Type) String() string {
	switch t.kind {
	case None:
		return "None"
	case Bool:
		return "Bool"
	case Float:
		return "Float"
	case Int:
		return "Int"
	case String:
		return "String"
	case Var:
		return "Var"
	case Array:
		return t.ElementType().String() + "[]"
	case Unresolved:
		return t.name
	case ResolvedObject:
		return strings.ToLower(t.resolvedObject.ObjectName())
	case ResolvedStruct:
		return strings.ToLower(t.resolvedStruct.ParentObject().ObjectName() + "#" + t.resolvedStruct.StructName())
	}
	return "<unknown type>"
}
