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

// Package papyrus implements the heart of the Papyrus compiler core: the
// AST data model, the multi-pass resolution context,
// and the AST-side half of PEX emission (the other half of
// which is the pure object model in lang/pex).
//
// All three live in one package because they are mutually recursive in
// exactly the way the original C++ (namespace caprica::papyrus) lets them
// be: a Statement's Semantic method needs a *Context, and a *Context's
// identifier resolution needs to walk Function/Object/Struct nodes. Go has
// no forward-declared headers, so the cycle is broken by keeping AST,
// resolver, and emitter in one package instead of three, the way
// google/wuffs keeps lang/check's type-checker and the a.Node family it
// walks conceptually separate (Checker vs ast.Node) but wired through a
// single import direction (check depends on ast, never the reverse) --
// here the dependency is two-way, so unlike wuffs they cannot be split.
package papyrus

import (
	"github.com/rethesda/Caprica/internal/ident"
	"github.com/rethesda/Caprica/lang/source"
	"github.com/rethesda/Caprica/lang/types"
)

// Location is the position of an AST node in its source file.
type Location = source.Location

// UserFlags is the set of engine-defined metadata bits attached to a
// declaration; the set of valid flag names is configured externally,
// so this core only threads the encoded value through.
type UserFlags uint64

// ReferenceState tracks how a Variable has been used by the functions that
// can see it, feeding the unused-variable diagnostics chain in
// semantic2.
type ReferenceState struct {
	IsRead        bool
	IsWritten     bool
	IsInitialized bool
}

// Parameter is a function parameter: name, type, and user flags.
type Parameter struct {
	Name      string
	Type      types.Type
	UserFlags UserFlags
	Location  Location
}

// Variable is a script- or function-local variable declaration.
type Variable struct {
	Name           string
	Type           types.Type
	UserFlags      UserFlags
	Location       Location
	ReferenceState ReferenceState

	// HasInitialValue is true for a script-level variable declared with a
	// literal default ("Int x = 1"), feeding the PexObject_InitialValueCount
	// engine limit.
	HasInitialValue bool
}

// Member is a typed field of a Struct.
type Member struct {
	Name      string
	Type      types.Type
	UserFlags UserFlags
	Location  Location
}

// Struct is a named container of typed members, owned by exactly one
// Object.
type Struct struct {
	Name     string
	Members  []*Member
	Location Location
	parent   *Object
}

func (s *Struct) StructName() string      { return s.Name }
func (s *Struct) ParentObject() types.Object { return s.parent }

func (s *Struct) memberNamed(name string) *Member {
	for _, m := range s.Members {
		if ident.Equal(m.Name, name) {
			return m
		}
	}
	return nil
}

// Property is a named, typed accessor surface on an Object, either
// auto (backed by the variable named AutoVarName; the emitter records that
// name but does not synthesize the variable) or backed by explicit
// Getter/Setter functions.
type Property struct {
	Name          string
	Type          types.Type
	UserFlags     UserFlags
	Location      Location
	IsAuto        bool
	AutoVarName   string
	ReadFunction  *Function
	WriteFunction *Function
	DocComment    string
}

// PropertyGroup is a named display grouping of properties within an
// Object; the unnamed root group ("") is created lazily on first property
// addition.
type PropertyGroup struct {
	Name       string
	Properties []*Property
}

// State is a named bundle of functions within an Object; the unnamed root
// state ("") always exists and is present at index 0 of Object.States.
type State struct {
	Name      string
	Functions []*Function
}

func (s *State) functionNamed(name string) *Function {
	for _, f := range s.Functions {
		if ident.Equal(f.Name, name) {
			return f
		}
	}
	return nil
}

// FunctionType classifies how a Function is invoked/emitted.
type FunctionType int

const (
	FunctionKindFunction FunctionType = iota
	FunctionKindEvent
	FunctionKindGetter
	FunctionKindSetter
)

// Function is a Papyrus function, event handler, property getter, or
// property setter.
type Function struct {
	Name                string
	ReturnType          types.Type
	Parameters          []*Parameter
	Statements          []Statement
	UserFlags           UserFlags
	IsGlobal            bool
	IsNative            bool
	FunctionType        FunctionType
	DocumentationComment string
	Location            Location

	// PropertyName is set when this function is a synthesized Getter/
	// Setter, naming the Property it backs. The emitter does not read it:
	// debug records name an accessor by its Function.Name.
	PropertyName string
}

// Object is one top-level declaration parsed from a .psc file.
type Object struct {
	Name                string
	DocumentationString string
	UserFlags           UserFlags
	ParentClass         types.Type
	AutoState           *State
	Location            Location
	Imports             []Import

	Structs        []*Struct
	Variables      []*Variable
	PropertyGroups []*PropertyGroup
	States         []*State

	rootState         *State
	rootPropertyGroup *PropertyGroup
}

// Import is one `Import <name>` declaration.
type Import struct {
	Location Location
	Name     string
}

func (o *Object) ObjectName() string { return o.Name }

// NewObject constructs an Object with its synthesized root state already
// present at index 0.
func NewObject(name string, loc Location) *Object {
	root := &State{Name: ""}
	return &Object{
		Name:      name,
		Location:  loc,
		States:    []*State{root},
		rootState: root,
	}
}

// RootState returns the always-present unnamed state.
func (o *Object) RootState() *State { return o.rootState }

// RootPropertyGroup returns the unnamed property group, lazily creating it
// (and appending it to PropertyGroups) on first call.
func (o *Object) RootPropertyGroup() *PropertyGroup {
	if o.rootPropertyGroup == nil {
		o.rootPropertyGroup = &PropertyGroup{Name: ""}
		o.PropertyGroups = append(o.PropertyGroups, o.rootPropertyGroup)
	}
	return o.rootPropertyGroup
}

// AddStruct appends s to o, taking ownership and recording the back-link
// ParentObject needs for type-string rendering.
func (o *Object) AddStruct(s *Struct) {
	s.parent = o
	o.Structs = append(o.Structs, s)
}

// AddVariable appends v to o's script-level variables.
func (o *Object) AddVariable(v *Variable) {
	o.Variables = append(o.Variables, v)
}

// AddState appends s to o's states.
func (o *Object) AddState(s *State) {
	o.States = append(o.States, s)
}

// AddProperty appends p to the named group, creating it if needed (using
// RootPropertyGroup for group == "").
func (o *Object) AddProperty(group string, p *Property) {
	if group == "" {
		g := o.RootPropertyGroup()
		g.Properties = append(g.Properties, p)
		return
	}
	for _, g := range o.PropertyGroups {
		if ident.Equal(g.Name, group) {
			g.Properties = append(g.Properties, p)
			return
		}
	}
	g := &PropertyGroup{Name: group}
	o.PropertyGroups = append(o.PropertyGroups, g)
	g.Properties = append(g.Properties, p)
}

func (o *Object) structNamed(name string) *Struct {
	for _, s := range o.Structs {
		if ident.Equal(s.Name, name) {
			return s
		}
	}
	return nil
}

func (o *Object) stateNamed(name string) *State {
	for _, s := range o.States {
		if ident.Equal(s.Name, name) {
			return s
		}
	}
	return nil
}

func (o *Object) variableNamed(name string) *Variable {
	for _, v := range o.Variables {
		if ident.Equal(v.Name, name) {
			return v
		}
	}
	return nil
}

func (o *Object) allProperties() []*Property {
	var props []*Property
	for _, g := range o.PropertyGroups {
		props = append(props, g.Properties...)
	}
	return props
}

func (o *Object) propertyNamed(name string) *Property {
	for _, p := range o.allProperties() {
		if ident.Equal(p.Name, name) {
			return p
		}
	}
	return nil
}

// Script owns the list of Objects parsed from one .psc file, keyed
// (case-insensitively) by its first object's name.
type Script struct {
	Filename string
	Objects  []*Object
}

// Name is the script's key: its first object's name.
func (s *Script) Name() string {
	if len(s.Objects) == 0 {
		return ""
	}
	return s.Objects[0].Name
}
