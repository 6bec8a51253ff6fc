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

// ValueKind tags a PEX operand.
type ValueKind int

const (
	ValueNone ValueKind = iota
	ValueIdentifier
	ValueInteger
	ValueFloat
	ValueBool
	ValueString
	ValueTemp // an allocated temporary, rendered as an identifier by the builder
)

// Value is an operand of a PEX opcode: either a compile-time constant or
// an identifier naming a variable/temporary/parameter.
type Value struct {
	Kind       ValueKind
	Identifier String
	Integer    int32
	Float      float32
	Bool       bool
	Str        String
	TypeName   String // the declared type of a ValueTemp, for pool bookkeeping
}

func None() Value                      { return Value{Kind: ValueNone} }
func Identifier(s String) Value        { return Value{Kind: ValueIdentifier, Identifier: s} }
func Integer(i int32) Value            { return Value{Kind: ValueInteger, Integer: i} }
func Float(f float32) Value            { return Value{Kind: ValueFloat, Float: f} }
func Bool(b bool) Value                { return Value{Kind: ValueBool, Bool: b} }
func StringValue(s String) Value       { return Value{Kind: ValueString, Str: s} }
