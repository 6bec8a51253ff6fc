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

// Op enumerates the opcodes the PEX emitter can append to a function body.
// This is a closed set: every opcode the core ever emits is listed here.
type Op int

const (
	OpNop Op = iota
	OpAssign
	OpCast
	OpCoerce
	OpReturn

	OpCallMethod
	OpCallStatic
	OpCallParent

	OpIAdd
	OpISub
	OpIMul
	OpIDiv
	OpIMod
	OpFAdd
	OpFSub
	OpFMul
	OpFDiv

	OpINeg
	OpFNeg
	OpNot

	OpCmpEq
	OpCmpNe
	OpCmpLt
	OpCmpLe
	OpCmpGt
	OpCmpGe

	OpJmp
	OpJmpT
	OpJmpF
	OpLabel

	OpArrayGetElement
	OpArraySetElement
	OpArrayLength
	OpArrayFind
	OpArrayFindStruct
	OpArrayRFind
	OpArrayRFindStruct
	OpArrayAdd
	OpArrayClear
	OpArrayInsert
	OpArrayRemove
	OpArrayRemoveLast

	OpPropGet
	OpPropSet
)

// Instruction is one opcode plus its operands, as appended to a
// Function.Body by a FunctionBuilder. Not every field is meaningful for
// every Op: Name/Base/Args are used by the call and array family, Dest by
// anything producing a value, Target by the jump family.
type Instruction struct {
	Op     Op
	Dest   Value
	Args   []Value
	Name   String // function or property name for calls/property ops
	Base   Value  // receiver ("self", "none", parent object, or an array)
	Target int    // label index for jumps
	Line   uint32
}
