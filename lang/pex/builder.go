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

import "fmt"

// FunctionBuilder assembles one Function's body: it allocates temporaries
// and named locals, tracks the current debug line, and appends
// instructions. Statements and expressions in package papyrus stream
// opcodes into a FunctionBuilder via its Emit method, mirroring the
// original compiler's `bldr << op::...{}` insertion-operator style.
type FunctionBuilder struct {
	file     *File
	location Location

	locals     []*Local
	localNames map[string]int // case-sensitive; mangling already made names unique

	// tempPool holds temporaries handed back through FreeTemp, keyed by
	// type name, for reuse by AllocTemp. The builder never frees a
	// temporary on its own: one stays allocated until a caller passes it
	// to FreeTemp.
	tempPool map[string][]Value
	nextTemp int

	body        []Instruction
	currentLine uint32

	noneLocal   *Value
}

// NewFunctionBuilder starts a builder bound to file, emitting debug lines
// relative to loc.
func NewFunctionBuilder(file *File, loc Location) *FunctionBuilder {
	return &FunctionBuilder{
		file:        file,
		location:    loc,
		localNames:  map[string]int{},
		tempPool:    map[string][]Value{},
		currentLine: loc.Line,
	}
}

// AdvanceLine records that subsequent instructions originate from loc,
// analogous to streaming a CapricaFileLocation into the builder.
func (b *FunctionBuilder) AdvanceLine(loc Location) {
	b.currentLine = loc.Line
}

// AllocTemp allocates (or reuses a pooled) temporary of the given PEX type
// name, returning it as a ValueTemp identifier.
func (b *FunctionBuilder) AllocTemp(typeName string) Value {
	if pool := b.tempPool[typeName]; len(pool) > 0 {
		v := pool[len(pool)-1]
		b.tempPool[typeName] = pool[:len(pool)-1]
		return v
	}
	name := fmt.Sprintf("::temp%d", b.nextTemp)
	b.nextTemp++
	s := b.file.GetString(name)
	t := b.file.GetString(typeName)
	b.locals = append(b.locals, &Local{Name: s, TypeName: t})
	return Value{Kind: ValueTemp, Identifier: s, TypeName: t}
}

// FreeTemp returns a temporary to its type's pool, to be reused by a later
// AllocTemp call for the same type. Call this at statement boundaries.
func (b *FunctionBuilder) FreeTemp(v Value, typeName string) {
	if v.Kind != ValueTemp {
		return
	}
	b.tempPool[typeName] = append(b.tempPool[typeName], v)
}

// AllocateLocal allocates a named local (not pooled/reused), such as
// GotoState's synthesized "soldState".
func (b *FunctionBuilder) AllocateLocal(name, typeName string) Value {
	s := b.file.GetString(name)
	b.locals = append(b.locals, &Local{Name: s, TypeName: b.file.GetString(typeName)})
	b.localNames[name] = len(b.locals) - 1
	return Identifier(s)
}

// GetNoneLocal returns the shared "none" temporary, such as the discarded
// result destination of GotoState's synthesized callmethod opcodes,
// allocating it on first use.
func (b *FunctionBuilder) GetNoneLocal(loc Location) Value {
	if b.noneLocal == nil {
		v := b.AllocTemp("None")
		b.noneLocal = &v
	}
	return *b.noneLocal
}

// Emit appends instr to the function body, stamping in the builder's
// current debug line.
func (b *FunctionBuilder) Emit(instr Instruction) {
	instr.Line = b.currentLine
	b.body = append(b.body, instr)
}

// Populate writes the assembled body, locals table, and debug line map
// into fn and (if non-nil) dbg.
func (b *FunctionBuilder) Populate(fn *Function, dbg *DebugFunctionInfo) {
	fn.Locals = b.locals
	fn.Body = b.body
	if dbg != nil {
		dbg.LineMap = make([]uint32, len(b.body))
		for i, instr := range b.body {
			dbg.LineMap[i] = instr.Line
		}
	}
}
