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

// emit.go implements the AST-side half of the PEX emitter:
// buildPex on Object, cascading into variables, property groups, states,
// functions, and statements/expressions (which implement BuildPex/
// GenerateLoad themselves in statement.go/expr.go). The pure PEX object
// model it populates lives in lang/pex.
package papyrus

import (
	"strconv"

	"github.com/rethesda/Caprica/lang/diag"
	"github.com/rethesda/Caprica/lang/limits"
	"github.com/rethesda/Caprica/lang/pex"
	"github.com/rethesda/Caprica/lang/types"
)

// Emit lowers every object of sc into a *pex.File. Diagnostics (including
// engine-limit warnings) are written to ctx's Sink as a side effect.
func (ctx *Context) Emit(sc *Script) *pex.File {
	defer ctx.translateEmitPanics()
	file := &pex.File{}
	userFlagNames := map[string]bool{}
	for _, o := range sc.Objects {
		pexObj := ctx.emitObject(file, o)
		file.Objects = append(file.Objects, pexObj)
		collectUserFlagNames(o, userFlagNames)
	}
	limits.Check(ctx.sink, ctx.caps, sc.Objects[0].Location, limits.PexFileUserFlagCount, len(userFlagNames), "")
	return file
}

// collectUserFlagNames is a placeholder walk: this core threads UserFlags
// through as an opaque encoded bitset, so distinct-flag counting
// is approximated by distinct non-zero encoded values actually observed.
func collectUserFlagNames(o *Object, seen map[string]bool) {
	note := func(f UserFlags) {
		if f != 0 {
			seen[pexFlagKey(f)] = true
		}
	}
	note(o.UserFlags)
	for _, v := range o.Variables {
		note(v.UserFlags)
	}
	for _, p := range o.allProperties() {
		note(p.UserFlags)
	}
	for _, st := range o.States {
		for _, f := range st.Functions {
			note(f.UserFlags)
		}
	}
}

func pexFlagKey(f UserFlags) string {
	// Distinct bit patterns, not names, are what's countable from this
	// core's opaque UserFlags encoding.
	return strconv.FormatUint(uint64(f), 16)
}

func (ctx *Context) emitObject(file *pex.File, o *Object) *pex.Object {
	prevObject := ctx.object
	ctx.object = o
	defer func() { ctx.object = prevObject }()

	parentName := ""
	if o.ParentClass.Kind() == types.ResolvedObject {
		parentName = o.ParentClass.String()
	}
	autoStateName := ""
	if o.AutoState != nil {
		autoStateName = o.AutoState.Name
	}

	pexObj := &pex.Object{
		Name:            file.GetString(o.Name),
		DocString:       file.GetString(o.DocumentationString),
		UserFlags:       pex.UserFlags(o.UserFlags),
		ParentClassName: file.GetString(parentName),
		AutoStateName:   file.GetString(autoStateName),
	}
	pexObj.Name = file.GetString(o.Name)

	for _, s := range o.Structs {
		pexObj.Structs = append(pexObj.Structs, emitStruct(file, s))
	}

	initialValueCount := 0
	for _, v := range o.Variables {
		pv := &pex.Variable{
			Name:     file.GetString(v.Name),
			TypeName: file.GetString(v.Type.String()),
		}
		if v.HasInitialValue {
			initialValueCount++
		}
		pexObj.Variables = append(pexObj.Variables, pv)
	}
	limits.Check(ctx.sink, ctx.caps, o.Location, limits.PexObjectVariableCount, len(o.Variables), "")
	limits.Check(ctx.sink, ctx.caps, o.Location, limits.PexObjectInitialValueCount, initialValueCount, "")

	propCount := 0
	staticFuncCount := 0
	for _, g := range o.PropertyGroups {
		for _, p := range g.Properties {
			pexObj.Properties = append(pexObj.Properties, ctx.emitProperty(file, o, p))
			propCount++
		}
	}
	limits.Check(ctx.sink, ctx.caps, o.Location, limits.PexObjectPropertyCount, propCount, "")

	namedStateCount := 0
	for _, st := range o.States {
		pexState := &pex.State{Name: file.GetString(st.Name)}
		for _, f := range st.Functions {
			if f.IsGlobal {
				staticFuncCount++
			}
			pexState.Functions = append(pexState.Functions, ctx.emitFunction(file, o, st, f))
		}
		pexObj.States = append(pexObj.States, pexState)
		if st.Name == "" {
			limits.Check(ctx.sink, ctx.caps, o.Location, limits.PexObjectEmptyStateFunctionCount, len(st.Functions), "")
		} else {
			namedStateCount++
			limits.Check(ctx.sink, ctx.caps, o.Location, limits.PexStateFunctionCount, len(st.Functions), st.Name)
		}
	}
	limits.Check(ctx.sink, ctx.caps, o.Location, limits.PexObjectNamedStateCount, namedStateCount, "")
	limits.Check(ctx.sink, ctx.caps, o.Location, limits.PexObjectStaticFunctionCount, staticFuncCount, "")

	return pexObj
}

func emitStruct(file *pex.File, s *Struct) *pex.Struct {
	out := &pex.Struct{Name: file.GetString(s.Name)}
	for _, m := range s.Members {
		out.Members = append(out.Members, &pex.StructMember{
			Name:     file.GetString(m.Name),
			TypeName: file.GetString(m.Type.String()),
		})
	}
	return out
}

func (ctx *Context) emitProperty(file *pex.File, o *Object, p *Property) *pex.Property {
	out := &pex.Property{
		Name:      file.GetString(p.Name),
		TypeName:  file.GetString(p.Type.String()),
		DocString: file.GetString(p.DocComment),
		UserFlags: pex.UserFlags(p.UserFlags),
		IsAuto:    p.IsAuto,
	}
	if p.IsAuto {
		out.AutoVarName = file.GetString(p.AutoVarName)
		return out
	}
	if p.ReadFunction != nil {
		out.ReadFunction = ctx.emitFunction(file, o, nil, p.ReadFunction)
	}
	if p.WriteFunction != nil {
		out.WriteFunction = ctx.emitFunction(file, o, nil, p.WriteFunction)
	}
	return out
}

// emitFunction builds the PexFunction shell, binds a FunctionBuilder, then
// either synthesizes the compiler-generated body for GetState/GotoState or
// lowers the user's statements.
func (ctx *Context) emitFunction(file *pex.File, o *Object, state *State, f *Function) *pex.Function {
	pfn := &pex.Function{
		Name:           file.GetString(f.Name),
		ReturnTypeName: file.GetString(f.ReturnType.String()),
		DocString:      file.GetString(f.DocumentationComment),
		UserFlags:      pex.UserFlags(f.UserFlags),
		IsGlobal:       f.IsGlobal,
		IsNative:       f.IsNative,
	}
	if f.ReturnType.Kind() == types.None {
		pfn.ReturnTypeName = file.GetString("")
	}
	for _, p := range f.Parameters {
		pfn.Parameters = append(pfn.Parameters, &pex.FunctionParameter{
			Name:     file.GetString(p.Name),
			TypeName: file.GetString(p.Type.String()),
		})
	}
	limits.Check(ctx.sink, ctx.caps, f.Location, limits.PexFunctionParameterCount, len(f.Parameters), f.Name)

	dbg := &pex.DebugFunctionInfo{
		ObjectName:   file.GetString(o.Name),
		FunctionName: file.GetString(f.Name),
	}
	switch f.FunctionType {
	case FunctionKindFunction, FunctionKindEvent:
		dbg.FunctionType = pex.DebugFunctionNormal
	case FunctionKindGetter:
		dbg.FunctionType = pex.DebugFunctionGetter
	case FunctionKindSetter:
		dbg.FunctionType = pex.DebugFunctionSetter
	}
	if state != nil {
		if dbg.FunctionType != pex.DebugFunctionNormal {
			ctx.sink.LogicalFatal("a property accessor must not carry a state name")
		}
		dbg.StateName = file.GetString(state.Name)
	} else {
		dbg.StateName = file.GetString("")
	}

	builder := pex.NewFunctionBuilder(file, f.Location)
	switch f.Name {
	case "GetState":
		emitGetState(file, builder)
	case "GotoState":
		emitGotoState(file, builder)
	default:
		for _, s := range f.Statements {
			s.BuildPex(file, builder)
		}
	}
	builder.Populate(pfn, dbg)

	if file.DebugInfo != nil {
		file.DebugInfo.Functions = append(file.DebugInfo.Functions, dbg)
	}
	return pfn
}

// emitGetState synthesizes "return ::State", unconditionally, overwriting
// any user-supplied body of that name.
func emitGetState(file *pex.File, b *pex.FunctionBuilder) {
	b.Emit(pex.Instruction{Op: pex.OpReturn, Args: []pex.Value{pex.Identifier(file.GetString("::State"))}})
}

// emitGotoState synthesizes the exact four-operation sequence carried over
// verbatim from original_source/Caprica/papyrus/PapyrusFunction.cpp:
// save the old state, fire OnEndState, assign the new state, fire
// OnBeginState.
func emitGotoState(file *pex.File, b *pex.FunctionBuilder) {
	noneVar := b.GetNoneLocal(pex.Location{})
	soldState := b.AllocateLocal("soldState", "String")

	b.Emit(pex.Instruction{
		Op:   pex.OpAssign,
		Dest: soldState,
		Args: []pex.Value{pex.Identifier(file.GetString("::State"))},
	})
	b.Emit(pex.Instruction{
		Op:   pex.OpCallMethod,
		Name: file.GetString("OnEndState"),
		Base: pex.Identifier(file.GetString("self")),
		Dest: noneVar,
		Args: []pex.Value{pex.Integer(1), pex.Identifier(file.GetString("asNewState"))},
	})
	b.Emit(pex.Instruction{
		Op:   pex.OpAssign,
		Dest: pex.Identifier(file.GetString("::State")),
		Args: []pex.Value{pex.Identifier(file.GetString("asNewState"))},
	})
	b.Emit(pex.Instruction{
		Op:   pex.OpCallMethod,
		Name: file.GetString("OnBeginState"),
		Base: pex.Identifier(file.GetString("self")),
		Dest: noneVar,
		Args: []pex.Value{pex.Integer(1), soldState},
	})
}

// translateEmitPanics converts the sentinel panic values expression nodes
// raise during GenerateLoad (fatalUnaryNegate, logicalFatalUnknownUnaryOp)
// into proper diag.Sink calls. Callers that drive emission should defer
// this immediately after obtaining ctx.
func (ctx *Context) translateEmitPanics() {
	if r := recover(); r != nil {
		switch v := r.(type) {
		case fatalUnaryNegate:
			ctx.sink.Fatal(v.loc, "You can only negate integers and floats!")
		case logicalFatalUnknownUnaryOp:
			ctx.sink.LogicalFatal("Unknown operator while generating the pex opcodes!")
		case diag.Fatality:
			panic(v)
		default:
			panic(r)
		}
	}
}
