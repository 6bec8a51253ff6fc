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

package papyrus

import (
	"github.com/rethesda/Caprica/lang/diag"
	"github.com/rethesda/Caprica/lang/pex"
	"github.com/rethesda/Caprica/lang/types"
)

// Expression is the closed AST family for Papyrus expressions.
type Expression interface {
	Semantic(ctx *Context)
	GenerateLoad(file *pex.File, b *pex.FunctionBuilder) pex.Value
	ResultType() types.Type
	Loc() Location
}

// LiteralKind tags a LiteralExpression's value.
type LiteralKind int

const (
	LiteralNone LiteralKind = iota
	LiteralBool
	LiteralInt
	LiteralFloat
	LiteralString
)

// LiteralExpression is a constant literal.
type LiteralExpression struct {
	Kind     LiteralKind
	Bool     bool
	Int      int32
	Float    float32
	Str      string
	Location Location

	resultType types.Type
}

func (e *LiteralExpression) Loc() Location { return e.Location }

func (e *LiteralExpression) Semantic(ctx *Context) {
	switch e.Kind {
	case LiteralNone:
		e.resultType = types.NewNone()
	case LiteralBool:
		e.resultType = types.NewBool()
	case LiteralInt:
		e.resultType = types.NewInt()
	case LiteralFloat:
		e.resultType = types.NewFloat()
	case LiteralString:
		e.resultType = types.NewString()
	}
}

func (e *LiteralExpression) ResultType() types.Type { return e.resultType }

func (e *LiteralExpression) GenerateLoad(file *pex.File, b *pex.FunctionBuilder) pex.Value {
	switch e.Kind {
	case LiteralNone:
		return pex.None()
	case LiteralBool:
		return pex.Bool(e.Bool)
	case LiteralInt:
		return pex.Integer(e.Int)
	case LiteralFloat:
		return pex.Float(e.Float)
	case LiteralString:
		return pex.StringValue(file.GetString(e.Str))
	}
	return pex.None()
}

// IdentifierExpression is a bare name reference, resolved during Semantic
// into a concrete Identifier.
type IdentifierExpression struct {
	Name     string
	Location Location

	Resolved   Identifier
	resultType types.Type
}

func (e *IdentifierExpression) Loc() Location { return e.Location }

func (e *IdentifierExpression) Semantic(ctx *Context) {
	e.resolve(ctx)
	if e.Resolved.Kind == IdentLocalVariable {
		e.Resolved.LocalVariable.ReferenceState.IsRead = true
	}
}

// semanticAsAssignTarget resolves e the same way Semantic does, but without
// marking a resolved local as read: storing to a variable is a write, not a
// use of its prior value, so it must not satisfy the "variable was read"
// branch of the unused-variable diagnostics chain.
func (e *IdentifierExpression) semanticAsAssignTarget(ctx *Context) {
	e.resolve(ctx)
}

func (e *IdentifierExpression) resolve(ctx *Context) {
	e.Resolved = ctx.tryResolveIdentifier(unresolvedIdentifier(e.Name))
	switch e.Resolved.Kind {
	case IdentLocalVariable:
		e.resultType = e.Resolved.LocalVariable.Type
	case IdentParameter:
		e.resultType = e.Resolved.Parameter.Type
	case IdentProperty:
		e.resultType = e.Resolved.Property.Type
	case IdentStructMember:
		e.resultType = e.Resolved.StructMember.Type
	case IdentUnresolved:
		ctx.sink.Error(e.Location, "Unresolved identifier '%s'!", e.Name)
		e.resultType = types.NewNone()
	}
}

func (e *IdentifierExpression) ResultType() types.Type { return e.resultType }

func (e *IdentifierExpression) GenerateLoad(file *pex.File, b *pex.FunctionBuilder) pex.Value {
	switch e.Resolved.Kind {
	case IdentLocalVariable:
		return pex.Identifier(file.GetString(e.Resolved.LocalVariable.Name))
	case IdentParameter:
		return pex.Identifier(file.GetString(e.Resolved.Parameter.Name))
	case IdentProperty:
		dest := b.AllocTemp(e.resultType.String())
		b.Emit(pex.Instruction{Op: pex.OpPropGet, Dest: dest, Name: file.GetString(e.Resolved.Property.Name)})
		return dest
	default:
		return pex.Identifier(file.GetString(e.Name))
	}
}

// UnaryOperator enumerates the Not/Negate unary operators.
type UnaryOperator int

const (
	UnaryNone UnaryOperator = iota
	UnaryNot
	UnaryNegate
)

// UnaryOpExpression is "-x" or "!x". Lowering follows
// original_source/Caprica/papyrus/expressions/PapyrusUnaryOpExpression.h
// exactly: Negate picks fneg/ineg by the inner type, anything else is
// fatal; Not always emits `not`.
type UnaryOpExpression struct {
	Operator UnaryOperator
	Inner    Expression
	Location Location

	resultType types.Type
}

func (e *UnaryOpExpression) Loc() Location { return e.Location }

func (e *UnaryOpExpression) Semantic(ctx *Context) {
	e.Inner.Semantic(ctx)
	e.resultType = e.Inner.ResultType()
}

func (e *UnaryOpExpression) ResultType() types.Type { return e.resultType }

func (e *UnaryOpExpression) GenerateLoad(file *pex.File, b *pex.FunctionBuilder) pex.Value {
	iVal := e.Inner.GenerateLoad(file, b)
	dest := b.AllocTemp(e.resultType.String())
	b.AdvanceLine(e.Location)
	switch e.Operator {
	case UnaryNegate:
		switch e.Inner.ResultType().Kind() {
		case types.Float:
			b.Emit(pex.Instruction{Op: pex.OpFNeg, Dest: dest, Args: []pex.Value{iVal}})
		case types.Int:
			b.Emit(pex.Instruction{Op: pex.OpINeg, Dest: dest, Args: []pex.Value{iVal}})
		default:
			panic(fatalUnaryNegate{loc: e.Location})
		}
	case UnaryNot:
		b.Emit(pex.Instruction{Op: pex.OpNot, Dest: dest, Args: []pex.Value{iVal}})
	default:
		panic(logicalFatalUnknownUnaryOp{})
	}
	return dest
}

// fatalUnaryNegate/logicalFatalUnknownUnaryOp are sentinel panic values
// the Context's emission entry point translates into a diag.Sink.Fatal/
// LogicalFatal call, so that expression nodes need not hold a *diag.Sink
// themselves just to report this one failure mode during GenerateLoad
// (which, unlike Semantic, is not passed a *Context).
type fatalUnaryNegate struct{ loc Location }
type logicalFatalUnknownUnaryOp struct{}

// BinaryOperator enumerates Papyrus's binary operators.
type BinaryOperator int

const (
	BinAdd BinaryOperator = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinAnd
	BinOr
)

// BinaryOpExpression is "lhs OP rhs".
type BinaryOpExpression struct {
	Operator BinaryOperator
	LHS, RHS Expression
	Location Location

	resultType types.Type
}

func (e *BinaryOpExpression) Loc() Location { return e.Location }

func (e *BinaryOpExpression) Semantic(ctx *Context) {
	e.LHS.Semantic(ctx)
	e.RHS.Semantic(ctx)
	switch e.Operator {
	case BinEq, BinNe, BinLt, BinLe, BinGt, BinGe, BinAnd, BinOr:
		e.resultType = types.NewBool()
	default:
		e.resultType = e.LHS.ResultType()
	}
}

func (e *BinaryOpExpression) ResultType() types.Type { return e.resultType }

var arithOps = map[BinaryOperator]struct{ i, f pex.Op }{
	BinAdd: {pex.OpIAdd, pex.OpFAdd},
	BinSub: {pex.OpISub, pex.OpFSub},
	BinMul: {pex.OpIMul, pex.OpFMul},
	BinDiv: {pex.OpIDiv, pex.OpFDiv},
	BinMod: {pex.OpIMod, pex.OpIMod},
}

var cmpOps = map[BinaryOperator]pex.Op{
	BinEq: pex.OpCmpEq,
	BinNe: pex.OpCmpNe,
	BinLt: pex.OpCmpLt,
	BinLe: pex.OpCmpLe,
	BinGt: pex.OpCmpGt,
	BinGe: pex.OpCmpGe,
}

func (e *BinaryOpExpression) GenerateLoad(file *pex.File, b *pex.FunctionBuilder) pex.Value {
	lVal := e.LHS.GenerateLoad(file, b)
	rVal := e.RHS.GenerateLoad(file, b)
	dest := b.AllocTemp(e.resultType.String())
	b.AdvanceLine(e.Location)
	if ops, ok := arithOps[e.Operator]; ok {
		op := ops.i
		if e.LHS.ResultType().Kind() == types.Float {
			op = ops.f
		}
		b.Emit(pex.Instruction{Op: op, Dest: dest, Args: []pex.Value{lVal, rVal}})
		return dest
	}
	if op, ok := cmpOps[e.Operator]; ok {
		b.Emit(pex.Instruction{Op: op, Dest: dest, Args: []pex.Value{lVal, rVal}})
		return dest
	}
	panic(logicalFatalUnknownUnaryOp{})
}

// CastExpression is an explicit "expr as Type".
type CastExpression struct {
	Inner    Expression
	Target   types.Type
	Location Location
}

func (e *CastExpression) Loc() Location { return e.Location }

func (e *CastExpression) Semantic(ctx *Context) {
	e.Target = ctx.resolveType(e.Target)
	e.Inner.Semantic(ctx)
	if e.Inner.ResultType().Equal(e.Target) {
		ctx.sink.Warning(diag.WUnnecessaryCast, e.Location, diag.Template(diag.WUnnecessaryCast),
			e.Inner.ResultType().String(), e.Target.String())
	}
}

func (e *CastExpression) ResultType() types.Type { return e.Target }

func (e *CastExpression) GenerateLoad(file *pex.File, b *pex.FunctionBuilder) pex.Value {
	iVal := e.Inner.GenerateLoad(file, b)
	dest := b.AllocTemp(e.Target.String())
	b.Emit(pex.Instruction{Op: pex.OpCast, Dest: dest, Args: []pex.Value{iVal}})
	return dest
}

// FunctionCallExpression is "base.Name(args)" or a bare "Name(args)" when
// Base is nil (resolveFunctionIdentifier).
type FunctionCallExpression struct {
	Base     Expression // nil for an unqualified call
	Name     string
	Args     []Expression
	Location Location

	Resolved   Identifier
	resultType types.Type
}

func (e *FunctionCallExpression) Loc() Location { return e.Location }

func (e *FunctionCallExpression) Semantic(ctx *Context) {
	baseType := types.NewNone()
	if e.Base != nil {
		e.Base.Semantic(ctx)
		baseType = e.Base.ResultType()
	}
	for _, a := range e.Args {
		a.Semantic(ctx)
	}
	e.Resolved = ctx.resolveFunctionIdentifier(baseType, unresolvedIdentifier(e.Name))
	switch e.Resolved.Kind {
	case IdentFunction:
		e.resultType = e.Resolved.Function.ReturnType
	case IdentBuiltinArrayFunction:
		e.resultType = resultTypeOfArrayFunc(e.Resolved.ArrayFunctionKind, e.Resolved.ArrayElementType)
	default:
		e.resultType = types.NewNone()
	}
}

func resultTypeOfArrayFunc(kind ArrayFunctionKind, elem types.Type) types.Type {
	switch kind {
	case ArrayFind, ArrayFindStruct, ArrayRFind, ArrayRFindStruct:
		return types.NewInt()
	default:
		return types.NewNone()
	}
}

func (e *FunctionCallExpression) ResultType() types.Type { return e.resultType }

var arrayOpcode = map[ArrayFunctionKind]pex.Op{
	ArrayFind:       pex.OpArrayFind,
	ArrayFindStruct: pex.OpArrayFindStruct,
	ArrayRFind:      pex.OpArrayRFind,
	ArrayRFindStruct: pex.OpArrayRFindStruct,
	ArrayAdd:        pex.OpArrayAdd,
	ArrayClear:      pex.OpArrayClear,
	ArrayInsert:     pex.OpArrayInsert,
	ArrayRemove:     pex.OpArrayRemove,
	ArrayRemoveLast: pex.OpArrayRemoveLast,
}

func (e *FunctionCallExpression) GenerateLoad(file *pex.File, b *pex.FunctionBuilder) pex.Value {
	args := make([]pex.Value, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.GenerateLoad(file, b)
	}
	dest := b.AllocTemp(e.resultType.String())
	switch e.Resolved.Kind {
	case IdentBuiltinArrayFunction:
		base := e.Base.GenerateLoad(file, b)
		b.Emit(pex.Instruction{Op: arrayOpcode[e.Resolved.ArrayFunctionKind], Dest: dest, Base: base, Args: args})
		return dest
	case IdentFunction:
		base := pex.Identifier(file.GetString("self"))
		if e.Base != nil {
			base = e.Base.GenerateLoad(file, b)
		}
		none := b.GetNoneLocal(e.Location)
		if e.Resolved.Function != nil && e.Resolved.Function.IsGlobal {
			b.Emit(pex.Instruction{Op: pex.OpCallStatic, Dest: dest, Name: file.GetString(e.Name), Base: none, Args: args})
		} else {
			b.Emit(pex.Instruction{Op: pex.OpCallMethod, Dest: dest, Name: file.GetString(e.Name), Base: base, Args: args})
		}
		return dest
	}
	return dest
}
