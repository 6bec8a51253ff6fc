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
	"github.com/rethesda/Caprica/lang/pex"
	"github.com/rethesda/Caprica/lang/types"
)

// Statement is the closed AST family for Papyrus statements, each able to
// resolve/validate itself against a Context and lower itself to PEX
// opcodes via a pex.FunctionBuilder.
type Statement interface {
	Semantic(ctx *Context)
	BuildPex(file *pex.File, b *pex.FunctionBuilder)
	Loc() Location
}

// DeclareStatement declares a local variable, e.g. "Int x = 1". Name is
// mutable: the post-semantic2 mangling pass (Context.mangleLocalNames)
// rewrites it in place when the same base name is reused across distinct
// scopes.
type DeclareStatement struct {
	Name        string
	Type        types.Type
	Initializer Expression // nil when there is no initializer
	Location    Location

	variable *Variable // bound into the identifier scope during Semantic
}

func (s *DeclareStatement) Loc() Location { return s.Location }

func (s *DeclareStatement) Semantic(ctx *Context) {
	s.Type = ctx.resolveType(s.Type)
	v := &Variable{Name: s.Name, Type: s.Type, Location: s.Location}
	if s.Initializer != nil {
		s.Initializer.Semantic(ctx)
		v.ReferenceState.IsInitialized = true
	}
	s.variable = v
	ctx.declareLocal(s)
}

func (s *DeclareStatement) BuildPex(file *pex.File, b *pex.FunctionBuilder) {
	b.AllocateLocal(s.Name, s.Type.String())
	if s.Initializer != nil {
		val := s.Initializer.GenerateLoad(file, b)
		b.Emit(pex.Instruction{Op: pex.OpAssign, Dest: pex.Identifier(file.GetString(s.Name)), Args: []pex.Value{val}})
	}
}

// AssignStatement is "lhs = rhs" (or a compound-assign desugared to it by
// the parser, out of this core's scope).
type AssignStatement struct {
	Target   Expression
	Value    Expression
	Location Location
}

func (s *AssignStatement) Loc() Location { return s.Location }

func (s *AssignStatement) Semantic(ctx *Context) {
	id, ok := s.Target.(*IdentifierExpression)
	if ok {
		id.semanticAsAssignTarget(ctx)
	} else {
		s.Target.Semantic(ctx)
	}
	s.Value.Semantic(ctx)
	if ok {
		ctx.markWritten(id.Resolved)
	}
}

func (s *AssignStatement) BuildPex(file *pex.File, b *pex.FunctionBuilder) {
	val := s.Value.GenerateLoad(file, b)
	dest := s.Target.GenerateLoad(file, b)
	b.Emit(pex.Instruction{Op: pex.OpAssign, Dest: dest, Args: []pex.Value{val}})
}

// ExpressionStatement is a bare expression used for its side effect (a
// function call statement).
type ExpressionStatement struct {
	Expr     Expression
	Location Location
}

func (s *ExpressionStatement) Loc() Location { return s.Location }

func (s *ExpressionStatement) Semantic(ctx *Context) { s.Expr.Semantic(ctx) }

func (s *ExpressionStatement) BuildPex(file *pex.File, b *pex.FunctionBuilder) {
	s.Expr.GenerateLoad(file, b)
}

// ReturnStatement is "return" or "return <expr>".
type ReturnStatement struct {
	Value    Expression // nil for a bare return
	Location Location
}

func (s *ReturnStatement) Loc() Location { return s.Location }

func (s *ReturnStatement) Semantic(ctx *Context) {
	if s.Value != nil {
		s.Value.Semantic(ctx)
	}
}

func (s *ReturnStatement) BuildPex(file *pex.File, b *pex.FunctionBuilder) {
	if s.Value == nil {
		b.Emit(pex.Instruction{Op: pex.OpReturn, Args: []pex.Value{pex.None()}})
		return
	}
	val := s.Value.GenerateLoad(file, b)
	b.Emit(pex.Instruction{Op: pex.OpReturn, Args: []pex.Value{val}})
}

// IfStatement is "if <cond> ... elseif ... else ... EndIf".
type IfBranch struct {
	Condition  Expression // nil for the trailing else branch
	Statements []Statement
}

type IfStatement struct {
	Branches []IfBranch
	Location Location
}

func (s *IfStatement) Loc() Location { return s.Location }

func (s *IfStatement) Semantic(ctx *Context) {
	for _, br := range s.Branches {
		if br.Condition != nil {
			br.Condition.Semantic(ctx)
		}
		ctx.pushLocalVariableScope()
		for _, st := range br.Statements {
			st.Semantic(ctx)
		}
		ctx.popLocalVariableScope()
	}
}

func (s *IfStatement) BuildPex(file *pex.File, b *pex.FunctionBuilder) {
	for _, br := range s.Branches {
		if br.Condition != nil {
			cond := br.Condition.GenerateLoad(file, b)
			b.Emit(pex.Instruction{Op: pex.OpJmpF, Args: []pex.Value{cond}})
		}
		for _, st := range br.Statements {
			st.BuildPex(file, b)
		}
	}
}

// WhileStatement is "while <cond> ... EndWhile".
type WhileStatement struct {
	Condition  Expression
	Statements []Statement
	Location   Location
}

func (s *WhileStatement) Loc() Location { return s.Location }

func (s *WhileStatement) Semantic(ctx *Context) {
	s.Condition.Semantic(ctx)
	ctx.pushLocalVariableScope()
	for _, st := range s.Statements {
		st.Semantic(ctx)
	}
	ctx.popLocalVariableScope()
}

func (s *WhileStatement) BuildPex(file *pex.File, b *pex.FunctionBuilder) {
	cond := s.Condition.GenerateLoad(file, b)
	b.Emit(pex.Instruction{Op: pex.OpJmpF, Args: []pex.Value{cond}})
	for _, st := range s.Statements {
		st.BuildPex(file, b)
	}
	b.Emit(pex.Instruction{Op: pex.OpJmp})
}

// declareStatements collects every DeclareStatement reachable from a
// function's statement tree, in program order, for the post-semantic2
// mangling pass.
func declareStatements(stmts []Statement) []*DeclareStatement {
	var out []*DeclareStatement
	var walk func([]Statement)
	walk = func(ss []Statement) {
		for _, s := range ss {
			switch st := s.(type) {
			case *DeclareStatement:
				out = append(out, st)
			case *IfStatement:
				for _, br := range st.Branches {
					walk(br.Statements)
				}
			case *WhileStatement:
				walk(st.Statements)
			}
		}
	}
	walk(stmts)
	return out
}
