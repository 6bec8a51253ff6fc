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
	"bytes"
	"strings"
	"testing"

	"github.com/rethesda/Caprica/lang/diag"
	"github.com/rethesda/Caprica/lang/limits"
	"github.com/rethesda/Caprica/lang/pex"
	"github.com/rethesda/Caprica/lang/types"
)

func newEmitContext(sink *diag.Sink) *Context {
	return NewContext(sink, limits.DefaultCaps(), Config{}, fakeParser{}, fakeFileSystem{})
}

func TestEmitGetStateReturnsStateVariable(t *testing.T) {
	sink := &diag.Sink{Out: &bytes.Buffer{}}
	ctx := newEmitContext(sink)

	o := NewObject("Quest", Location{})
	f := &Function{Name: "GetState", ReturnType: types.NewString()}
	o.RootState().Functions = append(o.RootState().Functions, f)

	sc := &Script{Objects: []*Object{o}}
	file := ctx.Emit(sc)

	pf := file.Objects[0].States[0].Functions[0]
	if len(pf.Body) != 1 || pf.Body[0].Op != pex.OpReturn {
		t.Fatalf("GetState body: got %+v, want a single OpReturn", pf.Body)
	}
	if pf.Body[0].Args[0].Identifier.Text() != "::State" {
		t.Errorf("GetState should return ::State, got %+v", pf.Body[0].Args[0])
	}
}

func TestEmitGotoStateSequence(t *testing.T) {
	sink := &diag.Sink{Out: &bytes.Buffer{}}
	ctx := newEmitContext(sink)

	o := NewObject("Quest", Location{})
	f := &Function{Name: "GotoState", ReturnType: types.NewNone(),
		Parameters: []*Parameter{{Name: "asNewState", Type: types.NewString()}}}
	o.RootState().Functions = append(o.RootState().Functions, f)

	sc := &Script{Objects: []*Object{o}}
	file := ctx.Emit(sc)

	pf := file.Objects[0].States[0].Functions[0]
	wantOps := []pex.Op{pex.OpAssign, pex.OpCallMethod, pex.OpAssign, pex.OpCallMethod}
	if len(pf.Body) != len(wantOps) {
		t.Fatalf("GotoState body: got %d instructions, want %d", len(pf.Body), len(wantOps))
	}
	for i, op := range wantOps {
		if pf.Body[i].Op != op {
			t.Errorf("instruction %d: got op %v, want %v", i, pf.Body[i].Op, op)
		}
	}
	if pf.Body[1].Name.Text() != "OnEndState" {
		t.Errorf("instruction 1 should call OnEndState, got %q", pf.Body[1].Name.Text())
	}
	if pf.Body[3].Name.Text() != "OnBeginState" {
		t.Errorf("instruction 3 should call OnBeginState, got %q", pf.Body[3].Name.Text())
	}
}

func TestEmitObjectVariableCountLimit(t *testing.T) {
	buf := &bytes.Buffer{}
	sink := &diag.Sink{Out: buf}
	ctx := NewContext(sink, limits.Caps{limits.PexObjectVariableCount: 1}, Config{}, fakeParser{}, fakeFileSystem{})

	o := NewObject("Quest", Location{})
	o.AddVariable(&Variable{Name: "A", Type: types.NewInt()})
	o.AddVariable(&Variable{Name: "B", Type: types.NewInt()})

	ctx.Emit(&Script{Objects: []*Object{o}})

	if sink.WarningCount() != 1 {
		t.Fatalf("WarningCount(): got %d, want 1 (output %q)", sink.WarningCount(), buf.String())
	}
	if !strings.Contains(buf.String(), "W2009") {
		t.Errorf("expected W2009 in output, got %q", buf.String())
	}
}

func TestCastExpressionUnnecessaryCastWarns(t *testing.T) {
	buf := &bytes.Buffer{}
	sink := &diag.Sink{Out: buf}
	ctx := newEmitContext(sink)
	ctx.object = NewObject("Quest", Location{})

	cast := &CastExpression{Inner: &LiteralExpression{Kind: LiteralInt, Int: 1}, Target: types.NewInt()}
	cast.Semantic(ctx)

	if sink.WarningCount() != 1 {
		t.Fatalf("WarningCount(): got %d, want 1 (output %q)", sink.WarningCount(), buf.String())
	}
	if !strings.Contains(buf.String(), "W4001") {
		t.Errorf("expected W4001 in output, got %q", buf.String())
	}
}

func TestUnaryNegateOnStringIsFatal(t *testing.T) {
	sink := &diag.Sink{Out: &bytes.Buffer{}}
	ctx := newEmitContext(sink)

	e := &UnaryOpExpression{Operator: UnaryNegate, Inner: &LiteralExpression{Kind: LiteralString, Str: "x"}}
	e.Semantic(ctx)

	run := func() (err error) {
		defer diag.Recover(&err)
		defer ctx.translateEmitPanics()
		file := &pex.File{}
		b := pex.NewFunctionBuilder(file, pex.Location{})
		e.GenerateLoad(file, b)
		return nil
	}
	err := run()
	if err == nil {
		t.Fatal("expected a Fatal from negating a string")
	}
	if !strings.Contains(err.Error(), "negate") {
		t.Errorf("recovered error: got %q, want it to mention negation", err.Error())
	}
}
