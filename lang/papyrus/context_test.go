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
	"fmt"
	"strings"
	"testing"

	"github.com/rethesda/Caprica/lang/diag"
	"github.com/rethesda/Caprica/lang/limits"
	"github.com/rethesda/Caprica/lang/types"
)

// fakeFileSystem serves fixed script contents keyed by path, the way a
// driver's real disk-backed FileSystem would, without touching a disk.
type fakeFileSystem struct {
	files map[string][]byte
}

func (fs fakeFileSystem) ReadFile(path string) ([]byte, bool, error) {
	b, ok := fs.files[path]
	return b, ok, nil
}

// fakeParser hands back pre-built *Script values keyed by filename,
// standing in for the external lexer/parser collaborator this core
// leaves out of its own scope.
type fakeParser struct {
	scripts map[string]*Script
}

func (p fakeParser) Parse(filename string, src []byte) (*Script, error) {
	if sc, ok := p.scripts[filename]; ok {
		return sc, nil
	}
	return nil, fmt.Errorf("fakeParser: no script registered for %q", filename)
}

func newTestContext(sink *diag.Sink, parser Parser, fs FileSystem, importDirs []string) *Context {
	return NewContext(sink, limits.DefaultCaps(), Config{ImportDirectories: importDirs}, parser, fs)
}

func TestDuplicateMemberNameIsAnError(t *testing.T) {
	buf := &bytes.Buffer{}
	sink := &diag.Sink{Out: buf}
	ctx := newTestContext(sink, fakeParser{}, fakeFileSystem{}, nil)

	o := NewObject("Quest", Location{})
	o.AddVariable(&Variable{Name: "Health", Type: types.NewInt()})
	o.AddVariable(&Variable{Name: "health", Type: types.NewInt()})

	ctx.preSemantic(o)
	ctx.semantic(o)

	if sink.ErrorCount() != 1 {
		t.Fatalf("ErrorCount(): got %d, want 1 (output: %q)", sink.ErrorCount(), buf.String())
	}
	if !strings.Contains(buf.String(), "variable named 'health'") {
		t.Errorf("output missing duplicate-variable message, got %q", buf.String())
	}
}

func TestInheritedConflictIsAnError(t *testing.T) {
	buf := &bytes.Buffer{}
	sink := &diag.Sink{Out: buf}
	ctx := newTestContext(sink, fakeParser{}, fakeFileSystem{}, nil)

	parent := NewObject("Parent", Location{})
	parent.AddProperty("", &Property{Name: "Health", Type: types.NewInt(), IsAuto: true, AutoVarName: "::Health"})

	child := NewObject("Child", Location{})
	child.ParentClass = types.NewResolvedObject(parent)
	child.AddVariable(&Variable{Name: "Health", Type: types.NewInt(), Location: Location{File: "Child.psc", Line: 5}})

	ctx.semantic(parent)
	ctx.semantic(child)

	if sink.ErrorCount() != 1 {
		t.Fatalf("ErrorCount(): got %d, want 1 (output: %q)", sink.ErrorCount(), buf.String())
	}
	if !strings.Contains(buf.String(), "already defines a property named 'Health'") {
		t.Errorf("output missing inherited-conflict message, got %q", buf.String())
	}
}

func TestUnusedVariableDiagnosticChain(t *testing.T) {
	testCases := []struct {
		name   string
		decl   func() *DeclareStatement
		use    func(ds *DeclareStatement, ctx *Context)
		wantW  int
	}{
		{
			name: "never touched",
			decl: func() *DeclareStatement { return &DeclareStatement{Name: "x", Type: types.NewInt()} },
			use:  func(ds *DeclareStatement, ctx *Context) {},
			wantW: diag.WUnreferencedScriptVariable,
		},
		{
			name: "initialized, never read",
			decl: func() *DeclareStatement {
				return &DeclareStatement{Name: "x", Type: types.NewInt(), Initializer: &LiteralExpression{Kind: LiteralInt, Int: 1}}
			},
			use:   func(ds *DeclareStatement, ctx *Context) {},
			wantW: diag.WScriptVariableInitNeverUsed,
		},
		{
			name: "written but never read",
			decl: func() *DeclareStatement { return &DeclareStatement{Name: "x", Type: types.NewInt()} },
			use: func(ds *DeclareStatement, ctx *Context) {
				assign := &AssignStatement{
					Target: &IdentifierExpression{Name: "x"},
					Value:  &LiteralExpression{Kind: LiteralInt, Int: 0},
				}
				assign.Semantic(ctx)
			},
			wantW: diag.WScriptVariableOnlyWritten,
		},
		{
			name: "read but never written or initialized",
			decl: func() *DeclareStatement { return &DeclareStatement{Name: "x", Type: types.NewInt()} },
			use: func(ds *DeclareStatement, ctx *Context) {
				ds.variable.ReferenceState.IsRead = true
			},
			wantW: diag.WUnwrittenScriptVariable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			sink := &diag.Sink{Out: buf}
			ctx := newTestContext(sink, fakeParser{}, fakeFileSystem{}, nil)

			ds := tc.decl()
			f := &Function{Name: "DoThing", ReturnType: types.NewNone(), Statements: []Statement{ds}}
			ctx.object = &Object{Name: "Quest"}
			ctx.pushLocalVariableScope()
			ds.Semantic(ctx)
			tc.use(ds, ctx)
			ctx.popLocalVariableScope()

			ctx.checkUnusedVariables(f)
			if sink.WarningCount() != 1 {
				t.Fatalf("WarningCount(): got %d, want 1 (output: %q)", sink.WarningCount(), buf.String())
			}
			if !strings.Contains(buf.String(), fmt.Sprintf("W%d", tc.wantW)) {
				t.Errorf("output missing W%d, got %q", tc.wantW, buf.String())
			}
		})
	}
}

func TestMangleLocalNamesRewritesDuplicatesAcrossScopes(t *testing.T) {
	sink := &diag.Sink{Out: &bytes.Buffer{}}
	ctx := newTestContext(sink, fakeParser{}, fakeFileSystem{}, nil)

	inner1 := &DeclareStatement{Name: "i", Type: types.NewInt()}
	inner2 := &DeclareStatement{Name: "i", Type: types.NewInt()}
	f := &Function{
		Name: "Loop",
		Statements: []Statement{
			&IfStatement{Branches: []IfBranch{
				{Condition: &LiteralExpression{Kind: LiteralBool, Bool: true}, Statements: []Statement{inner1}},
				{Statements: []Statement{inner2}},
			}},
		},
	}
	ctx.object = &Object{Name: "Quest"}
	ctx.function = f
	ctx.pushLocalVariableScope()
	for _, s := range f.Statements {
		s.Semantic(ctx)
	}
	ctx.popLocalVariableScope()
	ctx.mangleLocalNames(f)

	if inner1.Name == inner2.Name {
		t.Fatalf("mangleLocalNames left both declarations named %q", inner1.Name)
	}
	if inner1.Name != "i" {
		t.Errorf("first declaration of a reused name should keep its base name: got %q", inner1.Name)
	}
	if inner2.Name != "::mangled_i_0" {
		t.Errorf("second declaration: got %q, want %q", inner2.Name, "::mangled_i_0")
	}
}

func TestResolveTypeFindsStructInSameObject(t *testing.T) {
	sink := &diag.Sink{Out: &bytes.Buffer{}}
	ctx := newTestContext(sink, fakeParser{}, fakeFileSystem{}, nil)

	o := NewObject("Quest", Location{})
	s := &Struct{Name: "Point"}
	o.AddStruct(s)
	ctx.object = o

	got := ctx.resolveType(types.NewUnresolved("Point"))
	if got.Kind() != types.ResolvedStruct || got.ResolvedStruct() != s {
		t.Errorf("resolveType(\"Point\"): got %+v, want the object's own Point struct", got)
	}
}

func TestResolveTypeFindsImportedObject(t *testing.T) {
	npc := NewObject("NPC", Location{})
	importedScript := &Script{Filename: "NPC.psc", Objects: []*Object{npc}}

	parser := fakeParser{scripts: map[string]*Script{"./scripts/NPC.psc": importedScript}}
	fs := fakeFileSystem{files: map[string][]byte{"./scripts/NPC.psc": []byte("Scriptname NPC\n")}}

	sink := &diag.Sink{Out: &bytes.Buffer{}}
	ctx := newTestContext(sink, parser, fs, []string{"./scripts"})
	ctx.object = NewObject("Quest", Location{})

	got := ctx.resolveType(types.NewUnresolved("NPC"))
	if got.Kind() != types.ResolvedObject || got.ResolvedObject() != npc {
		t.Fatalf("resolveType(\"NPC\"): got %+v, want the imported NPC object", got)
	}
}

func TestLoadScriptCachesByFoldedName(t *testing.T) {
	npc := NewObject("NPC", Location{})
	importedScript := &Script{Filename: "NPC.psc", Objects: []*Object{npc}}
	parser := fakeParser{scripts: map[string]*Script{"./scripts/NPC.psc": importedScript}}
	fs := fakeFileSystem{files: map[string][]byte{"./scripts/NPC.psc": []byte("Scriptname NPC\n")}}

	sink := &diag.Sink{Out: &bytes.Buffer{}}
	ctx := newTestContext(sink, parser, fs, []string{"./scripts"})

	first := ctx.loadScript("npc")
	second := ctx.loadScript("NPC")
	if first != second {
		t.Errorf("loadScript: got two different *Script pointers for differently-cased names")
	}
}

func TestAddImportDuplicateWarns(t *testing.T) {
	npc := NewObject("NPC", Location{})
	importedScript := &Script{Filename: "NPC.psc", Objects: []*Object{npc}}
	parser := fakeParser{scripts: map[string]*Script{"./scripts/NPC.psc": importedScript}}
	fs := fakeFileSystem{files: map[string][]byte{"./scripts/NPC.psc": []byte("Scriptname NPC\n")}}

	buf := &bytes.Buffer{}
	sink := &diag.Sink{Out: buf}
	ctx := newTestContext(sink, parser, fs, []string{"./scripts"})

	ctx.AddImport(Location{}, "NPC")
	ctx.AddImport(Location{}, "NPC")

	if sink.WarningCount() != 1 {
		t.Fatalf("WarningCount(): got %d, want 1 (output %q)", sink.WarningCount(), buf.String())
	}
	if !strings.Contains(buf.String(), "Duplicate import of 'NPC'") {
		t.Errorf("output missing duplicate-import message, got %q", buf.String())
	}
}
