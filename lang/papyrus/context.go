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
	"fmt"
	"strings"

	"github.com/rethesda/Caprica/internal/ident"
	"github.com/rethesda/Caprica/lang/diag"
	"github.com/rethesda/Caprica/lang/limits"
	"github.com/rethesda/Caprica/lang/source"
	"github.com/rethesda/Caprica/lang/types"
)

// Parser is the external AST-provider collaborator: given the
// contents of a .psc file, it produces a *Script. Lexing/parsing is
// deliberately out of this core's scope; the core only ever calls this
// interface.
type Parser interface {
	Parse(filename string, src []byte) (*Script, error)
}

// FileSystem is the external collaborator that probes import directories
// for a script's source file.
type FileSystem interface {
	// ReadFile returns the file's contents and ok=true if path exists.
	ReadFile(path string) (contents []byte, ok bool, err error)
}

// Config is the resolution context's external configuration.
type Config struct {
	ImportDirectories              []string
	EnableDecompiledStructNameRefs bool
}

// Context is the multi-pass symbol resolver: type resolution, identifier
// resolution, the import graph, and on-demand script loading with caching.
type Context struct {
	sink   *diag.Sink
	caps   limits.Caps
	config Config
	parser Parser
	fs     FileSystem

	// loadedScripts is shared by reference with any sub-Context created to
	// resolve an imported script step 3 and
	// SPEC_FULL.md's note on not merging the registry back after the fact.
	loadedScripts map[string]*Script

	importedScripts []*Script
	identifierStack []map[string]Identifier

	object   *Object
	function *Function

	resolvingReferenceScript bool
	isExternalResolution     bool
}

// NewContext constructs a top-level resolution context with a fresh
// loaded-scripts registry.
func NewContext(sink *diag.Sink, caps limits.Caps, config Config, parser Parser, fs FileSystem) *Context {
	return &Context{
		sink:          sink,
		caps:          caps,
		config:        config,
		parser:        parser,
		fs:            fs,
		loadedScripts: map[string]*Script{},
	}
}

func (ctx *Context) subContext() *Context {
	return &Context{
		sink:                 ctx.sink,
		caps:                 ctx.caps,
		config:               ctx.config,
		parser:               ctx.parser,
		fs:                   ctx.fs,
		loadedScripts:        ctx.loadedScripts,
		isExternalResolution: true,
	}
}

// Sink exposes the diagnostics sink so a driver can call ExitIfErrors after
// resolving a batch of scripts.
func (ctx *Context) Sink() *diag.Sink { return ctx.sink }

// --- import and script loading ---------------------------

// AddImport resolves and registers an `Import <name>` declaration.
func (ctx *Context) AddImport(loc Location, name string) {
	for _, sc := range ctx.importedScripts {
		if ident.Equal(sc.Name(), name) {
			ctx.sink.Warning(diag.WDuplicateImport, loc, diag.Template(diag.WDuplicateImport), name)
			return
		}
	}
	sc := ctx.loadScript(name)
	if sc == nil {
		ctx.sink.Fatal(loc, "Failed to find imported script '%s.psc'!", name)
	}
	ctx.importedScripts = append(ctx.importedScripts, sc)
}

// loadScript implements four-step algorithm. It is
// idempotent by construction: the loadedScripts cache returns the same
// *Script pointer for any fixed configuration, which is also what breaks
// import cycles.
func (ctx *Context) loadScript(name string) *Script {
	key := ident.Fold(name)
	if sc, ok := ctx.loadedScripts[key]; ok {
		return sc
	}
	for _, dir := range ctx.config.ImportDirectories {
		path := dir + "/" + name + ".psc"
		contents, ok, err := ctx.fs.ReadFile(path)
		if err != nil || !ok {
			continue
		}
		sc, err := ctx.parser.Parse(path, contents)
		if err != nil {
			ctx.sink.Fatal(source.Location{File: path}, "Failed to parse imported script '%s.psc': %v", name, err)
		}
		// Register before running semantic passes: this is the cycle guard.
		ctx.loadedScripts[ident.Fold(sc.Name())] = sc
		sub := ctx.subContext()
		sub.ResolveScript(sc)
		return sc
	}
	return nil
}

// ResolveScript runs the three semantic passes over every object in sc, in
// the order later passes depend on: parent classes before members, then
// member types before function bodies.
func (ctx *Context) ResolveScript(sc *Script) {
	for _, o := range sc.Objects {
		ctx.preSemantic(o)
	}
	for _, o := range sc.Objects {
		ctx.semantic(o)
	}
	for _, o := range sc.Objects {
		ctx.semantic2(o)
	}
}

// --- type resolution --------------------------------------

func (ctx *Context) resolveType(t types.Type) types.Type {
	if t.Kind() != types.Unresolved {
		if t.Kind() == types.Array {
			elem := ctx.resolveType(t.ElementType())
			return types.NewArray(elem)
		}
		return t
	}

	name := t.Name()
	if ctx.config.EnableDecompiledStructNameRefs {
		if pos := strings.IndexByte(name, '#'); pos >= 0 {
			scName, strucName := name[:pos], name[pos+1:]
			sc := ctx.loadScript(scName)
			if sc == nil {
				ctx.sink.Fatal(Location{}, "Unable to find script '%s' referenced by '%s'!", scName, name)
			}
			for _, obj := range sc.Objects {
				if s := obj.structNamed(strucName); s != nil {
					return types.NewResolvedStruct(s)
				}
			}
			ctx.sink.Fatal(Location{}, "Unable to resolve a struct named '%s' in script '%s'!", strucName, scName)
		}
	}

	if ctx.object != nil {
		if s := ctx.object.structNamed(name); s != nil {
			return types.NewResolvedStruct(s)
		}
		if ident.Equal(ctx.object.Name, name) {
			return types.NewResolvedObject(ctx.object)
		}
	}

	for _, sc := range ctx.importedScripts {
		for _, obj := range sc.Objects {
			if s := obj.structNamed(name); s != nil {
				return types.NewResolvedStruct(s)
			}
		}
	}

	if sc := ctx.loadScript(name); sc != nil {
		for _, obj := range sc.Objects {
			if ident.Equal(obj.Name, name) {
				return types.NewResolvedObject(obj)
			}
		}
	}

	ctx.sink.Fatal(Location{}, "Unable to resolve type '%s'!", name)
	return t // unreachable; Fatal panics
}

// --- identifier resolution --------------------------------

func (ctx *Context) pushLocalVariableScope() {
	ctx.identifierStack = append(ctx.identifierStack, map[string]Identifier{})
}

func (ctx *Context) popLocalVariableScope() {
	ctx.identifierStack = ctx.identifierStack[:len(ctx.identifierStack)-1]
}

func (ctx *Context) declareLocal(s *DeclareStatement) {
	id := Identifier{Kind: IdentLocalVariable, LocalVariable: s.variable}
	ctx.identifierStack[len(ctx.identifierStack)-1][ident.Fold(s.Name)] = id
}

func (ctx *Context) markWritten(id Identifier) {
	switch id.Kind {
	case IdentLocalVariable:
		id.LocalVariable.ReferenceState.IsWritten = true
	}
}

func (ctx *Context) tryResolveIdentifier(in Identifier) Identifier {
	if !in.isUnresolved() {
		return in
	}
	key := ident.Fold(in.Name)
	for i := len(ctx.identifierStack) - 1; i >= 0; i-- {
		if id, ok := ctx.identifierStack[i][key]; ok {
			return id
		}
	}
	if ctx.object != nil && ctx.object.ParentClass.Kind() != types.None {
		return ctx.tryResolveMemberIdentifier(ctx.object.ParentClass, in)
	}
	return in
}

func (ctx *Context) tryResolveMemberIdentifier(baseType types.Type, in Identifier) Identifier {
	if !in.isUnresolved() {
		return in
	}
	switch baseType.Kind() {
	case types.ResolvedStruct:
		s := baseType.ResolvedStruct().(*Struct)
		if m := s.memberNamed(in.Name); m != nil {
			return Identifier{Kind: IdentStructMember, StructMember: m}
		}
	case types.ResolvedObject:
		o := baseType.ResolvedObject().(*Object)
		if p := o.propertyNamed(in.Name); p != nil {
			return Identifier{Kind: IdentProperty, Property: p}
		}
		if o.ParentClass.Kind() != types.None {
			return ctx.tryResolveMemberIdentifier(o.ParentClass, in)
		}
	}
	return in
}

// resolveMemberIdentifier wraps tryResolveMemberIdentifier and raises an
// error (not a fatal) on failure propagation policy.
func (ctx *Context) resolveMemberIdentifier(loc Location, baseType types.Type, in Identifier) Identifier {
	id := ctx.tryResolveMemberIdentifier(baseType, in)
	if id.isUnresolved() {
		ctx.sink.Error(loc, "Unresolved identifier '%s'!", in.Name)
	}
	return id
}

func (ctx *Context) resolveFunctionIdentifier(baseType types.Type, in Identifier) Identifier {
	if !in.isUnresolved() {
		return in
	}
	switch baseType.Kind() {
	case types.None:
		if ctx.object != nil {
			for _, st := range ctx.object.States {
				if f := st.functionNamed(in.Name); f != nil {
					return Identifier{Kind: IdentFunction, Function: f}
				}
			}
		}
		for _, sc := range ctx.importedScripts {
			for _, obj := range sc.Objects {
				for _, st := range obj.States {
					if f := st.functionNamed(in.Name); f != nil && f.IsGlobal {
						return Identifier{Kind: IdentFunction, Function: f}
					}
				}
			}
		}
	case types.Array:
		return ctx.resolveArrayFunctionIdentifier(baseType, in)
	case types.ResolvedObject:
		o := baseType.ResolvedObject().(*Object)
		for _, st := range o.States {
			if f := st.functionNamed(in.Name); f != nil {
				return Identifier{Kind: IdentFunction, Function: f}
			}
		}
		if o.ParentClass.Kind() != types.None {
			return ctx.resolveFunctionIdentifier(o.ParentClass, in)
		}
	}
	ctx.sink.LogicalFatal("Unresolved function name '%s'!", in.Name)
	return in // unreachable
}

func (ctx *Context) resolveArrayFunctionIdentifier(baseType types.Type, in Identifier) Identifier {
	entry, ok := arrayFunctionNames[strings.ToLower(in.Name)]
	if !ok {
		ctx.sink.Fatal(Location{}, "'%s' is not a valid array function!", in.Name)
	}
	elem := baseType.ElementType()
	kind := entry.plain
	if elem.Kind() == types.ResolvedStruct {
		kind = entry.onStruct
	}
	return Identifier{Kind: IdentBuiltinArrayFunction, ArrayFunctionKind: kind, ArrayElementType: elem}
}

// --- semantic passes --------------------------------------

func (ctx *Context) preSemantic(o *Object) {
	ctx.object = o
	if o.ParentClass.Kind() != types.None {
		o.ParentClass = ctx.resolveType(o.ParentClass)
	}
	ctx.object = nil
}

func (ctx *Context) semantic(o *Object) {
	ctx.object = o
	defer func() { ctx.object = nil }()

	ensureNamesAreUnique(ctx.sink, structNames(o), "struct")
	for _, s := range o.Structs {
		ensureNamesAreUnique(ctx.sink, memberNames(s), "member")
		for _, m := range s.Members {
			m.Type = ctx.resolveType(m.Type)
		}
	}

	// Variable default-value expressions (not modeled as AST nodes here,
	// since script-level variables carry only a literal default) are the
	// "concrete contents" a reference script's variables drop; the type
	// signature itself always survives.
	ensureNamesAreUnique(ctx.sink, variableNames(o), "variable")
	for _, v := range o.Variables {
		v.Type = ctx.resolveType(v.Type)
	}

	ensureNamesAreUnique(ctx.sink, propertyGroupNames(o), "property group")
	for _, g := range o.PropertyGroups {
		ensureNamesAreUnique(ctx.sink, propertyNames(g), "property")
		for _, p := range g.Properties {
			p.Type = ctx.resolveType(p.Type)
		}
	}

	ensureNamesAreUnique(ctx.sink, stateNames(o), "state")
	for _, st := range o.States {
		ensureNamesAreUnique(ctx.sink, functionNames(st), "function")
		for _, f := range st.Functions {
			ctx.function = f
			f.ReturnType = ctx.resolveType(f.ReturnType)
			ensureNamesAreUnique(ctx.sink, parameterNames(f), "parameter")
			for _, p := range f.Parameters {
				p.Type = ctx.resolveType(p.Type)
			}
			if ctx.resolvingReferenceScript {
				f.Statements = nil
			}
			ctx.function = nil
		}
	}

	checkInheritedConflicts(ctx.sink, o)
}

func (ctx *Context) semantic2(o *Object) {
	ctx.object = o
	defer func() { ctx.object = nil }()
	for _, st := range o.States {
		for _, f := range st.Functions {
			ctx.function = f
			ctx.pushLocalVariableScope()
			for _, s := range f.Statements {
				s.Semantic(ctx)
			}
			ctx.popLocalVariableScope()
			ctx.mangleLocalNames(f)
			ctx.checkUnusedVariables(f)
			ctx.function = nil
		}
	}
}

// mangleLocalNames implements post-walk: any DeclareStatement
// name reused across distinct scopes is rewritten to "::mangled_<base>_<i>".
func (ctx *Context) mangleLocalNames(f *Function) {
	seen := map[string]bool{}
	for _, d := range declareStatements(f.Statements) {
		base := d.Name
		i := 0
		for seen[ident.Fold(d.Name)] {
			d.Name = fmt.Sprintf("::mangled_%s_%d", base, i)
			i++
		}
		seen[ident.Fold(d.Name)] = true
	}
}

// checkUnusedVariables implements the variable-reference diagnostics chain,
// in precedence order, for every local declared in f.
func (ctx *Context) checkUnusedVariables(f *Function) {
	for _, d := range declareStatements(f.Statements) {
		rs := d.variable.ReferenceState
		switch {
		case !rs.IsRead && !rs.IsInitialized && !rs.IsWritten:
			ctx.sink.Warning(diag.WUnreferencedScriptVariable, d.Location, diag.Template(diag.WUnreferencedScriptVariable), d.Name)
		case !rs.IsRead && !rs.IsInitialized && rs.IsWritten:
			ctx.sink.Warning(diag.WScriptVariableOnlyWritten, d.Location, diag.Template(diag.WScriptVariableOnlyWritten), d.Name)
		case !rs.IsRead && rs.IsInitialized:
			ctx.sink.Warning(diag.WScriptVariableInitNeverUsed, d.Location, diag.Template(diag.WScriptVariableInitNeverUsed), d.Name)
		case rs.IsRead && !rs.IsInitialized && !rs.IsWritten:
			ctx.sink.Warning(diag.WUnwrittenScriptVariable, d.Location, diag.Template(diag.WUnwrittenScriptVariable), d.Name)
		}
	}
}

// --- name collections for ensureNamesAreUnique -----------------------------

type named struct {
	name string
	loc  Location
}

func structNames(o *Object) []named {
	out := make([]named, len(o.Structs))
	for i, s := range o.Structs {
		out[i] = named{s.Name, s.Location}
	}
	return out
}
func memberNames(s *Struct) []named {
	out := make([]named, len(s.Members))
	for i, m := range s.Members {
		out[i] = named{m.Name, m.Location}
	}
	return out
}
func variableNames(o *Object) []named {
	out := make([]named, len(o.Variables))
	for i, v := range o.Variables {
		out[i] = named{v.Name, v.Location}
	}
	return out
}
func propertyGroupNames(o *Object) []named {
	out := make([]named, len(o.PropertyGroups))
	for i, g := range o.PropertyGroups {
		out[i] = named{g.Name, Location{}}
	}
	return out
}
func propertyNames(g *PropertyGroup) []named {
	out := make([]named, len(g.Properties))
	for i, p := range g.Properties {
		out[i] = named{p.Name, p.Location}
	}
	return out
}
func stateNames(o *Object) []named {
	out := make([]named, len(o.States))
	for i, s := range o.States {
		out[i] = named{s.Name, Location{}}
	}
	return out
}
func functionNames(s *State) []named {
	out := make([]named, len(s.Functions))
	for i, f := range s.Functions {
		out[i] = named{f.Name, f.Location}
	}
	return out
}
func parameterNames(f *Function) []named {
	out := make([]named, len(f.Parameters))
	for i, p := range f.Parameters {
		out[i] = named{p.Name, p.Location}
	}
	return out
}

// ensureNamesAreUnique enforces pairwise-distinct-case-
// insensitively invariant for one member list, reporting every duplicate
// after the first occurrence as an error.
func ensureNamesAreUnique(sink *diag.Sink, names []named, kind string) {
	seen := map[string]bool{}
	for _, n := range names {
		if n.name == "" {
			continue // the unnamed root state/property group is exempt
		}
		key := ident.Fold(n.name)
		if seen[key] {
			sink.Error(n.loc, "A %s named '%s' was already defined in this object.", kind, n.name)
			continue
		}
		seen[key] = true
	}
}
