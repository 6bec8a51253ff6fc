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

import "github.com/rethesda/Caprica/lang/types"

// ArrayFunctionKind enumerates the builtin array methods Papyrus exposes
// on every array type.
type ArrayFunctionKind int

const (
	ArrayFind ArrayFunctionKind = iota
	ArrayFindStruct
	ArrayRFind
	ArrayRFindStruct
	ArrayAdd
	ArrayClear
	ArrayInsert
	ArrayRemove
	ArrayRemoveLast
)

var arrayFunctionNames = map[string]struct {
	plain, onStruct ArrayFunctionKind
}{
	"find":       {ArrayFind, ArrayFindStruct},
	"rfind":      {ArrayRFind, ArrayRFindStruct},
	"add":        {ArrayAdd, ArrayAdd},
	"clear":      {ArrayClear, ArrayClear},
	"insert":     {ArrayInsert, ArrayInsert},
	"remove":     {ArrayRemove, ArrayRemove},
	"removelast": {ArrayRemoveLast, ArrayRemoveLast},
}

// IdentifierKind tags a PapyrusIdentifier resolution result.
type IdentifierKind int

const (
	IdentUnresolved IdentifierKind = iota
	IdentLocalVariable
	IdentParameter
	IdentProperty
	IdentStructMember
	IdentFunction
	IdentBuiltinArrayFunction
)

// Identifier is the resolution result for a bare name reference, per
// PapyrusIdentifier.
type Identifier struct {
	Kind IdentifierKind
	Name string // meaningful only when Kind == IdentUnresolved

	LocalVariable *Variable
	Parameter     *Parameter
	Property      *Property
	StructMember  *Member
	Function      *Function

	ArrayFunctionKind ArrayFunctionKind
	ArrayElementType  types.Type
}

func unresolvedIdentifier(name string) Identifier {
	return Identifier{Kind: IdentUnresolved, Name: name}
}

func (id Identifier) isUnresolved() bool { return id.Kind == IdentUnresolved }
