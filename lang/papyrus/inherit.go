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
	"github.com/rethesda/Caprica/internal/ident"
	"github.com/rethesda/Caprica/lang/diag"
	"github.com/rethesda/Caprica/lang/types"
)

// ancestors returns o's ancestor chain, root-most first, by walking
// ParentClass upward. The chain always terminates because inheritance
// cannot cycle in well-typed input.
func ancestors(o *Object) []*Object {
	var chain []*Object
	for cur := o.ParentClass; cur.Kind() == types.ResolvedObject; {
		parent := cur.ResolvedObject().(*Object)
		chain = append(chain, parent)
		cur = parent.ParentClass
	}
	// chain is currently immediate-parent-first; reverse to root-first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// checkInheritedConflicts implements inherited-identifier
// conflict detection: a local redefinition of a name already defined by an
// ancestor is an error naming the ancestor's kind. Same-object duplicates
// are reported separately by ensureNamesAreUnique.
func checkInheritedConflicts(sink *diag.Sink, o *Object) {
	inherited := map[string]string{}
	for _, anc := range ancestors(o) {
		for _, v := range anc.Variables {
			inherited[ident.Fold(v.Name)] = "variable"
		}
		for _, p := range anc.allProperties() {
			inherited[ident.Fold(p.Name)] = "property"
		}
		for _, st := range anc.States {
			for _, f := range st.Functions {
				inherited[ident.Fold(f.Name)] = "function"
			}
		}
	}

	check := func(name string, loc Location) {
		if kind, ok := inherited[ident.Fold(name)]; ok {
			sink.Error(loc, "A parent object already defines a %s named '%s'.", kind, name)
		}
	}
	for _, v := range o.Variables {
		check(v.Name, v.Location)
	}
	for _, p := range o.allProperties() {
		check(p.Name, p.Location)
	}
	for _, st := range o.States {
		for _, f := range st.Functions {
			check(f.Name, f.Location)
		}
	}
}
