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

// Package limits implements the compiler core's engine-limit table
//: a fixed mapping from limit kind to (cap, warning
// number), consulted by the PEX emitter whenever it finishes counting
// something the target engine's VM caps.
package limits

import (
	"github.com/rethesda/Caprica/lang/diag"
	"github.com/rethesda/Caprica/lang/source"
)

// Kind identifies one engine-imposed numeric cap.
type Kind int

const (
	ArrayLength Kind = iota
	PexFileUserFlagCount
	PexFunctionParameterCount
	PexObjectEmptyStateFunctionCount
	PexObjectInitialValueCount
	PexObjectNamedStateCount
	PexObjectPropertyCount
	PexObjectStaticFunctionCount
	PexObjectVariableCount
	PexStateFunctionCount
)

type entry struct {
	warningNumber int
}

var table = map[Kind]entry{
	ArrayLength:                      {diag.WArrayLength},
	PexFileUserFlagCount:             {diag.WPexFileUserFlagCount},
	PexFunctionParameterCount:        {diag.WPexFunctionParameterCount},
	PexObjectEmptyStateFunctionCount: {diag.WPexObjectEmptyStateFuncCount},
	PexObjectInitialValueCount:       {diag.WPexObjectInitialValueCount},
	PexObjectNamedStateCount:         {diag.WPexObjectNamedStateCount},
	PexObjectPropertyCount:           {diag.WPexObjectPropertyCount},
	PexObjectStaticFunctionCount:     {diag.WPexObjectStaticFunctionCount},
	PexObjectVariableCount:           {diag.WPexObjectVariableCount},
	PexStateFunctionCount:            {diag.WPexStateFunctionCount},
}

// Caps holds the configured cap per Kind. A cap of zero means unlimited
// (the check is disabled).
type Caps map[Kind]int

// DefaultCaps mirrors the engine limits the original Creation Kit compiler
// enforces for Skyrim/Fallout 4 scripts.
func DefaultCaps() Caps {
	return Caps{
		ArrayLength:                      128,
		PexFileUserFlagCount:             255,
		PexFunctionParameterCount:        255,
		PexObjectEmptyStateFunctionCount: 4096,
		PexObjectInitialValueCount:       4096,
		PexObjectNamedStateCount:         255,
		PexObjectPropertyCount:           4096,
		PexObjectStaticFunctionCount:     4096,
		PexObjectVariableCount:           4096,
		PexStateFunctionCount:            4096,
	}
}

// Check emits the warning for `kind` if the measured count exceeds the
// configured cap. contextName, when non-empty, is threaded in as the
// message's function/state-name argument ahead of the final cap argument,
// matching each warning's fixed arity.
func Check(sink *diag.Sink, caps Caps, loc source.Location, kind Kind, measured int, contextName string) {
	cap := caps[kind]
	if cap <= 0 || measured <= cap {
		return
	}
	e := table[kind]
	if contextName != "" {
		sink.Warning(e.warningNumber, loc, diag.Template(e.warningNumber), measured, contextName, cap)
	} else {
		sink.Warning(e.warningNumber, loc, diag.Template(e.warningNumber), measured, cap)
	}
}
