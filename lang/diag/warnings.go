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

package diag

// Warning numbers. 2001-2010 are engine-limit warnings (consulted by
// lang/limits); 4001-4007 are general language warnings. These numbers are
// part of the external interface and must not be renumbered.
const (
	WArrayLength                  = 2001
	WPexFileUserFlagCount         = 2002
	WPexFunctionParameterCount    = 2003
	WPexObjectEmptyStateFuncCount = 2004
	WPexObjectInitialValueCount   = 2005
	WPexObjectNamedStateCount     = 2006
	WPexObjectPropertyCount       = 2007
	WPexObjectStaticFunctionCount = 2008
	WPexObjectVariableCount       = 2009
	WPexStateFunctionCount        = 2010

	WUnnecessaryCast             = 4001
	WDuplicateImport             = 4002
	WStateDoesntExist            = 4003
	WUnreferencedScriptVariable  = 4004
	WUnwrittenScriptVariable     = 4005
	WScriptVariableOnlyWritten   = 4006
	WScriptVariableInitNeverUsed = 4007
)

// Message templates, one per warning number above, each with a fixed
// arity. Callers obtain one through Template and pass it to Sink.Warning
// as the format string; Go's fmt verbs (not C's %zu) drive the
// substitution.
var messageTemplates = map[int]string{
	WArrayLength:                  "Attempting to create an array with %d elements, but the engine limit is %d elements.",
	WPexFileUserFlagCount:         "There are %d distinct user flags defined, but the engine limit is %d flags.",
	WPexFunctionParameterCount:    "There are %d parameters declared for the '%s' function, but the engine limit is %d parameters.",
	WPexObjectEmptyStateFuncCount: "There are %d functions in the empty state, but the engine limit is %d functions.",
	WPexObjectInitialValueCount:   "There are %d variables with initial values, but the engine limit is %d intial values.",
	WPexObjectNamedStateCount:     "There are %d named states in this object, but the engine limit is %d named states.",
	WPexObjectPropertyCount:       "There are %d properties in this object, but the engine limit is %d properties.",
	WPexObjectStaticFunctionCount: "There are %d static functions in this object, but the engine limit is %d static functions.",
	WPexObjectVariableCount:       "There are %d variables in this object, but the engine limit is %d variables.",
	WPexStateFunctionCount:        "There are %d functions in the '%s' state, but the engine limit is %d functions in a named state.",

	WUnnecessaryCast:             "Unecessary cast from '%s' to '%s'.",
	WDuplicateImport:             "Duplicate import of '%s'.",
	WStateDoesntExist:            "The state '%s' doesn't exist in this context.",
	WUnreferencedScriptVariable:  "The script variable '%s' is declared but never used.",
	WUnwrittenScriptVariable:     "The script variable '%s' is not initialized, and is never written to.",
	WScriptVariableOnlyWritten:   "The script variable '%s' is only ever written to.",
	WScriptVariableInitNeverUsed: "The script variable '%s' is initialized but is never used.",
}

// Template returns the fixed message template for a warning number, for
// callers (and tests) that want to confirm they're using the catalog form.
func Template(num int) string { return messageTemplates[num] }
