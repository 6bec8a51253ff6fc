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
	"testing"

	"github.com/rethesda/Caprica/lang/pex"
	"github.com/rethesda/Caprica/lang/types"
)

func TestBinaryOpExpressionPicksIntOrFloatOpcode(t *testing.T) {
	testCases := []struct {
		name   string
		lhs    Expression
		rhs    Expression
		want   pex.Op
	}{
		{"int add", &LiteralExpression{Kind: LiteralInt, Int: 1}, &LiteralExpression{Kind: LiteralInt, Int: 2}, pex.OpIAdd},
		{"float add", &LiteralExpression{Kind: LiteralFloat, Float: 1}, &LiteralExpression{Kind: LiteralFloat, Float: 2}, pex.OpFAdd},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.lhs.Semantic(nil)
			tc.rhs.Semantic(nil)
			e := &BinaryOpExpression{Operator: BinAdd, LHS: tc.lhs, RHS: tc.rhs}
			e.resultType = tc.lhs.ResultType()

			file := &pex.File{}
			b := pex.NewFunctionBuilder(file, pex.Location{})
			e.GenerateLoad(file, b)

			fn := &pex.Function{}
			b.Populate(fn, nil)
			if len(fn.Body) != 1 || fn.Body[0].Op != tc.want {
				t.Errorf("got %+v, want a single %v instruction", fn.Body, tc.want)
			}
		})
	}
}

func TestBinaryOpComparisonResultIsBool(t *testing.T) {
	lhs := &LiteralExpression{Kind: LiteralInt, Int: 1}
	rhs := &LiteralExpression{Kind: LiteralInt, Int: 2}
	lhs.Semantic(nil)
	rhs.Semantic(nil)
	e := &BinaryOpExpression{Operator: BinLt, LHS: lhs, RHS: rhs}
	e.Semantic(nil)
	if e.ResultType().Kind() != types.Bool {
		t.Errorf("ResultType(): got %v, want Bool", e.ResultType().Kind())
	}
}

func TestLiteralExpressionResultTypes(t *testing.T) {
	testCases := []struct {
		kind LiteralKind
		want types.Kind
	}{
		{LiteralNone, types.None},
		{LiteralBool, types.Bool},
		{LiteralInt, types.Int},
		{LiteralFloat, types.Float},
		{LiteralString, types.String},
	}
	for _, tc := range testCases {
		e := &LiteralExpression{Kind: tc.kind}
		e.Semantic(nil)
		if got := e.ResultType().Kind(); got != tc.want {
			t.Errorf("literal kind %v: ResultType().Kind(): got %v, want %v", tc.kind, got, tc.want)
		}
	}
}
