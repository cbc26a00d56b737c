// Copyright 2025 The Linq4Go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package block_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"linq4go.org/go/linq/ast"
	"linq4go.org/go/linq/block"
	"linq4go.org/go/linq/format"
)

var (
	null        = ast.Constant(nil)
	nullInteger = ast.ConstantOf(nil, ast.BoxedInteger)
	one         = ast.Constant(1)
	two         = ast.Constant(2)
	three       = ast.Constant(3)
	four        = ast.Constant(4)
	trueExpr    = ast.Constant(true)
	falseExpr   = ast.Constant(false)
)

func optimizeExpr(e ast.Expr) string {
	return optimizeStmt(ast.Return(e))
}

func optimizeStmt(s ast.Stmt) string {
	b := block.New(true)
	b.Add(s)
	return format.String(b.ToBlock())
}

func TestOptimizeComparisons(t *testing.T) {
	x := ast.Parameter(ast.Int, "x")
	y := ast.Parameter(ast.Int, "y")
	xBool := ast.Parameter(ast.Boolean, "x")
	xInteger := ast.Parameter(ast.BoxedInteger, "x")

	tests := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{"equalSameConst", ast.Equal(one, ast.Constant(1)), "{\n  return true;\n}\n"},
		{"equalDifferentConst", ast.Equal(one, two), "{\n  return false;\n}\n"},
		{"equalSameExpr", ast.Equal(x, x), "{\n  return true;\n}\n"},
		{"equalDifferentExpr", ast.Equal(x, y), "{\n  return x == y;\n}\n"},
		{"equalPrimitiveNull", ast.Equal(x, null), "{\n  return false;\n}\n"},
		{"equalObjectNull", ast.Equal(xInteger, null), "{\n  return x == null;\n}\n"},
		{"equalTypedNullUntypedNull", ast.Equal(nullInteger, null), "{\n  return true;\n}\n"},
		{"equalUntypedNullTypedNull", ast.Equal(null, nullInteger), "{\n  return true;\n}\n"},
		{"equalBoolTrue", ast.Equal(xBool, trueExpr), "{\n  return x;\n}\n"},
		{"equalBoolFalse", ast.Equal(xBool, falseExpr), "{\n  return !x;\n}\n"},

		{"notEqualSameConst", ast.NotEqual(one, ast.Constant(1)), "{\n  return false;\n}\n"},
		{"notEqualDifferentConst", ast.NotEqual(one, two), "{\n  return true;\n}\n"},
		{"notEqualSameExpr", ast.NotEqual(x, x), "{\n  return false;\n}\n"},
		{"notEqualDifferentExpr", ast.NotEqual(x, y), "{\n  return x != y;\n}\n"},
		{"notEqualPrimitiveNull", ast.NotEqual(x, null), "{\n  return true;\n}\n"},
		{"notEqualObjectNull", ast.NotEqual(xInteger, null), "{\n  return x != null;\n}\n"},
		{"notEqualTypedNullUntypedNull", ast.NotEqual(nullInteger, null), "{\n  return false;\n}\n"},
		{"notEqualUntypedNullTypedNull", ast.NotEqual(null, nullInteger), "{\n  return false;\n}\n"},
		{"notEqualBoolTrue", ast.NotEqual(xBool, trueExpr), "{\n  return !x;\n}\n"},
		{"notEqualBoolFalse", ast.NotEqual(xBool, falseExpr), "{\n  return x;\n}\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			qt.Assert(t, qt.Equals(optimizeExpr(tc.expr), tc.want))
		})
	}
}

func TestOptimizeBooleans(t *testing.T) {
	boolP := ast.Parameter(ast.Boolean, "bool")
	x := ast.Parameter(ast.Boolean, "x")
	y := ast.Parameter(ast.Boolean, "y")

	tests := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{"andAlsoTrueBool", ast.AndAlso(trueExpr, boolP), "{\n  return bool;\n}\n"},
		{"andAlsoBoolTrue", ast.AndAlso(boolP, trueExpr), "{\n  return bool;\n}\n"},
		{"andAlsoFalseBool", ast.AndAlso(falseExpr, boolP), "{\n  return false;\n}\n"},
		{"andAlsoNullBool", ast.AndAlso(null, boolP), "{\n  return null && bool;\n}\n"},
		{"andAlsoXY", ast.AndAlso(x, y), "{\n  return x && y;\n}\n"},
		{"orElseTrueBool", ast.OrElse(trueExpr, boolP), "{\n  return true;\n}\n"},
		{"orElseFalseBool", ast.OrElse(falseExpr, boolP), "{\n  return bool;\n}\n"},
		{"orElseNullBool", ast.OrElse(null, boolP), "{\n  return null || bool;\n}\n"},
		{"orElseXY", ast.OrElse(x, y), "{\n  return x || y;\n}\n"},

		{"boxedTrueAnd", ast.AndAlso(ast.Field(nil, ast.BoxedBoolean, "TRUE"), boolP), "{\n  return bool;\n}\n"},
		{"boxedFalseOr", ast.OrElse(ast.Field(nil, ast.BoxedBoolean, "FALSE"), boolP), "{\n  return bool;\n}\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			qt.Assert(t, qt.Equals(optimizeExpr(tc.expr), tc.want))
		})
	}
}

func TestOptimizeTernary(t *testing.T) {
	boolP := ast.Parameter(ast.Boolean, "bool")

	tests := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{"alwaysTrue", ast.Condition(trueExpr, one, two), "{\n  return 1;\n}\n"},
		{"alwaysFalse", ast.Condition(falseExpr, one, two), "{\n  return 2;\n}\n"},
		{"alwaysSame", ast.Condition(boolP, one, one), "{\n  return 1;\n}\n"},
		{"nonOptimizable", ast.Condition(boolP, one, two), "{\n  return bool ? 1 : 2;\n}\n"},
		{"rotateNot", ast.Condition(ast.Not(boolP), one, two), "{\n  return bool ? 2 : 1;\n}\n"},
		{"rotateEqualFalse", ast.Condition(ast.Equal(boolP, falseExpr), one, two), "{\n  return bool ? 2 : 1;\n}\n"},
		{
			"multipleFolding",
			ast.Condition(
				ast.NotEqual(
					ast.Condition(ast.Equal(one, two), three, four),
					ast.Condition(ast.NotEqual(ast.Constant(5), ast.Constant(6)), four, ast.Constant(8))),
				ast.Constant(9),
				ast.Constant(10)),
			"{\n  return 10;\n}\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			qt.Assert(t, qt.Equals(optimizeExpr(tc.expr), tc.want))
		})
	}
}

func TestOptimizeConditionalStatements(t *testing.T) {
	boolP := ast.Parameter(ast.Boolean, "bool")

	tests := []struct {
		name string
		stmt ast.Stmt
		want string
	}{
		{"ifTrue", ast.IfThen(trueExpr, ast.Return(one)), "{\n  return 1;\n}\n"},
		{"ifTrueElse", ast.IfThenElse(trueExpr, ast.Return(one), ast.Return(two)), "{\n  return 1;\n}\n"},
		{"ifFalse", ast.IfThen(falseExpr, ast.Return(one)), "{}"},
		{"ifFalseElse", ast.IfThenElse(falseExpr, ast.Return(one), ast.Return(two)), "{\n  return 2;\n}\n"},
		{
			"ifBoolTrue",
			ast.IfThenElse(boolP, ast.Return(one), trueExpr, ast.Return(two)),
			"{\n  if (bool) {\n    return 1;\n  } else {\n    return 2;\n  }\n}\n",
		},
		{
			"ifBoolTrueElse",
			ast.IfThenElse(boolP, ast.Return(one), trueExpr, ast.Return(two), ast.Return(three)),
			"{\n  if (bool) {\n    return 1;\n  } else {\n    return 2;\n  }\n}\n",
		},
		{
			"ifBoolFalse",
			ast.IfThenElse(boolP, ast.Return(one), falseExpr, ast.Return(two)),
			"{\n  if (bool) {\n    return 1;\n  }\n}\n",
		},
		{
			"ifBoolFalseElse",
			ast.IfThenElse(boolP, ast.Return(one), falseExpr, ast.Return(two), ast.Return(three)),
			"{\n  if (bool) {\n    return 1;\n  } else {\n    return 3;\n  }\n}\n",
		},
		{
			"ifBoolFalseTrue",
			ast.IfThenElse(boolP, ast.Return(one), falseExpr, ast.Return(two),
				trueExpr, ast.Return(four), ast.Return(ast.Constant(5))),
			"{\n  if (bool) {\n    return 1;\n  } else {\n    return 4;\n  }\n}\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			qt.Assert(t, qt.Equals(optimizeStmt(tc.stmt), tc.want))
		})
	}
}

func TestOptimizeConvert(t *testing.T) {
	x := ast.Parameter(ast.Int, "x")
	tests := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{"sameTypeElided", ast.Add(ast.Convert(x, ast.Int), one), "{\n  return x + 1;\n}\n"},
		{"constantRetyped", ast.Add(x, ast.Convert(one, ast.Long)), "{\n  return x + 1;\n}\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			qt.Assert(t, qt.Equals(optimizeExpr(tc.expr), tc.want))
		})
	}
}
