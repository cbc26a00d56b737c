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

package optimize_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"linq4go.org/go/linq/ast"
	"linq4go.org/go/linq/optimize"
)

func TestAlways(t *testing.T) {
	boolP := ast.Parameter(ast.Boolean, "b")
	tests := []struct {
		name  string
		expr  ast.Expr
		value bool
		known bool
	}{
		{"unboxedTrue", ast.Constant(true), true, true},
		{"unboxedFalse", ast.Constant(false), false, true},
		{"boxedTrue", ast.Field(nil, ast.BoxedBoolean, "TRUE"), true, true},
		{"boxedFalse", ast.Field(nil, ast.BoxedBoolean, "FALSE"), false, true},
		{"parameter", boolP, false, false},
		{"null", ast.Constant(nil), false, false},
		{"one", ast.Constant(1), false, false},
		// A boolean-typed subtree is not evaluated; it is expected to
		// have been folded already if it could be.
		{"comparison", ast.Equal(ast.Constant(1), ast.Constant(1)), false, false},
		{"otherBoxedField", ast.Field(nil, ast.BoxedBoolean, "MAYBE"), false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := optimize.Always(tc.expr)
			qt.Assert(t, qt.Equals(ok, tc.known))
			if tc.known {
				qt.Assert(t, qt.Equals(v, tc.value))
			}
		})
	}
}

func TestSelfAssignment(t *testing.T) {
	x := ast.Parameter(ast.Int, "x")
	got := optimize.Expression(ast.Assign(x, x))
	qt.Assert(t, qt.Equals[ast.Expr](got, x))

	// Distinct variables keep the assignment.
	y := ast.Parameter(ast.Int, "y")
	assign := ast.Assign(x, y)
	qt.Assert(t, qt.Equals[ast.Expr](optimize.Expression(assign), assign))
}

func TestConvert(t *testing.T) {
	x := ast.Parameter(ast.Int, "x")

	// Convert to the operand's own type is elided.
	got := optimize.Expression(ast.Convert(x, ast.Int))
	qt.Assert(t, qt.Equals[ast.Expr](got, x))

	// A constant is re-typed in place.
	got = optimize.Expression(ast.Convert(ast.Constant(1), ast.Long))
	c, ok := got.(*ast.ConstantExpr)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(c.Typ, ast.Long))
	qt.Assert(t, qt.IsTrue(ast.Equals(got, ast.ConstantOf(1, ast.Long))))

	// Other casts survive.
	conv := ast.Convert(x, ast.Long)
	qt.Assert(t, qt.Equals[ast.Expr](optimize.Expression(conv), conv))
}

func TestIdentityPreserved(t *testing.T) {
	// An expression with nothing to optimize comes back as the same
	// object, keeping downstream caches hot.
	x := ast.Parameter(ast.Boolean, "x")
	y := ast.Parameter(ast.Boolean, "y")
	for _, e := range []ast.Expr{
		x,
		ast.AndAlso(x, y),
		ast.Condition(x, ast.Constant(1), ast.Constant(2)),
		ast.Call(nil, "f", ast.Int, x),
	} {
		qt.Assert(t, qt.Equals(optimize.Expression(e), e))
	}
}

func TestIdempotence(t *testing.T) {
	boolP := ast.Parameter(ast.Boolean, "bool")
	x := ast.Parameter(ast.Int, "x")
	exprs := []ast.Expr{
		ast.Equal(ast.Constant(1), ast.Constant(1)),
		ast.Condition(ast.Not(boolP), ast.Constant(1), ast.Constant(2)),
		ast.AndAlso(ast.Constant(false), boolP),
		ast.OrElse(boolP, ast.Constant(false)),
		ast.Equal(x, ast.Constant(nil)),
		ast.NotEqual(boolP, ast.Constant(true)),
		ast.Convert(ast.Constant(1), ast.Long),
		ast.Condition(ast.Equal(boolP, ast.Constant(false)), ast.Constant(1), ast.Constant(2)),
	}
	for _, e := range exprs {
		once := optimize.Expression(e)
		twice := optimize.Expression(once)
		qt.Assert(t, qt.IsTrue(ast.Equals(twice, once)),
			qt.Commentf("optimize is not idempotent on %s", e.Kind()))
	}
}

func TestConditionalStatementEdgeCases(t *testing.T) {
	boolP := ast.Parameter(ast.Boolean, "bool")
	ret1 := ast.Return(ast.Constant(1))
	ret2 := ast.Return(ast.Constant(2))

	// An unclassifiable chain is returned unchanged, same object.
	chain := ast.IfThenElse(boolP, ret1, ret2)
	qt.Assert(t, qt.Equals(optimize.Statement(chain), ast.Stmt(chain)))

	// All arms false, no else: the empty-statement sentinel, by identity.
	dead := ast.IfThen(ast.Constant(false), ret1)
	qt.Assert(t, qt.Equals(optimize.Statement(dead), optimize.EmptyStatement))

	// All arms false with an else: the else statement itself.
	kept := ast.IfThenElse(ast.Constant(false), ret1, ret2)
	qt.Assert(t, qt.Equals(optimize.Statement(kept), ast.Stmt(ret2)))

	// First test true: its statement replaces the chain.
	first := ast.IfThenElse(ast.Constant(true), ret1, ret2)
	qt.Assert(t, qt.Equals(optimize.Statement(first), ast.Stmt(ret1)))
}
