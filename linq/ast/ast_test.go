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

package ast_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"linq4go.org/go/linq/ast"
)

func TestKindMetadata(t *testing.T) {
	tests := []struct {
		kind           ast.Kind
		token          string
		modifiesLvalue bool
	}{
		{ast.KindEqual, "==", false},
		{ast.KindNotEqual, "!=", false},
		{ast.KindAndAlso, "&&", false},
		{ast.KindOrElse, "||", false},
		{ast.KindNot, "!", false},
		{ast.KindAssign, "=", true},
		{ast.KindAddAssign, "+=", true},
		{ast.KindPostIncrementAssign, "++", true},
		{ast.KindPreDecrementAssign, "--", true},
	}
	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			qt.Assert(t, qt.Equals(tc.kind.Token(), tc.token))
			qt.Assert(t, qt.Equals(tc.kind.ModifiesLvalue(), tc.modifiesLvalue))
		})
	}
	// Precedence orders the operator families.
	qt.Assert(t, qt.IsTrue(ast.KindMultiply.Prec() > ast.KindAdd.Prec()))
	qt.Assert(t, qt.IsTrue(ast.KindEqual.Prec() > ast.KindAndAlso.Prec()))
	qt.Assert(t, qt.IsTrue(ast.KindAndAlso.Prec() > ast.KindOrElse.Prec()))
	qt.Assert(t, qt.IsTrue(ast.KindOrElse.Prec() > ast.KindConditional.Prec()))
}

func TestTypeInterning(t *testing.T) {
	qt.Assert(t, qt.Equals(ast.TypeOf("int"), ast.Int))
	qt.Assert(t, qt.Equals(ast.TypeOf("Boolean"), ast.BoxedBoolean))
	custom := ast.TypeOf("Customer")
	qt.Assert(t, qt.Equals(ast.TypeOf("Customer"), custom))
	qt.Assert(t, qt.IsFalse(custom.Primitive))
	qt.Assert(t, qt.IsTrue(ast.Boolean.Primitive))
	qt.Assert(t, qt.IsFalse(ast.BoxedBoolean.Primitive))
}

func TestEquals(t *testing.T) {
	x := ast.Parameter(ast.Int, "x")
	x2 := ast.Parameter(ast.Int, "x")

	tests := []struct {
		name string
		a, b ast.Node
		want bool
	}{
		{"sameConstant", ast.Constant(1), ast.Constant(1), true},
		{"numericEquivalence", ast.Constant(1), ast.Constant(1.0), true},
		{"differentValue", ast.Constant(1), ast.Constant(2), false},
		{"differentConstantType", ast.Constant(1), ast.ConstantOf(1, ast.Long), false},
		{"typedNulls", ast.ConstantOf(nil, ast.BoxedInteger), ast.ConstantOf(nil, ast.Object), false},
		{"sameParameter", x, x, true},
		{"sameNameDistinctParameters", x, x2, false},
		{"binary", ast.Equal(x, ast.Constant(1)), ast.Equal(x, ast.Constant(1)), true},
		{"binaryKindDiffers", ast.Equal(x, ast.Constant(1)), ast.NotEqual(x, ast.Constant(1)), false},
		{"boxedMember", ast.Field(nil, ast.BoxedBoolean, "TRUE"), ast.Field(nil, ast.BoxedBoolean, "TRUE"), true},
		{"memberNameDiffers", ast.Field(nil, ast.BoxedBoolean, "TRUE"), ast.Field(nil, ast.BoxedBoolean, "FALSE"), false},
		{"call", ast.Call(nil, "f", ast.Int, x), ast.Call(nil, "f", ast.Int, x), true},
		{"callArgsDiffer", ast.Call(nil, "f", ast.Int, x), ast.Call(nil, "f", ast.Int, x2), false},
		{"ternary",
			ast.Condition(x, ast.Constant(1), ast.Constant(2)),
			ast.Condition(x, ast.Constant(1), ast.Constant(2)), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			qt.Assert(t, qt.Equals(ast.Equals(tc.a, tc.b), tc.want))
			if tc.want {
				// Equal nodes hash equal.
				qt.Assert(t, qt.Equals(ast.Hash(tc.a), ast.Hash(tc.b)))
			}
		})
	}
}

func TestRewriterPreservesIdentity(t *testing.T) {
	x := ast.Parameter(ast.Boolean, "x")
	e := ast.Condition(ast.Not(x), ast.Constant(1), ast.Constant(2))
	s := ast.IfThenElse(x, ast.Return(e), ast.Return(ast.Constant(3)))

	var rw ast.Rewriter
	qt.Assert(t, qt.Equals(e.AcceptExpr(rw), ast.Expr(e)))
	qt.Assert(t, qt.Equals(s.AcceptStmt(rw), ast.Stmt(s)))
}

func TestRewriterRebuildsOnChange(t *testing.T) {
	x := ast.Parameter(ast.Boolean, "x")
	y := ast.Parameter(ast.Boolean, "y")
	e := ast.AndAlso(x, ast.Not(x))

	got := e.AcceptExpr(&renamer{from: x, to: y})
	qt.Assert(t, qt.IsTrue(ast.Equals(got, ast.AndAlso(y, ast.Not(y)))))
	// The original is untouched.
	qt.Assert(t, qt.Equals[ast.Expr](e.Left, x))
}

// renamer replaces one parameter object with another.
type renamer struct {
	ast.Rewriter
	from, to *ast.ParameterExpr
}

func (r *renamer) VisitParameter(p *ast.ParameterExpr) ast.Expr {
	if p == r.from {
		return r.to
	}
	return p
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v    any
		want string
	}{
		{nil, "null"},
		{true, "true"},
		{false, "false"},
		{"hi", `"hi"`},
		{1, "1"},
		{int64(42), "42"},
	}
	for _, tc := range tests {
		c := ast.Constant(tc.v)
		qt.Assert(t, qt.Equals(ast.ValueString(c.Value), tc.want))
	}
}

func TestEmptyStatementIdentity(t *testing.T) {
	// The sentinel is identity-compared; a structurally identical
	// statement is not it.
	other := ast.Statement(nil)
	qt.Assert(t, qt.IsTrue(ast.EmptyStatement != ast.Stmt(other)))
	qt.Assert(t, qt.Equals(ast.EmptyStatement, ast.EmptyStatement))
}
