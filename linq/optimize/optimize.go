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

// Package optimize rewrites expression trees by applying algebraic
// identities over boolean, comparison, conditional and conversion nodes,
// and collapses dead branches in multi-arm conditional statements.
//
// The optimizations are essential, not mere tweaks: without them, forms
// such as false == null survive to the downstream code generator, which
// does not box primitives on its own.
package optimize

import (
	"linq4go.org/go/linq/ast"
)

// Canonical truth forms recognized by the oracle, and the empty-statement
// sentinel returned when a conditional statement rewrites to nothing.
var (
	False      = ast.Constant(false)
	True       = ast.Constant(true)
	BoxedFalse = ast.Field(nil, ast.BoxedBoolean, "FALSE")
	BoxedTrue  = ast.Field(nil, ast.BoxedBoolean, "TRUE")

	EmptyStatement = ast.EmptyStatement
)

// An Optimizer is a bottom-up rewriting visitor: its methods receive
// already-rewritten children. A single traversal is one pass; cascades
// are handled by re-running the visitor, which the block builder does
// after substitution.
type Optimizer struct {
	ast.Rewriter
}

// Expression runs one optimization pass over an expression.
func Expression(e ast.Expr) ast.Expr {
	return e.AcceptExpr(&Optimizer{})
}

// Statement runs one optimization pass over a statement.
func Statement(s ast.Stmt) ast.Stmt {
	return s.AcceptStmt(&Optimizer{})
}

func (o *Optimizer) VisitTernary(x *ast.TernaryExpr, e0, e1, e2 ast.Expr) ast.Expr {
	if x.Op == ast.KindConditional {
		if b, ok := always(e0); ok {
			// true ? y : z  ===  y
			// false ? y : z  ===  z
			if b {
				return e1
			}
			return e2
		}
		if ast.Equals(e1, e2) {
			// a ? b : b  ===  b
			return e1
		}
		// !a ? b : c  ===  a ? c : b
		if u, ok := e0.(*ast.UnaryExpr); ok && u.Op == ast.KindNot {
			return ast.MakeTernary(x.Op, u.Operand, e2, e1)
		}
	}
	return o.Rewriter.VisitTernary(x, e0, e1, e2)
}

func (o *Optimizer) VisitBinary(x *ast.BinaryExpr, left, right ast.Expr) ast.Expr {
	if x.Op == ast.KindAssign && ast.Equals(left, right) {
		// Self-assignment is a no-op; re-optimize the survivor.
		return left.AcceptExpr(o)
	}
	switch x.Op {
	case ast.KindEqual, ast.KindNotEqual:
		if ast.Equals(left, right) {
			return truth(x.Op == ast.KindEqual)
		}
		if c0, ok := left.(*ast.ConstantExpr); ok {
			if c1, ok := right.(*ast.ConstantExpr); ok {
				if c0.Value == nil && c1.Value == nil {
					// Nulls of all types are equal.
					return truth(x.Op == ast.KindEqual)
				}
				if c0.Typ == c1.Typ {
					// Distinct same-typed literals; the equal-value case
					// was absorbed by the equality check above.
					return truth(x.Op == ast.KindNotEqual)
				}
			}
		}
		if r := reduce(x.Op, left, right); r != nil {
			return r
		}
		if r := reduce(x.Op, right, left); r != nil {
			return r
		}
	case ast.KindAndAlso, ast.KindOrElse:
		if r := reduce(x.Op, left, right); r != nil {
			return r
		}
		if r := reduce(x.Op, right, left); r != nil {
			return r
		}
	}
	return o.Rewriter.VisitBinary(x, left, right)
}

// reduce tries a one-sided simplification with e0 as the side inspected
// for a constant. It returns nil when no rule applies.
func reduce(op ast.Kind, e0, e1 ast.Expr) ast.Expr {
	switch op {
	case ast.KindAndAlso:
		if b, ok := always(e0); ok {
			// true && x  -->  x
			// false && x  -->  false
			if b {
				return e1
			}
			return False
		}
	case ast.KindOrElse:
		if b, ok := always(e0); ok {
			// true || x  -->  true
			// false || x  -->  x
			if b {
				return True
			}
			return e1
		}
	case ast.KindEqual:
		if isConstantNull(e1) && e0.Type().Primitive {
			// A primitive can never equal null.
			return False
		}
		// x == true  -->  x
		// x == false  -->  !x
		if b, ok := always(e0); ok {
			if b {
				return e1
			}
			return ast.Not(e1)
		}
	case ast.KindNotEqual:
		if isConstantNull(e1) && e0.Type().Primitive {
			return True
		}
		// x != true  -->  !x
		// x != false  -->  x
		if b, ok := always(e0); ok {
			if b {
				return ast.Not(e1)
			}
			return e1
		}
	}
	return nil
}

func (o *Optimizer) VisitUnary(x *ast.UnaryExpr, operand ast.Expr) ast.Expr {
	if x.Op == ast.KindConvert {
		if operand.Type() == x.Typ {
			return operand
		}
		if c, ok := operand.(*ast.ConstantExpr); ok {
			return ast.ConstantOf(c.Value, x.Typ)
		}
	}
	return o.Rewriter.VisitUnary(x, operand)
}

// VisitConditional scans the arm pairs [test, stmt] of an if/else-if
// chain, dropping arms whose test is always false and cutting the chain
// at the first always-true test.
func (o *Optimizer) VisitConditional(x *ast.ConditionalStmt, list []ast.Node) ast.Stmt {
	optimal := true
	for i := 0; i+1 < len(list) && optimal; i += 2 {
		b, ok := always(list[i].(ast.Expr))
		if !ok {
			continue
		}
		if i == 0 && b {
			// The very first test always holds; the chain is its statement.
			return list[1].(ast.Stmt)
		}
		optimal = false
	}
	if optimal {
		// Nothing to optimize.
		return o.Rewriter.VisitConditional(x, list)
	}
	newList := make([]ast.Node, 0, len(list))
	// Iterate over the arms, excluding a trailing else.
	for i := 0; i+1 < len(list); i += 2 {
		test := list[i].(ast.Expr)
		stmt := list[i+1]
		b, ok := always(test)
		if !ok {
			newList = append(newList, test, stmt)
			continue
		}
		if b {
			// No need to check later tests.
			newList = append(newList, stmt)
			break
		}
	}
	// A single-element list is a bare statement already.
	if len(list) == 1 {
		return list[0].(ast.Stmt)
	}
	// Re-attach the original else when the surviving arms still end on a
	// (test, stmt) pair.
	if len(newList)%2 == 0 && len(list)%2 == 1 {
		elseBlock := list[len(list)-1]
		if len(newList) == 0 {
			return elseBlock.(ast.Stmt)
		}
		newList = append(newList, elseBlock)
	}
	if len(newList) == 0 {
		return EmptyStatement
	}
	return o.Rewriter.VisitConditional(x, newList)
}

func truth(b bool) ast.Expr {
	if b {
		return True
	}
	return False
}
