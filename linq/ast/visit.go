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

package ast

// A Visitor rewrites a tree bottom-up. Accept visits the children of a
// node first and then dispatches the per-kind method with the rewritten
// children; a method returns either the original node or a replacement.
//
// Concrete visitors embed Rewriter and override the methods they care
// about; calling the embedded method is the pass-through behavior.
type Visitor interface {
	VisitConstant(x *ConstantExpr) Expr
	VisitParameter(x *ParameterExpr) Expr
	VisitUnary(x *UnaryExpr, operand Expr) Expr
	VisitBinary(x *BinaryExpr, left, right Expr) Expr
	VisitTernary(x *TernaryExpr, e0, e1, e2 Expr) Expr
	VisitTypeBinary(x *TypeBinaryExpr, operand Expr) Expr
	VisitMember(x *MemberExpr, target Expr) Expr
	VisitCall(x *CallExpr, target Expr, args []Expr) Expr
	VisitNew(x *NewExpr, args []Expr, members []Stmt) Expr
	VisitDeclaration(x *DeclStmt, initializer Expr) Stmt
	VisitGoto(x *GotoStmt, expression Expr) Stmt
	VisitStatement(x *ExprStmt, expression Expr) Stmt
	VisitConditional(x *ConditionalStmt, list []Node) Stmt
	VisitBlock(x *BlockStmt, list []Stmt) Stmt
}

// ----------------------------------------------------------------------------
// Accept

func (x *ConstantExpr) AcceptExpr(v Visitor) Expr  { return v.VisitConstant(x) }
func (x *ParameterExpr) AcceptExpr(v Visitor) Expr { return v.VisitParameter(x) }

func (x *UnaryExpr) AcceptExpr(v Visitor) Expr {
	return v.VisitUnary(x, x.Operand.AcceptExpr(v))
}

func (x *BinaryExpr) AcceptExpr(v Visitor) Expr {
	return v.VisitBinary(x, x.Left.AcceptExpr(v), x.Right.AcceptExpr(v))
}

func (x *TernaryExpr) AcceptExpr(v Visitor) Expr {
	return v.VisitTernary(x, x.Cond.AcceptExpr(v), x.Then.AcceptExpr(v), x.Else.AcceptExpr(v))
}

func (x *TypeBinaryExpr) AcceptExpr(v Visitor) Expr {
	return v.VisitTypeBinary(x, x.Expr.AcceptExpr(v))
}

func (x *MemberExpr) AcceptExpr(v Visitor) Expr {
	var target Expr
	if x.Target != nil {
		target = x.Target.AcceptExpr(v)
	}
	return v.VisitMember(x, target)
}

func (x *CallExpr) AcceptExpr(v Visitor) Expr {
	var target Expr
	if x.Target != nil {
		target = x.Target.AcceptExpr(v)
	}
	return v.VisitCall(x, target, acceptExprs(x.Args, v))
}

func (x *NewExpr) AcceptExpr(v Visitor) Expr {
	return v.VisitNew(x, acceptExprs(x.Args, v), acceptStmts(x.Members, v))
}

func (s *DeclStmt) AcceptStmt(v Visitor) Stmt {
	// The parameter is not visited: a rewrite may not return a
	// ParameterExpr, and the declaration owns its binding.
	var init Expr
	if s.Initializer != nil {
		init = s.Initializer.AcceptExpr(v)
	}
	return v.VisitDeclaration(s, init)
}

func (s *GotoStmt) AcceptStmt(v Visitor) Stmt {
	var e Expr
	if s.Expression != nil {
		e = s.Expression.AcceptExpr(v)
	}
	return v.VisitGoto(s, e)
}

func (s *ExprStmt) AcceptStmt(v Visitor) Stmt {
	var e Expr
	if s.Expression != nil {
		e = s.Expression.AcceptExpr(v)
	}
	return v.VisitStatement(s, e)
}

func (s *ConditionalStmt) AcceptStmt(v Visitor) Stmt {
	list := s.List
	var out []Node
	for i, n := range list {
		var n2 Node
		switch n := n.(type) {
		case Expr:
			n2 = n.AcceptExpr(v)
		case Stmt:
			n2 = n.AcceptStmt(v)
		}
		if out == nil && n2 != n {
			out = make([]Node, i, len(list))
			copy(out, list[:i])
		}
		if out != nil {
			out = append(out, n2)
		}
	}
	if out == nil {
		out = list
	}
	return v.VisitConditional(s, out)
}

func (s *BlockStmt) AcceptStmt(v Visitor) Stmt {
	return v.VisitBlock(s, acceptStmts(s.List, v))
}

// acceptExprs visits each element and preserves slice identity when no
// element changed.
func acceptExprs(list []Expr, v Visitor) []Expr {
	var out []Expr
	for i, e := range list {
		e2 := e.AcceptExpr(v)
		if out == nil && e2 != e {
			out = make([]Expr, i, len(list))
			copy(out, list[:i])
		}
		if out != nil {
			out = append(out, e2)
		}
	}
	if out == nil {
		return list
	}
	return out
}

func acceptStmts(list []Stmt, v Visitor) []Stmt {
	var out []Stmt
	for i, s := range list {
		s2 := s.AcceptStmt(v)
		if out == nil && s2 != s {
			out = make([]Stmt, i, len(list))
			copy(out, list[:i])
		}
		if out != nil {
			out = append(out, s2)
		}
	}
	if out == nil {
		return list
	}
	return out
}

// ----------------------------------------------------------------------------
// Rewriter

// Rewriter is the identity visitor: each method rebuilds its node from the
// rewritten children, returning the original node when nothing changed so
// that unchanged subtrees keep their identity.
type Rewriter struct{}

func (Rewriter) VisitConstant(x *ConstantExpr) Expr   { return x }
func (Rewriter) VisitParameter(x *ParameterExpr) Expr { return x }

func (Rewriter) VisitUnary(x *UnaryExpr, operand Expr) Expr {
	if operand == x.Operand {
		return x
	}
	return &UnaryExpr{Op: x.Op, Operand: operand, Typ: x.Typ}
}

func (Rewriter) VisitBinary(x *BinaryExpr, left, right Expr) Expr {
	if left == x.Left && right == x.Right {
		return x
	}
	return &BinaryExpr{Op: x.Op, Left: left, Right: right, Typ: x.Typ}
}

func (Rewriter) VisitTernary(x *TernaryExpr, e0, e1, e2 Expr) Expr {
	if e0 == x.Cond && e1 == x.Then && e2 == x.Else {
		return x
	}
	return &TernaryExpr{Op: x.Op, Cond: e0, Then: e1, Else: e2, Typ: x.Typ}
}

func (Rewriter) VisitTypeBinary(x *TypeBinaryExpr, operand Expr) Expr {
	if operand == x.Expr {
		return x
	}
	return &TypeBinaryExpr{Op: x.Op, Expr: operand, Target: x.Target, Typ: x.Typ}
}

func (Rewriter) VisitMember(x *MemberExpr, target Expr) Expr {
	if target == x.Target {
		return x
	}
	return &MemberExpr{Target: target, Declaring: x.Declaring, Name: x.Name, Typ: x.Typ}
}

func (Rewriter) VisitCall(x *CallExpr, target Expr, args []Expr) Expr {
	if target == x.Target && sameExprs(args, x.Args) {
		return x
	}
	return &CallExpr{Target: target, Method: x.Method, Args: args, Typ: x.Typ}
}

func (Rewriter) VisitNew(x *NewExpr, args []Expr, members []Stmt) Expr {
	if sameExprs(args, x.Args) && sameStmts(members, x.Members) {
		return x
	}
	return &NewExpr{Class: x.Class, Args: args, Members: members}
}

func (Rewriter) VisitDeclaration(x *DeclStmt, initializer Expr) Stmt {
	if initializer == x.Initializer {
		return x
	}
	return &DeclStmt{Modifiers: x.Modifiers, Parameter: x.Parameter, Initializer: initializer}
}

func (Rewriter) VisitGoto(x *GotoStmt, expression Expr) Stmt {
	if expression == x.Expression {
		return x
	}
	return &GotoStmt{GKind: x.GKind, Label: x.Label, Expression: expression}
}

func (Rewriter) VisitStatement(x *ExprStmt, expression Expr) Stmt {
	if expression == x.Expression {
		return x
	}
	return &ExprStmt{Expression: expression}
}

func (Rewriter) VisitConditional(x *ConditionalStmt, list []Node) Stmt {
	if sameNodes(list, x.List) {
		return x
	}
	return &ConditionalStmt{List: list}
}

func (Rewriter) VisitBlock(x *BlockStmt, list []Stmt) Stmt {
	if sameStmts(list, x.List) {
		return x
	}
	return &BlockStmt{List: list}
}

func sameExprs(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameStmts(a, b []Stmt) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameNodes(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
