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

// Package ast declares the types used to represent the syntax trees of the
// query-expression language: a small imperative/expression language with
// nullable references and primitive boxing.
//
// Trees are immutable: rewrites build new nodes and share unchanged
// subtrees. Parameters are compared by identity, never by name, so a
// *ParameterExpr pointer is the variable.
package ast

// ----------------------------------------------------------------------------
// Interfaces

// A Node represents any node in the tree.
type Node interface {
	// Kind identifies the node variant or operator.
	Kind() Kind
	// Type is the static type of the node.
	Type() *Type
}

// An Expr is implemented by all expression nodes.
type Expr interface {
	Node
	// AcceptExpr visits the children of the expression bottom-up and then
	// dispatches the visitor's per-kind method with the rewritten
	// children. The original node is returned when nothing changed.
	AcceptExpr(v Visitor) Expr
}

// A Stmt is implemented by all statement nodes.
type Stmt interface {
	Node
	AcceptStmt(v Visitor) Stmt
}

// ----------------------------------------------------------------------------
// Expressions

// A ConstantExpr is a literal. A nil Value is the null literal; its
// declared static type is carried by Typ.
type ConstantExpr struct {
	Value any
	Typ   *Type
}

// A ParameterExpr is a named binding. Two parameters are the same variable
// iff they are the same object.
type ParameterExpr struct {
	Name string
	Typ  *Type
}

// A UnaryExpr applies a one-operand operator, including Not, Convert and
// the mutating increment/decrement forms.
type UnaryExpr struct {
	Op      Kind
	Operand Expr
	Typ     *Type
}

// A BinaryExpr applies a two-operand operator.
type BinaryExpr struct {
	Op          Kind
	Left, Right Expr
	Typ         *Type
}

// A TernaryExpr is a three-operand expression; only the Conditional form
// is rewritten by the optimizer.
type TernaryExpr struct {
	Op               Kind
	Cond, Then, Else Expr
	Typ              *Type
}

// A TypeBinaryExpr tests or converts an expression against a target type,
// as in an instance-of test.
type TypeBinaryExpr struct {
	Op     Kind
	Expr   Expr
	Target *Type
	Typ    *Type
}

// A MemberExpr accesses a field. A nil Target with a declaring type is a
// static field reference such as Boolean.TRUE.
type MemberExpr struct {
	Target    Expr
	Declaring *Type
	Name      string
	Typ       *Type
}

// A CallExpr invokes a method. A nil Target is a plain function call.
type CallExpr struct {
	Target Expr
	Method string
	Args   []Expr
	Typ    *Type
}

// A NewExpr instantiates a class. A non-empty Members list is an
// anonymous class body.
type NewExpr struct {
	Class   *Type
	Args    []Expr
	Members []Stmt
}

func (x *ConstantExpr) Kind() Kind   { return KindConstant }
func (x *ParameterExpr) Kind() Kind  { return KindParameter }
func (x *UnaryExpr) Kind() Kind      { return x.Op }
func (x *BinaryExpr) Kind() Kind     { return x.Op }
func (x *TernaryExpr) Kind() Kind    { return x.Op }
func (x *TypeBinaryExpr) Kind() Kind { return x.Op }
func (x *MemberExpr) Kind() Kind     { return KindMemberAccess }
func (x *CallExpr) Kind() Kind       { return KindCall }
func (x *NewExpr) Kind() Kind        { return KindNew }

func (x *ConstantExpr) Type() *Type   { return x.Typ }
func (x *ParameterExpr) Type() *Type  { return x.Typ }
func (x *UnaryExpr) Type() *Type      { return x.Typ }
func (x *BinaryExpr) Type() *Type     { return x.Typ }
func (x *TernaryExpr) Type() *Type    { return x.Typ }
func (x *TypeBinaryExpr) Type() *Type { return x.Typ }
func (x *MemberExpr) Type() *Type     { return x.Typ }
func (x *CallExpr) Type() *Type       { return x.Typ }
func (x *NewExpr) Type() *Type        { return x.Class }

// ----------------------------------------------------------------------------
// Statements

// A GotoKind distinguishes the returning-statement forms.
type GotoKind uint8

const (
	GotoBreak GotoKind = iota
	GotoContinue
	GotoGoto
	GotoReturn
)

// A DeclStmt declares and optionally initializes a variable. The ModFinal
// bit marks the declaration safe for common-subexpression reuse when an
// initializer is present.
type DeclStmt struct {
	Modifiers   Modifier
	Parameter   *ParameterExpr
	Initializer Expr
}

// A GotoStmt transfers control, optionally carrying a value.
type GotoStmt struct {
	GKind      GotoKind
	Label      string
	Expression Expr
}

// An ExprStmt evaluates an expression for effect.
type ExprStmt struct {
	Expression Expr
}

// A ConditionalStmt is a flat arm list [test0, stmt0, test1, stmt1, ...]
// of even length, or odd length when a trailing else statement is present,
// representing an if/else-if/else chain.
type ConditionalStmt struct {
	List []Node
}

// A BlockStmt is an ordered sequence of statements.
type BlockStmt struct {
	List []Stmt
}

func (s *DeclStmt) Kind() Kind        { return KindDeclaration }
func (s *GotoStmt) Kind() Kind        { return KindGoto }
func (s *ExprStmt) Kind() Kind        { return KindStatement }
func (s *ConditionalStmt) Kind() Kind { return KindConditional }
func (s *BlockStmt) Kind() Kind       { return KindBlock }

func (s *DeclStmt) Type() *Type        { return Void }
func (s *GotoStmt) Type() *Type        { return Void }
func (s *ConditionalStmt) Type() *Type { return Void }

func (s *ExprStmt) Type() *Type {
	if s.Expression == nil {
		return Void
	}
	return s.Expression.Type()
}

func (s *BlockStmt) Type() *Type {
	if n := len(s.List); n > 0 {
		return s.List[n-1].Type()
	}
	return Void
}

// A Modifier is a set of declaration modifier bits.
type Modifier uint8

const (
	ModFinal Modifier = 1 << iota
	ModStatic
)

func (m Modifier) String() string {
	s := ""
	if m&ModStatic != 0 {
		s = "static"
	}
	if m&ModFinal != 0 {
		if s != "" {
			s += " "
		}
		s += "final"
	}
	return s
}

// EmptyStatement is the sentinel a rewrite returns when it produced
// nothing. It is compared by identity, never by structure.
var EmptyStatement Stmt = &ExprStmt{}
