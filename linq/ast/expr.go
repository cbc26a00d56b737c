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

import "fmt"

// Constructor helpers. Each returns a freshly allocated node; sharing is
// the caller's choice.

// Constant returns a literal whose static type is inferred from the value:
// nil is a null of type Object, bool is boolean, string is String, and
// integral numbers are int.
func Constant(v any) *ConstantExpr {
	v = normalizeValue(v)
	return &ConstantExpr{Value: v, Typ: typeOfValue(v)}
}

// ConstantOf returns a literal with an explicit declared type.
func ConstantOf(v any, t *Type) *ConstantExpr {
	return &ConstantExpr{Value: normalizeValue(v), Typ: t}
}

// Parameter returns a new named binding. Every call returns a distinct
// variable, even for a name already in use.
func Parameter(t *Type, name string) *ParameterExpr {
	return &ParameterExpr{Name: name, Typ: t}
}

// MakeUnary constructs a unary expression of the given kind.
func MakeUnary(op Kind, operand Expr, t *Type) *UnaryExpr {
	return &UnaryExpr{Op: op, Operand: operand, Typ: t}
}

// Not negates a boolean expression.
func Not(e Expr) *UnaryExpr { return MakeUnary(KindNot, e, Boolean) }

// Negate is arithmetic negation.
func Negate(e Expr) *UnaryExpr { return MakeUnary(KindNegate, e, e.Type()) }

// Convert casts an expression to the given type.
func Convert(e Expr, t *Type) *UnaryExpr { return MakeUnary(KindConvert, e, t) }

// PreIncrement, PreDecrement, PostIncrement and PostDecrement build the
// mutating unary forms.
func PreIncrement(e Expr) *UnaryExpr  { return MakeUnary(KindPreIncrementAssign, e, e.Type()) }
func PreDecrement(e Expr) *UnaryExpr  { return MakeUnary(KindPreDecrementAssign, e, e.Type()) }
func PostIncrement(e Expr) *UnaryExpr { return MakeUnary(KindPostIncrementAssign, e, e.Type()) }
func PostDecrement(e Expr) *UnaryExpr { return MakeUnary(KindPostDecrementAssign, e, e.Type()) }

// MakeBinary constructs a binary expression of the given kind, computing
// its static type from the operator family.
func MakeBinary(op Kind, left, right Expr) *BinaryExpr {
	var t *Type
	switch op {
	case KindEqual, KindNotEqual, KindLessThan, KindGreaterThan,
		KindLessThanOrEqual, KindGreaterThanOrEqual, KindAndAlso, KindOrElse:
		t = Boolean
	case KindAssign, KindAddAssign, KindSubtractAssign, KindMultiplyAssign,
		KindDivideAssign, KindModuloAssign:
		t = left.Type()
	default:
		t = left.Type()
	}
	return &BinaryExpr{Op: op, Left: left, Right: right, Typ: t}
}

func Equal(l, r Expr) *BinaryExpr    { return MakeBinary(KindEqual, l, r) }
func NotEqual(l, r Expr) *BinaryExpr { return MakeBinary(KindNotEqual, l, r) }
func AndAlso(l, r Expr) *BinaryExpr  { return MakeBinary(KindAndAlso, l, r) }
func OrElse(l, r Expr) *BinaryExpr   { return MakeBinary(KindOrElse, l, r) }
func Assign(l, r Expr) *BinaryExpr   { return MakeBinary(KindAssign, l, r) }
func Add(l, r Expr) *BinaryExpr      { return MakeBinary(KindAdd, l, r) }
func Subtract(l, r Expr) *BinaryExpr { return MakeBinary(KindSubtract, l, r) }
func Multiply(l, r Expr) *BinaryExpr { return MakeBinary(KindMultiply, l, r) }
func Divide(l, r Expr) *BinaryExpr   { return MakeBinary(KindDivide, l, r) }
func Modulo(l, r Expr) *BinaryExpr   { return MakeBinary(KindModulo, l, r) }

// MakeTernary constructs a ternary expression of the given kind.
func MakeTernary(op Kind, e0, e1, e2 Expr) *TernaryExpr {
	return &TernaryExpr{Op: op, Cond: e0, Then: e1, Else: e2, Typ: e1.Type()}
}

// Condition builds cond ? ifTrue : ifFalse.
func Condition(cond, ifTrue, ifFalse Expr) *TernaryExpr {
	return MakeTernary(KindConditional, cond, ifTrue, ifFalse)
}

// TypeIs builds an instance-of test.
func TypeIs(e Expr, target *Type) *TypeBinaryExpr {
	return &TypeBinaryExpr{Op: KindTypeIs, Expr: e, Target: target, Typ: Boolean}
}

// TypeAs builds a checked conversion that yields null on mismatch.
func TypeAs(e Expr, target *Type) *TypeBinaryExpr {
	return &TypeBinaryExpr{Op: KindTypeAs, Expr: e, Target: target, Typ: target}
}

// Field accesses a field on target; a nil target with a declaring type is
// a static field reference. The field's type defaults to the declaring
// type, which covers the boxed-constant references this package needs;
// use FieldOf when the field type differs.
func Field(target Expr, declaring *Type, name string) *MemberExpr {
	return &MemberExpr{Target: target, Declaring: declaring, Name: name, Typ: declaring}
}

// FieldOf is Field with an explicit field type.
func FieldOf(target Expr, declaring *Type, name string, t *Type) *MemberExpr {
	return &MemberExpr{Target: target, Declaring: declaring, Name: name, Typ: t}
}

// Call invokes method on target (nil for a plain function call) with the
// given result type.
func Call(target Expr, method string, t *Type, args ...Expr) *CallExpr {
	return &CallExpr{Target: target, Method: method, Args: args, Typ: t}
}

// New instantiates a class.
func New(class *Type, args ...Expr) *NewExpr {
	return &NewExpr{Class: class, Args: args}
}

// NewAnonymous instantiates a class with an anonymous body. Declarations
// initialized by such an expression are never inlined.
func NewAnonymous(class *Type, args []Expr, members []Stmt) *NewExpr {
	return &NewExpr{Class: class, Args: args, Members: members}
}

// Declare binds a parameter, optionally with an initializer.
func Declare(mods Modifier, parameter *ParameterExpr, initializer Expr) *DeclStmt {
	return &DeclStmt{Modifiers: mods, Parameter: parameter, Initializer: initializer}
}

// DeclareNamed declares a fresh parameter named name whose type is taken
// from the initializer.
func DeclareNamed(mods Modifier, name string, initializer Expr) *DeclStmt {
	return Declare(mods, Parameter(initializer.Type(), name), initializer)
}

// Statement wraps an expression as a statement evaluated for effect.
func Statement(e Expr) *ExprStmt { return &ExprStmt{Expression: e} }

// Return builds a returning statement; e may be nil.
func Return(e Expr) *GotoStmt { return &GotoStmt{GKind: GotoReturn, Expression: e} }

// Break and Continue build the label-transfer forms.
func Break(label string) *GotoStmt    { return &GotoStmt{GKind: GotoBreak, Label: label} }
func Continue(label string) *GotoStmt { return &GotoStmt{GKind: GotoContinue, Label: label} }

// IfThen builds a single-arm conditional statement.
func IfThen(test Expr, then Stmt) *ConditionalStmt {
	return &ConditionalStmt{List: []Node{test, then}}
}

// IfThenElse builds an if/else-if/else chain from a flat arm list
// [test0, stmt0, test1, stmt1, ...] with an optional trailing else
// statement.
func IfThenElse(list ...Node) *ConditionalStmt {
	if len(list) < 2 {
		panic(fmt.Sprintf("ast: conditional statement needs at least one arm, got %d nodes", len(list)))
	}
	return &ConditionalStmt{List: list}
}

// Block wraps statements in a block. The slice is copied.
func Block(list ...Stmt) *BlockStmt {
	return &BlockStmt{List: append([]Stmt(nil), list...)}
}
