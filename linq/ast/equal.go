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

import (
	"hash/fnv"
	"io"
)

// Equals reports structural equality of two nodes: same kind, same static
// type, equal children. Parameters are compared by identity, never by
// name; constants compare value equality plus declared type.
func Equals(a, b Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch a := a.(type) {
	case *ConstantExpr:
		b, ok := b.(*ConstantExpr)
		return ok && a.Typ == b.Typ && valueEqual(a.Value, b.Value)
	case *ParameterExpr:
		return false // identity only, handled above
	case *UnaryExpr:
		b, ok := b.(*UnaryExpr)
		return ok && a.Op == b.Op && a.Typ == b.Typ && Equals(a.Operand, b.Operand)
	case *BinaryExpr:
		b, ok := b.(*BinaryExpr)
		return ok && a.Op == b.Op && a.Typ == b.Typ &&
			Equals(a.Left, b.Left) && Equals(a.Right, b.Right)
	case *TernaryExpr:
		b, ok := b.(*TernaryExpr)
		return ok && a.Op == b.Op && a.Typ == b.Typ &&
			Equals(a.Cond, b.Cond) && Equals(a.Then, b.Then) && Equals(a.Else, b.Else)
	case *TypeBinaryExpr:
		b, ok := b.(*TypeBinaryExpr)
		return ok && a.Op == b.Op && a.Target == b.Target && Equals(a.Expr, b.Expr)
	case *MemberExpr:
		b, ok := b.(*MemberExpr)
		return ok && a.Declaring == b.Declaring && a.Name == b.Name && a.Typ == b.Typ &&
			equalsOrNil(a.Target, b.Target)
	case *CallExpr:
		b, ok := b.(*CallExpr)
		return ok && a.Method == b.Method && a.Typ == b.Typ &&
			equalsOrNil(a.Target, b.Target) && equalExprs(a.Args, b.Args)
	case *NewExpr:
		b, ok := b.(*NewExpr)
		return ok && a.Class == b.Class && equalExprs(a.Args, b.Args) &&
			equalStmts(a.Members, b.Members)
	case *DeclStmt:
		b, ok := b.(*DeclStmt)
		return ok && a.Modifiers == b.Modifiers &&
			a.Parameter == b.Parameter && equalsOrNil(a.Initializer, b.Initializer)
	case *GotoStmt:
		b, ok := b.(*GotoStmt)
		return ok && a.GKind == b.GKind && a.Label == b.Label &&
			equalsOrNil(a.Expression, b.Expression)
	case *ExprStmt:
		b, ok := b.(*ExprStmt)
		return ok && equalsOrNil(a.Expression, b.Expression)
	case *ConditionalStmt:
		b, ok := b.(*ConditionalStmt)
		if !ok || len(a.List) != len(b.List) {
			return false
		}
		for i := range a.List {
			if !Equals(a.List[i], b.List[i]) {
				return false
			}
		}
		return true
	case *BlockStmt:
		b, ok := b.(*BlockStmt)
		return ok && equalStmts(a.List, b.List)
	}
	return false
}

func equalsOrNil(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Equals(a, b)
}

func equalExprs(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equals(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalStmts(a, b []Stmt) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equals(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Hash returns a structural hash consistent with Equals: equal nodes hash
// equal. Parameters hash by name and type, which keeps the hash stable
// while Equals still separates distinct parameters.
func Hash(n Node) uint64 {
	h := fnv.New64a()
	hashNode(h, n)
	return h.Sum64()
}

func hashNode(h io.Writer, n Node) {
	if n == nil {
		h.Write([]byte{0})
		return
	}
	h.Write([]byte{byte(n.Kind())})
	switch n := n.(type) {
	case *ConstantExpr:
		hashString(h, n.Typ.Name)
		hashString(h, hashValue(n.Value))
	case *ParameterExpr:
		hashString(h, n.Typ.Name)
		hashString(h, n.Name)
	case *UnaryExpr:
		hashString(h, n.Typ.Name)
		hashNode(h, n.Operand)
	case *BinaryExpr:
		hashString(h, n.Typ.Name)
		hashNode(h, n.Left)
		hashNode(h, n.Right)
	case *TernaryExpr:
		hashString(h, n.Typ.Name)
		hashNode(h, n.Cond)
		hashNode(h, n.Then)
		hashNode(h, n.Else)
	case *TypeBinaryExpr:
		hashString(h, n.Target.Name)
		hashNode(h, n.Expr)
	case *MemberExpr:
		if n.Declaring != nil {
			hashString(h, n.Declaring.Name)
		}
		hashString(h, n.Name)
		hashOptional(h, n.Target)
	case *CallExpr:
		hashString(h, n.Method)
		hashOptional(h, n.Target)
		for _, a := range n.Args {
			hashNode(h, a)
		}
	case *NewExpr:
		hashString(h, n.Class.Name)
		for _, a := range n.Args {
			hashNode(h, a)
		}
		for _, m := range n.Members {
			hashNode(h, m)
		}
	case *DeclStmt:
		h.Write([]byte{byte(n.Modifiers)})
		hashNode(h, n.Parameter)
		hashOptional(h, n.Initializer)
	case *GotoStmt:
		h.Write([]byte{byte(n.GKind)})
		hashString(h, n.Label)
		hashOptional(h, n.Expression)
	case *ExprStmt:
		hashOptional(h, n.Expression)
	case *ConditionalStmt:
		for _, e := range n.List {
			hashNode(h, e)
		}
	case *BlockStmt:
		for _, s := range n.List {
			hashNode(h, s)
		}
	}
}

func hashOptional(h io.Writer, e Expr) {
	if e == nil {
		h.Write([]byte{0})
		return
	}
	hashNode(h, e)
}

func hashString(h io.Writer, s string) {
	io.WriteString(h, s)
	h.Write([]byte{0xff})
}
