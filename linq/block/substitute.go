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

package block

import (
	"fmt"

	"linq4go.org/go/linq/ast"
)

// A substituteVisitor replaces parameters with expressions from an
// identity-keyed map, expanding substitutions transitively. It never
// substitutes into the written operand of an l-value-modifying operator,
// and it refuses to expand a parameter that is already being expanded.
type substituteVisitor struct {
	ast.Rewriter
	subMap  map[*ast.ParameterExpr]ast.Expr
	actives map[*ast.ParameterExpr]bool
}

func newSubstituteVisitor(subMap map[*ast.ParameterExpr]ast.Expr) *substituteVisitor {
	return &substituteVisitor{
		subMap:  subMap,
		actives: map[*ast.ParameterExpr]bool{},
	}
}

func (v *substituteVisitor) VisitParameter(p *ast.ParameterExpr) ast.Expr {
	e, ok := v.subMap[p]
	if !ok {
		return p
	}
	if v.actives[p] {
		panic(fmt.Sprintf("block: recursive expansion of %s in %v", p.Name, activeNames(v.actives)))
	}
	v.actives[p] = true
	defer delete(v.actives, p)
	// Recursively substitute.
	return e.AcceptExpr(v)
}

func (v *substituteVisitor) VisitUnary(x *ast.UnaryExpr, operand ast.Expr) ast.Expr {
	if x.Op.ModifiesLvalue() {
		operand = x.Operand // avoid substitution
		if _, ok := operand.(*ast.ParameterExpr); ok {
			// t++ must not become 1++.
			return x
		}
	}
	return v.Rewriter.VisitUnary(x, operand)
}

func (v *substituteVisitor) VisitBinary(x *ast.BinaryExpr, left, right ast.Expr) ast.Expr {
	if x.Op.ModifiesLvalue() {
		left = x.Left // avoid substitution
		if p, ok := left.(*ast.ParameterExpr); ok {
			if _, ok := v.subMap[p]; ok {
				// The target is scheduled to be inlined, so the write to
				// it is dead; only the right-hand side survives.
				return right.AcceptExpr(v)
			}
		}
	}
	return v.Rewriter.VisitBinary(x, left, right)
}

func activeNames(m map[*ast.ParameterExpr]bool) []string {
	names := make([]string, 0, len(m))
	for p := range m {
		names = append(names, p.Name)
	}
	return names
}
