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

package optimize

import "linq4go.org/go/linq/ast"

// always reports whether an expression always evaluates to true or false.
// It recognizes only the four canonical forms, boxed and unboxed; it
// assumes the expression has already been optimized, so other truthy
// shapes have been folded by the time they are visible here.
func always(x ast.Expr) (value, ok bool) {
	if ast.Equals(x, False) || ast.Equals(x, BoxedFalse) {
		return false, true
	}
	if ast.Equals(x, True) || ast.Equals(x, BoxedTrue) {
		return true, true
	}
	return false, false
}

// Always classifies an already-optimized expression as definitely true,
// definitely false, or unknown (ok reports whether it is known).
func Always(x ast.Expr) (value, ok bool) { return always(x) }

func isConstantNull(x ast.Expr) bool {
	c, ok := x.(*ast.ConstantExpr)
	return ok && c.Value == nil
}
