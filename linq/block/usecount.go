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

import "linq4go.org/go/linq/ast"

// A slot is the per-declaration workspace of the inlining pass.
type slot struct {
	parameter  *ast.ParameterExpr
	expression ast.Expr
	count      int
}

// A useCounter counts references to the parameters registered for the
// block being optimized. Every textual mention counts, including the
// left-hand side of an assignment; parameters that are not registered
// belong to an outer scope and are ignored.
type useCounter struct {
	ast.Rewriter
	slots map[*ast.ParameterExpr]*slot
}

func newUseCounter() *useCounter {
	return &useCounter{slots: map[*ast.ParameterExpr]*slot{}}
}

func (c *useCounter) register(decl *ast.DeclStmt) {
	c.slots[decl.Parameter] = &slot{
		parameter:  decl.Parameter,
		expression: decl.Initializer,
	}
}

func (c *useCounter) VisitParameter(p *ast.ParameterExpr) ast.Expr {
	if s, ok := c.slots[p]; ok {
		s.count++
	}
	return p
}
