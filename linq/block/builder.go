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

// Package block builds statement blocks incrementally: it assigns unique
// names to declared variables, shares common subexpressions through a
// reuse table, and on ToBlock counts uses and inlines single-use
// declarations before re-running peephole optimization.
package block

import (
	"fmt"
	"strconv"
	"strings"

	"linq4go.org/go/linq/ast"
	"linq4go.org/go/linq/optimize"
)

// A Builder accumulates statements for a block. It is not safe for
// concurrent use; independent builders are independent.
type Builder struct {
	statements []ast.Stmt
	variables  map[string]bool

	// expressionForReuse maps the normalized initializer of each final
	// declaration added with optimize=true to that declaration.
	expressionForReuse reuseTable

	optimizing bool
	parent     *Builder
}

// New creates a Builder. optimizing controls whether common
// subexpressions are shared and ToBlock runs the inlining pass.
func New(optimizing bool) *Builder {
	return NewChild(optimizing, nil)
}

// NewChild creates a Builder whose name scope nests inside parent.
func NewChild(optimizing bool, parent *Builder) *Builder {
	return &Builder{
		variables:  map[string]bool{},
		optimizing: optimizing,
		parent:     parent,
	}
}

// Clear resets the builder.
func (b *Builder) Clear() {
	b.statements = nil
	b.variables = map[string]bool{}
	b.expressionForReuse = reuseTable{}
}

// Add appends a statement. Adding a declaration whose name already exists
// in the block scope chain is a programmer error and panics.
func (b *Builder) Add(statement ast.Stmt) {
	b.statements = append(b.statements, statement)
	if decl, ok := statement.(*ast.DeclStmt); ok {
		name := decl.Parameter.Name
		if b.HasVariable(name) {
			panic(fmt.Sprintf("block: duplicate variable %s", name))
		}
		b.variables[name] = true
		b.addExpressionForReuse(decl)
	}
}

// AddExpr appends an expression as the block result, wrapped in a
// returning statement.
func (b *Builder) AddExpr(expression ast.Expr) {
	b.Add(ast.Return(expression))
}

// Append appends an expression and returns an expression, possibly a
// variable, that represents its value within the block.
func (b *Builder) Append(name string, expression ast.Expr) ast.Expr {
	return b.AppendExpr(name, expression, true)
}

// AppendIfNotNil is Append, passing a nil expression through.
func (b *Builder) AppendIfNotNil(name string, expression ast.Expr) ast.Expr {
	if expression == nil {
		return nil
	}
	return b.AppendExpr(name, expression, true)
}

// AppendExpr appends an expression, optionally allowing it to be assigned
// to a shared variable. Pass optimize=false when the expression has side
// effects or a time-dependent value.
func (b *Builder) AppendExpr(name string, expression ast.Expr, optimize bool) ast.Expr {
	b.foldTrailingGoto()
	return b.appendExpr(name, expression, optimize)
}

// AppendBlock folds a sub-block's statements into this block and returns
// an expression for the sub-block's result.
func (b *Builder) AppendBlock(name string, block *ast.BlockStmt) ast.Expr {
	return b.AppendBlockExpr(name, block, true)
}

// AppendBlockExpr is AppendBlock with explicit optimize control.
// Incoming declarations that clash with a name already declared in this
// block or an ancestor are re-declared under a fresh name, and later
// statements see the renamed parameter through a substitution map.
func (b *Builder) AppendBlockExpr(name string, block *ast.BlockStmt, optimize bool) ast.Expr {
	b.foldTrailingGoto()
	var result ast.Expr
	replacements := map[*ast.ParameterExpr]ast.Expr{}
	visitor := newSubstituteVisitor(replacements)
	for i, statement := range block.List {
		if len(replacements) > 0 {
			// Save effort: only substitute when there is something to.
			statement = statement.AcceptStmt(visitor)
		}
		if decl, ok := statement.(*ast.DeclStmt); ok && b.HasVariable(decl.Parameter.Name) {
			x := b.Append(b.newName(decl.Parameter.Name, optimize), decl.Initializer)
			statement = nil
			result = x
			if ast.Expr(decl.Parameter) != x {
				// decl.Parameter can be x itself when the identical
				// declaration was already present in this builder.
				replacements[decl.Parameter] = x
			}
		} else {
			b.Add(statement)
		}
		if i == len(block.List)-1 {
			switch s := statement.(type) {
			case *ast.DeclStmt:
				result = s.Parameter
			case *ast.GotoStmt:
				b.statements = b.statements[:len(b.statements)-1]
				result = b.appendExpr(name, s.Expression, optimize)
				if !isSimpleExpression(result) {
					declare := ast.Declare(ast.ModFinal,
						ast.Parameter(result.Type(), b.newName(name, optimize)), result)
					b.Add(declare)
					result = declare.Parameter
				}
			}
		}
	}
	return result
}

// foldTrailingGoto rewrites a trailing "return expr;" into "expr;": the
// caller is folding a prior block into this one, and its result now flows
// through the appended expression.
func (b *Builder) foldTrailingGoto() {
	if n := len(b.statements); n > 0 {
		if g, ok := b.statements[n-1].(*ast.GotoStmt); ok {
			b.statements[n-1] = ast.Statement(g.Expression)
		}
	}
}

func (b *Builder) appendExpr(name string, expression ast.Expr, optimize bool) ast.Expr {
	if isSimpleExpression(expression) {
		// Already simple; no need to declare a variable or even to
		// evaluate the expression.
		return expression
	}
	if b.optimizing && optimize {
		if decl := b.ComputedExpression(expression); decl != nil {
			return decl.Parameter
		}
	}
	declare := ast.Declare(ast.ModFinal,
		ast.Parameter(expression.Type(), b.newName(name, optimize)), expression)
	b.Add(declare)
	return declare.Parameter
}

// isSimpleExpression reports whether an expression is cheap enough to
// inline unconditionally: a parameter, a constant, or a cast over one.
func isSimpleExpression(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.ParameterExpr, *ast.ConstantExpr:
		return true
	case *ast.UnaryExpr:
		return e.Op == ast.KindConvert && isSimpleExpression(e.Operand)
	}
	return false
}

func isSafeForReuse(decl *ast.DeclStmt) bool {
	return decl.Modifiers&ast.ModFinal != 0 && decl.Initializer != nil
}

func (b *Builder) addExpressionForReuse(decl *ast.DeclStmt) {
	if strings.HasPrefix(decl.Parameter.Name, "_") {
		// The caller forced the variable to remain distinct.
		return
	}
	if isSafeForReuse(decl) {
		b.expressionForReuse.put(normalizeDeclaration(decl), decl)
	}
}

// normalizeDeclaration keys a declaration on its declared type: a missing
// initializer becomes a typed null, and an initializer of a different
// type is wrapped in a cast, so that two declarations of different
// declared types never share a slot.
func normalizeDeclaration(decl *ast.DeclStmt) ast.Expr {
	expr := decl.Initializer
	declType := decl.Parameter.Typ
	if expr == nil {
		return ast.ConstantOf(nil, declType)
	}
	if expr.Type() != declType {
		return ast.Convert(expr, declType)
	}
	return expr
}

// ComputedExpression returns the declaration that already binds the given
// expression to a variable, consulting ancestors first, or nil.
func (b *Builder) ComputedExpression(expr ast.Expr) *ast.DeclStmt {
	if b.parent != nil {
		if decl := b.parent.ComputedExpression(expr); decl != nil {
			return decl
		}
	}
	if b.optimizing {
		return b.expressionForReuse.get(expr)
	}
	return nil
}

// ToBlock optimizes the accumulated statements, if the builder is
// optimizing, and returns them as a block.
func (b *Builder) ToBlock() *ast.BlockStmt {
	if b.optimizing {
		b.optimizeStatements()
	}
	return ast.Block(b.statements...)
}

// optimizeStatements inlines declarations used exactly once, drops unused
// ones, and re-runs the peephole optimizer over what remains. It runs
// once per ToBlock; callers needing a fixed point rebuild.
func (b *Builder) optimizeStatements() {
	counter := newUseCounter()
	for _, statement := range b.statements {
		if decl, ok := statement.(*ast.DeclStmt); ok {
			counter.register(decl)
		}
	}
	for _, statement := range b.statements {
		statement.AcceptStmt(counter)
	}

	subMap := map[*ast.ParameterExpr]ast.Expr{}
	visitor := newSubstituteVisitor(subMap)
	optimizer := &optimize.Optimizer{}
	oldStatements := b.statements
	b.statements = nil

	emit := func(statement ast.Stmt) {
		if len(subMap) > 0 {
			statement = statement.AcceptStmt(visitor)
		}
		statement = statement.AcceptStmt(optimizer)
		if statement != optimize.EmptyStatement {
			b.statements = append(b.statements, statement)
		}
	}

	for _, statement := range oldStatements {
		decl, ok := statement.(*ast.DeclStmt)
		if !ok {
			emit(statement)
			continue
		}
		slot := counter.slots[decl.Parameter]
		count := slot.count
		if strings.HasPrefix(decl.Parameter.Name, "_") {
			// A "_" prefix pins the variable: the caller forced it to
			// remain distinct.
			count = 100
		}
		if n, ok := slot.expression.(*ast.NewExpr); ok && len(n.Members) > 0 {
			// Never inline an anonymous class body.
			count = 100
		}
		switch count {
		case 0:
			// Declared, never used. Throw away the declaration.
		case 1:
			// Declared, used once: inline it.
			subMap[decl.Parameter] = normalizeDeclaration(decl)
		default:
			emit(statement)
		}
	}
}

// NewName allocates a variable name unique within this block and all
// ancestors, numbering from the suggestion.
func (b *Builder) NewName(suggestion string) string {
	i := 0
	candidate := suggestion
	for b.HasVariable(candidate) {
		candidate = suggestion + strconv.Itoa(i)
		i++
	}
	return candidate
}

// newName prefixes the suggestion with "_" when the variable must not be
// considered for inlining later.
func (b *Builder) newName(suggestion string, optimize bool) string {
	if !optimize && !strings.HasPrefix(suggestion, "_") {
		suggestion = "_" + suggestion
	}
	return b.NewName(suggestion)
}

// HasVariable reports whether the name is declared in this block or any
// ancestor.
func (b *Builder) HasVariable(name string) bool {
	return b.variables[name] || (b.parent != nil && b.parent.HasVariable(name))
}

// ----------------------------------------------------------------------------
// Reuse table

// A reuseTable maps normalized initializers, by structure, to the final
// declarations that bind them. The most recent declaration wins.
type reuseTable map[uint64][]reuseEntry

type reuseEntry struct {
	key  ast.Expr
	decl *ast.DeclStmt
}

func (t *reuseTable) put(key ast.Expr, decl *ast.DeclStmt) {
	if *t == nil {
		*t = reuseTable{}
	}
	h := ast.Hash(key)
	bucket := (*t)[h]
	for i, e := range bucket {
		if ast.Equals(e.key, key) {
			bucket[i] = reuseEntry{key, decl}
			return
		}
	}
	(*t)[h] = append(bucket, reuseEntry{key, decl})
}

func (t reuseTable) get(key ast.Expr) *ast.DeclStmt {
	for _, e := range t[ast.Hash(key)] {
		if ast.Equals(e.key, key) {
			return e.decl
		}
	}
	return nil
}
