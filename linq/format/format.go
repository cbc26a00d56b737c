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

// Package format prints expression trees in the conventional textual
// form: blocks open with "{", statements are indented by two spaces and
// terminated by ";", and operands are parenthesized from the precedence
// metadata of their kinds.
package format

import (
	"fmt"
	"strings"

	"linq4go.org/go/linq/ast"
)

// An Option sets a printing option.
type Option func(*printer)

// Indent sets the indentation unit. The default is two spaces.
func Indent(s string) Option {
	return func(p *printer) { p.unit = s }
}

// Node formats a node. A non-empty block ends with a newline; an empty
// block prints as "{}".
func Node(node ast.Node, opts ...Option) ([]byte, error) {
	p := &printer{unit: "  "}
	for _, o := range opts {
		o(p)
	}
	if err := p.node(node); err != nil {
		return nil, err
	}
	return []byte(p.buf.String()), nil
}

// String is Node for callers that want the text directly; it panics on an
// unprintable node.
func String(node ast.Node, opts ...Option) string {
	b, err := Node(node, opts...)
	if err != nil {
		panic(err)
	}
	return string(b)
}

type printer struct {
	buf    strings.Builder
	unit   string
	indent int
}

func (p *printer) node(node ast.Node) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("format: %v", r)
		}
	}()
	switch n := node.(type) {
	case *ast.BlockStmt:
		p.block(n)
		if len(n.List) > 0 {
			p.ws("\n")
		}
	case ast.Stmt:
		p.stmt(n)
	case ast.Expr:
		p.expr(n, 0)
	default:
		return fmt.Errorf("format: unsupported node type %T", node)
	}
	return nil
}

func (p *printer) ws(s string) { p.buf.WriteString(s) }

func (p *printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.ws(p.unit)
	}
}

// ----------------------------------------------------------------------------
// Statements

// stmt prints a statement on its own line, indentation and trailing
// newline included.
func (p *printer) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.BlockStmt:
		p.writeIndent()
		p.block(s)
		p.ws("\n")
	case *ast.DeclStmt:
		p.writeIndent()
		if mods := s.Modifiers.String(); mods != "" {
			p.ws(mods)
			p.ws(" ")
		}
		p.ws(s.Parameter.Typ.Name)
		p.ws(" ")
		p.ws(s.Parameter.Name)
		if s.Initializer != nil {
			p.ws(" = ")
			p.expr(s.Initializer, 0)
		}
		p.ws(";\n")
	case *ast.GotoStmt:
		p.writeIndent()
		switch s.GKind {
		case ast.GotoReturn:
			p.ws("return")
		case ast.GotoBreak:
			p.ws("break")
		case ast.GotoContinue:
			p.ws("continue")
		case ast.GotoGoto:
			p.ws("goto")
		}
		if s.Label != "" {
			p.ws(" ")
			p.ws(s.Label)
		}
		if s.Expression != nil {
			p.ws(" ")
			p.expr(s.Expression, 0)
		}
		p.ws(";\n")
	case *ast.ExprStmt:
		p.writeIndent()
		if s.Expression != nil {
			p.expr(s.Expression, 0)
		}
		p.ws(";\n")
	case *ast.ConditionalStmt:
		p.conditional(s)
	default:
		panic(fmt.Sprintf("unsupported statement type %T", s))
	}
}

// block prints a block without a trailing newline, so that an if/else
// chain can continue on the closing brace's line. An empty block prints
// as "{}".
func (p *printer) block(b *ast.BlockStmt) {
	if len(b.List) == 0 {
		p.ws("{}")
		return
	}
	p.ws("{\n")
	p.indent++
	for _, s := range b.List {
		p.stmt(s)
	}
	p.indent--
	p.writeIndent()
	p.ws("}")
}

func (p *printer) conditional(s *ast.ConditionalStmt) {
	list := s.List
	p.writeIndent()
	for i := 0; i+1 < len(list); i += 2 {
		if i > 0 {
			p.ws(" else ")
		}
		p.ws("if (")
		p.expr(list[i].(ast.Expr), 0)
		p.ws(") ")
		p.braced(list[i+1].(ast.Stmt))
	}
	if len(list)%2 == 1 {
		p.ws(" else ")
		p.braced(list[len(list)-1].(ast.Stmt))
	}
	p.ws("\n")
}

// braced prints an arm statement wrapped in braces, without a trailing
// newline.
func (p *printer) braced(s ast.Stmt) {
	if b, ok := s.(*ast.BlockStmt); ok {
		p.block(b)
		return
	}
	p.ws("{\n")
	p.indent++
	p.stmt(s)
	p.indent--
	p.writeIndent()
	p.ws("}")
}

// ----------------------------------------------------------------------------
// Expressions

// expr prints an expression, parenthesizing when its binding strength is
// below the minimum the context requires.
func (p *printer) expr(e ast.Expr, min int) {
	if e.Kind().Prec() < min {
		p.ws("(")
		p.exprInner(e)
		p.ws(")")
		return
	}
	p.exprInner(e)
}

func (p *printer) exprInner(e ast.Expr) {
	switch e := e.(type) {
	case *ast.ConstantExpr:
		p.ws(ast.ValueString(e.Value))
	case *ast.ParameterExpr:
		p.ws(e.Name)
	case *ast.UnaryExpr:
		k := e.Op
		switch {
		case k == ast.KindConvert:
			p.ws("(")
			p.ws(e.Typ.Name)
			p.ws(") ")
			p.expr(e.Operand, k.RightPrec())
		case k.Postfix():
			p.expr(e.Operand, k.LeftPrec())
			p.ws(k.Token())
		default:
			p.ws(k.Token())
			p.expr(e.Operand, k.RightPrec())
		}
	case *ast.BinaryExpr:
		k := e.Op
		p.expr(e.Left, k.LeftPrec())
		p.ws(" ")
		p.ws(k.Token())
		p.ws(" ")
		p.expr(e.Right, k.RightPrec())
	case *ast.TernaryExpr:
		k := e.Op
		p.expr(e.Cond, k.LeftPrec())
		p.ws(" ? ")
		p.expr(e.Then, k.RightPrec())
		p.ws(" : ")
		p.expr(e.Else, k.RightPrec())
	case *ast.TypeBinaryExpr:
		if e.Op == ast.KindTypeAs {
			p.ws("(")
			p.ws(e.Target.Name)
			p.ws(") ")
			p.expr(e.Expr, e.Op.RightPrec())
			return
		}
		p.expr(e.Expr, e.Op.LeftPrec())
		p.ws(" ")
		p.ws(e.Op.Token())
		p.ws(" ")
		p.ws(e.Target.Name)
	case *ast.MemberExpr:
		if e.Target != nil {
			p.expr(e.Target, ast.KindMemberAccess.LeftPrec())
		} else {
			p.ws(e.Declaring.Name)
		}
		p.ws(".")
		p.ws(e.Name)
	case *ast.CallExpr:
		if e.Target != nil {
			p.expr(e.Target, ast.KindCall.LeftPrec())
			p.ws(".")
		}
		p.ws(e.Method)
		p.ws("(")
		for i, a := range e.Args {
			if i > 0 {
				p.ws(", ")
			}
			p.expr(a, 0)
		}
		p.ws(")")
	case *ast.NewExpr:
		p.ws("new ")
		p.ws(e.Class.Name)
		p.ws("(")
		for i, a := range e.Args {
			if i > 0 {
				p.ws(", ")
			}
			p.expr(a, 0)
		}
		p.ws(")")
		if len(e.Members) > 0 {
			p.ws(" {\n")
			p.indent++
			for _, m := range e.Members {
				p.stmt(m)
			}
			p.indent--
			p.writeIndent()
			p.ws("}")
		}
	default:
		panic(fmt.Sprintf("unsupported expression type %T", e))
	}
}
