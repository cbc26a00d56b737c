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

// Package yamltree decodes expression trees from declarative YAML
// documents, for tooling and golden tests. Each node is a mapping whose
// "kind" field selects the variant. Parameters with the same name within
// one document decode to one binding, preserving identity semantics.
package yamltree

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"linq4go.org/go/linq/ast"
)

// Decode decodes a single YAML document into a tree node.
func Decode(data []byte) (ast.Node, error) {
	var n node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("yamltree: %v", err)
	}
	d := &decoder{params: map[string]*ast.ParameterExpr{}}
	return d.node(&n)
}

// DecodeStmt decodes a document that must be a statement.
func DecodeStmt(data []byte) (ast.Stmt, error) {
	n, err := Decode(data)
	if err != nil {
		return nil, err
	}
	s, ok := n.(ast.Stmt)
	if !ok {
		return nil, fmt.Errorf("yamltree: document is a %s, not a statement", n.Kind())
	}
	return s, nil
}

type node struct {
	Kind string `yaml:"kind"`

	// Expressions.
	Type    string     `yaml:"type"`
	Name    string     `yaml:"name"`
	Value   yaml.Node  `yaml:"value"`
	Op      string     `yaml:"op"`
	Operand *node      `yaml:"operand"`
	Left    *node      `yaml:"left"`
	Right   *node      `yaml:"right"`
	Cond    *node      `yaml:"cond"`
	Then    *node      `yaml:"then"`
	Else    *node      `yaml:"else"`
	Target  *node      `yaml:"target"`
	Class   string     `yaml:"class"`
	Method  string     `yaml:"method"`
	Args    []*node    `yaml:"args"`

	// Statements.
	Expr  *node  `yaml:"expr"`
	Final bool   `yaml:"final"`
	Param *node  `yaml:"param"`
	Init  *node  `yaml:"init"`
	Arms  []*arm  `yaml:"arms"`
	List  []*node `yaml:"list"`
}

type arm struct {
	Test *node `yaml:"test"`
	Stmt *node `yaml:"stmt"`
}

type decoder struct {
	params map[string]*ast.ParameterExpr
}

func (d *decoder) node(n *node) (ast.Node, error) {
	switch n.Kind {
	case "constant":
		return d.constant(n)
	case "parameter":
		return d.parameter(n)
	case "unary":
		return d.unary(n)
	case "binary":
		return d.binary(n)
	case "ternary":
		return d.ternary(n)
	case "member":
		return d.member(n)
	case "call":
		return d.call(n)
	case "new":
		return d.new_(n)
	case "declare":
		return d.declare(n)
	case "return":
		if n.Expr == nil {
			return ast.Return(nil), nil
		}
		e, err := d.expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return ast.Return(e), nil
	case "statement":
		e, err := d.expr(n.Expr)
		if err != nil {
			return nil, err
		}
		return ast.Statement(e), nil
	case "if":
		return d.conditional(n)
	case "block":
		return d.block(n)
	case "":
		return nil, fmt.Errorf("yamltree: node without kind")
	}
	return nil, fmt.Errorf("yamltree: unknown kind %q", n.Kind)
}

func (d *decoder) expr(n *node) (ast.Expr, error) {
	if n == nil {
		return nil, fmt.Errorf("yamltree: missing expression")
	}
	x, err := d.node(n)
	if err != nil {
		return nil, err
	}
	e, ok := x.(ast.Expr)
	if !ok {
		return nil, fmt.Errorf("yamltree: %s is not an expression", x.Kind())
	}
	return e, nil
}

func (d *decoder) stmt(n *node) (ast.Stmt, error) {
	if n == nil {
		return nil, fmt.Errorf("yamltree: missing statement")
	}
	x, err := d.node(n)
	if err != nil {
		return nil, err
	}
	s, ok := x.(ast.Stmt)
	if !ok {
		return nil, fmt.Errorf("yamltree: %s is not a statement", x.Kind())
	}
	return s, nil
}

func (d *decoder) constant(n *node) (ast.Expr, error) {
	var v any
	if !n.Value.IsZero() {
		if err := n.Value.Decode(&v); err != nil {
			return nil, fmt.Errorf("yamltree: bad constant value: %v", err)
		}
	}
	switch v.(type) {
	case nil, bool, string, int, int64, float64:
	default:
		return nil, fmt.Errorf("yamltree: unsupported constant value %T", v)
	}
	if n.Type != "" {
		return ast.ConstantOf(v, ast.TypeOf(n.Type)), nil
	}
	return ast.Constant(v), nil
}

func (d *decoder) parameter(n *node) (ast.Expr, error) {
	if n.Name == "" {
		return nil, fmt.Errorf("yamltree: parameter without name")
	}
	if p, ok := d.params[n.Name]; ok {
		return p, nil
	}
	t := ast.Object
	if n.Type != "" {
		t = ast.TypeOf(n.Type)
	}
	p := ast.Parameter(t, n.Name)
	d.params[n.Name] = p
	return p, nil
}

func (d *decoder) unary(n *node) (ast.Expr, error) {
	e, err := d.expr(n.Operand)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "!":
		return ast.Not(e), nil
	case "-":
		return ast.Negate(e), nil
	case "convert":
		if n.Type == "" {
			return nil, fmt.Errorf("yamltree: convert without type")
		}
		return ast.Convert(e, ast.TypeOf(n.Type)), nil
	case "++":
		return ast.PostIncrement(e), nil
	case "--":
		return ast.PostDecrement(e), nil
	}
	if k := ast.KindByName(n.Op); k != ast.KindInvalid {
		return ast.MakeUnary(k, e, e.Type()), nil
	}
	return nil, fmt.Errorf("yamltree: unknown unary operator %q", n.Op)
}

var binaryOps = map[string]ast.Kind{
	"*":  ast.KindMultiply,
	"/":  ast.KindDivide,
	"%":  ast.KindModulo,
	"+":  ast.KindAdd,
	"-":  ast.KindSubtract,
	"<":  ast.KindLessThan,
	">":  ast.KindGreaterThan,
	"<=": ast.KindLessThanOrEqual,
	">=": ast.KindGreaterThanOrEqual,
	"==": ast.KindEqual,
	"!=": ast.KindNotEqual,
	"&&": ast.KindAndAlso,
	"||": ast.KindOrElse,
	"=":  ast.KindAssign,
	"+=": ast.KindAddAssign,
	"-=": ast.KindSubtractAssign,
	"*=": ast.KindMultiplyAssign,
	"/=": ast.KindDivideAssign,
	"%=": ast.KindModuloAssign,
}

func (d *decoder) binary(n *node) (ast.Expr, error) {
	l, err := d.expr(n.Left)
	if err != nil {
		return nil, err
	}
	r, err := d.expr(n.Right)
	if err != nil {
		return nil, err
	}
	k, ok := binaryOps[n.Op]
	if !ok {
		k = ast.KindByName(n.Op)
	}
	if k == ast.KindInvalid {
		return nil, fmt.Errorf("yamltree: unknown binary operator %q", n.Op)
	}
	return ast.MakeBinary(k, l, r), nil
}

func (d *decoder) ternary(n *node) (ast.Expr, error) {
	c, err := d.expr(n.Cond)
	if err != nil {
		return nil, err
	}
	t, err := d.expr(n.Then)
	if err != nil {
		return nil, err
	}
	e, err := d.expr(n.Else)
	if err != nil {
		return nil, err
	}
	return ast.Condition(c, t, e), nil
}

func (d *decoder) member(n *node) (ast.Expr, error) {
	var target ast.Expr
	var err error
	if n.Target != nil {
		if target, err = d.expr(n.Target); err != nil {
			return nil, err
		}
	}
	if n.Class == "" && target == nil {
		return nil, fmt.Errorf("yamltree: member needs a target or a class")
	}
	var declaring *ast.Type
	if n.Class != "" {
		declaring = ast.TypeOf(n.Class)
	}
	t := declaring
	if n.Type != "" {
		t = ast.TypeOf(n.Type)
	} else if t == nil {
		t = ast.Object
	}
	return ast.FieldOf(target, declaring, n.Name, t), nil
}

func (d *decoder) call(n *node) (ast.Expr, error) {
	var target ast.Expr
	var err error
	if n.Target != nil {
		if target, err = d.expr(n.Target); err != nil {
			return nil, err
		}
	}
	args := make([]ast.Expr, 0, len(n.Args))
	for _, a := range n.Args {
		e, err := d.expr(a)
		if err != nil {
			return nil, err
		}
		args = append(args, e)
	}
	t := ast.Object
	if n.Type != "" {
		t = ast.TypeOf(n.Type)
	}
	return ast.Call(target, n.Method, t, args...), nil
}

func (d *decoder) new_(n *node) (ast.Expr, error) {
	if n.Class == "" {
		return nil, fmt.Errorf("yamltree: new without class")
	}
	args := make([]ast.Expr, 0, len(n.Args))
	for _, a := range n.Args {
		e, err := d.expr(a)
		if err != nil {
			return nil, err
		}
		args = append(args, e)
	}
	return ast.New(ast.TypeOf(n.Class), args...), nil
}

func (d *decoder) declare(n *node) (ast.Stmt, error) {
	p, err := d.expr(n.Param)
	if err != nil {
		return nil, err
	}
	param, ok := p.(*ast.ParameterExpr)
	if !ok {
		return nil, fmt.Errorf("yamltree: declare needs a parameter")
	}
	var init ast.Expr
	if n.Init != nil {
		if init, err = d.expr(n.Init); err != nil {
			return nil, err
		}
	}
	var mods ast.Modifier
	if n.Final {
		mods |= ast.ModFinal
	}
	return ast.Declare(mods, param, init), nil
}

func (d *decoder) conditional(n *node) (ast.Stmt, error) {
	if len(n.Arms) == 0 {
		return nil, fmt.Errorf("yamltree: if without arms")
	}
	list := make([]ast.Node, 0, 2*len(n.Arms)+1)
	for _, a := range n.Arms {
		test, err := d.expr(a.Test)
		if err != nil {
			return nil, err
		}
		stmt, err := d.stmt(a.Stmt)
		if err != nil {
			return nil, err
		}
		list = append(list, test, stmt)
	}
	if n.Else != nil {
		s, err := d.stmt(n.Else)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return ast.IfThenElse(list...), nil
}

func (d *decoder) block(n *node) (ast.Stmt, error) {
	stmts := make([]ast.Stmt, 0, len(n.List))
	for _, c := range n.List {
		s, err := d.stmt(c)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return ast.Block(stmts...), nil
}
