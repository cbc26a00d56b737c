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

import "sync"

// A Type is the static type of a node. Types are interned: two types with
// the same name are the same *Type, so type equality is pointer identity.
type Type struct {
	Name      string
	Primitive bool
}

func (t *Type) String() string { return t.Name }

// Canonical types of the expression language. A primitive and its boxed
// form are distinct types; the truth oracle treats the boolean pair as
// equivalent.
var (
	Boolean = &Type{Name: "boolean", Primitive: true}
	Byte    = &Type{Name: "byte", Primitive: true}
	Char    = &Type{Name: "char", Primitive: true}
	Short   = &Type{Name: "short", Primitive: true}
	Int     = &Type{Name: "int", Primitive: true}
	Long    = &Type{Name: "long", Primitive: true}
	Float   = &Type{Name: "float", Primitive: true}
	Double  = &Type{Name: "double", Primitive: true}
	Void    = &Type{Name: "void", Primitive: true}

	BoxedBoolean = &Type{Name: "Boolean"}
	BoxedByte    = &Type{Name: "Byte"}
	BoxedChar    = &Type{Name: "Character"}
	BoxedShort   = &Type{Name: "Short"}
	BoxedInteger = &Type{Name: "Integer"}
	BoxedLong    = &Type{Name: "Long"}
	BoxedFloat   = &Type{Name: "Float"}
	BoxedDouble  = &Type{Name: "Double"}

	Object     = &Type{Name: "Object"}
	String     = &Type{Name: "String"}
	BigDecimal = &Type{Name: "BigDecimal"}
)

var typesMu sync.Mutex
var typesByName = func() map[string]*Type {
	m := make(map[string]*Type)
	for _, t := range []*Type{
		Boolean, Byte, Char, Short, Int, Long, Float, Double, Void,
		BoxedBoolean, BoxedByte, BoxedChar, BoxedShort, BoxedInteger,
		BoxedLong, BoxedFloat, BoxedDouble,
		Object, String, BigDecimal,
	} {
		m[t.Name] = t
	}
	return m
}()

// TypeOf returns the canonical type with the given name, creating a
// non-primitive type on first use.
func TypeOf(name string) *Type {
	typesMu.Lock()
	defer typesMu.Unlock()
	if t, ok := typesByName[name]; ok {
		return t
	}
	t := &Type{Name: name}
	typesByName[name] = t
	return t
}
