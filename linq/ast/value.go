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
	"fmt"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// A constant value is one of:
//
//	nil            the null literal (the declared type lives on the node)
//	bool           a boolean literal
//	string         a string literal
//	*apd.Decimal   a numeric literal
//
// Numbers are kept as arbitrary-precision decimals so that literal values
// survive re-typing conversions unchanged.

// normalizeValue converts a Go value to its canonical constant
// representation. It panics on unsupported kinds.
func normalizeValue(v any) any {
	switch v := v.(type) {
	case nil, bool, string, *apd.Decimal:
		return v
	case int:
		return apd.New(int64(v), 0)
	case int64:
		return apd.New(v, 0)
	case float64:
		d := new(apd.Decimal)
		if _, err := d.SetFloat64(v); err != nil {
			panic(fmt.Sprintf("ast: bad constant %v: %v", v, err))
		}
		return d
	}
	panic(fmt.Sprintf("ast: unsupported constant value %T", v))
}

// typeOfValue infers the static type of a normalized constant value.
func typeOfValue(v any) *Type {
	switch v := v.(type) {
	case nil:
		return Object
	case bool:
		return Boolean
	case string:
		return String
	case *apd.Decimal:
		if integral(v) {
			return Int
		}
		return BigDecimal
	}
	panic(fmt.Sprintf("ast: unsupported constant value %T", v))
}

func integral(d *apd.Decimal) bool {
	if d.Form != apd.Finite {
		return false
	}
	var r apd.Decimal
	r.Reduce(d)
	return r.Exponent >= 0
}

// valueEqual reports whether two normalized constant values are equal.
// Decimals compare numerically, so 1 and 1.0 are the same value.
func valueEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case bool:
		b, ok := b.(bool)
		return ok && a == b
	case string:
		b, ok := b.(string)
		return ok && a == b
	case *apd.Decimal:
		b, ok := b.(*apd.Decimal)
		return ok && a.Cmp(b) == 0
	}
	return false
}

// ValueString returns the literal spelling of a constant value.
func ValueString(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case string:
		return strconv.Quote(v)
	case *apd.Decimal:
		var r apd.Decimal
		r.Reduce(v)
		return r.Text('f')
	}
	panic(fmt.Sprintf("ast: unsupported constant value %T", v))
}

func hashValue(v any) string {
	switch v := v.(type) {
	case *apd.Decimal:
		var r apd.Decimal
		r.Reduce(v)
		return r.Text('E')
	default:
		return ValueString(v)
	}
}
