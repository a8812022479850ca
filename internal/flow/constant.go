// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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
//
// SPDX-License-Identifier: Apache-2.0

package flow

import (
	"go/constant"
	"go/token"

	"fillmore-labs.com/flowguard/tree"
)

// constValue folds compile-time constant expressions. It returns nil for
// non-constant expressions and for null.
func constValue(e tree.Expr) constant.Value {
	switch e := e.(type) {
	case *tree.Literal:
		return known(e.Value)

	case *tree.ConstRef:
		return known(e.Const.Value)

	case *tree.Unary:
		x := constValue(e.X)
		if x == nil {
			return nil
		}

		switch {
		case e.Op == token.NOT && x.Kind() == constant.Bool,
			(e.Op == token.SUB || e.Op == token.ADD) && numeric(x),
			e.Op == token.XOR && x.Kind() == constant.Int:
			return constant.UnaryOp(e.Op, x, 0)
		}

		return nil

	case *tree.Binary:
		return binaryConst(e)

	case *tree.Conditional:
		c := constValue(e.Cond)
		if c == nil || c.Kind() != constant.Bool {
			return nil
		}

		if constant.BoolVal(c) {
			return constValue(e.Then)
		}

		return constValue(e.Else)

	case *tree.Conv:
		if e.Kind == tree.ConvIdentity {
			return constValue(e.X)
		}

		return nil

	default:
		return nil
	}
}

func binaryConst(e *tree.Binary) constant.Value {
	x, y := constValue(e.X), constValue(e.Y)

	switch e.Op {
	case token.LAND, token.LOR:
		// false && y and true || y are constant even when y is not.
		if x != nil && x.Kind() == constant.Bool && constant.BoolVal(x) == (e.Op == token.LOR) {
			return x
		}
	}

	if x == nil || y == nil {
		return nil
	}

	switch e.Op {
	case token.LAND, token.LOR:
		if x.Kind() == constant.Bool && y.Kind() == constant.Bool {
			return constant.BinaryOp(x, e.Op, y)
		}

	case token.EQL, token.NEQ:
		if x.Kind() == y.Kind() || numeric(x) && numeric(y) {
			return constant.MakeBool(constant.Compare(x, e.Op, y))
		}

	case token.LSS, token.LEQ, token.GTR, token.GEQ:
		if ordered(x) && ordered(y) && (x.Kind() == y.Kind() || numeric(x) && numeric(y)) {
			return constant.MakeBool(constant.Compare(x, e.Op, y))
		}

	case token.ADD, token.SUB, token.MUL:
		if numeric(x) && numeric(y) {
			return constant.BinaryOp(x, e.Op, y)
		}

	case token.QUO, token.REM:
		if x.Kind() != constant.Int || y.Kind() != constant.Int || constant.Sign(y) == 0 {
			return nil
		}

		if e.Op == token.QUO {
			return constant.BinaryOp(x, token.QUO_ASSIGN, y)
		}

		return constant.BinaryOp(x, e.Op, y)

	case token.AND, token.OR, token.XOR, token.AND_NOT:
		if x.Kind() == constant.Int && y.Kind() == constant.Int {
			return constant.BinaryOp(x, e.Op, y)
		}

		if x.Kind() == constant.Bool && y.Kind() == constant.Bool && e.Op != token.AND_NOT {
			return boolOp(e.Op, constant.BoolVal(x), constant.BoolVal(y))
		}
	}

	return nil
}

func boolOp(op token.Token, x, y bool) constant.Value {
	switch op {
	case token.AND:
		return constant.MakeBool(x && y)

	case token.OR:
		return constant.MakeBool(x || y)

	default:
		return constant.MakeBool(x != y)
	}
}

// constBool returns the value of a constant boolean expression.
func constBool(e tree.Expr) (value, ok bool) {
	v := constValue(e)
	if v == nil || v.Kind() != constant.Bool {
		return false, false
	}

	return constant.BoolVal(v), true
}

// isNull reports whether e is the null literal, possibly converted.
func isNull(e tree.Expr) bool {
	switch e := e.(type) {
	case *tree.Literal:
		return e.Value == nil

	case *tree.Conv:
		return e.Kind != tree.ConvUserDefined && isNull(e.X)

	default:
		return false
	}
}

func known(v constant.Value) constant.Value {
	if v == nil || v.Kind() == constant.Unknown {
		return nil
	}

	return v
}

func numeric(v constant.Value) bool {
	k := v.Kind()

	return k == constant.Int || k == constant.Float
}

func ordered(v constant.Value) bool {
	return numeric(v) || v.Kind() == constant.String
}
