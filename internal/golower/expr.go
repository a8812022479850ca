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

package golower

import (
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"

	"fillmore-labs.com/flowguard/tree"
)

func typed(n ast.Node, t *tree.Type) tree.Typed {
	return tree.Typed{Span: span(n), Type: t}
}

func (f *funcLowerer) typeOf(x ast.Expr) *tree.Type {
	if t := f.Info.TypeOf(x); t != nil {
		return f.types.of(t)
	}

	return tree.Object
}

// opaque evaluates the operands of an expression the analysis does not model.
func (f *funcLowerer) opaque(n ast.Node, t *tree.Type, operands ...ast.Expr) *tree.Operation {
	op := &tree.Operation{Typed: typed(n, t)}
	for _, x := range operands {
		if x != nil {
			op.Operands = append(op.Operands, f.expr(x))
		}
	}

	return op
}

func (f *funcLowerer) expr(x ast.Expr) tree.Expr {
	t := f.visitExpr(x)
	f.nodes[x] = t

	return t
}

func (f *funcLowerer) visitExpr(x ast.Expr) tree.Expr {
	tv := f.Info.Types[x]

	if tv.Value != nil {
		return f.constant(x, tv)
	}

	if tv.IsNil() {
		return &tree.Literal{Typed: typed(x, f.typeOf(x))}
	}

	switch x := x.(type) {
	case *ast.ParenExpr:
		return f.expr(x.X)

	case *ast.Ident:
		if v, ok := f.local(x); ok {
			return &tree.VarRef{Typed: typed(x, v.Type), Var: v}
		}

		return &tree.Operation{Typed: typed(x, f.typeOf(x))}

	case *ast.SelectorExpr:
		return f.selector(x)

	case *ast.CallExpr:
		return f.call(x)

	case *ast.UnaryExpr:
		return f.unary(x)

	case *ast.BinaryExpr:
		return &tree.Binary{Typed: typed(x, f.typeOf(x)), Op: x.Op, X: f.expr(x.X), Y: f.expr(x.Y)}

	case *ast.StarExpr:
		return f.opaque(x, f.typeOf(x), x.X)

	case *ast.IndexExpr:
		if tv, ok := f.Info.Types[x.X]; ok && tv.Type != nil {
			if _, ok := tv.Type.Underlying().(*types.Signature); ok {
				return f.opaque(x, f.typeOf(x), x.X)
			}
		}

		return f.opaque(x, f.typeOf(x), x.X, x.Index)

	case *ast.IndexListExpr:
		return f.opaque(x, f.typeOf(x), x.X)

	case *ast.SliceExpr:
		return f.opaque(x, f.typeOf(x), x.X, x.Low, x.High, x.Max)

	case *ast.TypeAssertExpr:
		return &tree.Conv{Typed: typed(x, f.typeOf(x)), X: f.expr(x.X), Kind: tree.ConvOther}

	case *ast.CompositeLit:
		return f.composite(x)

	case *ast.FuncLit:
		var sig *types.Signature
		if t, ok := f.Info.Types[x].Type.(*types.Signature); ok {
			sig = t
		}

		fn := f.function("func literal", tree.Lambda, x, sig, nil, x.Type, x.Body)

		return &tree.LambdaExpr{Typed: typed(x, f.typeOf(x)), Func: fn}

	case *ast.KeyValueExpr:
		return f.opaque(x, tree.Void, x.Key, x.Value)

	default:
		return &tree.Operation{Typed: typed(x, f.typeOf(x))}
	}
}

// constant lowers a constant expression. Boolean constants stay opaque
// unless constant conditions are enabled.
func (f *funcLowerer) constant(x ast.Expr, tv types.TypeAndValue) tree.Expr {
	t := f.types.of(tv.Type)

	if tv.Value.Kind() == constant.Bool && !f.ConstantConditions {
		return &tree.Operation{Typed: typed(x, t)}
	}

	if id, ok := ast.Unparen(x).(*ast.Ident); ok {
		if c, ok := f.Info.Uses[id].(*types.Const); ok {
			return &tree.ConstRef{Typed: typed(x, t), Const: &tree.Const{Name: c.Name(), Type: t, Value: tv.Value}}
		}
	}

	return &tree.Literal{Typed: typed(x, t), Value: tv.Value}
}

// selector lowers x.f. Fields of local struct values are tracked per field,
// other selections read their operand.
func (f *funcLowerer) selector(x *ast.SelectorExpr) tree.Expr {
	sel, ok := f.Info.Selections[x]
	if !ok {
		// qualified identifier
		return &tree.Operation{Typed: typed(x, f.typeOf(x))}
	}

	if sel.Kind() != types.FieldVal || sel.Indirect() {
		return f.opaque(x, f.typeOf(x), x.X)
	}

	base := f.expr(x.X)

	return f.fieldPath(x, base, sel.Index())
}

// fieldPath selects the fields of base along the index path of an embedded
// field selection.
func (f *funcLowerer) fieldPath(x ast.Expr, base tree.Expr, path []int) tree.Expr {
	for _, i := range path {
		t := base.ExprType()
		if t == nil || t.Kind != tree.KindStruct || i >= len(t.Fields) {
			return &tree.Operation{Typed: typed(x, f.typeOf(x)), Operands: []tree.Expr{base}}
		}

		fld := t.Fields[i]
		base = &tree.FieldRef{Typed: typed(x, fld.Type), X: base, Field: fld}
	}

	return base
}

func (f *funcLowerer) unary(x *ast.UnaryExpr) tree.Expr {
	switch x.Op {
	case token.AND:
		switch ast.Unparen(x.X).(type) {
		case *ast.Ident, *ast.SelectorExpr:
			if target := f.target(x.X); addressable(target) {
				return &tree.AddressOf{Typed: typed(x, f.typeOf(x)), X: target}
			}
		}

		return f.opaque(x, f.typeOf(x), x.X)

	case token.ARROW:
		return f.opaque(x, f.typeOf(x), x.X)

	default:
		return &tree.Unary{Typed: typed(x, f.typeOf(x)), Op: x.Op, X: f.expr(x.X)}
	}
}

func addressable(t tree.Expr) bool {
	switch t.(type) {
	case *tree.VarRef, *tree.FieldRef:
		return true

	default:
		return false
	}
}

func (f *funcLowerer) composite(x *ast.CompositeLit) tree.Expr {
	n := &tree.New{Typed: typed(x, f.typeOf(x))}

	var isStruct bool
	if t := f.Info.TypeOf(x); t != nil {
		_, isStruct = t.Underlying().(*types.Struct)
	}

	for _, elt := range x.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		switch {
		case !ok:
			n.Init = append(n.Init, f.expr(elt))

		case isStruct:
			n.Init = append(n.Init, f.expr(kv.Value))

		default:
			n.Init = append(n.Init, f.expr(kv.Key), f.expr(kv.Value))
		}
	}

	return n
}

// call lowers calls, conversions and builtins.
func (f *funcLowerer) call(x *ast.CallExpr) tree.Expr {
	fun := ast.Unparen(x.Fun)
	result := f.typeOf(x)

	if tv, ok := f.Info.Types[fun]; ok && tv.IsType() {
		if len(x.Args) != 1 {
			return f.opaque(x, result, x.Args...)
		}

		return &tree.Conv{Typed: typed(x, result), X: f.expr(x.Args[0]), Kind: tree.ConvBuiltin}
	}

	if id, ok := fun.(*ast.Ident); ok {
		if _, ok := f.Info.Uses[id].(*types.Builtin); ok {
			return f.opaque(x, result, x.Args...)
		}
	}

	c := &tree.Call{Typed: typed(x, result), Args: f.args(x.Args)}

	obj := f.callee(fun)
	if obj == nil {
		c.Callee = f.expr(fun)

		return c
	}

	c.Method = &tree.Method{Name: obj.Name(), Result: result}

	sel, ok := fun.(*ast.SelectorExpr)
	if !ok {
		return c
	}

	if s, ok := f.Info.Selections[sel]; ok && s.Kind() == types.MethodVal {
		c.Receiver = f.expr(sel.X)
		c.ByRef = pointerRecv(obj) && !s.Indirect() && addressable(c.Receiver)
	}

	return c
}

// callee returns the statically called function or method, if any.
func (f *funcLowerer) callee(fun ast.Expr) *types.Func {
	for {
		switch e := fun.(type) {
		case *ast.IndexExpr:
			fun = ast.Unparen(e.X)
			continue

		case *ast.IndexListExpr:
			fun = ast.Unparen(e.X)
			continue

		case *ast.Ident:
			obj, _ := f.Info.Uses[e].(*types.Func)
			return obj

		case *ast.SelectorExpr:
			obj, _ := f.Info.Uses[e.Sel].(*types.Func)
			if s, ok := f.Info.Selections[e]; ok && s.Kind() != types.MethodVal {
				return nil
			}

			return obj
		}

		return nil
	}
}

func pointerRecv(fun *types.Func) bool {
	recv := fun.Signature().Recv()
	if recv == nil {
		return false
	}

	_, ok := recv.Type().(*types.Pointer)

	return ok
}

func (f *funcLowerer) args(list []ast.Expr) []*tree.Arg {
	args := make([]*tree.Arg, 0, len(list))
	for _, x := range list {
		args = append(args, &tree.Arg{Span: span(x), Value: f.expr(x)})
	}

	return args
}

// target lowers the left side of an assignment.
func (f *funcLowerer) target(x ast.Expr) tree.Expr {
	x = ast.Unparen(x)

	switch x := x.(type) {
	case *ast.Ident:
		if x.Name == "_" {
			return &tree.Discard{Typed: typed(x, nil)}
		}

		if v, ok := f.local(x); ok {
			return &tree.VarRef{Typed: typed(x, v.Type), Var: v}
		}

		if obj, ok := f.Info.Defs[x].(*types.Var); ok {
			v := f.defineVar(obj, tree.LocalVar)

			return &tree.DeclExpr{Typed: typed(x, v.Type), Var: v}
		}

		return &tree.Operation{Typed: typed(x, f.typeOf(x))}

	case *ast.SelectorExpr:
		sel, ok := f.Info.Selections[x]
		if !ok || sel.Kind() != types.FieldVal || sel.Indirect() {
			return f.opaque(x, f.typeOf(x), x.X)
		}

		t := f.fieldTarget(x.X)

		return f.fieldPath(x, t, sel.Index())

	default:
		return f.expr(x)
	}
}

// fieldTarget lowers the operand of an assigned field selection without
// reading it.
func (f *funcLowerer) fieldTarget(x ast.Expr) tree.Expr {
	switch u := ast.Unparen(x).(type) {
	case *ast.Ident:
		if v, ok := f.local(u); ok {
			return &tree.VarRef{Typed: typed(u, v.Type), Var: v}
		}

	case *ast.SelectorExpr:
		if sel, ok := f.Info.Selections[u]; ok && sel.Kind() == types.FieldVal && !sel.Indirect() {
			return f.fieldPath(u, f.fieldTarget(u.X), sel.Index())
		}
	}

	return f.expr(x)
}
