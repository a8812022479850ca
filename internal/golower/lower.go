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

// Package golower lowers type-checked Go function bodies to the typed tree of
// the flow analysis.
//
// Go variables start with their zero value. The lowering treats variables of
// basic and pointer type declared without an initializer as unassigned, so
// reads relying on an implicit zero value are reported. Composite and
// reference-like variables are assigned by their declaration.
package golower

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/types"
	"runtime/trace"

	"fillmore-labs.com/flowguard/tree"
)

// ErrUnsupported is returned for syntax the lowering can't express, like
// [ast.BadStmt] in files with parse errors.
var ErrUnsupported = errors.New("unsupported syntax")

// Lowerer lowers the functions of one type-checked package.
type Lowerer struct {
	Info *types.Info

	// ConstantConditions keeps constant boolean expressions, so constant
	// conditions make branches unreachable.
	ConstantConditions bool

	types typeCache
}

// Lowered is a lowered function with the mapping from Go syntax to tree nodes.
type Lowered struct {
	Func  *tree.Func
	nodes map[ast.Node]tree.Node
}

// Node returns the tree node lowered from the Go statement or expression n.
func (l *Lowered) Node(n ast.Node) (tree.Node, bool) {
	t, ok := l.nodes[n]

	return t, ok
}

// Func lowers a function declaration with a body.
func (l *Lowerer) Func(ctx context.Context, decl *ast.FuncDecl) (*Lowered, error) {
	defer trace.StartRegion(ctx, "lower").End()

	if decl.Body == nil {
		return nil, fmt.Errorf("%w: function %s without body", ErrUnsupported, decl.Name.Name)
	}

	if l.types == nil {
		l.types = make(typeCache)
	}

	f := &funcLowerer{
		Lowerer: l,
		vars:    make(map[*types.Var]*tree.Var),
		nodes:   make(map[ast.Node]tree.Node),
	}

	var sig *types.Signature
	if obj, ok := l.Info.Defs[decl.Name].(*types.Func); ok {
		sig = obj.Signature()
	}

	fn := f.function(decl.Name.Name, tree.Member, decl, sig, decl.Recv, decl.Type, decl.Body)
	if len(f.errs) > 0 {
		return nil, fmt.Errorf("lowering %s: %w", decl.Name.Name, errors.Join(f.errs...))
	}

	return &Lowered{Func: fn, nodes: f.nodes}, nil
}

// funcLowerer holds the state of lowering one declaration and its closures.
type funcLowerer struct {
	*Lowerer

	vars   map[*types.Var]*tree.Var
	nodes  map[ast.Node]tree.Node
	labels map[string]*tree.Label // labels of the innermost function
	errs   []error
}

func (f *funcLowerer) errorf(format string, args ...any) {
	f.errs = append(f.errs, fmt.Errorf(format, args...))
}

// function lowers a declaration or literal. Closures have their own labels.
func (f *funcLowerer) function(name string, kind tree.FuncKind, node ast.Node, sig *types.Signature,
	recv *ast.FieldList, typ *ast.FuncType, body *ast.BlockStmt,
) *tree.Func {
	saved := f.labels
	f.labels = make(map[string]*tree.Label)

	defer func() { f.labels = saved }()

	fn := &tree.Func{Span: span(node), Name: name, Kind: kind, Result: tree.Void}

	fn.Params = append(f.params(recv, tree.ParamVar), f.params(typ.Params, tree.ParamVar)...)

	if sig != nil {
		fn.Result = f.types.of(sig.Results())
	}

	fn.Results = f.results(typ.Results)

	fn.Body = &tree.Block{Span: span(body), Stmts: f.stmts(body.List)}

	return fn
}

// params declares the named variables of a field list.
func (f *funcLowerer) params(list *ast.FieldList, kind tree.VarKind) []*tree.Var {
	if list == nil {
		return nil
	}

	var vars []*tree.Var
	for _, field := range list.List {
		for _, name := range field.Names {
			if v := f.define(name, kind); v != nil {
				vars = append(vars, v)
			}
		}
	}

	return vars
}

// results declares named results. Results starting as usable zero values
// don't need an assignment before the function returns.
func (f *funcLowerer) results(list *ast.FieldList) []*tree.Var {
	if list == nil {
		return nil
	}

	var vars []*tree.Var
	for _, field := range list.List {
		for _, name := range field.Names {
			obj, ok := f.Info.Defs[name].(*types.Var)
			if !ok || obj == nil {
				continue
			}

			kind := tree.ResultVar
			if zeroAssigned(obj.Type()) {
				kind = tree.LocalVar
			}

			vars = append(vars, f.defineVar(obj, kind))
		}
	}

	return vars
}

// define creates the tree variable for a defining identifier.
func (f *funcLowerer) define(id *ast.Ident, kind tree.VarKind) *tree.Var {
	obj, ok := f.Info.Defs[id].(*types.Var)
	if !ok || obj == nil {
		return nil
	}

	return f.defineVar(obj, kind)
}

func (f *funcLowerer) defineVar(obj *types.Var, kind tree.VarKind) *tree.Var {
	if v, ok := f.vars[obj]; ok {
		return v
	}

	v := &tree.Var{Name: obj.Name(), Type: f.types.of(obj.Type()), Kind: kind, Decl: obj.Pos()}
	f.vars[obj] = v

	return v
}

// local returns the tree variable of a local variable use.
func (f *funcLowerer) local(id *ast.Ident) (*tree.Var, bool) {
	obj, ok := f.Info.Uses[id].(*types.Var)
	if !ok {
		return nil, false
	}

	v, ok := f.vars[obj]

	return v, ok
}

func (f *funcLowerer) label(name string) *tree.Label {
	if l, ok := f.labels[name]; ok {
		return l
	}

	l := &tree.Label{Name: name}
	f.labels[name] = l

	return l
}

func span(n ast.Node) tree.Span {
	return tree.Span{From: n.Pos(), To: n.End()}
}
