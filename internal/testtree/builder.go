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

// Package testtree builds typed trees for tests.
//
// Every node gets a fresh position when it is built. Since Go evaluates
// arguments from left to right, children are built before their parent and
// siblings in source order, so spans nest the way a parser would produce them.
package testtree

import (
	"fmt"
	"go/constant"
	"go/token"

	"fillmore-labs.com/flowguard/tree"
)

// Builder creates tree nodes with increasing positions.
type Builder struct {
	next token.Pos
}

// New returns a fresh [Builder].
func New() *Builder {
	return &Builder{next: 1}
}

// span returns a new position covering the given child nodes.
func (b *Builder) span(children ...tree.Node) tree.Span {
	own := b.next
	b.next += 2

	s := tree.Span{From: own, To: own + 1}
	for _, c := range children {
		if c == nil {
			continue
		}

		s.From = min(s.From, c.Pos())
		s.To = max(s.To, c.End())
	}

	return s
}

// Value converts a Go value to a constant. nil is null.
func Value(v any) constant.Value {
	switch v := v.(type) {
	case nil:
		return nil

	case bool:
		return constant.MakeBool(v)

	case int:
		return constant.MakeInt64(int64(v))

	case int64:
		return constant.MakeInt64(v)

	case string:
		return constant.MakeString(v)

	case float64:
		return constant.MakeFloat64(v)

	default:
		panic(fmt.Sprintf("unsupported constant %T", v))
	}
}

func typeOf(v any) *tree.Type {
	switch v.(type) {
	case bool:
		return tree.Bool

	case int, int64:
		return tree.Int

	case string:
		return tree.String

	default:
		return tree.Object
	}
}

// Variables.

func (b *Builder) newVar(name string, typ *tree.Type, kind tree.VarKind, ref tree.RefKind) *tree.Var {
	pos := b.next
	b.next += 2

	return &tree.Var{Name: name, Type: typ, Kind: kind, Ref: ref, Decl: pos}
}

// Local returns a local variable.
func (b *Builder) Local(name string, typ *tree.Type) *tree.Var {
	return b.newVar(name, typ, tree.LocalVar, tree.RefNone)
}

// Param returns a value parameter.
func (b *Builder) Param(name string, typ *tree.Type) *tree.Var {
	return b.newVar(name, typ, tree.ParamVar, tree.RefNone)
}

// OutParam returns an out parameter.
func (b *Builder) OutParam(name string, typ *tree.Type) *tree.Var {
	return b.newVar(name, typ, tree.ParamVar, tree.RefOut)
}

// RefParam returns a ref parameter.
func (b *Builder) RefParam(name string, typ *tree.Type) *tree.Var {
	return b.newVar(name, typ, tree.ParamVar, tree.RefRef)
}

// PatternVar returns a pattern binding.
func (b *Builder) PatternVar(name string, typ *tree.Type) *tree.Var {
	return b.newVar(name, typ, tree.PatternVar, tree.RefNone)
}

// Result returns a named result.
func (b *Builder) Result(name string, typ *tree.Type) *tree.Var {
	return b.newVar(name, typ, tree.ResultVar, tree.RefNone)
}

// Method returns a call target.
func (b *Builder) Method(name string, result *tree.Type, params ...*tree.Var) *tree.Method {
	return &tree.Method{Name: name, Params: params, Result: result}
}

// Label returns a label.
func (b *Builder) Label(name string) *tree.Label {
	return &tree.Label{Name: name}
}

// Functions.

// Func returns a member with a block body.
func (b *Builder) Func(name string, result *tree.Type, params []*tree.Var, body ...tree.Stmt) *tree.Func {
	return b.fn(name, tree.Member, result, params, body)
}

// LocalFunc returns a local function with a block body.
func (b *Builder) LocalFunc(name string, result *tree.Type, params []*tree.Var, body ...tree.Stmt) *tree.Func {
	return b.fn(name, tree.LocalFunction, result, params, body)
}

// Lambda returns a lambda with a block body.
func (b *Builder) Lambda(result *tree.Type, params []*tree.Var, body ...tree.Stmt) *tree.Func {
	return b.fn("lambda", tree.Lambda, result, params, body)
}

// ExprLambda returns a lambda with an expression body.
func (b *Builder) ExprLambda(params []*tree.Var, x tree.Expr) *tree.Func {
	return &tree.Func{Span: b.span(x), Name: "lambda", Kind: tree.Lambda, Params: params, Result: x.ExprType(), Expr: x}
}

func (b *Builder) fn(name string, kind tree.FuncKind, result *tree.Type, params []*tree.Var, body []tree.Stmt) *tree.Func {
	blk := b.Block(body...)

	return &tree.Func{Span: b.span(blk), Name: name, Kind: kind, Params: params, Result: result, Body: blk}
}

// Expressions.

// Lit returns a literal of the type of v.
func (b *Builder) Lit(v any) *tree.Literal {
	return &tree.Literal{Typed: tree.Typed{Span: b.span(), Type: typeOf(v)}, Value: Value(v)}
}

// TypedLit returns a literal of type typ.
func (b *Builder) TypedLit(v any, typ *tree.Type) *tree.Literal {
	return &tree.Literal{Typed: tree.Typed{Span: b.span(), Type: typ}, Value: Value(v)}
}

// Null returns the null literal.
func (b *Builder) Null() *tree.Literal {
	return &tree.Literal{Typed: tree.Typed{Span: b.span(), Type: tree.Object}}
}

// Const returns a reference to a named constant.
func (b *Builder) Const(name string, v any) *tree.ConstRef {
	typ := typeOf(v)

	return &tree.ConstRef{Typed: tree.Typed{Span: b.span(), Type: typ}, Const: &tree.Const{Name: name, Type: typ, Value: Value(v)}}
}

// Ref returns a variable reference.
func (b *Builder) Ref(v *tree.Var) *tree.VarRef {
	return &tree.VarRef{Typed: tree.Typed{Span: b.span(), Type: v.Type}, Var: v}
}

// Field returns a field access.
func (b *Builder) Field(x tree.Expr, f *tree.Field) *tree.FieldRef {
	return &tree.FieldRef{Typed: tree.Typed{Span: b.span(x), Type: f.Type}, X: x, Field: f}
}

// FuncRef returns a reference to a local function.
func (b *Builder) FuncRef(fn *tree.Func) *tree.FuncRef {
	return &tree.FuncRef{Typed: tree.Typed{Span: b.span(), Type: tree.Object}, Func: fn}
}

// Decl returns an expression declaring v.
func (b *Builder) Decl(v *tree.Var) *tree.DeclExpr {
	return &tree.DeclExpr{Typed: tree.Typed{Span: b.span(), Type: v.Type}, Var: v}
}

// Discard returns the discard target.
func (b *Builder) Discard() *tree.Discard {
	return &tree.Discard{Typed: tree.Typed{Span: b.span(), Type: tree.Object}}
}

// Not returns !x.
func (b *Builder) Not(x tree.Expr) *tree.Unary {
	return &tree.Unary{Typed: tree.Typed{Span: b.span(x), Type: tree.Bool}, Op: token.NOT, X: x}
}

// Neg returns -x.
func (b *Builder) Neg(x tree.Expr) *tree.Unary {
	return &tree.Unary{Typed: tree.Typed{Span: b.span(x), Type: x.ExprType()}, Op: token.SUB, X: x}
}

// Bin returns x op y.
func (b *Builder) Bin(op token.Token, x, y tree.Expr) *tree.Binary {
	typ := x.ExprType()

	switch op {
	case token.LAND, token.LOR, token.EQL, token.NEQ, token.LSS, token.LEQ, token.GTR, token.GEQ:
		typ = tree.Bool
	}

	return &tree.Binary{Typed: tree.Typed{Span: b.span(x, y), Type: typ}, Op: op, X: x, Y: y}
}

// And returns x && y.
func (b *Builder) And(x, y tree.Expr) *tree.Binary { return b.Bin(token.LAND, x, y) }

// Or returns x || y.
func (b *Builder) Or(x, y tree.Expr) *tree.Binary { return b.Bin(token.LOR, x, y) }

// Eq returns x == y.
func (b *Builder) Eq(x, y tree.Expr) *tree.Binary { return b.Bin(token.EQL, x, y) }

// Neq returns x != y.
func (b *Builder) Neq(x, y tree.Expr) *tree.Binary { return b.Bin(token.NEQ, x, y) }

// Coalesce returns x ?? y.
func (b *Builder) Coalesce(x, y tree.Expr) *tree.Coalesce {
	return &tree.Coalesce{Typed: tree.Typed{Span: b.span(x, y), Type: y.ExprType()}, X: x, Y: y}
}

// CoalesceAssign returns target ??= v.
func (b *Builder) CoalesceAssign(target, v tree.Expr) *tree.CoalesceAssign {
	return &tree.CoalesceAssign{Typed: tree.Typed{Span: b.span(target, v), Type: target.ExprType()}, Target: target, Value: v}
}

// Cond returns c ? x : y.
func (b *Builder) Cond(c, x, y tree.Expr) *tree.Conditional {
	return &tree.Conditional{Typed: tree.Typed{Span: b.span(c, x, y), Type: x.ExprType()}, Cond: c, Then: x, Else: y}
}

// Recv returns the receiver placeholder of a conditional access.
func (b *Builder) Recv(typ *tree.Type) *tree.CondReceiver {
	return &tree.CondReceiver{Typed: tree.Typed{Span: b.span(), Type: typ}}
}

// CondAccess returns recv?.access. The type is the nullable form of the
// access type for value types.
func (b *Builder) CondAccess(recv, access tree.Expr) *tree.CondAccess {
	typ := access.ExprType()
	if typ.IsValueType() && !typ.IsVoid() {
		typ = tree.NewNullable(typ)
	}

	return &tree.CondAccess{Typed: tree.Typed{Span: b.span(recv, access), Type: typ}, Receiver: recv, Access: access}
}

// Arg returns a value argument.
func (b *Builder) Arg(x tree.Expr) *tree.Arg {
	return &tree.Arg{Span: b.span(x), Value: x}
}

// Out returns an out argument.
func (b *Builder) Out(x tree.Expr) *tree.Arg {
	return &tree.Arg{Span: b.span(x), Ref: tree.RefOut, Value: x}
}

// RefArg returns a ref argument.
func (b *Builder) RefArg(x tree.Expr) *tree.Arg {
	return &tree.Arg{Span: b.span(x), Ref: tree.RefRef, Value: x}
}

func argNodes(args []*tree.Arg) []tree.Node {
	nodes := make([]tree.Node, 0, len(args))
	for _, a := range args {
		nodes = append(nodes, a)
	}

	return nodes
}

// Call returns a static call of m.
func (b *Builder) Call(m *tree.Method, args ...*tree.Arg) *tree.Call {
	return &tree.Call{Typed: tree.Typed{Span: b.span(argNodes(args)...), Type: m.Result}, Method: m, Args: args}
}

// CallOn returns an instance call of m on recv.
func (b *Builder) CallOn(recv tree.Expr, m *tree.Method, args ...*tree.Arg) *tree.Call {
	nodes := append([]tree.Node{recv}, argNodes(args)...)

	return &tree.Call{Typed: tree.Typed{Span: b.span(nodes...), Type: m.Result}, Receiver: recv, Method: m, Args: args}
}

// Invoke returns an invocation of a delegate or local function.
func (b *Builder) Invoke(callee tree.Expr, result *tree.Type, args ...*tree.Arg) *tree.Call {
	nodes := append([]tree.Node{callee}, argNodes(args)...)

	return &tree.Call{Typed: tree.Typed{Span: b.span(nodes...), Type: result}, Callee: callee, Args: args}
}

// New returns an object creation.
func (b *Builder) New(typ *tree.Type, args ...*tree.Arg) *tree.New {
	return &tree.New{Typed: tree.Typed{Span: b.span(argNodes(args)...), Type: typ}, Args: args}
}

// Assign returns target = v.
func (b *Builder) Assign(target, v tree.Expr) *tree.Assign {
	return b.Compound(token.ASSIGN, target, v)
}

// Compound returns target op= v.
func (b *Builder) Compound(op token.Token, target, v tree.Expr) *tree.Assign {
	return &tree.Assign{Typed: tree.Typed{Span: b.span(target, v), Type: target.ExprType()}, Op: op, Target: target, Value: v}
}

// Inc returns target++.
func (b *Builder) Inc(target tree.Expr) *tree.IncDec {
	return &tree.IncDec{Typed: tree.Typed{Span: b.span(target), Type: target.ExprType()}, Op: token.INC, Target: target}
}

// Deconstruct returns (targets...) = v.
func (b *Builder) Deconstruct(v tree.Expr, targets ...tree.Expr) *tree.Deconstruct {
	nodes := exprNodes(targets)
	nodes = append(nodes, v)

	return &tree.Deconstruct{Typed: tree.Typed{Span: b.span(nodes...), Type: v.ExprType()}, Targets: targets, Value: v}
}

// Tuple returns a tuple literal.
func (b *Builder) Tuple(elems ...tree.Expr) *tree.Tuple {
	return &tree.Tuple{Typed: tree.Typed{Span: b.span(exprNodes(elems)...), Type: tree.Object}, Elems: elems}
}

// Is returns x is p.
func (b *Builder) Is(x tree.Expr, p tree.Pattern) *tree.Is {
	return &tree.Is{Typed: tree.Typed{Span: b.span(x, p), Type: tree.Bool}, X: x, Pattern: p}
}

// Arm returns a switch expression arm. guard may be nil.
func (b *Builder) Arm(p tree.Pattern, guard, v tree.Expr) *tree.Arm {
	nodes := []tree.Node{p}
	if guard != nil {
		nodes = append(nodes, guard)
	}

	nodes = append(nodes, v)

	return &tree.Arm{Span: b.span(nodes...), Pattern: p, Guard: guard, Value: v}
}

// SwitchExpr returns a switch expression.
func (b *Builder) SwitchExpr(tag tree.Expr, arms ...*tree.Arm) *tree.SwitchExpr {
	nodes := []tree.Node{tag}
	for _, a := range arms {
		nodes = append(nodes, a)
	}

	typ := tree.Object
	if len(arms) > 0 {
		typ = arms[0].Value.ExprType()
	}

	return &tree.SwitchExpr{Typed: tree.Typed{Span: b.span(nodes...), Type: typ}, Tag: tag, Arms: arms}
}

// LambdaExpr returns a lambda expression.
func (b *Builder) LambdaExpr(fn *tree.Func) *tree.LambdaExpr {
	return &tree.LambdaExpr{Typed: tree.Typed{Span: b.span(fn), Type: tree.Object}, Func: fn}
}

// Conv returns a conversion of x to typ.
func (b *Builder) Conv(x tree.Expr, kind tree.ConvKind, param, typ *tree.Type) *tree.Conv {
	return &tree.Conv{Typed: tree.Typed{Span: b.span(x), Type: typ}, X: x, Kind: kind, Param: param}
}

// ThrowExpr returns a throw expression.
func (b *Builder) ThrowExpr(v tree.Expr) *tree.ThrowExpr {
	return &tree.ThrowExpr{Typed: tree.Typed{Span: b.span(v), Type: tree.Object}, Value: v}
}

// AddressOf returns &x.
func (b *Builder) AddressOf(x tree.Expr) *tree.AddressOf {
	return &tree.AddressOf{Typed: tree.Typed{Span: b.span(x), Type: tree.Object}, X: x}
}

// Op returns an opaque operation over operands.
func (b *Builder) Op(typ *tree.Type, operands ...tree.Expr) *tree.Operation {
	return &tree.Operation{Typed: tree.Typed{Span: b.span(exprNodes(operands)...), Type: typ}, Operands: operands}
}

func exprNodes(xs []tree.Expr) []tree.Node {
	nodes := make([]tree.Node, 0, len(xs))
	for _, x := range xs {
		nodes = append(nodes, x)
	}

	return nodes
}

// Statements.

func stmtNodes(ss []tree.Stmt) []tree.Node {
	nodes := make([]tree.Node, 0, len(ss))
	for _, s := range ss {
		nodes = append(nodes, s)
	}

	return nodes
}

// Block returns a block.
func (b *Builder) Block(stmts ...tree.Stmt) *tree.Block {
	return &tree.Block{Span: b.span(stmtNodes(stmts)...), Stmts: stmts}
}

// Declare returns a local declaration; init may be nil.
func (b *Builder) Declare(v *tree.Var, init tree.Expr) *tree.Declare {
	if init == nil {
		return &tree.Declare{Span: b.span(), Var: v}
	}

	return &tree.Declare{Span: b.span(init), Var: v, Init: init}
}

// Do returns an expression statement.
func (b *Builder) Do(x tree.Expr) *tree.ExprStmt {
	return &tree.ExprStmt{Span: b.span(x), X: x}
}

// If returns an if statement; els may be nil.
func (b *Builder) If(c tree.Expr, then, els tree.Stmt) *tree.If {
	if els == nil {
		return &tree.If{Span: b.span(c, then), Cond: c, Then: then}
	}

	return &tree.If{Span: b.span(c, then, els), Cond: c, Then: then, Else: els}
}

// While returns a while loop.
func (b *Builder) While(c tree.Expr, body tree.Stmt) *tree.While {
	return &tree.While{Span: b.span(c, body), Cond: c, Body: body}
}

// DoWhile returns a do-while loop.
func (b *Builder) DoWhile(body tree.Stmt, c tree.Expr) *tree.DoWhile {
	return &tree.DoWhile{Span: b.span(body, c), Body: body, Cond: c}
}

// For returns a three-clause loop; c may be nil.
func (b *Builder) For(init []tree.Stmt, c tree.Expr, step []tree.Stmt, body tree.Stmt) *tree.For {
	nodes := stmtNodes(init)
	if c != nil {
		nodes = append(nodes, c)
	}

	nodes = append(nodes, stmtNodes(step)...)
	nodes = append(nodes, body)

	return &tree.For{Span: b.span(nodes...), Init: init, Cond: c, Step: step, Body: body}
}

// ForEach returns a foreach loop.
func (b *Builder) ForEach(targets []tree.Expr, coll tree.Expr, body tree.Stmt) *tree.ForEach {
	nodes := exprNodes(targets)
	nodes = append(nodes, coll, body)

	return &tree.ForEach{Span: b.span(nodes...), Targets: targets, Collection: coll, Body: body}
}

// Case returns a case label; guard may be nil.
func (b *Builder) Case(p tree.Pattern, guard tree.Expr) *tree.CaseLabel {
	if guard == nil {
		return &tree.CaseLabel{Span: b.span(p), Pattern: p}
	}

	return &tree.CaseLabel{Span: b.span(p, guard), Pattern: p, Guard: guard}
}

// Default returns the default label.
func (b *Builder) Default() *tree.CaseLabel {
	return &tree.CaseLabel{Span: b.span()}
}

// Section returns a switch section.
func (b *Builder) Section(labels []*tree.CaseLabel, body ...tree.Stmt) *tree.Section {
	nodes := make([]tree.Node, 0, len(labels)+len(body))
	for _, l := range labels {
		nodes = append(nodes, l)
	}

	nodes = append(nodes, stmtNodes(body)...)

	return &tree.Section{Span: b.span(nodes...), Labels: labels, Body: body}
}

// Switch returns a switch statement.
func (b *Builder) Switch(tag tree.Expr, sections ...*tree.Section) *tree.Switch {
	nodes := []tree.Node{tag}
	for _, s := range sections {
		nodes = append(nodes, s)
	}

	return &tree.Switch{Span: b.span(nodes...), Tag: tag, Sections: sections}
}

// Break returns a break statement; label may be nil.
func (b *Builder) Break(label *tree.Label) *tree.Break {
	return &tree.Break{Span: b.span(), Label: label}
}

// Continue returns a continue statement; label may be nil.
func (b *Builder) Continue(label *tree.Label) *tree.Continue {
	return &tree.Continue{Span: b.span(), Label: label}
}

// Goto returns a goto statement.
func (b *Builder) Goto(label *tree.Label) *tree.Goto {
	return &tree.Goto{Span: b.span(), Label: label}
}

// Labeled returns a labeled statement and sets the declaration of label.
func (b *Builder) Labeled(label *tree.Label, s tree.Stmt) *tree.Labeled {
	span := b.span(s)
	label.Decl = span.From

	return &tree.Labeled{Span: span, Label: label, Stmt: s}
}

// Return returns a return statement; v may be nil.
func (b *Builder) Return(v tree.Expr) *tree.Return {
	if v == nil {
		return &tree.Return{Span: b.span()}
	}

	return &tree.Return{Span: b.span(v), Value: v}
}

// Throw returns a throw statement; v nil rethrows.
func (b *Builder) Throw(v tree.Expr) *tree.Throw {
	if v == nil {
		return &tree.Throw{Span: b.span()}
	}

	return &tree.Throw{Span: b.span(v), Value: v}
}

// Catch returns a catch clause; v and filter may be nil.
func (b *Builder) Catch(v *tree.Var, filter tree.Expr, body *tree.Block) *tree.Catch {
	if filter == nil {
		return &tree.Catch{Span: b.span(body), Var: v, Body: body}
	}

	return &tree.Catch{Span: b.span(filter, body), Var: v, Filter: filter, Body: body}
}

// Try returns a try statement; finally may be nil.
func (b *Builder) Try(body *tree.Block, catches []*tree.Catch, finally *tree.Block) *tree.Try {
	nodes := []tree.Node{body}
	for _, c := range catches {
		nodes = append(nodes, c)
	}

	if finally != nil {
		nodes = append(nodes, finally)
	}

	return &tree.Try{Span: b.span(nodes...), Body: body, Catches: catches, Finally: finally}
}

// LocalFuncStmt returns a local function declaration.
func (b *Builder) LocalFuncStmt(fn *tree.Func) *tree.LocalFunc {
	return &tree.LocalFunc{Span: b.span(fn), Func: fn}
}

// Empty returns the empty statement.
func (b *Builder) Empty() *tree.Empty {
	return &tree.Empty{Span: b.span()}
}

// Patterns.

// PConst returns a constant pattern; nil is the null pattern.
func (b *Builder) PConst(v any) *tree.ConstPattern {
	return &tree.ConstPattern{Span: b.span(), Value: Value(v)}
}

// PRel returns a relational pattern.
func (b *Builder) PRel(op token.Token, v any) *tree.RelPattern {
	return &tree.RelPattern{Span: b.span(), Op: op, Value: Value(v)}
}

// PType returns a type pattern.
func (b *Builder) PType(typ *tree.Type) *tree.TypePattern {
	return &tree.TypePattern{Span: b.span(), Type: typ}
}

// PDecl returns a declaration pattern; v nil discards.
func (b *Builder) PDecl(typ *tree.Type, v *tree.Var) *tree.DeclPattern {
	return &tree.DeclPattern{Span: b.span(), Type: typ, Var: v}
}

// PVar returns a var pattern.
func (b *Builder) PVar(v *tree.Var) *tree.VarPattern {
	return &tree.VarPattern{Span: b.span(), Var: v}
}

// PDiscard returns the discard pattern.
func (b *Builder) PDiscard() *tree.DiscardPattern {
	return &tree.DiscardPattern{Span: b.span()}
}

// PNot returns not p.
func (b *Builder) PNot(p tree.Pattern) *tree.NotPattern {
	return &tree.NotPattern{Span: b.span(p), Pattern: p}
}

// PAnd returns x and y.
func (b *Builder) PAnd(x, y tree.Pattern) *tree.AndPattern {
	return &tree.AndPattern{Span: b.span(x, y), X: x, Y: y}
}

// POr returns x or y.
func (b *Builder) POr(x, y tree.Pattern) *tree.OrPattern {
	return &tree.OrPattern{Span: b.span(x, y), X: x, Y: y}
}

// Sub returns a property subpattern.
func (b *Builder) Sub(f *tree.Field, p tree.Pattern) *tree.Subpattern {
	return &tree.Subpattern{Span: b.span(p), Field: f, Pattern: p}
}

// PRecursive returns a recursive pattern; v may be nil.
func (b *Builder) PRecursive(typ *tree.Type, v *tree.Var, props ...*tree.Subpattern) *tree.RecursivePattern {
	nodes := make([]tree.Node, 0, len(props))
	for _, p := range props {
		nodes = append(nodes, p)
	}

	return &tree.RecursivePattern{Span: b.span(nodes...), Type: typ, Props: props, Var: v}
}
