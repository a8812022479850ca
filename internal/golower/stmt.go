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

func (f *funcLowerer) stmts(list []ast.Stmt) []tree.Stmt {
	stmts := make([]tree.Stmt, 0, len(list))
	for _, s := range list {
		// var groups declare into the enclosing scope
		if d, ok := s.(*ast.DeclStmt); ok {
			decls := f.declStmt(d)
			if len(decls) > 0 {
				f.nodes[s] = decls[0]
			}

			stmts = append(stmts, decls...)

			continue
		}

		stmts = append(stmts, f.stmt(s))
	}

	return stmts
}

func (f *funcLowerer) stmt(s ast.Stmt) tree.Stmt {
	t := f.visitStmt(s)
	f.nodes[s] = t

	return t
}

func (f *funcLowerer) visitStmt(s ast.Stmt) tree.Stmt {
	switch s := s.(type) {
	case *ast.BlockStmt:
		return f.block(s)

	case *ast.DeclStmt:
		decls := f.declStmt(s)
		if len(decls) == 1 {
			return decls[0]
		}

		return &tree.Block{Span: span(s), Stmts: decls}

	case *ast.AssignStmt:
		return f.assignStmt(s)

	case *ast.IncDecStmt:
		return &tree.ExprStmt{Span: span(s), X: f.accumulate(s, s.X, nil)}

	case *ast.ExprStmt:
		if call, ok := ast.Unparen(s.X).(*ast.CallExpr); ok && NoReturn(f.Info, call) {
			return &tree.Throw{Span: span(s), Value: f.noReturnValue(call)}
		}

		return &tree.ExprStmt{Span: span(s), X: f.expr(s.X)}

	case *ast.SendStmt:
		return &tree.ExprStmt{Span: span(s), X: f.opaque(s, tree.Void, s.Chan, s.Value)}

	case *ast.IfStmt:
		return f.withInit(s, s.Init, f.ifStmt(s))

	case *ast.ForStmt:
		return f.forStmt(s)

	case *ast.RangeStmt:
		return f.rangeStmt(s)

	case *ast.SwitchStmt:
		return f.withInit(s, s.Init, f.switchStmt(s))

	case *ast.TypeSwitchStmt:
		return f.withInit(s, s.Init, f.typeSwitchStmt(s))

	case *ast.SelectStmt:
		return f.selectStmt(s)

	case *ast.LabeledStmt:
		return f.labeledStmt(s)

	case *ast.BranchStmt:
		return f.branchStmt(s)

	case *ast.ReturnStmt:
		return f.returnStmt(s)

	case *ast.DeferStmt:
		return &tree.ExprStmt{Span: span(s), X: f.call(s.Call)}

	case *ast.GoStmt:
		return &tree.ExprStmt{Span: span(s), X: f.call(s.Call)}

	case *ast.EmptyStmt:
		return &tree.Empty{Span: span(s)}

	default:
		f.errorf("%w: statement %T", ErrUnsupported, s)

		return &tree.Empty{Span: span(s)}
	}
}

// labeledStmt labels s. The label of a switch or select with an init
// statement goes on the statement inside the init block, so labeled breaks
// find it.
func (f *funcLowerer) labeledStmt(s *ast.LabeledStmt) tree.Stmt {
	l := f.label(s.Label.Name)
	l.Decl = s.Pos()

	inner := f.stmt(s.Stmt)

	if b, ok := inner.(*tree.Block); ok && hasInit(s.Stmt) && len(b.Stmts) == 2 {
		b.Stmts[1] = &tree.Labeled{Span: span(b.Stmts[1]), Label: l, Stmt: b.Stmts[1]}

		return b
	}

	return &tree.Labeled{Span: span(s), Label: l, Stmt: inner}
}

func hasInit(s ast.Stmt) bool {
	switch s := s.(type) {
	case *ast.IfStmt:
		return s.Init != nil

	case *ast.SwitchStmt:
		return s.Init != nil

	case *ast.TypeSwitchStmt:
		return s.Init != nil

	default:
		return false
	}
}

func (f *funcLowerer) block(b *ast.BlockStmt) *tree.Block {
	return &tree.Block{Span: span(b), Stmts: f.stmts(b.List)}
}

// withInit wraps s in a block with the init statement of an if or switch.
func (f *funcLowerer) withInit(n ast.Node, init ast.Stmt, s tree.Stmt) tree.Stmt {
	if init == nil {
		return s
	}

	return &tree.Block{Span: span(n), Stmts: []tree.Stmt{f.stmt(init), s}}
}

// noReturnValue is the thrown value of a call that does not return: the
// argument of panic, otherwise the call itself.
func (f *funcLowerer) noReturnValue(call *ast.CallExpr) tree.Expr {
	if id, ok := ast.Unparen(call.Fun).(*ast.Ident); ok && f.Info.Uses[id] == builtinPanic && len(call.Args) == 1 {
		return f.expr(call.Args[0])
	}

	return f.expr(call)
}

func (f *funcLowerer) declStmt(s *ast.DeclStmt) []tree.Stmt {
	gen, ok := s.Decl.(*ast.GenDecl)
	if !ok || gen.Tok != token.VAR {
		return []tree.Stmt{&tree.Empty{Span: span(s)}}
	}

	var stmts []tree.Stmt
	for _, spec := range gen.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}

		stmts = append(stmts, f.valueSpec(vs)...)
	}

	if len(stmts) == 0 {
		return []tree.Stmt{&tree.Empty{Span: span(s)}}
	}

	return stmts
}

// valueSpec declares the variables of var a, b T = x, y.
func (f *funcLowerer) valueSpec(vs *ast.ValueSpec) []tree.Stmt {
	switch {
	case len(vs.Values) == 0:
		stmts := make([]tree.Stmt, 0, len(vs.Names))
		for _, name := range vs.Names {
			v := f.define(name, tree.LocalVar)
			if v == nil {
				continue
			}

			d := &tree.Declare{Span: span(vs), Var: v}
			if obj, ok := f.Info.Defs[name].(*types.Var); ok && zeroAssigned(obj.Type()) {
				d.Init = &tree.Operation{Typed: typed(vs, v.Type)}
			}

			stmts = append(stmts, d)
		}

		return stmts

	case len(vs.Names) == 1 && len(vs.Values) == 1:
		init := f.expr(vs.Values[0])

		v := f.define(vs.Names[0], tree.LocalVar)
		if v == nil {
			return []tree.Stmt{&tree.ExprStmt{Span: span(vs), X: init}}
		}

		return []tree.Stmt{&tree.Declare{Span: span(vs), Var: v, Init: init}}

	default:
		targets := make([]tree.Expr, 0, len(vs.Names))
		for _, name := range vs.Names {
			targets = append(targets, f.defTarget(name))
		}

		return []tree.Stmt{&tree.ExprStmt{Span: span(vs), X: f.deconstruct(vs, targets, vs.Values)}}
	}
}

// defTarget is the target for a defining identifier of := or a multi-value var.
func (f *funcLowerer) defTarget(id *ast.Ident) tree.Expr {
	if id.Name == "_" {
		return &tree.Discard{Typed: typed(id, nil)}
	}

	if v := f.define(id, tree.LocalVar); v != nil {
		return &tree.DeclExpr{Typed: typed(id, v.Type), Var: v}
	}

	return f.target(id)
}

// deconstruct assigns values to targets after evaluating all of them.
func (f *funcLowerer) deconstruct(n ast.Node, targets []tree.Expr, values []ast.Expr) tree.Expr {
	var value tree.Expr
	if len(values) == 1 {
		value = f.expr(values[0])
	} else {
		elems := make([]tree.Expr, 0, len(values))
		for _, x := range values {
			elems = append(elems, f.expr(x))
		}

		value = &tree.Tuple{Typed: typed(n, tree.Object), Elems: elems}
	}

	return &tree.Deconstruct{Typed: typed(n, tree.Void), Targets: targets, Value: value}
}

func (f *funcLowerer) assignStmt(s *ast.AssignStmt) tree.Stmt {
	switch s.Tok {
	case token.DEFINE:
		if len(s.Lhs) == 1 && len(s.Rhs) == 1 {
			if id, ok := s.Lhs[0].(*ast.Ident); ok {
				if v := f.define(id, tree.LocalVar); v != nil {
					return &tree.Declare{Span: span(s), Var: v, Init: f.expr(s.Rhs[0])}
				}
			}
		}

		targets := make([]tree.Expr, 0, len(s.Lhs))
		for _, x := range s.Lhs {
			if id, ok := x.(*ast.Ident); ok {
				targets = append(targets, f.defTarget(id))
			} else {
				targets = append(targets, f.target(x))
			}
		}

		return &tree.ExprStmt{Span: span(s), X: f.deconstruct(s, targets, s.Rhs)}

	case token.ASSIGN:
		if len(s.Lhs) == 1 && len(s.Rhs) == 1 {
			x := &tree.Assign{Typed: typed(s, tree.Void), Op: token.ASSIGN, Target: f.target(s.Lhs[0]), Value: f.expr(s.Rhs[0])}

			return &tree.ExprStmt{Span: span(s), X: x}
		}

		targets := make([]tree.Expr, 0, len(s.Lhs))
		for _, x := range s.Lhs {
			targets = append(targets, f.target(x))
		}

		return &tree.ExprStmt{Span: span(s), X: f.deconstruct(s, targets, s.Rhs)}

	default:
		return &tree.ExprStmt{Span: span(s), X: f.accumulate(s, s.Lhs[0], s.Rhs[0])}
	}
}

// accumulate lowers x op= y and x++: variables count as assigned by the
// update, the previous value is their zero value or an earlier assignment.
func (f *funcLowerer) accumulate(n ast.Node, x, y ast.Expr) tree.Expr {
	target := f.target(x)

	var operands []tree.Expr
	if y != nil {
		operands = append(operands, f.expr(y))
	}

	value := &tree.Operation{Typed: typed(n, f.typeOf(x)), Operands: operands}

	return &tree.Assign{Typed: typed(n, tree.Void), Op: token.ASSIGN, Target: target, Value: value}
}

func (f *funcLowerer) ifStmt(s *ast.IfStmt) tree.Stmt {
	t := &tree.If{Span: span(s), Cond: f.expr(s.Cond), Then: f.block(s.Body)}
	if s.Else != nil {
		t.Else = f.stmt(s.Else)
	}

	return t
}

func (f *funcLowerer) forStmt(s *ast.ForStmt) tree.Stmt {
	t := &tree.For{Span: span(s)}

	if s.Init != nil {
		t.Init = []tree.Stmt{f.stmt(s.Init)}
	}

	if s.Cond != nil {
		t.Cond = f.expr(s.Cond)
	}

	t.Body = f.block(s.Body)

	if s.Post != nil {
		t.Step = []tree.Stmt{f.stmt(s.Post)}
	}

	return t
}

func (f *funcLowerer) rangeStmt(s *ast.RangeStmt) tree.Stmt {
	t := &tree.ForEach{Span: span(s), Collection: f.expr(s.X)}

	for _, x := range []ast.Expr{s.Key, s.Value} {
		if x == nil {
			continue
		}

		if id, ok := x.(*ast.Ident); ok && s.Tok == token.DEFINE {
			t.Targets = append(t.Targets, f.defTarget(id))
		} else {
			t.Targets = append(t.Targets, f.target(x))
		}
	}

	t.Body = f.block(s.Body)

	return t
}

// switchStmt lowers an expression switch. Constant cases become constant
// patterns, others guards comparing the tag. fallthrough jumps to a label on
// the next clause body.
func (f *funcLowerer) switchStmt(s *ast.SwitchStmt) tree.Stmt {
	t := &tree.Switch{Span: span(s)}

	var tagType *tree.Type
	if s.Tag != nil {
		t.Tag = f.expr(s.Tag)
		tagType = t.Tag.ExprType()
	}

	clauses := caseClauses(s.Body)
	through := f.fallthroughLabels(clauses)

	for i, cc := range clauses {
		sec := &tree.Section{Span: span(cc)}

		if cc.List == nil {
			sec.Labels = []*tree.CaseLabel{{Span: span(cc)}}
		}

		for _, x := range cc.List {
			sec.Labels = append(sec.Labels, f.caseLabel(x, s.Tag != nil, tagType))
		}

		sec.Body = f.clauseBody(cc.Body, cc.Colon, through, i)
		t.Sections = append(t.Sections, sec)
	}

	return t
}

func (f *funcLowerer) caseLabel(x ast.Expr, tagged bool, tagType *tree.Type) *tree.CaseLabel {
	cl := &tree.CaseLabel{Span: span(x)}

	tv := f.Info.Types[x]
	if tagged && tv.Value != nil && patternType(tagType) {
		cl.Pattern = &tree.ConstPattern{Span: span(x), Value: patternValue(tv.Value)}

		return cl
	}

	cl.Pattern = &tree.DiscardPattern{Span: span(x)}

	if !tagged {
		cl.Guard = f.expr(x)

		return cl
	}

	tag := &tree.Operation{Typed: typed(x, tagType)}
	cl.Guard = &tree.Binary{Typed: typed(x, tree.Bool), Op: token.EQL, X: tag, Y: f.expr(x)}

	return cl
}

// patternType reports whether constants of t can be matched as patterns.
func patternType(t *tree.Type) bool {
	switch t.Underlying().Kind {
	case tree.KindBool, tree.KindInteger, tree.KindEnum:
		return true

	default:
		return false
	}
}

func patternValue(v constant.Value) constant.Value {
	if v.Kind() == constant.Float {
		if i := constant.ToInt(v); i.Kind() == constant.Int {
			return i
		}
	}

	return v
}

func caseClauses(body *ast.BlockStmt) []*ast.CaseClause {
	clauses := make([]*ast.CaseClause, 0, len(body.List))
	for _, s := range body.List {
		if cc, ok := s.(*ast.CaseClause); ok {
			clauses = append(clauses, cc)
		}
	}

	return clauses
}

// fallthroughLabels returns the synthetic labels of clause bodies entered by
// a fallthrough from the previous clause.
func (f *funcLowerer) fallthroughLabels(clauses []*ast.CaseClause) map[int]*tree.Label {
	var labels map[int]*tree.Label

	for i, cc := range clauses {
		if i+1 >= len(clauses) || len(cc.Body) == 0 {
			continue
		}

		br, ok := cc.Body[len(cc.Body)-1].(*ast.BranchStmt)
		if !ok || br.Tok != token.FALLTHROUGH {
			continue
		}

		if labels == nil {
			labels = make(map[int]*tree.Label)
		}

		next := clauses[i+1]
		labels[i+1] = &tree.Label{Name: "fallthrough", Decl: next.Colon}
	}

	return labels
}

// clauseBody lowers the statements of clause i, labeled when a fallthrough
// enters it. A trailing fallthrough jumps to the next clause.
func (f *funcLowerer) clauseBody(list []ast.Stmt, colon token.Pos, through map[int]*tree.Label, i int) []tree.Stmt {
	var stmts []tree.Stmt
	for _, s := range list {
		if br, ok := s.(*ast.BranchStmt); ok && br.Tok == token.FALLTHROUGH {
			stmts = append(stmts, &tree.Goto{Span: span(br), Label: through[i+1]})

			continue
		}

		stmts = append(stmts, f.stmt(s))
	}

	l, ok := through[i]
	if !ok {
		return stmts
	}

	end := colon + 1
	if len(list) > 0 {
		end = list[len(list)-1].End()
	}

	body := &tree.Block{Span: tree.Span{From: colon, To: end}, Stmts: stmts}

	return []tree.Stmt{&tree.Labeled{Span: body.Span, Label: l, Stmt: body}}
}

// typeSwitchStmt lowers a type switch to type patterns. The clause variable
// is declared at the start of each clause body.
func (f *funcLowerer) typeSwitchStmt(s *ast.TypeSwitchStmt) tree.Stmt {
	t := &tree.Switch{Span: span(s)}

	var x ast.Expr
	switch a := s.Assign.(type) {
	case *ast.AssignStmt:
		x = a.Rhs[0]

	case *ast.ExprStmt:
		x = a.X
	}

	if ta, ok := x.(*ast.TypeAssertExpr); ok {
		t.Tag = f.expr(ta.X)
	}

	for _, cc := range caseClauses(s.Body) {
		sec := &tree.Section{Span: span(cc)}

		if cc.List == nil {
			sec.Labels = []*tree.CaseLabel{{Span: span(cc)}}
		}

		for _, typ := range cc.List {
			sec.Labels = append(sec.Labels, &tree.CaseLabel{Span: span(typ), Pattern: f.typePattern(typ)})
		}

		if obj, ok := f.Info.Implicits[cc].(*types.Var); ok {
			v := f.defineVar(obj, tree.PatternVar)
			init := &tree.Operation{Typed: typed(cc, v.Type)}
			sec.Body = append(sec.Body, &tree.Declare{Span: tree.Span{From: cc.Colon, To: cc.Colon + 1}, Var: v, Init: init})
		}

		sec.Body = append(sec.Body, f.stmts(cc.Body)...)
		t.Sections = append(t.Sections, sec)
	}

	return t
}

func (f *funcLowerer) typePattern(typ ast.Expr) tree.Pattern {
	tv := f.Info.Types[typ]
	if tv.IsNil() {
		return &tree.ConstPattern{Span: span(typ)}
	}

	return &tree.TypePattern{Span: span(typ), Type: f.types.of(tv.Type)}
}

// selectStmt lowers a select to a switch over an opaque tag with one section
// per clause. Without a default clause the last clause takes the remaining
// values, so one clause always runs. select {} blocks forever.
func (f *funcLowerer) selectStmt(s *ast.SelectStmt) tree.Stmt {
	if len(s.Body.List) == 0 {
		return &tree.For{Span: span(s), Body: &tree.Empty{Span: span(s.Body)}}
	}

	t := &tree.Switch{Span: span(s), Tag: &tree.Operation{Typed: typed(s, tree.Int)}}

	hasDefault := false
	for _, c := range s.Body.List {
		if cc, ok := c.(*ast.CommClause); ok && cc.Comm == nil {
			hasDefault = true
		}
	}

	for i, c := range s.Body.List {
		cc, ok := c.(*ast.CommClause)
		if !ok {
			continue
		}

		sec := &tree.Section{Span: span(cc)}

		label := &tree.CaseLabel{Span: span(cc)}
		if cc.Comm != nil && (hasDefault || i < len(s.Body.List)-1) {
			label.Pattern = &tree.ConstPattern{Span: span(cc), Value: constant.MakeInt64(int64(i))}
		}

		sec.Labels = []*tree.CaseLabel{label}

		if cc.Comm != nil {
			sec.Body = append(sec.Body, f.stmt(cc.Comm))
		}

		sec.Body = append(sec.Body, f.stmts(cc.Body)...)
		t.Sections = append(t.Sections, sec)
	}

	return t
}

func (f *funcLowerer) branchStmt(s *ast.BranchStmt) tree.Stmt {
	var label *tree.Label
	if s.Label != nil {
		label = f.label(s.Label.Name)
	}

	switch s.Tok {
	case token.BREAK:
		return &tree.Break{Span: span(s), Label: label}

	case token.CONTINUE:
		return &tree.Continue{Span: span(s), Label: label}

	case token.GOTO:
		return &tree.Goto{Span: span(s), Label: label}

	default:
		f.errorf("%w: misplaced %s", ErrUnsupported, s.Tok)

		return &tree.Empty{Span: span(s)}
	}
}

func (f *funcLowerer) returnStmt(s *ast.ReturnStmt) tree.Stmt {
	switch len(s.Results) {
	case 0:
		return &tree.Return{Span: span(s)}

	case 1:
		return &tree.Return{Span: span(s), Value: f.expr(s.Results[0])}

	default:
		elems := make([]tree.Expr, 0, len(s.Results))
		for _, x := range s.Results {
			elems = append(elems, f.expr(x))
		}

		return &tree.Return{Span: span(s), Value: &tree.Tuple{Typed: typed(s, tree.Object), Elems: elems}}
	}
}
