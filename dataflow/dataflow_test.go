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

package dataflow_test

import (
	"context"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "fillmore-labs.com/flowguard/dataflow"
	"fillmore-labs.com/flowguard/internal/testtree"
	"fillmore-labs.com/flowguard/tree"
)

var class = &tree.Type{Name: "C", Kind: tree.KindReference}

// fixture holds the methods the test bodies call.
type fixture struct {
	*testtree.Builder

	F   *tree.Method // bool F(int)
	G   *tree.Method // bool G(out int)
	Use *tree.Method // void Use(object)
}

func newFixture() fixture {
	b := testtree.New()

	return fixture{
		Builder: b,
		F:       b.Method("F", tree.Bool, b.Param("x", tree.Int)),
		G:       b.Method("G", tree.Bool, b.OutParam("x", tree.Int)),
		Use:     b.Method("Use", tree.Void, b.Param("o", tree.Object)),
	}
}

// use returns the statement Use(v).
func (f fixture) use(v *tree.Var) (*tree.ExprStmt, *tree.VarRef) {
	ref := f.Ref(v)

	return f.Do(f.Call(f.Use, f.Arg(ref))), ref
}

func kinds(diags []Diagnostic) []Kind {
	ks := make([]Kind, 0, len(diags))
	for _, d := range diags {
		ks = append(ks, d.Kind)
	}

	return ks
}

func TestUnassignedInConditionalCall(t *testing.T) {
	t.Parallel()

	// { int a; if (cond) F(a); }
	f := newFixture()
	cond := f.Param("cond", tree.Bool)
	a := f.Local("a", tree.Int)

	read := f.Ref(a)
	fn := f.Func("M", tree.Void, []*tree.Var{cond},
		f.Declare(a, nil),
		f.If(f.Ref(cond), f.Do(f.Call(f.F, f.Arg(read))), nil),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	require.Len(t, diags, 1)

	assert.Equal(t, UseOfUnassignedVariable, diags[0].Kind)
	assert.Equal(t, "a", diags[0].Name)
	assert.Equal(t, read.Pos(), diags[0].Span.From)
}

func TestOutArgumentAssigns(t *testing.T) {
	t.Parallel()

	// { int a; if (G(out a)) F(a); }
	f := newFixture()
	a := f.Local("a", tree.Int)

	fn := f.Func("M", tree.Void, nil,
		f.Declare(a, nil),
		f.If(f.Call(f.G, f.Out(f.Ref(a))), f.Do(f.Call(f.F, f.Arg(f.Ref(a)))), nil),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestOnlyFirstUseIsReported(t *testing.T) {
	t.Parallel()

	// { int a; F(a); F(a); if (c) F(a); }
	f := newFixture()
	c := f.Param("c", tree.Bool)
	a := f.Local("a", tree.Int)

	first := f.Ref(a)
	fn := f.Func("M", tree.Void, []*tree.Var{c},
		f.Declare(a, nil),
		f.Do(f.Call(f.F, f.Arg(first))),
		f.Do(f.Call(f.F, f.Arg(f.Ref(a)))),
		f.If(f.Ref(c), f.Do(f.Call(f.F, f.Arg(f.Ref(a)))), nil),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, first.Pos(), diags[0].Span.From)
}

func TestConstantConditionIsUnreachable(t *testing.T) {
	t.Parallel()

	// if (fFalse) F(a); else G(out a); F(a);
	f := newFixture()
	a := f.Local("a", tree.Int)

	dead := f.Do(f.Call(f.F, f.Arg(f.Ref(a))))
	fn := f.Func("M", tree.Void, nil,
		f.Declare(a, nil),
		f.If(f.Const("fFalse", false), dead, f.Do(f.Call(f.G, f.Out(f.Ref(a))))),
		f.Do(f.Call(f.F, f.Arg(f.Ref(a)))),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	require.Len(t, diags, 1)

	assert.Equal(t, UnreachableCode, diags[0].Kind)
	assert.Equal(t, dead.Pos(), diags[0].Span.From)
}

func TestUnreachableRunIsReportedOnce(t *testing.T) {
	t.Parallel()

	// { return; F(1); F(2); { F(3); } }
	f := newFixture()

	first := f.Do(f.Call(f.F, f.Arg(f.Lit(1))))
	fn := f.Func("M", tree.Void, nil,
		f.Return(nil),
		first,
		f.Do(f.Call(f.F, f.Arg(f.Lit(2)))),
		f.Block(f.Do(f.Call(f.F, f.Arg(f.Lit(3))))),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, first.Pos(), diags[0].Span.From)
}

func TestUnreachableSectionsAreReportedSeparately(t *testing.T) {
	t.Parallel()

	// switch (x) { case 1 when false: F(1); break; case 2 when false: F(2); break; default: break; }
	f := newFixture()
	x := f.Param("x", tree.Int)

	first := f.Do(f.Call(f.F, f.Arg(f.Lit(1))))
	second := f.Do(f.Call(f.F, f.Arg(f.Lit(2))))

	fn := f.Func("M", tree.Void, []*tree.Var{x},
		f.Switch(f.Ref(x),
			f.Section([]*tree.CaseLabel{f.Case(f.PConst(1), f.Lit(false))}, first, f.Break(nil)),
			f.Section([]*tree.CaseLabel{f.Case(f.PConst(2), f.Lit(false))}, second, f.Break(nil)),
			f.Section([]*tree.CaseLabel{f.Default()}, f.Break(nil)),
		),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	require.Equal(t, []Kind{UnreachableCode, UnreachableCode}, kinds(diags))
	assert.Equal(t, first.Pos(), diags[0].Span.From)
	assert.Equal(t, second.Pos(), diags[1].Span.From)
}

func TestLocalFunctionAfterReturn(t *testing.T) {
	t.Parallel()

	// void M() { L(); return; void L() { int a; F(a); F(1); } }
	f := newFixture()
	a := f.Local("a", tree.Int)

	l := f.LocalFunc("L", tree.Void, nil,
		f.Declare(a, nil),
		f.Do(f.Call(f.F, f.Arg(f.Ref(a)))),
		f.Do(f.Call(f.F, f.Arg(f.Lit(1)))),
	)

	fn := f.Func("M", tree.Void, nil,
		f.Do(f.Invoke(f.FuncRef(l), tree.Void)),
		f.Return(nil),
		f.LocalFuncStmt(l),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	require.Equal(t, []Kind{UseOfUnassignedVariable}, kinds(diags))
	assert.Equal(t, "a", diags[0].Name)
}

func TestLocalFunctionDoesNotAssignOut(t *testing.T) {
	t.Parallel()

	// void M(out int a) { bool L() => true; L(); }
	f := newFixture()
	a := f.OutParam("a", tree.Int)

	l := f.ExprLambda(nil, f.Lit(true))
	l.Name, l.Kind = "L", tree.LocalFunction

	fn := f.Func("M", tree.Void, []*tree.Var{a},
		f.LocalFuncStmt(l),
		f.Do(f.Invoke(f.FuncRef(l), tree.Bool)),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	require.Len(t, diags, 1)

	assert.Equal(t, OutParameterNotAssignedAtExit, diags[0].Kind)
	assert.Equal(t, "a", diags[0].Name)
	assert.Equal(t, fn.Pos(), diags[0].Span.From)
}

func TestOutParameterAssignedOnAllPaths(t *testing.T) {
	t.Parallel()

	// void M(bool c, out int a) { if (c) { a = 1; return; } a = 2; }
	f := newFixture()
	c := f.Param("c", tree.Bool)
	a := f.OutParam("a", tree.Int)

	fn := f.Func("M", tree.Void, []*tree.Var{c, a},
		f.If(f.Ref(c), f.Block(f.Do(f.Assign(f.Ref(a), f.Lit(1))), f.Return(nil)), nil),
		f.Do(f.Assign(f.Ref(a), f.Lit(2))),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestReadOfOutParameter(t *testing.T) {
	t.Parallel()

	// void M(out int a) { F(a); a = 1; }
	f := newFixture()
	a := f.OutParam("a", tree.Int)

	fn := f.Func("M", tree.Void, []*tree.Var{a},
		f.Do(f.Call(f.F, f.Arg(f.Ref(a)))),
		f.Do(f.Assign(f.Ref(a), f.Lit(1))),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	assert.Equal(t, []Kind{UseOfUnassignedOutParameter}, kinds(diags))
}

func TestExhaustiveByteSwitch(t *testing.T) {
	t.Parallel()

	// int a; switch (b) { case 0: a = 0; break; ... case 255: a = 255; break; } F(a);
	f := newFixture()
	bv := f.Param("b", tree.Byte)
	a := f.Local("a", tree.Int)

	tag := f.Ref(bv)

	sections := make([]*tree.Section, 0, 256)
	for i := range 256 {
		sections = append(sections, f.Section(
			[]*tree.CaseLabel{f.Case(f.PConst(i), nil)},
			f.Do(f.Assign(f.Ref(a), f.Lit(i))),
			f.Break(nil),
		))
	}

	fn := f.Func("M", tree.Void, []*tree.Var{bv},
		f.Declare(a, nil),
		f.Switch(tag, sections...),
		f.Do(f.Call(f.F, f.Arg(f.Ref(a)))),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestNonExhaustiveSwitch(t *testing.T) {
	t.Parallel()

	// int a; switch (b) { case 0: a = 0; break; } F(a);
	f := newFixture()
	bv := f.Param("b", tree.Byte)
	a := f.Local("a", tree.Int)

	fn := f.Func("M", tree.Void, []*tree.Var{bv},
		f.Declare(a, nil),
		f.Switch(f.Ref(bv), f.Section(
			[]*tree.CaseLabel{f.Case(f.PConst(0), nil)},
			f.Do(f.Assign(f.Ref(a), f.Lit(0))),
			f.Break(nil),
		)),
		f.Do(f.Call(f.F, f.Arg(f.Ref(a)))),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	assert.Equal(t, []Kind{UseOfUnassignedVariable}, kinds(diags))
}

func TestConditionalAccessComparedWithTrue(t *testing.T) {
	t.Parallel()

	// _ = c?.M(out x, out y) == true ? F(x) : F(y);
	f := newFixture()
	c := f.Param("c", class)
	x := f.Local("x", tree.Int)
	y := f.Local("y", tree.Int)
	m := f.Method("M", tree.Bool, f.OutParam("p", tree.Int), f.OutParam("q", tree.Int))

	access := f.CondAccess(f.Ref(c), f.CallOn(f.Recv(class), m, f.Out(f.Ref(x)), f.Out(f.Ref(y))))
	readY := f.Ref(y)
	test := f.Cond(
		f.Eq(access, f.Lit(true)),
		f.Call(f.F, f.Arg(f.Ref(x))),
		f.Call(f.F, f.Arg(readY)),
	)

	fn := f.Func("N", tree.Void, []*tree.Var{c},
		f.Declare(x, nil),
		f.Declare(y, nil),
		f.Do(f.Assign(f.Discard(), test)),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	require.Len(t, diags, 1)

	assert.Equal(t, "y", diags[0].Name)
	assert.Equal(t, readY.Pos(), diags[0].Span.From)
}

func TestConditionalAccessThroughConversion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		param *tree.Type
		want  int
	}{
		{"nullable parameter", tree.NewNullable(tree.Bool), 1},
		{"non-nullable value type parameter", tree.Int, 0},
		{"reference parameter", tree.Object, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// if ((T)c?.M(out x) == true) F(x);
			f := newFixture()
			c := f.Param("c", class)
			x := f.Local("x", tree.Int)
			m := f.Method("M", tree.Bool, f.OutParam("p", tree.Int))

			access := f.CondAccess(f.Ref(c), f.CallOn(f.Recv(class), m, f.Out(f.Ref(x))))
			conv := f.Conv(access, tree.ConvUserDefined, tt.param, tree.NewNullable(tree.Bool))

			fn := f.Func("N", tree.Void, []*tree.Var{c},
				f.Declare(x, nil),
				f.If(f.Eq(conv, f.Lit(true)), f.Do(f.Call(f.F, f.Arg(f.Ref(x)))), nil),
			)

			diags, err := AnalyzeDiagnostics(context.Background(), fn)
			require.NoError(t, err)
			assert.Len(t, diags, tt.want)
		})
	}
}

func TestCoalesceWithConditionalAccess(t *testing.T) {
	t.Parallel()

	// if (c?.M(out x) ?? false) F(x);
	f := newFixture()
	c := f.Param("c", class)
	x := f.Local("x", tree.Int)
	m := f.Method("M", tree.Bool, f.OutParam("p", tree.Int))

	access := f.CondAccess(f.Ref(c), f.CallOn(f.Recv(class), m, f.Out(f.Ref(x))))

	fn := f.Func("N", tree.Void, []*tree.Var{c},
		f.Declare(x, nil),
		f.If(f.Coalesce(access, f.Lit(false)), f.Do(f.Call(f.F, f.Arg(f.Ref(x)))), nil),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestShortCircuit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		and  bool
		want int
	}{
		{"and", true, 0},
		{"or", false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// if (c && G(out a)) F(a);  or  if (c || G(out a)) F(a);
			f := newFixture()
			c := f.Param("c", tree.Bool)
			a := f.Local("a", tree.Int)

			left, right := f.Ref(c), f.Call(f.G, f.Out(f.Ref(a)))

			var cond tree.Expr
			if tt.and {
				cond = f.And(left, right)
			} else {
				cond = f.Or(left, right)
			}

			fn := f.Func("M", tree.Void, []*tree.Var{c},
				f.Declare(a, nil),
				f.If(cond, f.Do(f.Call(f.F, f.Arg(f.Ref(a)))), nil),
			)

			diags, err := AnalyzeDiagnostics(context.Background(), fn)
			require.NoError(t, err)
			assert.Len(t, diags, tt.want)
		})
	}
}

func TestNegatedOrKeepsFalseBranch(t *testing.T) {
	t.Parallel()

	// if (!(c || !G(out a))) F(a);
	f := newFixture()
	c := f.Param("c", tree.Bool)
	a := f.Local("a", tree.Int)

	cond := f.Not(f.Or(f.Ref(c), f.Not(f.Call(f.G, f.Out(f.Ref(a))))))

	fn := f.Func("M", tree.Void, []*tree.Var{c},
		f.Declare(a, nil),
		f.If(cond, f.Do(f.Call(f.F, f.Arg(f.Ref(a)))), nil),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestBooleanIdentities(t *testing.T) {
	t.Parallel()

	// if ((G(out a) || false) == true) F(a);
	f := newFixture()
	a := f.Local("a", tree.Int)

	cond := f.Eq(f.Or(f.Call(f.G, f.Out(f.Ref(a))), f.Lit(false)), f.Lit(true))

	fn := f.Func("M", tree.Void, nil,
		f.Declare(a, nil),
		f.If(cond, f.Do(f.Call(f.F, f.Arg(f.Ref(a)))), nil),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestPatternBindings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		neg  bool
		want int
	}{
		{"is", false, 0},
		{"is not", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// if (o is int i) F(i);  or  if (o is not int i) F(i);
			f := newFixture()
			o := f.Param("o", tree.Object)
			i := f.PatternVar("i", tree.Int)

			var p tree.Pattern = f.PDecl(tree.Int, i)
			if tt.neg {
				p = f.PNot(p)
			}

			fn := f.Func("M", tree.Void, []*tree.Var{o},
				f.If(f.Is(f.Ref(o), p), f.Do(f.Call(f.F, f.Arg(f.Ref(i)))), nil),
			)

			diags, err := AnalyzeDiagnostics(context.Background(), fn)
			require.NoError(t, err)
			assert.Len(t, diags, tt.want)
		})
	}
}

func TestOrPatternMergesBindings(t *testing.T) {
	t.Parallel()

	// if (!(o is int i) || i > 0) { } else F(i);
	f := newFixture()
	o := f.Param("o", tree.Object)
	i := f.PatternVar("i", tree.Int)

	cond := f.Or(f.Not(f.Is(f.Ref(o), f.PDecl(tree.Int, i))), f.Bin(token.GTR, f.Ref(i), f.Lit(0)))

	fn := f.Func("M", tree.Void, []*tree.Var{o},
		f.If(cond, f.Block(), f.Do(f.Call(f.F, f.Arg(f.Ref(i))))),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestWhileLoopReachesFixedPoint(t *testing.T) {
	t.Parallel()

	// int a; while (c) { F(a); a = 1; }
	f := newFixture()
	c := f.Param("c", tree.Bool)
	a := f.Local("a", tree.Int)

	fn := f.Func("M", tree.Void, []*tree.Var{c},
		f.Declare(a, nil),
		f.While(f.Ref(c), f.Block(
			f.Do(f.Call(f.F, f.Arg(f.Ref(a)))),
			f.Do(f.Assign(f.Ref(a), f.Lit(1))),
		)),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	assert.Equal(t, []Kind{UseOfUnassignedVariable}, kinds(diags))
}

func TestInfiniteLoopEndIsUnreachable(t *testing.T) {
	t.Parallel()

	// int a; while (true) { if (G(out a)) break; } F(a);
	f := newFixture()
	a := f.Local("a", tree.Int)

	fn := f.Func("M", tree.Void, nil,
		f.Declare(a, nil),
		f.While(f.Lit(true), f.Block(
			f.If(f.Call(f.G, f.Out(f.Ref(a))), f.Break(nil), nil),
		)),
		f.Do(f.Call(f.F, f.Arg(f.Ref(a)))),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestGotoBackward(t *testing.T) {
	t.Parallel()

	// int a; goto L2; L1: F(a); return; L2: a = 1; goto L1;
	f := newFixture()
	a := f.Local("a", tree.Int)
	l1, l2 := f.Label("L1"), f.Label("L2")

	fn := f.Func("M", tree.Void, nil,
		f.Declare(a, nil),
		f.Goto(l2),
		f.Labeled(l1, f.Do(f.Call(f.F, f.Arg(f.Ref(a))))),
		f.Return(nil),
		f.Labeled(l2, f.Do(f.Assign(f.Ref(a), f.Lit(1)))),
		f.Goto(l1),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestGotoLoop(t *testing.T) {
	t.Parallel()

	// int a; L: F(a); a = 1; goto L;
	f := newFixture()
	a := f.Local("a", tree.Int)
	l := f.Label("L")

	fn := f.Func("M", tree.Void, nil,
		f.Declare(a, nil),
		f.Labeled(l, f.Do(f.Call(f.F, f.Arg(f.Ref(a))))),
		f.Do(f.Assign(f.Ref(a), f.Lit(1))),
		f.Goto(l),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	assert.Equal(t, []Kind{UseOfUnassignedVariable}, kinds(diags))
}

func TestTryFinally(t *testing.T) {
	t.Parallel()

	t.Run("finally sees try entry", func(t *testing.T) {
		t.Parallel()

		// int a; try { a = 1; } finally { F(a); }
		f := newFixture()
		a := f.Local("a", tree.Int)

		fn := f.Func("M", tree.Void, nil,
			f.Declare(a, nil),
			f.Try(
				f.Block(f.Do(f.Assign(f.Ref(a), f.Lit(1)))),
				nil,
				f.Block(f.Do(f.Call(f.F, f.Arg(f.Ref(a))))),
			),
		)

		diags, err := AnalyzeDiagnostics(context.Background(), fn)
		require.NoError(t, err)
		assert.Equal(t, []Kind{UseOfUnassignedVariable}, kinds(diags))
	})

	t.Run("finally assigns", func(t *testing.T) {
		t.Parallel()

		// int a; try { Use(null); } finally { a = 1; } F(a);
		f := newFixture()
		a := f.Local("a", tree.Int)

		fn := f.Func("M", tree.Void, nil,
			f.Declare(a, nil),
			f.Try(
				f.Block(f.Do(f.Call(f.Use, f.Arg(f.Null())))),
				nil,
				f.Block(f.Do(f.Assign(f.Ref(a), f.Lit(1)))),
			),
			f.Do(f.Call(f.F, f.Arg(f.Ref(a)))),
		)

		diags, err := AnalyzeDiagnostics(context.Background(), fn)
		require.NoError(t, err)
		assert.Empty(t, diags)
	})

	t.Run("catch may skip assignment", func(t *testing.T) {
		t.Parallel()

		// int a; try { G(out a); } catch { } F(a);
		f := newFixture()
		a := f.Local("a", tree.Int)

		fn := f.Func("M", tree.Void, nil,
			f.Declare(a, nil),
			f.Try(
				f.Block(f.Do(f.Call(f.G, f.Out(f.Ref(a))))),
				[]*tree.Catch{f.Catch(nil, nil, f.Block())},
				nil,
			),
			f.Do(f.Call(f.F, f.Arg(f.Ref(a)))),
		)

		diags, err := AnalyzeDiagnostics(context.Background(), fn)
		require.NoError(t, err)
		assert.Equal(t, []Kind{UseOfUnassignedVariable}, kinds(diags))
	})

	t.Run("catch rethrows", func(t *testing.T) {
		t.Parallel()

		// int a; try { G(out a); } catch { throw; } F(a);
		f := newFixture()
		a := f.Local("a", tree.Int)

		fn := f.Func("M", tree.Void, nil,
			f.Declare(a, nil),
			f.Try(
				f.Block(f.Do(f.Call(f.G, f.Out(f.Ref(a))))),
				[]*tree.Catch{f.Catch(nil, nil, f.Block(f.Throw(nil)))},
				nil,
			),
			f.Do(f.Call(f.F, f.Arg(f.Ref(a)))),
		)

		diags, err := AnalyzeDiagnostics(context.Background(), fn)
		require.NoError(t, err)
		assert.Empty(t, diags)
	})

	t.Run("finally that does not complete", func(t *testing.T) {
		t.Parallel()

		// try { } finally { throw null; } F(1);
		f := newFixture()

		after := f.Do(f.Call(f.F, f.Arg(f.Lit(1))))
		fn := f.Func("M", tree.Void, nil,
			f.Try(f.Block(), nil, f.Block(f.Throw(f.Null()))),
			after,
		)

		diags, err := AnalyzeDiagnostics(context.Background(), fn)
		require.NoError(t, err)
		require.Equal(t, []Kind{UnreachableCode}, kinds(diags))
		assert.Equal(t, after.Pos(), diags[0].Span.From)
	})
}

func TestLambdaUsesDeclarationState(t *testing.T) {
	t.Parallel()

	// int a; var f = () => F(a); a = 1; f();
	f := newFixture()
	a := f.Local("a", tree.Int)
	d := f.Local("d", tree.Object)

	lambda := f.ExprLambda(nil, f.Call(f.F, f.Arg(f.Ref(a))))

	fn := f.Func("M", tree.Void, nil,
		f.Declare(a, nil),
		f.Declare(d, f.LambdaExpr(lambda)),
		f.Do(f.Assign(f.Ref(a), f.Lit(1))),
		f.Do(f.Invoke(f.Ref(d), tree.Bool)),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	assert.Equal(t, []Kind{UseOfUnassignedVariable}, kinds(diags))
}

func TestStructFields(t *testing.T) {
	t.Parallel()

	// S s; s.x = 1; F(s.x); F(s.y); Use(s);
	f := newFixture()
	fx, fy := &tree.Field{Name: "x", Type: tree.Int}, &tree.Field{Name: "y", Type: tree.Int}
	st := tree.NewStruct("S", fx, fy)
	s := f.Local("s", st)

	fn := f.Func("M", tree.Void, nil,
		f.Declare(s, nil),
		f.Do(f.Assign(f.Field(f.Ref(s), fx), f.Lit(1))),
		f.Do(f.Call(f.F, f.Arg(f.Field(f.Ref(s), fx)))),
		f.Do(f.Call(f.F, f.Arg(f.Field(f.Ref(s), fy)))),
		f.Do(f.Call(f.Use, f.Arg(f.Ref(s)))),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	require.Equal(t, []Kind{UseOfUnassignedField}, kinds(diags))
	assert.Equal(t, "s.y", diags[0].Name)
}

func TestEmptyStructIsAssigned(t *testing.T) {
	t.Parallel()

	// E e; Use(e);
	f := newFixture()
	e := f.Local("e", tree.NewStruct("E"))

	fn := f.Func("M", tree.Void, nil,
		f.Declare(e, nil),
		f.Do(f.Call(f.Use, f.Arg(f.Ref(e)))),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestMissingReturnValue(t *testing.T) {
	t.Parallel()

	// int M(bool c) { if (c) return 1; }
	f := newFixture()
	c := f.Param("c", tree.Bool)

	fn := f.Func("M", tree.Int, []*tree.Var{c},
		f.If(f.Ref(c), f.Return(f.Lit(1)), nil),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	require.Equal(t, []Kind{MissingReturnValue}, kinds(diags))
	assert.Equal(t, "M", diags[0].Name)
}

func TestSwitchExpressionExhaustive(t *testing.T) {
	t.Parallel()

	// int a; var r = c switch { true => G(out a), false => G(out a) }; F(a);
	f := newFixture()
	c := f.Param("c", tree.Bool)
	a := f.Local("a", tree.Int)
	r := f.Local("r", tree.Bool)

	sw := f.SwitchExpr(f.Ref(c),
		f.Arm(f.PConst(true), nil, f.Call(f.G, f.Out(f.Ref(a)))),
		f.Arm(f.PConst(false), nil, f.Call(f.G, f.Out(f.Ref(a)))),
	)

	fn := f.Func("M", tree.Void, []*tree.Var{c},
		f.Declare(a, nil),
		f.Declare(r, sw),
		f.Do(f.Call(f.F, f.Arg(f.Ref(a)))),
	)

	diags, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestAnalysisIsRepeatable(t *testing.T) {
	t.Parallel()

	f := newFixture()
	c := f.Param("c", tree.Bool)
	a := f.Local("a", tree.Int)
	l := f.Label("L")

	fn := f.Func("M", tree.Void, []*tree.Var{c},
		f.Declare(a, nil),
		f.Labeled(l, f.If(f.Ref(c), f.Do(f.Call(f.F, f.Arg(f.Ref(a)))), nil)),
		f.If(f.Call(f.G, f.Out(f.Ref(a))), f.Goto(l), nil),
		f.Return(nil),
		f.Do(f.Call(f.F, f.Arg(f.Ref(a)))),
	)

	first, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)

	second, err := AnalyzeDiagnostics(context.Background(), fn)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []Kind{UseOfUnassignedVariable, UnreachableCode}, kinds(first))
}

func TestMalformedTree(t *testing.T) {
	t.Parallel()

	f := newFixture()
	a := f.Local("a", tree.Int)

	fn := f.Func("M", tree.Void, nil, f.Do(f.Call(f.F, f.Arg(f.Ref(a)))))

	_, err := AnalyzeDiagnostics(context.Background(), fn)
	require.ErrorIs(t, err, ErrMalformedTree)
}

func TestAnalyzeAll(t *testing.T) {
	t.Parallel()

	f := newFixture()

	fns := make([]*tree.Func, 0, 8)
	for i := range 8 {
		a := f.Local("a", tree.Int)

		body := []tree.Stmt{f.Declare(a, nil)}
		if i%2 == 1 {
			body = append(body, f.Do(f.Call(f.F, f.Arg(f.Ref(a)))))
		}

		fns = append(fns, f.Func("M", tree.Void, nil, body...))
	}

	results, err := AnalyzeAll(context.Background(), fns, WithConcurrency(3))
	require.NoError(t, err)
	require.Len(t, results, len(fns))

	for i, r := range results {
		assert.Same(t, fns[i], r.Func)
		assert.Len(t, r.Diagnostics, i%2)
	}
}
