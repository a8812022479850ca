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
	"fillmore-labs.com/flowguard/tree"
)

func TestRegionFlows(t *testing.T) {
	t.Parallel()

	// void M(int p) { int a = p; int b; b = a + 1; a = 2; F(b); F(a); }
	f := newFixture()
	p := f.Param("p", tree.Int)
	a := f.Local("a", tree.Int)
	b := f.Local("b", tree.Int)

	first := f.Do(f.Assign(f.Ref(b), f.Bin(token.ADD, f.Ref(a), f.Lit(1))))
	last := f.Do(f.Assign(f.Ref(a), f.Lit(2)))

	fn := f.Func("M", tree.Void, []*tree.Var{p},
		f.Declare(a, f.Ref(p)),
		f.Declare(b, nil),
		first,
		last,
		f.Do(f.Call(f.F, f.Arg(f.Ref(b)))),
		f.Do(f.Call(f.F, f.Arg(f.Ref(a)))),
	)

	r, err := AnalyzeRegion(context.Background(), fn, first, last)
	require.NoError(t, err)
	require.True(t, r.Succeeded)

	assert.Empty(t, r.VariablesDeclared.String())
	assert.Equal(t, "a", r.DataFlowsIn.String())
	assert.Equal(t, "a, b", r.DataFlowsOut.String())
	assert.Equal(t, "a, b", r.AlwaysAssigned.String())
	assert.Equal(t, "a", r.ReadInside.String())
	assert.Equal(t, "p, a, b", r.ReadOutside.String())
	assert.Equal(t, "a, b", r.WrittenInside.String())
	assert.Equal(t, "p, a", r.WrittenOutside.String())
	assert.Zero(t, r.Captured.Len())
	assert.True(t, r.StartPointIsReachable)
	assert.True(t, r.EndPointIsReachable)
	assert.Empty(t, r.ExitPoints)
}

func TestRegionWholeBody(t *testing.T) {
	t.Parallel()

	// void M() { int a; a = 1; F(a); }
	f := newFixture()
	a := f.Local("a", tree.Int)

	first := f.Declare(a, nil)
	last := f.Do(f.Call(f.F, f.Arg(f.Ref(a))))

	fn := f.Func("M", tree.Void, nil,
		first,
		f.Do(f.Assign(f.Ref(a), f.Lit(1))),
		last,
	)

	r, err := AnalyzeRegion(context.Background(), fn, first, last)
	require.NoError(t, err)

	assert.Equal(t, "a", r.VariablesDeclared.String())
	assert.Zero(t, r.DataFlowsIn.Len())
	assert.Zero(t, r.DataFlowsOut.Len())
	assert.Equal(t, "a", r.AlwaysAssigned.String())
	assert.True(t, r.AlwaysAssigned.IsSubset(r.WrittenInside))
	assert.True(t, r.VariablesDeclared.Contains(a))
}

func TestRegionAlwaysAssigned(t *testing.T) {
	t.Parallel()

	// void M(bool c) { int a, b; if (c) { a = 1; b = 1; } else { a = 2; } F(a); }
	f := newFixture()
	c := f.Param("c", tree.Bool)
	a := f.Local("a", tree.Int)
	b := f.Local("b", tree.Int)

	region := f.If(f.Ref(c),
		f.Block(f.Do(f.Assign(f.Ref(a), f.Lit(1))), f.Do(f.Assign(f.Ref(b), f.Lit(1)))),
		f.Block(f.Do(f.Assign(f.Ref(a), f.Lit(2)))),
	)

	fn := f.Func("M", tree.Void, []*tree.Var{c},
		f.Declare(a, nil),
		f.Declare(b, nil),
		region,
		f.Do(f.Call(f.F, f.Arg(f.Ref(a)))),
	)

	r, err := AnalyzeRegion(context.Background(), fn, region, nil)
	require.NoError(t, err)

	assert.Equal(t, "a", r.AlwaysAssigned.String())
	assert.Equal(t, "a, b", r.WrittenInside.String())
	assert.Equal(t, "c", r.DataFlowsIn.String())
	assert.Equal(t, "a", r.DataFlowsOut.String())
}

func TestRegionReturn(t *testing.T) {
	t.Parallel()

	// int M(bool c) { if (c) return 1; return 2; }
	f := newFixture()
	c := f.Param("c", tree.Bool)

	ret := f.Return(f.Lit(1))
	region := f.If(f.Ref(c), ret, nil)

	fn := f.Func("M", tree.Int, []*tree.Var{c},
		region,
		f.Return(f.Lit(2)),
	)

	r, err := AnalyzeRegion(context.Background(), fn, region, nil)
	require.NoError(t, err)

	assert.Equal(t, []tree.Stmt{ret}, r.ExitPoints)
	assert.Equal(t, []tree.Stmt{ret}, r.ReturnStatements)
	assert.True(t, r.EndPointIsReachable)
}

func TestRegionUnreachableEnd(t *testing.T) {
	t.Parallel()

	// void M() { throw null; }
	f := newFixture()

	region := f.Throw(f.Null())
	fn := f.Func("M", tree.Void, nil, region)

	r, err := AnalyzeRegion(context.Background(), fn, region, nil)
	require.NoError(t, err)

	assert.True(t, r.StartPointIsReachable)
	assert.False(t, r.EndPointIsReachable)
	assert.Zero(t, r.AlwaysAssigned.Len())
}

func TestRegionEntryPoint(t *testing.T) {
	t.Parallel()

	// void M(bool c) { if (c) goto L; F(1); L: F(2); }
	f := newFixture()
	c := f.Param("c", tree.Bool)
	l := f.Label("L")

	first := f.Do(f.Call(f.F, f.Arg(f.Lit(1))))
	last := f.Labeled(l, f.Do(f.Call(f.F, f.Arg(f.Lit(2)))))

	fn := f.Func("M", tree.Void, []*tree.Var{c},
		f.If(f.Ref(c), f.Goto(l), nil),
		first,
		last,
	)

	r, err := AnalyzeRegion(context.Background(), fn, first, last)
	require.NoError(t, err)

	assert.Equal(t, []tree.Stmt{last}, r.EntryPoints)
}

func TestRegionExpression(t *testing.T) {
	t.Parallel()

	// void M(int p) { int a; a = p + 1; F(a); }
	f := newFixture()
	p := f.Param("p", tree.Int)
	a := f.Local("a", tree.Int)

	sum := f.Bin(token.ADD, f.Ref(p), f.Lit(1))

	fn := f.Func("M", tree.Void, []*tree.Var{p},
		f.Declare(a, nil),
		f.Do(f.Assign(f.Ref(a), sum)),
		f.Do(f.Call(f.F, f.Arg(f.Ref(a)))),
	)

	r, err := AnalyzeRegion(context.Background(), fn, sum, nil)
	require.NoError(t, err)

	assert.Equal(t, "p", r.DataFlowsIn.String())
	assert.Equal(t, "p", r.ReadInside.String())
	assert.Zero(t, r.WrittenInside.Len())
	assert.Equal(t, "a", r.ReadOutside.String())
}

func TestRegionCaptured(t *testing.T) {
	t.Parallel()

	// void M() { int a = 1; int b = 2; var d = () => F(a); F(b); }
	f := newFixture()
	a := f.Local("a", tree.Int)
	b := f.Local("b", tree.Int)
	d := f.Local("d", tree.Object)

	region := f.Declare(d, f.LambdaExpr(f.ExprLambda(nil, f.Call(f.F, f.Arg(f.Ref(a))))))

	fn := f.Func("M", tree.Void, nil,
		f.Declare(a, f.Lit(1)),
		f.Declare(b, f.Lit(2)),
		region,
		f.Do(f.Call(f.F, f.Arg(f.Ref(b)))),
	)

	r, err := AnalyzeRegion(context.Background(), fn, region, nil)
	require.NoError(t, err)

	assert.Equal(t, "a", r.Captured.String())
	assert.Equal(t, "a", r.CapturedInside.String())
	assert.Zero(t, r.CapturedOutside.Len())
	assert.Equal(t, "a", r.DataFlowsIn.String())
	assert.Equal(t, "d", r.VariablesDeclared.String())
}

func TestRegionAddressTaken(t *testing.T) {
	t.Parallel()

	// void M() { int a = 1; Use(&a); }
	f := newFixture()
	a := f.Local("a", tree.Int)

	region := f.Do(f.Call(f.Use, f.Arg(f.AddressOf(f.Ref(a)))))

	fn := f.Func("M", tree.Void, nil,
		f.Declare(a, f.Lit(1)),
		region,
	)

	r, err := AnalyzeRegion(context.Background(), fn, region, nil)
	require.NoError(t, err)

	assert.Equal(t, "a", r.UnsafeAddressTaken.String())
}

func TestRegionWithoutVariables(t *testing.T) {
	t.Parallel()

	// void M() { Use(null); return; }
	f := newFixture()

	region := f.Do(f.Call(f.Use, f.Arg(f.Null())))

	fn := f.Func("M", tree.Void, nil,
		region,
		f.Return(nil),
	)

	r, err := AnalyzeRegion(context.Background(), fn, region, nil)
	require.NoError(t, err)

	assert.True(t, r.Succeeded)
	assert.Zero(t, r.ReadInside.Len())
	assert.Zero(t, r.WrittenInside.Len())
	assert.True(t, r.EndPointIsReachable)
}

func TestRegionNotFound(t *testing.T) {
	t.Parallel()

	f := newFixture()
	fn := f.Func("M", tree.Void, nil, f.Return(nil))

	_, err := AnalyzeRegion(context.Background(), fn, f.Empty(), nil)
	require.ErrorIs(t, err, ErrRegionNotFound)
}
