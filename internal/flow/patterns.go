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
	"fillmore-labs.com/flowguard/internal/lattice"
	"fillmore-labs.com/flowguard/internal/pattern"
	"fillmore-labs.com/flowguard/tree"
)

// pattern walks p and returns the states where it matches and where it fails.
// Bindings are assigned on the matching side only.
func (w *walker) pattern(in lattice.State, p tree.Pattern, input *tree.Type) (t, f lattice.State) {
	switch p := p.(type) {
	case *tree.ConstPattern, *tree.RelPattern, *tree.TypePattern, *tree.DiscardPattern:
		return in, in

	case *tree.DeclPattern:
		return w.bind(in, p, p.Var)

	case *tree.VarPattern:
		return w.bind(in, p, p.Var)

	case *tree.NotPattern:
		t, f = w.pattern(in, p.Pattern, input)

		return f, t

	case *tree.AndPattern:
		xt, xf := w.pattern(in, p.X, input)
		yt, yf := w.pattern(xt, p.Y, input)

		return yt, lattice.Merge(xf, yf)

	case *tree.OrPattern:
		xt, xf := w.pattern(in, p.X, input)
		yt, yf := w.pattern(xf, p.Y, input)

		return lattice.Merge(xt, yt), yf

	case *tree.RecursivePattern:
		s, fail := in, in
		for _, sub := range p.Props {
			var typ *tree.Type
			if sub.Field != nil {
				typ = sub.Field.Type
			}

			st, sf := w.pattern(s, sub.Pattern, typ)
			fail = lattice.Merge(fail, sf)
			s = st
		}

		if p.Var != nil {
			var bound lattice.State
			s, bound = w.bind(s, p, p.Var)
			fail = lattice.Merge(fail, bound)
		}

		return s, fail

	default:
		w.errorf("%w: unexpected pattern %T", ErrMalformedTree, p)

		return in, in
	}
}

// bind declares a pattern variable, assigned where the pattern matches.
func (w *walker) bind(in lattice.State, p tree.Pattern, v *tree.Var) (t, f lattice.State) {
	if v == nil {
		return in, in
	}

	s, slot := w.declare(in, p, v)

	return w.write(s, p, slot), s
}

// test walks p against a value of type input, marking a side that can't be
// taken unreachable. tag is the tested expression, used when it is constant.
func (w *walker) test(in lattice.State, p tree.Pattern, input *tree.Type, tag tree.Expr) (t, f lattice.State) {
	t, f = w.pattern(in, p, input)

	facts := pattern.Analyze(p, input)
	if facts.Irrefutable {
		f = f.Unreachable()
	}

	if facts.Impossible {
		t = t.Unreachable()
	}

	switch constMatch(p, input, tag) {
	case pattern.Always:
		f = f.Unreachable()

	case pattern.Never:
		t = t.Unreachable()

	case pattern.Unknown:
	}

	return t, f
}

func constMatch(p tree.Pattern, input *tree.Type, tag tree.Expr) pattern.Outcome {
	switch {
	case tag == nil:
		return pattern.Unknown

	case isNull(tag):
		return pattern.Match(p, input, nil)

	default:
		if v := constValue(tag); v != nil {
			return pattern.Match(p, input, v)
		}

		return pattern.Unknown
	}
}

// is walks X is Pattern. A pattern that can't match null is tested in the
// state of a present conditional access.
func (w *walker) is(in lattice.State, e *tree.Is) result {
	x := w.expr(in, e.X)
	input := e.X.ExprType()
	base := x.merged()

	facts := pattern.Analyze(e.Pattern, input)

	start := base
	if x.notNull != nil && !facts.MatchesNull {
		start = *x.notNull
	}

	t, f := w.test(start, e.Pattern, input, e.X)

	if x.notNull != nil {
		switch {
		case !facts.MatchesNull:
			f = lattice.Merge(f, base)

		case !facts.MatchesNonNull:
			f = *x.notNull
		}
	}

	return split(t, f)
}

// switchExpr walks the arms of a switch expression. Falling off the arms throws.
func (w *walker) switchExpr(in lattice.State, e *tree.SwitchExpr) result {
	rest := w.value(in, e.Tag)
	input := e.Tag.ExprType()

	var (
		outs      []result
		unguarded []tree.Pattern
	)

	for _, arm := range e.Arms {
		t, f := w.test(rest, arm.Pattern, input, e.Tag)

		if arm.Guard != nil {
			gt, gf := w.cond(t, arm.Guard)
			t, f = gt, lattice.Merge(f, gf)
		} else {
			unguarded = append(unguarded, arm.Pattern)
		}

		outs = append(outs, w.expr(t, arm.Value))
		rest = f
	}

	if pattern.Exhaustive(unguarded, input) {
		rest = rest.Unreachable()
	}

	w.throwPoint(rest)

	return mergeResults(outs)
}

// mergeResults joins alternative results, keeping a split when any is split.
func mergeResults(rs []result) result {
	var (
		t, f, s  = lattice.MergeAll(), lattice.MergeAll(), lattice.MergeAll()
		anySplit bool
	)

	for _, r := range rs {
		rt, rf := r.branches()
		t, f = lattice.Merge(t, rt), lattice.Merge(f, rf)
		s = lattice.Merge(s, r.merged())
		anySplit = anySplit || r.split
	}

	if anySplit {
		return split(t, f)
	}

	return plain(s)
}
