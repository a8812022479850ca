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
	"go/token"

	"fillmore-labs.com/flowguard/internal/lattice"
	"fillmore-labs.com/flowguard/tree"
)

// expr walks e in evaluation order. Constant boolean expressions split with an
// unreachable side.
func (w *walker) expr(in lattice.State, e tree.Expr) result {
	in = w.regionStart(e, in)

	r := w.visitExpr(in, e)

	if v, ok := constBool(e); ok {
		s := r.merged()
		if v {
			r = split(s, s.Unreachable())
		} else {
			r = split(s.Unreachable(), s)
		}
	}

	w.regionEnd(e, r.merged())

	return r
}

// value walks e and merges a split.
func (w *walker) value(in lattice.State, e tree.Expr) lattice.State {
	if e == nil {
		return in
	}

	return w.expr(in, e).merged()
}

// cond walks a condition and returns the states where it is true and false.
func (w *walker) cond(in lattice.State, e tree.Expr) (t, f lattice.State) {
	if e == nil {
		return in, in.Unreachable()
	}

	return w.expr(in, e).branches()
}

func (w *walker) visitExpr(in lattice.State, e tree.Expr) result {
	switch e := e.(type) {
	case *tree.Literal, *tree.ConstRef, *tree.FuncRef, *tree.Discard, *tree.CondReceiver:
		return plain(in)

	case *tree.VarRef:
		s, slot := w.varSlot(in, e, e.Var)

		return plain(w.read(s, e, slot))

	case *tree.FieldRef:
		if slot, ok := w.slotOf(e); ok {
			return plain(w.read(in, e, slot))
		}

		return plain(w.value(in, e.X))

	case *tree.DeclExpr:
		s, _ := w.declare(in, e, e.Var)

		return plain(s)

	case *tree.Unary:
		r := w.expr(in, e.X)
		if e.Op == token.NOT {
			r.notNull = nil

			return r.swapped()
		}

		return plain(r.merged())

	case *tree.Binary:
		return w.binary(in, e)

	case *tree.Coalesce:
		return w.coalesce(in, e)

	case *tree.CoalesceAssign:
		s, tg := w.target(in, e.Target)
		s = w.readTarget(s, tg)
		v := w.writeTargets(w.value(s, e.Value), tg)

		return plain(lattice.Merge(s, v))

	case *tree.Conditional:
		return w.conditional(in, e)

	case *tree.CondAccess:
		r := w.value(in, e.Receiver)

		s := r
		if isNull(e.Receiver) {
			s = s.Unreachable()
		}

		a := w.value(s, e.Access)

		return plain(lattice.Merge(r, a)).withNotNull(a)

	case *tree.Call:
		return plain(w.call(in, e))

	case *tree.New:
		s, writes := w.args(in, e.Args)
		s = w.writeTargets(s, writes...)

		for _, x := range e.Init {
			s = w.value(s, x)
		}

		return plain(s)

	case *tree.Assign:
		s, tg := w.target(in, e.Target)
		if e.Op != token.ASSIGN {
			s = w.readTarget(s, tg)
		}

		s = w.value(s, e.Value)

		return plain(w.writeTargets(s, tg))

	case *tree.IncDec:
		s, tg := w.target(in, e.Target)
		s = w.readTarget(s, tg)

		return plain(w.writeTargets(s, tg))

	case *tree.Deconstruct:
		var tgs []assignTarget

		s := w.targets(in, e.Targets, &tgs)
		s = w.value(s, e.Value)

		return plain(w.writeTargets(s, tgs...))

	case *tree.Tuple:
		s := in
		for _, x := range e.Elems {
			s = w.value(s, x)
		}

		return plain(s)

	case *tree.Operation:
		s := in
		for _, x := range e.Operands {
			s = w.value(s, x)
		}

		return plain(s)

	case *tree.Is:
		return w.is(in, e)

	case *tree.SwitchExpr:
		return w.switchExpr(in, e)

	case *tree.LambdaExpr:
		w.closure(in, e.Func)

		return plain(in)

	case *tree.Conv:
		r := w.expr(in, e.X)
		if !keepsNotNull(e) {
			r.notNull = nil
		}

		return r

	case *tree.ThrowExpr:
		s := w.value(in, e.Value)
		w.throwPoint(s)

		return plain(s.Unreachable())

	case *tree.AddressOf:
		s, tg := w.target(in, e.X)
		if tg.ok {
			w.emit(Event{Kind: EventAddressTaken, Slot: tg.slot, Node: e, Inside: w.inside})

			if s.AllSet(w.slots.info(tg.slot).Leaves...) {
				s = w.read(s, e.X, tg.slot)
			}
		}

		return plain(w.writeTargets(s, tg))

	default:
		w.errorf("%w: unexpected expression %T", ErrMalformedTree, e)

		return plain(in)
	}
}

// keepsNotNull reports whether the state of a present operand survives the
// conversion. User-defined conversions keep it only for a value-type parameter.
func keepsNotNull(e *tree.Conv) bool {
	switch e.Kind {
	case tree.ConvIdentity, tree.ConvBuiltin:
		return true

	case tree.ConvUserDefined:
		return e.Param.IsValueType()

	default:
		return false
	}
}

func (w *walker) binary(in lattice.State, e *tree.Binary) result {
	switch e.Op {
	case token.LAND:
		lt, lf := w.cond(in, e.X)
		rt, rf := w.cond(lt, e.Y)

		return split(rt, lattice.Merge(lf, rf))

	case token.LOR:
		lt, lf := w.cond(in, e.X)
		rt, rf := w.cond(lf, e.Y)

		return split(lattice.Merge(lt, rt), rf)

	case token.EQL, token.NEQ:
		return w.equality(in, e)

	default:
		return plain(w.value(w.value(in, e.X), e.Y))
	}
}

// equality keeps the split of a boolean compared with a constant and narrows
// a conditional access compared with a constant.
func (w *walker) equality(in lattice.State, e *tree.Binary) result {
	l := w.expr(in, e.X)
	r := w.expr(l.merged(), e.Y)

	operand, opExpr, other := l, e.X, e.Y
	if isConstant(e.X) {
		operand, opExpr, other = r, e.Y, e.X
	}

	if c, ok := constBool(other); ok && operand.split && isBool(opExpr) {
		if (e.Op == token.EQL) != c {
			operand = operand.swapped()
		}

		return split(operand.t, operand.f)
	}

	if operand.notNull == nil {
		return plain(r.merged())
	}

	after := r.merged()

	switch {
	case isNull(other):
		if e.Op == token.EQL {
			return split(after, *operand.notNull)
		}

		return split(*operand.notNull, after)

	case isConstant(other):
		if e.Op == token.EQL {
			return split(*operand.notNull, after)
		}

		return split(after, *operand.notNull)

	default:
		return plain(after)
	}
}

// isBool reports whether x is a non-nullable boolean.
func isBool(x tree.Expr) bool {
	t := x.ExprType()
	if t == nil || t.Kind == tree.KindNullable {
		return false
	}

	u := t.Underlying()

	return u != nil && u.Kind == tree.KindBool
}

func isConstant(e tree.Expr) bool {
	return constValue(e) != nil || isNull(e)
}

func (w *walker) coalesce(in lattice.State, e *tree.Coalesce) result {
	l := w.expr(in, e.X)

	present := l.merged()
	if l.notNull != nil {
		present = *l.notNull
	}

	if isNull(e.X) {
		present = present.Unreachable()
	}

	r := w.expr(l.merged(), e.Y)
	if !r.split {
		return plain(lattice.Merge(present, r.state))
	}

	return split(lattice.Merge(present, r.t), lattice.Merge(present, r.f))
}

func (w *walker) conditional(in lattice.State, e *tree.Conditional) result {
	t, f := w.cond(in, e.Cond)
	th := w.expr(t, e.Then)
	el := w.expr(f, e.Else)

	var r result
	if th.split || el.split {
		tt, tf := th.branches()
		et, ef := el.branches()
		r = split(lattice.Merge(tt, et), lattice.Merge(tf, ef))
	} else {
		r = plain(lattice.Merge(th.state, el.state))
	}

	if th.notNull != nil && el.notNull != nil {
		r = r.withNotNull(lattice.Merge(*th.notNull, *el.notNull))
	}

	return r
}

func (w *walker) call(in lattice.State, e *tree.Call) lattice.State {
	s := w.value(in, e.Callee)

	var recv assignTarget
	if e.Receiver != nil {
		if e.ByRef {
			s, recv = w.target(s, e.Receiver)
			s = w.readTarget(s, recv)
		} else {
			s = w.value(s, e.Receiver)
		}
	}

	s, writes := w.args(s, e.Args)

	return w.writeTargets(s, append(writes, recv)...)
}

// args walks call arguments and returns the targets written by the call.
func (w *walker) args(in lattice.State, args []*tree.Arg) (lattice.State, []assignTarget) {
	var writes []assignTarget

	s := in
	for _, a := range args {
		switch a.Ref {
		case tree.RefOut:
			var tg assignTarget
			s, tg = w.target(s, a.Value)
			writes = append(writes, tg)

		case tree.RefRef:
			var tg assignTarget
			s, tg = w.target(s, a.Value)
			s = w.readTarget(s, tg)
			writes = append(writes, tg)

		default:
			s = w.value(s, a.Value)
		}
	}

	return s, writes
}

// assignTarget is a tracked variable or field an expression writes.
type assignTarget struct {
	node tree.Expr
	slot lattice.Slot
	ok   bool
}

// target evaluates the subexpressions of an assignment target.
func (w *walker) target(in lattice.State, e tree.Expr) (lattice.State, assignTarget) {
	switch x := e.(type) {
	case *tree.VarRef:
		s, slot := w.varSlot(in, x, x.Var)

		return s, assignTarget{node: x, slot: slot, ok: true}

	case *tree.DeclExpr:
		in = w.regionStart(x, in)
		s, slot := w.declare(in, x, x.Var)
		w.regionEnd(x, s)

		return s, assignTarget{node: x, slot: slot, ok: true}

	case *tree.FieldRef:
		if slot, ok := w.slotOf(x); ok {
			return in, assignTarget{node: x, slot: slot, ok: true}
		}

		return w.value(in, x.X), assignTarget{}

	case *tree.Discard, nil:
		return in, assignTarget{}

	default:
		return w.value(in, e), assignTarget{}
	}
}

// targets evaluates the targets of a deconstruction.
func (w *walker) targets(in lattice.State, list []tree.Expr, out *[]assignTarget) lattice.State {
	s := in
	for _, e := range list {
		if t, ok := e.(*tree.Tuple); ok {
			s = w.targets(s, t.Elems, out)

			continue
		}

		var tg assignTarget
		s, tg = w.target(s, e)
		*out = append(*out, tg)
	}

	return s
}

func (w *walker) readTarget(in lattice.State, tg assignTarget) lattice.State {
	if !tg.ok {
		return in
	}

	return w.read(in, tg.node, tg.slot)
}

func (w *walker) writeTargets(in lattice.State, tgs ...assignTarget) lattice.State {
	s := in
	for _, tg := range tgs {
		if tg.ok {
			s = w.write(s, tg.node, tg.slot)
		}
	}

	return s
}

// slotOf returns the slot of a variable or a tracked field of a struct variable.
func (w *walker) slotOf(e tree.Expr) (lattice.Slot, bool) {
	switch x := e.(type) {
	case *tree.VarRef:
		return w.slots.lookup(x.Var)

	case *tree.FieldRef:
		parent, ok := w.slotOf(x.X)
		if !ok {
			return 0, false
		}

		return w.slots.field(parent, x.Field)

	default:
		return 0, false
	}
}
