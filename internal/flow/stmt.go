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
	"github.com/RoaringBitmap/roaring/v2"

	"fillmore-labs.com/flowguard/internal/lattice"
	"fillmore-labs.com/flowguard/internal/pattern"
	"fillmore-labs.com/flowguard/tree"
)

func (w *walker) stmt(in lattice.State, s tree.Stmt) lattice.State {
	return w.labeledStmt(in, s, nil)
}

// labeledStmt walks s; label is the label of s, if any.
func (w *walker) labeledStmt(in lattice.State, s tree.Stmt, label *tree.Label) lattice.State {
	in = w.regionStart(s, in)
	w.throwPoint(in)

	if marked(s) {
		w.emit(Event{Kind: EventStatement, Node: s, Inside: w.inside, Reachable: in.Reachable()})
	}

	out := w.visitStmt(in, s, label)

	w.regionEnd(s, out)

	return out
}

// marked reports whether s counts for unreachable code.
func marked(s tree.Stmt) bool {
	switch s := s.(type) {
	case *tree.Block, *tree.Labeled, *tree.LocalFunc, *tree.Empty:
		return false

	case *tree.Declare:
		return s.Init != nil

	default:
		return true
	}
}

func (w *walker) visitStmt(in lattice.State, s tree.Stmt, label *tree.Label) lattice.State {
	switch s := s.(type) {
	case *tree.Block:
		return w.block(in, s.Stmts)

	case *tree.Declare:
		st, slot := w.declare(in, s, s.Var)
		if s.Init == nil {
			return st
		}

		st = w.value(st, s.Init)

		return w.write(st, s, slot)

	case *tree.ExprStmt:
		return w.value(in, s.X)

	case *tree.If:
		t, f := w.cond(in, s.Cond)
		t = w.stmt(t, s.Then)

		if s.Else != nil {
			f = w.stmt(f, s.Else)
		}

		return lattice.Merge(t, f)

	case *tree.While:
		return w.while(in, s, label)

	case *tree.DoWhile:
		return w.doWhile(in, s, label)

	case *tree.For:
		return w.forLoop(in, s, label)

	case *tree.ForEach:
		return w.forEach(in, s, label)

	case *tree.Switch:
		return w.switchStmt(in, s, label)

	case *tree.Break:
		fr := w.jumpTarget(s.Label, false)
		if fr == nil {
			w.errorf("%w: break outside of loop or switch", ErrMalformedTree)

			return in.Unreachable()
		}

		return w.jump(branch{kind: branchBreak, frame: fr, node: s}, in)

	case *tree.Continue:
		fr := w.jumpTarget(s.Label, true)
		if fr == nil {
			w.errorf("%w: continue outside of loop", ErrMalformedTree)

			return in.Unreachable()
		}

		return w.jump(branch{kind: branchContinue, frame: fr, node: s}, in)

	case *tree.Goto:
		return w.jump(branch{kind: branchGoto, label: s.Label, node: s}, in)

	case *tree.Labeled:
		in = w.resolveLabel(s, in)
		in = w.joinHead(s.Label, in)

		return w.labeledStmt(in, s.Stmt, s.Label)

	case *tree.Return:
		st := w.value(in, s.Value)
		if s.Value != nil {
			st = w.assignResults(st, s)
		}

		return w.jump(branch{kind: branchReturn, node: s}, st)

	case *tree.Throw:
		st := w.value(in, s.Value)
		w.throwPoint(st)

		return st.Unreachable()

	case *tree.Try:
		return w.try(in, s)

	case *tree.LocalFunc:
		w.closure(in, s.Func)

		return in

	case *tree.Empty:
		return in

	default:
		w.errorf("%w: unexpected statement %T", ErrMalformedTree, s)

		return in
	}
}

// block walks a statement list in its own scope.
func (w *walker) block(in lattice.State, list []tree.Stmt) lattice.State {
	w.openScope()

	return w.closeScope(w.stmtList(in, list))
}

func (w *walker) stmtList(in lattice.State, list []tree.Stmt) lattice.State {
	s := in
	for _, st := range list {
		s = w.stmt(s, st)
	}

	w.resolveBackward(list)

	return s
}

// assignResults writes the named results of a function returning a value.
func (w *walker) assignResults(in lattice.State, s *tree.Return) lattice.State {
	for _, r := range w.fn.fn.Results {
		if slot, ok := w.slots.lookup(r); ok {
			in = w.write(in, s, slot)
		}
	}

	return in
}

func (w *walker) while(in lattice.State, s *tree.While, label *tree.Label) lattice.State {
	fr, saved := w.pushFrame(s, label, true)
	defer w.popFrame(saved)

	head := w.joinHead(s, in)
	t, f := w.cond(head, s.Cond)

	body := w.stmt(t, s.Body)
	body = w.resolve(fr, branchContinue, body)
	w.backEdge(s, body)

	return w.resolve(fr, branchBreak, f)
}

func (w *walker) doWhile(in lattice.State, s *tree.DoWhile, label *tree.Label) lattice.State {
	fr, saved := w.pushFrame(s, label, true)
	defer w.popFrame(saved)

	head := w.joinHead(s, in)

	body := w.stmt(head, s.Body)
	body = w.resolve(fr, branchContinue, body)

	t, f := w.cond(body, s.Cond)
	w.backEdge(s, t)

	return w.resolve(fr, branchBreak, f)
}

func (w *walker) forLoop(in lattice.State, s *tree.For, label *tree.Label) lattice.State {
	w.openScope()

	st := in
	for _, x := range s.Init {
		st = w.stmt(st, x)
	}

	fr, saved := w.pushFrame(s, label, true)

	head := w.joinHead(s, st)
	t, f := w.cond(head, s.Cond)

	body := w.stmt(t, s.Body)
	body = w.resolve(fr, branchContinue, body)

	for _, x := range s.Step {
		body = w.stmt(body, x)
	}

	w.backEdge(s, body)

	out := w.resolve(fr, branchBreak, f)
	w.popFrame(saved)

	return w.closeScope(out)
}

func (w *walker) forEach(in lattice.State, s *tree.ForEach, label *tree.Label) lattice.State {
	st := w.value(in, s.Collection)

	w.openScope()
	fr, saved := w.pushFrame(s, label, true)

	head := w.joinHead(s, st)

	var tgs []assignTarget

	it := w.targets(head, s.Targets, &tgs)
	it = w.writeTargets(it, tgs...)

	body := w.stmt(it, s.Body)
	body = w.resolve(fr, branchContinue, body)
	w.backEdge(s, body)

	out := w.resolve(fr, branchBreak, head)
	w.popFrame(saved)

	return w.closeScope(out)
}

// switchStmt tests the case labels in order. Sections share one scope; the
// end of a section leaves the switch.
func (w *walker) switchStmt(in lattice.State, s *tree.Switch, label *tree.Label) lattice.State {
	rest := w.value(in, s.Tag)

	var input *tree.Type
	if s.Tag != nil {
		input = s.Tag.ExprType()
	}

	w.openScope()
	fr, saved := w.pushFrame(s, label, false)

	var (
		entries   = make([]lattice.State, len(s.Sections))
		unguarded []tree.Pattern
		dflt      = -1
	)

	for i, sec := range s.Sections {
		entry := lattice.MergeAll()

		for _, cl := range sec.Labels {
			if cl.Pattern == nil {
				dflt = i

				continue
			}

			t, f := w.test(rest, cl.Pattern, input, s.Tag)
			if cl.Guard != nil {
				gt, gf := w.cond(t, cl.Guard)
				t, f = gt, lattice.Merge(f, gf)
			} else {
				unguarded = append(unguarded, cl.Pattern)
			}

			entry = lattice.Merge(entry, t)
			rest = f
		}

		entries[i] = entry
	}

	if s.Tag != nil && pattern.Exhaustive(unguarded, input) {
		rest = rest.Unreachable()
	}

	if dflt >= 0 {
		entries[dflt] = lattice.Merge(entries[dflt], rest)
		rest = rest.Unreachable()
	}

	out := rest
	for i, sec := range s.Sections {
		w.emit(Event{Kind: EventSection, Node: sec, Inside: w.inside})
		out = lattice.Merge(out, w.stmtList(entries[i], sec.Body))
	}

	out = w.resolve(fr, branchBreak, out)
	w.popFrame(saved)

	return w.closeScope(out)
}

// try walks a try statement. Catch clauses start from every state the body
// may throw in; the finally block starts from every state the body and the
// catch clauses may leave in. Branches leaving the statement pass the finally
// block.
func (w *walker) try(in lattice.State, s *tree.Try) lattice.State {
	saved := w.fn.pending
	w.fn.pending = nil

	body := &tryFrame{acc: in}
	w.fn.tries = append(w.fn.tries, body)
	end := w.stmt(in, s.Body)
	w.fn.tries = w.fn.tries[:len(w.fn.tries)-1]

	var handlers *tryFrame
	if s.Finally != nil {
		handlers = &tryFrame{acc: lattice.MergeAll()}
		w.fn.tries = append(w.fn.tries, handlers)
	}

	exits := []lattice.State{end}

	for _, c := range s.Catches {
		exits = append(exits, w.catch(body.acc, c))
	}

	inner := w.fn.pending
	w.fn.pending = saved

	if s.Finally == nil {
		w.fn.pending = append(w.fn.pending, inner...)

		return lattice.MergeAll(exits...)
	}

	w.fn.tries = w.fn.tries[:len(w.fn.tries)-1]

	entry := lattice.MergeAll(append(exits, body.acc, handlers.acc)...)
	for _, b := range inner {
		entry = lattice.Merge(entry, b.state)
	}

	written := roaring.New()
	w.written = append(w.written, written)
	fin := w.stmt(entry, s.Finally)
	w.written = w.written[:len(w.written)-1]

	for _, b := range inner {
		b.state = lattice.Meet(b.state, fin, written)
		w.fn.pending = append(w.fn.pending, b)
	}

	return lattice.Meet(lattice.MergeAll(exits...), fin, written)
}

func (w *walker) catch(in lattice.State, c *tree.Catch) lattice.State {
	w.openScope()

	s := in
	if c.Var != nil {
		var slot lattice.Slot
		s, slot = w.declare(s, c, c.Var)
		s = w.write(s, c, slot)
	}

	if c.Filter != nil {
		s, _ = w.cond(s, c.Filter)
	}

	return w.closeScope(w.stmt(s, c.Body))
}

// closure walks the body of a lambda or local function in the state of its
// declaration. The enclosing state is not affected. A body declared in
// unreachable code is entered reachable with every slot assigned.
func (w *walker) closure(in lattice.State, fn *tree.Func) {
	if fn == nil {
		return
	}

	if !in.Reachable() {
		in = lattice.Initial().Assign(w.slots.all()...)
	}

	w.function(in, fn)
}
