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
	"context"
	"errors"
	"fmt"
	"runtime/trace"

	"github.com/RoaringBitmap/roaring/v2"

	"fillmore-labs.com/flowguard/internal/lattice"
	"fillmore-labs.com/flowguard/tree"
)

var (
	// ErrMalformedTree is returned for trees a type checker would not produce.
	ErrMalformedTree = errors.New("malformed tree")

	// ErrNoConvergence is returned when label states do not stabilize.
	ErrNoConvergence = errors.New("fixed point not reached")
)

// Options configure a flow analysis.
type Options struct {
	// AnalyzeUnreachable keeps checking reads in unreachable code.
	AnalyzeUnreachable bool

	// First and Last delimit the queried region, a contiguous range of
	// statements or a single expression. Both nil means no region.
	First, Last tree.Node
}

// Analyze walks fn until all label and loop states are stable and returns the
// trace of the final pass.
func Analyze(ctx context.Context, fn *tree.Func, opts Options) *Trace {
	defer trace.StartRegion(ctx, "walk").End()

	w := &walker{
		opts:  opts,
		slots: newSlotTable(),
		heads: make(map[any]lattice.State),
	}

	limit := 0
	for pass := 1; ; pass++ {
		w.pass()
		w.trace.Func, w.trace.Passes = fn, pass
		w.function(lattice.Initial(), fn)

		if !w.changed {
			break
		}

		if limit == 0 {
			limit = len(w.heads)*lattice.Height(w.slots.len()) + 1
		}

		if pass > limit {
			w.errorf("%w after %d passes over %s", ErrNoConvergence, pass, fn.Name)
			break
		}
	}

	w.trace.Slots = w.slots.infos

	return w.trace
}

// walker holds the state of one analysis.
type walker struct {
	opts  Options
	slots *slotTable

	// heads are the states at loop heads and labels, kept over passes.
	heads   map[any]lattice.State
	changed bool

	// per pass
	trace    *Trace
	fn       *funcState
	inside   bool
	written  []*roaring.Bitmap
	reported map[lattice.Slot]struct{}
}

// funcState is the state of the walk through one function body.
type funcState struct {
	fn      *tree.Func
	pending []branch
	frames  []*frame
	tries   []*tryFrame
	scopes  [][]lattice.Slot
}

// pass resets the per-pass state.
func (w *walker) pass() {
	w.changed = false
	w.trace = &Trace{}
	w.fn = nil
	w.inside = false
	w.written = nil
	w.reported = make(map[lattice.Slot]struct{})

	if w.opts.First != nil {
		last := w.opts.Last
		if last == nil {
			last = w.opts.First
		}

		w.trace.Region = &RegionTrace{Span: tree.SpanOf(w.opts.First, last)}
	}
}

func (w *walker) emit(e Event) {
	if e.Func == nil && w.fn != nil {
		e.Func = w.fn.fn
	}

	w.trace.Events = append(w.trace.Events, e)
}

func (w *walker) errorf(format string, args ...any) {
	w.trace.Errors = append(w.trace.Errors, fmt.Errorf(format, args...))
}

// function walks a member or a closure body starting in state in.
func (w *walker) function(in lattice.State, fn *tree.Func) {
	outer := w.fn
	w.fn = &funcState{fn: fn}
	w.openScope()

	s := in
	for _, p := range fn.Params {
		var slot lattice.Slot
		s, slot = w.declare(s, fn, p)

		if !p.IsOut() {
			s = w.write(s, fn, slot)
		}
	}

	for _, r := range fn.Results {
		var slot lattice.Slot
		s, slot = w.declare(s, fn, r)

		if !r.IsOut() {
			s = w.write(s, fn, slot)
		}
	}

	var end lattice.State
	switch {
	case fn.Body != nil:
		end = w.stmt(s, fn.Body)

		if !fn.Result.IsVoid() && end.Reachable() {
			w.emit(Event{Kind: EventMissingReturn, Node: fn})
		}

	case fn.Expr != nil:
		end = w.value(s, fn.Expr)
	}

	exit := end
	for _, b := range w.fn.pending {
		switch b.kind {
		case branchReturn:
			exit = lattice.Merge(exit, b.state)

		case branchGoto:
			w.errorf("%w: goto %s without label", ErrMalformedTree, b.label.Name)

		default:
			w.errorf("%w: %s outside of loop or switch", ErrMalformedTree, b.kind)
		}
	}

	w.checkOut(exit, fn.Params)
	w.checkOut(exit, fn.Results)

	w.closeScope(exit)
	w.fn = outer
}

// checkOut verifies that out parameters are assigned when the function exits.
func (w *walker) checkOut(exit lattice.State, vars []*tree.Var) {
	for _, v := range vars {
		slot, ok := w.slots.lookup(v)
		if !ok {
			continue
		}

		info := w.slots.info(slot)

		if v.IsOut() && !exit.IsAssigned(info.Leaves...) {
			w.emit(Event{Kind: EventOutUnassigned, Slot: slot, Node: w.fn.fn})
		}

		if v.Ref != tree.RefNone && w.trace.Region != nil && exit.Reachable() && exit.FlowsOut(slot) {
			w.emit(Event{Kind: EventExitRead, Slot: slot, Node: w.fn.fn, FlowsOut: true})
		}
	}
}

// declare starts the lifetime of v in the current scope.
func (w *walker) declare(in lattice.State, node tree.Node, v *tree.Var) (lattice.State, lattice.Slot) {
	slot := w.slots.variable(v, w.fn.fn)
	w.emit(Event{Kind: EventDeclare, Slot: slot, Node: node, Inside: w.inside})

	if n := len(w.fn.scopes); n > 0 {
		w.fn.scopes[n-1] = append(w.fn.scopes[n-1], slot)
	}

	return in.Retire(w.slots.subtree(slot)...), slot
}

// varSlot returns the slot of a referenced variable.
func (w *walker) varSlot(in lattice.State, node tree.Node, v *tree.Var) (lattice.State, lattice.Slot) {
	if slot, ok := w.slots.lookup(v); ok {
		return in, slot
	}

	w.errorf("%w: %s used before its declaration", ErrMalformedTree, v.Name)
	slot := w.slots.variable(v, w.fn.fn)

	return in.Assign(w.slots.info(slot).Leaves...), slot
}

// read checks that slot is assigned and records the access.
func (w *walker) read(in lattice.State, node tree.Node, slot lattice.Slot) lattice.State {
	info := w.slots.info(slot)
	assigned := in.AllSet(info.Leaves...)

	e := Event{Kind: EventRead, Slot: slot, Node: node, Inside: w.inside, Captured: w.captures(info)}
	if w.trace.Region != nil && assigned && in.Reachable() {
		e.FlowsIn = w.inside && in.FlowsIn(info.Root)
		e.FlowsOut = !w.inside && in.FlowsOut(info.Root)
	}

	w.emit(e)

	if assigned || !in.Reachable() && !w.opts.AnalyzeUnreachable {
		return in
	}

	if _, ok := w.reported[slot]; !ok {
		w.reported[slot] = struct{}{}
		w.emit(Event{Kind: EventUnassigned, Slot: slot, Node: node, Inside: w.inside})
	}

	return in.Assign(info.Leaves...)
}

// write records an assignment to slot.
func (w *walker) write(in lattice.State, node tree.Node, slot lattice.Slot) lattice.State {
	info := w.slots.info(slot)
	w.emit(Event{Kind: EventWrite, Slot: slot, Node: node, Inside: w.inside, Captured: w.captures(info)})

	in = in.Assign(info.Leaves...)

	if w.trace.Region != nil {
		root, whole := info.Root, info.IsRoot()
		if w.inside {
			in = in.AssignSinceEntry(w.slots.tracked(slot)...).FlowOut(root)
			if whole {
				in = in.KillFlowIn(root)
			}
		} else {
			in = in.FlowIn(root)
			if whole {
				in = in.KillFlowOut(root)
			}
		}
	}

	for _, b := range w.written {
		b.Add(uint32(info.Root))
	}

	return in
}

// captures reports whether accessing the slot captures it from an enclosing function.
func (w *walker) captures(info *SlotInfo) bool {
	if info.Owner == w.fn.fn {
		return false
	}

	info.captured = true
	w.slots.info(info.Root).captured = true

	return true
}

func (w *walker) openScope() {
	w.fn.scopes = append(w.fn.scopes, nil)
}

// closeScope retires the slots declared in the innermost scope, except captured ones.
func (w *walker) closeScope(in lattice.State) lattice.State {
	n := len(w.fn.scopes) - 1
	declared := w.fn.scopes[n]
	w.fn.scopes = w.fn.scopes[:n]

	for _, slot := range declared {
		if w.slots.info(slot).captured {
			continue
		}

		in = in.Retire(w.slots.subtree(slot)...)
	}

	return in
}

// joinHead merges in into the recorded state of a loop head or label.
func (w *walker) joinHead(key any, in lattice.State) lattice.State {
	if prev, ok := w.heads[key]; ok {
		in = lattice.Merge(in, prev)
	}

	w.heads[key] = in

	return in
}

// backEdge merges a backward branch into the state of a loop head or label.
// A change requires another pass.
func (w *walker) backEdge(key any, s lattice.State) {
	if !s.Reachable() {
		return
	}

	prev, ok := w.heads[key]
	if !ok {
		w.heads[key] = s
		w.changed = true

		return
	}

	if merged := lattice.Merge(prev, s); !lattice.Equal(merged, prev) {
		w.heads[key] = merged
		w.changed = true
	}
}
