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
	"fillmore-labs.com/flowguard/tree"
)

type branchKind uint8

const (
	branchBreak branchKind = iota
	branchContinue
	branchGoto
	branchReturn
)

func (k branchKind) String() string {
	switch k {
	case branchBreak:
		return "break"

	case branchContinue:
		return "continue"

	case branchGoto:
		return "goto"

	default:
		return "return"
	}
}

// branch is a jump whose state is merged at its target.
type branch struct {
	kind   branchKind
	frame  *frame      // break and continue
	label  *tree.Label // goto
	node   tree.Stmt
	state  lattice.State
	inside bool // the jump starts in the region
}

// frame is a loop or switch statement targeted by break and continue.
type frame struct {
	stmt  tree.Stmt
	label *tree.Label
	loop  bool
}

// tryFrame accumulates the states an exception may leave a try block in.
type tryFrame struct {
	acc lattice.State
}

// pushFrame enters a break target, collecting the branches made inside.
func (w *walker) pushFrame(s tree.Stmt, label *tree.Label, loop bool) (fr *frame, saved []branch) {
	fr = &frame{stmt: s, label: label, loop: loop}
	w.fn.frames = append(w.fn.frames, fr)
	saved, w.fn.pending = w.fn.pending, nil

	return fr, saved
}

// popFrame leaves a break target; unresolved branches stay pending.
func (w *walker) popFrame(saved []branch) {
	w.fn.frames = w.fn.frames[:len(w.fn.frames)-1]
	w.fn.pending = append(saved, w.fn.pending...)
}

// resolve merges the pending branches of kind targeting fr into s.
func (w *walker) resolve(fr *frame, kind branchKind, s lattice.State) lattice.State {
	kept := w.fn.pending[:0]
	for _, b := range w.fn.pending {
		if b.kind == kind && b.frame == fr {
			s = lattice.Merge(s, b.state)
			continue
		}

		kept = append(kept, b)
	}

	w.fn.pending = kept

	return s
}

// jumpTarget finds the frame a break or continue jumps to.
func (w *walker) jumpTarget(label *tree.Label, loop bool) *frame {
	for i := len(w.fn.frames) - 1; i >= 0; i-- {
		fr := w.fn.frames[i]

		switch {
		case label != nil:
			if fr.label == label {
				return fr
			}

		case !loop || fr.loop:
			return fr
		}
	}

	return nil
}

// jump records a pending branch and returns the unreachable continuation.
func (w *walker) jump(b branch, s lattice.State) lattice.State {
	b.state, b.inside = s, w.inside

	if w.inside && !w.targetInside(b) {
		w.leaveRegion(b.node, s)
	}

	w.fn.pending = append(w.fn.pending, b)

	return s.Unreachable()
}

// targetInside reports whether the target of b lies in the region.
func (w *walker) targetInside(b branch) bool {
	span := w.trace.Region.Span

	switch b.kind {
	case branchBreak, branchContinue:
		return span.Contains(b.frame.stmt)

	case branchGoto:
		return span.From <= b.label.Decl && b.label.Decl < span.To

	default:
		return false
	}
}

// resolveLabel merges the pending forward jumps to label into in.
func (w *walker) resolveLabel(s *tree.Labeled, in lattice.State) lattice.State {
	kept := w.fn.pending[:0]
	for _, b := range w.fn.pending {
		if b.kind == branchGoto && b.label == s.Label {
			w.enterRegionByJump(s, b)
			in = lattice.Merge(in, b.state)

			continue
		}

		kept = append(kept, b)
	}

	w.fn.pending = kept

	return in
}

// resolveBackward feeds the pending backward jumps to labels of list into the label states.
func (w *walker) resolveBackward(list []tree.Stmt) {
	var labels map[*tree.Label]*tree.Labeled
	for _, s := range list {
		for l, ok := s.(*tree.Labeled); ok; l, ok = l.Stmt.(*tree.Labeled) {
			if labels == nil {
				labels = make(map[*tree.Label]*tree.Labeled)
			}

			labels[l.Label] = l
		}
	}

	if labels == nil {
		return
	}

	kept := w.fn.pending[:0]
	for _, b := range w.fn.pending {
		if l, ok := labels[b.label]; ok && b.kind == branchGoto {
			w.enterRegionByJump(l, b)
			w.backEdge(b.label, b.state)

			continue
		}

		kept = append(kept, b)
	}

	w.fn.pending = kept
}

// throwPoint records a state an exception may be raised in.
func (w *walker) throwPoint(s lattice.State) {
	for _, t := range w.fn.tries {
		t.acc = lattice.Merge(t.acc, s)
	}
}
