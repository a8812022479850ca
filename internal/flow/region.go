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

// regionStart enters the region when n is its first node.
func (w *walker) regionStart(n tree.Node, in lattice.State) lattice.State {
	if w.trace.Region == nil || n != w.opts.First {
		return in
	}

	r := w.trace.Region
	r.Found, r.Func, r.Start = true, w.fn.fn, in.Reachable()
	w.inside = true

	return in.EnterRegion()
}

// regionEnd leaves the region when n is its last node.
func (w *walker) regionEnd(n tree.Node, out lattice.State) {
	if w.trace.Region == nil || !w.inside || n != w.last() {
		return
	}

	w.inside = false
	w.trace.Region.End = out.Reachable()
	w.exit(n, out)
}

func (w *walker) last() tree.Node {
	if w.opts.Last != nil {
		return w.opts.Last
	}

	return w.opts.First
}

// leaveRegion records a jump or return from inside the region to outside.
func (w *walker) leaveRegion(s tree.Stmt, state lattice.State) {
	r := w.trace.Region
	r.Leave = append(r.Leave, s)

	if _, ok := s.(*tree.Return); ok {
		r.Return = append(r.Return, s)
	}

	w.exit(s, state)
}

// enterRegionByJump records a jump from outside the region to a label in it.
func (w *walker) enterRegionByJump(l *tree.Labeled, b branch) {
	r := w.trace.Region
	if r == nil || b.inside || !r.Span.Contains(l) || !b.state.Reachable() {
		return
	}

	r.Entry = append(r.Entry, l)
}

func (w *walker) exit(n tree.Node, s lattice.State) {
	if !s.Reachable() {
		return
	}

	w.trace.Region.Exits = append(w.trace.Region.Exits, Exit{Node: n, Assigned: s.AssignedSinceEntry()})
}
