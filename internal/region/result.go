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

// Package region answers data and control flow queries over a range of
// statements or an expression, derived from the trace of one flow analysis.
package region

import (
	"context"
	"runtime/trace"

	"github.com/RoaringBitmap/roaring/v2"

	"fillmore-labs.com/flowguard/internal/flow"
	"fillmore-labs.com/flowguard/internal/lattice"
	"fillmore-labs.com/flowguard/tree"
)

// Result is the data and control flow of a region.
type Result struct {
	// Succeeded is false when the region was not found in the function.
	Succeeded bool

	VariablesDeclared  Set // declared inside the region
	DataFlowsIn        Set // read inside from a value assigned before the region
	DataFlowsOut       Set // read after the region from a value assigned inside
	AlwaysAssigned     Set // assigned on every path through the region
	ReadInside         Set
	ReadOutside        Set
	WrittenInside      Set // syntactic writes, whether or not they complete
	WrittenOutside     Set
	Captured           Set // read or written by a closure
	CapturedInside     Set // captured by an access inside the region
	CapturedOutside    Set // captured by an access outside the region
	UnsafeAddressTaken Set // address taken inside the region

	EntryPoints           []tree.Stmt // labeled statements inside reached from outside
	ExitPoints            []tree.Stmt // jumps inside leaving the region
	ReturnStatements      []tree.Stmt // returns inside the region
	StartPointIsReachable bool
	EndPointIsReachable   bool
}

// Compute derives the region result from a trace.
func Compute(ctx context.Context, t *flow.Trace) Result {
	defer trace.StartRegion(ctx, "region").End()

	slots := t.Slots

	r := Result{
		VariablesDeclared:  newSet(slots),
		DataFlowsIn:        newSet(slots),
		DataFlowsOut:       newSet(slots),
		AlwaysAssigned:     newSet(slots),
		ReadInside:         newSet(slots),
		ReadOutside:        newSet(slots),
		WrittenInside:      newSet(slots),
		WrittenOutside:     newSet(slots),
		Captured:           newSet(slots),
		CapturedInside:     newSet(slots),
		CapturedOutside:    newSet(slots),
		UnsafeAddressTaken: newSet(slots),
	}

	rt := t.Region
	if rt == nil || !rt.Found {
		return r
	}

	r.Succeeded = true
	r.EntryPoints, r.ExitPoints, r.ReturnStatements = rt.Entry, rt.Leave, rt.Return
	r.StartPointIsReachable, r.EndPointIsReachable = rt.Start, rt.End

	for _, e := range t.Events {
		if !hasSlot(e.Kind) {
			continue
		}

		root := slots[e.Slot].Root

		switch e.Kind {
		case flow.EventDeclare:
			if e.Inside {
				r.VariablesDeclared.add(root)
			}

		case flow.EventRead:
			inOut(r.ReadInside, r.ReadOutside, e.Inside, root)

			if e.FlowsIn {
				r.DataFlowsIn.add(root)
			}

			if e.FlowsOut {
				r.DataFlowsOut.add(root)
			}

			captured(&r, e, root)

		case flow.EventExitRead:
			r.ReadOutside.add(root)

			if e.FlowsOut {
				r.DataFlowsOut.add(root)
			}

		case flow.EventWrite:
			inOut(r.WrittenInside, r.WrittenOutside, e.Inside, root)
			captured(&r, e, root)

		case flow.EventAddressTaken:
			if e.Inside {
				r.UnsafeAddressTaken.add(root)
			}
		}
	}

	alwaysAssigned(r.AlwaysAssigned, r.WrittenInside, rt.Exits, slots)

	return r
}

// hasSlot reports whether events of kind k refer to a slot.
func hasSlot(k flow.EventKind) bool {
	switch k {
	case flow.EventStatement, flow.EventMissingReturn, flow.EventSection:
		return false

	default:
		return true
	}
}

func inOut(inside, outside Set, in bool, root lattice.Slot) {
	if in {
		inside.add(root)
	} else {
		outside.add(root)
	}
}

func captured(r *Result, e flow.Event, root lattice.Slot) {
	if !e.Captured {
		return
	}

	r.Captured.add(root)
	inOut(r.CapturedInside, r.CapturedOutside, e.Inside, root)
}

// alwaysAssigned adds the variables written inside the region whose tracked
// slots are assigned at every exit.
func alwaysAssigned(result, written Set, exits []flow.Exit, slots []*flow.SlotInfo) {
	if len(exits) == 0 {
		return
	}

	var common *roaring.Bitmap
	for _, x := range exits {
		b := roaring.New()
		for _, s := range x.Assigned {
			b.Add(uint32(s))
		}

		if common == nil {
			common = b
		} else {
			common.And(b)
		}
	}

	for it := written.bits.Iterator(); it.HasNext(); {
		root := it.Next()

		info := slots[root]
		tracked := info.Leaves
		if len(tracked) == 0 {
			tracked = []lattice.Slot{lattice.Slot(root)}
		}

		all := true
		for _, s := range tracked {
			if !common.Contains(uint32(s)) {
				all = false

				break
			}
		}

		if all {
			result.add(lattice.Slot(root))
		}
	}
}
