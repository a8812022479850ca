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

//go:generate go tool stringer -type EventKind -trimprefix Event

// EventKind classifies trace events.
type EventKind uint8

const (
	// EventDeclare is the declaration of a slot.
	EventDeclare EventKind = iota

	// EventRead is a read of a slot.
	EventRead

	// EventWrite is a write of a slot, whether or not it completes.
	EventWrite

	// EventUnassigned is the first read of a slot that is not definitely assigned.
	EventUnassigned

	// EventStatement marks the start of a statement together with its reachability.
	EventStatement

	// EventAddressTaken is taking the address of a slot.
	EventAddressTaken

	// EventOutUnassigned is an out parameter not assigned when its function exits.
	EventOutUnassigned

	// EventMissingReturn is a reachable end of a function returning a value.
	EventMissingReturn

	// EventExitRead is the implicit read of a ref or out parameter by the caller.
	EventExitRead

	// EventSection marks the start of a switch section. Runs of unreachable
	// statements end there.
	EventSection
)

// Event is one observation of the final pass over a function.
type Event struct {
	Kind EventKind
	Slot lattice.Slot
	Node tree.Node
	Func *tree.Func // innermost function containing the event

	Inside    bool // the event lies in the queried region
	Captured  bool // the slot belongs to an enclosing function
	FlowsIn   bool // a read in the region of a value assigned before it
	FlowsOut  bool // a read after the region of a value assigned in it
	Reachable bool // EventStatement: the statement can be reached
}

// SlotInfo describes a tracked variable or field.
type SlotInfo struct {
	Var    *tree.Var
	Field  *tree.Field // nil for variables
	Parent lattice.Slot
	Root   lattice.Slot
	Owner  *tree.Func // function declaring the variable
	Name   string

	// Leaves are the slots whose bits make up the assignment state of this slot.
	Leaves []lattice.Slot

	children []lattice.Slot
	captured bool
}

// IsRoot reports whether the slot is a variable, not a field.
func (s *SlotInfo) IsRoot() bool { return s.Field == nil }

// Captured reports whether a closure reads or writes the variable.
func (s *SlotInfo) Captured() bool { return s.captured }

// Trace is the result of a flow analysis: the events of the final pass over
// the function and, when a region was requested, the region observations.
type Trace struct {
	Func   *tree.Func
	Slots  []*SlotInfo
	Events []Event
	Region *RegionTrace
	Passes int

	// Errors are internal errors caused by malformed input.
	Errors []error
}

// Slot returns the description of slot s.
func (t *Trace) Slot(s lattice.Slot) *SlotInfo {
	return t.Slots[s]
}

// RegionTrace are the observations about the queried region.
type RegionTrace struct {
	Span   tree.Span
	Func   *tree.Func // innermost function containing the region
	Found  bool       // the walk reached the region
	Start  bool       // the region start is reachable
	End    bool       // the region end is reachable
	Exits  []Exit     // reachable ways out of the region
	Entry  []tree.Stmt
	Leave  []tree.Stmt
	Return []tree.Stmt
}

// Exit is the state of the assignments made in a region when leaving it.
type Exit struct {
	Node     tree.Node
	Assigned []lattice.Slot // slots assigned on every path since region entry
}
