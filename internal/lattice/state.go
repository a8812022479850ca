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

// Package lattice implements the flow state of the definite assignment analysis.
//
// A [State] is an immutable value: every operation returns a new State and
// copies only the bit vector it changes, so snapshots are free to keep.
package lattice

import "github.com/RoaringBitmap/roaring/v2"

// Slot identifies a tracked variable, parameter or field.
type Slot uint32

// vector selects one of the bit vectors of a [State].
type vector uint8

const (
	// assigned holds definitely assigned slots (must, intersected on merge).
	assigned vector = iota

	// sinceEntry holds slots definitely assigned since the region was entered (must).
	sinceEntry

	// flowsIn holds root slots whose value may originate before the region (may, unioned on merge).
	flowsIn

	// flowsOut holds root slots whose value may originate in the region (may).
	flowsOut

	numVectors
)

// must reports whether v is intersected on merge.
func (v vector) must() bool { return v < flowsIn }

// State is the flow state at one program point.
type State struct {
	bits      [numVectors]*roaring.Bitmap
	reachable bool
}

// Initial returns the reachable state with no slot assigned.
func Initial() State {
	return State{reachable: true}
}

// Reachable reports whether the program point can be reached.
func (s State) Reachable() bool { return s.reachable }

// Unreachable returns s marked unreachable. The assignment bits are kept.
func (s State) Unreachable() State {
	s.reachable = false

	return s
}

// IsAssigned reports whether all slots are assigned. Everything is assigned in unreachable code.
func (s State) IsAssigned(slots ...Slot) bool {
	return !s.reachable || s.AllSet(slots...)
}

// AllSet reports whether all slots are assigned, regardless of reachability.
func (s State) AllSet(slots ...Slot) bool {
	return s.all(assigned, slots)
}

// Assign marks slots as assigned.
func (s State) Assign(slots ...Slot) State {
	return s.set(assigned, slots)
}

// Unassign marks slots as unassigned. Declarations use this to start a fresh lifetime.
func (s State) Unassign(slots ...Slot) State {
	return s.clear(assigned, slots)
}

// Retire forgets slots leaving scope.
func (s State) Retire(slots ...Slot) State {
	for v := range numVectors {
		s = s.clear(v, slots)
	}

	return s
}

// EnterRegion starts tracking assignments since region entry.
func (s State) EnterRegion() State {
	s.bits[sinceEntry] = nil

	return s
}

// AssignSinceEntry records slots as assigned inside the region.
func (s State) AssignSinceEntry(slots ...Slot) State {
	return s.set(sinceEntry, slots)
}

// AssignedSinceEntry returns the slots assigned on all paths since region entry.
func (s State) AssignedSinceEntry() []Slot {
	return slotsOf(s.bits[sinceEntry])
}

// FlowIn records that the value of root originates outside the region.
func (s State) FlowIn(root Slot) State {
	return s.set(flowsIn, []Slot{root})
}

// KillFlowIn records that root was overwritten inside the region.
func (s State) KillFlowIn(root Slot) State {
	return s.clear(flowsIn, []Slot{root})
}

// FlowsIn reports whether the value of root may originate outside the region.
func (s State) FlowsIn(root Slot) bool {
	return s.all(flowsIn, []Slot{root})
}

// FlowOut records that the value of root originates inside the region.
func (s State) FlowOut(root Slot) State {
	return s.set(flowsOut, []Slot{root})
}

// KillFlowOut records that root was overwritten outside the region.
func (s State) KillFlowOut(root Slot) State {
	return s.clear(flowsOut, []Slot{root})
}

// FlowsOut reports whether the value of root may originate inside the region.
func (s State) FlowsOut(root Slot) bool {
	return s.all(flowsOut, []Slot{root})
}

// AssignedSlots returns the assigned slots in ascending order.
func (s State) AssignedSlots() []Slot {
	return slotsOf(s.bits[assigned])
}

func (s State) all(v vector, slots []Slot) bool {
	b := s.bits[v]
	for _, slot := range slots {
		if b == nil || !b.Contains(uint32(slot)) {
			return false
		}
	}

	return true
}

func (s State) set(v vector, slots []Slot) State {
	if s.all(v, slots) {
		return s
	}

	b := cloneOrNew(s.bits[v])
	for _, slot := range slots {
		b.Add(uint32(slot))
	}

	s.bits[v] = b

	return s
}

func (s State) clear(v vector, slots []Slot) State {
	old := s.bits[v]
	if old == nil {
		return s
	}

	var b *roaring.Bitmap
	for _, slot := range slots {
		if !old.Contains(uint32(slot)) {
			continue
		}

		if b == nil {
			b = old.Clone()
		}

		b.Remove(uint32(slot))
	}

	if b != nil {
		s.bits[v] = b
	}

	return s
}

func cloneOrNew(b *roaring.Bitmap) *roaring.Bitmap {
	if b == nil {
		return roaring.New()
	}

	return b.Clone()
}

func slotsOf(b *roaring.Bitmap) []Slot {
	if b == nil {
		return nil
	}

	slots := make([]Slot, 0, b.GetCardinality())
	for it := b.Iterator(); it.HasNext(); {
		slots = append(slots, Slot(it.Next()))
	}

	return slots
}
