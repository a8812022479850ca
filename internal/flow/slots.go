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
	"fmt"

	"fortio.org/safecast"

	"fillmore-labs.com/flowguard/internal/lattice"
	"fillmore-labs.com/flowguard/tree"
)

// maxFieldDepth limits the nesting of tracked struct fields.
const maxFieldDepth = 5

// slotTable assigns slots to variables and their fields.
// Slots are stable over all passes of one analysis.
type slotTable struct {
	infos []*SlotInfo
	vars  map[*tree.Var]lattice.Slot
}

func newSlotTable() *slotTable {
	return &slotTable{vars: make(map[*tree.Var]lattice.Slot)}
}

func (t *slotTable) len() int { return len(t.infos) }

func (t *slotTable) info(s lattice.Slot) *SlotInfo { return t.infos[s] }

// lookup returns the slot of a declared variable.
func (t *slotTable) lookup(v *tree.Var) (lattice.Slot, bool) {
	s, ok := t.vars[v]

	return s, ok
}

// variable returns the slot of v, creating it and its field slots when needed.
func (t *slotTable) variable(v *tree.Var, owner *tree.Func) lattice.Slot {
	if s, ok := t.vars[v]; ok {
		return s
	}

	s := t.add(&SlotInfo{Var: v, Owner: owner, Name: v.Name})
	t.infos[s].Root = s
	t.vars[v] = s
	t.expand(s, v.Type, 0)

	return s
}

// field returns the slot for field f of the struct in slot parent.
func (t *slotTable) field(parent lattice.Slot, f *tree.Field) (lattice.Slot, bool) {
	children := t.infos[parent].children
	if f.Index < 0 || f.Index >= len(children) {
		return 0, false
	}

	return children[f.Index], true
}

func (t *slotTable) add(info *SlotInfo) lattice.Slot {
	s, err := safecast.Conv[uint32](len(t.infos))
	if err != nil {
		panic(fmt.Errorf("slot table overflow: %w", err))
	}

	slot := lattice.Slot(s)
	info.Parent = slot
	t.infos = append(t.infos, info)

	return slot
}

// expand creates the field slots of a struct and computes the leaves.
func (t *slotTable) expand(s lattice.Slot, typ *tree.Type, depth int) {
	info := t.infos[s]

	if typ == nil || typ.Kind != tree.KindStruct || depth >= maxFieldDepth {
		info.Leaves = []lattice.Slot{s}

		return
	}

	for _, f := range typ.Fields {
		c := t.add(&SlotInfo{
			Var:   info.Var,
			Field: f,
			Root:  info.Root,
			Owner: info.Owner,
			Name:  info.Name + "." + f.Name,
		})
		t.infos[c].Parent = s
		info.children = append(info.children, c)
		t.expand(c, f.Type, depth+1)
		info.Leaves = append(info.Leaves, t.infos[c].Leaves...)
	}
}

// all returns every slot created so far.
func (t *slotTable) all() []lattice.Slot {
	slots := make([]lattice.Slot, len(t.infos))
	for i := range slots {
		slots[i] = lattice.Slot(i)
	}

	return slots
}

// subtree returns the slot and all its field slots.
func (t *slotTable) subtree(s lattice.Slot) []lattice.Slot {
	slots := []lattice.Slot{s}
	for i := 0; i < len(slots); i++ {
		slots = append(slots, t.infos[slots[i]].children...)
	}

	return slots
}

// tracked returns the bits recording writes to s: its leaves, or s itself for
// types without fields.
func (t *slotTable) tracked(s lattice.Slot) []lattice.Slot {
	if leaves := t.infos[s].Leaves; len(leaves) > 0 {
		return leaves
	}

	return []lattice.Slot{s}
}
