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

package region

import (
	"cmp"
	"slices"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"fillmore-labs.com/flowguard/internal/flow"
	"fillmore-labs.com/flowguard/internal/lattice"
	"fillmore-labs.com/flowguard/tree"
)

// Set is a set of variables, listed in source order.
type Set struct {
	bits  *roaring.Bitmap
	slots []*flow.SlotInfo
}

func newSet(slots []*flow.SlotInfo) Set {
	return Set{bits: roaring.New(), slots: slots}
}

func (s Set) add(slot lattice.Slot) {
	s.bits.Add(uint32(slot))
}

// Len returns the number of variables in s.
func (s Set) Len() int {
	if s.bits == nil {
		return 0
	}

	return int(s.bits.GetCardinality())
}

// Contains reports whether v is in s.
func (s Set) Contains(v *tree.Var) bool {
	for _, x := range s.Vars() {
		if x == v {
			return true
		}
	}

	return false
}

// Vars returns the variables in source order of their declarations.
// Variables declared at the same position are ordered by name.
func (s Set) Vars() []*tree.Var {
	if s.bits == nil {
		return nil
	}

	vars := make([]*tree.Var, 0, s.bits.GetCardinality())
	for it := s.bits.Iterator(); it.HasNext(); {
		vars = append(vars, s.slots[it.Next()].Var)
	}

	slices.SortStableFunc(vars, func(a, b *tree.Var) int {
		if c := cmp.Compare(a.Decl, b.Decl); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return vars
}

// Names returns the variable names in the order of [Set.Vars].
func (s Set) Names() []string {
	vars := s.Vars()

	names := make([]string, 0, len(vars))
	for _, v := range vars {
		names = append(names, v.Name)
	}

	return names
}

// String joins the names with ", ". The empty set renders as "".
func (s Set) String() string {
	return strings.Join(s.Names(), ", ")
}

// IsSubset reports whether every variable of s is in t.
func (s Set) IsSubset(t Set) bool {
	if s.Len() == 0 {
		return true
	}

	if t.bits == nil {
		return false
	}

	return roaring.AndNot(s.bits, t.bits).IsEmpty()
}
