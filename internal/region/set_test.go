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
	"testing"

	"github.com/stretchr/testify/assert"

	"fillmore-labs.com/flowguard/internal/flow"
	"fillmore-labs.com/flowguard/internal/lattice"
	"fillmore-labs.com/flowguard/tree"
)

func TestSet(t *testing.T) {
	t.Parallel()

	x := &tree.Var{Name: "x", Type: tree.Int}
	y := &tree.Var{Name: "y", Type: tree.Int}
	z := &tree.Var{Name: "z", Type: tree.Int}
	slots := []*flow.SlotInfo{{Var: x, Name: "x"}, {Var: y, Name: "y", Root: 1}, {Var: z, Name: "z", Root: 2}}

	s, u := newSet(slots), newSet(slots)
	s.add(2)
	s.add(0)
	u.add(0)
	u.add(1)
	u.add(2)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "x, z", s.String())
	assert.Equal(t, []string{"x", "z"}, s.Names())
	assert.True(t, s.Contains(z))
	assert.False(t, s.Contains(y))
	assert.True(t, s.IsSubset(u))
	assert.False(t, u.IsSubset(s))
}

func TestSetSourceOrder(t *testing.T) {
	t.Parallel()

	// Slots are created in walk order, which differs from source order for
	// variables captured before their declaration is reached.
	late := &tree.Var{Name: "late", Type: tree.Int, Decl: 40}
	early := &tree.Var{Name: "early", Type: tree.Int, Decl: 10}
	b := &tree.Var{Name: "b", Type: tree.Int, Decl: 20}
	a := &tree.Var{Name: "a", Type: tree.Int, Decl: 20}
	slots := []*flow.SlotInfo{
		{Var: late, Name: "late"},
		{Var: b, Name: "b", Root: 1},
		{Var: early, Name: "early", Root: 2},
		{Var: a, Name: "a", Root: 3},
	}

	s := newSet(slots)
	for i := range slots {
		s.add(lattice.Slot(i))
	}

	assert.Equal(t, []*tree.Var{early, a, b, late}, s.Vars())
	assert.Equal(t, "early, a, b, late", s.String())
}

func TestZeroSet(t *testing.T) {
	t.Parallel()

	var s Set

	assert.Zero(t, s.Len())
	assert.Empty(t, s.String())
	assert.Nil(t, s.Vars())
	assert.True(t, s.IsSubset(Set{}))
}
