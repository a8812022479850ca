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

package lattice

import "github.com/RoaringBitmap/roaring/v2"

// Merge joins the states of two predecessors of a program point.
//
// A slot is assigned in the result only if it is assigned in every reachable
// predecessor, the result is reachable if any predecessor is. An unreachable
// predecessor does not contribute.
func Merge(a, b State) State {
	switch {
	case a.reachable && !b.reachable:
		return a

	case b.reachable && !a.reachable:
		return b
	}

	var r State
	for v := range numVectors {
		if v.must() {
			r.bits[v] = and(a.bits[v], b.bits[v])
		} else {
			r.bits[v] = or(a.bits[v], b.bits[v])
		}
	}

	r.reachable = a.reachable

	return r
}

// MergeAll merges a list of states. The empty merge is unreachable.
func MergeAll(states ...State) State {
	if len(states) == 0 {
		return State{}
	}

	r := states[0]
	for _, s := range states[1:] {
		r = Merge(r, s)
	}

	return r
}

// Meet composes the state before a finally block with the state at its end.
//
// Slots assigned by either are assigned, the result is reachable only if
// both are. For the region vectors, slots in written take the value from fin,
// the rest keep the value from s.
func Meet(s, fin State, written *roaring.Bitmap) State {
	var r State
	for v := range numVectors {
		if v.must() {
			r.bits[v] = or(s.bits[v], fin.bits[v])
			continue
		}

		if written == nil || written.IsEmpty() {
			r.bits[v] = s.bits[v]
			continue
		}

		r.bits[v] = or(andNot(s.bits[v], written), and(fin.bits[v], written))
	}

	r.reachable = s.reachable && fin.reachable

	return r
}

// Equal reports whether two states are identical.
func Equal(a, b State) bool {
	if a.reachable != b.reachable {
		return false
	}

	for v := range numVectors {
		if !equal(a.bits[v], b.bits[v]) {
			return false
		}
	}

	return true
}

// Height bounds the number of strict changes a label state can undergo.
func Height(slots int) int {
	return 2*int(numVectors)*slots + 1
}

func and(a, b *roaring.Bitmap) *roaring.Bitmap {
	switch {
	case a == nil || b == nil:
		return nil

	case a == b:
		return a
	}

	return roaring.And(a, b)
}

func or(a, b *roaring.Bitmap) *roaring.Bitmap {
	switch {
	case a == nil:
		return b

	case b == nil, a == b:
		return a
	}

	return roaring.Or(a, b)
}

func andNot(a, b *roaring.Bitmap) *roaring.Bitmap {
	if a == nil || b == nil {
		return a
	}

	return roaring.AndNot(a, b)
}

func equal(a, b *roaring.Bitmap) bool {
	switch {
	case a == b:
		return true

	case a == nil:
		return b.IsEmpty()

	case b == nil:
		return a.IsEmpty()
	}

	return a.Equals(b)
}
