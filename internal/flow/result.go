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

import "fillmore-labs.com/flowguard/internal/lattice"

// result is the state after an expression: a single state, or a split into
// the states where a boolean value is true and false.
type result struct {
	state lattice.State
	t, f  lattice.State
	split bool

	// notNull is the state reached when a conditional access produced a value.
	notNull *lattice.State
}

func plain(s lattice.State) result {
	return result{state: s}
}

func split(t, f lattice.State) result {
	return result{t: t, f: f, split: true}
}

// merged collapses a split.
func (r result) merged() lattice.State {
	if r.split {
		return lattice.Merge(r.t, r.f)
	}

	return r.state
}

// branches returns the states where the value is true and false.
func (r result) branches() (t, f lattice.State) {
	if r.split {
		return r.t, r.f
	}

	return r.state, r.state
}

// swapped exchanges true and false.
func (r result) swapped() result {
	if !r.split {
		return r
	}

	r.t, r.f = r.f, r.t

	return r
}

// withNotNull records the state for a present value.
func (r result) withNotNull(s lattice.State) result {
	r.notNull = &s

	return r
}
