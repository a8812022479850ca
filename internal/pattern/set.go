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

package pattern

import (
	"math"
	"slices"

	"fillmore-labs.com/flowguard/tree"
)

// set is a sorted list of disjoint, non-adjacent closed intervals.
type set []tree.Interval

func point(v int64) set { return set{{v, v}} }

func (s set) empty() bool { return len(s) == 0 }

func (s set) contains(v int64) bool {
	_, found := slices.BinarySearchFunc(s, v, func(iv tree.Interval, v int64) int {
		switch {
		case iv.Hi < v:
			return -1

		case iv.Lo > v:
			return 1

		default:
			return 0
		}
	})

	return found
}

// union returns s ∪ t.
func (s set) union(t set) set {
	if s.empty() {
		return t
	}

	if t.empty() {
		return s
	}

	all := make(set, 0, len(s)+len(t))
	all = append(all, s...)
	all = append(all, t...)
	slices.SortFunc(all, func(a, b tree.Interval) int {
		switch {
		case a.Lo < b.Lo:
			return -1

		case a.Lo > b.Lo:
			return 1

		default:
			return 0
		}
	})

	r := all[:1]
	for _, iv := range all[1:] {
		last := &r[len(r)-1]
		if last.Hi == math.MaxInt64 || iv.Lo <= last.Hi+1 {
			last.Hi = max(last.Hi, iv.Hi)
			continue
		}

		r = append(r, iv)
	}

	return r
}

// intersect returns s ∩ t.
func (s set) intersect(t set) set {
	var r set

	for i, j := 0, 0; i < len(s) && j < len(t); {
		lo, hi := max(s[i].Lo, t[j].Lo), min(s[i].Hi, t[j].Hi)
		if lo <= hi {
			r = append(r, tree.Interval{Lo: lo, Hi: hi})
		}

		if s[i].Hi < t[j].Hi {
			i++
		} else {
			j++
		}
	}

	return r
}

// minus returns s \ t.
func (s set) minus(t set) set {
	var r set

	for _, iv := range s {
		lo := iv.Lo
		done := false

		for _, cut := range t {
			if cut.Hi < lo || cut.Lo > iv.Hi {
				continue
			}

			if cut.Lo > lo {
				r = append(r, tree.Interval{Lo: lo, Hi: cut.Lo - 1})
			}

			if cut.Hi >= iv.Hi {
				done = true
				break
			}

			lo = cut.Hi + 1
		}

		if !done {
			r = append(r, tree.Interval{Lo: lo, Hi: iv.Hi})
		}
	}

	return r
}

// covers reports whether s ⊇ t.
func (s set) covers(t set) bool {
	return t.minus(s).empty()
}
