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

// Package analyzer implements the flowguard static analysis pass.
//
// # Overview
//
// FlowGuard checks definite assignment and reachability of Go function bodies.
// Variables of basic and pointer type declared without an initializer count as
// unassigned until every path to a read assigns them.
//
// # Example
//
//	func parse(s string, strict bool) int {
//	    var n int
//	    if strict {
//	        n = len(s)
//	    }
//	    return n  // Use of unassigned variable 'n' (fg:uav)
//	}
//
// # Findings
//
//   - uav: read of a variable not assigned on every path
//   - uaf: read of a struct field not assigned on every path
//   - uao: read of a named result before it is assigned
//   - oae: named result not assigned on every return
//   - unr: first statement of a run of unreachable code
//   - mrv: reachable end of a function returning values
//
// A `//nolint:flowguard` comment on the line of a finding, on a function
// or on the package clause suppresses it.
package analyzer
