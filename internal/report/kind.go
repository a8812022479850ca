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

package report

import "fillmore-labs.com/flowguard/internal/config"

//go:generate go tool stringer -type Kind

// Kind classifies a finding.
type Kind uint8

const (
	// UseOfUnassignedVariable is a read of a local that is not definitely assigned.
	UseOfUnassignedVariable Kind = iota

	// UseOfUnassignedField is a read of a struct field that is not definitely assigned.
	UseOfUnassignedField

	// UseOfUnassignedOutParameter is a read of an out parameter before it is assigned.
	UseOfUnassignedOutParameter

	// OutParameterNotAssignedAtExit is an out parameter not assigned on some exit.
	OutParameterNotAssignedAtExit

	// UnreachableCode starts a run of statements that can't be reached.
	UnreachableCode

	// MissingReturnValue is a reachable end of a function returning a value.
	MissingReturnValue
)

// Code is the short tag of the kind used in messages.
func (k Kind) Code() string {
	switch k {
	case UseOfUnassignedVariable:
		return "uav"

	case UseOfUnassignedField:
		return "uaf"

	case UseOfUnassignedOutParameter:
		return "uao"

	case OutParameterNotAssignedAtExit:
		return "oae"

	case UnreachableCode:
		return "unr"

	case MissingReturnValue:
		return "mrv"

	default:
		return "unk"
	}
}

// Check returns the check reporting findings of this kind.
func (k Kind) Check() config.Checks {
	switch k {
	case UnreachableCode:
		return config.UnreachableCheck

	case OutParameterNotAssignedAtExit, MissingReturnValue:
		return config.ReturnsCheck

	default:
		return config.UnassignedCheck
	}
}
