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

package config

// Checks represents the finding kinds to report.
type Checks uint8

const (
	// UnassignedCheck reports reads of variables, fields and results that are not definitely assigned.
	UnassignedCheck Checks = 1 << iota

	// UnreachableCheck reports statements that can't be reached.
	UnreachableCheck

	// ReturnsCheck reports named results not assigned on every return and missing return values.
	ReturnsCheck
)

// AllChecks enables every check.
const AllChecks = UnassignedCheck | UnreachableCheck | ReturnsCheck

// Config represents configuration options for the analysis.
type Config uint8

const (
	// IncludeGenerated specifies whether to include analysis of generated files.
	IncludeGenerated Config = 1 << iota

	// ConstantConditions treats constant boolean conditions as constants,
	// so branches they exclude are unreachable.
	ConstantConditions

	// AnalyzeUnreachable keeps checking reads inside unreachable code.
	AnalyzeUnreachable
)
