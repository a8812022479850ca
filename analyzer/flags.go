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

package analyzer

import (
	"flag"

	"fillmore-labs.com/flowguard/internal/config"
	"fillmore-labs.com/flowguard/internal/run"
)

// registerFlags binds the [run.Options] values to command line flag values.
func registerFlags(flags *flag.FlagSet, r *run.Options) {
	checks := []struct {
		name  string
		check config.Checks
		usage string
	}{
		{"unassigned", config.UnassignedCheck, "report reads of unassigned variables and fields"},
		{"unreachable", config.UnreachableCheck, "report unreachable code"},
		{"returns", config.ReturnsCheck, "report results not assigned on every return"},
	}

	for _, c := range checks {
		flags.Var(newMaskValue(&r.Checks, c.check), c.name, c.usage)
	}

	behavior := []struct {
		name  string
		flag  config.Config
		usage string
	}{
		{"generated", config.IncludeGenerated, "check generated files"},
		{"constant-conditions", config.ConstantConditions, "treat constant conditions as constants"},
		{"analyze-unreachable", config.AnalyzeUnreachable, "check reads inside unreachable code"},
	}

	for _, b := range behavior {
		flags.Var(newMaskValue(&r.Behavior, b.flag), b.name, b.usage)
	}
}
