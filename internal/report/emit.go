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

import (
	"context"
	"fmt"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/flowguard/internal/astutil"
	"fillmore-labs.com/flowguard/internal/config"
)

// Emit reports the findings of one function to the analysis framework.
// Findings of disabled checks and findings on lines with a nolint comment are dropped.
func Emit(ctx context.Context, p *analysis.Pass, currentFile astutil.CurrentFile, diags []Diagnostic, checks config.BitMask[config.Checks]) {
	defer trace.StartRegion(ctx, "Emit").End()

	for _, d := range diags {
		if !checks.Enabled(d.Kind.Check()) || currentFile.NoLintComment(d.Span.From) {
			continue
		}

		p.Report(analysis.Diagnostic{
			Pos:      d.Span.From,
			End:      d.Span.To,
			Category: d.Kind.Code(),
			Message:  Message(d),
		})
	}
}

// Message formats the message of a finding for Go code, tagged with its code.
func Message(d Diagnostic) string {
	return fmt.Sprintf("%s (fg:%s)", Text(d), d.Kind.Code())
}

// Text describes a finding in Go terms.
func Text(d Diagnostic) string {
	switch d.Kind {
	case UseOfUnassignedVariable:
		return fmt.Sprintf("Use of unassigned variable '%s'", d.Name)

	case UseOfUnassignedField:
		return fmt.Sprintf("Use of unassigned field '%s'", d.Name)

	case UseOfUnassignedOutParameter:
		return fmt.Sprintf("Use of unassigned result '%s'", d.Name)

	case OutParameterNotAssignedAtExit:
		return fmt.Sprintf("Result '%s' is not assigned on every return", d.Name)

	case UnreachableCode:
		return "Unreachable code"

	case MissingReturnValue:
		return fmt.Sprintf("Missing return value in '%s'", d.Name)

	default:
		return fmt.Sprintf("%s '%s'", d.Kind, d.Name)
	}
}
