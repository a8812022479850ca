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

// Package report turns the trace of a flow analysis into findings.
package report

import (
	"cmp"
	"context"
	"fmt"
	"runtime/trace"
	"slices"

	"fillmore-labs.com/flowguard/internal/flow"
	"fillmore-labs.com/flowguard/tree"
)

// Diagnostic is a finding of the flow analysis.
type Diagnostic struct {
	Kind Kind
	Name string // variable, field, parameter or function name
	Span tree.Span
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s", d.Kind, d.Name)
}

// Collect returns the findings recorded in t, ordered by position.
func Collect(ctx context.Context, t *flow.Trace) []Diagnostic {
	defer trace.StartRegion(ctx, "report").End()

	var (
		diags []Diagnostic
		runs  = make(map[*tree.Func]bool) // the previous statement was unreachable
		dead  []tree.Span
	)

	for _, e := range t.Events {
		switch e.Kind {
		case flow.EventUnassigned:
			info := t.Slot(e.Slot)
			diags = append(diags, Diagnostic{Kind: unassignedKind(info), Name: info.Name, Span: spanOf(e.Node)})

		case flow.EventSection:
			runs[e.Func] = false

		case flow.EventStatement:
			if e.Reachable {
				runs[e.Func] = false

				continue
			}

			if runs[e.Func] || covered(dead, e.Node) {
				runs[e.Func] = true

				continue
			}

			runs[e.Func] = true
			span := spanOf(e.Node)
			dead = append(dead, span)
			diags = append(diags, Diagnostic{Kind: UnreachableCode, Span: span})

		case flow.EventOutUnassigned:
			info := t.Slot(e.Slot)
			diags = append(diags, Diagnostic{Kind: OutParameterNotAssignedAtExit, Name: info.Name, Span: spanOf(e.Node)})

		case flow.EventMissingReturn:
			name := ""
			if e.Func != nil {
				name = e.Func.Name
			}

			diags = append(diags, Diagnostic{Kind: MissingReturnValue, Name: name, Span: spanOf(e.Node)})
		}
	}

	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return cmp.Compare(a.Span.From, b.Span.From)
	})

	return diags
}

func unassignedKind(info *flow.SlotInfo) Kind {
	switch {
	case !info.IsRoot():
		return UseOfUnassignedField

	case info.Var.IsOut():
		return UseOfUnassignedOutParameter

	default:
		return UseOfUnassignedVariable
	}
}

func spanOf(n tree.Node) tree.Span {
	if n == nil {
		return tree.Span{}
	}

	return tree.Span{From: n.Pos(), To: n.End()}
}

func covered(spans []tree.Span, n tree.Node) bool {
	for _, s := range spans {
		if s.Contains(n) {
			return true
		}
	}

	return false
}
