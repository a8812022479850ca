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

package dataflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/trace"

	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/flowguard/internal/flow"
	"fillmore-labs.com/flowguard/internal/region"
	"fillmore-labs.com/flowguard/internal/report"
	"fillmore-labs.com/flowguard/tree"
)

var (
	// ErrMalformedTree is returned for trees a type checker would not produce,
	// like a variable used before its declaration or a goto without label.
	ErrMalformedTree = flow.ErrMalformedTree

	// ErrNoConvergence is returned when the states at labels and loops do not
	// stabilize within the bound given by the lattice height.
	ErrNoConvergence = flow.ErrNoConvergence

	// ErrRegionNotFound is returned when the first node of a region is not
	// part of the analyzed function.
	ErrRegionNotFound = errors.New("region not found")
)

type (
	// Diagnostic is a finding.
	Diagnostic = report.Diagnostic

	// Kind classifies a [Diagnostic].
	Kind = report.Kind

	// RegionResult is the data and control flow of a region.
	RegionResult = region.Result

	// Set is a set of variables in declaration order.
	Set = region.Set
)

// Kinds of findings.
const (
	UseOfUnassignedVariable       = report.UseOfUnassignedVariable
	UseOfUnassignedField          = report.UseOfUnassignedField
	UseOfUnassignedOutParameter   = report.UseOfUnassignedOutParameter
	OutParameterNotAssignedAtExit = report.OutParameterNotAssignedAtExit
	UnreachableCode               = report.UnreachableCode
	MissingReturnValue            = report.MissingReturnValue
)

// AnalyzeDiagnostics checks fn and returns its findings ordered by position.
func AnalyzeDiagnostics(ctx context.Context, fn *tree.Func, opts ...Option) ([]Diagnostic, error) {
	o := makeOptions(opts)

	diags, _, err := analyze(ctx, fn, o)

	return diags, err
}

func analyze(ctx context.Context, fn *tree.Func, o options) ([]Diagnostic, int, error) {
	if fn == nil {
		return nil, 0, fmt.Errorf("%w: nil function", ErrMalformedTree)
	}

	t := flow.Analyze(ctx, fn, flow.Options{AnalyzeUnreachable: o.analyzeUnreachable})
	diags := report.Collect(ctx, t)

	if o.logger != nil {
		o.logger.LogAttrs(ctx, slog.LevelDebug, "analyzed",
			slog.String("func", fn.Name), slog.Int("passes", t.Passes), slog.Int("findings", len(diags)))
	}

	return diags, t.Passes, traceError(fn, t)
}

// AnalyzeRegion returns the data and control flow of the region from first
// to last in fn. A nil last is the single node first: a statement or an
// expression.
func AnalyzeRegion(ctx context.Context, fn *tree.Func, first, last tree.Node, opts ...Option) (RegionResult, error) {
	if fn == nil || first == nil {
		return RegionResult{}, fmt.Errorf("%w: missing function or region", ErrMalformedTree)
	}

	o := makeOptions(opts)

	t := flow.Analyze(ctx, fn, flow.Options{AnalyzeUnreachable: o.analyzeUnreachable, First: first, Last: last})
	r := region.Compute(ctx, t)

	if err := traceError(fn, t); err != nil {
		return r, err
	}

	if !r.Succeeded {
		return r, fmt.Errorf("%w in %s", ErrRegionNotFound, fn.Name)
	}

	if o.logger != nil {
		o.logger.LogAttrs(ctx, slog.LevelDebug, "region analyzed",
			slog.String("func", fn.Name), slog.Int("passes", t.Passes))
	}

	return r, nil
}

// Result are the findings for one function of [AnalyzeAll].
type Result struct {
	Func        *tree.Func
	Diagnostics []Diagnostic
	Passes      int
}

// AnalyzeAll checks the functions concurrently and returns their results in
// the order of fns. The first error stops the remaining analyses.
func AnalyzeAll(ctx context.Context, fns []*tree.Func, opts ...Option) ([]Result, error) {
	ctx, task := trace.NewTask(ctx, "flowguard")
	defer task.End()

	o := makeOptions(opts)

	results := make([]Result, len(fns))

	g, ctx := errgroup.WithContext(ctx)
	if o.concurrency > 0 {
		g.SetLimit(o.concurrency)
	}

	for i, fn := range fns {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			diags, passes, err := analyze(ctx, fn, o)
			results[i] = Result{Func: fn, Diagnostics: diags, Passes: passes}

			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}

	return results, nil
}

func traceError(fn *tree.Func, t *flow.Trace) error {
	if len(t.Errors) == 0 {
		return nil
	}

	return fmt.Errorf("flowguard: %s: %w", fn.Name, errors.Join(t.Errors...))
}
