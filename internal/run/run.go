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

// Package run drives the flowguard pipeline over the files of an analysis pass.
package run

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/flowguard/dataflow"
	"fillmore-labs.com/flowguard/internal/astutil"
	"fillmore-labs.com/flowguard/internal/config"
	"fillmore-labs.com/flowguard/internal/golower"
	"fillmore-labs.com/flowguard/internal/report"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a configuration error where the analyzer's
// Requires field is not properly set.
var ErrResultMissing = errors.New("analyzer result missing")

// Run executes the flowguard analyzer's pipeline.
func (r *Options) Run(p *analysis.Pass) (any, error) {
	// Retrieves the [inspector.Inspector] from the pass results.
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("flowguard: %s %w", inspect.Analyzer.Name, ErrResultMissing)
	}

	if r.Checks.Empty() {
		return nil, nil
	}

	ctx := context.Background()

	ctx, task := trace.NewTask(ctx, "FlowGuard")
	defer task.End()

	trace.Log(ctx, "package", p.Pkg.Path())

	lowerer := &golower.Lowerer{
		Info:               p.TypesInfo,
		ConstantConditions: r.Behavior.Enabled(config.ConstantConditions),
	}

	var opts []dataflow.Option
	if r.Behavior.Enabled(config.AnalyzeUnreachable) {
		opts = append(opts, dataflow.WithAnalyzeUnreachable(true))
	}

	// Loop over all files
	for f := range in.Root().Children() {
		file := f.Node().(*ast.File)

		currentFile := astutil.NewCurrentFile(p.Fset, file)
		if !currentFile.Valid() {
			astutil.InternalError(p, file, "File %s without valid info", file.Name.Name)

			continue
		}

		// Skip generated files
		if currentFile.Generated() && !r.Behavior.Enabled(config.IncludeGenerated) {
			continue
		}

		// Skip files with nolint comment
		if astutil.DocHasNoLint(file.Doc) {
			continue
		}

		// Loop over all function and method declarations in this file
		for c := range f.Preorder((*ast.FuncDecl)(nil)) {
			fun := c.Node().(*ast.FuncDecl)

			if fun.Body == nil || astutil.DocHasNoLint(fun.Doc) {
				continue
			}

			// Stage 1: Lower the body to the typed tree
			lowered, err := lowerer.Func(ctx, fun)
			if err != nil {
				astutil.FuncError(p, fun, err)

				continue
			}

			// Stage 2: Definite assignment and reachability
			diags, err := dataflow.AnalyzeDiagnostics(ctx, lowered.Func, opts...)
			if err != nil {
				astutil.FuncError(p, fun, err)

				continue
			}

			// Stage 3: Report findings
			report.Emit(ctx, p, currentFile, diags, r.Checks)
		}
	}

	return nil, nil
}
