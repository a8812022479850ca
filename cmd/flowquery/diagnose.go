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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fillmore-labs.com/flowguard/dataflow"
	"fillmore-labs.com/flowguard/internal/report"
	"fillmore-labs.com/flowguard/tree"
)

// errFindings is returned when diagnose found something, to set the exit status.
var errFindings = errors.New("findings reported")

var (
	positionColor = color.New(color.Bold)
	codeColor     = color.New(color.FgYellow)
	passesColor   = color.New(color.Faint)
)

func newDiagnoseCmd(s *settings) *cobra.Command {
	var passes bool

	cmd := &cobra.Command{
		Use:   "diagnose [packages]",
		Short: "Print definite assignment and reachability findings",
		Long:  `Print reads of unassigned variables, unreachable code and results not assigned on every return`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.diagnose(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args, passes)
		},
	}

	cmd.Flags().BoolVar(&passes, "passes", false, "print the number of passes per function")

	return cmd
}

func (s *settings) diagnose(ctx context.Context, out, errOut io.Writer, patterns []string, passes bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger := s.logger(errOut)

	pkgs, err := s.load(ctx, patterns)
	if err != nil {
		return err
	}

	fns, err := s.lower(ctx, logger, pkgs)
	if err != nil {
		return err
	}

	trees := make([]*tree.Func, 0, len(fns))
	for _, f := range fns {
		trees = append(trees, f.lowered.Func)
	}

	results, err := dataflow.AnalyzeAll(ctx, trees, s.options(logger)...)
	if err != nil {
		return err
	}

	found := 0

	for i, r := range results {
		fset := fns[i].pkg.Fset

		if passes {
			pos := fset.Position(fns[i].decl.Pos())
			fmt.Fprintf(out, "%s: %s %s\n", positionColor.Sprint(pos), r.Func.Name, passesColor.Sprintf("(%d passes)", r.Passes))
		}

		for _, d := range r.Diagnostics {
			found++

			fmt.Fprintf(out, "%s: %s %s\n", positionColor.Sprint(fset.Position(d.Span.From)),
				report.Text(d), codeColor.Sprintf("[%s]", d.Kind.Code()))
		}
	}

	if found > 0 {
		return fmt.Errorf("%w: %d", errFindings, found)
	}

	return nil
}
