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
	"go/ast"
	"go/token"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fillmore-labs.com/flowguard/dataflow"
	"fillmore-labs.com/flowguard/tree"
)

var (
	errLocation = errors.New("invalid location")
	errNoRegion = errors.New("no statements in range")
)

var labelColor = color.New(color.FgCyan)

// location is a line range in a file.
type location struct {
	file     string
	from, to int
}

// parseLocation parses <file>:<line> and <file>:<line>-<line>.
func parseLocation(s string) (location, error) {
	i := strings.LastIndexByte(s, ':')
	if i <= 0 {
		return location{}, fmt.Errorf("%w %q: want <file>:<line>[-<line>]", errLocation, s)
	}

	file, lines := s[:i], s[i+1:]

	first, last, found := strings.Cut(lines, "-")

	from, err := strconv.Atoi(first)
	if err != nil || from <= 0 {
		return location{}, fmt.Errorf("%w %q: bad line %q", errLocation, s, first)
	}

	to := from
	if found {
		to, err = strconv.Atoi(last)
		if err != nil || to < from {
			return location{}, fmt.Errorf("%w %q: bad line %q", errLocation, s, last)
		}
	}

	return location{file: file, from: from, to: to}, nil
}

func newRegionCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "region <file>:<line>[-<line>] [packages]",
		Short: "Print the data flow of the statements in a line range",
		Long: `Print the variables flowing into and out of the statements in a line range,
the variables read and written inside and outside of them and their reachability`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := parseLocation(args[0])
			if err != nil {
				return err
			}

			return s.region(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), loc, args[1:])
		},
	}
}

func (s *settings) region(ctx context.Context, out, errOut io.Writer, loc location, patterns []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger := s.logger(errOut)

	if len(patterns) == 0 {
		dir := filepath.Dir(loc.file)
		if !filepath.IsAbs(dir) {
			dir = "./" + filepath.ToSlash(dir)
		}

		patterns = []string{dir}
	}

	pkgs, err := s.load(ctx, patterns)
	if err != nil {
		return err
	}

	fns, err := s.lower(ctx, logger, pkgs)
	if err != nil {
		return err
	}

	for _, f := range fns {
		fset := f.pkg.Fset

		if !sameFile(fset.Position(f.decl.Pos()).Filename, loc.file) {
			continue
		}

		first, last, ok := statements(fset, f.decl.Body, loc)
		if !ok {
			continue
		}

		tfirst, ok1 := f.lowered.Node(first)
		tlast, ok2 := f.lowered.Node(last)
		if !ok1 || !ok2 {
			continue
		}

		r, err := dataflow.AnalyzeRegion(ctx, f.lowered.Func, tfirst, tlast, s.options(logger)...)
		if err != nil {
			return err
		}

		printRegion(out, fset, f.decl.Name.Name, r)

		return nil
	}

	return fmt.Errorf("%w %s:%d-%d", errNoRegion, loc.file, loc.from, loc.to)
}

func sameFile(filename, file string) bool {
	if filename == file {
		return true
	}

	abs, err := filepath.Abs(file)

	return err == nil && filename == abs
}

// statements returns the first and last statement of the outermost statement
// list with statements inside the line range.
func statements(fset *token.FileSet, body *ast.BlockStmt, loc location) (first, last ast.Stmt, ok bool) {
	line := func(p token.Pos) int { return fset.Position(p).Line }

	inRange := func(s ast.Stmt) bool {
		return line(s.Pos()) >= loc.from && line(s.End()) <= loc.to
	}

	ast.Inspect(body, func(n ast.Node) bool {
		if ok {
			return false
		}

		var list []ast.Stmt
		switch n := n.(type) {
		case *ast.BlockStmt:
			list = n.List

		case *ast.CaseClause:
			list = n.Body

		case *ast.CommClause:
			list = n.Body

		default:
			return true
		}

		for _, s := range list {
			if !inRange(s) {
				if first != nil {
					break
				}

				continue
			}

			if first == nil {
				first = s
			}

			last = s
		}

		ok = first != nil

		return !ok
	})

	return first, last, ok
}

func printRegion(w io.Writer, fset *token.FileSet, name string, r dataflow.RegionResult) {
	fmt.Fprintf(w, "%s %s\n", labelColor.Sprint("Function:"), name)

	sets := [...]struct {
		label string
		set   dataflow.Set
	}{
		{"VariablesDeclared", r.VariablesDeclared},
		{"DataFlowsIn", r.DataFlowsIn},
		{"DataFlowsOut", r.DataFlowsOut},
		{"AlwaysAssigned", r.AlwaysAssigned},
		{"ReadInside", r.ReadInside},
		{"ReadOutside", r.ReadOutside},
		{"WrittenInside", r.WrittenInside},
		{"WrittenOutside", r.WrittenOutside},
		{"Captured", r.Captured},
		{"CapturedInside", r.CapturedInside},
		{"CapturedOutside", r.CapturedOutside},
		{"UnsafeAddressTaken", r.UnsafeAddressTaken},
	}

	for _, s := range sets {
		fmt.Fprintf(w, "%s %s\n", labelColor.Sprintf("%s:", s.label), s.set)
	}

	points := [...]struct {
		label string
		stmts []tree.Stmt
	}{
		{"EntryPoints", r.EntryPoints},
		{"ExitPoints", r.ExitPoints},
		{"ReturnStatements", r.ReturnStatements},
	}

	for _, p := range points {
		lines := make([]string, 0, len(p.stmts))
		for _, s := range p.stmts {
			lines = append(lines, strconv.Itoa(fset.Position(s.Pos()).Line))
		}

		fmt.Fprintf(w, "%s %s\n", labelColor.Sprintf("%s:", p.label), strings.Join(lines, ", "))
	}

	fmt.Fprintf(w, "%s %t\n", labelColor.Sprint("StartPointIsReachable:"), r.StartPointIsReachable)
	fmt.Fprintf(w, "%s %t\n", labelColor.Sprint("EndPointIsReachable:"), r.EndPointIsReachable)
}
