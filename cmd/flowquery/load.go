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
	"log/slog"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"

	"fillmore-labs.com/flowguard/internal/golower"
)

var errLoad = errors.New("package errors")

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo

// function is a lowered function declaration.
type function struct {
	pkg     *packages.Package
	decl    *ast.FuncDecl
	lowered *golower.Lowered
}

func (s *settings) load(ctx context.Context, patterns []string) ([]*packages.Package, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	cfg := &packages.Config{Context: ctx, Mode: loadMode, Tests: s.tests}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading %v: %w", patterns, err)
	}

	if n := packages.PrintErrors(pkgs); n > 0 {
		return nil, fmt.Errorf("%w: %d", errLoad, n)
	}

	return pkgs, nil
}

// lower lowers the function declarations of all packages, one package per worker.
// Functions failing to lower are logged and skipped.
func (s *settings) lower(ctx context.Context, logger *slog.Logger, pkgs []*packages.Package) ([]function, error) {
	perPkg := make([][]function, len(pkgs))

	g, ctx := errgroup.WithContext(ctx)
	if s.jobs > 0 {
		g.SetLimit(s.jobs)
	}

	for i, pkg := range pkgs {
		g.Go(func() error {
			l := &golower.Lowerer{Info: pkg.TypesInfo, ConstantConditions: s.constantConditions}

			for _, file := range pkg.Syntax {
				for _, d := range file.Decls {
					decl, ok := d.(*ast.FuncDecl)
					if !ok || decl.Body == nil {
						continue
					}

					if err := ctx.Err(); err != nil {
						return err
					}

					lowered, err := l.Func(ctx, decl)
					if err != nil {
						logger.LogAttrs(ctx, slog.LevelWarn, "skipping function",
							slog.String("pos", pkg.Fset.Position(decl.Pos()).String()), slog.Any("error", err))

						continue
					}

					perPkg[i] = append(perPkg[i], function{pkg: pkg, decl: decl, lowered: lowered})
				}
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var fns []function
	for _, p := range perPkg {
		fns = append(fns, p...)
	}

	return fns, nil
}
