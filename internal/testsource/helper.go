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

// Package testsource provides utilities for parsing and type checking Go source code in tests.
//
// It handles the boilerplate of building a package `test` from a source fragment,
// so tests of the Go front end can state just the declarations they exercise.
package testsource

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"

	"golang.org/x/tools/go/ast/inspector"
)

const testpkg = "test"

// Package is a parsed and type-checked test package with a single file.
type Package struct {
	Fset  *token.FileSet
	File  *ast.File
	Types *types.Package
	Info  *types.Info
}

// Load parses and type checks the declarations in src.
// The source is prefixed with the package clause `package test`.
func Load(tb testing.TB, src string) *Package {
	tb.Helper()

	fset, f := Parse(tb, src)
	pkg, info := Check(tb, fset, f)

	return &Package{Fset: fset, File: f, Types: pkg, Info: info}
}

// Body loads a function `func _() { ... }` around the statements in src.
// Parameters of the function are declared in params, e.g. "x int, ok bool".
func Body(tb testing.TB, params, src string) (*Package, *ast.FuncDecl) {
	tb.Helper()

	var b strings.Builder
	b.WriteString("func _(")
	b.WriteString(params)
	b.WriteString(") {\n")
	b.WriteString(src)
	b.WriteString("\n}\n")

	p := Load(tb, b.String())

	return p, p.Func(tb, "_")
}

// Parse parses the declarations in src into an AST.
//
// Call [Check] on the result when type information is needed.
func Parse(tb testing.TB, src string) (*token.FileSet, *ast.File) {
	tb.Helper()

	const filename = "test.go"

	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, filename, "package "+testpkg+"\n\n"+src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", src, err)
	}

	return fset, f
}

// Check performs type checking on the provided AST file.
// It creates and returns a fully type-checked *types.Package and *types.Info.
func Check(tb testing.TB, fset *token.FileSet, f *ast.File) (*types.Package, *types.Info) {
	tb.Helper()

	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Implicits:  make(map[ast.Node]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Scopes:     make(map[ast.Node]*types.Scope),
	}

	conf := types.Config{Importer: importer.Default()}

	pkg, err := conf.Check(testpkg, fset, []*ast.File{f}, info)
	if err != nil {
		tb.Fatalf("failed to type Check source: %v", err)
	}

	return pkg, info
}

// Func returns the declaration of the function name.
func (p *Package) Func(tb testing.TB, name string) *ast.FuncDecl {
	tb.Helper()

	root := inspector.New([]*ast.File{p.File}).Root()
	for c := range root.Preorder((*ast.FuncDecl)(nil)) {
		if fn := c.Node().(*ast.FuncDecl); fn.Name.Name == name {
			return fn
		}
	}

	tb.Fatalf("Can't find function %s", name)

	return nil
}

// Line returns the line of pos.
func (p *Package) Line(pos token.Pos) int {
	return p.Fset.Position(pos).Line
}
