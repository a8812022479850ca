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

package golower

import (
	"go/ast"
	"go/types"
)

// FuncName identifies a function or method by package path, receiver type name and name.
type FuncName struct {
	Path, Receiver, Name string
}

func (f FuncName) String() string {
	switch {
	case f.Receiver == "" && f.Path == "":
		return f.Name

	case f.Receiver == "":
		return f.Path + "." + f.Name

	case f.Path == "":
		return "(" + f.Receiver + ")." + f.Name

	default:
		return "(" + f.Path + "." + f.Receiver + ")." + f.Name
	}
}

// FuncNameOf returns the name of fun. Methods are named by their receiver base type.
func FuncNameOf(fun *types.Func) FuncName {
	var path string
	if pkg := fun.Pkg(); pkg != nil {
		path = pkg.Path()
	}

	recv := fun.Signature().Recv()
	if recv == nil {
		return FuncName{Path: path, Name: fun.Name()}
	}

	t := types.Unalias(recv.Type())
	if p, ok := t.(*types.Pointer); ok {
		t = types.Unalias(p.Elem())
	}

	switch t := t.(type) {
	case *types.Named:
		obj := t.Obj()

		var rpath string
		if pkg := obj.Pkg(); pkg != nil {
			rpath = pkg.Path()
		}

		return FuncName{Path: rpath, Receiver: obj.Name(), Name: fun.Name()}

	case *types.Interface:
		return FuncName{Receiver: "interface", Name: fun.Name()}

	default:
		return FuncName{Receiver: "<invalid>", Name: fun.Name()}
	}
}

// noReturn are functions that do not return.
var noReturn = func() map[FuncName]struct{} {
	var (
		fatal   = []string{"Fatal", "Fatalf", "Fatalln"}
		panics  = []string{"Panic", "Panicf", "Panicln"}
		failNow = []string{"Fatal", "Fatalf", "FailNow", "Skip", "Skipf", "SkipNow"}
		klog    = []string{"Exit", "ExitDepth", "Exitf", "Exitln", "Fatal", "FatalDepth", "Fatalf", "Fatalln"}
	)

	groups := [...]struct {
		path, receiver string
		names          [][]string
	}{
		{"log", "", [][]string{fatal, panics}},
		{"log", "Logger", [][]string{fatal, panics}},
		{"os", "", [][]string{{"Exit"}}},
		{"syscall", "", [][]string{{"Exit"}}},
		{"runtime", "", [][]string{{"Goexit"}}},
		{"testing", "common", [][]string{failNow}},
		{"testing", "TB", [][]string{failNow}},
		{"github.com/sirupsen/logrus", "Entry", [][]string{panics}},
		{"github.com/sirupsen/logrus", "Logger", [][]string{{"Exit"}, panics}},
		{"go.uber.org/zap", "Logger", [][]string{{"Fatal", "Panic"}}},
		{"go.uber.org/zap", "SugaredLogger", [][]string{fatal, panics, {"Fatalw", "Panicw"}}},
		{"k8s.io/klog", "", [][]string{klog}},
		{"k8s.io/klog/v2", "", [][]string{klog}},
	}

	m := make(map[FuncName]struct{})

	for _, g := range groups {
		for _, names := range g.names {
			for _, name := range names {
				m[FuncName{Path: g.path, Receiver: g.receiver, Name: name}] = struct{}{}
			}
		}
	}

	return m
}()

// NoReturn reports whether the call never returns: the builtin panic or a
// known exit or fatal logging function.
func NoReturn(info *types.Info, call *ast.CallExpr) bool {
	fun := ast.Unparen(call.Fun)

	for {
		switch e := fun.(type) {
		case *ast.IndexExpr:
			fun = ast.Unparen(e.X)
			continue

		case *ast.IndexListExpr:
			fun = ast.Unparen(e.X)
			continue

		case *ast.Ident:
			return noReturnFunc(info, e)

		case *ast.SelectorExpr:
			return noReturnFunc(info, e.Sel)
		}

		return false
	}
}

func noReturnFunc(info *types.Info, id *ast.Ident) bool {
	switch use := info.Uses[id].(type) {
	case *types.Func:
		_, ok := noReturn[FuncNameOf(use)]

		return ok

	case *types.Builtin:
		return use == builtinPanic

	default:
		return false
	}
}

var builtinPanic = types.Universe.Lookup("panic").(*types.Builtin)
