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

package golower_test

import (
	"go/token"
	"go/types"
	"testing"

	. "fillmore-labs.com/flowguard/internal/golower"
)

func TestFuncNameOf(t *testing.T) {
	t.Parallel()

	pkg := types.NewPackage("example.com/logging", "logging")

	empty := types.NewStruct(nil, nil)
	logger := types.NewNamed(types.NewTypeName(token.NoPos, pkg, "Logger", nil), empty, nil)
	alias := types.NewAlias(types.NewTypeName(token.NoPos, pkg, "Log", nil), types.NewPointer(logger))

	fn := func(pkg *types.Package, recv types.Type) *types.Func {
		var r *types.Var
		if recv != nil {
			r = types.NewParam(token.NoPos, pkg, "", recv)
		}

		sig := types.NewSignatureType(r, nil, nil, nil, nil, false)

		return types.NewFunc(token.NoPos, pkg, "Fatal", sig)
	}

	iface := types.NewInterfaceType([]*types.Func{fn(pkg, nil)}, nil).Complete()
	errorType := types.Universe.Lookup("error").Type().Underlying().(*types.Interface)

	tests := [...]struct {
		name string
		fun  *types.Func
		want string
	}{
		{"function", fn(pkg, nil), "example.com/logging.Fatal"},
		{"value receiver", fn(pkg, logger), "(example.com/logging.Logger).Fatal"},
		{"pointer receiver", fn(pkg, types.NewPointer(logger)), "(example.com/logging.Logger).Fatal"},
		{"alias receiver", fn(pkg, alias), "(example.com/logging.Logger).Fatal"},
		{"interface method", iface.Method(0), "(interface).Fatal"},
		{"no package", fn(nil, nil), "Fatal"},
		{"universe method", errorType.Method(0), "(error).Error"},
		{"unnamed receiver", fn(pkg, empty), "(<invalid>).Fatal"},
		{"unnamed pointer receiver", fn(pkg, types.NewPointer(empty)), "(<invalid>).Fatal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FuncNameOf(tt.fun).String(); got != tt.want {
				t.Errorf("FuncNameOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFuncNameString(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name FuncName
		want string
	}{
		{FuncName{Name: "f"}, "f"},
		{FuncName{Path: "os", Name: "Exit"}, "os.Exit"},
		{FuncName{Receiver: "error", Name: "Error"}, "(error).Error"},
		{FuncName{Path: "log", Receiver: "Logger", Name: "Fatal"}, "(log.Logger).Fatal"},
	}

	for _, tt := range tests {
		if got := tt.name.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.name, got, tt.want)
		}
	}
}
