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

package tree

import (
	"go/constant"
	"go/token"
)

type (
	// ConstPattern matches a constant; a nil Value matches null.
	ConstPattern struct {
		Span
		Value constant.Value
	}

	// RelPattern matches values in relation Op (<, <=, >, >=) to Value.
	RelPattern struct {
		Span
		Op    token.Token
		Value constant.Value
	}

	// TypePattern matches non-null values of Type.
	TypePattern struct {
		Span
		Type *Type
	}

	// DeclPattern matches non-null values of Type and binds them to Var.
	// A nil Var discards the value.
	DeclPattern struct {
		Span
		Type *Type
		Var  *Var
	}

	// VarPattern matches every value, including null, and binds it to Var.
	VarPattern struct {
		Span
		Var *Var
	}

	// DiscardPattern matches every value.
	DiscardPattern struct {
		Span
	}

	// NotPattern matches when Pattern does not.
	NotPattern struct {
		Span
		Pattern Pattern
	}

	// AndPattern matches when both X and Y match; Y is tested after X.
	AndPattern struct {
		Span
		X, Y Pattern
	}

	// OrPattern matches when X or Y matches; Y is tested when X fails.
	OrPattern struct {
		Span
		X, Y Pattern
	}

	// RecursivePattern matches non-null values whose fields match the
	// subpatterns and optionally binds the value to Var.
	RecursivePattern struct {
		Span
		Type  *Type
		Props []*Subpattern
		Var   *Var
	}
)

// Subpattern matches the value of a field.
type Subpattern struct {
	Span
	Field   *Field
	Pattern Pattern
}

func (*ConstPattern) patternNode()     {}
func (*RelPattern) patternNode()       {}
func (*TypePattern) patternNode()      {}
func (*DeclPattern) patternNode()      {}
func (*VarPattern) patternNode()       {}
func (*DiscardPattern) patternNode()   {}
func (*NotPattern) patternNode()       {}
func (*AndPattern) patternNode()       {}
func (*OrPattern) patternNode()        {}
func (*RecursivePattern) patternNode() {}
