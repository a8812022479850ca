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

// VarKind tells how a [Var] was introduced.
type VarKind uint8

const (
	LocalVar VarKind = iota
	ParamVar
	PatternVar
	IterationVar
	CatchVar
	ResultVar // Named result of a Go function.
)

// RefKind is the passing mode of a parameter or an argument.
type RefKind uint8

const (
	RefNone RefKind = iota
	RefRef
	RefOut
	RefIn
)

// Var is a local variable, parameter or pattern binding. Each lexical
// declaration has its own *Var, so shadowing variables are distinct.
type Var struct {
	Name string
	Type *Type
	Kind VarKind
	Ref  RefKind   // Passing mode of parameters.
	Decl token.Pos // Position of the declaring identifier.
}

// IsOut reports whether v is an out parameter or a named result.
func (v *Var) IsOut() bool {
	return v.Kind == ParamVar && v.Ref == RefOut || v.Kind == ResultVar
}

func (v *Var) String() string { return v.Name }

// Field is an instance field of a struct type. A positional tuple element and
// its named alias share the same Index and are the same field for the analysis.
type Field struct {
	Name  string
	Type  *Type
	Index int
}

// Label is the target of goto, labeled break and labeled continue statements.
type Label struct {
	Name string
	Decl token.Pos
}

// Const is a named constant.
type Const struct {
	Name  string
	Type  *Type
	Value constant.Value
}

// FuncKind distinguishes members from nested functions.
type FuncKind uint8

const (
	// Member is a top-level method, constructor or accessor body.
	Member FuncKind = iota

	// LocalFunction is a named function declared in a body.
	LocalFunction

	// Lambda is an anonymous function expression.
	Lambda
)

// Func is a function body: a member or a nested local function or lambda.
type Func struct {
	Span

	Name   string
	Kind   FuncKind
	Params []*Var
	Result *Type

	// Results are named result variables, assigned by returns with values.
	// Results not of kind [ResultVar] start assigned.
	Results []*Var

	// Body is the block body. Lambdas with an expression body set Expr instead.
	Body *Block
	Expr Expr
}

// Method is the target of a call.
type Method struct {
	Name   string
	Params []*Var
	Result *Type
}
