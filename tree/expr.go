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
	// Literal is a constant literal. A nil Value is the null literal.
	Literal struct {
		Typed
		Value constant.Value
	}

	// ConstRef references a named constant.
	ConstRef struct {
		Typed
		Const *Const
	}

	// VarRef references a local variable or parameter.
	VarRef struct {
		Typed
		Var *Var
	}

	// FieldRef selects an instance field: X.Field.
	FieldRef struct {
		Typed
		X     Expr
		Field *Field
	}

	// FuncRef references a local function without invoking it.
	FuncRef struct {
		Typed
		Func *Func
	}

	// DeclExpr declares a variable in an expression context,
	// like out var x or var (a, b) = ... deconstruction.
	DeclExpr struct {
		Typed
		Var *Var
	}

	// Discard is the discard target _.
	Discard struct {
		Typed
	}

	// Unary is a prefix operation: !X, -X, +X or ^X.
	Unary struct {
		Typed
		Op token.Token
		X  Expr
	}

	// Binary is an infix operation. Op token.LAND and token.LOR short-circuit.
	Binary struct {
		Typed
		Op   token.Token
		X, Y Expr
	}

	// Coalesce is X ?? Y.
	Coalesce struct {
		Typed
		X, Y Expr
	}

	// CoalesceAssign is Target ??= Value.
	CoalesceAssign struct {
		Typed
		Target, Value Expr
	}

	// Conditional is Cond ? Then : Else.
	Conditional struct {
		Typed
		Cond, Then, Else Expr
	}

	// CondAccess is a null-conditional access Receiver?.Access. Access refers to
	// the evaluated receiver through a [CondReceiver].
	CondAccess struct {
		Typed
		Receiver, Access Expr
	}

	// CondReceiver is the placeholder for the receiver inside [CondAccess.Access].
	CondReceiver struct {
		Typed
	}

	// Call is a method, delegate or local function invocation.
	Call struct {
		Typed
		Receiver Expr    // nil for static calls
		ByRef    bool    // Receiver is passed by reference (mutating struct method)
		Method   *Method // nil when Callee is invoked
		Callee   Expr    // delegate or local function
		Args     []*Arg
	}

	// New is an object creation expression.
	New struct {
		Typed
		Args []*Arg
		Init []Expr
	}

	// Assign is Target = Value, or a compound assignment when Op is not token.ASSIGN.
	Assign struct {
		Typed
		Op            token.Token
		Target, Value Expr
	}

	// IncDec is Target++ or Target--.
	IncDec struct {
		Typed
		Op     token.Token
		Target Expr
	}

	// Deconstruct assigns the elements of Value to Targets.
	Deconstruct struct {
		Typed
		Targets []Expr
		Value   Expr
	}

	// Tuple is a tuple literal.
	Tuple struct {
		Typed
		Elems []Expr
	}

	// Is tests X against Pattern.
	Is struct {
		Typed
		X       Expr
		Pattern Pattern
	}

	// SwitchExpr is a switch expression. Falling off all arms throws.
	SwitchExpr struct {
		Typed
		Tag  Expr
		Arms []*Arm
	}

	// LambdaExpr is an anonymous function.
	LambdaExpr struct {
		Typed
		Func *Func
	}

	// Conv converts X to the expression type.
	Conv struct {
		Typed
		X     Expr
		Kind  ConvKind
		Param *Type // parameter type of a user-defined conversion operator
	}

	// ThrowExpr is a throw expression.
	ThrowExpr struct {
		Typed
		Value Expr
	}

	// AddressOf takes the address of a variable: &X.
	AddressOf struct {
		Typed
		X Expr
	}

	// Operation is any other expression evaluating its operands from left to right.
	Operation struct {
		Typed
		Operands []Expr
	}
)

// Arg is a call argument.
type Arg struct {
	Span
	Ref   RefKind
	Value Expr
}

// Arm is an arm of a switch expression.
type Arm struct {
	Span
	Pattern Pattern
	Guard   Expr
	Value   Expr
}

// ConvKind classifies conversions.
type ConvKind uint8

const (
	// ConvIdentity does not change the value.
	ConvIdentity ConvKind = iota

	// ConvBuiltin is a predefined conversion that maps null to null and non-null to non-null,
	// like nullable wrapping, reference and boxing conversions.
	ConvBuiltin

	// ConvUserDefined invokes a user-defined conversion operator with parameter type [Conv.Param].
	ConvUserDefined

	// ConvOther is any other conversion.
	ConvOther
)

func (*Literal) exprNode()        {}
func (*ConstRef) exprNode()       {}
func (*VarRef) exprNode()         {}
func (*FieldRef) exprNode()       {}
func (*FuncRef) exprNode()        {}
func (*DeclExpr) exprNode()       {}
func (*Discard) exprNode()        {}
func (*Unary) exprNode()          {}
func (*Binary) exprNode()         {}
func (*Coalesce) exprNode()       {}
func (*CoalesceAssign) exprNode() {}
func (*Conditional) exprNode()    {}
func (*CondAccess) exprNode()     {}
func (*CondReceiver) exprNode()   {}
func (*Call) exprNode()           {}
func (*New) exprNode()            {}
func (*Assign) exprNode()         {}
func (*IncDec) exprNode()         {}
func (*Deconstruct) exprNode()    {}
func (*Tuple) exprNode()          {}
func (*Is) exprNode()             {}
func (*SwitchExpr) exprNode()     {}
func (*LambdaExpr) exprNode()     {}
func (*Conv) exprNode()           {}
func (*ThrowExpr) exprNode()      {}
func (*AddressOf) exprNode()      {}
func (*Operation) exprNode()      {}
