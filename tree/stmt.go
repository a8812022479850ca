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

type (
	// Block is a statement list with its own scope.
	Block struct {
		Span
		Stmts []Stmt
	}

	// Declare declares a local variable with an optional initializer.
	Declare struct {
		Span
		Var  *Var
		Init Expr
	}

	// ExprStmt evaluates an expression for its side effects.
	ExprStmt struct {
		Span
		X Expr
	}

	// If is a conditional statement; Else may be nil.
	If struct {
		Span
		Cond       Expr
		Then, Else Stmt
	}

	// While tests Cond before each iteration.
	While struct {
		Span
		Cond Expr
		Body Stmt
	}

	// DoWhile tests Cond after each iteration.
	DoWhile struct {
		Span
		Body Stmt
		Cond Expr
	}

	// For is a three-clause loop; a nil Cond loops until a branch leaves it.
	For struct {
		Span
		Init []Stmt
		Cond Expr
		Step []Stmt
		Body Stmt
	}

	// ForEach assigns each element of Collection to Targets, which are
	// [DeclExpr] for iteration variables or assignable expressions.
	ForEach struct {
		Span
		Targets    []Expr
		Collection Expr
		Body       Stmt
	}

	// Switch is a switch statement over Tag.
	Switch struct {
		Span
		Tag      Expr
		Sections []*Section
	}

	// Break leaves the innermost loop or switch, or the one labeled Label.
	Break struct {
		Span
		Label *Label
	}

	// Continue starts the next iteration of the innermost loop, or the one labeled Label.
	Continue struct {
		Span
		Label *Label
	}

	// Goto jumps to Label.
	Goto struct {
		Span
		Label *Label
	}

	// Labeled is a labeled statement.
	Labeled struct {
		Span
		Label *Label
		Stmt  Stmt
	}

	// Return leaves the function; Value may be nil.
	Return struct {
		Span
		Value Expr
	}

	// Throw raises Value; a nil Value rethrows the current exception.
	Throw struct {
		Span
		Value Expr
	}

	// Try is a try statement with optional catch clauses and finally block.
	Try struct {
		Span
		Body    *Block
		Catches []*Catch
		Finally *Block
	}

	// LocalFunc declares a local function.
	LocalFunc struct {
		Span
		Func *Func
	}

	// Empty is the empty statement.
	Empty struct {
		Span
	}
)

// Section is a switch section. Sections share the scope of the switch.
type Section struct {
	Span
	Labels []*CaseLabel
	Body   []Stmt
}

// CaseLabel is a case label; a nil Pattern is the default label.
type CaseLabel struct {
	Span
	Pattern Pattern
	Guard   Expr
}

// Catch is a catch clause; Var and Filter are optional.
type Catch struct {
	Span
	Var    *Var
	Filter Expr
	Body   *Block
}

func (*Block) stmtNode()     {}
func (*Declare) stmtNode()   {}
func (*ExprStmt) stmtNode()  {}
func (*If) stmtNode()        {}
func (*While) stmtNode()     {}
func (*DoWhile) stmtNode()   {}
func (*For) stmtNode()       {}
func (*ForEach) stmtNode()   {}
func (*Switch) stmtNode()    {}
func (*Break) stmtNode()     {}
func (*Continue) stmtNode()  {}
func (*Goto) stmtNode()      {}
func (*Labeled) stmtNode()   {}
func (*Return) stmtNode()    {}
func (*Throw) stmtNode()     {}
func (*Try) stmtNode()       {}
func (*LocalFunc) stmtNode() {}
func (*Empty) stmtNode()     {}
