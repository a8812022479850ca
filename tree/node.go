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

import "go/token"

// Node is any node of the typed tree.
type Node interface {
	Pos() token.Pos // position of first character belonging to the node
	End() token.Pos // position of first character immediately after the node
}

// Span is the source range of a node.
type Span struct {
	From, To token.Pos
}

// Pos implements [Node].
func (s Span) Pos() token.Pos { return s.From }

// End implements [Node].
func (s Span) End() token.Pos { return s.To }

// Contains reports whether n lies within s.
func (s Span) Contains(n Node) bool {
	return s.From <= n.Pos() && n.End() <= s.To
}

// SpanOf returns the span covering the nodes first through last.
func SpanOf(first, last Node) Span {
	return Span{first.Pos(), last.End()}
}

// Expr is an expression node.
type Expr interface {
	Node
	ExprType() *Type
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Pattern is a pattern node of is-expressions, switch labels and switch arms.
type Pattern interface {
	Node
	patternNode()
}

// Typed is embedded by all expressions.
type Typed struct {
	Span
	Type *Type
}

// ExprType returns the type of the expression.
func (t Typed) ExprType() *Type { return t.Type }
