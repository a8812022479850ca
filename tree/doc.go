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

// Package tree defines the typed tree consumed by the flow analysis.
//
// A tree is produced by a front end after parsing and type checking: every
// name is resolved to a symbol ([Var], [Field], [Label], [Const], [Func]) and
// every expression carries its [Type]. The tree is read-only for the analysis.
//
// # Nodes
//
// Statements implement [Stmt], expressions [Expr] and patterns [Pattern]. All
// nodes embed a [Span] with the source range they cover. Spans are used for
// diagnostics and to decide whether a declaration lies inside a queried region,
// so nested nodes must have spans contained in their parent's span.
//
// # Types
//
// Only the shape of a type matters for the analysis: whether it is a value type
// with tracked fields, whether it can be null and, for integral and boolean
// types, which values it can take (see [Domain]).
package tree
