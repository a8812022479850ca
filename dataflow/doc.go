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

// Package dataflow checks definite assignment and reachability of typed
// function bodies and answers data flow queries over regions of them.
//
// The input is a [tree.Func] produced by a front end. [AnalyzeDiagnostics]
// reports reads of unassigned variables, unreachable code, out parameters not
// assigned at exit and missing return values. [AnalyzeRegion] describes how
// data flows into, through and out of a range of statements or an expression.
//
// Analyses share no mutable state, so independent functions can be analyzed
// concurrently; [AnalyzeAll] does so with bounded parallelism.
package dataflow
