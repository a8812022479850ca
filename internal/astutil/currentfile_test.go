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

package astutil_test

import (
	"go/ast"
	"testing"

	. "fillmore-labs.com/flowguard/internal/astutil"
	"fillmore-labs.com/flowguard/internal/testsource"
)

func TestCommentHasNoLint(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		text string
		want bool
	}{
		{"//nolint:flowguard", true},
		{"// nolint:errcheck,flowguard", true},
		{"//nolint:all", true},
		{"//nolint:FlowGuard // reason", true},
		{"//nolint:errcheck", false},
		{"// flowguard", false},
	}

	for _, tt := range tests {
		if got := CommentHasNoLint(&ast.Comment{Text: tt.text}); got != tt.want {
			t.Errorf("CommentHasNoLint(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestCurrentFile(t *testing.T) {
	t.Parallel()

	p := testsource.Load(t, `//nolint:flowguard
func f() {
	var x int //nolint:flowguard
	println(x)
}`)

	c := NewCurrentFile(p.Fset, p.File)

	if !c.Valid() || c.Generated() {
		t.Fatalf("Got valid=%v generated=%v, want valid, not generated", c.Valid(), c.Generated())
	}

	fn := p.Func(t, "f")

	if !DocHasNoLint(fn.Doc) {
		t.Error("Expected nolint on function doc")
	}

	if decl := fn.Body.List[0]; !c.NoLintComment(decl.Pos()) {
		t.Error("Expected nolint on declaration line")
	}

	if use := fn.Body.List[1]; c.NoLintComment(use.Pos()) {
		t.Error("Unexpected nolint on use line")
	}
}
