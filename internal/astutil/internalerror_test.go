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
	"errors"
	"testing"

	"golang.org/x/tools/go/analysis"

	. "fillmore-labs.com/flowguard/internal/astutil"
	"fillmore-labs.com/flowguard/internal/testsource"
)

func TestFuncError(t *testing.T) {
	t.Parallel()

	p := testsource.Load(t, "func f() {}")
	fn := p.Func(t, "f")

	var got []analysis.Diagnostic

	pass := &analysis.Pass{Report: func(d analysis.Diagnostic) { got = append(got, d) }}

	FuncError(pass, fn, errors.New("broken"))
	InternalError(pass, p.File, "File %s", p.File.Name.Name)

	if len(got) != 2 {
		t.Fatalf("Got %d diagnostics, want 2", len(got))
	}

	if want := "Internal Error: analyzing f: broken"; got[0].Message != want {
		t.Errorf("Got %q, want %q", got[0].Message, want)
	}

	if got[0].Pos != fn.Name.Pos() || got[0].Category != InternalCategory {
		t.Errorf("Got position %v category %q, want function name", got[0].Pos, got[0].Category)
	}

	if want := "Internal Error: File test"; got[1].Message != want {
		t.Errorf("Got %q, want %q", got[1].Message, want)
	}
}
