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

package astutil

import (
	"fmt"
	"go/ast"

	"golang.org/x/tools/go/analysis"
)

// InternalCategory is the category of diagnostics about failures of the analyzer itself.
const InternalCategory = "internal"

// InternalError reports a condition the analyzer does not expect in type checked code.
func InternalError(p *analysis.Pass, rng analysis.Range, format string, args ...any) {
	internal(p, rng, fmt.Sprintf(format, args...))
}

// FuncError reports that the body of fun could not be analyzed.
func FuncError(p *analysis.Pass, fun *ast.FuncDecl, err error) {
	internal(p, fun.Name, fmt.Sprintf("analyzing %s: %v", fun.Name.Name, err))
}

func internal(p *analysis.Pass, rng analysis.Range, msg string) {
	p.Report(analysis.Diagnostic{
		Pos:      rng.Pos(),
		End:      rng.End(),
		Category: InternalCategory,
		Message:  "Internal Error: " + msg,
	})
}
