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
	"go/ast"
	"go/token"
	"regexp"
	"slices"
	"strings"
)

// flowguard is the name of the linter.
const flowguard = "flowguard"

// CurrentFile holds the per-file state of a run.
type CurrentFile struct {
	handle    *token.File
	generated bool
	nolint    []int // lines with a //nolint:flowguard comment, ascending
}

// NewCurrentFile creates a new [CurrentFile] from a [token.FileSet] and an *[ast.File].
func NewCurrentFile(fset *token.FileSet, file *ast.File) CurrentFile {
	if file == nil {
		return CurrentFile{}
	}

	handle := fset.File(file.FileStart)
	if handle == nil {
		return CurrentFile{}
	}

	c := CurrentFile{handle: handle, generated: ast.IsGenerated(file)}

	for _, group := range file.Comments {
		for _, comment := range group.List {
			if !CommentHasNoLint(comment) {
				continue
			}

			if l := c.line(comment.Pos()); len(c.nolint) == 0 || c.nolint[len(c.nolint)-1] != l {
				c.nolint = append(c.nolint, l)
			}
		}
	}

	return c
}

// Valid returns true if the [CurrentFile] was successfully created
// from a valid file handle.
func (c CurrentFile) Valid() bool {
	return c.handle != nil
}

// Generated returns true if the file is a generated file.
func (c CurrentFile) Generated() bool {
	return c.generated
}

func (c CurrentFile) line(pos token.Pos) int {
	return c.handle.PositionFor(pos, false).Line
}

// NoLintComment reports whether the line of pos carries a //nolint:flowguard comment.
func (c CurrentFile) NoLintComment(pos token.Pos) bool {
	if c.handle == nil || !pos.IsValid() {
		return false
	}

	_, found := slices.BinarySearch(c.nolint, c.line(pos))

	return found
}

var nolintPattern = regexp.MustCompile(`^//\s*nolint:([a-zA-Z0-9,_-]+)`)

// CommentHasNoLint checks if the provided comment contains a `//nolint:flowguard` directive.
func CommentHasNoLint(comment *ast.Comment) bool {
	matches := nolintPattern.FindStringSubmatch(comment.Text)
	if matches == nil {
		return false
	}

	// Parse comma-separated linter list
	for linter := range strings.SplitSeq(matches[1], ",") {
		if l := strings.ToLower(strings.TrimSpace(linter)); l == flowguard || l == "all" {
			return true
		}
	}

	return false
}

// DocHasNoLint checks if the last line of a doc comment is a `//nolint:flowguard` directive.
func DocHasNoLint(doc *ast.CommentGroup) bool {
	return doc != nil && CommentHasNoLint(doc.List[len(doc.List)-1])
}
