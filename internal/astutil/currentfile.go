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
	"strings"
)

// flowsummary is the name of the linter.
const flowsummary = "flowsummary"

// CurrentFile holds file information for analysis.
type CurrentFile struct {
	handle    *token.File
	generated bool
	silenced  bool             // file documentation ends with a nolint comment
	nolint    map[int]struct{} // lines carrying a nolint comment
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

	c := CurrentFile{
		handle:    handle,
		generated: ast.IsGenerated(file),
		silenced:  lastHasNoLint(file.Doc),
	}

	for _, cg := range file.Comments {
		for _, comment := range cg.List {
			if !CommentHasNoLint(comment) {
				continue
			}

			if c.nolint == nil {
				c.nolint = make(map[int]struct{})
			}

			c.nolint[c.line(comment.Pos())] = struct{}{}
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

// Silenced reports whether the file documentation ends with a //nolint:flowsummary comment.
func (c CurrentFile) Silenced() bool {
	return c.silenced
}

// Suppressed reports whether the function is excluded by a //nolint:flowsummary comment,
// either ending its documentation or on the line of its opening brace.
func (c CurrentFile) Suppressed(fun *ast.FuncDecl) bool {
	if lastHasNoLint(fun.Doc) {
		return true
	}

	return fun.Body != nil && c.NoLintComment(fun.Body.Lbrace)
}

// NoLintComment checks if the line of pos carries a //nolint:flowsummary comment.
func (c CurrentFile) NoLintComment(pos token.Pos) bool {
	if c.handle == nil {
		return false
	}

	_, ok := c.nolint[c.line(pos)]

	return ok
}

func (c CurrentFile) line(pos token.Pos) int {
	return c.handle.PositionFor(pos, false).Line
}

func lastHasNoLint(doc *ast.CommentGroup) bool {
	return doc != nil && CommentHasNoLint(doc.List[len(doc.List)-1])
}

var nolintPattern = regexp.MustCompile(`^//\s*nolint:([a-zA-Z0-9,_-]+)`)

// CommentHasNoLint checks if the provided comment contains a `//nolint:flowsummary` directive.
func CommentHasNoLint(comment *ast.Comment) bool {
	matches := nolintPattern.FindStringSubmatch(comment.Text)
	if matches == nil {
		return false
	}

	// Parse comma-separated linter list
	for linter := range strings.SplitSeq(matches[1], ",") {
		if l := strings.ToLower(strings.TrimSpace(linter)); l == flowsummary || l == "all" {
			return true
		}
	}

	return false
}
