// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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

package region

import (
	"errors"
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/ast/astutil"
)

var (
	// ErrNoFunction is returned when a selection is not within a function body.
	ErrNoFunction = errors.New("selection is not within a function body")

	// ErrNoStatements is returned when a selection contains no statement.
	ErrNoStatements = errors.New("selection contains no statement")

	// ErrPartialStatement is returned when a selection cuts a statement.
	ErrPartialStatement = errors.New("selection must cover complete statements of one block")
)

// Selection is a source range, usually delimited by region markers.
type Selection struct {
	Start, End token.Pos
}

// Covers reports whether the node lies completely within the selection.
func (s Selection) Covers(n ast.Node) bool {
	return s.Start <= n.Pos() && n.End() <= s.End
}

// Within reports whether the selection lies completely within the node.
func (s Selection) Within(n ast.Node) bool {
	return n.Pos() <= s.Start && s.End <= n.End()
}

// Contains reports whether pos lies within the selection.
func (s Selection) Contains(pos token.Pos) bool {
	return s.Start <= pos && pos < s.End
}

// Statements returns the innermost function enclosing the selection and the
// selected statements, which are consecutive members of one statement list.
func Statements(file *ast.File, sel Selection) (fn ast.Node, stmts []ast.Stmt, err error) {
	path, _ := astutil.PathEnclosingInterval(file, sel.Start, sel.End)

	var (
		list  []ast.Stmt
		found bool
	)

loop:
	for _, n := range path {
		switch n := n.(type) {
		case *ast.FuncDecl, *ast.FuncLit:
			fn = n
			break loop

		case *ast.BlockStmt:
			if !found {
				list, found = n.List, true
			}

		case *ast.CaseClause:
			if !found {
				list, found = n.Body, true
			}

		case *ast.CommClause:
			if !found {
				list, found = n.Body, true
			}
		}
	}

	if fn == nil || !found {
		return nil, nil, ErrNoFunction
	}

	for _, s := range list {
		switch {
		case sel.Covers(s):
			switch s.(type) {
			case *ast.CaseClause, *ast.CommClause:
				return nil, nil, ErrPartialStatement
			}

			stmts = append(stmts, s)

		case s.Pos() < sel.End && sel.Start < s.End():
			return nil, nil, ErrPartialStatement
		}
	}

	if len(stmts) == 0 {
		return nil, nil, ErrNoStatements
	}

	return fn, stmts, nil
}

// containsDefer reports whether a defer statement of the enclosing function is selected.
func containsDefer(stmts []ast.Stmt) bool {
	var found bool

	for _, s := range stmts {
		ast.Inspect(s, func(n ast.Node) bool {
			switch n.(type) {
			case *ast.FuncLit:
				return false

			case *ast.DeferStmt:
				found = true
			}

			return !found
		})
	}

	return found
}
