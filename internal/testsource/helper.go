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

// Package testsource provides utilities for parsing and analyzing Go source code in tests.
//
// It removes the boilerplate of parsing and type-checking Go functions and marked
// regions when testing the lowering and region analysis of flowsummary.
package testsource

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"
)

const (
	testpkg  = "test"
	filename = "test.go"
)

// ParseFile parses a complete Go source file of package `test`, including comments.
//
// Call [Check] on the result when type information is needed.
func ParseFile(tb testing.TB, src string) (fset *token.FileSet, f *ast.File) {
	tb.Helper()

	fset = token.NewFileSet()

	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", src, err)
	}

	if f.Name.Name != testpkg {
		tb.Fatalf("Got package %s, expected %s", f.Name.Name, testpkg)
	}

	return fset, f
}

// FuncDecl returns the function declaration with the given name.
func FuncDecl(tb testing.TB, f *ast.File, name string) *ast.FuncDecl {
	tb.Helper()

	for _, decl := range f.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Name.Name == name {
			return fn
		}
	}

	tb.Fatalf("Can't find function %q", name)

	return nil
}

// Markers returns the source range between the //flowsummary:begin and
// //flowsummary:end comments within n.
func Markers(tb testing.TB, f *ast.File, n ast.Node) (start, end token.Pos) {
	tb.Helper()

	for _, cg := range f.Comments {
		if cg.Pos() < n.Pos() || cg.End() > n.End() {
			continue
		}

		for _, c := range cg.List {
			switch {
			case strings.HasPrefix(c.Text, "//flowsummary:begin"):
				start = c.End()

			case strings.HasPrefix(c.Text, "//flowsummary:end"):
				end = c.Pos()
			}
		}
	}

	if !start.IsValid() || end < start {
		tb.Fatalf("Can't find markers in %T at %d", n, n.Pos())
	}

	return start, end
}

// Check performs type checking on the provided AST file.
// It creates and returns a fully type-checked *types.Package and *types.Info,
// recording everything the lowering needs (definitions, uses, implicits and selections).
func Check(tb testing.TB, fset *token.FileSet, f *ast.File) (*types.Package, *types.Info) {
	tb.Helper()

	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Implicits:  make(map[ast.Node]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Scopes:     make(map[ast.Node]*types.Scope),
	}

	conf := types.Config{Importer: importer.Default()}

	pkg, err := conf.Check(testpkg, fset, []*ast.File{f}, info)
	if err != nil {
		tb.Fatalf("Failed to type check source: %v", err)
	}

	return pkg, info
}
