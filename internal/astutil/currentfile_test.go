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

package astutil_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	. "fillmore-labs.com/flowsummary/internal/astutil"
)

func TestCommentHasNoLint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want bool
	}{
		{"//nolint:flowsummary", true},
		{"// nolint:gosec,flowsummary", true},
		{"//nolint:all", true},
		{"//nolint:FlowSummary", true},
		{"//nolint:gosec", false},
		{"// flowsummary", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			if got := CommentHasNoLint(&ast.Comment{Text: tt.text}); got != tt.want {
				t.Errorf("Got %t, expected %t", got, tt.want)
			}
		})
	}
}

func TestCurrentFile(t *testing.T) {
	t.Parallel()

	const src = `// Code generated by hand. DO NOT EDIT.

//nolint:flowsummary
package test

func quiet() { //nolint:flowsummary
}

func loud() { // regular comment
}

// documented is excluded.
//
//nolint:all
func documented() {
}
`

	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, "test.go", src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	c := NewCurrentFile(fset, f)
	if !c.Valid() {
		t.Fatal("Expected valid file")
	}

	if !c.Generated() {
		t.Error("Expected generated file")
	}

	if !c.Silenced() {
		t.Error("Expected silenced file")
	}

	for _, decl := range f.Decls {
		fun := decl.(*ast.FuncDecl)

		if got, want := c.NoLintComment(fun.Body.Lbrace), fun.Name.Name == "quiet"; got != want {
			t.Errorf("Got nolint %t for %s, expected %t", got, fun.Name.Name, want)
		}

		if got, want := c.Suppressed(fun), fun.Name.Name != "loud"; got != want {
			t.Errorf("Got suppressed %t for %s, expected %t", got, fun.Name.Name, want)
		}
	}

	if NewCurrentFile(fset, nil).Valid() {
		t.Error("Expected invalid file without syntax")
	}
}
