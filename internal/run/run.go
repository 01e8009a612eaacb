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

package run

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/flowsummary/internal/astutil"
	"fillmore-labs.com/flowsummary/internal/config"
	"fillmore-labs.com/flowsummary/internal/directive"
	"fillmore-labs.com/flowsummary/internal/region"
	"fillmore-labs.com/flowsummary/internal/report"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a configuration error where the analyzer's
// Requires field is not properly set.
var ErrResultMissing = errors.New("analyzer result missing")

// Run executes the flowsummary analyzer's pipeline.
func (r *Options) Run(p *analysis.Pass) (any, error) {
	// Retrieves the [inspector.Inspector] from the pass results.
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("flowsummary: %s %w", inspect.Analyzer.Name, ErrResultMissing)
	}

	ctx := context.Background()

	ctx, task := trace.NewTask(ctx, "FlowSummary")
	defer task.End()

	trace.Log(ctx, "package", p.Pkg.Path())

	opts := r.Region()
	problemsOnly := r.Behavior.Enabled(config.ProblemsOnly)

	// Loop over all files
	for f := range in.Root().Children() {
		file := f.Node().(*ast.File)

		currentFile := astutil.NewCurrentFile(p.Fset, file)
		if !currentFile.Valid() {
			astutil.InternalError(p, file, "File %s without valid info", file.Name.Name)

			continue
		}

		// Skip generated files
		if currentFile.Generated() && !r.Behavior.Enabled(config.IncludeGenerated) {
			continue
		}

		// Skip files with nolint comment
		if currentFile.Silenced() {
			continue
		}

		var skipped []*ast.FuncDecl

		// Loop over all function and method declarations in this file
		for c := range f.Preorder((*ast.FuncDecl)(nil)) {
			fun := c.Node().(*ast.FuncDecl)

			if fun.Body == nil {
				continue
			}

			// Skip functions with nolint comment
			if currentFile.Suppressed(fun) {
				skipped = append(skipped, fun)

				continue
			}

			if r.Checks.Enabled(config.FunctionCheck) {
				r.function(ctx, p, file, fun, opts, problemsOnly)
			}
		}

		if r.Checks.Enabled(config.RegionCheck) || r.Checks.Enabled(config.MarkerCheck) {
			r.regions(ctx, p, file, skipped, opts, problemsOnly)
		}
	}

	return nil, nil
}

// function summarizes the body of a function declaration.
func (r *Options) function(ctx context.Context, p *analysis.Pass, file *ast.File, fun *ast.FuncDecl, opts region.Options, problemsOnly bool) {
	if len(fun.Body.List) == 0 {
		return
	}

	sel := region.Selection{Start: fun.Body.Lbrace + 1, End: fun.Body.Rbrace}

	s, err := region.Summarize(ctx, p.TypesInfo, file, sel, opts)
	switch {
	case errors.Is(err, region.ErrNoStatements):
		return

	case err != nil:
		astutil.InternalError(p, fun.Name, "Function %s: %v", fun.Name.Name, err)

		return
	}

	report.Function(ctx, p, fun, s, problemsOnly)
}

// regions summarizes all regions delimited by markers in file.
func (r *Options) regions(ctx context.Context, p *analysis.Pass, file *ast.File, skipped []*ast.FuncDecl, opts region.Options, problemsOnly bool) {
	regions, problems := directive.Regions(file)

	if r.Checks.Enabled(config.MarkerCheck) {
		for _, problem := range problems {
			if !within(problem.Comment, skipped) {
				report.Marker(p, problem)
			}
		}
	}

	if !r.Checks.Enabled(config.RegionCheck) {
		return
	}

	for _, rg := range regions {
		if within(rg.Begin, skipped) {
			continue
		}

		sel := region.Selection{Start: rg.Start(), End: rg.Stop()}

		s, err := region.Summarize(ctx, p.TypesInfo, file, sel, opts)
		switch {
		case report.IsSelectionError(err):
			report.Invalid(p, rg, err)

		case err != nil:
			astutil.InternalError(p, rg.Begin, "Region %q: %v", rg.Name, err)

		default:
			report.Region(ctx, p, rg, s, problemsOnly)
		}
	}
}

// within reports whether n lies in one of the declarations.
func within(n ast.Node, decls []*ast.FuncDecl) bool {
	for _, d := range decls {
		if d.Pos() <= n.Pos() && n.End() <= d.End() {
			return true
		}
	}

	return false
}
