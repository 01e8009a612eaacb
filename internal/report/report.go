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

package report

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"runtime/trace"
	"strings"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/flowsummary/internal/directive"
	"fillmore-labs.com/flowsummary/internal/region"
	"fillmore-labs.com/flowsummary/syntax"
)

// Diagnostic categories.
const (
	CategoryRegion   = "region"
	CategoryFunction = "function"
	CategoryMarker   = "marker"
)

// Region reports the summary of a region delimited by markers.
// Summaries of regions that can be extracted are omitted when problemsOnly is set.
func Region(ctx context.Context, p *analysis.Pass, r directive.Region, s *region.Summary, problemsOnly bool) {
	defer trace.StartRegion(ctx, "ReportRegion").End()

	subject := "Region"
	if r.Name != "" {
		subject = fmt.Sprintf("Region %q", r.Name)
	}

	message, ok := createMessage(subject, s, problemsOnly)
	if !ok {
		return
	}

	p.Report(analysis.Diagnostic{
		Pos:      r.Begin.Pos(),
		End:      r.Begin.End(),
		Category: CategoryRegion,
		Message:  message,
		Related:  []analysis.RelatedInformation{{Pos: r.End.Pos(), End: r.End.End(), Message: "Region ends here"}},
	})
}

// Function reports the summary of a function body.
func Function(ctx context.Context, p *analysis.Pass, fun *ast.FuncDecl, s *region.Summary, problemsOnly bool) {
	defer trace.StartRegion(ctx, "ReportFunction").End()

	message, ok := createMessage("Function "+fun.Name.Name, s, problemsOnly)
	if !ok {
		return
	}

	p.Report(analysis.Diagnostic{
		Pos:      fun.Name.Pos(),
		End:      fun.Name.End(),
		Category: CategoryFunction,
		Message:  message,
	})
}

// Invalid reports a region that can't be summarized.
func Invalid(p *analysis.Pass, r directive.Region, err error) {
	p.Report(analysis.Diagnostic{
		Pos:      r.Begin.Pos(),
		End:      r.End.End(),
		Category: CategoryMarker,
		Message:  "Invalid region: " + err.Error(),
	})
}

// Marker reports a misplaced region marker.
func Marker(p *analysis.Pass, problem directive.Problem) {
	p.Report(analysis.Diagnostic{
		Pos:      problem.Comment.Pos(),
		End:      problem.Comment.End(),
		Category: CategoryMarker,
		Message:  capitalize(problem.Err.Error()),
	})
}

// createMessage constructs the diagnostic message. It returns false when nothing should be reported.
func createMessage(subject string, s *region.Summary, problemsOnly bool) (string, bool) {
	if problems := s.Problems(); len(problems) > 0 {
		return fmt.Sprintf("%s can't be extracted: %s", subject, joinErrors(problems)), true
	}

	if problemsOnly {
		return "", false
	}

	return fmt.Sprintf("%s has %s, parameters %s, results %s",
		subject, s.Kind, concatNames(s.Parameters), concatNames(s.Results)), true
}

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}

	return strings.Join(msgs, "; ")
}

// concatNames formats a list of variable names into a human-readable string (e.g., "'a', 'b' and 'c'").
func concatNames(locals []*syntax.Local) string {
	if len(locals) == 0 {
		return "none"
	}

	var allNames strings.Builder

	for i, l := range locals {
		if i > 0 {
			var separator string
			if i == len(locals)-1 {
				separator = " and "
			} else {
				separator = ", "
			}

			allNames.WriteString(separator) // ignore error
		}

		allNames.WriteByte('\'')     // ignore error
		allNames.WriteString(l.Name) // ignore error
		allNames.WriteByte('\'')     // ignore error
	}

	return allNames.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

// IsSelectionError reports whether err describes an invalid selection rather than an internal failure.
func IsSelectionError(err error) bool {
	return errors.Is(err, region.ErrNoFunction) ||
		errors.Is(err, region.ErrNoStatements) ||
		errors.Is(err, region.ErrPartialStatement)
}
