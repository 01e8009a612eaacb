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

// Package directive handles flowsummary region markers.
//
// Supported directives:
//   - //flowsummary:begin [name] - Start a region of statements to summarize
//   - //flowsummary:end - End the innermost open region
package directive

import (
	"errors"
	"go/ast"
	"go/token"
	"strings"
)

const (
	prefix = "flowsummary:"
	begin  = prefix + "begin"
	end    = prefix + "end"
)

var (
	// ErrUnmatchedBegin is reported for a begin marker without end marker.
	ErrUnmatchedBegin = errors.New("region marker without matching end")

	// ErrUnmatchedEnd is reported for an end marker without begin marker.
	ErrUnmatchedEnd = errors.New("end marker without matching region")

	// ErrNested is reported for a begin marker within an open region.
	ErrNested = errors.New("nested region marker")
)

// IsBeginDirective checks if a comment starts a region.
// Supports both "//flowsummary:begin" and "// flowsummary:begin".
func IsBeginDirective(text string) bool {
	_, ok := directive(text, begin)
	return ok
}

// IsEndDirective checks if a comment ends a region.
func IsEndDirective(text string) bool {
	_, ok := directive(text, end)
	return ok
}

// directive returns the argument of the named directive.
func directive(text, name string) (string, bool) {
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimSpace(text)

	rest, ok := strings.CutPrefix(text, name)
	if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}

	arg, _, _ := strings.Cut(strings.TrimSpace(rest), "//")

	return strings.TrimSpace(arg), true
}

// Region is a range of source delimited by markers.
type Region struct {
	Name       string
	Begin, End *ast.Comment
}

// Start returns the first position after the begin marker.
func (r Region) Start() token.Pos { return r.Begin.End() }

// Stop returns the position of the end marker.
func (r Region) Stop() token.Pos { return r.End.Pos() }

// Problem is a misplaced marker.
type Problem struct {
	Comment *ast.Comment
	Err     error
}

// Regions scans a file for region markers. Regions are returned in source order.
// Unmatched or nested markers are returned as problems and don't delimit a region.
func Regions(file *ast.File) ([]Region, []Problem) {
	var (
		regions  []Region
		problems []Problem
		open     *Region
	)

	for _, cg := range file.Comments {
		for _, c := range cg.List {
			if name, ok := directive(c.Text, begin); ok {
				if open != nil {
					problems = append(problems, Problem{Comment: c, Err: ErrNested})
					continue
				}

				open = &Region{Name: name, Begin: c}

				continue
			}

			if _, ok := directive(c.Text, end); !ok {
				continue
			}

			if open == nil {
				problems = append(problems, Problem{Comment: c, Err: ErrUnmatchedEnd})
				continue
			}

			open.End = c
			regions = append(regions, *open)
			open = nil
		}
	}

	if open != nil {
		problems = append(problems, Problem{Comment: open.Begin, Err: ErrUnmatchedBegin})
	}

	return regions, problems
}
