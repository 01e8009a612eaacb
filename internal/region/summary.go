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
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/types"
	"log/slog"
	"runtime/trace"
	"slices"
	"strings"

	"fillmore-labs.com/flowsummary/flow"
	"fillmore-labs.com/flowsummary/internal/lower"
	"fillmore-labs.com/flowsummary/syntax"
)

var (
	// ErrNotPossible is reported for regions combining incompatible returns.
	ErrNotPossible = errors.New("region mixes incompatible returns")

	// ErrPartialReturn is reported for regions returning on some paths only.
	ErrPartialReturn = errors.New("not all paths of the region return")

	// ErrOpenBranch is reported for regions branching to a target outside.
	ErrOpenBranch = errors.New("region branches to a target outside")

	// ErrAmbiguousReturn is reported for regions returning a value while changing
	// variables used afterwards.
	ErrAmbiguousReturn = errors.New("region returns a value and changes variables used afterwards")

	// ErrDefer is reported for regions containing a defer statement, which would run
	// at the end of the region instead of the function.
	ErrDefer = errors.New("region contains a defer statement")
)

// Options configure [Summarize].
type Options struct {
	// LoopReentrance considers reads in later iterations of loops around the selection.
	LoopReentrance bool

	// UnknownAsParameter passes variables with unclassified accesses as parameters.
	UnknownAsParameter bool
}

// DefaultOptions returns the recommended [Options].
func DefaultOptions() Options {
	return Options{LoopReentrance: true, UnknownAsParameter: true}
}

// Summary describes the data flow of a selection of statements.
type Summary struct {
	Selection Selection
	Kind      flow.ReturnKind

	// Parameters are the variables whose values flow into the selection.
	Parameters []*syntax.Local

	// Results are the variables changed by the selection and read afterwards.
	Results []*syntax.Local

	// Branches are the labels of branches leaving the selection, unlabeled branches as "".
	Branches []string

	// Defers reports a selected defer statement.
	Defers bool
}

// Problems lists the reasons the selection can't be extracted into a function.
func (s *Summary) Problems() []error {
	var problems []error

	switch s.Kind {
	case flow.NotPossible:
		problems = append(problems, ErrNotPossible)

	case flow.PartialReturn:
		problems = append(problems, ErrPartialReturn)

	case flow.ValueReturn:
		if len(s.Results) > 0 {
			problems = append(problems, ErrAmbiguousReturn)
		}
	}

	if len(s.Branches) > 0 {
		labels := make([]string, len(s.Branches))
		for i, l := range s.Branches {
			if l == flow.Unlabeled {
				l = "(unlabeled)"
			}

			labels[i] = l
		}

		problems = append(problems, fmt.Errorf("%w: %s", ErrOpenBranch, strings.Join(labels, ", ")))
	}

	if s.Defers {
		problems = append(problems, ErrDefer)
	}

	return problems
}

// Refactorable reports whether the selection can be extracted into a function.
func (s *Summary) Refactorable() bool {
	return len(s.Problems()) == 0
}

// LogValue implements [slog.LogValuer].
func (s *Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", s.Kind.String()),
		slog.Any("parameters", Names(s.Parameters)),
		slog.Any("results", Names(s.Results)),
		slog.Any("branches", s.Branches),
		slog.Bool("defers", s.Defers),
	)
}

// Names returns the source names of locals.
func Names(locals []*syntax.Local) []string {
	names := make([]string, len(locals))
	for i, l := range locals {
		names[i] = l.Name
	}

	return names
}

// Summarize computes the data flow summary of the statements selected in file.
func Summarize(ctx context.Context, info *types.Info, file *ast.File, sel Selection, opts Options) (*Summary, error) {
	defer trace.StartRegion(ctx, "Summarize").End()

	fnNode, stmts, err := Statements(file, sel)
	if err != nil {
		return nil, err
	}

	fn, err := lower.Func(info, fnNode)
	if err != nil {
		return nil, fmt.Errorf("can't lower function: %w", err)
	}

	// the markers may enclose comments and blank space around the statements
	sel = Selection{Start: stmts[0].Pos(), End: stmts[len(stmts)-1].End()}

	return summarize(ctx, fn, fn.Stmts(stmts), sel, containsDefer(stmts), opts), nil
}

func summarize(ctx context.Context, fn *lower.Function, nodes []syntax.Node, sel Selection, defers bool, opts Options) *Summary {
	n := len(fn.Locals)
	policy := selected{root: fn.Root}

	// values flowing in
	in := flow.NewContext(0, n, flow.WithComputeMode(flow.ComputeArguments))
	args := flow.AnalyzeSequence(ctx, nodes, in, policy)

	// values possibly changed
	out := flow.NewContext(0, n, flow.WithComputeMode(flow.ComputeReturnValues))
	changed := flow.AnalyzeSequence(ctx, nodes, out, policy)

	// values read afterwards
	after := flow.NewContext(0, n, flow.WithComputeMode(flow.ComputeArguments))
	rest := flow.Analyze(ctx, fn.Root, after,
		&following{sel: sel, root: fn.Root, c: after, reentrance: opts.LoopReentrance})

	mask := flow.Read | flow.ReadPotential
	if opts.UnknownAsParameter {
		mask |= flow.Unknown
	}

	parameters := slices.DeleteFunc(args.Get(in, mask), func(l *syntax.Local) bool {
		v := lower.Var(l)
		return v != nil && sel.Contains(v.Pos()) // declared within
	})

	var results []*syntax.Local

	for _, l := range changed.Get(out, flow.AnyWrite) {
		if rest.AccessMode(after, l).Matches(flow.AnyRead) {
			results = append(results, l)
		}
	}

	return &Summary{
		Selection:  sel,
		Kind:       args.ReturnKind(),
		Parameters: parameters,
		Results:    results,
		Branches:   args.OpenBranches(),
		Defers:     defers,
	}
}
