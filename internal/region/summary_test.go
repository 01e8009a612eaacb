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

package region_test

import (
	"errors"
	"go/ast"
	"slices"
	"testing"

	"fillmore-labs.com/flowsummary/flow"
	. "fillmore-labs.com/flowsummary/internal/region"
	"fillmore-labs.com/flowsummary/internal/testsource"
)

const src = `package test

func basic(a, b int) int {
	x := a * 2
	//flowsummary:begin
	y := x + b
	x = y
	//flowsummary:end
	return x
}

func loop(n int) int {
	sum, i := 0, 0
	for i < n {
		//flowsummary:begin
		sum += i
		i++
		//flowsummary:end
	}
	return sum
}

func early(x int) int {
	//flowsummary:begin
	if x < 0 {
		return -1
	}
	//flowsummary:end
	return x
}

func complete(x int) int {
	//flowsummary:begin
	if x < 0 {
		return -x
	}
	return x
	//flowsummary:end
}

func branch(xs []int) int {
	total := 0
	for _, x := range xs {
		//flowsummary:begin
		if x < 0 {
			break
		}
		total += x
		//flowsummary:end
	}
	return total
}

func focus(c bool) int {
	v := 0
	if c {
		//flowsummary:begin
		v = 1
		//flowsummary:end
		return 1
	} else {
		return v
	}
}

func cases(k int) int {
	r := 0
	switch k {
	case 0:
		//flowsummary:begin
		r = 1
		//flowsummary:end
	case 1:
		return r
	}
	return 0
}

func deferred(x int) int {
	//flowsummary:begin
	defer println(x)
	//flowsummary:end
	return x
}

func reread(a int) int {
	x := 0
	//flowsummary:begin
	x = a
	//flowsummary:end
	println(x)
	x = 2
	return x
}

func aliased() int {
	x := 0
	//flowsummary:begin
	p := &x
	*p = 1
	//flowsummary:end
	return x
}
`

func TestSummarize(t *testing.T) {
	t.Parallel()

	fset, f := testsource.ParseFile(t, src)
	_, info := testsource.Check(t, fset, f)

	tests := []struct {
		name       string
		fn         string
		opts       Options
		kind       flow.ReturnKind
		parameters []string
		results    []string
		problems   []error
	}{
		{"basic", "basic", DefaultOptions(), flow.NoReturn, []string{"b", "x"}, []string{"x"}, nil},
		{"loop_reentrance", "loop", DefaultOptions(), flow.NoReturn, []string{"sum", "i"}, []string{"sum", "i"}, nil},
		{"loop_single_pass", "loop", Options{}, flow.NoReturn, []string{"sum", "i"}, []string{"sum"}, nil},
		{"early", "early", DefaultOptions(), flow.PartialReturn, []string{"x"}, nil, []error{ErrPartialReturn}},
		{"complete", "complete", DefaultOptions(), flow.ValueReturn, []string{"x"}, nil, nil},
		{"branch", "branch", DefaultOptions(), flow.NoReturn, []string{"total", "x"}, []string{"total"}, []error{ErrOpenBranch}},
		{"focus", "focus", DefaultOptions(), flow.NoReturn, nil, nil, nil},
		{"cases", "cases", DefaultOptions(), flow.NoReturn, nil, nil, nil},
		{"deferred", "deferred", DefaultOptions(), flow.NoReturn, []string{"x"}, nil, []error{ErrDefer}},
		{"read_then_written", "reread", DefaultOptions(), flow.NoReturn, []string{"a"}, []string{"x"}, nil},
		{"aliased_unknown", "aliased", DefaultOptions(), flow.NoReturn, []string{"x"}, []string{"x"}, nil},
		{"aliased_ignored", "aliased", Options{}, flow.NoReturn, nil, []string{"x"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			start, end := testsource.Markers(t, f, testsource.FuncDecl(t, f, tt.fn))
			sel := Selection{Start: start, End: end}

			s, err := Summarize(t.Context(), info, f, sel, tt.opts)
			if err != nil {
				t.Fatalf("Summarize failed: %v", err)
			}

			if s.Kind != tt.kind {
				t.Errorf("Got return kind %v, expected %v", s.Kind, tt.kind)
			}

			if got := Names(s.Parameters); !slices.Equal(got, tt.parameters) {
				t.Errorf("Got parameters %v, expected %v", got, tt.parameters)
			}

			if got := Names(s.Results); !slices.Equal(got, tt.results) {
				t.Errorf("Got results %v, expected %v", got, tt.results)
			}

			problems := s.Problems()
			if len(problems) != len(tt.problems) {
				t.Fatalf("Got problems %v, expected %v", problems, tt.problems)
			}

			for i, want := range tt.problems {
				if !errors.Is(problems[i], want) {
					t.Errorf("Got problem %v, expected %v", problems[i], want)
				}
			}

			if got, want := s.Refactorable(), len(tt.problems) == 0; got != want {
				t.Errorf("Got refactorable %t, expected %t", got, want)
			}
		})
	}
}

func TestStatements(t *testing.T) {
	t.Parallel()

	const src = `package test

var global = 1

func f(x int) int {
	y := x + 1
	if y > 0 {
		y++
	}
	return y
}
`

	_, f := testsource.ParseFile(t, src)

	fn := testsource.FuncDecl(t, f, "f")
	list := fn.Body.List

	tests := []struct {
		name  string
		sel   Selection
		count int
		err   error
	}{
		{"first", Selection{Start: list[0].Pos(), End: list[0].End()}, 1, nil},
		{"two", Selection{Start: list[0].Pos(), End: list[1].End()}, 2, nil},
		{"nested", Selection{Start: list[1].Pos() + 10, End: list[1].End() - 1}, 1, nil},
		{"cut", Selection{Start: list[0].Pos(), End: list[1].Pos() + 2}, 0, ErrPartialStatement},
		{"expression", Selection{Start: list[0].Pos() + 5, End: list[0].End()}, 0, ErrPartialStatement},
		{"outside", Selection{Start: f.Decls[0].Pos(), End: f.Decls[0].End()}, 0, ErrNoFunction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, stmts, err := Statements(f, tt.sel)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Got error %v, expected %v", err, tt.err)
			}

			if len(stmts) != tt.count {
				t.Errorf("Got %d statements, expected %d", len(stmts), tt.count)
			}
		})
	}
}

func TestSelection(t *testing.T) {
	t.Parallel()

	sel := Selection{Start: 10, End: 20}
	inner := Selection{Start: 12, End: 18}
	outer := Selection{Start: 5, End: 25}

	if !sel.Contains(10) || sel.Contains(20) {
		t.Error("Expected half-open interval")
	}

	if !sel.Covers(span(inner)) || sel.Covers(span(outer)) {
		t.Error("Got wrong coverage")
	}

	if !sel.Within(span(outer)) || sel.Within(span(inner)) {
		t.Error("Got wrong containment")
	}
}

func span(s Selection) ast.Node {
	return &ast.BlockStmt{Lbrace: s.Start, Rbrace: s.End - 1}
}
