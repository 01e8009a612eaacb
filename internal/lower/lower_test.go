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

package lower_test

import (
	"errors"
	"go/ast"
	"go/token"
	"slices"
	"testing"

	"fillmore-labs.com/flowsummary/flow"
	. "fillmore-labs.com/flowsummary/internal/lower"
	"fillmore-labs.com/flowsummary/internal/testsource"
	"fillmore-labs.com/flowsummary/syntax"
)

func lowerFunc(tb testing.TB, src, name string) *Function {
	tb.Helper()

	fset, f := testsource.ParseFile(tb, src)
	_, info := testsource.Check(tb, fset, f)

	fn, err := Func(info, testsource.FuncDecl(tb, f, name))
	if err != nil {
		tb.Fatalf("Failed to lower %s: %v", name, err)
	}

	return fn
}

func find[T syntax.Node](root syntax.Node) []T {
	var found []T

	syntax.Inspect(root, func(n syntax.Node) bool {
		if t, ok := n.(T); ok {
			found = append(found, t)
		}

		return true
	})

	return found
}

func analyze(t *testing.T, fn *Function) *flow.Info {
	t.Helper()

	c := flow.NewContext(0, len(fn.Locals), flow.WithComputeMode(flow.ComputeArguments))

	return flow.Analyze(t.Context(), fn.Root, c, nil)
}

func TestLocalsOrder(t *testing.T) {
	t.Parallel()

	const src = `package test

type T struct{ f int }

var global int

func (t T) m(a int, _ string) (r int) {
	x := a + global
	for i, v := range []int{x} {
		r += i + v + t.f
	}
	return
}
`

	fn := lowerFunc(t, src, "m")

	names := make([]string, len(fn.Locals))
	for i, l := range fn.Locals {
		if l.ID != i {
			t.Errorf("Got ID %d for local %s at index %d", l.ID, l.Name, i)
		}

		names[i] = l.Name
	}

	if want := []string{"t", "a", "r", "x", "i", "v"}; !slices.Equal(names, want) {
		t.Errorf("Got locals %v, expected %v", names, want)
	}

	for _, l := range fn.Locals {
		if got := fn.Local(Var(l)); got != l {
			t.Errorf("Got binding %v for %s, expected itself", got, l)
		}
	}
}

func TestBareReturnReadsResults(t *testing.T) {
	t.Parallel()

	const src = `package test

func f() (a, b int) {
	a = 1
	return
}
`

	fn := lowerFunc(t, src, "f")

	returns := find[*syntax.Return](fn.Root)
	if len(returns) != 1 {
		t.Fatalf("Got %d returns, expected 1", len(returns))
	}

	r := returns[0]
	if r.Void || r.Owner != fn.Root || len(r.Results) != 2 {
		t.Fatalf("Got return %+v, expected two results owned by the function", r)
	}

	for i, res := range r.Results {
		name, ok := res.(*syntax.Name)
		if !ok || name.Local != fn.Locals[i] {
			t.Errorf("Got result %d %v, expected read of %s", i, res, fn.Locals[i])
		}

		if name != nil && name.Pos() != r.Pos() {
			t.Errorf("Got result %d at %d, expected position of return %d", i, name.Pos(), r.Pos())
		}
	}
}

func TestReturnKinds(t *testing.T) {
	t.Parallel()

	const src = `package test

import "os"

func value(x int) int {
	if x > 0 {
		return 1
	}
	return 0
}

func falls(x int) {
	x++
}

func panics() {
	panic("unreachable")
}

func recovered() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = nil
		}
	}()
	panic("recovered")
}

func exits() {
	defer func() { _ = recover() }()
	os.Exit(1)
}

func infinite() {
	for {
	}
}

func blocks() {
	select {}
}
`

	tests := []struct {
		name string
		want flow.ReturnKind
	}{
		{"value", flow.ValueReturn},
		{"falls", flow.NoReturn},
		{"panics", flow.Throw},
		{"recovered", flow.NoReturn},
		{"exits", flow.Throw},
		{"infinite", flow.NoReturn},
		{"blocks", flow.Throw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fn := lowerFunc(t, src, tt.name)

			if got := analyze(t, fn).ReturnKind(); got != tt.want {
				t.Errorf("Got return kind %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestRecoverWithoutPanic(t *testing.T) {
	t.Parallel()

	const src = `package test

import "os"

func f(code int) {
	defer func() { _ = recover() }()
	go func() { panic("elsewhere") }()
	os.Exit(code)
}
`

	fn := lowerFunc(t, src, "f")

	tries := find[*syntax.Try](fn.Root)
	if len(tries) != 1 {
		t.Fatalf("Got %d try statements, expected 1", len(tries))
	}

	if got := tries[0].Catches; len(got) != 0 {
		t.Errorf("Got catches %v, expected none without a panic in the guarded body", got)
	}

	if got, want := analyze(t, fn).ReturnKind(), flow.Throw; got != want {
		t.Errorf("Got return kind %v, expected %v", got, want)
	}
}

func TestDeferBecomesTry(t *testing.T) {
	t.Parallel()

	const src = `package test

import "sync"

func f(mu *sync.Mutex, n int) (err error) {
	mu.Lock()
	defer mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			err = nil
		}
	}()
	n++
	if n < 0 {
		panic("negative")
	}
	return nil
}
`

	fn := lowerFunc(t, src, "f")

	tries := find[*syntax.Try](fn.Root)
	if len(tries) != 2 {
		t.Fatalf("Got %d try statements, expected 2", len(tries))
	}

	outer, inner := tries[0], tries[1]

	if len(outer.Catches) != 0 || outer.Finally != nil {
		t.Errorf("Got handlers for a plain deferred call: %+v", outer)
	}

	if len(inner.Catches) != 1 || inner.Catches[0].Type != Panic {
		t.Errorf("Got catches %v, expected a panic handler", inner.Catches)
	}

	aliases := find[*syntax.Alias](inner.Finally)
	if len(aliases) != 1 || aliases[0].Local.Name != "err" {
		t.Errorf("Got deferred accesses %v, expected err", aliases)
	}

	if got := find[*syntax.IncDec](inner.Body); len(got) != 1 {
		t.Errorf("Got %d increments in guarded body, expected 1", len(got))
	}
}

func TestAliasing(t *testing.T) {
	t.Parallel()

	const src = `package test

type counter struct{ n int }

func (c *counter) inc() { c.n++ }

func f() {
	var (
		a int
		b [2]int
		c counter
		d counter
		e int
	)
	p := &a
	b[e] = 1
	c.inc()
	d.n = 2
	go func() { e++ }()
	_ = p
}
`

	fn := lowerFunc(t, src, "f")

	var got []string
	for _, a := range find[*syntax.Alias](fn.Root) {
		got = append(got, a.Local.Name)
	}

	if want := []string{"a", "b", "c", "d", "e"}; !slices.Equal(got, want) {
		t.Errorf("Got aliased locals %v, expected %v", got, want)
	}

	if closures := find[*syntax.Closure](fn.Root); len(closures) != 1 {
		t.Errorf("Got %d closures, expected 1", len(closures))
	}
}

func TestShortCircuit(t *testing.T) {
	t.Parallel()

	const src = `package test

func f(a, b bool) bool {
	return a && b
}
`

	fn := lowerFunc(t, src, "f")

	conds := find[*syntax.Cond](fn.Root)
	if len(conds) != 1 {
		t.Fatalf("Got %d conditional expressions, expected 1", len(conds))
	}

	if conds[0].Else != nil {
		t.Errorf("Got else branch %v, expected none", conds[0].Else)
	}

	c := flow.NewContext(0, len(fn.Locals), flow.WithComputeMode(flow.ComputeArguments))
	info := flow.Analyze(t.Context(), fn.Root, c, nil)

	if got := info.AccessMode(c, fn.Locals[1]); got != flow.ReadPotential {
		t.Errorf("Got access %v of b, expected %v", got, flow.ReadPotential)
	}
}

func TestSwitches(t *testing.T) {
	t.Parallel()

	const src = `package test

func f(x any, ch chan int) {
	switch v := x.(type) {
	case int:
		println(v)
	default:
	}

	select {
	case n := <-ch:
		_ = n
	case ch <- 1:
	}

	switch {
	case x == nil:
		fallthrough
	default:
	}
}
`

	fn := lowerFunc(t, src, "f")

	switches := find[*syntax.Switch](fn.Root)
	if len(switches) != 3 {
		t.Fatalf("Got %d switches, expected 3", len(switches))
	}

	typeSwitch, sel, plain := switches[0], switches[1], switches[2]

	// one implicit variable per clause
	if got := find[*syntax.Assign](typeSwitch); len(got) != 2 {
		t.Errorf("Got %d implicit declarations, expected 2", len(got))
	}

	if !sel.Exhaustive || !sel.ImplicitBreak || sel.Init == nil {
		t.Errorf("Got select %+v, expected exhaustive switch evaluating channels first", sel)
	}

	if body := plain.Cases[0].Body; len(body) != 1 || body[0].(*syntax.Branch).Tok != token.FALLTHROUGH {
		t.Errorf("Got case body %v, expected fallthrough", body)
	}
}

func TestStmtMapping(t *testing.T) {
	t.Parallel()

	const src = `package test

func f(x int) int {
	y := x
	;
	return y
}
`

	fset, f := testsource.ParseFile(t, src)
	_, info := testsource.Check(t, fset, f)
	decl := testsource.FuncDecl(t, f, "f")

	fn, err := Func(info, decl)
	if err != nil {
		t.Fatalf("Failed to lower: %v", err)
	}

	nodes := fn.Stmts(decl.Body.List)
	if len(nodes) != 2 {
		t.Fatalf("Got %d lowered statements, expected 2", len(nodes))
	}

	if _, ok := nodes[0].(*syntax.Assign); !ok {
		t.Errorf("Got %T for definition, expected *syntax.Assign", nodes[0])
	}

	if n := fn.Stmt(decl.Body.List[0]); n != nodes[0] {
		t.Errorf("Got %v for first statement, expected %v", n, nodes[0])
	}
}

func TestFuncErrors(t *testing.T) {
	t.Parallel()

	const src = `package test

func external()
`

	_, f := testsource.ParseFile(t, src)

	if _, err := Func(nil, testsource.FuncDecl(t, f, "external")); !errors.Is(err, ErrNoBody) {
		t.Errorf("Got error %v, expected %v", err, ErrNoBody)
	}

	if _, err := Func(nil, &ast.BlockStmt{}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Got error %v, expected %v", err, ErrUnsupported)
	}
}
