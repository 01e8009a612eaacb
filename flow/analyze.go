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

package flow

import (
	"context"
	"go/token"
	"runtime/trace"

	"fillmore-labs.com/flowsummary/syntax"
)

// Policy decides which parts of a tree are analyzed.
type Policy interface {
	// Descend reports whether the node is analyzed. Skipped nodes contribute nothing.
	Descend(n syntax.Node) bool

	// ReturnBoundary reports whether a return statement leaves the summarized scope.
	// Other returns are treated as plain evaluation of their results.
	ReturnBoundary(r *syntax.Return) bool
}

// DefaultPolicy descends into every node and accepts every return statement.
// Embed it to override only one of the hooks.
type DefaultPolicy struct{}

// Descend implements [Policy].
func (DefaultPolicy) Descend(syntax.Node) bool { return true }

// ReturnBoundary implements [Policy].
func (DefaultPolicy) ReturnBoundary(*syntax.Return) bool { return true }

// Focuser is an optional extension of [Policy]. When an alternative of an if statement,
// a conditional expression or a switch is focused, the construct is analyzed as if
// control always took that alternative.
type Focuser interface {
	Focused(n syntax.Node) bool
}

// LoopFinisher is an optional extension of [Policy] amending the summary of a loop
// statement after it has been analyzed.
type LoopFinisher interface {
	FinishLoop(ctx context.Context, loop syntax.Node, info *Info) *Info
}

// Analyze summarizes the flow of the tree rooted at root.
//
// The tree is walked in post-order, every node merging the results of its children.
// A root that is skipped or contributes nothing yields an empty sequential [Info].
func Analyze(ctx context.Context, root syntax.Node, c *Context, p Policy) *Info {
	defer trace.StartRegion(ctx, "Analyze").End()

	if p == nil {
		p = DefaultPolicy{}
	}

	w := newWalker(ctx, c, p)

	if info := w.visit(root); info != nil {
		return info
	}

	return NewSequential()
}

// AnalyzeSequence summarizes a list of sibling statements executed in order,
// like a selection of statements within a block.
func AnalyzeSequence(ctx context.Context, nodes []syntax.Node, c *Context, p Policy) *Info {
	defer trace.StartRegion(ctx, "AnalyzeSequence").End()

	if p == nil {
		p = DefaultPolicy{}
	}

	w := newWalker(ctx, c, p)

	if info := w.sequence(nodes); info != nil {
		return info
	}

	return NewSequential()
}

type walker struct {
	ctx context.Context //nolint:containedctx
	c   *Context
	p   Policy

	focus  Focuser      // optional
	finish LoopFinisher // optional
}

func newWalker(ctx context.Context, c *Context, p Policy) *walker {
	w := &walker{ctx: ctx, c: c, p: p}
	w.focus, _ = p.(Focuser)
	w.finish, _ = p.(LoopFinisher)

	return w
}

func (w *walker) focused(n syntax.Node) bool {
	return w.focus != nil && !syntax.IsNil(n) && w.focus.Focused(n)
}

// loop completes the summary of a loop statement.
func (w *walker) loop(n syntax.Node, info *Info) *Info {
	info.RemoveLabel(Unlabeled)

	if w.finish == nil {
		return info
	}

	return w.finish.FinishLoop(w.ctx, n, info)
}

// conditional summarizes an if statement or conditional expression.
func (w *walker) conditional(init, cond, thenPart, elsePart syntax.Node) *Info {
	c := w.c
	info := NewIf()
	info.MergeCondition(w.visit(init), c)
	info.MergeCondition(w.visit(cond), c)

	switch {
	case w.focused(thenPart):
		info.MergeSequential(w.visit(thenPart), c)

	case w.focused(elsePart):
		info.MergeSequential(w.visit(elsePart), c)

	default:
		info.MergeArms(w.visit(thenPart), w.visit(elsePart), c)
	}

	return &info.Info
}

// visit returns the flow of n, or nil when n contributes nothing.
func (w *walker) visit(n syntax.Node) *Info {
	if syntax.IsNil(n) || !w.p.Descend(n) {
		return nil
	}

	c := w.c

	switch n := n.(type) {
	case *syntax.Func:
		return w.visit(n.Body)

	case *syntax.Block:
		return w.block(n)

	case *syntax.If:
		return w.conditional(n.Init, n.Cond, n.Then, n.Else)

	case *syntax.Cond:
		return w.conditional(nil, n.Cond, n.Then, n.Else)

	case *syntax.While:
		info := NewWhile()
		info.MergeCondition(w.visit(n.Cond), c)
		info.MergeAction(w.visit(n.Body), c)

		return w.loop(n, &info.Info)

	case *syntax.For:
		info := NewFor()
		info.MergeInitializer(w.visit(n.Init), c)
		info.MergeCondition(w.visit(n.Cond), c)
		info.MergeIncrement(w.visit(n.Post), c)
		info.MergeAction(w.visit(n.Body), c)

		return w.loop(n, &info.Info)

	case *syntax.DoWhile:
		info := NewDoWhile()
		info.MergeAction(w.visit(n.Body), c)
		info.MergeCondition(w.visit(n.Cond), c)

		return w.loop(n, &info.Info)

	case *syntax.Switch:
		return w.switchStmt(n)

	case *syntax.Case:
		return w.sequence(n.Body)

	case *syntax.Try:
		return w.try(n)

	case *syntax.Catch:
		return w.visit(n.Body)

	case *syntax.Return:
		results := w.sequence(n.Results)
		if !w.p.ReturnBoundary(n) {
			return results
		}

		info := NewReturn(n.Void)
		info.AssignAccess(results)

		return info

	case *syntax.Throw:
		info := NewThrow(c, n.Type)
		info.AssignAccess(w.visit(n.X))

		return info

	case *syntax.Branch:
		if n.Tok == token.FALLTHROUGH {
			return NewBranch(Unlabeled)
		}

		return NewBranch(n.Label)

	case *syntax.Labeled:
		info := w.visit(n.Stmt)
		if info != nil {
			info.RemoveLabel(n.Label)
		}

		return info

	case *syntax.Assign:
		return w.assign(n)

	case *syntax.IncDec:
		info := NewSequential()
		info.MergeSequential(w.visit(n.X), c)
		info.MergeSequential(w.write(n.X), c)

		return info

	case *syntax.ExprStmt:
		return w.visit(n.X)

	case *syntax.Name:
		return NewLocal(c, n.Local, Read)

	case *syntax.Alias:
		return NewLocal(c, n.Local, Unknown)

	case *syntax.Lit:
		return nil

	case *syntax.Seq:
		return w.sequence(n.List)

	case *syntax.Closure:
		return w.closure(n)

	default:
		return nil
	}
}

// sequence merges the flow of nodes executed in order, returning nil if none contributes.
func (w *walker) sequence(nodes []syntax.Node) *Info {
	var info *Info

	for _, n := range nodes {
		child := w.visit(n)
		if child == nil {
			continue
		}

		if info == nil {
			info = NewSequential()
		}

		info.MergeSequential(child, w.c)
	}

	return info
}

func (w *walker) block(n *syntax.Block) *Info {
	info := w.sequence(n.List)
	if info == nil {
		return NewSequential()
	}

	// goto targets within this block
	for _, s := range n.List {
		if l, ok := s.(*syntax.Labeled); ok {
			info.RemoveLabel(l.Label)
		}
	}

	return info
}

func (w *walker) assign(n *syntax.Assign) *Info {
	c := w.c
	info := NewSequential()

	if n.Op == syntax.Compound {
		for _, lhs := range n.Lhs {
			info.MergeSequential(w.visit(lhs), c)
		}
	}

	info.MergeSequential(w.sequence(n.Rhs), c)

	for _, lhs := range n.Lhs {
		info.MergeSequential(w.write(lhs), c)
	}

	return info
}

// write returns the flow of storing into n. Only plain names are written, other
// targets like index expressions are evaluated.
func (w *walker) write(n syntax.Node) *Info {
	name, ok := n.(*syntax.Name)
	if !ok {
		return w.visit(n)
	}

	if !w.p.Descend(name) {
		return nil
	}

	return NewLocal(w.c, name.Local, Write)
}

// caseFlow is the flow of a single case body.
type caseFlow struct {
	body  *Info
	falls bool // control continues into the next case
}

func (w *walker) switchStmt(n *syntax.Switch) *Info {
	c := w.c
	info := NewSwitch()
	info.MergeTest(w.visit(n.Init), c)
	info.MergeTest(w.visit(n.Tag), c)

	var (
		cases      = make([]caseFlow, 0, len(n.Cases))
		tested     bool
		hasDefault = n.Exhaustive
		focus      = -1
	)

	for _, cc := range n.Cases {
		if syntax.IsNil(cc) || !w.p.Descend(cc) {
			continue
		}

		hasDefault = hasDefault || cc.Default

		if w.focused(cc) {
			focus = len(cases)
		}

		// Only the first test is certain to be evaluated.
		if test := w.sequence(cc.Exprs); test != nil {
			if tested {
				test.MergeEmptyCondition(c)
			}

			info.MergeTest(test, c)
		}

		tested = tested || len(cc.Exprs) > 0

		body, falls := cc.Body, true
		if n.ImplicitBreak {
			body, falls = trimFallthrough(body)
		}

		cases = append(cases, caseFlow{body: w.sequence(body), falls: falls})
	}

	if focus >= 0 {
		info.MergeSequential(w.caseRun(cases[focus:]), c)
		info.RemoveLabel(Unlabeled)

		return &info.Info
	}

	// Every case is an entry point of a run continuing into the following cases.
	for k := range cases {
		info.MergeCase(w.caseRun(cases[k:]), c)
	}

	info.MergeDefault(hasDefault, c)
	info.RemoveLabel(Unlabeled)

	return &info.Info
}

// caseRun merges the case bodies executed when entering at the first case until a
// return or an open branch, returning nil if no statement executes.
func (w *walker) caseRun(cases []caseFlow) *Info {
	var run *Info

	for _, cf := range cases {
		if cf.body != nil {
			if run == nil {
				run = NewSequential()
			}

			run.MergeSequential(cf.body.Clone(), w.c)
		}

		if !cf.falls || (run != nil && (run.IsReturn() || run.IsPartialReturn() || run.Branches())) {
			break
		}
	}

	return run
}

// trimFallthrough removes a final fallthrough statement.
func trimFallthrough(body []syntax.Node) ([]syntax.Node, bool) {
	if len(body) == 0 {
		return body, false
	}

	if b, ok := body[len(body)-1].(*syntax.Branch); ok && b.Tok == token.FALLTHROUGH {
		return body[:len(body)-1], true
	}

	return body, false
}

func (w *walker) try(n *syntax.Try) *Info {
	c := w.c
	info := NewTry()

	caught := make([]syntax.ExceptionType, 0, len(n.Catches))
	for _, cc := range n.Catches {
		if !syntax.IsNil(cc) {
			caught = append(caught, cc.Type)
		}
	}

	c.PushExceptions(caught)
	body := w.visit(n.Body)
	c.PopExceptions()

	info.MergeTry(body, c)

	for _, cc := range n.Catches {
		info.MergeCatch(w.visit(cc), c)
	}

	info.MergeFinally(w.visit(n.Finally), c)

	return &info.Info
}

// closure summarizes a function literal. Its body may run any number of times at
// any point later, so its accesses are unknown and its exits don't affect the enclosing flow.
func (w *walker) closure(n *syntax.Closure) *Info {
	info := NewSequential()

	body := w.visit(n.Body)
	if body == nil || body.access == nil {
		return info
	}

	for slot, mode := range body.access {
		if mode != Unused {
			body.access[slot] = Unknown
		}
	}

	info.access = body.access

	return info
}
