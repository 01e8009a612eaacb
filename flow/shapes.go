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

// Conditional accumulates mutually exclusive alternatives, like if/else arms or switch cases.
// The first alternative is adopted as is.
type Conditional struct {
	Info
	seeded bool
}

// NewConditional creates an empty [Conditional].
func NewConditional() *Conditional {
	return &Conditional{Info: Info{kind: Undefined}}
}

// Merge adds an alternative.
func (i *Conditional) Merge(alternative *Info, c *Context) {
	if alternative == nil {
		return
	}

	if !i.seeded {
		i.seeded = true
		i.Assign(alternative)

		return
	}

	i.MergeConditional(alternative, c)
}

// Empty reports whether no alternative has been merged.
func (i *Conditional) Empty() bool { return !i.seeded }

// IfInfo is the flow of an if statement or conditional expression.
type IfInfo struct{ Info }

// NewIf creates an [IfInfo].
func NewIf() *IfInfo { return &IfInfo{Info{kind: Undefined}} }

// MergeCondition merges the condition, which is always evaluated first.
func (i *IfInfo) MergeCondition(cond *Info, c *Context) {
	i.MergeSequential(cond, c)
}

// MergeArms merges the then and else arms. A missing arm is a path that does nothing.
func (i *IfInfo) MergeArms(thenPart, elsePart *Info, c *Context) {
	if thenPart == nil && elsePart == nil {
		return
	}

	arms := NewConditional()
	arms.Merge(thenPart, c)
	arms.Merge(elsePart, c)

	if thenPart == nil || elsePart == nil {
		arms.MergeEmptyCondition(c)
	}

	i.MergeSequential(&arms.Info, c)
}

// WhileInfo is the flow of a loop testing its condition before the body.
type WhileInfo struct{ Info }

// NewWhile creates a [WhileInfo].
func NewWhile() *WhileInfo { return &WhileInfo{Info{kind: Undefined}} }

// MergeCondition merges the loop condition.
func (i *WhileInfo) MergeCondition(cond *Info, c *Context) {
	i.MergeSequential(cond, c)
}

// MergeAction merges the loop body, which may execute zero times
// unless the loop is reentered.
func (i *WhileInfo) MergeAction(action *Info, c *Context) {
	if action == nil {
		return
	}

	if !c.loopReentrance {
		action.MergeEmptyCondition(c)
	}

	i.MergeSequential(action, c)
}

// ForInfo is the flow of a three-clause loop.
type ForInfo struct {
	Info
	increment *Info
}

// NewFor creates a [ForInfo].
func NewFor() *ForInfo { return &ForInfo{Info: Info{kind: Undefined}} }

// MergeInitializer merges the init statement, which is executed once.
func (i *ForInfo) MergeInitializer(init *Info, c *Context) {
	i.MergeSequential(init, c)
}

// MergeCondition merges the loop condition.
func (i *ForInfo) MergeCondition(cond *Info, c *Context) {
	i.MergeSequential(cond, c)
}

// MergeIncrement records the post statement, which runs after the body.
func (i *ForInfo) MergeIncrement(inc *Info, c *Context) {
	if inc == nil {
		return
	}

	inc.MergeEmptyCondition(c)
	i.increment = inc
}

// MergeAction merges the loop body followed by the post statement.
func (i *ForInfo) MergeAction(action *Info, c *Context) {
	switch {
	case action == nil && i.increment == nil:
		return

	case action == nil:
		action = NewSequential()
	}

	action.MergeSequential(i.increment, c)
	i.increment = nil

	if !c.loopReentrance {
		action.MergeEmptyCondition(c)
	}

	i.MergeSequential(action, c)
}

// DoWhileInfo is the flow of a loop executing its body at least once.
type DoWhileInfo struct {
	Info
	actionBranches bool
}

// NewDoWhile creates a [DoWhileInfo].
func NewDoWhile() *DoWhileInfo { return &DoWhileInfo{Info: Info{kind: Undefined}} }

// MergeAction adopts the body, which always executes.
func (i *DoWhileInfo) MergeAction(action *Info, c *Context) {
	if action == nil {
		return
	}

	i.actionBranches = action.Branches()
	i.Assign(action)
}

// MergeCondition merges the condition, unless a branch in the body may skip it.
func (i *DoWhileInfo) MergeCondition(cond *Info, c *Context) {
	if i.actionBranches || cond == nil {
		return
	}

	i.MergeSequential(cond, c)
}

// SwitchInfo is the flow of a multi-way branch.
type SwitchInfo struct {
	Info
	cases        *Conditional
	hasEmptyCase bool
}

// NewSwitch creates a [SwitchInfo].
func NewSwitch() *SwitchInfo {
	return &SwitchInfo{Info: Info{kind: Undefined}, cases: NewConditional()}
}

// MergeTest merges the evaluation of the switch expression.
func (i *SwitchInfo) MergeTest(test *Info, c *Context) {
	i.MergeSequential(test, c)
}

// MergeCase adds a run of case bodies as an alternative. nil denotes an empty case body.
func (i *SwitchInfo) MergeCase(run *Info, c *Context) {
	if run == nil {
		i.hasEmptyCase = true
		return
	}

	i.cases.Merge(run, c)
}

// MergeDefault completes the switch. Without a default case or with an empty case body
// some path executes none of the cases.
func (i *SwitchInfo) MergeDefault(hasDefault bool, c *Context) {
	if !hasDefault || i.hasEmptyCase {
		i.cases.MergeEmptyCondition(c)
	}

	if !i.cases.Empty() {
		i.MergeSequential(&i.cases.Info, c)
	}

	i.cases = NewConditional()
}

// TryInfo is the flow of a guarded block with handlers.
type TryInfo struct{ Info }

// NewTry creates a [TryInfo].
func NewTry() *TryInfo { return &TryInfo{Info{kind: Undefined}} }

// MergeTry adopts the guarded block.
func (i *TryInfo) MergeTry(body *Info, c *Context) {
	i.Assign(body)
}

// MergeCatch merges a handler as an alternative path.
func (i *TryInfo) MergeCatch(handler *Info, c *Context) {
	i.MergeConditional(handler, c)
}

// MergeFinally merges the finally block, which always executes.
func (i *TryInfo) MergeFinally(final *Info, c *Context) {
	i.MergeSequential(final, c)
}
