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
	"log/slog"
	"maps"
	"slices"
	"strings"

	"fillmore-labs.com/flowsummary/syntax"
)

// Unlabeled is the label of break and continue statements without an explicit label.
const Unlabeled = ""

// Info summarizes the control and data flow of a subtree.
//
// Merges never alias the access vectors of two Info values: a vector adopted from
// another Info is copied. Merge arguments are consumed, callers must not use them afterward.
type Info struct {
	kind ReturnKind

	// branches holds labels of branches whose target has not been seen yet.
	// nil means no open branches.
	branches map[string]struct{}

	// access is indexed by slot. nil until the first local access is recorded,
	// then sized to the [Context] length.
	access []AccessMode
}

// New creates an [Info] with the given return kind, no open branches and no accesses.
func New(kind ReturnKind) *Info {
	return &Info{kind: kind}
}

// NewSequential creates an empty [Info] for a sequence of statements.
func NewSequential() *Info {
	return New(NoReturn)
}

// NewReturn creates an [Info] for a return statement.
func NewReturn(void bool) *Info {
	if void {
		return New(VoidReturn)
	}

	return New(ValueReturn)
}

// NewThrow creates an [Info] for a throw statement.
// An exception caught by an enclosing try block does not leave the region.
func NewThrow(c *Context, typ syntax.ExceptionType) *Info {
	if c.IsExceptionCaught(typ) {
		return New(NoReturn)
	}

	return New(Throw)
}

// NewBranch creates an [Info] for a break, continue or goto statement.
func NewBranch(label string) *Info {
	return &Info{kind: NoReturn, branches: map[string]struct{}{label: {}}}
}

// NewLocal creates an [Info] for an access of a local variable.
// Locals outside the range tracked by the [Context] are not recorded.
func NewLocal(c *Context, l *syntax.Local, mode AccessMode) *Info {
	i := NewSequential()

	if slot, ok := c.manage(l); ok && c.considerAccessMode {
		i.createAccess(c)
		i.access[slot] = mode
	}

	return i
}

// ReturnKind returns the return kind.
func (i *Info) ReturnKind() ReturnKind { return i.kind }

// IsUndefined reports whether nothing has been merged yet.
func (i *Info) IsUndefined() bool { return i.kind == Undefined }

// IsNotPossible reports whether incompatible return kinds have been combined.
func (i *Info) IsNotPossible() bool { return i.kind == NotPossible }

// IsNoReturn reports whether control falls through.
func (i *Info) IsNoReturn() bool { return i.kind == NoReturn }

// IsPartialReturn reports whether only some paths return.
func (i *Info) IsPartialReturn() bool { return i.kind == PartialReturn }

// IsVoidReturn reports whether all paths return without value.
func (i *Info) IsVoidReturn() bool { return i.kind == VoidReturn }

// IsValueReturn reports whether all paths return a value.
func (i *Info) IsValueReturn() bool { return i.kind == ValueReturn }

// IsThrow reports whether all paths terminate abruptly.
func (i *Info) IsThrow() bool { return i.kind == Throw }

// IsReturn reports whether all paths return, with or without value.
func (i *Info) IsReturn() bool { return i.kind == VoidReturn || i.kind == ValueReturn }

// Branches reports whether there are unresolved open branches.
func (i *Info) Branches() bool { return len(i.branches) > 0 }

// HasBranch reports whether the label is an open branch.
func (i *Info) HasBranch(label string) bool {
	_, ok := i.branches[label]
	return ok
}

// OpenBranches returns the sorted labels of open branches.
func (i *Info) OpenBranches() []string {
	return slices.Sorted(maps.Keys(i.branches))
}

// RemoveLabel resolves open branches targeting label.
func (i *Info) RemoveLabel(label string) {
	delete(i.branches, label)

	if len(i.branches) == 0 {
		i.branches = nil
	}
}

// AccessMode returns the access mode of a local. Untracked or untouched locals are [Unused].
func (i *Info) AccessMode(c *Context, l *syntax.Local) AccessMode {
	slot, ok := c.Slot(l)
	if !ok || slot >= len(i.access) {
		return Unused
	}

	return i.access[slot]
}

// Get returns all locals whose access mode matches mask, in slot order.
func (i *Info) Get(c *Context, mask AccessMode) []*syntax.Local {
	var locals []*syntax.Local

	for slot, mode := range i.access {
		if !mode.Matches(mask) {
			continue
		}

		if l := c.Local(slot); l != nil {
			locals = append(locals, l)
		}
	}

	return locals
}

// Clone returns a deep copy.
func (i *Info) Clone() *Info {
	if i == nil {
		return nil
	}

	return &Info{
		kind:     i.kind,
		branches: maps.Clone(i.branches),
		access:   slices.Clone(i.access),
	}
}

// MergeSequential merges other, which executes after i unless an open branch of i skips it.
func (i *Info) MergeSequential(other *Info, c *Context) {
	if other == nil {
		return
	}

	if i.Branches() {
		other.skippable(c)
	}

	i.mergeAccessSequential(other, c)

	if c.considerExecutionFlow {
		i.kind = i.kind.Sequential(other.kind)
	}

	i.mergeBranches(other)
}

// MergeConditional merges other, where exactly one of i or other executes.
func (i *Info) MergeConditional(other *Info, c *Context) {
	if other == nil {
		return
	}

	i.mergeAccessConditional(other, c)

	if c.considerExecutionFlow {
		i.kind = i.kind.Conditional(other.kind)
	}

	i.mergeBranches(other)
}

// MergeEmptyCondition accounts for i possibly not executing at all.
func (i *Info) MergeEmptyCondition(c *Context) {
	if c.considerExecutionFlow && (i.kind == ValueReturn || i.kind == VoidReturn) {
		i.kind = PartialReturn
	}

	if !c.considerAccessMode {
		return
	}

	for slot, mode := range i.access {
		i.access[slot] = Unused.Conditional(mode)
	}
}

// Assign replaces the state of i by the state of other.
func (i *Info) Assign(other *Info) {
	if other == nil {
		return
	}

	i.kind = other.kind
	i.branches = maps.Clone(other.branches)
	i.access = slices.Clone(other.access)
}

// AssignAccess adopts the access modes of other, keeping return kind and branches.
func (i *Info) AssignAccess(other *Info) {
	if other == nil {
		return
	}

	i.access = slices.Clone(other.access)
}

func (i *Info) createAccess(c *Context) {
	if i.access != nil {
		return
	}

	i.access = make([]AccessMode, c.length)
	for slot := range i.access {
		i.access[slot] = Unused
	}
}

func (i *Info) mergeAccessSequential(other *Info, c *Context) {
	if !c.considerAccessMode || other.access == nil {
		return
	}

	if i.access == nil { // first access
		i.access = slices.Clone(other.access)
		return
	}

	if c.computeMode == ComputeNone {
		return
	}

	for slot, mode := range other.access {
		i.access[slot] = i.access[slot].Sequential(mode, c.computeMode)
	}
}

func (i *Info) mergeAccessConditional(other *Info, c *Context) {
	if !c.considerAccessMode || (i.access == nil && other.access == nil) {
		return
	}

	i.createAccess(c)

	for slot, mode := range i.access {
		otherMode := Unused
		if other.access != nil {
			otherMode = other.access[slot]
		}

		i.access[slot] = mode.Conditional(otherMode)
	}
}

// mergeBranches unions the open branches.
func (i *Info) mergeBranches(other *Info) {
	if len(other.branches) == 0 {
		return
	}

	if i.branches == nil {
		i.branches = make(map[string]struct{}, len(other.branches))
	}

	maps.Copy(i.branches, other.branches)
}

// skippable accounts for code that may be skipped by a preceding open branch:
// a value return becomes partial and accesses become potential.
func (i *Info) skippable(c *Context) {
	if c.considerExecutionFlow && i.kind == ValueReturn {
		i.kind = PartialReturn
	}

	if !c.considerAccessMode {
		return
	}

	for slot, mode := range i.access {
		i.access[slot] = mode.Widen()
	}
}

// LogValue implements [slog.LogValuer].
func (i *Info) LogValue() slog.Value {
	if i == nil {
		return slog.StringValue("<nil>")
	}

	attrs := []slog.Attr{slog.String("kind", i.kind.String())}

	if len(i.branches) > 0 {
		attrs = append(attrs, slog.String("branches", strings.Join(i.OpenBranches(), ",")))
	}

	if i.access != nil {
		modes := make([]string, len(i.access))
		for slot, mode := range i.access {
			modes[slot] = mode.String()
		}

		attrs = append(attrs, slog.String("access", strings.Join(modes, ",")))
	}

	return slog.GroupValue(attrs...)
}
