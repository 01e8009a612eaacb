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

	"fillmore-labs.com/flowsummary/syntax"
)

// Context is the configuration and scratch state of a single analysis.
//
// It tracks the contiguous range of local variable IDs [start, start+length),
// maps slots back to their [syntax.Local] bindings and holds the stack of exception
// types caught by the enclosing try statements.
//
// A Context must not be shared between concurrently running analyses.
type Context struct {
	start, length int

	considerAccessMode    bool
	considerExecutionFlow bool
	loopReentrance        bool
	computeMode           ComputeMode

	locals     []*syntax.Local
	exceptions [][]syntax.ExceptionType
}

// ContextOption configures a [Context].
type ContextOption func(c *Context)

// WithAccessMode configures whether merges consider local variable access modes.
func WithAccessMode(consider bool) ContextOption {
	return func(c *Context) { c.considerAccessMode = consider }
}

// WithExecutionFlow configures whether merges consider return kinds.
func WithExecutionFlow(consider bool) ContextOption {
	return func(c *Context) { c.considerExecutionFlow = consider }
}

// WithLoopReentrance configures whether loop bodies are assumed to have executed before.
func WithLoopReentrance(reentrance bool) ContextOption {
	return func(c *Context) { c.loopReentrance = reentrance }
}

// WithComputeMode selects the sequential access merge rule.
func WithComputeMode(mode ComputeMode) ContextOption {
	return func(c *Context) { c.computeMode = mode }
}

// NewContext creates a [Context] tracking length locals starting at ID start.
// Access modes and execution flow are considered by default.
func NewContext(start, length int, opts ...ContextOption) *Context {
	length = max(length, 0)

	c := &Context{
		start:                 start,
		length:                length,
		considerAccessMode:    true,
		considerExecutionFlow: true,
		locals:                make([]*syntax.Local, length),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Start returns the first tracked local ID.
func (c *Context) Start() int { return c.start }

// Len returns the number of tracked locals.
func (c *Context) Len() int { return c.length }

// ConsiderAccessMode reports whether merges consider access modes.
func (c *Context) ConsiderAccessMode() bool { return c.considerAccessMode }

// ConsiderExecutionFlow reports whether merges consider return kinds.
func (c *Context) ConsiderExecutionFlow() bool { return c.considerExecutionFlow }

// LoopReentrance reports whether loop bodies are assumed to have executed before.
func (c *Context) LoopReentrance() bool { return c.loopReentrance }

// SetLoopReentrance switches loop reentrance mode, used for a second pass over a loop.
func (c *Context) SetLoopReentrance(reentrance bool) { c.loopReentrance = reentrance }

// ComputeMode returns the sequential access merge rule.
func (c *Context) ComputeMode() ComputeMode { return c.computeMode }

// Slot returns the slot index of the local, and false if it is not tracked.
func (c *Context) Slot(l *syntax.Local) (int, bool) {
	if l == nil {
		return 0, false
	}

	slot := l.ID - c.start
	if slot < 0 || slot >= c.length {
		return 0, false
	}

	return slot, true
}

// Local returns the binding of a slot, or nil if the slot was never touched.
func (c *Context) Local(slot int) *syntax.Local {
	if slot < 0 || slot >= len(c.locals) {
		return nil
	}

	return c.locals[slot]
}

// manage records the back reference of a touched local and returns its slot.
func (c *Context) manage(l *syntax.Local) (int, bool) {
	slot, ok := c.Slot(l)
	if ok && c.locals[slot] == nil {
		c.locals[slot] = l
	}

	return slot, ok
}

// PushExceptions enters a try block catching the given types.
func (c *Context) PushExceptions(caught []syntax.ExceptionType) {
	c.exceptions = append(c.exceptions, caught)
}

// PopExceptions leaves the innermost try block.
func (c *Context) PopExceptions() {
	if n := len(c.exceptions); n > 0 {
		c.exceptions[n-1] = nil
		c.exceptions = c.exceptions[:n-1]
	}
}

// IsExceptionCaught reports whether an exception of the given type is caught by an enclosing try block.
// Unknown (nil) types are never caught.
func (c *Context) IsExceptionCaught(typ syntax.ExceptionType) bool {
	if typ == nil {
		return false
	}

	for _, caught := range c.exceptions {
		for _, catchType := range caught {
			if catchType == nil {
				continue
			}

			for t := typ; t != nil; t = t.Supertype() {
				if t == catchType {
					return true
				}
			}
		}
	}

	return false
}

// LogValue implements [slog.LogValuer].
func (c *Context) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("start", c.start),
		slog.Int("length", c.length),
		slog.Bool("accessMode", c.considerAccessMode),
		slog.Bool("executionFlow", c.considerExecutionFlow),
		slog.Bool("loopReentrance", c.loopReentrance),
		slog.String("computeMode", c.computeMode.String()),
	)
}
