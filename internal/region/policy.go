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

	"fillmore-labs.com/flowsummary/flow"
	"fillmore-labs.com/flowsummary/syntax"
)

// selected analyzes the selected statements. Returns leave the region when they
// leave the enclosing function.
type selected struct {
	flow.DefaultPolicy
	root syntax.Node
}

func (p selected) ReturnBoundary(r *syntax.Return) bool { return r.Owner == p.root }

// following analyzes the code executed after the selection. Alternatives
// containing the selection are taken, and loops around the selection are
// analyzed again for the following iterations.
type following struct {
	sel        Selection
	root       syntax.Node
	c          *flow.Context
	reentrance bool
}

var (
	_ flow.Focuser      = (*following)(nil)
	_ flow.LoopFinisher = (*following)(nil)
)

func (p *following) Descend(n syntax.Node) bool { return n.End() > p.sel.End }

func (p *following) ReturnBoundary(r *syntax.Return) bool { return r.Owner == p.root }

func (p *following) Focused(n syntax.Node) bool { return p.sel.Within(n) }

func (p *following) FinishLoop(ctx context.Context, loop syntax.Node, info *flow.Info) *flow.Info {
	if !p.reentrance || !p.sel.Within(loop) {
		return info
	}

	prev := p.c.LoopReentrance()
	p.c.SetLoopReentrance(true)
	again := flow.Analyze(ctx, loop, p.c, reentry{sel: p.sel, root: p.root, loop: loop})
	p.c.SetLoopReentrance(prev)

	info.MergeSequential(again, p.c)

	return info
}

// reentry analyzes a loop around the selection from the start of its next iteration.
type reentry struct {
	sel  Selection
	root syntax.Node
	loop syntax.Node
}

func (p reentry) Descend(n syntax.Node) bool {
	if f, ok := p.loop.(*syntax.For); ok && n == f.Init {
		return false // executed once
	}

	return true
}

func (p reentry) ReturnBoundary(r *syntax.Return) bool {
	return r.Owner == p.root && r.End() <= p.sel.End
}
