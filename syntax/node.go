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

package syntax

import (
	"fmt"
	"go/token"
	"slices"
)

// Node is an element of the syntax tree.
type Node interface {
	Pos() token.Pos // position of first character belonging to the node
	End() token.Pos // position of first character immediately after the node
	node()
}

// Span is the source range of a [Node]. It is embedded in every node type.
type Span struct {
	Start, Stop token.Pos
}

// SpanOf returns the source range of anything with a position.
func SpanOf(n interface {
	Pos() token.Pos
	End() token.Pos
},
) Span {
	return Span{Start: n.Pos(), Stop: n.End()}
}

// Pos implements [Node].
func (s Span) Pos() token.Pos { return s.Start }

// End implements [Node].
func (s Span) End() token.Pos { return s.Stop }

// Contains reports whether the position lies within the span.
func (s Span) Contains(pos token.Pos) bool { return s.Start <= pos && pos < s.Stop }

func (Span) node() {}

// Local is a local variable binding.
type Local struct {
	ID   int    // Stable small non-negative identifier
	Name string // Source name, for diagnostics
	Obj  any    // Host binding, e.g. *types.Var
}

func (l *Local) String() string {
	if l == nil {
		return "<nil>"
	}

	return l.Name
}

// ExceptionType is the type of a value that terminates control flow abruptly.
// Implementations must be comparable.
type ExceptionType interface {
	// Supertype returns the next more general type, or nil at the root of the hierarchy.
	Supertype() ExceptionType
}

// AssignOp distinguishes assignment forms.
type AssignOp uint8

const (
	// Plain is an assignment "x = y".
	Plain AssignOp = iota

	// Define is a declaration with initialization "x := y" or "var x = y".
	Define

	// Compound is an assignment operation like "x += y", which reads x before writing it.
	Compound
)

type (
	// Func is the body of a function. It is the owner of [Return] statements.
	Func struct {
		Span
		Body *Block
		Void bool // The function returns no value
	}

	// Block is a sequence of statements.
	Block struct {
		Span
		List []Node
	}

	// If is a conditional statement. Init and Else may be nil.
	If struct {
		Span
		Init, Cond, Then, Else Node
	}

	// While is a loop evaluating Cond before each execution of Body.
	While struct {
		Span
		Cond, Body Node
	}

	// For is a three-clause loop. Init, Cond and Post may be nil.
	For struct {
		Span
		Init, Cond, Post, Body Node
	}

	// DoWhile is a loop executing Body at least once, evaluating Cond afterwards.
	DoWhile struct {
		Span
		Body, Cond Node
	}

	// Switch is a multi-way branch. Init and Tag may be nil.
	Switch struct {
		Span
		Init, Tag Node
		Cases     []*Case

		// ImplicitBreak marks switches whose cases do not fall through
		// unless they end with a "fallthrough" [Branch].
		ImplicitBreak bool

		// Exhaustive marks switches where exactly one case always executes,
		// regardless of a default case.
		Exhaustive bool
	}

	// Case is a clause of a [Switch].
	Case struct {
		Span
		Exprs   []Node
		Body    []Node
		Default bool
	}

	// Try is a guarded block with exception handlers. Finally may be nil.
	Try struct {
		Span
		Body    *Block
		Catches []*Catch
		Finally *Block
	}

	// Catch is an exception handler of a [Try].
	Catch struct {
		Span
		Type ExceptionType // nil catches nothing
		Body *Block
	}

	// Return leaves the function Owner.
	Return struct {
		Span
		Results []Node
		Void    bool // No value is returned
		Owner   Node // The enclosing *Func or *Closure
	}

	// Throw terminates abruptly with an exception of Type, which may be nil when unknown.
	Throw struct {
		Span
		X    Node
		Type ExceptionType
	}

	// Branch is a break, continue, goto or fallthrough statement.
	Branch struct {
		Span
		Tok   token.Token
		Label string // Empty for unlabeled branches
	}

	// Labeled is a labeled statement.
	Labeled struct {
		Span
		Label string
		Stmt  Node
	}

	// Assign is an assignment or a declaration with initialization.
	Assign struct {
		Span
		Lhs, Rhs []Node
		Op       AssignOp
	}

	// IncDec is an increment or decrement statement.
	IncDec struct {
		Span
		X Node
	}

	// ExprStmt is an expression evaluated for its side effects.
	ExprStmt struct {
		Span
		X Node
	}

	// Name is a reference to a local variable.
	Name struct {
		Span
		Local *Local
	}

	// Alias is an access to a local variable that can't be classified,
	// like taking its address or capturing it in a closure.
	Alias struct {
		Span
		Local *Local
	}

	// Lit is an expression without local variable accesses.
	Lit struct {
		Span
	}

	// Seq is a list of expressions evaluated in order, like call arguments.
	Seq struct {
		Span
		List []Node
	}

	// Cond is a conditional expression. Else may be nil, as for short-circuit operators.
	Cond struct {
		Span
		Cond, Then, Else Node
	}

	// Closure is a function literal.
	Closure struct {
		Span
		Body *Block
	}
)

// Children returns the direct children of n in evaluation order, skipping nil nodes.
func Children(n Node) []Node {
	var c children

	switch n := n.(type) {
	case *Func:
		c.add(n.Body)

	case *Block:
		c.addAll(n.List)

	case *If:
		c.add(n.Init, n.Cond, n.Then, n.Else)

	case *While:
		c.add(n.Cond, n.Body)

	case *For:
		c.add(n.Init, n.Cond, n.Body, n.Post)

	case *DoWhile:
		c.add(n.Body, n.Cond)

	case *Switch:
		c.add(n.Init, n.Tag)
		for _, cc := range n.Cases {
			c.add(cc)
		}

	case *Case:
		c.addAll(n.Exprs)
		c.addAll(n.Body)

	case *Try:
		c.add(n.Body)
		for _, cc := range n.Catches {
			c.add(cc)
		}
		c.add(n.Finally)

	case *Catch:
		c.add(n.Body)

	case *Return:
		c.addAll(n.Results)

	case *Throw:
		c.add(n.X)

	case *Labeled:
		c.add(n.Stmt)

	case *Assign:
		c.addAll(n.Rhs)
		c.addAll(n.Lhs)

	case *IncDec:
		c.add(n.X)

	case *ExprStmt:
		c.add(n.X)

	case *Seq:
		c.addAll(n.List)

	case *Cond:
		c.add(n.Cond, n.Then, n.Else)

	case *Closure:
		c.add(n.Body)

	case *Branch, *Name, *Alias, *Lit, nil:

	default:
		panic(fmt.Sprintf("unexpected syntax node %T", n))
	}

	return c.list
}

type children struct{ list []Node }

// add appends non-nil nodes. Typed nil pointers are skipped too.
func (c *children) add(nodes ...Node) {
	for _, n := range nodes {
		if IsNil(n) {
			continue
		}

		c.list = append(c.list, n)
	}
}

func (c *children) addAll(nodes []Node) { c.add(nodes...) }

// IsNil reports whether n is nil or a typed nil pointer.
func IsNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Block:
		return n == nil
	case *Case:
		return n == nil
	case *Catch:
		return n == nil
	default:
		return false
	}
}

// Inspect traverses the tree rooted at n in depth-first order.
// If f returns false, the children of the current node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if IsNil(n) || !f(n) {
		return
	}

	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// PathEnclosing returns the nodes enclosing pos, innermost first, ending with root.
// It returns nil when root does not contain pos.
func PathEnclosing(root Node, pos token.Pos) []Node {
	if IsNil(root) || pos < root.Pos() || pos >= root.End() {
		return nil
	}

	path := []Node{root}

	for n := root; ; {
		var next Node

		for _, c := range Children(n) {
			if c.Pos() <= pos && pos < c.End() {
				next = c
				break
			}
		}

		if next == nil {
			break
		}

		path = append(path, next)
		n = next
	}

	slices.Reverse(path) // innermost first

	return path
}
