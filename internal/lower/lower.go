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

package lower

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ast/astutil"

	"fillmore-labs.com/flowsummary/internal/lower/tracker"
	"fillmore-labs.com/flowsummary/syntax"
)

var (
	// ErrNoBody is returned for function declarations without body.
	ErrNoBody = errors.New("function has no body")

	// ErrUnsupported is returned for nodes that can't be lowered, like [ast.BadStmt].
	ErrUnsupported = errors.New("unsupported syntax")
)

// Panic is the exception type of recoverable panics. Every panic value is caught
// by a deferred function calling recover.
var Panic syntax.ExceptionType = panicValue{}

type panicValue struct{}

func (panicValue) Supertype() syntax.ExceptionType { return nil }

// Function is a Go function lowered into a [syntax] tree.
type Function struct {
	Root   *syntax.Func
	Locals []*syntax.Local // Indexed by ID

	stmts map[ast.Stmt]syntax.Node
	vars  map[*types.Var]*syntax.Local
}

// Local returns the binding of a variable, or nil when v is not a local of the function.
func (f *Function) Local(v *types.Var) *syntax.Local { return f.vars[v] }

// Stmt returns the lowered form of a statement, or nil when it was dropped.
func (f *Function) Stmt(s ast.Stmt) syntax.Node { return f.stmts[s] }

// Stmts returns the lowered forms of a statement list, skipping dropped statements.
func (f *Function) Stmts(list []ast.Stmt) []syntax.Node {
	nodes := make([]syntax.Node, 0, len(list))

	for _, s := range list {
		if n := f.stmts[s]; n != nil {
			nodes = append(nodes, n)
		}
	}

	return nodes
}

// Var returns the variable bound by a local.
func Var(l *syntax.Local) *types.Var {
	v, _ := l.Obj.(*types.Var)
	return v
}

// Func lowers a function declaration or function literal.
//
// Locals are numbered in order of first appearance, starting with receiver, parameters
// and results. Variables of enclosing functions referenced by a function literal are
// locals too.
func Func(info *types.Info, fn ast.Node) (*Function, error) {
	var (
		recv  *ast.FieldList
		ftype *ast.FuncType
		body  *ast.BlockStmt
	)

	switch fn := fn.(type) {
	case *ast.FuncDecl:
		recv, ftype, body = fn.Recv, fn.Type, fn.Body

	case *ast.FuncLit:
		ftype, body = fn.Type, fn.Body

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, fn)
	}

	if body == nil {
		return nil, ErrNoBody
	}

	l := &lowerer{
		info:    info,
		tracker: tracker.New(info),
		f: &Function{
			stmts: make(map[ast.Stmt]syntax.Node),
			vars:  make(map[*types.Var]*syntax.Local),
		},
	}

	root := &syntax.Func{Span: syntax.SpanOf(fn), Void: ftype.Results.NumFields() == 0}
	l.f.Root = root

	l.declare(recv)
	l.scope = l.enter(root, ftype, false)
	root.Body = l.body(body)

	if l.err != nil {
		return nil, l.err
	}

	return l.f, nil
}

type lowerer struct {
	info    *types.Info
	tracker tracker.Tracker
	f       *Function
	scope   funcScope
	err     error
}

// funcScope describes the innermost function being lowered.
type funcScope struct {
	owner  syntax.Node
	void   bool
	named  []*ast.Ident // named results
	nested bool         // inside a function literal of the lowered function
}

func (l *lowerer) enter(owner syntax.Node, ftype *ast.FuncType, nested bool) funcScope {
	l.declare(ftype.Params)
	l.declare(ftype.Results)

	s := funcScope{owner: owner, void: ftype.Results.NumFields() == 0, nested: nested}

	if ftype.Results != nil {
		for _, field := range ftype.Results.List {
			s.named = append(s.named, field.Names...)
		}
	}

	return s
}

func (l *lowerer) declare(fields *ast.FieldList) {
	if fields == nil {
		return
	}

	for _, field := range fields.List {
		for _, id := range field.Names {
			l.local(l.info.Defs[id])
		}
	}
}

func (l *lowerer) fail(n ast.Node) {
	if l.err == nil {
		l.err = fmt.Errorf("%w: %T at %d", ErrUnsupported, n, n.Pos())
	}
}

// local returns the binding of obj, allocating a new ID on first sight.
// Package level variables, fields and blank identifiers are not locals.
func (l *lowerer) local(obj types.Object) *syntax.Local {
	v, ok := obj.(*types.Var)
	if !ok || v.IsField() || v.Name() == "_" || v.Pkg() == nil || v.Parent() == v.Pkg().Scope() {
		return nil
	}

	if loc, ok := l.f.vars[v]; ok {
		return loc
	}

	loc := &syntax.Local{ID: len(l.f.Locals), Name: v.Name(), Obj: v}
	l.f.Locals = append(l.f.Locals, loc)
	l.f.vars[v] = loc

	return loc
}

func (l *lowerer) object(id *ast.Ident) types.Object {
	if obj := l.info.Uses[id]; obj != nil {
		return obj
	}

	return l.info.Defs[id]
}

// reference returns an access of loc located at span.
func (l *lowerer) reference(span syntax.Span, loc *syntax.Local) syntax.Node {
	if l.scope.nested {
		return &syntax.Alias{Span: span, Local: loc}
	}

	return &syntax.Name{Span: span, Local: loc}
}

// body lowers a function body, where defer statements guard the remaining statements.
func (l *lowerer) body(b *ast.BlockStmt) *syntax.Block {
	return &syntax.Block{Span: syntax.SpanOf(b), List: l.guarded(b.List, b.Rbrace)}
}

func (l *lowerer) guarded(list []ast.Stmt, end token.Pos) []syntax.Node {
	nodes := make([]syntax.Node, 0, len(list))

	for i, s := range list {
		if d, ok := s.(*ast.DeferStmt); ok {
			return append(nodes, l.deferred(d, list[i+1:], end)...)
		}

		if n := l.stmt(s); n != nil {
			nodes = append(nodes, n)
		}
	}

	return nodes
}

func (l *lowerer) list(list []ast.Stmt) []syntax.Node {
	nodes := make([]syntax.Node, 0, len(list))

	for _, s := range list {
		if n := l.stmt(s); n != nil {
			nodes = append(nodes, n)
		}
	}

	return nodes
}

func (l *lowerer) block(b *ast.BlockStmt) *syntax.Block {
	return &syntax.Block{Span: syntax.SpanOf(b), List: l.list(b.List)}
}

func (l *lowerer) stmt(s ast.Stmt) syntax.Node {
	n := l.lowerStmt(s)
	if n != nil {
		l.f.stmts[s] = n
	}

	return n
}

//nolint:cyclop,gocyclo,funlen
func (l *lowerer) lowerStmt(s ast.Stmt) syntax.Node {
	span := syntax.SpanOf(s)

	switch s := s.(type) {
	case *ast.BlockStmt:
		return l.block(s)

	case *ast.ExprStmt:
		if call, ok := astutil.Unparen(s.X).(*ast.CallExpr); ok {
			switch l.tracker.Terminates(call) {
			case tracker.Panics:
				return &syntax.Throw{Span: span, X: l.call(call), Type: Panic}

			case tracker.Exits:
				return &syntax.Throw{Span: span, X: l.call(call)}
			}
		}

		return &syntax.ExprStmt{Span: span, X: l.expr(s.X)}

	case *ast.AssignStmt:
		op := syntax.Compound

		switch s.Tok {
		case token.DEFINE:
			op = syntax.Define

		case token.ASSIGN:
			op = syntax.Plain
		}

		return &syntax.Assign{Span: span, Lhs: l.targets(s.Lhs), Rhs: l.exprs(s.Rhs), Op: op}

	case *ast.IncDecStmt:
		return &syntax.IncDec{Span: span, X: l.target(s.X)}

	case *ast.DeclStmt:
		return l.decl(s)

	case *ast.ReturnStmt:
		return l.returnStmt(s)

	case *ast.IfStmt:
		n := &syntax.If{Span: span, Init: l.optStmt(s.Init), Cond: l.expr(s.Cond), Then: l.block(s.Body)}
		if s.Else != nil {
			n.Else = l.stmt(s.Else)
		}

		return n

	case *ast.ForStmt:
		return l.forStmt(s)

	case *ast.RangeStmt:
		return l.rangeStmt(s)

	case *ast.SwitchStmt:
		n := &syntax.Switch{Span: span, Init: l.optStmt(s.Init), Tag: l.expr(s.Tag), ImplicitBreak: true}
		for _, cc := range s.Body.List {
			if cc, ok := cc.(*ast.CaseClause); ok {
				n.Cases = append(n.Cases, &syntax.Case{
					Span:    syntax.SpanOf(cc),
					Exprs:   l.exprs(cc.List),
					Body:    l.list(cc.Body),
					Default: cc.List == nil,
				})
			}
		}

		return n

	case *ast.TypeSwitchStmt:
		return l.typeSwitch(s)

	case *ast.SelectStmt:
		return l.selectStmt(s)

	case *ast.LabeledStmt:
		return &syntax.Labeled{Span: span, Label: s.Label.Name, Stmt: l.stmt(s.Stmt)}

	case *ast.BranchStmt:
		n := &syntax.Branch{Span: span, Tok: s.Tok}
		if s.Label != nil {
			n.Label = s.Label.Name
		}

		return n

	case *ast.DeferStmt:
		return &syntax.ExprStmt{Span: span, X: l.call(s.Call)}

	case *ast.GoStmt:
		return &syntax.ExprStmt{Span: span, X: l.call(s.Call)}

	case *ast.SendStmt:
		return &syntax.ExprStmt{Span: span, X: l.seq(span, l.expr(s.Chan), l.expr(s.Value))}

	case *ast.EmptyStmt:
		return nil

	default:
		l.fail(s)
		return nil
	}
}

func (l *lowerer) optStmt(s ast.Stmt) syntax.Node {
	if s == nil {
		return nil
	}

	return l.stmt(s)
}

func (l *lowerer) decl(s *ast.DeclStmt) syntax.Node {
	g, ok := s.Decl.(*ast.GenDecl)
	if !ok || g.Tok != token.VAR {
		return nil
	}

	var nodes []syntax.Node

	for _, spec := range g.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}

		// Variables without initializer are set to their zero value.
		lhs := make([]ast.Expr, len(vs.Names))
		for i, id := range vs.Names {
			lhs[i] = id
		}

		nodes = append(nodes, &syntax.Assign{
			Span: syntax.SpanOf(vs),
			Lhs:  l.targets(lhs),
			Rhs:  l.exprs(vs.Values),
			Op:   syntax.Define,
		})
	}

	return &syntax.Seq{Span: syntax.SpanOf(s), List: nodes}
}

func (l *lowerer) returnStmt(s *ast.ReturnStmt) syntax.Node {
	span := syntax.SpanOf(s)
	n := &syntax.Return{Span: span, Results: l.exprs(s.Results), Void: l.scope.void, Owner: l.scope.owner}

	// A bare return reads the named results.
	if len(s.Results) == 0 {
		for _, id := range l.scope.named {
			if loc := l.local(l.info.Defs[id]); loc != nil {
				n.Results = append(n.Results, l.reference(span, loc))
			}
		}
	}

	return n
}

// forStmt lowers a loop. Without condition the body runs at least once.
func (l *lowerer) forStmt(s *ast.ForStmt) syntax.Node {
	span := syntax.SpanOf(s)

	if s.Cond != nil {
		return &syntax.For{
			Span: span,
			Init: l.optStmt(s.Init),
			Cond: l.expr(s.Cond),
			Post: l.optStmt(s.Post),
			Body: l.block(s.Body),
		}
	}

	loop := &syntax.DoWhile{Span: span, Body: l.block(s.Body), Cond: l.optStmt(s.Post)}
	if s.Init == nil {
		return loop
	}

	return &syntax.Block{Span: span, List: []syntax.Node{l.stmt(s.Init), loop}}
}

// rangeStmt lowers a range loop. The key and value are assigned at the head of each iteration.
func (l *lowerer) rangeStmt(s *ast.RangeStmt) syntax.Node {
	body := l.block(s.Body)

	if s.Key != nil {
		op := syntax.Plain
		if s.Tok == token.DEFINE {
			op = syntax.Define
		}

		lhs := []ast.Expr{s.Key}
		if s.Value != nil {
			lhs = append(lhs, s.Value)
		}

		head := &syntax.Assign{
			Span: syntax.Span{Start: s.Key.Pos(), Stop: lhs[len(lhs)-1].End()},
			Lhs:  l.targets(lhs),
			Op:   op,
		}
		body.List = append([]syntax.Node{head}, body.List...)
	}

	return &syntax.For{Span: syntax.SpanOf(s), Init: l.expr(s.X), Body: body}
}

func (l *lowerer) typeSwitch(s *ast.TypeSwitchStmt) syntax.Node {
	n := &syntax.Switch{Span: syntax.SpanOf(s), Init: l.optStmt(s.Init), ImplicitBreak: true}

	switch a := s.Assign.(type) {
	case *ast.AssignStmt:
		if len(a.Rhs) == 1 {
			if ta, ok := a.Rhs[0].(*ast.TypeAssertExpr); ok {
				n.Tag = l.expr(ta.X)
			}
		}

	case *ast.ExprStmt:
		if ta, ok := a.X.(*ast.TypeAssertExpr); ok {
			n.Tag = l.expr(ta.X)
		}
	}

	for _, cc := range s.Body.List {
		cc, ok := cc.(*ast.CaseClause)
		if !ok {
			continue
		}

		var body []syntax.Node

		// The symbolic variable is declared in every clause.
		if v, ok := l.info.Implicits[cc].(*types.Var); ok {
			if loc := l.local(v); loc != nil {
				span := syntax.Span{Start: cc.Case, Stop: cc.Colon + 1}
				body = append(body, &syntax.Assign{Span: span, Lhs: []syntax.Node{l.reference(span, loc)}, Op: syntax.Define})
			}
		}

		// Types are no expressions.
		n.Cases = append(n.Cases, &syntax.Case{
			Span:    syntax.SpanOf(cc),
			Body:    append(body, l.list(cc.Body)...),
			Default: cc.List == nil,
		})
	}

	return n
}

// selectStmt lowers a select statement. All channel operands are evaluated on entry,
// then exactly one clause runs. An empty select blocks forever.
func (l *lowerer) selectStmt(s *ast.SelectStmt) syntax.Node {
	span := syntax.SpanOf(s)

	if len(s.Body.List) == 0 {
		return &syntax.Throw{Span: span}
	}

	var operands []syntax.Node

	n := &syntax.Switch{Span: span, ImplicitBreak: true, Exhaustive: true}

	for _, cc := range s.Body.List {
		cc, ok := cc.(*ast.CommClause)
		if !ok {
			continue
		}

		var body []syntax.Node

		switch comm := cc.Comm.(type) {
		case *ast.SendStmt:
			operands = append(operands, l.expr(comm.Chan), l.expr(comm.Value))

		case *ast.ExprStmt:
			operands = append(operands, l.expr(comm.X))

		case *ast.AssignStmt:
			operands = append(operands, l.exprs(comm.Rhs)...)

			op := syntax.Plain
			if comm.Tok == token.DEFINE {
				op = syntax.Define
			}

			recv := &syntax.Assign{Span: syntax.SpanOf(comm), Lhs: l.targets(comm.Lhs), Op: op}
			l.f.stmts[comm] = recv
			body = append(body, recv)
		}

		n.Cases = append(n.Cases, &syntax.Case{
			Span:    syntax.SpanOf(cc),
			Body:    append(body, l.list(cc.Body)...),
			Default: cc.Comm == nil,
		})
	}

	n.Init = l.seq(span, operands...)

	return n
}

// deferred lowers a defer statement directly in a function body. The call is
// evaluated at the defer and runs when the remaining statements complete or panic.
func (l *lowerer) deferred(d *ast.DeferStmt, rest []ast.Stmt, end token.Pos) []syntax.Node {
	span := syntax.SpanOf(d)
	exit := syntax.Span{Start: end, Stop: end + 1}

	var args syntax.Node

	lit, isLit := astutil.Unparen(d.Call.Fun).(*ast.FuncLit)
	if isLit {
		args = l.seq(span, l.exprs(d.Call.Args)...)
	} else {
		args = l.call(d.Call)
	}

	pre := &syntax.ExprStmt{Span: span, X: args}
	l.f.stmts[d] = pre

	try := &syntax.Try{
		Span: syntax.Span{Start: d.Pos(), Stop: exit.Stop},
		Body: &syntax.Block{Span: syntax.Span{Start: d.End(), Stop: end}, List: l.guarded(rest, end)},
	}

	if isLit {
		// The deferred function runs at exit and may touch every captured variable.
		var captured []syntax.Node
		for _, loc := range l.captured(lit) {
			captured = append(captured, &syntax.Alias{Span: exit, Local: loc})
		}

		try.Finally = &syntax.Block{Span: exit, List: []syntax.Node{&syntax.ExprStmt{Span: exit, X: l.seq(exit, captured...)}}}

		if l.recovers(lit) && panics(try.Body) {
			try.Catches = []*syntax.Catch{{Span: exit, Type: Panic, Body: &syntax.Block{Span: exit}}}
		}
	}

	return []syntax.Node{pre, try}
}

// panics reports whether n contains a panic outside of nested function literals.
func panics(n syntax.Node) bool {
	found := false
	syntax.Inspect(n, func(n syntax.Node) bool {
		switch n := n.(type) {
		case *syntax.Closure:
			return false

		case *syntax.Throw:
			if n.Type == Panic {
				found = true
			}
		}

		return !found
	})

	return found
}

// captured returns the variables of enclosing functions referenced in lit, in order of appearance.
func (l *lowerer) captured(lit *ast.FuncLit) []*syntax.Local {
	var (
		refs []*syntax.Local
		seen = make(map[*syntax.Local]struct{})
	)

	ast.Inspect(lit.Body, func(n ast.Node) bool {
		id, ok := n.(*ast.Ident)
		if !ok {
			return true
		}

		v, ok := l.info.Uses[id].(*types.Var)
		if !ok || (lit.Pos() <= v.Pos() && v.Pos() < lit.End()) {
			return true
		}

		loc := l.local(v)
		if loc == nil {
			return true
		}

		if _, ok := seen[loc]; !ok {
			seen[loc] = struct{}{}
			refs = append(refs, loc)
		}

		return true
	})

	return refs
}

// recovers reports whether lit calls recover directly.
func (l *lowerer) recovers(lit *ast.FuncLit) bool {
	var found bool

	ast.Inspect(lit.Body, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FuncLit:
			return false

		case *ast.CallExpr:
			if tracker.IsRecover(l.info, n) {
				found = true
			}
		}

		return !found
	})

	return found
}
