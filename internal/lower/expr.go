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
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ast/astutil"

	"fillmore-labs.com/flowsummary/syntax"
)

func (l *lowerer) exprs(list []ast.Expr) []syntax.Node {
	var nodes []syntax.Node

	for _, e := range list {
		if n := l.expr(e); n != nil {
			nodes = append(nodes, n)
		}
	}

	return nodes
}

// seq combines nodes evaluated in order, dropping nil nodes.
func (l *lowerer) seq(span syntax.Span, nodes ...syntax.Node) syntax.Node {
	var list []syntax.Node

	for _, n := range nodes {
		if !syntax.IsNil(n) {
			list = append(list, n)
		}
	}

	switch len(list) {
	case 0:
		return nil

	case 1:
		return list[0]

	default:
		return &syntax.Seq{Span: span, List: list}
	}
}

// expr lowers an expression. Expressions without local variable accesses lower to nil.
//
//nolint:cyclop
func (l *lowerer) expr(e ast.Expr) syntax.Node {
	if e == nil {
		return nil
	}

	span := syntax.SpanOf(e)

	switch e := e.(type) {
	case *ast.Ident:
		loc := l.local(l.object(e))
		if loc == nil {
			return nil
		}

		return l.reference(span, loc)

	case *ast.ParenExpr:
		return l.expr(e.X)

	case *ast.SelectorExpr:
		if l.addressedReceiver(e) {
			if n, ok := l.alias(e.X); ok {
				return n
			}
		}

		return l.expr(e.X)

	case *ast.IndexExpr:
		return l.seq(span, l.expr(e.X), l.expr(e.Index))

	case *ast.IndexListExpr:
		return l.seq(span, append([]syntax.Node{l.expr(e.X)}, l.exprs(e.Indices)...)...)

	case *ast.SliceExpr:
		return l.seq(span, l.expr(e.X), l.expr(e.Low), l.expr(e.High), l.expr(e.Max))

	case *ast.TypeAssertExpr:
		return l.expr(e.X)

	case *ast.StarExpr:
		return l.expr(e.X)

	case *ast.UnaryExpr:
		if e.Op == token.AND {
			if n, ok := l.alias(e.X); ok {
				return n
			}
		}

		return l.expr(e.X)

	case *ast.BinaryExpr:
		if e.Op == token.LAND || e.Op == token.LOR {
			return &syntax.Cond{Span: span, Cond: l.expr(e.X), Then: l.expr(e.Y)}
		}

		return l.seq(span, l.expr(e.X), l.expr(e.Y))

	case *ast.CallExpr:
		return l.call(e)

	case *ast.CompositeLit:
		return l.seq(span, l.exprs(e.Elts)...)

	case *ast.KeyValueExpr:
		return l.seq(span, l.expr(e.Key), l.expr(e.Value))

	case *ast.FuncLit:
		return l.closure(e)

	case *ast.BasicLit, *ast.Ellipsis,
		*ast.ArrayType, *ast.StructType, *ast.FuncType, *ast.InterfaceType, *ast.MapType, *ast.ChanType:
		return nil

	default:
		l.fail(e)
		return nil
	}
}

// call lowers a call or conversion. The function value is evaluated before the arguments.
func (l *lowerer) call(e *ast.CallExpr) syntax.Node {
	return l.seq(syntax.SpanOf(e), append([]syntax.Node{l.expr(e.Fun)}, l.exprs(e.Args)...)...)
}

func (l *lowerer) closure(e *ast.FuncLit) syntax.Node {
	n := &syntax.Closure{Span: syntax.SpanOf(e)}

	saved := l.scope
	l.scope = l.enter(n, e.Type, true)
	n.Body = l.body(e.Body)
	l.scope = saved

	return n
}

func (l *lowerer) targets(list []ast.Expr) []syntax.Node {
	nodes := make([]syntax.Node, 0, len(list))

	for _, e := range list {
		if n := l.target(e); n != nil {
			nodes = append(nodes, n)
		}
	}

	return nodes
}

// target lowers the left-hand side of an assignment. A variable is written when
// named directly. Storing into a field or array element of a local changes the
// local in a way that can't be classified.
func (l *lowerer) target(e ast.Expr) syntax.Node {
	switch x := astutil.Unparen(e).(type) {
	case *ast.Ident:
		return l.expr(x)

	case *ast.SelectorExpr, *ast.IndexExpr:
		if n, ok := l.alias(x); ok {
			return n
		}
	}

	return l.expr(e)
}

// alias returns an unclassified access of the local variable whose storage e
// denotes, together with the evaluation of array indices.
func (l *lowerer) alias(e ast.Expr) (syntax.Node, bool) {
	span := syntax.SpanOf(e)

	var indices []syntax.Node

	for {
		switch x := astutil.Unparen(e).(type) {
		case *ast.Ident:
			loc := l.local(l.object(x))
			if loc == nil {
				return nil, false
			}

			access := &syntax.Alias{Span: syntax.SpanOf(x), Local: loc}

			return l.seq(span, append([]syntax.Node{access}, indices...)...), true

		case *ast.SelectorExpr:
			sel, ok := l.info.Selections[x]
			if !ok || sel.Kind() != types.FieldVal || sel.Indirect() {
				return nil, false
			}

			e = x.X

		case *ast.IndexExpr:
			if _, ok := l.underlying(x.X).(*types.Array); !ok {
				return nil, false
			}

			indices = append([]syntax.Node{l.expr(x.Index)}, indices...)
			e = x.X

		default:
			return nil, false
		}
	}
}

// addressedReceiver reports whether e selects a pointer method of an addressable value,
// which implicitly takes the address of the receiver.
func (l *lowerer) addressedReceiver(e *ast.SelectorExpr) bool {
	sel, ok := l.info.Selections[e]
	if !ok || sel.Kind() != types.MethodVal {
		return false
	}

	fn, ok := sel.Obj().(*types.Func)
	if !ok {
		return false
	}

	recv := fn.Signature().Recv()
	if recv == nil {
		return false
	}

	if _, ptr := recv.Type().(*types.Pointer); !ptr {
		return false
	}

	_, ptr := sel.Recv().Underlying().(*types.Pointer)

	return !ptr
}

func (l *lowerer) underlying(e ast.Expr) types.Type {
	t := l.info.TypeOf(e)
	if t == nil {
		return nil
	}

	return t.Underlying()
}
