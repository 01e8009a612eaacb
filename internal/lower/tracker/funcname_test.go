// Copyright 2025 Oliver Eikemeier. All Rights Reserved.
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

package tracker_test

import (
	"go/ast"
	"go/types"
	"testing"

	. "fillmore-labs.com/flowsummary/internal/lower/tracker"
	"fillmore-labs.com/flowsummary/internal/testsource"
)

func TestFuncNameOf(t *testing.T) {
	t.Parallel()

	const src = `package test

import "log"

type T struct{}

func (T) value() {}

func (*T) pointer() {}

func plain() {}

func generic[X any]() {}

var _ = log.Fatal
`

	fset, f := testsource.ParseFile(t, src)
	pkg, info := testsource.Check(t, fset, f)

	method := func(name string) *types.Func {
		obj, _, _ := types.LookupFieldOrMethod(pkg.Scope().Lookup("T").Type(), true, pkg, name)

		return obj.(*types.Func)
	}

	var fatal *types.Func

	ast.Inspect(f, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			fatal, _ = info.Uses[sel.Sel].(*types.Func)
		}

		return fatal == nil
	})

	tests := [...]struct {
		name string
		fun  *types.Func
		want string
	}{
		{"function", pkg.Scope().Lookup("plain").(*types.Func), "test.plain"},
		{"generic", pkg.Scope().Lookup("generic").(*types.Func), "test.generic"},
		{"value method", method("value"), "(test.T).value"},
		{"pointer method", method("pointer"), "(test.T).pointer"},
		{"imported", fatal, "log.Fatal"},
		{"universe", types.Universe.Lookup("error").Type().Underlying().(*types.Interface).Method(0), "(error).Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FuncNameOf(tt.fun).String(); got != tt.want {
				t.Errorf("Got function name %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestFuncNameUnnamedReceiver(t *testing.T) {
	t.Parallel()

	recv := types.NewParam(0, nil, "", types.NewPointer(types.NewStruct(nil, nil)))
	fun := types.NewFunc(0, nil, "m", types.NewSignatureType(recv, nil, nil, nil, nil, false))

	if got, want := FuncNameOf(fun), (FuncName{Receiver: "<invalid>", Name: "m"}); got != want {
		t.Errorf("Got %v, expected %v", got, want)
	}
}
