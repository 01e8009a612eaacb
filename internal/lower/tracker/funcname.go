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

package tracker

import "go/types"

// FuncName identifies a function or method independent of its [types.Func] instance.
type FuncName struct {
	Path     string // Package path, empty for universe and anonymous receivers
	Receiver string // Receiver type name without pointer, empty for functions
	Name     string
}

// FuncNameOf returns the name of a function or method.
// Methods of unnamed receiver types have no package path.
func FuncNameOf(fun *types.Func) FuncName {
	var path string
	if pkg := fun.Pkg(); pkg != nil {
		path = pkg.Path()
	}

	recv := fun.Signature().Recv()
	if recv == nil {
		return FuncName{Path: path, Name: fun.Name()}
	}

	t := types.Unalias(recv.Type())
	if p, ok := t.(*types.Pointer); ok {
		t = types.Unalias(p.Elem())
	}

	switch t := t.(type) {
	case *types.Named:
		if pkg := t.Obj().Pkg(); pkg != nil {
			path = pkg.Path()
		} else {
			path = ""
		}

		return FuncName{Path: path, Receiver: t.Obj().Name(), Name: fun.Name()}

	case *types.Interface:
		return FuncName{Receiver: "interface", Name: fun.Name()}

	default:
		return FuncName{Receiver: "<invalid>", Name: fun.Name()}
	}
}

func (f FuncName) String() string {
	switch {
	case f.Receiver == "" && f.Path == "":
		return f.Name

	case f.Receiver == "":
		return f.Path + "." + f.Name

	case f.Path == "":
		return "(" + f.Receiver + ")." + f.Name

	default:
		return "(" + f.Path + "." + f.Receiver + ")." + f.Name
	}
}
