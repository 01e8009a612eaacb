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

// ReturnKind describes how control leaves a region, ordered by return certainty.
type ReturnKind uint8

//go:generate go tool stringer -type ReturnKind,ComputeMode -linecomment
const (
	// NotPossible is the absorbing error state of incompatible combinations,
	// like code returning a value following code returning void.
	NotPossible ReturnKind = iota // not possible

	// Undefined is the identity before any statement has been merged.
	Undefined // undefined

	// NoReturn indicates control falls through.
	NoReturn // no return

	// PartialReturn indicates only some paths return.
	PartialReturn // partial return

	// VoidReturn indicates all paths return without a value.
	VoidReturn // void return

	// ValueReturn indicates all paths return a value.
	ValueReturn // value return

	// Throw indicates all paths terminate abruptly.
	Throw // throw

	numReturnKinds = iota
)

const (
	np = NotPossible
	ud = Undefined
	nr = NoReturn
	pr = PartialReturn
	vr = VoidReturn
	rv = ValueReturn
	th = Throw
)

// sequentialReturnKind is indexed [this][other], where other unconditionally executes after this.
var sequentialReturnKind = [numReturnKinds][numReturnKinds]ReturnKind{
	//               np  ud  nr  pr  vr  rv  th
	NotPossible:   {np, np, np, np, np, np, np},
	Undefined:     {np, ud, nr, pr, vr, rv, th},
	NoReturn:      {np, nr, nr, pr, vr, rv, th},
	PartialReturn: {np, pr, pr, pr, vr, rv, th},
	VoidReturn:    {np, vr, vr, pr, vr, np, np},
	ValueReturn:   {np, rv, rv, pr, np, rv, np},
	Throw:         {np, th, th, pr, vr, rv, th},
}

// conditionalReturnKind is indexed [this][other], where exactly one of this or other executes.
var conditionalReturnKind = [numReturnKinds][numReturnKinds]ReturnKind{
	//               np  ud  nr  pr  vr  rv  th
	NotPossible:   {np, np, np, np, np, np, np},
	Undefined:     {np, ud, nr, pr, vr, rv, th},
	NoReturn:      {np, nr, nr, pr, pr, pr, nr},
	PartialReturn: {np, pr, pr, pr, pr, pr, pr},
	VoidReturn:    {np, vr, pr, pr, vr, np, vr},
	ValueReturn:   {np, rv, pr, pr, np, rv, rv},
	Throw:         {np, th, nr, pr, vr, rv, th},
}

// Sequential returns the kind of this followed unconditionally by other.
func (k ReturnKind) Sequential(other ReturnKind) ReturnKind {
	if k >= numReturnKinds || other >= numReturnKinds {
		return NotPossible
	}

	return sequentialReturnKind[k][other]
}

// Conditional returns the kind of executing exactly one of this or other.
func (k ReturnKind) Conditional(other ReturnKind) ReturnKind {
	if k >= numReturnKinds || other >= numReturnKinds {
		return NotPossible
	}

	return conditionalReturnKind[k][other]
}

// AllReturnKinds lists every [ReturnKind] in order.
func AllReturnKinds() []ReturnKind {
	return []ReturnKind{NotPossible, Undefined, NoReturn, PartialReturn, VoidReturn, ValueReturn, Throw}
}
