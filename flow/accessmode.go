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
	"math/bits"
	"strconv"
	"strings"
)

// AccessMode describes how a local variable is accessed in a region.
// Exactly one mode holds per variable; modes are single bits so they can be combined into masks for [Info.Get].
type AccessMode uint8

const (
	// Unused indicates the variable is not accessed.
	Unused AccessMode = 1 << iota // unused

	// Read indicates the variable is read before being written.
	Read // read

	// ReadPotential indicates the variable is read on some paths.
	ReadPotential // read potential

	// Write indicates the variable is written before being read.
	Write // write

	// WritePotential indicates the variable is written on some paths.
	WritePotential // write potential

	// Unknown indicates an access too complex to classify.
	Unknown // unknown

	numAccessModes = iota
)

const (
	// AnyRead matches variables whose value may flow into a region.
	AnyRead = Read | ReadPotential | Unknown

	// AnyWrite matches variables whose value may be changed by a region.
	AnyWrite = Write | WritePotential | Unknown
)

func (m AccessMode) index() int {
	if m == 0 {
		return 0
	}

	return bits.TrailingZeros8(uint8(m))
}

var accessModeNames = [numAccessModes]string{"unused", "read", "read potential", "write", "write potential", "unknown"}

// String returns the name of the mode, or the names of all modes in a mask joined by "|".
func (m AccessMode) String() string {
	if m == 0 {
		return "none"
	}

	var b strings.Builder

	for i, name := range accessModeNames {
		if m&(1<<i) == 0 {
			continue
		}

		if b.Len() > 0 {
			b.WriteByte('|')
		}

		b.WriteString(name)
	}

	if rest := m &^ (1<<numAccessModes - 1); rest != 0 {
		if b.Len() > 0 {
			b.WriteByte('|')
		}

		b.WriteString("0x")
		b.WriteString(strconv.FormatUint(uint64(rest), 16))
	}

	return b.String()
}

// Matches reports whether the mode is contained in mask.
func (m AccessMode) Matches(mask AccessMode) bool {
	return m&mask != 0
}

const (
	un = Unused
	rd = Read
	rp = ReadPotential
	wr = Write
	wp = WritePotential
	uk = Unknown
)

// conditionalAccess is indexed [this][other] for mutually exclusive accesses.
// Row [Unused] is the empty condition.
var conditionalAccess = [numAccessModes][numAccessModes]AccessMode{
	//      un  rd  rp  wr  wp  uk
	0: {un, rp, rp, wp, wp, uk}, // Unused
	1: {rp, rd, rp, uk, uk, uk}, // Read
	2: {rp, rp, rp, uk, uk, uk}, // ReadPotential
	3: {wp, uk, uk, wr, wp, uk}, // Write
	4: {wp, uk, uk, wp, wp, uk}, // WritePotential
	5: {uk, uk, uk, uk, uk, uk}, // Unknown
}

// argumentsAccess is indexed [running][later] for computing values flowing into a region.
var argumentsAccess = [numAccessModes][numAccessModes]AccessMode{
	//      un  rd  rp  wr  wp  uk
	0: {un, rd, rp, wr, wp, uk}, // Unused
	1: {rd, rd, rd, rd, rd, rd}, // Read
	2: {rp, rp, rp, rp, rp, rp}, // ReadPotential
	3: {wr, wr, wr, wr, wr, wr}, // Write
	4: {wp, rd, wp, wr, wp, wp}, // WritePotential
	5: {uk, uk, uk, uk, uk, uk}, // Unknown
}

// returnValuesAccess is indexed [running][later] for computing values flowing out of a region.
var returnValuesAccess = [numAccessModes][numAccessModes]AccessMode{
	//      un  rd  rp  wr  wp  uk
	0: {un, rd, rp, wr, wp, uk}, // Unused
	1: {rd, rd, rp, wr, wp, uk}, // Read
	2: {rp, rd, rp, wr, wp, uk}, // ReadPotential
	3: {wr, wr, wr, wr, wr, wr}, // Write
	4: {wp, wp, wp, wr, wp, wp}, // WritePotential
	5: {uk, rd, rp, wr, wp, uk}, // Unknown
}

// openBranchAccess widens accesses that may be skipped by an open branch.
var openBranchAccess = [numAccessModes]AccessMode{un, rp, rp, wp, wp, uk}

// Conditional returns the mode of executing exactly one of the accesses m or other.
func (m AccessMode) Conditional(other AccessMode) AccessMode {
	return conditionalAccess[m.index()][other.index()]
}

// Sequential returns the mode of access m followed by other under the given compute mode.
// [ComputeNone] leaves m unchanged.
func (m AccessMode) Sequential(other AccessMode, mode ComputeMode) AccessMode {
	switch mode {
	case ComputeArguments:
		return argumentsAccess[m.index()][other.index()]

	case ComputeReturnValues:
		return returnValuesAccess[m.index()][other.index()]

	default:
		return m
	}
}

// Widen returns the mode of an access that may be skipped.
func (m AccessMode) Widen() AccessMode {
	return openBranchAccess[m.index()]
}

// AllAccessModes lists every [AccessMode] in order.
func AllAccessModes() []AccessMode {
	return []AccessMode{Unused, Read, ReadPotential, Write, WritePotential, Unknown}
}

// ComputeMode selects the sequential access merge rule.
type ComputeMode uint8

const (
	// ComputeNone skips sequential access merges.
	ComputeNone ComputeMode = iota // none

	// ComputeArguments determines the values that must be passed into a region.
	ComputeArguments // arguments

	// ComputeReturnValues determines the values that must be returned from a region.
	ComputeReturnValues // return values
)
