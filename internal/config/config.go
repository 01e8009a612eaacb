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

package config

// Check represents a kind of report.
type Check uint8

const (
	// RegionCheck summarizes regions delimited by markers.
	RegionCheck Check = 1 << iota

	// FunctionCheck summarizes every function body.
	FunctionCheck

	// MarkerCheck reports misplaced region markers.
	MarkerCheck
)

// Checks is the set of enabled reports.
type Checks = BitMask[Check]

// DefaultChecks returns the reports enabled by default.
func DefaultChecks() Checks {
	return NewBitMask(RegionCheck, MarkerCheck)
}

// Flag represents a behavioral option.
type Flag uint8

const (
	// IncludeGenerated specifies whether to include analysis of generated files.
	IncludeGenerated Flag = 1 << iota

	// LoopReentrance considers reads in later iterations of loops around a region.
	LoopReentrance

	// UnknownAsParameter passes variables with unclassified accesses as parameters.
	UnknownAsParameter

	// ProblemsOnly suppresses summaries of regions that can be extracted.
	ProblemsOnly
)

// Behavior holds the behavioral options.
type Behavior = BitMask[Flag]

// DefaultBehavior returns the behavioral options enabled by default.
func DefaultBehavior() Behavior {
	return NewBitMask(LoopReentrance, UnknownAsParameter)
}
