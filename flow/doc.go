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

// Package flow summarizes how control leaves a region of a [syntax] tree and how the
// region accesses local variables.
//
// A summary ([Info]) combines a [ReturnKind], the set of open branch labels and one
// [AccessMode] per tracked local. Summaries of subtrees are combined bottom-up by
// three total merge operations:
//
//   - sequential, where the second part executes after the first,
//   - conditional, where exactly one of two parts executes,
//   - empty condition, where a part may not execute at all.
//
// Return kinds are combined by fixed tables, access modes by tables selected through
// the [ComputeMode] of the [Context]. An open branch (break, continue, goto) makes the
// code following it uncertain until the branch target is reached.
//
// [Analyze] walks a tree and applies the construct-specific shapes like [IfInfo] or
// [SwitchInfo]. A [Policy] restricts the walk to a selection.
package flow
