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

// Package syntax defines the small, language-neutral statement and expression tree
// that [fillmore-labs.com/flowsummary/flow] summarizes.
//
// A front end lowers a concrete syntax tree into these nodes. Only the shape that
// matters for control and data flow is kept: which construct a node is, its source
// range, its ordered children and the local variables it reads or writes.
//
// # Locals
//
// Every tracked local variable is represented by exactly one *[Local] with a small,
// stable, non-negative ID. Flow analysis maps IDs to slots relative to a start index,
// so front ends should number the locals of a function contiguously.
//
// # Exceptions
//
// Abrupt termination that can be intercepted ([Throw], [Try], [Catch]) is typed by
// [ExceptionType]. A type is caught by a catch clause when the clause's type is found
// while walking [ExceptionType.Supertype] from the thrown type.
package syntax
