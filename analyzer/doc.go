// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

// Package analyzer implements the flowsummary static analysis pass.
//
// # Overview
//
// FlowSummary reports how data flows through a marked region of statements:
// the variables whose values flow into the region, the variables it changes
// that are read afterwards, and how control leaves it. This is the information
// needed to extract the region into a function of its own.
//
// # Example
//
//	func process(data []byte) (int, error) {
//	    n := 0
//	    //flowsummary:begin count
//	    for _, b := range data {
//	        if b == '\n' {
//	            n++
//	        }
//	    }
//	    //flowsummary:end
//	    return n, nil
//	}
//
// is reported as
//
//	Region "count" has no return, parameters 'data' and 'n', results 'n'
//
// # Markers
//
// A region starts with a //flowsummary:begin comment, optionally followed by a
// name, and ends with a //flowsummary:end comment. Both markers must enclose
// complete statements of one block. Unmatched and nested markers are reported.
//
// # Problems
//
// Regions are reported as not extractable when
//
//   - only some paths return from the function,
//   - they return a value and change variables used afterwards,
//   - they branch to a label or loop outside the region,
//   - they contain a defer statement.
package analyzer
