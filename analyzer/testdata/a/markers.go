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

package a

func nested(x int) int {
	//flowsummary:begin outer // want `Region "outer" has no return, parameters 'x', results 'x'`
	x++
	//flowsummary:begin inner // want "Nested region marker"
	x++
	//flowsummary:end
	return x
}

func cut(x int) int {
	//flowsummary:begin cut // want "Invalid region: selection must cover complete statements of one block"
	if x > 0 {
		x++
		//flowsummary:end
	}
	return x
}

func empty() {
	//flowsummary:begin empty // want "Invalid region: selection contains no statement"
	//flowsummary:end
}

func unmatched() {
	//flowsummary:end // want "End marker without matching region"
}

//flowsummary:begin global // want "Invalid region: selection is not within a function body"
var global = 1

//flowsummary:end

func dangling() {
	//flowsummary:begin dangling // want "Region marker without matching end"
}
