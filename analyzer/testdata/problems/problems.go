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

package problems

func early(x int) int {
	//flowsummary:begin // want `Region can't be extracted: not all paths of the region return`
	if x < 0 {
		return -1
	}
	//flowsummary:end
	return x
}

func fine(a int) int {
	b := 0
	//flowsummary:begin
	b = a + 1
	//flowsummary:end
	return b
}

func branch(xs []int) int {
	total := 0
	for _, x := range xs {
		//flowsummary:begin loop // want `Region "loop" can't be extracted: region branches to a target outside: \(unlabeled\)`
		if x < 0 {
			break
		}
		total += x
		//flowsummary:end
	}
	return total
}
