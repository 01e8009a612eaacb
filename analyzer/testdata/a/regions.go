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

func basic(a, b int) int {
	x := a * 2
	//flowsummary:begin basic // want `Region "basic" has no return, parameters 'b' and 'x', results 'x'`
	y := x + b
	x = y
	//flowsummary:end
	return x
}

func loop(n int) int {
	sum, i := 0, 0
	for i < n {
		//flowsummary:begin loop // want `Region "loop" has no return, parameters 'sum' and 'i', results 'sum' and 'i'`
		sum += i
		i++
		//flowsummary:end
	}
	return sum
}

func complete(x int) int {
	//flowsummary:begin // want `Region has value return, parameters 'x', results none`
	if x < 0 {
		return -x
	}
	return x
	//flowsummary:end
}

func early(x int) int {
	//flowsummary:begin early // want `Region "early" can't be extracted: not all paths of the region return`
	if x < 0 {
		return -1
	}
	//flowsummary:end
	return x
}

func deferred(x int) int {
	//flowsummary:begin deferred // want `Region "deferred" can't be extracted: region contains a defer statement`
	defer println(x)
	//flowsummary:end
	return x
}

//nolint:flowsummary
func quiet(x int) int {
	//flowsummary:begin
	x++
	//flowsummary:end
	return x
}
