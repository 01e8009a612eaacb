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

package functions

func abs(x int) int { // want `Function abs has value return, parameters 'x', results none`
	if x < 0 {
		return -x
	}
	return x
}

func inc(x int) { // want `Function inc has no return, parameters 'x', results none`
	x++
	println(x)
}

func fail() { // want `Function fail has throw, parameters none, results none`
	panic("fail")
}

func quiet(x int) int { //nolint:flowsummary
	return x
}

func empty() {}

func external()
