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

package analyzer

import (
	"flag"

	"fillmore-labs.com/flowsummary/internal/config"
	"fillmore-labs.com/flowsummary/internal/run"
)

// registerFlags binds the [run.Options] values to command line flag values.
// A nil flag set value defaults to the program's command line.
func registerFlags(flags *flag.FlagSet, r *run.Options) {
	if flags == nil {
		flags = flag.CommandLine
	}

	flags.Var(NewCheckValue(&r.Checks, config.RegionCheck), "regions", "summarize regions delimited by markers")
	flags.Var(NewCheckValue(&r.Checks, config.FunctionCheck), "functions", "summarize every function body")
	flags.Var(NewCheckValue(&r.Checks, config.MarkerCheck), "markers", "report misplaced region markers")

	flags.Var(NewBehaviorValue(&r.Behavior, config.IncludeGenerated), "generated", "check generated files")
	flags.Var(NewBehaviorValue(&r.Behavior, config.LoopReentrance), "loop-reentrance",
		"consider reads in later iterations of loops around a region")
	flags.Var(NewBehaviorValue(&r.Behavior, config.UnknownAsParameter), "unknown-as-parameter",
		"pass variables with unclassified accesses as parameters")
	flags.Var(NewBehaviorValue(&r.Behavior, config.ProblemsOnly), "problems-only",
		"only report regions that can't be extracted")
}
