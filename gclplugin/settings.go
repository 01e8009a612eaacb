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

package gclplugin

import flowsummary "fillmore-labs.com/flowsummary/analyzer"

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// Regions enables summaries of regions delimited by markers.
	Regions *bool `json:"regions,omitzero" yaml:"regions,omitempty"`
	// Functions enables summaries of every function body.
	Functions *bool `json:"functions,omitzero" yaml:"functions,omitempty"`
	// Markers enables reports of misplaced region markers.
	Markers *bool `json:"markers,omitzero" yaml:"markers,omitempty"`
	// Generated enables checks of generated files.
	Generated *bool `json:"generated,omitzero" yaml:"generated,omitempty"`
	// LoopReentrance considers reads in later iterations of loops around a region.
	LoopReentrance *bool `json:"loop-reentrance,omitzero" yaml:"loop-reentrance,omitempty"`
	// UnknownAsParameter passes variables with unclassified accesses as parameters.
	UnknownAsParameter *bool `json:"unknown-as-parameter,omitzero" yaml:"unknown-as-parameter,omitempty"`
	// ProblemsOnly restricts reports to regions that can't be extracted.
	ProblemsOnly *bool `json:"problems-only,omitzero" yaml:"problems-only,omitempty"`
}

// Options converts [Settings] into a list of [flowsummary.Option] for the flowsummary analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() []flowsummary.Option {
	var opts []flowsummary.Option

	opts = appendOption(opts, s.Regions, flowsummary.WithRegions)
	opts = appendOption(opts, s.Functions, flowsummary.WithFunctions)
	opts = appendOption(opts, s.Markers, flowsummary.WithMarkers)
	opts = appendOption(opts, s.Generated, flowsummary.WithGenerated)
	opts = appendOption(opts, s.LoopReentrance, flowsummary.WithLoopReentrance)
	opts = appendOption(opts, s.UnknownAsParameter, flowsummary.WithUnknownAsParameter)
	opts = appendOption(opts, s.ProblemsOnly, flowsummary.WithProblemsOnly)

	return opts
}

// appendOption appends a non-nil setting to a [flowsummary.Option] list.
func appendOption[T any](opts []flowsummary.Option, value *T, constructor func(T) flowsummary.Option) []flowsummary.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
