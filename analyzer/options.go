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
	"log/slog"

	"fillmore-labs.com/flowsummary/internal/config"
	"fillmore-labs.com/flowsummary/internal/run"
)

// Option configures specific behavior of a [New] flowsummary analyzer.
type Option interface {
	apply(r *run.Options)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *run.Options) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithGenerated is an [Option] to configure diagnostics in generated files.
func WithGenerated(generated bool) Option { return behaviorOption{"generated", config.IncludeGenerated, generated} }

// WithLoopReentrance is an [Option] to consider reads in later iterations of loops around a region.
func WithLoopReentrance(reentrance bool) Option {
	return behaviorOption{"loop-reentrance", config.LoopReentrance, reentrance}
}

// WithUnknownAsParameter is an [Option] to pass variables with unclassified accesses as parameters.
func WithUnknownAsParameter(unknown bool) Option {
	return behaviorOption{"unknown-as-parameter", config.UnknownAsParameter, unknown}
}

// WithProblemsOnly is an [Option] to only report regions that can't be extracted.
func WithProblemsOnly(problemsOnly bool) Option {
	return behaviorOption{"problems-only", config.ProblemsOnly, problemsOnly}
}

type behaviorOption struct {
	name  string
	flag  config.Flag
	value bool
}

func (o behaviorOption) apply(r *run.Options) {
	r.Behavior.Set(o.flag, o.value)
}

func (o behaviorOption) LogAttr() slog.Attr {
	return slog.Bool(o.name, o.value)
}

// WithRegions is an [Option] to configure whether regions delimited by markers are summarized.
func WithRegions(regions bool) Option { return checkOption{"regions", config.RegionCheck, regions} }

// WithFunctions is an [Option] to configure whether every function body is summarized.
func WithFunctions(functions bool) Option { return checkOption{"functions", config.FunctionCheck, functions} }

// WithMarkers is an [Option] to configure whether misplaced region markers are reported.
func WithMarkers(markers bool) Option { return checkOption{"markers", config.MarkerCheck, markers} }

type checkOption struct {
	name  string
	check config.Check
	value bool
}

func (o checkOption) apply(r *run.Options) {
	r.Checks.Set(o.check, o.value)
}

func (o checkOption) LogAttr() slog.Attr {
	return slog.Bool(o.name, o.value)
}
