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

package report

import (
	"strings"
	"testing"

	"fillmore-labs.com/flowsummary/flow"
	"fillmore-labs.com/flowsummary/internal/region"
	"fillmore-labs.com/flowsummary/syntax"
)

func TestConcatNames(t *testing.T) {
	t.Parallel()

	a, b, c := &syntax.Local{Name: "a"}, &syntax.Local{Name: "b"}, &syntax.Local{Name: "c"}

	tests := []struct {
		locals []*syntax.Local
		want   string
	}{
		{nil, "none"},
		{[]*syntax.Local{a}, "'a'"},
		{[]*syntax.Local{a, b}, "'a' and 'b'"},
		{[]*syntax.Local{a, b, c}, "'a', 'b' and 'c'"},
	}

	for _, tt := range tests {
		if got := concatNames(tt.locals); got != tt.want {
			t.Errorf("Got %q, expected %q", got, tt.want)
		}
	}
}

func TestCreateMessage(t *testing.T) {
	t.Parallel()

	x := &syntax.Local{Name: "x"}

	tests := []struct {
		name         string
		summary      region.Summary
		problemsOnly bool
		want         string
		ok           bool
	}{
		{
			name:    "summary",
			summary: region.Summary{Kind: flow.NoReturn, Parameters: []*syntax.Local{x}, Results: []*syntax.Local{x}},
			want:    "Region has no return, parameters 'x', results 'x'",
			ok:      true,
		},
		{
			name:         "suppressed",
			summary:      region.Summary{Kind: flow.NoReturn},
			problemsOnly: true,
		},
		{
			name:         "problems",
			summary:      region.Summary{Kind: flow.ValueReturn, Results: []*syntax.Local{x}, Defers: true},
			problemsOnly: true,
			want:         "Region can't be extracted: region returns a value and changes variables used afterwards; region contains a defer statement",
			ok:           true,
		},
		{
			name:    "branches",
			summary: region.Summary{Kind: flow.NoReturn, Branches: []string{flow.Unlabeled, "outer"}},
			want:    "Region can't be extracted: region branches to a target outside: (unlabeled), outer",
			ok:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := createMessage("Region", &tt.summary, tt.problemsOnly)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Got %q (%t), expected %q (%t)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCapitalize(t *testing.T) {
	t.Parallel()

	if got := capitalize("nested region marker"); !strings.HasPrefix(got, "Nested") {
		t.Errorf("Got %q, expected capitalized message", got)
	}

	if got := capitalize(""); got != "" {
		t.Errorf("Got %q, expected empty string", got)
	}
}
