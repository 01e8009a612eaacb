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

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOptions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.yaml")
	if err := os.WriteFile(valid, []byte("functions: true\n"), 0o600); err != nil {
		t.Fatalf("Can't write settings: %v", err)
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("depth: 3\n"), 0o600); err != nil {
		t.Fatalf("Can't write settings: %v", err)
	}

	tests := []struct {
		name    string
		file    string
		want    int
		wantErr bool
	}{
		{"none", "", 0, false},
		{"valid", valid, 1, false},
		{"invalid", invalid, 0, true},
		{"missing", filepath.Join(dir, "missing.yaml"), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts, err := options(tt.file)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Got error %v, expected error %t", err, tt.wantErr)
			}

			if len(opts) != tt.want {
				t.Errorf("Got %d options, expected %d", len(opts), tt.want)
			}
		})
	}
}
