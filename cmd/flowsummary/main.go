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

// The flowsummary command reports the data flow of marked code regions.
//
// Settings can be loaded from the YAML file named by FLOWSUMMARY_CONFIG,
// command line flags override them. Set FLOWSUMMARY_DEBUG to log the
// effective configuration.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/tools/go/analysis/singlechecker"

	flowsummary "fillmore-labs.com/flowsummary/analyzer"
	"fillmore-labs.com/flowsummary/gclplugin"
)

const (
	configEnv = "FLOWSUMMARY_CONFIG"
	debugEnv  = "FLOWSUMMARY_DEBUG"
)

func main() {
	level := slog.LevelInfo
	if os.Getenv(debugEnv) != "" {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts, err := options(os.Getenv(configEnv))
	if err != nil {
		logger.Error("Can't load configuration", "error", err)
		os.Exit(1)
	}

	logger.Debug("Configuration loaded", "options", flowsummary.Options(opts))

	singlechecker.Main(flowsummary.New(opts...))
}

// options loads the analyzer options from a settings file.
func options(name string) ([]flowsummary.Option, error) {
	if name == "" {
		return nil, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := gclplugin.LoadSettings(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return s.Options(), nil
}
