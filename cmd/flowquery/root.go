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

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fillmore-labs.com/flowguard/dataflow"
)

// settings are the persistent flags shared by all subcommands.
type settings struct {
	color              string
	verbose            bool
	tests              bool
	jobs               int
	constantConditions bool
	analyzeUnreachable bool
}

func newRootCmd() *cobra.Command {
	s := &settings{}

	root := &cobra.Command{
		Use:           "flowquery",
		Short:         "Definite assignment and data flow queries for Go code",
		Long:          `flowquery runs the flowguard engine on Go packages and prints its findings or the data flow of a region`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return s.applyColor()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&s.color, "color", "auto", "colorize output (auto|on|off)")
	flags.BoolVarP(&s.verbose, "verbose", "v", false, "log analysis details")
	flags.BoolVar(&s.tests, "tests", false, "include test files")
	flags.IntVar(&s.jobs, "jobs", 0, "max parallel workers (0=unlimited)")
	flags.BoolVar(&s.constantConditions, "constant-conditions", false, "treat constant conditions as constants")
	flags.BoolVar(&s.analyzeUnreachable, "analyze-unreachable", false, "check reads inside unreachable code")

	root.AddCommand(newDiagnoseCmd(s), newRegionCmd(s))

	return root
}

func (s *settings) applyColor() error {
	switch s.color {
	case "auto":
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("unknown color value: %s", s.color)
	}

	return nil
}

func (s *settings) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if s.verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// options returns the engine options for the settings.
func (s *settings) options(logger *slog.Logger) []dataflow.Option {
	return []dataflow.Option{
		dataflow.WithAnalyzeUnreachable(s.analyzeUnreachable),
		dataflow.WithConcurrency(s.jobs),
		dataflow.WithLogger(logger),
	}
}
