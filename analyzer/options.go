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

	"fillmore-labs.com/flowguard/internal/config"
	"fillmore-labs.com/flowguard/internal/run"
)

// Option configures specific behavior of a [New] flowguard analyzer.
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

// WithUnassigned is an [Option] to configure reporting reads of unassigned variables.
func WithUnassigned(unassigned bool) Option {
	return checkOption{key: "unassigned", check: config.UnassignedCheck, enabled: unassigned}
}

// WithUnreachable is an [Option] to configure reporting unreachable code.
func WithUnreachable(unreachable bool) Option {
	return checkOption{key: "unreachable", check: config.UnreachableCheck, enabled: unreachable}
}

// WithReturns is an [Option] to configure reporting results not assigned on every return.
func WithReturns(returns bool) Option {
	return checkOption{key: "returns", check: config.ReturnsCheck, enabled: returns}
}

type checkOption struct {
	key     string
	check   config.Checks
	enabled bool
}

func (o checkOption) apply(r *run.Options) {
	r.Checks.Set(o.check, o.enabled)
}

func (o checkOption) LogAttr() slog.Attr {
	return slog.Bool(o.key, o.enabled)
}

// WithGenerated is an [Option] to configure diagnostics in generated files.
func WithGenerated(generated bool) Option {
	return behaviorOption{key: "generated", flag: config.IncludeGenerated, enabled: generated}
}

// WithConstantConditions is an [Option] to treat constant conditions as constants,
// making the branches they exclude unreachable.
func WithConstantConditions(constant bool) Option {
	return behaviorOption{key: "constant-conditions", flag: config.ConstantConditions, enabled: constant}
}

// WithAnalyzeUnreachable is an [Option] to keep checking reads inside unreachable code.
func WithAnalyzeUnreachable(analyze bool) Option {
	return behaviorOption{key: "analyze-unreachable", flag: config.AnalyzeUnreachable, enabled: analyze}
}

type behaviorOption struct {
	key     string
	flag    config.Config
	enabled bool
}

func (o behaviorOption) apply(r *run.Options) {
	r.Behavior.Set(o.flag, o.enabled)
}

func (o behaviorOption) LogAttr() slog.Attr {
	return slog.Bool(o.key, o.enabled)
}
