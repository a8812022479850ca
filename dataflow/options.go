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

package dataflow

import (
	"log/slog"
	"runtime"
)

// Option configures an analysis.
type Option interface {
	apply(o *options)
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

func (o Options) apply(r *options) {
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

type options struct {
	analyzeUnreachable bool
	logger             *slog.Logger
	concurrency        int
}

func makeOptions(opts []Option) options {
	o := options{concurrency: runtime.GOMAXPROCS(0)}
	Options(opts).apply(&o)

	return o
}

// WithAnalyzeUnreachable is an [Option] to keep checking reads in unreachable code.
func WithAnalyzeUnreachable(analyze bool) Option {
	return analyzeUnreachableOption{analyze: analyze}
}

type analyzeUnreachableOption struct{ analyze bool }

func (o analyzeUnreachableOption) apply(r *options) {
	r.analyzeUnreachable = o.analyze
}

func (o analyzeUnreachableOption) LogAttr() slog.Attr {
	return slog.Bool("analyze-unreachable", o.analyze)
}

// WithLogger is an [Option] to log a debug record per analyzed function.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(r *options) {
	r.logger = o.logger
}

func (o loggerOption) LogAttr() slog.Attr {
	return slog.Bool("logger", o.logger != nil)
}

// WithConcurrency is an [Option] to limit the functions [AnalyzeAll] analyzes
// at the same time. Values below one mean no limit.
func WithConcurrency(n int) Option { return concurrencyOption{n: n} }

type concurrencyOption struct{ n int }

func (o concurrencyOption) apply(r *options) {
	r.concurrency = o.n
}

func (o concurrencyOption) LogAttr() slog.Attr {
	return slog.Int("concurrency", o.n)
}
