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

package analyzer_test

import (
	"flag"
	"strings"
	"testing"

	. "fillmore-labs.com/flowguard/analyzer"
)

func TestFlagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		options Option
		args    []string
		flag    string
		want    bool
	}{
		{
			name: "Default",
			flag: "unreachable",
			want: true,
		},
		{
			name: "Disable",
			args: []string{"-unreachable=false"},
			flag: "unreachable",
			want: false,
		},
		{
			name:    "Enable",
			options: WithUnassigned(false),
			args:    []string{"-unassigned"},
			flag:    "unassigned",
			want:    true,
		},
		{
			name: "Behavior",
			args: []string{"-constant-conditions=on"},
			flag: "constant-conditions",
			want: true,
		},
		{
			name: "Yes",
			args: []string{"-analyze-unreachable=yes"},
			flag: "analyze-unreachable",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := New(tt.options)
			a.Flags.Init("test", flag.ContinueOnError)

			if err := a.Flags.Parse(tt.args); err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			f := a.Flags.Lookup(tt.flag)
			if f == nil {
				t.Fatalf("Flag %s not registered", tt.flag)
			}

			if got := f.Value.(flag.Getter).Get(); got != tt.want {
				t.Errorf("Flag %s = %v, want %v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestFlagParseError(t *testing.T) {
	t.Parallel()

	a := New()
	a.Flags.Init("test", flag.ContinueOnError)
	a.Flags.SetOutput(&strings.Builder{})

	if err := a.Flags.Parse([]string{"-returns=maybe"}); err == nil {
		t.Error("Expected parse error")
	}
}

func TestUsage(t *testing.T) {
	t.Parallel()

	a := New()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	a.Flags.VisitAll(func(f *flag.Flag) { fs.Var(f.Value, f.Name, f.Usage) })

	const expectedUsage = `
  -unassigned
    	report reads of unassigned variables and fields (default true)
  -unreachable
    	report unreachable code (default true)
`

	var out strings.Builder
	fs.SetOutput(&out)
	fs.Usage()

	if got, want := out.String(), expectedUsage; !strings.HasSuffix(got, want) {
		t.Errorf("Usage() = %q, want suffix %q", got, want)
	}
}
