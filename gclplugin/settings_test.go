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

package gclplugin_test

import (
	"encoding/json"
	"errors"
	"flag"
	"reflect"
	"strings"
	"testing"

	flowguard "fillmore-labs.com/flowguard/analyzer"
	. "fillmore-labs.com/flowguard/gclplugin"
)

const allSettings = `{
	"unassigned": true,
	"unreachable": false,
	"returns": true,
	"constant-conditions": true,
	"analyze-unreachable": false
}`

func TestSettings(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		name     string
		settings string
		want     int
	}{
		{"all", allSettings, reflect.TypeFor[Settings]().NumField()},
		{"none", `{}`, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dec := json.NewDecoder(strings.NewReader(tc.settings))
			dec.DisallowUnknownFields()

			var s Settings
			if err := dec.Decode(&s); err != nil {
				t.Fatalf("Can't decode settings: %v", err)
			}

			if got := s.Options(); len(got) != tc.want {
				t.Errorf("Got %d options: %s, want %d", len(got), flowguard.Options(got).LogValue(), tc.want)
			}
		})
	}
}

func TestBuildAnalyzers(t *testing.T) {
	t.Parallel()

	plugin, err := New(map[string]any{"unreachable": false, "constant-conditions": true})
	if err != nil {
		t.Fatalf("Can't create plugin: %v", err)
	}

	analyzers, err := plugin.BuildAnalyzers()
	if err != nil {
		t.Fatalf("Can't build analyzers: %v", err)
	}

	if len(analyzers) != 1 || analyzers[0].Name != "flowguard" {
		t.Fatalf("Got analyzers %v, want flowguard", analyzers)
	}

	for flagName, want := range map[string]bool{
		"unreachable":         false,
		"unassigned":          true,
		"constant-conditions": true,
		"generated":           true,
	} {
		f := analyzers[0].Flags.Lookup(flagName)
		if f == nil {
			t.Fatalf("Flag %s not registered", flagName)
		}

		if got := f.Value.(flag.Getter).Get(); got != want {
			t.Errorf("Flag %s = %v, want %v", flagName, got, want)
		}
	}
}

func TestNoChecks(t *testing.T) {
	t.Parallel()

	plugin, err := New(map[string]any{"unassigned": false, "unreachable": false, "returns": false})
	if err != nil {
		t.Fatalf("Can't create plugin: %v", err)
	}

	if _, err := plugin.BuildAnalyzers(); !errors.Is(err, ErrNoChecks) {
		t.Errorf("Got error %v, want %v", err, ErrNoChecks)
	}
}
