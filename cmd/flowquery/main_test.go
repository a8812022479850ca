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
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    location
		wantErr bool
	}{
		{in: "a.go:3", want: location{file: "a.go", from: 3, to: 3}},
		{in: "dir/a.go:3-7", want: location{file: "dir/a.go", from: 3, to: 7}},
		{in: `C:\src\a.go:4`, want: location{file: `C:\src\a.go`, from: 4, to: 4}},
		{in: "a.go", wantErr: true},
		{in: "a.go:0", wantErr: true},
		{in: "a.go:7-3", wantErr: true},
		{in: "a.go:x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := parseLocation(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, errLocation)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)

	err := root.Execute()

	return out.String(), err
}

func TestDiagnose(t *testing.T) {
	t.Parallel()

	out, err := run(t, "diagnose", "--passes", "./testdata/sample")

	require.True(t, errors.Is(err, errFindings), "Got error %v, want findings", err)
	assert.Contains(t, out, "sample.go:25:9: Use of unassigned variable 'n' [uav]")
	assert.Regexp(t, `sample.go:28:1: Region \(\d+ passes\)`, out)
}

func TestRegion(t *testing.T) {
	t.Parallel()

	out, err := run(t, "region", "testdata/sample/sample.go:30-31")
	require.NoError(t, err)

	for _, line := range []string{
		"Function: Region\n",
		"VariablesDeclared: b\n",
		"DataFlowsIn: a\n",
		"DataFlowsOut: a, b\n",
		"WrittenInside: a, b\n",
		"EndPointIsReachable: true\n",
	} {
		assert.Contains(t, out, line)
	}
}

func TestRegionNotFound(t *testing.T) {
	t.Parallel()

	_, err := run(t, "region", "testdata/sample/sample.go:200")

	require.ErrorIs(t, err, errNoRegion)
}

func TestUnknownColor(t *testing.T) {
	t.Parallel()

	_, err := run(t, "--color", "sometimes", "diagnose", "./testdata/sample")

	require.Error(t, err)
	assert.NotErrorIs(t, err, errFindings)
}
