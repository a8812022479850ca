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
	"strconv"
	"strings"

	"fillmore-labs.com/flowguard/internal/config"
)

// maskValue is a boolean [flag.Value] for one option of a [config.BitMask].
type maskValue[T config.Flag] struct {
	mask *config.BitMask[T]
	flag T
}

func newMaskValue[T config.Flag](mask *config.BitMask[T], flag T) maskValue[T] {
	return maskValue[T]{mask: mask, flag: flag}
}

// Set implements [flag.Value].
func (v maskValue[_]) Set(s string) error {
	on, err := parseBool(s)
	if err != nil {
		return err
	}

	v.mask.Set(v.flag, on)

	return nil
}

// String implements [flag.Value]. It is called on the zero value to detect defaults.
func (v maskValue[_]) String() string {
	return strconv.FormatBool(v.Get().(bool))
}

// Get implements [flag.Getter].
func (v maskValue[_]) Get() any {
	return v.mask != nil && v.mask.Enabled(v.flag)
}

// IsBoolFlag marks the value as a boolean flag, so "-name" sets it.
func (maskValue[_]) IsBoolFlag() bool { return true }

// parseBool accepts on/off and yes/no in addition to the forms of [strconv.ParseBool].
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes":
		return true, nil

	case "off", "no":
		return false, nil
	}

	return strconv.ParseBool(s)
}
