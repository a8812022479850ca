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

package config

import (
	"math/bits"
	"strconv"
)

// Flag is the underlying type of a set of single bit options.
type Flag interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// BitMask is a set of options of type T.
type BitMask[T Flag] struct {
	value T
}

// NewBitMask returns a mask with the given options set.
func NewBitMask[T Flag](flags ...T) BitMask[T] {
	var b BitMask[T]
	for _, f := range flags {
		b.value |= f
	}

	return b
}

// Set turns flag on or off.
func (b *BitMask[T]) Set(flag T, on bool) {
	if on {
		b.value |= flag
	} else {
		b.value &^= flag
	}
}

// Enabled reports whether any bit of flag is set.
func (b BitMask[T]) Enabled(flag T) bool {
	return b.value&flag != 0
}

// Empty reports whether no option is set.
func (b BitMask[T]) Empty() bool {
	return b.value == 0
}

// Len returns the number of options set.
func (b BitMask[T]) Len() int {
	return bits.OnesCount64(uint64(b.value))
}

func (b BitMask[T]) String() string {
	return "0b" + strconv.FormatUint(uint64(b.value), 2)
}
