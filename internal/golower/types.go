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

package golower

import (
	"go/types"
	"math"

	"fillmore-labs.com/flowguard/tree"
)

// typeCache maps Go types to tree types.
type typeCache map[types.Type]*tree.Type

func (c typeCache) of(t types.Type) *tree.Type {
	if t == nil {
		return tree.Void
	}

	if tt, ok := c[t]; ok {
		return tt
	}

	tt := c.lower(t)
	c[t] = tt

	return tt
}

func (c typeCache) lower(t types.Type) *tree.Type {
	name := types.TypeString(t, nil)

	switch u := t.Underlying().(type) {
	case *types.Basic:
		return basic(name, u)

	case *types.Struct:
		fields := make([]*tree.Field, 0, u.NumFields())
		for f := range u.Fields() {
			fields = append(fields, &tree.Field{Name: f.Name(), Type: c.of(f.Type())})
		}

		return tree.NewStruct(name, fields...)

	case *types.Tuple:
		if u.Len() == 0 {
			return tree.Void
		}

		if u.Len() == 1 {
			return c.of(u.At(0).Type())
		}

		return &tree.Type{Name: name, Kind: tree.KindOther}

	case *types.Pointer, *types.Slice, *types.Map, *types.Chan, *types.Signature, *types.Interface:
		return &tree.Type{Name: name, Kind: tree.KindReference}

	default:
		return &tree.Type{Name: name, Kind: tree.KindOther}
	}
}

func basic(name string, b *types.Basic) *tree.Type {
	info := b.Info()

	switch {
	case info&types.IsBoolean != 0:
		if name == "bool" || name == "untyped bool" {
			return tree.Bool
		}

		return &tree.Type{Name: name, Kind: tree.KindBool, Domain: tree.Bool.Domain}

	case b.Kind() == types.UntypedNil:
		return &tree.Type{Name: name, Kind: tree.KindReference}

	case b.Kind() == types.UnsafePointer:
		return &tree.Type{Name: name, Kind: tree.KindReference}

	case info&types.IsInteger != 0:
		if d, ok := domains[b.Kind()]; ok {
			return &tree.Type{Name: name, Kind: tree.KindInteger, Domain: tree.Domain{d}}
		}

		return &tree.Type{Name: name, Kind: tree.KindOther}

	default:
		return &tree.Type{Name: name, Kind: tree.KindOther}
	}
}

// domains are the value ranges of the integer kinds that fit in an int64.
var domains = map[types.BasicKind]tree.Interval{
	types.Int:    {Lo: math.MinInt64, Hi: math.MaxInt64},
	types.Int8:   {Lo: math.MinInt8, Hi: math.MaxInt8},
	types.Int16:  {Lo: math.MinInt16, Hi: math.MaxInt16},
	types.Int32:  {Lo: math.MinInt32, Hi: math.MaxInt32},
	types.Int64:  {Lo: math.MinInt64, Hi: math.MaxInt64},
	types.Uint8:  {Lo: 0, Hi: math.MaxUint8},
	types.Uint16: {Lo: 0, Hi: math.MaxUint16},
	types.Uint32: {Lo: 0, Hi: math.MaxUint32},
}

// zeroAssigned reports whether a variable of type t without initializer
// counts as assigned: composite values and reference-like types start as
// usable zero values.
func zeroAssigned(t types.Type) bool {
	switch t.Underlying().(type) {
	case *types.Basic, *types.Pointer:
		return false

	default:
		return true
	}
}
