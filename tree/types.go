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

package tree

import "math"

// TypeKind classifies a [Type] by the properties relevant for flow analysis.
type TypeKind uint8

const (
	// KindOther is a value type without tracked fields or enumerable values.
	KindOther TypeKind = iota

	// KindVoid is the result type of functions without a value.
	KindVoid

	// KindBool is the boolean type.
	KindBool

	// KindInteger is an integral type with a [Domain].
	KindInteger

	// KindEnum is an enumeration with a [Domain] over its members.
	KindEnum

	// KindStruct is a value type with fields tracked per sub-slot.
	KindStruct

	// KindNullable wraps a value type, see [Type.Elem].
	KindNullable

	// KindReference is a reference type; values may be null.
	KindReference
)

// Type describes the type of a variable or an expression.
type Type struct {
	Name string
	Kind TypeKind

	// Fields are the instance fields of a struct in declaration order.
	Fields []*Field

	// Elem is the underlying type of a nullable value type.
	Elem *Type

	// Domain are the values of an integral or enumeration type.
	Domain Domain
}

// IsValueType reports whether values of this type can't be null.
func (t *Type) IsValueType() bool {
	if t == nil {
		return false
	}

	switch t.Kind {
	case KindNullable, KindReference:
		return false

	default:
		return true
	}
}

// IsNullable reports whether values of this type may be null.
func (t *Type) IsNullable() bool {
	return t != nil && !t.IsValueType()
}

// IsVoid reports whether t is absent or the void type.
func (t *Type) IsVoid() bool {
	return t == nil || t.Kind == KindVoid
}

// Underlying returns the value type wrapped by a nullable type, or t itself.
func (t *Type) Underlying() *Type {
	if t != nil && t.Kind == KindNullable && t.Elem != nil {
		return t.Elem
	}

	return t
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}

	return t.Name
}

// Interval is a closed range of integral values.
type Interval struct {
	Lo, Hi int64
}

// Domain is a sorted list of disjoint intervals describing the values of a type.
// Boolean values are represented as 0 (false) and 1 (true).
type Domain []Interval

// Predeclared types.
var (
	Void   = &Type{Name: "void", Kind: KindVoid}
	Bool   = &Type{Name: "bool", Kind: KindBool, Domain: Domain{{0, 1}}}
	Byte   = &Type{Name: "byte", Kind: KindInteger, Domain: Domain{{0, math.MaxUint8}}}
	Int    = &Type{Name: "int", Kind: KindInteger, Domain: Domain{{math.MinInt32, math.MaxInt32}}}
	Long   = &Type{Name: "long", Kind: KindInteger, Domain: Domain{{math.MinInt64, math.MaxInt64}}}
	String = &Type{Name: "string", Kind: KindReference}
	Object = &Type{Name: "object", Kind: KindReference}
)

// NewNullable returns the nullable type wrapping elem.
func NewNullable(elem *Type) *Type {
	return &Type{Name: elem.Name + "?", Kind: KindNullable, Elem: elem}
}

// NewStruct returns a struct type with the given fields. Field indexes are
// assigned in order.
func NewStruct(name string, fields ...*Field) *Type {
	for i, f := range fields {
		f.Index = i
	}

	return &Type{Name: name, Kind: KindStruct, Fields: fields}
}

// NewEnum returns an enumeration with the given member values.
func NewEnum(name string, members ...int64) *Type {
	t := &Type{Name: name, Kind: KindEnum}
	for _, m := range members {
		t.Domain = t.Domain.add(m)
	}

	return t
}

func (d Domain) add(v int64) Domain {
	for i, iv := range d {
		switch {
		case v >= iv.Lo && v <= iv.Hi:
			return d

		case v == iv.Hi+1:
			d[i].Hi = v
			if i+1 < len(d) && d[i+1].Lo == v+1 {
				d[i].Hi = d[i+1].Hi
				d = append(d[:i+1], d[i+2:]...)
			}

			return d

		case v == iv.Lo-1:
			d[i].Lo = v
			return d

		case v < iv.Lo:
			d = append(d, Interval{})
			copy(d[i+1:], d[i:])
			d[i] = Interval{v, v}

			return d
		}
	}

	return append(d, Interval{v, v})
}
