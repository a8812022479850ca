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

// Package pattern computes static facts about patterns: whether they always
// or never match, whether they can match null and whether a list of patterns
// covers all values of a type.
package pattern

import (
	"go/constant"
	"go/token"
	"math"

	"fillmore-labs.com/flowguard/tree"
)

// Facts are the static properties of a pattern applied to an input type.
type Facts struct {
	Irrefutable    bool // the pattern matches every value
	Impossible     bool // the pattern matches no value
	MatchesNull    bool // the pattern may match null
	MatchesNonNull bool // the pattern may match a non-null value
}

// Analyze returns the [Facts] of p for values of type input.
func Analyze(p tree.Pattern, input *tree.Type) Facts {
	u := universe(input)
	c := coverOf(p, input)
	nullable := input.IsNullable()

	return Facts{
		Irrefutable:    c.must.covers(u) && (!nullable || c.mustNull),
		Impossible:     c.may.intersect(u).empty() && (!nullable || !c.mayNull),
		MatchesNull:    nullable && c.mayNull,
		MatchesNonNull: !c.may.intersect(u).empty(),
	}
}

// Exhaustive reports whether every value of type input matches at least one
// of the patterns.
func Exhaustive(patterns []tree.Pattern, input *tree.Type) bool {
	var (
		must     set
		mustNull bool
	)

	for _, p := range patterns {
		c := coverOf(p, input)
		must = must.union(c.must)
		mustNull = mustNull || c.mustNull
	}

	return must.covers(universe(input)) && (!input.IsNullable() || mustNull)
}

// cover approximates the values a pattern matches: must are values that
// certainly match, may are values that possibly match.
type cover struct {
	must, may         set
	mustNull, mayNull bool
}

// opaque is the single representative value of types without enumerable domain.
var opaque = set{{0, 0}}

// universe returns the non-null values of t.
func universe(t *tree.Type) set {
	if d := t.Underlying(); d != nil && len(d.Domain) > 0 {
		return set(d.Domain)
	}

	return opaque
}

func enumerable(t *tree.Type) bool {
	d := t.Underlying()

	return d != nil && len(d.Domain) > 0
}

func all(t *tree.Type) cover {
	u := universe(t)

	return cover{must: u, may: u, mustNull: true, mayNull: true}
}

func unknown(t *tree.Type) cover {
	return cover{may: universe(t)}
}

func coverOf(p tree.Pattern, input *tree.Type) cover {
	switch p := p.(type) {
	case *tree.DiscardPattern:
		return all(input)

	case *tree.VarPattern:
		return all(input)

	case *tree.ConstPattern:
		return constCover(p.Value, input)

	case *tree.RelPattern:
		return relCover(p.Op, p.Value, input)

	case *tree.TypePattern:
		return typeCover(p.Type, input)

	case *tree.DeclPattern:
		return typeCover(p.Type, input)

	case *tree.NotPattern:
		u := universe(input)
		c := coverOf(p.Pattern, input)

		return cover{
			must:     u.minus(c.may),
			may:      u.minus(c.must),
			mustNull: !c.mayNull,
			mayNull:  !c.mustNull,
		}

	case *tree.AndPattern:
		x, y := coverOf(p.X, input), coverOf(p.Y, input)

		return cover{
			must:     x.must.intersect(y.must),
			may:      x.may.intersect(y.may),
			mustNull: x.mustNull && y.mustNull,
			mayNull:  x.mayNull && y.mayNull,
		}

	case *tree.OrPattern:
		x, y := coverOf(p.X, input), coverOf(p.Y, input)

		return cover{
			must:     x.must.union(y.must),
			may:      x.may.union(y.may),
			mustNull: x.mustNull || y.mustNull,
			mayNull:  x.mayNull || y.mayNull,
		}

	case *tree.RecursivePattern:
		c := input
		if p.Type != nil {
			c = p.Type
		}

		base := typeCover(c, input)

		for _, sub := range p.Props {
			var typ *tree.Type
			if sub.Field != nil {
				typ = sub.Field.Type
			}

			f := Analyze(sub.Pattern, typ)
			switch {
			case f.Impossible:
				return cover{}

			case !f.Irrefutable:
				base.must = nil
			}
		}

		return base

	default:
		return unknown(input)
	}
}

func constCover(v constant.Value, input *tree.Type) cover {
	if v == nil {
		return cover{mustNull: true, mayNull: true}
	}

	if !enumerable(input) {
		return unknown(input)
	}

	n, ok := ordinal(v)
	if !ok {
		return unknown(input)
	}

	s := point(n).intersect(universe(input))

	return cover{must: s, may: s}
}

func relCover(op token.Token, v constant.Value, input *tree.Type) cover {
	if !enumerable(input) || v == nil {
		return unknown(input)
	}

	n, ok := ordinal(v)
	if !ok {
		return unknown(input)
	}

	var s set
	switch op {
	case token.LSS:
		if n > math.MinInt64 {
			s = set{{math.MinInt64, n - 1}}
		}

	case token.LEQ:
		s = set{{math.MinInt64, n}}

	case token.GTR:
		if n < math.MaxInt64 {
			s = set{{n + 1, math.MaxInt64}}
		}

	case token.GEQ:
		s = set{{n, math.MaxInt64}}

	default:
		return unknown(input)
	}

	s = s.intersect(universe(input))

	return cover{must: s, may: s}
}

func typeCover(t, input *tree.Type) cover {
	u := universe(input)
	if sameType(t, input) {
		return cover{must: u, may: u}
	}

	return cover{may: u}
}

// sameType reports whether a type test for t always succeeds on non-null values of input.
func sameType(t, input *tree.Type) bool {
	return t == nil || input == nil || t == input || t == input.Underlying() || t == tree.Object
}

// ordinal maps boolean and integral constants to the domain representation.
func ordinal(v constant.Value) (int64, bool) {
	switch v.Kind() {
	case constant.Bool:
		if constant.BoolVal(v) {
			return 1, true
		}

		return 0, true

	case constant.Int:
		return constant.Int64Val(v)

	default:
		return 0, false
	}
}
