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

package pattern

import (
	"go/constant"
	"go/token"

	"fillmore-labs.com/flowguard/tree"
)

// Outcome is the statically known result of a pattern test.
type Outcome uint8

const (
	// Unknown means the result depends on the run time value.
	Unknown Outcome = iota

	// Always means the pattern matches.
	Always

	// Never means the pattern doesn't match.
	Never
)

func (o Outcome) not() Outcome {
	switch o {
	case Always:
		return Never

	case Never:
		return Always

	default:
		return Unknown
	}
}

// Match tests p against a constant value of type input. A nil value is null.
func Match(p tree.Pattern, input *tree.Type, v constant.Value) Outcome {
	switch p := p.(type) {
	case *tree.DiscardPattern, *tree.VarPattern:
		return Always

	case *tree.ConstPattern:
		switch {
		case v == nil || p.Value == nil:
			return outcome(v == nil && p.Value == nil)

		case !comparable(v, p.Value):
			return Unknown

		default:
			return outcome(constant.Compare(v, token.EQL, p.Value))
		}

	case *tree.RelPattern:
		switch {
		case v == nil:
			return Never

		case p.Value == nil || !comparable(v, p.Value) || !ordered(v.Kind()) || !ordered(p.Value.Kind()):
			return Unknown

		default:
			return outcome(constant.Compare(v, p.Op, p.Value))
		}

	case *tree.TypePattern:
		return typeMatch(p.Type, input, v)

	case *tree.DeclPattern:
		return typeMatch(p.Type, input, v)

	case *tree.RecursivePattern:
		if v == nil {
			return Never
		}

		return Unknown

	case *tree.NotPattern:
		return Match(p.Pattern, input, v).not()

	case *tree.AndPattern:
		x, y := Match(p.X, input, v), Match(p.Y, input, v)
		switch {
		case x == Never || y == Never:
			return Never

		case x == Always && y == Always:
			return Always

		default:
			return Unknown
		}

	case *tree.OrPattern:
		x, y := Match(p.X, input, v), Match(p.Y, input, v)
		switch {
		case x == Always || y == Always:
			return Always

		case x == Never && y == Never:
			return Never

		default:
			return Unknown
		}

	default:
		return Unknown
	}
}

func typeMatch(t, input *tree.Type, v constant.Value) Outcome {
	switch {
	case v == nil:
		return Never

	case sameType(t, input):
		return Always

	default:
		return Unknown
	}
}

func outcome(b bool) Outcome {
	if b {
		return Always
	}

	return Never
}

func comparable(x, y constant.Value) bool {
	kx, ky := x.Kind(), y.Kind()
	switch {
	case kx == constant.Unknown || ky == constant.Unknown:
		return false

	case kx == ky:
		return true

	default:
		return numeric(kx) && numeric(ky)
	}
}

func numeric(k constant.Kind) bool {
	return k == constant.Int || k == constant.Float || k == constant.Complex
}

func ordered(k constant.Kind) bool {
	return k == constant.Int || k == constant.Float || k == constant.String
}
