// SPDX-License-Identifier: MIT

package ratio

import "math"

// Kind tags the outcome of a division.
type Kind uint8

const (
	// Defined is a finite quotient.
	Defined Kind = iota
	// ZeroOverZero is 0/0, or a division with a NaN operand.
	ZeroOverZero
	// DivByZero is x/0 with x != 0, or a quotient that overflows to ±Inf.
	DivByZero
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case Defined:
		return "defined"
	case ZeroOverZero:
		return "zero_over_zero"
	case DivByZero:
		return "div_by_zero"
	default:
		return "unknown"
	}
}

// Ratio is a tagged quotient. Value is meaningful only when Kind == Defined.
type Ratio struct {
	Value float64
	Kind  Kind
}

// Of divides num by den and classifies the result.
//
// Behavior highlights:
//   - NaN in either operand yields ZeroOverZero.
//   - den == 0 yields ZeroOverZero when num == 0, DivByZero otherwise.
//   - A finite den that produces ±Inf (overflow) yields DivByZero.
//   - An infinite den with a finite num is Defined with value 0.
func Of(num, den float64) Ratio {
	if math.IsNaN(num) || math.IsNaN(den) {
		return Ratio{Kind: ZeroOverZero}
	}
	if den == 0 {
		if num == 0 {
			return Ratio{Kind: ZeroOverZero}
		}

		return Ratio{Kind: DivByZero}
	}
	v := num / den
	if math.IsNaN(v) {
		// ±Inf/±Inf
		return Ratio{Kind: ZeroOverZero}
	}
	if math.IsInf(v, 0) {
		return Ratio{Kind: DivByZero}
	}

	return Ratio{Value: v, Kind: Defined}
}

// Inv is Of(1, x).
func Inv(x float64) Ratio { return Of(1, x) }

// Degenerate reports whether the ratio is not Defined.
func (r Ratio) Degenerate() bool { return r.Kind != Defined }

// Or returns the value when Defined and fallback otherwise.
func (r Ratio) Or(fallback float64) float64 {
	if r.Kind == Defined {
		return r.Value
	}

	return fallback
}

// Resolve returns the value when Defined, zz for ZeroOverZero and dz for DivByZero.
func (r Ratio) Resolve(zz, dz float64) float64 {
	switch r.Kind {
	case ZeroOverZero:
		return zz
	case DivByZero:
		return dz
	default:
		return r.Value
	}
}
