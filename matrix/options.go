// SPDX-License-Identifier: MIT
// Package matrix: numeric policy and comparison options.
//
// Purpose:
//   - Single source of truth for the finite-only ingestion policy.
//   - Tolerances for AllClose, shared by tests and consistency checks.
//
// Usage:
//   - NewFromRows(rows)                              // finite-only (default)
//   - NewFromRows(rows, WithNoValidateNaNInf())      // raw ingestion
//   - AllClose(a, b, WithTolerance(1e-9, 1e-6))      // custom tolerances

package matrix

// DefaultValidateNaNInf is the finite-only policy applied by every constructor.
const DefaultValidateNaNInf = true

// Default tolerances for AllClose: |a-b| <= ATol + RTol*|b|.
const (
	DefaultRTol = 1e-9
	DefaultATol = 1e-9
)

// Options holds the numeric policy knobs.
type Options struct {
	// ValidateNaNInf rejects NaN/±Inf cells in constructors and Set/Apply.
	ValidateNaNInf bool
	// RTol is the relative tolerance used by AllClose.
	RTol float64
	// ATol is the absolute tolerance used by AllClose.
	ATol float64
}

// Option mutates Options.
type Option func(*Options)

// WithNoValidateNaNInf disables the finite-only policy.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.ValidateNaNInf = false }
}

// WithTolerance overrides the AllClose tolerances. Negative values are ignored.
func WithTolerance(rtol, atol float64) Option {
	return func(o *Options) {
		if rtol >= 0 {
			o.RTol = rtol
		}
		if atol >= 0 {
			o.ATol = atol
		}
	}
}

// NewOptions applies opts over the defaults.
func NewOptions(opts ...Option) Options {
	o := Options{ValidateNaNInf: DefaultValidateNaNInf, RTol: DefaultRTol, ATol: DefaultATol}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
