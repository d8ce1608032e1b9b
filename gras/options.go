// SPDX-License-Identifier: MIT

package gras

// Defaults for Balance.
const (
	DefaultTolerance     = 1e-8
	DefaultMaxIterations = 10000
)

// Options configures Balance.
//
// Fields:
//   - Tolerance: convergence threshold on max |Δs| between consecutive rounds.
//   - MaxIterations: iteration cap; reaching it unconverged yields *NonConvergenceError.
type Options struct {
	Tolerance     float64
	MaxIterations int
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{Tolerance: DefaultTolerance, MaxIterations: DefaultMaxIterations}
}

// WithTolerance sets the convergence threshold.
func WithTolerance(eps float64) Option {
	return func(o *Options) { o.Tolerance = eps }
}

// WithMaxIterations sets the iteration cap.
func WithMaxIterations(n int) Option {
	return func(o *Options) { o.MaxIterations = n }
}

// WithOptions replaces the whole option set, e.g. with values loaded from config.
func WithOptions(in Options) Option {
	return func(o *Options) { *o = in }
}

func newOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

func (o Options) validate() error {
	if !(o.Tolerance > 0) || o.MaxIterations < 1 {
		return ErrInvalidOptions
	}

	return nil
}
