// SPDX-License-Identifier: MIT

package deflate

import (
	"time"

	"github.com/katalvlaran/leontief/estimate"
	"github.com/katalvlaran/leontief/gras"
	"github.com/katalvlaran/leontief/internal/logger"
	"github.com/katalvlaran/leontief/ratio"
)

// Observer receives pipeline events. It must be safe for concurrent use.
type Observer interface {
	estimate.Observer
	// Balanced fires after a successful GRAS run on series.
	Balanced(series string, iterations int)
	// NotConverged fires when GRAS gives up on series.
	NotConverged(series string)
	// Degenerate fires once per series, stage and kind with a non-zero cell count.
	Degenerate(series, stage string, kind ratio.Kind, cells int)
	// YearDone fires after a year is fully processed.
	YearDone(year int, elapsed time.Duration)
}

type nopObserver struct{ estimate.Observer }

func (nopObserver) Balanced(string, int) {}
func (nopObserver) NotConverged(string) {}
func (nopObserver) Degenerate(string, string, ratio.Kind, int) {}
func (nopObserver) YearDone(int, time.Duration) {}

// Option configures a Pipeline.
type Option func(*options)

type options struct {
	log        logger.Logger
	observer   Observer
	balance    []gras.Option
	sequential bool
}

// WithLogger routes progress and warnings to l.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithObserver reports events to ob.
func WithObserver(ob Observer) Option {
	return func(o *options) {
		if ob != nil {
			o.observer = ob
		}
	}
}

// WithBalancerOptions passes options to every gras.Balance call.
func WithBalancerOptions(opts ...gras.Option) Option {
	return func(o *options) { o.balance = append(o.balance, opts...) }
}

// WithSequential builds the current and prior-year views one after the other.
func WithSequential() Option {
	return func(o *options) { o.sequential = true }
}

func newOptions(opts ...Option) options {
	o := options{log: logger.Nop(), observer: nopObserver{estimate.NopObserver()}}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
