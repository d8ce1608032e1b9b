// SPDX-License-Identifier: MIT

package estimate

import "github.com/katalvlaran/leontief/internal/logger"

// Observer receives events worth counting. Implementations must be safe for
// concurrent use: deflate runs two estimates at once.
type Observer interface {
	// ZeroMarginPool fires when a margin partition had no margin supply;
	// charged is the margin still charged on ordinary products.
	ZeroMarginPool(partition string, charged float64)
}

type nopObserver struct{}

func (nopObserver) ZeroMarginPool(string, float64) {}

// NopObserver discards every event.
func NopObserver() Observer { return nopObserver{} }

// Option configures BasicPrices and Estimate.
type Option func(*options)

type options struct {
	log      logger.Logger
	observer Observer
}

// WithLogger routes diagnostics to l.
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

func newOptions(opts ...Option) options {
	o := options{log: logger.Nop(), observer: nopObserver{}}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
