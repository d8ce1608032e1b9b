// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// Vector helpers. All of them allocate a fresh result and never alias inputs.

// Ones returns a slice of n ones.
func Ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}

	return out
}

// VecSum returns Σ x[i].
func VecSum(x []float64) float64 {
	s := ZeroSum
	for _, v := range x {
		s += v
	}

	return s
}

// VecAdd returns the element-wise sum of equally long vectors.
func VecAdd(xs ...[]float64) ([]float64, error) {
	if len(xs) == 0 {
		return nil, nil
	}
	n := len(xs[0])
	out := make([]float64, n)
	for k, x := range xs {
		if len(x) != n {
			return nil, fmt.Errorf("VecAdd: vector %d has len %d, want %d: %w", k, len(x), n, ErrDimensionMismatch)
		}
		for i, v := range x {
			out[i] += v
		}
	}

	return out, nil
}

// VecScale returns alpha·x.
func VecScale(x []float64, alpha float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = alpha * v
	}

	return out
}

// MaxAbsDiff returns max_i |x[i] − y[i]| (0 for empty vectors).
// NaN entries make the result NaN so that callers comparing against a tolerance never
// mistake a broken iterate for convergence.
func MaxAbsDiff(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("MaxAbsDiff: len %d != %d: %w", len(x), len(y), ErrDimensionMismatch)
	}
	m := 0.0
	for i := range x {
		d := math.Abs(x[i] - y[i])
		if math.IsNaN(d) {
			return math.NaN(), nil
		}
		if d > m {
			m = d
		}
	}

	return m, nil
}
