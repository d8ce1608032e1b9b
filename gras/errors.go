// SPDX-License-Identifier: MIT

package gras

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch indicates a target vector whose length differs from the matrix axis.
	ErrShapeMismatch = errors.New("gras: shape mismatch")

	// ErrInvalidOptions indicates a non-positive tolerance or iteration cap.
	ErrInvalidOptions = errors.New("gras: invalid options")

	// ErrNotConverged indicates the iteration cap was reached, or the iterate broke down,
	// before the multipliers settled.
	ErrNotConverged = errors.New("gras: not converged")
)

// NonConvergenceError reports a failed balancing run. It unwraps to ErrNotConverged.
type NonConvergenceError struct {
	// Iterations performed when the run stopped.
	Iterations int
	// Residual is the last max |Δs| observed (NaN when the iterate broke down).
	Residual float64
}

// Error implements error.
func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("%v after %d iterations (residual %g)", ErrNotConverged, e.Iterations, e.Residual)
}

// Unwrap exposes ErrNotConverged to errors.Is.
func (e *NonConvergenceError) Unwrap() error { return ErrNotConverged }

// grasErrorf wraps err with an operation tag, preserving it via %w.
func grasErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
