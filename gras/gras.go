// SPDX-License-Identifier: MIT

package gras

import (
	"fmt"
	"math"

	"github.com/katalvlaran/leontief/matrix"
	"github.com/katalvlaran/leontief/ratio"
)

const (
	opBalance = "gras.Balance"
	opRows    = "row targets"
	opCols    = "column targets"
)

// Result is a balanced matrix together with the multipliers that produced it.
type Result struct {
	// Matrix is the balanced matrix X.
	Matrix *matrix.Dense
	// RowMultipliers is r (one per row).
	RowMultipliers []float64
	// ColMultipliers is s (one per column).
	ColMultipliers []float64
	// Iterations is the number of (row, column) rounds after the first one; at least 1.
	Iterations int
}

// Balance rescales m so that its row sums match rowTargets and its column sums match colTargets.
//
// Implementation:
//   - Stage 1: validate shapes, finiteness and options; split m into P (positive part)
//     and N (magnitude of the negative part), m = P − N.
//   - Stage 2: from r = 1 compute s1, then r, then s2; Iterations = 1.
//   - Stage 3: while max|s2 − s1| > Tolerance, shift s1 ← s2 and recompute r and s2;
//     fail with *NonConvergenceError once Iterations reaches MaxIterations.
//   - Stage 4: recompute r from the converged s and assemble
//     X = diag(r)·P·diag(s) − diag(1/r)·N·diag(1/s).
//
// Behavior highlights:
//   - Sign preservation when targets are sign-compatible: a positive cell stays positive,
//     a negative one negative, a zero zero. Negative-only rows or columns with positive
//     targets take the linear fallback, whose multiplier is negative, and their cells flip.
//   - Row sums are exact up to rounding (r is solved last); column sums are within the
//     tolerance scaled by the column magnitude.
//   - A matrix that already meets its targets converges with Iterations == 1.
//   - A NaN residual (the quadratic met a negative discriminant) stops the run at once
//     with *NonConvergenceError instead of looping until the cap.
//
// Inputs:
//   - m: r×c matrix, any signs; never mutated.
//   - rowTargets: length r.  colTargets: length c.
//
// Errors:
//   - matrix.ErrNilMatrix, ErrShapeMismatch, matrix.ErrNaNInf (targets), ErrInvalidOptions,
//     *NonConvergenceError (errors.Is ErrNotConverged). No partial matrix is returned on error.
//
// Complexity:
//   - Time O(k·r·c) for k iterations, Space O(r·c).
//
// AI-Hints:
//   - Infeasible targets (Σrows ≠ Σcols) never converge; check totals first when
//     MaxIterations is large.
func Balance(m matrix.Matrix, rowTargets, colTargets []float64, opts ...Option) (*Result, error) {
	o := newOptions(opts...)
	if err := o.validate(); err != nil {
		return nil, grasErrorf(opBalance, err)
	}
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, grasErrorf(opBalance, err)
	}
	rows, cols := m.Rows(), m.Cols()
	if len(rowTargets) != rows {
		return nil, grasErrorf(opBalance, fmt.Errorf("%s: len %d, matrix has %d rows: %w", opRows, len(rowTargets), rows, ErrShapeMismatch))
	}
	if len(colTargets) != cols {
		return nil, grasErrorf(opBalance, fmt.Errorf("%s: len %d, matrix has %d cols: %w", opCols, len(colTargets), cols, ErrShapeMismatch))
	}
	if err := matrix.ValidateFiniteVec(rowTargets); err != nil {
		return nil, grasErrorf(opBalance, fmt.Errorf("%s: %w", opRows, err))
	}
	if err := matrix.ValidateFiniteVec(colTargets); err != nil {
		return nil, grasErrorf(opBalance, fmt.Errorf("%s: %w", opCols, err))
	}

	pos, neg, err := matrix.SplitSigns(m)
	if err != nil {
		return nil, grasErrorf(opBalance, err)
	}
	b := balancer{pos: pos, neg: neg, u: rowTargets, v: colTargets}

	r := matrix.Ones(rows)
	s1, err := b.colStep(r)
	if err != nil {
		return nil, grasErrorf(opBalance, err)
	}
	if r, err = b.rowStep(s1); err != nil {
		return nil, grasErrorf(opBalance, err)
	}
	s2, err := b.colStep(r)
	if err != nil {
		return nil, grasErrorf(opBalance, err)
	}
	residual, err := matrix.MaxAbsDiff(s2, s1)
	if err != nil {
		return nil, grasErrorf(opBalance, err)
	}
	iterations := 1

	for residual > o.Tolerance || math.IsNaN(residual) {
		if math.IsNaN(residual) || iterations == o.MaxIterations {
			return nil, grasErrorf(opBalance, &NonConvergenceError{Iterations: iterations, Residual: residual})
		}
		s1 = s2
		if r, err = b.rowStep(s1); err != nil {
			return nil, grasErrorf(opBalance, err)
		}
		if s2, err = b.colStep(r); err != nil {
			return nil, grasErrorf(opBalance, err)
		}
		iterations++
		if residual, err = matrix.MaxAbsDiff(s2, s1); err != nil {
			return nil, grasErrorf(opBalance, err)
		}
	}

	s := s2
	if r, err = b.rowStep(s); err != nil {
		return nil, grasErrorf(opBalance, err)
	}
	x, err := b.assemble(r, s)
	if err != nil {
		return nil, grasErrorf(opBalance, err)
	}
	if matrix.ValidateFinite(x) != nil {
		return nil, grasErrorf(opBalance, &NonConvergenceError{Iterations: iterations, Residual: math.NaN()})
	}

	return &Result{Matrix: x, RowMultipliers: r, ColMultipliers: s, Iterations: iterations}, nil
}

// balancer holds the split input and the targets for one Balance call.
type balancer struct {
	pos, neg *matrix.Dense
	u, v     []float64
}

// colStep solves the column multipliers for fixed r: p = Pᵀr, n = Nᵀ(1/r).
func (b balancer) colStep(r []float64) ([]float64, error) {
	p, err := matrix.VecMat(r, b.pos)
	if err != nil {
		return nil, err
	}
	n, err := matrix.VecMat(reciprocals(r), b.neg)
	if err != nil {
		return nil, err
	}

	return solve(b.v, p, n), nil
}

// rowStep solves the row multipliers for fixed s: p = P·s, n = N·(1/s).
func (b balancer) rowStep(s []float64) ([]float64, error) {
	p, err := matrix.MatVec(b.pos, s)
	if err != nil {
		return nil, err
	}
	n, err := matrix.MatVec(b.neg, reciprocals(s))
	if err != nil {
		return nil, err
	}

	return solve(b.u, p, n), nil
}

// assemble builds X = diag(r)·P·diag(s) − diag(1/r)·N·diag(1/s).
func (b balancer) assemble(r, s []float64) (*matrix.Dense, error) {
	pr, err := matrix.ScaleRows(b.pos, r)
	if err != nil {
		return nil, err
	}
	prs, err := matrix.ScaleCols(pr, s)
	if err != nil {
		return nil, err
	}
	nr, err := matrix.ScaleRows(b.neg, reciprocals(r))
	if err != nil {
		return nil, err
	}
	nrs, err := matrix.ScaleCols(nr, reciprocals(s))
	if err != nil {
		return nil, err
	}

	return matrix.Sub(prs, nrs)
}

// solve returns, per entry, the positive root of p·x² − t·x − n = 0,
// or the linear solution −n/t when p is exactly zero.
func solve(target, p, n []float64) []float64 {
	out := make([]float64, len(target))
	for k, t := range target {
		if p[k] == 0 {
			out[k] = -n[k] * ratio.Inv(t).Or(1)
			continue
		}
		out[k] = (t + math.Sqrt(t*t+4*p[k]*n[k])) * ratio.Inv(2*p[k]).Or(1)
	}

	return out
}

// reciprocals returns 1/x per entry, with 1 wherever the reciprocal is degenerate.
func reciprocals(x []float64) []float64 {
	out := make([]float64, len(x))
	for k, v := range x {
		out[k] = ratio.Inv(v).Or(1)
	}

	return out
}
