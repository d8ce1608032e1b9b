// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points over the private ew* and
//     statistics kernels.
//   - Each facade delegates to exactly one kernel.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.
//
// AI-Hints:
//   - Prefer passing *Dense to unlock fast-paths in kernels (flat-slice loops).
//   - ScaleRows/ScaleCols are the diag(v)·X and X·diag(v) products used by the balancer.

package matrix

// ToDense returns m itself when it is a *Dense, or a materialized copy otherwise.
func ToDense(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	mv, err := valuesOf(m)
	if err != nil {
		return nil, err
	}

	return NewFromData(m.Rows(), m.Cols(), mv)
}

// ---------- Broadcast scaling ----------

// ScaleRows returns diag(v)·m. Complexity: O(r*c).
func ScaleRows(m Matrix, v []float64) (*Dense, error) { return ewScaleRows(m, v) }

// ScaleCols returns m·diag(v). Complexity: O(r*c).
func ScaleCols(m Matrix, v []float64) (*Dense, error) { return ewScaleCols(m, v) }

// SplitSigns decomposes m into non-negative parts with m = pos − neg.
func SplitSigns(m Matrix) (pos, neg *Dense, err error) { return ewSplitSigns(m) }

// ZeroCols returns a copy of m with the listed columns zeroed.
func ZeroCols(m Matrix, cols ...int) (*Dense, error) { return ewZeroCols(m, cols) }

// ---------- Marginals ----------

// RowSums returns vector r where r[i] = sum_j m[i,j]. Complexity: O(rc).
func RowSums(m Matrix) ([]float64, error) { return rowSums(m) }

// ColSums returns vector c where c[j] = sum_i m[i,j]. Complexity: O(rc).
func ColSums(m Matrix) ([]float64, error) { return colSums(m) }

// Total returns the grand sum of m.
func Total(m Matrix) (float64, error) { return total(m) }

// RowShares returns diag(inv(sums))·m and the row sums. A nil inv means 1/sum, with 0
// for a zero sum.
//
// AI-Hints:
//   - This is the allocation-share normalization: each product row of the
//     use table becomes the distribution of that product across its uses.
//   - Pass inv to decide what a degenerate row scales by.
func RowShares(m Matrix, inv func(sum float64) float64) (*Dense, []float64, error) {
	return rowShares(m, inv)
}

// ---------- Numeric compare ----------

// AllClose checks element-wise |a-b| ≤ ATol + RTol*|b| for identical shapes.
// Tolerances come from NewOptions (DefaultRTol/DefaultATol unless WithTolerance is given).
// Time: O(r*c). Space: O(1). Deterministic.
//
// AI-Hints:
//   - AllClose with small atol/rtol is ideal for invariance tests in unit tests.
func AllClose(a, b Matrix, opts ...Option) (bool, error) {
	o := NewOptions(opts...)

	return ewAllClose(a, b, o.RTol, o.ATol)
}
