// Package matrix provides the dense float64 storage and the linear-algebra
// kernels used by the Input-Output reconciliation engine.
//
// What & Why:
//
//	Resource/Use tables, allocation shares, coefficient matrices and price
//	indices are all small-to-medium dense matrices (at most ~150×150). Dense
//	stores them row-major in one flat slice; every kernel validates shapes,
//	returns sentinel errors instead of panicking, and never mutates its inputs.
//
// Kernels:
//
//	Add, Sub, Mul, Transpose, Scale, Hadamard, MatVec        (impl_linear_algebra.go)
//	Inverse (LU via gonum with condition-number detection)   (impl_inverse.go)
//	ScaleRows, ScaleCols, SplitSigns, ZeroCols, AllClose    (ops_elementwise.go)
//	RowSums, ColSums, Total, RowShares                       (impl_statistics.go)
//	HConcat, SliceCols, SliceRows                            (impl_compose.go, impl_dense.go)
//
// Complexity:
//
//	At/Set are O(1) with bounds checking. Element-wise kernels are O(r*c);
//	Mul is O(r*n*c); Inverse is O(n³).
package matrix
