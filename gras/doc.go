// Package gras balances a matrix to prescribed row and column totals with the
// Generalized RAS method, which allows negative cells.
//
// What & Why:
//
//	Input-Output tables estimated from partial data never add up exactly. GRAS
//	finds row multipliers r and column multipliers s such that
//
//	    X = diag(r)·P·diag(s) − diag(r)⁻¹·N·diag(s)⁻¹
//
//	matches the targets, where P and N are the positive part and the magnitude
//	of the negative part of the input. Each cell keeps its sign, and zero cells
//	stay zero.
//
// Algorithm:
//
//	Starting from r = 1, column and row multipliers are solved alternately in
//	closed form (a quadratic per entry). The loop stops once the column
//	multipliers move by at most Tolerance between consecutive rounds.
//
// Numeric policy:
//
//	Every reciprocal of a zero, or one that does not come out finite, is taken
//	as 1. Where the positive weight of a row or column is exactly zero the
//	quadratic degenerates and the linear solution −n/target is used instead.
//
// Errors:
//
//	ErrShapeMismatch   target length differs from the matrix axis
//	ErrInvalidOptions  non-positive tolerance or iteration cap
//	ErrNotConverged    wrapped by *NonConvergenceError (carries Iterations)
package gras
