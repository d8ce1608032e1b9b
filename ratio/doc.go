// Package ratio classifies the outcome of a division at the site where it happens.
//
// What & Why:
//
//	Input-Output tables are full of empty cells. Dividing a current-price cell
//	by its prior-year counterpart, or a flow by its row total, routinely meets
//	0/0 and x/0. Instead of letting NaN and ±Inf leak into later sums and
//	sweeping them afterwards, every quotient is produced as a Ratio carrying a
//	Kind, and each caller resolves the degenerate kinds with an explicit rule.
//
// Kinds:
//
//	Defined       finite quotient of a non-zero denominator
//	ZeroOverZero  0/0, or any NaN operand
//	DivByZero     x/0 with x != 0, or an overflowing quotient
//
// Grid is the cell-wise form over two equally shaped matrices; DivideVec is the
// vector form.
package ratio
