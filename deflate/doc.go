// Package deflate chains a run of yearly I-O estimates into constant prices.
//
// What & Why:
//
//	Each year after the base year is published twice: at current prices and at
//	the previous year's prices. Their cell-wise ratio is a one-year deflator;
//	multiplying the deflators year after year gives a chained index with the
//	base year at 100, and dividing current values by that index yields the
//	series at base-year prices.
//
//	Raw ratios are unusable where the prior-year cell is zero but the current
//	one is not (x/0). Those cells are re-estimated from the current year's
//	structure (markdown), after which GRAS restores the prior-year margins.
//
// Pipeline, per year:
//
//	1. Build basic-price views of the current and prior-year tables
//	   (concurrently, with estimate.BasicPrices).
//	2. Cell-wise deflators current / prior, classified with ratio.Divide.
//	3. Markdown on the x/0 and zero-deflator cells; 0/0 cells keep the prior value.
//	4. GRAS on the adjusted prior-year production and consumption.
//	5. Deflators against the balanced matrices; residual degenerate cells become 1.
//	6. Chain: index[y] = deflator[y] · index[y−1], index[base] = 100.
//	7. Double deflation against the aggregate output index, then each valuation
//	   (current, prior year, deflated) is converted to sector space.
//
// A failure in any year stops the run with a *YearError; no later year is chained.
package deflate
