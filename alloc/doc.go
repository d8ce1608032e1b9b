// Package alloc distributes supply-side columns (margins, taxes, imports) over the
// uses of each product in proportion to observed consumption.
//
// What & Why:
//
//	Resource tables record margins and taxes as one column per product; use
//	tables record purchases at purchaser prices per product and user. To strip
//	a product's purchaser price down to basic prices each user must be charged
//	its part of the column. The alpha matrix (row shares of the use table) gives
//	that part: alpha[p,c] = use[p,c] / Σ_c use[p,c].
//
// Operations:
//
//	Shares            alpha matrix of [intermediate | final demand]
//	AllocateInternal  column ⊗ alpha, no netting (taxes, imports)
//	AllocateMargin    column ⊗ alpha, then the margin-bearing rows (trade,
//	                  transport services) are overwritten with minus their share
//	                  of the margins charged on all other products, so the
//	                  margin services are not counted twice.
//
// Partition names the margin-bearing rows once, at configuration time.
package alloc
