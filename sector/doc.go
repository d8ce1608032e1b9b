// Package sector converts product-by-sector use and make tables into the
// sector-by-sector Input-Output system.
//
// Under the industry-technology assumption:
//
//	D  = market shares, sector×product:   D[s,p]  = make[p,s] / q[p]
//	Bn = national input coefficients:     Bn[p,s] = use[p,s] / x[s]
//	A  = D·Bn                             (sector×sector technical coefficients)
//	Z  = A·diag(x)                        (intermediate transactions)
//	Y  = D·E                              (final demand by sector)
//	L  = (I − A)⁻¹                        (Leontief inverse)
//
// where q are product totals and x sector outputs. Any 0/0 or x/0 coefficient is
// taken as 0, so an unproduced product or an idle sector contributes nothing.
package sector
