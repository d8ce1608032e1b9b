// Package leontief reconciles and deflates Input-Output tables: it turns a
// year's Resource and Use tables at purchaser prices into a balanced
// product×sector table at basic prices, converts it to sector space with the
// Leontief inverse, and chains successive years into constant-price series.
//
// What is in the box?
//
//	• Dense matrices with element-wise kernels and an LU inverse (matrix/)
//	• Zero-aware element-wise division with per-cell classification (ratio/)
//	• GRAS biproportional balancing of signed matrices (gras/)
//	• Proportional allocation of margins and taxes onto a target (alloc/)
//	• Product-technology conversion and the Leontief inverse (sector/)
//	• Table layouts for the published classifications (layout/)
//	• Single-year basic-price estimation, GDP and product aggregates (estimate/)
//	• Multi-year chained deflation at previous-year prices (deflate/)
//
// The leontief command (cmd/leontief) wires these packages to .xlsx workbooks,
// YAML/env/flag configuration, zap logging and a Prometheus textfile.
//
// Data flow for one year:
//
//	Resource + Use (purchaser prices)
//	    │  estimate.BasicPrices: strip margins, taxes and imports
//	    ▼
//	product×sector at basic prices ──► sector.Convert ──► Leontief inverse
//	    │  deflate: prior-year prices, markdown, gras.Balance
//	    ▼
//	chained index (base year = 100) ──► deflated series
//
//	go get github.com/katalvlaran/leontief
package leontief
