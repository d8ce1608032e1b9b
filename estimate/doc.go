// Package estimate turns one year of Resources and Uses tables (TRU) into a
// symmetric sector×sector Input-Output table.
//
// What & Why:
//
//	The published use table is valued at purchaser prices: every purchase
//	still carries trade and transport margins, product taxes and imports.
//	An I-O table needs domestic flows at basic prices. BasicPrices allocates
//	each supply-side column over the uses of its product (see package alloc),
//	subtracts them, and keeps every allocated piece because the assembled
//	table reports them as payment rows.
//
// Flow (Estimate):
//
//	1. Zero the stock-change column; alpha = row shares of [intermediate | demand].
//	2. Trade and transport margins, netted on their margin-bearing rows.
//	3. IPI, ICMS and other net taxes, allocated with alpha.
//	4. Zero the export columns too; a second alpha allocates imports and import tax.
//	5. Basic-price uses = purchaser-price uses minus everything above.
//	6. sector.Convert with the value-added total production row as sector output.
//	7. AssembleTable lays out the I-O table; GDP reads the three GDP approaches off it.
//
// Aggregates and CompileAggregates build per-product series over several years
// straight from the raw tables.
package estimate
