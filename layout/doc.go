// Package layout describes the table-size classes of the national Resources and
// Uses tables (TRU) and where each economic quantity sits inside them.
//
// What & Why:
//
//	The statistical office publishes the same tables at several levels of
//	aggregation (12, 20, 51 and 68 sectors). Each level has its own product
//	count, its own trade and transport product rows, and small differences in
//	column order (the 51-sector retropolated tables split exports in two and
//	drop one supply column in front). A Layout captures all of that once, so
//	every computation downstream asks the layout instead of hard-coding an
//	index.
//
// Presets:
//
//	"12"  12 products × 12 sectors
//	"20"  20 products × 20 sectors
//	"51"  107 products × 51 sectors (retropolated series)
//	"68"  128 products × 68 sectors
//
// A custom Layout can be loaded from configuration; Validate must pass before use.
//
// Boundary contract:
//
//	CheckShape compares one input table against the shape the layout expects and
//	fails with ErrTableShape. Readers call it as soon as a sheet is loaded.
package layout
