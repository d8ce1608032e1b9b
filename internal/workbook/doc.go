// Package workbook moves matrices between .xlsx files and the core packages.
//
// Reader extracts the six supply-use sheets of a published year into
// estimate.Tables; Writer stores named, labelled matrices, one per sheet, with
// the run ID in the document properties. Only the .xlsx format is supported.
package workbook
