// SPDX-License-Identifier: MIT

package estimate

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingTable indicates a required sheet was not supplied.
	ErrMissingTable = errors.New("estimate: missing table")

	// ErrLabels indicates a label list whose length disagrees with its table.
	ErrLabels = errors.New("estimate: label count mismatch")

	// ErrNoYears indicates CompileAggregates was called without data.
	ErrNoYears = errors.New("estimate: no years to compile")
)

const (
	opBasicPrices = "estimate.BasicPrices"
	opEstimate    = "estimate.Estimate"
	opAssemble    = "estimate.AssembleTable"
	opGDP         = "estimate.GDP"
	opAggregates  = "estimate.Aggregates"
	opCompile     = "estimate.CompileAggregates"
)

func estimateErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
