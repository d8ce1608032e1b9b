// SPDX-License-Identifier: MIT

package alloc

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch indicates operands whose row counts (or a partition's size) disagree.
	ErrShapeMismatch = errors.New("alloc: shape mismatch")

	// ErrColumnRange indicates a supply column index outside the input matrix.
	ErrColumnRange = errors.New("alloc: column out of range")

	// ErrPartitionRange indicates a partition row outside [0, rows) or an empty/inverted range.
	ErrPartitionRange = errors.New("alloc: partition row out of range")
)

const (
	opShares           = "alloc.Shares"
	opAllocateMargin   = "alloc.AllocateMargin"
	opAllocateInternal = "alloc.AllocateInternal"
	opPartition        = "alloc.NewPartition"
)

func allocErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
