// SPDX-License-Identifier: MIT

package alloc

import "fmt"

// Partition splits the product rows of a table into margin-bearing rows and ordinary rows.
// The zero value has no rows; build one with NewPartition or NewRangePartition.
type Partition struct {
	name    string
	bearing []bool
	rows    []int
}

// NewPartition marks the given rows of a rows-long table as margin-bearing.
// Duplicates are ignored.
//
// Errors:
//   - ErrPartitionRange when no row is given or a row is outside [0, rows).
func NewPartition(name string, rows int, bearing ...int) (Partition, error) {
	if rows <= 0 || len(bearing) == 0 {
		return Partition{}, allocErrorf(opPartition, fmt.Errorf("%q: %d rows, %d bearing: %w", name, rows, len(bearing), ErrPartitionRange))
	}
	mask := make([]bool, rows)
	for _, i := range bearing {
		if i < 0 || i >= rows {
			return Partition{}, allocErrorf(opPartition, fmt.Errorf("%q: row %d of %d: %w", name, i, rows, ErrPartitionRange))
		}
		mask[i] = true
	}
	list := make([]int, 0, len(bearing))
	for i, b := range mask {
		if b {
			list = append(list, i)
		}
	}

	return Partition{name: name, bearing: mask, rows: list}, nil
}

// NewRangePartition marks the inclusive row range [first, last] as margin-bearing.
func NewRangePartition(name string, rows, first, last int) (Partition, error) {
	if first > last {
		return Partition{}, allocErrorf(opPartition, fmt.Errorf("%q: range [%d,%d]: %w", name, first, last, ErrPartitionRange))
	}
	idx := make([]int, 0, last-first+1)
	for i := first; i <= last; i++ {
		idx = append(idx, i)
	}

	return NewPartition(name, rows, idx...)
}

// Name returns the partition label (e.g. "trade").
func (p Partition) Name() string { return p.name }

// Rows returns the number of rows the partition was built for.
func (p Partition) Rows() int { return len(p.bearing) }

// Bearing reports whether row i is margin-bearing. Out-of-range rows are not.
func (p Partition) Bearing(i int) bool { return i >= 0 && i < len(p.bearing) && p.bearing[i] }

// BearingRows returns the margin-bearing rows in ascending order (a copy).
func (p Partition) BearingRows() []int {
	out := make([]int, len(p.rows))
	copy(out, p.rows)

	return out
}

// OrdinaryRows returns the remaining rows in ascending order.
func (p Partition) OrdinaryRows() []int {
	out := make([]int, 0, len(p.bearing)-len(p.rows))
	for i, b := range p.bearing {
		if !b {
			out = append(out, i)
		}
	}

	return out
}

// String renders the partition as name[rows...].
func (p Partition) String() string { return fmt.Sprintf("%s%v", p.name, p.rows) }
