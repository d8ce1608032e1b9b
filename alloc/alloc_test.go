// SPDX-License-Identifier: MIT
package alloc_test

import (
	"testing"

	"github.com/katalvlaran/leontief/alloc"
	"github.com/katalvlaran/leontief/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture: 3 products, 2 sectors, 1 demand column; product 2 is the trade service.
func fixture(t *testing.T) (ic, fd *matrix.Dense) {
	t.Helper()

	return mustRows(t, [][]float64{{2, 2}, {1, 3}, {0, 0}}), mustRows(t, [][]float64{{4}, {0}, {0}})
}

// TestShares checks the share law: rows sum to 1, zero rows stay zero.
func TestShares(t *testing.T) {
	ic, fd := fixture(t)

	alpha, combined, err := alloc.Shares(ic, fd)
	require.NoError(t, err)
	requireRowsClose(t, [][]float64{{2, 2, 4}, {1, 3, 0}, {0, 0, 0}}, combined)
	requireRowsClose(t, [][]float64{{0.25, 0.25, 0.5}, {0.25, 0.75, 0}, {0, 0, 0}}, alpha)

	sums, err := matrix.RowSums(alpha)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sums[0], tol)
	assert.InDelta(t, 1.0, sums[1], tol)
	assert.Zero(t, sums[2])
}

// TestShares_CancellingRow maps a row whose entries cancel out (x/0) to zeros.
func TestShares_CancellingRow(t *testing.T) {
	alpha, _, err := alloc.Shares(mustRows(t, [][]float64{{1, -1}}), mustRows(t, [][]float64{{0}}))
	require.NoError(t, err)
	requireRowsClose(t, [][]float64{{0, 0, 0}}, alpha)
}

// TestShares_ShapeMismatch rejects blocks with different row counts.
func TestShares_ShapeMismatch(t *testing.T) {
	_, _, err := alloc.Shares(mustRows(t, [][]float64{{1}, {2}}), mustRows(t, [][]float64{{1}}))
	assert.ErrorIs(t, err, alloc.ErrShapeMismatch)
	_, _, err = alloc.Shares(nil, mustRows(t, [][]float64{{1}}))
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestAllocateInternal distributes a tax column without netting.
func TestAllocateInternal(t *testing.T) {
	ic, fd := fixture(t)
	alpha, _, err := alloc.Shares(ic, fd)
	require.NoError(t, err)
	supply := mustRows(t, [][]float64{{0, 8}, {0, 4}, {0, 6}})

	got, err := alloc.AllocateInternal(alpha, supply, 1)
	require.NoError(t, err)
	requireRowsClose(t, [][]float64{{2, 2, 4}, {1, 3, 0}, {0, 0, 0}}, got)

	_, err = alloc.AllocateInternal(alpha, supply, 2)
	assert.ErrorIs(t, err, alloc.ErrColumnRange)
	_, err = alloc.AllocateInternal(alpha, mustRows(t, [][]float64{{1}}), 0)
	assert.ErrorIs(t, err, alloc.ErrShapeMismatch)
}

// TestAllocateMargin_Netting checks that the bearing row absorbs the margins charged elsewhere.
func TestAllocateMargin_Netting(t *testing.T) {
	ic, fd := fixture(t)
	alpha, _, err := alloc.Shares(ic, fd)
	require.NoError(t, err)
	supply := mustRows(t, [][]float64{{8}, {4}, {6}})
	trade, err := alloc.NewPartition("trade", 3, 2)
	require.NoError(t, err)

	got, err := alloc.AllocateMargin(alpha, supply, 0, trade)
	require.NoError(t, err)
	requireRowsClose(t, [][]float64{{2, 2, 4}, {1, 3, 0}, {-3, -5, -4}}, got.Matrix)
	assert.Equal(t, 6.0, got.Pool)
	assert.Equal(t, 12.0, got.Charged)
	assert.False(t, got.ZeroPool)
	assert.False(t, got.Unbalanced())
	assert.Equal(t, "trade", got.Partition)

	cols, err := matrix.ColSums(got.Matrix)
	require.NoError(t, err)
	for j, c := range cols {
		assert.InDeltaf(t, 0, c, tol, "column %d", j)
	}
}

// TestAllocateMargin_SplitPool splits the netting across two bearing rows by their supply share.
func TestAllocateMargin_SplitPool(t *testing.T) {
	alpha := mustRows(t, [][]float64{{0.5, 0.5}, {1, 0}, {0, 0}, {0, 0}})
	supply := mustRows(t, [][]float64{{4}, {2}, {1}, {3}})
	transport, err := alloc.NewRangePartition("transport", 4, 2, 3)
	require.NoError(t, err)

	got, err := alloc.AllocateMargin(alpha, supply, 0, transport)
	require.NoError(t, err)
	// charged = [2+2, 2+0] = [4, 2]; shares 0.25 and 0.75
	requireRowsClose(t, [][]float64{{2, 2}, {2, 0}, {-1, -0.5}, {-3, -1.5}}, got.Matrix)
}

// TestAllocateMargin_ZeroPool zeroes bearing rows and reports the empty pool.
func TestAllocateMargin_ZeroPool(t *testing.T) {
	ic, fd := fixture(t)
	alpha, _, err := alloc.Shares(ic, fd)
	require.NoError(t, err)
	supply := mustRows(t, [][]float64{{8}, {4}, {0}})
	trade, err := alloc.NewPartition("trade", 3, 2)
	require.NoError(t, err)

	got, err := alloc.AllocateMargin(alpha, supply, 0, trade)
	require.NoError(t, err)
	requireRowsClose(t, [][]float64{{2, 2, 4}, {1, 3, 0}, {0, 0, 0}}, got.Matrix)
	assert.True(t, got.ZeroPool)
	assert.True(t, got.Unbalanced())
	assert.Zero(t, got.Pool)
}

// TestAllocateMargin_PartitionSize rejects a partition built for another table size.
func TestAllocateMargin_PartitionSize(t *testing.T) {
	alpha := mustRows(t, [][]float64{{1}, {1}})
	p, err := alloc.NewPartition("trade", 3, 1)
	require.NoError(t, err)

	_, err = alloc.AllocateMargin(alpha, alpha, 0, p)
	assert.ErrorIs(t, err, alloc.ErrShapeMismatch)
}
