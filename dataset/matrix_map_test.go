package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvltrace/dataset"
	"github.com/katalvlaran/lvltrace/matrix"
)

func mustRows(tb testing.TB, rows [][]float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(tb, err)

	return m
}

// TestMatrixMapSingleOrientation stores reverse ids transposed and serves both.
func TestMatrixMapSingleOrientation(t *testing.T) {
	mm := dataset.NewMatrixMap()
	m21 := mustRows(t, [][]float64{{1, 0, 0}}) // level 2 has 1 artifact, level 1 has 3
	require.NoError(t, mm.Set(dataset.TraceID{Source: 2, Target: 1}, m21))

	assert.Equal(t, []dataset.TraceID{{Source: 1, Target: 2}}, mm.IDs())
	assert.True(t, mm.Has(dataset.TraceID{Source: 2, Target: 1}))

	canon, ok := mm.Get(dataset.TraceID{Source: 1, Target: 2})
	require.True(t, ok)
	assert.Equal(t, 3, canon.Rows())
	back, ok := mm.Get(dataset.TraceID{Source: 2, Target: 1})
	require.True(t, ok)
	assert.True(t, back.Equal(m21))

	// Overwriting through the other orientation replaces, never duplicates.
	require.NoError(t, mm.Set(dataset.TraceID{Source: 1, Target: 2}, mustRows(t, [][]float64{{0}, {1}, {0}})))
	assert.Equal(t, 1, mm.Len())

	_, ok = mm.Get(dataset.TraceID{Source: 0, Target: 1})
	assert.False(t, ok)
	require.ErrorIs(t, mm.Set(dataset.TraceID{Source: 1, Target: 1}, m21), dataset.ErrInvalidTraceID)
}

// TestMatrixMapCloneIsIndependent checks snapshot semantics.
func TestMatrixMapCloneIsIndependent(t *testing.T) {
	mm := dataset.NewMatrixMap()
	require.NoError(t, mm.Set(dataset.TraceID{Source: 0, Target: 1}, mustRows(t, [][]float64{{1}})))
	snap := mm.Clone()
	require.NoError(t, mm.Set(dataset.TraceID{Source: 0, Target: 2}, mustRows(t, [][]float64{{1}})))
	assert.Equal(t, 1, snap.Len())
	assert.Equal(t, 2, mm.Len())
}
