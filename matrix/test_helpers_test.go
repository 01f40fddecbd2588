package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvltrace/matrix"
	"github.com/stretchr/testify/require"
)

// mustRows builds a Dense from literal rows or fails the test.
func mustRows(tb testing.TB, rows [][]float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(tb, err)

	return m
}

// mustZeros builds a possibly empty zero matrix or fails the test.
func mustZeros(tb testing.TB, r, c int) *matrix.Dense {
	tb.Helper()
	m, err := matrix.Zeros(r, c)
	require.NoError(tb, err)

	return m
}

func nan() float64 { return math.NaN() }
