package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvltrace/aggregate"
	"github.com/katalvlaran/lvltrace/matrix"
)

const eps = 1e-9

func mustRows(tb testing.TB, rows [][]float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(tb, err)

	return m
}

func TestParseMethod(t *testing.T) {
	for token, want := range map[string]aggregate.Method{
		"MAX": aggregate.MethodMax, "sum": aggregate.MethodSum, "Pca": aggregate.MethodPCA,
	} {
		got, err := aggregate.ParseMethod(token)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := aggregate.ParseMethod("AVG")
	require.ErrorIs(t, err, aggregate.ErrUnknownMethod)
	assert.Equal(t, "SUM", aggregate.MethodSum.String())
}

// TestChainThreeLevels is the requirements→design→code example.
func TestChainThreeLevels(t *testing.T) {
	got, err := aggregate.Chain(aggregate.MethodMax,
		mustRows(t, [][]float64{{1}}),
		mustRows(t, [][]float64{{0, 0, 1}}))
	require.NoError(t, err)
	assert.True(t, got.Equal(mustRows(t, [][]float64{{0, 0, 1}})))
}

func TestChainMaxProduct(t *testing.T) {
	got, err := aggregate.Chain(aggregate.MethodMax,
		mustRows(t, [][]float64{{0.5, 0.9}}),
		mustRows(t, [][]float64{{1, 0}, {0.5, 0.2}}))
	require.NoError(t, err)
	assert.True(t, got.EqualApprox(mustRows(t, [][]float64{{0.5, 0.18}}), eps))
}

func TestChainSumRescalesAboveOne(t *testing.T) {
	got, err := aggregate.Chain(aggregate.MethodSum,
		mustRows(t, [][]float64{{1, 1}, {0, 1}}),
		mustRows(t, [][]float64{{1}, {1}}))
	require.NoError(t, err)
	assert.True(t, got.EqualApprox(mustRows(t, [][]float64{{1}, {0}}), eps))

	small, err := aggregate.Chain(aggregate.MethodSum,
		mustRows(t, [][]float64{{0.5, 0.25}}),
		mustRows(t, [][]float64{{0.5}, {1}}))
	require.NoError(t, err)
	assert.True(t, small.EqualApprox(mustRows(t, [][]float64{{0.5}}), eps))
}

// TestChainSingleMatrixIdentity returns an independent copy for every method.
func TestChainSingleMatrixIdentity(t *testing.T) {
	m := mustRows(t, [][]float64{{0.1, 0.7}, {0.3, 0.2}})
	for _, method := range []aggregate.Method{aggregate.MethodMax, aggregate.MethodSum, aggregate.MethodPCA} {
		got, err := aggregate.Chain(method, m)
		require.NoError(t, err)
		assert.True(t, got.Equal(m))
		require.NoError(t, got.Set(0, 0, 0.9))
		v, _ := m.At(0, 0)
		assert.Equal(t, 0.1, v)
	}
}

// TestChainShapes checks the outer shape over a three-link path.
func TestChainShapes(t *testing.T) {
	a, _ := matrix.NewDense(2, 3)
	b, _ := matrix.NewDense(3, 4)
	c, _ := matrix.NewDense(4, 5)
	for _, method := range []aggregate.Method{aggregate.MethodMax, aggregate.MethodSum, aggregate.MethodPCA} {
		got, err := aggregate.Chain(method, a, b, c)
		require.NoError(t, err)
		assert.Equal(t, 2, got.Rows())
		assert.Equal(t, 5, got.Cols())
	}

	_, err := aggregate.Chain(aggregate.MethodMax, a, c)
	require.ErrorIs(t, err, aggregate.ErrShapeMismatch)
	_, err = aggregate.Chain(aggregate.MethodMax)
	require.ErrorIs(t, err, aggregate.ErrNoMatrices)
}

func TestChainEmptyInnerDimension(t *testing.T) {
	left, _ := matrix.Zeros(2, 0)
	right, _ := matrix.Zeros(0, 3)
	for _, method := range []aggregate.Method{aggregate.MethodMax, aggregate.MethodPCA} {
		got, err := aggregate.Chain(method, left, right)
		require.NoError(t, err)
		assert.Equal(t, 2, got.Rows())
		assert.Equal(t, 3, got.Cols())
		assert.Equal(t, 0.0, got.Max())
	}
}

func TestChainPCAIsScaled(t *testing.T) {
	got, err := aggregate.Chain(aggregate.MethodPCA,
		mustRows(t, [][]float64{{0.9, 0.1, 0.4}, {0.2, 0.8, 0.3}}),
		mustRows(t, [][]float64{{0.7, 0.1}, {0.2, 0.9}, {0.5, 0.5}}))
	require.NoError(t, err)
	assert.Equal(t, 2, got.Rows())
	assert.Equal(t, 2, got.Cols())
	assert.InDelta(t, 1.0, got.Max(), eps)
	assert.InDelta(t, 0.0, got.Min(), eps)
}

func TestCombineMaxSum(t *testing.T) {
	a := mustRows(t, [][]float64{{0.2, 0.8}})
	b := mustRows(t, [][]float64{{0.6, 0.4}})

	mx, err := aggregate.Combine(aggregate.MethodMax, a, b)
	require.NoError(t, err)
	assert.True(t, mx.Equal(mustRows(t, [][]float64{{0.6, 0.8}})))

	sum, err := aggregate.Combine(aggregate.MethodSum, a, b)
	require.NoError(t, err)
	assert.True(t, sum.EqualApprox(mustRows(t, [][]float64{{0, 1}}), eps))

	_, err = aggregate.Combine(aggregate.MethodMax, a, mustRows(t, [][]float64{{1}, {0}}))
	require.ErrorIs(t, err, aggregate.ErrShapeMismatch)
}

// TestCombineSumSingleCellCollapses rescales the whole result, so a lone cell
// above 1 has no spread and becomes 0; at or below 1 it is kept.
func TestCombineSumSingleCellCollapses(t *testing.T) {
	got, err := aggregate.Combine(aggregate.MethodSum, mustRows(t, [][]float64{{0.6}}), mustRows(t, [][]float64{{0.7}}))
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Max())

	got, err = aggregate.Combine(aggregate.MethodSum, mustRows(t, [][]float64{{0.3}}), mustRows(t, [][]float64{{0.4}}))
	require.NoError(t, err)
	assert.InDelta(t, 0.7, got.Max(), eps)
}

// TestCombinePCAIdenticalInputs puts all weight on the first component.
func TestCombinePCAIdenticalInputs(t *testing.T) {
	m := mustRows(t, [][]float64{{0.1, 0.4}, {0.7, 0.2}})
	got, err := aggregate.Combine(aggregate.MethodPCA, m, m.Clone())
	require.NoError(t, err)
	assert.True(t, got.EqualApprox(m, 1e-6))
}

// TestCombinePCADegenerateFallsBackToUniform averages constant inputs.
func TestCombinePCADegenerateFallsBackToUniform(t *testing.T) {
	got, err := aggregate.Combine(aggregate.MethodPCA,
		mustRows(t, [][]float64{{0.5, 0.5}}),
		mustRows(t, [][]float64{{0.3, 0.3}}))
	require.NoError(t, err)
	assert.True(t, got.EqualApprox(mustRows(t, [][]float64{{0.4, 0.4}}), eps))
}

func TestPCAWeights(t *testing.T) {
	obs := mustRows(t, [][]float64{
		{0.1, 0.9, 0.3},
		{0.4, 0.2, 0.8},
		{0.7, 0.5, 0.1},
		{0.2, 0.6, 0.6},
	})
	w := aggregate.PCAWeights(obs)
	require.Len(t, w, 3)
	var sum float64
	for k, v := range w {
		sum += v
		if k > 0 {
			assert.LessOrEqual(t, v, w[k-1])
		}
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	single := aggregate.PCAWeights(mustRows(t, [][]float64{{0.3, 0.6}}))
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, single, eps)
}
