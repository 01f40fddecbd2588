package pipeline_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvltrace/cache"
	"github.com/katalvlaran/lvltrace/dataset"
	"github.com/katalvlaran/lvltrace/matrix"
	"github.com/katalvlaran/lvltrace/pipeline"
	"github.com/katalvlaran/lvltrace/technique"
)

const eps = 1e-9

func mustRows(tb testing.TB, rows [][]float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(tb, err)

	return m
}

// fakeVectorizer serves fixed matrices keyed by the first artifact ID of each
// level and counts its calls.
type fakeVectorizer struct {
	byPair map[string]*matrix.Dense
	calls  int
}

func (f *fakeVectorizer) Similarity(_ technique.AlgebraicModel, source, target []dataset.Artifact) (*matrix.Dense, error) {
	f.calls++
	m, ok := f.byPair[source[0].ID+">"+target[0].ID]
	if !ok {
		t, ok := f.byPair[target[0].ID+">"+source[0].ID]
		if !ok {
			return nil, dataset.ErrMissingTrace
		}
		return matrix.Transpose(t)
	}

	return m.Clone(), nil
}

// fixture: requirements (2) → design (4) → code (2).
//
//	oracle 0-1: R1-D1, R2-D3
//	oracle 1-2: D1-C1, D4-C2
func fixture(t *testing.T) (*dataset.Dataset, *fakeVectorizer) {
	t.Helper()
	art := func(ids ...string) []dataset.Artifact {
		out := make([]dataset.Artifact, len(ids))
		for i, id := range ids {
			out[i] = dataset.Artifact{ID: id, Body: id}
		}
		return out
	}
	levels := []dataset.Level{
		{Name: "requirements", Artifacts: art("R1", "R2")},
		{Name: "design", Artifacts: art("D1", "D2", "D3", "D4")},
		{Name: "code", Artifacts: art("C1", "C2")},
	}
	traces := dataset.NewMatrixMap()
	require.NoError(t, traces.Set(dataset.TraceID{Source: 0, Target: 1}, mustRows(t, [][]float64{
		{1, 0, 0, 0},
		{0, 0, 1, 0},
	})))
	require.NoError(t, traces.Set(dataset.TraceID{Source: 1, Target: 2}, mustRows(t, [][]float64{
		{1, 0},
		{0, 0},
		{0, 0},
		{0, 1},
	})))
	d, err := dataset.New("Mock", levels, traces)
	require.NoError(t, err)

	vec := &fakeVectorizer{byPair: map[string]*matrix.Dense{
		"R1>D1": mustRows(t, [][]float64{
			{0.2, 0.4, 0, 0},
			{0, 0, 0.8, 0.6},
		}),
		"D1>C1": mustRows(t, [][]float64{
			{1, 0},
			{0, 0.5},
			{0.5, 0},
			{0, 1},
		}),
		"R1>C1": mustRows(t, [][]float64{
			{0.1, 0.9},
			{0.3, 0.2},
		}),
	}}

	return d, vec
}

func newEvaluator(t *testing.T, opts ...pipeline.Option) (*pipeline.Evaluator, *fakeVectorizer) {
	t.Helper()
	d, vec := fixture(t)
	opts = append([]pipeline.Option{pipeline.WithVectorizer(vec), pipeline.WithRand(rand.New(rand.NewSource(7)))}, opts...)

	return pipeline.New(d, opts...), vec
}

func eval(t *testing.T, e *pipeline.Evaluator, expr string) *matrix.Dense {
	t.Helper()
	m, err := e.EvaluateString(context.Background(), expr)
	require.NoError(t, err, expr)

	return m
}

func TestDirect(t *testing.T) {
	e, _ := newEvaluator(t)

	nt := eval(t, e, "(. (VSM NT) (0 2))")
	assert.True(t, nt.Equal(mustRows(t, [][]float64{{0.1, 0.9}, {0.3, 0.2}})))

	traced := eval(t, e, "(. (VSM T) (0 1))")
	assert.True(t, traced.Equal(mustRows(t, [][]float64{{1, 0, 0, 0}, {0, 0, 1, 0}})))

	reversed := eval(t, e, "(. (VSM T) (1 0))")
	assert.Equal(t, 4, reversed.Rows())
	assert.Equal(t, 2, reversed.Cols())

	_, err := e.EvaluateString(context.Background(), "(. (VSM T) (0 2))")
	require.ErrorIs(t, err, dataset.ErrMissingTrace)
}

func TestTransitiveScaling(t *testing.T) {
	e, _ := newEvaluator(t)

	independent := eval(t, e, "(x (MAX INDEPENDENT) ((. (VSM NT) (0 1)) (. (VSM NT) (1 2))))")
	assert.True(t, independent.EqualApprox(mustRows(t, [][]float64{{0.25, 0.25}, {0.5, 0.75}}), eps), independent.String())

	global := eval(t, e, "(x (MAX GLOBAL) ((. (VSM NT) (0 1)) (. (VSM NT) (1 2))))")
	assert.True(t, global.EqualApprox(mustRows(t, [][]float64{{0.2, 0.2}, {0.4, 0.6}}), eps), global.String())
}

func TestCombined(t *testing.T) {
	e, _ := newEvaluator(t)
	got := eval(t, e, "(o (MAX) ((. (VSM NT) (0 2)) (x (MAX GLOBAL) ((. (VSM NT) (0 1)) (. (VSM NT) (1 2))))))")
	assert.True(t, got.EqualApprox(mustRows(t, [][]float64{{0.2, 0.9}, {0.4, 0.6}}), eps), got.String())
}

// TestCacheComputesOnce evaluates the same deterministic tree twice and
// checks that links are served from the cache as well.
func TestCacheComputesOnce(t *testing.T) {
	store, err := cache.OpenFileStore(t.TempDir())
	require.NoError(t, err)
	e, vec := newEvaluator(t, pipeline.WithCache(cache.New(store)))
	expr := "(x (SUM INDEPENDENT) ((. (VSM NT) (0 1)) (. (VSM NT) (1 2))))"

	first := eval(t, e, expr)
	assert.Equal(t, 2, vec.calls)
	second := eval(t, e, expr)
	assert.Equal(t, 2, vec.calls)
	assert.True(t, first.Equal(second))

	eval(t, e, "(. (VSM NT) (0 1))")
	assert.Equal(t, 2, vec.calls, "link was cached by the transitive evaluation")

	names, err := store.List(context.Background(), "Mock")
	require.NoError(t, err)
	assert.Len(t, names, 3)
}

func TestSampledArtifacts(t *testing.T) {
	store, err := cache.OpenFileStore(t.TempDir())
	require.NoError(t, err)
	e, _ := newEvaluator(t, pipeline.WithCache(cache.New(store)))
	expr := "(~ (MAX GLOBAL 0.5) ((. (VSM NT) (0 1)) (. (VSM NT) (1 2))))"

	for i := 0; i < 3; i++ {
		got := eval(t, e, expr)
		assert.Equal(t, 2, got.Rows())
		assert.Equal(t, 2, got.Cols())
	}
	names, err := store.List(context.Background(), "Mock")
	require.NoError(t, err)
	assert.NotContains(t, names, technique.MustParse(expr).Name(), "stochastic results are never stored")
	assert.Len(t, names, 2, "deterministic links are still cached")

	full := eval(t, e, "(~ (MAX GLOBAL 1) ((. (VSM NT) (0 1)) (. (VSM NT) (1 2))))")
	transitive := eval(t, e, "(x (MAX GLOBAL) ((. (VSM NT) (0 1)) (. (VSM NT) (1 2))))")
	assert.True(t, full.EqualApprox(transitive, eps), "p=1 keeps every intermediate artifact")
}

func TestSampledTracesFullyObserved(t *testing.T) {
	e, _ := newEvaluator(t)
	got := eval(t, e, "($ (MAX INDEPENDENT 1) ((. (VSM NT) (0 1)) (. (VSM NT) (1 2))))")
	// Every link cell is replaced by the oracle: R1-D1-C1 is the only full path.
	assert.True(t, got.Equal(mustRows(t, [][]float64{{1, 0}, {0, 0}})), got.String())
}

func TestShapeMismatch(t *testing.T) {
	d, _ := fixture(t)
	bad := &fakeVectorizer{byPair: map[string]*matrix.Dense{"R1>C1": mustRows(t, [][]float64{{1}})}}
	e := pipeline.New(d, pipeline.WithVectorizer(bad))

	_, err := e.EvaluateString(context.Background(), "(. (VSM NT) (0 2))")
	require.ErrorIs(t, err, pipeline.ErrShapeMismatch)
}

func TestSyntaxErrorsSurface(t *testing.T) {
	e, _ := newEvaluator(t)
	_, err := e.EvaluateString(context.Background(), "(? (VSM NT) (0 2))")
	require.ErrorIs(t, err, technique.ErrSyntax)
}

func TestEvaluateHonorsCancellation(t *testing.T) {
	e, _ := newEvaluator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.EvaluateString(ctx, "(. (VSM NT) (0 2))")
	require.ErrorIs(t, err, context.Canceled)
}

func TestSampleIndices(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	got := pipeline.SampleIndices(rng, 4, 0.5)
	require.Len(t, got, 2)
	assert.Less(t, got[0], got[1])
	assert.GreaterOrEqual(t, got[0], 0)
	assert.Less(t, got[1], 4)

	assert.Empty(t, pipeline.SampleIndices(rng, 3, 0.2))
	assert.Equal(t, []int{0, 1, 2}, pipeline.SampleIndices(rng, 3, 1))
}

func TestStageNames(t *testing.T) {
	assert.Equal(t, []string{"links", "sample-artifacts", "scale", "chain"}, pipeline.StageNames(technique.KindSampledArtifacts))
	assert.Equal(t, []string{"direct"}, pipeline.StageNames(technique.KindDirect))
	assert.Equal(t, []string{"links", "scale", "chain"}, pipeline.StageNames(technique.KindTransitive))
	assert.Equal(t, []string{"links", "sample-traces", "scale", "chain"}, pipeline.StageNames(technique.KindSampledTraces))
	assert.Equal(t, []string{"combine"}, pipeline.StageNames(technique.KindCombined))
}

// TestSampledTracesPartial replaces half of the cells of a three-link chain.
// Links are filled with 0.5 so replaced cells are the ones that differ; the
// middle link has no oracle and must stay untouched.
func TestSampledTracesPartial(t *testing.T) {
	art := func(prefix string, n int) []dataset.Artifact {
		out := make([]dataset.Artifact, n)
		for i := range out {
			out[i] = dataset.Artifact{ID: prefix + string(rune('1'+i))}
		}
		return out
	}
	levels := []dataset.Level{
		{Name: "requirements", Artifacts: art("R", 2)},
		{Name: "design", Artifacts: art("D", 3)},
		{Name: "module", Artifacts: art("M", 2)},
		{Name: "code", Artifacts: art("C", 2)},
	}
	oracle01 := mustRows(t, [][]float64{{1, 0, 0}, {0, 1, 1}})
	oracle23 := mustRows(t, [][]float64{{0, 1}, {1, 0}})
	traces := dataset.NewMatrixMap()
	require.NoError(t, traces.Set(dataset.TraceID{Source: 0, Target: 1}, oracle01))
	require.NoError(t, traces.Set(dataset.TraceID{Source: 2, Target: 3}, oracle23))
	d, err := dataset.New("Chain", levels, traces)
	require.NoError(t, err)

	half := func(r, c int) *matrix.Dense {
		m, err := matrix.Zeros(r, c)
		require.NoError(t, err)
		m.Apply(func(_, _ int, _ float64) float64 { return 0.5 })
		return m
	}
	inputs := []*matrix.Dense{half(2, 3), half(3, 2), half(2, 2)}
	links := append([]*matrix.Dense(nil), inputs...)
	oracles := []*matrix.Dense{oracle01, nil, oracle23}

	const seed = 11
	total := 6 + 6 + 4
	picked := pipeline.SampleIndices(rand.New(rand.NewSource(seed)), total, 0.5)
	require.Len(t, picked, total/2)

	decl := technique.MustParse("($ (MAX INDEPENDENT 0.5) ((. (VSM NT) (0 1)) (. (VSM NT) (1 2)) (. (VSM NT) (2 3))))")
	st := &pipeline.State{Dataset: d, Declaration: decl, Intermediate: links}
	e := pipeline.New(d, pipeline.WithRand(rand.New(rand.NewSource(seed))))
	require.NoError(t, pipeline.RunStage(context.Background(), e, "sample-traces", st))

	want := map[int]bool{}
	for _, p := range picked {
		want[p] = true
	}
	offset, replaced := 0, 0
	for i, m := range st.Intermediate {
		raw := m.RawData()
		for c, v := range raw {
			pos := offset + c
			if oracles[i] == nil || !want[pos] {
				assert.Equal(t, 0.5, v, "link %d cell %d", i, c)
				continue
			}
			assert.Equal(t, oracles[i].RawData()[c], v, "link %d cell %d", i, c)
			replaced++
		}
		offset += len(raw)
	}

	inMiddle := 0
	for _, p := range picked {
		if p >= 6 && p < 12 {
			inMiddle++
		}
	}
	assert.Equal(t, len(picked)-inMiddle, replaced)
	for i, m := range inputs {
		assert.Equal(t, 0.5, m.Max(), "input %d is not modified in place", i)
		assert.Equal(t, 0.5, m.Min(), "input %d is not modified in place", i)
	}
}

// TestCacheNamespaceSeparatesStores evaluates the same traced link over two
// differently prepared stores that share a name and a cache.
func TestCacheNamespaceSeparatesStores(t *testing.T) {
	store, err := cache.OpenFileStore(t.TempDir())
	require.NoError(t, err)
	c := cache.New(store)
	expr := "(. (VSM T) (0 1))"

	first, _ := newEvaluator(t, pipeline.WithCache(c), pipeline.WithCacheNamespace("MAX5"))
	assert.Equal(t, "Mock-MAX5", first.CacheDataset())
	eval(t, first, expr)

	d, vec := fixture(t)
	other := mustRows(t, [][]float64{{0, 1, 0, 0}, {0, 0, 0, 1}})
	require.NoError(t, d.Traces().Set(dataset.TraceID{Source: 0, Target: 1}, other))
	second := pipeline.New(d, pipeline.WithVectorizer(vec), pipeline.WithCache(c), pipeline.WithCacheNamespace("SUM5"))
	got := eval(t, second, expr)
	assert.True(t, got.Equal(other), got.String())

	for _, ds := range []string{"Mock-MAX5", "Mock-SUM5"} {
		names, err := store.List(context.Background(), ds)
		require.NoError(t, err)
		assert.Equal(t, []string{expr}, names, ds)
	}
	assert.Equal(t, "Mock", pipeline.CacheDataset("Mock", ""))
}
