package cache_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/lvltrace/cache"
	"github.com/katalvlaran/lvltrace/matrix"
)

type key struct {
	name       string
	stochastic bool
}

func (k key) Name() string     { return k.name }
func (k key) Stochastic() bool { return k.stochastic }

const techniqueName = "(. (VSM NT) (0 2))"

func mustRows(tb testing.TB, rows [][]float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(tb, err)

	return m
}

// counter returns a compute func that counts its calls.
func counter(m *matrix.Dense, calls *int) cache.ComputeFunc {
	return func(context.Context) (*matrix.Dense, error) {
		*calls++
		return m.Clone(), nil
	}
}

// backends opens every Store implementation against a fresh location.
func backends(t *testing.T) map[string]cache.Store {
	t.Helper()
	fs, err := cache.OpenFileStore(t.TempDir())
	require.NoError(t, err)
	bs, err := cache.OpenBadgerStore(cache.BadgerConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = bs.Close() })

	return map[string]cache.Store{"file": fs, "badger": bs}
}

func TestGetOrComputeIsIdempotent(t *testing.T) {
	want := mustRows(t, [][]float64{{0.25, 1}, {0, 0.5}})
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			c := cache.New(store)
			calls := 0
			first, err := c.GetOrCompute(context.Background(), "Mock", key{name: techniqueName}, counter(want, &calls))
			require.NoError(t, err)
			second, err := c.GetOrCompute(context.Background(), "Mock", key{name: techniqueName}, counter(want, &calls))
			require.NoError(t, err)

			assert.Equal(t, 1, calls)
			assert.True(t, first.Equal(want))
			assert.True(t, second.Equal(want))

			names, err := store.List(context.Background(), "Mock")
			require.NoError(t, err)
			assert.Equal(t, []string{techniqueName}, names)
		})
	}
}

func TestStochasticKeysAreNeverStored(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			c := cache.New(store)
			calls := 0
			k := key{name: "(~ (SUM GLOBAL 0.500000) ((. (VSM NT) (0 1)) (. (VSM NT) (1 2))))", stochastic: true}
			for i := 0; i < 3; i++ {
				_, err := c.GetOrCompute(context.Background(), "Mock", k, counter(mustRows(t, [][]float64{{1}}), &calls))
				require.NoError(t, err)
			}
			assert.Equal(t, 3, calls)

			names, err := store.List(context.Background(), "Mock")
			require.NoError(t, err)
			assert.Empty(t, names)
		})
	}
}

func TestDisabledCacheAlwaysComputes(t *testing.T) {
	store, err := cache.OpenFileStore(t.TempDir())
	require.NoError(t, err)
	for _, c := range []*cache.Cache{cache.New(store, cache.WithEnabled(false)), cache.Disabled(), nil} {
		calls := 0
		for i := 0; i < 2; i++ {
			_, err := c.GetOrCompute(context.Background(), "Mock", key{name: techniqueName}, counter(mustRows(t, [][]float64{{1}}), &calls))
			require.NoError(t, err)
		}
		assert.Equal(t, 2, calls)
		assert.False(t, c.Enabled())
	}
}

func TestCleanupRemovesOnlyOneDataset(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			m := mustRows(t, [][]float64{{1}})
			require.NoError(t, store.Save(ctx, "Mock", "a", m))
			require.NoError(t, store.Save(ctx, "Mock", "b", m))
			require.NoError(t, store.Save(ctx, "Mock2", "a", m))

			c := cache.New(store)
			removed, err := c.Cleanup(ctx, "Mock")
			require.NoError(t, err)
			assert.Equal(t, 2, removed)

			_, err = store.Load(ctx, "Mock", "a")
			require.ErrorIs(t, err, cache.ErrNotFound)
			kept, err := store.Load(ctx, "Mock2", "a")
			require.NoError(t, err)
			assert.True(t, kept.Equal(m))

			n, err := store.Cleanup(ctx, "Mock")
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestInvalidKeys(t *testing.T) {
	store, err := cache.OpenFileStore(t.TempDir())
	require.NoError(t, err)
	c := cache.New(store)
	compute := counter(mustRows(t, [][]float64{{1}}), new(int))

	for _, dataset := range []string{"", "my_data", "a/b"} {
		_, err = c.GetOrCompute(context.Background(), dataset, key{name: techniqueName}, compute)
		require.ErrorIs(t, err, cache.ErrInvalidKey, dataset)
	}
	_, err = c.GetOrCompute(context.Background(), "Mock", key{name: ""}, compute)
	require.ErrorIs(t, err, cache.ErrInvalidKey)
	_, err = c.Cleanup(context.Background(), "bad_name")
	require.ErrorIs(t, err, cache.ErrInvalidKey)
}

func TestFileStoreReloadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	store, err := cache.OpenFileStore(dir)
	require.NoError(t, err)
	want := mustRows(t, [][]float64{{0.5, 0.75}})
	require.NoError(t, store.Save(ctx, "Mock", techniqueName, want))
	require.FileExists(t, filepath.Join(dir, "Mock_"+techniqueName+".mat"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".DS_Store"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	reopened, err := cache.OpenFileStore(dir)
	require.NoError(t, err)
	got, err := reopened.Load(ctx, "Mock", techniqueName)
	require.NoError(t, err)
	assert.True(t, got.Equal(want))

	calls := 0
	_, err = cache.New(reopened).GetOrCompute(ctx, "Mock", key{name: techniqueName}, counter(want, &calls))
	require.NoError(t, err)
	assert.Zero(t, calls, "entries written by an earlier process are reused")
}

func TestBadgerStorePersists(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	store, err := cache.OpenStore(cache.BackendBadger, dir, nil)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "Mock", techniqueName, mustRows(t, [][]float64{{1, 0}})))
	require.NoError(t, store.Close())

	reopened, err := cache.OpenStore(cache.BackendBadger, dir, nil)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Load(ctx, "Mock", techniqueName)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Cols())

	_, err = cache.OpenStore("redis", dir, nil)
	require.ErrorIs(t, err, cache.ErrUnknownBackend)
}

func TestGetOrComputeLogsHitsAndMisses(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	store, err := cache.OpenFileStore(t.TempDir())
	require.NoError(t, err)
	c := cache.New(store, cache.WithLogger(zap.New(core)))

	compute := counter(mustRows(t, [][]float64{{1}}), new(int))
	for i := 0; i < 2; i++ {
		_, err = c.GetOrCompute(context.Background(), "Mock", key{name: techniqueName}, compute)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, logs.FilterMessage("cache miss").Len())
	assert.Equal(t, 1, logs.FilterMessage("cache hit").Len())
}

// longName nests combinations until the name passes the file name limit.
func longName() string {
	name := techniqueName
	for len(name) < 300 {
		name = "(o (MAX) (" + name + " " + name + "))"
	}

	return name
}

func TestFileStoreRejectsLongNames(t *testing.T) {
	store, err := cache.OpenFileStore(t.TempDir())
	require.NoError(t, err)
	err = store.Save(context.Background(), "Mock", longName(), mustRows(t, [][]float64{{1}}))
	require.ErrorIs(t, err, cache.ErrKeyTooLong)
}

func TestGetOrComputeSkipsUncacheableKeys(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			c := cache.New(store, cache.WithLogger(zap.New(core)))
			calls := 0
			compute := counter(mustRows(t, [][]float64{{0.5}}), &calls)
			for i := 0; i < 2; i++ {
				m, err := c.GetOrCompute(context.Background(), "Mock", key{name: longName()}, compute)
				require.NoError(t, err)
				assert.Equal(t, 0.5, m.Max())
			}
			if name == "file" {
				assert.Equal(t, 2, calls, "file store cannot hold the entry")
			} else {
				assert.Equal(t, 1, calls)
			}
		})
	}
	assert.Equal(t, 2, logs.FilterMessage("cache skipped").Len())
}
