package dfs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvltrace/core"
	"github.com/katalvlaran/lvltrace/dfs"
)

// fourLevels mirrors a requirements/design/code graph with an extra side level:
// 0-1, 1-2, 0-2, 0-3, 3-2.
func fourLevels(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, e := range [][2]string{{"0", "1"}, {"1", "2"}, {"0", "2"}, {"0", "3"}, {"3", "2"}} {
		_, err := g.AddEdge(e[0], e[1])
		require.NoError(t, err)
	}

	return g
}

func TestAllPaths_FourLevels(t *testing.T) {
	paths, err := dfs.AllPaths(fourLevels(t), "0", "2")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"0", "1", "2"},
		{"0", "2"},
		{"0", "3", "2"},
	}, paths)
}

func TestAllPaths_StarThroughHub(t *testing.T) {
	g := core.NewGraph()
	_, _ = g.AddEdge("0", "1")
	_, _ = g.AddEdge("0", "2")
	paths, err := dfs.AllPaths(g, "1", "2")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "0", "2"}}, paths)
}

func TestAllPaths_Disconnected(t *testing.T) {
	g := core.NewGraph()
	_, _ = g.AddEdge("0", "1")
	require.NoError(t, g.AddVertex("2"))
	paths, err := dfs.AllPaths(g, "0", "2")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestAllPaths_MaxDepth(t *testing.T) {
	paths, err := dfs.AllPaths(fourLevels(t), "0", "2", dfs.WithMaxDepth(1))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"0", "2"}}, paths)
}

func TestAllPaths_Errors(t *testing.T) {
	_, err := dfs.AllPaths(nil, "0", "1")
	assert.ErrorIs(t, err, dfs.ErrGraphNil)

	g := fourLevels(t)
	_, err = dfs.AllPaths(g, "9", "1")
	assert.ErrorIs(t, err, dfs.ErrStartVertexNotFound)
	_, err = dfs.AllPaths(g, "0", "9")
	assert.ErrorIs(t, err, dfs.ErrTargetVertexNotFound)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = dfs.AllPaths(g, "0", "2", dfs.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAllPaths_SameVertex(t *testing.T) {
	paths, err := dfs.AllPaths(fourLevels(t), "1", "1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1"}}, paths)
}
