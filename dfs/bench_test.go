package dfs_test

import (
	"strconv"
	"testing"

	"github.com/katalvlaran/lvltrace/core"
	"github.com/katalvlaran/lvltrace/dfs"
)

var sinkPaths [][]string

// BenchmarkAllPaths_Complete enumerates all simple paths in a complete graph
// of six levels, the worst case for synthesis.
func BenchmarkAllPaths_Complete(b *testing.B) {
	g := core.NewGraph()
	const n = 6
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			_, _ = g.AddEdge(strconv.Itoa(i), strconv.Itoa(j))
		}
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, err := dfs.AllPaths(g, "0", strconv.Itoa(n-1))
		if err != nil {
			b.Fatal(err)
		}
		sinkPaths = p
	}
}
