// SPDX-License-Identifier: MIT

package synth

import (
	"context"
	"sort"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/lvltrace/core"
	"github.com/katalvlaran/lvltrace/dataset"
	"github.com/katalvlaran/lvltrace/dfs"
)

// BuildGraph creates one vertex per level (0..n-1) and one undirected edge per id.
// Ids referencing levels outside [0,n) are rejected with dataset.ErrLevelOutOfRange.
func BuildGraph(n int, ids []dataset.TraceID) (*core.Graph, error) {
	g := core.NewGraph()
	for i := 0; i < n; i++ {
		if err := g.AddVertex(vertexID(i)); err != nil {
			return nil, err
		}
	}
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		if id.Source >= n || id.Target >= n {
			return nil, errors.Wrapf(dataset.ErrLevelOutOfRange, "trace %s with %d levels", id, n)
		}
		if g.HasEdge(vertexID(id.Source), vertexID(id.Target)) {
			continue
		}
		if _, err := g.AddEdge(vertexID(id.Source), vertexID(id.Target)); err != nil {
			return nil, errors.Wrapf(err, "edge %s", id)
		}
	}

	return g, nil
}

// Paths returns every simple path between two levels as level indices,
// ordered numerically (element by element, shorter first on a shared prefix).
func Paths(ctx context.Context, g *core.Graph, from, to int) ([][]int, error) {
	raw, err := dfs.AllPaths(g, vertexID(from), vertexID(to), dfs.WithContext(ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "paths %d-%d", from, to)
	}
	paths := make([][]int, len(raw))
	for i, p := range raw {
		levels := make([]int, len(p))
		for k, v := range p {
			if levels[k], err = strconv.Atoi(v); err != nil {
				return nil, errors.Wrapf(err, "vertex %q is not a level index", v)
			}
		}
		paths[i] = levels
	}
	sort.Slice(paths, func(i, j int) bool { return lessPath(paths[i], paths[j]) })

	return paths, nil
}

// Components labels every level of g with its connected component.
// Two levels share a label exactly when some path joins them.
func Components(ctx context.Context, g *core.Graph) (map[int]int, error) {
	res, err := dfs.DFS(g, "", dfs.WithFullTraversal(), dfs.WithContext(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "components")
	}
	labels := make(map[int]int, len(res.Component))
	for v, c := range res.Component {
		level, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrapf(err, "vertex %q is not a level index", v)
		}
		labels[level] = c
	}

	return labels, nil
}

func lessPath(a, b []int) bool {
	for k := 0; k < len(a) && k < len(b); k++ {
		if a[k] != b[k] {
			return a[k] < b[k]
		}
	}

	return len(a) < len(b)
}

func vertexID(level int) string { return strconv.Itoa(level) }
