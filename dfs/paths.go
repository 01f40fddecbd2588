// SPDX-License-Identifier: MIT

package dfs

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/lvltrace/core"
)

// AllPaths enumerates every simple path from -> to.
// MAIN DESCRIPTION:
//   - Backtracking DFS that keeps the current path on an explicit stack and an
//     on-path set, emitting a copy whenever the target is reached.
//
// Implementation:
//   - Stage 1: validate graph and endpoints; apply options.
//   - Stage 2: recurse over NeighborIDs (sorted), skipping on-path vertices
//     and filtered neighbors; stop extending at MaxDepth edges when set.
//   - Stage 3: collect paths in discovery order.
//
// Behavior highlights:
//   - from == to yields the trivial path [from].
//   - The target is never expanded further, so every path ends at its first hit.
//   - Paths are returned in lexicographic neighbor order (deterministic).
//
// Errors:
//   - ErrGraphNil, ErrStartVertexNotFound, ErrTargetVertexNotFound, ctx.Err().
//
// Complexity:
//   - Exponential in the worst case; tiny level graphs keep it cheap in practice.
func AllPaths(g *core.Graph, from, to string, opts ...Option) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.HasVertex(from) {
		return nil, ErrStartVertexNotFound
	}
	if !g.HasVertex(to) {
		return nil, ErrTargetVertexNotFound
	}
	dopts := DefaultOptions()
	for _, fn := range opts {
		fn(&dopts)
	}

	e := &pathEnumerator{
		graph:  g,
		opts:   dopts,
		target: to,
		onPath: map[string]bool{from: true},
		stack:  []string{from},
	}
	if from == to {
		return [][]string{{from}}, nil
	}
	if err := e.extend(from); err != nil {
		return nil, err
	}

	return e.paths, nil
}

type pathEnumerator struct {
	graph  *core.Graph
	opts   DFSOptions
	target string
	onPath map[string]bool
	stack  []string
	paths  [][]string
}

func (e *pathEnumerator) extend(id string) error {
	select {
	case <-e.opts.Ctx.Done():
		return e.opts.Ctx.Err()
	default:
	}
	if e.opts.MaxDepth >= 0 && len(e.stack)-1 >= e.opts.MaxDepth {
		return nil
	}

	nbs, err := e.graph.NeighborIDs(id)
	if err != nil {
		return errors.Wrapf(err, "dfs: NeighborIDs(%q)", id)
	}
	for _, nid := range nbs {
		if e.onPath[nid] {
			continue
		}
		if e.opts.FilterNeighbor != nil && !e.opts.FilterNeighbor(nid) {
			e.opts.SkippedNeighbors++
			continue
		}
		if nid == e.target {
			path := make([]string, len(e.stack)+1)
			copy(path, e.stack)
			path[len(e.stack)] = nid
			e.paths = append(e.paths, path)
			continue
		}
		e.onPath[nid] = true
		e.stack = append(e.stack, nid)
		err = e.extend(nid)
		e.stack = e.stack[:len(e.stack)-1]
		delete(e.onPath, nid)
		if err != nil {
			return err
		}
	}

	return nil
}
