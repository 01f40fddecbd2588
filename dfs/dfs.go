// SPDX-License-Identifier: MIT

package dfs

import (
	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/lvltrace/core"
)

type walker struct {
	graph *core.Graph
	opts  DFSOptions
	res   *DFSResult
	tree  int
}

// DFS walks g depth-first from startID, or over every component in vertex
// order when WithFullTraversal is set (startID is then ignored).
// Order is post-order; Component numbers the trees in the order their roots
// were taken.
func DFS(g *core.Graph, startID string, opts ...Option) (*DFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	dopts := DefaultOptions()
	for _, fn := range opts {
		fn(&dopts)
	}
	if !dopts.FullTraversal && !g.HasVertex(startID) {
		return nil, ErrStartVertexNotFound
	}

	vertices := g.Vertices()
	res := &DFSResult{
		Order:     make([]string, 0, len(vertices)),
		Depth:     make(map[string]int, len(vertices)),
		Parent:    make(map[string]string, len(vertices)),
		Visited:   make(map[string]bool, len(vertices)),
		Component: make(map[string]int, len(vertices)),
	}
	w := &walker{graph: g, opts: dopts, res: res}

	roots := []string{startID}
	if dopts.FullTraversal {
		roots = vertices
	}
	for _, root := range roots {
		if res.Visited[root] {
			continue
		}
		if err := w.visit(root, 0); err != nil {
			return res, err
		}
		w.tree++
	}
	res.SkippedNeighbors = w.opts.SkippedNeighbors

	return res, nil
}

func (w *walker) visit(id string, depth int) error {
	if err := w.opts.Ctx.Err(); err != nil {
		return err
	}
	if w.opts.MaxDepth >= 0 && depth > w.opts.MaxDepth {
		return nil
	}

	w.res.Visited[id] = true
	w.res.Depth[id] = depth
	w.res.Component[id] = w.tree
	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(id); err != nil {
			w.res.Order = nil
			return errors.Wrapf(err, "dfs: OnVisit hook for %q", id)
		}
	}

	nbs, err := w.graph.NeighborIDs(id)
	if err != nil {
		w.res.Order = nil
		return errors.Wrapf(err, "dfs: NeighborIDs(%q)", id)
	}
	for _, nid := range nbs {
		if nid == id || w.res.Visited[nid] {
			continue
		}
		if w.opts.FilterNeighbor != nil && !w.opts.FilterNeighbor(nid) {
			w.opts.SkippedNeighbors++
			continue
		}
		w.res.Parent[nid] = id
		if err = w.visit(nid, depth+1); err != nil {
			return err
		}
	}
	w.res.Order = append(w.res.Order, id)

	return nil
}
