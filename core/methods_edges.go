// SPDX-License-Identifier: MIT
// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/RemoveEdge/HasEdge/Edges/EdgeCount, plus nextEdgeID().
// Determinism:
//   - Edges() returns edges sorted by numeric edge sequence.
//   - nextEdgeID() is monotonic and stable ("e" + decimal).
// Concurrency:
//   - Mutations under muEdgeAdj write lock; queries under read lock.

package core

import (
	"sort"
	"strconv"
	"sync/atomic"
)

const edgeIDPrefix = 'e'

// AddEdge connects from and to, creating missing endpoints.
//
// Steps:
//  1. Validate IDs and loops.
//  2. Ensure endpoints via AddVertex.
//  3. Under muEdgeAdj, reject parallel edges, allocate an ID, store and mirror
//     adjacency when undirected.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to string) (string, error) {
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if from == to && !g.allowLoops {
		return "", ErrLoopNotAllowed
	}
	if err := g.AddVertex(from); err != nil {
		return "", err
	}
	if err := g.AddVertex(to); err != nil {
		return "", err
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if _, dup := g.adjacency[from][to]; dup {
		return "", ErrMultiEdgeNotAllowed
	}
	eid := nextEdgeID(g)
	g.edges[eid] = &Edge{ID: eid, From: from, To: to}
	g.link(from, to, eid)
	if !g.directed {
		g.link(to, from, eid)
	}

	return eid, nil
}

func (g *Graph) link(from, to, eid string) {
	inner, ok := g.adjacency[from]
	if !ok {
		inner = make(map[string]string)
		g.adjacency[from] = inner
	}
	inner[to] = eid
}

// RemoveEdge deletes the edge between from and to.
func (g *Graph) RemoveEdge(from, to string) error {
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	eid, ok := g.adjacency[from][to]
	if !ok {
		return ErrEdgeNotFound
	}
	e := g.edges[eid]
	delete(g.edges, eid)
	delete(g.adjacency[e.From], e.To)
	if !g.directed {
		delete(g.adjacency[e.To], e.From)
	}

	return nil
}

// HasEdge reports whether an edge from→to exists (either orientation when undirected).
func (g *Graph) HasEdge(from, to string) bool {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	_, ok := g.adjacency[from][to]

	return ok
}

// Edges returns a snapshot of all edges in insertion order.
func (g *Graph) Edges() []*Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return edgeSeq(out[i].ID) < edgeSeq(out[j].ID) })

	return out
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// nextEdgeID returns "e<n>" with n from an atomic counter.
func nextEdgeID(g *Graph) string {
	n := atomic.AddUint64(&g.nextEdgeID, 1)
	buf := make([]byte, 0, 21)
	buf = append(buf, edgeIDPrefix)

	return string(strconv.AppendUint(buf, n, 10))
}

func edgeSeq(id string) uint64 {
	n, _ := strconv.ParseUint(id[1:], 10, 64)

	return n
}
