// SPDX-License-Identifier: MIT
// File: methods_clone.go
// Role: deep copies, so path enumeration can run against a frozen topology.

package core

// Clone returns a deep copy with identical vertices, edges, IDs and flags.
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	g.muVert.RLock()
	g.muEdgeAdj.RLock()
	defer g.muVert.RUnlock()
	defer g.muEdgeAdj.RUnlock()

	c := &Graph{
		directed:   g.directed,
		allowLoops: g.allowLoops,
		nextEdgeID: g.nextEdgeID,
		vertices:   make(map[string]struct{}, len(g.vertices)),
		edges:      make(map[string]*Edge, len(g.edges)),
		adjacency:  make(map[string]map[string]string, len(g.adjacency)),
	}
	for id := range g.vertices {
		c.vertices[id] = struct{}{}
	}
	for eid, e := range g.edges {
		cp := *e
		c.edges[eid] = &cp
	}
	for from, inner := range g.adjacency {
		m := make(map[string]string, len(inner))
		for to, eid := range inner {
			m[to] = eid
		}
		c.adjacency[from] = m
	}

	return c
}
