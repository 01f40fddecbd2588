// SPDX-License-Identifier: MIT
// File: methods_vertices.go
// Role: Vertex lifecycle & queries: AddVertex/HasVertex/Vertices/VertexCount/Degree.
// Determinism:
//   - Vertices() returns IDs sorted lexicographically.
// Concurrency:
//   - Guarded by muVert.

package core

import "sort"

// AddVertex inserts a vertex; adding an existing ID is a no-op.
// Complexity: O(1).
func (g *Graph) AddVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}
	g.muVert.Lock()
	defer g.muVert.Unlock()
	g.vertices[id] = struct{}{}

	return nil
}

// HasVertex reports whether id is present.
func (g *Graph) HasVertex(id string) bool {
	if id == "" {
		return false
	}
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	_, ok := g.vertices[id]

	return ok
}

// Vertices returns all vertex IDs in lexicographic order.
// Complexity: O(V log V).
func (g *Graph) Vertices() []string {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	ids := make([]string, 0, len(g.vertices))
	for id := range g.vertices {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// VertexCount returns the current number of vertices.
func (g *Graph) VertexCount() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return len(g.vertices)
}

// Degree returns the number of distinct neighbors of id.
func (g *Graph) Degree(id string) (int, error) {
	if !g.HasVertex(id) {
		return 0, ErrVertexNotFound
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.adjacency[id]), nil
}
