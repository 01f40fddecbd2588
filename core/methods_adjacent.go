// SPDX-License-Identifier: MIT
// File: methods_adjacent.go
// Role: neighborhood queries used by traversals.

package core

import "sort"

// NeighborIDs returns the IDs adjacent to id, sorted lexicographically.
// For directed graphs only outgoing neighbors are listed.
//
// Errors:
//   - ErrVertexNotFound when id is unknown.
//
// Complexity:
//   - Time O(k log k), Space O(k) for k neighbors.
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	if !g.HasVertex(id) {
		return nil, ErrVertexNotFound
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	ids := make([]string, 0, len(g.adjacency[id]))
	for nb := range g.adjacency[id] {
		ids = append(ids, nb)
	}
	sort.Strings(ids)

	return ids, nil
}
