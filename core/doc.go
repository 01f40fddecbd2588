// SPDX-License-Identifier: MIT

// Package core provides a thread-safe in-memory Graph with a minimal,
// composable API surface.
//
// In lvltrace each vertex is an artifact level (its decimal index as ID) and
// each edge states that a similarity matrix exists between two levels, either
// loaded as ground truth or synthesized from paths.
//
// Behaviors:
//
//   - Directed vs. undirected edges (WithDirected); undirected by default.
//   - Optional self-loops (WithLoops).
//   - Simple graphs only: a second edge between the same endpoints is rejected.
//   - Collision-free atomic Edge.ID generation ("e1", "e2", ...).
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency (muEdgeAdj).
//   - Deterministic iteration: Vertices() and NeighborIDs() are sorted,
//     Edges() follows insertion order.
//
// Example:
//
//	g := core.NewGraph()
//	_, _ = g.AddEdge("0", "1")
//	nbs, _ := g.NeighborIDs("1") // ["0"]
package core
