// SPDX-License-Identifier: MIT

// Package core defines the central Graph and Edge types used to model which
// artifact levels are directly related, and provides thread-safe primitives
// for building and querying that graph.
//
// All core APIs use separate sync.RWMutex locks internally (muVert for vertices,
// muEdgeAdj for edges and adjacency), so concurrent readers never block each other.
//
// Errors:
//
//	ErrEmptyVertexID       - vertex ID is the empty string.
//	ErrVertexNotFound      - requested vertex does not exist.
//	ErrEdgeNotFound        - requested edge does not exist.
//	ErrLoopNotAllowed      - self-loop when loops are disabled.
//	ErrMultiEdgeNotAllowed - attempt to add a parallel edge.
package core

import (
	"sync"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that the provided vertex ID is empty.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrLoopNotAllowed indicates a self-loop was attempted when loops are disabled.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a parallel edge was attempted.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")
)

// Edge represents a connection between two vertices.
// For undirected graphs From/To keep the orientation of the first insertion.
type Edge struct {
	// ID uniquely identifies this edge in the Graph ("e1", "e2", ...).
	ID string

	// From is the source vertex ID.
	From string

	// To is the destination vertex ID.
	To string
}

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithDirected sets directedness for all edges (true = directed).
func WithDirected(directed bool) GraphOption {
	return func(g *Graph) { g.directed = directed }
}

// WithLoops permits self-loops (edges from a vertex to itself).
func WithLoops() GraphOption {
	return func(g *Graph) { g.allowLoops = true }
}

// Graph is a simple in-memory graph over string vertex IDs.
//
// It never holds parallel edges. muVert protects the vertex set; muEdgeAdj
// protects edges and adjacency. nextEdgeID is an atomic counter for Edge.ID.
type Graph struct {
	muVert    sync.RWMutex // guards vertices
	muEdgeAdj sync.RWMutex // guards edges and adjacency

	directed   bool
	allowLoops bool

	nextEdgeID uint64
	vertices   map[string]struct{}
	edges      map[string]*Edge

	// adjacency[from][to] = edge ID; undirected edges are mirrored.
	adjacency map[string]map[string]string
}

// NewGraph creates an empty Graph. By default it is undirected without loops.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices:  make(map[string]struct{}),
		edges:     make(map[string]*Edge),
		adjacency: make(map[string]map[string]string),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Directed reports whether edges are one-way.
func (g *Graph) Directed() bool { return g.directed }
