// SPDX-License-Identifier: MIT

package dfs

import (
	"context"

	"github.com/cockroachdb/errors"
)

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed to DFS or AllPaths.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrStartVertexNotFound indicates that the specified start vertex ID
	// does not exist in the graph.
	ErrStartVertexNotFound = errors.New("dfs: start vertex not found")

	// ErrTargetVertexNotFound indicates that the AllPaths target is not in the graph.
	ErrTargetVertexNotFound = errors.New("dfs: target vertex not found")
)

// Option configures optional behavior of DFS traversal and path enumeration.
type Option func(*DFSOptions)

// DFSOptions holds configurable parameters for DFS traversal.
// Complexity remains O(V+E) for DFS when filters and hooks are O(1).
type DFSOptions struct {
	// Ctx allows cancellation or timeouts; defaults to context.Background().
	Ctx context.Context

	// OnVisit, if non-nil, is invoked immediately upon discovering a vertex (pre-order).
	// Returning an error aborts traversal with that error.
	OnVisit func(id string) error

	// MaxDepth, if non-negative, limits recursion depth (DFS) or path length
	// in edges (AllPaths). Default is -1 (no limit).
	MaxDepth int

	// FilterNeighbor, if non-nil, is called for each neighbor ID before recursing.
	// Return true to traverse into that neighbor, false to skip it.
	FilterNeighbor func(id string) bool

	// FullTraversal, if true, runs DFS from every unvisited vertex in the graph.
	FullTraversal bool

	// SkippedNeighbors tracks how many neighbors were skipped by FilterNeighbor.
	SkippedNeighbors int
}

// DefaultOptions returns background context, no hooks, no depth limit,
// no filtering and single-source traversal.
func DefaultOptions() DFSOptions {
	return DFSOptions{
		Ctx:      context.Background(),
		MaxDepth: -1,
	}
}

// WithContext sets the Context for cancellation. A nil context is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *DFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs fn as a pre-order hook.
func WithOnVisit(fn func(id string) error) Option {
	return func(o *DFSOptions) { o.OnVisit = fn }
}

// WithMaxDepth limits traversal depth to limit.
func WithMaxDepth(limit int) Option {
	return func(o *DFSOptions) { o.MaxDepth = limit }
}

// WithFilterNeighbor skips neighbors for which fn returns false.
func WithFilterNeighbor(fn func(id string) bool) Option {
	return func(o *DFSOptions) { o.FilterNeighbor = fn }
}

// WithFullTraversal restarts DFS from each unvisited vertex.
func WithFullTraversal() Option {
	return func(o *DFSOptions) { o.FullTraversal = true }
}

// DFSResult captures the outcome of a depth-first traversal.
type DFSResult struct {
	// Order records vertices in the sequence they finished (post-order).
	Order []string

	// Depth maps each vertex ID to its distance (#edges) from its tree root.
	Depth map[string]int

	// Parent maps each vertex ID to the vertex from which it was first discovered.
	Parent map[string]string

	// Visited flags which vertices were reached during the traversal.
	Visited map[string]bool

	// Component numbers the DFS tree each visited vertex belongs to.
	Component map[string]int

	// SkippedNeighbors reports how many neighbors were filtered out.
	SkippedNeighbors int
}
