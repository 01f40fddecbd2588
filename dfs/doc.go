// SPDX-License-Identifier: MIT

// Package dfs implements depth-first search traversal and simple-path
// enumeration on a core.Graph.
//
// What:
//
//   - DFS: explores as far as possible along each branch before backtracking.
//     Supports a pre-order hook, cancellation, depth limiting and neighbor
//     filtering; a full traversal labels connected components.
//   - AllPaths: every simple path between two vertices, the raw material for
//     transitive trace synthesis between artifact levels.
//
// Why:
//
//   - A level graph is tiny (a handful of vertices) but synthesis must consider
//     every route between two levels, so exhaustive enumeration is affordable
//     and shortest-path shortcuts would lose evidence.
package dfs
