// SPDX-License-Identifier: MIT

// Package synth completes a dataset's trace matrices so every pair of
// artifact levels has one.
//
// What:
//
//   - BuildGraph turns the known trace ids into an undirected level graph.
//   - Synthesizer.SynthesizeMissing fills every absent pair from all simple
//     paths between its levels, then runs a fixed number of refinement rounds
//     in which every pair is recomputed from every path of the now complete graph.
//
// How:
//
//   - Each path becomes one candidate matrix: the MAX chain of the matrices of
//     its consecutive edges. Candidates for a pair are merged with
//     aggregate.Combine using the configured method (MAX by default).
//   - Refinement reads from a snapshot of the map and writes all results at
//     once, so the order in which pairs are visited does not matter.
//
// The graph and the matrix map are mutated in place. Neither call is safe to
// run concurrently with readers of the same dataset.
package synth
