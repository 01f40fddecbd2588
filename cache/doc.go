// SPDX-License-Identifier: MIT

// Package cache memoizes deterministic similarity matrices per
// (dataset name, canonical technique name).
//
// A Cache is an explicit value handed to the evaluator; there is no global
// switch. GetOrCompute bypasses storage entirely when the cache is disabled or
// the key is stochastic, so random results are never reused.
//
// Backends:
//
//   - FileStore: one "<dataset>_<name>.mat" blob per entry in a directory, with
//     an in-memory index rebuilt from the directory listing on open.
//   - BadgerStore: BadgerDB keys "sim/<dataset>/<name>"; cleanup drops the prefix.
//
// Cleanup while another computation of the same dataset is in flight may leave
// a freshly written entry behind. Callers serialize cleanup with evaluation.
package cache
