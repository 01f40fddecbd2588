// SPDX-License-Identifier: MIT

// Package aggregate reduces several similarity matrices into one.
//
// Two reductions exist:
//
//   - Chain composes matrices along a path of levels (l0-l1, l1-l2, ...) with a
//     generalized matrix product whose inner reducer is the chosen Method.
//   - Combine reduces equally shaped matrices cell by cell, e.g. the candidates
//     produced by several paths, or the outputs of several techniques.
//
// Methods are MAX, SUM and PCA. SUM results exceeding 1 are min-max rescaled
// to [0,1]. PCA weights each input by the explained-variance ratio of the
// principal components of the standardized inputs.
package aggregate
