// SPDX-License-Identifier: MIT

// Package vsm computes direct textual similarity between two artifact levels.
//
// Two algebraic models are provided:
//
//   - VSM: TF-IDF vectors fitted on the union of both levels (smooth idf,
//     L2-normalized rows), compared by cosine similarity.
//   - LSI: the same TF-IDF rows projected onto the top k latent dimensions,
//     k = min(|source|, |target|, 100), then compared by cosine similarity.
//     The projection is obtained from the eigen decomposition of the document
//     Gram matrix, which yields the same coordinates as a truncated SVD.
//
// Tokens are runs of two or more word characters, case-folded.
package vsm
