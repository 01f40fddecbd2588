// SPDX-License-Identifier: MIT

// Package matrix provides the dense numeric substrate of lvltrace.
//
// Every similarity matrix in the evaluator is a *Dense: a row-major float64
// buffer with (rows, cols) = (|source level|, |target level|). The package
// offers:
//
//   - Safe accessors (At/Set return sentinel errors instead of panicking).
//   - Projection onto index subsets (Induced), used by artifact sampling.
//   - Linear-algebra kernels: Mul, Transpose, Scale and a Jacobi Eigen solver
//     (the basis of PCA weighting and LSI).
//   - Statistics: MinMaxScale, Standardize, CenterColumns, Covariance.
//   - A compact binary codec (MarshalBinary/UnmarshalBinary) for cache blobs.
//
// Zero-size matrices (0×N, N×0) are legal through Zeros and Induced; NewDense
// keeps the strict positive-shape contract.
package matrix
