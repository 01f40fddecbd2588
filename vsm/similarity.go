// SPDX-License-Identifier: MIT

package vsm

import (
	"math"

	"github.com/cockroachdb/errors"

	"github.com/katalvlaran/lvltrace/matrix"
)

// MaxLSIComponents caps the latent dimensions used by LSI.
const MaxLSIComponents = 100

// Cosine returns the pairwise cosine similarity of the rows of a and b.
// Pairs involving a zero row score 0.
func Cosine(a, b *matrix.Dense) (*matrix.Dense, error) {
	if a == nil || b == nil {
		return nil, matrix.ErrNilMatrix
	}
	if a.Cols() != b.Cols() {
		return nil, errors.Wrapf(matrix.ErrDimensionMismatch, "cosine: %d vs %d features", a.Cols(), b.Cols())
	}
	an, bn := rowNorms(a), rowNorms(b)
	ad, bd, k := a.RawData(), b.RawData(), a.Cols()
	out := make([]float64, a.Rows()*b.Rows())
	for i := 0; i < a.Rows(); i++ {
		if an[i] == 0 {
			continue
		}
		for j := 0; j < b.Rows(); j++ {
			if bn[j] == 0 {
				continue
			}
			var dot float64
			for x := 0; x < k; x++ {
				dot += ad[i*k+x] * bd[j*k+x]
			}
			out[i*b.Rows()+j] = dot / (an[i] * bn[j])
		}
	}

	return matrix.NewFromData(a.Rows(), b.Rows(), out)
}

func rowNorms(m *matrix.Dense) []float64 {
	norms := make([]float64, m.Rows())
	d, k := m.RawData(), m.Cols()
	for i := range norms {
		var s float64
		for _, v := range d[i*k : (i+1)*k] {
			s += v * v
		}
		norms[i] = math.Sqrt(s)
	}

	return norms
}

// LatentCoordinates projects the rows of x onto their top k latent dimensions.
// MAIN DESCRIPTION:
//   - With x = U·Σ·Vᵀ, the coordinates are U_k·Σ_k (a truncated SVD transform).
//
// Implementation:
//   - Stage 1: Gram matrix G = x·xᵀ (documents × documents).
//   - Stage 2: eigen decomposition of G, eigenvalues descending; λ = σ².
//   - Stage 3: coordinate (i, c) = U[i,c]·sqrt(max(λ_c, 0)) for c < k.
//
// Complexity:
//   - O(n²·f) for the Gram matrix plus the Jacobi sweeps on n×n, n = rows.
func LatentCoordinates(x *matrix.Dense, k int) (*matrix.Dense, error) {
	xt, err := matrix.Transpose(x)
	if err != nil {
		return nil, err
	}
	gram, err := matrix.Mul(x, xt)
	if err != nil {
		return nil, err
	}
	n := x.Rows()
	if k > n {
		k = n
	}
	if k <= 0 || n == 0 {
		return matrix.Zeros(n, 0)
	}
	eigs, vecs, err := matrix.EigenDescending(gram, matrix.DefaultEigenTol, matrix.DefaultEigenMaxIter)
	if err != nil {
		return nil, errors.Wrap(err, "lsi: eigen decomposition")
	}
	out, err := matrix.Zeros(n, k)
	if err != nil {
		return nil, err
	}
	for c := 0; c < k; c++ {
		sigma := math.Sqrt(math.Max(eigs[c], 0))
		for i := 0; i < n; i++ {
			u, _ := vecs.At(i, c)
			if err = out.Set(i, c, u*sigma); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
