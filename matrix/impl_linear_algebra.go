// SPDX-License-Identifier: MIT
// Package matrix provides the linear-algebra kernels the evaluator needs:
// matrix multiplication, transpose, scalar scaling and a Jacobi eigen solver
// for symmetric matrices. All functions perform strict fail-fast validation
// and return clear errors on dimension mismatches.
//
// Notes:
//   - Kernels operate on the flat row-major buffer directly.
//   - Errors are wrapped via matrixErrorf with an op* tag.

package matrix

import (
	"math"
	"sort"

	"github.com/cockroachdb/errors"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

// DefaultEigenTol and DefaultEigenMaxIter are the Jacobi settings used by PCA.
const (
	DefaultEigenTol     = 1e-10
	DefaultEigenMaxIter = 10000
)

// Operation name constants for unified error wrapping.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opEigen     = "Eigen"
)

// matrixErrorf wraps err with an operation tag, preserving the original sentinel.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return errors.Wrap(err, tag)
}

// Mul computes the ordinary product a×b.
// MAIN DESCRIPTION:
//   - C[i,j] = Σ_k A[i,k]·B[k,j].
//
// Implementation:
//   - Stage 1: validate a.Cols()==b.Rows().
//   - Stage 2: allocate a.Rows()×b.Cols() (zero-size legal).
//   - Stage 3: i-k-j loop order over the flat buffers for cache locality.
//
// Behavior highlights:
//   - An empty inner dimension yields a zero matrix of the outer shape.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r·k·c), Space O(r·c).
func Mul(a, b *Dense) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	out := &Dense{r: a.r, c: b.c, data: make([]float64, a.r*b.c)}
	var i, k, j int
	var aik float64
	for i = 0; i < a.r; i++ {
		for k = 0; k < a.c; k++ {
			aik = a.data[i*a.c+k]
			if aik == 0 {
				continue
			}
			for j = 0; j < b.c; j++ {
				out.data[i*b.c+j] += aik * b.data[k*b.c+j]
			}
		}
	}

	return out, nil
}

// Transpose returns mᵀ as a new matrix.
// Complexity: O(r·c).
func Transpose(m *Dense) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	out := &Dense{r: m.c, c: m.r, data: make([]float64, len(m.data))}
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			out.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return out, nil
}

// Scale returns alpha·m as a new matrix.
func Scale(m *Dense, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	out := m.Clone()
	for k := range out.data {
		out.data[k] *= alpha
	}

	return out, nil
}

// Eigen performs eigen-decomposition of a symmetric matrix via the Jacobi rotation method.
// MAIN DESCRIPTION:
//   - Returns eigenvalues (unsorted, diagonal order) and the orthogonal matrix Q whose
//     columns are the corresponding eigenvectors, so that m ≈ Q·diag(eigs)·Qᵀ.
//
// Implementation:
//   - Stage 1: validate square & symmetric within tol.
//   - Stage 2: A := clone(m), Q := I.
//   - Stage 3: repeat up to maxIter:
//     J.1 find pivot (p,q) maximizing |A[p,q]|;
//     J.2 stop when |A[p,q]| < tol;
//     J.3 rotation parameters θ=(aqq−app)/(2apq), t=sign(θ)/(|θ|+√(θ²+1)), c=1/√(1+t²), s=t·c;
//     J.4 rotate rows/cols p,q of A;
//     J.5 accumulate the rotation into Q.
//   - Stage 4: final convergence check; eigenvalues = diag(A).
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrAsymmetry, ErrMatrixEigenFailed.
//
// Complexity:
//   - Time O(maxIter·n) per sweep step, Space O(n²).
func Eigen(m *Dense, tol float64, maxIter int) ([]float64, *Dense, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	n := m.r
	a := m.Clone()
	q := &Dense{r: n, c: n, data: make([]float64, n*n)}
	var i, j int
	for i = 0; i < n; i++ {
		q.data[i*n+i] = 1.0
	}

	var (
		iter               int
		p, r               int     // current pivot indices
		maxOff, off        float64 // current max |A[p,r]|; temporary
		app, arr, apr      float64 // A[p,p], A[r,r], A[p,r]
		aip, air, qip, qir float64
		newIP, newIR       float64
		theta, t, c, s     float64
	)
	for iter = 0; iter < maxIter; iter++ {
		// J.1
		maxOff = NormZero
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				off = math.Abs(a.data[i*n+j])
				if off > maxOff {
					maxOff, p, r = off, i, j
				}
			}
		}
		// J.2
		if maxOff < tol {
			break
		}
		// J.3
		app = a.data[p*n+p]
		arr = a.data[r*n+r]
		apr = a.data[p*n+r]
		theta = (arr - app) / (2 * apr)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c
		// J.4
		for i = 0; i < n; i++ {
			if i == p || i == r {
				continue
			}
			aip = a.data[i*n+p]
			air = a.data[i*n+r]
			newIP = c*aip - s*air
			newIR = s*aip + c*air
			a.data[i*n+p], a.data[p*n+i] = newIP, newIP
			a.data[i*n+r], a.data[r*n+i] = newIR, newIR
		}
		a.data[p*n+p] = c*c*app - 2*c*s*apr + s*s*arr
		a.data[r*n+r] = s*s*app + 2*c*s*apr + c*c*arr
		a.data[p*n+r], a.data[r*n+p] = 0, 0
		// J.5
		for i = 0; i < n; i++ {
			qip = q.data[i*n+p]
			qir = q.data[i*n+r]
			q.data[i*n+p] = c*qip - s*qir
			q.data[i*n+r] = s*qip + c*qir
		}
	}

	maxOff = NormZero
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if off = math.Abs(a.data[i*n+j]); off > maxOff {
				maxOff = off
			}
		}
	}
	if maxOff >= tol {
		return nil, nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
	}

	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = a.data[i*n+i]
	}

	return eigs, q, nil
}

// EigenDescending runs Eigen and reorders the pairs by decreasing eigenvalue.
// Column k of the returned Q belongs to eigs[k].
func EigenDescending(m *Dense, tol float64, maxIter int) ([]float64, *Dense, error) {
	eigs, q, err := Eigen(m, tol, maxIter)
	if err != nil {
		return nil, nil, err
	}
	n := len(eigs)
	order := seq(n)
	sort.SliceStable(order, func(x, y int) bool { return eigs[order[x]] > eigs[order[y]] })

	sorted := make([]float64, n)
	for k, src := range order {
		sorted[k] = eigs[src]
	}
	vecs, err := q.Induced(nil, order)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	return sorted, vecs, nil
}
