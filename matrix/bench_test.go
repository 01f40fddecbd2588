// Package matrix_test provides benchmarks for the matrix kernels,
// using deterministic random fill for Dense matrices.
package matrix_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvltrace/matrix"
)

var benchSizes = []int{32, 128, 256}

// sinks to defeat dead-code elimination
var (
	sinkM *matrix.Dense
	sinkV []float64
)

func randDense(b *testing.B, r, c int, seed int64) *matrix.Dense {
	b.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, r*c)
	for i := range data {
		data[i] = rng.Float64()
	}
	m, err := matrix.NewFromData(r, c, data)
	if err != nil {
		b.Fatal(err)
	}

	return m
}

func BenchmarkMul(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			x := randDense(b, n, n, 1337)
			y := randDense(b, n, n, 4242)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Mul(x, y)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkEigenCovariance(b *testing.B) {
	b.ReportAllocs()
	x := randDense(b, 200, 8, 7)
	cov, _, err := matrix.Covariance(x)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		eigs, _, err := matrix.Eigen(cov, matrix.DefaultEigenTol, matrix.DefaultEigenMaxIter)
		if err != nil {
			b.Fatal(err)
		}
		sinkV = eigs
	}
}
