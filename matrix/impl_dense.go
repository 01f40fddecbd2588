// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Support copy-based projection onto index subsets (Induced), used by artifact sampling.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); Induced: O(r'*c').

package matrix

import (
	"fmt"
	"math"
	"strings"

	"github.com/cockroachdb/errors"
)

// ---------- error context tags ----------

const (
	ctxAt     = "At"
	ctxSet    = "Set"
	ctxInduce = "Induced"
)

// ---------- formatting literals ----------

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps a sentinel with the Dense method and coordinates.
// The sentinel survives for errors.Is.
func denseErrorf(method string, row, col int, err error) error {
	return errors.Wrapf(err, "Dense.%s(%d,%d)", method, row, col)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols); zero is legal only through Zeros.
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts
	data []float64 // contiguous row-major storage (len == r*c)
}

var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix using row-major storage.
// MAIN DESCRIPTION:
//   - Public constructor for Dense with strict shape validation.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
//
// Notes:
//   - Empty shapes (sampling down to zero artifacts) use Zeros.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// Zeros is the zero-size tolerant sibling of NewDense: 0×N and N×0 are legal,
// negatives are not.
func Zeros(rows, cols int) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewFromRows builds a matrix from a rectangular slice of rows.
// MAIN DESCRIPTION:
//   - Convenience constructor for literals, fixtures and decoded trace links.
//
// Implementation:
//   - Stage 1: reject empty input and ragged rows.
//   - Stage 2: reject NaN/±Inf.
//   - Stage 3: copy row by row into the flat buffer.
//
// Errors:
//   - ErrInvalidDimensions for an empty outer or inner slice.
//   - ErrDimensionMismatch for ragged rows.
//   - ErrNaNInf for non-finite values.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	r, c := len(rows), len(rows[0])
	data := make([]float64, 0, r*c)
	var i, j int
	for i = 0; i < r; i++ {
		if len(rows[i]) != c {
			return nil, errors.Wrapf(ErrDimensionMismatch, "row %d has %d cols, want %d", i, len(rows[i]), c)
		}
		for j = 0; j < c; j++ {
			if math.IsNaN(rows[i][j]) || math.IsInf(rows[i][j], 0) {
				return nil, denseErrorf(ctxSet, i, j, ErrNaNInf)
			}
		}
		data = append(data, rows[i]...)
	}

	return &Dense{r: r, c: c, data: data}, nil
}

// NewFromData wraps a row-major buffer of length rows*cols (copied).
func NewFromData(rows, cols int, data []float64) (*Dense, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}
	if len(data) != rows*cols {
		return nil, errors.Wrapf(ErrDimensionMismatch, "len(data)=%d, want %d", len(data), rows*cols)
	}
	cp := make([]float64, len(data))
	copy(cp, data)

	return &Dense{r: rows, c: cols, data: cp}, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// Len is the number of cells (r*c).
func (m *Dense) Len() int { return len(m.data) }

// indexOf computes the row-major offset or returns ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col).
// MAIN DESCRIPTION:
//   - Safe element write with finite-only policy.
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for invalid numbers.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// Flatten returns a row-major copy of the cells.
func (m *Dense) Flatten() []float64 {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return cp
}

// RawData exposes the backing row-major slice. Mutations are visible in m.
// Hot loops in sibling packages use it to skip per-cell bounds checks.
func (m *Dense) RawData() []float64 { return m.data }

// Row returns a copy of row i.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxAt, i, 0, ErrOutOfRange)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// Max returns the largest cell, or 0 for an empty matrix.
func (m *Dense) Max() float64 {
	if len(m.data) == 0 {
		return 0
	}
	best := m.data[0]
	for _, v := range m.data[1:] {
		if v > best {
			best = v
		}
	}

	return best
}

// Min returns the smallest cell, or 0 for an empty matrix.
func (m *Dense) Min() float64 {
	if len(m.data) == 0 {
		return 0
	}
	best := m.data[0]
	for _, v := range m.data[1:] {
		if v < best {
			best = v
		}
	}

	return best
}

// Apply replaces every cell with fn(i, j, v).
func (m *Dense) Apply(fn func(i, j int, v float64) float64) {
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			m.data[base+j] = fn(i, j, m.data[base+j])
		}
	}
}

// Equal reports exact shape and value equality.
func (m *Dense) Equal(o *Dense) bool {
	return m.EqualApprox(o, 0)
}

// EqualApprox reports equal shapes and |m[i,j]-o[i,j]| <= tol for every cell.
func (m *Dense) EqualApprox(o *Dense, tol float64) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.r != o.r || m.c != o.c {
		return false
	}
	for k := range m.data {
		if math.Abs(m.data[k]-o.data[k]) > tol {
			return false
		}
	}

	return true
}

// String renders rows as bracketed comma-separated lines for diagnostics.
func (m *Dense) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j = 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}

// Induced returns a new matrix with the selected rows and columns (copy).
// MAIN DESCRIPTION:
//   - Materialize the submatrix M[rows, cols] in the order given.
//
// Implementation:
//   - Stage 1: validate every index against the source shape.
//   - Stage 2: allocate len(rows)×len(cols) (zero-size legal).
//   - Stage 3: gather by direct offset arithmetic.
//
// Behavior highlights:
//   - nil rows (or cols) selects all rows (or columns) in natural order.
//   - Empty non-nil selections produce 0×c or r×0 matrices.
//
// Errors:
//   - ErrOutOfRange for any invalid index.
//
// Complexity:
//   - Time O(|rows|*|cols|), Space O(|rows|*|cols|).
func (m *Dense) Induced(rows, cols []int) (*Dense, error) {
	if rows == nil {
		rows = seq(m.r)
	}
	if cols == nil {
		cols = seq(m.c)
	}
	for _, i := range rows {
		if i < 0 || i >= m.r {
			return nil, denseErrorf(ctxInduce, i, 0, ErrOutOfRange)
		}
	}
	for _, j := range cols {
		if j < 0 || j >= m.c {
			return nil, denseErrorf(ctxInduce, 0, j, ErrOutOfRange)
		}
	}
	out := &Dense{r: len(rows), c: len(cols), data: make([]float64, len(rows)*len(cols))}
	for oi, i := range rows {
		base := i * m.c
		obase := oi * out.c
		for oj, j := range cols {
			out.data[obase+oj] = m.data[base+j]
		}
	}

	return out, nil
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}
