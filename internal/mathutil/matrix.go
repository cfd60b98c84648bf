package mathutil

import (
	"fmt"
	"math"
	"strings"
)

// Matrix is a row-major rectangular grid of reals. Matrices are immutable:
// every operation returns a new Matrix.
//
// Element access uses (column, row) order: At(x, y) is the entry in
// column x of row y. Exclude and Cofactor follow the same convention.
type Matrix struct {
	rows [][]float64
}

// NewMatrix deep-copies rows into a new matrix.
// It returns ErrMalformedMatrix if the rows differ in length.
func NewMatrix(rows [][]float64) (Matrix, error) {
	m := Matrix{rows: make([][]float64, len(rows))}
	for i, r := range rows {
		if len(r) != len(rows[0]) {
			return Matrix{}, fmt.Errorf("%w: row %d has %d entries, want %d", ErrMalformedMatrix, i, len(r), len(rows[0]))
		}
		m.rows[i] = append([]float64(nil), r...)
	}
	return m, nil
}

// NewColumn returns the n×1 matrix whose single column is values.
func NewColumn(values ...float64) Matrix {
	m := Matrix{rows: make([][]float64, len(values))}
	for i, x := range values {
		m.rows[i] = []float64{x}
	}
	return m
}

// NewRow returns the 1×n matrix whose single row is values.
func NewRow(values ...float64) Matrix {
	return Matrix{rows: [][]float64{append([]float64(nil), values...)}}
}

// Identity returns the n×n identity matrix.
func Identity(n int) Matrix {
	m := zeros(n, n)
	for i := 0; i < n; i++ {
		m.rows[i][i] = 1
	}
	return m
}

func zeros(rows, cols int) Matrix {
	m := Matrix{rows: make([][]float64, rows)}
	for i := range m.rows {
		m.rows[i] = make([]float64, cols)
	}
	return m
}

// Rows returns the number of rows.
func (m Matrix) Rows() int { return len(m.rows) }

// Columns returns the number of columns.
func (m Matrix) Columns() int {
	if len(m.rows) == 0 {
		return 0
	}
	return len(m.rows[0])
}

// IsSquare reports whether m has as many rows as columns.
func (m Matrix) IsSquare() bool { return m.Rows() == m.Columns() }

// At returns the entry in column col of row row.
func (m Matrix) At(col, row int) float64 { return m.rows[row][col] }

// RowVector returns a copy of row i.
func (m Matrix) RowVector(i int) Vector { return NewVector(m.rows[i]...) }

// ColumnVector returns a copy of column j.
func (m Matrix) ColumnVector(j int) Vector {
	v := make(Vector, len(m.rows))
	for i, r := range m.rows {
		v[i] = r[j]
	}
	return v
}

// Transpose returns mᵀ.
func (m Matrix) Transpose() Matrix {
	t := zeros(m.Columns(), m.Rows())
	for r, row := range m.rows {
		for c, x := range row {
			t.rows[c][r] = x
		}
	}
	return t
}

// Scale returns s ⋅ m.
func (m Matrix) Scale(s float64) Matrix {
	out := zeros(m.Rows(), m.Columns())
	for r, row := range m.rows {
		for c, x := range row {
			out.rows[r][c] = x * s
		}
	}
	return out
}

// MulElem returns the elementwise product of m and n, which must share a shape.
func (m Matrix) MulElem(n Matrix) (Matrix, error) {
	if m.Rows() != n.Rows() || m.Columns() != n.Columns() {
		return Matrix{}, fmt.Errorf("%w: %dx%d and %dx%d", ErrDimensionMismatch, m.Rows(), m.Columns(), n.Rows(), n.Columns())
	}
	out := zeros(m.Rows(), m.Columns())
	for r, row := range m.rows {
		for c, x := range row {
			out.rows[r][c] = x * n.rows[r][c]
		}
	}
	return out, nil
}

// Mul returns the matrix product m × n.
func (m Matrix) Mul(n Matrix) (Matrix, error) {
	if m.Columns() != n.Rows() {
		return Matrix{}, fmt.Errorf("%w: %dx%d times %dx%d", ErrDimensionMismatch, m.Rows(), m.Columns(), n.Rows(), n.Columns())
	}
	out := zeros(m.Rows(), n.Columns())
	for r := range out.rows {
		for c := range out.rows[r] {
			var s float64
			for k, x := range m.rows[r] {
				s += x * n.rows[k][c]
			}
			out.rows[r][c] = s
		}
	}
	return out, nil
}

// MulRow treats v as a row vector and returns v × m.
func (m Matrix) MulRow(v Vector) (Vector, error) {
	p, err := NewRow(v...).Mul(m)
	if err != nil {
		return nil, err
	}
	return p.RowVector(0), nil
}

// Exclude returns m without column col and row row.
func (m Matrix) Exclude(col, row int) Matrix {
	out := Matrix{rows: make([][]float64, 0, len(m.rows))}
	for r, src := range m.rows {
		if r == row {
			continue
		}
		dst := make([]float64, 0, len(src))
		dst = append(dst, src[:col]...)
		dst = append(dst, src[col+1:]...)
		out.rows = append(out.rows, dst)
	}
	return out
}

func (m Matrix) dropColumn(col int) Matrix {
	return m.Exclude(col, -1)
}

// Determinant computes det(m) by Laplace expansion: the entries of row 0 are
// each multiplied by the determinant of the matrix excluding their column and
// that row, with alternating sign. The empty matrix has determinant 1.
func (m Matrix) Determinant() (float64, error) {
	if !m.IsSquare() {
		return 0, fmt.Errorf("determinant of %dx%d: %w", m.Rows(), m.Columns(), ErrNotSquare)
	}
	switch m.Rows() {
	case 0:
		return 1, nil
	case 1:
		return m.rows[0][0], nil
	}
	var det float64
	for x := 0; x < m.Columns(); x++ {
		if m.At(x, 0) == 0 {
			continue
		}
		sub, err := m.Exclude(x, 0).Determinant()
		if err != nil {
			return 0, err
		}
		det += m.At(x, 0) * sub * sign(x)
	}
	return det, nil
}

// Cofactor returns the signed minor of the entry in column x, row y.
func (m Matrix) Cofactor(x, y int) (float64, error) {
	if !m.IsSquare() {
		return 0, fmt.Errorf("cofactor of %dx%d: %w", m.Rows(), m.Columns(), ErrNotSquare)
	}
	d, err := m.Exclude(x, y).Determinant()
	if err != nil {
		return 0, err
	}
	return d * sign(x+y), nil
}

// CofactorMatrix returns the matrix of all cofactors of m.
func (m Matrix) CofactorMatrix() (Matrix, error) {
	if !m.IsSquare() {
		return Matrix{}, fmt.Errorf("cofactor matrix of %dx%d: %w", m.Rows(), m.Columns(), ErrNotSquare)
	}
	out := zeros(m.Rows(), m.Columns())
	for y := range out.rows {
		for x := range out.rows[y] {
			c, err := m.Cofactor(x, y)
			if err != nil {
				return Matrix{}, err
			}
			out.rows[y][x] = c
		}
	}
	return out, nil
}

// Inverse returns m⁻¹ as the transposed cofactor matrix over the determinant.
func (m Matrix) Inverse() (Matrix, error) {
	det, err := m.Determinant()
	if err != nil {
		return Matrix{}, err
	}
	if math.Abs(det) < SingularLimit {
		return Matrix{}, ErrSingularMatrix
	}
	cof, err := m.CofactorMatrix()
	if err != nil {
		return Matrix{}, err
	}
	return cof.Transpose().Scale(1 / det), nil
}

// Augment returns m with the columns of n appended on the right.
func (m Matrix) Augment(n Matrix) (Matrix, error) {
	if m.Rows() != n.Rows() {
		return Matrix{}, fmt.Errorf("%w: augment %d rows with %d rows", ErrDimensionMismatch, m.Rows(), n.Rows())
	}
	out := Matrix{rows: make([][]float64, m.Rows())}
	for r := range out.rows {
		row := make([]float64, 0, m.Columns()+n.Columns())
		row = append(row, m.rows[r]...)
		out.rows[r] = append(row, n.rows[r]...)
	}
	return out, nil
}

// Sanitize returns m with near-zero entries replaced by zero.
func (m Matrix) Sanitize() Matrix {
	out := Matrix{rows: make([][]float64, m.Rows())}
	for r, row := range m.rows {
		out.rows[r] = Vector(row).Sanitize()
	}
	return out
}

// ApproxEqual reports whether m and n share a shape and all entries differ
// by at most eps.
func (m Matrix) ApproxEqual(n Matrix, eps float64) bool {
	if m.Rows() != n.Rows() || m.Columns() != n.Columns() {
		return false
	}
	for r := range m.rows {
		if !Vector(m.rows[r]).ApproxEqual(n.rows[r], eps) {
			return false
		}
	}
	return true
}

func (m Matrix) String() string {
	parts := make([]string, len(m.rows))
	for i, r := range m.rows {
		parts[i] = Vector(r).String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
