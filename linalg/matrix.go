// Package linalg provides the dense complex matrices and column vectors the
// simulator is built on: construction, products, adjoint and determinant.
package linalg

import (
	"fmt"
	"math/cmplx"
	"strings"
)

// Matrix is a dense complex matrix stored row-major.
type Matrix struct {
	rows, cols int
	data       []complex128
}

// NewMatrix returns a zero-filled rows×cols matrix.
func NewMatrix(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", rows, cols, ErrBadShape)
	}
	return &Matrix{rows: rows, cols: cols, data: make([]complex128, rows*cols)}, nil
}

// Zeros is NewMatrix for a square shape known to be valid.
func Zeros(n int) *Matrix {
	return &Matrix{rows: n, cols: n, data: make([]complex128, n*n)}
}

// Identity returns the n×n identity matrix.
func Identity(n int) *Matrix {
	m := Zeros(n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// FromRows builds a matrix from row slices. Every row must have the same length.
func FromRows(rows [][]complex128) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrBadShape
	}
	cols := len(rows[0])
	m := &Matrix{rows: len(rows), cols: cols, data: make([]complex128, 0, len(rows)*cols)}
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d entries, want %d: %w", i, len(row), cols, ErrBadShape)
		}
		m.data = append(m.data, row...)
	}
	return m, nil
}

func (m *Matrix) Rows() int { return m.rows }

func (m *Matrix) Cols() int { return m.cols }

// IsSquare reports whether the matrix has as many rows as columns.
func (m *Matrix) IsSquare() bool { return m.rows == m.cols }

// At returns the entry at (i, j). It panics on an out-of-range index like a slice would.
func (m *Matrix) At(i, j int) complex128 {
	m.check(i, j)
	return m.data[i*m.cols+j]
}

// Set writes v at (i, j).
func (m *Matrix) Set(i, j int, v complex128) {
	m.check(i, j)
	m.data[i*m.cols+j] = v
}

func (m *Matrix) check(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Errorf("(%d,%d) in %dx%d: %w", i, j, m.rows, m.cols, ErrOutOfRange))
	}
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	data := make([]complex128, len(m.data))
	copy(data, m.data)
	return &Matrix{rows: m.rows, cols: m.cols, data: data}
}

// Adjoint returns the conjugate transpose.
func (m *Matrix) Adjoint() *Matrix {
	out := &Matrix{rows: m.cols, cols: m.rows, data: make([]complex128, len(m.data))}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[j*out.cols+i] = cmplx.Conj(m.data[i*m.cols+j])
		}
	}
	return out
}

// Mul returns the product a·b.
func Mul(a, b *Matrix) (*Matrix, error) {
	if a.cols != b.rows {
		return nil, fmt.Errorf("%dx%d · %dx%d: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
	}
	out := &Matrix{rows: a.rows, cols: b.cols, data: make([]complex128, a.rows*b.cols)}
	for i := 0; i < a.rows; i++ {
		for k := 0; k < a.cols; k++ {
			aik := a.data[i*a.cols+k]
			if aik == 0 {
				continue
			}
			for j := 0; j < b.cols; j++ {
				out.data[i*out.cols+j] += aik * b.data[k*b.cols+j]
			}
		}
	}
	return out, nil
}

// MulVec returns the matrix-vector product m·v.
func (m *Matrix) MulVec(v *Vector) (*Vector, error) {
	if m.cols != len(v.data) {
		return nil, fmt.Errorf("%dx%d · %d: %w", m.rows, m.cols, len(v.data), ErrDimensionMismatch)
	}
	out := make([]complex128, m.rows)
	for i := 0; i < m.rows; i++ {
		var sum complex128
		row := m.data[i*m.cols : (i+1)*m.cols]
		for j, x := range row {
			if x != 0 {
				sum += x * v.data[j]
			}
		}
		out[i] = sum
	}
	return &Vector{data: out}, nil
}

// Determinant computes det(m) by LU decomposition with partial pivoting.
func (m *Matrix) Determinant() (complex128, error) {
	if !m.IsSquare() {
		return 0, fmt.Errorf("%dx%d: %w", m.rows, m.cols, ErrNonSquare)
	}
	n := m.rows
	a := m.Clone().data
	det := complex(1, 0)
	for col := 0; col < n; col++ {
		pivot := col
		best := cmplx.Abs(a[col*n+col])
		for r := col + 1; r < n; r++ {
			if v := cmplx.Abs(a[r*n+col]); v > best {
				pivot, best = r, v
			}
		}
		if best == 0 {
			return 0, nil
		}
		if pivot != col {
			for j := 0; j < n; j++ {
				a[col*n+j], a[pivot*n+j] = a[pivot*n+j], a[col*n+j]
			}
			det = -det
		}
		p := a[col*n+col]
		det *= p
		for r := col + 1; r < n; r++ {
			f := a[r*n+col] / p
			if f == 0 {
				continue
			}
			for j := col; j < n; j++ {
				a[r*n+j] -= f * a[col*n+j]
			}
		}
	}
	return det, nil
}

// String renders the matrix one row per line, mostly for test failures.
func (m *Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		sb.WriteString("[")
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "%.4f", m.data[i*m.cols+j])
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
