package linalg

import (
	"fmt"
	"math"
)

// Vector is a dense complex column vector.
type Vector struct {
	data []complex128
}

// NewVector returns a zero vector of length n.
func NewVector(n int) (*Vector, error) {
	if n <= 0 {
		return nil, fmt.Errorf("length %d: %w", n, ErrBadShape)
	}
	return &Vector{data: make([]complex128, n)}, nil
}

// VectorFrom copies values into a new vector.
func VectorFrom(values []complex128) *Vector {
	data := make([]complex128, len(values))
	copy(data, values)
	return &Vector{data: data}
}

func (v *Vector) Len() int { return len(v.data) }

func (v *Vector) At(i int) complex128 {
	if i < 0 || i >= len(v.data) {
		panic(fmt.Errorf("%d in length %d: %w", i, len(v.data), ErrOutOfRange))
	}
	return v.data[i]
}

func (v *Vector) Set(i int, x complex128) {
	if i < 0 || i >= len(v.data) {
		panic(fmt.Errorf("%d in length %d: %w", i, len(v.data), ErrOutOfRange))
	}
	v.data[i] = x
}

// Slice returns a copy of the entries.
func (v *Vector) Slice() []complex128 {
	out := make([]complex128, len(v.data))
	copy(out, v.data)
	return out
}

// Norm returns the Euclidean norm, sqrt(Σ|x_i|²).
func (v *Vector) Norm() float64 {
	var sum float64
	for _, x := range v.data {
		sum += real(x)*real(x) + imag(x)*imag(x)
	}
	return math.Sqrt(sum)
}
