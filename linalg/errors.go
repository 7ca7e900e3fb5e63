package linalg

import "errors"

// Sentinel errors. Callers match them with errors.Is; functions wrap them with
// fmt.Errorf when the shape involved is worth reporting.
var (
	ErrBadShape          = errors.New("linalg: invalid shape")
	ErrNonSquare         = errors.New("linalg: matrix is not square")
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")
	ErrOutOfRange        = errors.New("linalg: index out of range")
)
