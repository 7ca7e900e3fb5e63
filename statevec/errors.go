package statevec

import "errors"

// Every construction, append and evolution failure wraps one of these.
var (
	// ErrMalformedOperator: the matrix is missing, not square, or its
	// dimension is not 2^(number of targets).
	ErrMalformedOperator = errors.New("statevec: malformed operator")

	// ErrDuplicateTarget: a qubit index appears twice in one gate.
	ErrDuplicateTarget = errors.New("statevec: duplicate target qubit")

	// ErrNotUnitary: the determinant is too small or U·U† is not the identity.
	ErrNotUnitary = errors.New("statevec: operator is not unitary")

	// ErrQubitIndexOutOfRange: a qubit index is negative or not below the
	// register size.
	ErrQubitIndexOutOfRange = errors.New("statevec: qubit index out of range")

	// ErrInvalidInitialIndex: the requested initial basis index is outside [0, 2^n).
	ErrInvalidInitialIndex = errors.New("statevec: invalid initial basis index")

	// ErrNoQubits: evolution was requested on an empty register.
	ErrNoQubits = errors.New("statevec: circuit has no qubits")

	// ErrTooManyQubits: the register exceeds MaxQubits.
	ErrTooManyQubits = errors.New("statevec: too many qubits")

	ErrStepOutOfRange = errors.New("statevec: step out of range")
)
