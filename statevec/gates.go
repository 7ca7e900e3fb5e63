package statevec

import (
	"math"
	"math/cmplx"

	"qsimcirq/linalg"
)

var invSqrt2 = complex(1/math.Sqrt2, 0)

// single builds a named one-qubit gate from a 2×2 literal.
func single(name string, target int, rows [][]complex128, opts []Option) (*Gate, error) {
	m, err := linalg.FromRows(rows)
	if err != nil {
		return nil, err
	}
	return NewGate(m, []int{target}, append([]Option{WithName(name)}, opts...)...)
}

// Hadamard is 1/√2 [[1, 1], [1, -1]].
func Hadamard(target int, opts ...Option) (*Gate, error) {
	return single("H", target, [][]complex128{
		{invSqrt2, invSqrt2},
		{invSqrt2, -invSqrt2},
	}, opts)
}

// PauliX swaps |0⟩ and |1⟩.
func PauliX(target int, opts ...Option) (*Gate, error) {
	return single("X", target, [][]complex128{{0, 1}, {1, 0}}, opts)
}

func PauliY(target int, opts ...Option) (*Gate, error) {
	return single("Y", target, [][]complex128{{0, -1i}, {1i, 0}}, opts)
}

func PauliZ(target int, opts ...Option) (*Gate, error) {
	return single("Z", target, [][]complex128{{1, 0}, {0, -1}}, opts)
}

// Phase is the S gate, diag(1, i).
func Phase(target int, opts ...Option) (*Gate, error) {
	return single("S", target, [][]complex128{{1, 0}, {0, 1i}}, opts)
}

func PhaseDagger(target int, opts ...Option) (*Gate, error) {
	return single("S†", target, [][]complex128{{1, 0}, {0, -1i}}, opts)
}

// TGate is diag(1, e^{iπ/4}).
func TGate(target int, opts ...Option) (*Gate, error) {
	return single("T", target, [][]complex128{{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}}, opts)
}

func TDagger(target int, opts ...Option) (*Gate, error) {
	return single("T†", target, [][]complex128{{1, 0}, {0, cmplx.Exp(complex(0, -math.Pi/4))}}, opts)
}

// SqrtX squares to PauliX.
func SqrtX(target int, opts ...Option) (*Gate, error) {
	return single("SX", target, [][]complex128{
		{0.5 + 0.5i, 0.5 - 0.5i},
		{0.5 - 0.5i, 0.5 + 0.5i},
	}, opts)
}

func RX(theta float64, target int, opts ...Option) (*Gate, error) {
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	return single("RX", target, [][]complex128{{c, s}, {s, c}}, opts)
}

func RY(theta float64, target int, opts ...Option) (*Gate, error) {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return single("RY", target, [][]complex128{{c, -s}, {s, c}}, opts)
}

func RZ(theta float64, target int, opts ...Option) (*Gate, error) {
	return single("RZ", target, [][]complex128{
		{cmplx.Exp(complex(0, -theta/2)), 0},
		{0, cmplx.Exp(complex(0, theta/2))},
	}, opts)
}

// PhaseShift is diag(1, e^{iλ}), QASM's p and u1.
func PhaseShift(lambda float64, target int, opts ...Option) (*Gate, error) {
	return single("P", target, [][]complex128{{1, 0}, {0, cmplx.Exp(complex(0, lambda))}}, opts)
}

// U3 is the general single-qubit rotation of OpenQASM 2.0.
func U3(theta, phi, lambda float64, target int, opts ...Option) (*Gate, error) {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return single("U3", target, [][]complex128{
		{c, -cmplx.Exp(complex(0, lambda)) * s},
		{cmplx.Exp(complex(0, phi)) * s, cmplx.Exp(complex(0, phi+lambda)) * c},
	}, opts)
}

func U2(phi, lambda float64, target int, opts ...Option) (*Gate, error) {
	return U3(math.Pi/2, phi, lambda, target, append([]Option{WithName("U2")}, opts...)...)
}

// Swap exchanges two qubits.
func Swap(a, b int, opts ...Option) (*Gate, error) {
	m, err := linalg.FromRows([][]complex128{
		{1, 0, 0, 0},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
	})
	if err != nil {
		return nil, err
	}
	return NewGate(m, []int{a, b}, append([]Option{WithName("SWAP")}, opts...)...)
}

// ControlledX is the CNOT gate.
func ControlledX(control, target int, opts ...Option) (*Gate, error) {
	return MultiControlledX([]int{control}, target, opts...)
}

// MultiControlledX flips target when every control is |1⟩.
func MultiControlledX(controls []int, target int, opts ...Option) (*Gate, error) {
	x, err := PauliX(target, opts...)
	if err != nil {
		return nil, err
	}
	return Controlled(x, controls, opts...)
}

// Toffoli is MultiControlledX with two controls.
func Toffoli(c1, c2, target int, opts ...Option) (*Gate, error) {
	return MultiControlledX([]int{c1, c2}, target, opts...)
}

func ControlledZ(control, target int, opts ...Option) (*Gate, error) {
	z, err := PauliZ(target, opts...)
	if err != nil {
		return nil, err
	}
	return Controlled(z, []int{control}, opts...)
}

func ControlledH(control, target int, opts ...Option) (*Gate, error) {
	h, err := Hadamard(target, opts...)
	if err != nil {
		return nil, err
	}
	return Controlled(h, []int{control}, opts...)
}
