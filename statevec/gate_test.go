package statevec

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qsimcirq/linalg"
)

func mustMatrix(t *testing.T, rows [][]complex128) *linalg.Matrix {
	t.Helper()
	m, err := linalg.FromRows(rows)
	require.NoError(t, err)
	return m
}

func TestIsIdentity(t *testing.T) {
	assert.True(t, IsIdentity(mustMatrix(t, [][]complex128{{1, 0}, {0, 1}})))
	assert.False(t, IsIdentity(mustMatrix(t, [][]complex128{{1, 1}, {0, 1}})))
	assert.False(t, IsIdentity(mustMatrix(t, [][]complex128{{1, 0, 0}, {0, 1, 0}})))
	assert.True(t, IsIdentity(mustMatrix(t, [][]complex128{{1 + 1e-6, 0}, {1e-6i, 1}})))
	assert.False(t, IsIdentity(mustMatrix(t, [][]complex128{{1 + 1e-4, 0}, {0, 1}})))
}

func TestIsUnitary(t *testing.T) {
	h, err := Hadamard(0)
	require.NoError(t, err)
	assert.True(t, IsUnitary(h.Operator()))

	// Non-unitary and singular.
	assert.False(t, IsUnitary(mustMatrix(t, [][]complex128{{1, 1}, {1, 1}})))
	// Invertible but not unitary.
	assert.False(t, IsUnitary(mustMatrix(t, [][]complex128{{2, 0}, {0, 0.5}})))
	// Phases are fine.
	assert.True(t, IsUnitary(mustMatrix(t, [][]complex128{{1i, 0}, {0, -1}})))
}

func TestDeterminantPrefilter(t *testing.T) {
	tiny := mustMatrix(t, [][]complex128{{1e-6, 0}, {0, 1e-6}})
	assert.False(t, IsUnitary(tiny))

	// The determinant bound alone can be loosened; the identity check still rejects.
	loose := Tolerances{Identity: 1e-5, Determinant: 1e-20}
	assert.False(t, loose.IsUnitary(tiny))

	// A generous identity tolerance accepts a slightly scaled matrix that the
	// default rejects.
	scaled := mustMatrix(t, [][]complex128{{1.001, 0}, {0, 1}})
	assert.False(t, IsUnitary(scaled))
	assert.True(t, Tolerances{Identity: 1e-2, Determinant: 1e-10}.IsUnitary(scaled))
}

func TestNewGateValidation(t *testing.T) {
	id2 := mustMatrix(t, [][]complex128{{1, 0}, {0, 1}})
	id4 := linalg.Identity(4)

	tests := []struct {
		name    string
		op      *linalg.Matrix
		targets []int
		want    error
	}{
		{"3x3 on one target", linalg.Identity(3), []int{0}, ErrMalformedOperator},
		{"non-square", mustMatrix(t, [][]complex128{{1, 0}}), []int{0}, ErrMalformedOperator},
		{"dimension mismatch", id2, []int{0, 1}, ErrMalformedOperator},
		{"nil", nil, []int{0}, ErrMalformedOperator},
		{"duplicate target", id4, []int{0, 0}, ErrDuplicateTarget},
		{"negative target", id2, []int{-1}, ErrQubitIndexOutOfRange},
		{"not unitary", mustMatrix(t, [][]complex128{{1, 1}, {0, 1}}), []int{0}, ErrNotUnitary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGate(tt.op, tt.targets)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	g, err := NewGate(id4, []int{3, 1})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, g.Targets())
	assert.Equal(t, 2, g.Arity())
}

func TestGateIsImmutable(t *testing.T) {
	op := mustMatrix(t, [][]complex128{{0, 1}, {1, 0}})
	targets := []int{2}
	g, err := NewGate(op, targets, WithName("X"))
	require.NoError(t, err)

	op.Set(0, 0, 5)
	targets[0] = 7
	g.Targets()[0] = 9
	g.Operator().Set(1, 1, 3)

	assert.Equal(t, []int{2}, g.Targets())
	assert.Equal(t, complex128(0), g.Operator().At(0, 0))
	assert.Equal(t, complex128(0), g.Operator().At(1, 1))
	assert.Equal(t, "X", g.Name())
}

func TestStandardGatesAreUnitary(t *testing.T) {
	builders := map[string]func() (*Gate, error){
		"H":    func() (*Gate, error) { return Hadamard(0) },
		"X":    func() (*Gate, error) { return PauliX(0) },
		"Y":    func() (*Gate, error) { return PauliY(0) },
		"Z":    func() (*Gate, error) { return PauliZ(0) },
		"S":    func() (*Gate, error) { return Phase(0) },
		"Sdg":  func() (*Gate, error) { return PhaseDagger(0) },
		"T":    func() (*Gate, error) { return TGate(0) },
		"Tdg":  func() (*Gate, error) { return TDagger(0) },
		"SX":   func() (*Gate, error) { return SqrtX(0) },
		"RX":   func() (*Gate, error) { return RX(0.3, 0) },
		"RY":   func() (*Gate, error) { return RY(1.1, 0) },
		"RZ":   func() (*Gate, error) { return RZ(-2.4, 0) },
		"P":    func() (*Gate, error) { return PhaseShift(math.Pi/3, 0) },
		"U2":   func() (*Gate, error) { return U2(0.2, 0.9, 0) },
		"U3":   func() (*Gate, error) { return U3(0.4, 1.2, -0.7, 0) },
		"SWAP": func() (*Gate, error) { return Swap(0, 1) },
		"CX":   func() (*Gate, error) { return ControlledX(0, 1) },
		"CZ":   func() (*Gate, error) { return ControlledZ(0, 1) },
		"CH":   func() (*Gate, error) { return ControlledH(0, 1) },
		"CCX":  func() (*Gate, error) { return Toffoli(0, 1, 2) },
	}
	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			g, err := build()
			require.NoError(t, err)
			op := g.Operator()
			det, err := op.Determinant()
			require.NoError(t, err)
			assert.GreaterOrEqual(t, cmplx.Abs(det), 1e-10)
			p, err := linalg.Mul(op, op.Adjoint())
			require.NoError(t, err)
			assert.True(t, IsIdentity(p))
		})
	}
}

func TestSqrtXSquaresToX(t *testing.T) {
	sx, err := SqrtX(0)
	require.NoError(t, err)
	p, err := linalg.Mul(sx.Operator(), sx.Operator())
	require.NoError(t, err)
	x, _ := PauliX(0)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, 0, cmplx.Abs(p.At(i, j)-x.Operator().At(i, j)), 1e-12)
		}
	}
}

func TestControlledLayout(t *testing.T) {
	cx, err := ControlledX(0, 1)
	require.NoError(t, err)

	// Original target first, control after it.
	assert.Equal(t, []int{1, 0}, cx.Targets())
	assert.Equal(t, "CX", cx.Name())
	pos, ok := cx.Position(0)
	assert.True(t, ok)
	assert.Equal(t, 1, pos)

	want := [][]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	}
	op := cx.Operator()
	for i := range want {
		for j := range want[i] {
			assert.Equal(t, want[i][j], op.At(i, j), "entry (%d,%d)", i, j)
		}
	}

	ccx, err := MultiControlledX([]int{0, 1}, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1}, ccx.Targets())
	assert.Equal(t, "CCX", ccx.Name())
	assert.Equal(t, complex128(1), ccx.Operator().At(6, 7))
	assert.Equal(t, complex128(0), ccx.Operator().At(6, 6))
}

func TestControlledRejectsOverlap(t *testing.T) {
	x, err := PauliX(1)
	require.NoError(t, err)
	_, err = Controlled(x, []int{1})
	assert.ErrorIs(t, err, ErrDuplicateTarget)

	_, err = Controlled(nil, []int{0})
	assert.ErrorIs(t, err, ErrMalformedOperator)
}

func TestAdjointInverts(t *testing.T) {
	tg, err := TGate(0)
	require.NoError(t, err)
	inv := tg.Adjoint()
	assert.Equal(t, "T†", inv.Name())
	assert.Equal(t, "T", inv.Adjoint().Name())

	p, err := linalg.Mul(tg.Operator(), inv.Operator())
	require.NoError(t, err)
	assert.True(t, IsIdentity(p))
}
