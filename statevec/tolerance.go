package statevec

import (
	"math/cmplx"

	"qsimcirq/linalg"
)

// Tolerances are the numeric bounds used to accept an operator as unitary.
type Tolerances struct {
	// Identity bounds |m_ii - 1| and |m_ij| when comparing against the identity.
	Identity float64
	// Determinant is the smallest |det| accepted before the product check runs.
	Determinant float64
}

// DefaultTolerances reproduce the reference behaviour.
var DefaultTolerances = Tolerances{
	Identity:    1e-5,
	Determinant: 1e-10,
}

// IsIdentity reports whether m is square and within t.Identity of the identity
// entry by entry.
func (t Tolerances) IsIdentity(m *linalg.Matrix) bool {
	if m == nil || !m.IsSquare() {
		return false
	}
	n := m.Rows()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := m.At(i, j)
			if i == j {
				v -= 1
			}
			if cmplx.Abs(v) > t.Identity {
				return false
			}
		}
	}
	return true
}

// IsUnitary rejects near-singular matrices by determinant first, then checks
// that m·m† is the identity.
func (t Tolerances) IsUnitary(m *linalg.Matrix) bool {
	if m == nil || !m.IsSquare() {
		return false
	}
	det, err := m.Determinant()
	if err != nil || cmplx.Abs(det) < t.Determinant {
		return false
	}
	p, err := linalg.Mul(m, m.Adjoint())
	if err != nil {
		return false
	}
	return t.IsIdentity(p)
}

// IsIdentity uses DefaultTolerances.
func IsIdentity(m *linalg.Matrix) bool { return DefaultTolerances.IsIdentity(m) }

// IsUnitary uses DefaultTolerances.
func IsUnitary(m *linalg.Matrix) bool { return DefaultTolerances.IsUnitary(m) }
