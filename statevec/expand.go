package statevec

import (
	"fmt"

	"qsimcirq/linalg"
)

// Expand embeds the gate into an n-qubit register. The result has the gate's
// operator on the target qubits and the identity everywhere else: entry
// (row, col) is zero unless every non-target bit agrees, and otherwise equals
// the small operator at the indices gathered from the target bits.
//
// The output is dense, 2^n × 2^n.
func (g *Gate) Expand(n int) (*linalg.Matrix, error) {
	if n < 0 {
		return nil, fmt.Errorf("%d qubits: %w", n, ErrQubitIndexOutOfRange)
	}
	if n > MaxQubits {
		return nil, fmt.Errorf("%d qubits, limit %d: %w", n, MaxQubits, ErrTooManyQubits)
	}
	for _, q := range g.targets {
		if q >= n {
			return nil, fmt.Errorf("%s target %d in %d-qubit register: %w", g.name, q, n, ErrQubitIndexOutOfRange)
		}
	}

	dim := 1 << n
	var untouched int
	for bit := 0; bit < n; bit++ {
		if _, ok := g.Position(bit); !ok {
			untouched |= 1 << bit
		}
	}

	small := make([]int, dim)
	for i := range small {
		small[i] = g.gather(i)
	}

	full := linalg.Zeros(dim)
	for row := 0; row < dim; row++ {
		for col := 0; col < dim; col++ {
			if (row^col)&untouched != 0 {
				continue
			}
			full.Set(row, col, g.op.At(small[row], small[col]))
		}
	}
	return full, nil
}

// gather reads the target bits of a global basis index into the gate's own
// index space, target position i becoming bit i.
func (g *Gate) gather(index int) int {
	var out int
	for i, q := range g.targets {
		if (index>>q)&1 == 1 {
			out |= 1 << i
		}
	}
	return out
}
