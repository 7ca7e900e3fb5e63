package statevec

import (
	"fmt"
	"maps"
	"math/cmplx"
	"slices"

	"qsimcirq/linalg"
)

// Result maps every basis label of an n-qubit register to its amplitude.
// Labels are n-character binary strings; qubit 0 is the rightmost character.
type Result map[string]complex128

// Label renders a basis index as a fixed-width binary label.
func Label(index, qubits int) string {
	return fmt.Sprintf("%0*b", qubits, index)
}

func newResult(state *linalg.Vector, qubits int) Result {
	res := make(Result, state.Len())
	for i := 0; i < state.Len(); i++ {
		res[Label(i, qubits)] = state.At(i)
	}
	return res
}

// Labels returns the labels in lexicographic order.
func (r Result) Labels() []string {
	return slices.Sorted(maps.Keys(r))
}

// Probability returns |amplitude|² for a label, zero if the label is unknown.
func (r Result) Probability(label string) float64 {
	a := r[label]
	return real(a)*real(a) + imag(a)*imag(a)
}

// TotalProbability sums |amplitude|² over every label; 1 for a valid state.
func (r Result) TotalProbability() float64 {
	var sum float64
	for label := range r {
		sum += r.Probability(label)
	}
	return sum
}

// Close reports whether two results share labels and agree within tol.
func (r Result) Close(other Result, tol float64) bool {
	if len(r) != len(other) {
		return false
	}
	for label, a := range r {
		b, ok := other[label]
		if !ok || cmplx.Abs(a-b) > tol {
			return false
		}
	}
	return true
}

// QubitProbability holds the marginal probabilities of one qubit.
type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// QubitProbabilities returns the marginal distribution of each qubit, index q
// for qubit q.
func (r Result) QubitProbabilities() []QubitProbability {
	var n int
	for label := range r {
		n = len(label)
		break
	}
	probs := make([]QubitProbability, n)
	for label := range r {
		p := r.Probability(label)
		for q := 0; q < n; q++ {
			if label[n-1-q] == '1' {
				probs[q].Prob1 += p
			} else {
				probs[q].Prob0 += p
			}
		}
	}
	return probs
}
