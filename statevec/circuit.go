// Package statevec simulates quantum circuits by dense state-vector
// evolution. Gates are validated as unitary once, at construction; each gate
// is embedded into the full 2^n operator space and applied in append order.
package statevec

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"qsimcirq/linalg"
)

// MaxQubits bounds the register. Every step materialises a 2^n × 2^n operator.
const MaxQubits = 12

// Circuit is an append-only sequence of gates over a fixed number of qubits.
// It is not safe for concurrent mutation.
type Circuit struct {
	qubits int
	gates  []*Gate
	tol    Tolerances
	logger *log.Logger
}

// New returns an empty circuit on the given number of qubits.
func New(qubits int, opts ...Option) (*Circuit, error) {
	if qubits < 0 {
		return nil, fmt.Errorf("%d qubits: %w", qubits, ErrQubitIndexOutOfRange)
	}
	if qubits > MaxQubits {
		return nil, fmt.Errorf("%d qubits, limit %d: %w", qubits, MaxQubits, ErrTooManyQubits)
	}
	cfg := newConfig(opts)
	return &Circuit{qubits: qubits, tol: cfg.tol, logger: cfg.logger}, nil
}

func (c *Circuit) Qubits() int { return c.qubits }

// Len returns the number of gates appended so far.
func (c *Circuit) Len() int { return len(c.gates) }

// Gates returns the gates in execution order. Gates are immutable, so
// sharing them is safe; the slice itself is a copy.
func (c *Circuit) Gates() []*Gate { return slices.Clone(c.gates) }

func (c *Circuit) checkQubits(qs ...int) error {
	for _, q := range qs {
		if q < 0 || q >= c.qubits {
			return fmt.Errorf("qubit %d in %d-qubit circuit: %w", q, c.qubits, ErrQubitIndexOutOfRange)
		}
	}
	return nil
}

// AppendGate appends a gate built elsewhere after checking its targets fit.
func (c *Circuit) AppendGate(g *Gate) error {
	if g == nil {
		return fmt.Errorf("nil gate: %w", ErrMalformedOperator)
	}
	if err := c.checkQubits(g.targets...); err != nil {
		return err
	}
	c.gates = append(c.gates, g)
	c.logger.Debug("gate appended", "gate", g.name, "targets", g.targets, "index", len(c.gates)-1)
	return nil
}

// build checks qubits before construction so range errors take priority over
// operator errors, then appends.
func (c *Circuit) build(qubits []int, construct func(opt Option) (*Gate, error)) error {
	if err := c.checkQubits(qubits...); err != nil {
		return err
	}
	g, err := construct(WithTolerances(c.tol))
	if err != nil {
		return err
	}
	return c.AppendGate(g)
}

func (c *Circuit) AppendHadamard(target int) error {
	return c.build([]int{target}, func(o Option) (*Gate, error) { return Hadamard(target, o) })
}

func (c *Circuit) AppendPauliX(target int) error {
	return c.build([]int{target}, func(o Option) (*Gate, error) { return PauliX(target, o) })
}

func (c *Circuit) AppendPauliY(target int) error {
	return c.build([]int{target}, func(o Option) (*Gate, error) { return PauliY(target, o) })
}

func (c *Circuit) AppendPauliZ(target int) error {
	return c.build([]int{target}, func(o Option) (*Gate, error) { return PauliZ(target, o) })
}

func (c *Circuit) AppendPhase(target int) error {
	return c.build([]int{target}, func(o Option) (*Gate, error) { return Phase(target, o) })
}

func (c *Circuit) AppendT(target int) error {
	return c.build([]int{target}, func(o Option) (*Gate, error) { return TGate(target, o) })
}

func (c *Circuit) AppendRX(theta float64, target int) error {
	return c.build([]int{target}, func(o Option) (*Gate, error) { return RX(theta, target, o) })
}

func (c *Circuit) AppendRY(theta float64, target int) error {
	return c.build([]int{target}, func(o Option) (*Gate, error) { return RY(theta, target, o) })
}

func (c *Circuit) AppendRZ(theta float64, target int) error {
	return c.build([]int{target}, func(o Option) (*Gate, error) { return RZ(theta, target, o) })
}

func (c *Circuit) AppendSwap(a, b int) error {
	return c.build([]int{a, b}, func(o Option) (*Gate, error) { return Swap(a, b, o) })
}

// AppendControlledX appends a CNOT. control == target fails with ErrDuplicateTarget.
func (c *Circuit) AppendControlledX(control, target int) error {
	return c.build([]int{control, target}, func(o Option) (*Gate, error) { return ControlledX(control, target, o) })
}

func (c *Circuit) AppendMultiControlledX(controls []int, target int) error {
	qs := append(slices.Clone(controls), target)
	return c.build(qs, func(o Option) (*Gate, error) { return MultiControlledX(controls, target, o) })
}

// AppendControlled appends g extended by the given controls.
func (c *Circuit) AppendControlled(g *Gate, controls []int) error {
	if g == nil {
		return fmt.Errorf("nil gate: %w", ErrMalformedOperator)
	}
	qs := append(g.Targets(), controls...)
	return c.build(qs, func(o Option) (*Gate, error) { return Controlled(g, controls, o) })
}

// InitialState returns the basis vector |index⟩.
func (c *Circuit) InitialState(index int) (*linalg.Vector, error) {
	dim := 1 << c.qubits
	if index < 0 || index >= dim {
		return nil, fmt.Errorf("index %d, dimension %d: %w", index, dim, ErrInvalidInitialIndex)
	}
	v, err := linalg.NewVector(dim)
	if err != nil {
		return nil, err
	}
	v.Set(index, 1)
	return v, nil
}

// Evolve starts from |initial⟩ and applies the first steps gates in order,
// returning the resulting state. The circuit is not modified.
func (c *Circuit) Evolve(initial, steps int) (*linalg.Vector, error) {
	if c.qubits == 0 {
		return nil, ErrNoQubits
	}
	if steps < 0 || steps > len(c.gates) {
		return nil, fmt.Errorf("step %d of %d: %w", steps, len(c.gates), ErrStepOutOfRange)
	}
	state, err := c.InitialState(initial)
	if err != nil {
		return nil, err
	}
	for i, g := range c.gates[:steps] {
		full, err := g.Expand(c.qubits)
		if err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}
		state, err = full.MulVec(state)
		if err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}
		c.logger.Debug("gate applied", "step", i, "gate", g.name, "targets", g.targets, "norm", state.Norm())
	}
	return state, nil
}

// Run evolves |0…0⟩ through every gate and returns the final amplitudes.
func (c *Circuit) Run() (Result, error) {
	return c.RunFrom(0)
}

// RunFrom is Run with an explicit initial basis index.
func (c *Circuit) RunFrom(initial int) (Result, error) {
	state, err := c.Evolve(initial, len(c.gates))
	if err != nil {
		return nil, err
	}
	c.logger.Info("circuit evolved", "qubits", c.qubits, "gates", len(c.gates), "initial", Label(initial, c.qubits))
	return newResult(state, c.qubits), nil
}
