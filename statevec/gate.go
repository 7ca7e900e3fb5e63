package statevec

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"qsimcirq/linalg"
)

// config is shared by gate and circuit construction; each reads the fields it needs.
type config struct {
	tol    Tolerances
	name   string
	logger *log.Logger
}

// Option configures NewGate, the standard gate constructors and New.
type Option func(*config)

// WithTolerances overrides DefaultTolerances.
func WithTolerances(t Tolerances) Option {
	return func(c *config) { c.tol = t }
}

// WithName sets the display name of a gate. Circuits ignore it.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithLogger sets the logger a circuit reports evolution steps to. Gates ignore it.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

func newConfig(opts []Option) config {
	c := config{tol: DefaultTolerances, name: "U"}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// Gate is a validated unitary acting on an ordered list of qubits. Position i
// in the target list is bit i of the operator's own index space.
type Gate struct {
	name    string
	op      *linalg.Matrix
	targets []int
	slot    map[int]int // qubit -> position in targets
	tol     Tolerances
}

// NewGate validates op against targets and returns an immutable gate. The
// operator is copied, so later changes to op do not reach the gate.
func NewGate(op *linalg.Matrix, targets []int, opts ...Option) (*Gate, error) {
	cfg := newConfig(opts)

	if op == nil {
		return nil, fmt.Errorf("nil matrix: %w", ErrMalformedOperator)
	}
	if !op.IsSquare() {
		return nil, fmt.Errorf("%dx%d matrix: %w", op.Rows(), op.Cols(), ErrMalformedOperator)
	}
	if len(targets) >= 31 || op.Rows() != 1<<len(targets) {
		return nil, fmt.Errorf("%dx%d matrix for %d targets: %w", op.Rows(), op.Cols(), len(targets), ErrMalformedOperator)
	}

	slot := make(map[int]int, len(targets))
	for i, q := range targets {
		if q < 0 {
			return nil, fmt.Errorf("target %d: %w", q, ErrQubitIndexOutOfRange)
		}
		if _, dup := slot[q]; dup {
			return nil, fmt.Errorf("target %d in %v: %w", q, targets, ErrDuplicateTarget)
		}
		slot[q] = i
	}

	if !cfg.tol.IsUnitary(op) {
		return nil, fmt.Errorf("%s on %v: %w", cfg.name, targets, ErrNotUnitary)
	}

	return &Gate{
		name:    cfg.name,
		op:      op.Clone(),
		targets: slices.Clone(targets),
		slot:    slot,
		tol:     cfg.tol,
	}, nil
}

// Name returns the display name, e.g. "H" or "CX".
func (g *Gate) Name() string { return g.name }

// Targets returns a copy of the ordered target list.
func (g *Gate) Targets() []int { return slices.Clone(g.targets) }

// Operator returns a copy of the small operator.
func (g *Gate) Operator() *linalg.Matrix { return g.op.Clone() }

// Arity is the number of qubits the gate acts on.
func (g *Gate) Arity() int { return len(g.targets) }

// Position reports which bit of the small operator addresses qubit q.
func (g *Gate) Position(q int) (int, bool) {
	i, ok := g.slot[q]
	return i, ok
}

// Adjoint returns the inverse gate on the same targets.
func (g *Gate) Adjoint() *Gate {
	name := strings.TrimSuffix(g.name, "†")
	if name == g.name {
		name += "†"
	}
	return &Gate{
		name:    name,
		op:      g.op.Adjoint(),
		targets: slices.Clone(g.targets),
		slot:    g.slot,
		tol:     g.tol,
	}
}

// Controlled extends g with extra control qubits. The enlarged operator is the
// identity except for its trailing block, which holds g's operator; the
// controls take the highest-order positions, after g's own targets.
func Controlled(g *Gate, controls []int, opts ...Option) (*Gate, error) {
	if g == nil {
		return nil, fmt.Errorf("nil gate: %w", ErrMalformedOperator)
	}
	k, c := len(g.targets), len(controls)
	if k+c >= 31 {
		return nil, fmt.Errorf("%d targets and %d controls: %w", k, c, ErrMalformedOperator)
	}

	small := g.op.Rows()
	dim := 1 << (k + c)
	offset := dim - small
	op := linalg.Identity(dim)
	for i := 0; i < small; i++ {
		for j := 0; j < small; j++ {
			op.Set(offset+i, offset+j, g.op.At(i, j))
		}
	}

	targets := make([]int, 0, k+c)
	targets = append(targets, g.targets...)
	targets = append(targets, controls...)

	base := []Option{WithTolerances(g.tol), WithName(strings.Repeat("C", c) + g.name)}
	return NewGate(op, targets, append(base, opts...)...)
}

func (g *Gate) String() string {
	return fmt.Sprintf("%s%v", g.name, g.targets)
}
