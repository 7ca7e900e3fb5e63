package main

import (
	"errors"
	"fmt"
	"math/cmplx"
	"slices"
	"strings"

	"qsimcirq/linalg"
	"qsimcirq/statevec"
)

var errUnknownGate = errors.New("unknown gate")

// param returns the i-th angle, or zero when the gate carries fewer.
func (g Gate) param(i int) float64 {
	if i < len(g.Params) {
		return g.Params[i]
	}
	return 0
}

// singleQubit builds the operator of a one-qubit gate kind on target.
func (g Gate) singleQubit(kind string, target int, opts []statevec.Option) (*statevec.Gate, error) {
	switch kind {
	case "I":
		return statevec.NewGate(linalg.Identity(2), []int{target}, append(slices.Clone(opts), statevec.WithName("I"))...)
	case "H":
		return statevec.Hadamard(target, opts...)
	case "X":
		return statevec.PauliX(target, opts...)
	case "Y":
		return statevec.PauliY(target, opts...)
	case "Z":
		return statevec.PauliZ(target, opts...)
	case "S":
		return statevec.Phase(target, opts...)
	case "SDG":
		return statevec.PhaseDagger(target, opts...)
	case "T":
		return statevec.TGate(target, opts...)
	case "TDG":
		return statevec.TDagger(target, opts...)
	case "SX":
		return statevec.SqrtX(target, opts...)
	case "RX":
		return statevec.RX(g.param(0), target, opts...)
	case "RY":
		return statevec.RY(g.param(0), target, opts...)
	case "RZ":
		return statevec.RZ(g.param(0), target, opts...)
	case "P", "U1":
		return statevec.PhaseShift(g.param(0), target, opts...)
	case "U2":
		return statevec.U2(g.param(0), g.param(1), target, opts...)
	case "U3":
		return statevec.U3(g.param(0), g.param(1), g.param(2), target, opts...)
	}
	return nil, fmt.Errorf("%s: %w", kind, errUnknownGate)
}

// unitary builds the validated operator for g.
func (g Gate) unitary(opts ...statevec.Option) (*statevec.Gate, error) {
	switch g.Type {
	case "CX":
		return statevec.ControlledX(g.Control, g.Target, opts...)
	case "CZ":
		return statevec.ControlledZ(g.Control, g.Target, opts...)
	case "CH":
		return statevec.ControlledH(g.Control, g.Target, opts...)
	case "SWAP":
		return statevec.Swap(g.Control, g.Target, opts...)
	case "CCX":
		return statevec.MultiControlledX(g.Controls, g.Target, opts...)
	case "CRX", "CRY", "CRZ", "CU1", "CP":
		base, err := g.singleQubit(g.Type[1:], g.Target, opts)
		if err != nil {
			return nil, err
		}
		return statevec.Controlled(base, []int{g.Control}, opts...)
	}
	return g.singleQubit(g.Type, g.Target, opts)
}

// Build converts the gates up to and including upToStep into a validated
// statevec circuit. A negative upToStep takes every gate. Barriers are skipped.
func (c *Circuit) Build(upToStep int, opts ...statevec.Option) (*statevec.Circuit, error) {
	sc, err := statevec.New(c.NumQubits, opts...)
	if err != nil {
		return nil, err
	}
	for _, g := range c.SortedGates() {
		if upToStep >= 0 && g.Step > upToStep {
			break
		}
		if g.Type == "BARRIER" {
			continue
		}
		u, err := g.unitary(opts...)
		if err != nil {
			return nil, fmt.Errorf("step %d %s: %w", g.Step, g.Type, err)
		}
		if err := sc.AppendGate(u); err != nil {
			return nil, fmt.Errorf("step %d %s: %w", g.Step, g.Type, err)
		}
	}
	return sc, nil
}

// Simulate runs the circuit through upToStep from basis state initial.
func Simulate(c *Circuit, upToStep, initial int, opts ...statevec.Option) (statevec.Result, error) {
	sc, err := c.Build(upToStep, opts...)
	if err != nil {
		return nil, err
	}
	return sc.RunFrom(initial)
}

// basisState is one non-negligible amplitude of a result, as listed in the
// viewer's amplitude panel.
type basisState struct {
	Label     string
	Amplitude complex128
	Prob      float64
	Phase     float64
	Hamming   int
}

// significantStates lists the basis states with probability above 1e-10 in
// label order.
func significantStates(res statevec.Result) []basisState {
	var states []basisState
	for _, label := range res.Labels() {
		amp := res[label]
		prob := real(amp * cmplx.Conj(amp))
		if prob <= 1e-10 {
			continue
		}
		states = append(states, basisState{
			Label:     label,
			Amplitude: amp,
			Prob:      prob,
			Phase:     cmplx.Phase(amp),
			Hamming:   strings.Count(label, "1"),
		})
	}
	return states
}
