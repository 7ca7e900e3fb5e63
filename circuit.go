package main

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Pre-compiled regexps for the unitary subset of OpenQASM 2.0 the simulator accepts.
var (
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `(?:\s*,\s*` + paramPattern + `)*)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	twoQubitParamRegex   = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	threeQubitRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\],\s*q\[(\d+)\];?$`)
	qregRegex            = regexp.MustCompile(`^qreg\s+(\w+)\[(\d+)\];?$`)
)

var (
	errUnsupportedStatement = errors.New("unsupported statement")
	errBadParameter         = errors.New("bad gate parameter")
)

// Gate is one placed operation in the circuit description. It names a gate
// kind and the wires it touches; statevec builds and validates the operator.
type Gate struct {
	Type     string
	Target   int
	Control  int       // -1 unless the gate has exactly one control or partner qubit
	Controls []int     // controls of CCX
	Params   []float64 // angles for rotation and phase gates
	Step     int       // column in the circuit timeline
}

// Circuit is the editable description shown in the viewer and read from QASM.
type Circuit struct {
	NumQubits int
	Gates     []Gate
	MaxSteps  int
}

func (c *Circuit) place(g Gate) {
	c.Gates = append(c.Gates, g)
	c.MaxSteps = max(c.MaxSteps, g.Step+1)
}

// AddGate appends a gate, optionally with one control qubit.
func (c *Circuit) AddGate(gateType string, target, step int, control ...int) {
	ctrl := -1
	if len(control) > 0 {
		ctrl = control[0]
	}
	c.place(Gate{Type: gateType, Target: target, Control: ctrl, Step: step})
}

// AddParameterizedGate appends a rotation or phase gate.
func (c *Circuit) AddParameterizedGate(gateType string, target, step int, params []float64, control ...int) {
	ctrl := -1
	if len(control) > 0 {
		ctrl = control[0]
	}
	c.place(Gate{Type: gateType, Target: target, Control: ctrl, Params: params, Step: step})
}

// AddMultiControlGate appends a gate with several controls, such as CCX.
func (c *Circuit) AddMultiControlGate(gateType string, target, step int, controls []int) {
	c.place(Gate{Type: gateType, Target: target, Control: -1, Controls: slices.Clone(controls), Step: step})
}

// AddBarrier marks a step with a barrier across every qubit. It has no effect on the state.
func (c *Circuit) AddBarrier(step int) {
	c.Gates = slices.DeleteFunc(c.Gates, func(g Gate) bool {
		return g.Step == step && g.Type == "BARRIER"
	})
	c.place(Gate{Type: "BARRIER", Target: -1, Control: -1, Step: step})
}

// Qubits lists every wire the gate touches, target last.
func (g Gate) Qubits() []int {
	var qs []int
	if g.Control >= 0 {
		qs = append(qs, g.Control)
	}
	qs = append(qs, g.Controls...)
	if g.Target >= 0 {
		qs = append(qs, g.Target)
	}
	return qs
}

func (g Gate) references(qubit int) bool {
	return slices.Contains(g.Qubits(), qubit)
}

// GateAt returns the gate at the given step touching qubit, or nil.
func (c *Circuit) GateAt(step, qubit int) *Gate {
	for i := range c.Gates {
		g := &c.Gates[i]
		if g.Step == step && g.references(qubit) {
			return g
		}
	}
	return nil
}

// SortedGates returns the gates ordered by step, keeping insertion order within a step.
func (c *Circuit) SortedGates() []Gate {
	gates := slices.Clone(c.Gates)
	slices.SortStableFunc(gates, func(a, b Gate) int { return a.Step - b.Step })
	return gates
}

// ToQASM renders the circuit as OpenQASM 2.0.
func (c *Circuit) ToQASM() string {
	numQubits := max(c.NumQubits, 1)
	for _, g := range c.Gates {
		for _, q := range g.Qubits() {
			numQubits = max(numQubits, q+1)
		}
	}

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n\n", numQubits)

	for _, g := range c.SortedGates() {
		name := strings.ToLower(g.Type)
		args := make([]string, 0, 3)
		for _, q := range g.Qubits() {
			args = append(args, fmt.Sprintf("q[%d]", q))
		}
		switch {
		case g.Type == "BARRIER":
			all := make([]string, numQubits)
			for q := range numQubits {
				all[q] = fmt.Sprintf("q[%d]", q)
			}
			fmt.Fprintf(&sb, "barrier %s;\n", strings.Join(all, ", "))
		case len(g.Params) > 0:
			ps := make([]string, len(g.Params))
			for i, p := range g.Params {
				ps[i] = formatParam(p)
			}
			fmt.Fprintf(&sb, "%s(%s) %s;\n", name, strings.Join(ps, ", "), strings.Join(args, ", "))
		default:
			fmt.Fprintf(&sb, "%s %s;\n", name, strings.Join(args, ", "))
		}
	}
	return sb.String()
}

// scheduler packs parsed gates into steps. A single-qubit gate joins the
// current step unless its wire is already busy there; multi-qubit gates and
// barriers always open a new step.
type scheduler struct {
	step int
	used map[int]bool
}

func (s *scheduler) place(qubits ...int) int {
	if len(s.used) > 0 && (len(qubits) != 1 || s.used[qubits[0]]) {
		s.step++
		clear(s.used)
	}
	for _, q := range qubits {
		s.used[q] = true
	}
	return s.step
}

func (s *scheduler) barrier() int {
	if len(s.used) > 0 {
		s.step++
		clear(s.used)
	}
	at := s.step
	s.step++
	return at
}

// ParseQASM replaces the circuit with the gates in qasm. Statements are
// packed into steps by scheduler. Measurement, reset and classical control
// are rejected: the simulator only evolves unitaries.
func (c *Circuit) ParseQASM(qasm string) error {
	c.Gates = nil
	c.MaxSteps = 0
	sched := scheduler{used: map[int]bool{}}

	for n, raw := range strings.Split(qasm, "\n") {
		line := strings.TrimSpace(raw)
		if i := strings.Index(line, "//"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" ||
			strings.HasPrefix(line, "OPENQASM") ||
			strings.HasPrefix(line, "include") ||
			strings.HasPrefix(line, "creg") {
			continue
		}

		lineErr := func(err error) error {
			return fmt.Errorf("line %d: %q: %w", n+1, line, err)
		}

		if matches := qregRegex.FindStringSubmatch(line); matches != nil {
			size, _ := strconv.Atoi(matches[2])
			c.NumQubits = size
			continue
		}
		if strings.HasPrefix(line, "barrier") {
			c.AddBarrier(sched.barrier())
			continue
		}

		if matches := threeQubitRegex.FindStringSubmatch(line); matches != nil {
			gateType := strings.ToUpper(matches[1])
			if gateType != "CCX" && gateType != "TOFFOLI" {
				return lineErr(errUnsupportedStatement)
			}
			q1, _ := strconv.Atoi(matches[2])
			q2, _ := strconv.Atoi(matches[3])
			q3, _ := strconv.Atoi(matches[4])
			c.AddMultiControlGate("CCX", q3, sched.place(q1, q2, q3), []int{q1, q2})
			continue
		}

		if matches := twoQubitParamRegex.FindStringSubmatch(line); matches != nil {
			gateType := canonicalGate(matches[1])
			if !isControlledRotation(gateType) {
				return lineErr(errUnsupportedStatement)
			}
			param, ok := parseParamExpr(matches[2])
			if !ok {
				return lineErr(errBadParameter)
			}
			control, _ := strconv.Atoi(matches[3])
			target, _ := strconv.Atoi(matches[4])
			c.AddParameterizedGate(gateType, target, sched.place(control, target), []float64{param}, control)
			continue
		}

		if matches := twoQubitRegex.FindStringSubmatch(line); matches != nil {
			gateType := canonicalGate(matches[1])
			switch gateType {
			case "CX", "CZ", "CH", "SWAP":
			default:
				return lineErr(errUnsupportedStatement)
			}
			control, _ := strconv.Atoi(matches[2])
			target, _ := strconv.Atoi(matches[3])
			c.AddGate(gateType, target, sched.place(control, target), control)
			continue
		}

		if matches := singleGateParamRegex.FindStringSubmatch(line); matches != nil {
			gateType := canonicalGate(matches[1])
			want, ok := paramCount[gateType]
			if !ok {
				return lineErr(errUnsupportedStatement)
			}
			params := parseParams(matches[2])
			if len(params) != want {
				return lineErr(fmt.Errorf("%s takes %d parameters: %w", gateType, want, errBadParameter))
			}
			target, _ := strconv.Atoi(matches[3])
			c.AddParameterizedGate(gateType, target, sched.place(target), params)
			continue
		}

		if matches := singleGateRegex.FindStringSubmatch(line); matches != nil {
			gateType := canonicalGate(matches[1])
			if !fixedSingleGates[gateType] {
				return lineErr(errUnsupportedStatement)
			}
			target, _ := strconv.Atoi(matches[2])
			c.AddGate(gateType, target, sched.place(target))
			continue
		}

		return lineErr(errUnsupportedStatement)
	}

	return nil
}

// fixedSingleGates are the single-qubit gates without parameters.
var fixedSingleGates = map[string]bool{
	"I": true, "H": true, "X": true, "Y": true, "Z": true,
	"S": true, "SDG": true, "T": true, "TDG": true, "SX": true,
}

// paramCount gives the arity of each parameterised single-qubit gate.
var paramCount = map[string]int{
	"RX": 1, "RY": 1, "RZ": 1, "P": 1, "U1": 1, "U2": 2, "U3": 3,
}

func isControlledRotation(gateType string) bool {
	switch gateType {
	case "CRX", "CRY", "CRZ", "CU1", "CP":
		return true
	}
	return false
}

// canonicalGate upper-cases a QASM gate name and folds aliases.
func canonicalGate(name string) string {
	switch upper := strings.ToUpper(name); upper {
	case "ID":
		return "I"
	case "CNOT":
		return "CX"
	case "U":
		return "U3"
	default:
		return upper
	}
}

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	gate        *Gate
	isControl   bool
	isTarget    bool
	vertAbove   bool
	vertBelow   bool
	passThrough bool
	isBarrier   bool
}

// getCellInfo returns rendering information for the cell at (step, qubit).
func (c *Circuit) getCellInfo(step, qubit int) cellInfo {
	var info cellInfo

	if gate := c.GateAt(step, qubit); gate != nil {
		info.gate = gate
		info.isControl = gate.Control == qubit || slices.Contains(gate.Controls, qubit)
		info.isTarget = gate.Target == qubit && (gate.Control >= 0 || len(gate.Controls) > 0)
	}

	for i := range c.Gates {
		g := &c.Gates[i]
		if g.Step != step {
			continue
		}
		if g.Type == "BARRIER" {
			info.isBarrier = true
			if info.gate == nil {
				info.gate = g
			}
			continue
		}

		qs := g.Qubits()
		if len(qs) < 2 {
			continue
		}
		lo, hi := slices.Min(qs), slices.Max(qs)
		if qubit < lo || qubit > hi {
			continue
		}
		info.vertAbove = info.vertAbove || qubit > lo
		info.vertBelow = info.vertBelow || qubit < hi
		if qubit > lo && qubit < hi && info.gate == nil {
			info.passThrough = true
		}
	}

	return info
}
