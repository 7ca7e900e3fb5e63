package main

import (
	"fmt"
	"slices"
	"strings"
)

// example is a named built-in circuit.
type example struct {
	Name        string
	Category    string
	Description string
	QASM        string
}

var examples = []example{
	{
		Name:        "bell",
		Category:    "Entanglement",
		Description: "H then CX: (|00⟩ + |11⟩)/√2",
		QASM: `OPENQASM 2.0;
include "qelib1.inc";
qreg q[2];
h q[0];
cx q[0], q[1];
`,
	},
	{
		Name:        "ghz",
		Category:    "Entanglement",
		Description: "three-qubit GHZ state",
		QASM: `OPENQASM 2.0;
include "qelib1.inc";
qreg q[3];
h q[0];
cx q[0], q[1];
cx q[1], q[2];
`,
	},
	{
		Name:        "superposition",
		Category:    "Single qubit",
		Description: "H on |0⟩",
		QASM: `OPENQASM 2.0;
include "qelib1.inc";
qreg q[1];
h q[0];
`,
	},
	{
		Name:        "flip",
		Category:    "Single qubit",
		Description: "X on |0⟩",
		QASM: `OPENQASM 2.0;
include "qelib1.inc";
qreg q[1];
x q[0];
`,
	},
	{
		Name:        "toffoli",
		Category:    "Controlled",
		Description: "H, X, H then Toffoli onto qubit 2",
		QASM: `OPENQASM 2.0;
include "qelib1.inc";
qreg q[3];
h q[0];
x q[1];
h q[1];
ccx q[0], q[1], q[2];
`,
	},
	{
		Name:        "controlled-h",
		Category:    "Controlled",
		Description: "H on qubit 1 controls H on qubit 0",
		QASM: `OPENQASM 2.0;
include "qelib1.inc";
qreg q[2];
h q[1];
ch q[1], q[0];
`,
	},
}

func lookupExample(name string) (example, bool) {
	i := slices.IndexFunc(examples, func(e example) bool {
		return strings.EqualFold(e.Name, name)
	})
	if i < 0 {
		return example{}, false
	}
	return examples[i], true
}

// loadExample parses a built-in circuit by name.
func loadExample(name string) (*Circuit, error) {
	ex, ok := lookupExample(name)
	if !ok {
		return nil, fmt.Errorf("no example named %q", name)
	}
	c := &Circuit{}
	if err := c.ParseQASM(ex.QASM); err != nil {
		return nil, fmt.Errorf("example %s: %w", name, err)
	}
	return c, nil
}
