package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI in a scratch directory and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunDefaultExample(t *testing.T) {
	out, _, err := execute(t, "run")
	require.NoError(t, err)
	assert.Equal(t, "|00⟩:  0.70711 + i0.00000\n|01⟩:  0.00000 + i0.00000\n|10⟩:  0.00000 + i0.00000\n|11⟩:  0.70711 + i0.00000\n", out)
}

func TestRunFlags(t *testing.T) {
	out, _, err := execute(t, "run", "--example", "flip", "--initial", "1", "--precision", "2")
	require.NoError(t, err)
	assert.Equal(t, "|0⟩:  1.00 + i0.00\n|1⟩:  0.00 + i0.00\n", out)

	out, _, err = execute(t, "run", "-e", "bell", "--steps", "0", "--precision", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "|01⟩:  0.7 + i0.0")

	out, _, err = execute(t, "run", "-e", "ghz", "--table", "--qubits")
	require.NoError(t, err)
	assert.Contains(t, out, "PROBABILITY")
	assert.Contains(t, out, "P(1)")
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "swap.qasm")
	require.NoError(t, os.WriteFile(path, []byte("qreg q[2];\nx q[0];\nswap q[0], q[1];\n"), 0o644))

	out, _, err := execute(t, "run", path, "--precision", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "|10⟩:  1 + i0")

	bad := filepath.Join(dir, "bad.qasm")
	require.NoError(t, os.WriteFile(bad, []byte("qreg q[1];\nreset q[0];\n"), 0o644))
	_, _, err = execute(t, "run", bad)
	assert.ErrorIs(t, err, errUnsupportedStatement)
}

func TestRunErrors(t *testing.T) {
	_, _, err := execute(t, "run", "--example", "nope")
	assert.Error(t, err)

	_, _, err = execute(t, "run", "-e", "flip", "--initial", "2")
	assert.Error(t, err)

	_, _, err = execute(t, "run", "--log-level", "loud")
	assert.Error(t, err)

	_, _, err = execute(t, "run", "--config", "missing.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunDebugLogging(t *testing.T) {
	_, stderr, err := execute(t, "run", "-e", "bell", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "gate applied")
	assert.Contains(t, stderr, "simulating")
}

func TestExamplesCommand(t *testing.T) {
	out, _, err := execute(t, "examples")
	require.NoError(t, err)
	for _, ex := range examples {
		assert.Contains(t, out, ex.Name)
	}

	out, _, err = execute(t, "examples", "--show", "toffoli")
	require.NoError(t, err)
	assert.Contains(t, out, "ccx q[0], q[1], q[2];")
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg", "qsimcirq.yaml")
	_, _, err := execute(t, "config", "init", path)
	require.NoError(t, err)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, _, err = execute(t, "config", "init", path)
	assert.Error(t, err)

	// The written file drives later runs.
	out, _, err := execute(t, "--config", path, "run", "-e", "flip")
	require.NoError(t, err)
	assert.Contains(t, out, "|1⟩:  1.00000")
}
