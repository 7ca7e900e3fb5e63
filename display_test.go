package main

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qsimcirq/statevec"
)

func TestFormatResultOrderAndSigns(t *testing.T) {
	res := statevec.Result{
		"11": complex(-0.5, 0.25),
		"00": complex(1/math.Sqrt2, 0),
		"10": complex(0, -0.125),
		"01": 0,
	}
	got := FormatResult(res, 5)
	want := strings.Join([]string{
		"|00⟩:  0.70711 + i0.00000",
		"|01⟩:  0.00000 + i0.00000",
		"|10⟩:  0.00000 - i0.12500",
		"|11⟩: -0.50000 + i0.25000",
		"",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestFormatResultPrecision(t *testing.T) {
	res := statevec.Result{"0": complex(1/math.Sqrt2, -1/math.Sqrt2)}
	assert.Equal(t, "|0⟩:  0.71 - i0.71\n", FormatResult(res, 2))
	assert.Equal(t, "|0⟩:  1 - i1\n", FormatResult(res, 0))
}

func TestFormatAmplitude(t *testing.T) {
	assert.Equal(t, "+0.500 - 0.250i", formatAmplitude(complex(0.5, -0.25), 3))
	assert.Equal(t, "-1.00 + 0.00i", formatAmplitude(-1, 2))
}

func TestProbabilityBar(t *testing.T) {
	assert.Equal(t, 10, ansi.StringWidth(probabilityBar(0.5, 10)))
	assert.Equal(t, 10, ansi.StringWidth(probabilityBar(1.7, 10)))
	assert.Equal(t, 10, ansi.StringWidth(probabilityBar(-0.2, 10)))
	assert.Equal(t, 5, strings.Count(ansi.Strip(probabilityBar(0.5, 10)), "█"))
}

func TestResultTables(t *testing.T) {
	c, err := loadExample("bell")
	require.NoError(t, err)
	res, err := Simulate(c, -1, 0)
	require.NoError(t, err)

	amps := ansi.Strip(renderResultTable(res, 3))
	for _, label := range []string{"|00⟩", "|01⟩", "|10⟩", "|11⟩"} {
		assert.Contains(t, amps, label)
	}
	assert.Contains(t, amps, "+0.707 + 0.000i")
	assert.Contains(t, amps, "0.500")

	qubits := ansi.Strip(renderQubitTable(res, 2))
	assert.Contains(t, qubits, "q[0]")
	assert.Contains(t, qubits, "q[1]")
	assert.Contains(t, qubits, "0.50")
}
