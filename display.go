package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"qsimcirq/statevec"
)

// FormatResult renders one line per basis state in label order:
//
//	|01⟩:  0.70711 - i0.00000
//
// The real part is padded with a space when non-negative so columns line up.
func FormatResult(res statevec.Result, precision int) string {
	var sb strings.Builder
	for _, label := range res.Labels() {
		amp := res[label]
		re, im := real(amp), imag(amp)
		reSign, imSign := " ", "+"
		if re < 0 {
			reSign = "-"
		}
		if im < 0 {
			imSign = "-"
		}
		fmt.Fprintf(&sb, "|%s⟩: %s%.*f %s i%.*f\n",
			label, reSign, precision, math.Abs(re), imSign, precision, math.Abs(im))
	}
	return sb.String()
}

// formatAmplitude is the compact form used in tables and the viewer.
func formatAmplitude(amp complex128, precision int) string {
	sign := "+"
	if imag(amp) < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%+.*f %s %.*fi", precision, real(amp), sign, precision, math.Abs(imag(amp)))
}

// probabilityBar draws prob in [0, 1] as a bar of at most width cells.
func probabilityBar(prob float64, width int) string {
	filled := int(math.Round(prob * float64(width)))
	filled = min(max(filled, 0), width)
	return probBarStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}

// renderResultTable renders every amplitude with its probability as a bordered table.
func renderResultTable(res statevec.Result, precision int) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#7aa2f7"))).
		Headers("STATE", "AMPLITUDE", "PROBABILITY", "").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return titleStyle.Padding(0, 1)
			}
			if col == 0 {
				return qubitLabelStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, label := range res.Labels() {
		prob := res.Probability(label)
		t.Row(
			"|"+label+"⟩",
			formatAmplitude(res[label], precision),
			fmt.Sprintf("%.*f", precision, prob),
			probabilityBar(prob, 20),
		)
	}
	return t.Render()
}

// renderQubitTable lists the marginal probability of each qubit.
func renderQubitTable(res statevec.Result, precision int) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a"))).
		Headers("QUBIT", "P(0)", "P(1)").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return titleStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for q, p := range res.QubitProbabilities() {
		t.Row(
			fmt.Sprintf("q[%d]", q),
			fmt.Sprintf("%.*f", precision, p.Prob0),
			fmt.Sprintf("%.*f", precision, p.Prob1),
		)
	}
	return t.Render()
}
