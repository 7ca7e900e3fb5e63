package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given visible width.
func padCenter(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return ansi.Truncate(s, width, "")
	}
	total := width - w
	left := total / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", total-left)
}

// gateDisplayName returns the label drawn inside a gate box.
func gateDisplayName(g *Gate) string {
	switch g.Type {
	case "SDG":
		return "S†"
	case "TDG":
		return "T†"
	case "SX":
		return "√X"
	case "CH", "CRX", "CRY", "CRZ", "CU1", "CP":
		return g.Type[1:]
	default:
		return g.Type
	}
}

// controlSymbol returns the wire symbol for the control side of a multi-qubit gate.
func controlSymbol(gateType string) string {
	if gateType == "SWAP" {
		return "×"
	}
	return "●"
}

// targetSymbol returns the wire symbol for the target of a controlled gate,
// or "" when the target is drawn as a boxed gate.
func targetSymbol(gateType string) string {
	switch gateType {
	case "CX", "CCX":
		return "⊕"
	case "CZ":
		return "●"
	case "SWAP":
		return "×"
	default:
		return ""
	}
}

// wireSymbol draws sym in the middle of a wire segment of width w.
func wireSymbol(sym string, w int) string {
	dashL := (w - 1) / 2
	return strings.Repeat("─", dashL) + gateStyle.Render(sym) + strings.Repeat("─", w-dashL-1)
}

// gateBox draws a boxed gate name centred in a cell.
func gateBox(name string) (top, mid, bot string) {
	margin := (cellW - gateBoxW) / 2
	right := cellW - margin - gateBoxW
	name = padCenter(name, gateNameW)
	top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", right)
	mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+name+"├") + strings.Repeat("─", right)
	bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", right)
	return
}

// ──────────────────────────── Cell rendering ────────────────────────────

// renderCell returns 3 lines (top, mid, bot) for a single cell, each cellW
// visible characters wide. A highlighted cell is framed with a double border.
func renderCell(info cellInfo, highlighted bool) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)

	if highlighted {
		innerW := cellW - 2
		edge := cursorBoxStyle.Render("║")
		top = cursorBoxStyle.Render("╔" + strings.Repeat("═", innerW) + "╗")
		bot = cursorBoxStyle.Render("╚" + strings.Repeat("═", innerW) + "╝")

		switch {
		case info.isBarrier:
			mid = edge + wireSymbol("│", innerW) + edge
		case info.gate != nil && info.isControl:
			mid = edge + wireSymbol(controlSymbol(info.gate.Type), innerW) + edge
		case info.gate != nil && info.isTarget && targetSymbol(info.gate.Type) != "":
			mid = edge + wireSymbol(targetSymbol(info.gate.Type), innerW) + edge
		case info.gate != nil:
			mid = edge + "─┤" + gateStyle.Render(padCenter(gateDisplayName(info.gate), gateNameW)) + "├─" + edge
		case info.passThrough:
			mid = edge + strings.Repeat("─", (innerW-1)/2) + "┼" + strings.Repeat("─", innerW-(innerW-1)/2-1) + edge
		default:
			mid = edge + strings.Repeat("─", innerW) + edge
		}
		return
	}

	top, bot = emptyRow, emptyRow
	if info.vertAbove {
		top = vertRow
	}
	if info.vertBelow {
		bot = vertRow
	}

	switch {
	case info.isBarrier:
		top, bot = vertRow, vertRow
		mid = wireSymbol("│", cellW)
	case info.gate != nil && info.isControl:
		mid = wireSymbol(controlSymbol(info.gate.Type), cellW)
	case info.gate != nil && info.isTarget && targetSymbol(info.gate.Type) != "":
		mid = wireSymbol(targetSymbol(info.gate.Type), cellW)
	case info.gate != nil:
		boxTop, boxMid, boxBot := gateBox(gateDisplayName(info.gate))
		mid = boxMid
		if !info.vertAbove {
			top = boxTop
		}
		if !info.vertBelow {
			bot = boxBot
		}
	case info.passThrough:
		mid = strings.Repeat("─", (cellW-1)/2) + "┼" + strings.Repeat("─", cellW-(cellW-1)/2-1)
	default:
		mid = strings.Repeat("─", cellW)
	}
	return
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel renders the circuit grid with the step cursor.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Quantum Circuit"))
	sb.WriteString("\n\n")

	availWidth := width - labelVisualW - 4
	visible := max(availWidth/cellW, 1)
	startStep := max(m.cursorStep-visible+1, 0)
	if startStep > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", startStep, startStep+visible-1)
	}

	header := strings.Repeat(" ", labelVisualW)
	for step := startStep; step < startStep+visible; step++ {
		label := fmt.Sprintf("%d", step)
		if step == m.cursorStep {
			header += cursorBoxStyle.Render(padCenter("▼"+label, cellW))
		} else {
			header += dimStyle.Render(padCenter(label, cellW))
		}
	}
	sb.WriteString(header + "\n")

	for qubit := range m.circuit.NumQubits {
		topLine := strings.Repeat(" ", labelVisualW)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", fmt.Sprintf("q[%d]", qubit))) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for step := startStep; step < startStep+visible; step++ {
			hl := step == m.cursorStep && qubit == m.cursorQubit && m.focus == focusCircuit
			top, mid, bot := renderCell(m.circuit.getCellInfo(step, qubit), hl)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	fmt.Fprintf(&sb, "\n  Step %d of %d  │  initial |%s⟩", m.cursorStep, max(m.circuit.MaxSteps-1, 0), m.initialLabel())
	if m.statusMsg != "" {
		fmt.Fprintf(&sb, "  │  %s", activeGateStyle.Render(m.statusMsg))
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderStatePanel lists the amplitudes after the cursor step and the
// marginal probability of each qubit.
func (m Model) renderStatePanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("State after step %d", m.cursorStep)))
	sb.WriteString("\n")

	if m.simErr != nil {
		sb.WriteString(errorStyle.Render(m.simErr.Error()))
		return stateStyle.Width(width).Height(height).Render(sb.String())
	}

	precision := m.cfg.Precision
	states := significantStates(m.result)
	rows := max(height-m.circuit.NumQubits-4, 1)
	for i, st := range states {
		if i == rows {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("  … %d more", len(states)-rows)))
			sb.WriteString("\n")
			break
		}
		fmt.Fprintf(&sb, "%s  %s  %s %s  %s\n",
			qubitLabelStyle.Render("|"+st.Label+"⟩"),
			formatAmplitude(st.Amplitude, precision),
			probabilityBar(st.Prob, barW),
			fmt.Sprintf("%.*f", precision, st.Prob),
			dimStyle.Render(fmt.Sprintf("φ=%+.2fπ", st.Phase/math.Pi)),
		)
	}

	sb.WriteString("\n")
	for q, p := range m.result.QubitProbabilities() {
		fmt.Fprintf(&sb, "%s P(1) %s %.*f\n",
			qubitLabelStyle.Render(fmt.Sprintf("q[%d]", q)),
			probabilityBar(p.Prob1, barW),
			precision, p.Prob1,
		)
	}

	return stateStyle.Width(width).Height(height).Render(sb.String())
}

// renderQASMPanel renders the QASM editor panel.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	title := "QASM"
	if m.focus == focusQASM {
		title += " [EDITING]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())
	if m.parseErr != nil {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(m.parseErr.Error()))
	}

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Navigate: "))
	sb.WriteString("←→/hl Step  ↑↓/jk Qubit  g/G First/Last  [ ] Initial state")
	sb.WriteString("\n")
	sb.WriteString(activeGateStyle.Render("Actions:  "))
	sb.WriteString("Tab Edit QASM  e Examples  ^S Save  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt draws overlay on top of bg with its top-left corner at (x, y).
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	for i, ovLine := range strings.Split(overlay, "\n") {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		bgLines[row] = spliceLineAt(bgLines[row], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces the visible columns of line starting at x with
// overlay, keeping the escape sequences on both sides intact.
func spliceLineAt(line, overlay string, x int) string {
	left := ansi.Truncate(line, x, "")
	if pad := x - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	right := ansi.TruncateLeft(line, x+ansi.StringWidth(overlay), "")
	return left + overlay + right
}
