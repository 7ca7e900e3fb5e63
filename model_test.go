package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, example string) Model {
	t.Helper()
	c, err := loadExample(example)
	require.NoError(t, err)
	return newModel(c, DefaultConfig(), log.New(io.Discard), filepath.Join(t.TempDir(), "out.qasm"))
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModelStepsThroughCircuit(t *testing.T) {
	m := newTestModel(t, "bell")
	require.NoError(t, m.simErr)
	assert.Equal(t, 0, m.cursorStep)
	assert.InDelta(t, 0.5, m.result.Probability("01"), 1e-9)

	m = press(t, m, "right")
	assert.Equal(t, 1, m.cursorStep)
	assert.InDelta(t, 0.5, m.result.Probability("11"), 1e-9)
	assert.InDelta(t, 0, m.result.Probability("01"), 1e-9)

	// The cursor stops at the last step.
	m = press(t, m, "right", "right")
	assert.Equal(t, 1, m.cursorStep)

	m = press(t, m, "g")
	assert.Equal(t, 0, m.cursorStep)
	m = press(t, m, "G")
	assert.Equal(t, 1, m.cursorStep)
}

func TestModelInitialState(t *testing.T) {
	m := newTestModel(t, "flip")
	assert.InDelta(t, 1, m.result.Probability("1"), 1e-9)

	m = press(t, m, "]")
	assert.Equal(t, 1, m.initial)
	assert.InDelta(t, 1, m.result.Probability("0"), 1e-9)

	// One qubit has two basis states.
	m = press(t, m, "]")
	assert.Equal(t, 1, m.initial)
	m = press(t, m, "[", "[")
	assert.Equal(t, 0, m.initial)
}

func TestModelExamplePicker(t *testing.T) {
	m := newTestModel(t, "bell")
	m = press(t, m, "e")
	assert.Equal(t, focusMenu, m.focus)

	// Second entry of the first category.
	m = press(t, m, "down", "enter")
	assert.Equal(t, focusCircuit, m.focus)
	assert.Equal(t, exampleMenu[0].items[1].name, strings.TrimPrefix(m.statusMsg, "Loaded "))
	assert.Equal(t, 3, m.circuit.NumQubits)

	m = press(t, m, "e", "esc")
	assert.Equal(t, focusCircuit, m.focus)
}

func TestModelQASMEditing(t *testing.T) {
	m := newTestModel(t, "superposition")
	m = press(t, m, "tab")
	assert.Equal(t, focusQASM, m.focus)

	m.qasmEditor.SetValue("qreg q[1];\nx q[0];\n")
	m.parseQASMInput()
	require.NoError(t, m.parseErr)
	assert.InDelta(t, 1, m.result.Probability("1"), 1e-9)

	// A bad edit keeps the last good circuit.
	m.qasmEditor.SetValue("qreg q[1];\nmeasure q[0] -> c[0];\n")
	m.parseQASMInput()
	assert.Error(t, m.parseErr)
	assert.Equal(t, "X", m.circuit.Gates[0].Type)

	m = press(t, m, "esc")
	assert.Equal(t, focusCircuit, m.focus)
}

func TestModelShrinkingCircuitClampsCursor(t *testing.T) {
	m := newTestModel(t, "toffoli")
	m = press(t, m, "G", "down", "down", "]", "]", "]", "]", "]")
	require.Equal(t, 2, m.cursorStep)
	require.Equal(t, 2, m.cursorQubit)

	m.qasmEditor.SetValue("qreg q[1];\nh q[0];\n")
	m.parseQASMInput()
	require.NoError(t, m.parseErr)
	assert.Equal(t, 0, m.cursorStep)
	assert.Equal(t, 0, m.cursorQubit)
	assert.Equal(t, 1, m.initial)
	assert.NoError(t, m.simErr)
}

func TestModelSave(t *testing.T) {
	m := newTestModel(t, "ghz")
	m = press(t, m, "ctrl+s")
	assert.Equal(t, "Saved "+m.savePath, m.statusMsg)

	data, err := os.ReadFile(m.savePath)
	require.NoError(t, err)
	var c Circuit
	require.NoError(t, c.ParseQASM(string(data)))
	assert.Len(t, c.Gates, 3)
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, "bell")
	assert.Equal(t, "Loading...", m.View())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 44})
	m = next.(Model)
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Quantum Circuit")
	assert.Contains(t, view, "State after step 0")
	assert.Contains(t, view, "|01⟩")
	assert.Contains(t, view, "cx q[0], q[1];")

	m = press(t, m, "e")
	assert.Contains(t, ansi.Strip(m.View()), "Load Example")
}

func TestOverlayAt(t *testing.T) {
	bg := "abcdef\nghijkl\nmnopqr"
	got := overlayAt(bg, "XY\nZW", 2, 1)
	assert.Equal(t, "abcdef\nghXYkl\nmnZWqr", got)

	// Overlays past the end of a line are padded.
	assert.Equal(t, "ab  XY", spliceLineAt("ab", "XY", 4))
}
