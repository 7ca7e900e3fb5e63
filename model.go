package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"qsimcirq/statevec"
)

// focus represents which panel has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusQASM
	focusMenu
)

// Model is the step viewer state. The circuit is rebuilt from the QASM panel
// whenever its text changes and re-simulated whenever the cursor moves.
type Model struct {
	circuit     Circuit
	cfg         Config
	logger      *log.Logger
	savePath    string
	cursorQubit int
	cursorStep  int
	initial     int
	width       int
	height      int
	qasmEditor  textarea.Model
	focus       focus
	lastQASM    string
	statusMsg   string // transient status message (e.g. save confirmation)

	result   statevec.Result
	simErr   error // last simulation failure, shown in the state panel
	parseErr error // last QASM parse failure, shown under the editor

	// Example picker state
	menuCat  int
	menuItem int
}

// newModel builds a viewer over circuit. savePath is where ctrl+s writes QASM.
func newModel(circuit *Circuit, cfg Config, logger *log.Logger, savePath string) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true

	m := Model{
		circuit:    *circuit,
		cfg:        cfg,
		logger:     logger,
		savePath:   savePath,
		initial:    cfg.Initial,
		qasmEditor: ta,
		focus:      focusCircuit,
	}
	m.syncEditor()
	m.simulate()
	return m
}

// syncEditor writes the circuit back into the QASM panel.
func (m *Model) syncEditor() {
	qasm := m.circuit.ToQASM()
	m.qasmEditor.SetValue(qasm)
	m.lastQASM = qasm
	m.parseErr = nil
}

// parseQASMInput re-reads the editor. On a parse error the previous circuit is kept.
func (m *Model) parseQASMInput() {
	qasm := m.qasmEditor.Value()
	if qasm == m.lastQASM {
		return
	}
	m.lastQASM = qasm

	var c Circuit
	if err := c.ParseQASM(qasm); err != nil {
		m.parseErr = err
		m.logger.Debug("qasm rejected", "err", err)
		return
	}
	m.parseErr = nil
	m.circuit = c
	m.clampCursor()
	m.simulate()
}

func (m *Model) clampCursor() {
	m.cursorStep = min(m.cursorStep, max(m.circuit.MaxSteps-1, 0))
	m.cursorQubit = min(m.cursorQubit, max(m.circuit.NumQubits-1, 0))
	if m.circuit.NumQubits > 0 {
		m.initial = min(m.initial, 1<<m.circuit.NumQubits-1)
	}
}

// simulate evolves the circuit through the cursor step.
func (m *Model) simulate() {
	m.result, m.simErr = Simulate(&m.circuit, m.cursorStep, m.initial,
		statevec.WithTolerances(m.cfg.StatevecTolerances()),
		statevec.WithLogger(m.logger),
	)
	if m.simErr != nil {
		m.logger.Warn("simulation failed", "step", m.cursorStep, "err", m.simErr)
	}
}

func (m Model) initialLabel() string {
	return statevec.Label(m.initial, m.circuit.NumQubits)
}

// loadExample replaces the circuit with the named built-in example.
func (m *Model) loadExample(name string) {
	c, err := loadExample(name)
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.circuit = *c
	m.cursorStep = 0
	m.initial = 0
	m.clampCursor()
	m.syncEditor()
	m.simulate()
	m.statusMsg = "Loaded " + name
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.qasmEditor.SetWidth(max(msg.Width/3-6, 20))
		m.qasmEditor.SetHeight(max(msg.Height-18, 4))

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusQASM
				cmds = append(cmds, m.qasmEditor.Focus())
			case "ctrl+s":
				if err := os.WriteFile(m.savePath, []byte(m.circuit.ToQASM()), 0o644); err != nil {
					m.statusMsg = fmt.Sprintf("Save error: %v", err)
				} else {
					m.statusMsg = "Saved " + m.savePath
				}
			case "up", "k":
				m.cursorQubit = max(m.cursorQubit-1, 0)
			case "down", "j":
				m.cursorQubit = min(m.cursorQubit+1, max(m.circuit.NumQubits-1, 0))
			case "left", "h":
				if m.cursorStep > 0 {
					m.cursorStep--
					m.simulate()
				}
			case "right", "l":
				if m.cursorStep < m.circuit.MaxSteps-1 {
					m.cursorStep++
					m.simulate()
				}
			case "g", "home":
				m.cursorStep = 0
				m.simulate()
			case "G", "end":
				m.cursorStep = max(m.circuit.MaxSteps-1, 0)
				m.simulate()
			case "[":
				if m.initial > 0 {
					m.initial--
					m.simulate()
				}
			case "]":
				if m.initial < 1<<m.circuit.NumQubits-1 {
					m.initial++
					m.simulate()
				}
			case "e":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				m.menuItem = max(m.menuItem-1, 0)
			case "down", "j":
				m.menuItem = min(m.menuItem+1, len(exampleMenu[m.menuCat].items)-1)
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(exampleMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				m.loadExample(exampleMenu[m.menuCat].items[m.menuItem].name)
				m.focus = focusCircuit
			}

		case focusQASM:
			switch key {
			case "esc", "tab":
				m.focus = focusCircuit
				m.qasmEditor.Blur()
				m.parseQASMInput()
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
				m.parseQASMInput()
			}
		}

	default:
		if m.focus == focusQASM {
			var cmd tea.Cmd
			m.qasmEditor, cmd = m.qasmEditor.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	qasmWidth := m.width / 3
	leftWidth := m.width - qasmWidth - 4
	controlsHeight := 4
	bodyHeight := max(m.height-controlsHeight-4, 12)
	circuitHeight := max(m.circuit.NumQubits*3+8, bodyHeight/2)
	stateHeight := max(bodyHeight-circuitHeight-2, 4)

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderCircuitPanel(leftWidth, circuitHeight),
		m.renderStatePanel(leftWidth, stateHeight),
	)
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, left, m.renderQASMPanel(qasmWidth, bodyHeight))
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, m.renderControlsPanel(m.width-4, controlsHeight-2))

	if m.focus == focusMenu {
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	}
	return frame
}
