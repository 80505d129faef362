// Package debugger implements an interactive single-step TUI over the 8080
// core, in the style of gone/cpu/debugger.go: a bubbletea program that
// renders a page of memory around PC, the register/flag status line, and
// the decoded instruction under the cursor, advancing one instruction per
// keypress.
package debugger

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"gone8080/cpu"
	"gone8080/disasm"
	"gone8080/interp"
)

type model struct {
	state  *cpu.State
	prevPC uint16
	err    error
}

// Run starts the interactive debugger over state, blocking until the user
// quits.
func Run(state *cpu.State) error {
	_, err := tea.NewProgram(model{state: state}).Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			if m.state.ShouldExit {
				return m, nil
			}
			m.prevPC = m.state.PC
			if _, err := interp.Step(m.state); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// renderPage renders 16 bytes of memory starting at start, highlighting the
// byte at PC.
func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	for i := 0; i < 16; i++ {
		addr := start + uint16(i)
		b := m.state.Memory[addr]
		if addr == m.state.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) pageTable() string {
	header := "page | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01x  ", b)
	}
	lines := []string{header}
	base := m.state.PC &^ 0xF
	for i := -2; i <= 2; i++ {
		lines = append(lines, m.renderPage(base+uint16(i*16)))
	}
	return strings.Join(lines, "\n")
}

func (m model) status() string {
	f := m.state.Flags
	var flags string
	for _, set := range []bool{f.Sign, f.Zero, f.AuxCarry, f.Parity, f.Carry, m.state.InterruptsEnabled} {
		if set {
			flags += "/ "
		} else {
			flags += "  "
		}
	}
	return fmt.Sprintf(`
PC: %04x (%04x)  SP: %04x
 A: %02x  BC: %04x  DE: %04x  HL: %04x
S Z A P C I
%s`,
		m.state.PC, m.prevPC, m.state.SP,
		m.state.A, m.state.BC(), m.state.DE(), m.state.HL(),
		flags)
}

func (m model) View() string {
	ins := disasm.One(m.state.Memory[:], m.state.PC)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		ins.Text,
		spew.Sdump(m.state.Flags),
	)
}
