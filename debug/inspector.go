// Package debug implements a single-step terminal inspector for the
// SVC16 core, for stepping through a program one instruction at a time
// outside the windowed host.
package debug

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/xyloflake/svc16/vm"
)

// watch names are the memory addresses the inspector prints on every
// step, given via the CLI's --debug flag.
type model struct {
	machine *vm.VM
	watch   []vm.Word
	history int
	err     error
	faulted bool
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			if m.faulted {
				return m, nil
			}
			if err := m.machine.Step(); err != nil {
				m.err = err
				m.faulted = true
				return m, nil
			}
			m.history++
		}
	}
	return m, nil
}

func (m model) instructionLine() string {
	ip := m.machine.ReadIP()
	ins := m.machine.ReadInstruction()
	return fmt.Sprintf("ip=%04x  op=%-2d  a1=%04x a2=%04x a3=%04x",
		ip, ins[0], ins[1], ins[2], ins[3])
}

func (m model) watchTable() string {
	if len(m.watch) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("watch | ")
	for _, addr := range m.watch {
		fmt.Fprintf(&b, "M[%04x]=%04x  ", addr, m.machine.Read(addr))
	}
	return b.String()
}

func (m model) status() string {
	s := fmt.Sprintf("steps: %d\nsync requested: %v", m.history, m.machine.WantsSync())
	if m.faulted {
		s += fmt.Sprintf("\nFAULT: %v", m.err)
	}
	return s
}

func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.instructionLine(),
		m.watchTable(),
		m.status(),
		"",
		spew.Sdump(m.machine.ReadInstruction()),
		"space/j: step   q: quit",
	)
}

// Run starts the interactive single-step inspector over machine,
// printing the live value of each address in watch on every step.
func Run(machine *vm.VM, watch []vm.Word) error {
	_, err := tea.NewProgram(model{machine: machine, watch: watch}).Run()
	return err
}
