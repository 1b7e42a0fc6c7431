// Package app wires the sync store, the client book and the bubbletea
// program together for the tui command.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fisto/crm-sync/internal/tui/state"
)

// ProgramRunner runs a bubbletea program. onStart receives the program's
// Sender before the event loop begins so background producers can be attached.
type ProgramRunner interface {
	Run(model tea.Model, onStart func(state.Sender)) error
}

// DefaultProgramRunner wraps tea.NewProgram with the alternate screen.
type DefaultProgramRunner struct{}

// NewDefaultProgramRunner creates a new DefaultProgramRunner.
func NewDefaultProgramRunner() *DefaultProgramRunner {
	return &DefaultProgramRunner{}
}

// Run starts the program and blocks until it exits. onStart runs on its own
// goroutine since Send blocks until the event loop is reading.
func (r *DefaultProgramRunner) Run(model tea.Model, onStart func(state.Sender)) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	if onStart != nil {
		go onStart(p)
	}
	_, err := p.Run()
	return err
}
