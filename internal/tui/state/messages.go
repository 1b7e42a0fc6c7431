package state

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fisto/crm-sync/internal/errors"
	"github.com/fisto/crm-sync/internal/syncstore"
)

// ViewMsg carries a recomputed view from the store.
type ViewMsg struct {
	View syncstore.View
}

// StatusMsg is sent when the notifier records a new message.
type StatusMsg struct {
	Message errors.Message
}

type clearStatusMsg struct{}

type searchDebounceMsg struct {
	seq   int
	query string
}

// Sender is the part of *tea.Program used to push messages from other goroutines.
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramSink forwards store views into a running program.
type ProgramSink struct {
	sender Sender
}

var _ syncstore.RenderSink = (*ProgramSink)(nil)

// NewProgramSink returns a RenderSink that sends a ViewMsg per view.
func NewProgramSink(sender Sender) *ProgramSink {
	return &ProgramSink{sender: sender}
}

// Render sends v to the program.
func (s *ProgramSink) Render(v syncstore.View) {
	s.sender.Send(ViewMsg{View: v})
}

// StatusForwarder returns a TUIHandler callback that sends a StatusMsg. The
// send happens on its own goroutine because the handler is also called from
// inside Update, where a blocking Send would never be received.
func StatusForwarder(sender Sender) func(errors.Message) {
	return func(msg errors.Message) {
		go sender.Send(StatusMsg{Message: msg})
	}
}
