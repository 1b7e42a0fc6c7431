package state

import (
	"fmt"
	"strings"

	"github.com/fisto/crm-sync/internal/crmapi"
	"github.com/fisto/crm-sync/internal/format"
	"github.com/fisto/crm-sync/internal/tui/render"
)

// View renders the TUI.
func (m *Model) View() string {
	var s strings.Builder
	s.WriteString(render.Tabs(tabNames, int(m.tab)))
	s.WriteString("\n")
	if msg, ok := m.handler.Active(m.ttl); ok {
		s.WriteString(render.StatusBar(msg))
	}
	s.WriteString("\n")

	if m.tab == TabClients {
		m.renderClients(&s)
	} else {
		m.renderEmployees(&s)
	}

	s.WriteString("\n")
	s.WriteString(render.Footer(render.FooterState{
		Tab:           m.tab.String(),
		SearchFocused: m.search.Focused(),
		SearchView:    m.search.Value(),
		Filter:        m.view.Filter,
		Visible:       len(m.view.Visible),
		Total:         m.view.Total,
		Loading:       m.view.Loading,
		Failed:        m.view.Failed(),
		Confirming:    m.confirm != confirmNone,
	}))
	return s.String()
}

func (m *Model) renderEmployees(s *strings.Builder) {
	if m.detail != nil {
		s.WriteString(render.Detail(format.EmployeeDetails(*m.detail), m.ui.GetWidth()))
		return
	}
	s.WriteString(render.Header(m.ui.GetWidth()))
	s.WriteString("\n")
	s.WriteString(m.ui.GetViewport().View())
	s.WriteString("\n")
	switch {
	case m.confirm == confirmDelete:
		prompt := fmt.Sprintf("Delete employee %s?", m.deleteID)
		if e, err := m.store.Employee(m.deleteID); err == nil {
			prompt = fmt.Sprintf("Delete employee %s (%s)?", e.ID, e.Name)
		}
		s.WriteString(render.Confirm(prompt))
	case m.search.Focused() || m.search.Value() != "":
		s.WriteString(m.search.View())
	}
}

func (m *Model) renderClients(s *strings.Builder) {
	s.WriteString(render.ClientHeader())
	s.WriteString("\n")
	list := m.book.List()
	pending, hasPending := m.book.Pending()
	if len(list) == 0 {
		s.WriteString(render.Empty("No clients"))
	}
	for i, c := range list {
		if i > 0 {
			s.WriteString("\n")
		}
		s.WriteString(render.ClientRow(render.ClientRowState{
			Client:    c,
			Displayed: m.book.Displayed(i),
			Pending:   hasPending && pending.Index == i,
			Selected:  i == m.clientCursor,
		}))
	}
	s.WriteString("\n")
	if m.confirm == confirmClientStatus && hasPending {
		c := list[pending.Index]
		s.WriteString(render.Confirm(fmt.Sprintf("Change %s from %s to %s?", c.CompanyName, c.Status.Label(), pending.Status.Label())))
	}
}

// syncViewport rewrites the table rows and keeps the cursor on screen.
func (m *Model) syncViewport() {
	var content strings.Builder
	v := m.view
	switch {
	case len(v.Visible) == 0 && v.Loading:
		content.WriteString(render.Loading())
	case v.Failed() && !v.Loading:
		content.WriteString(render.LoadError(crmapi.UserMessage(v.Err)))
	case len(v.Visible) == 0:
		content.WriteString(render.Empty(v.Message()))
	default:
		cursor := m.ui.GetCursor()
		for i, e := range v.Visible {
			if i > 0 {
				content.WriteString("\n")
			}
			content.WriteString(render.Row(render.RowState{Employee: e, Width: m.ui.GetWidth(), Selected: i == cursor}))
		}
	}
	m.ui.GetViewport().SetContent(content.String())
	m.ui.EnsureCursorVisible()
}
