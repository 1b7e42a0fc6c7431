package state

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.confirm != confirmNone {
		return m.handleConfirmation(msg)
	}
	if m.search.Focused() {
		return m.handleSearchInput(msg)
	}
	if m.detail != nil {
		if key.Matches(msg, m.keys.Back, m.keys.Open, m.keys.Quit) {
			m.detail = nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % Tab(len(tabNames))
		return m, nil
	}
	if m.tab == TabClients {
		return m.handleClientKey(msg)
	}
	return m.handleEmployeeKey(msg)
}

func (m *Model) handleEmployeeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.ui.MoveCursorUp()
		m.syncViewport()
	case key.Matches(msg, m.keys.Down):
		m.ui.MoveCursorDown(len(m.view.Visible))
		m.syncViewport()
	case key.Matches(msg, m.keys.Search):
		m.search.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Back):
		if m.search.Value() == "" {
			return m, nil
		}
		m.search.SetValue("")
		m.searchSeq++
		m.filter.Search = ""
		return m, m.storeCmd(func(s Store) { s.SetSearch("") })
	case key.Matches(msg, m.keys.Role):
		role := nextRole(m.filter.JobRole)
		m.filter.JobRole = role
		return m, m.storeCmd(func(s Store) { s.SetJobRole(role) })
	case key.Matches(msg, m.keys.Status):
		status := nextStatus(m.filter.Status)
		m.filter.Status = status
		return m, m.storeCmd(func(s Store) { s.SetStatus(status) })
	case key.Matches(msg, m.keys.Open):
		if sel, ok := m.Selected(); ok {
			if e, err := m.store.Employee(sel.ID); err == nil {
				m.detail = &e
			}
		}
	case key.Matches(msg, m.keys.Delete):
		if sel, ok := m.Selected(); ok {
			m.confirm = confirmDelete
			m.deleteID = sel.ID
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshCmd(true)
	case key.Matches(msg, m.keys.Ping):
		ctx := m.ctx
		return m, m.storeCmd(func(s Store) { _ = s.Ping(ctx) })
	}
	return m, nil
}

// handleSearchInput feeds keys to the search box. Each edit schedules a
// debounced search; only the latest one reaches the store.
func (m *Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter {
		m.search.Blur()
		return m, nil
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	query := m.search.Value()
	if query == before {
		return m, cmd
	}
	m.searchSeq++
	m.filter.Search = query
	seq := m.searchSeq
	debounce := tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq, query: query}
	})
	return m, tea.Batch(cmd, debounce)
}

func (m *Model) handleClientKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.book.Len()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.clientCursor > 0 {
			m.clientCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.clientCursor < n-1 {
			m.clientCursor++
		}
	case key.Matches(msg, m.keys.StageStatus):
		m.stageNextStatus()
	}
	return m, nil
}

func (m *Model) stageNextStatus() {
	if m.clientCursor >= m.book.Len() {
		return
	}
	next := m.book.Displayed(m.clientCursor).Next()
	if err := m.book.Stage(m.clientCursor, next); err != nil {
		m.handler.Error(err.Error())
		return
	}
	if _, ok := m.book.Pending(); ok {
		m.confirm = confirmClientStatus
	} else {
		m.confirm = confirmNone
	}
}

func (m *Model) handleConfirmation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kind := m.confirm
	switch {
	case key.Matches(msg, m.keys.Yes):
		m.confirm = confirmNone
		return m, m.executeConfirmed(kind)
	case key.Matches(msg, m.keys.No):
		m.confirm = confirmNone
		if kind == confirmClientStatus {
			m.book.Cancel()
		}
	case kind == confirmClientStatus && key.Matches(msg, m.keys.StageStatus):
		m.stageNextStatus()
	}
	return m, nil
}

func (m *Model) executeConfirmed(kind confirmKind) tea.Cmd {
	switch kind {
	case confirmDelete:
		id, ctx := m.deleteID, m.ctx
		m.deleteID = ""
		return m.storeCmd(func(s Store) { _ = s.Delete(ctx, id) })
	case confirmClientStatus:
		c, err := m.book.Confirm()
		if err != nil {
			m.handler.Error(err.Error())
			return nil
		}
		m.handler.Success(fmt.Sprintf("%s moved to %s", c.CompanyName, c.Status.Label()))
	}
	return nil
}
