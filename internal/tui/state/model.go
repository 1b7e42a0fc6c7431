// Package state holds the bubbletea model of the terminal UI.
package state

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fisto/crm-sync/internal/clients"
	"github.com/fisto/crm-sync/internal/domain"
	"github.com/fisto/crm-sync/internal/errors"
	"github.com/fisto/crm-sync/internal/syncstore"
)

const (
	defaultViewportWidth  = 80
	defaultViewportHeight = 24
	// tabs, status bar, table header, input/prompt line, footer
	chromeLines = 5

	DefaultSearchDebounce = 500 * time.Millisecond
	DefaultMessageTTL     = 5 * time.Second
)

// Tab selects the active screen.
type Tab int

const (
	TabEmployees Tab = iota
	TabClients
)

var tabNames = []string{"employees", "clients"}

func (t Tab) String() string {
	return tabNames[t]
}

// Store is the part of *syncstore.Store the UI drives.
type Store interface {
	Refresh(ctx context.Context, showLoading bool) (syncstore.Snapshot, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	SetSearch(query string)
	SetJobRole(role domain.JobRole)
	SetStatus(status domain.WorkingStatus)
	View() syncstore.View
	Employee(id string) (domain.Employee, error)
}

var _ Store = (*syncstore.Store)(nil)

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDelete
	confirmClientStatus
)

// Options configures NewModel.
type Options struct {
	Store   Store
	Clients *clients.Book
	// Handler collects notifier messages shown in the status bar. The store
	// should report to the same handler.
	Handler        *errors.TUIHandler
	SearchDebounce time.Duration
	MessageTTL     time.Duration
	Context        context.Context
}

// Model is the bubbletea model with an employees tab and a clients tab.
type Model struct {
	store   Store
	book    *clients.Book
	handler *errors.TUIHandler
	ctx     context.Context
	keys    keyMap
	ui      *UIState

	tab    Tab
	view   syncstore.View
	filter domain.Filter

	search    textinput.Model
	searchSeq int
	debounce  time.Duration
	ttl       time.Duration

	detail       *domain.Employee
	confirm      confirmKind
	deleteID     string
	clientCursor int
}

// NewModel creates the model. The initial view is taken from the store; Init
// starts a loud refresh.
func NewModel(opts Options) (*Model, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("tui: store is required")
	}
	if opts.Clients == nil {
		opts.Clients = clients.NewBook()
	}
	if opts.Handler == nil {
		opts.Handler = errors.NewTUIHandler(nil)
	}
	if opts.SearchDebounce <= 0 {
		opts.SearchDebounce = DefaultSearchDebounce
	}
	if opts.MessageTTL <= 0 {
		opts.MessageTTL = DefaultMessageTTL
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "id, name or email"
	search.CharLimit = 100

	view := opts.Store.View()
	m := &Model{
		store:    opts.Store,
		book:     opts.Clients,
		handler:  opts.Handler,
		ctx:      opts.Context,
		keys:     defaultKeyMap(),
		ui:       NewUIState(),
		view:     view,
		filter:   view.Filter,
		search:   search,
		debounce: opts.SearchDebounce,
		ttl:      opts.MessageTTL,
	}
	m.search.SetValue(view.Filter.Search)
	m.syncViewport()
	return m, nil
}

// Init starts the first loud refresh.
func (m *Model) Init() tea.Cmd {
	return m.refreshCmd(true)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui.SetSize(msg.Width, msg.Height)
		m.syncViewport()
		return m, nil
	case ViewMsg:
		m.applyView(msg.View)
		return m, nil
	case StatusMsg:
		return m, tea.Tick(m.ttl, func(time.Time) tea.Msg { return clearStatusMsg{} })
	case clearStatusMsg:
		return m, nil
	case searchDebounceMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		query := msg.query
		return m, m.storeCmd(func(s Store) { s.SetSearch(query) })
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	if m.search.Focused() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// refreshCmd runs Refresh off the event loop. Failures reach the user
// through the store's notifier.
func (m *Model) refreshCmd(loud bool) tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		_, _ = store.Refresh(ctx, loud)
		return ViewMsg{View: store.View()}
	}
}

// storeCmd runs fn off the event loop and answers with the resulting view.
func (m *Model) storeCmd(fn func(Store)) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		fn(store)
		return ViewMsg{View: store.View()}
	}
}

func (m *Model) applyView(v syncstore.View) {
	if v.Seq < m.view.Seq {
		return
	}
	m.view = v
	m.ui.AdjustCursorBounds(len(v.Visible))
	if m.detail != nil {
		if e, err := m.store.Employee(m.detail.ID); err == nil {
			m.detail = &e
		} else {
			m.detail = nil
		}
	}
	m.syncViewport()
}

// Selected returns the employee under the cursor.
func (m *Model) Selected() (domain.Employee, bool) {
	c := m.ui.GetCursor()
	if c < 0 || c >= len(m.view.Visible) {
		return domain.Employee{}, false
	}
	return m.view.Visible[c], true
}

// CurrentView returns the last view applied to the model.
func (m *Model) CurrentView() syncstore.View {
	return m.view
}

// ActiveTab returns the tab being shown.
func (m *Model) ActiveTab() Tab {
	return m.tab
}

func nextRole(r domain.JobRole) domain.JobRole {
	switch r {
	case "":
		return domain.RoleOnrole
	case domain.RoleOnrole:
		return domain.RoleIntern
	default:
		return ""
	}
}

func nextStatus(s domain.WorkingStatus) domain.WorkingStatus {
	switch s {
	case "":
		return domain.StatusActive
	case domain.StatusActive:
		return domain.StatusInactive
	default:
		return ""
	}
}
