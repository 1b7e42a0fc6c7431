package app

import (
	"context"
	"fmt"
	"time"

	"github.com/fisto/crm-sync/internal/clients"
	"github.com/fisto/crm-sync/internal/colors"
	"github.com/fisto/crm-sync/internal/errors"
	"github.com/fisto/crm-sync/internal/logging"
	"github.com/fisto/crm-sync/internal/syncstore"
	"github.com/fisto/crm-sync/internal/tui/state"
)

// Deps are the collaborators of a TUI session.
type Deps struct {
	Store   *syncstore.Store
	Clients *clients.Book
	// Handler must be the notifier the store was built with.
	Handler         *errors.TUIHandler
	RefreshInterval time.Duration
	SearchDebounce  time.Duration
	Logger          logging.Logger
}

// Client runs TUI sessions.
type Client struct {
	runner ProgramRunner
}

// NewClient creates a Client. A nil runner uses DefaultProgramRunner.
func NewClient(runner ProgramRunner) *Client {
	if runner == nil {
		runner = NewDefaultProgramRunner()
	}
	return &Client{runner: runner}
}

// Run builds the model, attaches the store and notifier to the program and
// blocks until the user quits. Auto refresh runs for the whole session.
func (c *Client) Run(ctx context.Context, deps Deps) error {
	if deps.Store == nil {
		return fmt.Errorf("tui: store is required")
	}
	if deps.Handler == nil {
		deps.Handler = errors.NewTUIHandler(nil)
	}
	log := deps.Logger
	if log == nil {
		log = logging.Nop()
	}

	model, err := state.NewModel(state.Options{
		Store:          deps.Store,
		Clients:        deps.Clients,
		Handler:        deps.Handler,
		SearchDebounce: deps.SearchDebounce,
		Context:        ctx,
	})
	if err != nil {
		return err
	}

	stop := deps.Store.AutoRefresh(deps.RefreshInterval)
	defer stop()
	defer func() {
		deps.Store.SetSink(nil)
		deps.Handler.SetCallback(nil)
	}()

	log.Info("tui started", "refresh_interval", deps.RefreshInterval.String())
	err = c.runner.Run(model, func(sender state.Sender) {
		deps.Handler.SetCallback(state.StatusForwarder(sender))
		deps.Store.SetSink(state.NewProgramSink(sender))
	})
	if err != nil {
		colors.Error(fmt.Sprintf("Error running TUI: %v", err))
		return err
	}
	log.Info("tui exited")
	return nil
}
