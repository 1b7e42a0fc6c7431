package main

import (
	"context"
	"net/http"
	"time"

	"github.com/fisto/crm-sync/cmd"
	"github.com/fisto/crm-sync/internal/errors"
	"github.com/fisto/crm-sync/internal/logging"
	"github.com/fisto/crm-sync/internal/metrics"
	"github.com/fisto/crm-sync/internal/tui/app"
	"github.com/spf13/cobra"
)

const tuiCommandLong = `Browse employees and clients in a terminal UI.

USAGE:
    crm-sync tui [OPTIONS]

OPTIONS:
    --clients-file <path>   Clients seed file (TOML), defaults to clients_file
    --metrics-addr <addr>   Serve /metrics and /healthz on addr, e.g. :9102
    -h, --help              Show this help

KEYS:
    tab        Switch between employees and clients
    j/k        Move the cursor
    /          Search (id, name, personal email)
    o / a      Cycle the job role / working status filter
    enter      Show employee details
    d          Delete the selected employee
    s          Stage the next status of the selected client
    y / n      Confirm or cancel
    r          Refresh now
    p          Test the backend connection
    q          Quit`

// TUIOptions holds the flags of the tui command.
type TUIOptions struct {
	ClientsFile string
	MetricsAddr string
}

// listenAndServe starts the metrics server. Can be changed for testing.
var listenAndServe = func(s *http.Server) error { return s.ListenAndServe() }

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(b backend, runner app.ProgramRunner) *cobra.Command {
	if b == nil {
		panic("NewTUICmd: backend dependency cannot be nil")
	}

	var opts TUIOptions
	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse employees and clients in a terminal UI",
		Long:  tuiCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return RunTUI(c.Context(), b, runner, opts)
		},
	}
	tuiCmd.Flags().StringVar(&opts.ClientsFile, "clients-file", "", "Clients seed file (TOML)")
	tuiCmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "Serve /metrics and /healthz on this address")
	return tuiCmd
}

// RunTUI runs one TUI session. The metrics server, when enabled, lives as
// long as the session.
func RunTUI(ctx context.Context, b backend, runner app.ProgramRunner, opts TUIOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	settings := b.Settings()
	log := logging.With("component", "tui")

	book, err := b.LoadClients(opts.ClientsFile)
	if err != nil {
		return err
	}
	handler := errors.NewTUIHandler(nil)
	store, err := b.NewStore(handler)
	if err != nil {
		return err
	}
	defer store.Close()

	if opts.MetricsAddr != "" {
		health := func() (int, time.Time) {
			snap := store.Snapshot()
			return snap.Len(), snap.UpdatedAt
		}
		server := metrics.StartServer(opts.MetricsAddr, b.Metrics(), health, listenAndServe, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
		log.Info("metrics server started", "addr", opts.MetricsAddr)
	}

	return app.NewClient(runner).Run(ctx, app.Deps{
		Store:           store,
		Clients:         book,
		Handler:         handler,
		RefreshInterval: settings.RefreshInterval,
		SearchDebounce:  settings.SearchDebounce,
		Logger:          log,
	})
}

// tuiCmd represents the tui command
var tuiCmd = NewTUICmd(appBackend, nil)

func init() {
	cmd.RootCmd.AddCommand(tuiCmd)
}
