package main

import (
	"context"

	"github.com/fisto/crm-sync/cmd"
	"github.com/fisto/crm-sync/internal/errors"
	"github.com/spf13/cobra"
)

// NewPingCmd creates the ping command with explicit dependencies.
func NewPingCmd(b backend, h errors.ErrorHandler) *cobra.Command {
	if b == nil {
		panic("NewPingCmd: backend dependency cannot be nil")
	}
	if h == nil {
		panic("NewPingCmd: handler dependency cannot be nil")
	}

	return &cobra.Command{
		Use:   "ping",
		Short: "Test the connection to the CRM backend",
		Long:  `Fetch the employee endpoint once and report whether it answered with a valid response.`,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return Ping(c.Context(), b, h)
		},
	}
}

// Ping checks the backend. The outcome is reported through h.
func Ping(ctx context.Context, b backend, h errors.ErrorHandler) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := b.NewStore(h)
	if err != nil {
		return err
	}
	defer store.Close()
	return cmd.Reported(store.Ping(ctx))
}

// pingCmd represents the ping command
var pingCmd = NewPingCmd(appBackend, cmd.Handler)

func init() {
	cmd.RootCmd.AddCommand(pingCmd)
}
