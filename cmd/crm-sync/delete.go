package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fisto/crm-sync/cmd"
	"github.com/fisto/crm-sync/internal/errors"
	"github.com/spf13/cobra"
)

// DeleteOptions holds the inputs of the delete command.
type DeleteOptions struct {
	ID  string
	Yes bool
	In  io.Reader
	Out io.Writer
}

// NewDeleteCmd creates the delete command with explicit dependencies.
func NewDeleteCmd(b backend, h errors.ErrorHandler) *cobra.Command {
	if b == nil {
		panic("NewDeleteCmd: backend dependency cannot be nil")
	}
	if h == nil {
		panic("NewDeleteCmd: handler dependency cannot be nil")
	}

	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <emp_id>",
		Short: "Delete an employee after confirmation",
		Long: `Delete an employee from the CRM backend.

The employee is looked up first and the deletion must be confirmed unless
--yes is given. The local list is reloaded only after the backend confirms.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return DeleteEmployee(c.Context(), b, h, DeleteOptions{
				ID:  args[0],
				Yes: yes,
				In:  c.InOrStdin(),
				Out: c.OutOrStdout(),
			})
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking for confirmation")
	return deleteCmd
}

// DeleteEmployee confirms and deletes one employee. Backend outcomes are
// reported through h.
func DeleteEmployee(ctx context.Context, b backend, h errors.ErrorHandler, opts DeleteOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	id := strings.TrimSpace(opts.ID)
	store, err := b.NewStore(h)
	if err != nil {
		return err
	}
	defer store.Close()

	if !opts.Yes {
		if _, err := store.Refresh(ctx, false); err != nil {
			return err
		}
		e, err := store.Employee(id)
		if err != nil {
			return err
		}
		ok, err := confirm(opts.In, opts.Out, fmt.Sprintf("Delete employee %s (%s)?", e.ID, e.Name))
		if err != nil {
			return err
		}
		if !ok {
			h.Info("Delete cancelled")
			return nil
		}
	}
	return cmd.Reported(store.Delete(ctx, id))
}

// confirm asks a y/N question. Anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// deleteCmd represents the delete command
var deleteCmd = NewDeleteCmd(appBackend, cmd.Handler)

func init() {
	cmd.RootCmd.AddCommand(deleteCmd)
}
