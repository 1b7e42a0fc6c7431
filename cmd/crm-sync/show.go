package main

import (
	"context"
	"io"

	"github.com/fisto/crm-sync/cmd"
	"github.com/fisto/crm-sync/internal/domain"
	"github.com/fisto/crm-sync/internal/format"
	"github.com/spf13/cobra"
)

// NewShowCmd creates the show command with explicit dependencies.
func NewShowCmd(b backend) *cobra.Command {
	if b == nil {
		panic("NewShowCmd: backend dependency cannot be nil")
	}

	var asJSON bool
	showCmd := &cobra.Command{
		Use:   "show <emp_id>",
		Short: "Show every field of one employee",
		Long: `Show every field of one employee.

Dates are printed long-form. Interns show their internship period instead of a
join date. Fields the backend sends that crm-sync does not know are listed last.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return ShowEmployee(c.Context(), b, args[0], asJSON, c.OutOrStdout())
		},
	}
	showCmd.Flags().BoolVar(&asJSON, "json", false, "Print the record as JSON")
	return showCmd
}

// ShowEmployee fetches the employee list and prints the employee with id.
func ShowEmployee(ctx context.Context, b backend, id string, asJSON bool, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := b.NewStore(nil)
	if err != nil {
		return err
	}
	defer store.Close()

	if _, err := store.Refresh(ctx, false); err != nil {
		return err
	}
	e, err := store.Employee(id)
	if err != nil {
		return err
	}
	if asJSON {
		return format.NewJSONFormatter().FormatEmployees([]domain.Employee{e}, w)
	}
	return format.FormatDetail(e, w)
}

// showCmd represents the show command
var showCmd = NewShowCmd(appBackend)

func init() {
	cmd.RootCmd.AddCommand(showCmd)
}
