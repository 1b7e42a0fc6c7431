package main

import (
	"fmt"
	"io"

	"github.com/fisto/crm-sync/cmd"
	"github.com/fisto/crm-sync/internal/clients"
	"github.com/fisto/crm-sync/internal/domain"
	"github.com/fisto/crm-sync/internal/format"
	"github.com/spf13/cobra"
)

// ClientsOptions holds the flags of the clients command.
type ClientsOptions struct {
	File   string
	Search string
	Counts bool
}

// NewClientsCmd creates the clients command with explicit dependencies.
func NewClientsCmd(b backend) *cobra.Command {
	if b == nil {
		panic("NewClientsCmd: backend dependency cannot be nil")
	}

	var opts ClientsOptions
	clientsCmd := &cobra.Command{
		Use:   "clients",
		Short: "List clients from the seed file",
		Long: `List clients from a TOML seed file.

The file holds a [[clients]] array. Without --file the clients_file
configuration key is used. Status changes are staged and confirmed in the tui.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			book, err := b.LoadClients(opts.File)
			if err != nil {
				return err
			}
			return PrintClients(book, opts, c.OutOrStdout())
		},
	}
	clientsCmd.Flags().StringVar(&opts.File, "file", "", "Clients seed file (TOML)")
	clientsCmd.Flags().StringVar(&opts.Search, "search", "", "Match customer id, company or customer name")
	clientsCmd.Flags().BoolVar(&opts.Counts, "counts", false, "Print the number of clients per status")
	return clientsCmd
}

// PrintClients prints the clients of book that match opts.Search, or the
// per-status counts.
func PrintClients(book *clients.Book, opts ClientsOptions, w io.Writer) error {
	if opts.Counts {
		counts := book.StatusCounts()
		for _, st := range domain.ClientStatuses {
			if _, err := fmt.Fprintf(w, "%-16s %d\n", st.Label(), counts[st]); err != nil {
				return err
			}
		}
		return nil
	}

	all := book.List()
	indexes := book.Search(opts.Search)
	matched := make([]domain.Client, len(indexes))
	for i, idx := range indexes {
		matched[i] = all[idx]
	}
	return format.FormatClients(matched, func(i int) domain.ClientStatus {
		return book.Displayed(indexes[i])
	}, w)
}

// clientsCmd represents the clients command
var clientsCmd = NewClientsCmd(appBackend)

func init() {
	cmd.RootCmd.AddCommand(clientsCmd)
}
