package format

import (
	"fmt"
	"io"

	"github.com/fisto/crm-sync/internal/domain"
)

// FormatClients prints the client book. status returns the value to show
// for row i, which may be a staged change.
func FormatClients(clients []domain.Client, status func(i int) domain.ClientStatus, writer io.Writer) error {
	if len(clients) == 0 {
		_, err := fmt.Fprintln(writer, "No clients")
		return err
	}
	header := fmt.Sprintf("%-10s  %-24s  %-20s  %-14s  %s", "Customer", "Company", "Contact", "Phone", "Status")
	if _, err := fmt.Fprintln(writer, header); err != nil {
		return err
	}
	for i, c := range clients {
		st := c.Status
		if status != nil {
			st = status(i)
		}
		_, err := fmt.Fprintf(writer, "%-10s  %-24s  %-20s  %-14s  %s\n",
			truncateString(c.CustomerID, 10, "left"),
			truncateString(c.CompanyName, 24, "left"),
			truncateString(c.CustomerName, 20, "left"),
			truncateString(c.PhoneNo, 14, "left"),
			st.Label())
		if err != nil {
			return err
		}
	}
	return nil
}
