package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/fisto/crm-sync/internal/domain"
)

const (
	customerWidth = 10
	companyWidth  = 24
	contactWidth  = 18
	badgeWidth    = 16
)

var statusColors = map[domain.ClientStatus]string{
	domain.ClientLead:          "39",
	domain.ClientDrop:          "160",
	domain.ClientOnboard:       "34",
	domain.ClientQuotation:     "214",
	domain.ClientInProgress:    "99",
	domain.ClientNotInterested: "244",
	domain.ClientNone:          "241",
}

// ClientRowState defines the inputs needed to render a client row.
type ClientRowState struct {
	Client    domain.Client
	Displayed domain.ClientStatus
	// Pending marks a row whose displayed status is staged, not committed.
	Pending  bool
	Selected bool
}

// ClientHeader renders the client table header.
func ClientHeader() string {
	return headStyle.Render(fmt.Sprintf("%-*s  %-*s  %-*s  %s",
		customerWidth, "CUSTOMER", companyWidth, "COMPANY", contactWidth, "CONTACT", "STATUS"))
}

// ClientRow renders a single client row.
func ClientRow(state ClientRowState) string {
	c := state.Client
	line := fmt.Sprintf("%-*s  %-*s  %-*s  ",
		customerWidth, fit(c.CustomerID, customerWidth),
		companyWidth, fit(c.CompanyName, companyWidth),
		contactWidth, fit(c.CustomerName, contactWidth),
	)
	if state.Selected {
		line = selStyle.Render(line)
	}
	badge := StatusBadge(state.Displayed)
	if state.Pending {
		badge += dimStyle.Render(" (pending)")
	}
	return line + badge
}

// StatusBadge renders a client status in its pipeline color.
func StatusBadge(s domain.ClientStatus) string {
	color, ok := statusColors[s]
	if !ok {
		color = "241"
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true).
		Width(badgeWidth).
		Render(s.Label())
}
