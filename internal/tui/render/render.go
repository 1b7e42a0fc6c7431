// Package render draws the pieces of the terminal UI as strings.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/fisto/crm-sync/internal/colors"
	"github.com/fisto/crm-sync/internal/domain"
	"github.com/fisto/crm-sync/internal/errors"
	"github.com/fisto/crm-sync/internal/format"
)

const (
	idWidth          = 10
	roleWidth        = 7
	statusWidth      = 10
	designationWidth = 20
	minNameWidth     = 12
	columnGap        = 2
	defaultWidth     = 80
)

var (
	accent    = lipgloss.Color(ansiColorNumber(colors.Blue))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	selStyle  = lipgloss.NewStyle().Background(accent).Foreground(lipgloss.Color("0"))
)

// RowState defines the inputs needed to render an employee row.
type RowState struct {
	Employee domain.Employee
	Width    int
	Selected bool
}

// FooterState defines the inputs needed to render footer help text.
type FooterState struct {
	Tab           string
	SearchFocused bool
	SearchView    string
	Filter        domain.Filter
	Visible       int
	Total         int
	Loading       bool
	Failed        bool
	Confirming    bool
}

// Tabs renders the tab bar with the active tab highlighted.
func Tabs(names []string, active int) string {
	parts := make([]string, len(names))
	for i, name := range names {
		label := fmt.Sprintf(" %d %s ", i+1, name)
		if i == active {
			parts[i] = selStyle.Bold(true).Render(label)
		} else {
			parts[i] = dimStyle.Render(label)
		}
	}
	return strings.Join(parts, " ")
}

// Header renders the employee table header.
func Header(width int) string {
	return headStyle.Render(employeeLine(width, "ID", "NAME", "DESIGNATION", "ROLE", "STATUS", "EMAIL"))
}

// Row renders a single employee row.
func Row(state RowState) string {
	e := state.Employee
	line := employeeLine(state.Width, e.ID, e.Name, e.DesignationText(), string(e.JobRole), StatusLabel(e.WorkingStatus), e.PersonalEmail)
	if state.Selected {
		return selStyle.Render(line)
	}
	return line
}

func employeeLine(width int, id, name, designation, role, status, email string) string {
	nameWidth, emailWidth := flexibleWidths(width)
	return fmt.Sprintf("%-*s  %-*s  %-*s  %-*s  %-*s  %s",
		idWidth, fit(id, idWidth),
		nameWidth, fit(name, nameWidth),
		designationWidth, fit(designation, designationWidth),
		roleWidth, fit(role, roleWidth),
		statusWidth, fit(status, statusWidth),
		fit(email, emailWidth),
	)
}

// flexibleWidths splits what is left after the fixed columns between name and email.
func flexibleWidths(width int) (name, email int) {
	if width <= 0 {
		width = defaultWidth
	}
	fixed := idWidth + designationWidth + roleWidth + statusWidth + 5*columnGap
	rest := width - fixed
	name = rest / 2
	if name < minNameWidth {
		name = minNameWidth
	}
	email = rest - name
	if email < minNameWidth {
		email = minNameWidth
	}
	return name, email
}

// StatusLabel renders a working status with a colored bullet.
func StatusLabel(s domain.WorkingStatus) string {
	switch s {
	case domain.StatusActive:
		return "● active"
	case domain.StatusInactive:
		return "○ inactive"
	case "":
		return domain.NotAvailable
	default:
		return string(s)
	}
}

// Empty renders the placeholder shown instead of an empty table.
func Empty(message string) string {
	return dimStyle.Render(message)
}

// Loading renders the loading indicator.
func Loading() string {
	return dimStyle.Render("Loading employees...")
}

// LoadError renders the state shown in place of the table after a failed load.
func LoadError(message string) string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ansiColorNumber(colors.Red))).Render("✗ Failed to Load Employees")
	lines := []string{title}
	if message != "" {
		lines = append(lines, message)
	}
	lines = append(lines, dimStyle.Render("r: try again  |  p: test connection"))
	return strings.Join(lines, "\n")
}

// Footer renders the filter summary and key help.
func Footer(state FooterState) string {
	summary := fmt.Sprintf("%d/%d", state.Visible, state.Total)
	if state.Filter.JobRole != "" {
		summary += " role:" + string(state.Filter.JobRole)
	}
	if state.Filter.Status != "" {
		summary += " status:" + string(state.Filter.Status)
	}
	if state.Loading {
		summary += " loading"
	} else if state.Failed {
		summary += " offline"
	}

	var help []string
	switch {
	case state.Confirming:
		help = append(help, "y: confirm", "n/ESC: cancel")
	case state.SearchFocused:
		help = append(help, "ESC/Enter: done", "Search: "+state.SearchView)
	case state.Tab == "clients":
		help = append(help, "j/k: move", "s: change status", "tab: employees", "q: quit")
	default:
		if state.Filter.Search != "" {
			help = append(help, "search: "+state.Filter.Search)
		}
		help = append(help, "j/k: move", "/: search", "o: role", "a: status", "enter: details", "d: delete", "r: refresh", "p: ping", "tab: clients", "q: quit")
	}
	return dimStyle.Render(summary + "  |  " + strings.Join(help, "  |  "))
}

// StatusBar renders a notifier message with a style per message type.
func StatusBar(msg errors.Message) string {
	style := lipgloss.NewStyle().Bold(true)
	prefix := ""
	switch msg.Type {
	case errors.MessageTypeError:
		style = style.Foreground(lipgloss.Color(ansiColorNumber(colors.Red)))
		prefix = "✗ "
	case errors.MessageTypeWarning:
		style = style.Foreground(lipgloss.Color("33"))
		prefix = "! "
	case errors.MessageTypeSuccess:
		style = style.Foreground(lipgloss.Color(ansiColorNumber(colors.Green)))
		prefix = "✓ "
	default:
		style = style.Foreground(accent)
	}
	return style.Render(prefix + msg.Text)
}

// Detail renders the detail fields of one employee inside a border.
func Detail(fields []format.DetailField, width int) string {
	labelWidth := 0
	for _, f := range fields {
		if len(f.Label) > labelWidth {
			labelWidth = len(f.Label)
		}
	}
	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = headStyle.Render(fmt.Sprintf("%-*s", labelWidth, f.Label)) + "  " + f.Value
	}
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1)
	if width > 4 {
		box = box.MaxWidth(width)
	}
	return box.Render(strings.Join(lines, "\n"))
}

// Confirm renders a yes/no prompt.
func Confirm(prompt string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")).Render(prompt + " (y/n)")
}

func fit(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
// Example: "\033[0;34m" -> "34"
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
