package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fisto/crm-sync/internal/colors"
	"github.com/fisto/crm-sync/internal/domain"
	"github.com/fisto/crm-sync/internal/errors"
	"github.com/fisto/crm-sync/internal/format"
)

func TestAnsiColorNumber(t *testing.T) {
	assert.Equal(t, "34", ansiColorNumber(colors.Blue))
	assert.Equal(t, "31", ansiColorNumber(colors.Red))
	assert.Equal(t, "", ansiColorNumber("x"))
	assert.Equal(t, "", ansiColorNumber("\033[0m"))
}

func TestFit(t *testing.T) {
	assert.Equal(t, "short", fit("short", 10))
	assert.Equal(t, "abcdefg...", fit("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", fit("abcdef", 2))
	assert.Equal(t, "añ...", fit("añoñoñoñ", 5))
}

func TestFlexibleWidths(t *testing.T) {
	name, email := flexibleWidths(120)
	assert.Equal(t, 120-(idWidth+designationWidth+roleWidth+statusWidth+5*columnGap), name+email)

	name, email = flexibleWidths(10)
	assert.Equal(t, minNameWidth, name)
	assert.Equal(t, minNameWidth, email)
}

func TestRowContainsFields(t *testing.T) {
	row := Row(RowState{
		Employee: domain.Employee{ID: "E1", Name: "Ann Lee", JobRole: domain.RoleIntern, WorkingStatus: domain.StatusActive, PersonalEmail: "ann@x.io"},
		Width:    120,
	})
	for _, want := range []string{"E1", "Ann Lee", "N/A", "intern", "● active", "ann@x.io"} {
		assert.Contains(t, row, want)
	}
	assert.Contains(t, Header(120), "DESIGNATION")
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "○ inactive", StatusLabel(domain.StatusInactive))
	assert.Equal(t, "N/A", StatusLabel(""))
	assert.Equal(t, "odd", StatusLabel("odd"))
}

func TestFooter(t *testing.T) {
	out := Footer(FooterState{
		Filter:  domain.Filter{Search: "ann", JobRole: domain.RoleIntern},
		Visible: 2, Total: 9, Loading: true,
	})
	assert.Contains(t, out, "2/9 role:intern loading")
	assert.Contains(t, out, "search: ann")
	assert.Contains(t, out, "d: delete")
	assert.Contains(t, out, "p: ping")

	assert.Contains(t, Footer(FooterState{Visible: 3, Total: 3, Failed: true}), "3/3 offline")
	assert.NotContains(t, Footer(FooterState{Loading: true, Failed: true}), "offline")

	assert.Contains(t, Footer(FooterState{Confirming: true}), "y: confirm")
	assert.Contains(t, Footer(FooterState{SearchFocused: true, SearchView: "> an"}), "Search: > an")
	assert.Contains(t, Footer(FooterState{Tab: "clients"}), "s: change status")
}

func TestTabs(t *testing.T) {
	out := Tabs([]string{"employees", "clients"}, 1)
	assert.Contains(t, out, "1 employees")
	assert.Contains(t, out, "2 clients")
}

func TestStatusBar(t *testing.T) {
	assert.Contains(t, StatusBar(errors.Message{Text: "boom", Type: errors.MessageTypeError}), "✗ boom")
	assert.Contains(t, StatusBar(errors.Message{Text: "ok", Type: errors.MessageTypeSuccess}), "✓ ok")
	assert.Contains(t, StatusBar(errors.Message{Text: "hm", Type: errors.MessageTypeWarning}), "! hm")
	assert.Contains(t, StatusBar(errors.Message{Text: "fyi", Type: errors.MessageTypeInfo}), "fyi")
}

func TestDetail(t *testing.T) {
	out := Detail([]format.DetailField{{Label: "Name", Value: "Ann"}, {Label: "Employee ID", Value: "E1"}}, 80)
	assert.Contains(t, out, "Ann")
	assert.Contains(t, out, "Employee ID")
	assert.Equal(t, 4, strings.Count(out, "\n")+1)
}

func TestClientRow(t *testing.T) {
	c := domain.Client{CustomerID: "C1", CompanyName: "Acme", CustomerName: "Wile"}
	row := ClientRow(ClientRowState{Client: c, Displayed: domain.ClientOnboard, Pending: true})
	assert.Contains(t, row, "Acme")
	assert.Contains(t, row, "Onboard")
	assert.Contains(t, row, "(pending)")

	row = ClientRow(ClientRowState{Client: c, Displayed: domain.ClientNotInterested})
	assert.Contains(t, row, "Not Interested")
	assert.NotContains(t, row, "pending")
	assert.Contains(t, ClientHeader(), "COMPANY")
}

func TestConfirmAndEmpty(t *testing.T) {
	assert.Contains(t, Confirm("Delete E1?"), "Delete E1? (y/n)")
	assert.Contains(t, Empty("No employees found"), "No employees found")
	assert.Contains(t, Loading(), "Loading")
}

func TestLoadError(t *testing.T) {
	out := LoadError("Network error. Please check your internet connection and try again.")
	assert.Contains(t, out, "Failed to Load Employees")
	assert.Contains(t, out, "Network error.")
	assert.Contains(t, out, "r: try again")
	assert.Contains(t, out, "p: test connection")

	assert.Len(t, strings.Split(LoadError(""), "\n"), 2, "an empty message adds no line")
}
