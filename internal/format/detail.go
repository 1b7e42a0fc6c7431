package format

import (
	"fmt"
	"io"

	"github.com/fisto/crm-sync/internal/domain"
)

// DetailField is one label/value row of the employee detail view.
type DetailField struct {
	Label string
	Value string
}

func orNA(s string) string {
	if s == "" {
		return domain.NotAvailable
	}
	return s
}

// EmployeeDetails lists the fields shown for a single employee. Dates are
// rendered long-form; interns show their internship period instead of a
// join date. Unmodeled backend fields follow in key order.
func EmployeeDetails(e domain.Employee) []DetailField {
	fields := []DetailField{
		{"Employee ID", orNA(e.ID)},
		{"Name", orNA(e.Name)},
		{"Designation", e.DesignationText()},
		{"Job Role", orNA(string(e.JobRole))},
		{"Working Status", orNA(string(e.WorkingStatus))},
		{"Gender", orNA(e.Gender)},
		{"Personal Email", orNA(e.PersonalEmail)},
		{"Personal Number", orNA(e.PersonalNumber)},
		{"Office Email", orNA(e.OfficeEmail)},
		{"Office Number", orNA(e.OfficeNumber)},
		{"Address", orNA(e.Address)},
		{"Date of Birth", domain.FormatDate(e.DateOfBirth)},
	}
	if e.IsIntern() {
		fields = append(fields,
			DetailField{"Start Date", domain.FormatDate(e.StartDate)},
			DetailField{"End Date", domain.FormatDate(e.EndDate)},
			DetailField{"Duration", orNA(e.Duration)},
		)
	} else {
		fields = append(fields, DetailField{"Join Date", domain.FormatDate(e.JoinDate)})
	}
	fields = append(fields, DetailField{"Created", domain.FormatDate(e.CreatedAt)})

	for _, k := range e.ExtraKeys() {
		fields = append(fields, DetailField{k, e.Extra[k]})
	}
	return fields
}

// FormatDetail writes EmployeeDetails as aligned "Label: value" lines.
func FormatDetail(e domain.Employee, writer io.Writer) error {
	fields := EmployeeDetails(e)
	width := 0
	for _, f := range fields {
		if len(f.Label) > width {
			width = len(f.Label)
		}
	}
	for _, f := range fields {
		if _, err := fmt.Fprintf(writer, "%-*s  %s\n", width+1, f.Label+":", f.Value); err != nil {
			return err
		}
	}
	return nil
}

// FormatStats writes snapshot counters followed by per-group counts when the
// result is grouped.
func FormatStats(stats domain.Stats, groups domain.GroupResult, writer io.Writer) error {
	_, err := fmt.Fprintf(writer, "Total:    %d\nActive:   %d\nInactive: %d\nInterns:  %d\n",
		stats.Total, stats.Active, stats.Total-stats.Active, stats.Interns)
	if err != nil {
		return err
	}
	if groups.Mode == "" || groups.Mode == domain.GroupByNone {
		return nil
	}
	if _, err := fmt.Fprintf(writer, "\nBy %s:\n", groups.Mode); err != nil {
		return err
	}
	for _, g := range groups.Groups {
		if _, err := fmt.Fprintf(writer, "  %-24s %4d  (%d active)\n", g.DisplayName, g.Count, g.ActiveCount); err != nil {
			return err
		}
	}
	return nil
}
