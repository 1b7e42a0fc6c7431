package domain

import (
	"fmt"
	"strings"
)

// Registration is the data submitted to register a new employee.
type Registration struct {
	Employee
	Password        string
	ConfirmPassword string
}

// FormField is one name/value pair of the registration form.
type FormField struct {
	Name  string
	Value string
}

// Validate checks the form and fills the derived internship duration.
// Employee id, name and personal email are required and the password must
// match its confirmation.
func (r *Registration) Validate() error {
	if r.Password != r.ConfirmPassword {
		return ErrPasswordMismatch
	}
	required := []struct {
		name, value string
	}{
		{"employee id", r.ID},
		{"employee name", r.Name},
		{"personal email", r.PersonalEmail},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}

	if r.JobRole != "" {
		role, err := ParseJobRole(string(r.JobRole))
		if err != nil {
			return err
		}
		r.JobRole = role
	}
	if r.WorkingStatus != "" {
		status, err := ParseWorkingStatus(string(r.WorkingStatus))
		if err != nil {
			return err
		}
		r.WorkingStatus = status
	}

	if r.JobRole == RoleIntern && r.StartDate != "" && r.EndDate != "" {
		months, err := InternshipMonths(r.StartDate, r.EndDate)
		if err != nil {
			return err
		}
		if r.Duration == "" {
			r.Duration = DurationText(months)
		}
	}
	return nil
}

// FormFields returns the non-empty fields to submit, in wire order.
// Intern-only dates are omitted for onrole employees and join date for interns.
func (r Registration) FormFields() []FormField {
	fields := make([]FormField, 0, len(employeeFields)+1)
	for _, f := range employeeFields {
		switch f.key {
		case "created_at":
			continue
		case "join_date":
			if r.JobRole == RoleIntern {
				continue
			}
		case "start_date", "end_date", "duration":
			if r.JobRole == RoleOnrole {
				continue
			}
		}
		if v := *f.ptr(&r.Employee); v != "" {
			fields = append(fields, FormField{Name: f.key, Value: v})
		}
	}
	if r.Password != "" {
		fields = append(fields, FormField{Name: "password", Value: r.Password})
	}
	return fields
}
