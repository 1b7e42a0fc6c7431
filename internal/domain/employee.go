// Package domain holds the employee and client records of the CRM together with
// the pure filtering, sorting and grouping logic applied to them.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// NotAvailable is shown for empty optional fields.
const NotAvailable = "N/A"

// JobRole is the employment category of an employee.
type JobRole string

const (
	RoleOnrole JobRole = "onrole"
	RoleIntern JobRole = "intern"
)

// ParseJobRole normalizes s case-insensitively. "on-roll" and "onroll" are
// accepted spellings of onrole.
func ParseJobRole(s string) (JobRole, error) {
	switch normalizeToken(s) {
	case "onrole", "on-role", "onroll", "on-roll", "on role", "on roll":
		return RoleOnrole, nil
	case "intern":
		return RoleIntern, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidJobRole, s)
	}
}

// IsValid reports whether r is a known role.
func (r JobRole) IsValid() bool {
	return r == RoleOnrole || r == RoleIntern
}

func (r JobRole) String() string {
	return string(r)
}

// WorkingStatus is whether an employee is currently working.
type WorkingStatus string

const (
	StatusActive   WorkingStatus = "active"
	StatusInactive WorkingStatus = "inactive"
)

// ParseWorkingStatus normalizes s case-insensitively.
func ParseWorkingStatus(s string) (WorkingStatus, error) {
	switch normalizeToken(s) {
	case "active":
		return StatusActive, nil
	case "inactive":
		return StatusInactive, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidWorkingStatus, s)
	}
}

// IsValid reports whether s is a known status.
func (s WorkingStatus) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

func (s WorkingStatus) String() string {
	return string(s)
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Employee is one record of the employee directory as served by the backend.
// Keys the backend sends that are not modeled here are kept in Extra.
type Employee struct {
	ID             string
	Name           string
	Designation    string
	JobRole        JobRole
	WorkingStatus  WorkingStatus
	Gender         string
	PersonalEmail  string
	OfficeEmail    string
	PersonalNumber string
	OfficeNumber   string
	Address        string
	DateOfBirth    string
	JoinDate       string
	StartDate      string
	EndDate        string
	Duration       string
	CreatedAt      string
	Extra          map[string]string
}

type employeeField struct {
	key string
	ptr func(e *Employee) *string
}

// employeeFields maps wire keys to struct fields, in wire order.
var employeeFields = []employeeField{
	{"emp_id", func(e *Employee) *string { return &e.ID }},
	{"emp_name", func(e *Employee) *string { return &e.Name }},
	{"designation", func(e *Employee) *string { return &e.Designation }},
	{"job_role", func(e *Employee) *string { return (*string)(&e.JobRole) }},
	{"working_status", func(e *Employee) *string { return (*string)(&e.WorkingStatus) }},
	{"gender", func(e *Employee) *string { return &e.Gender }},
	{"personal_email", func(e *Employee) *string { return &e.PersonalEmail }},
	{"office_email", func(e *Employee) *string { return &e.OfficeEmail }},
	{"personal_number", func(e *Employee) *string { return &e.PersonalNumber }},
	{"office_number", func(e *Employee) *string { return &e.OfficeNumber }},
	{"address", func(e *Employee) *string { return &e.Address }},
	{"date_of_birth", func(e *Employee) *string { return &e.DateOfBirth }},
	{"join_date", func(e *Employee) *string { return &e.JoinDate }},
	{"start_date", func(e *Employee) *string { return &e.StartDate }},
	{"end_date", func(e *Employee) *string { return &e.EndDate }},
	{"duration", func(e *Employee) *string { return &e.Duration }},
	{"created_at", func(e *Employee) *string { return &e.CreatedAt }},
}

// UnmarshalJSON accepts any scalar JSON value for every field and stores it as
// text; null becomes the empty string. Role and status are normalized when
// they are recognized and lowercased otherwise.
func (e *Employee) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	if raw == nil {
		// null element: leave e empty so it is dropped for lacking an id
		*e = Employee{}
		return nil
	}

	var out Employee
	for _, f := range employeeFields {
		v, ok := raw[f.key]
		if !ok {
			continue
		}
		s, ok := scalarText(v)
		if !ok {
			return fmt.Errorf("%w: %s is not a scalar", ErrInvalidRecord, f.key)
		}
		*f.ptr(&out) = s
		delete(raw, f.key)
	}
	for k, v := range raw {
		s, ok := scalarText(v)
		if !ok {
			b, err := json.Marshal(v)
			if err != nil {
				continue
			}
			s = string(b)
		}
		if out.Extra == nil {
			out.Extra = make(map[string]string, len(raw))
		}
		out.Extra[k] = s
	}
	out.ID = strings.TrimSpace(out.ID)
	out.normalize()
	*e = out
	return nil
}

// MarshalJSON writes every modeled field plus Extra as a flat JSON object.
func (e Employee) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, len(employeeFields)+len(e.Extra))
	for k, v := range e.Extra {
		m[k] = v
	}
	for _, f := range employeeFields {
		m[f.key] = *f.ptr(&e)
	}
	return json.Marshal(m)
}

func (e *Employee) normalize() {
	if r, err := ParseJobRole(string(e.JobRole)); err == nil {
		e.JobRole = r
	} else {
		e.JobRole = JobRole(normalizeToken(string(e.JobRole)))
	}
	if s, err := ParseWorkingStatus(string(e.WorkingStatus)); err == nil {
		e.WorkingStatus = s
	} else {
		e.WorkingStatus = WorkingStatus(normalizeToken(string(e.WorkingStatus)))
	}
}

func scalarText(v interface{}) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		if t {
			return "true", true
		}
		return "false", true
	default:
		return "", false
	}
}

// Field returns the value for a wire key, looking at Extra for unmodeled keys.
func (e Employee) Field(key string) (string, bool) {
	for _, f := range employeeFields {
		if f.key == key {
			return *f.ptr(&e), true
		}
	}
	v, ok := e.Extra[key]
	return v, ok
}

// Clone returns a deep copy of e.
func (e Employee) Clone() Employee {
	if e.Extra != nil {
		extra := make(map[string]string, len(e.Extra))
		for k, v := range e.Extra {
			extra[k] = v
		}
		e.Extra = extra
	}
	return e
}

// ExtraKeys returns the Extra keys in sorted order.
func (e Employee) ExtraKeys() []string {
	keys := make([]string, 0, len(e.Extra))
	for k := range e.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsIntern reports whether the employee is on an internship.
func (e Employee) IsIntern() bool {
	return e.JobRole == RoleIntern
}

// IsActive reports whether the employee is currently working.
func (e Employee) IsActive() bool {
	return e.WorkingStatus == StatusActive
}

// DesignationText returns the display label for the employee's designation.
func (e Employee) DesignationText() string {
	return DesignationText(e.Designation)
}

var designationLabels = map[string]string{
	"CEO":                "Chief Executive Officer",
	"MD":                 "Managing Director",
	"SBUHead":            "SBU Head",
	"ProjectHead":        "Project Head",
	"TeamHead":           "Team Head",
	"HR":                 "Human Resource",
	"JuniorDeveloper":    "Junior Developer",
	"Developerintern":    "Developer Intern",
	"UI/UX designer":     "UI/UX Designer",
	"uiuxintern":         "UI/UX Intern",
	"3DArtist":           "3D Artist",
	"3Dintern":           "3D Artist Intern",
	"Admin":              "Admin",
	"Marketing":          "Marketing",
	"Marketingassociate": "Marketing Associate",
}

// DesignationText maps a designation code to its label. Unknown codes are
// returned unchanged and an empty code yields N/A.
func DesignationText(code string) string {
	if label, ok := designationLabels[code]; ok {
		return label
	}
	if code == "" {
		return NotAvailable
	}
	return code
}

// DesignationCodes returns the known designation codes, sorted.
func DesignationCodes() []string {
	codes := make([]string, 0, len(designationLabels))
	for c := range designationLabels {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// DecodeEmployees decodes a JSON array of employee records and keys them by
// identifier. Records without an identifier are returned separately as
// dropped indexes. A repeated identifier replaces the earlier record's values
// but keeps its position.
func DecodeEmployees(data []byte) (employees []Employee, dropped []int, err error) {
	var records []Employee
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil, err
	}
	employees, dropped = Dedupe(records)
	return employees, dropped, nil
}

// Dedupe applies identifier keying to records: missing ids are dropped and
// repeated ids are resolved last-write-wins at the first position.
func Dedupe(records []Employee) (employees []Employee, dropped []int) {
	employees = make([]Employee, 0, len(records))
	index := make(map[string]int, len(records))
	for i, rec := range records {
		if rec.ID == "" {
			dropped = append(dropped, i)
			continue
		}
		if pos, ok := index[rec.ID]; ok {
			employees[pos] = rec
			continue
		}
		index[rec.ID] = len(employees)
		employees = append(employees, rec)
	}
	return employees, dropped
}
