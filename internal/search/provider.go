// Package search provides pluggable text matching strategies for the employee
// list. Every Provider also satisfies domain.Matcher.
package search

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fisto/crm-sync/internal/domain"
)

// Field names accepted by WithFields.
const (
	FieldID            = "id"
	FieldName          = "name"
	FieldEmail         = "email"
	FieldOfficeEmail   = "office_email"
	FieldDesignation   = "designation"
	FieldPhone         = "phone"
	FieldOfficeNumber  = "office_number"
	FieldAddress       = "address"
	FieldWorkingStatus = "status"
	FieldJobRole       = "role"
)

// Fields lists every name WithFields understands.
var Fields = []string{
	FieldID, FieldName, FieldEmail, FieldOfficeEmail, FieldDesignation,
	FieldPhone, FieldOfficeNumber, FieldAddress, FieldWorkingStatus, FieldJobRole,
}

// ParseFields normalizes a list of field names and rejects unknown ones.
func ParseFields(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if !slices.Contains(Fields, name) {
			return nil, fmt.Errorf("unknown search field %q (want one of %s)", name, strings.Join(Fields, ", "))
		}
		out = append(out, name)
	}
	return out, nil
}

// Provider matches employees against a query.
type Provider interface {
	Match(e domain.Employee, query string) bool
	Name() string
}

var _ domain.Matcher = Provider(nil)

// Options configures a Provider.
type Options struct {
	CaseInsensitive bool
	Fields          []string
}

// DefaultOptions searches id, name and personal email ignoring case.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: true,
		Fields:          []string{FieldID, FieldName, FieldEmail},
	}
}

// Option modifies Options.
type Option func(*Options)

// WithCaseInsensitive toggles case folding of query and field text.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields restricts matching to the named fields. Unknown names are ignored.
func WithFields(fields ...string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// fieldValue returns the text of a named field.
func fieldValue(e domain.Employee, field string) string {
	switch field {
	case FieldID:
		return e.ID
	case FieldName:
		return e.Name
	case FieldEmail:
		return e.PersonalEmail
	case FieldOfficeEmail:
		return e.OfficeEmail
	case FieldDesignation:
		if e.Designation == "" {
			return ""
		}
		return e.Designation + " " + e.DesignationText()
	case FieldPhone:
		return e.PersonalNumber
	case FieldOfficeNumber:
		return e.OfficeNumber
	case FieldAddress:
		return e.Address
	case FieldWorkingStatus:
		return string(e.WorkingStatus)
	case FieldJobRole:
		return string(e.JobRole)
	default:
		return ""
	}
}

// New returns the provider registered under name: substring, regex or token.
func New(name string, opts ...Option) (Provider, error) {
	switch strings.ToLower(name) {
	case "", "substring":
		return NewSubstringProvider(opts...), nil
	case "regex":
		return NewRegexProvider(opts...), nil
	case "token":
		return NewTokenProvider(opts...), nil
	default:
		return nil, fmt.Errorf("unknown search provider: %s", name)
	}
}
