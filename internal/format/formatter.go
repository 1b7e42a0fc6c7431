// Package format renders employees, groups and clients for the CLI.
package format

import (
	"fmt"
	"io"

	"github.com/fisto/crm-sync/internal/domain"
)

// Formatter writes employee lists and groups.
type Formatter interface {
	FormatEmployees(employees []domain.Employee, writer io.Writer) error
	FormatGroups(groups domain.GroupResult, writer io.Writer) error
}

// FormatterType selects a Formatter.
type FormatterType string

const (
	// FormatterTypeTable prints aligned columns with headers.
	FormatterTypeTable FormatterType = "table"
	// FormatterTypeSimple prints one line per employee without headers.
	FormatterTypeSimple FormatterType = "simple"
	// FormatterTypeCompact prints only identifiers.
	FormatterTypeCompact FormatterType = "compact"
	// FormatterTypeJSON prints the records as a JSON array.
	FormatterTypeJSON FormatterType = "json"
)

// FormatterTypes lists the accepted --format values.
var FormatterTypes = []FormatterType{FormatterTypeTable, FormatterTypeSimple, FormatterTypeCompact, FormatterTypeJSON}

// ParseFormatterType validates a --format value. Empty means table.
func ParseFormatterType(s string) (FormatterType, error) {
	if s == "" {
		return FormatterTypeTable, nil
	}
	for _, t := range FormatterTypes {
		if FormatterType(s) == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid format %q (expected table, simple, compact or json)", s)
}

// NewFormatter creates a new formatter of the specified type.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeSimple:
		return NewSimpleFormatter()
	case FormatterTypeCompact:
		return NewCompactFormatter()
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		return NewTableFormatter()
	}
}

// formatGroupsWith prints a header per group followed by the group's rows.
func formatGroupsWith(f Formatter, groups domain.GroupResult, writer io.Writer) error {
	for _, group := range groups.Groups {
		if _, err := fmt.Fprintf(writer, "=== %s (%d) ===\n", group.DisplayName, group.Count); err != nil {
			return err
		}
		if err := f.FormatEmployees(group.Employees, writer); err != nil {
			return err
		}
	}
	return nil
}
