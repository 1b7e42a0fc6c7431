package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fisto/crm-sync/internal/domain"
	"github.com/fisto/crm-sync/internal/formatter"
)

// SimpleFormatter prints id, name, role, status and email on one line.
type SimpleFormatter struct{}

func NewSimpleFormatter() *SimpleFormatter {
	return &SimpleFormatter{}
}

func (f *SimpleFormatter) FormatEmployees(employees []domain.Employee, writer io.Writer) error {
	for _, e := range employees {
		name := e.Name
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		_, err := fmt.Fprintf(writer, "%-10s  %-30s  %-6s  %-8s  %s\n", e.ID, name, e.JobRole, e.WorkingStatus, e.PersonalEmail)
		if err != nil {
			return err
		}
	}
	return nil
}

func (f *SimpleFormatter) FormatGroups(groups domain.GroupResult, writer io.Writer) error {
	return formatGroupsWith(f, groups, writer)
}

// CompactFormatter prints one identifier per line.
type CompactFormatter struct{}

func NewCompactFormatter() *CompactFormatter {
	return &CompactFormatter{}
}

func (f *CompactFormatter) FormatEmployees(employees []domain.Employee, writer io.Writer) error {
	for _, e := range employees {
		if _, err := fmt.Fprintln(writer, e.ID); err != nil {
			return err
		}
	}
	return nil
}

func (f *CompactFormatter) FormatGroups(groups domain.GroupResult, writer io.Writer) error {
	return formatGroupsWith(f, groups, writer)
}

// JSONFormatter prints records using their wire field names.
type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (f *JSONFormatter) FormatEmployees(employees []domain.Employee, writer io.Writer) error {
	if employees == nil {
		employees = []domain.Employee{}
	}
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(employees)
}

type jsonGroup struct {
	Key       string            `json:"key"`
	Name      string            `json:"name"`
	Count     int               `json:"count"`
	Active    int               `json:"active"`
	Employees []domain.Employee `json:"employees"`
}

func (f *JSONFormatter) FormatGroups(groups domain.GroupResult, writer io.Writer) error {
	out := struct {
		Mode   domain.GroupByMode `json:"mode"`
		Total  int                `json:"total"`
		Groups []jsonGroup        `json:"groups"`
	}{Mode: groups.Mode, Total: groups.TotalCount, Groups: []jsonGroup{}}
	for _, g := range groups.Groups {
		out.Groups = append(out.Groups, jsonGroup{g.Key, g.DisplayName, g.Count, g.ActiveCount, g.Employees})
	}
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// TemplateFormatter renders each employee through a {{variable}} template.
type TemplateFormatter struct {
	template string
	engine   formatter.TemplateEngine
}

// NewTemplateFormatter validates template and returns a formatter for it.
func NewTemplateFormatter(template string) (*TemplateFormatter, error) {
	engine := formatter.NewTemplateEngine()
	if _, err := engine.Parse(template); err != nil {
		return nil, err
	}
	return &TemplateFormatter{template: template, engine: engine}, nil
}

func (f *TemplateFormatter) FormatEmployees(employees []domain.Employee, writer io.Writer) error {
	for i := range employees {
		line, err := f.engine.Substitute(f.template, formatter.VariableContext{Employee: &employees[i]})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return err
		}
	}
	return nil
}

func (f *TemplateFormatter) FormatGroups(groups domain.GroupResult, writer io.Writer) error {
	return formatGroupsWith(f, groups, writer)
}
