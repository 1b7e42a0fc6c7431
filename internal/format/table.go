package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/fisto/crm-sync/internal/colors"
	"github.com/fisto/crm-sync/internal/domain"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	ShowHeaders bool
	HeaderColor string
	// ColumnWidths defines the width for each column.
	ColumnWidths map[string]int
	// ColumnAlignments defines the alignment for each column (left, right, center).
	ColumnAlignments map[string]string
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
		ColumnWidths: map[string]int{
			"ID":          10,
			"Name":        24,
			"Designation": 22,
			"Role":        7,
			"Status":      8,
			"Email":       28,
		},
		ColumnAlignments: map[string]string{
			"ID": "left",
		},
	}
}

// TableColumn represents a column in a table.
type TableColumn struct {
	Name      string
	Width     int
	Alignment string
	// Extractor returns the raw cell value.
	Extractor func(domain.Employee) string
}

// TableFormatter prints employees as an aligned table.
type TableFormatter struct {
	config  *TableConfig
	columns []TableColumn
}

// NewTableFormatter creates a TableFormatter with the default columns.
func NewTableFormatter() *TableFormatter {
	config := DefaultTableConfig()
	col := func(name string, fn func(domain.Employee) string) TableColumn {
		return TableColumn{Name: name, Width: config.ColumnWidths[name], Alignment: config.ColumnAlignments[name], Extractor: fn}
	}
	return &TableFormatter{
		config: config,
		columns: []TableColumn{
			col("ID", func(e domain.Employee) string { return e.ID }),
			col("Name", func(e domain.Employee) string { return e.Name }),
			col("Designation", func(e domain.Employee) string { return e.DesignationText() }),
			col("Role", func(e domain.Employee) string { return string(e.JobRole) }),
			col("Status", func(e domain.Employee) string { return string(e.WorkingStatus) }),
			col("Email", func(e domain.Employee) string { return e.PersonalEmail }),
		},
	}
}

// WithColumns adds custom columns to the formatter.
func (f *TableFormatter) WithColumns(columns ...TableColumn) *TableFormatter {
	f.columns = append(f.columns, columns...)
	return f
}

// WithoutHeaders disables the header and separator lines.
func (f *TableFormatter) WithoutHeaders() *TableFormatter {
	f.config.ShowHeaders = false
	return f
}

func (f *TableFormatter) FormatEmployees(employees []domain.Employee, writer io.Writer) error {
	if len(employees) == 0 {
		return nil
	}
	if f.config.ShowHeaders {
		if err := f.writeLine(writer, true, func(c TableColumn) string { return formatString(c.Name, c.Width, "left") }); err != nil {
			return err
		}
		if err := f.writeLine(writer, true, func(c TableColumn) string { return strings.Repeat("-", c.Width) }); err != nil {
			return err
		}
	}
	for _, e := range employees {
		if err := f.writeLine(writer, false, func(c TableColumn) string { return truncateString(c.Extractor(e), c.Width, c.Alignment) }); err != nil {
			return err
		}
	}
	return nil
}

func (f *TableFormatter) FormatGroups(groups domain.GroupResult, writer io.Writer) error {
	return formatGroupsWith(f, groups, writer)
}

func (f *TableFormatter) writeLine(writer io.Writer, header bool, cell func(TableColumn) string) error {
	cells := make([]string, len(f.columns))
	for i, c := range f.columns {
		cells[i] = cell(c)
	}
	line := strings.TrimRight(strings.Join(cells, "  "), " ")
	if header {
		line = f.config.HeaderColor + line + colors.Reset
	}
	_, err := fmt.Fprintln(writer, line)
	return err
}

// formatString pads s to width with the given alignment, cutting it if longer.
func formatString(s string, width int, alignment string) string {
	if len(s) >= width {
		return s[:width]
	}
	switch alignment {
	case "right":
		return strings.Repeat(" ", width-len(s)) + s
	case "center":
		left := (width - len(s)) / 2
		right := width - len(s) - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", width-len(s))
	}
}

// truncateString pads s to width, replacing the tail with "..." when it does not fit.
func truncateString(s string, width int, alignment string) string {
	if len(s) <= width {
		return formatString(s, width, alignment)
	}
	if width < 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
