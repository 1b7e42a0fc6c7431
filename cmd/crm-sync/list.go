package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fisto/crm-sync/cmd"
	"github.com/fisto/crm-sync/internal/domain"
	"github.com/fisto/crm-sync/internal/format"
	"github.com/fisto/crm-sync/internal/search"
	"github.com/fisto/crm-sync/internal/syncstore"
	"github.com/spf13/cobra"
)

const listCommandLong = `List employees with filters and formats.

USAGE:
    crm-sync list [OPTIONS]

OPTIONS:
    --search <text>      Match id, name or personal email (case-insensitive substring)
    --regex              Treat --search as a regular expression
    --provider <name>    Search provider: substring (default), regex, token
    --fields <list>      Fields --search looks at, e.g. name,office_email,phone
    --case-sensitive     Do not ignore case in --search
    --role <role>        Filter by job role: onrole, intern, all
    --status <status>    Filter by working status: active, inactive, all
    --sort <field>       Sort by: id, name, designation, role, status, created
    --order <order>      Sort order: asc (default), desc
    --group-by <field>   Group by: role, status, designation
    --format <format>    Output format: table, simple, compact, json (default table_format)
    --template <tmpl>    Render each employee with a {{emp_id}} style template
    -h, --help           Show this help

Without --sort employees keep the order the backend sent them in.`

// ListOptions holds the flags of the list command.
type ListOptions struct {
	Search        string
	Regex         bool
	Provider      string
	Fields        []string
	CaseSensitive bool
	Role          string
	Status        string
	Sort          string
	Order         string
	GroupBy       string
	Format        string
	Template      string
}

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(b backend) *cobra.Command {
	if b == nil {
		panic("NewListCmd: backend dependency cannot be nil")
	}

	var opts ListOptions
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List employees with filters and formats",
		Long:  listCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if opts.Format == "" && opts.Template == "" {
				opts.Format = b.Settings().TableFormat
			}
			return PrintList(c.Context(), b, opts, c.OutOrStdout())
		},
	}

	listCmd.Flags().StringVar(&opts.Search, "search", "", "Match id, name or personal email")
	listCmd.Flags().BoolVar(&opts.Regex, "regex", false, "Treat --search as a regular expression")
	listCmd.Flags().StringVar(&opts.Provider, "provider", "substring", "Search provider: substring, regex, token")
	listCmd.Flags().StringSliceVar(&opts.Fields, "fields", nil, "Fields to search: "+strings.Join(search.Fields, ", "))
	listCmd.Flags().BoolVar(&opts.CaseSensitive, "case-sensitive", false, "Do not ignore case in --search")
	listCmd.Flags().StringVar(&opts.Role, "role", "", "Filter by job role: onrole, intern, all")
	listCmd.Flags().StringVar(&opts.Status, "status", "", "Filter by working status: active, inactive, all")
	listCmd.Flags().StringVar(&opts.Sort, "sort", "", "Sort by: id, name, designation, role, status, created")
	listCmd.Flags().StringVar(&opts.Order, "order", "asc", "Sort order: asc, desc")
	listCmd.Flags().StringVar(&opts.GroupBy, "group-by", "", "Group by: role, status, designation")
	listCmd.Flags().StringVar(&opts.Format, "format", "", "Output format: table, simple, compact, json")
	listCmd.Flags().StringVar(&opts.Template, "template", "", "Render each employee with a template")

	return listCmd
}

// listPlan is the validated form of ListOptions.
type listPlan struct {
	filter    domain.Filter
	matcher   search.Provider
	sort      domain.SortOptions
	groupBy   domain.GroupByMode
	formatter format.Formatter
	json      bool
}

func planList(opts ListOptions) (listPlan, error) {
	var plan listPlan
	filter, err := domain.FilterOptions{Search: opts.Search, JobRole: opts.Role, Status: opts.Status}.ToFilter()
	if err != nil {
		return plan, err
	}
	plan.filter = filter

	provider := opts.Provider
	if opts.Regex {
		provider = "regex"
	}
	var searchOpts []search.Option
	if len(opts.Fields) > 0 {
		fields, err := search.ParseFields(opts.Fields)
		if err != nil {
			return plan, err
		}
		if len(fields) > 0 {
			searchOpts = append(searchOpts, search.WithFields(fields...))
		}
	}
	if opts.CaseSensitive {
		searchOpts = append(searchOpts, search.WithCaseInsensitive(false))
	}
	if plan.matcher, err = search.New(provider, searchOpts...); err != nil {
		return plan, err
	}

	if opts.Sort != "" {
		field, err := domain.ParseSortByField(opts.Sort)
		if err != nil {
			return plan, err
		}
		order, err := domain.ParseSortOrder(opts.Order)
		if err != nil {
			return plan, err
		}
		plan.sort = domain.SortOptions{Field: field, Order: order}
	}

	if plan.groupBy, err = domain.ParseGroupByMode(opts.GroupBy); err != nil {
		return plan, err
	}

	if opts.Template != "" {
		if opts.Format != "" {
			return plan, fmt.Errorf("--template and --format cannot be combined")
		}
		if plan.formatter, err = format.NewTemplateFormatter(opts.Template); err != nil {
			return plan, err
		}
		return plan, nil
	}
	ft, err := format.ParseFormatterType(opts.Format)
	if err != nil {
		return plan, err
	}
	plan.formatter = format.NewFormatter(ft)
	plan.json = ft == format.FormatterTypeJSON
	return plan, nil
}

// listPrinter is the render sink of the list command. It keeps the latest
// view and prints it once the refresh has finished.
type listPrinter struct {
	mu   sync.Mutex
	view syncstore.View
	plan listPlan
}

var _ syncstore.RenderSink = (*listPrinter)(nil)

func (p *listPrinter) Render(v syncstore.View) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v.Loading {
		return
	}
	p.view = v
}

func (p *listPrinter) Flush(w io.Writer) error {
	p.mu.Lock()
	v := p.view
	p.mu.Unlock()

	employees := domain.SortEmployees(v.Visible, p.plan.sort)
	if p.plan.groupBy != domain.GroupByNone {
		return p.plan.formatter.FormatGroups(domain.GroupEmployees(employees, p.plan.groupBy), w)
	}
	if len(employees) == 0 && !p.plan.json {
		_, err := fmt.Fprintln(w, v.Message())
		return err
	}
	return p.plan.formatter.FormatEmployees(employees, w)
}

// PrintList fetches the employee list and prints the filtered view.
func PrintList(ctx context.Context, b backend, opts ListOptions, w io.Writer) error {
	plan, err := planList(opts)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := b.NewStore(nil)
	if err != nil {
		return err
	}
	defer store.Close()

	store.SetMatcher(plan.matcher)
	store.SetFilter(plan.filter)

	printer := &listPrinter{plan: plan}
	if _, err := store.Refresh(ctx, false); err != nil {
		return err
	}
	store.SetSink(printer)
	return printer.Flush(w)
}

// listCmd represents the list command
var listCmd = NewListCmd(appBackend)

func init() {
	cmd.RootCmd.AddCommand(listCmd)
}
