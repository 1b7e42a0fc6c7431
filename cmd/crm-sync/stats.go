package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fisto/crm-sync/cmd"
	"github.com/fisto/crm-sync/internal/domain"
	"github.com/fisto/crm-sync/internal/format"
	"github.com/fisto/crm-sync/internal/formatter"
	"github.com/spf13/cobra"
)

const statsCommandLong = `Show employee counters.

USAGE:
    crm-sync stats [OPTIONS]

OPTIONS:
    --group-by <field>   Add per-group counts: role, status, designation
    --format <preset>    Print one line from a preset or a {{variable}} template
    --presets            List the available presets
    -h, --help           Show this help

VARIABLES:
    {{total-count}} {{active-count}} {{inactive-count}} {{intern-count}}
    {{onrole-count}} {{visible-count}} {{updated-at}}`

// StatsOptions holds the flags of the stats command.
type StatsOptions struct {
	GroupBy string
	Format  string
	Presets bool
}

// NewStatsCmd creates the stats command with explicit dependencies.
func NewStatsCmd(b backend) *cobra.Command {
	if b == nil {
		panic("NewStatsCmd: backend dependency cannot be nil")
	}

	var opts StatsOptions
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show employee counters",
		Long:  statsCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			if opts.Presets {
				return PrintPresets(formatter.NewPresetRegistry(), c.OutOrStdout())
			}
			return PrintStats(c.Context(), b, opts, c.OutOrStdout())
		},
	}
	statsCmd.Flags().StringVar(&opts.GroupBy, "group-by", "", "Add per-group counts: role, status, designation")
	statsCmd.Flags().StringVar(&opts.Format, "format", "", "Preset name or {{variable}} template")
	statsCmd.Flags().BoolVar(&opts.Presets, "presets", false, "List the available presets")
	return statsCmd
}

// PrintStats fetches the employee list and prints its counters.
func PrintStats(ctx context.Context, b backend, opts StatsOptions, w io.Writer) error {
	mode, err := domain.ParseGroupByMode(opts.GroupBy)
	if err != nil {
		return err
	}
	template := ""
	if opts.Format != "" {
		template = formatter.Resolve(formatter.NewPresetRegistry(), opts.Format)
		if err := formatter.ValidateTemplate(template); err != nil {
			return err
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := b.NewStore(nil)
	if err != nil {
		return err
	}
	defer store.Close()

	snap, err := store.Refresh(ctx, false)
	if err != nil {
		return err
	}
	stats := domain.ComputeStats(snap.Employees)

	if template != "" {
		line, err := formatter.NewTemplateEngine().Substitute(template, formatter.VariableContext{
			Stats:     stats,
			Visible:   len(store.View().Visible),
			UpdatedAt: snap.UpdatedAt,
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, line)
		return err
	}
	return format.FormatStats(stats, domain.GroupEmployees(snap.Employees, mode), w)
}

// PrintPresets lists the stats presets.
func PrintPresets(registry formatter.PresetRegistry, w io.Writer) error {
	for _, p := range registry.List() {
		if _, err := fmt.Fprintf(w, "%-12s %s\n             %s\n", p.Name, p.Description, p.Template); err != nil {
			return err
		}
	}
	return nil
}

// statsCmd represents the stats command
var statsCmd = NewStatsCmd(appBackend)

func init() {
	cmd.RootCmd.AddCommand(statsCmd)
}
