// Package cmd holds the root command of crm-sync. Subcommands live in
// cmd/crm-sync and register themselves on RootCmd.
package cmd

import (
	"fmt"
	"strings"

	"github.com/fisto/crm-sync/internal/colors"
	"github.com/fisto/crm-sync/internal/config"
	"github.com/fisto/crm-sync/internal/errors"
	"github.com/fisto/crm-sync/internal/logging"
	"github.com/fisto/crm-sync/internal/version"
	"github.com/spf13/cobra"
)

// Handler prints user-facing outcomes of store operations in the CLI.
var Handler = errors.NewDefaultCLIHandler()

var (
	debugFlag bool
	quietFlag bool
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:           "crm-sync",
	Short:         "Keep a local, filterable copy of the CRM employee directory.",
	Long:          `Keep a local, filterable copy of the CRM employee directory.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
}

// ReportedError marks an error whose message was already shown to the user,
// so main only sets the exit code.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }
func (e *ReportedError) Unwrap() error { return e.Err }

// Reported wraps err in a ReportedError. A nil err stays nil.
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return &ReportedError{Err: err}
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func setup(cmd *cobra.Command) error {
	config.Load()
	debug := debugFlag || config.GetBool("debug", false)
	quiet := quietFlag || config.GetBool("quiet", false)
	colors.SetDebug(debug)
	Handler.SetQuiet(quiet)
	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("logging disabled: %v", err))
	}
	logging.Debug("command started", "command", cmd.Name(), "debug", debug, "quiet", quiet)
	return nil
}

func init() {
	// Set version for use in help output
	RootCmd.Version = version.String()

	// Hide the completion command
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != RootCmd {
			fmt.Fprint(cmd.OutOrStdout(), cmd.Long+"\n\n"+cmd.UsageString())
			return
		}
		printHelpText(cmd)
	})

	RootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Print debug messages")
	RootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Only print errors and warnings")
}

// commandOrder is the order of commands in the help text.
var commandOrder = []string{
	"list",
	"show",
	"stats",
	"delete",
	"register",
	"ping",
	"clients",
	"tui",
	"version",
}

func printHelpText(cmd *cobra.Command) {
	var cmdLines []string
	for _, name := range commandOrder {
		var found *cobra.Command
		for _, c := range cmd.Commands() {
			if c.Name() == name {
				found = c
				break
			}
		}
		if found == nil {
			continue
		}
		cmdLines = append(cmdLines, fmt.Sprintf("    %-16s %s", found.Name(), found.Short))
	}

	helpText := fmt.Sprintf(`crm-sync v%s

Keep a local, filterable copy of the CRM employee directory.

USAGE:
    crm-sync [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    --debug         Print debug messages
    -q, --quiet     Only print errors and warnings
    -h, --help      Show help message

CONFIGURATION:
    %s<key> environment variables override <config_dir>/config.toml
`, version.String(), strings.Join(cmdLines, "\n"), config.EnvPrefix)
	fmt.Fprint(cmd.OutOrStdout(), helpText)
}
