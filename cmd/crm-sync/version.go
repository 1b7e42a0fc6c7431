package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fisto/crm-sync/cmd"
	"github.com/fisto/crm-sync/internal/version"
	"github.com/spf13/cobra"
)

// versionOutputWriter is the writer used by PrintVersion. Can be changed for testing.
var versionOutputWriter io.Writer = os.Stdout

// PrintVersion prints the version line.
func PrintVersion() {
	fmt.Fprintf(versionOutputWriter, "crm-sync version %s\n", version.String())
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Show the current version of crm-sync.`,
	Args:  cobra.NoArgs,
	Run: func(c *cobra.Command, args []string) {
		PrintVersion()
	},
}

func init() {
	cmd.RootCmd.AddCommand(versionCmd)
}
