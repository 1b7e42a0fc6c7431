package main

import (
	stderrors "errors"
	"os"

	"github.com/fisto/crm-sync/cmd"
	"github.com/fisto/crm-sync/internal/colors"
	"github.com/fisto/crm-sync/internal/crmapi"
	"github.com/fisto/crm-sync/internal/logging"
)

func main() {
	os.Exit(run(cmd.Execute))
}

// run executes the CLI and maps its error to an exit code. Errors the store
// already reported are not printed twice.
func run(execute func() error) int {
	defer func() {
		_ = logging.ShutdownGlobal()
	}()

	err := execute()
	if err == nil {
		logging.Debug("command completed")
		return 0
	}
	logging.Error("command failed", "error", err.Error())
	var reported *cmd.ReportedError
	if !stderrors.As(err, &reported) {
		colors.Error(crmapi.UserMessage(err))
	}
	return 1
}
