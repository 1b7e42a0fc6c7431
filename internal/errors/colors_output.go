package errors

import "github.com/fisto/crm-sync/internal/colors"

// ColorsOutput sends CLIHandler output through the colors package.
type ColorsOutput struct{}

var _ ColorOutput = ColorsOutput{}

func (ColorsOutput) Error(msgs ...string)   { colors.Error(msgs...) }
func (ColorsOutput) Warning(msgs ...string) { colors.Warning(msgs...) }
func (ColorsOutput) Info(msgs ...string)    { colors.Info(msgs...) }
func (ColorsOutput) Success(msgs ...string) { colors.Success(msgs...) }

// NewDefaultCLIHandler returns a CLIHandler printing through the colors package.
func NewDefaultCLIHandler() *CLIHandler {
	return NewCLIHandler(ColorsOutput{})
}
