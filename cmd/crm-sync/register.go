package main

import (
	"context"

	"github.com/fisto/crm-sync/cmd"
	"github.com/fisto/crm-sync/internal/domain"
	"github.com/fisto/crm-sync/internal/errors"
	"github.com/spf13/cobra"
)

const registerCommandLong = `Register a new employee.

USAGE:
    crm-sync register --emp-id <id> --name <name> --personal-email <email> [OPTIONS]

Employee id, name and personal email are required and --password must match
--confirm-password. For interns the end date cannot be before the start date;
when --duration is empty it is computed in months from the two dates.
Dates accept YYYY-MM-DD.`

// NewRegisterCmd creates the register command with explicit dependencies.
func NewRegisterCmd(b backend, h errors.ErrorHandler) *cobra.Command {
	if b == nil {
		panic("NewRegisterCmd: backend dependency cannot be nil")
	}
	if h == nil {
		panic("NewRegisterCmd: handler dependency cannot be nil")
	}

	var reg domain.Registration
	var role, status string
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new employee",
		Long:  registerCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			reg.JobRole = domain.JobRole(role)
			reg.WorkingStatus = domain.WorkingStatus(status)
			return RegisterEmployee(c.Context(), b, h, reg)
		},
	}

	f := registerCmd.Flags()
	f.StringVar(&reg.ID, "emp-id", "", "Employee id (required)")
	f.StringVar(&reg.Name, "name", "", "Employee name (required)")
	f.StringVar(&reg.Designation, "designation", "", "Designation code, e.g. SOFT-DEV")
	f.StringVar(&role, "role", string(domain.RoleOnrole), "Job role: onrole, intern")
	f.StringVar(&status, "status", string(domain.StatusActive), "Working status: active, inactive")
	f.StringVar(&reg.Gender, "gender", "", "Gender")
	f.StringVar(&reg.PersonalEmail, "personal-email", "", "Personal email (required)")
	f.StringVar(&reg.OfficeEmail, "office-email", "", "Office email")
	f.StringVar(&reg.PersonalNumber, "personal-number", "", "Personal phone number")
	f.StringVar(&reg.OfficeNumber, "office-number", "", "Office phone number")
	f.StringVar(&reg.Address, "address", "", "Address")
	f.StringVar(&reg.DateOfBirth, "dob", "", "Date of birth")
	f.StringVar(&reg.JoinDate, "join-date", "", "Join date (onrole)")
	f.StringVar(&reg.StartDate, "start-date", "", "Internship start date")
	f.StringVar(&reg.EndDate, "end-date", "", "Internship end date")
	f.StringVar(&reg.Duration, "duration", "", "Internship duration")
	f.StringVar(&reg.Password, "password", "", "Account password")
	f.StringVar(&reg.ConfirmPassword, "confirm-password", "", "Account password again")

	return registerCmd
}

// RegisterEmployee validates reg and submits it. Validation errors are
// returned as is; backend outcomes are reported through h.
func RegisterEmployee(ctx context.Context, b backend, h errors.ErrorHandler, reg domain.Registration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := reg.Validate(); err != nil {
		return err
	}
	store, err := b.NewStore(h)
	if err != nil {
		return err
	}
	defer store.Close()
	return cmd.Reported(store.Register(ctx, reg))
}

// registerCmd represents the register command
var registerCmd = NewRegisterCmd(appBackend, cmd.Handler)

func init() {
	cmd.RootCmd.AddCommand(registerCmd)
}
