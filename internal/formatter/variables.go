package formatter

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fisto/crm-sync/internal/domain"
)

// VariableContext contains the data a template can reference.
type VariableContext struct {
	Stats domain.Stats
	// Visible is the number of records left after filtering.
	Visible   int
	UpdatedAt time.Time

	// Employee is set when rendering a single row. Its wire field names
	// (emp_id, emp_name, ...) become variables.
	Employee *domain.Employee
}

// VariableResolver resolves template variables to their values.
type VariableResolver interface {
	Resolve(varName string, ctx VariableContext) (string, error)
}

type variableResolver struct{}

// NewVariableResolver creates a new variable resolver instance.
func NewVariableResolver() VariableResolver {
	return &variableResolver{}
}

// Variables lists the summary variables in documentation order.
var Variables = []string{
	"total-count", "active-count", "inactive-count", "intern-count",
	"onrole-count", "visible-count", "updated-at", "designation-label",
}

// Resolve returns the string value for a variable from the context.
func (vr *variableResolver) Resolve(varName string, ctx VariableContext) (string, error) {
	switch varName {
	case "total-count":
		return strconv.Itoa(ctx.Stats.Total), nil
	case "active-count":
		return strconv.Itoa(ctx.Stats.Active), nil
	case "inactive-count":
		return strconv.Itoa(ctx.Stats.Total - ctx.Stats.Active), nil
	case "intern-count":
		return strconv.Itoa(ctx.Stats.Interns), nil
	case "onrole-count":
		return strconv.Itoa(ctx.Stats.Total - ctx.Stats.Interns), nil
	case "visible-count":
		return strconv.Itoa(ctx.Visible), nil
	case "updated-at":
		if ctx.UpdatedAt.IsZero() {
			return "never", nil
		}
		return ctx.UpdatedAt.Format(time.RFC3339), nil
	case "designation-label":
		if ctx.Employee == nil {
			return "", fmt.Errorf("variable %s needs an employee", varName)
		}
		return ctx.Employee.DesignationText(), nil
	}

	if ctx.Employee != nil {
		if v, ok := ctx.Employee.Field(varName); ok {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown variable: %s", varName)
}
