// Package formatter renders {{variable}} templates for employee rows and
// snapshot summaries.
package formatter

import (
	"fmt"
	"regexp"
	"strings"
)

// TemplateEngine provides template parsing and variable substitution.
type TemplateEngine interface {
	// Parse returns the variables found in the template.
	Parse(template string) ([]string, error)

	// Substitute replaces variables in the template with values from the context.
	Substitute(template string, ctx VariableContext) (string, error)
}

type templateEngine struct {
	variablePattern *regexp.Regexp
	resolver        VariableResolver
}

// NewTemplateEngine creates a new template engine instance.
func NewTemplateEngine() TemplateEngine {
	return &templateEngine{
		variablePattern: regexp.MustCompile(`\{\{([a-z0-9_-]+)\}\}`),
		resolver:        NewVariableResolver(),
	}
}

// Parse identifies all variables in a template string using {{variable-name}} syntax.
// Returns a list of variable names found, without duplicates.
func (te *templateEngine) Parse(template string) ([]string, error) {
	if err := ValidateTemplate(template); err != nil {
		return nil, err
	}
	matches := te.variablePattern.FindAllStringSubmatch(template, -1)
	seen := make(map[string]bool)
	variables := []string{}
	for _, match := range matches {
		if !seen[match[1]] {
			variables = append(variables, match[1])
			seen[match[1]] = true
		}
	}
	return variables, nil
}

// Substitute replaces all variables in the template with values from the context.
func (te *templateEngine) Substitute(template string, ctx VariableContext) (string, error) {
	if err := ValidateTemplate(template); err != nil {
		return "", err
	}
	var resolveErr error
	result := te.variablePattern.ReplaceAllStringFunc(template, func(m string) string {
		if resolveErr != nil {
			return m
		}
		name := te.variablePattern.FindStringSubmatch(m)[1]
		value, err := te.resolver.Resolve(name, ctx)
		if err != nil {
			resolveErr = err
			return m
		}
		return value
	})
	if resolveErr != nil {
		return "", resolveErr
	}
	return result, nil
}

// ValidateTemplate checks that variable delimiters are balanced.
func ValidateTemplate(template string) error {
	openCount := strings.Count(template, "{{")
	closeCount := strings.Count(template, "}}")
	if openCount != closeCount {
		return fmt.Errorf("mismatched variable delimiters: %d opens, %d closes", openCount, closeCount)
	}
	return nil
}
