package search

import (
	"strings"

	"github.com/fisto/crm-sync/internal/domain"
)

// SubstringProvider matches when any configured field contains the query.
type SubstringProvider struct {
	opts Options
}

// NewSubstringProvider creates a substring provider.
func NewSubstringProvider(opts ...Option) Provider {
	return &SubstringProvider{opts: applyOptions(opts)}
}

// Match returns true if any configured field contains query. An empty query matches.
func (p *SubstringProvider) Match(e domain.Employee, query string) bool {
	if query == "" {
		return true
	}
	if p.opts.CaseInsensitive {
		query = strings.ToLower(query)
	}
	for _, field := range p.opts.Fields {
		v := fieldValue(e, field)
		if v == "" {
			continue
		}
		if p.opts.CaseInsensitive {
			v = strings.ToLower(v)
		}
		if strings.Contains(v, query) {
			return true
		}
	}
	return false
}

func (p *SubstringProvider) Name() string {
	return "substring"
}
