package search

import (
	"strings"

	"github.com/fisto/crm-sync/internal/domain"
)

// TokenProvider splits the query on whitespace and requires every token to
// match some configured field (AND logic). Tokens of the form role:<value> and
// status:<value> constrain job role and working status instead of text.
type TokenProvider struct {
	opts Options
}

// NewTokenProvider creates a token provider.
func NewTokenProvider(opts ...Option) Provider {
	return &TokenProvider{opts: applyOptions(opts)}
}

// Match reports whether e satisfies every token in query.
// An unrecognized role: or status: value matches nothing.
func (p *TokenProvider) Match(e domain.Employee, query string) bool {
	tokens := strings.Fields(query)
	for _, token := range tokens {
		if key, value, ok := strings.Cut(token, ":"); ok {
			switch strings.ToLower(key) {
			case "role":
				role, err := domain.ParseJobRole(value)
				if err != nil || e.JobRole != role {
					return false
				}
				continue
			case "status":
				status, err := domain.ParseWorkingStatus(value)
				if err != nil || e.WorkingStatus != status {
					return false
				}
				continue
			}
		}
		if !p.matchText(e, token) {
			return false
		}
	}
	return true
}

func (p *TokenProvider) matchText(e domain.Employee, token string) bool {
	if p.opts.CaseInsensitive {
		token = strings.ToLower(token)
	}
	for _, field := range p.opts.Fields {
		v := fieldValue(e, field)
		if v == "" {
			continue
		}
		if p.opts.CaseInsensitive {
			v = strings.ToLower(v)
		}
		if strings.Contains(v, token) {
			return true
		}
	}
	return false
}

func (p *TokenProvider) Name() string {
	return "token"
}
