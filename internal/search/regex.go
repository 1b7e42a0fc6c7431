package search

import (
	"regexp"
	"sync"

	"github.com/fisto/crm-sync/internal/domain"
)

// maxCachedPatterns bounds the pattern cache; it is reset when full.
const maxCachedPatterns = 64

// compiled is a cache entry. err is set for patterns that do not compile.
type compiled struct {
	re  *regexp.Regexp
	err error
}

// RegexProvider matches when any configured field matches the query as a
// regular expression. Compile results, failures included, are cached.
type RegexProvider struct {
	opts Options

	mu    sync.RWMutex
	cache map[string]compiled
}

// NewRegexProvider creates a regex provider.
func NewRegexProvider(opts ...Option) Provider {
	return &RegexProvider{
		opts:  applyOptions(opts),
		cache: make(map[string]compiled),
	}
}

// Match returns true if any configured field matches query.
// An invalid pattern matches nothing.
func (p *RegexProvider) Match(e domain.Employee, query string) bool {
	if query == "" {
		return true
	}
	re, err := p.compile(query)
	if err != nil {
		return false
	}
	for _, field := range p.opts.Fields {
		if v := fieldValue(e, field); v != "" && re.MatchString(v) {
			return true
		}
	}
	return false
}

func (p *RegexProvider) compile(pattern string) (*regexp.Regexp, error) {
	p.mu.RLock()
	c, ok := p.cache[pattern]
	p.mu.RUnlock()
	if ok {
		return c.re, c.err
	}

	expr := pattern
	if p.opts.CaseInsensitive {
		expr = "(?i)" + pattern
	}
	c.re, c.err = regexp.Compile(expr)

	p.mu.Lock()
	if len(p.cache) >= maxCachedPatterns {
		p.cache = make(map[string]compiled)
	}
	p.cache[pattern] = c
	p.mu.Unlock()
	return c.re, c.err
}

func (p *RegexProvider) Name() string {
	return "regex"
}
