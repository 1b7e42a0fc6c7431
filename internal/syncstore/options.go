package syncstore

import (
	"time"

	"github.com/fisto/crm-sync/internal/domain"
	"github.com/fisto/crm-sync/internal/errors"
	"github.com/fisto/crm-sync/internal/logging"
	"github.com/fisto/crm-sync/internal/metrics"
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for refresh and mutation events.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics records refresh and delete outcomes on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Store) { s.metrics = c }
}

// WithNotifier reports user-facing outcomes of loud operations.
func WithNotifier(h errors.ErrorHandler) Option {
	return func(s *Store) { s.notifier = h }
}

// WithSink sets the initial render sink.
func WithSink(sink RenderSink) Option {
	return func(s *Store) { s.sink = sink }
}

// WithMatcher replaces the default search matcher.
func WithMatcher(m domain.Matcher) Option {
	return func(s *Store) {
		if m != nil {
			s.matcher = m
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}
