// Package syncstore holds the client-side employee snapshot. It refreshes the
// snapshot from the CRM backend, applies the current filter and pushes every
// recomputed view to a RenderSink.
package syncstore

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fisto/crm-sync/internal/crmapi"
	"github.com/fisto/crm-sync/internal/domain"
	"github.com/fisto/crm-sync/internal/errors"
	"github.com/fisto/crm-sync/internal/logging"
	"github.com/fisto/crm-sync/internal/metrics"
)

// Refresh results recorded in metrics besides the crmapi error kinds.
const (
	ResultOK    = "ok"
	ResultStale = "stale"
)

// Store owns the employee snapshot and the filter state.
type Store struct {
	api crmapi.EmployeeService

	mu       sync.Mutex
	snapshot Snapshot
	filter   domain.Filter
	matcher  domain.Matcher
	issued   uint64 // last sequence number handed to a refresh
	loading  int
	viewSeq  uint64
	lastErr  error

	sinkMu       sync.Mutex
	sink         RenderSink
	lastRendered uint64

	notifier errors.ErrorHandler
	log      logging.Logger
	metrics  *metrics.Collector
	now      func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Store backed by api. The store starts with an empty snapshot;
// call Refresh to load it.
func New(api crmapi.EmployeeService, opts ...Option) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		api:     api,
		matcher: domain.DefaultMatcher,
		log:     logging.Nop(),
		now:     time.Now,
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// bind derives a context that is also cancelled by Close.
func (s *Store) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// Refresh fetches the employee list and, on success, replaces the snapshot and
// re-renders. On failure the snapshot is left as it was, the error is a
// *crmapi.SyncError and the sink sees a view carrying it until the next
// successful refresh. When showLoading is set the sink sees a loading view
// first and the notifier is told about the outcome.
//
// Overlapping refreshes are allowed. A response is applied only if no newer
// refresh has already been applied.
func (s *Store) Refresh(ctx context.Context, showLoading bool) (Snapshot, error) {
	ctx, cancel := s.bind(ctx)
	defer cancel()

	s.mu.Lock()
	s.issued++
	seq := s.issued
	if showLoading {
		s.loading++
	}
	s.mu.Unlock()
	if showLoading {
		s.recompute()
	}

	start := s.now()
	result, err := s.api.FetchEmployees(ctx)
	took := s.now().Sub(start)

	s.mu.Lock()
	if showLoading {
		s.loading--
	}
	if err != nil {
		// a cancelled fetch or one overtaken by a newer success says nothing
		// about the backend
		failed := ctx.Err() == nil && seq > s.snapshot.Seq
		if failed {
			s.lastErr = err
		}
		current := s.snapshot
		s.mu.Unlock()

		s.metrics.RecordRefresh(crmapi.KindOf(err).String(), took)
		s.log.Warn("refresh failed", "seq", seq, "kind", crmapi.KindOf(err).String(), "error", err.Error())
		if failed || showLoading {
			s.recompute()
		}
		if showLoading {
			s.notify(func(n errors.ErrorHandler) { n.Error("Failed to load employees: " + crmapi.UserMessage(err)) })
		}
		return current.clone(), err
	}
	if seq < s.snapshot.Seq {
		current := s.snapshot
		s.mu.Unlock()

		s.metrics.RecordRefresh(ResultStale, took)
		s.log.Debug("discarding stale refresh", "seq", seq, "applied", current.Seq)
		if showLoading {
			s.recompute()
		}
		return current.clone(), nil
	}
	s.snapshot = Snapshot{Employees: result.Employees, Seq: seq, UpdatedAt: s.now()}
	s.lastErr = nil
	applied := s.snapshot
	s.mu.Unlock()

	s.metrics.RecordRefresh(ResultOK, took)
	s.metrics.SetSnapshot(applied.Len(), applied.UpdatedAt)
	s.log.Info("snapshot applied", "seq", seq, "employees", applied.Len(), "dropped", result.Dropped, "attempts", result.Attempts)
	s.recompute()
	if showLoading {
		s.notify(func(n errors.ErrorHandler) { n.Success(fmt.Sprintf("Loaded %d employees", applied.Len())) })
	}
	return applied.clone(), nil
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.clone()
}

// View returns the current visible set without notifying the sink. Its Seq
// equals that of the most recently computed view.
func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.viewLocked()
	v.Seq = s.viewSeq
	return v
}

func (s *Store) viewLocked() View {
	v := ComputeVisibleWith(s.snapshot, s.filter, s.matcher)
	v.Loading = s.loading > 0
	v.Err = s.lastErr
	return v
}

// recompute derives the view and hands it to the sink. A view computed before
// one that was already rendered is dropped so the sink never goes backwards.
func (s *Store) recompute() {
	s.mu.Lock()
	s.viewSeq++
	seq := s.viewSeq
	v := s.viewLocked()
	v.Seq = seq
	s.mu.Unlock()

	s.sinkMu.Lock()
	defer s.sinkMu.Unlock()
	if s.sink == nil || seq <= s.lastRendered {
		return
	}
	s.lastRendered = seq
	s.sink.Render(v)
}

// SetSink replaces the render sink and renders the current view to it.
func (s *Store) SetSink(sink RenderSink) {
	s.sinkMu.Lock()
	s.sink = sink
	s.sinkMu.Unlock()
	s.recompute()
}

// Filter returns the current filter.
func (s *Store) Filter() domain.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *Store) updateFilter(fn func(f *domain.Filter)) {
	s.mu.Lock()
	fn(&s.filter)
	s.mu.Unlock()
	s.recompute()
}

// SetFilter replaces every predicate at once.
func (s *Store) SetFilter(f domain.Filter) {
	s.updateFilter(func(cur *domain.Filter) { *cur = f })
}

// SetSearch sets the free-text predicate.
func (s *Store) SetSearch(query string) {
	s.updateFilter(func(f *domain.Filter) { f.Search = query })
}

// SetJobRole sets the role predicate; the empty role clears it.
func (s *Store) SetJobRole(role domain.JobRole) {
	s.updateFilter(func(f *domain.Filter) { f.JobRole = role })
}

// SetStatus sets the working status predicate; the empty status clears it.
func (s *Store) SetStatus(status domain.WorkingStatus) {
	s.updateFilter(func(f *domain.Filter) { f.Status = status })
}

// SetMatcher swaps the search strategy and re-renders.
func (s *Store) SetMatcher(m domain.Matcher) {
	if m == nil {
		m = domain.DefaultMatcher
	}
	s.mu.Lock()
	s.matcher = m
	s.mu.Unlock()
	s.recompute()
}

// Employee looks up a record in the current snapshot.
func (s *Store) Employee(id string) (domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := domain.FindByID(s.snapshot.Employees, id)
	if err != nil {
		return domain.Employee{}, fmt.Errorf("employee %q: %w", id, err)
	}
	return e, nil
}

// Stats summarizes the current snapshot.
func (s *Store) Stats() domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ComputeStats(s.snapshot.Employees)
}

// Delete asks the backend to remove an employee. The snapshot is only changed
// by the silent refresh that follows a confirmed delete.
func (s *Store) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("delete: employee id: %w", domain.ErrMissingField)
	}
	ctx, cancel := s.bind(ctx)
	defer cancel()

	if err := s.api.DeleteEmployee(ctx, id); err != nil {
		s.metrics.RecordDelete(crmapi.KindOf(err).String())
		s.log.Warn("delete failed", "emp_id", id, "error", err.Error())
		s.notify(func(n errors.ErrorHandler) { n.Error("Failed to delete employee: " + crmapi.UserMessage(err)) })
		return err
	}
	s.metrics.RecordDelete(ResultOK)
	s.log.Info("employee deleted", "emp_id", id)
	s.notify(func(n errors.ErrorHandler) { n.Success("Employee deleted successfully") })

	if _, err := s.Refresh(ctx, false); err != nil {
		s.log.Warn("refresh after delete failed", "error", err.Error())
	}
	return nil
}

// Register submits a new employee and reloads the list with a loading view.
func (s *Store) Register(ctx context.Context, reg domain.Registration) error {
	ctx, cancel := s.bind(ctx)
	defer cancel()

	if err := s.api.RegisterEmployee(ctx, reg); err != nil {
		s.log.Warn("register failed", "emp_id", reg.ID, "error", err.Error())
		s.notify(func(n errors.ErrorHandler) { n.Error("Registration failed: " + crmapi.UserMessage(err)) })
		return err
	}
	s.log.Info("employee registered", "emp_id", reg.ID)
	s.notify(func(n errors.ErrorHandler) { n.Success("Employee registered successfully") })

	if _, err := s.Refresh(ctx, true); err != nil {
		s.log.Warn("refresh after register failed", "error", err.Error())
	}
	return nil
}

// Ping checks that the fetch endpoint answers with a valid envelope.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.bind(ctx)
	defer cancel()

	if err := s.api.Ping(ctx); err != nil {
		s.notify(func(n errors.ErrorHandler) { n.Error("Connection failed: " + crmapi.UserMessage(err)) })
		return err
	}
	s.notify(func(n errors.ErrorHandler) { n.Success("Connection successful") })
	return nil
}

func (s *Store) notify(fn func(errors.ErrorHandler)) {
	if s.notifier != nil {
		fn(s.notifier)
	}
}

// AutoRefresh runs a silent Refresh every interval until the returned stop
// function or Close is called. A non-positive interval does nothing.
func (s *Store) AutoRefresh(interval time.Duration) (stop func()) {
	if interval <= 0 {
		return func() {}
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.Refresh(ctx, false); err != nil && ctx.Err() == nil {
					s.log.Warn("auto refresh failed", "error", err.Error())
				}
			}
		}
	}()
	s.log.Debug("auto refresh started", "interval", interval.String())
	return cancel
}

// Close stops every auto refresh loop and cancels pending retry waits. It
// waits for the loops to exit.
func (s *Store) Close() {
	s.cancel()
	s.wg.Wait()
}
