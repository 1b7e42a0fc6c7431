package syncstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fisto/crm-sync/internal/crmapi"
	"github.com/fisto/crm-sync/internal/domain"
	"github.com/fisto/crm-sync/internal/errors"
	"github.com/fisto/crm-sync/internal/metrics"
)

type fakeAPI struct {
	mu       sync.Mutex
	fetch    func(ctx context.Context) (crmapi.FetchResult, error)
	deleteFn func(ctx context.Context, id string) error
	register func(ctx context.Context, reg domain.Registration) error
	ping     func(ctx context.Context) error
	fetches  int
}

func (f *fakeAPI) FetchEmployees(ctx context.Context) (crmapi.FetchResult, error) {
	f.mu.Lock()
	f.fetches++
	fn := f.fetch
	f.mu.Unlock()
	return fn(ctx)
}

func (f *fakeAPI) DeleteEmployee(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeAPI) RegisterEmployee(ctx context.Context, reg domain.Registration) error {
	return f.register(ctx, reg)
}

func (f *fakeAPI) Ping(ctx context.Context) error { return f.ping(ctx) }

func (f *fakeAPI) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func (f *fakeAPI) setFetch(fn func(ctx context.Context) (crmapi.FetchResult, error)) {
	f.mu.Lock()
	f.fetch = fn
	f.mu.Unlock()
}

func returning(emps ...domain.Employee) func(context.Context) (crmapi.FetchResult, error) {
	return func(context.Context) (crmapi.FetchResult, error) {
		return crmapi.FetchResult{Employees: emps, Attempts: 1}, nil
	}
}

type recordingSink struct {
	mu    sync.Mutex
	views []View
}

func (r *recordingSink) Render(v View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, v)
}

func (r *recordingSink) all() []View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]View(nil), r.views...)
}

func (r *recordingSink) last() View {
	views := r.all()
	return views[len(views)-1]
}

type recordingNotifier struct {
	mu        sync.Mutex
	errors    []string
	successes []string
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}
func (n *recordingNotifier) Warning(string) {}
func (n *recordingNotifier) Info(string)    {}
func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

var _ errors.ErrorHandler = (*recordingNotifier)(nil)

func emp(id, name, email string, role domain.JobRole, status domain.WorkingStatus) domain.Employee {
	return domain.Employee{ID: id, Name: name, PersonalEmail: email, JobRole: role, WorkingStatus: status}
}

func staff() []domain.Employee {
	return []domain.Employee{
		emp("E1", "Ann Lee", "ann@x.io", domain.RoleOnrole, domain.StatusActive),
		emp("E2", "Bob Ray", "bob@x.io", domain.RoleIntern, domain.StatusActive),
		emp("E3", "Cara Ng", "cara@x.io", domain.RoleOnrole, domain.StatusInactive),
	}
}

func TestRefreshAppliesSnapshotAndRenders(t *testing.T) {
	api := &fakeAPI{fetch: returning(staff()...)}
	sink := &recordingSink{}
	reg := metrics.New()
	store := New(api, WithSink(sink), WithMetrics(reg))
	defer store.Close()

	snap, err := store.Refresh(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Len())
	assert.EqualValues(t, 1, snap.Seq)
	assert.True(t, snap.Loaded())

	views := sink.all()
	require.Len(t, views, 1)
	assert.Len(t, views[0].Visible, 3)
	assert.Equal(t, 3, views[0].Total)
	assert.False(t, views[0].Loading)
}

func TestLoudRefreshShowsLoadingAndNotifies(t *testing.T) {
	api := &fakeAPI{fetch: returning(staff()...)}
	sink := &recordingSink{}
	notes := &recordingNotifier{}
	store := New(api, WithSink(sink), WithNotifier(notes))
	defer store.Close()

	_, err := store.Refresh(context.Background(), true)
	require.NoError(t, err)

	views := sink.all()
	require.Len(t, views, 2)
	assert.True(t, views[0].Loading)
	assert.Equal(t, EmptySnapshot, views[0].EmptyState())
	assert.False(t, views[1].Loading)
	assert.Equal(t, []string{"Loaded 3 employees"}, notes.successes)
}

func TestRefreshFailureKeepsSnapshot(t *testing.T) {
	api := &fakeAPI{fetch: returning(staff()...)}
	notes := &recordingNotifier{}
	store := New(api, WithNotifier(notes))
	defer store.Close()

	_, err := store.Refresh(context.Background(), false)
	require.NoError(t, err)

	rejected := &crmapi.SyncError{Kind: crmapi.KindRejected, Op: crmapi.OpFetch, Message: "db down"}
	api.setFetch(func(context.Context) (crmapi.FetchResult, error) { return crmapi.FetchResult{}, rejected })

	snap, err := store.Refresh(context.Background(), true)
	require.Error(t, err)
	assert.True(t, crmapi.IsKind(err, crmapi.KindRejected))
	assert.Equal(t, 3, snap.Len())
	assert.Equal(t, 3, store.Snapshot().Len())
	assert.Equal(t, []string{"Failed to load employees: db down"}, notes.errors)
}

func TestRefreshNetworkFailureAfterRetries(t *testing.T) {
	var hits atomic.Int32
	fail := false
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		mu.Lock()
		failing := fail
		mu.Unlock()
		if failing {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "success",
			"data":   []map[string]any{{"emp_id": "E1", "emp_name": "Ann"}},
		})
	}))
	defer srv.Close()

	client, err := crmapi.NewClient(crmapi.Options{BaseURL: srv.URL, MaxRetries: 3, RetryDelay: time.Millisecond})
	require.NoError(t, err)
	store := New(client)
	defer store.Close()

	_, err = store.Refresh(context.Background(), false)
	require.NoError(t, err)
	before := store.Snapshot()

	mu.Lock()
	fail = true
	mu.Unlock()
	hits.Store(0)

	_, err = store.Refresh(context.Background(), false)
	require.Error(t, err)
	assert.True(t, crmapi.IsKind(err, crmapi.KindNetwork))
	assert.EqualValues(t, 3, hits.Load())
	assert.Equal(t, before, store.Snapshot())
}

func TestStaleRefreshIsDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	old := []domain.Employee{emp("OLD", "Old", "old@x.io", domain.RoleOnrole, domain.StatusActive)}
	api := &fakeAPI{fetch: func(context.Context) (crmapi.FetchResult, error) {
		close(started)
		<-release
		return crmapi.FetchResult{Employees: old}, nil
	}}
	store := New(api)
	defer store.Close()

	type outcome struct {
		snap Snapshot
		err  error
	}
	first := make(chan outcome, 1)
	go func() {
		snap, err := store.Refresh(context.Background(), false)
		first <- outcome{snap, err}
	}()
	<-started

	api.setFetch(returning(staff()...))
	snap, err := store.Refresh(context.Background(), false)
	require.NoError(t, err)
	assert.EqualValues(t, 2, snap.Seq)

	close(release)
	res := <-first
	require.NoError(t, res.err)
	assert.EqualValues(t, 2, res.snap.Seq)
	assert.Equal(t, 3, store.Snapshot().Len())
	_, err = store.Employee("OLD")
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)
}

func TestFilterChangesRenderWithoutFetching(t *testing.T) {
	api := &fakeAPI{fetch: returning(staff()...)}
	sink := &recordingSink{}
	store := New(api, WithSink(sink))
	defer store.Close()

	_, err := store.Refresh(context.Background(), false)
	require.NoError(t, err)

	store.SetJobRole(domain.RoleOnrole)
	assert.Len(t, sink.last().Visible, 2)

	store.SetStatus(domain.StatusInactive)
	last := sink.last()
	require.Len(t, last.Visible, 1)
	assert.Equal(t, "E3", last.Visible[0].ID)

	store.SetSearch("zzz")
	assert.Equal(t, NoMatches, sink.last().EmptyState())
	assert.Equal(t, "No employees match your filters", sink.last().Message())

	store.SetFilter(domain.Filter{})
	assert.Len(t, sink.last().Visible, 3)

	assert.Equal(t, 1, api.fetchCount())
	assert.Len(t, sink.all(), 5)
}

func TestSetMatcherReplacesSearch(t *testing.T) {
	api := &fakeAPI{fetch: returning(staff()...)}
	store := New(api)
	defer store.Close()
	_, err := store.Refresh(context.Background(), false)
	require.NoError(t, err)

	store.SetSearch("E")
	assert.Len(t, store.View().Visible, 3)

	store.SetMatcher(domain.MatcherFunc(func(e domain.Employee, q string) bool { return e.ID == "E2" }))
	view := store.View()
	require.Len(t, view.Visible, 1)
	assert.Equal(t, "E2", view.Visible[0].ID)

	store.SetMatcher(nil)
	assert.Len(t, store.View().Visible, 3)
}

func TestSetSinkRendersCurrentView(t *testing.T) {
	api := &fakeAPI{fetch: returning(staff()...)}
	store := New(api)
	defer store.Close()
	_, err := store.Refresh(context.Background(), false)
	require.NoError(t, err)

	sink := &recordingSink{}
	store.SetSink(sink)
	require.Len(t, sink.all(), 1)
	assert.Len(t, sink.last().Visible, 3)
}

func TestDeleteRejectedLeavesRecord(t *testing.T) {
	api := &fakeAPI{
		fetch: returning(staff()...),
		deleteFn: func(context.Context, string) error {
			return &crmapi.SyncError{Kind: crmapi.KindRejected, Op: crmapi.OpDelete, Message: "Employee not found"}
		},
	}
	notes := &recordingNotifier{}
	store := New(api, WithNotifier(notes))
	defer store.Close()
	_, err := store.Refresh(context.Background(), false)
	require.NoError(t, err)

	err = store.Delete(context.Background(), "E2")
	require.Error(t, err)
	assert.True(t, crmapi.IsKind(err, crmapi.KindRejected))

	got, err := store.Employee("E2")
	require.NoError(t, err)
	assert.Equal(t, "Bob Ray", got.Name)
	assert.Equal(t, 1, api.fetchCount())
	assert.Equal(t, []string{"Failed to delete employee: Employee not found"}, notes.errors)
}

func TestDeleteSuccessRefreshesSilently(t *testing.T) {
	api := &fakeAPI{fetch: returning(staff()...)}
	var deleted string
	api.deleteFn = func(_ context.Context, id string) error {
		deleted = id
		api.setFetch(returning(staff()[0], staff()[2]))
		return nil
	}
	sink := &recordingSink{}
	store := New(api, WithSink(sink))
	defer store.Close()
	_, err := store.Refresh(context.Background(), false)
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), " E2 "))
	assert.Equal(t, "E2", deleted)
	assert.Equal(t, 2, store.Snapshot().Len())
	for _, v := range sink.all() {
		assert.False(t, v.Loading)
	}
}

func TestDeleteRequiresID(t *testing.T) {
	store := New(&fakeAPI{})
	defer store.Close()
	err := store.Delete(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestRegisterTriggersLoudRefresh(t *testing.T) {
	api := &fakeAPI{fetch: returning(staff()...)}
	api.register = func(context.Context, domain.Registration) error { return nil }
	sink := &recordingSink{}
	notes := &recordingNotifier{}
	store := New(api, WithSink(sink), WithNotifier(notes))
	defer store.Close()

	require.NoError(t, store.Register(context.Background(), domain.Registration{}))
	views := sink.all()
	require.Len(t, views, 2)
	assert.True(t, views[0].Loading)
	assert.Equal(t, []string{"Employee registered successfully", "Loaded 3 employees"}, notes.successes)
}

func TestRegisterFailure(t *testing.T) {
	api := &fakeAPI{register: func(context.Context, domain.Registration) error {
		return &crmapi.SyncError{Kind: crmapi.KindRejected, Op: crmapi.OpRegister, Message: "Employee ID already exists"}
	}}
	notes := &recordingNotifier{}
	store := New(api, WithNotifier(notes))
	defer store.Close()

	err := store.Register(context.Background(), domain.Registration{})
	require.Error(t, err)
	assert.Equal(t, 0, api.fetchCount())
	assert.Equal(t, []string{"Registration failed: Employee ID already exists"}, notes.errors)
}

func TestPingNotifies(t *testing.T) {
	api := &fakeAPI{ping: func(context.Context) error { return nil }}
	notes := &recordingNotifier{}
	store := New(api, WithNotifier(notes))
	defer store.Close()

	require.NoError(t, store.Ping(context.Background()))
	assert.Equal(t, []string{"Connection successful"}, notes.successes)
}

func TestStats(t *testing.T) {
	store := New(&fakeAPI{fetch: returning(staff()...)})
	defer store.Close()
	_, err := store.Refresh(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{Total: 3, Active: 2, Interns: 1}, store.Stats())
}

func TestSnapshotReturnsCopy(t *testing.T) {
	store := New(&fakeAPI{fetch: returning(staff()...)})
	defer store.Close()
	_, err := store.Refresh(context.Background(), false)
	require.NoError(t, err)

	snap := store.Snapshot()
	snap.Employees[0].Name = "changed"
	got, err := store.Employee("E1")
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", got.Name)
}

func TestAutoRefreshAndStop(t *testing.T) {
	api := &fakeAPI{fetch: returning(staff()...)}
	store := New(api)
	defer store.Close()

	stop := store.AutoRefresh(5 * time.Millisecond)
	assert.Eventually(t, func() bool { return api.fetchCount() >= 2 }, 2*time.Second, 5*time.Millisecond)
	stop()

	// let an in-flight tick finish
	time.Sleep(20 * time.Millisecond)
	n := api.fetchCount()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, api.fetchCount())
}

func TestAutoRefreshNonPositiveIntervalIsNoop(t *testing.T) {
	api := &fakeAPI{fetch: returning()}
	store := New(api)
	defer store.Close()

	stop := store.AutoRefresh(0)
	stop()
	assert.Equal(t, 0, api.fetchCount())
}

func TestCloseCancelsPendingFetch(t *testing.T) {
	started := make(chan struct{})
	api := &fakeAPI{fetch: func(ctx context.Context) (crmapi.FetchResult, error) {
		close(started)
		<-ctx.Done()
		return crmapi.FetchResult{}, &crmapi.SyncError{Kind: crmapi.KindNetwork, Op: crmapi.OpFetch, Err: ctx.Err()}
	}}
	store := New(api)

	done := make(chan error, 1)
	go func() {
		_, err := store.Refresh(context.Background(), false)
		done <- err
	}()
	<-started
	store.Close()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("refresh not cancelled by Close")
	}
	assert.False(t, store.View().Failed(), "a cancelled fetch is not a backend failure")
}

func unreachable() *crmapi.SyncError {
	return &crmapi.SyncError{Kind: crmapi.KindNetwork, Op: crmapi.OpFetch, Message: "backend unreachable"}
}

func failing(err error) func(context.Context) (crmapi.FetchResult, error) {
	return func(context.Context) (crmapi.FetchResult, error) { return crmapi.FetchResult{}, err }
}

func TestViewRecordsAreCopies(t *testing.T) {
	records := staff()
	records[0].Extra = map[string]string{"team": "north"}
	api := &fakeAPI{fetch: returning(records...)}
	sink := SinkFunc(func(v View) {
		if len(v.Visible) > 0 {
			v.Visible[0].Extra["team"] = "changed by sink"
			v.Visible[0].Name = "changed by sink"
		}
	})
	store := New(api, WithSink(sink))
	defer store.Close()

	_, err := store.Refresh(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "north", store.Snapshot().Employees[0].Extra["team"])

	v := store.View()
	v.Visible[0].Extra["team"] = "changed via view"
	assert.Equal(t, "north", store.Snapshot().Employees[0].Extra["team"])

	got, err := store.Employee("E1")
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", got.Name)
	assert.Equal(t, "north", got.Extra["team"])
}

func TestSilentRefreshFailureReachesSink(t *testing.T) {
	api := &fakeAPI{fetch: returning(staff()...)}
	sink := &recordingSink{}
	notes := &recordingNotifier{}
	store := New(api, WithSink(sink), WithNotifier(notes))
	defer store.Close()

	_, err := store.Refresh(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, sink.last().Failed())

	down := unreachable()
	api.setFetch(failing(down))
	_, err = store.Refresh(context.Background(), false)
	require.Error(t, err)

	last := sink.last()
	assert.True(t, last.Failed())
	assert.ErrorIs(t, last.Err, down)
	assert.Len(t, last.Visible, 3, "last good snapshot stays visible")
	assert.False(t, last.Loading)
	assert.Empty(t, notes.errors)
	assert.True(t, store.View().Failed())

	store.SetJobRole(domain.RoleIntern)
	assert.True(t, sink.last().Failed(), "filter changes keep the error")

	api.setFetch(returning(staff()...))
	_, err = store.Refresh(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, sink.last().Failed())
	assert.NoError(t, store.View().Err)
}

func TestLoudRefreshFailureReachesSink(t *testing.T) {
	api := &fakeAPI{fetch: failing(unreachable())}
	sink := &recordingSink{}
	store := New(api, WithSink(sink))
	defer store.Close()

	_, err := store.Refresh(context.Background(), true)
	require.Error(t, err)

	views := sink.all()
	require.Len(t, views, 2)
	assert.True(t, views[0].Loading)
	assert.False(t, views[0].Failed())
	assert.False(t, views[1].Loading)
	assert.True(t, views[1].Failed())
	assert.Equal(t, EmptySnapshot, views[1].EmptyState())
}

func TestRefreshFailureAfterDeleteReachesSink(t *testing.T) {
	api := &fakeAPI{fetch: returning(staff()...)}
	api.deleteFn = func(context.Context, string) error {
		api.setFetch(failing(unreachable()))
		return nil
	}
	sink := &recordingSink{}
	store := New(api, WithSink(sink))
	defer store.Close()
	_, err := store.Refresh(context.Background(), false)
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "E2"))
	assert.True(t, sink.last().Failed())
	assert.Equal(t, 3, store.Snapshot().Len())
}

func TestAutoRefreshFailureReachesSink(t *testing.T) {
	api := &fakeAPI{fetch: failing(unreachable())}
	sink := &recordingSink{}
	store := New(api, WithSink(sink))
	defer store.Close()

	stop := store.AutoRefresh(5 * time.Millisecond)
	defer stop()
	assert.Eventually(t, func() bool {
		views := sink.all()
		return len(views) > 0 && views[len(views)-1].Failed()
	}, 2*time.Second, 5*time.Millisecond)
}

func TestOvertakenRefreshFailureIsIgnored(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := &fakeAPI{fetch: func(context.Context) (crmapi.FetchResult, error) {
		close(started)
		<-release
		return crmapi.FetchResult{}, unreachable()
	}}
	store := New(api)
	defer store.Close()

	first := make(chan error, 1)
	go func() {
		_, err := store.Refresh(context.Background(), false)
		first <- err
	}()
	<-started

	api.setFetch(returning(staff()...))
	_, err := store.Refresh(context.Background(), false)
	require.NoError(t, err)

	close(release)
	require.Error(t, <-first)
	assert.False(t, store.View().Failed())
}
