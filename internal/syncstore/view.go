package syncstore

import (
	"time"

	"github.com/fisto/crm-sync/internal/domain"
)

// Snapshot is the last successfully fetched employee list. It is replaced as a
// whole and never modified after it is applied.
type Snapshot struct {
	Employees []domain.Employee
	// Seq is the refresh sequence number that produced this snapshot; 0 before
	// the first successful refresh.
	Seq       uint64
	UpdatedAt time.Time
}

// Len returns the number of employees in the snapshot.
func (s Snapshot) Len() int { return len(s.Employees) }

// Loaded reports whether a refresh has ever succeeded.
func (s Snapshot) Loaded() bool { return s.Seq > 0 }

func (s Snapshot) clone() Snapshot {
	out := s
	out.Employees = make([]domain.Employee, len(s.Employees))
	for i, e := range s.Employees {
		out.Employees[i] = e.Clone()
	}
	return out
}

// EmptyState tells a sink why there is nothing to show.
type EmptyState int

const (
	// NotEmpty means the visible set has at least one record.
	NotEmpty EmptyState = iota
	// EmptySnapshot means the backend returned no employees at all.
	EmptySnapshot
	// NoMatches means employees exist but none pass the filter.
	NoMatches
)

func (s EmptyState) String() string {
	switch s {
	case EmptySnapshot:
		return "empty"
	case NoMatches:
		return "no-matches"
	default:
		return "ok"
	}
}

// View is the derived state handed to a RenderSink.
type View struct {
	Visible []domain.Employee
	// Total is the size of the snapshot the view was computed from.
	Total     int
	Filter    domain.Filter
	Loading   bool
	UpdatedAt time.Time
	// Seq orders views computed by one Store; a higher Seq is newer.
	Seq uint64
	// Err is the error of the latest refresh when it failed. Visible still
	// holds the last good snapshot.
	Err error
}

// Failed reports whether the latest refresh failed.
func (v View) Failed() bool { return v.Err != nil }

// EmptyState classifies an empty view.
func (v View) EmptyState() EmptyState {
	switch {
	case len(v.Visible) > 0:
		return NotEmpty
	case v.Total == 0:
		return EmptySnapshot
	default:
		return NoMatches
	}
}

// Message is the text shown in place of an empty table.
func (v View) Message() string {
	switch v.EmptyState() {
	case EmptySnapshot:
		return "No employees found"
	case NoMatches:
		return "No employees match your filters"
	}
	return ""
}

// RenderSink receives every recomputed view.
type RenderSink interface {
	Render(View)
}

// SinkFunc adapts a function to RenderSink.
type SinkFunc func(View)

func (fn SinkFunc) Render(v View) { fn(v) }

// ComputeVisible applies f to the snapshot with the default text matcher.
func ComputeVisible(s Snapshot, f domain.Filter) View {
	return ComputeVisibleWith(s, f, domain.DefaultMatcher)
}

// ComputeVisibleWith applies f using m for the search predicate. Visible
// holds copies, so a sink may modify them without touching s.
func ComputeVisibleWith(s Snapshot, f domain.Filter, m domain.Matcher) View {
	return View{
		Visible:   domain.FilterEmployeesWith(s.Employees, f, m),
		Total:     len(s.Employees),
		Filter:    f,
		UpdatedAt: s.UpdatedAt,
	}
}
