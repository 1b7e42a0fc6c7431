package domain

import (
	"strings"
)

// FilterAll is the option value meaning "no constraint" for role and status.
const FilterAll = "all"

// Filter holds the three independent predicates applied to the employee list.
// A zero field matches every record.
type Filter struct {
	Search  string
	JobRole JobRole
	Status  WorkingStatus
}

// FilterOptions holds raw filter input as it arrives from flags or key presses.
type FilterOptions struct {
	Search  string
	JobRole string
	Status  string
}

// ToFilter validates the options. Empty values and "all" leave a predicate unset.
func (fo FilterOptions) ToFilter() (Filter, error) {
	f := Filter{Search: fo.Search}
	if v := normalizeToken(fo.JobRole); v != "" && v != FilterAll {
		role, err := ParseJobRole(v)
		if err != nil {
			return Filter{}, err
		}
		f.JobRole = role
	}
	if v := normalizeToken(fo.Status); v != "" && v != FilterAll {
		status, err := ParseWorkingStatus(v)
		if err != nil {
			return Filter{}, err
		}
		f.Status = status
	}
	return f, nil
}

// IsEmpty returns true if the filter has no criteria set.
func (f Filter) IsEmpty() bool {
	return f.Search == "" && f.JobRole == "" && f.Status == ""
}

// Matcher decides whether an employee matches a free-text query.
type Matcher interface {
	Match(e Employee, query string) bool
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(e Employee, query string) bool

func (fn MatcherFunc) Match(e Employee, query string) bool { return fn(e, query) }

// DefaultMatcher is a case-insensitive substring test over id, name and
// personal email.
var DefaultMatcher Matcher = MatcherFunc(matchText)

func matchText(e Employee, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(e.ID), q) ||
		strings.Contains(strings.ToLower(e.Name), q) ||
		strings.Contains(strings.ToLower(e.PersonalEmail), q)
}

// Matches reports whether e satisfies all predicates of f using m for the text query.
func (f Filter) Matches(e Employee, m Matcher) bool {
	if f.JobRole != "" && !strings.EqualFold(string(e.JobRole), string(f.JobRole)) {
		return false
	}
	if f.Status != "" && !strings.EqualFold(string(e.WorkingStatus), string(f.Status)) {
		return false
	}
	if f.Search == "" {
		return true
	}
	if m == nil {
		m = DefaultMatcher
	}
	return m.Match(e, f.Search)
}

// FilterEmployees returns copies of the records matching f in their original
// order. The result shares no memory with the input.
func FilterEmployees(employees []Employee, f Filter) []Employee {
	return FilterEmployeesWith(employees, f, DefaultMatcher)
}

// FilterEmployeesWith is FilterEmployees with a custom text matcher.
func FilterEmployeesWith(employees []Employee, f Filter, m Matcher) []Employee {
	result := make([]Employee, 0, len(employees))
	for _, e := range employees {
		if f.Matches(e, m) {
			result = append(result, e.Clone())
		}
	}
	return result
}

// FindByID returns the employee with the given id.
func FindByID(employees []Employee, id string) (Employee, error) {
	for _, e := range employees {
		if e.ID == id {
			return e.Clone(), nil
		}
	}
	return Employee{}, ErrEmployeeNotFound
}
