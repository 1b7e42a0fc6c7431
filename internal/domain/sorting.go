package domain

import (
	"fmt"
	"sort"
	"strings"
)

// SortByField specifies which field to sort employees by.
type SortByField string

const (
	SortByNone        SortByField = ""
	SortByIDField     SortByField = "id"
	SortByNameField   SortByField = "name"
	SortByDesignation SortByField = "designation"
	SortByRoleField   SortByField = "role"
	SortByStatusField SortByField = "status"
	SortByCreatedAt   SortByField = "created"
)

// IsValid checks if the sort by field is valid.
func (s SortByField) IsValid() bool {
	switch s {
	case SortByNone, SortByIDField, SortByNameField, SortByDesignation,
		SortByRoleField, SortByStatusField, SortByCreatedAt:
		return true
	default:
		return false
	}
}

func (s SortByField) String() string {
	return string(s)
}

// SortOrder specifies the sort direction.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// IsValid checks if the sort order is valid.
func (s SortOrder) IsValid() bool {
	return s == SortOrderAsc || s == SortOrderDesc
}

func (s SortOrder) String() string {
	return string(s)
}

// SortOptions holds sorting options for employees. The zero value keeps the
// backend order.
type SortOptions struct {
	Field SortByField
	Order SortOrder
}

// SortEmployees returns a sorted copy of employees. Text fields compare
// case-insensitively and ties keep their original order.
func SortEmployees(employees []Employee, opts SortOptions) []Employee {
	sorted := make([]Employee, len(employees))
	copy(sorted, employees)
	if opts.Field == SortByNone || !opts.Field.IsValid() {
		return sorted
	}
	if !opts.Order.IsValid() {
		opts.Order = SortOrderAsc
	}

	key := sortKey(opts.Field)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := key(sorted[i]), key(sorted[j])
		if opts.Order == SortOrderDesc {
			return a > b
		}
		return a < b
	})
	return sorted
}

func sortKey(field SortByField) func(Employee) string {
	switch field {
	case SortByIDField:
		return func(e Employee) string { return strings.ToLower(e.ID) }
	case SortByNameField:
		return func(e Employee) string { return strings.ToLower(e.Name) }
	case SortByDesignation:
		return func(e Employee) string { return strings.ToLower(e.DesignationText()) }
	case SortByRoleField:
		return func(e Employee) string { return string(e.JobRole) }
	case SortByStatusField:
		return func(e Employee) string { return string(e.WorkingStatus) }
	default:
		return func(e Employee) string { return e.CreatedAt }
	}
}

// ParseSortByField parses a string into a SortByField.
func ParseSortByField(field string) (SortByField, error) {
	f := SortByField(normalizeToken(field))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid sort field: %s", field)
	}
	return f, nil
}

// ParseSortOrder parses a string into a SortOrder. Empty means ascending.
func ParseSortOrder(order string) (SortOrder, error) {
	o := SortOrder(normalizeToken(order))
	if o == "" {
		return SortOrderAsc, nil
	}
	if !o.IsValid() {
		return "", fmt.Errorf("invalid sort order: %s", order)
	}
	return o, nil
}
