package domain

import (
	"fmt"
	"sort"
)

// GroupByMode specifies how employees are grouped for summaries.
type GroupByMode string

const (
	GroupByNone        GroupByMode = "none"
	GroupByRole        GroupByMode = "role"
	GroupByStatus      GroupByMode = "status"
	GroupByDesignation GroupByMode = "designation"
)

// IsValid checks if the group by mode is valid.
func (g GroupByMode) IsValid() bool {
	switch g {
	case GroupByNone, GroupByRole, GroupByStatus, GroupByDesignation:
		return true
	default:
		return false
	}
}

func (g GroupByMode) String() string {
	return string(g)
}

// ParseGroupByMode parses a string into a GroupByMode. Empty means none.
func ParseGroupByMode(s string) (GroupByMode, error) {
	g := GroupByMode(normalizeToken(s))
	if g == "" {
		return GroupByNone, nil
	}
	if !g.IsValid() {
		return "", fmt.Errorf("invalid group by mode: %s", s)
	}
	return g, nil
}

// Group is a set of employees sharing a key.
type Group struct {
	Key         string
	DisplayName string
	Count       int
	ActiveCount int
	Employees   []Employee
}

// GroupResult is the outcome of GroupEmployees.
type GroupResult struct {
	Mode        GroupByMode
	Groups      []Group
	TotalCount  int
	TotalActive int
}

// GroupEmployees groups employees by mode. Groups are sorted by display name
// and keep the input order of their members. Employees with an empty key land
// in an N/A group.
func GroupEmployees(employees []Employee, mode GroupByMode) GroupResult {
	if !mode.IsValid() {
		mode = GroupByNone
	}
	result := GroupResult{
		Mode:        mode,
		Groups:      []Group{},
		TotalCount:  len(employees),
		TotalActive: countActive(employees),
	}
	if mode == GroupByNone || len(employees) == 0 {
		return result
	}

	members := make(map[string][]Employee)
	for _, e := range employees {
		var key string
		switch mode {
		case GroupByRole:
			key = string(e.JobRole)
		case GroupByStatus:
			key = string(e.WorkingStatus)
		case GroupByDesignation:
			key = e.Designation
		}
		members[key] = append(members[key], e)
	}

	for key, group := range members {
		result.Groups = append(result.Groups, Group{
			Key:         key,
			DisplayName: groupDisplayName(key, mode),
			Count:       len(group),
			ActiveCount: countActive(group),
			Employees:   group,
		})
	}
	sort.Slice(result.Groups, func(i, j int) bool {
		return result.Groups[i].DisplayName < result.Groups[j].DisplayName
	})
	return result
}

func groupDisplayName(key string, mode GroupByMode) string {
	if mode == GroupByDesignation {
		return DesignationText(key)
	}
	if key == "" {
		return NotAvailable
	}
	return key
}

// GetGroupCounts returns member counts keyed by group key.
func GetGroupCounts(employees []Employee, mode GroupByMode) map[string]int {
	counts := make(map[string]int)
	for _, g := range GroupEmployees(employees, mode).Groups {
		counts[g.Key] = g.Count
	}
	return counts
}

func countActive(employees []Employee) int {
	n := 0
	for _, e := range employees {
		if e.IsActive() {
			n++
		}
	}
	return n
}
