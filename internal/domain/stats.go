package domain

// Stats summarizes a snapshot of employees.
type Stats struct {
	Total   int `json:"total"`
	Active  int `json:"active"`
	Interns int `json:"interns"`
}

// ComputeStats counts all, active and intern employees.
func ComputeStats(employees []Employee) Stats {
	s := Stats{Total: len(employees)}
	for _, e := range employees {
		if e.IsActive() {
			s.Active++
		}
		if e.IsIntern() {
			s.Interns++
		}
	}
	return s
}
