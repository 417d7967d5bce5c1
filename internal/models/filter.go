package models

// GlobalFilter restricts every transaction read to an inclusive date window.
// It is runtime state passed per call and never persisted. Empty bounds are
// open-ended; an enabled filter with neither bound set behaves as disabled.
type GlobalFilter struct {
	Enabled   bool   `json:"enabled"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Active reports whether the filter actually constrains reads.
func (f *GlobalFilter) Active() bool {
	return f != nil && f.Enabled && (f.StartDate != "" || f.EndDate != "")
}

// Contains reports whether the given date falls inside the filter window.
// An inactive filter contains every date.
func (f *GlobalFilter) Contains(date string) bool {
	if !f.Active() {
		return true
	}
	if f.StartDate != "" && date < f.StartDate {
		return false
	}
	if f.EndDate != "" && date > f.EndDate {
		return false
	}
	return true
}
