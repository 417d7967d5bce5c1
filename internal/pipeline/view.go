package pipeline

import (
	"sync"

	"moneta/internal/models"
	"moneta/internal/pagination"
)

// View is the stateful presentation window over a transaction listing:
// the current filters plus the current page. Changing filters resets to
// the first page. Slicing clamps the stored page to the last available
// one, so a shrinking result set can never strand the view beyond the end.
type View struct {
	mu       sync.Mutex
	filters  Filters
	page     int
	pageSize int
}

// NewView creates a view on page one with the given page size
// (20 when non-positive).
func NewView(pageSize int) *View {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &View{page: 1, pageSize: pageSize}
}

// SetFilters replaces the active filters and resets to the first page.
func (v *View) SetFilters(f Filters) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filters = f
	v.page = 1
}

// Filters returns the active filters.
func (v *View) Filters() Filters {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filters
}

// SetPage moves the view to the given page (floored at one).
func (v *View) SetPage(page int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if page < 1 {
		page = 1
	}
	v.page = page
}

// Page returns the current page number.
func (v *View) Page() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

// Slice applies the active filters to the snapshot and returns the current
// page. If the filtered set has fewer pages than the stored page number,
// the view moves back to the last page first.
func (v *View) Slice(txs []models.Transaction) pagination.PageResponse[models.Transaction] {
	v.mu.Lock()
	defer v.mu.Unlock()

	filtered := Apply(txs, v.filters)

	resp := Paginate(filtered, pagination.PageRequest{Page: v.page, PageSize: v.pageSize})
	if v.page > resp.TotalPages {
		v.page = resp.TotalPages
		resp = Paginate(filtered, pagination.PageRequest{Page: v.page, PageSize: v.pageSize})
	}
	return resp
}
