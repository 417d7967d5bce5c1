// Package pipeline filters, searches, and paginates in-memory transaction
// snapshots. Filtering never reorders: the output preserves the input
// order, so clearing filters always restores the original listing.
package pipeline

import (
	"strings"

	"moneta/internal/models"
	"moneta/internal/pagination"
)

// Filters restrict a transaction listing. Empty fields do not constrain;
// set fields combine with AND.
type Filters struct {
	Category    string `form:"category" json:"category"`
	Subcategory string `form:"subcategory" json:"subcategory"`
	Tag         string `form:"tag" json:"tag"`
	Kind        string `form:"kind" json:"kind" binding:"omitempty,txn_kind"`
	Month       string `form:"month" json:"month" binding:"omitempty,month"`
	Search      string `form:"search" json:"search"`
}

// IsZero reports whether no filter field is set.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Apply returns the transactions matching every set filter.
func Apply(txs []models.Transaction, f Filters) []models.Transaction {
	if f.IsZero() {
		return txs
	}
	result := make([]models.Transaction, 0, len(txs))
	for i := range txs {
		if matches(&txs[i], f) {
			result = append(result, txs[i])
		}
	}
	return result
}

func matches(tx *models.Transaction, f Filters) bool {
	if f.Category != "" && tx.Category != f.Category {
		return false
	}
	if f.Subcategory != "" && tx.Subcategory != f.Subcategory {
		return false
	}
	if f.Tag != "" && tx.Tag != f.Tag {
		return false
	}
	if f.Kind != "" && string(tx.Kind()) != f.Kind {
		return false
	}
	if f.Month != "" && tx.Month() != f.Month {
		return false
	}
	if f.Search != "" && !matchesSearch(tx, f.Search) {
		return false
	}
	return true
}

// matchesSearch does a case-insensitive substring match over the
// category, subcategory, note, and both endpoint fields.
func matchesSearch(tx *models.Transaction, query string) bool {
	q := strings.ToLower(query)
	for _, field := range []string{tx.Category, tx.Subcategory, tx.Note, tx.From, tx.To} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Paginate slices items for the requested page. It never clamps: a page
// beyond the end yields an empty data slice while the metadata still
// reports the real totals.
func Paginate[T any](items []T, req pagination.PageRequest) pagination.PageResponse[T] {
	req.Defaults()

	total := len(items)
	start := req.Offset()
	if start > total {
		start = total
	}
	end := start + req.PageSize
	if end > total {
		end = total
	}
	return pagination.NewPageResponse(items[start:end], req.Page, req.PageSize, total)
}
