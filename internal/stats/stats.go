// Package stats computes derived statistics over transaction snapshots.
// Every function is pure: the reference time or target month is always a
// parameter, only tracked transactions contribute, and the sign of the
// amount decides whether money counts as income or expense. The derived
// transaction kind is never consulted here.
package stats

import (
	"fmt"
	"sort"
	"time"

	"moneta/internal/models"
)

// MonthlyStat aggregates one calendar month.
type MonthlyStat struct {
	Month       string  `json:"month"`
	Income      float64 `json:"income"`
	Expenses    float64 `json:"expenses"`
	Savings     float64 `json:"savings"`
	SavingsRate float64 `json:"savings_rate"`
}

// SubcategoryBreakdown aggregates the expenses of one subcategory.
type SubcategoryBreakdown struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// CategoryBreakdown aggregates the expenses of one category within a month.
type CategoryBreakdown struct {
	Category      string                 `json:"category"`
	Color         string                 `json:"color"`
	Total         float64                `json:"total"`
	Count         int                    `json:"count"`
	Percentage    float64                `json:"percentage"`
	Subcategories []SubcategoryBreakdown `json:"subcategories"`
}

// Summary condenses a single month into headline figures.
type Summary struct {
	Month              string  `json:"month"`
	TotalIncome        float64 `json:"total_income"`
	TotalExpenses      float64 `json:"total_expenses"`
	Balance            float64 `json:"balance"`
	SavingsRate        float64 `json:"savings_rate"`
	TransactionCount   int     `json:"transaction_count"`
	AverageTransaction float64 `json:"average_transaction"`
}

// MonthlyRollup folds tracked transactions into the 12 calendar months
// ending at the reference time's month. Every month in the window is
// present, zero-valued if it has no transactions; transactions outside
// the window are dropped. Months are returned in ascending order.
func MonthlyRollup(txs []models.Transaction, reference time.Time) []MonthlyStat {
	first := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, time.UTC)

	result := make([]MonthlyStat, 12)
	index := make(map[string]int, 12)
	for i := 0; i < 12; i++ {
		month := first.AddDate(0, i-11, 0).Format("2006-01")
		result[i] = MonthlyStat{Month: month}
		index[month] = i
	}

	for _, tx := range txs {
		if !tx.Track {
			continue
		}
		i, ok := index[tx.Month()]
		if !ok {
			continue
		}
		if tx.Amount > 0 {
			result[i].Income += tx.Amount
		} else if tx.Amount < 0 {
			result[i].Expenses += -tx.Amount
		}
	}

	for i := range result {
		result[i].Savings = result[i].Income - result[i].Expenses
		result[i].SavingsRate = savingsRate(result[i].Income, result[i].Expenses)
	}
	return result
}

// MonthBreakdown aggregates the expense transactions of a single month by
// category and subcategory. Totals are absolute values. Categories are
// sorted by total descending with ties broken by name ascending, and each
// carries its share of the month's total expenses.
func MonthBreakdown(txs []models.Transaction, month string) []CategoryBreakdown {
	type subAgg struct {
		total float64
		count int
	}
	type catAgg struct {
		total float64
		count int
		subs  map[string]*subAgg
	}

	byCategory := make(map[string]*catAgg)
	var grandTotal float64

	for _, tx := range txs {
		if !tx.Track || tx.Month() != month || tx.Amount >= 0 {
			continue
		}
		amount := -tx.Amount

		cat := byCategory[tx.Category]
		if cat == nil {
			cat = &catAgg{subs: make(map[string]*subAgg)}
			byCategory[tx.Category] = cat
		}
		cat.total += amount
		cat.count++

		sub := cat.subs[tx.Subcategory]
		if sub == nil {
			sub = &subAgg{}
			cat.subs[tx.Subcategory] = sub
		}
		sub.total += amount
		sub.count++

		grandTotal += amount
	}

	result := make([]CategoryBreakdown, 0, len(byCategory))
	for name, cat := range byCategory {
		subs := make([]SubcategoryBreakdown, 0, len(cat.subs))
		for subName, sub := range cat.subs {
			subs = append(subs, SubcategoryBreakdown{Name: subName, Total: sub.total, Count: sub.count})
		}
		sort.Slice(subs, func(i, j int) bool {
			if subs[i].Total != subs[j].Total {
				return subs[i].Total > subs[j].Total
			}
			return subs[i].Name < subs[j].Name
		})

		var percentage float64
		if grandTotal > 0 {
			percentage = cat.total / grandTotal * 100
		}
		result = append(result, CategoryBreakdown{
			Category:      name,
			Color:         models.ColorFor(name),
			Total:         cat.total,
			Count:         cat.count,
			Percentage:    percentage,
			Subcategories: subs,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// TopCategories returns the first n entries of a breakdown.
func TopCategories(breakdown []CategoryBreakdown, n int) []CategoryBreakdown {
	if n > len(breakdown) {
		n = len(breakdown)
	}
	return breakdown[:n]
}

// Summarize condenses the tracked transactions of a single month.
// AverageTransaction is the mean expense, zero when the month has no
// expense transactions so the result stays finite.
func Summarize(txs []models.Transaction, month string) Summary {
	s := Summary{Month: month}
	expenseCount := 0

	for _, tx := range txs {
		if !tx.Track || tx.Month() != month {
			continue
		}
		s.TransactionCount++
		if tx.Amount > 0 {
			s.TotalIncome += tx.Amount
		} else if tx.Amount < 0 {
			s.TotalExpenses += -tx.Amount
			expenseCount++
		}
	}

	s.Balance = s.TotalIncome - s.TotalExpenses
	s.SavingsRate = savingsRate(s.TotalIncome, s.TotalExpenses)
	if expenseCount > 0 {
		s.AverageTransaction = s.TotalExpenses / float64(expenseCount)
	}
	return s
}

// RangeStat totals the tracked transactions of an arbitrary date range.
type RangeStat struct {
	TotalIncome      float64 `json:"total_income"`
	TotalExpenses    float64 `json:"total_expenses"`
	NetBalance       float64 `json:"net_balance"`
	TransactionCount int     `json:"transaction_count"`
}

// SumRange folds tracked transactions into range totals. Expenses
// accumulate as absolute values; the net balance may be negative.
func SumRange(txs []models.Transaction) RangeStat {
	var r RangeStat
	for _, tx := range txs {
		if !tx.Track {
			continue
		}
		r.TransactionCount++
		if tx.Amount > 0 {
			r.TotalIncome += tx.Amount
		} else if tx.Amount < 0 {
			r.TotalExpenses += -tx.Amount
		}
	}
	r.NetBalance = r.TotalIncome - r.TotalExpenses
	return r
}

// CategoryTotal is the absolute amount one category moved in one direction.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// CategoryTotals sums absolute amounts per category for tracked
// transactions flowing in the requested direction: positive amounts count
// as income, negative as expense. Transfers carry no direction of their
// own and yield nothing. Output is sorted by total descending, ties by
// category name.
func CategoryTotals(txs []models.Transaction, kind models.TransactionKind) []CategoryTotal {
	totals := make(map[string]float64)
	for _, tx := range txs {
		if !tx.Track {
			continue
		}
		switch kind {
		case models.KindIncome:
			if tx.Amount <= 0 {
				continue
			}
			totals[tx.Category] += tx.Amount
		case models.KindExpense:
			if tx.Amount >= 0 {
				continue
			}
			totals[tx.Category] += -tx.Amount
		}
	}

	result := make([]CategoryTotal, 0, len(totals))
	for name, total := range totals {
		result = append(result, CategoryTotal{Category: name, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].Category < result[j].Category
	})
	return result
}

// MonthlyTotal is the income and expense sum of one calendar month.
type MonthlyTotal struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// YearTotals folds tracked transactions into the 12 months of a calendar
// year. Every month is present, zero-valued when it has no activity.
func YearTotals(txs []models.Transaction, year int) []MonthlyTotal {
	result := make([]MonthlyTotal, 12)
	index := make(map[string]int, 12)
	for i := range result {
		month := fmt.Sprintf("%04d-%02d", year, i+1)
		result[i] = MonthlyTotal{Month: month}
		index[month] = i
	}

	for _, tx := range txs {
		if !tx.Track {
			continue
		}
		i, ok := index[tx.Month()]
		if !ok {
			continue
		}
		if tx.Amount > 0 {
			result[i].Income += tx.Amount
		} else if tx.Amount < 0 {
			result[i].Expenses += -tx.Amount
		}
	}
	return result
}

// savingsRate is (income - expenses) / income as a percentage, zero when
// there is no income. It can be negative when expenses exceed income.
func savingsRate(income, expenses float64) float64 {
	if income <= 0 {
		return 0
	}
	return (income - expenses) / income * 100
}
