package models

import (
	"encoding/json"
	"time"
)

// DateLayout is the canonical transaction date format (YYYY-MM-DD).
// Lexicographic order on these strings equals chronological order.
const DateLayout = "2006-01-02"

// TransactionKind is the derived classification of a transaction.
// It is never stored; it is recomputed from the fields on demand.
type TransactionKind string

const (
	KindIncome   TransactionKind = "income"
	KindExpense  TransactionKind = "expense"
	KindTransfer TransactionKind = "transfer"
)

// salaryCategories holds the designated salary category name in every
// supported locale. A transaction in one of these categories is income
// regardless of its sign.
var salaryCategories = map[string]bool{
	"Salary": true,
	"Gehalt": true,
}

// Transaction represents a single financial movement. Amount is signed:
// positive for money in, negative for money out. The sign, not the derived
// kind, drives all statistics.
type Transaction struct {
	Base
	Date        string  `gorm:"size:10;index;not null" json:"date"`
	Category    string  `gorm:"not null" json:"category"`
	Subcategory string  `json:"subcategory"`
	Amount      float64 `gorm:"not null" json:"amount"`
	From        string  `gorm:"column:from_party" json:"from"`
	To          string  `gorm:"column:to_party" json:"to"`
	Note        string  `json:"note"`
	Tag         string  `json:"tag"`
	Track       bool    `json:"track"`
}

// Kind derives the transaction classification. The checks are ordered:
// salary category or positive amount means income, then both endpoints
// set means transfer, everything else is an expense. A negative salary
// correction therefore still counts as income, and a categorized movement
// between own accounts still counts as a transfer only if it is not
// income first.
func (t *Transaction) Kind() TransactionKind {
	if salaryCategories[t.Category] || t.Amount > 0 {
		return KindIncome
	}
	if t.From != "" && t.To != "" {
		return KindTransfer
	}
	return KindExpense
}

// MarshalJSON includes the derived kind in the wire form. The kind is
// computed on the way out so it can never go stale in storage.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type plain Transaction
	return json.Marshal(struct {
		plain
		Kind TransactionKind `json:"kind"`
	}{plain(t), t.Kind()})
}

// Month returns the YYYY-MM bucket of the transaction date.
func (t *Transaction) Month() string {
	return MonthOf(t.Date)
}

// MonthOf returns the YYYY-MM month bucket of a date string.
func MonthOf(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[:7]
}

// IsSalaryCategory reports whether name is the designated salary category
// in any supported locale.
func IsSalaryCategory(name string) bool {
	return salaryCategories[name]
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	if len(s) != 10 {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidMonth reports whether s is a well-formed YYYY-MM month key.
func ValidMonth(s string) bool {
	if len(s) != 7 {
		return false
	}
	_, err := time.Parse("2006-01", s)
	return err == nil
}
