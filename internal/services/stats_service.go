package services

import (
	"time"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/stats"
)

// statsService materializes transaction snapshots and delegates all
// arithmetic to the pure aggregation functions. Statistics always cover
// the whole store; the global filter only narrows listings.
type statsService struct {
	transactions TransactionServicer
}

// NewStatsService creates a new StatsServicer.
func NewStatsService(transactions TransactionServicer) StatsServicer {
	return &statsService{transactions: transactions}
}

// GetMonthlyStats returns the trailing 12 calendar months ending at the
// reference time's month.
func (s *statsService) GetMonthlyStats(reference time.Time) ([]stats.MonthlyStat, error) {
	transactions, err := s.transactions.GetTransactions(nil)
	if err != nil {
		return nil, err
	}
	return stats.MonthlyRollup(transactions, reference), nil
}

// GetMonthBreakdown returns the per-category expense breakdown of a month.
func (s *statsService) GetMonthBreakdown(month string) ([]stats.CategoryBreakdown, error) {
	if !models.ValidMonth(month) {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "month must be in YYYY-MM format")
	}
	transactions, err := s.transactions.GetTransactions(nil)
	if err != nil {
		return nil, err
	}
	return stats.MonthBreakdown(transactions, month), nil
}

// GetTopCategories returns the n largest expense categories of a month.
func (s *statsService) GetTopCategories(month string, n int) ([]stats.CategoryBreakdown, error) {
	breakdown, err := s.GetMonthBreakdown(month)
	if err != nil {
		return nil, err
	}
	return stats.TopCategories(breakdown, n), nil
}

// GetMonthSummary returns the headline figures of a month.
func (s *statsService) GetMonthSummary(month string) (*stats.Summary, error) {
	if !models.ValidMonth(month) {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "month must be in YYYY-MM format")
	}
	transactions, err := s.transactions.GetTransactions(nil)
	if err != nil {
		return nil, err
	}
	summary := stats.Summarize(transactions, month)
	return &summary, nil
}
