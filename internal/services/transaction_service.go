package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
	"moneta/internal/pipeline"
	"moneta/internal/stats"
	"moneta/internal/store"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db  *gorm.DB
	hub *store.Hub
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(st *store.Store) TransactionServicer {
	return &transactionService{db: st.DB(), hub: st.Hub()}
}

// CreateTransaction validates and stores a new transaction, then re-reads
// it so the caller sees exactly what the store persisted.
func (s *transactionService) CreateTransaction(input TransactionInput) (*models.Transaction, error) {
	if input.Amount == 0 {
		return nil, apperrors.ErrZeroAmount
	}
	if !models.ValidDate(input.Date) {
		return nil, apperrors.ErrInvalidDate
	}
	if input.Category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "category is required")
	}

	transaction := &models.Transaction{
		Date:        input.Date,
		Category:    input.Category,
		Subcategory: input.Subcategory,
		Amount:      input.Amount,
		From:        input.From,
		To:          input.To,
		Note:        input.Note,
		Tag:         input.Tag,
		Track:       input.Track,
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreIO, err)
	}

	var created models.Transaction
	if err := s.db.First(&created, "id = ?", transaction.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreIO, err)
	}

	s.hub.Touch(store.CollectionTransactions)
	return &created, nil
}

// GetTransactions returns every transaction ordered by date descending.
// Records sharing a date keep insertion order (ids are time-ordered).
// An active global filter restricts the result to its inclusive window.
func (s *transactionService) GetTransactions(globalFilter *models.GlobalFilter) ([]models.Transaction, error) {
	q := s.db.Model(&models.Transaction{})
	if globalFilter.Active() {
		if globalFilter.StartDate != "" {
			q = q.Where("date >= ?", globalFilter.StartDate)
		}
		if globalFilter.EndDate != "" {
			q = q.Where("date <= ?", globalFilter.EndDate)
		}
	}

	var transactions []models.Transaction
	if err := q.Order("date DESC, id ASC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreIO, err)
	}
	return transactions, nil
}

// ListTransactions runs the full read pipeline: global filter window,
// listing filters, then pagination.
func (s *transactionService) ListTransactions(globalFilter *models.GlobalFilter, filters pipeline.Filters, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	transactions, err := s.GetTransactions(globalFilter)
	if err != nil {
		return nil, err
	}

	page.Defaults()
	result := pipeline.Paginate(pipeline.Apply(transactions, filters), page)
	return &result, nil
}

// GetTransactionByID retrieves a transaction by ID
func (s *transactionService) GetTransactionByID(id string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.First(&transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreIO, err)
	}
	return &transaction, nil
}

// UpdateTransaction merge-updates an existing transaction. Only provided
// fields change; a provided amount must not be zero and a provided date
// must be well-formed.
func (s *transactionService) UpdateTransaction(id string, update TransactionUpdate) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Date != nil {
		if !models.ValidDate(*update.Date) {
			return nil, apperrors.ErrInvalidDate
		}
		updates["date"] = *update.Date
	}
	if update.Category != nil {
		if *update.Category == "" {
			return nil, apperrors.WithMessage(apperrors.ErrValidation, "category must not be empty")
		}
		updates["category"] = *update.Category
	}
	if update.Subcategory != nil {
		updates["subcategory"] = *update.Subcategory
	}
	if update.Amount != nil {
		if *update.Amount == 0 {
			return nil, apperrors.ErrZeroAmount
		}
		updates["amount"] = *update.Amount
	}
	if update.From != nil {
		updates["from_party"] = *update.From
	}
	if update.To != nil {
		updates["to_party"] = *update.To
	}
	if update.Note != nil {
		updates["note"] = *update.Note
	}
	if update.Tag != nil {
		updates["tag"] = *update.Tag
	}
	if update.Track != nil {
		updates["track"] = *update.Track
	}

	if len(updates) > 0 {
		if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStoreIO, err)
		}
		s.hub.Touch(store.CollectionTransactions)
	}

	return transaction, nil
}

// DeleteTransaction removes a transaction. Deleting an id that does not
// exist is a no-op.
func (s *transactionService) DeleteTransaction(id string) error {
	result := s.db.Delete(&models.Transaction{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrStoreIO, result.Error)
	}
	if result.RowsAffected > 0 {
		s.hub.Touch(store.CollectionTransactions)
	}
	return nil
}

// DeleteTransactions removes a batch of transactions in one store call,
// skipping ids that do not exist.
func (s *transactionService) DeleteTransactions(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	result := s.db.Delete(&models.Transaction{}, "id IN ?", ids)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrStoreIO, result.Error)
	}
	if result.RowsAffected > 0 {
		s.hub.Touch(store.CollectionTransactions)
	}
	return nil
}

// rangeRows fetches every transaction inside an inclusive date window,
// oldest first.
func (s *transactionService) rangeRows(startDate, endDate string) ([]models.Transaction, error) {
	if !models.ValidDate(startDate) || !models.ValidDate(endDate) {
		return nil, apperrors.ErrInvalidDate
	}

	var transactions []models.Transaction
	err := s.db.
		Where("date >= ? AND date <= ?", startDate, endDate).
		Order("date ASC, id ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreIO, err)
	}
	return transactions, nil
}

// GetStats folds the transactions inside a date window into income,
// expense and net totals.
func (s *transactionService) GetStats(startDate, endDate string) (*stats.RangeStat, error) {
	transactions, err := s.rangeRows(startDate, endDate)
	if err != nil {
		return nil, err
	}
	result := stats.SumRange(transactions)
	return &result, nil
}

// GetCategoryBreakdown totals a date window per category, restricted to
// one flow direction.
func (s *transactionService) GetCategoryBreakdown(startDate, endDate string, kind models.TransactionKind) ([]stats.CategoryTotal, error) {
	if kind != models.KindIncome && kind != models.KindExpense {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "kind must be income or expense")
	}
	transactions, err := s.rangeRows(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return stats.CategoryTotals(transactions, kind), nil
}

// GetMonthlyTotals returns income and expense totals for each month of a
// calendar year, zero-filled for months without activity.
func (s *transactionService) GetMonthlyTotals(year int) ([]stats.MonthlyTotal, error) {
	if year < 1000 || year > 9999 {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "year out of range")
	}
	transactions, err := s.rangeRows(fmt.Sprintf("%d-01-01", year), fmt.Sprintf("%d-12-31", year))
	if err != nil {
		return nil, err
	}
	return stats.YearTotals(transactions, year), nil
}
