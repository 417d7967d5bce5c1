package services

import (
	"time"

	"moneta/internal/models"
	"moneta/internal/pagination"
	"moneta/internal/pipeline"
	"moneta/internal/stats"
)

// TransactionInput carries the caller-supplied fields for a new transaction.
type TransactionInput struct {
	Date        string
	Category    string
	Subcategory string
	Amount      float64
	From        string
	To          string
	Note        string
	Tag         string
	Track       bool
}

// TransactionUpdate holds optional fields for a partial update.
// Nil fields are left unchanged.
type TransactionUpdate struct {
	Date        *string
	Category    *string
	Subcategory *string
	Amount      *float64
	From        *string
	To          *string
	Note        *string
	Tag         *string
	Track       *bool
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(input TransactionInput) (*models.Transaction, error)
	GetTransactions(globalFilter *models.GlobalFilter) ([]models.Transaction, error)
	ListTransactions(globalFilter *models.GlobalFilter, filters pipeline.Filters, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(id string) (*models.Transaction, error)
	UpdateTransaction(id string, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(id string) error
	DeleteTransactions(ids []string) error
	GetStats(startDate, endDate string) (*stats.RangeStat, error)
	GetCategoryBreakdown(startDate, endDate string, kind models.TransactionKind) ([]stats.CategoryTotal, error)
	GetMonthlyTotals(year int) ([]stats.MonthlyTotal, error)
}

// CategoryServicer defines the contract for the category registry.
type CategoryServicer interface {
	CreateCategory(name string, subcategories []string) (*models.Category, error)
	GetCategories() ([]models.Category, error)
	GetCategoryByID(id string) (*models.Category, error)
	GetCategoryByName(name string) (*models.Category, error)
	AddSubcategory(categoryName, subcategory string) (*models.Category, error)
	RemoveSubcategory(categoryName, subcategory string) (*models.Category, error)
	DeleteCategory(id string) error
	ColorFor(name string) string
}

// TagServicer defines the contract for the tag registry.
type TagServicer interface {
	CreateTag(name string) (*models.Tag, error)
	GetTags() ([]models.Tag, error)
	DeleteTag(id string) error
}

// SettingsUpdate holds optional settings fields for a merge update.
// Nil fields are left unchanged.
type SettingsUpdate struct {
	Locale      *string
	Currency    *string
	SavingsGoal *float64
}

// SettingsServicer defines the contract for the settings singleton.
type SettingsServicer interface {
	GetSettings() (*models.Settings, error)
	UpdateSettings(update SettingsUpdate) (*models.Settings, error)
}

// StatsServicer defines the contract for derived statistics. All methods
// materialize the full tracked snapshot and fold it in memory; the
// reference time or target month always comes from the caller.
type StatsServicer interface {
	GetMonthlyStats(reference time.Time) ([]stats.MonthlyStat, error)
	GetMonthBreakdown(month string) ([]stats.CategoryBreakdown, error)
	GetTopCategories(month string, n int) ([]stats.CategoryBreakdown, error)
	GetMonthSummary(month string) (*stats.Summary, error)
}
