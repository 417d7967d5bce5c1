// Package errors provides custom error types for the Moneta core.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrValidation     = &AppError{Code: "VALIDATION", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrAlreadyExists  = &AppError{Code: "ALREADY_EXISTS", Message: "Resource already exists", StatusCode: http.StatusConflict}
	ErrStoreIO        = &AppError{Code: "STORE_IO", Message: "Record store operation failed", StatusCode: http.StatusInternalServerError}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Transaction errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrZeroAmount          = &AppError{Code: "ZERO_AMOUNT", Message: "Transaction amount must not be zero", StatusCode: http.StatusBadRequest}
	ErrInvalidDate         = &AppError{Code: "INVALID_DATE", Message: "Date must be in YYYY-MM-DD format", StatusCode: http.StatusBadRequest}
)

// Category errors.
var (
	ErrCategoryNotFound    = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrCategoryExists      = &AppError{Code: "CATEGORY_EXISTS", Message: "A category with this name already exists", StatusCode: http.StatusConflict}
	ErrSubcategoryExists   = &AppError{Code: "SUBCATEGORY_EXISTS", Message: "This subcategory already exists", StatusCode: http.StatusConflict}
	ErrSubcategoryNotFound = &AppError{Code: "SUBCATEGORY_NOT_FOUND", Message: "Subcategory not found", StatusCode: http.StatusNotFound}
)

// Tag errors.
var (
	ErrTagNotFound = &AppError{Code: "TAG_NOT_FOUND", Message: "Tag not found", StatusCode: http.StatusNotFound}
	ErrTagExists   = &AppError{Code: "TAG_EXISTS", Message: "A tag with this name already exists", StatusCode: http.StatusConflict}
)

// Settings errors.
var (
	ErrInvalidSavingsGoal = &AppError{Code: "INVALID_SAVINGS_GOAL", Message: "Savings goal must be between 0 and 100", StatusCode: http.StatusBadRequest}
	ErrInvalidLocale      = &AppError{Code: "INVALID_LOCALE", Message: "Unsupported locale", StatusCode: http.StatusBadRequest}
	ErrInvalidCurrency    = &AppError{Code: "INVALID_CURRENCY", Message: "Currency must be a valid ISO 4217 code", StatusCode: http.StatusBadRequest}
)
