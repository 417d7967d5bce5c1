package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/pagination"
	"moneta/internal/pipeline"
	"moneta/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	categoryService    services.CategoryServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, categoryService services.CategoryServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, categoryService: categoryService}
}

// CreateTransactionRequest represents the request payload for creating a transaction
type CreateTransactionRequest struct {
	Date        string  `json:"date" binding:"required,date"`
	Category    string  `json:"category" binding:"required"`
	Subcategory string  `json:"subcategory"`
	Amount      float64 `json:"amount"`
	From        string  `json:"from"`
	To          string  `json:"to"`
	Note        string  `json:"note" binding:"max=500"`
	Tag         string  `json:"tag"`
	Track       *bool   `json:"track"`
}

// UpdateTransactionRequest represents the request payload for a partial update.
// Absent fields are left unchanged.
type UpdateTransactionRequest struct {
	Date        *string  `json:"date" binding:"omitempty,date"`
	Category    *string  `json:"category"`
	Subcategory *string  `json:"subcategory"`
	Amount      *float64 `json:"amount"`
	From        *string  `json:"from"`
	To          *string  `json:"to"`
	Note        *string  `json:"note" binding:"omitempty,max=500"`
	Tag         *string  `json:"tag"`
	Track       *bool    `json:"track"`
}

// BulkDeleteRequest represents the request payload for deleting several
// transactions at once.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,uuid"`
}

// TransactionResponse represents a transaction in the response
type TransactionResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Amount      float64 `json:"amount"`
	From        string  `json:"from"`
	To          string  `json:"to"`
	Note        string  `json:"note"`
	Tag         string  `json:"tag"`
	Track       bool    `json:"track"`
	Kind        string  `json:"kind"`
}

// validateCategoryRef checks that the referenced category exists and, when a
// subcategory is given, that it is registered on that category. References
// are soft everywhere else; this entry point is the only place they are
// enforced.
func (h *TransactionHandler) validateCategoryRef(category, subcategory string) error {
	cat, err := h.categoryService.GetCategoryByName(category)
	if err != nil {
		if errors.Is(err, apperrors.ErrCategoryNotFound) {
			return apperrors.WithMessage(apperrors.ErrValidation, "unknown category: "+category)
		}
		return err
	}
	if subcategory != "" && !cat.HasSubcategory(subcategory) {
		return apperrors.WithMessage(apperrors.ErrValidation, "unknown subcategory: "+subcategory)
	}
	return nil
}

// parseGlobalFilter builds the optional date window from query parameters.
// Both bounds absent means no window at all.
func parseGlobalFilter(c *gin.Context) (*models.GlobalFilter, error) {
	start := c.Query("start_date")
	end := c.Query("end_date")
	if start == "" && end == "" {
		return nil, nil
	}
	if start != "" && !models.ValidDate(start) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidDate, "invalid start_date, use YYYY-MM-DD")
	}
	if end != "" && !models.ValidDate(end) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidDate, "invalid end_date, use YYYY-MM-DD")
	}
	return &models.GlobalFilter{Enabled: true, StartDate: start, EndDate: end}, nil
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Record a new transaction; the kind (income, expense, transfer) is derived, not stored
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} TransactionResponse "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	if err := h.validateCategoryRef(req.Category, req.Subcategory); err != nil {
		respondWithError(c, err)
		return
	}

	// New entries count toward statistics unless explicitly opted out.
	track := true
	if req.Track != nil {
		track = *req.Track
	}

	transaction, err := h.transactionService.CreateTransaction(services.TransactionInput{
		Date:        req.Date,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Amount:      req.Amount,
		From:        req.From,
		To:          req.To,
		Note:        req.Note,
		Tag:         req.Tag,
		Track:       track,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions handles the paginated, filtered transaction listing
// @Summary     List transactions
// @Description Get a paginated list of transactions with optional filters, newest first
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       page        query int    false "Page number (default 1)"
// @Param       page_size   query int    false "Items per page (default 20, max 100)"
// @Param       category    query string false "Filter by category name"
// @Param       subcategory query string false "Filter by subcategory name"
// @Param       tag         query string false "Filter by tag name"
// @Param       kind        query string false "Filter by derived kind (income, expense, transfer)"
// @Param       month       query string false "Filter by month (YYYY-MM)"
// @Param       search      query string false "Case-insensitive search across category, subcategory, note, from, to"
// @Param       start_date  query string false "Inclusive window start (YYYY-MM-DD)"
// @Param       end_date    query string false "Inclusive window end (YYYY-MM-DD)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	var filters pipeline.Filters
	if err := c.ShouldBindQuery(&filters); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	globalFilter, err := parseGlobalFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.ListTransactions(globalFilter, filters, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionByID handles the retrieval of a single transaction
// @Summary     Get transaction by ID
// @Description Get a specific transaction by its ID
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} TransactionResponse "Transaction details"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction handles a partial update of a transaction
// @Summary     Update transaction
// @Description Update the provided fields of an existing transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id      path string                   true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} TransactionResponse "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input or transaction ID"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [patch]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	// Re-categorizations go through the same soft-reference check as new
	// entries. A subcategory change alone is validated against the new
	// category only when one is supplied.
	if req.Category != nil {
		subcategory := ""
		if req.Subcategory != nil {
			subcategory = *req.Subcategory
		}
		if err := h.validateCategoryRef(*req.Category, subcategory); err != nil {
			respondWithError(c, err)
			return
		}
	}

	transaction, err := h.transactionService.UpdateTransaction(id, services.TransactionUpdate{
		Date:        req.Date,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Amount:      req.Amount,
		From:        req.From,
		To:          req.To,
		Note:        req.Note,
		Tag:         req.Tag,
		Track:       req.Track,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles deleting a single transaction
// @Summary     Delete transaction
// @Description Delete a transaction by ID; deleting an absent ID is a no-op
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// BulkDeleteTransactions handles deleting a batch of transactions
// @Summary     Bulk delete transactions
// @Description Delete several transactions in one call; absent IDs are skipped
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body BulkDeleteRequest true "IDs to delete"
// @Success     200 {object} MessageResponse "Transactions deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/bulk-delete [post]
func (h *TransactionHandler) BulkDeleteTransactions(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	if err := h.transactionService.DeleteTransactions(req.IDs); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transactions deleted successfully"})
}

// MessageResponse represents a simple message response
type MessageResponse struct {
	Message string `json:"message"`
}
