package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/services"
)

// StatsHandler handles derived statistics requests.
type StatsHandler struct {
	statsService       services.StatsServicer
	transactionService services.TransactionServicer
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService services.StatsServicer, transactionService services.TransactionServicer) *StatsHandler {
	return &StatsHandler{statsService: statsService, transactionService: transactionService}
}

// monthOrNow returns the month query parameter, defaulting to the current
// calendar month.
func monthOrNow(c *gin.Context) string {
	if m := c.Query("month"); m != "" {
		return m
	}
	return time.Now().Format("2006-01")
}

// GetMonthlyStats handles the trailing twelve-month rollup
// @Summary     Get monthly statistics
// @Description Get income, expenses, savings, and savings rate for the 12 months ending at the given month
// @Tags        stats
// @Accept      json
// @Produce     json
// @Param       month query string false "Window end month (YYYY-MM, default current month)"
// @Success     200 {array} stats.MonthlyStat "Twelve ascending month buckets"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/monthly [get]
func (h *StatsHandler) GetMonthlyStats(c *gin.Context) {
	reference := time.Now()
	if m := c.Query("month"); m != "" {
		parsed, err := time.Parse("2006-01", m)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, "month must be in YYYY-MM format"))
			return
		}
		reference = parsed
	}

	months, err := h.statsService.GetMonthlyStats(reference)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"monthly": months})
}

// GetMonthBreakdown handles the per-category expense breakdown
// @Summary     Get category breakdown
// @Description Get the expense breakdown by category and subcategory for a month, largest first
// @Tags        stats
// @Accept      json
// @Produce     json
// @Param       month query string false "Target month (YYYY-MM, default current month)"
// @Success     200 {array} stats.CategoryBreakdown "Categories sorted by total descending"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/breakdown [get]
func (h *StatsHandler) GetMonthBreakdown(c *gin.Context) {
	breakdown, err := h.statsService.GetMonthBreakdown(monthOrNow(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"breakdown": breakdown})
}

// GetTopCategories handles the top expense categories of a month
// @Summary     Get top categories
// @Description Get the largest expense categories of a month
// @Tags        stats
// @Accept      json
// @Produce     json
// @Param       month query string false "Target month (YYYY-MM, default current month)"
// @Param       limit query int    false "Number of categories (default 5)"
// @Success     200 {array} stats.CategoryBreakdown "Top categories"
// @Failure     400 {object} ErrorResponse "Invalid month or limit"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/top [get]
func (h *StatsHandler) GetTopCategories(c *gin.Context) {
	limit := 5
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	top, err := h.statsService.GetTopCategories(monthOrNow(c), limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"top_categories": top})
}

// GetMonthSummary handles the headline figures of a month
// @Summary     Get month summary
// @Description Get total income, expenses, balance, savings rate, and average expense for a month
// @Tags        stats
// @Accept      json
// @Produce     json
// @Param       month query string false "Target month (YYYY-MM, default current month)"
// @Success     200 {object} stats.Summary "Month summary"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/summary [get]
func (h *StatsHandler) GetMonthSummary(c *gin.Context) {
	summary, err := h.statsService.GetMonthSummary(monthOrNow(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetRangeStats handles the totals of an arbitrary date window
// @Summary     Get range statistics
// @Description Get income, expense, and net totals for an inclusive date range
// @Tags        stats
// @Accept      json
// @Produce     json
// @Param       start_date query string true "Window start (YYYY-MM-DD)"
// @Param       end_date   query string true "Window end (YYYY-MM-DD)"
// @Success     200 {object} stats.RangeStat "Range totals"
// @Failure     400 {object} ErrorResponse "Invalid date"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/range [get]
func (h *StatsHandler) GetRangeStats(c *gin.Context) {
	result, err := h.transactionService.GetStats(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": result})
}

// GetCategoryTotals handles per-category totals of a date window
// @Summary     Get category totals
// @Description Get per-category totals for an inclusive date range, restricted to one flow direction
// @Tags        stats
// @Accept      json
// @Produce     json
// @Param       start_date query string true  "Window start (YYYY-MM-DD)"
// @Param       end_date   query string true  "Window end (YYYY-MM-DD)"
// @Param       kind       query string false "Flow direction: income or expense (default expense)"
// @Success     200 {array} stats.CategoryTotal "Categories sorted by total descending"
// @Failure     400 {object} ErrorResponse "Invalid date or kind"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/categories [get]
func (h *StatsHandler) GetCategoryTotals(c *gin.Context) {
	kind := models.TransactionKind(c.DefaultQuery("kind", "expense"))

	totals, err := h.transactionService.GetCategoryBreakdown(c.Query("start_date"), c.Query("end_date"), kind)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": totals})
}

// GetMonthlyTotals handles the per-month totals of a calendar year
// @Summary     Get monthly totals
// @Description Get income and expense totals for each month of a year, zero-filled
// @Tags        stats
// @Accept      json
// @Produce     json
// @Param       year query int false "Calendar year (default current year)"
// @Success     200 {array} stats.MonthlyTotal "Twelve month buckets"
// @Failure     400 {object} ErrorResponse "Invalid year"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stats/totals [get]
func (h *StatsHandler) GetMonthlyTotals(c *gin.Context) {
	year := time.Now().Year()
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, "year must be an integer"))
			return
		}
		year = parsed
	}

	totals, err := h.transactionService.GetMonthlyTotals(year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"totals": totals})
}
