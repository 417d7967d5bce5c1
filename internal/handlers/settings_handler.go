package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "moneta/internal/errors"
	"moneta/internal/services"
)

// SettingsHandler handles requests for the settings singleton.
type SettingsHandler struct {
	settingsService services.SettingsServicer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService services.SettingsServicer) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// UpdateSettingsRequest represents the request payload for updating settings.
// Absent fields are left unchanged.
type UpdateSettingsRequest struct {
	Locale      *string  `json:"locale" binding:"omitempty,locale"`
	Currency    *string  `json:"currency" binding:"omitempty,iso4217"`
	SavingsGoal *float64 `json:"savings_goal" binding:"omitempty,min=0,max=100"`
}

// SettingsResponse represents the settings in the response
type SettingsResponse struct {
	Locale      string  `json:"locale"`
	Currency    string  `json:"currency"`
	SavingsGoal float64 `json:"savings_goal"`
}

// GetSettings handles the retrieval of the settings singleton
// @Summary     Get settings
// @Description Get the application settings; defaults are created on first access
// @Tags        settings
// @Accept      json
// @Produce     json
// @Success     200 {object} SettingsResponse "Current settings"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings handles a partial update of the settings singleton
// @Summary     Update settings
// @Description Update the provided settings fields; the record is never replaced wholesale
// @Tags        settings
// @Accept      json
// @Produce     json
// @Param       request body UpdateSettingsRequest true "Fields to update"
// @Success     200 {object} SettingsResponse "Updated settings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings [patch]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	settings, err := h.settingsService.UpdateSettings(services.SettingsUpdate{
		Locale:      req.Locale,
		Currency:    req.Currency,
		SavingsGoal: req.SavingsGoal,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
