package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"moneta/internal/live"
)

// DashboardHandler serves the continuously refreshed snapshot of derived
// views. Reads here never fail; a broken store degrades to empty views.
type DashboardHandler struct {
	refresher *live.Refresher
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(refresher *live.Refresher) *DashboardHandler {
	return &DashboardHandler{refresher: refresher}
}

// GetDashboard handles the dashboard snapshot
// @Summary     Get dashboard
// @Description Get the latest recomputed snapshot of transactions, monthly rollup, breakdown, and summary
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Param       refresh query bool false "Recompute synchronously before responding"
// @Success     200 {object} live.Snapshot "Dashboard snapshot"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	var snapshot live.Snapshot
	if c.Query("refresh") == "true" {
		snapshot = h.refresher.Refresh()
	} else {
		snapshot = h.refresher.Snapshot()
	}

	c.JSON(http.StatusOK, snapshot)
}
