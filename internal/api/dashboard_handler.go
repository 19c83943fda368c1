package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/innovatefest/hackathon-api/internal/services"
)

// DashboardHandler serves dashboard statistics
type DashboardHandler struct {
	dashboardService services.DashboardService
	timeout          time.Duration
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService services.DashboardService, timeout time.Duration) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		timeout:          timeout,
	}
}

// Stats returns the dashboard counters
func (h *DashboardHandler) Stats(c *gin.Context) {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	stats, err := h.dashboardService.Stats(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
