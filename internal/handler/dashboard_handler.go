package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/tutorhub-backend/internal/response"
	"github.com/stemsi/tutorhub-backend/internal/service"
)

// DashboardHandler serves the admin landing page numbers.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboardData godoc
// GET /api/v1/dashboard?date=YYYY-MM-DD
// Headcounts, the week's lecture and attendance numbers, and the lectures
// held on date (default today).
func (h *DashboardHandler) GetDashboardData(c *gin.Context) {
	day, ok := queryDate(c, "date")
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidDate)
		return
	}

	data, err := h.dashboardService.GetDashboardData(c.Request.Context(), day)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, data)
}
