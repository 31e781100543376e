package handler

import (
	"net/http"

	"warehouse-backend/internal/service"
	"warehouse-backend/pkg/apperror"
	"warehouse-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/dashboard/stats", h.GetStats)
}

// GetStats returns the dashboard counters
// @Summary      Dashboard statistics
// @Description  Total products, inventory value over products with stock, low-stock count and today's transaction count
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  response.Envelope{data=service.DashboardStats}
// @Failure      500  {object}  response.Envelope
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(apperror.Status(err), response.Error(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success("Statistics retrieved successfully", stats))
}
