package handler

import (
	"net/http"

	"warehouse-backend/internal/middleware"
	"warehouse-backend/internal/model"
	"warehouse-backend/internal/repository"
	"warehouse-backend/pkg/pagination"
	"warehouse-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activityRepo repository.ActivityRepository
}

func NewActivityHandler(activityRepo repository.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{activityRepo: activityRepo}
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/api/activity", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.ListActivity)
}

// ListActivity returns the activity log newest first
// @Summary      List activity log
// @Tags         activity
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 50)"
// @Success      200   {object}  response.Envelope{data=[]model.ActivityLog}
// @Failure      500   {object}  response.Envelope
// @Router       /api/activity [get]
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	params := pagination.Parse(c)

	logs, total, err := h.activityRepo.List(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error("Failed to retrieve activity log"))
		return
	}

	c.JSON(http.StatusOK, response.List("Activity log retrieved successfully", logs, total))
}
