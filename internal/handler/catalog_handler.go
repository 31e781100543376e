package handler

import (
	"net/http"

	"warehouse-backend/internal/middleware"
	"warehouse-backend/internal/model"
	"warehouse-backend/internal/service"
	"warehouse-backend/pkg/apperror"
	"warehouse-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api")
	{
		api.GET("/warehouses", h.ListWarehouses)
		api.POST("/warehouses", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.CreateWarehouse)
		api.GET("/categories", h.ListCategories)
		api.POST("/categories", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.CreateCategory)
	}
}

// ListWarehouses returns all warehouses ordered by name
// @Summary      List warehouses
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  response.Envelope{data=[]model.Warehouse}
// @Failure      500  {object}  response.Envelope
// @Router       /api/warehouses [get]
func (h *CatalogHandler) ListWarehouses(c *gin.Context) {
	warehouses, err := h.catalogService.ListWarehouses(c.Request.Context())
	if err != nil {
		c.JSON(apperror.Status(err), response.Error(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.List("Warehouses retrieved successfully", warehouses, int64(len(warehouses))))
}

// CreateWarehouse creates a new warehouse
// @Summary      Create warehouse
// @Tags         catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateWarehouseRequest  true  "Create Warehouse Payload"
// @Success      201      {object}  response.Envelope{data=model.Warehouse}
// @Failure      400      {object}  response.Envelope
// @Failure      409      {object}  response.Envelope
// @Router       /api/warehouses [post]
func (h *CatalogHandler) CreateWarehouse(c *gin.Context) {
	var req service.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	warehouse, err := h.catalogService.CreateWarehouse(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		c.JSON(apperror.Status(err), response.Error(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success("Warehouse created successfully", warehouse))
}

// ListCategories returns all categories ordered by name
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  response.Envelope{data=[]model.Category}
// @Failure      500  {object}  response.Envelope
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(apperror.Status(err), response.Error(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.List("Categories retrieved successfully", categories, int64(len(categories))))
}

// CreateCategory creates a new category
// @Summary      Create category
// @Tags         catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateCategoryRequest  true  "Create Category Payload"
// @Success      201      {object}  response.Envelope{data=model.Category}
// @Failure      400      {object}  response.Envelope
// @Failure      409      {object}  response.Envelope
// @Router       /api/categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		c.JSON(apperror.Status(err), response.Error(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success("Category created successfully", category))
}
