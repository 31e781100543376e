package handler

import (
	"net/http"

	"warehouse-backend/internal/middleware"
	"warehouse-backend/internal/model"
	"warehouse-backend/internal/service"
	"warehouse-backend/pkg/apperror"
	"warehouse-backend/pkg/pagination"
	"warehouse-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api")
	{
		api.GET("/products", h.ListProducts)
		api.POST("/products", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.CreateProduct)
		api.PUT("/products/:id", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.UpdateProduct)
		api.DELETE("/products/:id", middleware.RequireRole(model.RoleAdmin), h.DeleteProduct)

		api.GET("/transactions", h.ListTransactions)
		api.GET("/transactions/:id", h.GetTransaction)
		api.POST("/transactions", middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleStaff), h.RecordTransaction)
	}
}

// ListProducts handles retrieving products with joined warehouse/category names
// @Summary      List products
// @Description  Retrieves products ordered by name with warehouse and category names joined
// @Tags         inventory
// @Produce      json
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Items per page (default 50)"
// @Param        search  query     string  false  "Substring match on name, code or barcode"
// @Success      200    {object}  response.Envelope{data=[]service.ProductResponse}
// @Failure      500    {object}  response.Envelope
// @Router       /api/products [get]
func (h *InventoryHandler) ListProducts(c *gin.Context) {
	params := pagination.Parse(c)
	search := c.Query("search")

	products, total, err := h.inventoryService.ListProducts(c.Request.Context(), search, params.Limit, params.Offset)
	if err != nil {
		c.JSON(apperror.Status(err), response.Error(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.List("Products retrieved successfully", products, total))
}

// CreateProduct creates a new product entry
// @Summary      Create product
// @Description  Creates a new product; stock status is derived from stock and reorder level
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateProductRequest  true  "Create Product Payload"
// @Success      201      {object}  response.Envelope{data=service.ProductResponse}
// @Failure      400      {object}  response.Envelope
// @Failure      409      {object}  response.Envelope
// @Router       /api/products [post]
func (h *InventoryHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	userID := c.GetString("userID")

	product, err := h.inventoryService.CreateProduct(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(apperror.Status(err), response.Error(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success("Product created successfully", product))
}

// UpdateProduct updates an existing product's metadata
// @Summary      Update product
// @Description  Updates a product's details by ID; stock itself only changes through transactions
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Product ID"
// @Param        payload  body      service.UpdateProductRequest  true  "Update Product Payload"
// @Success      200      {object}  response.Envelope{data=service.ProductResponse}
// @Failure      400      {object}  response.Envelope
// @Failure      404      {object}  response.Envelope
// @Router       /api/products/{id} [put]
func (h *InventoryHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	userID := c.GetString("userID")

	product, err := h.inventoryService.UpdateProduct(c.Request.Context(), userID, id, req)
	if err != nil {
		c.JSON(apperror.Status(err), response.Error(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success("Product updated successfully", product))
}

// DeleteProduct removes a product entry softly
// @Summary      Delete product
// @Description  Soft deletes a product by ID
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /api/products/{id} [delete]
func (h *InventoryHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	userID := c.GetString("userID")

	if err := h.inventoryService.DeleteProduct(c.Request.Context(), userID, id); err != nil {
		c.JSON(apperror.Status(err), response.Error(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success("Product deleted successfully", nil))
}

// ListTransactions handles retrieving the movement log newest first
// @Summary      List transactions
// @Description  Retrieves stock movements newest first with product/warehouse/user names joined
// @Tags         inventory
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 50)"
// @Success      200   {object}  response.Envelope{data=[]service.TransactionResponse}
// @Failure      500   {object}  response.Envelope
// @Router       /api/transactions [get]
func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	params := pagination.Parse(c)

	txs, total, err := h.inventoryService.ListTransactions(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		c.JSON(apperror.Status(err), response.Error(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.List("Transactions retrieved successfully", txs, total))
}

// GetTransaction fetches a single movement by ID
// @Summary      Get transaction
// @Tags         inventory
// @Produce      json
// @Param        id   path      string  true  "Transaction ID"
// @Success      200  {object}  response.Envelope{data=service.TransactionResponse}
// @Failure      404  {object}  response.Envelope
// @Router       /api/transactions/{id} [get]
func (h *InventoryHandler) GetTransaction(c *gin.Context) {
	tx, err := h.inventoryService.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(apperror.Status(err), response.Error(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success("Transaction retrieved successfully", tx))
}

// RecordTransaction records a movement and adjusts stock atomically
// @Summary      Record stock movement
// @Description  Inserts a movement and applies its stock delta to the product in one database transaction
// @Tags         inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.RecordTransactionRequest  true  "Record Transaction Payload"
// @Success      201      {object}  response.Envelope{data=service.TransactionResponse}
// @Failure      400      {object}  response.Envelope
// @Failure      404      {object}  response.Envelope
// @Router       /api/transactions [post]
func (h *InventoryHandler) RecordTransaction(c *gin.Context) {
	var req service.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	userID := c.GetString("userID")

	tx, err := h.inventoryService.RecordTransaction(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(apperror.Status(err), response.Error(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success("Transaction recorded successfully", tx))
}
