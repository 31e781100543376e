package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"warehouse-backend/internal/model"
	"warehouse-backend/internal/repository"
	ws "warehouse-backend/internal/websocket"
	"warehouse-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DTOs
type CreateProductRequest struct {
	Code         string  `json:"code" binding:"required"`
	Barcode      string  `json:"barcode"`
	Name         string  `json:"name" binding:"required"`
	Unit         string  `json:"unit"`
	Price        float64 `json:"price" binding:"min=0"`
	Cost         float64 `json:"cost" binding:"min=0"`
	CurrentStock int     `json:"current_stock" binding:"min=0"`
	ReorderLevel int     `json:"reorder_level" binding:"min=0"`
	CategoryID   string  `json:"category_id"`
	WarehouseID  string  `json:"warehouse_id" binding:"required"`
	ExpiryDate   string  `json:"expiry_date"` // YYYY-MM-DD, optional
}

type UpdateProductRequest struct {
	Code         string  `json:"code" binding:"required"`
	Barcode      string  `json:"barcode"`
	Name         string  `json:"name" binding:"required"`
	Unit         string  `json:"unit"`
	Price        float64 `json:"price" binding:"min=0"`
	Cost         float64 `json:"cost" binding:"min=0"`
	ReorderLevel int     `json:"reorder_level" binding:"min=0"`
	CategoryID   string  `json:"category_id"`
	WarehouseID  string  `json:"warehouse_id" binding:"required"`
	ExpiryDate   string  `json:"expiry_date"`
}

type RecordTransactionRequest struct {
	ProductID   string `json:"product_id" binding:"required"`
	WarehouseID string `json:"warehouse_id" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
	Notes       string `json:"notes"`
}

type ProductResponse struct {
	ID            string  `json:"id"`
	Code          string  `json:"code"`
	Barcode       string  `json:"barcode,omitempty"`
	Name          string  `json:"name"`
	Unit          string  `json:"unit"`
	Price         float64 `json:"price"`
	Cost          float64 `json:"cost"`
	CurrentStock  int     `json:"current_stock"`
	ReorderLevel  int     `json:"reorder_level"`
	Status        string  `json:"status"`
	ExpiryDate    string  `json:"expiry_date,omitempty"`
	CategoryID    string  `json:"category_id,omitempty"`
	CategoryName  string  `json:"category_name,omitempty"`
	WarehouseID   string  `json:"warehouse_id"`
	WarehouseName string  `json:"warehouse_name,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

type TransactionResponse struct {
	ID            string `json:"id"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name,omitempty"`
	ProductCode   string `json:"product_code,omitempty"`
	WarehouseID   string `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name,omitempty"`
	UserID        string `json:"user_id,omitempty"`
	UserName      string `json:"user_name,omitempty"`
	Type          string `json:"type"`
	Quantity      int    `json:"quantity"`
	StockAfter    int    `json:"stock_after"`
	TotalValue    string `json:"total_value"`
	Notes         string `json:"notes,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type InventoryService interface {
	ListProducts(ctx context.Context, search string, limit, offset int) ([]ProductResponse, int64, error)
	CreateProduct(ctx context.Context, userID string, req CreateProductRequest) (ProductResponse, error)
	UpdateProduct(ctx context.Context, userID, id string, req UpdateProductRequest) (ProductResponse, error)
	DeleteProduct(ctx context.Context, userID, id string) error
	RecordTransaction(ctx context.Context, userID string, req RecordTransactionRequest) (TransactionResponse, error)
	ListTransactions(ctx context.Context, limit, offset int) ([]TransactionResponse, int64, error)
	GetTransaction(ctx context.Context, id string) (TransactionResponse, error)
}

type inventoryService struct {
	productRepo   repository.ProductRepository
	txRepo        repository.TransactionRepository
	warehouseRepo repository.WarehouseRepository
	categoryRepo  repository.CategoryRepository
	activityRepo  repository.ActivityRepository
	txManager     repository.TransactionManager
	hub           *ws.Hub
}

func NewInventoryService(
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
	warehouseRepo repository.WarehouseRepository,
	categoryRepo repository.CategoryRepository,
	activityRepo repository.ActivityRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		productRepo:   productRepo,
		txRepo:        txRepo,
		warehouseRepo: warehouseRepo,
		categoryRepo:  categoryRepo,
		activityRepo:  activityRepo,
		txManager:     txManager,
		hub:           hub,
	}
}

func mapProduct(p *model.Product) ProductResponse {
	res := ProductResponse{
		ID:           p.ID.String(),
		Code:         p.Code,
		Name:         p.Name,
		Unit:         p.Unit,
		Price:        p.Price,
		Cost:         p.Cost,
		CurrentStock: p.CurrentStock,
		ReorderLevel: p.ReorderLevel,
		Status:       p.Status,
		WarehouseID:  p.WarehouseID.String(),
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
	if p.Barcode != nil {
		res.Barcode = *p.Barcode
	}
	if p.ExpiryDate != nil {
		res.ExpiryDate = p.ExpiryDate.Format("2006-01-02")
	}
	if p.CategoryID != nil {
		res.CategoryID = p.CategoryID.String()
	}
	if p.Category != nil {
		res.CategoryName = p.Category.Name
	}
	if p.Warehouse != nil {
		res.WarehouseName = p.Warehouse.Name
	}
	return res
}

func mapTransaction(t *model.StockTransaction) TransactionResponse {
	res := TransactionResponse{
		ID:          t.ID.String(),
		ProductID:   t.ProductID.String(),
		WarehouseID: t.WarehouseID.String(),
		Type:        t.Type,
		Quantity:    t.Quantity,
		StockAfter:  t.StockAfter,
		TotalValue:  t.TotalValue.String(),
		Notes:       t.Notes,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
	if t.Product != nil {
		res.ProductName = t.Product.Name
		res.ProductCode = t.Product.Code
	}
	if t.Warehouse != nil {
		res.WarehouseName = t.Warehouse.Name
	}
	if t.UserID != nil {
		res.UserID = t.UserID.String()
	}
	if t.User != nil {
		res.UserName = t.User.Username
	}
	return res
}

func (s *inventoryService) ListProducts(ctx context.Context, search string, limit, offset int) ([]ProductResponse, int64, error) {
	products, total, err := s.productRepo.List(ctx, search, limit, offset)
	if err != nil {
		return nil, 0, apperror.Storage("failed to list products", err)
	}

	res := make([]ProductResponse, 0, len(products))
	for i := range products {
		res = append(res, mapProduct(&products[i]))
	}
	return res, total, nil
}

// buildProduct validates the shared create/update fields and resolves the
// referenced warehouse and category.
func (s *inventoryService) buildProduct(ctx context.Context, p *model.Product, code, barcode, name, unit string, price, cost float64, reorderLevel int, categoryID, warehouseID, expiryDate string, isCreate bool) error {
	if cost > price {
		return apperror.Validation("cost must not exceed price")
	}

	warehouseUUID, err := uuid.Parse(warehouseID)
	if err != nil {
		return apperror.Validation("invalid warehouse_id")
	}
	if _, err := s.warehouseRepo.FindByID(ctx, warehouseUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Validation("warehouse does not exist")
		}
		return apperror.Storage("failed to resolve warehouse", err)
	}

	p.Code = code
	p.Name = name
	p.Unit = unit
	p.Price = price
	p.Cost = cost
	p.ReorderLevel = reorderLevel
	p.WarehouseID = warehouseUUID

	p.Barcode = nil
	if barcode != "" {
		p.Barcode = &barcode
	}

	p.CategoryID = nil
	if categoryID != "" {
		categoryUUID, err := uuid.Parse(categoryID)
		if err != nil {
			return apperror.Validation("invalid category_id")
		}
		if _, err := s.categoryRepo.FindByID(ctx, categoryUUID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.Validation("category does not exist")
			}
			return apperror.Storage("failed to resolve category", err)
		}
		p.CategoryID = &categoryUUID
	}

	p.ExpiryDate = nil
	if expiryDate != "" {
		parsed, err := time.Parse("2006-01-02", expiryDate)
		if err != nil {
			return apperror.Validation("invalid expiry_date, expected YYYY-MM-DD")
		}
		if isCreate {
			today := time.Now().Truncate(24 * time.Hour)
			if parsed.Before(today) {
				return apperror.Validation("expiry_date must not be in the past")
			}
		}
		p.ExpiryDate = &parsed
	}

	return nil
}

func (s *inventoryService) CreateProduct(ctx context.Context, userID string, req CreateProductRequest) (ProductResponse, error) {
	if existing, err := s.productRepo.FindByCode(ctx, req.Code); err == nil && existing != nil {
		return ProductResponse{}, apperror.Conflict("product code already exists")
	}
	if req.Barcode != "" {
		if existing, err := s.productRepo.FindByBarcode(ctx, req.Barcode); err == nil && existing != nil {
			return ProductResponse{}, apperror.Conflict("barcode already exists")
		}
	}

	product := model.Product{
		CurrentStock: req.CurrentStock,
		Status:       model.StockStatus(req.CurrentStock, req.ReorderLevel),
	}
	if err := s.buildProduct(ctx, &product, req.Code, req.Barcode, req.Name, req.Unit,
		req.Price, req.Cost, req.ReorderLevel, req.CategoryID, req.WarehouseID, req.ExpiryDate, true); err != nil {
		return ProductResponse{}, err
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Create(txCtx, &product); err != nil {
			return apperror.Storage("failed to create product", err)
		}
		return s.logActivity(txCtx, userID, model.ActionCreateProduct, product.ID.String(), product.Name, req)
	})
	if err != nil {
		return ProductResponse{}, err
	}

	s.broadcast("product_created", map[string]interface{}{
		"id":     product.ID.String(),
		"code":   product.Code,
		"name":   product.Name,
		"stock":  product.CurrentStock,
		"status": product.Status,
	})

	return mapProduct(&product), nil
}

func (s *inventoryService) UpdateProduct(ctx context.Context, userID, id string, req UpdateProductRequest) (ProductResponse, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return ProductResponse{}, apperror.Validation("invalid product id")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductResponse{}, apperror.NotFound("product not found")
		}
		return ProductResponse{}, apperror.Storage("failed to load product", err)
	}

	if req.Code != product.Code {
		if existing, err := s.productRepo.FindByCode(ctx, req.Code); err == nil && existing != nil {
			return ProductResponse{}, apperror.Conflict("product code already exists")
		}
	}

	if err := s.buildProduct(ctx, product, req.Code, req.Barcode, req.Name, req.Unit,
		req.Price, req.Cost, req.ReorderLevel, req.CategoryID, req.WarehouseID, req.ExpiryDate, false); err != nil {
		return ProductResponse{}, err
	}
	// Stock is only mutated by movements; updates may shift the reorder
	// threshold, so the label is recomputed here as well.
	product.Status = model.StockStatus(product.CurrentStock, product.ReorderLevel)

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Update(txCtx, product); err != nil {
			return apperror.Storage("failed to update product", err)
		}
		return s.logActivity(txCtx, userID, model.ActionUpdateProduct, product.ID.String(), product.Name, req)
	})
	if err != nil {
		return ProductResponse{}, err
	}

	s.broadcast("product_updated", map[string]interface{}{
		"id":     product.ID.String(),
		"code":   product.Code,
		"name":   product.Name,
		"stock":  product.CurrentStock,
		"status": product.Status,
	})

	return mapProduct(product), nil
}

func (s *inventoryService) DeleteProduct(ctx context.Context, userID, id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return apperror.Validation("invalid product id")
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("product not found")
		}
		return apperror.Storage("failed to load product", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Delete(txCtx, productID); err != nil {
			return apperror.Storage("failed to delete product", err)
		}
		return s.logActivity(txCtx, userID, model.ActionDeleteProduct, product.ID.String(), product.Name, map[string]bool{"deleted": true})
	})
	if err != nil {
		return err
	}

	s.broadcast("product_deleted", map[string]interface{}{
		"id":   product.ID.String(),
		"name": product.Name,
	})
	return nil
}

// RecordTransaction appends a movement and adjusts the product's stock in one
// database transaction. The product row is locked for the duration so
// concurrent movements on the same product serialize.
func (s *inventoryService) RecordTransaction(ctx context.Context, userID string, req RecordTransactionRequest) (TransactionResponse, error) {
	if !model.ValidTxType(req.Type) {
		return TransactionResponse{}, apperror.Validation("invalid transaction type: must be IN, OUT, TRANSFER or RETURN")
	}
	if req.Quantity <= 0 {
		return TransactionResponse{}, apperror.Validation("quantity must be positive")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return TransactionResponse{}, apperror.Validation("invalid product_id")
	}
	warehouseID, err := uuid.Parse(req.WarehouseID)
	if err != nil {
		return TransactionResponse{}, apperror.Validation("invalid warehouse_id")
	}
	if _, err := s.warehouseRepo.FindByID(ctx, warehouseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TransactionResponse{}, apperror.Validation("warehouse does not exist")
		}
		return TransactionResponse{}, apperror.Storage("failed to resolve warehouse", err)
	}

	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}

	var movement model.StockTransaction
	var newStock int
	var productName string

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		product, err := s.productRepo.FindByIDForUpdate(txCtx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("product not found")
			}
			return apperror.Storage("failed to lock product", err)
		}
		productName = product.Name

		newStock = product.CurrentStock + model.StockDelta(req.Type, req.Quantity)
		if newStock < 0 {
			return apperror.Validation("insufficient stock")
		}
		status := model.StockStatus(newStock, product.ReorderLevel)

		if err := s.productRepo.UpdateStock(txCtx, product.ID, newStock, status); err != nil {
			return apperror.Storage("failed to update stock", err)
		}

		movement = model.StockTransaction{
			ProductID:   product.ID,
			WarehouseID: warehouseID,
			UserID:      uid,
			Type:        req.Type,
			Quantity:    req.Quantity,
			StockAfter:  newStock,
			TotalValue:  decimal.NewFromFloat(product.Price).Mul(decimal.NewFromInt(int64(req.Quantity))),
			Notes:       req.Notes,
		}
		if err := s.txRepo.Create(txCtx, &movement); err != nil {
			return apperror.Storage("failed to record transaction", err)
		}

		return s.logActivity(txCtx, userID, model.ActionRecordTransaction, movement.ID.String(), product.Name, map[string]interface{}{
			"type":        req.Type,
			"quantity":    req.Quantity,
			"stock_after": newStock,
		})
	})
	if err != nil {
		return TransactionResponse{}, err
	}

	s.broadcast("transaction_created", map[string]interface{}{
		"id":           movement.ID.String(),
		"product_id":   productID.String(),
		"product_name": productName,
		"type":         req.Type,
		"quantity":     req.Quantity,
		"new_stock":    newStock,
	})

	res := mapTransaction(&movement)
	res.ProductName = productName
	return res, nil
}

func (s *inventoryService) ListTransactions(ctx context.Context, limit, offset int) ([]TransactionResponse, int64, error) {
	txs, total, err := s.txRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperror.Storage("failed to list transactions", err)
	}

	res := make([]TransactionResponse, 0, len(txs))
	for i := range txs {
		res = append(res, mapTransaction(&txs[i]))
	}
	return res, total, nil
}

func (s *inventoryService) GetTransaction(ctx context.Context, id string) (TransactionResponse, error) {
	txID, err := uuid.Parse(id)
	if err != nil {
		return TransactionResponse{}, apperror.Validation("invalid transaction id")
	}

	tx, err := s.txRepo.FindByID(ctx, txID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TransactionResponse{}, apperror.NotFound("transaction not found")
		}
		return TransactionResponse{}, apperror.Storage("failed to load transaction", err)
	}
	return mapTransaction(tx), nil
}

func (s *inventoryService) logActivity(ctx context.Context, userID, action, entityID, entityName string, payload interface{}) error {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}

	details, _ := json.Marshal(payload)
	entry := &model.ActivityLog{
		UserID:     uid,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(details),
	}
	if err := s.activityRepo.Log(ctx, entry); err != nil {
		return apperror.Storage("failed to write activity log", err)
	}
	return nil
}

func (s *inventoryService) broadcast(event string, data map[string]interface{}) {
	if s.hub == nil {
		return
	}
	msg, err := json.Marshal(map[string]interface{}{
		"type":  "stock_update",
		"event": event,
		"data":  data,
	})
	if err != nil {
		return
	}
	s.hub.Broadcast <- msg
}
