package service

import (
	"context"
	"errors"

	"warehouse-backend/internal/model"
	"warehouse-backend/internal/repository"
	"warehouse-backend/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateWarehouseRequest struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	Capacity int    `json:"capacity" binding:"min=0"`
	Status   string `json:"status"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CatalogService manages the reference entities products hang off of:
// warehouses and categories.
type CatalogService interface {
	ListWarehouses(ctx context.Context) ([]model.Warehouse, error)
	CreateWarehouse(ctx context.Context, userID string, req CreateWarehouseRequest) (*model.Warehouse, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, userID string, req CreateCategoryRequest) (*model.Category, error)
}

type catalogService struct {
	warehouseRepo repository.WarehouseRepository
	categoryRepo  repository.CategoryRepository
	activityRepo  repository.ActivityRepository
	txManager     repository.TransactionManager
}

func NewCatalogService(
	warehouseRepo repository.WarehouseRepository,
	categoryRepo repository.CategoryRepository,
	activityRepo repository.ActivityRepository,
	txManager repository.TransactionManager,
) CatalogService {
	return &catalogService{
		warehouseRepo: warehouseRepo,
		categoryRepo:  categoryRepo,
		activityRepo:  activityRepo,
		txManager:     txManager,
	}
}

func (s *catalogService) ListWarehouses(ctx context.Context) ([]model.Warehouse, error) {
	warehouses, err := s.warehouseRepo.List(ctx)
	if err != nil {
		return nil, apperror.Storage("failed to list warehouses", err)
	}
	return warehouses, nil
}

func (s *catalogService) CreateWarehouse(ctx context.Context, userID string, req CreateWarehouseRequest) (*model.Warehouse, error) {
	if _, err := s.warehouseRepo.FindByCode(ctx, req.Code); err == nil {
		return nil, apperror.Conflict("warehouse code already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Storage("failed to check warehouse code", err)
	}

	status := req.Status
	if status == "" {
		status = model.WarehouseActive
	}

	warehouse := &model.Warehouse{
		Code:     req.Code,
		Name:     req.Name,
		Location: req.Location,
		Capacity: req.Capacity,
		Status:   status,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.warehouseRepo.Create(txCtx, warehouse); err != nil {
			return apperror.Storage("failed to create warehouse", err)
		}
		return logCatalogActivity(txCtx, s.activityRepo, userID, model.ActionCreateWarehouse, warehouse.ID.String(), warehouse.Name)
	})
	if err != nil {
		return nil, err
	}
	return warehouse, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, apperror.Storage("failed to list categories", err)
	}
	return categories, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, userID string, req CreateCategoryRequest) (*model.Category, error) {
	if _, err := s.categoryRepo.FindByName(ctx, req.Name); err == nil {
		return nil, apperror.Conflict("category name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Storage("failed to check category name", err)
	}

	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.categoryRepo.Create(txCtx, category); err != nil {
			return apperror.Storage("failed to create category", err)
		}
		return logCatalogActivity(txCtx, s.activityRepo, userID, model.ActionCreateCategory, category.ID.String(), category.Name)
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

func logCatalogActivity(ctx context.Context, repo repository.ActivityRepository, userID, action, entityID, entityName string) error {
	entry := &model.ActivityLog{
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    "{}",
	}
	if parsed, err := parseOptionalUUID(userID); err == nil {
		entry.UserID = parsed
	}
	if err := repo.Log(ctx, entry); err != nil {
		return apperror.Storage("failed to write activity log", err)
	}
	return nil
}

func parseOptionalUUID(s string) (*uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
