package repository

import (
	"context"

	"warehouse-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByCode(ctx context.Context, code string) (*model.Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Product, error)
	List(ctx context.Context, search string, limit, offset int) ([]model.Product, int64, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error)
	UpdateStock(ctx context.Context, id uuid.UUID, stock int, status string) error
	Valuations(ctx context.Context) ([]model.Product, error)
	CountByStatus(ctx context.Context, statuses ...string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Create(product).Error
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return GetDB(ctx, r.db).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Product{}).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := GetDB(ctx, r.db).
		Preload("Category").
		Preload("Warehouse").
		First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByCode(ctx context.Context, code string) (*model.Product, error) {
	var product model.Product
	if err := GetDB(ctx, r.db).Where("code = ?", code).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	var product model.Product
	if err := GetDB(ctx, r.db).Where("barcode = ?", barcode).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns products ordered by name with warehouse and category joined,
// optionally filtered by a substring match on name, code or barcode.
func (r *productRepository) List(ctx context.Context, search string, limit, offset int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Product{})
	if search != "" {
		pattern := "%" + search + "%"
		db = db.Where("name ILIKE ? OR code ILIKE ? OR barcode ILIKE ?", pattern, pattern, pattern)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.
		Preload("Category").
		Preload("Warehouse").
		Order("name asc").
		Offset(offset).Limit(limit).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// FindByIDForUpdate locks the product row for the duration of the enclosing
// transaction so concurrent movements on the same product serialize.
func (r *productRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) UpdateStock(ctx context.Context, id uuid.UUID, stock int, status string) error {
	return GetDB(ctx, r.db).Model(&model.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{"current_stock": stock, "status": status}).Error
}

// Valuations returns the stock/price pairs needed for inventory valuation,
// limited to products actually holding stock.
func (r *productRepository) Valuations(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := GetDB(ctx, r.db).
		Select("id", "current_stock", "price").
		Where("current_stock > 0").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) CountByStatus(ctx context.Context, statuses ...string) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Product{}).
		Where("status IN ?", statuses).
		Count(&count).Error
	return count, err
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Product{}).Count(&count).Error
	return count, err
}
