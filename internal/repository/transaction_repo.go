package repository

import (
	"context"
	"time"

	"warehouse-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.StockTransaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.StockTransaction, error)
	List(ctx context.Context, limit, offset int) ([]model.StockTransaction, int64, error)
	CountBetween(ctx context.Context, start, end time.Time) (int64, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *model.StockTransaction) error {
	return GetDB(ctx, r.db).Create(tx).Error
}

func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.StockTransaction, error) {
	var tx model.StockTransaction
	if err := GetDB(ctx, r.db).
		Preload("Product").
		Preload("Warehouse").
		Preload("User").
		First(&tx, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

// List returns movements newest first with product/warehouse/user joined.
func (r *transactionRepository) List(ctx context.Context, limit, offset int) ([]model.StockTransaction, int64, error) {
	var txs []model.StockTransaction
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.StockTransaction{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.
		Preload("Product").
		Preload("Warehouse").
		Preload("User").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&txs).Error; err != nil {
		return nil, 0, err
	}

	return txs, total, nil
}

func (r *transactionRepository) CountBetween(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.StockTransaction{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	return count, err
}
