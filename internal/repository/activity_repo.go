package repository

import (
	"context"

	"warehouse-backend/internal/model"

	"gorm.io/gorm"
)

type ActivityRepository interface {
	Log(ctx context.Context, entry *model.ActivityLog) error
	List(ctx context.Context, limit, offset int) ([]model.ActivityLog, int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Log(ctx context.Context, entry *model.ActivityLog) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *activityRepository) List(ctx context.Context, limit, offset int) ([]model.ActivityLog, int64, error) {
	var logs []model.ActivityLog
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.ActivityLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("User").Order("created_at desc").
		Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
