package plan

import (
	"EchoForge-Backend/entities"
	"context"
	"time"

	"gorm.io/gorm"
)

type (
	PlanRepository interface {
		CountAnalysesBetween(ctx context.Context, userID string, from, to time.Time) (int64, error)
		CountUsageRecordsBetween(ctx context.Context, userID, recordType string, from, to time.Time) (int64, error)
		CreateUsageRecord(ctx context.Context, record *entities.UsageRecord) error
	}

	planRepository struct {
		db *gorm.DB
	}
)

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{
		db: db,
	}
}

func (r *planRepository) CountAnalysesBetween(ctx context.Context, userID string, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Analysis{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *planRepository) CountUsageRecordsBetween(ctx context.Context, userID, recordType string, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.UsageRecord{}).
		Where("user_id = ? AND type = ? AND created_at >= ? AND created_at < ?", userID, recordType, from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *planRepository) CreateUsageRecord(ctx context.Context, record *entities.UsageRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}
