package featureflag

import (
	"EchoForge-Backend/entities"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	FeatureFlagRepository interface {
		UpsertFlag(ctx context.Context, flag *entities.FeatureFlag) error
		GetFlagByKey(ctx context.Context, key string) (*entities.FeatureFlag, error)
		GetFlags(ctx context.Context) ([]*entities.FeatureFlag, error)
	}

	featureFlagRepository struct {
		db *gorm.DB
	}
)

func NewFeatureFlagRepository(db *gorm.DB) FeatureFlagRepository {
	return &featureFlagRepository{
		db: db,
	}
}

func (r *featureFlagRepository) UpsertFlag(ctx context.Context, flag *entities.FeatureFlag) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "description", "enabled", "beta", "plans", "category", "updated_at",
			}),
		}).
		Create(flag).Error
}

func (r *featureFlagRepository) GetFlagByKey(ctx context.Context, key string) (*entities.FeatureFlag, error) {
	var flag entities.FeatureFlag
	if err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&flag).Error; err != nil {
		return nil, err
	}
	return &flag, nil
}

func (r *featureFlagRepository) GetFlags(ctx context.Context) ([]*entities.FeatureFlag, error) {
	var flags []*entities.FeatureFlag
	if err := r.db.WithContext(ctx).
		Order("key ASC").
		Find(&flags).Error; err != nil {
		return nil, err
	}
	return flags, nil
}
