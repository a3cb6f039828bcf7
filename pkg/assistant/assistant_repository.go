package assistant

import (
	"EchoForge-Backend/entities"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	AssistantRepository interface {
		UpsertProvider(ctx context.Context, provider *entities.AIProvider) error
		GetProviders(ctx context.Context) ([]*entities.AIProvider, error)
		GetEnabledProvider(ctx context.Context) (*entities.AIProvider, error)
	}

	assistantRepository struct {
		db *gorm.DB
	}
)

func NewAssistantRepository(db *gorm.DB) AssistantRepository {
	return &assistantRepository{
		db: db,
	}
}

func (r *assistantRepository) UpsertProvider(ctx context.Context, provider *entities.AIProvider) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "provider"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"model", "base_url", "api_key_ref", "enabled", "updated_at",
			}),
		}).
		Create(provider).Error
}

func (r *assistantRepository) GetProviders(ctx context.Context) ([]*entities.AIProvider, error) {
	var providers []*entities.AIProvider
	if err := r.db.WithContext(ctx).
		Order("provider ASC").
		Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}

func (r *assistantRepository) GetEnabledProvider(ctx context.Context) (*entities.AIProvider, error) {
	var provider entities.AIProvider
	if err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Order("updated_at DESC").
		First(&provider).Error; err != nil {
		return nil, err
	}
	return &provider, nil
}
