package payg

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	PaygRepository interface {
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetTokenTransactions(ctx context.Context, userID string, limit int) ([]*entities.UsageRecord, error)
	}

	paygRepository struct {
		db *gorm.DB
	}
)

func NewPaygRepository(db *gorm.DB) PaygRepository {
	return &paygRepository{
		db: db,
	}
}

func (r *paygRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *paygRepository) GetTokenTransactions(ctx context.Context, userID string, limit int) ([]*entities.UsageRecord, error) {
	var records []*entities.UsageRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, domain.UsageTypeTokenTransaction).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
