package admin

import (
	"EchoForge-Backend/entities"
	"context"
	"time"

	"gorm.io/gorm"
)

type (
	AdminRepository interface {
		BulkUpdatePlan(ctx context.Context, userIDs []string, plan string) (int64, error)
		BulkUpdateRole(ctx context.Context, userIDs []string, role string) (int64, error)
		BulkDelete(ctx context.Context, userIDs []string) (int64, error)
		BulkVerifyEmail(ctx context.Context, userIDs []string) (int64, error)
		BulkResetUsage(ctx context.Context, userIDs []string) (int64, error)
	}

	adminRepository struct {
		db *gorm.DB
	}
)

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{
		db: db,
	}
}

func (r *adminRepository) bulkUpdate(ctx context.Context, userIDs []string, values map[string]any) (int64, error) {
	values["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id IN ?", userIDs).
		Updates(values)
	return res.RowsAffected, res.Error
}

func (r *adminRepository) BulkUpdatePlan(ctx context.Context, userIDs []string, plan string) (int64, error) {
	return r.bulkUpdate(ctx, userIDs, map[string]any{"plan": plan})
}

func (r *adminRepository) BulkUpdateRole(ctx context.Context, userIDs []string, role string) (int64, error) {
	return r.bulkUpdate(ctx, userIDs, map[string]any{"role": role})
}

func (r *adminRepository) BulkDelete(ctx context.Context, userIDs []string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id IN ?", userIDs).
		Delete(&entities.User{})
	return res.RowsAffected, res.Error
}

func (r *adminRepository) BulkVerifyEmail(ctx context.Context, userIDs []string) (int64, error) {
	return r.bulkUpdate(ctx, userIDs, map[string]any{"email_verified": time.Now()})
}

func (r *adminRepository) BulkResetUsage(ctx context.Context, userIDs []string) (int64, error) {
	return r.bulkUpdate(ctx, userIDs, map[string]any{
		"analyses_count":  0,
		"api_calls_count": 0,
	})
}
