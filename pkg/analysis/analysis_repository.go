package analysis

import (
	"EchoForge-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	AnalysisRepository interface {
		CreateAnalysis(ctx context.Context, analysis *entities.Analysis) error
		GetAnalysisByID(ctx context.Context, id string) (*entities.Analysis, error)
		UpdateAnalysis(ctx context.Context, analysis *entities.Analysis) error
		GetUserAnalyses(ctx context.Context, userID string, page, limit int) ([]*entities.Analysis, int64, error)
		IncrementAnalysesCount(ctx context.Context, userID string) error
	}

	analysisRepository struct {
		db *gorm.DB
	}
)

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{
		db: db,
	}
}

func (r *analysisRepository) CreateAnalysis(ctx context.Context, analysis *entities.Analysis) error {
	return r.db.WithContext(ctx).Create(analysis).Error
}

func (r *analysisRepository) GetAnalysisByID(ctx context.Context, id string) (*entities.Analysis, error) {
	var analysis entities.Analysis
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&analysis).Error; err != nil {
		return nil, err
	}
	return &analysis, nil
}

func (r *analysisRepository) UpdateAnalysis(ctx context.Context, analysis *entities.Analysis) error {
	return r.db.WithContext(ctx).Save(analysis).Error
}

func (r *analysisRepository) GetUserAnalyses(ctx context.Context, userID string, page, limit int) ([]*entities.Analysis, int64, error) {
	var analyses []*entities.Analysis
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Analysis{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&analyses).Error; err != nil {
		return nil, 0, err
	}

	return analyses, count, nil
}

func (r *analysisRepository) IncrementAnalysesCount(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", userID).
		Update("analyses_count", gorm.Expr("analyses_count + 1")).Error
}
