package featureflag

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/entities"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type (
	FeatureFlagService interface {
		UpsertFlag(ctx context.Context, key string, req domain.UpsertFeatureFlagRequest) (*domain.FeatureFlagResponse, error)
		// GetFlagsForPlan returns enabled flags visible to the given plan.
		// A flag with an empty plan list applies to every plan.
		GetFlagsForPlan(ctx context.Context, plan string) ([]*domain.FeatureFlagResponse, error)
		GetAllFlags(ctx context.Context) ([]*domain.FeatureFlagResponse, error)
	}

	featureFlagService struct {
		featureFlagRepository FeatureFlagRepository
	}
)

func NewFeatureFlagService(featureFlagRepository FeatureFlagRepository) FeatureFlagService {
	return &featureFlagService{
		featureFlagRepository: featureFlagRepository,
	}
}

func (s *featureFlagService) UpsertFlag(ctx context.Context, key string, req domain.UpsertFeatureFlagRequest) (*domain.FeatureFlagResponse, error) {
	now := time.Now()
	flag := &entities.FeatureFlag{
		ID:          uuid.New(),
		Key:         key,
		Name:        req.Name,
		Description: req.Description,
		Enabled:     req.Enabled,
		Beta:        req.Beta,
		Plans:       strings.Join(req.Plans, ","),
		Category:    req.Category,
		Timestamp: entities.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.featureFlagRepository.UpsertFlag(ctx, flag); err != nil {
		return nil, err
	}

	return toFlagResponse(flag), nil
}

func (s *featureFlagService) GetFlagsForPlan(ctx context.Context, plan string) ([]*domain.FeatureFlagResponse, error) {
	flags, err := s.featureFlagRepository.GetFlags(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.FeatureFlagResponse, 0, len(flags))
	for _, flag := range flags {
		if !flag.Enabled {
			continue
		}
		if flag.Plans != "" && !planListed(flag.Plans, plan) {
			continue
		}
		result = append(result, toFlagResponse(flag))
	}
	return result, nil
}

func (s *featureFlagService) GetAllFlags(ctx context.Context) ([]*domain.FeatureFlagResponse, error) {
	flags, err := s.featureFlagRepository.GetFlags(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.FeatureFlagResponse, 0, len(flags))
	for _, flag := range flags {
		result = append(result, toFlagResponse(flag))
	}
	return result, nil
}

func planListed(plans, plan string) bool {
	for _, p := range strings.Split(plans, ",") {
		if strings.EqualFold(strings.TrimSpace(p), plan) {
			return true
		}
	}
	return false
}

func toFlagResponse(flag *entities.FeatureFlag) *domain.FeatureFlagResponse {
	resp := &domain.FeatureFlagResponse{
		Key:         flag.Key,
		Name:        flag.Name,
		Description: flag.Description,
		Enabled:     flag.Enabled,
		Beta:        flag.Beta,
		Plans:       []string{},
		Category:    flag.Category,
	}
	if flag.Plans != "" {
		resp.Plans = strings.Split(flag.Plans, ",")
	}
	return resp
}
