package plan

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/entities"
	"context"
	"time"

	"github.com/google/uuid"
)

type (
	PlanService interface {
		// CheckUsageLimit is side-effect free; callers record usage
		// separately via RecordUsage once the action succeeds.
		CheckUsageLimit(ctx context.Context, userID, plan, usageType string) (domain.UsageCheckResult, error)
		GetUsageLimits(ctx context.Context, userID, plan string) (domain.UsageLimitsResponse, error)
		RecordUsage(ctx context.Context, userID, usageType string, count int, metadata string) error
	}

	planService struct {
		planRepository PlanRepository
	}
)

func NewPlanService(planRepository PlanRepository) PlanService {
	return &planService{
		planRepository: planRepository,
	}
}

// dayWindow returns the start of the current calendar day and the start of
// the next day, in local server time.
func dayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

// monthWindow returns the start of the current calendar month and the start
// of the next month.
func monthWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}

func (s *planService) CheckUsageLimit(ctx context.Context, userID, plan, usageType string) (domain.UsageCheckResult, error) {
	limits := domain.GetPlanLimits(plan)
	now := time.Now()

	var (
		used      int64
		limit     int64
		unlimited bool
		reset     time.Time
		err       error
	)

	switch usageType {
	case domain.UsageTypeAPICall:
		from, to := monthWindow(now)
		reset = to
		limit = limits.APICallsPerMonth
		unlimited = limits.UnlimitedAPICalls
		used, err = s.planRepository.CountUsageRecordsBetween(ctx, userID, domain.UsageTypeAPICall, from, to)
	default:
		from, to := dayWindow(now)
		reset = to
		limit = limits.AnalysesPerDay
		unlimited = limits.UnlimitedAnalyses
		used, err = s.planRepository.CountAnalysesBetween(ctx, userID, from, to)
	}
	if err != nil {
		return domain.UsageCheckResult{}, err
	}

	if unlimited {
		return domain.UsageCheckResult{
			Allowed:   true,
			Used:      used,
			Remaining: -1,
			Limit:     -1,
			Unlimited: true,
			ResetDate: reset,
		}, nil
	}

	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}

	return domain.UsageCheckResult{
		Allowed:   used < limit,
		Used:      used,
		Remaining: remaining,
		Limit:     limit,
		ResetDate: reset,
	}, nil
}

func (s *planService) GetUsageLimits(ctx context.Context, userID, plan string) (domain.UsageLimitsResponse, error) {
	analysis, err := s.CheckUsageLimit(ctx, userID, plan, domain.UsageTypeAnalysis)
	if err != nil {
		return domain.UsageLimitsResponse{}, err
	}

	apiCall, err := s.CheckUsageLimit(ctx, userID, plan, domain.UsageTypeAPICall)
	if err != nil {
		return domain.UsageLimitsResponse{}, err
	}

	return domain.UsageLimitsResponse{
		Plan:     plan,
		Analysis: analysis,
		APICall:  apiCall,
	}, nil
}

func (s *planService) RecordUsage(ctx context.Context, userID, usageType string, count int, metadata string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	record := &entities.UsageRecord{
		ID:       uuid.New(),
		UserID:   userUUID,
		Type:     usageType,
		Count:    count,
		Metadata: metadata,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	return s.planRepository.CreateUsageRecord(ctx, record)
}
