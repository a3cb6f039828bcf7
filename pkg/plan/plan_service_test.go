package plan

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/entities"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Analysis{},
		&entities.UsageRecord{},
	))
	return db
}

func seedAnalyses(t *testing.T, db *gorm.DB, userID uuid.UUID, n int, createdAt time.Time) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, db.Create(&entities.Analysis{
			ID:       uuid.New(),
			UserID:   userID,
			Status:   domain.AnalysisStatusCompleted,
			FileName: "sample.csv",
			Timestamp: entities.Timestamp{
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
			},
		}).Error)
	}
}

func TestCheckUsageLimit_Analysis(t *testing.T) {
	db := setupTestDB(t)
	service := NewPlanService(NewPlanRepository(db))
	ctx := context.Background()
	userID := uuid.New()

	t.Run("allowed below the daily limit", func(t *testing.T) {
		seedAnalyses(t, db, userID, 4, time.Now())

		res, err := service.CheckUsageLimit(ctx, userID.String(), domain.PlanFree, domain.UsageTypeAnalysis)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, int64(4), res.Used)
		assert.Equal(t, int64(1), res.Remaining)
		assert.Equal(t, int64(5), res.Limit)
		assert.False(t, res.Unlimited)
	})

	t.Run("blocked once the limit is reached", func(t *testing.T) {
		seedAnalyses(t, db, userID, 1, time.Now())

		res, err := service.CheckUsageLimit(ctx, userID.String(), domain.PlanFree, domain.UsageTypeAnalysis)
		require.NoError(t, err)
		assert.False(t, res.Allowed)
		assert.Equal(t, int64(5), res.Used)
		assert.Equal(t, int64(0), res.Remaining)
	})

	t.Run("yesterday's analyses do not count", func(t *testing.T) {
		other := uuid.New()
		seedAnalyses(t, db, other, 5, time.Now().AddDate(0, 0, -1))

		res, err := service.CheckUsageLimit(ctx, other.String(), domain.PlanFree, domain.UsageTypeAnalysis)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, int64(0), res.Used)
	})

	t.Run("enterprise is unlimited", func(t *testing.T) {
		res, err := service.CheckUsageLimit(ctx, userID.String(), domain.PlanEnterprise, domain.UsageTypeAnalysis)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.True(t, res.Unlimited)
		assert.Equal(t, int64(-1), res.Limit)
		assert.Equal(t, int64(-1), res.Remaining)
	})

	t.Run("unknown plan gets free limits", func(t *testing.T) {
		res, err := service.CheckUsageLimit(ctx, userID.String(), "LEGACY_GOLD", domain.UsageTypeAnalysis)
		require.NoError(t, err)
		assert.Equal(t, int64(5), res.Limit)
	})
}

func TestCheckUsageLimit_APICall(t *testing.T) {
	db := setupTestDB(t)
	service := NewPlanService(NewPlanRepository(db))
	ctx := context.Background()
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		require.NoError(t, service.RecordUsage(ctx, userID.String(), domain.UsageTypeAPICall, 1, ""))
	}

	res, err := service.CheckUsageLimit(ctx, userID.String(), domain.PlanStarter, domain.UsageTypeAPICall)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, int64(3), res.Used)
	assert.Equal(t, int64(1_000), res.Limit)
	assert.Equal(t, int64(997), res.Remaining)

	// Reset date is the start of next month.
	now := time.Now()
	nextMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	assert.Equal(t, nextMonth, res.ResetDate)
}

func TestGetUsageLimits(t *testing.T) {
	db := setupTestDB(t)
	service := NewPlanService(NewPlanRepository(db))
	ctx := context.Background()
	userID := uuid.New()

	seedAnalyses(t, db, userID, 2, time.Now())

	res, err := service.GetUsageLimits(ctx, userID.String(), domain.PlanPro)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanPro, res.Plan)
	assert.Equal(t, int64(2), res.Analysis.Used)
	assert.Equal(t, int64(500), res.Analysis.Limit)
	assert.Equal(t, int64(10_000), res.APICall.Limit)
}

func TestRecordUsage(t *testing.T) {
	db := setupTestDB(t)
	service := NewPlanService(NewPlanRepository(db))
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, service.RecordUsage(ctx, userID.String(), domain.UsageTypeAnalysis, 1, `{"source":"upload"}`))

	var record entities.UsageRecord
	require.NoError(t, db.Where("user_id = ?", userID).First(&record).Error)
	assert.Equal(t, domain.UsageTypeAnalysis, record.Type)
	assert.Equal(t, 1, record.Count)

	err := service.RecordUsage(ctx, "not-a-uuid", domain.UsageTypeAnalysis, 1, "")
	assert.ErrorIs(t, err, domain.ErrParseUUID)
}
