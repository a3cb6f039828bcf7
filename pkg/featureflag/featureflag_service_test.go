package featureflag

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/entities"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupService(t *testing.T) (FeatureFlagService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entities.FeatureFlag{}))
	return NewFeatureFlagService(NewFeatureFlagRepository(db)), db
}

func TestUpsertFlag(t *testing.T) {
	service, db := setupService(t)
	ctx := context.Background()

	res, err := service.UpsertFlag(ctx, "batch-export", domain.UpsertFeatureFlagRequest{
		Name:    "Batch export",
		Enabled: true,
		Plans:   []string{domain.PlanPro, domain.PlanEnterprise},
	})
	require.NoError(t, err)
	assert.Equal(t, "batch-export", res.Key)
	assert.Equal(t, []string{domain.PlanPro, domain.PlanEnterprise}, res.Plans)

	// Upserting the same key updates in place instead of duplicating.
	res, err = service.UpsertFlag(ctx, "batch-export", domain.UpsertFeatureFlagRequest{
		Name:    "Batch export",
		Enabled: false,
		Beta:    true,
		Plans:   []string{domain.PlanEnterprise},
	})
	require.NoError(t, err)
	assert.False(t, res.Enabled)
	assert.True(t, res.Beta)

	var count int64
	require.NoError(t, db.Model(&entities.FeatureFlag{}).Where("key = ?", "batch-export").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetFlagsForPlan(t *testing.T) {
	service, _ := setupService(t)
	ctx := context.Background()

	mustUpsert := func(key string, req domain.UpsertFeatureFlagRequest) {
		_, err := service.UpsertFlag(ctx, key, req)
		require.NoError(t, err)
	}

	mustUpsert("everyone", domain.UpsertFeatureFlagRequest{Name: "Everyone", Enabled: true})
	mustUpsert("pro-only", domain.UpsertFeatureFlagRequest{Name: "Pro only", Enabled: true, Plans: []string{domain.PlanPro}})
	mustUpsert("disabled", domain.UpsertFeatureFlagRequest{Name: "Disabled", Enabled: false})

	t.Run("plan sees global and plan-scoped flags", func(t *testing.T) {
		flags, err := service.GetFlagsForPlan(ctx, domain.PlanPro)
		require.NoError(t, err)

		keys := make([]string, 0, len(flags))
		for _, flag := range flags {
			keys = append(keys, flag.Key)
		}
		assert.ElementsMatch(t, []string{"everyone", "pro-only"}, keys)
	})

	t.Run("other plans do not see scoped flags", func(t *testing.T) {
		flags, err := service.GetFlagsForPlan(ctx, domain.PlanFree)
		require.NoError(t, err)
		require.Len(t, flags, 1)
		assert.Equal(t, "everyone", flags[0].Key)
	})

	t.Run("plan matching is case insensitive", func(t *testing.T) {
		flags, err := service.GetFlagsForPlan(ctx, "pro")
		require.NoError(t, err)
		assert.Len(t, flags, 2)
	})
}

func TestGetAllFlags(t *testing.T) {
	service, _ := setupService(t)
	ctx := context.Background()

	_, err := service.UpsertFlag(ctx, "a-flag", domain.UpsertFeatureFlagRequest{Name: "A", Enabled: false})
	require.NoError(t, err)
	_, err = service.UpsertFlag(ctx, "b-flag", domain.UpsertFeatureFlagRequest{Name: "B", Enabled: true})
	require.NoError(t, err)

	flags, err := service.GetAllFlags(ctx)
	require.NoError(t, err)
	require.Len(t, flags, 2)
	// Admin listing includes disabled flags, ordered by key.
	assert.Equal(t, "a-flag", flags[0].Key)
	assert.False(t, flags[0].Enabled)
}
