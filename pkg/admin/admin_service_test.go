package admin

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/entities"
	"EchoForge-Backend/pkg/audit"
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

func setupService(t *testing.T) (AdminService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.AuditLog{}))

	auditService := audit.NewAuditService(audit.NewAuditRepository(db))
	return NewAdminService(NewAdminRepository(db), auditService), db
}

func seedUsers(t *testing.T, db *gorm.DB, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		user := &entities.User{
			ID:            uuid.New(),
			Name:          "User",
			Email:         uuid.NewString() + "@example.com",
			Plan:          domain.PlanFree,
			Role:          domain.RoleUser,
			AnalysesCount: 7,
			APICallsCount: 42,
			Timestamp: entities.Timestamp{
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			},
		}
		require.NoError(t, db.Create(user).Error)
		ids = append(ids, user.ID.String())
	}
	return ids
}

func TestBulkUserOperation_UpdatePlan(t *testing.T) {
	service, db := setupService(t)
	ctx := context.Background()
	ids := seedUsers(t, db, 2)

	res, err := service.BulkUserOperation(ctx, domain.BulkUserOperationRequest{
		Operation: domain.BulkOpUpdatePlan,
		UserIDs:   ids,
		Data:      &domain.BulkOperationData{Plan: domain.PlanPro},
	}, uuid.NewString(), "admin@example.com", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.AffectedCount)
	assert.Equal(t, domain.BulkOpUpdatePlan, res.Operation)

	var count int64
	require.NoError(t, db.Model(&entities.User{}).Where("plan = ?", domain.PlanPro).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	var trail entities.AuditLog
	require.NoError(t, db.Where("action = ?", "users.bulk.updatePlan").First(&trail).Error)
	assert.Equal(t, domain.AuditStatusSuccess, trail.Status)
}

func TestBulkUserOperation_UpdateRole(t *testing.T) {
	service, db := setupService(t)
	ctx := context.Background()
	ids := seedUsers(t, db, 3)

	res, err := service.BulkUserOperation(ctx, domain.BulkUserOperationRequest{
		Operation: domain.BulkOpUpdateRole,
		UserIDs:   ids[:2],
		Data:      &domain.BulkOperationData{Role: domain.RoleModerator},
	}, uuid.NewString(), "admin@example.com", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.AffectedCount)

	var untouched entities.User
	require.NoError(t, db.Where("id = ?", ids[2]).First(&untouched).Error)
	assert.Equal(t, domain.RoleUser, untouched.Role)
}

func TestBulkUserOperation_Delete(t *testing.T) {
	service, db := setupService(t)
	ctx := context.Background()
	ids := seedUsers(t, db, 2)

	res, err := service.BulkUserOperation(ctx, domain.BulkUserOperationRequest{
		Operation: domain.BulkOpDelete,
		UserIDs:   ids,
	}, uuid.NewString(), "admin@example.com", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.AffectedCount)

	var count int64
	require.NoError(t, db.Model(&entities.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBulkUserOperation_VerifyEmail(t *testing.T) {
	service, db := setupService(t)
	ctx := context.Background()
	ids := seedUsers(t, db, 1)

	_, err := service.BulkUserOperation(ctx, domain.BulkUserOperationRequest{
		Operation: domain.BulkOpVerifyEmail,
		UserIDs:   ids,
	}, uuid.NewString(), "admin@example.com", "127.0.0.1")
	require.NoError(t, err)

	var user entities.User
	require.NoError(t, db.Where("id = ?", ids[0]).First(&user).Error)
	assert.NotNil(t, user.EmailVerified)
}

func TestBulkUserOperation_ResetUsage(t *testing.T) {
	service, db := setupService(t)
	ctx := context.Background()
	ids := seedUsers(t, db, 1)

	_, err := service.BulkUserOperation(ctx, domain.BulkUserOperationRequest{
		Operation: domain.BulkOpResetUsage,
		UserIDs:   ids,
	}, uuid.NewString(), "admin@example.com", "127.0.0.1")
	require.NoError(t, err)

	var user entities.User
	require.NoError(t, db.Where("id = ?", ids[0]).First(&user).Error)
	assert.Zero(t, user.AnalysesCount)
	assert.Zero(t, user.APICallsCount)
}

func TestBulkUserOperation_MissingTargetsAffectNothing(t *testing.T) {
	service, _ := setupService(t)
	ctx := context.Background()

	res, err := service.BulkUserOperation(ctx, domain.BulkUserOperationRequest{
		Operation: domain.BulkOpVerifyEmail,
		UserIDs:   []string{uuid.NewString(), uuid.NewString()},
	}, uuid.NewString(), "admin@example.com", "127.0.0.1")
	require.NoError(t, err)
	assert.Zero(t, res.AffectedCount)
}

func TestBulkUserOperation_Validation(t *testing.T) {
	service, db := setupService(t)
	ctx := context.Background()
	ids := seedUsers(t, db, 1)
	adminID := uuid.NewString()

	t.Run("unknown operation names the valid ones", func(t *testing.T) {
		_, err := service.BulkUserOperation(ctx, domain.BulkUserOperationRequest{
			Operation: "promoteEveryone",
			UserIDs:   ids,
		}, adminID, "admin@example.com", "127.0.0.1")
		require.ErrorIs(t, err, domain.ErrUnknownBulkOperation)
		assert.Contains(t, err.Error(), domain.BulkOpUpdatePlan)
		assert.Contains(t, err.Error(), domain.BulkOpResetUsage)
	})

	t.Run("updatePlan requires a plan", func(t *testing.T) {
		_, err := service.BulkUserOperation(ctx, domain.BulkUserOperationRequest{
			Operation: domain.BulkOpUpdatePlan,
			UserIDs:   ids,
		}, adminID, "admin@example.com", "127.0.0.1")
		assert.ErrorIs(t, err, domain.ErrMissingBulkPlan)
	})

	t.Run("updatePlan rejects an unknown plan", func(t *testing.T) {
		_, err := service.BulkUserOperation(ctx, domain.BulkUserOperationRequest{
			Operation: domain.BulkOpUpdatePlan,
			UserIDs:   ids,
			Data:      &domain.BulkOperationData{Plan: "PLATINUM"},
		}, adminID, "admin@example.com", "127.0.0.1")
		assert.ErrorIs(t, err, domain.ErrInvalidBulkPlan)
	})

	t.Run("updateRole rejects an unknown role", func(t *testing.T) {
		_, err := service.BulkUserOperation(ctx, domain.BulkUserOperationRequest{
			Operation: domain.BulkOpUpdateRole,
			UserIDs:   ids,
			Data:      &domain.BulkOperationData{Role: "SUPERUSER"},
		}, adminID, "admin@example.com", "127.0.0.1")
		assert.ErrorIs(t, err, domain.ErrInvalidBulkRole)
	})

	t.Run("failed operations still leave an audit trail", func(t *testing.T) {
		var count int64
		require.NoError(t, db.Model(&entities.AuditLog{}).
			Where("status = ?", domain.AuditStatusFailure).
			Count(&count).Error)
		assert.GreaterOrEqual(t, count, int64(4))
	})
}
