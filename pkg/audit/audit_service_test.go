package audit

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/entities"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupService(t *testing.T) (AuditService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entities.AuditLog{}))
	return NewAuditService(NewAuditRepository(db)), db
}

func TestRecord(t *testing.T) {
	service, db := setupService(t)
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("status defaults to success", func(t *testing.T) {
		service.Record(ctx, domain.AuditEntry{
			ActorID:    actorID.String(),
			ActorEmail: "admin@example.com",
			Action:     "users.bulk.updatePlan",
			Resource:   "user",
			Metadata:   map[string]any{"affected_count": 2},
			IPAddress:  "10.0.0.1",
		})

		var row entities.AuditLog
		require.NoError(t, db.Where("action = ?", "users.bulk.updatePlan").First(&row).Error)
		assert.Equal(t, domain.AuditStatusSuccess, row.Status)
		require.NotNil(t, row.ActorID)
		assert.Equal(t, actorID, *row.ActorID)
		assert.Contains(t, row.Metadata, "affected_count")
		assert.Empty(t, row.Error)
	})

	t.Run("failures capture the error text", func(t *testing.T) {
		service.Record(ctx, domain.AuditEntry{
			Action:   "crypto_payment.confirm",
			Resource: "crypto_payment",
			Status:   domain.AuditStatusFailure,
			Err:      errors.New("payment expired"),
		})

		var row entities.AuditLog
		require.NoError(t, db.Where("action = ?", "crypto_payment.confirm").First(&row).Error)
		assert.Equal(t, domain.AuditStatusFailure, row.Status)
		assert.Equal(t, "payment expired", row.Error)
		assert.Nil(t, row.ActorID)
	})
}

func TestGetAuditLogs(t *testing.T) {
	service, _ := setupService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		service.Record(ctx, domain.AuditEntry{
			Action:   "users.bulk.delete",
			Resource: "user",
			Metadata: map[string]any{"batch": i},
		})
	}

	logs, total, err := service.GetAuditLogs(ctx, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, logs, 3)
	require.NotNil(t, logs[0].Metadata)

	logs, _, err = service.GetAuditLogs(ctx, 2, 3)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}
