package payg

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/entities"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupService(t *testing.T) (PaygService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.UsageRecord{}))
	return NewPaygService(NewPaygRepository(db)), db
}

func TestGetBalance(t *testing.T) {
	service, db := setupService(t)
	ctx := context.Background()

	user := &entities.User{
		ID:                uuid.New(),
		Name:              "Riley",
		Email:             "riley@example.com",
		Plan:              domain.PlanPayAsYouGo,
		Role:              domain.RoleUser,
		TokenBalanceMicro: 2_500_000,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
	require.NoError(t, db.Create(user).Error)

	meta, _ := json.Marshal(domain.TokenTransactionMetadata{
		TransactionType: domain.TokenTransactionCredit,
		TokensMicro:     2_500_000,
		Description:     "Token purchase via crypto payment PAY-1-abc",
		PackageID:       "payg-10",
	})
	require.NoError(t, db.Create(&entities.UsageRecord{
		ID:       uuid.New(),
		UserID:   user.ID,
		Type:     domain.UsageTypeTokenTransaction,
		Count:    1,
		Metadata: string(meta),
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}).Error)

	// Non-ledger usage records must not show up as transactions.
	require.NoError(t, db.Create(&entities.UsageRecord{
		ID:     uuid.New(),
		UserID: user.ID,
		Type:   domain.UsageTypeAPICall,
		Count:  1,
	}).Error)

	res, err := service.GetBalance(ctx, user.ID.String())
	require.NoError(t, err)

	assert.Equal(t, int64(2_500_000), res.Balance.MicroTokens)
	assert.InDelta(t, 2.5, res.Balance.Tokens, 1e-9)
	assert.Equal(t, "2.50 tokens", res.Balance.Formatted)
	assert.Equal(t, domain.PlanPayAsYouGo, res.Plan)

	require.Len(t, res.RecentTransactions, 1)
	tx := res.RecentTransactions[0]
	assert.Equal(t, domain.TokenTransactionCredit, tx.TransactionType)
	assert.Equal(t, int64(2_500_000), tx.TokensMicro)
	assert.Equal(t, "payg-10", tx.PackageID)
}

func TestGetBalance_UnknownUser(t *testing.T) {
	service, _ := setupService(t)

	_, err := service.GetBalance(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetBalance_ZeroBalance(t *testing.T) {
	service, db := setupService(t)

	user := &entities.User{
		ID:    uuid.New(),
		Name:  "Sam",
		Email: "sam@example.com",
		Plan:  domain.PlanFree,
		Role:  domain.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)

	res, err := service.GetBalance(context.Background(), user.ID.String())
	require.NoError(t, err)
	assert.Zero(t, res.Balance.MicroTokens)
	assert.Equal(t, "0.00 tokens", res.Balance.Formatted)
	assert.Empty(t, res.RecentTransactions)
}
