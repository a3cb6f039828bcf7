package billing

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/entities"
	"EchoForge-Backend/pkg/audit"
	"EchoForge-Backend/pkg/user"
	"context"
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testServerKey = "SB-Mid-server-testkey"

type stubSnapClient struct {
	lastRequest *snap.Request
}

func (s *stubSnapClient) CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error) {
	s.lastRequest = req
	return &snap.Response{
		Token:       "snap-token",
		RedirectURL: "https://app.sandbox.midtrans.com/snap/v3/redirect/snap-token",
	}, nil
}

func setupService(t *testing.T) (*billingService, *stubSnapClient, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.AuditLog{}))

	stub := &stubSnapClient{}
	service := &billingService{
		userRepository: user.NewUserRepository(db),
		auditService:   audit.NewAuditService(audit.NewAuditRepository(db)),
		snapClient:     stub,
		serverKey:      testServerKey,
	}
	return service, stub, db
}

func seedUser(t *testing.T, db *gorm.DB) *entities.User {
	t.Helper()
	u := &entities.User{
		ID:    uuid.New(),
		Name:  "Billing User",
		Email: "billing@example.com",
		Plan:  domain.PlanFree,
		Role:  domain.RoleUser,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func signPayload(orderID, statusCode, grossAmount string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + testServerKey))
	return hex.EncodeToString(sum[:])
}

func settlementPayload(orderID, userID string) map[string]any {
	return map[string]any{
		"order_id":           orderID,
		"transaction_status": "settlement",
		"status_code":        "200",
		"gross_amount":       "39.00",
		"custom_field1":      userID,
		"signature_key":      signPayload(orderID, "200", "39.00"),
	}
}

func TestCreateCheckout(t *testing.T) {
	service, stub, db := setupService(t)
	ctx := context.Background()
	u := seedUser(t, db)

	res, err := service.CreateCheckout(ctx, domain.CheckoutRequest{
		Plan:  domain.PlanStarter,
		Email: u.Email,
	}, u.ID.String())
	require.NoError(t, err)
	assert.NotEmpty(t, res.InvoiceURL)
	assert.Regexp(t, `^SUB-STARTER-[0-9a-f]{8}-[0-9a-f]{8}$`, res.OrderID)

	// The gateway request must carry the paying user so the settlement
	// notification can be attributed back.
	require.NotNil(t, stub.lastRequest)
	assert.Equal(t, u.ID.String(), stub.lastRequest.CustomField1)
	assert.Equal(t, res.OrderID, stub.lastRequest.TransactionDetails.OrderID)
	assert.Equal(t, int64(39), stub.lastRequest.TransactionDetails.GrossAmt)

	t.Run("unknown plan", func(t *testing.T) {
		_, err := service.CreateCheckout(ctx, domain.CheckoutRequest{
			Plan:  "PLATINUM",
			Email: u.Email,
		}, u.ID.String())
		assert.ErrorIs(t, err, domain.ErrInvalidPaymentPlan)
	})

	t.Run("malformed user id", func(t *testing.T) {
		_, err := service.CreateCheckout(ctx, domain.CheckoutRequest{
			Plan:  domain.PlanStarter,
			Email: u.Email,
		}, "u1")
		assert.ErrorIs(t, err, domain.ErrParseUUID)
	})
}

func TestHandleWebhook_SettlementUpgradesUser(t *testing.T) {
	service, _, db := setupService(t)
	ctx := context.Background()
	u := seedUser(t, db)

	res, err := service.CreateCheckout(ctx, domain.CheckoutRequest{
		Plan:  domain.PlanStarter,
		Email: u.Email,
	}, u.ID.String())
	require.NoError(t, err)

	require.NoError(t, service.HandleWebhook(ctx, settlementPayload(res.OrderID, u.ID.String())))

	var upgraded entities.User
	require.NoError(t, db.First(&upgraded, "id = ?", u.ID).Error)
	assert.Equal(t, domain.PlanStarter, upgraded.Plan)

	var entry entities.AuditLog
	require.NoError(t, db.Where("action = ?", "billing.webhook.settlement").First(&entry).Error)
	assert.Equal(t, domain.AuditStatusSuccess, entry.Status)
}

func TestHandleWebhook_RejectsForgedSignature(t *testing.T) {
	service, _, db := setupService(t)
	ctx := context.Background()
	u := seedUser(t, db)

	payload := settlementPayload("SUB-STARTER-deadbeef-cafef00d", u.ID.String())
	payload["signature_key"] = "not-the-real-signature"

	err := service.HandleWebhook(ctx, payload)
	assert.ErrorIs(t, err, domain.ErrWebhookSignature)

	var untouched entities.User
	require.NoError(t, db.First(&untouched, "id = ?", u.ID).Error)
	assert.Equal(t, domain.PlanFree, untouched.Plan)

	t.Run("missing signature", func(t *testing.T) {
		payload := settlementPayload("SUB-STARTER-deadbeef-cafef00d", u.ID.String())
		delete(payload, "signature_key")
		assert.ErrorIs(t, service.HandleWebhook(ctx, payload), domain.ErrWebhookSignature)
	})
}

func TestHandleWebhook_UnresolvedUserFailsLoudly(t *testing.T) {
	service, _, db := setupService(t)
	ctx := context.Background()
	u := seedUser(t, db)

	t.Run("notification without custom_field1", func(t *testing.T) {
		payload := settlementPayload("SUB-STARTER-deadbeef-cafef00d", "")
		delete(payload, "custom_field1")

		err := service.HandleWebhook(ctx, payload)
		assert.ErrorIs(t, err, domain.ErrWebhookUserUnresolved)

		var untouched entities.User
		require.NoError(t, db.First(&untouched, "id = ?", u.ID).Error)
		assert.Equal(t, domain.PlanFree, untouched.Plan)

		var entry entities.AuditLog
		require.NoError(t, db.Where("status = ?", domain.AuditStatusFailure).First(&entry).Error)
		assert.Equal(t, domain.ErrWebhookUserUnresolved.Error(), entry.Error)
	})

	t.Run("unknown user id", func(t *testing.T) {
		payload := settlementPayload("SUB-STARTER-deadbeef-cafef00d", uuid.NewString())
		assert.ErrorIs(t, service.HandleWebhook(ctx, payload), domain.ErrUserNotFound)
	})
}

func TestHandleWebhook_IgnoresNonSettlementStatus(t *testing.T) {
	service, _, db := setupService(t)
	ctx := context.Background()
	u := seedUser(t, db)

	payload := settlementPayload("SUB-STARTER-deadbeef-cafef00d", u.ID.String())
	payload["transaction_status"] = "pending"

	require.NoError(t, service.HandleWebhook(ctx, payload))

	var untouched entities.User
	require.NoError(t, db.First(&untouched, "id = ?", u.ID).Error)
	assert.Equal(t, domain.PlanFree, untouched.Plan)
}
