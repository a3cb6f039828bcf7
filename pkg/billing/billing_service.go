package billing

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/internal/utils"
	"EchoForge-Backend/pkg/audit"
	"EchoForge-Backend/pkg/user"
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"
)

type (
	BillingService interface {
		CreateCheckout(ctx context.Context, req domain.CheckoutRequest, userID string) (*domain.CheckoutResponse, error)
		HandleWebhook(ctx context.Context, payload map[string]any) error
	}

	snapAPI interface {
		CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
	}

	billingService struct {
		userRepository user.UserRepository
		auditService   audit.AuditService
		snapClient     snapAPI
		serverKey      string
	}
)

func NewBillingService(userRepository user.UserRepository, auditService audit.AuditService) BillingService {
	serverKey := utils.GetConfig("SERVER_KEY")

	env := midtrans.Sandbox
	if utils.GetConfig("IsProd") == "true" {
		env = midtrans.Production
	}

	var client snap.Client
	client.New(serverKey, env)

	return &billingService{
		userRepository: userRepository,
		auditService:   auditService,
		snapClient:     &client,
		serverKey:      serverKey,
	}
}

func (s *billingService) CreateCheckout(ctx context.Context, req domain.CheckoutRequest, userID string) (*domain.CheckoutResponse, error) {
	price, ok := domain.PlanPrices[req.Plan]
	if !ok {
		return nil, domain.ErrInvalidPaymentPlan
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	orderID := fmt.Sprintf("SUB-%s-%s-%s", req.Plan, uid.String()[:8], suffix)

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: price.IntPart(),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: req.Email,
		},
		CustomField1: uid.String(),
	}

	resp, snapErr := s.snapClient.CreateTransaction(snapReq)
	if snapErr != nil {
		return nil, domain.ErrCheckoutFailed
	}

	return &domain.CheckoutResponse{
		OrderID:    orderID,
		InvoiceURL: resp.RedirectURL,
	}, nil
}

// HandleWebhook upgrades the user once the gateway reports settlement.
// The notification must carry a valid signature_key; the paying user id
// arrives in custom_field1, set at checkout time.
func (s *billingService) HandleWebhook(ctx context.Context, payload map[string]any) error {
	if !s.validSignature(payload) {
		return domain.ErrWebhookSignature
	}

	status, _ := payload["transaction_status"].(string)
	if status != "settlement" && status != "capture" {
		return nil
	}

	orderID, _ := payload["order_id"].(string)
	parts := strings.Split(orderID, "-")
	if len(parts) < 2 {
		return fmt.Errorf("malformed order id %q", orderID)
	}
	plan := parts[1]
	if _, ok := domain.PlanPrices[plan]; !ok {
		return domain.ErrInvalidPaymentPlan
	}

	rawUserID, _ := payload["custom_field1"].(string)
	err := s.upgradeUser(ctx, rawUserID, plan)

	entry := domain.AuditEntry{
		Action:   "billing.webhook.settlement",
		Resource: "user",
		Metadata: map[string]any{
			"order_id": orderID,
			"user_id":  rawUserID,
			"plan":     plan,
		},
	}
	if err != nil {
		entry.Status = domain.AuditStatusFailure
		entry.Err = err
	}
	s.auditService.Record(ctx, entry)

	return err
}

func (s *billingService) upgradeUser(ctx context.Context, rawUserID, plan string) error {
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return domain.ErrWebhookUserUnresolved
	}

	if _, err := s.userRepository.GetUserByID(ctx, userID.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	return s.userRepository.UpdateUserPlan(ctx, userID.String(), plan)
}

// validSignature checks the gateway's signature_key, the sha512 hex digest
// of order_id + status_code + gross_amount + server key.
func (s *billingService) validSignature(payload map[string]any) bool {
	orderID, _ := payload["order_id"].(string)
	statusCode, _ := payload["status_code"].(string)
	grossAmount, _ := payload["gross_amount"].(string)
	signature, _ := payload["signature_key"].(string)
	if signature == "" {
		return false
	}

	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + s.serverKey))
	expected := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(signature), []byte(expected)) == 1
}
