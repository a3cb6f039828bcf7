package payment

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/entities"
	"EchoForge-Backend/internal/utils"
	"EchoForge-Backend/internal/utils/mailing"
	"EchoForge-Backend/pkg/audit"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	pendingListLimit = 50
	decidedListLimit = 20
	recentWindow     = 24 * time.Hour
)

type (
	PaymentService interface {
		CreatePayment(ctx context.Context, req domain.CreatePaymentRequest, userID string) (*domain.CreatePaymentResponse, error)
		CreateTokenPurchase(ctx context.Context, req domain.TokenPurchaseRequest, userID string) (*domain.CreatePaymentResponse, error)
		GetConfirmations(ctx context.Context) (*domain.ConfirmationsResponse, error)
		DecidePayment(ctx context.Context, req domain.DecidePaymentRequest, adminID, adminEmail, ip string) (string, error)
	}

	paymentService struct {
		paymentRepository PaymentRepository
		auditService      audit.AuditService
	}
)

func NewPaymentService(paymentRepository PaymentRepository, auditService audit.AuditService) PaymentService {
	return &paymentService{
		paymentRepository: paymentRepository,
		auditService:      auditService,
	}
}

func generateReference() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("PAY-%d-%s", time.Now().UnixMilli(), suffix)
}

func walletForNetwork(network string) (string, error) {
	var wallet string
	switch network {
	case domain.NetworkTRC20:
		wallet = utils.GetConfig("USDT_TRC20_WALLET")
	case domain.NetworkERC20:
		wallet = utils.GetConfig("USDT_ERC20_WALLET")
	case domain.NetworkBEP20:
		wallet = utils.GetConfig("USDT_BEP20_WALLET")
	default:
		return "", domain.ErrInvalidNetwork
	}
	if wallet == "" {
		return "", domain.ErrWalletNotConfigured
	}
	return wallet, nil
}

func (s *paymentService) createPending(ctx context.Context, userID, plan, network string, amount decimal.Decimal, metadata *domain.PaymentMetadata) (*domain.CreatePaymentResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	wallet, err := walletForNetwork(network)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment := &entities.CryptoPayment{
		ID:               uuid.New(),
		UserID:           userUUID,
		Plan:             plan,
		Amount:           amount,
		Currency:         "USDT",
		Network:          network,
		WalletAddress:    wallet,
		PaymentReference: generateReference(),
		Status:           domain.PaymentStatusPending,
		ExpiresAt:        now.Add(domain.PaymentExpiry),
		Timestamp: entities.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return nil, err
		}
		payment.Metadata = string(raw)
	}

	if err := s.paymentRepository.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	return &domain.CreatePaymentResponse{
		ID:            payment.ID.String(),
		Reference:     payment.PaymentReference,
		Plan:          payment.Plan,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		Network:       payment.Network,
		WalletAddress: payment.WalletAddress,
		ExpiresAt:     payment.ExpiresAt,
	}, nil
}

func (s *paymentService) CreatePayment(ctx context.Context, req domain.CreatePaymentRequest, userID string) (*domain.CreatePaymentResponse, error) {
	amount, ok := domain.PlanPrices[req.Plan]
	if !ok {
		return nil, domain.ErrInvalidPaymentPlan
	}
	return s.createPending(ctx, userID, req.Plan, req.Network, amount, nil)
}

func (s *paymentService) CreateTokenPurchase(ctx context.Context, req domain.TokenPurchaseRequest, userID string) (*domain.CreatePaymentResponse, error) {
	pkg, ok := domain.TokenPackages[req.PackageID]
	if !ok {
		return nil, domain.ErrInvalidTokenPackage
	}

	metadata := &domain.PaymentMetadata{
		Kind:        domain.PaymentMetadataKindTokenPurchase,
		TokensMicro: pkg.TokensMicro,
		PackageID:   pkg.ID,
	}
	return s.createPending(ctx, userID, domain.PlanPayAsYouGo, req.Network, pkg.Price, metadata)
}

func toPaymentSummary(p *entities.CryptoPayment) domain.PaymentSummary {
	summary := domain.PaymentSummary{
		ID:            p.ID.String(),
		Reference:     p.PaymentReference,
		Plan:          p.Plan,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Network:       p.Network,
		WalletAddress: p.WalletAddress,
		Status:        p.Status,
		Notes:         p.Notes,
		VerifiedAt:    p.VerifiedAt,
		ExpiresAt:     p.ExpiresAt,
		CreatedAt:     p.CreatedAt,
	}
	if p.User != nil {
		summary.User = domain.PaymentUserSummary{
			ID:    p.User.ID.String(),
			Name:  p.User.Name,
			Email: p.User.Email,
			Plan:  p.User.Plan,
		}
	}
	return summary
}

func (s *paymentService) GetConfirmations(ctx context.Context) (*domain.ConfirmationsResponse, error) {
	since := time.Now().Add(-recentWindow)

	pending, err := s.paymentRepository.GetPendingPayments(ctx, pendingListLimit)
	if err != nil {
		return nil, err
	}
	confirmed, err := s.paymentRepository.GetDecidedPaymentsSince(ctx, domain.PaymentStatusConfirmed, since, decidedListLimit)
	if err != nil {
		return nil, err
	}
	rejected, err := s.paymentRepository.GetDecidedPaymentsSince(ctx, domain.PaymentStatusRejected, since, decidedListLimit)
	if err != nil {
		return nil, err
	}

	pendingCount, err := s.paymentRepository.CountPendingPayments(ctx)
	if err != nil {
		return nil, err
	}
	totalPending, err := s.paymentRepository.SumPendingAmounts(ctx)
	if err != nil {
		return nil, err
	}
	confirmedCount, err := s.paymentRepository.CountDecidedSince(ctx, domain.PaymentStatusConfirmed, since)
	if err != nil {
		return nil, err
	}
	rejectedCount, err := s.paymentRepository.CountDecidedSince(ctx, domain.PaymentStatusRejected, since)
	if err != nil {
		return nil, err
	}

	resp := &domain.ConfirmationsResponse{
		Pending:         make([]domain.PaymentSummary, 0, len(pending)),
		RecentConfirmed: make([]domain.PaymentSummary, 0, len(confirmed)),
		RecentRejected:  make([]domain.PaymentSummary, 0, len(rejected)),
		Stats: domain.ConfirmationStats{
			PendingCount:      pendingCount,
			TotalPendingValue: totalPending,
			ConfirmedLast24h:  confirmedCount,
			RejectedLast24h:   rejectedCount,
		},
	}
	for _, p := range pending {
		resp.Pending = append(resp.Pending, toPaymentSummary(p))
	}
	for _, p := range confirmed {
		resp.RecentConfirmed = append(resp.RecentConfirmed, toPaymentSummary(p))
	}
	for _, p := range rejected {
		resp.RecentRejected = append(resp.RecentRejected, toPaymentSummary(p))
	}

	return resp, nil
}

// DecidePayment applies an admin confirm/reject decision. All preconditions
// (terminal status, expiry, PAYG token amount) are validated before any
// mutating write, and the credit path runs in a single transaction guarded
// on the payment still being pending.
func (s *paymentService) DecidePayment(ctx context.Context, req domain.DecidePaymentRequest, adminID, adminEmail, ip string) (string, error) {
	message, err := s.decide(ctx, req, adminID)

	entry := domain.AuditEntry{
		ActorID:    adminID,
		ActorEmail: adminEmail,
		Action:     "crypto_payment." + req.Action,
		Resource:   "crypto_payment",
		IPAddress:  ip,
		Metadata: map[string]any{
			"payment_id": req.PaymentID,
			"notes":      req.Notes,
		},
	}
	if err != nil {
		entry.Status = domain.AuditStatusFailure
		entry.Err = err
	}
	s.auditService.Record(ctx, entry)

	return message, err
}

func (s *paymentService) decide(ctx context.Context, req domain.DecidePaymentRequest, adminID string) (string, error) {
	if req.Action != domain.PaymentActionConfirm && req.Action != domain.PaymentActionReject {
		return "", domain.ErrInvalidPaymentAction
	}

	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return "", domain.ErrParseUUID
	}

	payment, err := s.paymentRepository.GetPaymentByID(ctx, req.PaymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrPaymentNotFound
		}
		return "", err
	}

	if payment.Status == domain.PaymentStatusConfirmed || payment.Status == domain.PaymentStatusRejected {
		return "", domain.ErrPaymentAlreadyDecided
	}

	now := time.Now()
	if now.After(payment.ExpiresAt) {
		return "", domain.ErrPaymentExpired
	}

	if req.Action == domain.PaymentActionReject {
		if err := s.paymentRepository.RejectPayment(ctx, payment.ID, adminUUID, req.Notes, now); err != nil {
			return "", err
		}
		s.notifyOwner(payment, "Payment rejected", fmt.Sprintf(
			"Your payment %s was rejected. Contact support if you believe this is an error.",
			payment.PaymentReference,
		))
		return domain.MessageSuccessRejectPayment, nil
	}

	if payment.Plan == domain.PlanPayAsYouGo {
		var metadata domain.PaymentMetadata
		if payment.Metadata != "" {
			if err := json.Unmarshal([]byte(payment.Metadata), &metadata); err != nil {
				return "", domain.ErrInvalidTokenAmount
			}
		}
		if metadata.TokensMicro <= 0 {
			return "", domain.ErrInvalidTokenAmount
		}

		ledgerMeta, err := json.Marshal(domain.TokenTransactionMetadata{
			TransactionType: domain.TokenTransactionCredit,
			TokensMicro:     metadata.TokensMicro,
			Description:     fmt.Sprintf("Token purchase via crypto payment %s", payment.PaymentReference),
			CryptoPaymentID: payment.ID.String(),
			PackageID:       metadata.PackageID,
		})
		if err != nil {
			return "", err
		}

		ledger := &entities.UsageRecord{
			ID:       uuid.New(),
			UserID:   payment.UserID,
			Type:     domain.UsageTypeTokenTransaction,
			Count:    1,
			Metadata: string(ledgerMeta),
			Timestamp: entities.Timestamp{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}

		if err := s.paymentRepository.ConfirmTokenPayment(ctx, payment, adminUUID, req.Notes, now, metadata.TokensMicro, ledger); err != nil {
			return "", err
		}
	} else {
		if err := s.paymentRepository.ConfirmPlanPayment(ctx, payment, adminUUID, req.Notes, now); err != nil {
			return "", err
		}
	}

	s.notifyOwner(payment, "Payment confirmed", fmt.Sprintf(
		"Your payment %s has been confirmed and your account upgraded.",
		payment.PaymentReference,
	))
	return domain.MessageSuccessConfirmPayment, nil
}

func (s *paymentService) notifyOwner(payment *entities.CryptoPayment, subject, body string) {
	if payment.User == nil || payment.User.Email == "" {
		return
	}
	if err := mailing.SendMail(payment.User.Email, subject, body); err != nil {
		log.Errorf("failed to send payment notification for %s: %v", payment.PaymentReference, err)
	}
}
