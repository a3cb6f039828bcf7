package payment

import (
	"EchoForge-Backend/domain"
	"EchoForge-Backend/entities"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	PaymentRepository interface {
		CreatePayment(ctx context.Context, payment *entities.CryptoPayment) error
		GetPaymentByID(ctx context.Context, id string) (*entities.CryptoPayment, error)
		GetPendingPayments(ctx context.Context, limit int) ([]*entities.CryptoPayment, error)
		GetDecidedPaymentsSince(ctx context.Context, status string, since time.Time, limit int) ([]*entities.CryptoPayment, error)
		CountPendingPayments(ctx context.Context) (int64, error)
		SumPendingAmounts(ctx context.Context) (decimal.Decimal, error)
		CountDecidedSince(ctx context.Context, status string, since time.Time) (int64, error)

		RejectPayment(ctx context.Context, paymentID, adminID uuid.UUID, notes string, now time.Time) error
		ConfirmPlanPayment(ctx context.Context, payment *entities.CryptoPayment, adminID uuid.UUID, notes string, now time.Time) error
		ConfirmTokenPayment(ctx context.Context, payment *entities.CryptoPayment, adminID uuid.UUID, notes string, now time.Time, tokensMicro int64, ledger *entities.UsageRecord) error
	}

	paymentRepository struct {
		db *gorm.DB
	}
)

// pendingStatuses guards every decision write: a terminal payment matches
// zero rows, so double-submission cannot re-apply side effects.
var pendingStatuses = []string{
	domain.PaymentStatusPending,
	domain.PaymentStatusPendingVerification,
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

func (r *paymentRepository) CreatePayment(ctx context.Context, payment *entities.CryptoPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) GetPaymentByID(ctx context.Context, id string) (*entities.CryptoPayment, error) {
	var payment entities.CryptoPayment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) GetPendingPayments(ctx context.Context, limit int) ([]*entities.CryptoPayment, error) {
	var payments []*entities.CryptoPayment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("status IN ?", pendingStatuses).
		Order("created_at DESC").
		Limit(limit).
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) GetDecidedPaymentsSince(ctx context.Context, status string, since time.Time, limit int) ([]*entities.CryptoPayment, error) {
	var payments []*entities.CryptoPayment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ? AND verified_at >= ?", status, since).
		Order("verified_at DESC").
		Limit(limit).
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) CountPendingPayments(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.CryptoPayment{}).
		Where("status IN ?", pendingStatuses).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *paymentRepository) SumPendingAmounts(ctx context.Context) (decimal.Decimal, error) {
	var total string
	if err := r.db.WithContext(ctx).
		Model(&entities.CryptoPayment{}).
		Where("status IN ?", pendingStatuses).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(total)
}

func (r *paymentRepository) CountDecidedSince(ctx context.Context, status string, since time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.CryptoPayment{}).
		Where("status = ? AND verified_at >= ?", status, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *paymentRepository) RejectPayment(ctx context.Context, paymentID, adminID uuid.UUID, notes string, now time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&entities.CryptoPayment{}).
		Where("id = ? AND status IN ?", paymentID, pendingStatuses).
		Updates(map[string]any{
			"status":      domain.PaymentStatusRejected,
			"verified_at": now,
			"verified_by": adminID,
			"notes":       notes,
			"updated_at":  now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPaymentAlreadyDecided
	}
	return nil
}

func (r *paymentRepository) ConfirmPlanPayment(ctx context.Context, payment *entities.CryptoPayment, adminID uuid.UUID, notes string, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.CryptoPayment{}).
			Where("id = ? AND status IN ?", payment.ID, pendingStatuses).
			Updates(map[string]any{
				"status":      domain.PaymentStatusConfirmed,
				"verified_at": now,
				"verified_by": adminID,
				"notes":       notes,
				"updated_at":  now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrPaymentAlreadyDecided
		}

		return tx.Model(&entities.User{}).
			Where("id = ?", payment.UserID).
			Updates(map[string]any{
				"plan":           payment.Plan,
				"email_verified": now,
				"updated_at":     now,
			}).Error
	})
}

func (r *paymentRepository) ConfirmTokenPayment(ctx context.Context, payment *entities.CryptoPayment, adminID uuid.UUID, notes string, now time.Time, tokensMicro int64, ledger *entities.UsageRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.CryptoPayment{}).
			Where("id = ? AND status IN ?", payment.ID, pendingStatuses).
			Updates(map[string]any{
				"status":      domain.PaymentStatusConfirmed,
				"verified_at": now,
				"verified_by": adminID,
				"notes":       notes,
				"updated_at":  now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrPaymentAlreadyDecided
		}

		if err := tx.Model(&entities.User{}).
			Where("id = ?", payment.UserID).
			Updates(map[string]any{
				"token_balance_micro": gorm.Expr("token_balance_micro + ?", tokensMicro),
				"plan":                domain.PlanPayAsYouGo,
				"email_verified":      now,
				"updated_at":          now,
			}).Error; err != nil {
			return err
		}

		return tx.Create(ledger).Error
	})
}
