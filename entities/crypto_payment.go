package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CryptoPayment struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID           uuid.UUID       `json:"user_id"`
	Plan             string          `json:"plan"`
	Amount           decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Currency         string          `json:"currency"`
	Network          string          `json:"network"` // TRC20, ERC20, BEP20
	WalletAddress    string          `json:"wallet_address"`
	PaymentReference string          `gorm:"uniqueIndex" json:"payment_reference"`
	Status           string          `json:"status"` // PENDING, PENDING_VERIFICATION, CONFIRMED, REJECTED
	Notes            string          `json:"notes,omitempty"`
	VerifiedAt       *time.Time      `json:"verified_at,omitempty"`
	VerifiedBy       *uuid.UUID      `json:"verified_by,omitempty"`
	ExpiresAt        time.Time       `json:"expires_at"`
	Metadata         string          `gorm:"type:text" json:"metadata,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
