package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPending             = "PENDING"
	PaymentStatusPendingVerification = "PENDING_VERIFICATION"
	PaymentStatusConfirmed           = "CONFIRMED"
	PaymentStatusRejected            = "REJECTED"

	NetworkTRC20 = "TRC20"
	NetworkERC20 = "ERC20"
	NetworkBEP20 = "BEP20"

	PaymentActionConfirm = "confirm"
	PaymentActionReject  = "reject"

	// PaymentExpiry is the soft deadline for a PENDING payment; decisions on
	// expired payments are refused.
	PaymentExpiry = time.Hour

	PaymentMetadataKindTokenPurchase = "token_purchase"
	PaymentMetadataKindPlanNote      = "plan_note"
)

var (
	MessageSuccessCreatePayment     = "payment created, send funds to the wallet address before it expires"
	MessageSuccessConfirmPayment    = "Payment confirmed and user upgraded"
	MessageSuccessRejectPayment     = "Payment rejected"
	MessageSuccessGetConfirmations  = "payment confirmations retrieved successfully"
	MessageFailedCreatePayment      = "failed to create payment"
	MessageFailedDecidePayment      = "failed to process payment decision"
	MessageFailedGetConfirmations   = "failed to retrieve payment confirmations"
	MessageFailedPaymentNotFound    = "payment not found"
	MessageFailedPaymentTerminal    = "payment already confirmed or rejected"
	MessageFailedPaymentExpired     = "payment expired"
	MessageFailedInvalidTokenAmount = "Invalid PAYG payment: no token amount specified"

	ErrPaymentNotFound       = errors.New("payment not found")
	ErrPaymentAlreadyDecided = errors.New("payment already confirmed or rejected")
	ErrPaymentExpired        = errors.New("payment expired")
	ErrInvalidPaymentAction  = errors.New("action must be confirm or reject")
	ErrInvalidPaymentPlan    = errors.New("plan must be STARTER, PRO or ENTERPRISE")
	ErrInvalidNetwork        = errors.New("network must be TRC20, ERC20 or BEP20")
	ErrInvalidTokenAmount    = errors.New("invalid PAYG payment: no token amount specified")
	ErrInvalidTokenPackage   = errors.New("invalid token package")
	ErrWalletNotConfigured   = errors.New("no wallet address configured for network")
)

type (
	// PaymentMetadata is the tagged payload stored on a CryptoPayment. Kind
	// discriminates the variant: token purchases carry TokensMicro and
	// PackageID, plan payments may carry a free-form note.
	PaymentMetadata struct {
		Kind        string `json:"kind"`
		TokensMicro int64  `json:"tokens_micro,omitempty"`
		PackageID   string `json:"package_id,omitempty"`
		Note        string `json:"note,omitempty"`
	}

	CreatePaymentRequest struct {
		Plan    string `json:"plan" validate:"required,oneof=STARTER PRO ENTERPRISE"`
		Network string `json:"network" validate:"required,oneof=TRC20 ERC20 BEP20"`
	}

	TokenPurchaseRequest struct {
		PackageID string `json:"package_id" validate:"required"`
		Network   string `json:"network" validate:"required,oneof=TRC20 ERC20 BEP20"`
	}

	CreatePaymentResponse struct {
		ID            string          `json:"id"`
		Reference     string          `json:"reference"`
		Plan          string          `json:"plan"`
		Amount        decimal.Decimal `json:"amount"`
		Currency      string          `json:"currency"`
		Network       string          `json:"network"`
		WalletAddress string          `json:"wallet_address"`
		ExpiresAt     time.Time       `json:"expires_at"`
	}

	DecidePaymentRequest struct {
		PaymentID string `json:"payment_id" validate:"required"`
		Action    string `json:"action" validate:"required,oneof=confirm reject"`
		Notes     string `json:"notes"`
	}

	PaymentUserSummary struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Plan  string `json:"plan"`
	}

	PaymentSummary struct {
		ID            string             `json:"id"`
		Reference     string             `json:"reference"`
		Plan          string             `json:"plan"`
		Amount        decimal.Decimal    `json:"amount"`
		Currency      string             `json:"currency"`
		Network       string             `json:"network"`
		WalletAddress string             `json:"wallet_address"`
		Status        string             `json:"status"`
		Notes         string             `json:"notes,omitempty"`
		VerifiedAt    *time.Time         `json:"verified_at,omitempty"`
		ExpiresAt     time.Time          `json:"expires_at"`
		CreatedAt     time.Time          `json:"created_at"`
		User          PaymentUserSummary `json:"user"`
	}

	ConfirmationStats struct {
		PendingCount      int64           `json:"pending_count"`
		TotalPendingValue decimal.Decimal `json:"total_pending_value"`
		ConfirmedLast24h  int64           `json:"confirmed_last_24h"`
		RejectedLast24h   int64           `json:"rejected_last_24h"`
	}

	ConfirmationsResponse struct {
		Pending         []PaymentSummary  `json:"pending"`
		RecentConfirmed []PaymentSummary  `json:"recent_confirmed"`
		RecentRejected  []PaymentSummary  `json:"recent_rejected"`
		Stats           ConfirmationStats `json:"stats"`
	}
)
