package domain

import "time"

const (
	TokenTransactionCredit = "CREDIT"
	TokenTransactionDebit  = "DEBIT"
)

var (
	MessageSuccessGetBalance = "token balance retrieved successfully"
	MessageFailedGetBalance  = "failed to retrieve token balance"
)

type (
	// TokenTransactionMetadata is the TOKEN_TRANSACTION variant of a usage
	// record's metadata payload.
	TokenTransactionMetadata struct {
		TransactionType string `json:"transaction_type"` // CREDIT or DEBIT
		TokensMicro     int64  `json:"tokens_micro"`
		Description     string `json:"description,omitempty"`
		CryptoPaymentID string `json:"crypto_payment_id,omitempty"`
		PackageID       string `json:"package_id,omitempty"`
	}

	TokenBalance struct {
		MicroTokens int64   `json:"micro_tokens"`
		Tokens      float64 `json:"tokens"`
		Formatted   string  `json:"formatted"`
	}

	TokenTransaction struct {
		ID              string    `json:"id"`
		TransactionType string    `json:"transaction_type"`
		TokensMicro     int64     `json:"tokens_micro"`
		Description     string    `json:"description,omitempty"`
		CryptoPaymentID string    `json:"crypto_payment_id,omitempty"`
		PackageID       string    `json:"package_id,omitempty"`
		CreatedAt       time.Time `json:"created_at"`
	}

	TokenBalanceResponse struct {
		Balance            TokenBalance       `json:"balance"`
		Plan               string             `json:"plan"`
		RecentTransactions []TokenTransaction `json:"recent_transactions"`
	}
)
