package payg

import (
	"EchoForge-Backend/domain"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

const recentTransactionLimit = 20

type (
	PaygService interface {
		GetBalance(ctx context.Context, userID string) (*domain.TokenBalanceResponse, error)
	}

	paygService struct {
		paygRepository PaygRepository
	}
)

func NewPaygService(paygRepository PaygRepository) PaygService {
	return &paygService{
		paygRepository: paygRepository,
	}
}

func (s *paygService) GetBalance(ctx context.Context, userID string) (*domain.TokenBalanceResponse, error) {
	user, err := s.paygRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	records, err := s.paygRepository.GetTokenTransactions(ctx, userID, recentTransactionLimit)
	if err != nil {
		return nil, err
	}

	tokens := float64(user.TokenBalanceMicro) / float64(domain.MicroPerToken)
	resp := &domain.TokenBalanceResponse{
		Balance: domain.TokenBalance{
			MicroTokens: user.TokenBalanceMicro,
			Tokens:      tokens,
			Formatted:   fmt.Sprintf("%.2f tokens", tokens),
		},
		Plan:               user.Plan,
		RecentTransactions: make([]domain.TokenTransaction, 0, len(records)),
	}

	for _, record := range records {
		tx := domain.TokenTransaction{
			ID:        record.ID.String(),
			CreatedAt: record.CreatedAt,
		}
		if record.Metadata != "" {
			var meta domain.TokenTransactionMetadata
			if err := json.Unmarshal([]byte(record.Metadata), &meta); err == nil {
				tx.TransactionType = meta.TransactionType
				tx.TokensMicro = meta.TokensMicro
				tx.Description = meta.Description
				tx.CryptoPaymentID = meta.CryptoPaymentID
				tx.PackageID = meta.PackageID
			}
		}
		resp.RecentTransactions = append(resp.RecentTransactions, tx)
	}

	return resp, nil
}
