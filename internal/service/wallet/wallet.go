package wallet

import (
	"context"

	"github.com/google/uuid"

	"github.com/nkiryanov/wallet/internal/models"
	"github.com/nkiryanov/wallet/internal/repository"
)

// Read only wallet queries: current balance and transaction history.
// Always reads the latest committed state, nothing is cached between calls.
type WalletService struct {
	storage repository.Storage
}

func NewService(storage repository.Storage) *WalletService {
	return &WalletService{storage: storage}
}

func (s *WalletService) GetBalance(ctx context.Context, userID uuid.UUID) (models.Account, error) {
	return s.storage.Account().GetAccount(ctx, userID)
}

// GetHistory returns ledger entries of the user, newest first
// Empty history is an empty slice, not an error
func (s *WalletService) GetHistory(ctx context.Context, userID uuid.UUID) ([]models.LedgerEntry, error) {
	// Existence check so a missing account is distinguishable from empty history
	if _, err := s.storage.Account().GetAccount(ctx, userID); err != nil {
		return nil, err
	}

	return s.storage.Ledger().ListEntries(ctx, userID)
}
