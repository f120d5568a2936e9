package transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nkiryanov/wallet/internal/apperrors"
	"github.com/nkiryanov/wallet/internal/models"
	"github.com/nkiryanov/wallet/internal/repository"
)

// Capability to check the sender credential without knowing how it is stored
type CredentialVerifier interface {
	// Must return apperrors.ErrCredentialInvalid if password doesn't match
	VerifyCredential(ctx context.Context, userID uuid.UUID, password string) error
}

// Transfer service: the only writer of account balances and the ledger
type TransferService struct {
	storage  repository.Storage
	verifier CredentialVerifier
}

func NewService(storage repository.Storage, verifier CredentialVerifier) *TransferService {
	return &TransferService{
		storage:  storage,
		verifier: verifier,
	}
}

// Transfer moves amount from sender to recipient and records both ledger sides.
//
// Checks run in fixed order, first failure wins:
// sender exists, credential matches, amount is positive, balance covers the
// amount, recipient exists. No check mutates anything.
//
// Both balance updates and both ledger appends commit as one db transaction.
// Account rows are locked for the duration, so a concurrent transfer over the
// same account waits and then sees the committed balance: two transfers can
// never both spend the same funds.
func (s *TransferService) Transfer(ctx context.Context, senderID uuid.UUID, recipientID uuid.UUID, amount decimal.Decimal, senderPassword string) (models.Receipt, error) {
	var receipt models.Receipt

	sender, err := s.storage.User().GetUserByID(ctx, senderID)
	if err != nil {
		return receipt, err
	}

	if err := s.verifier.VerifyCredential(ctx, senderID, senderPassword); err != nil {
		return receipt, err
	}

	if !amount.IsPositive() {
		return receipt, apperrors.ErrAmountNotPositive
	}

	if senderID == recipientID {
		return receipt, apperrors.ErrSelfTransfer
	}

	err = s.storage.InTx(ctx, func(store repository.Storage) error {
		accounts, err := store.Account().LockAccounts(ctx, []uuid.UUID{senderID, recipientID})
		if err != nil {
			return err
		}

		var senderAccount, recipientAccount *models.Account
		for i := range accounts {
			switch accounts[i].UserID {
			case senderID:
				senderAccount = &accounts[i]
			case recipientID:
				recipientAccount = &accounts[i]
			}
		}

		if senderAccount == nil {
			return apperrors.ErrAccountNotFound
		}

		if senderAccount.Balance.LessThan(amount) {
			return apperrors.ErrBalanceInsufficient
		}

		if recipientAccount == nil {
			return apperrors.ErrRecipientNotFound
		}

		recipient, err := store.User().GetUserByID(ctx, recipientID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				return apperrors.ErrRecipientNotFound
			}
			return err
		}

		updatedSender, err := store.Account().UpdateBalance(ctx, senderID, amount.Neg())
		if err != nil {
			return fmt.Errorf("debit sender: %w", err)
		}

		if _, err := store.Account().UpdateBalance(ctx, recipientID, amount); err != nil {
			return fmt.Errorf("credit recipient: %w", err)
		}

		now := time.Now().Truncate(time.Microsecond)

		debit, err := store.Ledger().AppendEntry(ctx, models.LedgerEntry{
			UserID:                senderID,
			CounterpartyFirstName: recipient.FirstName,
			CounterpartyLastName:  recipient.LastName,
			CreatedAt:             now,
			Amount:                amount,
			Type:                  models.LedgerEntryTypeDebit,
		})
		if err != nil {
			return fmt.Errorf("append debit entry: %w", err)
		}

		_, err = store.Ledger().AppendEntry(ctx, models.LedgerEntry{
			UserID:                recipientID,
			CounterpartyFirstName: sender.FirstName,
			CounterpartyLastName:  sender.LastName,
			CreatedAt:             now,
			Amount:                amount,
			Type:                  models.LedgerEntryTypeCredit,
		})
		if err != nil {
			return fmt.Errorf("append credit entry: %w", err)
		}

		receipt = models.Receipt{
			TransactionID: debit.ID,
			SenderBalance: updatedSender.Balance,
			ProcessedAt:   now,
		}
		return nil
	})
	if err != nil {
		return models.Receipt{}, err
	}

	return receipt, nil
}
