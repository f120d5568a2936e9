package wallet

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/wallet/internal/apperrors"
	"github.com/nkiryanov/wallet/internal/models"
	"github.com/nkiryanov/wallet/internal/repository"
	"github.com/nkiryanov/wallet/internal/repository/postgres"
	"github.com/nkiryanov/wallet/internal/testutil"
)

func TestWalletService(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	inTx := func(t *testing.T, fn func(s *WalletService, storage repository.Storage)) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			storage := postgres.NewStorage(tx)
			fn(NewService(storage), storage)
		})
	}

	createUserWithBalance := func(t *testing.T, storage repository.Storage, balance decimal.Decimal) models.User {
		t.Helper()
		user, err := storage.User().CreateUser(t.Context(), repository.CreateUserParams{
			FirstName:      "Alice",
			LastName:       "Cooper",
			Email:          uuid.NewString() + "@example.com",
			HashedPassword: "hash",
		})
		require.NoError(t, err)
		_, err = storage.Account().CreateAccount(t.Context(), user.ID, balance)
		require.NoError(t, err)
		return user
	}

	t.Run("GetBalance", func(t *testing.T) {
		t.Run("ok", func(t *testing.T) {
			inTx(t, func(s *WalletService, storage repository.Storage) {
				user := createUserWithBalance(t, storage, decimal.NewFromInt(250))

				account, err := s.GetBalance(t.Context(), user.ID)

				require.NoError(t, err)
				require.True(t, account.Balance.Equal(decimal.NewFromInt(250)))
			})
		})

		t.Run("not found", func(t *testing.T) {
			inTx(t, func(s *WalletService, _ repository.Storage) {
				_, err := s.GetBalance(t.Context(), uuid.New())

				require.Error(t, err)
				require.ErrorIs(t, err, apperrors.ErrAccountNotFound)
			})
		})
	})

	t.Run("GetHistory", func(t *testing.T) {
		t.Run("empty history is empty slice", func(t *testing.T) {
			inTx(t, func(s *WalletService, storage repository.Storage) {
				user := createUserWithBalance(t, storage, decimal.Zero)

				history, err := s.GetHistory(t.Context(), user.ID)

				require.NoError(t, err, "account with no transfers should not error")
				require.NotNil(t, history)
				require.Empty(t, history)
			})
		})

		t.Run("newest first", func(t *testing.T) {
			inTx(t, func(s *WalletService, storage repository.Storage) {
				user := createUserWithBalance(t, storage, decimal.Zero)

				older := models.LedgerEntry{
					ID:        uuid.New(),
					UserID:    user.ID,
					CreatedAt: time.Now().Add(-2 * time.Hour).Truncate(time.Microsecond),
					Amount:    decimal.NewFromInt(100),
					Type:      models.LedgerEntryTypeCredit,
				}
				newer := models.LedgerEntry{
					ID:        uuid.New(),
					UserID:    user.ID,
					CreatedAt: time.Now().Add(-1 * time.Hour).Truncate(time.Microsecond),
					Amount:    decimal.NewFromInt(40),
					Type:      models.LedgerEntryTypeDebit,
				}
				_, err := storage.Ledger().AppendEntry(t.Context(), older)
				require.NoError(t, err)
				_, err = storage.Ledger().AppendEntry(t.Context(), newer)
				require.NoError(t, err)

				history, err := s.GetHistory(t.Context(), user.ID)

				require.NoError(t, err)
				require.Len(t, history, 2)
				require.Equal(t, newer.ID, history[0].ID, "most recent entry should come first")
				require.Equal(t, older.ID, history[1].ID)
			})
		})

		t.Run("not found", func(t *testing.T) {
			inTx(t, func(s *WalletService, _ repository.Storage) {
				_, err := s.GetHistory(t.Context(), uuid.New())

				require.Error(t, err)
				require.ErrorIs(t, err, apperrors.ErrAccountNotFound)
			})
		})
	})
}
