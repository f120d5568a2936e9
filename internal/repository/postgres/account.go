package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/nkiryanov/wallet/internal/apperrors"
	"github.com/nkiryanov/wallet/internal/models"
)

type AccountRepo struct {
	DB DBTX
}

const createAccount = `-- name: CreateAccount
INSERT INTO accounts (id, user_id, balance)
VALUES ($1, $2, $3)
RETURNING id, user_id, balance, created_at
`

func (r *AccountRepo) CreateAccount(ctx context.Context, userID uuid.UUID, balance decimal.Decimal) (models.Account, error) {
	rows, _ := r.DB.Query(ctx, createAccount, uuid.New(), userID, balance)
	account, err := pgx.CollectOneRow(rows, rowToAccount)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return account, fmt.Errorf("user account already exists: %w", err)
			case pgerrcode.ForeignKeyViolation:
				return account, apperrors.ErrUserNotFound
			}
		}

		return account, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

const getAccount = `-- name: GetAccount
SELECT id, user_id, balance, created_at FROM accounts
WHERE user_id = $1
`

func (r *AccountRepo) GetAccount(ctx context.Context, userID uuid.UUID) (models.Account, error) {
	rows, _ := r.DB.Query(ctx, getAccount, userID)
	account, err := pgx.CollectOneRow(rows, rowToAccount)

	switch {
	case err == nil:
		return account, nil
	case errors.Is(err, pgx.ErrNoRows):
		return account, apperrors.ErrAccountNotFound
	default:
		return account, fmt.Errorf("db error: %w", err)
	}
}

// Rows are locked in account id order regardless of the order of userIDs,
// so concurrent transfers over the same pair of accounts queue up instead
// of deadlocking
const lockAccounts = `-- name: LockAccounts
SELECT id, user_id, balance, created_at FROM accounts
WHERE user_id = ANY($1)
ORDER BY id
FOR UPDATE
`

func (r *AccountRepo) LockAccounts(ctx context.Context, userIDs []uuid.UUID) ([]models.Account, error) {
	rows, _ := r.DB.Query(ctx, lockAccounts, userIDs)
	accounts, err := pgx.CollectRows(rows, rowToAccount)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return accounts, nil
}

const updateBalance = `-- name: UpdateBalance
UPDATE accounts
SET balance = balance + $2
WHERE user_id = $1
RETURNING id, user_id, balance, created_at
`

func (r *AccountRepo) UpdateBalance(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) (models.Account, error) {
	rows, _ := r.DB.Query(ctx, updateBalance, userID, delta)
	account, err := pgx.CollectOneRow(rows, rowToAccount)

	switch {
	case err == nil:
		return account, nil
	case errors.Is(err, pgx.ErrNoRows):
		return account, apperrors.ErrAccountNotFound
	default:
		return account, fmt.Errorf("db error: %w", err)
	}
}

func rowToAccount(row pgx.CollectableRow) (models.Account, error) {
	var a models.Account
	err := row.Scan(&a.ID, &a.UserID, &a.Balance, &a.CreatedAt)
	return a, err
}
