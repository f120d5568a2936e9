package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nkiryanov/wallet/internal/apperrors"
	"github.com/nkiryanov/wallet/internal/models"
)

type LedgerRepo struct {
	DB DBTX
}

const appendEntry = `-- name: AppendEntry
INSERT INTO ledger_entries (id, user_id, counterparty_first_name, counterparty_last_name, created_at, amount, type)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, user_id, counterparty_first_name, counterparty_last_name, created_at, amount, type
`

func (r *LedgerRepo) AppendEntry(ctx context.Context, entry models.LedgerEntry) (models.LedgerEntry, error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	rows, _ := r.DB.Query(ctx, appendEntry,
		entry.ID, entry.UserID, entry.CounterpartyFirstName, entry.CounterpartyLastName,
		entry.CreatedAt, entry.Amount, entry.Type,
	)
	entry, err := pgx.CollectOneRow(rows, rowToLedgerEntry)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return entry, apperrors.ErrUserNotFound
		}

		return entry, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

const listEntries = `-- name: ListEntries
SELECT id, user_id, counterparty_first_name, counterparty_last_name, created_at, amount, type
FROM ledger_entries
WHERE user_id = $1
ORDER BY created_at DESC, id
`

func (r *LedgerRepo) ListEntries(ctx context.Context, userID uuid.UUID) ([]models.LedgerEntry, error) {
	rows, _ := r.DB.Query(ctx, listEntries, userID)
	entries, err := pgx.CollectRows(rows, rowToLedgerEntry)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entries, nil
}

func rowToLedgerEntry(row pgx.CollectableRow) (models.LedgerEntry, error) {
	var e models.LedgerEntry
	err := row.Scan(&e.ID, &e.UserID, &e.CounterpartyFirstName, &e.CounterpartyLastName, &e.CreatedAt, &e.Amount, &e.Type)
	return e, err
}
