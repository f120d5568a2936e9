package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nkiryanov/wallet/internal/models"
)

type CreateUserParams struct {
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	HashedPassword string
}

// User repository interface
type UserRepo interface {
	// Create user
	// If user with the email exists already has to return apperrors.ErrUserAlreadyExists
	CreateUser(ctx context.Context, params CreateUserParams) (models.User, error)

	// Get user by id or email
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)

	// List users whose email starts with prefix, excluding the given user.
	// Returns empty slice when nothing matches.
	SearchByEmailPrefix(ctx context.Context, prefix string, excludeID uuid.UUID) ([]models.User, error)
}

// Account repository interface
type AccountRepo interface {
	// Create account for the user with the given starting balance
	CreateAccount(ctx context.Context, userID uuid.UUID, balance decimal.Decimal) (models.Account, error)

	// Get account by owner user id
	// If account not found must return apperrors.ErrAccountNotFound
	GetAccount(ctx context.Context, userID uuid.UUID) (models.Account, error)

	// Lock accounts of the given users with SELECT ... FOR UPDATE.
	// Rows are locked in account id order so two concurrent transfers touching
	// the same pair of accounts can not deadlock.
	// Missing accounts are simply absent from the result, not an error.
	LockAccounts(ctx context.Context, userIDs []uuid.UUID) ([]models.Account, error)

	// Add delta (may be negative) to the account balance
	// If account not found must return apperrors.ErrAccountNotFound
	UpdateBalance(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) (models.Account, error)
}

// Ledger repository interface
// The ledger is append only: there are no update or delete operations by design
type LedgerRepo interface {
	// Append entry to the ledger
	AppendEntry(ctx context.Context, entry models.LedgerEntry) (models.LedgerEntry, error)

	// List entries of the user, newest first
	// Returns empty slice (not error) if the user has no entries yet
	ListEntries(ctx context.Context, userID uuid.UUID) ([]models.LedgerEntry, error)
}

// RefreshToken repository interface
type RefreshTokenRepo interface {
	// Save token in repository
	Save(ctx context.Context, token models.RefreshToken) (models.RefreshToken, error)

	// Return the token and mark it used in one statement
	// If the token is not found: apperrors.ErrRefreshTokenNotFound
	// If the token is used already: apperrors.ErrRefreshTokenIsUsed (must not overwrite 'usedAt')
	GetAndMarkUsed(ctx context.Context, tokenString string) (models.RefreshToken, error)
}

// Storage combines all repositories over one database handle.
// InTx runs fn with a Storage bound to a single database transaction:
// everything fn does commits together or rolls back together.
type Storage interface {
	User() UserRepo
	Account() AccountRepo
	Ledger() LedgerRepo
	Refresh() RefreshTokenRepo

	InTx(ctx context.Context, fn func(Storage) error) error
}
