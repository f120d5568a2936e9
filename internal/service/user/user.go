package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nkiryanov/wallet/internal/apperrors"
	"github.com/nkiryanov/wallet/internal/models"
	"github.com/nkiryanov/wallet/internal/repository"
	"github.com/nkiryanov/wallet/internal/service/auth"
)

type RegisterParams struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Password    string
}

// User directory: registration, sign in, credential checks and lookups.
// Owns everything about credentials so the transfer core never sees a password hash.
type UserService struct {
	hasher          auth.PasswordHasher
	startingBalance decimal.Decimal
	storage         repository.Storage
}

func NewService(hasher auth.PasswordHasher, startingBalance decimal.Decimal, storage repository.Storage) *UserService {
	if hasher == nil {
		hasher = auth.DefaultHasher
	}

	return &UserService{
		hasher:          hasher,
		startingBalance: startingBalance,
		storage:         storage,
	}
}

// Register creates the user and its account with the starting balance
// Both created in one db transaction: there is no user without an account
func (s *UserService) Register(ctx context.Context, params RegisterParams) (models.User, error) {
	var user models.User

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return user, fmt.Errorf("can't use this as password, Err: %w", err)
	}

	err = s.storage.InTx(ctx, func(store repository.Storage) error {
		user, err = store.User().CreateUser(ctx, repository.CreateUserParams{
			FirstName:      params.FirstName,
			LastName:       params.LastName,
			Email:          params.Email,
			PhoneNumber:    params.PhoneNumber,
			HashedPassword: hash,
		})
		if err != nil {
			return err
		}

		_, err = store.Account().CreateAccount(ctx, user.ID, s.startingBalance)
		return err
	})
	if err != nil {
		return user, err
	}

	return user, nil
}

// Login returns the user if email and password match
// Wrong email and wrong password are indistinguishable to the caller
func (s *UserService) Login(ctx context.Context, email string, password string) (models.User, error) {
	user, err := s.storage.User().GetUserByEmail(ctx, email)
	if err != nil {
		return models.User{}, apperrors.ErrUserNotFound
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return models.User{}, apperrors.ErrUserNotFound
	}

	return user, nil
}

// VerifyCredential reports whether the password matches the stored credential of the user
// Capability used by the transfer service, so the credential scheme stays swappable
func (s *UserService) VerifyCredential(ctx context.Context, userID uuid.UUID, password string) error {
	user, err := s.storage.User().GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return apperrors.ErrCredentialInvalid
	}

	return nil
}

func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (models.User, error) {
	return s.storage.User().GetUserByID(ctx, userID)
}

// SearchByEmail lists users whose email starts with prefix, excluding the caller
func (s *UserService) SearchByEmail(ctx context.Context, prefix string, excludeID uuid.UUID) ([]models.User, error) {
	return s.storage.User().SearchByEmailPrefix(ctx, prefix, excludeID)
}
