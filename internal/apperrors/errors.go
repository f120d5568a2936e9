package apperrors

import (
	"errors"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")

	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenIsUsed   = errors.New("refresh token is used")
	ErrRefreshTokenExpired  = errors.New("refresh token is expired")

	ErrCredentialInvalid   = errors.New("credential does not match")
	ErrRecipientNotFound   = errors.New("recipient not found")
	ErrAmountNotPositive   = errors.New("transfer amount must be positive")
	ErrSelfTransfer        = errors.New("sender and recipient must be different users")
	ErrBalanceInsufficient = errors.New("insufficient balance")
	ErrAccountNotFound     = errors.New("account not found")
)
