package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nkiryanov/wallet/internal/handlers/middleware"
	"github.com/nkiryanov/wallet/internal/logger"
	"github.com/nkiryanov/wallet/internal/models"
	"github.com/nkiryanov/wallet/internal/service/user"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	authService authService,
	userService userService,
	walletService walletService,
	transferService transferService,
	logger logger.Logger,
) http.Handler {
	authMiddleware := middleware.AuthMiddleware(authService)
	withAuth := func(h http.Handler) http.Handler {
		return authMiddleware(h)
	}

	apiuser := http.NewServeMux()
	apiuser.Handle("POST /register", handleRegister(authService, userService, logger))
	apiuser.Handle("POST /login", handleLogin(authService, userService, logger))
	apiuser.Handle("POST /refresh", handleTokenRefresh(authService, logger))
	apiuser.Handle("GET /me", withAuth(handleUserMe()))
	apiuser.Handle("GET /search", withAuth(handleUserSearch(userService, logger)))

	apiwallet := http.NewServeMux()
	apiwallet.Handle("GET /balance", withAuth(handleWalletBalance(walletService, logger)))
	apiwallet.Handle("GET /history", withAuth(handleWalletHistory(walletService, logger)))
	apiwallet.Handle("POST /transfer", withAuth(handleTransfer(transferService, logger)))

	root := http.NewServeMux()
	root.Handle("/api/user/", http.StripPrefix("/api/user", apiuser))
	root.Handle("/api/wallet/", http.StripPrefix("/api/wallet", apiwallet))

	handler := chain(root,
		middleware.LoggerMiddleware(logger),
	)

	return handler
}

type authService interface {
	// Issue token pair for the user
	IssueTokens(ctx context.Context, u models.User) (models.TokenPair, error)

	// Refresh tokens using refresh token
	// If token expired: has to return apperrors.ErrRefreshTokenExpired
	// If token not found: has to return apperrors.ErrRefreshTokenNotFound
	RefreshPair(ctx context.Context, refresh string) (models.TokenPair, error)

	// Set auth tokens (access, refresh) to response
	SetTokens(ctx context.Context, w http.ResponseWriter, pair models.TokenPair)

	// Get refresh token from request
	ReadRefresh(r *http.Request) (string, error)

	// Get request and return user if it authenticated or error
	Auth(ctx context.Context, r *http.Request) (models.User, error)
}

type userService interface {
	// Register user and create its account with the starting balance
	// Has to return apperrors.ErrUserAlreadyExists if email is taken
	Register(ctx context.Context, params user.RegisterParams) (models.User, error)

	// Login user with email and password
	// Has to return apperrors.ErrUserNotFound on any credential mismatch
	Login(ctx context.Context, email string, password string) (models.User, error)

	// List users whose email starts with prefix, excluding the caller
	SearchByEmail(ctx context.Context, prefix string, excludeID uuid.UUID) ([]models.User, error)
}

type walletService interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (models.Account, error)
	GetHistory(ctx context.Context, userID uuid.UUID) ([]models.LedgerEntry, error)
}

type transferService interface {
	Transfer(ctx context.Context, senderID uuid.UUID, recipientID uuid.UUID, amount decimal.Decimal, senderPassword string) (models.Receipt, error)
}
