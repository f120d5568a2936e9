package e2e

import (
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/wallet/internal/handlers"
	"github.com/nkiryanov/wallet/internal/logger"
	"github.com/nkiryanov/wallet/internal/repository"
	"github.com/nkiryanov/wallet/internal/repository/postgres"
	"github.com/nkiryanov/wallet/internal/service/auth"
	"github.com/nkiryanov/wallet/internal/service/auth/tokenmanager"
	"github.com/nkiryanov/wallet/internal/service/transfer"
	"github.com/nkiryanov/wallet/internal/service/user"
	"github.com/nkiryanov/wallet/internal/service/wallet"
	"github.com/nkiryanov/wallet/internal/testutil"
)

// Every registered user starts with this balance in e2e tests
var StartingBalance = decimal.NewFromInt(500)

type Services struct {
	Storage         repository.Storage
	AuthService     *auth.AuthService
	UserService     *user.UserService
	WalletService   *wallet.WalletService
	TransferService *transfer.TransferService
}

// Create db transaction and run server with that connection (one connection cause one transaction)
// The created transaction passed to inner function: so, you can safely use testutil.InTx with it
func ServeInTx(dbpool *pgxpool.Pool, t *testing.T, fn func(tx pgx.Tx, srvURL string, services Services)) {
	testutil.WithTx(dbpool, t, func(tx pgx.Tx) {
		storage := postgres.NewStorage(tx)

		// Initialize services
		tokenManager, err := tokenmanager.New(tokenmanager.Config{SecretKey: "test-secret"}, storage.Refresh())
		require.NoError(t, err, "token manager should be created without errors")

		us := user.NewService(auth.DefaultHasher, StartingBalance, storage)

		as, err := auth.NewService(auth.Config{}, tokenManager, us)
		require.NoError(t, err, "auth service starting error", err)

		ws := wallet.NewService(storage)
		ts := transfer.NewService(storage, us)

		// Complete all together as router
		router := handlers.NewRouter(as, us, ws, ts, logger.NewNoOpLogger())

		// Run http server with the router in transaction
		srv := httptest.NewServer(router)
		defer srv.Close()

		fn(tx, srv.URL, Services{
			Storage:         storage,
			AuthService:     as,
			UserService:     us,
			WalletService:   ws,
			TransferService: ts,
		})
	})
}
