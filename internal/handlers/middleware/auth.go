package middleware

import (
	"context"
	"net/http"

	"github.com/nkiryanov/wallet/internal/handlers/render"
	"github.com/nkiryanov/wallet/internal/handlers/userctx"
	"github.com/nkiryanov/wallet/internal/models"
)

type authService interface {
	Auth(ctx context.Context, r *http.Request) (models.User, error)
}

// AuthMiddleware authenticates the request and puts the user to the request context
// Unauthenticated requests are rejected with 401
func AuthMiddleware(as authService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := as.Auth(r.Context(), r)
			if err != nil {
				render.ServiceError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := userctx.New(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
