package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nkiryanov/wallet/internal/apperrors"
	"github.com/nkiryanov/wallet/internal/handlers/render"
	"github.com/nkiryanov/wallet/internal/handlers/userctx"
	"github.com/nkiryanov/wallet/internal/logger"
)

func handleWalletBalance(walletService walletService, l logger.Logger) http.Handler {
	type response struct {
		Balance decimal.Decimal `json:"balance"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		account, err := walletService.GetBalance(r.Context(), user.ID)

		switch {
		case err == nil:
			render.JSON(w, response{Balance: account.Balance})
		case errors.Is(err, apperrors.ErrAccountNotFound):
			render.ServiceError(w, "Account not found", http.StatusNotFound)
		default:
			l.Error("Failed to get balance", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleWalletHistory(walletService walletService, l logger.Logger) http.Handler {
	type entry struct {
		ID                    uuid.UUID       `json:"id"`
		CounterpartyFirstName string          `json:"counterparty_first_name"`
		CounterpartyLastName  string          `json:"counterparty_last_name"`
		CreatedAt             time.Time       `json:"created_at"`
		Amount                decimal.Decimal `json:"amount"`
		Type                  string          `json:"type"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		history, err := walletService.GetHistory(r.Context(), user.ID)

		switch {
		case err == nil:
			entries := make([]entry, 0, len(history))
			for _, e := range history {
				entries = append(entries, entry{
					ID:                    e.ID,
					CounterpartyFirstName: e.CounterpartyFirstName,
					CounterpartyLastName:  e.CounterpartyLastName,
					CreatedAt:             e.CreatedAt,
					Amount:                e.Amount,
					Type:                  e.Type,
				})
			}
			render.JSON(w, entries)
		case errors.Is(err, apperrors.ErrAccountNotFound):
			render.ServiceError(w, "Account not found", http.StatusNotFound)
		default:
			l.Error("Failed to get history", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
