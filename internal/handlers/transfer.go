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

func handleTransfer(transferService transferService, l logger.Logger) http.Handler {
	type request struct {
		RecipientID uuid.UUID `json:"recipient_id" validate:"required"`
		// Amount has no binding rule on purpose: zero and negative values
		// share the service's ErrAmountNotPositive answer
		Amount   decimal.Decimal `json:"amount"`
		Password string          `json:"password" validate:"required"`
	}
	type response struct {
		TransactionID uuid.UUID       `json:"transaction_id"`
		Balance       decimal.Decimal `json:"balance"`
		ProcessedAt   time.Time       `json:"processed_at"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		receipt, err := transferService.Transfer(r.Context(), user.ID, data.RecipientID, data.Amount, data.Password)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrCredentialInvalid):
				render.ServiceError(w, "Invalid credential", http.StatusUnauthorized)
			case errors.Is(err, apperrors.ErrAmountNotPositive):
				render.ServiceError(w, "Transfer amount must be positive", http.StatusUnprocessableEntity)
			case errors.Is(err, apperrors.ErrSelfTransfer):
				render.ServiceError(w, "Transfer to yourself is not allowed", http.StatusUnprocessableEntity)
			case errors.Is(err, apperrors.ErrBalanceInsufficient):
				render.ServiceError(w, "Insufficient balance", http.StatusPaymentRequired)
			case errors.Is(err, apperrors.ErrRecipientNotFound):
				render.ServiceError(w, "Recipient not found", http.StatusNotFound)
			case errors.Is(err, apperrors.ErrUserNotFound), errors.Is(err, apperrors.ErrAccountNotFound):
				render.ServiceError(w, "Account not found", http.StatusNotFound)
			default:
				l.Error("Failed to transfer", "error", err)
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSON(w, response{
			TransactionID: receipt.TransactionID,
			Balance:       receipt.SenderBalance,
			ProcessedAt:   receipt.ProcessedAt,
		})
	})
}
