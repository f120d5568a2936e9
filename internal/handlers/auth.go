package handlers

import (
	"errors"
	"net/http"

	"github.com/nkiryanov/wallet/internal/apperrors"
	"github.com/nkiryanov/wallet/internal/handlers/render"
	"github.com/nkiryanov/wallet/internal/logger"
	"github.com/nkiryanov/wallet/internal/service/user"
)

func handleRegister(authService authService, userService userService, l logger.Logger) http.Handler {
	type request struct {
		FirstName   string `json:"first_name" validate:"required,max=100"`
		LastName    string `json:"last_name" validate:"required,max=100"`
		Email       string `json:"email" validate:"required,email"`
		PhoneNumber string `json:"phone_number"`
		Password    string `json:"password" validate:"required,min=8"`
	}
	type response struct {
		Message string `json:"message"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		u, err := userService.Register(r.Context(), user.RegisterParams{
			FirstName:   data.FirstName,
			LastName:    data.LastName,
			Email:       data.Email,
			PhoneNumber: data.PhoneNumber,
			Password:    data.Password,
		})
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserAlreadyExists):
				render.ServiceError(w, "User already exists", http.StatusConflict)
			default:
				l.Error("Failed to register user", "error", err)
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		pair, err := authService.IssueTokens(r.Context(), u)
		if err != nil {
			l.Error("Failed to issue tokens", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		authService.SetTokens(r.Context(), w, pair)
		render.JSON(w, response{Message: "User registered successfully"})
	})
}

func handleLogin(authService authService, userService userService, l logger.Logger) http.Handler {
	type request struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	type response struct {
		Message string `json:"message"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		u, err := userService.Login(r.Context(), data.Email, data.Password)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserNotFound):
				render.ServiceError(w, "User not found", http.StatusUnauthorized)
			default:
				l.Error("Failed to login user", "error", err)
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		pair, err := authService.IssueTokens(r.Context(), u)
		if err != nil {
			l.Error("Failed to issue tokens", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		authService.SetTokens(r.Context(), w, pair)
		render.JSON(w, response{Message: "User logged in successfully"})
	})
}

func handleTokenRefresh(authService authService, l logger.Logger) http.Handler {
	type response struct {
		Message string `json:"message"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		refresh, err := authService.ReadRefresh(r)
		if err != nil {
			render.ServiceError(w, "Refresh token not found", http.StatusUnauthorized)
			return
		}

		pair, err := authService.RefreshPair(r.Context(), refresh)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrRefreshTokenExpired):
				render.ServiceError(w, "Refresh token expired", http.StatusUnauthorized)
			default:
				render.ServiceError(w, "Refresh token not found", http.StatusUnauthorized)
			}
			return
		}

		authService.SetTokens(r.Context(), w, pair)
		render.JSON(w, response{Message: "Tokens refreshed successfully"})
	})
}
