package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/nkiryanov/wallet/internal/handlers/render"
	"github.com/nkiryanov/wallet/internal/handlers/userctx"
	"github.com/nkiryanov/wallet/internal/logger"
)

func handleUserMe() http.Handler {
	type response struct {
		ID        uuid.UUID `json:"id"`
		FirstName string    `json:"first_name"`
		LastName  string    `json:"last_name"`
		Email     string    `json:"email"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := userctx.FromContext(r.Context())
		render.JSON(w, response{
			ID:        user.ID,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
		})
	})
}

func handleUserSearch(userService userService, l logger.Logger) http.Handler {
	type foundUser struct {
		ID        uuid.UUID `json:"id"`
		FirstName string    `json:"first_name"`
		LastName  string    `json:"last_name"`
		Email     string    `json:"email"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		prefix := r.URL.Query().Get("q")
		if prefix == "" {
			render.ServiceError(w, "Query parameter 'q' is required", http.StatusBadRequest)
			return
		}

		// The caller never appears in its own search results
		users, err := userService.SearchByEmail(r.Context(), prefix, user.ID)
		if err != nil {
			l.Error("Failed to search users", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		found := make([]foundUser, 0, len(users))
		for _, u := range users {
			found = append(found, foundUser{
				ID:        u.ID,
				FirstName: u.FirstName,
				LastName:  u.LastName,
				Email:     u.Email,
			})
		}
		render.JSON(w, found)
	})
}
