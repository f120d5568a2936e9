package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nkiryanov/wallet/internal/models"
	"github.com/nkiryanov/wallet/internal/service/auth/tokenmanager"
)

const (
	defaultAccessHeaderName  = "Authorization"
	defaultAccessAuthScheme  = "Bearer"
	defaultRefreshCookieName = "refreshtoken"
)

// User lookup the auth service needs to resolve token claims back to a user
type userGetter interface {
	GetUser(ctx context.Context, userID uuid.UUID) (models.User, error)
}

type Config struct {
	// Header and scheme to set access token on responses
	// If not set than defaults are used
	AccessHeaderName string
	AccessAuthScheme string

	// Cookie name to set refresh token on responses
	RefreshCookieName string
}

// Auth service: issues token pairs, sets them on responses and
// authenticates incoming requests
type AuthService struct {
	token *tokenmanager.TokenManager
	users userGetter

	accessHeaderName  string
	accessAuthScheme  string
	refreshCookieName string
}

func NewService(cfg Config, token *tokenmanager.TokenManager, users userGetter) (*AuthService, error) {
	setDefaultString := func(field *string, def string) {
		if *field == "" {
			*field = def
		}
	}
	setDefaultString(&cfg.AccessHeaderName, defaultAccessHeaderName)
	setDefaultString(&cfg.AccessAuthScheme, defaultAccessAuthScheme)
	setDefaultString(&cfg.RefreshCookieName, defaultRefreshCookieName)

	return &AuthService{
		token:             token,
		users:             users,
		accessHeaderName:  cfg.AccessHeaderName,
		accessAuthScheme:  cfg.AccessAuthScheme,
		refreshCookieName: cfg.RefreshCookieName,
	}, nil
}

// Issue fresh token pair for the user
func (s *AuthService) IssueTokens(ctx context.Context, user models.User) (models.TokenPair, error) {
	pair, err := s.token.GeneratePair(ctx, user)
	if err != nil {
		return pair, fmt.Errorf("token could not be generated, sorry. %w", err)
	}

	return pair, nil
}

// Exchange valid refresh token for a fresh token pair
// Refresh tokens are single use: the exchanged token is marked used
func (s *AuthService) RefreshPair(ctx context.Context, refresh string) (models.TokenPair, error) {
	token, err := s.token.UseRefresh(ctx, refresh)
	if err != nil {
		return models.TokenPair{}, err
	}

	user, err := s.users.GetUser(ctx, token.UserID)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("error while getting token user. Err: %w", err)
	}

	return s.IssueTokens(ctx, user)
}

// Set token pair to the response: access token to the auth header,
// refresh token to HttpOnly cookie
func (s *AuthService) SetTokens(ctx context.Context, w http.ResponseWriter, pair models.TokenPair) {
	w.Header().Set(s.accessHeaderName, s.accessAuthScheme+" "+pair.Access.Value)

	http.SetCookie(w, &http.Cookie{
		Name:     s.refreshCookieName,
		Value:    pair.Refresh.Value,
		Path:     "/",
		MaxAge:   int(time.Until(pair.Refresh.ExpiresAt).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// Get refresh token string from request cookie
func (s *AuthService) ReadRefresh(r *http.Request) (string, error) {
	cookie, err := r.Cookie(s.refreshCookieName)
	if err != nil {
		return "", fmt.Errorf("refresh cookie not found. Err: %w", err)
	}

	return cookie.Value, nil
}

// Authenticate request: parse access token from the auth header and resolve its user
func (s *AuthService) Auth(ctx context.Context, r *http.Request) (models.User, error) {
	var user models.User

	header := r.Header.Get(s.accessHeaderName)
	access, found := strings.CutPrefix(header, s.accessAuthScheme+" ")
	if !found || access == "" {
		return user, errors.New("no access token in request")
	}

	userID, err := s.token.ParseAccess(ctx, access)
	if err != nil {
		return user, err
	}

	return s.users.GetUser(ctx, userID)
}
