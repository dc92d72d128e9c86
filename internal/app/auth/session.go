package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/finki-emc/aas-client/internal/app/models"
	"github.com/finki-emc/aas-client/internal/app/models/enums"
	"github.com/finki-emc/aas-client/internal/pkg/apperrors"
	"github.com/finki-emc/aas-client/internal/pkg/logger"
)

// loginFunc performs the login call; injected so Session carries no repository dependency
type loginFunc func(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)

// Claims are the token claims the console inspects. They drive visibility
// only; the backend re-checks authorization on every call.
type Claims struct {
	UserID int64          `json:"userId"`
	Email  string         `json:"email"`
	Role   enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Session holds the bearer token for the lifetime of the console. The token
// is the only shared mutable resource between repositories; every request
// reads it fresh through Token.
type Session struct {
	mu    sync.RWMutex
	token string
	login loginFunc
}

// NewSession creates a Session around the given login call. The call may be
// bound later via BindLogin when the repository needs the session's token
// source first.
func NewSession(login loginFunc) *Session {
	return &Session{login: login}
}

// BindLogin attaches the login call after construction
func (s *Session) BindLogin(login loginFunc) {
	s.login = login
}

// Login authenticates and stores the issued bearer token
func (s *Session) Login(ctx context.Context, email, password string) error {
	if s.login == nil {
		return fmt.Errorf("no login endpoint bound")
	}

	resp, err := s.login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	s.SetToken(resp.Token)
	logger.Info().Str("email", email).Msg("logged in")
	return nil
}

// Logout discards the stored token
func (s *Session) Logout() {
	s.SetToken("")
}

// SetToken replaces the stored token; used when restoring a cached session
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Token returns the current bearer token, or "" when not logged in
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a token is present
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Claims parses the stored token without verifying its signature. The
// console has no signing key; the claims are display hints, nothing more.
func (s *Session) Claims() (*Claims, error) {
	token := s.Token()
	if token == "" {
		return nil, apperrors.ErrNotAuthenticated
	}

	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return claims, apperrors.ErrTokenExpired
	}

	return claims, nil
}

// Role returns the role claim of the stored token, or RoleUnknown sentinel ""
// when no valid token is held
func (s *Session) Role() enums.UserRole {
	claims, err := s.Claims()
	if err != nil {
		return ""
	}
	return claims.Role
}
