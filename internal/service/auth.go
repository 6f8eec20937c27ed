package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domainauth "github.com/turnos-app/turnos/internal/domain/auth"
	"github.com/turnos-app/turnos/internal/ports"
)

var (
	// ErrInvalidCredentials is the single user-facing login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidLoginResponse is returned when the API accepted the login but the
	// response lacks the user or one of the tokens.
	ErrInvalidLoginResponse = errors.New("invalid login response from server")
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	API    ports.AuthAPI
	Logger *slog.Logger
}

// AuthService orchestrates the login form flow: it calls the remote login
// endpoint and writes the result into a SessionStore.
type AuthService struct {
	api    ports.AuthAPI
	logger *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		api:    opts.API,
		logger: logger.With("component", "auth_service"),
	}
}

// Login authenticates username/password and replaces the store's session.
// On any failure the session is left unchanged.
func (s *AuthService) Login(ctx context.Context, store *SessionStore, username, password string) (domainauth.Identity, error) {
	if store == nil {
		return domainauth.Identity{}, errors.New("session store is required")
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domainauth.Identity{}, ErrInvalidCredentials
	}

	res, err := s.api.Login(ctx, ports.LoginInput{Username: username, Password: password})
	if err != nil {
		s.logger.InfoContext(ctx, "login rejected", "username", username, "error", err)
		return domainauth.Identity{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	if res.Identity == nil || res.Access == "" || res.Refresh == "" {
		s.logger.WarnContext(ctx, "login response incomplete",
			"has_user", res.Identity != nil,
			"has_access", res.Access != "",
			"has_refresh", res.Refresh != "",
		)
		return domainauth.Identity{}, ErrInvalidLoginResponse
	}
	if !res.Identity.Role.Valid() {
		s.logger.WarnContext(ctx, "login returned unrecognized role", "role", res.Identity.Role)
	}

	if err := store.LoginWith(ctx, res.Identity, res.Access, res.Refresh); err != nil {
		return domainauth.Identity{}, fmt.Errorf("store session: %w", err)
	}
	s.logger.InfoContext(ctx, "user logged in", "user_id", res.Identity.ID, "role", res.Identity.Role)
	return *res.Identity, nil
}

// Logout clears the store's session.
func (s *AuthService) Logout(ctx context.Context, store *SessionStore) error {
	if store == nil {
		return nil
	}
	if err := store.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// DropExpired clears the session when its access token is a JWT that expired at
// or before now. It reports whether the session was cleared.
func (s *AuthService) DropExpired(ctx context.Context, store *SessionStore, now time.Time) (bool, error) {
	if store == nil {
		return false, nil
	}
	access := store.AccessToken()
	if access == "" || !AccessTokenExpired(access, now) {
		return false, nil
	}
	s.logger.DebugContext(ctx, "dropping expired session")
	if err := store.Logout(ctx); err != nil {
		return true, fmt.Errorf("drop expired session: %w", err)
	}
	return true, nil
}
