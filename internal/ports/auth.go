package ports

// Package ports defines interfaces (hexagonal ports) for session and auth behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/turnos-app/turnos/internal/domain/auth"
)

// KeyValueStore is the durable string storage the session is persisted to.
// Get reports ok=false when the key is absent.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Navigator moves the user to a destination (route path).
// Implementations decide what navigating means: an HTTP redirect, a printed hint, etc.
type Navigator interface {
	Navigate(ctx context.Context, destination string)
}

// LoginInput carries the credentials submitted on the login form.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult is the decoded login response.
// Identity is nil when the response did not carry a user.
type LoginResult struct {
	Identity *domainauth.Identity
	Access   string
	Refresh  string
}

// TokenRefresher exchanges a refresh token for a new access token.
// Implementations must not route the call through the authenticated gateway.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
}

// AuthAPI is the unauthenticated part of the remote API.
type AuthAPI interface {
	TokenRefresher
	Login(ctx context.Context, in LoginInput) (LoginResult, error)
}

// CredentialStore is the narrow view of the session the request gateway needs.
// Generation increases on every login/logout so stale refresh results can be
// discarded; both mutations only apply while the generation still matches.
type CredentialStore interface {
	AccessToken() string
	RefreshToken() string
	Generation() uint64
	ReplaceAccessToken(ctx context.Context, generation uint64, access string) (bool, error)
	ExpireGeneration(ctx context.Context, generation uint64) (bool, error)
}
