package turnosapi

import (
	"context"
	"fmt"
	"net/http"

	domainauth "github.com/turnos-app/turnos/internal/domain/auth"
	apperrors "github.com/turnos-app/turnos/internal/errors"
	"github.com/turnos-app/turnos/internal/ports"
)

// AuthClient calls the token endpoints. It must use a plain http.Client, never
// one wrapped by the request gateway, so a refresh cannot recurse into itself.
type AuthClient struct {
	t *transport
}

var _ ports.AuthAPI = (*AuthClient)(nil)

// NewAuthClient builds an AuthClient for cfg.
func NewAuthClient(cfg Config) (*AuthClient, error) {
	t, err := newTransport(cfg)
	if err != nil {
		return nil, err
	}
	return &AuthClient{t: t}, nil
}

type loginResponse struct {
	Access  string               `json:"access"`
	Refresh string               `json:"refresh"`
	User    *domainauth.Identity `json:"user"`
}

// Login exchanges credentials for the identity and token pair.
func (c *AuthClient) Login(ctx context.Context, in ports.LoginInput) (ports.LoginResult, error) {
	body := map[string]string{"username": in.Username, "password": in.Password}
	var resp loginResponse
	if err := c.t.call(ctx, http.MethodPost, "/auth/login/", nil, body, &resp); err != nil {
		return ports.LoginResult{}, err
	}
	return ports.LoginResult{Identity: resp.User, Access: resp.Access, Refresh: resp.Refresh}, nil
}

// Refresh exchanges a refresh token for a new access token. Only a 200 with a
// non-empty access token counts as success.
func (c *AuthClient) Refresh(ctx context.Context, refreshToken string) (string, error) {
	data, status, err := c.t.rawStatus(ctx, http.MethodPost, "/auth/refresh/", map[string]string{"refresh": refreshToken})
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", apperrors.Newf(apperrors.ErrCodeUpstream, "refresh returned status %d", status)
	}
	var resp struct {
		Access string `json:"access"`
	}
	if err := decodeJSON(data, &resp); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}
	if resp.Access == "" {
		return "", apperrors.New(apperrors.ErrCodeUpstream, "refresh response has no access token")
	}
	return resp.Access, nil
}
