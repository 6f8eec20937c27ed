package config

import (
	"strings"
	"time"
)

// APIConfig locates the clinic REST API.
type APIConfig struct {
	// BaseURL is the API root, including the /api prefix.
	BaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8000/api"`

	// Timeout bounds a single API call (refresh included).
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to API configuration values.
func (c *APIConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8000/api"
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
}

// AuthConfig controls the request gateway.
type AuthConfig struct {
	// RefreshSingleFlight collapses concurrent refreshes of the same refresh token.
	RefreshSingleFlight bool `env:"AUTH_REFRESH_SINGLE_FLIGHT" envDefault:"true"`

	// LoginPath is where users are sent when their session cannot be recovered.
	LoginPath string `env:"AUTH_LOGIN_PATH" envDefault:"/login"`
}

// Sanitize applies guardrails to auth configuration values.
func (c *AuthConfig) Sanitize() {
	c.LoginPath = strings.TrimSpace(c.LoginPath)
	if c.LoginPath == "" || !strings.HasPrefix(c.LoginPath, "/") {
		c.LoginPath = "/login"
	}
}
