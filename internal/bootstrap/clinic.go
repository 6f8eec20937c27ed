package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/turnos-app/turnos/config"
	"github.com/turnos-app/turnos/internal/adapters/turnosapi"
	"github.com/turnos-app/turnos/internal/gateway"
	httpx "github.com/turnos-app/turnos/internal/http"
	"github.com/turnos-app/turnos/internal/observability/statsd"
	"github.com/turnos-app/turnos/internal/ports"
	"github.com/turnos-app/turnos/internal/service"
)

// APIClientsConfig contains configuration for the clinic API clients.
type APIClientsConfig struct {
	API     config.APIConfig
	Auth    config.AuthConfig
	Logger  *slog.Logger
	Metrics statsd.Sink
}

// APIClients bundles the unauthenticated auth client and the factory of
// per-session clinic clients that run through the request gateway.
type APIClients struct {
	Auth      *turnosapi.AuthClient
	Refresher ports.TokenRefresher
	Clinic    httpx.ClinicFactory
}

// BuildAPIClients wires the clinic API adapters. The refresher is shared by every
// session so concurrent refreshes of one token collapse into a single call.
func BuildAPIClients(cfg APIClientsConfig) (APIClients, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authClient, err := turnosapi.NewAuthClient(turnosapi.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	})
	if err != nil {
		return APIClients{}, fmt.Errorf("create auth client: %w", err)
	}

	var refresher ports.TokenRefresher = authClient
	if cfg.Auth.RefreshSingleFlight {
		refresher = gateway.NewDeduper(authClient)
	}

	proto, err := turnosapi.NewClient(turnosapi.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout})
	if err != nil {
		return APIClients{}, fmt.Errorf("create clinic client: %w", err)
	}

	base := &http.Client{Timeout: cfg.API.Timeout}
	clinic := func(store *service.SessionStore, nav ports.Navigator) ports.ClinicAPI {
		return proto.WithHTTPClient(sessionClient(base, gateway.Options{
			Session:   store,
			Refresher: refresher,
			Navigator: nav,
			LoginPath: cfg.Auth.LoginPath,
			Logger:    logger,
			Metrics:   cfg.Metrics,
		}))
	}

	return APIClients{Auth: authClient, Refresher: refresher, Clinic: clinic}, nil
}

// sessionClient returns base routed through a gateway for one session. A gateway
// that cannot be built fails every request instead of sending it unauthenticated.
func sessionClient(base *http.Client, opts gateway.Options) *http.Client {
	gw, err := gateway.New(opts)
	if err != nil {
		c := *base
		c.Transport = failingTransport{err: err}
		return &c
	}
	return gw.Client(base)
}

type failingTransport struct{ err error }

func (f failingTransport) RoundTrip(*http.Request) (*http.Response, error) { return nil, f.err }
