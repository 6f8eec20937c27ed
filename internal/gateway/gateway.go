// Package gateway decorates outgoing clinic API requests with the session's
// access token and recovers once from an expired token via the refresh endpoint.
package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/turnos-app/turnos/internal/observability/metrics"
	"github.com/turnos-app/turnos/internal/observability/statsd"
	"github.com/turnos-app/turnos/internal/ports"
)

// DefaultLoginPath is where the user is sent when the session cannot be recovered.
const DefaultLoginPath = "/login"

// DoFunc executes one HTTP request.
type DoFunc func(*http.Request) (*http.Response, error)

// Options groups dependencies for Gateway.
type Options struct {
	Session   ports.CredentialStore // Required: credential source and sink
	Refresher ports.TokenRefresher  // Required: unauthenticated refresh call
	Navigator ports.Navigator       // Optional: receives the login destination on unrecoverable failures
	LoginPath string                // Optional: defaults to DefaultLoginPath
	Logger    *slog.Logger          // Optional: structured logger
	Metrics   statsd.Sink           // Optional: metrics sink (StatsD-compatible)

	// SingleFlight collapses concurrent refreshes of the same refresh token into a
	// single call. Ignored when Refresher is already a *Deduper.
	SingleFlight bool
}

// Gateway attaches bearer credentials and runs the refresh-and-retry-once protocol.
type Gateway struct {
	session   ports.CredentialStore
	refresher sharedRefresher
	nav       ports.Navigator
	loginPath string
	logger    *slog.Logger
	metrics   statsd.Sink
}

// New constructs a Gateway.
func New(opts Options) (*Gateway, error) {
	if opts.Session == nil {
		return nil, errors.New("gateway: Session is required")
	}
	if opts.Refresher == nil {
		return nil, errors.New("gateway: Refresher is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loginPath := opts.LoginPath
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}

	var r sharedRefresher
	switch v := opts.Refresher.(type) {
	case *Deduper:
		r = v
	default:
		if opts.SingleFlight {
			r = NewDeduper(v)
		} else {
			r = plainRefresher{v}
		}
	}

	return &Gateway{
		session:   opts.Session,
		refresher: r,
		nav:       opts.Navigator,
		loginPath: loginPath,
		logger:    logger.With("component", "gateway"),
		metrics:   opts.Metrics,
	}, nil
}

// Wrap returns a DoFunc that runs next under the gateway protocol:
//  1. attach "Authorization: Bearer <access>" when an access token is present;
//  2. on a 401 that has not been retried, refresh the access token and re-issue
//     the request exactly once with the new token;
//  3. if there is no refresh token or the refresh fails, clear the session,
//     navigate to login and return the original 401 response.
//
// Any other status or transport error is returned unchanged.
func (g *Gateway) Wrap(next DoFunc) DoFunc {
	return func(req *http.Request) (*http.Response, error) {
		return g.do(next, req)
	}
}

func (g *Gateway) do(next DoFunc, req *http.Request) (*http.Response, error) {
	body, err := replayableBody(req)
	if err != nil {
		return nil, err
	}

	ctx := req.Context()
	generation := g.session.Generation()
	access := g.session.AccessToken()
	retried := false

	for {
		attempt, err := authorize(req, body, access)
		if err != nil {
			return nil, err
		}
		resp, err := next(attempt)
		if err != nil || resp.StatusCode != http.StatusUnauthorized || retried {
			return resp, err
		}
		retried = true

		newAccess, ok := g.recoverSession(ctx, generation)
		if !ok {
			return resp, nil
		}
		discard(resp)
		access = newAccess
	}
}

// recoverSession runs the refresh handshake for the session identified by generation.
// It returns the new access token and true when the request should be retried.
func (g *Gateway) recoverSession(ctx context.Context, generation uint64) (string, bool) {
	refreshToken := g.session.RefreshToken()
	if refreshToken == "" {
		g.logger.InfoContext(ctx, "access token rejected and no refresh token; ending session")
		metrics.EmitRefresh(g.metrics, metrics.RefreshMetric{Result: metrics.RefreshMissing})
		g.endSession(ctx, generation)
		return "", false
	}

	start := time.Now()
	access, shared, err := g.refresher.refresh(ctx, refreshToken)
	elapsed := time.Since(start)
	if err == nil && access == "" {
		err = errors.New("refresh returned an empty access token")
	}
	if err != nil {
		g.logger.WarnContext(ctx, "token refresh failed; ending session", "error", err)
		metrics.EmitRefresh(g.metrics, metrics.RefreshMetric{
			Result: metrics.RefreshFailure, Duration: elapsed, Err: err, Shared: shared,
		})
		g.endSession(ctx, generation)
		return "", false
	}

	applied, perr := g.session.ReplaceAccessToken(ctx, generation, access)
	if perr != nil {
		g.logger.WarnContext(ctx, "persist refreshed access token", "error", perr)
	}
	if !applied {
		g.logger.InfoContext(ctx, "session changed during refresh; discarding new token")
		metrics.EmitRefresh(g.metrics, metrics.RefreshMetric{Result: metrics.RefreshStale, Duration: elapsed, Shared: shared})
		return "", false
	}

	metrics.EmitRefresh(g.metrics, metrics.RefreshMetric{Result: metrics.RefreshSuccess, Duration: elapsed, Shared: shared})
	return access, true
}

// endSession clears the session if it is still the one that failed, then navigates to login.
// A session replaced in the meantime (logout or a new login) is left alone.
func (g *Gateway) endSession(ctx context.Context, generation uint64) {
	cleared, err := g.session.ExpireGeneration(ctx, generation)
	if err != nil {
		g.logger.ErrorContext(ctx, "clear session after refresh failure", "error", err)
	}
	if !cleared {
		return
	}
	if g.nav != nil {
		g.nav.Navigate(ctx, g.loginPath)
	}
}

// Transport adapts the gateway to an http.RoundTripper over base.
func (g *Gateway) Transport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return roundTripperFunc(g.Wrap(base.RoundTrip))
}

// Client returns a copy of base whose transport runs through the gateway.
func (g *Gateway) Client(base *http.Client) *http.Client {
	c := &http.Client{}
	if base != nil {
		*c = *base
	}
	c.Transport = g.Transport(c.Transport)
	return c
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// replayableBody returns a factory for fresh copies of the request body, or nil
// when the request has none.
func replayableBody(req *http.Request) (func() (io.ReadCloser, error), error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	if req.GetBody != nil {
		_ = req.Body.Close()
		return req.GetBody, nil
	}
	data, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("buffer request body: %w", err)
	}
	return func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}, nil
}

// authorize clones req with a fresh body and the bearer header for access.
// The caller's request is never mutated.
func authorize(req *http.Request, body func() (io.ReadCloser, error), access string) (*http.Request, error) {
	out := req.Clone(req.Context())
	if body != nil {
		rc, err := body()
		if err != nil {
			return nil, fmt.Errorf("replay request body: %w", err)
		}
		out.Body = rc
		out.GetBody = body
	}
	if access == "" {
		out.Header.Del("Authorization")
		return out, nil
	}
	(&oauth2.Token{AccessToken: access, TokenType: "Bearer"}).SetAuthHeader(out)
	return out, nil
}

// discard drains and closes a response that will not be returned to the caller.
func discard(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
