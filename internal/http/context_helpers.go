package httpx

import (
	"context"

	domainauth "github.com/turnos-app/turnos/internal/domain/auth"
	"github.com/turnos-app/turnos/internal/service"
)

// requestState is what the Sessions middleware attaches to each request.
type requestState struct {
	sessionID string
	store     *service.SessionStore
	nav       *ResponseNavigator
}

// stateKey is an unexported context key type to avoid collisions across packages.
type stateKey struct{}

func withRequestState(ctx context.Context, st *requestState) context.Context {
	return context.WithValue(ctx, stateKey{}, st)
}

func requestStateFrom(ctx context.Context) (*requestState, bool) {
	st, ok := ctx.Value(stateKey{}).(*requestState)
	return st, ok && st != nil
}

// SessionStoreFromContext returns the browser session's store and a boolean indicating presence.
func SessionStoreFromContext(ctx context.Context) (*service.SessionStore, bool) {
	st, ok := requestStateFrom(ctx)
	if !ok {
		return nil, false
	}
	return st.store, true
}

// SessionFromContext returns a snapshot of the request's session, or the empty session.
func SessionFromContext(ctx context.Context) domainauth.Session {
	if store, ok := SessionStoreFromContext(ctx); ok {
		return store.Session()
	}
	return domainauth.Session{}
}

// SessionIDFromContext returns the session cookie value of the request.
func SessionIDFromContext(ctx context.Context) string {
	if st, ok := requestStateFrom(ctx); ok {
		return st.sessionID
	}
	return ""
}

// NavigatorFromContext returns the request's navigator. It is nil outside the Sessions middleware.
func NavigatorFromContext(ctx context.Context) *ResponseNavigator {
	if st, ok := requestStateFrom(ctx); ok {
		return st.nav
	}
	return nil
}
