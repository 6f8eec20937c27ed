package httpx

import (
	"errors"
	"net/http"

	domainauth "github.com/turnos-app/turnos/internal/domain/auth"
	"github.com/turnos-app/turnos/internal/router"
)

// Guards applies role router decisions to handlers. It requires the Sessions middleware.
type Guards struct {
	Dest router.Destinations
}

// PublicOnly serves next to visitors and sends authenticated users to their dashboard.
func (g Guards) PublicOnly(next http.Handler) http.Handler {
	return g.guard(next, func(rt *router.Router, r *http.Request, s domainauth.Session) bool {
		return rt.PublicOnly(r.Context(), s)
	})
}

// RequireRoles serves next only to sessions holding one of roles.
func (g Guards) RequireRoles(roles ...domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return g.guard(next, func(rt *router.Router, r *http.Request, s domainauth.Session) bool {
			return rt.RequireRoles(r.Context(), s, roles...)
		})
	}
}

// RedirectToDashboard always navigates to where the session belongs.
func (g Guards) RedirectToDashboard() http.Handler {
	return g.guard(nil, func(rt *router.Router, r *http.Request, s domainauth.Session) bool {
		rt.Route(r.Context(), s)
		return false
	})
}

type decideFunc func(rt *router.Router, r *http.Request, s domainauth.Session) bool

func (g Guards) guard(next http.Handler, decide decideFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st, ok := requestStateFrom(r.Context())
		if !ok {
			WriteError(w, ErrorParams{
				Code:    http.StatusInternalServerError,
				ErrCode: "session_unavailable",
				Err:     errors.New("session middleware not installed"),
			})
			return
		}
		rt := router.New(g.Dest, st.nav)
		if decide(rt, r, st.store.Session()) && next != nil {
			next.ServeHTTP(w, r)
			return
		}
		dest, _ := st.nav.Destination()
		if dest == "" {
			dest = rt.Destinations().Login
		}
		WriteNavigation(w, r, dest, rt.Destinations().Login)
	})
}
