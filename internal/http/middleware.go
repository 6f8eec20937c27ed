package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/turnos-app/turnos/internal/service"
)

// SessionCookieName is the cookie carrying the browser session id.
const SessionCookieName = "session_id"

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// browserRequestKey is an unexported context key type for browser request detection.
type browserRequestKey struct{}

// BrowserDetection returns a middleware that detects browser requests vs API requests.
// Downstream handlers use it to choose between redirects and JSON bodies.
func BrowserDetection() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), browserRequestKey{}, isBrowserRequest(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsBrowserRequest returns true if the current request is from a browser.
func IsBrowserRequest(r *http.Request) bool {
	if val := r.Context().Value(browserRequestKey{}); val != nil {
		if isBrowser, ok := val.(bool); ok {
			return isBrowser
		}
	}
	// Fallback to direct detection if middleware wasn't used
	return isBrowserRequest(r)
}

// isBrowserRequest treats XHR and JSON-only clients as API requests.
func isBrowserRequest(r *http.Request) bool {
	if strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest") {
		return false
	}

	accept := r.Header.Get("Accept")
	if accept == "" {
		// No Accept header: JSON bodies imply an API client
		return !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
	}
	if strings.Contains(accept, "text/html") {
		return true
	}
	return !strings.Contains(accept, "application/json")
}

// SessionOpener returns the store of one browser session.
type SessionOpener interface {
	Get(ctx context.Context, id string) (*service.SessionStore, error)
}

// SessionsOptions configures the Sessions middleware.
type SessionsOptions struct {
	Registry     SessionOpener // Required
	CookieDomain string
	CookieSecure bool          // Secure flag; also set when the request arrived over TLS
	MaxAge       time.Duration // Optional: cookie lifetime; 0 means a browser-session cookie
	Logger       *slog.Logger
}

// Sessions returns a middleware that binds each request to a session store
// keyed by the session cookie, issuing a new random id when the cookie is
// missing or malformed.
func Sessions(opts SessionsOptions) func(http.Handler) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, fresh := sessionIDFromRequest(r)
			if fresh {
				setSessionCookie(w, r, id, opts)
			}

			store, err := opts.Registry.Get(r.Context(), id)
			if err != nil {
				logger.ErrorContext(r.Context(), "open session failed", "error", err)
				WriteError(w, ErrorParams{
					Code:    http.StatusInternalServerError,
					ErrCode: "session_unavailable",
					Err:     errors.New("session storage unavailable"),
				})
				return
			}

			st := &requestState{sessionID: id, store: store, nav: NewResponseNavigator()}
			next.ServeHTTP(w, r.WithContext(withRequestState(r.Context(), st)))
		})
	}
}

func sessionIDFromRequest(r *http.Request) (id string, fresh bool) {
	if c, err := r.Cookie(SessionCookieName); err == nil {
		if parsed, perr := uuid.Parse(c.Value); perr == nil {
			return parsed.String(), false
		}
	}
	return uuid.NewString(), true
}

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, id string, opts SessionsOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		Domain:   opts.CookieDomain,
		HttpOnly: true,
		Secure:   opts.CookieSecure || isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(opts.MaxAge.Seconds()),
	})
}
