package httpx

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/turnos-app/turnos/internal/domain/auth"
	"github.com/turnos-app/turnos/internal/domain/model"
	apperrors "github.com/turnos-app/turnos/internal/errors"
	"github.com/turnos-app/turnos/internal/service"
)

// AuthServiceInterface defines the auth operations the handlers use.
type AuthServiceInterface interface {
	Login(ctx context.Context, store *service.SessionStore, username, password string) (domainauth.Identity, error)
	Logout(ctx context.Context, store *service.SessionStore) error
	DropExpired(ctx context.Context, store *service.SessionStore, now time.Time) (bool, error)
}

// AuthHandlers provides HTTP handlers for login, logout and self-registration.
type AuthHandlers struct {
	clinicHandlers
	Svc    AuthServiceInterface
	Guards Guards
}

//nolint:gochecknoglobals // parsed once at init
var loginTemplate = template.Must(template.New("login").Parse(`<!doctype html>
<html lang="es">
<head><meta charset="utf-8"><title>Turnos - Ingresar</title></head>
<body>
<main>
<h1>Ingresar</h1>
{{if .Error}}<p role="alert">{{.Error}}</p>{{end}}
<form method="post" action="/auth/login">
<label>Usuario <input name="username" value="{{.Username}}" autocomplete="username" required></label>
<label>Contraseña <input name="password" type="password" autocomplete="current-password" required></label>
<button type="submit">Ingresar</button>
</form>
</main>
</body>
</html>
`))

type loginPageData struct {
	Error    string
	Username string
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginPage renders the login form. A session whose access token has expired is
// dropped first so the visitor is not bounced back to a dead dashboard.
// GET /login.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if store, ok := SessionStoreFromContext(r.Context()); ok {
		if _, err := h.Svc.DropExpired(r.Context(), store, time.Now()); err != nil {
			h.logger().WarnContext(r.Context(), "drop expired session failed", "error", err)
		}
	}
	h.Guards.PublicOnly(http.HandlerFunc(h.renderLogin)).ServeHTTP(w, r)
}

func (h *AuthHandlers) renderLogin(w http.ResponseWriter, r *http.Request) {
	h.writeLoginPage(w, r, http.StatusOK, loginPageData{})
}

func (h *AuthHandlers) writeLoginPage(w http.ResponseWriter, r *http.Request, status int, data loginPageData) {
	if !IsBrowserRequest(r) {
		body := map[string]any{"authenticated": false, "login": "/auth/login"}
		if data.Error != "" {
			body["error"] = data.Error
		}
		WriteJSON(w, status, body)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := loginTemplate.Execute(w, data); err != nil {
		h.logger().ErrorContext(r.Context(), "render login page failed", "error", err)
	}
}

// Login authenticates against the clinic API and stores the session.
// Accepts a form post or a JSON body.
// POST /auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	store, ok := SessionStoreFromContext(r.Context())
	if !ok {
		WriteAppError(w, apperrors.Internal("session middleware not installed"))
		return
	}

	var in loginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if !DecodeJSON(w, r, &in) {
			return
		}
	} else {
		in.Username = r.FormValue("username")
		in.Password = r.FormValue("password")
	}

	identity, err := h.Svc.Login(r.Context(), store, in.Username, in.Password)
	if err != nil {
		status, message := loginFailure(err)
		h.writeLoginPage(w, r, status, loginPageData{Error: message, Username: in.Username})
		return
	}

	if IsBrowserRequest(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          identity,
		"redirect_to":   h.Dest.Resolve(store.Session()),
	})
}

// loginFailure maps a login error to the status and the message shown on the form.
func loginFailure(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidLoginResponse):
		return http.StatusBadGateway, "Respuesta inválida del servidor"
	case apperrors.IsUpstream(err) || apperrors.GetCode(err) == apperrors.ErrCodeTimeout:
		return http.StatusBadGateway, "El servicio no está disponible, intente más tarde"
	default:
		return http.StatusUnauthorized, "Usuario o contraseña incorrectos"
	}
}

// Logout clears the session and sends the user to the login page.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if store, ok := SessionStoreFromContext(r.Context()); ok {
		if err := h.Svc.Logout(r.Context(), store); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
	}

	if IsBrowserRequest(r) {
		http.Redirect(w, r, h.Dest.Login, http.StatusSeeOther)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":      "success",
		"redirect_to": h.Dest.Login,
	})
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	s := SessionFromContext(r.Context())
	if !s.Authenticated() {
		WriteJSON(w, http.StatusOK, map[string]any{
			"authenticated": false,
			"redirect_to":   h.Dest.Login,
		})
		return
	}

	body := map[string]any{
		"authenticated": true,
		"user":          s.Identity,
		"redirect_to":   h.Dest.Resolve(s),
	}
	if exp, err := service.AccessTokenExpiry(s.Credentials.Access); err == nil {
		body["expires_at"] = exp.UTC()
	}
	WriteJSON(w, http.StatusOK, body)
}

// Register creates a patient account through the public registration endpoint.
// POST /registro.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var in model.PatientRegistration
	if !DecodeJSON(w, r, &in) {
		return
	}
	if err := in.Validate(); err != nil {
		h.fail(w, r, invalid(err))
		return
	}
	if err := h.api(r).RegisterPatient(r.Context(), in); err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{
		"status":      "registered",
		"redirect_to": h.Dest.Login,
	})
}
