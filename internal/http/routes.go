package httpx

import (
	"log/slog"
	"net/http"
	"time"

	domainauth "github.com/turnos-app/turnos/internal/domain/auth"
	"github.com/turnos-app/turnos/internal/router"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Auth     AuthServiceInterface
	Sessions SessionOpener
	Clinic   ClinicFactory
	Dest     router.Destinations // Optional: empty fields fall back to router.DefaultDestinations

	// Session cookie attributes
	CookieDomain  string
	CookieSecure  bool
	SessionMaxAge time.Duration

	Logger *slog.Logger     // Optional
	Now    func() time.Time // Optional: clock used for date filters
}

// NewRouter creates and configures the HTTP router with browser detection and
// session middleware. Every path except /healthz is bound to a session.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	dest := router.New(services.Dest, nil).Destinations()

	base := clinicHandlers{Clinic: services.Clinic, Dest: dest, Logger: logger, Now: services.Now}
	guards := Guards{Dest: dest}

	app := http.NewServeMux()
	registerAuthRoutes(app, &AuthHandlers{clinicHandlers: base, Svc: services.Auth, Guards: guards})
	anyRole := guards.RequireRoles(domainauth.RoleAdmin, domainauth.RoleProfessional, domainauth.RolePatient)
	app.Handle("GET /profesionales", anyRole(http.HandlerFunc(base.ProfessionalDirectory)))
	registerAdminRoutes(app, &AdminHandlers{clinicHandlers: base}, guards)
	registerProfessionalRoutes(app, &ProfessionalHandlers{clinicHandlers: base}, guards)
	registerPatientRoutes(app, &PatientHandlers{clinicHandlers: base}, guards)
	app.Handle("/", guards.RedirectToDashboard())

	sessions := Sessions(SessionsOptions{
		Registry:     services.Sessions,
		CookieDomain: services.CookieDomain,
		CookieSecure: services.CookieSecure,
		MaxAge:       services.SessionMaxAge,
		Logger:       logger,
	})

	mux := http.NewServeMux()
	health := healthHandler(services.Sessions)
	mux.Handle("GET /healthz", health)
	mux.Handle("HEAD /healthz", health)
	mux.Handle("/", sessions(app))

	return BrowserDetection()(mux)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.Handle("GET /login", http.HandlerFunc(h.LoginPage))
	mux.Handle("POST /auth/login", http.HandlerFunc(h.Login))
	mux.Handle("POST /auth/logout", http.HandlerFunc(h.Logout))
	mux.Handle("GET /auth/status", http.HandlerFunc(h.Status))
	mux.Handle("POST /registro", h.Guards.PublicOnly(http.HandlerFunc(h.Register)))
}

func registerAdminRoutes(mux *http.ServeMux, h *AdminHandlers, g Guards) {
	admin := g.RequireRoles(domainauth.RoleAdmin)
	mux.Handle("GET /admin", admin(http.HandlerFunc(h.Dashboard)))
	mux.Handle("GET /admin/profesionales", admin(http.HandlerFunc(h.ProfessionalDirectory)))
	mux.Handle("POST /admin/profesionales", admin(http.HandlerFunc(h.CreateProfessional)))
	mux.Handle("PUT /admin/profesionales/{id}", admin(http.HandlerFunc(h.UpdateProfessional)))
	mux.Handle("DELETE /admin/profesionales/{id}", admin(http.HandlerFunc(h.DeleteProfessional)))
	mux.Handle("GET /admin/pacientes", admin(http.HandlerFunc(h.ListPatients)))
	mux.Handle("POST /admin/agendas", admin(http.HandlerFunc(h.CreateAgenda)))
	mux.Handle("GET /admin/reportes", admin(http.HandlerFunc(h.Reports)))
}

func registerProfessionalRoutes(mux *http.ServeMux, h *ProfessionalHandlers, g Guards) {
	pro := g.RequireRoles(domainauth.RoleProfessional)
	mux.Handle("GET /profesional", pro(http.HandlerFunc(h.Dashboard)))
	mux.Handle("GET /profesional/agendas", pro(http.HandlerFunc(h.ListAgendas)))
	mux.Handle("POST /profesional/agendas", pro(http.HandlerFunc(h.CreateAgenda)))
	mux.Handle("GET /profesional/agendas/{id}/turnos", pro(http.HandlerFunc(h.AgendaAppointments)))
	mux.Handle("PATCH /profesional/turnos/{id}", pro(http.HandlerFunc(h.UpdateStatus)))
	mux.Handle("POST /profesional/turnos/{id}/inasistencia", pro(http.HandlerFunc(h.MarkNoShow)))
	mux.Handle("GET /profesional/inasistencias", pro(http.HandlerFunc(h.ListAbsences)))
	mux.Handle("POST /profesional/inasistencias/{id}/evaluar", pro(http.HandlerFunc(h.EvaluateAbsence)))
	mux.Handle("GET /profesional/reportes", pro(http.HandlerFunc(h.Reports)))
}

func registerPatientRoutes(mux *http.ServeMux, h *PatientHandlers, g Guards) {
	patient := g.RequireRoles(domainauth.RolePatient)
	mux.Handle("GET /paciente", patient(http.HandlerFunc(h.Dashboard)))
	mux.Handle("GET /paciente/turnos-disponibles", patient(http.HandlerFunc(h.AvailableAppointments)))
	mux.Handle("POST /paciente/turnos/{id}/reservar", patient(http.HandlerFunc(h.Reserve)))
	mux.Handle("POST /paciente/turnos/{id}/cancelar", patient(http.HandlerFunc(h.Cancel)))
	mux.Handle("GET /paciente/mis-turnos", patient(http.HandlerFunc(h.MyAppointments)))
	mux.Handle("GET /paciente/inasistencias", patient(http.HandlerFunc(h.MyAbsences)))
	mux.Handle("POST /paciente/inasistencias/{id}/justificar", patient(http.HandlerFunc(h.Justify)))
	mux.Handle("GET /paciente/reportes", patient(http.HandlerFunc(h.Reports)))
}
