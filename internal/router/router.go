// Package router decides which top-level destination a session may land on.
// Decisions are pure functions of the session; Router applies them through a
// ports.Navigator.
package router

import (
	"context"
	"slices"

	domainauth "github.com/turnos-app/turnos/internal/domain/auth"
	"github.com/turnos-app/turnos/internal/ports"
)

// Destinations are the route paths the router navigates to.
type Destinations struct {
	Login        string
	Admin        string
	Professional string
	Patient      string
}

// DefaultDestinations returns the standard route paths.
func DefaultDestinations() Destinations {
	return Destinations{
		Login:        "/login",
		Admin:        "/admin",
		Professional: "/profesional",
		Patient:      "/paciente",
	}
}

// withDefaults fills empty fields from DefaultDestinations.
func (d Destinations) withDefaults() Destinations {
	def := DefaultDestinations()
	if d.Login == "" {
		d.Login = def.Login
	}
	if d.Admin == "" {
		d.Admin = def.Admin
	}
	if d.Professional == "" {
		d.Professional = def.Professional
	}
	if d.Patient == "" {
		d.Patient = def.Patient
	}
	return d
}

// DashboardFor returns the dashboard root of role. ok is false for unrecognized roles.
func (d Destinations) DashboardFor(role domainauth.Role) (string, bool) {
	switch role {
	case domainauth.RoleAdmin:
		return d.Admin, true
	case domainauth.RoleProfessional:
		return d.Professional, true
	case domainauth.RolePatient:
		return d.Patient, true
	default:
		return "", false
	}
}

// Resolve returns where the session belongs: login without an identity or with
// an unrecognized role, otherwise the role's dashboard root.
func (d Destinations) Resolve(s domainauth.Session) string {
	if s.IsEmpty() {
		return d.Login
	}
	if dest, ok := d.DashboardFor(s.Role()); ok {
		return dest
	}
	return d.Login
}

// Decision is the outcome of a guard: render the page, or redirect elsewhere.
type Decision struct {
	Render   bool
	Redirect string
}

// Allow is the decision to render.
func Allow() Decision { return Decision{Render: true} }

// RedirectTo is the decision to navigate to dest.
func RedirectTo(dest string) Decision { return Decision{Redirect: dest} }

// RedirectToDashboard always navigates to Resolve(s).
func (d Destinations) RedirectToDashboard(s domainauth.Session) Decision {
	return RedirectTo(d.Resolve(s))
}

// PublicOnly guards pages meant for visitors (login, registration): a valid
// session is sent to its dashboard. A session whose role is unrecognized still
// renders so the visitor can log in again.
func (d Destinations) PublicOnly(s domainauth.Session) Decision {
	if !s.Authenticated() {
		return Allow()
	}
	if dest, ok := d.DashboardFor(s.Role()); ok {
		return RedirectTo(dest)
	}
	return Allow()
}

// RequireRoles guards pages restricted to roles. Without an identity the user
// goes to login; with a role outside roles, to their own dashboard.
func (d Destinations) RequireRoles(s domainauth.Session, roles ...domainauth.Role) Decision {
	if s.IsEmpty() {
		return RedirectTo(d.Login)
	}
	if slices.Contains(roles, s.Role()) {
		return Allow()
	}
	return RedirectTo(d.Resolve(s))
}

// Router applies decisions by navigating.
type Router struct {
	dest Destinations
	nav  ports.Navigator
}

// New constructs a Router. Empty destinations fall back to the defaults.
func New(dest Destinations, nav ports.Navigator) *Router {
	return &Router{dest: dest.withDefaults(), nav: nav}
}

// Destinations returns the configured route paths.
func (r *Router) Destinations() Destinations { return r.dest }

// Enforce navigates when d is a redirect and reports whether the page should render.
func (r *Router) Enforce(ctx context.Context, d Decision) bool {
	if d.Render {
		return true
	}
	if r.nav != nil && d.Redirect != "" {
		r.nav.Navigate(ctx, d.Redirect)
	}
	return false
}

// Route navigates to the session's destination.
func (r *Router) Route(ctx context.Context, s domainauth.Session) string {
	dest := r.dest.Resolve(s)
	r.Enforce(ctx, RedirectTo(dest))
	return dest
}

// PublicOnly applies Destinations.PublicOnly.
func (r *Router) PublicOnly(ctx context.Context, s domainauth.Session) bool {
	return r.Enforce(ctx, r.dest.PublicOnly(s))
}

// RequireRoles applies Destinations.RequireRoles.
func (r *Router) RequireRoles(ctx context.Context, s domainauth.Session, roles ...domainauth.Role) bool {
	return r.Enforce(ctx, r.dest.RequireRoles(s, roles...))
}
