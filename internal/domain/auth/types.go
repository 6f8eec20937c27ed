package auth

// Package auth contains domain-level types for the authenticated client session.
// It is pure and free of framework/adapter concerns.

import (
	"encoding/json"
	"strings"
)

// Role represents an application's authorization role.
// The canonical string form is used for persistence; ParseRole also accepts
// the spellings emitted by the clinic REST API.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleProfessional Role = "PROFESSIONAL"
	RolePatient      Role = "PATIENT"
)

// roleAliases maps accepted spellings (upper-cased) to canonical roles.
//
//nolint:gochecknoglobals // static read-only lookup table
var roleAliases = map[string]Role{
	"ADMIN":        RoleAdmin,
	"PROFESSIONAL": RoleProfessional,
	"PROFESIONAL":  RoleProfessional,
	"PATIENT":      RolePatient,
	"PACIENTE":     RolePatient,
}

// ParseRole normalizes a role string. Unknown values are returned upper-cased
// and trimmed so callers can still inspect them; Valid reports false for them.
func ParseRole(s string) Role {
	key := strings.ToUpper(strings.TrimSpace(s))
	if r, ok := roleAliases[key]; ok {
		return r
	}
	return Role(key)
}

// Valid reports whether r is one of the three recognized roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProfessional, RolePatient:
		return true
	default:
		return false
	}
}

// UnmarshalJSON normalizes aliases on decode.
func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*r = ParseRole(s)
	return nil
}

// Identity represents the logged-in principal as returned by the login endpoint.
// ProfessionalID is only present for RoleProfessional.
type Identity struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Role           Role   `json:"role"`
	ProfessionalID *int64 `json:"profesional_id,omitempty"`
}

// Credentials is the access/refresh token pair. Both values are opaque.
type Credentials struct {
	Access  string
	Refresh string
}

// Session aggregates the identity and its credentials.
// The zero value is the empty (logged out) session.
type Session struct {
	Identity    *Identity
	Credentials Credentials
}

// IsEmpty reports whether the session holds no identity.
func (s Session) IsEmpty() bool { return s.Identity == nil }

// Authenticated reports whether the session has both an identity and an access token.
func (s Session) Authenticated() bool {
	return s.Identity != nil && s.Credentials.Access != ""
}

// Role returns the identity role, or "" for an empty session.
func (s Session) Role() Role {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Role
}

// Clone returns a deep copy so callers cannot mutate store-owned state.
func (s Session) Clone() Session {
	if s.Identity == nil {
		return Session{Credentials: s.Credentials}
	}
	id := *s.Identity
	if s.Identity.ProfessionalID != nil {
		pid := *s.Identity.ProfessionalID
		id.ProfessionalID = &pid
	}
	return Session{Identity: &id, Credentials: s.Credentials}
}
