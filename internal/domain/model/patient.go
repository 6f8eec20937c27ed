//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
)

const dniMaxLen = 8

// Patient is a registered patient as returned by /pacientes/.
type Patient struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"usuario"`
	DNI           string  `json:"dni"`
	FullName      string  `json:"nombre_completo"`
	BirthDate     string  `json:"fecha_nacimiento"`
	Phone         string  `json:"telefono"`
	Email         *string `json:"email,omitempty"`
	Address       string  `json:"direccion"`
	HealthInsurer *string `json:"obra_social,omitempty"`
	MemberNumber  *string `json:"numero_afiliado,omitempty"`
}

// PatientRegistration is the public self-registration payload.
// The DNI doubles as the login username.
type PatientRegistration struct {
	DNI           string `json:"dni"`
	Password      string `json:"password"`
	FullName      string `json:"nombre_completo"`
	BirthDate     string `json:"fecha_nacimiento"`
	Phone         string `json:"telefono"`
	Email         string `json:"email,omitempty"`
	Address       string `json:"direccion"`
	HealthInsurer string `json:"obra_social,omitempty"`
	MemberNumber  string `json:"numero_afiliado,omitempty"`
}

// Validate reports missing required fields.
func (r PatientRegistration) Validate() error {
	dni := strings.TrimSpace(r.DNI)
	if dni == "" {
		return errors.New("dni is required and cannot be empty")
	}
	if len(dni) > dniMaxLen {
		return errors.New("dni cannot exceed 8 characters")
	}
	if r.Password == "" {
		return errors.New("password is required and cannot be empty")
	}
	if strings.TrimSpace(r.FullName) == "" {
		return errors.New("nombre_completo is required and cannot be empty")
	}
	if _, err := ParseDate(r.BirthDate); err != nil {
		return errors.New("fecha_nacimiento must be a valid date (YYYY-MM-DD)")
	}
	return nil
}
