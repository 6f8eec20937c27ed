//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
)

// Weekday names accepted by the API for attention days.
//
//nolint:gochecknoglobals // static read-only lookup
var validWeekdays = map[string]bool{
	"lunes": true, "martes": true, "miercoles": true, "jueves": true,
	"viernes": true, "sabado": true, "domingo": true,
}

// Professional is a clinic practitioner as returned by /profesionales/.
type Professional struct {
	ID            int64    `json:"id"`
	LicenseNumber string   `json:"matricula"`
	Specialty     string   `json:"especialidad"`
	Phone         string   `json:"telefono"`
	StartTime     string   `json:"horario_inicio"`
	EndTime       string   `json:"horario_fin"`
	AttentionDays []string `json:"dias_atencion"`
	SlotMinutes   int      `json:"duracion_turno"`
	UserID        int64    `json:"usuario,omitempty"`
	Username      string   `json:"usuario_nombre,omitempty"`
}

// ProfessionalInput is the payload to register or update a professional.
// Username, Password and FullName are only used on registration.
type ProfessionalInput struct {
	LicenseNumber string   `json:"matricula"`
	Specialty     string   `json:"especialidad"`
	Phone         string   `json:"telefono"`
	StartTime     string   `json:"horario_inicio"`
	EndTime       string   `json:"horario_fin"`
	AttentionDays []string `json:"dias_atencion"`
	SlotMinutes   int      `json:"duracion_turno"`
	Username      string   `json:"username,omitempty"`
	Password      string   `json:"password,omitempty"`
	FullName      string   `json:"nombre_completo,omitempty"`
}

// Normalize trims fields and lower-cases attention days in place.
func (in *ProfessionalInput) Normalize() {
	in.LicenseNumber = strings.TrimSpace(in.LicenseNumber)
	in.Specialty = strings.TrimSpace(in.Specialty)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)
	for i, d := range in.AttentionDays {
		in.AttentionDays[i] = strings.ToLower(strings.TrimSpace(d))
	}
}

// Validate checks the fields the API rejects without a useful message.
// registering adds the account fields to the required set.
func (in ProfessionalInput) Validate(registering bool) error {
	if in.LicenseNumber == "" {
		return errors.New("matricula is required and cannot be empty")
	}
	if in.Specialty == "" {
		return errors.New("especialidad is required and cannot be empty")
	}
	if in.SlotMinutes < 0 {
		return errors.New("duracion_turno must be non-negative")
	}
	for _, d := range in.AttentionDays {
		if !validWeekdays[strings.ToLower(d)] {
			return errors.New("dias_atencion must be one of: lunes, martes, miercoles, jueves, viernes, sabado, domingo")
		}
	}
	if registering {
		if in.Username == "" || in.Password == "" {
			return errors.New("username and password are required and cannot be empty")
		}
	}
	return nil
}

// FilterBySpecialty returns the professionals with the given specialty.
// An empty specialty returns the input unchanged.
func FilterBySpecialty(list []Professional, specialty string) []Professional {
	if specialty == "" {
		return list
	}
	out := make([]Professional, 0, len(list))
	for _, p := range list {
		if p.Specialty == specialty {
			out = append(out, p)
		}
	}
	return out
}

// Specialties returns the distinct specialties in first-seen order.
func Specialties(list []Professional) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, p := range list {
		if p.Specialty == "" || seen[p.Specialty] {
			continue
		}
		seen[p.Specialty] = true
		out = append(out, p.Specialty)
	}
	return out
}
