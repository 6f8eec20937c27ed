//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"
)

// AppointmentStatus is the lifecycle state of a slot ("turno").
type AppointmentStatus string

const (
	AppointmentAvailable AppointmentStatus = "DISPONIBLE"
	AppointmentReserved  AppointmentStatus = "RESERVADO"
	AppointmentScheduled AppointmentStatus = "PROGRAMADO"
	AppointmentAttended  AppointmentStatus = "ASISTIO"
	AppointmentNoShow    AppointmentStatus = "NO_ASISTIO"
	AppointmentCancelled AppointmentStatus = "CANCELADO"
)

// Valid reports whether the status is known to the API.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentAvailable, AppointmentReserved, AppointmentScheduled,
		AppointmentAttended, AppointmentNoShow, AppointmentCancelled:
		return true
	default:
		return false
	}
}

// ParseAppointmentStatus normalizes s and reports whether it is supported.
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	st := AppointmentStatus(strings.ToUpper(strings.TrimSpace(s)))
	if st.Valid() {
		return st, true
	}
	return "", false
}

// Appointment is a single slot as serialized by /turnos/.
type Appointment struct {
	ID                  int64               `json:"id"`
	Date                string              `json:"fecha"`
	StartTime           string              `json:"hora_inicio"`
	EndTime             string              `json:"hora_fin"`
	Status              AppointmentStatus   `json:"estado"`
	PatientID           *int64              `json:"paciente_id,omitempty"`
	PatientUserID       *int64              `json:"paciente_usuario_id,omitempty"`
	PatientName         *string             `json:"paciente_nombre,omitempty"`
	AgendaID            *int64              `json:"agenda,omitempty"`
	ProfessionalName    *string             `json:"profesional_nombre,omitempty"`
	Justification       *string             `json:"justificacion,omitempty"`
	JustificationStatus JustificationStatus `json:"estado_justificacion,omitempty"`
}

// HasPatient reports whether the slot is assigned to a patient.
func (a Appointment) HasPatient() bool { return a.PatientID != nil }

// OnOrAfter reports whether the appointment date is on or after day (date part only).
// Unparseable dates are treated as past.
func (a Appointment) OnOrAfter(day time.Time) bool {
	d, err := ParseDate(a.Date)
	if err != nil {
		return false
	}
	y, m, dd := day.Date()
	return !d.Before(time.Date(y, m, dd, 0, 0, 0, 0, time.UTC))
}

// CanCancel reports whether a patient may cancel the appointment.
func CanCancel(a Appointment) bool { return a.Status == AppointmentReserved }

// CanReserve reports whether a patient may book the slot.
func CanReserve(a Appointment) bool {
	return a.Status == AppointmentAvailable && !a.HasPatient()
}

// CanMarkNoShow reports whether a professional may record a no-show.
func CanMarkNoShow(a Appointment) bool {
	if !a.HasPatient() {
		return false
	}
	return a.Status == AppointmentScheduled || a.Status == AppointmentReserved
}

// AppointmentFilter selects a subset of appointments in list views.
type AppointmentFilter string

const (
	FilterAll       AppointmentFilter = "TODOS"
	FilterAvailable AppointmentFilter = "DISPONIBLES"
	FilterReserved  AppointmentFilter = "RESERVADOS"
	FilterAttended  AppointmentFilter = "ASISTIO"
	FilterNoShow    AppointmentFilter = "NO_ASISTIO"
	FilterCancelled AppointmentFilter = "CANCELADO"
	FilterUpcoming  AppointmentFilter = "PROXIMOS"
)

// ParseAppointmentFilter maps a query value to a filter; unknown or empty values mean FilterAll.
func ParseAppointmentFilter(s string) AppointmentFilter {
	f := AppointmentFilter(strings.ToUpper(strings.TrimSpace(s)))
	switch f {
	case FilterAvailable, FilterReserved, FilterAttended, FilterNoShow, FilterCancelled, FilterUpcoming:
		return f
	default:
		return FilterAll
	}
}

// Match reports whether a passes the filter. today only matters for FilterUpcoming.
func (f AppointmentFilter) Match(a Appointment, today time.Time) bool {
	switch f {
	case FilterAvailable:
		return a.Status == AppointmentAvailable
	case FilterReserved:
		return a.Status == AppointmentReserved
	case FilterAttended:
		return a.Status == AppointmentAttended
	case FilterNoShow:
		return a.Status == AppointmentNoShow
	case FilterCancelled:
		return a.Status == AppointmentCancelled
	case FilterUpcoming:
		return a.Status == AppointmentReserved && a.OnOrAfter(today)
	default:
		return true
	}
}

// FilterAppointments returns the appointments matching f, preserving order.
func FilterAppointments(list []Appointment, f AppointmentFilter, today time.Time) []Appointment {
	if f == FilterAll || f == "" {
		return list
	}
	out := make([]Appointment, 0, len(list))
	for _, a := range list {
		if f.Match(a, today) {
			out = append(out, a)
		}
	}
	return out
}

// AppointmentCounts is the per-filter tally shown next to each filter.
type AppointmentCounts map[AppointmentFilter]int

// CountAppointments tallies list for every filter.
func CountAppointments(list []Appointment, today time.Time) AppointmentCounts {
	filters := []AppointmentFilter{
		FilterAvailable, FilterReserved, FilterAttended, FilterNoShow, FilterCancelled, FilterUpcoming,
	}
	counts := AppointmentCounts{FilterAll: len(list)}
	for _, f := range filters {
		counts[f] = 0
	}
	for _, a := range list {
		for _, f := range filters {
			if f.Match(a, today) {
				counts[f]++
			}
		}
	}
	return counts
}

// AppointmentQuery holds the list filters of GET /turnos/.
type AppointmentQuery struct {
	ProfessionalID int64
	AgendaID       int64
	Status         AppointmentStatus
	Page           int
	PageSize       int
}
