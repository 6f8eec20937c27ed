//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "math"

// Report is the attendance summary for a professional, patient or agenda.
// Exactly one of the *ID fields is set depending on the report scope.
type Report struct {
	ProfessionalID   *int64  `json:"profesional_id,omitempty"`
	PatientID        *int64  `json:"paciente_id,omitempty"`
	AgendaID         *int64  `json:"agenda_id,omitempty"`
	Total            int     `json:"total_turnos"`
	Attended         int     `json:"asistidos"`
	NoShows          int     `json:"inasistencias"`
	Cancelled        int     `json:"cancelados"`
	AttendanceRate   float64 `json:"porcentaje_asistencia"`
	NoShowRate       float64 `json:"porcentaje_inasistencia"`
	CancellationRate float64 `json:"porcentaje_cancelados"`
}

// JustificationTotals counts absences by review state.
type JustificationTotals struct {
	Pending  int `json:"pendientes"`
	Accepted int `json:"aceptadas"`
	Rejected int `json:"rechazadas"`
}

// GlobalReport is the clinic-wide summary shown to administrators.
type GlobalReport struct {
	Report
	Justifications JustificationTotals `json:"justificaciones"`
}

// ReportFromAppointments computes a report locally from a list, ignoring available slots.
// Percentages are rounded to two decimals like the API does.
func ReportFromAppointments(list []Appointment) Report {
	var r Report
	for _, a := range list {
		switch a.Status {
		case AppointmentAvailable:
			continue
		case AppointmentAttended:
			r.Attended++
		case AppointmentNoShow:
			r.NoShows++
		case AppointmentCancelled:
			r.Cancelled++
		}
		r.Total++
	}
	r.AttendanceRate = percent(r.Attended, r.Total)
	r.NoShowRate = percent(r.NoShows, r.Total)
	r.CancellationRate = percent(r.Cancelled, r.Total)
	return r
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)/float64(total)*10000) / 100
}

// Page is the paginated envelope used by some list endpoints.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}
