//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ParseDate parses an API date (YYYY-MM-DD) in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// parseClock accepts HH:MM and HH:MM:SS.
func parseClock(s string) (time.Time, error) {
	if len(s) > len(timeLayout) {
		return time.Parse(time.TimeOnly, s)
	}
	return time.Parse(timeLayout, s)
}

// Agenda is a professional's monthly schedule.
type Agenda struct {
	ID               int64    `json:"id"`
	ProfessionalID   int64    `json:"profesional"`
	Month            string   `json:"mes"`
	StartTime        string   `json:"horario_inicio"`
	EndTime          string   `json:"horario_fin"`
	SlotMinutes      int      `json:"duracion_turno"`
	UnavailableDays  []string `json:"dias_no_disponibles"`
	ProfessionalName string   `json:"profesional_nombre,omitempty"`
	Specialty        string   `json:"especialidad,omitempty"`
}

// AgendaInput creates an agenda. The API generates the slots.
type AgendaInput struct {
	ProfessionalID  int64    `json:"profesional"`
	Month           string   `json:"mes"`
	StartTime       string   `json:"horario_inicio"`
	EndTime         string   `json:"horario_fin"`
	SlotMinutes     int      `json:"duracion_turno"`
	UnavailableDays []string `json:"dias_no_disponibles"`
}

// Validate checks date/time shapes and ordering before the payload is sent.
func (in AgendaInput) Validate() error {
	if in.ProfessionalID <= 0 {
		return errors.New("profesional is required and cannot be empty")
	}
	month, err := ParseDate(in.Month)
	if err != nil {
		return errors.New("mes must be a valid date (YYYY-MM-DD)")
	}
	if month.Day() != 1 {
		return errors.New("mes must be the first day of the month")
	}
	start, err := parseClock(in.StartTime)
	if err != nil {
		return errors.New("horario_inicio must be a valid time (HH:MM)")
	}
	end, err := parseClock(in.EndTime)
	if err != nil {
		return errors.New("horario_fin must be a valid time (HH:MM)")
	}
	if !end.After(start) {
		return errors.New("horario_fin must be after horario_inicio")
	}
	if in.SlotMinutes <= 0 {
		return errors.New("duracion_turno must be at least 1")
	}
	for _, d := range in.UnavailableDays {
		if _, err := ParseDate(d); err != nil {
			return errors.New("dias_no_disponibles must contain only dates (YYYY-MM-DD)")
		}
	}
	return nil
}

// SplitAgendas partitions agendas into current/future and past months relative to now.
// An agenda whose month cannot be parsed counts as current.
func SplitAgendas(list []Agenda, now time.Time) (current, past []Agenda) {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for _, a := range list {
		m, err := ParseDate(a.Month)
		if err == nil && m.Before(firstOfMonth) {
			past = append(past, a)
			continue
		}
		current = append(current, a)
	}
	return current, past
}
