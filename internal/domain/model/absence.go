//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxJustificationLen = 2000
	maxEvaluationNote   = 1000
)

// JustificationStatus is the review state of an absence ("inasistencia").
type JustificationStatus string

const (
	JustificationPending  JustificationStatus = "PENDIENTE"
	JustificationAccepted JustificationStatus = "JUSTIFICADA"
	JustificationRejected JustificationStatus = "INJUSTIFICADA"
)

// Valid reports whether the status is supported.
func (s JustificationStatus) Valid() bool {
	switch s {
	case JustificationPending, JustificationAccepted, JustificationRejected:
		return true
	default:
		return false
	}
}

// Label is the human-readable status shown in listings.
func (s JustificationStatus) Label() string {
	switch s {
	case JustificationPending:
		return "Pendiente de revisión"
	case JustificationAccepted:
		return "Justificada"
	case JustificationRejected:
		return "Injustificada"
	default:
		return "Sin justificar"
	}
}

// ParseJustificationStatus normalizes s; "" and "TODAS" yield ("", true) meaning no filter.
func ParseJustificationStatus(s string) (JustificationStatus, bool) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" || v == "TODAS" {
		return "", true
	}
	st := JustificationStatus(v)
	return st, st.Valid()
}

// Absence is a recorded no-show with its justification workflow state.
type Absence struct {
	ID               int64               `json:"id"`
	PatientID        int64               `json:"paciente"`
	PatientName      string              `json:"paciente_nombre,omitempty"`
	AppointmentID    *int64              `json:"turno,omitempty"`
	Date             string              `json:"fecha,omitempty"`
	AppointmentTime  string              `json:"hora_turno,omitempty"`
	ProfessionalName string              `json:"profesional_nombre,omitempty"`
	Justification    *string             `json:"justificacion,omitempty"`
	Status           JustificationStatus `json:"estado_justificacion"`
	CreatedAt        string              `json:"created_at,omitempty"`
	UpdatedAt        string              `json:"updated_at,omitempty"`
}

// CanJustify reports whether the patient may (re)submit a justification.
// Accepted justifications are final.
func CanJustify(a Absence) bool {
	return a.Status == JustificationPending || a.Status == JustificationRejected
}

// CanEvaluate reports whether a professional may approve or reject the absence.
func CanEvaluate(a Absence) bool { return a.Status == JustificationPending }

// FilterAbsences returns the absences with the given status; "" returns all.
func FilterAbsences(list []Absence, status JustificationStatus) []Absence {
	if status == "" {
		return list
	}
	out := make([]Absence, 0, len(list))
	for _, a := range list {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out
}

// CountAbsences tallies absences per status. Unknown statuses are ignored.
func CountAbsences(list []Absence) map[JustificationStatus]int {
	counts := map[JustificationStatus]int{
		JustificationPending:  0,
		JustificationAccepted: 0,
		JustificationRejected: 0,
	}
	for _, a := range list {
		if a.Status.Valid() {
			counts[a.Status]++
		}
	}
	return counts
}

// ValidateJustification trims text and enforces the API limits.
func ValidateJustification(text string) (string, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", errors.New("justificacion is required and cannot be empty")
	}
	if utf8.RuneCountInString(t) > maxJustificationLen {
		return "", fmt.Errorf("justificacion cannot exceed %d characters", maxJustificationLen)
	}
	return t, nil
}

// EvaluateAction is a professional's decision on a justification.
type EvaluateAction string

const (
	EvaluateApprove EvaluateAction = "APROBAR"
	EvaluateReject  EvaluateAction = "RECHAZAR"
)

// ParseEvaluateAction accepts the API values and their English equivalents.
func ParseEvaluateAction(s string) (EvaluateAction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "APROBAR", "APPROVE":
		return EvaluateApprove, nil
	case "RECHAZAR", "REJECT":
		return EvaluateReject, nil
	default:
		return "", fmt.Errorf("action must be one of: APROBAR, RECHAZAR (got %q)", s)
	}
}

// Result returns the status the absence moves to after the action.
func (a EvaluateAction) Result() JustificationStatus {
	if a == EvaluateApprove {
		return JustificationAccepted
	}
	return JustificationRejected
}

// Evaluation is the body of PATCH /inasistencias/{id}/evaluar/.
type Evaluation struct {
	Action EvaluateAction `json:"action"`
	Note   string         `json:"nota"`
}

// Validate enforces the note length limit.
func (e Evaluation) Validate() error {
	if e.Action != EvaluateApprove && e.Action != EvaluateReject {
		return errors.New("action must be one of: APROBAR, RECHAZAR")
	}
	if utf8.RuneCountInString(e.Note) > maxEvaluationNote {
		return fmt.Errorf("nota cannot exceed %d characters", maxEvaluationNote)
	}
	return nil
}
