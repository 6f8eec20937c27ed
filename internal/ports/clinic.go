package ports

import (
	"context"

	"github.com/turnos-app/turnos/internal/domain/model"
)

// ProfessionalAPI manages professionals. Writes are ADMIN-only on the server.
type ProfessionalAPI interface {
	ListProfessionals(ctx context.Context) ([]model.Professional, error)
	GetProfessional(ctx context.Context, id int64) (model.Professional, error)
	CreateProfessional(ctx context.Context, in model.ProfessionalInput) (model.Professional, error)
	UpdateProfessional(ctx context.Context, id int64, in model.ProfessionalInput) (model.Professional, error)
	DeleteProfessional(ctx context.Context, id int64) error
}

// PatientAPI covers patient listing and public self-registration.
type PatientAPI interface {
	ListPatients(ctx context.Context) ([]model.Patient, error)
	RegisterPatient(ctx context.Context, in model.PatientRegistration) error
}

// AgendaAPI manages monthly agendas.
type AgendaAPI interface {
	ListAgendas(ctx context.Context, professionalID int64) ([]model.Agenda, error)
	CreateAgenda(ctx context.Context, in model.AgendaInput) (model.Agenda, error)
}

// AppointmentAPI covers the slot lifecycle.
type AppointmentAPI interface {
	ListAppointments(ctx context.Context, q model.AppointmentQuery) (model.Page[model.Appointment], error)
	MyAppointments(ctx context.Context) ([]model.Appointment, error)
	AgendaAppointments(ctx context.Context, agendaID int64) ([]model.Appointment, error)
	ReserveAppointment(ctx context.Context, id int64) (model.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id int64, status model.AppointmentStatus) (model.Appointment, error)
	CancelAppointment(ctx context.Context, id int64) error
	MarkNoShow(ctx context.Context, id int64) (model.Appointment, error)
}

// AbsenceAPI covers the no-show justification workflow.
type AbsenceAPI interface {
	ListAbsences(ctx context.Context) ([]model.Absence, error)
	MyAbsences(ctx context.Context) ([]model.Absence, error)
	JustifyAbsence(ctx context.Context, id int64, text string) (model.Absence, error)
	EvaluateAbsence(ctx context.Context, id int64, ev model.Evaluation) (model.Absence, error)
}

// ReportAPI exposes attendance reports.
type ReportAPI interface {
	GlobalReport(ctx context.Context) (model.GlobalReport, error)
	ProfessionalReport(ctx context.Context, id int64) (model.Report, error)
	PatientReport(ctx context.Context, id int64) (model.Report, error)
	AgendaReport(ctx context.Context, id int64) (model.Report, error)
	MyReport(ctx context.Context) (model.Report, error)
	MyHistory(ctx context.Context) ([]model.Appointment, error)
}

// ClinicAPI is the authenticated clinic REST API as seen by one session.
type ClinicAPI interface {
	ProfessionalAPI
	PatientAPI
	AgendaAPI
	AppointmentAPI
	AbsenceAPI
	ReportAPI
}
