package httpx

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/turnos-app/turnos/internal/domain/model"
	apperrors "github.com/turnos-app/turnos/internal/errors"
)

// AvailablePageSize is the page size of the available slots listing.
const AvailablePageSize = 20

// PatientHandlers serves the PATIENT dashboard.
type PatientHandlers struct {
	clinicHandlers
}

type patientDashboard struct {
	Upcoming        []model.Appointment     `json:"upcoming"`
	Counts          model.AppointmentCounts `json:"counts"`
	PendingAbsences int                     `json:"pending_absences"`
	Report          model.Report            `json:"report"`
}

// Dashboard fetches the patient's appointments, absences and report concurrently.
// GET /paciente.
func (h *PatientHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	api := h.api(r)

	var (
		out          patientDashboard
		appointments []model.Appointment
		absences     []model.Absence
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		appointments, err = api.MyAppointments(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		absences, err = api.MyAbsences(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		out.Report, err = api.MyReport(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(w, r, err)
		return
	}

	today := h.today()
	out.Upcoming = model.FilterAppointments(appointments, model.FilterUpcoming, today)
	out.Counts = model.CountAppointments(appointments, today)
	out.PendingAbsences = model.CountAbsences(absences)[model.JustificationPending]
	WriteJSON(w, http.StatusOK, out)
}

// AvailableAppointments pages through free slots, optionally for one professional.
// GET /paciente/turnos-disponibles?profesional=&page=.
func (h *PatientHandlers) AvailableAppointments(w http.ResponseWriter, r *http.Request) {
	professionalID, err := queryID(r, "profesional")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	page, err := queryPage(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.api(r).ListAppointments(r.Context(), model.AppointmentQuery{
		ProfessionalID: professionalID,
		Status:         model.AppointmentAvailable,
		Page:           page,
		PageSize:       AvailablePageSize,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"page":         page,
		"count":        res.Count,
		"has_next":     res.Next != nil,
		"has_previous": res.Previous != nil,
		"appointments": res.Results,
	})
}

// Reserve books a free slot for the logged-in patient.
// POST /paciente/turnos/{id}/reservar.
func (h *PatientHandlers) Reserve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	a, err := h.api(r).ReserveAppointment(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, a)
}

// Cancel releases one of the patient's reservations.
// POST /paciente/turnos/{id}/cancelar.
func (h *PatientHandlers) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.api(r).CancelAppointment(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MyAppointments lists the patient's appointments with per-filter counts.
// GET /paciente/mis-turnos?filtro=.
func (h *PatientHandlers) MyAppointments(w http.ResponseWriter, r *http.Request) {
	list, err := h.api(r).MyAppointments(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeAppointments(w, list, model.ParseAppointmentFilter(r.URL.Query().Get("filtro")), h.today())
}

// MyAbsences lists the patient's absences.
// GET /paciente/inasistencias?estado=.
func (h *PatientHandlers) MyAbsences(w http.ResponseWriter, r *http.Request) {
	list, err := h.api(r).MyAbsences(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeAbsences(w, r, list)
}

type justifyRequest struct {
	Justification string `json:"justificacion"`
}

// Justify submits a justification for an absence.
// POST /paciente/inasistencias/{id}/justificar.
func (h *PatientHandlers) Justify(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var in justifyRequest
	if !DecodeJSON(w, r, &in) {
		return
	}
	text, err := model.ValidateJustification(in.Justification)
	if err != nil {
		h.fail(w, r, apperrors.ValidationField("justificacion", err.Error()))
		return
	}
	a, err := h.api(r).JustifyAbsence(r.Context(), id, text)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, a)
}

// Reports returns the patient's report and attendance history.
// GET /paciente/reportes.
func (h *PatientHandlers) Reports(w http.ResponseWriter, r *http.Request) {
	api := h.api(r)
	var (
		report  model.Report
		history []model.Appointment
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		report, err = api.MyReport(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		history, err = api.MyHistory(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"report": report, "history": history})
}

// ProfessionalDirectory lists professionals for any logged-in role.
// GET /profesionales.
func (h *clinicHandlers) ProfessionalDirectory(w http.ResponseWriter, r *http.Request) {
	list, err := h.api(r).ListProfessionals(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"professionals": model.FilterBySpecialty(list, r.URL.Query().Get("especialidad")),
		"specialties":   model.Specialties(list),
	})
}
