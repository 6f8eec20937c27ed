package httpx

import (
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/turnos-app/turnos/internal/domain/model"
	apperrors "github.com/turnos-app/turnos/internal/errors"
)

// ProfessionalHandlers serves the PROFESSIONAL dashboard.
type ProfessionalHandlers struct {
	clinicHandlers
}

// professionalID returns the logged-in professional's id.
func (h *ProfessionalHandlers) professionalID(r *http.Request) (int64, error) {
	s := SessionFromContext(r.Context())
	if s.Identity == nil || s.Identity.ProfessionalID == nil {
		return 0, apperrors.Forbidden("session has no professional profile")
	}
	return *s.Identity.ProfessionalID, nil
}

type agendaSplit struct {
	Current []model.Agenda `json:"current"`
	Past    []model.Agenda `json:"past"`
}

type professionalDashboard struct {
	Agendas         agendaSplit  `json:"agendas"`
	PendingAbsences int          `json:"pending_absences"`
	Report          model.Report `json:"report"`
}

// Dashboard fetches agendas, pending justifications and the report concurrently.
// GET /profesional.
func (h *ProfessionalHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	pid, err := h.professionalID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api := h.api(r)

	var (
		out      professionalDashboard
		agendas  []model.Agenda
		absences []model.Absence
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		agendas, err = api.ListAgendas(ctx, pid)
		return err
	})
	g.Go(func() error {
		var err error
		absences, err = api.ListAbsences(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		out.Report, err = api.ProfessionalReport(ctx, pid)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(w, r, err)
		return
	}

	out.Agendas.Current, out.Agendas.Past = model.SplitAgendas(agendas, h.today())
	out.PendingAbsences = model.CountAbsences(absences)[model.JustificationPending]
	WriteJSON(w, http.StatusOK, out)
}

// ListAgendas lists the professional's agendas split into current and past months.
// GET /profesional/agendas.
func (h *ProfessionalHandlers) ListAgendas(w http.ResponseWriter, r *http.Request) {
	pid, err := h.professionalID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	list, err := h.api(r).ListAgendas(r.Context(), pid)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var out agendaSplit
	out.Current, out.Past = model.SplitAgendas(list, h.today())
	WriteJSON(w, http.StatusOK, out)
}

// CreateAgenda creates an agenda owned by the logged-in professional.
// POST /profesional/agendas.
func (h *ProfessionalHandlers) CreateAgenda(w http.ResponseWriter, r *http.Request) {
	pid, err := h.professionalID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var in model.AgendaInput
	if !DecodeJSON(w, r, &in) {
		return
	}
	in.ProfessionalID = pid
	if err := in.Validate(); err != nil {
		h.fail(w, r, invalid(err))
		return
	}
	a, err := h.api(r).CreateAgenda(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, a)
}

// AgendaAppointments lists one agenda's slots with per-filter counts.
// GET /profesional/agendas/{id}/turnos?filtro=.
func (h *ProfessionalHandlers) AgendaAppointments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	list, err := h.api(r).AgendaAppointments(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeAppointments(w, list, model.ParseAppointmentFilter(r.URL.Query().Get("filtro")), h.today())
}

func writeAppointments(w http.ResponseWriter, list []model.Appointment, f model.AppointmentFilter, today time.Time) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"filter":       f,
		"appointments": model.FilterAppointments(list, f, today),
		"counts":       model.CountAppointments(list, today),
	})
}

type statusRequest struct {
	Status string `json:"estado"`
}

// UpdateStatus sets a slot's status.
// PATCH /profesional/turnos/{id}.
func (h *ProfessionalHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var in statusRequest
	if !DecodeJSON(w, r, &in) {
		return
	}
	status, ok := model.ParseAppointmentStatus(in.Status)
	if !ok {
		h.fail(w, r, apperrors.ValidationField("estado", "estado is not a valid appointment status"))
		return
	}
	a, err := h.api(r).UpdateAppointmentStatus(r.Context(), id, status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, a)
}

// MarkNoShow records a no-show and opens the justification workflow.
// POST /profesional/turnos/{id}/inasistencia.
func (h *ProfessionalHandlers) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	a, err := h.api(r).MarkNoShow(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, a)
}

// ListAbsences lists absences of the professional's patients.
// GET /profesional/inasistencias?estado=.
func (h *ProfessionalHandlers) ListAbsences(w http.ResponseWriter, r *http.Request) {
	list, err := h.api(r).ListAbsences(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeAbsences(w, r, list)
}

func (h *clinicHandlers) writeAbsences(w http.ResponseWriter, r *http.Request, list []model.Absence) {
	status, ok := model.ParseJustificationStatus(r.URL.Query().Get("estado"))
	if !ok {
		h.fail(w, r, apperrors.ValidationField("estado", "estado must be one of: PENDIENTE, JUSTIFICADA, INJUSTIFICADA"))
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"absences": model.FilterAbsences(list, status),
		"counts":   model.CountAbsences(list),
	})
}

// EvaluateAbsence approves or rejects a pending justification.
// POST /profesional/inasistencias/{id}/evaluar.
func (h *ProfessionalHandlers) EvaluateAbsence(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var ev model.Evaluation
	if !DecodeJSON(w, r, &ev) {
		return
	}
	if err := ev.Validate(); err != nil {
		h.fail(w, r, invalid(err))
		return
	}
	a, err := h.api(r).EvaluateAbsence(r.Context(), id, ev)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, a)
}

// Reports returns one agenda's report, or the professional's overall report.
// GET /profesional/reportes?agenda=.
func (h *ProfessionalHandlers) Reports(w http.ResponseWriter, r *http.Request) {
	agendaID, err := queryID(r, "agenda")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if agendaID > 0 {
		rep, err := h.api(r).AgendaReport(r.Context(), agendaID)
		h.writeReport(w, r, rep, err)
		return
	}
	pid, err := h.professionalID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	rep, err := h.api(r).ProfessionalReport(r.Context(), pid)
	h.writeReport(w, r, rep, err)
}
