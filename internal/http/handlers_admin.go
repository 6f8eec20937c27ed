package httpx

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/turnos-app/turnos/internal/domain/model"
)

// AdminHandlers serves the ADMIN dashboard.
type AdminHandlers struct {
	clinicHandlers
}

type adminDashboard struct {
	Report        model.GlobalReport   `json:"report"`
	Professionals []model.Professional `json:"professionals"`
	Patients      []model.Patient      `json:"patients"`
}

// Dashboard fetches the global report and the directories concurrently.
// GET /admin.
func (h *AdminHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	api := h.api(r)
	var out adminDashboard

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		out.Report, err = api.GlobalReport(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		out.Professionals, err = api.ListProfessionals(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		out.Patients, err = api.ListPatients(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, out)
}

// ListPatients lists registered patients.
// GET /admin/pacientes.
func (h *AdminHandlers) ListPatients(w http.ResponseWriter, r *http.Request) {
	list, err := h.api(r).ListPatients(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"patients": list})
}

// CreateProfessional registers a professional with its user account.
// POST /admin/profesionales.
func (h *AdminHandlers) CreateProfessional(w http.ResponseWriter, r *http.Request) {
	var in model.ProfessionalInput
	if !DecodeJSON(w, r, &in) {
		return
	}
	in.Normalize()
	if err := in.Validate(true); err != nil {
		h.fail(w, r, invalid(err))
		return
	}
	p, err := h.api(r).CreateProfessional(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, p)
}

// UpdateProfessional replaces a professional's practice data.
// PUT /admin/profesionales/{id}.
func (h *AdminHandlers) UpdateProfessional(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var in model.ProfessionalInput
	if !DecodeJSON(w, r, &in) {
		return
	}
	in.Normalize()
	if err := in.Validate(false); err != nil {
		h.fail(w, r, invalid(err))
		return
	}
	p, err := h.api(r).UpdateProfessional(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

// DeleteProfessional removes a professional.
// DELETE /admin/profesionales/{id}.
func (h *AdminHandlers) DeleteProfessional(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.api(r).DeleteProfessional(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateAgenda creates a monthly agenda for any professional.
// POST /admin/agendas.
func (h *AdminHandlers) CreateAgenda(w http.ResponseWriter, r *http.Request) {
	var in model.AgendaInput
	if !DecodeJSON(w, r, &in) {
		return
	}
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

// Reports returns the report of one professional or patient, or the global one.
// GET /admin/reportes?profesional=&paciente=.
func (h *AdminHandlers) Reports(w http.ResponseWriter, r *http.Request) {
	professionalID, err := queryID(r, "profesional")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	patientID, err := queryID(r, "paciente")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	api := h.api(r)
	switch {
	case professionalID > 0:
		rep, err := api.ProfessionalReport(r.Context(), professionalID)
		h.writeReport(w, r, rep, err)
	case patientID > 0:
		rep, err := api.PatientReport(r.Context(), patientID)
		h.writeReport(w, r, rep, err)
	default:
		rep, err := api.GlobalReport(r.Context())
		if err != nil {
			h.fail(w, r, err)
			return
		}
		WriteJSON(w, http.StatusOK, rep)
	}
}

func (h *clinicHandlers) writeReport(w http.ResponseWriter, r *http.Request, rep model.Report, err error) {
	if err != nil {
		h.fail(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, rep)
}
