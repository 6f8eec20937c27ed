package turnosapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/turnos-app/turnos/internal/domain/model"
	"github.com/turnos-app/turnos/internal/ports"
)

// Client is the authenticated clinic API. cfg.Client must already route through
// the request gateway (gateway.Gateway.Client) so calls carry the session token.
type Client struct {
	t *transport
}

var _ ports.ClinicAPI = (*Client)(nil)

// NewClient builds a Client for cfg.
func NewClient(cfg Config) (*Client, error) {
	t, err := newTransport(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{t: t}, nil
}

// WithHTTPClient returns a copy of c that sends requests through hc.
// It lets one validated Client be rebound to each session's gateway.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	t := *c.t
	t.client = hc
	return &Client{t: &t}
}

func idPath(prefix string, id int64, suffix string) string {
	return prefix + strconv.FormatInt(id, 10) + "/" + suffix
}

// Professionals

func (c *Client) ListProfessionals(ctx context.Context) ([]model.Professional, error) {
	return getList[model.Professional](ctx, c.t, "/profesionales/", nil)
}

func (c *Client) GetProfessional(ctx context.Context, id int64) (model.Professional, error) {
	var out model.Professional
	err := c.t.call(ctx, http.MethodGet, idPath("/profesionales/", id, ""), nil, nil, &out)
	return out, err
}

// CreateProfessional registers the user account and the professional profile in one call.
func (c *Client) CreateProfessional(ctx context.Context, in model.ProfessionalInput) (model.Professional, error) {
	var out model.Professional
	err := c.t.call(ctx, http.MethodPost, "/profesionales/registro/", nil, in, &out)
	return out, err
}

func (c *Client) UpdateProfessional(ctx context.Context, id int64, in model.ProfessionalInput) (model.Professional, error) {
	in.Username, in.Password, in.FullName = "", "", ""
	var out model.Professional
	err := c.t.call(ctx, http.MethodPut, idPath("/profesionales/", id, ""), nil, in, &out)
	return out, err
}

func (c *Client) DeleteProfessional(ctx context.Context, id int64) error {
	return c.t.call(ctx, http.MethodDelete, idPath("/profesionales/", id, ""), nil, nil, nil)
}

// Patients

func (c *Client) ListPatients(ctx context.Context) ([]model.Patient, error) {
	return getList[model.Patient](ctx, c.t, "/pacientes/", nil)
}

// RegisterPatient calls the public registration endpoint.
func (c *Client) RegisterPatient(ctx context.Context, in model.PatientRegistration) error {
	return c.t.call(ctx, http.MethodPost, "/auth/register/", nil, in, nil)
}

// Agendas

// ListAgendas returns the agendas visible to the session; professionalID > 0 narrows them.
func (c *Client) ListAgendas(ctx context.Context, professionalID int64) ([]model.Agenda, error) {
	var q url.Values
	if professionalID > 0 {
		q = url.Values{"profesional": {strconv.FormatInt(professionalID, 10)}}
	}
	return getList[model.Agenda](ctx, c.t, "/agendas/", q)
}

func (c *Client) CreateAgenda(ctx context.Context, in model.AgendaInput) (model.Agenda, error) {
	var out model.Agenda
	err := c.t.call(ctx, http.MethodPost, "/agendas/", nil, in, &out)
	return out, err
}

// Appointments

// ListAppointments returns one page of appointments. A bare array response is
// returned as a single page.
func (c *Client) ListAppointments(ctx context.Context, q model.AppointmentQuery) (model.Page[model.Appointment], error) {
	values := url.Values{}
	if q.ProfessionalID > 0 {
		values.Set("profesional", strconv.FormatInt(q.ProfessionalID, 10))
	}
	if q.AgendaID > 0 {
		values.Set("agenda", strconv.FormatInt(q.AgendaID, 10))
	}
	if q.Status != "" {
		values.Set("estado", string(q.Status))
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(q.PageSize))
	}

	data, err := c.t.raw(ctx, http.MethodGet, "/turnos/", values, nil)
	if err != nil {
		return model.Page[model.Appointment]{}, err
	}
	return decodePage[model.Appointment](data)
}

func (c *Client) MyAppointments(ctx context.Context) ([]model.Appointment, error) {
	return getList[model.Appointment](ctx, c.t, "/turnos/mis-turnos/", nil)
}

func (c *Client) AgendaAppointments(ctx context.Context, agendaID int64) ([]model.Appointment, error) {
	return getList[model.Appointment](ctx, c.t, idPath("/turnos/por-agenda/", agendaID, ""), nil)
}

// ReserveAppointment books an available slot for the logged-in patient.
func (c *Client) ReserveAppointment(ctx context.Context, id int64) (model.Appointment, error) {
	var out model.Appointment
	err := c.t.call(ctx, http.MethodPatch, idPath("/turnos/", id, ""), nil, map[string]any{}, &out)
	return out, err
}

func (c *Client) UpdateAppointmentStatus(ctx context.Context, id int64, status model.AppointmentStatus) (model.Appointment, error) {
	var out model.Appointment
	err := c.t.call(ctx, http.MethodPatch, idPath("/turnos/", id, ""), nil, map[string]string{"estado": string(status)}, &out)
	return out, err
}

func (c *Client) CancelAppointment(ctx context.Context, id int64) error {
	return c.t.call(ctx, http.MethodPost, idPath("/turnos/", id, "cancelar/"), nil, nil, nil)
}

func (c *Client) MarkNoShow(ctx context.Context, id int64) (model.Appointment, error) {
	var out model.Appointment
	err := c.t.call(ctx, http.MethodPatch, idPath("/turnos/", id, "marcar_inasistencia/"), nil, nil, &out)
	return out, err
}

// Absences

func (c *Client) ListAbsences(ctx context.Context) ([]model.Absence, error) {
	return getList[model.Absence](ctx, c.t, "/inasistencias/", nil)
}

func (c *Client) MyAbsences(ctx context.Context) ([]model.Absence, error) {
	return getList[model.Absence](ctx, c.t, "/inasistencias/mis-inasistencias/", nil)
}

func (c *Client) JustifyAbsence(ctx context.Context, id int64, text string) (model.Absence, error) {
	var out model.Absence
	err := c.t.call(ctx, http.MethodPost, idPath("/inasistencias/", id, "justificar/"), nil,
		map[string]string{"justificacion": text}, &out)
	return out, err
}

func (c *Client) EvaluateAbsence(ctx context.Context, id int64, ev model.Evaluation) (model.Absence, error) {
	var out model.Absence
	err := c.t.call(ctx, http.MethodPatch, idPath("/inasistencias/", id, "evaluar/"), nil, ev, &out)
	return out, err
}

// Reports

func (c *Client) GlobalReport(ctx context.Context) (model.GlobalReport, error) {
	var out model.GlobalReport
	err := c.t.call(ctx, http.MethodGet, "/reportes/global/", nil, nil, &out)
	return out, err
}

func (c *Client) ProfessionalReport(ctx context.Context, id int64) (model.Report, error) {
	return c.report(ctx, idPath("/reportes/", id, "profesional/"))
}

func (c *Client) PatientReport(ctx context.Context, id int64) (model.Report, error) {
	return c.report(ctx, idPath("/reportes/", id, "paciente/"))
}

func (c *Client) AgendaReport(ctx context.Context, id int64) (model.Report, error) {
	return c.report(ctx, idPath("/reportes/", id, "agenda/"))
}

func (c *Client) MyReport(ctx context.Context) (model.Report, error) {
	return c.report(ctx, "/reportes/mi-reporte/")
}

func (c *Client) MyHistory(ctx context.Context) ([]model.Appointment, error) {
	return getList[model.Appointment](ctx, c.t, "/reportes/mi-historial/", nil)
}

func (c *Client) report(ctx context.Context, path string) (model.Report, error) {
	var out model.Report
	err := c.t.call(ctx, http.MethodGet, path, nil, nil, &out)
	return out, err
}
