package turnosapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/turnos-app/turnos/internal/domain/auth"
	"github.com/turnos-app/turnos/internal/domain/model"
	apperrors "github.com/turnos-app/turnos/internal/errors"
	"github.com/turnos-app/turnos/internal/gateway"
	mockauth "github.com/turnos-app/turnos/internal/mocks/auth"
	"github.com/turnos-app/turnos/internal/ports"
	"github.com/turnos-app/turnos/internal/service"
	"github.com/turnos-app/turnos/internal/testutil"
)

type harness struct {
	api   *testutil.FakeAPI
	auth  *AuthClient
	kv    *mockauth.MemoryKV
	store *service.SessionStore
	nav   *mockauth.RecordingNavigator
	gw    *gateway.Gateway
	cli   *Client
}

// newHarness wires a logged-in patient session through the gateway to a FakeAPI.
func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()
	api := testutil.NewFakeAPI(t)
	authClient, err := NewAuthClient(Config{BaseURL: api.URL()})
	require.NoError(t, err)

	kv := mockauth.NewMemoryKV(nil)
	store, err := service.NewSessionStore(ctx, service.SessionStoreOptions{KV: kv})
	require.NoError(t, err)
	access, refresh := api.IssueTokens()
	require.NoError(t, store.Login(ctx, domainauth.Identity{ID: 7, Username: "30111222", Role: domainauth.RolePatient}, access, refresh))

	nav := &mockauth.RecordingNavigator{}
	gw, err := gateway.New(gateway.Options{Session: store, Refresher: authClient, Navigator: nav})
	require.NoError(t, err)
	cli, err := NewClient(Config{BaseURL: api.URL(), Client: gw.Client(&http.Client{Timeout: 5 * time.Second})})
	require.NoError(t, err)

	return &harness{api: api, auth: authClient, kv: kv, store: store, nav: nav, gw: gw, cli: cli}
}

func TestNewTransport_RejectsBadBaseURL(t *testing.T) {
	_, err := NewAuthClient(Config{BaseURL: "ftp://example.com"})
	assert.Error(t, err)
	_, err = NewClient(Config{BaseURL: "::nope"})
	assert.Error(t, err)

	c, err := NewClient(Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL+"/turnos/", c.t.endpoint("/turnos/", nil))
}

func TestAuthClient_Login(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	pid := int64(4)
	api.AddUser("dr.paz", "secret", domainauth.Identity{ID: 2, Username: "dr.paz", Role: domainauth.RoleProfessional, ProfessionalID: &pid})
	c, err := NewAuthClient(Config{BaseURL: api.URL()})
	require.NoError(t, err)

	res, err := c.Login(context.Background(), ports.LoginInput{Username: "dr.paz", Password: "secret"})
	require.NoError(t, err)
	require.NotNil(t, res.Identity)
	assert.Equal(t, domainauth.RoleProfessional, res.Identity.Role)
	assert.Equal(t, &pid, res.Identity.ProfessionalID)
	assert.NotEmpty(t, res.Access)
	assert.NotEmpty(t, res.Refresh)

	req, ok := api.LastRequest(http.MethodPost, "/auth/login/")
	require.True(t, ok)
	assert.JSONEq(t, `{"username":"dr.paz","password":"secret"}`, req.Body)
	assert.Empty(t, req.Authorization)
}

func TestAuthClient_LoginRejected(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	c, err := NewAuthClient(Config{BaseURL: api.URL()})
	require.NoError(t, err)

	_, err = c.Login(context.Background(), ports.LoginInput{Username: "x", Password: "y"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Contains(t, err.Error(), "No active account")
}

func TestAuthClient_Refresh(t *testing.T) {
	api := testutil.NewFakeAPI(t)
	c, err := NewAuthClient(Config{BaseURL: api.URL()})
	require.NoError(t, err)
	_, refresh := api.IssueTokens()

	access, err := c.Refresh(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)

	_, err = c.Refresh(context.Background(), "unknown")
	assert.True(t, apperrors.IsUnauthorized(err))

	api.SetRefreshDown(true)
	_, err = c.Refresh(context.Background(), refresh)
	assert.True(t, apperrors.IsUpstream(err))
}

func TestAuthClient_RefreshRequiresExactly200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()
	c, err := NewAuthClient(Config{BaseURL: srv.URL + "/api"})
	require.NoError(t, err)

	_, err = c.Refresh(context.Background(), "r")
	assert.True(t, apperrors.IsUpstream(err))
}

func TestClient_ListProfessionals_PaginatedAndBare(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.api.HandleJSON(http.MethodGet, "/profesionales/", http.StatusOK, map[string]any{
		"count":   1,
		"results": []map[string]any{{"id": 1, "matricula": "MP-1", "especialidad": "Clínica"}},
	})
	list, err := h.cli.ListProfessionals(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "MP-1", list[0].LicenseNumber)

	h.api.HandleJSON(http.MethodGet, "/profesionales/", http.StatusOK, []map[string]any{
		{"id": 1}, {"id": 2},
	})
	list, err = h.cli.ListProfessionals(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	req, ok := h.api.LastRequest(http.MethodGet, "/profesionales/")
	require.True(t, ok)
	assert.Equal(t, "Bearer "+h.store.AccessToken(), req.Authorization)
}

func TestClient_ListAppointmentsQuery(t *testing.T) {
	h := newHarness(t)
	h.api.HandleJSON(http.MethodGet, "/turnos/", http.StatusOK, map[string]any{
		"count":   21,
		"next":    "http://x/api/turnos/?page=2",
		"results": []map[string]any{{"id": 10, "estado": "DISPONIBLE", "fecha": "2025-03-04"}},
	})

	page, err := h.cli.ListAppointments(context.Background(), model.AppointmentQuery{
		ProfessionalID: 3, Status: model.AppointmentAvailable, Page: 1, PageSize: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, 21, page.Count)
	require.NotNil(t, page.Next)
	require.Len(t, page.Results, 1)
	assert.Equal(t, model.AppointmentAvailable, page.Results[0].Status)

	req, _ := h.api.LastRequest(http.MethodGet, "/turnos/")
	assert.Equal(t, "estado=DISPONIBLE&page=1&page_size=20&profesional=3", req.Query)
}

func TestClient_Mutations(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.api.HandleJSON(http.MethodPatch, "/turnos/5/", http.StatusOK, map[string]any{"id": 5, "estado": "RESERVADO"})
	h.api.HandleJSON(http.MethodPost, "/turnos/5/cancelar/", http.StatusOK, map[string]string{"detail": "Turno cancelado."})
	h.api.HandleJSON(http.MethodPatch, "/turnos/6/marcar_inasistencia/", http.StatusOK, map[string]any{"id": 6, "estado": "NO_ASISTIO"})
	h.api.HandleJSON(http.MethodPost, "/inasistencias/9/justificar/", http.StatusOK, map[string]any{"id": 9, "estado_justificacion": "PENDIENTE"})
	h.api.HandleJSON(http.MethodPatch, "/inasistencias/9/evaluar/", http.StatusOK, map[string]any{"id": 9, "estado_justificacion": "JUSTIFICADA"})
	h.api.HandleJSON(http.MethodDelete, "/profesionales/2/", http.StatusNoContent, nil)

	appt, err := h.cli.ReserveAppointment(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentReserved, appt.Status)

	_, err = h.cli.UpdateAppointmentStatus(ctx, 5, model.AppointmentAttended)
	require.NoError(t, err)
	req, _ := h.api.LastRequest(http.MethodPatch, "/turnos/5/")
	assert.JSONEq(t, `{"estado":"ASISTIO"}`, req.Body)

	require.NoError(t, h.cli.CancelAppointment(ctx, 5))

	appt, err = h.cli.MarkNoShow(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentNoShow, appt.Status)

	abs, err := h.cli.JustifyAbsence(ctx, 9, "Estuve internado")
	require.NoError(t, err)
	assert.Equal(t, model.JustificationPending, abs.Status)
	req, _ = h.api.LastRequest(http.MethodPost, "/inasistencias/9/justificar/")
	assert.JSONEq(t, `{"justificacion":"Estuve internado"}`, req.Body)

	abs, err = h.cli.EvaluateAbsence(ctx, 9, model.Evaluation{Action: model.EvaluateApprove})
	require.NoError(t, err)
	assert.Equal(t, model.JustificationAccepted, abs.Status)
	req, _ = h.api.LastRequest(http.MethodPatch, "/inasistencias/9/evaluar/")
	assert.JSONEq(t, `{"action":"APROBAR","nota":""}`, req.Body)

	require.NoError(t, h.cli.DeleteProfessional(ctx, 2))
}

func TestClient_Reports(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.api.HandleJSON(http.MethodGet, "/reportes/global/", http.StatusOK, map[string]any{
		"total_turnos": 10, "asistidos": 7, "porcentaje_asistencia": 70.0,
		"justificaciones": map[string]int{"pendientes": 1, "aceptadas": 2, "rechazadas": 0},
	})
	h.api.HandleJSON(http.MethodGet, "/reportes/3/agenda/", http.StatusOK, map[string]any{"agenda_id": 3, "total_turnos": 4})
	h.api.HandleJSON(http.MethodGet, "/reportes/mi-historial/", http.StatusOK, []map[string]any{{"id": 1}})

	g, err := h.cli.GlobalReport(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, g.Total)
	assert.InDelta(t, 70.0, g.AttendanceRate, 0.001)
	assert.Equal(t, 2, g.Justifications.Accepted)

	r, err := h.cli.AgendaReport(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Total)

	hist, err := h.cli.MyHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestClient_ErrorMapping(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.api.HandleJSON(http.MethodPost, "/agendas/", http.StatusBadRequest, map[string][]string{
		"mes": {"Ya existe una agenda para este mes."},
	})
	h.api.HandleJSON(http.MethodPost, "/turnos/8/cancelar/", http.StatusForbidden, map[string]string{
		"detail": "No puedes cancelar este turno.",
	})

	_, err := h.cli.CreateAgenda(ctx, model.AgendaInput{ProfessionalID: 1, Month: "2025-03"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, "mes", apperrors.GetField(err))

	err = h.cli.CancelAppointment(ctx, 8)
	assert.True(t, apperrors.IsForbidden(err))
	assert.Contains(t, err.Error(), "No puedes cancelar")

	_, err = h.cli.GetProfessional(ctx, 404)
	assert.True(t, apperrors.IsNotFound(err))

	assert.True(t, h.store.Session().Authenticated(), "non-401 errors leave the session alone")
	assert.Zero(t, h.api.RefreshCalls())
}

func TestClient_ExpiredAccessIsRefreshedTransparently(t *testing.T) {
	h := newHarness(t)
	h.api.HandleJSON(http.MethodGet, "/turnos/mis-turnos/", http.StatusOK, []map[string]any{{"id": 1, "estado": "RESERVADO"}})
	oldAccess := h.store.AccessToken()
	h.api.ExpireAccess()

	list, err := h.cli.MyAppointments(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, h.api.RefreshCalls())
	assert.NotEqual(t, oldAccess, h.store.AccessToken())
	assert.Equal(t, h.store.AccessToken(), h.kv.Snapshot()[service.KeyAccess])
	assert.Empty(t, h.nav.Destinations())
}

func TestClient_RevokedRefreshEndsSession(t *testing.T) {
	h := newHarness(t)
	h.api.HandleJSON(http.MethodGet, "/turnos/mis-turnos/", http.StatusOK, []map[string]any{})
	h.api.ExpireAccess()
	h.api.RevokeRefresh()

	_, err := h.cli.MyAppointments(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.True(t, h.store.Session().IsEmpty())
	assert.Empty(t, h.kv.Snapshot())
	assert.Equal(t, []string{gateway.DefaultLoginPath}, h.nav.Destinations())
}

func TestClient_RegisterPatientIsPublic(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.store.Logout(context.Background()))
	h.api.Handle(http.MethodPost, "/auth/register/", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var in map[string]any
		_ = json.Unmarshal(body, &in)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(in)
	})

	err := h.cli.RegisterPatient(context.Background(), model.PatientRegistration{DNI: "30111222", Password: "x", FullName: "Ana"})
	require.NoError(t, err)
	req, _ := h.api.LastRequest(http.MethodPost, "/auth/register/")
	assert.Empty(t, req.Authorization)
	assert.Contains(t, req.Body, `"dni":"30111222"`)
}

func TestClient_WithHTTPClientRebindsTransport(t *testing.T) {
	h := newHarness(t)
	h.api.HandleJSON(http.MethodGet, "/pacientes/", http.StatusOK, []map[string]any{})

	proto, err := NewClient(Config{BaseURL: h.api.URL()})
	require.NoError(t, err)

	_, err = proto.ListPatients(context.Background())
	assert.True(t, apperrors.IsUnauthorized(err), "prototype sends no credentials")

	bound := proto.WithHTTPClient(h.gw.Client(nil))
	_, err = bound.ListPatients(context.Background())
	require.NoError(t, err)

	_, err = proto.ListPatients(context.Background())
	assert.Error(t, err, "prototype is left untouched")
}
