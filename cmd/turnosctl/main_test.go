package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnos-app/turnos/config"
	domainauth "github.com/turnos-app/turnos/internal/domain/auth"
	"github.com/turnos-app/turnos/internal/domain/model"
	"github.com/turnos-app/turnos/internal/testutil"
)

type cliHarness struct {
	fake        *testutil.FakeAPI
	sessionFile string
	now         time.Time
}

func newHarness(t *testing.T) *cliHarness {
	t.Helper()
	fake := testutil.NewFakeAPI(t)
	fake.AddUser("30111222", "secret", domainauth.Identity{ID: 7, Username: "30111222", Role: domainauth.RolePatient})
	pid := int64(4)
	fake.AddUser("dr.paz", "secret", domainauth.Identity{
		ID: 3, Username: "dr.paz", Role: domainauth.RoleProfessional, ProfessionalID: &pid,
	})
	return &cliHarness{
		fake:        fake,
		sessionFile: filepath.Join(t.TempDir(), "session.json"),
		now:         time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func (h *cliHarness) run(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: config.AppConfig{
			API:     config.APIConfig{BaseURL: h.fake.URL(), Timeout: 5 * time.Second},
			Auth:    config.AuthConfig{RefreshSingleFlight: true, LoginPath: "/login"},
			Session: config.SessionConfig{File: h.sessionFile},
		},
		Stdin:  strings.NewReader(stdin),
		Stdout: &out,
		Stderr: &errOut,
		Now:    func() time.Time { return h.now },
	}
	err = execute(cmdCtx, args)
	return out.String(), errOut.String(), err
}

func (h *cliHarness) login(t *testing.T, username string) {
	t.Helper()
	_, _, err := h.run(t, "", "login", "-username", username, "-password", "secret")
	require.NoError(t, err)
}

func TestExecute_UnknownCommand(t *testing.T) {
	h := newHarness(t)
	_, stderr, err := h.run(t, "", "frobnicate")
	require.ErrorIs(t, err, errUsage)
	assert.Contains(t, stderr, "Available commands:")
	assert.Contains(t, stderr, "appointments")
}

func TestExecute_BadFlagIsUsageError(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run(t, "", "reserve", "-id", "abc")
	assert.ErrorIs(t, err, errUsage)
}

func TestLogin_StoresSessionAndPrintsDashboard(t *testing.T) {
	h := newHarness(t)

	stdout, _, err := h.run(t, "", "login", "-username", "30111222", "-password", "secret")
	require.NoError(t, err)

	var out loginOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "/paciente", out.RedirectTo)
	assert.Equal(t, domainauth.RolePatient, out.User.Role)
	assert.FileExists(t, h.sessionFile)

	stdout, _, err = h.run(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "30111222")
	assert.Contains(t, stdout, "/paciente")
	assert.Contains(t, stdout, "unknown", "opaque tokens carry no expiry")
}

func TestLogin_ReadsPasswordFromStdin(t *testing.T) {
	h := newHarness(t)
	_, stderr, err := h.run(t, "secret\n", "login", "-username", "dr.paz")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Password:")

	stdout, _, err := h.run(t, "", "route")
	require.NoError(t, err)
	assert.JSONEq(t, `{"redirect_to":"/profesional"}`, stdout)
}

func TestLogin_RejectedCredentials(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run(t, "", "login", "-username", "30111222", "-password", "wrong")
	require.Error(t, err)

	_, _, err = h.run(t, "", "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestLogin_RequiresUsername(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.run(t, "", "login", "-password", "secret")
	assert.ErrorIs(t, err, errUsage)
}

func TestWhoami_QueryAndJSON(t *testing.T) {
	h := newHarness(t)
	h.login(t, "dr.paz")

	stdout, _, err := h.run(t, "", "whoami", "-query", "user.profesional_id")
	require.NoError(t, err)
	assert.Equal(t, "4\n", stdout)

	stdout, _, err = h.run(t, "", "whoami", "-json")
	require.NoError(t, err)
	var out whoamiOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "/profesional", out.Dashboard)
	assert.Nil(t, out.ExpiresAt)
	assert.False(t, out.Expired)
}

func TestLogout_ClearsSession(t *testing.T) {
	h := newHarness(t)
	h.login(t, "30111222")

	stdout, _, err := h.run(t, "", "logout")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"logged_out"}`, stdout)

	_, _, err = h.run(t, "", "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)

	stdout, stderr, err := h.run(t, "", "route")
	require.NoError(t, err)
	assert.JSONEq(t, `{"redirect_to":"/login"}`, stdout)
	assert.Contains(t, stderr, "login required")
}

func TestCommands_RequireLogin(t *testing.T) {
	h := newHarness(t)
	for _, args := range [][]string{
		{"professionals"},
		{"appointments", "-mine"},
		{"absences"},
		{"report"},
	} {
		t.Run(args[0], func(t *testing.T) {
			_, _, err := h.run(t, "", args...)
			assert.ErrorIs(t, err, errNotLoggedIn)
		})
	}
	assert.Empty(t, h.fake.Requests(), "no API call without a session")
}

func TestProfessionals_FilterAndQuery(t *testing.T) {
	h := newHarness(t)
	h.fake.HandleJSON(http.MethodGet, "/profesionales/", http.StatusOK, []model.Professional{
		{ID: 1, Specialty: "Cardiología"},
		{ID: 2, Specialty: "Pediatría"},
		{ID: 3, Specialty: "Cardiología"},
	})
	h.login(t, "30111222")

	stdout, _, err := h.run(t, "", "professionals", "-especialidad", "Cardiología", "-query", "[].id")
	require.NoError(t, err)
	assert.JSONEq(t, `[1,3]`, stdout)

	_, _, err = h.run(t, "", "professionals", "-query", "[.bad")
	assert.ErrorIs(t, err, errUsage)
}

func TestAgendas_DefaultsToOwnProfessional(t *testing.T) {
	h := newHarness(t)
	h.fake.HandleJSON(http.MethodGet, "/agendas/", http.StatusOK, []model.Agenda{
		{ID: 1, ProfessionalID: 4, Month: "2026-02-01"},
		{ID: 2, ProfessionalID: 4, Month: "2026-03-01"},
	})
	h.login(t, "dr.paz")

	stdout, _, err := h.run(t, "", "agendas", "-query", "{current: current[].id, past: past[].id}")
	require.NoError(t, err)
	assert.JSONEq(t, `{"current":[2],"past":[1]}`, stdout)

	req, ok := h.fake.LastRequest(http.MethodGet, "/agendas/")
	require.True(t, ok)
	assert.Contains(t, req.Query, "profesional=4")
}

func TestAgendas_PatientNeedsProfessional(t *testing.T) {
	h := newHarness(t)
	h.login(t, "30111222")
	_, _, err := h.run(t, "", "agendas")
	assert.ErrorIs(t, err, errUsage)
}

func TestAppointments_AvailablePage(t *testing.T) {
	h := newHarness(t)
	next := "http://api/turnos/?page=3"
	h.fake.HandleJSON(http.MethodGet, "/turnos/", http.StatusOK, model.Page[model.Appointment]{
		Count:   41,
		Next:    &next,
		Results: []model.Appointment{{ID: 21, Status: model.AppointmentAvailable}},
	})
	h.login(t, "30111222")

	stdout, _, err := h.run(t, "", "appointments", "-profesional", "4", "-page", "2")
	require.NoError(t, err)
	var out availableOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, 41, out.Count)
	assert.True(t, out.HasNext)
	assert.Equal(t, 2, out.Page)
	require.Len(t, out.Results, 1)

	req, ok := h.fake.LastRequest(http.MethodGet, "/turnos/")
	require.True(t, ok)
	assert.Contains(t, req.Query, "estado=DISPONIBLE")
	assert.Contains(t, req.Query, "page=2")
	assert.Contains(t, req.Query, "page_size=20")
	assert.Contains(t, req.Query, "profesional=4")

	_, _, err = h.run(t, "", "appointments", "-page", "0")
	assert.ErrorIs(t, err, errUsage)
}

func TestAppointments_MineFiltered(t *testing.T) {
	h := newHarness(t)
	h.fake.HandleJSON(http.MethodGet, "/turnos/mis-turnos/", http.StatusOK, []model.Appointment{
		{ID: 1, Date: "2026-03-01", Status: model.AppointmentReserved},
		{ID: 2, Date: "2026-03-20", Status: model.AppointmentReserved},
		{ID: 3, Date: "2026-03-21", Status: model.AppointmentCancelled},
	})
	h.login(t, "30111222")

	stdout, _, err := h.run(t, "", "appointments", "-mine", "-filtro", "proximos", "-query", "[].id")
	require.NoError(t, err)
	assert.JSONEq(t, `[2]`, stdout)
}

func TestReserveAndCancel(t *testing.T) {
	h := newHarness(t)
	h.fake.HandleJSON(http.MethodPatch, "/turnos/21/", http.StatusOK, model.Appointment{ID: 21, Status: model.AppointmentReserved})
	h.fake.HandleJSON(http.MethodPost, "/turnos/21/cancelar/", http.StatusNoContent, nil)
	h.login(t, "30111222")

	stdout, _, err := h.run(t, "", "reserve", "-id", "21", "-query", "estado")
	require.NoError(t, err)
	assert.Equal(t, "\"RESERVADO\"\n", stdout)

	stdout, _, err = h.run(t, "", "cancel", "-id", "21")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":21,"status":"cancelled"}`, stdout)

	_, _, err = h.run(t, "", "cancel")
	assert.ErrorIs(t, err, errUsage)
}

func TestAbsences_StatusFilter(t *testing.T) {
	h := newHarness(t)
	h.fake.HandleJSON(http.MethodGet, "/inasistencias/mis-inasistencias/", http.StatusOK, []model.Absence{
		{ID: 1, Status: model.JustificationPending},
		{ID: 2, Status: model.JustificationAccepted},
	})
	h.login(t, "30111222")

	stdout, _, err := h.run(t, "", "absences", "-mine", "-estado", "pendiente", "-query", "[].id")
	require.NoError(t, err)
	assert.JSONEq(t, `[1]`, stdout)

	_, _, err = h.run(t, "", "absences", "-estado", "otro")
	assert.ErrorIs(t, err, errUsage)
}

func TestJustify(t *testing.T) {
	h := newHarness(t)
	h.fake.HandleJSON(http.MethodPost, "/inasistencias/5/justificar/", http.StatusOK, model.Absence{ID: 5, Status: model.JustificationPending})
	h.login(t, "30111222")

	_, _, err := h.run(t, "", "justify", "-id", "5", "-texto", "   ")
	require.ErrorIs(t, err, errUsage)
	_, ok := h.fake.LastRequest(http.MethodPost, "/inasistencias/5/justificar/")
	assert.False(t, ok)

	_, _, err = h.run(t, "", "justify", "-id", "5", "-texto", "  estaba enfermo ")
	require.NoError(t, err)
	req, ok := h.fake.LastRequest(http.MethodPost, "/inasistencias/5/justificar/")
	require.True(t, ok)
	assert.Contains(t, req.Body, `"estaba enfermo"`)
}

func TestEvaluate(t *testing.T) {
	h := newHarness(t)
	h.fake.HandleJSON(http.MethodPatch, "/inasistencias/5/evaluar/", http.StatusOK, model.Absence{ID: 5, Status: model.JustificationAccepted})
	h.login(t, "dr.paz")

	_, _, err := h.run(t, "", "evaluate", "-id", "5", "-accion", "TAL VEZ")
	require.ErrorIs(t, err, errUsage)

	stdout, _, err := h.run(t, "", "evaluate", "-id", "5", "-accion", "approve", "-nota", "ok")
	require.NoError(t, err)
	assert.Contains(t, stdout, "JUSTIFICADA")
	req, ok := h.fake.LastRequest(http.MethodPatch, "/inasistencias/5/evaluar/")
	require.True(t, ok)
	assert.JSONEq(t, `{"action":"APROBAR","nota":"ok"}`, req.Body)
}

func TestReport_DefaultsByRole(t *testing.T) {
	h := newHarness(t)
	h.fake.HandleJSON(http.MethodGet, "/reportes/4/profesional/", http.StatusOK, model.Report{})
	h.fake.HandleJSON(http.MethodGet, "/reportes/mi-reporte/", http.StatusOK, model.Report{})

	h.login(t, "dr.paz")
	_, _, err := h.run(t, "", "report")
	require.NoError(t, err)
	_, ok := h.fake.LastRequest(http.MethodGet, "/reportes/4/profesional/")
	assert.True(t, ok)

	h.login(t, "30111222")
	_, _, err = h.run(t, "", "report")
	require.NoError(t, err)
	_, ok = h.fake.LastRequest(http.MethodGet, "/reportes/mi-reporte/")
	assert.True(t, ok)

	_, _, err = h.run(t, "", "report", "-paciente", "-1")
	assert.ErrorIs(t, err, errUsage)
}

func TestExpiredAccessRefreshesAndPersists(t *testing.T) {
	h := newHarness(t)
	h.fake.HandleJSON(http.MethodGet, "/turnos/mis-turnos/", http.StatusOK, []model.Appointment{})
	h.login(t, "30111222")
	h.fake.ExpireAccess()

	stdout, _, err := h.run(t, "", "appointments", "-mine")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, stdout)
	assert.Equal(t, 1, h.fake.RefreshCalls())

	_, _, err = h.run(t, "", "appointments", "-mine")
	require.NoError(t, err)
	assert.Equal(t, 1, h.fake.RefreshCalls(), "refreshed access token is read back from the session file")
}

func TestRevokedRefreshEndsSession(t *testing.T) {
	h := newHarness(t)
	h.fake.HandleJSON(http.MethodGet, "/turnos/mis-turnos/", http.StatusOK, []model.Appointment{})
	h.login(t, "30111222")
	h.fake.ExpireAccess()
	h.fake.RevokeRefresh()

	_, stderr, err := h.run(t, "", "appointments", "-mine")
	require.ErrorIs(t, err, errNotLoggedIn)
	assert.Contains(t, stderr, "login required")

	raw, readErr := os.ReadFile(h.sessionFile)
	if readErr == nil {
		assert.NotContains(t, string(raw), "refresh-")
	}
	_, _, err = h.run(t, "", "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestPrintWhoami_ShowsExpiry(t *testing.T) {
	exp := time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC)
	pid := int64(4)
	var buf bytes.Buffer
	require.NoError(t, printWhoami(&buf, whoamiOutput{
		User:      domainauth.Identity{ID: 3, Username: "dr.paz", Role: domainauth.RoleProfessional, ProfessionalID: &pid},
		Dashboard: "/profesional",
		ExpiresAt: &exp,
		Expired:   true,
	}))
	out := buf.String()
	assert.Contains(t, out, "2026-03-10T11:00:00Z (expired)")
	assert.Contains(t, out, "PROFESSIONAL")
	assert.Regexp(t, `PROFESSIONAL\s+4`, out)
}
