package httpx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/turnos-app/turnos/internal/domain/auth"
	"github.com/turnos-app/turnos/internal/mocks"
	mockauth "github.com/turnos-app/turnos/internal/mocks/auth"
	"github.com/turnos-app/turnos/internal/ports"
	"github.com/turnos-app/turnos/internal/service"
)

// testToday is the date handlers see through RouterServices.Now.
var testToday = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type harness struct {
	t        *testing.T
	api      *mocks.MockClinicAPI
	authAPI  *mockauth.StubAuthAPI
	registry *service.SessionRegistry
	handler  http.Handler

	mu  sync.Mutex
	kvs map[string]*mockauth.MemoryKV

	// clinic overrides the factory; defaults to returning api.
	clinic ClinicFactory
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		t:   t,
		api: mocks.NewMockClinicAPI(gomock.NewController(t)),
		authAPI: &mockauth.StubAuthAPI{
			Username:     "30111222",
			Password:     "secret",
			User:         domainauth.Identity{ID: 7, Username: "30111222", Role: domainauth.RolePatient},
			Access:       "access-1",
			ValidRefresh: "refresh-1",
		},
		kvs: make(map[string]*mockauth.MemoryKV),
	}
	reg, err := service.NewSessionRegistry(service.SessionRegistryOptions{KVFor: h.kvFor})
	require.NoError(t, err)
	h.registry = reg

	h.handler = NewRouter(RouterServices{
		Auth:     service.NewAuthService(service.AuthServiceOptions{API: h.authAPI}),
		Sessions: reg,
		Clinic: func(store *service.SessionStore, nav ports.Navigator) ports.ClinicAPI {
			if h.clinic != nil {
				return h.clinic(store, nav)
			}
			return h.api
		},
		Now: func() time.Time { return testToday },
	})
	return h
}

func (h *harness) kvFor(id string) ports.KeyValueStore {
	h.mu.Lock()
	defer h.mu.Unlock()
	kv, ok := h.kvs[id]
	if !ok {
		kv = mockauth.NewMemoryKV(nil)
		h.kvs[id] = kv
	}
	return kv
}

func (h *harness) kv(id string) *mockauth.MemoryKV {
	return h.kvFor(id).(*mockauth.MemoryKV)
}

// session logs identity into a new browser session and returns its cookie.
func (h *harness) session(identity domainauth.Identity, access string) *http.Cookie {
	h.t.Helper()
	id := uuid.NewString()
	store, err := h.registry.Get(context.Background(), id)
	require.NoError(h.t, err)
	require.NoError(h.t, store.Login(context.Background(), identity, access, "refresh-1"))
	return &http.Cookie{Name: SessionCookieName, Value: id}
}

func (h *harness) as(role domainauth.Role) *http.Cookie {
	identity := domainauth.Identity{ID: 1, Username: "user", Role: role}
	if role == domainauth.RoleProfessional {
		pid := int64(4)
		identity.ProfessionalID = &pid
	}
	return h.session(identity, "access-1")
}

type request struct {
	method string
	path   string
	body   string
	cookie *http.Cookie
	api    bool   // send as a JSON API client
	form   string // form-encoded body (browser)
}

func (h *harness) do(req request) *httptest.ResponseRecorder {
	h.t.Helper()
	var body io.Reader
	switch {
	case req.form != "":
		body = strings.NewReader(req.form)
	case req.body != "":
		body = strings.NewReader(req.body)
	}
	r := httptest.NewRequest(req.method, req.path, body)
	if req.api {
		r.Header.Set("Accept", "application/json")
	} else {
		r.Header.Set("Accept", "text/html,application/xhtml+xml")
	}
	if req.body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	if req.form != "" {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if req.cookie != nil {
		r.AddCookie(req.cookie)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, r)
	return rec
}
