package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	domainauth "github.com/turnos-app/turnos/internal/domain/auth"
)

// RecordedRequest is one request received by FakeAPI.
type RecordedRequest struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Body          string
}

type fakeUser struct {
	password string
	identity domainauth.Identity
}

// FakeAPI is an httptest server that behaves like the clinic REST API:
// JWT-style login/refresh under /api/auth/ and bearer-protected resources
// registered with Handle.
type FakeAPI struct {
	Server *httptest.Server

	mu           sync.Mutex
	users        map[string]fakeUser
	access       map[string]bool
	refresh      map[string]bool
	routes       map[string]http.HandlerFunc
	requests     []RecordedRequest
	refreshCalls int
	refreshDown  bool
	seq          int
}

// NewFakeAPI starts a FakeAPI that is closed when the test ends.
func NewFakeAPI(t interface {
	TestingTB
	Cleanup(func())
}) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		users:   make(map[string]fakeUser),
		access:  make(map[string]bool),
		refresh: make(map[string]bool),
		routes:  make(map[string]http.HandlerFunc),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the API base URL (server root + "/api").
func (f *FakeAPI) URL() string { return f.Server.URL + "/api" }

// AddUser registers credentials accepted by the login endpoint.
func (f *FakeAPI) AddUser(username, password string, identity domainauth.Identity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[username] = fakeUser{password: password, identity: identity}
}

// IssueTokens creates a valid access/refresh pair without going through login.
func (f *FakeAPI) IssueTokens() (access, refresh string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	access = fmt.Sprintf("access-%d", f.seq)
	refresh = fmt.Sprintf("refresh-%d", f.seq)
	f.access[access] = true
	f.refresh[refresh] = true
	return access, refresh
}

// ExpireAccess invalidates every issued access token.
func (f *FakeAPI) ExpireAccess() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access = make(map[string]bool)
}

// RevokeRefresh invalidates every issued refresh token.
func (f *FakeAPI) RevokeRefresh() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refresh = make(map[string]bool)
}

// SetRefreshDown makes the refresh endpoint answer 503.
func (f *FakeAPI) SetRefreshDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshDown = down
}

// RefreshCalls returns how many times the refresh endpoint was hit.
func (f *FakeAPI) RefreshCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshCalls
}

// Requests returns every recorded request in arrival order.
func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}

// LastRequest returns the most recent request to path, if any.
func (f *FakeAPI) LastRequest(method, path string) (RecordedRequest, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.requests) - 1; i >= 0; i-- {
		r := f.requests[i]
		if r.Method == method && r.Path == "/api"+path {
			return r, true
		}
	}
	return RecordedRequest{}, false
}

// Handle registers h for method and path (relative to /api). Protected by bearer auth
// unless the path is under /auth/.
func (f *FakeAPI) Handle(method, path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" /api"+path] = h
}

// HandleJSON registers a handler that answers with status and body encoded as JSON.
func (f *FakeAPI) HandleJSON(method, path string, status int, body any) {
	f.Handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, status, body)
	})
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, RecordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		Query:         r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		Body:          string(raw),
	})
	h := f.routes[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/auth/login/":
		f.login(w, raw)
		return
	case r.Method == http.MethodPost && r.URL.Path == "/api/auth/refresh/":
		f.refreshToken(w, raw)
		return
	}

	if !strings.HasPrefix(r.URL.Path, "/api/auth/") && !f.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"detail": "Given token not valid for any token type",
			"code":   "token_not_valid",
		})
		return
	}
	if h == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	r.Body = io.NopCloser(strings.NewReader(string(raw)))
	h(w, r)
}

func (f *FakeAPI) authorized(r *http.Request) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.access[token]
}

func (f *FakeAPI) login(w http.ResponseWriter, raw []byte) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "JSON parse error"})
		return
	}
	f.mu.Lock()
	u, ok := f.users[in.Username]
	f.mu.Unlock()
	if !ok || u.password != in.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"detail": "No active account found with the given credentials",
		})
		return
	}
	access, refresh := f.IssueTokens()
	writeJSON(w, http.StatusOK, map[string]any{
		"access":  access,
		"refresh": refresh,
		"user":    u.identity,
	})
}

func (f *FakeAPI) refreshToken(w http.ResponseWriter, raw []byte) {
	var in struct {
		Refresh string `json:"refresh"`
	}
	_ = json.Unmarshal(raw, &in)

	f.mu.Lock()
	f.refreshCalls++
	down := f.refreshDown
	valid := f.refresh[in.Refresh]
	var access string
	if valid && !down {
		f.seq++
		access = fmt.Sprintf("access-%d", f.seq)
		f.access[access] = true
	}
	f.mu.Unlock()

	switch {
	case down:
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"detail": "unavailable"})
	case !valid:
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"detail": "Token is invalid or expired",
			"code":   "token_not_valid",
		})
	default:
		writeJSON(w, http.StatusOK, map[string]string{"access": access})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}
