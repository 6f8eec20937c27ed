package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"

	domainauth "github.com/turnos-app/turnos/internal/domain/auth"
	"github.com/turnos-app/turnos/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.KeyValueStore = (*MemoryKV)(nil)
	_ ports.Navigator     = (*RecordingNavigator)(nil)
	_ ports.AuthAPI       = (*StubAuthAPI)(nil)
)

// MemoryKV is an in-memory key/value store for unit tests.
// GetErr, SetErr and DeleteErr force failures when set.
type MemoryKV struct {
	mu    sync.Mutex
	items map[string]string

	GetErr    error
	SetErr    error
	DeleteErr error
}

// NewMemoryKV creates a MemoryKV seeded with the given items.
func NewMemoryKV(seed map[string]string) *MemoryKV {
	items := make(map[string]string, len(seed))
	for k, v := range seed {
		items[k] = v
	}
	return &MemoryKV{items: items}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.items == nil {
		m.items = make(map[string]string)
	}
	m.items[key] = value
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

// Snapshot returns a copy of the stored items.
func (m *MemoryKV) Snapshot() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.items))
	for k, v := range m.items {
		out[k] = v
	}
	return out
}

// RecordingNavigator records every destination it is asked to navigate to.
type RecordingNavigator struct {
	mu           sync.Mutex
	destinations []string
}

func (n *RecordingNavigator) Navigate(_ context.Context, destination string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.destinations = append(n.destinations, destination)
}

// Destinations returns the recorded destinations in call order.
func (n *RecordingNavigator) Destinations() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.destinations...)
}

// Last returns the most recent destination or "".
func (n *RecordingNavigator) Last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.destinations) == 0 {
		return ""
	}
	return n.destinations[len(n.destinations)-1]
}

// ErrRejected is returned by StubAuthAPI when credentials or refresh tokens don't match.
var ErrRejected = errors.New("rejected")

// StubAuthAPI simulates the remote auth endpoints.
// By default Login accepts Username/Password and Refresh accepts ValidRefresh.
type StubAuthAPI struct {
	LoginFunc   func(ctx context.Context, in ports.LoginInput) (ports.LoginResult, error)
	RefreshFunc func(ctx context.Context, refreshToken string) (string, error)

	Username     string
	Password     string
	User         domainauth.Identity
	Access       string
	ValidRefresh string
	NextAccess   string

	mu           sync.Mutex
	refreshCalls int
}

func (s *StubAuthAPI) Login(ctx context.Context, in ports.LoginInput) (ports.LoginResult, error) {
	if s.LoginFunc != nil {
		return s.LoginFunc(ctx, in)
	}
	if in.Username != s.Username || in.Password != s.Password {
		return ports.LoginResult{}, ErrRejected
	}
	user := s.User
	return ports.LoginResult{Identity: &user, Access: s.Access, Refresh: s.ValidRefresh}, nil
}

func (s *StubAuthAPI) Refresh(ctx context.Context, refreshToken string) (string, error) {
	s.mu.Lock()
	s.refreshCalls++
	s.mu.Unlock()
	if s.RefreshFunc != nil {
		return s.RefreshFunc(ctx, refreshToken)
	}
	if refreshToken == "" || refreshToken != s.ValidRefresh {
		return "", ErrRejected
	}
	return s.NextAccess, nil
}

// RefreshCalls returns how many times Refresh was invoked.
func (s *StubAuthAPI) RefreshCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshCalls
}
