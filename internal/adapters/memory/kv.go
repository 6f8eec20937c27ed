// Package memory keeps web sessions in process memory. Sessions do not survive
// a restart; it is meant for development and single-instance deployments.
package memory

import (
	"context"
	"sync"

	"github.com/turnos-app/turnos/internal/ports"
)

// SessionKV holds one key/value map per browser session.
type SessionKV struct {
	mu       sync.Mutex
	sessions map[string]map[string]string
}

// NewSessionKV creates an empty in-memory session store.
func NewSessionKV() *SessionKV {
	return &SessionKV{sessions: make(map[string]map[string]string)}
}

// For returns the key/value view of one session.
func (s *SessionKV) For(sessionID string) ports.KeyValueStore {
	return &sessionMap{kv: s, id: sessionID}
}

// Len returns how many sessions currently hold data.
func (s *SessionKV) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

type sessionMap struct {
	kv *SessionKV
	id string
}

func (m *sessionMap) Get(_ context.Context, key string) (string, bool, error) {
	m.kv.mu.Lock()
	defer m.kv.mu.Unlock()
	v, ok := m.kv.sessions[m.id][key]
	return v, ok, nil
}

func (m *sessionMap) Set(_ context.Context, key, value string) error {
	m.kv.mu.Lock()
	defer m.kv.mu.Unlock()
	items, ok := m.kv.sessions[m.id]
	if !ok {
		items = make(map[string]string)
		m.kv.sessions[m.id] = items
	}
	items[key] = value
	return nil
}

// Delete removes keys; the session entry is dropped once it is empty.
func (m *sessionMap) Delete(_ context.Context, keys ...string) error {
	m.kv.mu.Lock()
	defer m.kv.mu.Unlock()
	items, ok := m.kv.sessions[m.id]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(items, k)
	}
	if len(items) == 0 {
		delete(m.kv.sessions, m.id)
	}
	return nil
}
