package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	domainauth "github.com/turnos-app/turnos/internal/domain/auth"
	"github.com/turnos-app/turnos/internal/ports"
)

// KVFactory returns the key/value store namespaced to one browser session.
type KVFactory func(sessionID string) ports.KeyValueStore

// SessionRegistryOptions groups dependencies for SessionRegistry.
type SessionRegistryOptions struct {
	KVFor   KVFactory     // Required: per-session storage
	IdleTTL time.Duration // Optional: in-memory idle eviction; 0 disables Sweep
	Logger  *slog.Logger  // Optional: structured logger
	Now     func() time.Time
}

type registryEntry struct {
	store    *SessionStore
	lastSeen time.Time
	unsub    func()
}

// SessionRegistry keeps one SessionStore per browser session id.
// Stores are hydrated lazily and dropped from memory on logout or after IdleTTL.
type SessionRegistry struct {
	kvFor   KVFactory
	idleTTL time.Duration
	logger  *slog.Logger
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]*registryEntry
}

// NewSessionRegistry constructs a SessionRegistry.
func NewSessionRegistry(opts SessionRegistryOptions) (*SessionRegistry, error) {
	if opts.KVFor == nil {
		return nil, errors.New("session registry: KVFor is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &SessionRegistry{
		kvFor:   opts.KVFor,
		idleTTL: opts.IdleTTL,
		logger:  logger.With("component", "session_registry"),
		now:     now,
		entries: make(map[string]*registryEntry),
	}, nil
}

// Get returns the store for id, hydrating it on first use.
func (r *SessionRegistry) Get(ctx context.Context, id string) (*SessionStore, error) {
	if id == "" {
		return nil, errors.New("session id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[id]; ok {
		e.lastSeen = r.now()
		return e.store, nil
	}

	store, err := NewSessionStore(ctx, SessionStoreOptions{KV: r.kvFor(id), Logger: r.logger})
	if err != nil {
		return nil, fmt.Errorf("open session %s: %w", id, err)
	}
	e := &registryEntry{store: store, lastSeen: r.now()}
	e.unsub = store.Subscribe(func(s domainauth.Session) {
		if s.IsEmpty() {
			r.evict(id, store)
		}
	})
	r.entries[id] = e
	return store, nil
}

// evict removes id only if it still maps to store.
func (r *SessionRegistry) evict(id string, store *SessionStore) {
	r.mu.Lock()
	e, ok := r.entries[id]
	if ok && e.store == store {
		delete(r.entries, id)
	}
	r.mu.Unlock()
	if ok && e.store == store {
		e.unsub()
	}
}

// Sweep drops stores idle for longer than IdleTTL and returns how many were dropped.
// Persisted data is left alone; a later Get hydrates it again.
func (r *SessionRegistry) Sweep(ctx context.Context) int {
	if r.idleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	var dropped []*registryEntry
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			dropped = append(dropped, e)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, e := range dropped {
		e.unsub()
	}
	if len(dropped) > 0 {
		r.logger.DebugContext(ctx, "swept idle sessions", "count", len(dropped))
	}
	return len(dropped)
}

// Len returns the number of stores held in memory.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
