package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	domainauth "github.com/turnos-app/turnos/internal/domain/auth"
	"github.com/turnos-app/turnos/internal/ports"
)

// Durable storage keys of the persisted session.
const (
	KeyUser    = "user"
	KeyAccess  = "access"
	KeyRefresh = "refreshToken"
)

// ErrMissingIdentity is returned by SessionStore.Login when no identity is given.
var ErrMissingIdentity = errors.New("identity is required")

// SessionStoreOptions groups dependencies for SessionStore.
type SessionStoreOptions struct {
	KV     ports.KeyValueStore
	Logger *slog.Logger
}

// SessionStore is the single owner of the current Session.
// All mutations go through Login, Logout, ExpireGeneration and ReplaceAccessToken;
// every mutation is persisted to the KV store and notified to subscribers.
type SessionStore struct {
	kv     ports.KeyValueStore
	logger *slog.Logger

	mu         sync.RWMutex
	session    domainauth.Session
	generation uint64

	obsMu     sync.Mutex
	observers map[int]func(domainauth.Session)
	nextObs   int
}

var _ ports.CredentialStore = (*SessionStore)(nil)

// NewSessionStore constructs a store and hydrates it from the KV store.
// Absent, partial or malformed persisted data yields the empty session.
func NewSessionStore(ctx context.Context, opts SessionStoreOptions) (*SessionStore, error) {
	if opts.KV == nil {
		return nil, errors.New("session store: KV is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &SessionStore{
		kv:        opts.KV,
		logger:    logger.With("component", "session_store"),
		observers: make(map[int]func(domainauth.Session)),
	}
	s.session = s.hydrate(ctx)
	return s, nil
}

func (s *SessionStore) hydrate(ctx context.Context) domainauth.Session {
	raw := make(map[string]string, 3)
	for _, key := range []string{KeyUser, KeyAccess, KeyRefresh} {
		v, ok, err := s.kv.Get(ctx, key)
		if err != nil {
			s.logger.WarnContext(ctx, "session hydrate read failed; starting logged out", "key", key, "error", err)
			return domainauth.Session{}
		}
		if !ok || v == "" {
			s.logger.DebugContext(ctx, "no complete persisted session", "missing", key)
			return domainauth.Session{}
		}
		raw[key] = v
	}

	var id domainauth.Identity
	if err := json.Unmarshal([]byte(raw[KeyUser]), &id); err != nil {
		s.logger.WarnContext(ctx, "malformed persisted identity; starting logged out", "error", err)
		return domainauth.Session{}
	}
	return domainauth.Session{
		Identity:    &id,
		Credentials: domainauth.Credentials{Access: raw[KeyAccess], Refresh: raw[KeyRefresh]},
	}
}

// Login overwrites the session with the given identity and tokens and persists all three keys.
// The in-memory session is replaced even when persistence fails; the error is returned.
func (s *SessionStore) Login(ctx context.Context, identity domainauth.Identity, access, refresh string) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}

	next := domainauth.Session{
		Identity:    &identity,
		Credentials: domainauth.Credentials{Access: access, Refresh: refresh},
	}.Clone()

	s.mu.Lock()
	s.session = next
	s.generation++
	perr := s.persistAll(ctx, string(data), access, refresh)
	snapshot := s.session.Clone()
	s.mu.Unlock()

	s.notify(snapshot)
	if perr != nil {
		return fmt.Errorf("persist session: %w", perr)
	}
	return nil
}

// LoginWith is Login taking a pointer, rejecting a nil identity.
func (s *SessionStore) LoginWith(ctx context.Context, identity *domainauth.Identity, access, refresh string) error {
	if identity == nil {
		return ErrMissingIdentity
	}
	return s.Login(ctx, *identity, access, refresh)
}

func (s *SessionStore) persistAll(ctx context.Context, user, access, refresh string) error {
	var errs []error
	for _, kv := range [][2]string{{KeyUser, user}, {KeyAccess, access}, {KeyRefresh, refresh}} {
		if err := s.kv.Set(ctx, kv[0], kv[1]); err != nil {
			errs = append(errs, fmt.Errorf("set %s: %w", kv[0], err))
		}
	}
	return errors.Join(errs...)
}

// Logout clears the session and removes every persisted key. Calling it while
// logged out is a no-op in memory; the keys are still removed.
func (s *SessionStore) Logout(ctx context.Context) error {
	_, err := s.logoutIf(ctx, nil)
	return err
}

// ExpireGeneration logs out only if the session is still the one identified by
// generation. It reports whether the session was cleared.
func (s *SessionStore) ExpireGeneration(ctx context.Context, generation uint64) (bool, error) {
	return s.logoutIf(ctx, &generation)
}

// logoutIf clears the session; when generation is non-nil it must still match.
func (s *SessionStore) logoutIf(ctx context.Context, generation *uint64) (bool, error) {
	s.mu.Lock()
	if generation != nil && *generation != s.generation {
		s.mu.Unlock()
		return false, nil
	}
	wasEmpty := s.session.IsEmpty() && s.session.Credentials == (domainauth.Credentials{})
	s.session = domainauth.Session{}
	if !wasEmpty {
		s.generation++
	}
	err := s.kv.Delete(ctx, KeyUser, KeyAccess, KeyRefresh)
	s.mu.Unlock()

	if !wasEmpty {
		s.notify(domainauth.Session{})
	}
	if err != nil {
		return true, fmt.Errorf("remove persisted session: %w", err)
	}
	return true, nil
}

// ReplaceAccessToken stores a refreshed access token if the session is still the
// one identified by generation. It reports whether the token was applied.
func (s *SessionStore) ReplaceAccessToken(ctx context.Context, generation uint64, access string) (bool, error) {
	s.mu.Lock()
	if generation != s.generation || s.session.IsEmpty() {
		s.mu.Unlock()
		return false, nil
	}
	s.session.Credentials.Access = access
	err := s.kv.Set(ctx, KeyAccess, access)
	snapshot := s.session.Clone()
	s.mu.Unlock()

	s.notify(snapshot)
	if err != nil {
		return true, fmt.Errorf("persist access token: %w", err)
	}
	return true, nil
}

// Session returns a copy of the current session.
func (s *SessionStore) Session() domainauth.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Clone()
}

// AccessToken returns the current access token or "".
func (s *SessionStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Credentials.Access
}

// RefreshToken returns the current refresh token or "".
func (s *SessionStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Credentials.Refresh
}

// Generation returns the counter bumped by every login and effective logout.
func (s *SessionStore) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Subscribe registers fn to be called with a snapshot after every mutation.
// The returned function removes the subscription.
func (s *SessionStore) Subscribe(fn func(domainauth.Session)) (unsubscribe func()) {
	s.obsMu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.obsMu.Lock()
			delete(s.observers, id)
			s.obsMu.Unlock()
		})
	}
}

func (s *SessionStore) notify(sess domainauth.Session) {
	s.obsMu.Lock()
	fns := make([]func(domainauth.Session), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.obsMu.Unlock()

	for _, fn := range fns {
		fn(sess.Clone())
	}
}
