package redis

// Package redis provides Redis-based adapters for the turnos web server.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turnos-app/turnos/internal/ports"
)

// DefaultPrefix namespaces web session hashes.
const DefaultPrefix = "turnos:session:"

// SessionKVOptions configures SessionKV.
type SessionKVOptions struct {
	Prefix string        // Optional: defaults to DefaultPrefix
	TTL    time.Duration // Optional: idle expiry refreshed on every write; 0 disables
}

// SessionKV stores one Redis hash per browser session. Each hash holds the
// persisted session keys (user, access, refreshToken) as fields.
type SessionKV struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewSessionKV creates a Redis-backed session key/value store.
func NewSessionKV(client redis.UniversalClient, opts SessionKVOptions) *SessionKV {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &SessionKV{client: client, prefix: prefix, ttl: opts.TTL}
}

// For returns the key/value view of one session.
func (s *SessionKV) For(sessionID string) ports.KeyValueStore {
	return &sessionHash{kv: s, key: s.prefix + sessionID}
}

// Exists reports whether anything is stored for sessionID.
func (s *SessionKV) Exists(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	n, err := s.client.Exists(ctx, s.prefix+sessionID).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

// Touch extends the idle expiry of sessionID without changing its contents.
func (s *SessionKV) Touch(ctx context.Context, sessionID string) error {
	if s.ttl <= 0 || sessionID == "" {
		return nil
	}
	return s.client.Expire(ctx, s.prefix+sessionID, s.ttl).Err()
}

type sessionHash struct {
	kv  *SessionKV
	key string
}

var _ ports.KeyValueStore = (*sessionHash)(nil)

func (h *sessionHash) Get(ctx context.Context, field string) (string, bool, error) {
	v, err := h.kv.client.HGet(ctx, h.key, field).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis hget: %w", err)
	}
	return v, true, nil
}

func (h *sessionHash) Set(ctx context.Context, field, value string) error {
	_, err := h.kv.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, h.key, field, value)
		if h.kv.ttl > 0 {
			p.Expire(ctx, h.key, h.kv.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis hset: %w", err)
	}
	return nil
}

// Delete removes fields; Redis drops the hash once it is empty.
func (h *sessionHash) Delete(ctx context.Context, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	if err := h.kv.client.HDel(ctx, h.key, fields...).Err(); err != nil {
		return fmt.Errorf("redis hdel: %w", err)
	}
	return nil
}
