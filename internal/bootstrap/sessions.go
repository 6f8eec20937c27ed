package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"github.com/turnos-app/turnos/config"
	"github.com/turnos-app/turnos/internal/adapters/filestore"
	"github.com/turnos-app/turnos/internal/adapters/memory"
	redisadapter "github.com/turnos-app/turnos/internal/adapters/redis"
	"github.com/turnos-app/turnos/internal/ports"
	"github.com/turnos-app/turnos/internal/service"
)

// SessionStorageConfig contains configuration for web session storage.
type SessionStorageConfig struct {
	Session     config.SessionConfig
	RedisClient redis.UniversalClient // Required for the redis backend
	Logger      *slog.Logger
}

// BuildSessionKV returns the per-session key/value factory for the configured backend.
func BuildSessionKV(cfg SessionStorageConfig) (service.KVFactory, error) {
	switch cfg.Session.Backend {
	case config.SessionBackendRedis, "":
		if cfg.RedisClient == nil {
			return nil, errors.New("redis session backend selected but redis client not configured")
		}
		kv := redisadapter.NewSessionKV(cfg.RedisClient, redisadapter.SessionKVOptions{
			Prefix: cfg.Session.KeyPrefix,
			TTL:    cfg.Session.IdleTTL,
		})
		return kv.For, nil

	case config.SessionBackendMemory:
		if cfg.Logger != nil {
			cfg.Logger.Warn("sessions are kept in memory and will not survive a restart")
		}
		return memory.NewSessionKV().For, nil

	case config.SessionBackendFile:
		// One file per session next to the configured session file. Ids are
		// UUIDs validated by the session middleware, so they are safe as names.
		dir := filepath.Join(filepath.Dir(cfg.Session.File), "sessions")
		return func(sessionID string) ports.KeyValueStore {
			kv, err := filestore.New(filepath.Join(dir, sessionID+".json"))
			if err != nil {
				return failingKV{err: err}
			}
			return kv
		}, nil

	default:
		return nil, fmt.Errorf("unsupported session backend %q", cfg.Session.Backend)
	}
}

// BuildSessionRegistry creates the registry of live browser sessions.
func BuildSessionRegistry(cfg SessionStorageConfig) (*service.SessionRegistry, error) {
	kvFor, err := BuildSessionKV(cfg)
	if err != nil {
		return nil, err
	}
	return service.NewSessionRegistry(service.SessionRegistryOptions{
		KVFor:   kvFor,
		IdleTTL: cfg.Session.IdleTTL,
		Logger:  cfg.Logger,
	})
}

// failingKV reports a storage setup error on every call.
type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingKV) Set(context.Context, string, string) error         { return f.err }
func (f failingKV) Delete(context.Context, ...string) error           { return f.err }
