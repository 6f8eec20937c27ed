package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SessionBackend selects where persisted session keys live.
type SessionBackend string

const (
	// SessionBackendRedis stores one hash per browser session in Redis.
	SessionBackendRedis SessionBackend = "redis"
	// SessionBackendFile stores the CLI session in a local JSON file.
	SessionBackendFile SessionBackend = "file"
	// SessionBackendMemory keeps sessions in process memory only (development).
	SessionBackendMemory SessionBackend = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionBackend.
func (b *SessionBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "redis", "file", "memory":
		*b = SessionBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionBackend: %q (valid options: redis, file, memory)", v)
	}
}

// SessionConfig controls session persistence.
type SessionConfig struct {
	Backend SessionBackend `env:"SESSION_BACKEND" envDefault:"redis"`

	// File is the CLI session file; defaults to ~/.config/turnos/session.json.
	File string `env:"SESSION_FILE"`

	// KeyPrefix namespaces Redis session hashes.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"turnos:session:"`

	// IdleTTL expires idle sessions in Redis and in server memory.
	IdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"24h"`

	// SweepInterval is how often idle in-memory sessions are dropped.
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"5m"`
}

// Sanitize applies guardrails to session configuration values.
func (c *SessionConfig) Sanitize() {
	if c.Backend == "" {
		c.Backend = SessionBackendRedis
	}
	c.File = strings.TrimSpace(c.File)
	if c.File == "" {
		c.File = DefaultSessionFile()
	}
	if c.KeyPrefix == "" {
		c.KeyPrefix = "turnos:session:"
	}
	if c.IdleTTL < time.Minute {
		c.IdleTTL = time.Minute
	}
	if c.SweepInterval < 10*time.Second {
		c.SweepInterval = 10 * time.Second
	}
}

// DefaultSessionFile returns ~/.config/turnos/session.json, or a relative
// fallback when the user config dir cannot be determined.
func DefaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return filepath.Join(".turnos", "session.json")
	}
	return filepath.Join(dir, "turnos", "session.json")
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}
