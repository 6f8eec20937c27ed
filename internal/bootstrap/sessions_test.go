package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turnos-app/turnos/config"
	domainauth "github.com/turnos-app/turnos/internal/domain/auth"
	"github.com/turnos-app/turnos/internal/testutil"
)

func TestBuildSessionKV_Memory(t *testing.T) {
	kvFor, err := BuildSessionKV(SessionStorageConfig{
		Session: config.SessionConfig{Backend: config.SessionBackendMemory},
		Logger:  discardLogger(),
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, kvFor("a").Set(ctx, "access", "tok"))
	v, ok, err := kvFor("a").Get(ctx, "access")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)

	_, ok, err = kvFor("b").Get(ctx, "access")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBuildSessionKV_FileWritesOneFilePerSession(t *testing.T) {
	dir := t.TempDir()
	kvFor, err := BuildSessionKV(SessionStorageConfig{
		Session: config.SessionConfig{Backend: config.SessionBackendFile, File: filepath.Join(dir, "session.json")},
	})
	require.NoError(t, err)

	require.NoError(t, kvFor("0b6c7a9e-1111-4c1e-9d3a-3f1f7f0e2a10").Set(context.Background(), "access", "tok"))
	_, err = os.Stat(filepath.Join(dir, "sessions", "0b6c7a9e-1111-4c1e-9d3a-3f1f7f0e2a10.json"))
	assert.NoError(t, err)
}

func TestBuildSessionKV_RedisRequiresClient(t *testing.T) {
	_, err := BuildSessionKV(SessionStorageConfig{Session: config.SessionConfig{Backend: config.SessionBackendRedis}})
	assert.Error(t, err)

	_, err = BuildSessionKV(SessionStorageConfig{Session: config.SessionConfig{Backend: "sqlite"}})
	assert.ErrorContains(t, err, "unsupported session backend")
}

func TestBuildSessionRegistry_Redis(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	ctx := context.Background()

	cfg := SessionStorageConfig{
		Session:     config.SessionConfig{Backend: config.SessionBackendRedis, KeyPrefix: "test:session:", IdleTTL: time.Hour},
		RedisClient: client,
	}
	reg, err := BuildSessionRegistry(cfg)
	require.NoError(t, err)

	store, err := reg.Get(ctx, "browser-1")
	require.NoError(t, err)
	require.NoError(t, store.Login(ctx, domainauth.Identity{ID: 1, Username: "admin", Role: domainauth.RoleAdmin}, "a1", "r1"))

	// A second registry (another replica) hydrates the same session.
	other, err := BuildSessionRegistry(cfg)
	require.NoError(t, err)
	hydrated, err := other.Get(ctx, "browser-1")
	require.NoError(t, err)
	assert.Equal(t, "a1", hydrated.AccessToken())
	assert.Equal(t, domainauth.RoleAdmin, hydrated.Session().Role())

	ttl, err := client.TTL(ctx, "test:session:browser-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
