package filestore

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/turnos-app/turnos/internal/domain/auth"
	"github.com/turnos-app/turnos/internal/service"
)

func TestNew_RequiresPath(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestKV_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	kv, err := New(path)
	require.NoError(t, err)

	_, ok, err := kv.Get(ctx, "access")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "access", "a"))
	require.NoError(t, kv.Set(ctx, "refreshToken", "r"))

	v, ok, err := kv.Get(ctx, "access")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	require.NoError(t, kv.Delete(ctx, "access"))
	_, ok, err = kv.Get(ctx, "access")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Delete(ctx, "refreshToken"))
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist, "file removed once empty")
	require.NoError(t, kv.Delete(ctx, "refreshToken"))
}

func TestKV_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))
	kv, err := New(path)
	require.NoError(t, err)

	_, _, err = kv.Get(ctx, "user")
	assert.Error(t, err)

	store, err := service.NewSessionStore(ctx, service.SessionStoreOptions{KV: kv})
	require.NoError(t, err)
	assert.True(t, store.Session().IsEmpty(), "corrupt file hydrates as logged out")

	require.NoError(t, kv.Set(ctx, "access", "a"))
	v, ok, err := kv.Get(ctx, "access")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a", v)
}

func TestKV_SessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	kv, err := New(path)
	require.NoError(t, err)

	store, err := service.NewSessionStore(ctx, service.SessionStoreOptions{KV: kv})
	require.NoError(t, err)
	id := domainauth.Identity{ID: 9, Username: "admin", Role: domainauth.RoleAdmin}
	require.NoError(t, store.Login(ctx, id, "a", "r"))

	other, err := New(path)
	require.NoError(t, err)
	again, err := service.NewSessionStore(ctx, service.SessionStoreOptions{KV: other})
	require.NoError(t, err)
	assert.Equal(t, store.Session(), again.Session())

	require.NoError(t, again.Logout(ctx))
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
