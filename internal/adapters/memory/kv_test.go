package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionKV_IsolatesSessions(t *testing.T) {
	ctx := context.Background()
	kv := NewSessionKV()
	a, b := kv.For("a"), kv.For("b")

	require.NoError(t, a.Set(ctx, "access", "tok-a"))
	require.NoError(t, b.Set(ctx, "access", "tok-b"))

	v, ok, err := a.Get(ctx, "access")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-a", v)

	_, ok, err = kv.For("c").Get(ctx, "access")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, kv.Len())
}

func TestSessionKV_DeleteDropsEmptySession(t *testing.T) {
	ctx := context.Background()
	kv := NewSessionKV()
	s := kv.For("a")

	require.NoError(t, s.Set(ctx, "user", "{}"))
	require.NoError(t, s.Set(ctx, "access", "tok"))
	require.NoError(t, s.Delete(ctx, "access"))
	assert.Equal(t, 1, kv.Len())

	require.NoError(t, s.Delete(ctx, "user", "refreshToken"))
	assert.Equal(t, 0, kv.Len())
	require.NoError(t, kv.For("missing").Delete(ctx, "user"))
}
