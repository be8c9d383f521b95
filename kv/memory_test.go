package kv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Put(ctx, "k", "v", 0))
	v, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, m.Put(ctx, "k", "v2", 0))
	v, _, _ = m.Get(ctx, "k")
	assert.Equal(t, "v2", v)

	require.NoError(t, m.Delete(ctx, "k"))
	_, ok, err = m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	// deleting a missing key is a no-op
	require.NoError(t, m.Delete(ctx, "k"))
}

func TestMemory_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	now := time.Now()
	m.Now = func() time.Time { return now }

	require.NoError(t, m.Put(ctx, "session", "1", time.Hour))

	_, ok, err := m.Get(ctx, "session")
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(59 * time.Minute)
	_, ok, _ = m.Get(ctx, "session")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, err = m.Get(ctx, "session")
	require.NoError(t, err)
	assert.False(t, ok, "expired entry must read as absent")

	// expired entries are removed lazily on read
	m.Now = time.Now
	_, ok, _ = m.Get(ctx, "session")
	assert.False(t, ok)
}

func TestMemory_ZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	now := time.Now()
	m.Now = func() time.Time { return now }

	require.NoError(t, m.Put(ctx, "flag", "1", 0))
	now = now.Add(1000 * time.Hour)

	_, ok, err := m.Get(ctx, "flag")
	require.NoError(t, err)
	assert.True(t, ok)
}
