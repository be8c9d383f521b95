package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"kvboard/kv"
)

func TestAuth_LoginIssuesToken(t *testing.T) {
	ctx := context.Background()
	auth := NewAuth(kv.NewMemory(), "hunter2")

	token, ok, err := auth.Login(ctx, "hunter2")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEmpty(t, token)

	admin, err := auth.IsAdmin(ctx, token)
	require.NoError(t, err)
	assert.True(t, admin)

	// every login mints a distinct token; both stay valid
	second, ok, err := auth.Login(ctx, "hunter2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEqual(t, token, second)
}

func TestAuth_WrongPasswordIsNotAnError(t *testing.T) {
	ctx := context.Background()
	auth := NewAuth(kv.NewMemory(), "hunter2")

	token, ok, err := auth.Login(ctx, "guess")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, token)
}

func TestAuth_UnsetSecretDisablesLogin(t *testing.T) {
	ctx := context.Background()

	for _, secret := range []string{"", "change-this-password"} {
		auth := NewAuth(kv.NewMemory(), secret)
		_, _, err := auth.Login(ctx, "anything")
		assert.ErrorIs(t, err, ErrAdminSecretUnset)
	}
}

func TestAuth_BcryptSecret(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	auth := NewAuth(kv.NewMemory(), string(hash))

	_, ok, err := auth.Login(ctx, "s3cret")
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = auth.Login(ctx, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuth_TokenExpires(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	now := time.Now()
	mem.Now = func() time.Time { return now }

	auth := NewAuth(mem, "hunter2")
	token, ok, err := auth.Login(ctx, "hunter2")
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(13 * 24 * time.Hour)
	admin, err := auth.IsAdmin(ctx, token)
	require.NoError(t, err)
	assert.True(t, admin)

	now = now.Add(2 * 24 * time.Hour)
	admin, err = auth.IsAdmin(ctx, token)
	require.NoError(t, err)
	assert.False(t, admin, "sessions lapse after 14 days")
}

func TestAuth_EmptyTokenIsNotAdmin(t *testing.T) {
	ctx := context.Background()
	auth := NewAuth(kv.NewMemory(), "hunter2")

	admin, err := auth.IsAdmin(ctx, "")
	require.NoError(t, err)
	assert.False(t, admin)

	admin, err = auth.IsAdmin(ctx, "made-up")
	require.NoError(t, err)
	assert.False(t, admin)
}

func TestAuth_MaintenanceRoundtrip(t *testing.T) {
	ctx := context.Background()
	auth := NewAuth(kv.NewMemory(), "hunter2")

	on, err := auth.Maintenance(ctx)
	require.NoError(t, err)
	assert.False(t, on, "maintenance defaults to off")

	require.NoError(t, auth.SetMaintenance(ctx, true))
	on, err = auth.Maintenance(ctx)
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, auth.SetMaintenance(ctx, false))
	on, err = auth.Maintenance(ctx)
	require.NoError(t, err)
	assert.False(t, on)
}
