package store

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"kvboard/kv"
)

// adminTokenTTL is the fixed session lifetime. There is no revocation, only
// natural expiry.
const adminTokenTTL = 14 * 24 * time.Hour

// placeholderPassword ships in the deployment template; login stays disabled
// until the operator replaces it.
const placeholderPassword = "change-this-password"

// Auth issues and validates admin session tokens and owns the maintenance
// flag. Tokens are opaque random strings stored under admin:token:<token>
// with a TTL; the flag is persisted so independent processes agree on it.
type Auth struct {
	kv       kv.Store
	password string
}

// NewAuth builds the auth service with the configured admin secret. The
// secret may be plaintext or a bcrypt hash (values starting with "$2").
func NewAuth(store kv.Store, password string) *Auth {
	return &Auth{kv: store, password: strings.TrimSpace(password)}
}

// Login checks the password against the configured secret. An unset or
// placeholder secret fails with ErrAdminSecretUnset; a wrong password is a
// non-match, not an error. On match a fresh opaque token is issued with a
// 14 day TTL.
func (a *Auth) Login(ctx context.Context, password string) (string, bool, error) {
	if a.password == "" || a.password == placeholderPassword {
		return "", false, ErrAdminSecretUnset
	}

	if !a.matches(strings.TrimSpace(password)) {
		return "", false, nil
	}

	token := uuid.NewString()
	if err := a.kv.Put(ctx, adminTokenPrefix+token, "1", adminTokenTTL); err != nil {
		return "", false, err
	}
	return token, true, nil
}

func (a *Auth) matches(password string) bool {
	if strings.HasPrefix(a.password, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(a.password), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(a.password), []byte(password)) == 1
}

// IsAdmin reports whether token is a live admin session. Expired tokens have
// already vanished from the substrate.
func (a *Auth) IsAdmin(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	v, ok, err := a.kv.Get(ctx, adminTokenPrefix+token)
	if err != nil {
		return false, err
	}
	return ok && v == "1", nil
}

// Maintenance reads the global write-gate flag.
func (a *Auth) Maintenance(ctx context.Context) (bool, error) {
	v, _, err := a.kv.Get(ctx, maintenanceKey)
	if err != nil {
		return false, err
	}
	return v == "1", nil
}

// SetMaintenance persists the flag so every process instance sees the same
// value.
func (a *Auth) SetMaintenance(ctx context.Context, enabled bool) error {
	v := "0"
	if enabled {
		v = "1"
	}
	return a.kv.Put(ctx, maintenanceKey, v, 0)
}
