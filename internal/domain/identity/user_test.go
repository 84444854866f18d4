package identity

import (
	"testing"
	"time"

	"github.com/restopos/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("valid user", func(t *testing.T) {
		user, err := NewUser("  Cajero1 ", "secret1", "Ana Torres", RoleCashier)
		require.NoError(t, err)
		assert.Equal(t, "cajero1", user.Username)
		assert.Equal(t, RoleCashier, user.Role)
		assert.True(t, user.Active)
		assert.NotEqual(t, "secret1", user.PasswordHash)
		assert.True(t, user.VerifyPassword("secret1"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("invalid username", func(t *testing.T) {
		_, err := NewUser("ab", "secret1", "Ana", RoleCashier)
		require.Error(t, err)
		_, err = NewUser("bad name", "secret1", "Ana", RoleCashier)
		require.Error(t, err)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := NewUser("cajero", "123", "Ana", RoleCashier)
		require.Error(t, err)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "INVALID_PASSWORD", de.Code)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := NewUser("cajero", "secret1", "Ana", Role("owner"))
		require.Error(t, err)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewUser("cajero", "secret1", "  ", RoleWaiter)
		require.Error(t, err)
	})
}

func TestUser_ChangePassword(t *testing.T) {
	user, err := NewUser("mesero", "secret1", "Luis", RoleWaiter)
	require.NoError(t, err)

	require.Error(t, user.ChangePassword("nope", "another1"))
	require.NoError(t, user.ChangePassword("secret1", "another1"))
	assert.True(t, user.VerifyPassword("another1"))
}

func TestUser_LoginFailuresLockAccount(t *testing.T) {
	user, err := NewUser("cocina", "secret1", "Chef", RoleKitchen)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		assert.False(t, user.RecordLoginFailure(5, time.Minute))
	}
	assert.True(t, user.CanLogin())
	assert.True(t, user.RecordLoginFailure(5, time.Minute))
	assert.True(t, user.IsLocked())
	assert.False(t, user.CanLogin())

	past := time.Now().Add(-time.Second)
	user.LockedUntil = &past
	assert.False(t, user.IsLocked())
	assert.True(t, user.CanLogin())

	user.RecordLoginSuccess()
	assert.Nil(t, user.LockedUntil)
	assert.NotNil(t, user.LastLoginAt)
}

func TestUser_ActivateDeactivate(t *testing.T) {
	user, err := NewUser("admin2", "secret1", "Admin", RoleAdmin)
	require.NoError(t, err)

	require.Error(t, user.Activate())
	require.NoError(t, user.Deactivate())
	assert.False(t, user.CanLogin())
	require.Error(t, user.Deactivate())
	require.NoError(t, user.Activate())
	assert.True(t, user.CanLogin())
}

func TestRole_IsValid(t *testing.T) {
	for _, r := range AllRoles() {
		assert.True(t, r.IsValid(), r)
	}
	assert.False(t, Role("").IsValid())
}
