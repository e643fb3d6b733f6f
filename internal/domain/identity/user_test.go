package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with hashed password", func(t *testing.T) {
		u, err := NewUser("DrMehta", "mehta@clinic.example", "Dr. Mehta", "s3cret-pass", RoleVeterinarian)
		require.NoError(t, err)

		assert.Equal(t, "drmehta", u.Username)
		assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
		assert.True(t, u.VerifyPassword("s3cret-pass"))
		assert.False(t, u.VerifyPassword("wrong"))
		assert.True(t, u.IsActive)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("staff1", "s@clinic.example", "Staff One", "short", RoleStaff)
		assert.Error(t, err)
	})

	t.Run("rejects invalid role", func(t *testing.T) {
		_, err := NewUser("staff1", "s@clinic.example", "Staff One", "long-enough", Role("intern"))
		assert.Error(t, err)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewUser("staff1", "not-an-email", "Staff One", "long-enough", RoleStaff)
		assert.Error(t, err)
	})
}

func TestChangePassword(t *testing.T) {
	u, err := NewUser("staff1", "s@clinic.example", "Staff One", "original-pass", RoleStaff)
	require.NoError(t, err)

	assert.Error(t, u.ChangePassword("wrong-pass", "new-password"))
	assert.Error(t, u.ChangePassword("original-pass", "short"))

	require.NoError(t, u.ChangePassword("original-pass", "new-password"))
	assert.True(t, u.VerifyPassword("new-password"))
	assert.False(t, u.VerifyPassword("original-pass"))
}

func TestRolePermissions(t *testing.T) {
	assert.True(t, RoleAdmin.CanManageUsers())
	assert.False(t, RoleStaff.CanManageUsers())
	assert.True(t, RoleStaff.CanConfirmSales())
	assert.True(t, RoleVeterinarian.IsValid())
	assert.False(t, Role("intern").IsValid())
}

func TestUserLifecycle(t *testing.T) {
	u, err := NewUser("staff1", "s@clinic.example", "Staff One", "long-enough", RoleStaff)
	require.NoError(t, err)

	u.RecordLogin()
	require.NotNil(t, u.LastLoginAt)

	require.NoError(t, u.ChangeRole(RoleAdmin))
	assert.Error(t, u.ChangeRole(Role("intern")))

	u.Deactivate()
	assert.False(t, u.IsActive)
	u.Activate()
	assert.True(t, u.IsActive)
}
