package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complaintdesk/triage/internal/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:         uuid.New(),
		EmployeeID: "E1001",
		Role:       domain.RoleOfficer,
		Department: "it",
	}
}

func TestJWTRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	user := testUser()

	token, expiresAt, err := manager.GenerateToken(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)

	identity, err := IdentityFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, "E1001", identity.EmployeeID)
	assert.Equal(t, domain.RoleOfficer, identity.Role)
	assert.Equal(t, "it", identity.Department)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := NewJWTManager("secret-a", time.Hour).GenerateToken(testUser())
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, _, err := manager.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := NewJWTManager("test-secret", time.Hour).ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestIdentityFromClaims_InvalidRole(t *testing.T) {
	claims := &Claims{
		UserID: uuid.NewString(),
		Role:   "superuser",
	}
	_, err := IdentityFromClaims(claims)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong-pass"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret-pass"))
}
