package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantumhr/portal-service/internal/domain"
)

func TestGenerateAndParseToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	user := &domain.User{ID: "u-1", Email: "admin@quantumhr.com", Role: domain.RoleSuperAdmin}

	token, claims, err := tm.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, claims.ID)

	parsed, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", parsed.UserID)
	assert.Equal(t, domain.RoleSuperAdmin, parsed.Role)
	assert.Equal(t, claims.ID, parsed.ID)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	user := &domain.User{ID: "u-1", Role: domain.RoleEmployee}

	token, _, err := tm.GenerateToken(user)
	require.NoError(t, err)

	other := NewTokenManager("another-secret", 60)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	_, err := tm.ParseToken("not-a-token")
	assert.Error(t, err)
}
