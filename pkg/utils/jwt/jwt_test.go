package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Init("test-secret")

	token, err := GenerateToken(42, 7, "owner@example.com", "owner")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, uint(7), claims.TenantID)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, "owner", claims.Role)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	Init("test-secret")

	token, err := GenerateToken(1, 1, "user@example.com", "member")
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)

	Init("other-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
