package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyon-billing/internal/pkg/jwt"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	token, err := jwt.GenerateAccessToken(7, "admin@gmail.com", []string{"ROLE_SUPER_ADMIN", "ROLE_USER"}, "secret", 15)
	require.NoError(t, err)

	claims, err := jwt.ValidateAccessToken(token, "secret")
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.Equal(t, "admin@gmail.com", claims.Email)
	assert.True(t, claims.HasRole("ROLE_SUPER_ADMIN"))
	assert.False(t, claims.HasRole("ROLE_OWNER"))
}

func TestAccessToken_Rejections(t *testing.T) {
	token, err := jwt.GenerateAccessToken(7, "user@gmail.com", []string{"ROLE_USER"}, "secret", 15)
	require.NoError(t, err)

	_, err = jwt.ValidateAccessToken(token, "other")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)

	_, err = jwt.ValidateAccessToken("not-a-token", "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)

	expired, err := jwt.GenerateAccessToken(7, "user@gmail.com", []string{"ROLE_USER"}, "secret", -1)
	require.NoError(t, err)
	_, err = jwt.ValidateAccessToken(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestRefreshToken_CarriesTokenID(t *testing.T) {
	token, err := jwt.GenerateRefreshToken(3, "abc-123", "refresh", 30)
	require.NoError(t, err)

	claims, err := jwt.ValidateRefreshToken(token, "refresh")
	require.NoError(t, err)
	assert.EqualValues(t, 3, claims.UserID)
	assert.Equal(t, "abc-123", claims.TokenID)

	_, err = jwt.ValidateRefreshToken(token, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}
