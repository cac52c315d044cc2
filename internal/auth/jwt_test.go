package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	require.NoError(t, InitJWTSecret("testsecret"))

	tokenString, err := GenerateJWT(7, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := VerifyJWT(tokenString)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.EqualValues(t, 7, claims["user_id"])
	assert.Equal(t, "alice", claims["username"])
}

func TestVerifyJWTWrongSecret(t *testing.T) {
	require.NoError(t, InitJWTSecret("testsecret"))

	tokenString, err := GenerateJWT(7, "alice")
	require.NoError(t, err)

	require.NoError(t, InitJWTSecret("other-secret"))

	_, err = VerifyJWT(tokenString)
	assert.Error(t, err)
}

func TestVerifyJWTGarbage(t *testing.T) {
	require.NoError(t, InitJWTSecret("testsecret"))

	_, err := VerifyJWT("not-a-token")
	assert.Error(t, err)
}

func TestInitJWTSecretRejectsEmpty(t *testing.T) {
	assert.Error(t, InitJWTSecret(""))
}
