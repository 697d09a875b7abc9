package security

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("test-secret")

func decodeClaims(t *testing.T, tokenString string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return testKey, nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestGenerateToken_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testKey, time.Hour)

	tokenString, err := issuer.GenerateToken("u-1", "alice")
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(issuer.JWTAuth(), tokenString)
	require.NoError(t, err)

	claims := decodeClaims(t, tokenString)
	assert.Equal(t, "u-1", claims["user_id"])
	assert.Equal(t, "alice", claims["username"])
}

func TestGenerateToken_Expired(t *testing.T) {
	issuer := NewTokenIssuer(testKey, -time.Minute)

	tokenString, err := issuer.GenerateToken("u-1", "alice")
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(issuer.JWTAuth(), tokenString)
	assert.Error(t, err)
}

func TestGenerateToken_WrongKeyRejected(t *testing.T) {
	issuer := NewTokenIssuer(testKey, time.Hour)
	other := NewTokenIssuer([]byte("another-secret"), time.Hour)

	tokenString, err := issuer.GenerateToken("u-1", "alice")
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(other.JWTAuth(), tokenString)
	assert.Error(t, err)
}

func TestGetClaims(t *testing.T) {
	claims := map[string]interface{}{"user_id": "u-1", "username": "alice"}

	id, err := GetUserIDFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "u-1", id)

	username, err := GetUsernameFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	_, err = GetUserIDFromClaims(map[string]interface{}{})
	assert.Error(t, err)
	_, err = GetUsernameFromClaims(map[string]interface{}{"username": 42})
	assert.Error(t, err)
}
