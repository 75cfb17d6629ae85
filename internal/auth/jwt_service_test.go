package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	tokenID, token, err := svc.GenerateSessionToken(42, "testuser")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "testuser", claims.Username)
	assert.Equal(t, tokenID, claims.ID)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := NewJWTService("test-secret")
	_, token, err := svc.GenerateSessionToken(1, "testuser")
	assert.NoError(t, err)

	other := NewJWTService("different-secret")
	claims, err := other.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret")

	claims, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
