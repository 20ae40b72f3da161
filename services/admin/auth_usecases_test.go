package main

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuth(t *testing.T) (*AuthUseCase, *memUserRepository) {
	t.Helper()
	users := newMemUserRepository()
	uc := NewAuthUseCase(users, "test-secret", time.Hour, zap.NewNop())
	require.NoError(t, uc.InitiateAdmin(context.Background(), NewAdmin{
		Email:    "admin@sporton.test",
		Password: "secret123",
		Name:     "Admin",
	}))
	return uc, users
}

func TestAuthUseCase_InitiateAdmin_OnlyOnce(t *testing.T) {
	// Arrange
	uc, users := newTestAuth(t)

	// Act
	err := uc.InitiateAdmin(context.Background(), NewAdmin{Email: "b@sporton.test", Password: "secret123", Name: "B"})

	// Assert
	assert.ErrorIs(t, err, ErrAdminExists)
	count, _ := users.CountUsers(context.Background())
	assert.Equal(t, 1, count)

	stored, err := users.FindUserByEmail(context.Background(), "admin@sporton.test")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.HashedPass)
}

func TestAuthUseCase_SignIn(t *testing.T) {
	// Arrange
	uc, _ := newTestAuth(t)

	// Act
	result, err := uc.SignIn(context.Background(), "admin@sporton.test", "secret123")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Admin", result.User.Name)

	claims, err := uc.ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.ID)
	assert.Equal(t, "admin@sporton.test", claims.Email)
}

func TestAuthUseCase_SignIn_InvalidCredentials(t *testing.T) {
	uc, _ := newTestAuth(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "senha errada", email: "admin@sporton.test", password: "wrong-pass"},
		{name: "email desconhecido", email: "ghost@sporton.test", password: "secret123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			result, err := uc.SignIn(context.Background(), tt.email, tt.password)

			// Assert
			assert.Nil(t, result)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestAuthUseCase_ParseToken_Rejects(t *testing.T) {
	// Arrange
	uc, _ := newTestAuth(t)
	result, err := uc.SignIn(context.Background(), "admin@sporton.test", "secret123")
	require.NoError(t, err)

	other := NewAuthUseCase(newMemUserRepository(), "another-secret", time.Hour, zap.NewNop())

	expired := NewAuthUseCase(newMemUserRepository(), "test-secret", time.Hour, zap.NewNop())
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": "x"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	// Act
	_, wrongSecret := other.ParseToken(result.Token)
	_, afterExpiry := expired.ParseToken(result.Token)
	_, algNone := uc.ParseToken(noneToken)

	// Assert
	assert.Error(t, wrongSecret)
	assert.ErrorIs(t, afterExpiry, jwt.ErrTokenExpired)
	assert.Error(t, algNone)
}
