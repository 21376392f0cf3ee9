package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/quiz-generation-service/internal/config"
	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func testUser() *models.User {
	return &models.User{ID: "u-1", FullName: "Ada Lovelace", Email: "ada@example.com", Role: models.RoleProfessor}
}

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, models.Principal{ID: "u-1", Name: "Ada Lovelace", Role: models.RoleProfessor}, claims.Principal())
}

func TestParseJWT_Rejects(t *testing.T) {
	expired, err := GenerateJWT(testUser(), testSecret, -time.Minute)
	require.NoError(t, err)

	valid, err := GenerateJWT(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"expired", expired, testSecret},
		{"wrong secret", valid, "other"},
		{"garbage", "not-a-token", testSecret},
		{"none algorithm", noneToken, testSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJWT(tt.token, tt.secret)
			assert.Error(t, err)
		})
	}
}

func TestJWTAuthenticator(t *testing.T) {
	a := NewJWTAuthenticator(testSecret)
	token, err := GenerateJWT(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	principal, err := a.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", principal.ID)
	assert.True(t, principal.CanAuthor())

	_, err = a.Authenticate(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewAuthenticator(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	a, err := NewAuthenticator(&config.Config{AuthProvider: "local", JWTSecret: testSecret}, logger)
	require.NoError(t, err)
	assert.IsType(t, &JWTAuthenticator{}, a)

	_, err = NewAuthenticator(&config.Config{AuthProvider: "casdoor"}, logger)
	assert.Error(t, err)

	_, err = NewAuthenticator(&config.Config{AuthProvider: "ldap"}, logger)
	assert.Error(t, err)
}

func TestCasdoorRole(t *testing.T) {
	assert.Equal(t, models.RoleAdmin, casdoorRole(true, "", ""))
	assert.Equal(t, models.RoleProfessor, casdoorRole(false, "Teacher", "normal-user"))
	assert.Equal(t, models.RoleProfessor, casdoorRole(false, "", "professor"))
	assert.Equal(t, models.RoleStudent, casdoorRole(false, "", "normal-user"))
}
