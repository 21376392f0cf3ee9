package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/quiz-generation-service/internal/config"
	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
)

// ErrInvalidToken is returned for any token that fails verification.
var ErrInvalidToken = errors.New("invalid or expired token")

// Authenticator turns a bearer token into the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Principal, error)
}

type JWTAuthenticator struct {
	secret string
}

func NewJWTAuthenticator(secret string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: secret}
}

func (a *JWTAuthenticator) Authenticate(_ context.Context, token string) (*models.Principal, error) {
	claims, err := ParseJWT(token, a.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	principal := claims.Principal()
	return &principal, nil
}

// NewAuthenticator picks the identity provider named by AUTH_PROVIDER.
func NewAuthenticator(cfg *config.Config, logger *slog.Logger) (Authenticator, error) {
	switch strings.ToLower(cfg.AuthProvider) {
	case "", "local":
		logger.Info("Using local JWT authentication")
		return NewJWTAuthenticator(cfg.JWTSecret), nil
	case "casdoor":
		logger.Info("Using Casdoor authentication", "endpoint", cfg.Casdoor.Endpoint)
		return NewCasdoorAuthenticator(cfg.Casdoor)
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.AuthProvider)
	}
}
