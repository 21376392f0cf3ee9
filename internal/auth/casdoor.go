package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/quiz-generation-service/internal/config"
	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
)

// CasdoorAuthenticator verifies tokens issued by a Casdoor instance.
type CasdoorAuthenticator struct{}

func NewCasdoorAuthenticator(cfg config.CasdoorConfig) (*CasdoorAuthenticator, error) {
	if cfg.Endpoint == "" || cfg.Certificate == "" {
		return nil, errors.New("casdoor endpoint and certificate are required")
	}
	casdoorsdk.InitConfig(cfg.Endpoint, cfg.ClientID, cfg.ClientSecret, cfg.Certificate,
		cfg.OrganizationName, cfg.ApplicationName)
	return &CasdoorAuthenticator{}, nil
}

func (a *CasdoorAuthenticator) Authenticate(_ context.Context, token string) (*models.Principal, error) {
	claims, err := casdoorsdk.ParseJwtToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	name := claims.User.DisplayName
	if name == "" {
		name = claims.User.Name
	}
	id := claims.User.Id
	if id == "" {
		id = claims.User.Owner + "/" + claims.User.Name
	}

	return &models.Principal{
		ID:   id,
		Name: name,
		Role: casdoorRole(claims.User.IsAdmin, claims.User.Tag, claims.User.Type),
	}, nil
}

// casdoorRole maps the user's admin flag, tag or type onto a local role.
func casdoorRole(isAdmin bool, tag, userType string) models.UserRole {
	if isAdmin {
		return models.RoleAdmin
	}
	for _, v := range []string{tag, userType} {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "professor", "teacher", "instructor":
			return models.RoleProfessor
		case "admin":
			return models.RoleAdmin
		}
	}
	return models.RoleStudent
}
