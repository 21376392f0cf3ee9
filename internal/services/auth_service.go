package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SAP-F-2025/quiz-generation-service/internal/auth"
	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/SAP-F-2025/quiz-generation-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-generation-service/internal/validator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenConfig configures locally issued tokens.
type TokenConfig struct {
	Secret string
	Expiry time.Duration
}

type authService struct {
	repo      repositories.Repository
	tokens    TokenConfig
	logger    *ServiceLogger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, tokens TokenConfig, logger *slog.Logger, validator *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		logger:    NewServiceLogger(logger, "auth"),
		validator: validator,
	}
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	op := s.logger.WithOperation(ctx, "register", "")

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	if err := s.validator.Validate(req); err != nil {
		op.LogResult(0, "user", err)
		return nil, err
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, nil, req.Email)
	if err != nil {
		op.LogResult(0, "user", err)
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		op.LogResult(0, "user", ErrEmailTaken)
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.repo.User().Create(ctx, nil, user); err != nil {
		op.LogResult(0, "user", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	op.LogResult(0, "user", nil)
	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByEmail(ctx, nil, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Logger().WarnContext(ctx, "Login failed", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	now := time.Now()
	if err := s.repo.User().UpdateLastLogin(ctx, nil, user.ID, now); err != nil {
		s.logger.Logger().WarnContext(ctx, "Failed to record login time", "user_id", user.ID, "error", err)
	}
	user.LastLoginAt = &now

	return s.issue(user)
}

// Me returns the stored profile, or one built from the token when the
// identity lives in an external provider.
func (s *authService) Me(ctx context.Context, principal *models.Principal) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, nil, principal.ID)
	if err == nil {
		return user, nil
	}
	if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &models.User{
		ID:       principal.ID,
		FullName: principal.Name,
		Role:     principal.Role,
		IsActive: true,
	}, nil
}

func (s *authService) issue(user *models.User) (*AuthResponse, error) {
	token, err := auth.GenerateJWT(user, s.tokens.Secret, s.tokens.Expiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &AuthResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokens.Expiry),
		User:      user,
	}, nil
}
