package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, tx *gorm.DB, id string, loginTime time.Time) error
}
