package repositories

import (
	"context"

	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(ctx context.Context, tx *gorm.DB, quiz *models.Quiz) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error)
	List(ctx context.Context, tx *gorm.DB, filters QuizFilters) ([]*models.Quiz, error)

	// ListByCreator returns the creator's quizzes, newest first, with attempt aggregates.
	ListByCreator(ctx context.Context, tx *gorm.DB, creatorID string) ([]*models.QuizSummary, error)
	GetStats(ctx context.Context, tx *gorm.DB, quizIDs []uint) (map[uint]models.QuizStats, error)

	// Delete removes the quiz and every attempt referencing it, atomically.
	// It returns the number of attempts removed.
	Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error)
}
