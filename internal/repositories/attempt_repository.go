package repositories

import (
	"context"

	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(ctx context.Context, tx *gorm.DB, attempt *models.Attempt) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Attempt, error)

	// ListByStudent returns attempts with their quiz, newest first.
	ListByStudent(ctx context.Context, tx *gorm.DB, studentID string, filters AttemptFilters) ([]*models.Attempt, error)
	ListByQuiz(ctx context.Context, tx *gorm.DB, quizID uint) ([]models.Attempt, error)
	CountByQuiz(ctx context.Context, tx *gorm.DB, quizID uint) (int64, error)

	AttemptedQuizIDs(ctx context.Context, tx *gorm.DB, studentID string) (map[uint]bool, error)
	GetStudentStats(ctx context.Context, tx *gorm.DB, studentID string) (*models.StudentStats, error)
}
