package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/SAP-F-2025/quiz-generation-service/internal/repositories"
	"gorm.io/gorm"
)

type AttemptPostgreSQL struct {
	db *gorm.DB
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{db: db}
}

func (a *AttemptPostgreSQL) Create(ctx context.Context, tx *gorm.DB, attempt *models.Attempt) error {
	db := a.getDB(tx)
	return db.WithContext(ctx).Omit("Quiz").Create(attempt).Error
}

func (a *AttemptPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Attempt, error) {
	db := a.getDB(tx)
	var attempt models.Attempt
	if err := db.WithContext(ctx).Preload("Quiz").First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (a *AttemptPostgreSQL) ListByStudent(ctx context.Context, tx *gorm.DB, studentID string, filters repositories.AttemptFilters) ([]*models.Attempt, error) {
	db := a.getDB(tx)
	query := db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Preload("Quiz").
		Order("completed_at DESC").
		Order("id DESC")
	query = applyPagination(query, filters.Limit, filters.Offset)

	var attempts []*models.Attempt
	if err := query.Find(&attempts).Error; err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	return attempts, nil
}

func (a *AttemptPostgreSQL) ListByQuiz(ctx context.Context, tx *gorm.DB, quizID uint) ([]models.Attempt, error) {
	db := a.getDB(tx)
	var attempts []models.Attempt
	if err := db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("completed_at DESC").
		Order("id DESC").
		Find(&attempts).Error; err != nil {
		return nil, fmt.Errorf("failed to list quiz attempts: %w", err)
	}
	return attempts, nil
}

func (a *AttemptPostgreSQL) CountByQuiz(ctx context.Context, tx *gorm.DB, quizID uint) (int64, error) {
	db := a.getDB(tx)
	var count int64
	err := db.WithContext(ctx).Model(&models.Attempt{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}

func (a *AttemptPostgreSQL) AttemptedQuizIDs(ctx context.Context, tx *gorm.DB, studentID string) (map[uint]bool, error) {
	db := a.getDB(tx)
	var ids []uint
	if err := db.WithContext(ctx).
		Model(&models.Attempt{}).
		Where("student_id = ?", studentID).
		Distinct().
		Pluck("quiz_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to load attempted quizzes: %w", err)
	}

	attempted := make(map[uint]bool, len(ids))
	for _, id := range ids {
		attempted[id] = true
	}
	return attempted, nil
}

func (a *AttemptPostgreSQL) GetStudentStats(ctx context.Context, tx *gorm.DB, studentID string) (*models.StudentStats, error) {
	db := a.getDB(tx)
	var stats models.StudentStats
	if err := db.WithContext(ctx).
		Model(&models.Attempt{}).
		Select("COUNT(*) AS total_quizzes, COALESCE(AVG(percentage), 0) AS avg_score, COALESCE(MAX(percentage), 0) AS best_score").
		Where("student_id = ?", studentID).
		Scan(&stats).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate student stats: %w", err)
	}
	return &stats, nil
}

func (a *AttemptPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return a.db
}
