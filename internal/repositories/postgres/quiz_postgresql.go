package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/SAP-F-2025/quiz-generation-service/internal/repositories"
	"gorm.io/gorm"
)

type QuizPostgreSQL struct {
	db *gorm.DB
}

func NewQuizPostgreSQL(db *gorm.DB) repositories.QuizRepository {
	return &QuizPostgreSQL{db: db}
}

func (q *QuizPostgreSQL) Create(ctx context.Context, tx *gorm.DB, quiz *models.Quiz) error {
	db := q.getDB(tx)
	if err := db.WithContext(ctx).Create(quiz).Error; err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

func (q *QuizPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error) {
	db := q.getDB(tx)
	var quiz models.Quiz
	if err := db.WithContext(ctx).First(&quiz, id).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (q *QuizPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.QuizFilters) ([]*models.Quiz, error) {
	db := q.getDB(tx)
	query := db.WithContext(ctx).Model(&models.Quiz{})
	if filters.CreatedBy != "" {
		query = query.Where("created_by = ?", filters.CreatedBy)
	}
	query = applyPagination(query.Order("created_at DESC").Order("id DESC"), filters.Limit, filters.Offset)

	var quizzes []*models.Quiz
	if err := query.Find(&quizzes).Error; err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return quizzes, nil
}

func (q *QuizPostgreSQL) ListByCreator(ctx context.Context, tx *gorm.DB, creatorID string) ([]*models.QuizSummary, error) {
	quizzes, err := q.List(ctx, tx, repositories.QuizFilters{CreatedBy: creatorID})
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(quizzes))
	for i, quiz := range quizzes {
		ids[i] = quiz.ID
	}
	stats, err := q.GetStats(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]*models.QuizSummary, len(quizzes))
	for i, quiz := range quizzes {
		s := stats[quiz.ID]
		summaries[i] = &models.QuizSummary{
			Quiz:         *quiz,
			AttemptCount: s.AttemptCount,
			AvgScore:     s.AvgScore,
		}
	}
	return summaries, nil
}

func (q *QuizPostgreSQL) GetStats(ctx context.Context, tx *gorm.DB, quizIDs []uint) (map[uint]models.QuizStats, error) {
	result := make(map[uint]models.QuizStats, len(quizIDs))
	if len(quizIDs) == 0 {
		return result, nil
	}

	db := q.getDB(tx)
	var rows []models.QuizStats
	if err := db.WithContext(ctx).
		Model(&models.Attempt{}).
		Select("quiz_id, COUNT(*) AS attempt_count, COALESCE(AVG(percentage), 0) AS avg_score").
		Where("quiz_id IN ?", quizIDs).
		Group("quiz_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate quiz stats: %w", err)
	}

	for _, row := range rows {
		result[row.QuizID] = row
	}
	return result, nil
}

func (q *QuizPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) (int64, error) {
	var attemptsDeleted int64

	run := func(tx *gorm.DB) error {
		res := tx.Where("quiz_id = ?", id).Delete(&models.Attempt{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete quiz attempts: %w", res.Error)
		}
		attemptsDeleted = res.RowsAffected

		res = tx.Delete(&models.Quiz{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete quiz: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}

	var err error
	if tx != nil {
		err = tx.WithContext(ctx).Transaction(run)
	} else {
		err = q.db.WithContext(ctx).Transaction(run)
	}
	if err != nil {
		return 0, err
	}
	return attemptsDeleted, nil
}

func (q *QuizPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return q.db
}
