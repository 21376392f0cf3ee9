package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/quiz-generation-service/internal/repositories"
	"gorm.io/gorm"
)

// repository implements repositories.Repository on any gorm dialect.
type repository struct {
	db      *gorm.DB
	quiz    repositories.QuizRepository
	attempt repositories.AttemptRepository
	user    repositories.UserRepository
	bank    repositories.QuestionBankRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		db:      db,
		quiz:    NewQuizPostgreSQL(db),
		attempt: NewAttemptPostgreSQL(db),
		user:    NewUserPostgreSQL(db),
		bank:    NewQuestionBankPostgreSQL(db),
	}
}

func (r *repository) Quiz() repositories.QuizRepository       { return r.quiz }
func (r *repository) Attempt() repositories.AttemptRepository { return r.attempt }
func (r *repository) User() repositories.UserRepository       { return r.user }
func (r *repository) DB() *gorm.DB                            { return r.db }

func (r *repository) QuestionBank() repositories.QuestionBankRepository { return r.bank }

func (r *repository) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func applyPagination(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
