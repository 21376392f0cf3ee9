package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type QuizFilters struct {
	CreatedBy string `json:"created_by"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
}

type AttemptFilters struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ===== REPOSITORY MANAGER =====

// Repository groups the per-entity repositories over one database handle.
// Methods take an optional tx; nil runs on the root connection.
type Repository interface {
	Quiz() QuizRepository
	Attempt() AttemptRepository
	User() UserRepository
	QuestionBank() QuestionBankRepository

	DB() *gorm.DB
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	Ping(ctx context.Context) error
}

// IsNotFoundError reports whether err means the row does not exist.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
