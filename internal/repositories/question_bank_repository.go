package repositories

import (
	"context"

	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"gorm.io/gorm"
)

type QuestionBankRepository interface {
	Create(ctx context.Context, tx *gorm.DB, bank *models.QuestionBank) error
	// GetByTitle loads the bank with its questions in insertion order.
	GetByTitle(ctx context.Context, tx *gorm.DB, title string) (*models.QuestionBank, error)
	ExistsByTitle(ctx context.Context, tx *gorm.DB, title string) (bool, error)
	List(ctx context.Context, tx *gorm.DB) ([]*models.QuestionBankSummary, error)

	AddQuestion(ctx context.Context, tx *gorm.DB, question *models.BankQuestion) error
}
