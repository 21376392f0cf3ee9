package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/SAP-F-2025/quiz-generation-service/internal/repositories"
	"gorm.io/gorm"
)

type QuestionBankPostgreSQL struct {
	db *gorm.DB
}

func NewQuestionBankPostgreSQL(db *gorm.DB) repositories.QuestionBankRepository {
	return &QuestionBankPostgreSQL{db: db}
}

func (b *QuestionBankPostgreSQL) Create(ctx context.Context, tx *gorm.DB, bank *models.QuestionBank) error {
	db := b.getDB(tx)
	if err := db.WithContext(ctx).Omit("Questions").Create(bank).Error; err != nil {
		return fmt.Errorf("failed to create question bank: %w", err)
	}
	if bank.Questions == nil {
		bank.Questions = []models.BankQuestion{}
	}
	return nil
}

func (b *QuestionBankPostgreSQL) GetByTitle(ctx context.Context, tx *gorm.DB, title string) (*models.QuestionBank, error) {
	db := b.getDB(tx)
	var bank models.QuestionBank
	err := db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("title = ?", title).
		First(&bank).Error
	if err != nil {
		return nil, err
	}
	return &bank, nil
}

func (b *QuestionBankPostgreSQL) ExistsByTitle(ctx context.Context, tx *gorm.DB, title string) (bool, error) {
	db := b.getDB(tx)
	var count int64
	err := db.WithContext(ctx).Model(&models.QuestionBank{}).Where("title = ?", title).Count(&count).Error
	return count > 0, err
}

func (b *QuestionBankPostgreSQL) List(ctx context.Context, tx *gorm.DB) ([]*models.QuestionBankSummary, error) {
	db := b.getDB(tx)

	var banks []models.QuestionBank
	if err := db.WithContext(ctx).Order("title ASC").Find(&banks).Error; err != nil {
		return nil, fmt.Errorf("failed to list question banks: %w", err)
	}

	var counts []struct {
		BankID uint
		Total  int64
	}
	err := db.WithContext(ctx).Model(&models.BankQuestion{}).
		Select("bank_id, COUNT(*) AS total").
		Group("bank_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count bank questions: %w", err)
	}
	byBank := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byBank[c.BankID] = c.Total
	}

	summaries := make([]*models.QuestionBankSummary, len(banks))
	for i, bank := range banks {
		summaries[i] = &models.QuestionBankSummary{
			ID:            bank.ID,
			Title:         bank.Title,
			CreatedBy:     bank.CreatedBy,
			CreatorName:   bank.CreatorName,
			QuestionCount: byBank[bank.ID],
			CreatedAt:     bank.CreatedAt,
		}
	}
	return summaries, nil
}

func (b *QuestionBankPostgreSQL) AddQuestion(ctx context.Context, tx *gorm.DB, question *models.BankQuestion) error {
	db := b.getDB(tx)
	if err := db.WithContext(ctx).Create(question).Error; err != nil {
		return fmt.Errorf("failed to add bank question: %w", err)
	}
	return db.WithContext(ctx).Model(&models.QuestionBank{}).
		Where("id = ?", question.BankID).
		Update("updated_at", question.CreatedAt).Error
}

func (b *QuestionBankPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return b.db
}
