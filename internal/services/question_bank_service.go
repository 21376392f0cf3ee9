package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/quiz-generation-service/internal/export"
	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/SAP-F-2025/quiz-generation-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-generation-service/internal/validator"
	"gorm.io/gorm"
)

type questionBankService struct {
	repo      repositories.Repository
	logger    *ServiceLogger
	validator *validator.Validator
}

func NewQuestionBankService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) QuestionBankService {
	return &questionBankService{
		repo:      repo,
		logger:    NewServiceLogger(logger, "question_bank"),
		validator: validator,
	}
}

func (s *questionBankService) CreateBank(ctx context.Context, req *CreateQuestionBankRequest, principal *models.Principal) (*models.QuestionBank, error) {
	op := s.logger.WithOperation(ctx, "create_question_bank", principal.ID)

	req.Title = strings.TrimSpace(req.Title)
	if err := s.validator.Validate(req); err != nil {
		op.LogResult(0, "question_bank", err)
		return nil, err
	}

	bank := &models.QuestionBank{
		Title:       req.Title,
		CreatedBy:   principal.ID,
		CreatorName: principal.Name,
	}
	err := s.repo.WithTransaction(ctx, func(tx *gorm.DB) error {
		exists, err := s.repo.QuestionBank().ExistsByTitle(ctx, tx, bank.Title)
		if err != nil {
			return fmt.Errorf("failed to check bank title: %w", err)
		}
		if exists {
			return ErrBankTitleTaken
		}
		return s.repo.QuestionBank().Create(ctx, tx, bank)
	})
	if err != nil {
		op.LogResult(0, "question_bank", err)
		return nil, err
	}

	op.LogResult(bank.ID, "question_bank", nil)
	return bank, nil
}

func (s *questionBankService) GetBank(ctx context.Context, title string) (*models.QuestionBank, error) {
	bank, err := s.repo.QuestionBank().GetByTitle(ctx, nil, strings.TrimSpace(title))
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrBankNotFound
		}
		return nil, fmt.Errorf("failed to load question bank: %w", err)
	}
	return bank, nil
}

func (s *questionBankService) ListBanks(ctx context.Context) ([]*models.QuestionBankSummary, error) {
	banks, err := s.repo.QuestionBank().List(ctx, nil)
	if err != nil {
		return nil, err
	}
	if banks == nil {
		banks = []*models.QuestionBankSummary{}
	}
	return banks, nil
}

func (s *questionBankService) AddQuestion(ctx context.Context, req *AddBankQuestionRequest, principal *models.Principal) (*models.QuestionBank, error) {
	op := s.logger.WithOperation(ctx, "add_bank_question", principal.ID)

	req.BankTitle = strings.TrimSpace(req.BankTitle)
	req.Question = strings.TrimSpace(req.Question)
	req.CorrectAnswer = strings.TrimSpace(req.CorrectAnswer)
	if err := s.validator.Validate(req); err != nil {
		op.LogResult(0, "question_bank", err)
		return nil, err
	}

	bank, err := s.GetBank(ctx, req.BankTitle)
	if err != nil {
		op.LogResult(0, "question_bank", err)
		return nil, err
	}
	if !principal.IsAdmin() && bank.CreatedBy != principal.ID {
		op.LogResult(bank.ID, "question_bank", ErrBankAccessDenied)
		return nil, ErrBankAccessDenied
	}

	question := &models.BankQuestion{
		BankID:        bank.ID,
		Question:      req.Question,
		Type:          req.Type,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
	}
	if err := s.repo.QuestionBank().AddQuestion(ctx, nil, question); err != nil {
		op.LogResult(bank.ID, "question_bank", err)
		return nil, err
	}

	op.LogResult(bank.ID, "question_bank", nil)
	return s.GetBank(ctx, bank.Title)
}

func (s *questionBankService) ExportLaTeX(ctx context.Context, title string) (*ExportFile, error) {
	bank, err := s.GetBank(ctx, title)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		FileName:    export.BankLaTeXFilename(bank),
		ContentType: "application/x-tex",
		Data:        export.BankLaTeX(bank),
	}, nil
}
