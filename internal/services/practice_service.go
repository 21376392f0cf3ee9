package services

import (
	"context"
	"log/slog"

	"github.com/SAP-F-2025/quiz-generation-service/internal/grading"
	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/SAP-F-2025/quiz-generation-service/internal/validator"
	"github.com/SAP-F-2025/quiz-generation-service/pkg/monitoring"
)

type practiceService struct {
	generator QuestionGenerator
	logger    *ServiceLogger
	validator *validator.Validator
}

func NewPracticeService(generator QuestionGenerator, logger *slog.Logger, validator *validator.Validator) PracticeService {
	return &practiceService{
		generator: generator,
		logger:    NewServiceLogger(logger, "practice"),
		validator: validator,
	}
}

// GeneratePractice runs the same pipeline as quiz creation but returns the
// quiz, answers included, without storing it.
func (s *practiceService) GeneratePractice(ctx context.Context, req *GenerateQuizRequest) (*GenerateQuizResponse, error) {
	op := s.logger.WithOperation(ctx, "generate_practice", "")

	if err := validateGenerateRequest(s.validator, req); err != nil {
		op.LogResult(0, "practice_quiz", err)
		return nil, err
	}

	result, err := s.generator.Generate(ctx, req.generationRequest())
	if err != nil {
		op.LogResult(0, "practice_quiz", err)
		return nil, err
	}
	monitoring.QuizzesGenerated.Inc()

	quiz := &models.Quiz{
		Title:        quizTitle(req.Title, req.FileName),
		Difficulty:   req.Difficulty,
		SourceFile:   req.FileName,
		MCQQuestions: result.MCQ,
		TFQuestions:  result.TF,
		WHQuestions:  result.WH,
	}

	op.LogResult(0, "practice_quiz", nil)
	return &GenerateQuizResponse{
		Quiz:     quiz,
		Report:   result.Report,
		Warnings: warnings(result.Report.Warnings),
	}, nil
}

// CheckPractice grades a client-held quiz. Nothing is recorded.
func (s *practiceService) CheckPractice(_ context.Context, req *CheckPracticeRequest) (*grading.Review, error) {
	quiz := req.Quiz
	quiz.EnsureArrays()
	return grading.BuildReview(&quiz, req.Answers), nil
}
