package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/SAP-F-2025/quiz-generation-service/internal/cache"
	"github.com/SAP-F-2025/quiz-generation-service/internal/events"
	"github.com/SAP-F-2025/quiz-generation-service/internal/export"
	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/SAP-F-2025/quiz-generation-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-generation-service/internal/storage"
	"github.com/SAP-F-2025/quiz-generation-service/internal/validator"
	"github.com/SAP-F-2025/quiz-generation-service/pkg/monitoring"
)

type quizService struct {
	repo      repositories.Repository
	generator QuestionGenerator
	extractor TextExtractor
	stager    storage.Stager
	quizzes   *cache.QuizCache
	publisher events.EventPublisher
	logger    *ServiceLogger
	validator *validator.Validator
}

func NewQuizService(
	repo repositories.Repository,
	generator QuestionGenerator,
	extractor TextExtractor,
	stager storage.Stager,
	quizzes *cache.QuizCache,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) QuizService {
	return &quizService{
		repo:      repo,
		generator: generator,
		extractor: extractor,
		stager:    stager,
		quizzes:   quizzes,
		publisher: publisher,
		logger:    NewServiceLogger(logger, "quiz"),
		validator: validator,
	}
}

// ===== UPLOAD & GENERATION =====

func (s *quizService) UploadPDF(ctx context.Context, fileName string, r io.Reader, size int64) (*UploadResponse, error) {
	staged, err := s.stager.Stage(ctx, fileName, r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}

	doc, err := s.extractor.ExtractFile(ctx, staged)
	if err != nil {
		return nil, err
	}

	return &UploadResponse{
		Success:   true,
		Text:      doc.Text,
		FileName:  fileName,
		PageCount: doc.PageCount,
	}, nil
}

func (s *quizService) Generate(ctx context.Context, req *GenerateQuizRequest, principal *models.Principal) (*GenerateQuizResponse, error) {
	op := s.logger.WithOperation(ctx, "generate_quiz", principal.ID)

	if err := validateGenerateRequest(s.validator, req); err != nil {
		op.LogResult(0, "quiz", err)
		return nil, err
	}

	result, err := s.generator.Generate(ctx, req.generationRequest())
	if err != nil {
		op.LogResult(0, "quiz", err)
		return nil, err
	}

	quiz := &models.Quiz{
		Title:        quizTitle(req.Title, req.FileName),
		Difficulty:   req.Difficulty,
		SourceFile:   req.FileName,
		MCQQuestions: result.MCQ,
		TFQuestions:  result.TF,
		WHQuestions:  result.WH,
		CreatedBy:    principal.ID,
		CreatorName:  principal.Name,
	}
	if err := s.repo.Quiz().Create(ctx, nil, quiz); err != nil {
		op.LogResult(0, "quiz", err)
		return nil, err
	}

	monitoring.QuizzesGenerated.Inc()
	s.quizzes.Put(ctx, quiz)
	s.publish(ctx, events.NewQuizGeneratedEvent(events.QuizGeneratedEvent{
		QuizID:     quiz.ID,
		Title:      quiz.Title,
		CreatorID:  quiz.CreatedBy,
		Difficulty: string(quiz.Difficulty),
		MCQCount:   len(quiz.MCQQuestions),
		TFCount:    len(quiz.TFQuestions),
		WHCount:    len(quiz.WHQuestions),
		Degraded:   result.Report.Degraded(),
	}))

	op.LogResult(quiz.ID, "quiz", nil)
	return &GenerateQuizResponse{
		Quiz:     quiz,
		Report:   result.Report,
		Warnings: warnings(result.Report.Warnings),
	}, nil
}

// ===== CREATOR VIEWS =====

func (s *quizService) ListMine(ctx context.Context, principal *models.Principal) ([]*models.QuizSummary, error) {
	summaries, err := s.repo.Quiz().ListByCreator(ctx, nil, principal.ID)
	if err != nil {
		return nil, err
	}
	for _, summary := range summaries {
		summary.AvgScore = roundScore(summary.AvgScore)
	}
	return summaries, nil
}

func (s *quizService) GetForCreator(ctx context.Context, id uint, principal *models.Principal) (*models.Quiz, error) {
	quiz, err := s.getQuiz(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(quiz, principal) {
		return nil, ErrQuizAccessDenied
	}
	return quiz, nil
}

// Delete removes the quiz and all of its attempts in one transaction.
func (s *quizService) Delete(ctx context.Context, id uint, principal *models.Principal) error {
	op := s.logger.WithOperation(ctx, "delete_quiz", principal.ID)

	quiz, err := s.GetForCreator(ctx, id, principal)
	if err != nil {
		op.LogResult(id, "quiz", err)
		return err
	}

	attemptsDeleted, err := s.repo.Quiz().Delete(ctx, nil, quiz.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			err = ErrQuizNotFound
		}
		op.LogResult(id, "quiz", err)
		return err
	}

	s.quizzes.Invalidate(ctx, quiz.ID)
	s.publish(ctx, events.NewQuizDeletedEvent(quiz.ID, principal.ID, attemptsDeleted))

	op.LogResult(id, "quiz", nil)
	return nil
}

// ===== STUDENT VIEWS =====

func (s *quizService) ListAvailable(ctx context.Context, principal *models.Principal) ([]*AvailableQuiz, error) {
	quizzes, err := s.repo.Quiz().List(ctx, nil, repositories.QuizFilters{})
	if err != nil {
		return nil, err
	}

	attempted, err := s.repo.Attempt().AttemptedQuizIDs(ctx, nil, principal.ID)
	if err != nil {
		return nil, err
	}

	available := make([]*AvailableQuiz, len(quizzes))
	for i, quiz := range quizzes {
		available[i] = &AvailableQuiz{
			ID:            quiz.ID,
			Title:         quiz.Title,
			Difficulty:    quiz.Difficulty,
			CreatorName:   quiz.CreatorName,
			QuestionCount: quiz.QuestionCount(),
			MCQCount:      len(quiz.MCQQuestions),
			TFCount:       len(quiz.TFQuestions),
			WHCount:       len(quiz.WHQuestions),
			CreatedAt:     quiz.CreatedAt,
			Attempted:     attempted[quiz.ID],
		}
	}
	return available, nil
}

func (s *quizService) GetForStudent(ctx context.Context, id uint) (*StudentQuiz, error) {
	quiz, err := s.getQuiz(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStudentQuiz(quiz), nil
}

// ===== EXPORTS =====

func (s *quizService) ExportLaTeX(ctx context.Context, id uint, principal *models.Principal) (*ExportFile, error) {
	quiz, err := s.GetForCreator(ctx, id, principal)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		FileName:    export.LaTeXFilename(quiz),
		ContentType: "application/x-tex",
		Data:        export.LaTeX(quiz),
	}, nil
}

func (s *quizService) ExportResults(ctx context.Context, id uint, principal *models.Principal) (*ExportFile, error) {
	quiz, err := s.GetForCreator(ctx, id, principal)
	if err != nil {
		return nil, err
	}

	attempts, err := s.repo.Attempt().ListByQuiz(ctx, nil, quiz.ID)
	if err != nil {
		return nil, err
	}

	data, err := export.ResultsWorkbook(quiz, attempts)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		FileName:    export.ResultsFilename(quiz),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        data,
	}, nil
}

// ===== HELPERS =====

// getQuiz reads through the quiz cache.
func (s *quizService) getQuiz(ctx context.Context, id uint) (*models.Quiz, error) {
	if quiz := s.quizzes.Get(ctx, id); quiz != nil {
		return quiz, nil
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	s.quizzes.Put(ctx, quiz)
	return quiz, nil
}

func (s *quizService) publish(ctx context.Context, event *events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Logger().WarnContext(ctx, "Failed to publish event", "event_type", event.Type, "error", err)
	}
}

func validateGenerateRequest(v *validator.Validator, req *GenerateQuizRequest) error {
	req.Text = strings.TrimSpace(req.Text)
	req.Title = strings.TrimSpace(req.Title)
	if req.Difficulty == "" {
		req.Difficulty = models.DifficultyMedium
	}
	if err := v.Validate(req); err != nil {
		return err
	}
	if req.MCQCount+req.TFCount+req.WHCount == 0 {
		return ErrNoQuestionsRequested
	}
	return nil
}

// quizTitle prefers the supplied title, then the upload's base name.
func quizTitle(title, fileName string) string {
	if title = strings.TrimSpace(title); title != "" {
		return title
	}
	base := filepath.Base(strings.TrimSpace(fileName))
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".pdf") {
		base = strings.TrimSuffix(base, ext)
	}
	if base = strings.TrimSpace(base); base != "" && base != "." {
		return base
	}
	return models.DefaultQuizTitle
}

func canManage(quiz *models.Quiz, principal *models.Principal) bool {
	return principal.IsAdmin() || quiz.CreatedBy == principal.ID
}

func toStudentQuiz(quiz *models.Quiz) *StudentQuiz {
	sq := &StudentQuiz{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Difficulty:  quiz.Difficulty,
		CreatorName: quiz.CreatorName,
		MCQ:         make([]StudentMCQ, len(quiz.MCQQuestions)),
		TF:          make([]StudentQuestion, len(quiz.TFQuestions)),
		WH:          make([]StudentQuestion, len(quiz.WHQuestions)),
	}
	for i, q := range quiz.MCQQuestions {
		options := make([]string, len(q.Options))
		for j, opt := range q.Options {
			options[j] = opt.Text
		}
		sq.MCQ[i] = StudentMCQ{Question: q.Question, Options: options}
	}
	for i, q := range quiz.TFQuestions {
		sq.TF[i] = StudentQuestion{Question: q.Question}
	}
	for i, q := range quiz.WHQuestions {
		sq.WH[i] = StudentQuestion{Question: q.Question}
	}
	return sq
}

func warnings(w []string) []string {
	if w == nil {
		return []string{}
	}
	return w
}
