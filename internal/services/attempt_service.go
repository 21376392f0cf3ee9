package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/SAP-F-2025/quiz-generation-service/internal/cache"
	apperrors "github.com/SAP-F-2025/quiz-generation-service/internal/errors"
	"github.com/SAP-F-2025/quiz-generation-service/internal/events"
	"github.com/SAP-F-2025/quiz-generation-service/internal/grading"
	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/SAP-F-2025/quiz-generation-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-generation-service/internal/validator"
	"github.com/SAP-F-2025/quiz-generation-service/pkg/monitoring"
	"gorm.io/datatypes"
)

type attemptService struct {
	repo      repositories.Repository
	quizzes   *cache.QuizCache
	publisher events.EventPublisher
	logger    *ServiceLogger
	validator *validator.Validator
}

func NewAttemptService(
	repo repositories.Repository,
	quizzes *cache.QuizCache,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) AttemptService {
	return &attemptService{
		repo:      repo,
		quizzes:   quizzes,
		publisher: publisher,
		logger:    NewServiceLogger(logger, "attempt"),
		validator: validator,
	}
}

// Submit grades the answers against the stored quiz and records one attempt.
// Every call creates a new attempt.
func (s *attemptService) Submit(ctx context.Context, req *SubmitQuizRequest, principal *models.Principal) (*SubmitQuizResponse, error) {
	op := s.logger.WithOperation(ctx, "submit_quiz", principal.ID)

	if err := s.validator.Validate(req); err != nil {
		op.LogResult(req.QuizID, "attempt", err)
		return nil, err
	}

	quiz, err := s.getQuiz(ctx, req.QuizID)
	if err != nil {
		op.LogResult(req.QuizID, "attempt", err)
		return nil, err
	}

	answers := req.Answers.Normalized()
	review := grading.BuildReview(quiz, answers)

	attempt := &models.Attempt{
		QuizID:         quiz.ID,
		StudentID:      principal.ID,
		StudentName:    principal.Name,
		Answers:        datatypes.NewJSONType(answers),
		Score:          review.Score,
		TotalQuestions: review.Total,
		Percentage:     review.Percentage,
		CompletedAt:    time.Now().UTC(),
	}
	if err := s.repo.Attempt().Create(ctx, nil, attempt); err != nil {
		err = apperrors.NewSubmissionError(err)
		op.LogResult(quiz.ID, "attempt", err)
		return nil, err
	}

	monitoring.AttemptsGraded.Inc()
	if err := s.publisher.Publish(ctx, events.NewAttemptSubmittedEvent(events.AttemptSubmittedEvent{
		AttemptID:      attempt.ID,
		QuizID:         attempt.QuizID,
		StudentID:      attempt.StudentID,
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		Percentage:     attempt.Percentage,
		CompletedAt:    attempt.CompletedAt,
	})); err != nil {
		s.logger.Logger().WarnContext(ctx, "Failed to publish event", "event_type", events.EventAttemptSubmitted, "error", err)
	}

	op.LogResult(attempt.ID, "attempt", nil)
	return &SubmitQuizResponse{Attempt: attempt, Review: review}, nil
}

func (s *attemptService) ListMine(ctx context.Context, principal *models.Principal) ([]*AttemptSummary, error) {
	attempts, err := s.repo.Attempt().ListByStudent(ctx, nil, principal.ID, repositories.AttemptFilters{})
	if err != nil {
		return nil, err
	}

	summaries := make([]*AttemptSummary, len(attempts))
	for i, a := range attempts {
		summaries[i] = &AttemptSummary{
			ID:             a.ID,
			QuizID:         a.QuizID,
			Score:          a.Score,
			TotalQuestions: a.TotalQuestions,
			Percentage:     a.Percentage,
			CompletedAt:    a.CompletedAt,
		}
		if a.Quiz != nil {
			summaries[i].QuizTitle = a.Quiz.Title
		}
	}
	return summaries, nil
}

// GetReview rebuilds the reveal from the stored answers. The frozen score on
// the attempt is reported as recorded.
func (s *attemptService) GetReview(ctx context.Context, attemptID uint, principal *models.Principal) (*AttemptReview, error) {
	attempt, err := s.repo.Attempt().GetByID(ctx, nil, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	if attempt.Quiz == nil {
		return nil, ErrQuizNotFound
	}

	if attempt.StudentID != principal.ID && !canManage(attempt.Quiz, principal) {
		return nil, ErrAttemptAccessDenied
	}

	review := grading.BuildReview(attempt.Quiz, attempt.Answers.Data())
	review.Result = grading.Result{
		Score:      attempt.Score,
		Total:      attempt.TotalQuestions,
		Percentage: attempt.Percentage,
	}
	review.Message = grading.ScoreMessage(review.Result)

	return &AttemptReview{Attempt: attempt, Review: review}, nil
}

func (s *attemptService) Stats(ctx context.Context, principal *models.Principal) (*models.StudentStats, error) {
	stats, err := s.repo.Attempt().GetStudentStats(ctx, nil, principal.ID)
	if err != nil {
		return nil, err
	}
	stats.AvgScore = roundScore(stats.AvgScore)
	return stats, nil
}

func (s *attemptService) getQuiz(ctx context.Context, id uint) (*models.Quiz, error) {
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

// roundScore keeps one decimal place of an averaged percentage.
func roundScore(v float64) float64 {
	return math.Round(v*10) / 10
}
