package services

import (
	"log/slog"

	"github.com/SAP-F-2025/quiz-generation-service/internal/cache"
	"github.com/SAP-F-2025/quiz-generation-service/internal/events"
	"github.com/SAP-F-2025/quiz-generation-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-generation-service/internal/storage"
	"github.com/SAP-F-2025/quiz-generation-service/internal/validator"
)

// Dependencies are the collaborators shared by all services.
type Dependencies struct {
	Repo      repositories.Repository
	Generator QuestionGenerator
	Extractor TextExtractor
	Stager    storage.Stager
	Quizzes   *cache.QuizCache
	Publisher events.EventPublisher
	Tokens    TokenConfig
	Logger    *slog.Logger
	Validator *validator.Validator
}

type serviceManager struct {
	quiz     QuizService
	attempt  AttemptService
	practice PracticeService
	auth     AuthService
	bank     QuestionBankService
}

func NewServiceManager(deps Dependencies) ServiceManager {
	return &serviceManager{
		quiz: NewQuizService(deps.Repo, deps.Generator, deps.Extractor, deps.Stager,
			deps.Quizzes, deps.Publisher, deps.Logger, deps.Validator),
		attempt:  NewAttemptService(deps.Repo, deps.Quizzes, deps.Publisher, deps.Logger, deps.Validator),
		practice: NewPracticeService(deps.Generator, deps.Logger, deps.Validator),
		auth:     NewAuthService(deps.Repo, deps.Tokens, deps.Logger, deps.Validator),
		bank:     NewQuestionBankService(deps.Repo, deps.Logger, deps.Validator),
	}
}

func (m *serviceManager) Quiz() QuizService         { return m.quiz }
func (m *serviceManager) Attempt() AttemptService   { return m.attempt }
func (m *serviceManager) Practice() PracticeService { return m.practice }
func (m *serviceManager) Auth() AuthService         { return m.auth }

func (m *serviceManager) QuestionBank() QuestionBankService { return m.bank }
