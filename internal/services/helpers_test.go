package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SAP-F-2025/quiz-generation-service/internal/cache"
	"github.com/SAP-F-2025/quiz-generation-service/internal/events"
	"github.com/SAP-F-2025/quiz-generation-service/internal/extractor"
	"github.com/SAP-F-2025/quiz-generation-service/internal/generation"
	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/SAP-F-2025/quiz-generation-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-generation-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/quiz-generation-service/internal/storage"
	"github.com/SAP-F-2025/quiz-generation-service/internal/validator"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MockGenerator is a mock implementation of QuestionGenerator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req generation.Request) (*generation.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*generation.Result), args.Error(1)
}

// MockExtractor is a mock implementation of TextExtractor
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) ExtractFile(ctx context.Context, file *storage.StagedFile) (*extractor.Document, error) {
	args := m.Called(ctx, file)
	_ = file.Remove()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*extractor.Document), args.Error(1)
}

type testEnv struct {
	repo      repositories.Repository
	generator *MockGenerator
	extractor *MockExtractor
	publisher *events.MockEventPublisher
	quiz      QuizService
	attempt   AttemptService
	practice  PracticeService
	auth      AuthService
	bank      QuestionBankService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Quiz{}, &models.Attempt{}, &models.QuestionBank{}, &models.BankQuestion{}))

	stager, err := storage.NewLocalStager(t.TempDir())
	require.NoError(t, err)

	env := &testEnv{
		repo:      postgres.NewRepository(db),
		generator: new(MockGenerator),
		extractor: new(MockExtractor),
		publisher: events.NewMockEventPublisher(logger),
	}

	manager := NewServiceManager(Dependencies{
		Repo:      env.repo,
		Generator: env.generator,
		Extractor: env.extractor,
		Stager:    stager,
		Quizzes:   cache.NewQuizCache(cache.NewNopCache(), time.Minute, logger),
		Publisher: env.publisher,
		Tokens:    TokenConfig{Secret: "test-secret", Expiry: time.Hour},
		Logger:    logger,
		Validator: validator.New(),
	})
	env.quiz = manager.Quiz()
	env.attempt = manager.Attempt()
	env.practice = manager.Practice()
	env.auth = manager.Auth()
	env.bank = manager.QuestionBank()
	return env
}

var (
	professor = &models.Principal{ID: "prof-1", Name: "Dr. Ada", Role: models.RoleProfessor}
	other     = &models.Principal{ID: "prof-2", Name: "Dr. Bob", Role: models.RoleProfessor}
	admin     = &models.Principal{ID: "admin-1", Name: "Root", Role: models.RoleAdmin}
	student   = &models.Principal{ID: "stu-1", Name: "Lin", Role: models.RoleStudent}
)

func sampleResult() *generation.Result {
	return &generation.Result{
		MCQ: []models.MCQQuestion{{
			Question: "What do plants absorb?",
			Options: []models.MCQOption{
				{Text: "CO2", IsCorrect: true}, {Text: "O2"}, {Text: "N2"}, {Text: "He"},
			},
			Explanation: "Carbon dioxide.",
		}},
		TF: []models.TFQuestion{{Question: "Plants need light.", Answer: true}},
		WH: []models.WHQuestion{{Question: "Where does photosynthesis happen?", Answer: "Chloroplasts"}},
	}
}

func (env *testEnv) createQuiz(t *testing.T, owner *models.Principal) *models.Quiz {
	t.Helper()
	env.generator.On("Generate", mock.Anything, mock.Anything).Return(sampleResult(), nil).Once()
	resp, err := env.quiz.Generate(context.Background(), &GenerateQuizRequest{
		Text: "Plants use light to make sugar.", Title: "Plants", MCQCount: 1, TFCount: 1, WHCount: 1,
	}, owner)
	require.NoError(t, err)
	return resp.Quiz
}
