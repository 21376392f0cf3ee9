package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/SAP-F-2025/quiz-generation-service/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepository(t *testing.T) repositories.Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Quiz{}, &models.Attempt{}, &models.QuestionBank{}, &models.BankQuestion{}))
	return NewRepository(db)
}

func newQuiz(creator string) *models.Quiz {
	return &models.Quiz{
		Title:      "Photosynthesis",
		Difficulty: models.DifficultyEasy,
		MCQQuestions: []models.MCQQuestion{{
			Question: "What do plants absorb?",
			Options:  []models.MCQOption{{Text: "CO2", IsCorrect: true}, {Text: "O2"}},
		}},
		TFQuestions: []models.TFQuestion{{Question: "Plants need light.", Answer: true}},
		CreatedBy:   creator,
		CreatorName: "Dr. " + creator,
	}
}

func newAttempt(quizID uint, student string, percentage int, completed time.Time) *models.Attempt {
	return &models.Attempt{
		QuizID:         quizID,
		StudentID:      student,
		StudentName:    student,
		Answers:        datatypes.NewJSONType(models.AnswerSheet{MCQ: map[int]int{0: 0}}),
		Score:          percentage / 50,
		TotalQuestions: 2,
		Percentage:     percentage,
		CompletedAt:    completed,
	}
}

func TestQuizRepository_CreateAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	quiz := newQuiz("prof-1")
	quiz.WHQuestions = nil
	require.NoError(t, repo.Quiz().Create(ctx, nil, quiz))
	require.NotZero(t, quiz.ID)

	got, err := repo.Quiz().GetByID(ctx, nil, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis", got.Title)
	require.Len(t, got.MCQQuestions, 1)
	assert.True(t, got.MCQQuestions[0].Options[0].IsCorrect)
	assert.NotNil(t, got.WHQuestions)
	assert.Empty(t, got.WHQuestions)

	_, err = repo.Quiz().GetByID(ctx, nil, 999)
	assert.True(t, repositories.IsNotFoundError(err))
}

func TestQuizRepository_CreateDefaults(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	quiz := &models.Quiz{CreatedBy: "prof-1"}
	require.NoError(t, repo.Quiz().Create(ctx, nil, quiz))

	got, err := repo.Quiz().GetByID(ctx, nil, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultQuizTitle, got.Title)
	assert.Equal(t, models.DifficultyMedium, got.Difficulty)
	assert.Equal(t, 0, got.QuestionCount())
}

func TestQuizRepository_ListByCreatorWithStats(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := newQuiz("prof-1")
	second := newQuiz("prof-1")
	other := newQuiz("prof-2")
	for _, q := range []*models.Quiz{first, second, other} {
		require.NoError(t, repo.Quiz().Create(ctx, nil, q))
	}

	now := time.Now()
	require.NoError(t, repo.Attempt().Create(ctx, nil, newAttempt(first.ID, "stu-1", 100, now)))
	require.NoError(t, repo.Attempt().Create(ctx, nil, newAttempt(first.ID, "stu-2", 50, now)))

	summaries, err := repo.Quiz().ListByCreator(ctx, nil, "prof-1")
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byID := map[uint]*models.QuizSummary{}
	for _, s := range summaries {
		byID[s.ID] = s
	}
	assert.Equal(t, int64(2), byID[first.ID].AttemptCount)
	assert.InDelta(t, 75.0, byID[first.ID].AvgScore, 0.001)
	assert.Equal(t, int64(0), byID[second.ID].AttemptCount)
	assert.Zero(t, byID[second.ID].AvgScore)
}

func TestQuizRepository_DeleteCascades(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	doomed := newQuiz("prof-1")
	kept := newQuiz("prof-1")
	require.NoError(t, repo.Quiz().Create(ctx, nil, doomed))
	require.NoError(t, repo.Quiz().Create(ctx, nil, kept))

	now := time.Now()
	require.NoError(t, repo.Attempt().Create(ctx, nil, newAttempt(doomed.ID, "stu-1", 100, now)))
	require.NoError(t, repo.Attempt().Create(ctx, nil, newAttempt(doomed.ID, "stu-2", 0, now)))
	require.NoError(t, repo.Attempt().Create(ctx, nil, newAttempt(kept.ID, "stu-1", 50, now)))

	deleted, err := repo.Quiz().Delete(ctx, nil, doomed.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = repo.Quiz().GetByID(ctx, nil, doomed.ID)
	assert.True(t, repositories.IsNotFoundError(err))

	count, err := repo.Attempt().CountByQuiz(ctx, nil, doomed.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = repo.Attempt().CountByQuiz(ctx, nil, kept.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = repo.Quiz().Delete(ctx, nil, doomed.ID)
	assert.True(t, repositories.IsNotFoundError(err))
}

func TestAttemptRepository_StudentQueries(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	q1 := newQuiz("prof-1")
	q2 := newQuiz("prof-1")
	require.NoError(t, repo.Quiz().Create(ctx, nil, q1))
	require.NoError(t, repo.Quiz().Create(ctx, nil, q2))

	base := time.Now().Add(-time.Hour)
	older := newAttempt(q1.ID, "stu-1", 50, base)
	newer := newAttempt(q2.ID, "stu-1", 100, base.Add(time.Minute))
	require.NoError(t, repo.Attempt().Create(ctx, nil, older))
	require.NoError(t, repo.Attempt().Create(ctx, nil, newer))
	require.NoError(t, repo.Attempt().Create(ctx, nil, newAttempt(q1.ID, "stu-2", 0, base)))

	attempts, err := repo.Attempt().ListByStudent(ctx, nil, "stu-1", repositories.AttemptFilters{})
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, newer.ID, attempts[0].ID)
	require.NotNil(t, attempts[0].Quiz)
	assert.Equal(t, "Photosynthesis", attempts[0].Quiz.Title)

	got, err := repo.Attempt().GetByID(ctx, nil, older.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Answers.Data().MCQ[0])

	attempted, err := repo.Attempt().AttemptedQuizIDs(ctx, nil, "stu-1")
	require.NoError(t, err)
	assert.Equal(t, map[uint]bool{q1.ID: true, q2.ID: true}, attempted)

	stats, err := repo.Attempt().GetStudentStats(ctx, nil, "stu-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalQuizzes)
	assert.InDelta(t, 75.0, stats.AvgScore, 0.001)
	assert.Equal(t, 100, stats.BestScore)

	empty, err := repo.Attempt().GetStudentStats(ctx, nil, "nobody")
	require.NoError(t, err)
	assert.Equal(t, models.StudentStats{}, *empty)
}

func TestUserRepository(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	user := &models.User{ID: "u-1", FullName: "Ada", Email: " Ada@Example.com ", PasswordHash: "x", Role: models.RoleStudent}
	require.NoError(t, repo.User().Create(ctx, nil, user))

	exists, err := repo.User().ExistsByEmail(ctx, nil, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := repo.User().GetByEmail(ctx, nil, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)

	require.NoError(t, repo.User().UpdateLastLogin(ctx, nil, "u-1", time.Now()))
	got, err = repo.User().GetByID(ctx, nil, "u-1")
	require.NoError(t, err)
	assert.NotNil(t, got.LastLoginAt)

	require.NoError(t, repo.Ping(ctx))
}

func TestQuestionBankRepository(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	bank := &models.QuestionBank{Title: "Cell biology", CreatedBy: "prof-1", CreatorName: "Dr. Ada"}
	require.NoError(t, repo.QuestionBank().Create(ctx, nil, bank))
	require.NotZero(t, bank.ID)
	require.NoError(t, repo.QuestionBank().Create(ctx, nil, &models.QuestionBank{Title: "Algebra", CreatedBy: "prof-2"}))

	exists, err := repo.QuestionBank().ExistsByTitle(ctx, nil, "Cell biology")
	require.NoError(t, err)
	assert.True(t, exists)

	empty, err := repo.QuestionBank().GetByTitle(ctx, nil, "Cell biology")
	require.NoError(t, err)
	assert.NotNil(t, empty.Questions)
	assert.Empty(t, empty.Questions)

	require.NoError(t, repo.QuestionBank().AddQuestion(ctx, nil, &models.BankQuestion{
		BankID:        bank.ID,
		Question:      "Which organelle makes ATP?",
		Type:          models.BankMCQ,
		Options:       []models.BankOption{{Text: "Mitochondria", IsCorrect: true}, {Text: "Ribosome"}},
		CorrectAnswer: "Mitochondria",
	}))
	require.NoError(t, repo.QuestionBank().AddQuestion(ctx, nil, &models.BankQuestion{
		BankID:        bank.ID,
		Question:      "The cell membrane is made of a ____ bilayer.",
		Type:          models.BankFillBlank,
		Options:       []models.BankOption{{Text: "ignored"}},
		CorrectAnswer: "phospholipid",
	}))

	got, err := repo.QuestionBank().GetByTitle(ctx, nil, "Cell biology")
	require.NoError(t, err)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, "Which organelle makes ATP?", got.Questions[0].Question)
	assert.Len(t, got.Questions[0].Options, 2)
	assert.Empty(t, got.Questions[1].Options)

	summaries, err := repo.QuestionBank().List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Algebra", summaries[0].Title)
	assert.Equal(t, int64(0), summaries[0].QuestionCount)
	assert.Equal(t, "Cell biology", summaries[1].Title)
	assert.Equal(t, int64(2), summaries[1].QuestionCount)

	_, err = repo.QuestionBank().GetByTitle(ctx, nil, "Missing")
	assert.True(t, repositories.IsNotFoundError(err))
}
