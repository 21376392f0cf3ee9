package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/SAP-F-2025/quiz-generation-service/internal/errors"
	"github.com/SAP-F-2025/quiz-generation-service/internal/events"
	"github.com/SAP-F-2025/quiz-generation-service/internal/extractor"
	"github.com/SAP-F-2025/quiz-generation-service/internal/generation"
	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestQuizService_Generate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result := sampleResult()
	result.Report = generation.Report{Warnings: []string{"1 malformed multiple-choice questions were discarded"}}
	env.generator.On("Generate", mock.Anything, generation.Request{
		Text: "Plants use light.", Difficulty: models.DifficultyHard, MCQCount: 2, TFCount: 1,
	}).Return(result, nil).Once()

	resp, err := env.quiz.Generate(ctx, &GenerateQuizRequest{
		Text: "  Plants use light.  ", FileName: "biology-101.pdf", Difficulty: models.DifficultyHard, MCQCount: 2, TFCount: 1,
	}, professor)
	require.NoError(t, err)

	assert.NotZero(t, resp.Quiz.ID)
	assert.Equal(t, "biology-101", resp.Quiz.Title)
	assert.Equal(t, "prof-1", resp.Quiz.CreatedBy)
	assert.Equal(t, "Dr. Ada", resp.Quiz.CreatorName)
	assert.Len(t, resp.Warnings, 1)

	stored, err := env.quiz.GetForCreator(ctx, resp.Quiz.ID, professor)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.QuestionCount())

	published := env.publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventQuizGenerated, published[0].Type)
	env.generator.AssertExpectations(t)
}

func TestQuizService_GenerateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *GenerateQuizRequest
	}{
		{"no questions", &GenerateQuizRequest{Text: "Some text here"}},
		{"empty text", &GenerateQuizRequest{Text: "   ", MCQCount: 1}},
		{"count too high", &GenerateQuizRequest{Text: "Some text here", MCQCount: 16}},
		{"negative count", &GenerateQuizRequest{Text: "Some text here", TFCount: -1}},
		{"bad difficulty", &GenerateQuizRequest{Text: "Some text here", MCQCount: 1, Difficulty: "extreme"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.quiz.Generate(ctx, tt.req, professor)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}
	env.generator.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestQuizService_GenerateFailurePersistsNothing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.generator.On("Generate", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewGenerationError("mcq", errors.New("upstream 503"))).Once()

	_, err := env.quiz.Generate(ctx, &GenerateQuizRequest{Text: "Plants use light.", MCQCount: 1}, professor)
	require.Error(t, err)
	assert.True(t, IsGeneration(err))

	mine, err := env.quiz.ListMine(ctx, professor)
	require.NoError(t, err)
	assert.Empty(t, mine)
	assert.Empty(t, env.publisher.GetPublishedEvents())
}

func TestQuizTitle(t *testing.T) {
	assert.Equal(t, "Given", quizTitle(" Given ", "file.pdf"))
	assert.Equal(t, "notes", quizTitle("", "notes.PDF"))
	assert.Equal(t, "slides.v2", quizTitle("", "/tmp/slides.v2.pdf"))
	assert.Equal(t, models.DefaultQuizTitle, quizTitle("", ""))
	assert.Equal(t, models.DefaultQuizTitle, quizTitle("", ".pdf"))
}

func TestQuizService_Ownership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := env.createQuiz(t, professor)

	_, err := env.quiz.GetForCreator(ctx, quiz.ID, other)
	assert.ErrorIs(t, err, ErrQuizAccessDenied)

	_, err = env.quiz.GetForCreator(ctx, quiz.ID, admin)
	assert.NoError(t, err)

	assert.ErrorIs(t, env.quiz.Delete(ctx, quiz.ID, other), ErrQuizAccessDenied)

	_, err = env.quiz.GetForCreator(ctx, 999, professor)
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestQuizService_DeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := env.createQuiz(t, professor)

	for i := 0; i < 2; i++ {
		_, err := env.attempt.Submit(ctx, &SubmitQuizRequest{QuizID: quiz.ID}, student)
		require.NoError(t, err)
	}
	env.publisher.ClearEvents()

	require.NoError(t, env.quiz.Delete(ctx, quiz.ID, admin))

	attempts, err := env.attempt.ListMine(ctx, student)
	require.NoError(t, err)
	assert.Empty(t, attempts)

	_, err = env.quiz.GetForStudent(ctx, quiz.ID)
	assert.ErrorIs(t, err, ErrQuizNotFound)

	published := env.publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	data := published[0].Data.(events.QuizDeletedEvent)
	assert.Equal(t, int64(2), data.AttemptsDeleted)
	assert.Equal(t, "admin-1", data.DeletedBy)
}

func TestQuizService_StudentViews(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := env.createQuiz(t, professor)

	sq, err := env.quiz.GetForStudent(ctx, quiz.ID)
	require.NoError(t, err)
	require.Len(t, sq.MCQ, 1)
	assert.Equal(t, []string{"CO2", "O2", "N2", "He"}, sq.MCQ[0].Options)
	require.Len(t, sq.TF, 1)
	require.Len(t, sq.WH, 1)
	assert.Equal(t, "Where does photosynthesis happen?", sq.WH[0].Question)

	available, err := env.quiz.ListAvailable(ctx, student)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.False(t, available[0].Attempted)
	assert.Equal(t, 3, available[0].QuestionCount)
	assert.Equal(t, "Dr. Ada", available[0].CreatorName)

	_, err = env.attempt.Submit(ctx, &SubmitQuizRequest{QuizID: quiz.ID}, student)
	require.NoError(t, err)

	available, err = env.quiz.ListAvailable(ctx, student)
	require.NoError(t, err)
	assert.True(t, available[0].Attempted)
}

func TestQuizService_ListMineAggregates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := env.createQuiz(t, professor)

	_, err := env.attempt.Submit(ctx, &SubmitQuizRequest{QuizID: quiz.ID, Answers: models.AnswerSheet{
		MCQ: map[int]int{0: 0}, TF: map[int]bool{0: true},
	}}, student)
	require.NoError(t, err)
	_, err = env.attempt.Submit(ctx, &SubmitQuizRequest{QuizID: quiz.ID}, student)
	require.NoError(t, err)

	mine, err := env.quiz.ListMine(ctx, professor)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(2), mine[0].AttemptCount)
	assert.InDelta(t, 33.5, mine[0].AvgScore, 0.001)
}

func TestQuizService_Exports(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz := env.createQuiz(t, professor)

	tex, err := env.quiz.ExportLaTeX(ctx, quiz.ID, professor)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(tex.FileName, ".tex"))
	assert.Contains(t, string(tex.Data), "What do plants absorb?")

	xlsx, err := env.quiz.ExportResults(ctx, quiz.ID, professor)
	require.NoError(t, err)
	assert.NotEmpty(t, xlsx.Data)

	_, err = env.quiz.ExportResults(ctx, quiz.ID, student)
	assert.ErrorIs(t, err, ErrQuizAccessDenied)
}

func TestQuizService_UploadPDF(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.extractor.On("ExtractFile", mock.Anything, mock.Anything).
		Return(&extractor.Document{Text: "Plants use light.", PageCount: 2}, nil).Once()

	resp, err := env.quiz.UploadPDF(ctx, "notes.pdf", strings.NewReader("%PDF-fake"), 9)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "notes.pdf", resp.FileName)
	assert.Equal(t, 2, resp.PageCount)

	env.extractor.On("ExtractFile", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewExtractionError("not enough text", nil)).Once()
	_, err = env.quiz.UploadPDF(ctx, "blank.pdf", strings.NewReader("%PDF-fake"), 9)
	assert.True(t, IsExtraction(err))
}
