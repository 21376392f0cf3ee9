package services

import (
	"context"
	"testing"

	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPracticeService_GenerateDoesNotPersist(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.generator.On("Generate", mock.Anything, mock.Anything).Return(sampleResult(), nil).Once()

	resp, err := env.practice.GeneratePractice(ctx, &GenerateQuizRequest{Text: "Plants use light.", MCQCount: 1})
	require.NoError(t, err)
	assert.Zero(t, resp.Quiz.ID)
	assert.Equal(t, models.DefaultQuizTitle, resp.Quiz.Title)
	assert.True(t, resp.Quiz.MCQQuestions[0].Options[0].IsCorrect)
	assert.NotNil(t, resp.Warnings)

	available, err := env.quiz.ListAvailable(ctx, student)
	require.NoError(t, err)
	assert.Empty(t, available)
	assert.Empty(t, env.publisher.GetPublishedEvents())
}

func TestPracticeService_Check(t *testing.T) {
	env := newTestEnv(t)
	result := sampleResult()

	review, err := env.practice.CheckPractice(context.Background(), &CheckPracticeRequest{
		Quiz: models.Quiz{
			MCQQuestions: result.MCQ,
			TFQuestions:  result.TF,
			WHQuestions:  result.WH,
		},
		Answers: models.AnswerSheet{MCQ: map[int]int{0: 0}, TF: map[int]bool{0: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, review.Score)
	assert.Equal(t, 3, review.Total)
	assert.Equal(t, 67, review.Percentage)

	empty, err := env.practice.CheckPractice(context.Background(), &CheckPracticeRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Percentage)
	assert.NotNil(t, empty.MCQ)
}
