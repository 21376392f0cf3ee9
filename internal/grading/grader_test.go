package grading

import (
	"testing"

	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuiz() *models.Quiz {
	return &models.Quiz{
		Title: "Cells",
		MCQQuestions: []models.MCQQuestion{
			{
				Question: "Powerhouse of the cell?",
				Options: []models.MCQOption{
					{Text: "Nucleus"},
					{Text: "Mitochondria", IsCorrect: true},
					{Text: "Ribosome"},
				},
				Explanation: "Mitochondria produce ATP.",
			},
			{
				Question: "Which stores DNA?",
				Options: []models.MCQOption{
					{Text: "Nucleus", IsCorrect: true},
					{Text: "Membrane"},
				},
			},
		},
		TFQuestions: []models.TFQuestion{
			{Question: "Plant cells have walls.", Answer: true},
			{Question: "Bacteria have nuclei.", Answer: false},
		},
		WHQuestions: []models.WHQuestion{
			{Question: "What does a ribosome make?", Answer: "Proteins"},
		},
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name       string
		answers    models.AnswerSheet
		score      int
		percentage int
	}{
		{
			name: "all correct",
			answers: models.AnswerSheet{
				MCQ: map[int]int{0: 1, 1: 0},
				TF:  map[int]bool{0: true, 1: false},
				WH:  map[int]string{0: "Proteins"},
			},
			score:      4,
			percentage: 80,
		},
		{
			name:       "empty sheet",
			answers:    models.AnswerSheet{},
			score:      0,
			percentage: 0,
		},
		{
			name: "false answer on true question is wrong",
			answers: models.AnswerSheet{
				TF: map[int]bool{0: false, 1: false},
			},
			score:      1,
			percentage: 20,
		},
		{
			name: "out of range ordinals score nothing",
			answers: models.AnswerSheet{
				MCQ: map[int]int{0: 7, 1: -1, 5: 0},
				TF:  map[int]bool{9: true},
			},
			score:      0,
			percentage: 0,
		},
		{
			name: "partial",
			answers: models.AnswerSheet{
				MCQ: map[int]int{0: 1, 1: 1},
				TF:  map[int]bool{0: true},
			},
			score:      2,
			percentage: 40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Grade(sampleQuiz(), tt.answers)
			assert.Equal(t, tt.score, result.Score)
			assert.Equal(t, 5, result.Total)
			assert.Equal(t, tt.percentage, result.Percentage)
		})
	}
}

func TestGrade_WHNeverScores(t *testing.T) {
	quiz := &models.Quiz{WHQuestions: []models.WHQuestion{{Question: "Why?", Answer: "Because"}}}

	result := Grade(quiz, models.AnswerSheet{WH: map[int]string{0: "Because"}})
	assert.Equal(t, Result{Score: 0, Total: 1, Percentage: 0}, result)
}

func TestGrade_EmptyQuiz(t *testing.T) {
	result := Grade(&models.Quiz{}, models.AnswerSheet{MCQ: map[int]int{0: 0}})
	assert.Equal(t, Result{}, result)
}

func TestGrade_ScoreBounds(t *testing.T) {
	quiz := sampleQuiz()
	for mcq0 := -1; mcq0 < 4; mcq0++ {
		for _, tf := range []bool{true, false} {
			result := Grade(quiz, models.AnswerSheet{
				MCQ: map[int]int{0: mcq0, 1: 0},
				TF:  map[int]bool{0: tf, 1: tf},
			})
			require.GreaterOrEqual(t, result.Score, 0)
			require.LessOrEqual(t, result.Score, len(quiz.MCQQuestions)+len(quiz.TFQuestions))
			require.Equal(t, quiz.QuestionCount(), result.Total)
			require.GreaterOrEqual(t, result.Percentage, 0)
			require.LessOrEqual(t, result.Percentage, 100)
		}
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0, Percentage(0, 0))
	assert.Equal(t, 67, Percentage(2, 3))
	assert.Equal(t, 33, Percentage(1, 3))
	assert.Equal(t, 50, Percentage(1, 2))
	assert.Equal(t, 100, Percentage(7, 7))
}

func TestScoreMessage(t *testing.T) {
	assert.Contains(t, ScoreMessage(Result{Score: 4, Total: 5, Percentage: 80}), "Excellent")
	assert.Contains(t, ScoreMessage(Result{Score: 3, Total: 5, Percentage: 60}), "Good job")
	assert.Contains(t, ScoreMessage(Result{Score: 2, Total: 5, Percentage: 40}), "Nice try")
	assert.Contains(t, ScoreMessage(Result{Score: 1, Total: 5, Percentage: 20}), "Keep practicing")
	assert.Equal(t, "This quiz has no questions.", ScoreMessage(Result{}))
}
