package grading

import (
	"math"

	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
)

// Result is the frozen outcome of grading one answer sheet.
type Result struct {
	Score      int `json:"score"`
	Total      int `json:"total_questions"`
	Percentage int `json:"percentage"`
}

// Grade scores answers against quiz. MCQ and TF questions score one point
// when answered correctly. WH questions count toward the total but are
// never scored. Missing answers score zero.
func Grade(quiz *models.Quiz, answers models.AnswerSheet) Result {
	var score int

	for i, q := range quiz.MCQQuestions {
		if selected, ok := answers.MCQ[i]; ok && mcqCorrect(q, selected) {
			score++
		}
	}
	for i, q := range quiz.TFQuestions {
		if submitted, ok := answers.TF[i]; ok && submitted == q.Answer {
			score++
		}
	}

	total := quiz.QuestionCount()
	return Result{
		Score:      score,
		Total:      total,
		Percentage: Percentage(score, total),
	}
}

// Percentage is round(score / total * 100), or 0 when total is 0.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) * 100 / float64(total)))
}

func mcqCorrect(q models.MCQQuestion, selected int) bool {
	if selected < 0 || selected >= len(q.Options) {
		return false
	}
	return q.Options[selected].IsCorrect
}
