package grading

import (
	"fmt"

	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
)

type MCQReview struct {
	Index        int      `json:"index"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	Selected     *int     `json:"selected"`
	CorrectIndex int      `json:"correct_index"`
	IsCorrect    bool     `json:"is_correct"`
	Explanation  string   `json:"explanation"`
}

type TFReview struct {
	Index       int    `json:"index"`
	Question    string `json:"question"`
	Submitted   *bool  `json:"submitted"`
	Answer      bool   `json:"answer"`
	IsCorrect   bool   `json:"is_correct"`
	Explanation string `json:"explanation"`
}

// WHReview pairs the student's text with the reference answer for self-assessment.
type WHReview struct {
	Index           int    `json:"index"`
	Question        string `json:"question"`
	Submitted       string `json:"submitted"`
	ReferenceAnswer string `json:"reference_answer"`
	Graded          bool   `json:"graded"`
}

// Review reveals every answer of a quiz next to what was submitted.
type Review struct {
	Result
	Message string      `json:"message"`
	MCQ     []MCQReview `json:"mcq"`
	TF      []TFReview  `json:"tf"`
	WH      []WHReview  `json:"wh"`
}

// BuildReview grades the sheet and renders the per-question reveal. It holds
// no state between calls.
func BuildReview(quiz *models.Quiz, answers models.AnswerSheet) *Review {
	answers = answers.Normalized()
	result := Grade(quiz, answers)

	review := &Review{
		Result:  result,
		Message: ScoreMessage(result),
		MCQ:     make([]MCQReview, 0, len(quiz.MCQQuestions)),
		TF:      make([]TFReview, 0, len(quiz.TFQuestions)),
		WH:      make([]WHReview, 0, len(quiz.WHQuestions)),
	}

	for i, q := range quiz.MCQQuestions {
		item := MCQReview{
			Index:        i,
			Question:     q.Question,
			Options:      make([]string, len(q.Options)),
			CorrectIndex: q.CorrectIndex(),
			Explanation:  q.Explanation,
		}
		for j, opt := range q.Options {
			item.Options[j] = opt.Text
		}
		if selected, ok := answers.MCQ[i]; ok {
			item.Selected = &selected
			item.IsCorrect = mcqCorrect(q, selected)
		}
		review.MCQ = append(review.MCQ, item)
	}

	for i, q := range quiz.TFQuestions {
		item := TFReview{
			Index:       i,
			Question:    q.Question,
			Answer:      q.Answer,
			Explanation: q.Explanation,
		}
		if submitted, ok := answers.TF[i]; ok {
			item.Submitted = &submitted
			item.IsCorrect = submitted == q.Answer
		}
		review.TF = append(review.TF, item)
	}

	for i, q := range quiz.WHQuestions {
		review.WH = append(review.WH, WHReview{
			Index:           i,
			Question:        q.Question,
			Submitted:       answers.WH[i],
			ReferenceAnswer: q.Answer,
		})
	}

	return review
}

// ScoreMessage is the headline shown with a result.
func ScoreMessage(r Result) string {
	if r.Total == 0 {
		return "This quiz has no questions."
	}
	switch {
	case r.Percentage >= 80:
		return fmt.Sprintf("Excellent! You got %d out of %d questions correct!", r.Score, r.Total)
	case r.Percentage >= 60:
		return fmt.Sprintf("Good job! You got %d out of %d questions correct.", r.Score, r.Total)
	case r.Percentage >= 40:
		return fmt.Sprintf("Nice try! You got %d out of %d questions correct.", r.Score, r.Total)
	default:
		return fmt.Sprintf("Keep practicing! You got %d out of %d questions correct.", r.Score, r.Total)
	}
}
