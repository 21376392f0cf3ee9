package generation

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
)

// MaxSourceChars is how much of the extracted text is sent to the model.
const MaxSourceChars = 50000

// Truncate returns at most limit characters of text. The cut is silent.
func Truncate(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	n := 0
	for i := range text {
		if n == limit {
			return text[:i]
		}
		n++
	}
	return text
}

// BuildPrompt renders the instruction for one question type. It returns ""
// when count is zero so the caller skips the type entirely.
func BuildPrompt(questionType models.QuestionType, count int, difficulty models.Difficulty, text string) string {
	if count <= 0 {
		return ""
	}
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}

	var shape, rules string
	switch questionType {
	case models.QuestionMCQ:
		shape = `[{"question": "...", "options": [{"text": "...", "isCorrect": false}, {"text": "...", "isCorrect": true}, {"text": "...", "isCorrect": false}, {"text": "...", "isCorrect": false}], "explanation": "..."}]`
		rules = "Each question has exactly 4 options and exactly one option with \"isCorrect\": true. The explanation says why the correct option is right."
	case models.QuestionTF:
		shape = `[{"question": "...", "answer": true, "explanation": "..."}]`
		rules = "Each question is a single statement that is either true or false. \"answer\" is a JSON boolean."
	case models.QuestionWH:
		shape = `[{"question": "...", "answer": "..."}]`
		rules = "Each question starts with who, what, when, where, why or how. \"answer\" is a short reference answer of one or two sentences."
	default:
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate exactly %d %s questions at %s difficulty from the text below.\n", count, typeLabel(questionType), difficulty)
	b.WriteString(rules)
	b.WriteString("\nOnly ask about facts stated in the text.\n")
	b.WriteString("Return a single JSON array and nothing else, in this exact format:\n")
	b.WriteString(shape)
	b.WriteString("\n\nText:\n")
	b.WriteString(Truncate(text, MaxSourceChars))
	return b.String()
}

func typeLabel(t models.QuestionType) string {
	switch t {
	case models.QuestionMCQ:
		return "multiple-choice"
	case models.QuestionTF:
		return "true/false"
	case models.QuestionWH:
		return "short-answer"
	}
	return string(t)
}
