package services

import (
	"time"

	"github.com/SAP-F-2025/quiz-generation-service/internal/generation"
	"github.com/SAP-F-2025/quiz-generation-service/internal/grading"
	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
)

// ===== QUIZ REQUESTS / RESPONSES =====

type UploadResponse struct {
	Success   bool   `json:"success"`
	Text      string `json:"text"`
	FileName  string `json:"file_name"`
	PageCount int    `json:"page_count"`
}

type GenerateQuizRequest struct {
	Text       string            `json:"text" validate:"required"`
	Title      string            `json:"title" validate:"max=200"`
	FileName   string            `json:"file_name" validate:"max=255"`
	Difficulty models.Difficulty `json:"difficulty" validate:"omitempty,difficulty_level"`
	MCQCount   int               `json:"mcq_count" validate:"question_count"`
	TFCount    int               `json:"tf_count" validate:"question_count"`
	WHCount    int               `json:"wh_count" validate:"question_count"`
}

func (r *GenerateQuizRequest) generationRequest() generation.Request {
	return generation.Request{
		Text:       r.Text,
		Difficulty: r.Difficulty,
		MCQCount:   r.MCQCount,
		TFCount:    r.TFCount,
		WHCount:    r.WHCount,
	}
}

type GenerateQuizResponse struct {
	Quiz     *models.Quiz      `json:"quiz"`
	Report   generation.Report `json:"report"`
	Warnings []string          `json:"warnings"`
}

// AvailableQuiz is the student catalogue row.
type AvailableQuiz struct {
	ID            uint              `json:"id"`
	Title         string            `json:"title"`
	Difficulty    models.Difficulty `json:"difficulty"`
	CreatorName   string            `json:"creator_name"`
	QuestionCount int               `json:"question_count"`
	MCQCount      int               `json:"mcq_count"`
	TFCount       int               `json:"tf_count"`
	WHCount       int               `json:"wh_count"`
	CreatedAt     time.Time         `json:"created_at"`
	Attempted     bool              `json:"attempted"`
}

// StudentQuiz is a quiz with every answer and explanation removed.
type StudentQuiz struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Difficulty  models.Difficulty `json:"difficulty"`
	CreatorName string            `json:"creator_name"`
	MCQ         []StudentMCQ      `json:"mcq_questions"`
	TF          []StudentQuestion `json:"tf_questions"`
	WH          []StudentQuestion `json:"wh_questions"`
}

type StudentMCQ struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type StudentQuestion struct {
	Question string `json:"question"`
}

type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ===== ATTEMPT REQUESTS / RESPONSES =====

// SubmitQuizRequest carries answers only. Scores are always computed on the server.
type SubmitQuizRequest struct {
	QuizID  uint               `json:"quiz_id" validate:"required"`
	Answers models.AnswerSheet `json:"answers"`
}

type SubmitQuizResponse struct {
	Attempt *models.Attempt `json:"attempt"`
	Review  *grading.Review `json:"review"`
}

type AttemptSummary struct {
	ID             uint      `json:"id"`
	QuizID         uint      `json:"quiz_id"`
	QuizTitle      string    `json:"quiz_title"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     int       `json:"percentage"`
	CompletedAt    time.Time `json:"completed_at"`
}

type AttemptReview struct {
	Attempt *models.Attempt `json:"attempt"`
	Review  *grading.Review `json:"review"`
}

// CheckPracticeRequest carries a client-held quiz, answers included.
type CheckPracticeRequest struct {
	Quiz    models.Quiz        `json:"quiz"`
	Answers models.AnswerSheet `json:"answers"`
}

// ===== QUESTION BANK REQUESTS =====

type CreateQuestionBankRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

// AddBankQuestionRequest appends one hand-written question to the bank
// named by BankTitle. Options are kept for multiple-choice questions only.
type AddBankQuestionRequest struct {
	BankTitle     string                  `json:"bank_title" validate:"required,max=200"`
	Question      string                  `json:"question" validate:"required,max=2000"`
	Type          models.BankQuestionType `json:"type" validate:"required,bank_question_type"`
	Options       []models.BankOption     `json:"options" validate:"required_if=Type mcq,omitempty,min=2,max=10,has_correct_option,dive"`
	CorrectAnswer string                  `json:"correct_answer" validate:"required,max=1000"`
}

// ===== AUTH REQUESTS / RESPONSES =====

type RegisterRequest struct {
	FullName string          `json:"full_name" validate:"required,min=2,max=100"`
	Email    string          `json:"email" validate:"required,email,max=255"`
	Password string          `json:"password" validate:"required,min=8,max=72"`
	Role     models.UserRole `json:"role" validate:"required,signup_role"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}
