package services

import (
	"context"
	"io"

	"github.com/SAP-F-2025/quiz-generation-service/internal/extractor"
	"github.com/SAP-F-2025/quiz-generation-service/internal/generation"
	"github.com/SAP-F-2025/quiz-generation-service/internal/grading"
	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/SAP-F-2025/quiz-generation-service/internal/storage"
)

// ===== COLLABORATORS =====

// QuestionGenerator runs one fan-out generation.
type QuestionGenerator interface {
	Generate(ctx context.Context, req generation.Request) (*generation.Result, error)
}

// TextExtractor turns a staged upload into text and removes the staged copy.
type TextExtractor interface {
	ExtractFile(ctx context.Context, file *storage.StagedFile) (*extractor.Document, error)
}

// ===== SERVICES =====

type QuizService interface {
	UploadPDF(ctx context.Context, fileName string, r io.Reader, size int64) (*UploadResponse, error)
	Generate(ctx context.Context, req *GenerateQuizRequest, principal *models.Principal) (*GenerateQuizResponse, error)

	ListMine(ctx context.Context, principal *models.Principal) ([]*models.QuizSummary, error)
	GetForCreator(ctx context.Context, id uint, principal *models.Principal) (*models.Quiz, error)
	Delete(ctx context.Context, id uint, principal *models.Principal) error

	ListAvailable(ctx context.Context, principal *models.Principal) ([]*AvailableQuiz, error)
	GetForStudent(ctx context.Context, id uint) (*StudentQuiz, error)

	ExportLaTeX(ctx context.Context, id uint, principal *models.Principal) (*ExportFile, error)
	ExportResults(ctx context.Context, id uint, principal *models.Principal) (*ExportFile, error)
}

type AttemptService interface {
	Submit(ctx context.Context, req *SubmitQuizRequest, principal *models.Principal) (*SubmitQuizResponse, error)
	ListMine(ctx context.Context, principal *models.Principal) ([]*AttemptSummary, error)
	GetReview(ctx context.Context, attemptID uint, principal *models.Principal) (*AttemptReview, error)
	Stats(ctx context.Context, principal *models.Principal) (*models.StudentStats, error)
}

// PracticeService generates and checks quizzes without persisting anything.
type PracticeService interface {
	GeneratePractice(ctx context.Context, req *GenerateQuizRequest) (*GenerateQuizResponse, error)
	CheckPractice(ctx context.Context, req *CheckPracticeRequest) (*grading.Review, error)
}

// QuestionBankService manages named banks of hand-written questions. Banks
// are shared between professors; only the owner or an admin adds questions.
type QuestionBankService interface {
	CreateBank(ctx context.Context, req *CreateQuestionBankRequest, principal *models.Principal) (*models.QuestionBank, error)
	GetBank(ctx context.Context, title string) (*models.QuestionBank, error)
	ListBanks(ctx context.Context) ([]*models.QuestionBankSummary, error)
	AddQuestion(ctx context.Context, req *AddBankQuestionRequest, principal *models.Principal) (*models.QuestionBank, error)
	ExportLaTeX(ctx context.Context, title string) (*ExportFile, error)
}

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	Me(ctx context.Context, principal *models.Principal) (*models.User, error)
}

type ServiceManager interface {
	Quiz() QuizService
	Attempt() AttemptService
	Practice() PracticeService
	Auth() AuthService
	QuestionBank() QuestionBankService
}
