package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/SAP-F-2025/quiz-generation-service/internal/auth"
	"github.com/SAP-F-2025/quiz-generation-service/internal/middleware"
	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/SAP-F-2025/quiz-generation-service/internal/services"
	"github.com/SAP-F-2025/quiz-generation-service/internal/utils"
	"github.com/SAP-F-2025/quiz-generation-service/pkg/monitoring"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HandlerManager struct {
	authHandler      *AuthHandler
	professorHandler *ProfessorHandler
	studentHandler   *StudentHandler
	practiceHandler  *PracticeHandler
	bankHandler      *QuestionBankHandler

	authenticator auth.Authenticator
	logger        utils.Logger
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	authenticator auth.Authenticator,
	maxUploadBytes int64,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:      NewAuthHandler(serviceManager.Auth(), logger),
		professorHandler: NewProfessorHandler(serviceManager.Quiz(), maxUploadBytes, logger),
		studentHandler:   NewStudentHandler(serviceManager.Quiz(), serviceManager.Attempt(), logger),
		practiceHandler:  NewPracticeHandler(serviceManager.Practice(), logger),
		bankHandler:      NewQuestionBankHandler(serviceManager.QuestionBank(), logger),
		authenticator:    authenticator,
		logger:           logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine, db Pinger) {
	router.GET("/health", HealthCheck(db))
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	requireAuth := middleware.AuthMiddleware(hm.authenticator, hm.logger)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", hm.authHandler.Register)
		authGroup.POST("/login", hm.authHandler.Login)
		authGroup.GET("/me", requireAuth, hm.authHandler.Me)
	}

	professor := api.Group("/professor", requireAuth, middleware.RoleMiddleware(models.RoleProfessor))
	{
		professor.POST("/upload-pdf", hm.professorHandler.UploadPDF)
		professor.POST("/create-quiz", hm.professorHandler.CreateQuiz)
		professor.GET("/quizzes", hm.professorHandler.ListQuizzes)
		professor.GET("/quiz/:id", hm.professorHandler.GetQuiz)
		professor.DELETE("/quiz/:id", hm.professorHandler.DeleteQuiz)
		professor.GET("/quiz/:id/latex", hm.professorHandler.ExportLaTeX)
		professor.GET("/quiz/:id/results.xlsx", hm.professorHandler.ExportResults)

		professor.POST("/question-banks", hm.bankHandler.CreateBank)
		professor.GET("/question-banks", hm.bankHandler.ListBanks)
		professor.GET("/question-banks/load", hm.bankHandler.LoadBank)
		professor.POST("/question-banks/questions", hm.bankHandler.AddQuestion)
		professor.GET("/question-banks/latex", hm.bankHandler.ExportLaTeX)
	}

	student := api.Group("/student", requireAuth, middleware.RoleMiddleware(models.RoleStudent))
	{
		student.GET("/stats", hm.studentHandler.Stats)
		student.GET("/quizzes", hm.studentHandler.ListQuizzes)
		student.GET("/quiz/:id", hm.studentHandler.GetQuiz)
		student.POST("/submit-quiz", hm.studentHandler.SubmitQuiz)
		student.GET("/attempts", hm.studentHandler.ListAttempts)
		student.GET("/attempts/:id/review", hm.studentHandler.GetAttemptReview)
	}

	practice := api.Group("/practice", requireAuth)
	{
		practice.POST("/generate", hm.practiceHandler.Generate)
		practice.POST("/check", hm.practiceHandler.Check)
	}
}

// HealthCheck reports liveness and database reachability.
func HealthCheck(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if db != nil {
			if err := db.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":   "unhealthy",
					"service":  "quiz-generation-service",
					"database": err.Error(),
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "quiz-generation-service",
		})
	}
}
