package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/quiz-generation-service/internal/services"
	"github.com/SAP-F-2025/quiz-generation-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	BaseHandler
	quizService    services.QuizService
	attemptService services.AttemptService
}

func NewStudentHandler(quizService services.QuizService, attemptService services.AttemptService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler:    NewBaseHandler(logger),
		quizService:    quizService,
		attemptService: attemptService,
	}
}

func (h *StudentHandler) Stats(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	stats, err := h.attemptService.Stats(c.Request.Context(), principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *StudentHandler) ListQuizzes(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	quizzes, err := h.quizService.ListAvailable(c.Request.Context(), principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quizzes)
}

// GetQuiz returns a quiz without answers or explanations
// @Summary Get quiz for taking
// @Tags student
// @Produce json
// @Param id path uint true "Quiz ID"
// @Success 200 {object} services.StudentQuiz
// @Failure 404 {object} ErrorResponse
// @Router /student/quiz/{id} [get]
func (h *StudentHandler) GetQuiz(c *gin.Context) {
	id, ok := ParseUintIDParam(c, "id")
	if !ok {
		return
	}

	quiz, err := h.quizService.GetForStudent(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// SubmitQuiz grades the answers and records an attempt
// @Summary Submit quiz
// @Tags student
// @Accept json
// @Produce json
// @Param body body services.SubmitQuizRequest true "Answers"
// @Success 201 {object} services.SubmitQuizResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /student/submit-quiz [post]
func (h *StudentHandler) SubmitQuiz(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.SubmitQuizRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Submitting quiz", "quiz_id", req.QuizID)

	resp, err := h.attemptService.Submit(c.Request.Context(), &req, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *StudentHandler) ListAttempts(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	attempts, err := h.attemptService.ListMine(c.Request.Context(), principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, attempts)
}

func (h *StudentHandler) GetAttemptReview(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := ParseUintIDParam(c, "id")
	if !ok {
		return
	}

	review, err := h.attemptService.GetReview(c.Request.Context(), id, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}
