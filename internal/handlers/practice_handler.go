package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/quiz-generation-service/internal/services"
	"github.com/SAP-F-2025/quiz-generation-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// PracticeHandler serves self-check quizzes that are never stored.
type PracticeHandler struct {
	BaseHandler
	practiceService services.PracticeService
}

func NewPracticeHandler(practiceService services.PracticeService, logger utils.Logger) *PracticeHandler {
	return &PracticeHandler{
		BaseHandler:     NewBaseHandler(logger),
		practiceService: practiceService,
	}
}

func (h *PracticeHandler) Generate(c *gin.Context) {
	var req services.GenerateQuizRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Generating practice quiz",
		"mcq_count", req.MCQCount,
		"tf_count", req.TFCount,
		"wh_count", req.WHCount)

	resp, err := h.practiceService.GeneratePractice(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PracticeHandler) Check(c *gin.Context) {
	var req services.CheckPracticeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	review, err := h.practiceService.CheckPractice(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}
