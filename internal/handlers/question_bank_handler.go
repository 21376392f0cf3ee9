package handlers

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/quiz-generation-service/internal/services"
	"github.com/SAP-F-2025/quiz-generation-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// QuestionBankHandler serves hand-authored question collections that
// professors build up independently of generated quizzes.
type QuestionBankHandler struct {
	BaseHandler
	bankService services.QuestionBankService
}

func NewQuestionBankHandler(bankService services.QuestionBankService, logger utils.Logger) *QuestionBankHandler {
	return &QuestionBankHandler{
		BaseHandler: NewBaseHandler(logger),
		bankService: bankService,
	}
}

// CreateBank creates an empty question bank
// @Summary Create question bank
// @Tags question-banks
// @Accept json
// @Produce json
// @Param body body services.CreateQuestionBankRequest true "Bank title"
// @Success 201 {object} models.QuestionBank
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /professor/question-banks [post]
func (h *QuestionBankHandler) CreateBank(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.CreateQuestionBankRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Creating question bank", "title", req.Title)

	bank, err := h.bankService.CreateBank(c.Request.Context(), &req, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bank)
}

func (h *QuestionBankHandler) ListBanks(c *gin.Context) {
	banks, err := h.bankService.ListBanks(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, banks)
}

// LoadBank returns a bank with its questions
// @Summary Load question bank
// @Tags question-banks
// @Produce json
// @Param title query string true "Bank title"
// @Success 200 {object} models.QuestionBank
// @Failure 404 {object} ErrorResponse
// @Router /professor/question-banks/load [get]
func (h *QuestionBankHandler) LoadBank(c *gin.Context) {
	title, ok := h.titleQuery(c)
	if !ok {
		return
	}

	bank, err := h.bankService.GetBank(c.Request.Context(), title)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bank)
}

// AddQuestion appends a question to a bank the caller owns
// @Summary Add question to bank
// @Tags question-banks
// @Accept json
// @Produce json
// @Param body body services.AddBankQuestionRequest true "Question"
// @Success 201 {object} models.QuestionBank
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /professor/question-banks/questions [post]
func (h *QuestionBankHandler) AddQuestion(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.AddBankQuestionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Adding bank question", "bank_title", req.BankTitle, "type", req.Type)

	bank, err := h.bankService.AddQuestion(c.Request.Context(), &req, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bank)
}

func (h *QuestionBankHandler) ExportLaTeX(c *gin.Context) {
	title, ok := h.titleQuery(c)
	if !ok {
		return
	}

	file, err := h.bankService.ExportLaTeX(c.Request.Context(), title)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	attachment(c, file.FileName, file.ContentType, file.Data)
}

func (h *QuestionBankHandler) titleQuery(c *gin.Context) (string, bool) {
	title := strings.TrimSpace(c.Query("title"))
	if title == "" {
		h.RespondWithError(c, http.StatusBadRequest, "MISSING_TITLE", "Query parameter title is required", nil)
		return "", false
	}
	return title, true
}
