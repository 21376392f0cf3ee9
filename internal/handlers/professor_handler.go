package handlers

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/SAP-F-2025/quiz-generation-service/internal/services"
	"github.com/SAP-F-2025/quiz-generation-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// UploadField is the multipart field carrying the PDF.
const UploadField = "pdf"

type ProfessorHandler struct {
	BaseHandler
	quizService    services.QuizService
	maxUploadBytes int64
}

func NewProfessorHandler(quizService services.QuizService, maxUploadBytes int64, logger utils.Logger) *ProfessorHandler {
	return &ProfessorHandler{
		BaseHandler:    NewBaseHandler(logger),
		quizService:    quizService,
		maxUploadBytes: maxUploadBytes,
	}
}

// UploadPDF extracts the text layer of an uploaded PDF
// @Summary Upload PDF
// @Tags professor
// @Accept multipart/form-data
// @Produce json
// @Param pdf formData file true "PDF document"
// @Success 200 {object} services.UploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /professor/upload-pdf [post]
func (h *ProfessorHandler) UploadPDF(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	fileHeader, err := c.FormFile(UploadField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.RespondWithError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Uploaded file is too large", err)
			return
		}
		h.RespondWithError(c, http.StatusBadRequest, "NO_FILE", "No PDF file uploaded", err)
		return
	}

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		h.RespondWithError(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "Only PDF files are allowed", nil)
		return
	}

	h.LogRequest(c, "Uploading PDF", "file_name", fileHeader.Filename, "size", fileHeader.Size)

	file, err := fileHeader.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "INVALID_FILE", "Could not read uploaded file", err)
		return
	}
	defer file.Close()

	resp, err := h.quizService.UploadPDF(c.Request.Context(), fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateQuiz generates and stores a quiz from extracted text
// @Summary Create quiz
// @Tags professor
// @Accept json
// @Produce json
// @Param body body services.GenerateQuizRequest true "Generation parameters"
// @Success 201 {object} services.GenerateQuizResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /professor/create-quiz [post]
func (h *ProfessorHandler) CreateQuiz(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req services.GenerateQuizRequest
	if !h.bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Generating quiz",
		"difficulty", req.Difficulty,
		"mcq_count", req.MCQCount,
		"tf_count", req.TFCount,
		"wh_count", req.WHCount)

	resp, err := h.quizService.Generate(c.Request.Context(), &req, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ProfessorHandler) ListQuizzes(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	quizzes, err := h.quizService.ListMine(c.Request.Context(), principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quizzes)
}

func (h *ProfessorHandler) GetQuiz(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := ParseUintIDParam(c, "id")
	if !ok {
		return
	}

	quiz, err := h.quizService.GetForCreator(c.Request.Context(), id, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// DeleteQuiz removes a quiz together with all of its attempts
// @Summary Delete quiz
// @Tags professor
// @Param id path uint true "Quiz ID"
// @Success 200 {object} SuccessResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /professor/quiz/{id} [delete]
func (h *ProfessorHandler) DeleteQuiz(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := ParseUintIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting quiz", "quiz_id", id)

	if err := h.quizService.Delete(c.Request.Context(), id, principal); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Quiz deleted"})
}

func (h *ProfessorHandler) ExportLaTeX(c *gin.Context) {
	h.export(c, h.quizService.ExportLaTeX)
}

func (h *ProfessorHandler) ExportResults(c *gin.Context) {
	h.export(c, h.quizService.ExportResults)
}

type exportFunc func(ctx context.Context, id uint, principal *models.Principal) (*services.ExportFile, error)

func (h *ProfessorHandler) export(c *gin.Context, fn exportFunc) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := ParseUintIDParam(c, "id")
	if !ok {
		return
	}

	file, err := fn(c.Request.Context(), id, principal)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	attachment(c, file.FileName, file.ContentType, file.Data)
}
