package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/SAP-F-2025/quiz-generation-service/internal/middleware"
	"github.com/SAP-F-2025/quiz-generation-service/internal/models"
	"github.com/SAP-F-2025/quiz-generation-service/internal/services"
	"github.com/SAP-F-2025/quiz-generation-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging functionality for all handlers
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"remote_addr", c.ClientIP(),
		"request_id", c.GetHeader(utils.RequestIDHeader),
		"user_id", h.extractUserID(c),
	}
	fields = append(fields, additionalFields...)

	h.log(c).Info(message, fields...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"request_id", c.GetHeader(utils.RequestIDHeader),
		"user_id", h.extractUserID(c),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	fields = append(fields, additionalFields...)

	h.log(c).LogError(err, message, fields...)
}

// LogWarn logs warning messages with context
func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"request_id", c.GetHeader(utils.RequestIDHeader),
		"user_id", h.extractUserID(c),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	fields = append(fields, additionalFields...)

	h.log(c).Warn(message, fields...)
}

// log prefers the request-scoped logger set by utils.ContextLogger.
func (h *BaseHandler) log(c *gin.Context) utils.Logger {
	return utils.GetLoggerFromContext(c, h.logger)
}

func (h *BaseHandler) extractUserID(c *gin.Context) interface{} {
	if userID, exists := c.Get(middleware.UserIDKey); exists {
		return userID
	}
	return nil
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, code, message string, err error, details ...interface{}) {
	errorResp := ErrorResponse{
		Message: message,
		Code:    code,
	}
	if len(details) > 0 {
		errorResp.Details = details[0]
	}

	if err != nil && statusCode >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", statusCode)
	} else {
		h.LogWarn(c, message, "status_code", statusCode, "error", err)
	}

	c.JSON(statusCode, errorResp)
}

// principal returns the authenticated caller or writes a 401.
func (h *BaseHandler) principal(c *gin.Context) (*models.Principal, bool) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		h.RespondWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated", nil)
		return nil, false
	}
	return principal, true
}

// bindJSON decodes the body or writes a 400.
func (h *BaseHandler) bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "INVALID_PAYLOAD", "Invalid request payload", err, err.Error())
		return false
	}
	return true
}

// handleServiceError maps service errors to HTTP responses
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", err, validationErrors)
		return
	}

	var extractionErr *services.ExtractionError
	if errors.As(err, &extractionErr) {
		h.RespondWithError(c, http.StatusUnprocessableEntity, "EXTRACTION_FAILED", extractionErr.Reason, err)
		return
	}

	var generationErr *services.GenerationError
	if errors.As(err, &generationErr) {
		h.RespondWithError(c, http.StatusBadGateway, "GENERATION_FAILED",
			"Question generation failed, please try again", err)
		return
	}

	var submissionErr *services.SubmissionError
	if errors.As(err, &submissionErr) {
		h.RespondWithError(c, http.StatusInternalServerError, "SUBMISSION_FAILED",
			"Your answers could not be saved, please submit again", err)
		return
	}

	switch {
	case services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error(), err)
	case services.IsUnauthorized(err):
		h.RespondWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error(), err)
	case errors.Is(err, services.ErrQuizAccessDenied):
		h.RespondWithError(c, http.StatusForbidden, "FORBIDDEN", "Access denied to quiz", err)
	case errors.Is(err, services.ErrAttemptAccessDenied):
		h.RespondWithError(c, http.StatusForbidden, "FORBIDDEN", "Access denied to attempt", err)
	case errors.Is(err, services.ErrBankAccessDenied):
		h.RespondWithError(c, http.StatusForbidden, "FORBIDDEN", err.Error(), err)
	case services.IsForbidden(err):
		h.RespondWithError(c, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions", err)
	case errors.Is(err, services.ErrQuizNotFound):
		h.RespondWithError(c, http.StatusNotFound, "NOT_FOUND", "Quiz not found", err)
	case errors.Is(err, services.ErrAttemptNotFound):
		h.RespondWithError(c, http.StatusNotFound, "NOT_FOUND", "Attempt not found", err)
	case errors.Is(err, services.ErrBankNotFound):
		h.RespondWithError(c, http.StatusNotFound, "NOT_FOUND", "Question bank not found", err)
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, "NOT_FOUND", "Resource not found", err)
	case services.IsConflict(err):
		h.RespondWithError(c, http.StatusConflict, "CONFLICT", err.Error(), err)
	case errors.Is(err, context.Canceled):
		// client went away; nothing useful to send
		h.LogWarn(c, "Request cancelled", "error", err)
		c.AbortWithStatus(499)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", err)
	}
}
