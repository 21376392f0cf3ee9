package services

import (
	"errors"

	apperrors "github.com/SAP-F-2025/quiz-generation-service/internal/errors"
)

var (
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("resource conflict")

	ErrQuizNotFound         = errors.New("quiz not found")
	ErrQuizAccessDenied     = errors.New("access denied to quiz")
	ErrNoQuestionsRequested = errors.New("at least one question type must have a count above zero")
	ErrEmptySourceText      = errors.New("source text is empty")

	ErrAttemptNotFound     = errors.New("attempt not found")
	ErrAttemptAccessDenied = errors.New("access denied to attempt")

	ErrBankNotFound     = errors.New("question bank not found")
	ErrBankTitleTaken   = errors.New("a question bank with this title already exists")
	ErrBankAccessDenied = errors.New("only the bank owner can add questions")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// Typed errors live in internal/errors so handlers and the parser share them.
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors
type ExtractionError = apperrors.ExtractionError
type GenerationError = apperrors.GenerationError
type SubmissionError = apperrors.SubmissionError

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrQuizNotFound) ||
		errors.Is(err, ErrAttemptNotFound) ||
		errors.Is(err, ErrBankNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsUnauthorized reports errors that should become a 401.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrAccountDisabled)
}

// IsForbidden checks if the caller is known but may not act on the resource
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrQuizAccessDenied) ||
		errors.Is(err, ErrAttemptAccessDenied) ||
		errors.Is(err, ErrBankAccessDenied)
}

func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrNoQuestionsRequested) ||
		errors.Is(err, ErrEmptySourceText) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrBankTitleTaken)
}

func IsExtraction(err error) bool { return apperrors.IsExtractionError(err) }
func IsGeneration(err error) bool { return apperrors.IsGenerationError(err) }
func IsSubmission(err error) bool { return apperrors.IsSubmissionError(err) }
