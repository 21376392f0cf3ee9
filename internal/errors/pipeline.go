package errors

import (
	"errors"
	"fmt"
)

// ExtractionError means the upload yielded no usable text. Its message is
// safe to show to the uploader and retrying the same file will not help.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("text extraction failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("text extraction failed: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func NewExtractionError(reason string, err error) *ExtractionError {
	return &ExtractionError{Reason: reason, Err: err}
}

// GenerationError means an upstream model call failed and the whole
// generation was abandoned. Nothing is persisted.
type GenerationError struct {
	QuestionType string
	Err          error
}

func (e *GenerationError) Error() string {
	if e.QuestionType == "" {
		return fmt.Sprintf("question generation failed: %v", e.Err)
	}
	return fmt.Sprintf("question generation failed for %s: %v", e.QuestionType, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func NewGenerationError(questionType string, err error) *GenerationError {
	return &GenerationError{QuestionType: questionType, Err: err}
}

// SubmissionError means a graded attempt could not be persisted.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("failed to record submission: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

func NewSubmissionError(err error) *SubmissionError {
	return &SubmissionError{Err: err}
}

func IsExtractionError(err error) bool {
	var ee *ExtractionError
	return errors.As(err, &ee)
}

func IsGenerationError(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}

func IsSubmissionError(err error) bool {
	var se *SubmissionError
	return errors.As(err, &se)
}
