package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError is one rejected request field. Field carries the JSON name
// when the validator was configured with a json tag name function.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Rule    string      `json:"rule,omitempty"`
	Value   interface{} `json:"value,omitempty"`
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// ValidationErrors is returned whole so clients can mark every bad field.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "invalid request"
	}
	parts := make([]string, len(ve))
	for i := range ve {
		parts[i] = ve[i].Error()
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// Has reports whether field was rejected.
func (ve ValidationErrors) Has(field string) bool {
	for _, e := range ve {
		if e.Field == field {
			return true
		}
	}
	return false
}

// ToValidationErrors flattens validator field errors. Anything else yields nil.
func ToValidationErrors(err error) ValidationErrors {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
			Rule:    fe.Tag(),
			Value:   fe.Value(),
		})
	}
	return out
}

var ruleMessages = map[string]string{
	"required":         "is required",
	"email":            "must be a valid email address",
	"difficulty_level": "must be easy, medium or hard",
	"user_role":        "must be student, professor or admin",
	"signup_role":      "must be student or professor",
	"question_count":   "must be between 0 and 15",
	"required_if":      "is required for this question type",

	"bank_question_type": "must be mcq, fill_blank, short_answer or long_answer",
	"has_correct_option": "must mark at least one option correct",
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := ruleMessages[fe.Tag()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	}
	return fmt.Sprintf("failed the %q check", fe.Tag())
}
