package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	apperrors "github.com/SAP-F-2025/quiz-generation-service/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		err    error
		level  slog.Level
		status string
	}{
		{nil, slog.LevelInfo, "ok"},
		{context.Canceled, slog.LevelInfo, "cancelled"},
		{ErrNoQuestionsRequested, slog.LevelWarn, "invalid"},
		{ErrQuizAccessDenied, slog.LevelWarn, "denied"},
		{ErrQuizNotFound, slog.LevelInfo, "not_found"},
		{ErrEmailTaken, slog.LevelWarn, "conflict"},
		{apperrors.NewExtractionError("empty", nil), slog.LevelWarn, "unreadable"},
		{apperrors.NewGenerationError("mcq", errors.New("503")), slog.LevelError, "upstream_failed"},
		{errors.New("disk full"), slog.LevelError, "failed"},
	}

	for _, tt := range tests {
		level, status := outcome(tt.err)
		assert.Equal(t, tt.level, level, status)
		assert.Equal(t, tt.status, status)
	}
}

func TestOperationLogger_LogResult(t *testing.T) {
	var buf bytes.Buffer
	logger := NewServiceLogger(slog.New(slog.NewJSONHandler(&buf, nil)), "quiz")

	logger.WithOperation(context.Background(), "delete_quiz", "prof-1").LogResult(42, "quiz", nil)

	out := buf.String()
	assert.Contains(t, out, `"msg":"delete_quiz ok"`)
	assert.Contains(t, out, `"service":"quiz"`)
	assert.Contains(t, out, `"resource_id":42`)
	assert.Contains(t, out, `"user_id":"prof-1"`)
}
