package services

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ServiceLogger records one line per service operation with its outcome.
type ServiceLogger struct {
	logger *slog.Logger
}

func NewServiceLogger(logger *slog.Logger, service string) *ServiceLogger {
	return &ServiceLogger{logger: logger.With("service", service)}
}

func (l *ServiceLogger) Logger() *slog.Logger {
	return l.logger
}

// OperationLogger times a single operation started by WithOperation.
type OperationLogger struct {
	parent    *ServiceLogger
	ctx       context.Context
	operation string
	userID    string
	started   time.Time
}

func (l *ServiceLogger) WithOperation(ctx context.Context, operation, userID string) *OperationLogger {
	return &OperationLogger{
		parent:    l,
		ctx:       ctx,
		operation: operation,
		userID:    userID,
		started:   time.Now(),
	}
}

// LogResult logs the outcome. Caller mistakes log below error level so that
// error lines mean the service or an upstream failed.
func (o *OperationLogger) LogResult(resourceID uint, resourceType string, err error) {
	level, status := outcome(err)

	attrs := []slog.Attr{
		slog.String("operation", o.operation),
		slog.String("status", status),
		slog.String("resource_type", resourceType),
		slog.Duration("duration", time.Since(o.started)),
	}
	if o.userID != "" {
		attrs = append(attrs, slog.String("user_id", o.userID))
	}
	if resourceID != 0 {
		attrs = append(attrs, slog.Uint64("resource_id", uint64(resourceID)))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		var ve ValidationErrors
		if errors.As(err, &ve) {
			attrs = append(attrs, slog.Int("invalid_fields", len(ve)))
		}
	}

	o.parent.logger.LogAttrs(o.ctx, level, o.operation+" "+status, attrs...)
}

func outcome(err error) (slog.Level, string) {
	switch {
	case err == nil:
		return slog.LevelInfo, "ok"
	case errors.Is(err, context.Canceled):
		return slog.LevelInfo, "cancelled"
	case IsValidation(err):
		return slog.LevelWarn, "invalid"
	case IsUnauthorized(err), IsForbidden(err):
		return slog.LevelWarn, "denied"
	case IsNotFound(err):
		return slog.LevelInfo, "not_found"
	case IsConflict(err):
		return slog.LevelWarn, "conflict"
	case IsExtraction(err):
		return slog.LevelWarn, "unreadable"
	case IsGeneration(err):
		return slog.LevelError, "upstream_failed"
	default:
		return slog.LevelError, "failed"
	}
}
