package utils

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the structured logger handed to handlers and pipeline components.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)

	With(args ...any) Logger

	LogRequest(method, path string, statusCode int, duration string, args ...any)
	LogError(err error, msg string, args ...any)
}

// SlogLogger satisfies Logger with the level methods of the embedded slog.Logger.
type SlogLogger struct {
	*slog.Logger
}

func NewSlogLogger(logger *slog.Logger) Logger {
	return &SlogLogger{Logger: logger}
}

type LogOptions struct {
	Level      string
	Format     string // json or text
	FilePath   string // optional rotating file sink
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// NewLogger writes to stdout and, when FilePath is set, to a lumberjack-rotated
// file as well.
func NewLogger(opts LogOptions) Logger {
	var out io.Writer = os.Stdout
	if opts.FilePath != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    orDefault(opts.MaxSizeMB, 100),
			MaxBackups: orDefault(opts.MaxBackups, 5),
			MaxAge:     orDefault(opts.MaxAgeDays, 30),
			Compress:   true,
		})
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	if strings.EqualFold(opts.Format, "text") {
		return NewSlogLogger(slog.New(slog.NewTextHandler(out, handlerOpts)))
	}
	return NewSlogLogger(slog.New(slog.NewJSONHandler(out, handlerOpts)))
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func NewNopLogger() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (l *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{Logger: l.Logger.With(args...)}
}

// LogRequest logs one finished HTTP exchange, warning on 4xx and erroring on 5xx.
func (l *SlogLogger) LogRequest(method, path string, statusCode int, duration string, args ...any) {
	level := slog.LevelInfo
	switch {
	case statusCode >= 500:
		level = slog.LevelError
	case statusCode >= 400:
		level = slog.LevelWarn
	}

	attrs := append([]any{
		"method", method,
		"path", path,
		"status_code", statusCode,
		"duration", duration,
	}, args...)
	l.Log(context.Background(), level, "HTTP Request", attrs...)
}

func (l *SlogLogger) LogError(err error, msg string, args ...any) {
	l.Logger.Error(msg, append([]any{"error", err}, args...)...)
}

// ToSlogLogger unwraps the slog.Logger for components that take one directly.
func ToSlogLogger(logger Logger) *slog.Logger {
	if sl, ok := logger.(*SlogLogger); ok {
		return sl.Logger
	}
	return slog.Default()
}

// ===== GIN MIDDLEWARE =====

const (
	RequestIDHeader = "X-Request-ID"
	loggerKey       = "logger"
)

// LoggerMiddleware logs every request through logger instead of gin's writer.
func LoggerMiddleware(logger Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}
		logger.LogRequest(
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start).String(),
			"client_ip", c.ClientIP(),
			"request_id", c.GetHeader(RequestIDHeader),
		)
	}
}

// ContextLogger stores a request-scoped logger on the context and assigns a
// request id when the caller did not send one.
func ContextLogger(logger Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
			c.Request.Header.Set(RequestIDHeader, requestID)
		}
		c.Writer.Header().Set(RequestIDHeader, requestID)

		c.Set(loggerKey, logger.With("request_id", requestID))
		c.Next()
	}
}

// GetLoggerFromContext returns the request logger, or fallback when
// ContextLogger did not run.
func GetLoggerFromContext(c *gin.Context, fallback Logger) Logger {
	if v, ok := c.Get(loggerKey); ok {
		if logger, ok := v.(Logger); ok {
			return logger
		}
	}
	return fallback
}
