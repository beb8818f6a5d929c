package utils

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	LoggerKey       = "logger"
)

// Logger is the logging surface shared by the CLI, the BFF handlers and the
// client-side services.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)

	With(args ...any) Logger

	LogRequest(method, path string, statusCode int, duration string, args ...any)
	LogError(err error, msg string, args ...any)
}

// SlogLogger is a *slog.Logger with access-log and error helpers.
type SlogLogger struct {
	*slog.Logger
}

func NewSlogLogger(logger *slog.Logger) Logger {
	return &SlogLogger{Logger: logger}
}

// NewLogger picks JSON output for production and text output otherwise.
// CLI output goes to stdout, so logs are written to w (stderr in main).
func NewLogger(environment string, w io.Writer) Logger {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelDebug
	var handler slog.Handler
	if environment == "production" {
		level = slog.LevelInfo
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}
	return NewSlogLogger(slog.New(handler))
}

// NewNopLogger discards everything; used by tests and quiet CLI runs.
func NewNopLogger() Logger {
	return NewSlogLogger(slog.New(slog.DiscardHandler))
}

func (l *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{Logger: l.Logger.With(args...)}
}

// LogRequest writes one access-log line; 4xx is a warning and 5xx an error.
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

// LoggerMiddleware routes gin access logs through logger.
func LoggerMiddleware(logger Logger) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		logger.LogRequest(
			param.Method,
			param.Path,
			param.StatusCode,
			param.Latency.String(),
			"client_ip", param.ClientIP,
			"user_agent", param.Request.UserAgent(),
		)
		return ""
	})
}

// ContextLogger tags every request with an id (taken from the caller or
// generated) and stores a request-scoped logger on the gin context.
func ContextLogger(logger Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		requestLogger := logger.With(
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		c.Set(LoggerKey, requestLogger)
		c.Next()
	}
}

func GetLoggerFromContext(c *gin.Context) Logger {
	if logger, exists := c.Get(LoggerKey); exists {
		if typedLogger, ok := logger.(Logger); ok {
			return typedLogger
		}
	}
	return NewLogger("production", os.Stderr)
}

// ToSlogLogger unwraps logger for libraries that take *slog.Logger.
func ToSlogLogger(logger Logger) *slog.Logger {
	if sl, ok := logger.(*SlogLogger); ok {
		return sl.Logger
	}
	return slog.Default()
}
