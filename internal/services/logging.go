package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/SAP-F-2025/assessment-console/internal/errors"
	"github.com/SAP-F-2025/assessment-console/internal/utils"
)

// ServiceLogger logs one line per API operation with its outcome.
type ServiceLogger struct {
	logger *slog.Logger
}

func NewServiceLogger(logger utils.Logger, service string) *ServiceLogger {
	return &ServiceLogger{
		logger: utils.ToSlogLogger(logger).With("service", service),
	}
}

// LogOperation is meant to be deferred with a pointer to the named error result.
func (l *ServiceLogger) LogOperation(ctx context.Context, operation, resourceType, resourceID string, start time.Time, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}

	level := slog.LevelDebug
	status := "success"

	if err != nil {
		level = slog.LevelError
		status = "error"

		var rf *apperrors.RequestFailedError
		switch {
		case apperrors.IsValidation(err):
			level, status = slog.LevelWarn, "validation_error"
		case apperrors.IsNotFound(err):
			level, status = slog.LevelInfo, "not_found"
		case errors.Is(err, context.Canceled):
			level, status = slog.LevelInfo, "canceled"
		case errors.As(err, &rf) && rf.StatusCode == 0:
			status = "unreachable"
		case errors.As(err, &rf) && rf.StatusCode < 500:
			level, status = slog.LevelWarn, "rejected"
		}
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("resource_type", resourceType),
		slog.String("status", status),
		slog.Duration("duration", time.Since(start)),
	}
	if resourceID != "" {
		attrs = append(attrs, slog.String("resource_id", resourceID))
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		if ve, ok := apperrors.AsValidationErrors(err); ok {
			attrs = append(attrs, slog.Int("validation_errors_count", len(ve)))
		}
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s %s %s", operation, resourceType, status), attrs...)
}
