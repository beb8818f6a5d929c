package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/SAP-F-2025/assessment-console/internal/analytics"
	apperrors "github.com/SAP-F-2025/assessment-console/internal/errors"
	"github.com/SAP-F-2025/assessment-console/internal/events"
	"github.com/SAP-F-2025/assessment-console/internal/importer"
	"github.com/SAP-F-2025/assessment-console/internal/models"
	"github.com/SAP-F-2025/assessment-console/internal/utils"
	"github.com/gin-gonic/gin"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// ListResponse carries a filtered collection. A failed fetch degrades to an
// empty list with Error set.
type ListResponse[T any] struct {
	Items []T    `json:"items"`
	Count int    `json:"count"`
	Error string `json:"error,omitempty"`
}

// ActionResponse reports a mutation together with the notifications it raised.
type ActionResponse struct {
	Message       string                `json:"message"`
	Data          interface{}           `json:"data,omitempty"`
	Notifications []models.Notification `json:"notifications,omitempty"`
}

// BaseHandler provides common logging functionality for all handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return BaseHandler{logger: logger}
}

// log prefers the request-scoped logger set by utils.ContextLogger.
func (h *BaseHandler) log(c *gin.Context) utils.Logger {
	if l, ok := c.Get(utils.LoggerKey); ok {
		if logger, ok := l.(utils.Logger); ok {
			return logger
		}
	}
	return h.logger
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"remote_addr", c.ClientIP(),
	}
	fields = append(fields, additionalFields...)
	h.log(c).InfoContext(c.Request.Context(), message, fields...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	fields = append(fields, additionalFields...)
	h.log(c).LogError(err, message, fields...)
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error, details ...interface{}) {
	resp := ErrorResponse{Message: message}
	if len(details) > 0 {
		resp.Details = details[0]
	}

	if err != nil && statusCode >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", statusCode)
	} else {
		h.log(c).WarnContext(c.Request.Context(), message, "status_code", statusCode, "path", c.Request.URL.Path)
	}
	c.JSON(statusCode, resp)
}

// handleServiceError maps the error taxonomy onto HTTP statuses. Platform
// 4xx replies pass through; platform 5xx become 502.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	if ve, ok := apperrors.AsValidationErrors(err); ok {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, ve.Fields())
		return
	}

	var fileType *apperrors.InvalidFileTypeError
	var requestFailed *apperrors.RequestFailedError
	var payload *analytics.PayloadError

	switch {
	case errors.As(err, &fileType):
		h.RespondWithError(c, http.StatusUnsupportedMediaType, fileType.Error(), err)
	case errors.Is(err, importer.ErrUploadInFlight):
		h.RespondWithError(c, http.StatusConflict, err.Error(), err)
	case apperrors.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, notFoundMessage(err), err)
	case errors.Is(err, context.DeadlineExceeded):
		h.RespondWithError(c, http.StatusGatewayTimeout, "The assessment platform did not respond in time", err)
	case errors.As(err, &requestFailed):
		status := requestFailed.StatusCode
		if status == 0 || status >= http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		h.RespondWithError(c, status, requestFailed.Message, err)
	case errors.As(err, &payload):
		h.RespondWithError(c, http.StatusBadGateway, "Unexpected response from the assessment platform", err, payload.Err.Error())
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

func notFoundMessage(err error) string {
	var nf *apperrors.NotFoundError
	if errors.As(err, &nf) && nf.Resource != "" && nf.Resource != "resource" {
		return strings.ToUpper(nf.Resource[:1]) + nf.Resource[1:] + " not found"
	}
	return "Not found"
}

// collect returns a request-scoped notifier and a func that drains it.
func collect() (events.Notifier, func() []models.Notification) {
	hub := events.NewHub(0)
	return hub, hub.Recent
}
