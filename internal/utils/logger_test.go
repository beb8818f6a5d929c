package utils

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_Format(t *testing.T) {
	var jsonBuf, textBuf bytes.Buffer

	NewLogger("production", &jsonBuf).Info("hello", "key", "value")
	NewLogger("development", &textBuf).Info("hello", "key", "value")

	assert.Contains(t, jsonBuf.String(), `"msg":"hello"`)
	assert.Contains(t, jsonBuf.String(), `"key":"value"`)
	assert.Contains(t, textBuf.String(), "msg=hello")
	assert.Contains(t, textBuf.String(), "key=value")
}

func TestSlogLogger_LogRequestLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("production", &buf)

	logger.LogRequest("GET", "/api/v1/tests", 200, "1ms")
	logger.LogRequest("GET", "/api/v1/tests/9", 404, "1ms")
	logger.LogRequest("POST", "/api/v1/imports", 502, "1ms")
	logger.LogError(errors.New("boom"), "failed")

	out := buf.String()
	assert.Contains(t, out, `"level":"INFO"`)
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"error":"boom"`)
}

func TestContextLogger_RequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ContextLogger(NewNopLogger()))
	r.GET("/ping", func(c *gin.Context) {
		_, ok := GetLoggerFromContext(c).(*SlogLogger)
		assert.True(t, ok)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestSlogLogger_WithAndUnwrap(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("production", &buf).With("component", "importer")

	logger.Warn("slow upload")
	ToSlogLogger(logger).Info("from slog")

	out := buf.String()
	assert.Contains(t, out, `"msg":"slow upload"`)
	assert.Contains(t, out, `"msg":"from slog"`)
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte(`"component":"importer"`)))
}
