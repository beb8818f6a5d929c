package handlers

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/assessment-console/internal/session"
	"github.com/gin-gonic/gin"
)

func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := strings.TrimSpace(c.Param(param))
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		})
		return ""
	}
	return idStr
}

// SessionMiddleware forwards the caller's Authorization token to every
// platform call made while serving the request.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := session.ParseAuthorization(c.GetHeader("Authorization")); token != "" {
			c.Request = c.Request.WithContext(session.WithToken(c.Request.Context(), token))
		}
		c.Next()
	}
}

func attachment(c *gin.Context, fileName, contentType string) {
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Header("Content-Type", contentType)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
