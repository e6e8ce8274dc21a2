package server

import (
	"net/http"
	"strings"

	"gymdesk/internal/api"

	"github.com/gin-gonic/gin"
)

// RequireJSONMiddleware rejects write requests whose non-empty body is not JSON.
// Bodiless writes such as use-session pass through.
func RequireJSONMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		if c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		if !strings.Contains(c.GetHeader("Content-Type"), "application/json") {
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, api.ErrorResponse{Error: "Content-Type must be application/json"})
			return
		}

		c.Next()
	}
}
