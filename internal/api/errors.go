package api

import (
	"errors"
	"net/http"
	"strconv"

	"gymdesk/internal/apperr"
	"gymdesk/internal/logger"

	"github.com/gin-gonic/gin"
)

const genericFailure = "Operation failed, please try again"

// WriteError maps the apperr taxonomy onto HTTP status codes. Anything unclassified
// is logged and reported with a generic message.
func WriteError(c *gin.Context, err error) {
	var (
		ve *apperr.ValidationError
		se *apperr.InsufficientStockError
		re *apperr.ReferentialIntegrityError
	)

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: ve.Message, Field: ve.Field})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.As(err, &se):
		c.JSON(http.StatusConflict, ErrorResponse{Error: se.Error(), Details: se})
	case errors.As(err, &re):
		c.JSON(http.StatusConflict, ErrorResponse{Error: re.Error(), Details: re})
	default:
		logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: genericFailure})
	}
}

// BindJSON decodes the request body and reports malformed input as a 400.
func BindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return false
	}
	return true
}

func ParamID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + name})
		return 0, false
	}
	return id, true
}
