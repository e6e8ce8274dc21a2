package report

import (
	"net/http"
	"strconv"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// Dashboard serves ?year=&month=, defaulting to the current month.
func (h *Handler) Dashboard(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}

	year, month := h.service.CurrentMonth()
	if v := c.Query("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "year must be a number", Field: "year"})
			return
		}
		year = n
	}
	if v := c.Query("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "month must be a number", Field: "month"})
			return
		}
		month = n
	}

	d, err := h.service.Dashboard(c.Request.Context(), session, year, month)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, d)
}
