package internalsale

import (
	"net/http"

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

func (h *Handler) CreateInternalSale(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}

	var req CreateRequest
	if !api.BindJSON(c, &req) {
		return
	}

	sale, err := h.service.CreateInternalSale(c.Request.Context(), session, req)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

func (h *Handler) ListInternalSales(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}
	period, ok := api.QueryDateRange(c)
	if !ok {
		return
	}

	sales, err := h.service.ListInternalSales(c.Request.Context(), session.GymID, period)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, sales)
}
