package invoice

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

func (h *Handler) CreateInvoice(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}

	var req CreateRequest
	if !api.BindJSON(c, &req) {
		return
	}

	inv, err := h.service.CreateInvoice(c.Request.Context(), session, req)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, inv)
}

// ListInvoices accepts ?from= and ?to= as YYYY-MM-DD.
func (h *Handler) ListInvoices(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}
	period, ok := api.QueryDateRange(c)
	if !ok {
		return
	}

	invoices, err := h.service.ListInvoices(c.Request.Context(), session.GymID, period)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoices)
}

func (h *Handler) GetInvoice(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}
	id, ok := api.ParamID(c, "invoiceID")
	if !ok {
		return
	}

	inv, err := h.service.GetInvoice(c.Request.Context(), id, session.GymID)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, inv)
}
