package purchase

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

func (h *Handler) CreatePurchase(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}

	var req CreateRequest
	if !api.BindJSON(c, &req) {
		return
	}

	p, err := h.service.CreatePurchase(c.Request.Context(), session, req)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *Handler) ListPurchases(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}
	period, ok := api.QueryDateRange(c)
	if !ok {
		return
	}

	purchases, err := h.service.ListPurchases(c.Request.Context(), session.GymID, period)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, purchases)
}

func (h *Handler) GetPurchase(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}
	id, ok := api.ParamID(c, "purchaseID")
	if !ok {
		return
	}

	p, err := h.service.GetPurchase(c.Request.Context(), id, session.GymID)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}
