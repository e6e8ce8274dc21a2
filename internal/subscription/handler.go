package subscription

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

func (h *Handler) ListTypes(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}

	types, err := h.service.ListTypes(c.Request.Context(), session.GymID, c.Query("active") == "true")
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, types)
}

func (h *Handler) GetType(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}
	id, ok := api.ParamID(c, "typeID")
	if !ok {
		return
	}

	t, err := h.service.GetType(c.Request.Context(), id, session.GymID)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

func (h *Handler) CreateType(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}

	var req TypeRequest
	if !api.BindJSON(c, &req) {
		return
	}

	t, err := h.service.CreateType(c.Request.Context(), session.GymID, req)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

func (h *Handler) UpdateType(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}
	id, ok := api.ParamID(c, "typeID")
	if !ok {
		return
	}

	var req TypeRequest
	if !api.BindJSON(c, &req) {
		return
	}

	t, err := h.service.UpdateType(c.Request.Context(), id, session.GymID, req)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

func (h *Handler) SetTypeActive(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}
	id, ok := api.ParamID(c, "typeID")
	if !ok {
		return
	}

	var req SetActiveRequest
	if !api.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetTypeActive(c.Request.Context(), id, session.GymID, req.IsActive); err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Subscription type updated"})
}

func (h *Handler) DeleteType(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}
	id, ok := api.ParamID(c, "typeID")
	if !ok {
		return
	}

	if err := h.service.DeleteType(c.Request.Context(), id, session.GymID); err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Subscription type deleted"})
}

// ListSubscribers accepts ?status= and ?search= (name or phone).
func (h *Handler) ListSubscribers(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}

	filter := ListFilter{
		Status: Status(c.Query("status")),
		Search: c.Query("search"),
	}

	subs, err := h.service.ListSubscribers(c.Request.Context(), session.GymID, filter)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, subs)
}

func (h *Handler) GetSubscriber(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}
	id, ok := api.ParamID(c, "subscriberID")
	if !ok {
		return
	}

	sub, err := h.service.GetSubscriber(c.Request.Context(), id, session.GymID)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *Handler) CreateSubscriber(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}

	var req CreateSubscriberRequest
	if !api.BindJSON(c, &req) {
		return
	}

	sub, err := h.service.CreateSubscriber(c.Request.Context(), session.GymID, req)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

func (h *Handler) UpdateSubscriber(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}
	id, ok := api.ParamID(c, "subscriberID")
	if !ok {
		return
	}

	var req UpdateSubscriberRequest
	if !api.BindJSON(c, &req) {
		return
	}

	sub, err := h.service.UpdateSubscriber(c.Request.Context(), id, session.GymID, req)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *Handler) DeleteSubscriber(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}
	id, ok := api.ParamID(c, "subscriberID")
	if !ok {
		return
	}

	if err := h.service.DeleteSubscriber(c.Request.Context(), id, session.GymID); err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Subscriber deleted"})
}

func (h *Handler) UseSession(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}
	id, ok := api.ParamID(c, "subscriberID")
	if !ok {
		return
	}

	sub, err := h.service.UseSession(c.Request.Context(), id, session.GymID)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// Renew accepts an empty body to renew on the current type without a new payment.
func (h *Handler) Renew(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}
	id, ok := api.ParamID(c, "subscriberID")
	if !ok {
		return
	}

	var req RenewRequest
	if c.Request.ContentLength > 0 && !api.BindJSON(c, &req) {
		return
	}

	sub, err := h.service.Renew(c.Request.Context(), id, session.GymID, req)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *Handler) RefreshStatuses(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}

	counts, err := h.service.RefreshStatuses(c.Request.Context(), session.GymID)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}
