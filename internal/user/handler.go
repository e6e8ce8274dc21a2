package user

import (
	"errors"
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

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !api.BindJSON(c, &req) {
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	if !resp.Success {
		c.JSON(http.StatusUnauthorized, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "refresh_token is required", Field: "refresh_token"})
		return
	}

	resp, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if errors.Is(err, ErrInvalidRefreshToken) {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetMe(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), session.ID)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := api.ParamID(c, "userID")
	if !ok {
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !api.BindJSON(c, &req) {
		return
	}

	u, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, u)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := api.ParamID(c, "userID")
	if !ok {
		return
	}
	var req UpdateUserRequest
	if !api.BindJSON(c, &req) {
		return
	}

	u, err := h.service.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, u)
}

func (h *Handler) SetActive(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}
	id, ok := api.ParamID(c, "userID")
	if !ok {
		return
	}
	var req SetActiveRequest
	if !api.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetActive(c.Request.Context(), session.ID, id, req.IsActive); err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "User updated"})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}
	id, ok := api.ParamID(c, "userID")
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), session.ID, id); err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "User deleted"})
}
