package gym

import (
	"net/http"

	"gymdesk/internal/api"

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

func (h *Handler) ListGyms(c *gin.Context) {
	gyms, err := h.service.GetAllGyms(c.Request.Context())
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gyms)
}

func (h *Handler) GetGym(c *gin.Context) {
	id, ok := api.ParamID(c, "gymID")
	if !ok {
		return
	}

	gym, err := h.service.GetGymByID(c.Request.Context(), id)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gym)
}

// UpdateGym saves the settings page: display name, logo and the settings object.
func (h *Handler) UpdateGym(c *gin.Context) {
	id, ok := api.ParamID(c, "gymID")
	if !ok {
		return
	}

	var req UpdateGymRequest
	if !api.BindJSON(c, &req) {
		return
	}

	gym, err := h.service.UpdateGym(c.Request.Context(), id, req)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gym)
}
