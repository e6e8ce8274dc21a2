package inventory

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

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := api.ParamID(c, "categoryID")
	if !ok {
		return
	}

	category, err := h.service.GetCategory(c.Request.Context(), id)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if !api.BindJSON(c, &req) {
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := api.ParamID(c, "categoryID")
	if !ok {
		return
	}

	var req CategoryRequest
	if !api.BindJSON(c, &req) {
		return
	}

	category, err := h.service.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := api.ParamID(c, "categoryID")
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Category deleted"})
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context(), c.Query("search"))
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// ListLowStock reports products below the threshold in the caller's branch.
func (h *Handler) ListLowStock(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}

	products, err := h.service.ListLowStock(c.Request.Context(), session.GymType)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := api.ParamID(c, "productID")
	if !ok {
		return
	}

	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *Handler) GetProductByBarcode(c *gin.Context) {
	product, err := h.service.GetProductByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}

	var req ProductRequest
	if !api.BindJSON(c, &req) {
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), session.GymType, req)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	session, ok := auth.MustSession(c)
	if !ok {
		return
	}
	id, ok := api.ParamID(c, "productID")
	if !ok {
		return
	}

	var req ProductRequest
	if !api.BindJSON(c, &req) {
		return
	}

	product, err := h.service.UpdateProduct(c.Request.Context(), id, session.GymType, req)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := api.ParamID(c, "productID")
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		api.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Product deleted"})
}

func (h *Handler) ProductLabel(c *gin.Context) {
	id, ok := api.ParamID(c, "productID")
	if !ok {
		return
	}

	png, err := h.service.ProductLabel(c.Request.Context(), id)
	if err != nil {
		api.WriteError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
