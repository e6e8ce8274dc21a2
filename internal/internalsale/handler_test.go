package internalsale

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"
	"gymdesk/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupRouter(repo *MockRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewService(repo, notify.Nop{}))

	router := gin.New()
	router.Use(func(c *gin.Context) { auth.SetSession(c, maleSession) })
	router.POST("/internal-sales", h.CreateInternalSale)
	router.GET("/internal-sales", h.ListInternalSales)
	return router
}

func TestHandler_CreateInternalSale_Validation(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/internal-sales",
		bytes.NewBufferString(`{"admin_name":"Coach Ali","product_id":5,"quantity":1,"price_type":"manual"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	setupRouter(new(MockRepository)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"manual_price"`)
}

func TestHandler_ListInternalSales(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything, 1, api.DateRange{}).Return([]InternalSale{{ID: 3, PriceType: PriceTypePurchase}}, nil)

	w := httptest.NewRecorder()
	setupRouter(repo).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/internal-sales", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"price_type":"purchase"`)
}
