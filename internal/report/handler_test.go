package report

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gymdesk/internal/auth"
	"gymdesk/internal/gym"
	"gymdesk/internal/subscription"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupRouter(repo *MockRepository, roster *MockRoster) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(newTestService(repo, roster))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		auth.SetSession(c, auth.Session{ID: 2, Username: "admin_female", Role: "admin", GymID: 2, GymType: gym.BranchFemale})
	})
	router.GET("/reports/dashboard", h.Dashboard)
	return router
}

func TestHandler_Dashboard_DefaultsToCurrentMonth(t *testing.T) {
	repo := new(MockRepository)
	roster := new(MockRoster)
	march := MonthPeriod(2026, 3)

	roster.On("RefreshStatuses", mock.Anything, 2).Return(subscription.StatusCounts{Total: 1, Active: 1}, nil)
	repo.On("ProductStats", mock.Anything, gym.BranchFemale).Return(ProductStats{Total: 5}, nil)
	repo.On("SalesStats", mock.Anything, 2, march).Return(SalesStats{Revenue: decimal.Zero}, nil)
	repo.On("SubscriptionRevenue", mock.Anything, 2, march).Return(dec("2500"), nil)
	repo.On("ProfitLines", mock.Anything, 2, march).Return([]ProfitLine{}, nil)

	w := httptest.NewRecorder()
	setupRouter(repo, roster).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/dashboard", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"month":3`)
	assert.Contains(t, w.Body.String(), `"branch":"female"`)
	assert.Contains(t, w.Body.String(), `"total_revenue":"2500"`)
	repo.AssertExpectations(t)
}

func TestHandler_Dashboard_BadQuery(t *testing.T) {
	router := setupRouter(new(MockRepository), new(MockRoster))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/dashboard?month=march", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"month"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/dashboard?year=2026&month=0", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
