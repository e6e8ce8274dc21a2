package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gymdesk/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/x", func(c *gin.Context) { WriteError(c, err) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	return w
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperr.Invalid("quantity", "must be positive"), http.StatusBadRequest},
		{"not found", apperr.ErrNotFound, http.StatusNotFound},
		{"insufficient stock", &apperr.InsufficientStockError{ProductID: 1, Branch: "male", Available: 6, Requested: 10}, http.StatusConflict},
		{"referential integrity", &apperr.ReferentialIntegrityError{Entity: "product", ID: 1}, http.StatusConflict},
		{"data access", &apperr.DataAccessError{Op: "create invoice", Err: errors.New("conn reset")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveError(t, tt.err)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestWriteError_HidesDriverDetails(t *testing.T) {
	w := serveError(t, &apperr.DataAccessError{Op: "list products", Err: errors.New("pq: password authentication failed")})

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, genericFailure, resp.Error)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestWriteError_ValidationField(t *testing.T) {
	w := serveError(t, apperr.Invalid("discount", "cannot exceed subtotal"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "discount", resp.Field)
	assert.Equal(t, "cannot exceed subtotal", resp.Error)
}
