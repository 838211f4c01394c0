package resp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-restaurant-service/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", apperror.NotFound("Menu item", 9999), http.StatusNotFound},
		{"wrapped invalid state", fmt.Errorf("open: %w", apperror.InvalidState("error.table_not_available", "Table is not available", nil)), http.StatusConflict},
		{"validation", apperror.Validation("quantity must be at least 1"), http.StatusBadRequest},
		{"forbidden", apperror.Forbidden("nope"), http.StatusForbidden},
		{"unauthorized", apperror.Unauthorized("no token"), http.StatusUnauthorized},
		{"plain", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Error(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestIsServerError(t *testing.T) {
	assert.True(t, IsServerError(errors.New("db down")))
	assert.True(t, IsServerError(fmt.Errorf("create order: %w", errors.New("conn reset"))))
	assert.False(t, IsServerError(apperror.NotFound("Table", 3)))
	assert.False(t, IsServerError(fmt.Errorf("open: %w", apperror.Conflict("Table is busy, please try again"))))
	assert.False(t, IsServerError(apperror.Validation("quantity must be at least 1")))
}

func TestErrorLocalizesNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Accept-Language", "en")

	Error(c, apperror.NotFound("Menu item", 9999))

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Menu item with ID 9999 not found", body.Error)
	assert.Equal(t, "not_found", body.Kind)
}

func TestParamID(t *testing.T) {
	r := gin.New()
	r.GET("/items/:id", func(c *gin.Context) {
		id, ok := ParamID(c, "id")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	for path, status := range map[string]int{
		"/items/42":  http.StatusOK,
		"/items/abc": http.StatusBadRequest,
		"/items/0":   http.StatusBadRequest,
		"/items/-3":  http.StatusBadRequest,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, status, w.Code, path)
	}
}
