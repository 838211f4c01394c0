package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-restaurant-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	log := logger.NewNop()
	r.Use(RequestID(), Recovery(log), AccessLog(log))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func TestRequestIDIsPropagated(t *testing.T) {
	r := newEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())
}

func TestRequestIDIsGenerated(t *testing.T) {
	r := newEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRecoveryReturns500(t *testing.T) {
	r := newEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
