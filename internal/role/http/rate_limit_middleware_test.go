package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRateLimitedRouter(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.POST("/apply", RateLimitMiddleware(rps, burst, logger), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimitMiddleware_AllowsWithinLimit(t *testing.T) {
	router := setupRateLimitedRouter(100, 5)

	for i := 0; i < 5; i++ {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/apply", nil)
		request.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
	}
}

func TestRateLimitMiddleware_BlocksOverBurst(t *testing.T) {
	router := setupRateLimitedRouter(0.001, 2)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/apply", nil)
		request.RemoteAddr = "10.0.0.2:1234"
		router.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)

		if recorder.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, recorder.Header().Get("Retry-After"))
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimitMiddleware_PerIPIsolation(t *testing.T) {
	router := setupRateLimitedRouter(0.001, 1)

	first := httptest.NewRecorder()
	firstReq := httptest.NewRequest(http.MethodPost, "/apply", nil)
	firstReq.RemoteAddr = "10.0.0.3:1234"
	router.ServeHTTP(first, firstReq)
	assert.Equal(t, http.StatusOK, first.Code)

	exhausted := httptest.NewRecorder()
	exhaustedReq := httptest.NewRequest(http.MethodPost, "/apply", nil)
	exhaustedReq.RemoteAddr = "10.0.0.3:1234"
	router.ServeHTTP(exhausted, exhaustedReq)
	assert.Equal(t, http.StatusTooManyRequests, exhausted.Code)

	other := httptest.NewRecorder()
	otherReq := httptest.NewRequest(http.MethodPost, "/apply", nil)
	otherReq.RemoteAddr = "10.0.0.4:1234"
	router.ServeHTTP(other, otherReq)
	assert.Equal(t, http.StatusOK, other.Code)
}
