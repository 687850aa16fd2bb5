package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"user-api/internal/adapter/gin/handler"
	"user-api/internal/adapter/gin/middleware"
)

func TestHealthEndpoint(t *testing.T) {
	log := zaptest.NewLogger(t)
	h := handler.NewUserHandler(nil, nil, log)
	rl := middleware.NewRateLimiter(nil, middleware.RateLimiterConfig{Enabled: false}, log)

	r := SetupRouter(h, rl, log)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestUnknownRouteIs404(t *testing.T) {
	log := zaptest.NewLogger(t)
	h := handler.NewUserHandler(nil, nil, log)

	r := SetupRouter(h, nil, log)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestIDEchoedOnAPIRoutes(t *testing.T) {
	log := zaptest.NewLogger(t)
	h := handler.NewUserHandler(nil, nil, log)

	r := SetupRouter(h, nil, log)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}
