package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/bagspec-api/internal/handler"
	"github.com/noah-isme/bagspec-api/internal/service"
	"github.com/noah-isme/bagspec-api/pkg/config"
)

func testRouter(env string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	cfg := &config.Config{Env: env, CORS: config.CORSConfig{AllowedOrigins: []string{"*"}}}
	return newRouter(cfg, zap.NewNop(), metrics, routeHandlers{
		forms:   handler.NewFormHandler(nil),
		pages:   handler.NewPageHandler(nil),
		sizes:   handler.NewSizeHandler(nil),
		exports: handler.NewExportHandler(nil),
		ops:     handler.NewMetricsHandler(metrics, nil),
	})
}

func TestRouterServesOpsEndpoints(t *testing.T) {
	r := testRouter(config.EnvDevelopment)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
}

func TestRouterCompressesPages(t *testing.T) {
	r := testRouter(config.EnvDevelopment)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
}

func TestRouterHidesDocsInProduction(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter(config.EnvProduction).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/docs/index.html", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterServesAdminConsoleAtSender(t *testing.T) {
	r := testRouter(config.EnvDevelopment)
	for _, path := range []string{"/", "/sender"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), "/api/send-form", path)
	}
}
