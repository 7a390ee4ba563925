package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bagspec-api/internal/service"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newOpsRouter(h *MetricsHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/metrics", h.Prometheus)
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	return r
}

func TestMetricsHandlerEndpoints(t *testing.T) {
	up := pingFunc(func(context.Context) error { return nil })
	r := newOpsRouter(NewMetricsHandler(service.NewMetricsService(), map[string]Pinger{"database": up}))

	w := get(r, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = get(r, "/ready")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ready","checks":{"database":"up"}}`, w.Body.String())

	w = get(r, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "goroutines_total")
}

func TestMetricsHandlerReadyDegraded(t *testing.T) {
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })
	up := pingFunc(func(context.Context) error { return nil })
	r := newOpsRouter(NewMetricsHandler(nil, map[string]Pinger{"database": up, "redis": down}))

	w := get(r, "/ready")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"degraded","checks":{"database":"up","redis":"down"}}`, w.Body.String())

	assert.Equal(t, http.StatusServiceUnavailable, get(r, "/metrics").Code)
}
