package main

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/bagspec-api/api/swagger"
	"github.com/noah-isme/bagspec-api/internal/handler"
	"github.com/noah-isme/bagspec-api/internal/middleware"
	"github.com/noah-isme/bagspec-api/internal/service"
	"github.com/noah-isme/bagspec-api/internal/view"
	"github.com/noah-isme/bagspec-api/pkg/config"
	"github.com/noah-isme/bagspec-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/bagspec-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/bagspec-api/pkg/middleware/requestid"
)

type routeHandlers struct {
	forms   *handler.FormHandler
	pages   *handler.PageHandler
	sizes   *handler.SizeHandler
	exports *handler.ExportHandler
	ops     *handler.MetricsHandler
}

func newRouter(cfg *config.Config, logr *zap.Logger, metrics *service.MetricsService, h routeHandlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics, "/metrics", "/health", "/ready"))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics", "/submissions/export"})))
	r.SetHTMLTemplate(view.MustPages())

	r.GET("/health", h.ops.Health)
	r.GET("/ready", h.ops.Ready)
	r.GET("/metrics", h.ops.Prometheus)

	r.GET("/", h.pages.Admin)
	r.GET("/sender", h.pages.Admin)
	r.GET("/form/:token", h.pages.Form)
	r.GET("/submissions", h.pages.Submissions)
	r.GET("/submissions/export", h.exports.Export)

	api := r.Group("/api")
	api.POST("/send-form", h.forms.SendForm)
	api.POST("/generate-link", h.forms.GenerateLink)
	api.POST("/submit-form/:token", h.forms.Submit)
	api.POST("/sizes", h.sizes.Create)
	api.GET("/sizes/:bag_type", h.sizes.List)
	api.DELETE("/sizes/:id", h.sizes.Delete)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	return r
}
